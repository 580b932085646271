package create

import (
	"context"
	"errors"
	"testing"
	"time"

	"decisionlab/internal/adapter/repo/memory"
	"decisionlab/internal/app/ports"
	"decisionlab/internal/domain/scenario"
	"decisionlab/internal/domain/session"
)

type stubCatalog map[string]scenario.Definition

func (s stubCatalog) List(context.Context) ([]scenario.Definition, error) {
	out := make([]scenario.Definition, 0, len(s))
	for _, d := range s {
		out = append(out, d)
	}
	return out, nil
}

func (s stubCatalog) Get(_ context.Context, id string) (scenario.Definition, error) {
	d, ok := s[id]
	if !ok {
		return scenario.Definition{}, ports.ErrNotFound
	}
	return d, nil
}

func newUseCase(store *memory.Store, catalog stubCatalog) UseCase {
	return UseCase{
		TxManager: memory.NewTxManager(store),
		Sessions:  memory.NewSessionRepo(store),
		Catalog:   catalog,
		Rulesets:  scenario.DefaultRegistry(),
		NewID:     func() string { return "sess-1" },
		Now:       func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func TestUseCase_CreatesSessionInStartPhase(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, stubCatalog{
		"finance-basics": {
			ID: "finance-basics", Family: scenario.FamilyFinance, MaxTurns: 5,
			InitialState: scenario.Fields{scenario.FieldResources: 150000, scenario.FieldDebt: 0},
		},
	})

	out, err := uc.Execute(context.Background(), Request{ScenarioID: " finance-basics "})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.Session.ID != "sess-1" || out.Session.Phase != session.PhaseStart || out.Session.Version != 1 {
		t.Fatalf("unexpected view: %+v", out.Session)
	}

	stored, err := memory.NewSessionRepo(store).Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("get stored: %v", err)
	}
	if len(stored.Terminal.Rules) != 2 || stored.Terminal.Rules[1].Reason != scenario.FieldDebt {
		t.Fatalf("expected family default terminal policy, got %+v", stored.Terminal)
	}
}

func TestUseCase_Errors(t *testing.T) {
	uc := newUseCase(memory.NewStore(), stubCatalog{
		"bad": {ID: "bad", Family: "relationship", InitialState: scenario.Fields{"trust": 10}},
	})

	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), Request{ScenarioID: "missing"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), Request{ScenarioID: "bad"}); !errors.Is(err, scenario.ErrUnknownFamily) {
		t.Fatalf("expected ErrUnknownFamily, got %v", err)
	}
}
