package memory

import (
	"context"
	"errors"
	"testing"

	"decisionlab/internal/app/ports"
	"decisionlab/internal/domain/scenario"
	"decisionlab/internal/domain/session"
)

func testSession() session.Session {
	rs := scenario.BusinessRuleset{}
	s := session.New("s-1", "business-launch", scenario.FamilyBusiness, scenario.Fields{scenario.FieldResources: 10000}, 0, rs.TerminalPolicy())
	s.Version = 1
	return s
}

func TestSessionRepo_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewSessionRepo(store)

	if _, err := repo.Get(ctx, "s-1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	s := testSession()
	if err := repo.SaveWithVersion(ctx, s, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.SaveWithVersion(ctx, s, 0); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected conflict on duplicate create, got %v", err)
	}

	got, err := repo.Get(ctx, "s-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.State.Fields[scenario.FieldResources] = 1
	again, _ := repo.Get(ctx, "s-1")
	if again.State.Fields[scenario.FieldResources] != 10000 {
		t.Fatal("stored session must not alias returned value")
	}

	got.Version = 2
	got.LastResult = &scenario.TurnResult{
		Turn:             1,
		NewState:         scenario.Fields{scenario.FieldResources: 1},
		Actual:           scenario.ActualResult{Effects: scenario.Effects{scenario.FieldResources: -9999}},
		RemainingEffects: []scenario.DelayedEffect{{Turn: 2, Effect: scenario.Effects{scenario.FieldReputation: -5}}},
	}
	if err := repo.SaveWithVersion(ctx, got, 1); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := repo.SaveWithVersion(ctx, got, 1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected stale version conflict, got %v", err)
	}

	first, _ := repo.Get(ctx, "s-1")
	first.LastResult.NewState[scenario.FieldResources] = 999
	first.LastResult.Actual.Effects[scenario.FieldResources] = 0
	first.LastResult.RemainingEffects[0].Effect[scenario.FieldReputation] = 0
	second, _ := repo.Get(ctx, "s-1")
	if second.LastResult.NewState[scenario.FieldResources] != 1 {
		t.Fatalf("last result state aliased: %v", second.LastResult.NewState)
	}
	if second.LastResult.Actual.Effects[scenario.FieldResources] != -9999 {
		t.Fatalf("last result effects aliased: %v", second.LastResult.Actual.Effects)
	}
	if second.LastResult.RemainingEffects[0].Effect[scenario.FieldReputation] != -5 {
		t.Fatalf("last result delayed effects aliased: %+v", second.LastResult.RemainingEffects)
	}
}

func TestTxManager_RepoUsableInsideTx(t *testing.T) {
	store := NewStore()
	store.SeedSession(testSession())
	repo := NewSessionRepo(store)
	tx := NewTxManager(store)

	err := tx.RunInTx(context.Background(), func(ctx context.Context) error {
		s, err := repo.Get(ctx, "s-1")
		if err != nil {
			return err
		}
		s.Version = 2
		return repo.SaveWithVersion(ctx, s, 1)
	})
	if err != nil {
		t.Fatalf("run in tx: %v", err)
	}
	s, _ := repo.Get(context.Background(), "s-1")
	if s.Version != 2 {
		t.Fatalf("expected version 2, got %d", s.Version)
	}
}
