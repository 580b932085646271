package transition

import (
	"context"
	"errors"
	"testing"

	"decisionlab/internal/adapter/repo/memory"
	"decisionlab/internal/app/ports"
	"decisionlab/internal/domain/scenario"
	"decisionlab/internal/domain/session"
)

type conflictRepo struct {
	ports.SessionRepository
}

func (conflictRepo) SaveWithVersion(context.Context, session.Session, int64) error {
	return ports.ErrConflict
}

type countingMetrics struct {
	conflicts int
}

func (m *countingMetrics) RecordTurn(scenario.Family) {}
func (m *countingMetrics) RecordGameOver(string) {}
func (m *countingMetrics) RecordOrphans(int) {}
func (m *countingMetrics) RecordJournalFailure() {}
func (m *countingMetrics) RecordConflict() { m.conflicts++ }
func (m *countingMetrics) RecordFailure() {}

func seeded() (*memory.Store, UseCase) {
	store := memory.NewStore()
	rs := scenario.BusinessRuleset{}
	sess := session.New("s-1", "business-launch", scenario.FamilyBusiness, scenario.Fields{
		scenario.FieldResources: 10000, scenario.FieldReputation: 50,
	}, 3, rs.TerminalPolicy())
	sess.Version = 1
	store.SeedSession(sess)
	return store, UseCase{
		TxManager: memory.NewTxManager(store),
		Sessions:  memory.NewSessionRepo(store),
		Rulesets:  scenario.DefaultRegistry(),
	}
}

func TestUseCase_StartAndDecide(t *testing.T) {
	ctx := context.Background()
	_, uc := seeded()

	out, err := uc.Execute(ctx, Request{SessionID: "s-1", Command: CommandStart})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if out.Session.Phase != session.PhaseTurnStart || out.Session.Version != 2 {
		t.Fatalf("unexpected view after start: %+v", out.Session)
	}

	idx := 2
	out, err = uc.Execute(ctx, Request{SessionID: "s-1", Command: CommandDecide, OptionIndex: &idx})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if out.Selected == nil || out.Selected.Value != "strategic_partnership" {
		t.Fatalf("unexpected selection: %+v", out.Selected)
	}
	if out.Session.TempDecisions["strategy_choice_1"] != "strategic_partnership" {
		t.Fatalf("decision not buffered: %+v", out.Session.TempDecisions)
	}

	out, err = uc.Execute(ctx, Request{SessionID: "s-1", Command: CommandDecide, Key: "note", Value: "x"})
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if out.Session.TempDecisions["note"] != "x" || out.Session.Version != 4 {
		t.Fatalf("unexpected view: %+v", out.Session)
	}
}

func TestUseCase_ResetFromAnyPhase(t *testing.T) {
	ctx := context.Background()
	_, uc := seeded()
	_, _ = uc.Execute(ctx, Request{SessionID: "s-1", Command: CommandStart})

	out, err := uc.Execute(ctx, Request{SessionID: "s-1", Command: CommandReset})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if out.Session.Phase != session.PhaseStart || out.Session.Run != 2 {
		t.Fatalf("unexpected view after reset: %+v", out.Session)
	}
}

func TestUseCase_Errors(t *testing.T) {
	ctx := context.Background()
	_, uc := seeded()

	if _, err := uc.Execute(ctx, Request{Command: CommandStart}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if _, err := uc.Execute(ctx, Request{SessionID: "s-1", Command: "jump"}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if _, err := uc.Execute(ctx, Request{SessionID: "s-1", Command: CommandNext}); !errors.Is(err, session.ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase, got %v", err)
	}
	if _, err := uc.Execute(ctx, Request{SessionID: "missing", Command: CommandStart}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUseCase_ConflictIsCounted(t *testing.T) {
	store, uc := seeded()
	metrics := &countingMetrics{}
	uc.Sessions = conflictRepo{SessionRepository: memory.NewSessionRepo(store)}
	uc.Metrics = metrics

	_, err := uc.Execute(context.Background(), Request{SessionID: "s-1", Command: CommandStart})
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if metrics.conflicts != 1 {
		t.Fatalf("expected one conflict recorded, got %d", metrics.conflicts)
	}
}
