package replay

import (
	"context"
	"errors"
	"testing"

	journalmemory "decisionlab/internal/adapter/journal/memory"
	"decisionlab/internal/app/ports"
	"decisionlab/internal/domain/scenario"
)

func seedJournal(t *testing.T) *journalmemory.Journal {
	t.Helper()
	j := journalmemory.NewJournal()
	recs := []ports.TurnRecord{
		{SessionID: "s-1", Run: 1, Turn: 1, StateAfter: scenario.Fields{scenario.FieldResources: 9000}},
		{SessionID: "s-1", Run: 1, Turn: 2, StateAfter: scenario.Fields{scenario.FieldResources: 400}, GameOver: true, GameOverReason: "resources"},
		{SessionID: "s-1", Run: 2, Turn: 1, StateAfter: scenario.Fields{scenario.FieldResources: 12000}},
	}
	for _, r := range recs {
		if err := j.Append(context.Background(), r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	return j
}

func TestUseCase_ReconstructsLatestState(t *testing.T) {
	uc := UseCase{Journal: seedJournal(t)}
	out, err := uc.Execute(context.Background(), Request{SessionID: "s-1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(out.Records) != 3 || out.LatestState[scenario.FieldResources] != 12000 || out.LatestTurn != 1 || out.GameOver {
		t.Fatalf("unexpected replay: %+v", out)
	}
}

func TestUseCase_FiltersByRunAndLimit(t *testing.T) {
	uc := UseCase{Journal: seedJournal(t)}
	out, err := uc.Execute(context.Background(), Request{SessionID: "s-1", Run: 1, Limit: 1})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(out.Records) != 1 || out.Records[0].Turn != 2 {
		t.Fatalf("unexpected records: %+v", out.Records)
	}
	if !out.GameOver || out.GameOverReason != "resources" || out.LatestState[scenario.FieldResources] != 400 {
		t.Fatalf("unexpected reconstruction: %+v", out)
	}
}

func TestUseCase_EmptyJournal(t *testing.T) {
	uc := UseCase{Journal: journalmemory.NewJournal()}
	out, err := uc.Execute(context.Background(), Request{SessionID: "s-9"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(out.Records) != 0 || out.LatestState == nil || out.LatestTurn != 0 {
		t.Fatalf("unexpected empty replay: %+v", out)
	}
}

func TestUseCase_RejectsInvalidRequest(t *testing.T) {
	uc := UseCase{Journal: journalmemory.NewJournal()}
	for _, req := range []Request{{}, {SessionID: "s-1", Limit: -1}, {SessionID: "s-1", Run: -2}} {
		if _, err := uc.Execute(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest for %+v, got %v", req, err)
		}
	}
}
