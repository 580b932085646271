package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"decisionlab/internal/app/ports"
	"decisionlab/internal/domain/scenario"
)

func TestJournal_AppendAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal", "turns.db")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer j.Close()

	ctx := context.Background()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for turn := 1; turn <= 3; turn++ {
		rec := ports.TurnRecord{
			SessionID:   "s-1",
			Run:         1,
			Turn:        turn,
			Family:      scenario.FamilyFinance,
			Decisions:   scenario.Decision{"investment_choice_1": "index_fund"},
			Expectation: scenario.Expectation{Effects: scenario.Effects{scenario.FieldResources: 15000}, Thinking: "think"},
			Actual: scenario.ActualResult{
				Effects:        scenario.Effects{scenario.FieldResources: -750},
				Narrative:      "n",
				DelayedEffects: []scenario.DelayedEffect{{Turn: turn + 2, Effect: scenario.Effects{scenario.FieldResources: 7500}, Description: "d"}},
			},
			Feedback:       "【第1回合结果】",
			GameOver:       turn == 3,
			GameOverReason: map[bool]string{true: "debt"}[turn == 3],
			StateAfter:     scenario.Fields{scenario.FieldResources: float64(150000 - turn)},
			RecordedAt:     at,
		}
		if err := j.Append(ctx, rec); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := j.Append(ctx, ports.TurnRecord{SessionID: "s-2", Turn: 1}); err != nil {
		t.Fatalf("Append other session: %v", err)
	}

	all, err := j.ListBySession(ctx, "s-1", 0)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(all) != 3 || all[0].Turn != 1 || all[2].Turn != 3 {
		t.Fatalf("unexpected records: %+v", all)
	}
	first := all[0]
	if first.Family != scenario.FamilyFinance || first.Decisions["investment_choice_1"] != "index_fund" {
		t.Fatalf("unexpected decoded record: %+v", first)
	}
	if len(first.Actual.DelayedEffects) != 1 || first.Actual.DelayedEffects[0].Turn != 3 {
		t.Fatalf("delayed effects not round-tripped: %+v", first.Actual)
	}
	if !first.RecordedAt.Equal(at) || first.StateAfter[scenario.FieldResources] != 149999 {
		t.Fatalf("unexpected record metadata: %+v", first)
	}
	if !all[2].GameOver || all[2].GameOverReason != "debt" {
		t.Fatalf("game over not stored: %+v", all[2])
	}

	last, err := j.ListBySession(ctx, "s-1", 2)
	if err != nil {
		t.Fatalf("ListBySession limit: %v", err)
	}
	if len(last) != 2 || last[0].Turn != 2 || last[1].Turn != 3 {
		t.Fatalf("limit should keep most recent in order: %+v", last)
	}
}

func TestJournal_ReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turns.db")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := j.Append(context.Background(), ports.TurnRecord{SessionID: "s-1", Turn: 1}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	j, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer j.Close()
	got, err := j.ListBySession(context.Background(), "s-1", 0)
	if err != nil || len(got) != 1 {
		t.Fatalf("expected persisted record, got %d err=%v", len(got), err)
	}
}

func TestOpen_RejectsEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
