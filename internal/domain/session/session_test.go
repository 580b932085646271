package session

import (
	"errors"
	"testing"

	"decisionlab/internal/domain/scenario"
)

func newBusinessSession(resources float64, maxTurns int) Session {
	rs := scenario.BusinessRuleset{}
	return New("s-1", "business-launch", scenario.FamilyBusiness, scenario.Fields{
		scenario.FieldResources:           resources,
		scenario.FieldReputation:          50,
		scenario.FieldMarketPosition:      30,
		scenario.FieldProductQuality:      50,
		scenario.FieldCompetitivePressure: 20,
	}, maxTurns, rs.TerminalPolicy())
}

func TestSession_FullRunCompletes(t *testing.T) {
	rs := scenario.BusinessRuleset{}
	s := newBusinessSession(100000, 3)

	if err := s.StartGame(); err != nil {
		t.Fatalf("start: %v", err)
	}
	for turn := 1; turn <= 3; turn++ {
		if _, err := s.SelectOption(rs, 1); err != nil {
			t.Fatalf("turn %d select: %v", turn, err)
		}
		res, err := s.SubmitTurn(rs)
		if err != nil {
			t.Fatalf("turn %d submit: %v", turn, err)
		}
		if res.GameOver {
			t.Fatalf("turn %d: unexpected game over %s", turn, res.GameOverReason)
		}
		if s.CompletedTurns() != turn || s.State.TurnNumber != turn+1 {
			t.Fatalf("turn %d: history=%d turn_number=%d", turn, s.CompletedTurns(), s.State.TurnNumber)
		}
		if s.State.DecisionHistory[turn-1].Turn != turn {
			t.Fatalf("history out of order: %+v", s.State.DecisionHistory)
		}
		if err := s.NextTurn(); err != nil {
			t.Fatalf("turn %d next: %v", turn, err)
		}
	}
	if s.Phase != PhaseCompleted {
		t.Fatalf("expected completed, got %s", s.Phase)
	}
	if !s.Finished() {
		t.Fatal("expected finished session")
	}
}

func TestSession_BuffersClearedEachTurn(t *testing.T) {
	rs := scenario.BusinessRuleset{}
	s := newBusinessSession(100000, 0)
	_ = s.StartGame()

	if err := s.MakeDecision("strategy_choice_1", "rush_to_market"); err != nil {
		t.Fatalf("decision: %v", err)
	}
	if _, err := s.SubmitTurn(rs); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.NextTurn(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if len(s.TempDecisions) != 0 || len(s.SelectedOptions) != 0 {
		t.Fatalf("buffers not cleared: %+v %+v", s.TempDecisions, s.SelectedOptions)
	}
	if s.State.DecisionHistory[0].Decisions["strategy_choice_1"] != "rush_to_market" {
		t.Fatalf("history lost decision: %+v", s.State.DecisionHistory)
	}
}

func TestSession_HistoryIsolatedFromBuffer(t *testing.T) {
	rs := scenario.BusinessRuleset{}
	s := newBusinessSession(100000, 0)
	_ = s.StartGame()
	_ = s.MakeDecision("strategy_choice_1", "rush_to_market")
	buf := s.TempDecisions
	if _, err := s.SubmitTurn(rs); err != nil {
		t.Fatalf("submit: %v", err)
	}
	buf["strategy_choice_1"] = "changed"
	if s.State.DecisionHistory[0].Decisions["strategy_choice_1"] != "rush_to_market" {
		t.Fatal("submitted decisions must be immutable")
	}
}

func TestSession_GameOver(t *testing.T) {
	rs := scenario.BusinessRuleset{}
	s := newBusinessSession(500, 0)
	_ = s.StartGame()
	_, _ = s.SelectOption(rs, 0)

	res, err := s.SubmitTurn(rs)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.GameOver || s.Phase != PhaseGameOver || s.GameOverReason != scenario.FieldResources {
		t.Fatalf("unexpected outcome: phase=%s reason=%q", s.Phase, s.GameOverReason)
	}
	if err := s.NextTurn(); !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase after game over, got %v", err)
	}
}

func TestSession_PhaseGuards(t *testing.T) {
	rs := scenario.BusinessRuleset{}
	s := newBusinessSession(100000, 0)

	if err := s.MakeDecision("k", "v"); !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase before start, got %v", err)
	}
	if _, err := s.SubmitTurn(rs); !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase before start, got %v", err)
	}
	_ = s.StartGame()
	if err := s.StartGame(); !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase on double start, got %v", err)
	}
	if err := s.MakeDecision("  ", "v"); !errors.Is(err, ErrEmptyDecisionKey) {
		t.Fatalf("expected ErrEmptyDecisionKey, got %v", err)
	}
	if _, err := s.SelectOption(rs, 9); !errors.Is(err, ErrOptionOutOfRange) {
		t.Fatalf("expected ErrOptionOutOfRange, got %v", err)
	}
	if _, err := s.SubmitTurn(scenario.FinanceRuleset{}); !errors.Is(err, ErrRulesetMismatched) {
		t.Fatalf("expected ErrRulesetMismatched, got %v", err)
	}
}

func TestSession_ResetRestoresSnapshot(t *testing.T) {
	rs := scenario.BusinessRuleset{}
	s := newBusinessSession(10000, 0)
	_ = s.StartGame()
	_, _ = s.SelectOption(rs, 0)
	if _, err := s.SubmitTurn(rs); err != nil {
		t.Fatalf("submit: %v", err)
	}

	s.ResetGame()

	if s.Phase != PhaseStart || s.LastResult != nil || s.State.TurnNumber != 1 || s.Run != 2 {
		t.Fatalf("unexpected session after reset: %+v", s)
	}
	if s.State.Fields[scenario.FieldResources] != 10000 || len(s.State.DelayedEffects) != 0 || len(s.State.DecisionHistory) != 0 {
		t.Fatalf("state not restored: %+v", s.State)
	}
	s.State.Fields[scenario.FieldResources] = 1
	if s.Initial[scenario.FieldResources] != 10000 {
		t.Fatal("initial snapshot must not alias live state")
	}
}
