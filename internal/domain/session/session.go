package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"decisionlab/internal/domain/scenario"
)

var (
	ErrInvalidPhase      = errors.New("invalid phase")
	ErrOptionOutOfRange  = errors.New("option index out of range")
	ErrEmptyDecisionKey  = errors.New("empty decision key")
	ErrRulesetMismatched = errors.New("ruleset family mismatch")
)

type Phase string

const (
	PhaseStart        Phase = "start"
	PhaseTurnStart    Phase = "turn_start"
	PhaseTurnResolved Phase = "turn_resolved"
	PhaseGameOver     Phase = "game_over"
	PhaseCompleted    Phase = "completed"
)

// Session is one player's run through a scenario. It owns its game state and the
// turn-scoped decision buffers; callers drive it through the transition methods.
type Session struct {
	ID              string
	ScenarioID      string
	Family          scenario.Family
	Phase           Phase
	State           scenario.GameState
	Initial         scenario.Fields
	MaxTurns        int
	Terminal        scenario.TerminalPolicy
	TempDecisions   scenario.Decision
	SelectedOptions []int
	LastResult      *scenario.TurnResult
	GameOverReason  string
	Run             int
	Version         int64
	UpdatedAt       time.Time
}

func New(id, scenarioID string, family scenario.Family, initial scenario.Fields, maxTurns int, policy scenario.TerminalPolicy) Session {
	return Session{
		ID:              id,
		ScenarioID:      scenarioID,
		Family:          family,
		Phase:           PhaseStart,
		State:           scenario.NewGameState(initial),
		Initial:         initial.Clone(),
		MaxTurns:        maxTurns,
		Terminal:        policy,
		TempDecisions:   scenario.Decision{},
		SelectedOptions: []int{},
		Run:             1,
	}
}

func (s *Session) StartGame() error {
	if s.Phase != PhaseStart {
		return phaseError("start game", s.Phase)
	}
	s.State = scenario.NewGameState(s.Initial)
	s.clearBuffers()
	s.Phase = PhaseTurnStart
	return nil
}

func (s *Session) MakeDecision(key, value string) error {
	if s.Phase != PhaseTurnStart {
		return phaseError("make decision", s.Phase)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyDecisionKey
	}
	if s.TempDecisions == nil {
		s.TempDecisions = scenario.Decision{}
	}
	s.TempDecisions[key] = strings.TrimSpace(value)
	return nil
}

// SelectOption records the index-th entry of the current turn's menu.
func (s *Session) SelectOption(rs scenario.Ruleset, index int) (scenario.Option, error) {
	if s.Phase != PhaseTurnStart {
		return scenario.Option{}, phaseError("select option", s.Phase)
	}
	if err := s.checkRuleset(rs); err != nil {
		return scenario.Option{}, err
	}
	opts := rs.Options(s.State.TurnNumber)
	if index < 0 || index >= len(opts) {
		return scenario.Option{}, fmt.Errorf("%w: %d of %d", ErrOptionOutOfRange, index, len(opts))
	}
	opt := opts[index]
	if err := s.MakeDecision(opt.Key, opt.Value); err != nil {
		return scenario.Option{}, err
	}
	s.SelectedOptions = append(s.SelectedOptions, index)
	return opt, nil
}

// SubmitTurn resolves the buffered decisions as one turn.
func (s *Session) SubmitTurn(rs scenario.Ruleset) (scenario.TurnResult, error) {
	if s.Phase != PhaseTurnStart {
		return scenario.TurnResult{}, phaseError("submit turn", s.Phase)
	}
	if err := s.checkRuleset(rs); err != nil {
		return scenario.TurnResult{}, err
	}

	decisions := s.TempDecisions.Clone()
	res := scenario.CalculateTurn(rs, s.Terminal, scenario.TurnInput{
		Turn:           s.State.TurnNumber,
		Decisions:      decisions,
		State:          s.State.Fields,
		History:        s.State.DecisionHistory,
		DelayedEffects: s.State.DelayedEffects,
	})

	s.State.Fields = res.NewState
	s.State.DecisionHistory = append(s.State.DecisionHistory, scenario.HistoryEntry{
		Turn:      s.State.TurnNumber,
		Decisions: decisions,
	})
	s.State.DelayedEffects = res.RemainingEffects
	s.State.TurnNumber++
	s.LastResult = &res

	if res.GameOver {
		s.Phase = PhaseGameOver
		s.GameOverReason = res.GameOverReason
	} else {
		s.Phase = PhaseTurnResolved
	}
	return res, nil
}

func (s *Session) NextTurn() error {
	if s.Phase != PhaseTurnResolved {
		return phaseError("next turn", s.Phase)
	}
	s.clearBuffers()
	if s.MaxTurns > 0 && s.State.TurnNumber > s.MaxTurns {
		s.Phase = PhaseCompleted
		return nil
	}
	s.Phase = PhaseTurnStart
	return nil
}

// ResetGame restores the construction-time state from any phase and opens a new run.
func (s *Session) ResetGame() {
	s.Run++
	s.State = scenario.NewGameState(s.Initial)
	s.clearBuffers()
	s.LastResult = nil
	s.GameOverReason = ""
	s.Phase = PhaseStart
}

func (s *Session) Finished() bool {
	return s.Phase == PhaseGameOver || s.Phase == PhaseCompleted
}

// UnappliedEffects returns the delayed effects a finished session will never
// reach, e.g. those scheduled past MaxTurns.
func (s *Session) UnappliedEffects() []scenario.DelayedEffect {
	if !s.Finished() {
		return nil
	}
	return scenario.CloneDelayedEffects(s.State.DelayedEffects)
}

// CompletedTurns is the number of resolved turns so far.
func (s *Session) CompletedTurns() int {
	return len(s.State.DecisionHistory)
}

func (s *Session) clearBuffers() {
	s.TempDecisions = scenario.Decision{}
	s.SelectedOptions = []int{}
}

func (s *Session) checkRuleset(rs scenario.Ruleset) error {
	if rs == nil || rs.Family() != s.Family {
		return ErrRulesetMismatched
	}
	return nil
}

func phaseError(op string, phase Phase) error {
	return fmt.Errorf("%w: cannot %s in phase %s", ErrInvalidPhase, op, phase)
}
