package stateview

import (
	"time"

	"decisionlab/internal/domain/scenario"
	"decisionlab/internal/domain/session"
)

// View is the read model of a session returned to clients.
type View struct {
	ID               string                   `json:"id"`
	ScenarioID       string                   `json:"scenario_id"`
	Family           scenario.Family          `json:"family"`
	Phase            session.Phase            `json:"phase"`
	Run              int                      `json:"run"`
	TurnNumber       int                      `json:"turn_number"`
	CompletedTurns   int                      `json:"completed_turns"`
	MaxTurns         int                      `json:"max_turns"`
	State            scenario.Fields          `json:"state"`
	PendingEffects   int                      `json:"pending_effects"`
	Finished         bool                     `json:"finished"`
	UnappliedEffects []scenario.DelayedEffect `json:"unapplied_effects,omitempty"`
	History          []scenario.HistoryEntry  `json:"decision_history"`
	Options          []scenario.Option        `json:"options"`
	TempDecisions    scenario.Decision        `json:"temp_decisions"`
	SelectedOptions  []int                    `json:"selected_options"`
	LastFeedback     string                   `json:"last_feedback,omitempty"`
	LastResult       *scenario.TurnResult     `json:"last_result,omitempty"`
	GameOverReason   string                   `json:"game_over_reason,omitempty"`
	Version          int64                    `json:"version"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// Build derives the view; options are only offered while a turn is open.
func Build(s session.Session, rs scenario.Ruleset) View {
	v := View{
		ID:              s.ID,
		ScenarioID:      s.ScenarioID,
		Family:          s.Family,
		Phase:           s.Phase,
		Run:             s.Run,
		TurnNumber:      s.State.TurnNumber,
		CompletedTurns:  s.CompletedTurns(),
		MaxTurns:        s.MaxTurns,
		State:           s.State.Fields.Clone(),
		PendingEffects:  len(s.State.DelayedEffects),
		Finished:        s.Finished(),
		History:         s.State.DecisionHistory,
		Options:         []scenario.Option{},
		TempDecisions:   s.TempDecisions.Clone(),
		SelectedOptions: s.SelectedOptions,
		LastResult:      s.LastResult,
		GameOverReason:  s.GameOverReason,
		Version:         s.Version,
		UpdatedAt:       s.UpdatedAt,
	}
	if v.History == nil {
		v.History = []scenario.HistoryEntry{}
	}
	if v.SelectedOptions == nil {
		v.SelectedOptions = []int{}
	}
	if s.LastResult != nil {
		v.LastFeedback = s.LastResult.Feedback
	}
	if v.Finished {
		v.UnappliedEffects = s.UnappliedEffects()
	}
	if s.Phase == session.PhaseTurnStart && rs != nil {
		v.Options = rs.Options(s.State.TurnNumber)
	}
	return v
}
