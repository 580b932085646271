package scenario

// CalculateTurn runs one full turn: expectation, actual result, delayed-effect
// scheduling, terminal check and feedback. Inputs are never mutated.
func CalculateTurn(rs Ruleset, policy TerminalPolicy, in TurnInput) TurnResult {
	decisions := in.Decisions
	if decisions == nil {
		decisions = Decision{}
	}

	expectation := rs.LinearExpectation(in.Turn, decisions, in.State)
	actual := rs.ActualResult(in.Turn, decisions, in.State, in.History)

	next := in.State.Clone()
	orphans := applyEffects(next, actual.Effects, in.Turn, "")

	pending := make([]DelayedEffect, 0, len(in.DelayedEffects)+len(actual.DelayedEffects))
	pending = append(pending, in.DelayedEffects...)
	pending = append(pending, actual.DelayedEffects...)
	scheduled := ApplyDelayedEffects(in.Turn, pending, next)
	orphans = append(orphans, scheduled.Orphans...)

	newState := scheduled.State
	policy.Clamp(newState)
	gameOver, reason := policy.Evaluate(newState)

	return TurnResult{
		Turn:             in.Turn,
		NewState:         newState,
		Expectation:      expectation,
		Actual:           actual,
		Feedback:         GenerateFeedback(in.Turn, expectation, actual, actual.Narrative),
		RemainingEffects: scheduled.Remaining,
		GameOver:         gameOver,
		GameOverReason:   reason,
		Orphans:          orphans,
	}
}
