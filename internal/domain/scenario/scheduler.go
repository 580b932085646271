package scenario

type ScheduleResult struct {
	State     Fields          `json:"state"`
	Remaining []DelayedEffect `json:"remaining_effects"`
	Orphans   []OrphanDelta   `json:"orphans,omitempty"`
}

// ApplyDelayedEffects folds every effect due on currentTurn into a copy of state.
// Effects for any other turn are returned unchanged and in their original order.
func ApplyDelayedEffects(currentTurn int, effects []DelayedEffect, state Fields) ScheduleResult {
	next := state.Clone()
	remaining := make([]DelayedEffect, 0, len(effects))
	var orphans []OrphanDelta
	for _, eff := range effects {
		if eff.Turn != currentTurn {
			remaining = append(remaining, eff)
			continue
		}
		orphans = append(orphans, applyEffects(next, eff.Effect, currentTurn, eff.Description)...)
	}
	return ScheduleResult{State: next, Remaining: remaining, Orphans: orphans}
}

// applyEffects adds deltas into state in place. Deltas for fields that state does
// not carry are not created; they come back as orphans.
func applyEffects(state Fields, eff Effects, turn int, description string) []OrphanDelta {
	var orphans []OrphanDelta
	for _, field := range eff.SortedKeys() {
		delta := eff[field]
		if _, ok := state[field]; !ok {
			orphans = append(orphans, OrphanDelta{Turn: turn, Field: field, Delta: delta, Description: description})
			continue
		}
		state[field] += delta
	}
	return orphans
}
