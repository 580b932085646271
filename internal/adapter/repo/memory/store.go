package memory

import (
	"sync"

	"decisionlab/internal/domain/scenario"
	"decisionlab/internal/domain/session"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]session.Session),
	}
}

func (s *Store) SeedSession(sess session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = cloneSession(sess)
}

// cloneSession copies the mutable parts so callers never share maps or slices
// with the stored value.
func cloneSession(in session.Session) session.Session {
	out := in
	out.Initial = in.Initial.Clone()
	out.State.Fields = in.State.Fields.Clone()
	out.State.DecisionHistory = make([]scenario.HistoryEntry, 0, len(in.State.DecisionHistory))
	for _, h := range in.State.DecisionHistory {
		out.State.DecisionHistory = append(out.State.DecisionHistory, scenario.HistoryEntry{Turn: h.Turn, Decisions: h.Decisions.Clone()})
	}
	out.State.DelayedEffects = scenario.CloneDelayedEffects(in.State.DelayedEffects)
	if out.State.DelayedEffects == nil {
		out.State.DelayedEffects = []scenario.DelayedEffect{}
	}
	out.Terminal = cloneTerminal(in.Terminal)
	out.TempDecisions = in.TempDecisions.Clone()
	out.SelectedOptions = append([]int{}, in.SelectedOptions...)
	if in.LastResult != nil {
		res := in.LastResult.Clone()
		out.LastResult = &res
	}
	return out
}

func cloneTerminal(in scenario.TerminalPolicy) scenario.TerminalPolicy {
	out := scenario.TerminalPolicy{Rules: append([]scenario.TerminalRule(nil), in.Rules...)}
	if in.Bounds != nil {
		out.Bounds = make(map[string]scenario.Bound, len(in.Bounds))
		for k, v := range in.Bounds {
			out.Bounds[k] = v
		}
	}
	return out
}
