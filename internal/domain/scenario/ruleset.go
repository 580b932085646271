package scenario

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownFamily = errors.New("unknown scenario family")

// Ruleset is the per-family behaviour of the decision engine.
type Ruleset interface {
	Family() Family
	// Fields are the state fields a scenario of this family must define.
	Fields() []string
	DecisionKey(turn int) string
	Options(turn int) []Option
	LinearExpectation(turn int, decisions Decision, state Fields) Expectation
	ActualResult(turn int, decisions Decision, state Fields, history []HistoryEntry) ActualResult
	TerminalPolicy() TerminalPolicy
}

type Registry struct {
	byFamily map[Family]Ruleset
}

func NewRegistry(rulesets ...Ruleset) Registry {
	r := Registry{byFamily: make(map[Family]Ruleset, len(rulesets))}
	for _, rs := range rulesets {
		r.byFamily[rs.Family()] = rs
	}
	return r
}

func DefaultRegistry() Registry {
	return NewRegistry(BusinessRuleset{}, FinanceRuleset{}, ClimateRuleset{}, PolicyRuleset{})
}

func (r Registry) Lookup(f Family) (Ruleset, bool) {
	rs, ok := r.byFamily[f]
	return rs, ok
}

// Get is Lookup with an error for callers that propagate it.
func (r Registry) Get(f Family) (Ruleset, error) {
	rs, ok := r.byFamily[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, f)
	}
	return rs, nil
}

func (r Registry) Families() []Family {
	out := make([]Family, 0, len(r.byFamily))
	for f := range r.byFamily {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func numberedKey(prefix string, turn int) string {
	return fmt.Sprintf("%s_%d", prefix, turn)
}

// decisionValue reads the numbered key for turn, falling back to the bare prefix.
func decisionValue(d Decision, prefix string, turn int) string {
	if v, ok := d[numberedKey(prefix, turn)]; ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(d[prefix])
}

// historyValue returns the option chosen for prefix on a past turn.
func historyValue(history []HistoryEntry, prefix string, turn int) string {
	for _, h := range history {
		if h.Turn == turn {
			return decisionValue(h.Decisions, prefix, turn)
		}
	}
	return ""
}

func countHistory(history []HistoryEntry, prefix, value string) int {
	n := 0
	for _, h := range history {
		if decisionValue(h.Decisions, prefix, h.Turn) == value {
			n++
		}
	}
	return n
}

func optionsFor(key string, values []string, labels map[string]string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Key: key, Value: v, Label: labels[v]})
	}
	return out
}

func neutralExpectation() Expectation {
	return Expectation{
		Effects:  Effects{},
		Thinking: "没有识别到有效的决策，预计局面保持不变。",
	}
}

func neutralResult() ActualResult {
	return ActualResult{
		Effects:   Effects{},
		Narrative: "本回合没有采取有效行动，局势维持原状。",
	}
}

func thinkingFor(label, id, body string) string {
	return fmt.Sprintf("我选择了「%s」(%s)。%s", label, id, body)
}

func pct(state Fields, field string, rate float64) float64 {
	return state[field] * rate
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
