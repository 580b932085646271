package scenario

type Direction string

const (
	DirectionBelow Direction = "below"
	DirectionAbove Direction = "above"
)

// TerminalRule ends the game when Field is below Value (strictly) or at/above Value.
type TerminalRule struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
	Value     float64   `json:"value"`
	Reason    string    `json:"reason"`
}

type Bound struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// TerminalPolicy is evaluated after a turn's effects are applied. Rules are
// checked in order and only the first breach is reported.
type TerminalPolicy struct {
	Bounds map[string]Bound `json:"bounds,omitempty"`
	Rules  []TerminalRule   `json:"rules"`
}

func (r TerminalRule) Breached(state Fields) bool {
	v, ok := state[r.Field]
	if !ok {
		return false
	}
	switch r.Direction {
	case DirectionBelow:
		return v < r.Value
	case DirectionAbove:
		return v >= r.Value
	default:
		return false
	}
}

func (p TerminalPolicy) Evaluate(state Fields) (bool, string) {
	for _, rule := range p.Rules {
		if rule.Breached(state) {
			reason := rule.Reason
			if reason == "" {
				reason = rule.Field
			}
			return true, reason
		}
	}
	return false, ""
}

// Clamp applies the policy bounds to state in place.
func (p TerminalPolicy) Clamp(state Fields) {
	for field, b := range p.Bounds {
		v, ok := state[field]
		if !ok {
			continue
		}
		if b.Min != nil && v < *b.Min {
			v = *b.Min
		}
		if b.Max != nil && v > *b.Max {
			v = *b.Max
		}
		state[field] = v
	}
}

func Min(v float64) Bound { return Bound{Min: &v} }

func MinMax(lo, hi float64) Bound { return Bound{Min: &lo, Max: &hi} }
