package scenario

// Definition is a playable scenario: a family ruleset plus its starting state.
type Definition struct {
	ID           string          `json:"id"`
	Family       Family          `json:"family"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	MaxTurns     int             `json:"max_turns"`
	InitialState Fields          `json:"initial_state"`
	Terminal     *TerminalPolicy `json:"terminal,omitempty"`
}

// Policy returns the definition's own terminal policy, or the ruleset default.
func (d Definition) Policy(rs Ruleset) TerminalPolicy {
	if d.Terminal != nil && (len(d.Terminal.Rules) > 0 || len(d.Terminal.Bounds) > 0) {
		return *d.Terminal
	}
	return rs.TerminalPolicy()
}
