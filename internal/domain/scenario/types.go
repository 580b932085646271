package scenario

import "sort"

type Family string

const (
	FamilyBusiness Family = "business"
	FamilyFinance  Family = "finance"
	FamilyClimate  Family = "climate"
	FamilyPolicy   Family = "policy"
)

const (
	FieldResources           = "resources"
	FieldReputation          = "reputation"
	FieldMarketPosition      = "market_position"
	FieldProductQuality      = "product_quality"
	FieldCompetitivePressure = "competitive_pressure"
	FieldFinancialKnowledge  = "financial_knowledge"
	FieldDebt                = "debt"
	FieldRiskExposure        = "risk_exposure"
	FieldEmissionReduction   = "emission_reduction"
	FieldPublicSupport       = "public_support"
	FieldClimateRisk         = "climate_risk"
	FieldEconomicGrowth      = "economic_growth"
	FieldSocialStability     = "social_stability"
	FieldInequality          = "inequality"
)

// Fields holds the named numeric counters of one scenario instance.
type Fields map[string]float64

func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Effects is a per-field delta.
type Effects map[string]float64

func (e Effects) Clone() Effects {
	out := make(Effects, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

func (e Effects) SortedKeys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Decision maps a choice key (e.g. "strategy_choice_1") to an option identifier.
type Decision map[string]string

func (d Decision) Clone() Decision {
	out := make(Decision, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

type HistoryEntry struct {
	Turn      int      `json:"turn"`
	Decisions Decision `json:"decisions"`
}

type DelayedEffect struct {
	Turn        int     `json:"turn"`
	Effect      Effects `json:"effect"`
	Description string  `json:"description"`
}

type GameState struct {
	TurnNumber      int             `json:"turn_number"`
	Fields          Fields          `json:"fields"`
	DecisionHistory []HistoryEntry  `json:"decision_history"`
	DelayedEffects  []DelayedEffect `json:"delayed_effects"`
}

// NewGameState returns a turn-1 state over a copy of initial.
func NewGameState(initial Fields) GameState {
	return GameState{
		TurnNumber:      1,
		Fields:          initial.Clone(),
		DecisionHistory: []HistoryEntry{},
		DelayedEffects:  []DelayedEffect{},
	}
}

type Expectation struct {
	Effects  Effects `json:"effects"`
	Thinking string  `json:"thinking"`
}

type ActualResult struct {
	Effects        Effects         `json:"effects"`
	Narrative      string          `json:"narrative"`
	DelayedEffects []DelayedEffect `json:"delayed_effects,omitempty"`
}

// Option is one entry of a turn's choice menu.
type Option struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// OrphanDelta is a delta that targeted a field missing from state.
type OrphanDelta struct {
	Turn        int     `json:"turn"`
	Field       string  `json:"field"`
	Delta       float64 `json:"delta"`
	Description string  `json:"description,omitempty"`
}

type TurnInput struct {
	Turn           int
	Decisions      Decision
	State          Fields
	History        []HistoryEntry
	DelayedEffects []DelayedEffect
}

type TurnResult struct {
	Turn             int             `json:"turn"`
	NewState         Fields          `json:"new_game_state"`
	Expectation      Expectation     `json:"linear_expectation"`
	Actual           ActualResult    `json:"actual_result"`
	Feedback         string          `json:"feedback"`
	RemainingEffects []DelayedEffect `json:"new_delayed_effects"`
	GameOver         bool            `json:"game_over"`
	GameOverReason   string          `json:"game_over_reason,omitempty"`
	Orphans          []OrphanDelta   `json:"orphans,omitempty"`
}

func CloneDelayedEffects(in []DelayedEffect) []DelayedEffect {
	if in == nil {
		return nil
	}
	out := make([]DelayedEffect, len(in))
	for i, d := range in {
		out[i] = DelayedEffect{Turn: d.Turn, Effect: d.Effect.Clone(), Description: d.Description}
	}
	return out
}

// Clone deep-copies every map and slice of the result.
func (r TurnResult) Clone() TurnResult {
	out := r
	out.NewState = r.NewState.Clone()
	out.Expectation.Effects = r.Expectation.Effects.Clone()
	out.Actual.Effects = r.Actual.Effects.Clone()
	out.Actual.DelayedEffects = CloneDelayedEffects(r.Actual.DelayedEffects)
	out.RemainingEffects = CloneDelayedEffects(r.RemainingEffects)
	if r.Orphans != nil {
		out.Orphans = append([]OrphanDelta{}, r.Orphans...)
	}
	return out
}
