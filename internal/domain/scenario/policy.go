package scenario

type policyOption string

const (
	policyNone         policyOption = ""
	policyCashSubsidy  policyOption = "cash_subsidy"
	policyPriceControl policyOption = "price_controls"
	policyReform       policyOption = "structural_reform"
	policyConsultation policyOption = "public_consultation"
)

var policyLabels = map[string]string{
	string(policyCashSubsidy):  "发放现金补贴",
	string(policyPriceControl): "实施价格管制",
	string(policyReform):       "推进结构性改革",
	string(policyConsultation): "开展公众咨询",
}

func decodePolicyOption(v string) policyOption {
	switch o := policyOption(v); o {
	case policyCashSubsidy, policyPriceControl, policyReform, policyConsultation:
		return o
	default:
		return policyNone
	}
}

// PolicyRuleset models public policy where popular measures backfire and
// reforms follow a J-curve.
type PolicyRuleset struct{}

func (PolicyRuleset) Family() Family { return FamilyPolicy }

func (PolicyRuleset) Fields() []string {
	return []string{
		FieldResources,
		FieldReputation,
		FieldPublicSupport,
		FieldEconomicGrowth,
		FieldSocialStability,
		FieldInequality,
	}
}

func (PolicyRuleset) DecisionKey(turn int) string {
	return numberedKey(PolicyDecisionPrefix, turn)
}

func (r PolicyRuleset) Options(turn int) []Option {
	return optionsFor(r.DecisionKey(turn), []string{
		string(policyCashSubsidy),
		string(policyPriceControl),
		string(policyReform),
		string(policyConsultation),
	}, policyLabels)
}

func (PolicyRuleset) TerminalPolicy() TerminalPolicy {
	return TerminalPolicy{
		Bounds: percentBounds(FieldReputation, FieldPublicSupport, FieldEconomicGrowth, FieldSocialStability, FieldInequality),
		Rules: []TerminalRule{
			{Field: FieldResources, Direction: DirectionBelow, Value: PolicyResourcesFloor, Reason: FieldResources},
			{Field: FieldReputation, Direction: DirectionBelow, Value: PolicyReputationFloor, Reason: FieldReputation},
			{Field: FieldPublicSupport, Direction: DirectionBelow, Value: PolicyPublicSupportFloor, Reason: FieldPublicSupport},
		},
	}
}

func (PolicyRuleset) LinearExpectation(turn int, decisions Decision, state Fields) Expectation {
	opt := decodePolicyOption(decisionValue(decisions, PolicyDecisionPrefix, turn))
	label := policyLabels[string(opt)]
	switch opt {
	case policyCashSubsidy:
		return Expectation{
			Effects:  Effects{FieldResources: -PolicySubsidyCost, FieldPublicSupport: 10, FieldInequality: -5},
			Thinking: thinkingFor(label, string(opt), "直接发钱，支持率和公平性立刻提高。"),
		}
	case policyPriceControl:
		return Expectation{
			Effects:  Effects{FieldPublicSupport: 8, FieldSocialStability: 5},
			Thinking: thinkingFor(label, string(opt), "价格稳住了，民众自然满意，社会也更稳定。"),
		}
	case policyReform:
		return Expectation{
			Effects:  Effects{FieldResources: -PolicyReformCost, FieldEconomicGrowth: 5},
			Thinking: thinkingFor(label, string(opt), "改革的好处会马上体现在经济增长上。"),
		}
	case policyConsultation:
		return Expectation{
			Effects:  Effects{FieldResources: -PolicyConsultationCost, FieldPublicSupport: 8},
			Thinking: thinkingFor(label, string(opt), "听取民意，支持率一定会上升。"),
		}
	default:
		return neutralExpectation()
	}
}

func (PolicyRuleset) ActualResult(turn int, decisions Decision, state Fields, history []HistoryEntry) ActualResult {
	opt := decodePolicyOption(decisionValue(decisions, PolicyDecisionPrefix, turn))

	switch opt {
	case policyCashSubsidy:
		gain := 10 / float64(1+countHistory(history, PolicyDecisionPrefix, string(policyCashSubsidy)))
		return ActualResult{
			Effects: Effects{
				FieldResources:     -PolicySubsidyCost,
				FieldPublicSupport: gain,
				FieldInequality:    -3,
			},
			Narrative: "补贴发放后民众短暂满意，但每一次补贴带来的好感都在递减。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 1, Effect: Effects{FieldPublicSupport: -8, FieldEconomicGrowth: -1}, Description: "物价上涨抵消了补贴"},
			},
		}
	case policyPriceControl:
		return ActualResult{
			Effects: Effects{
				FieldResources:       -2000,
				FieldPublicSupport:   6,
				FieldSocialStability: 3,
			},
			Narrative: "价格被冻结，货架上的商品却开始变少。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 1, Effect: Effects{FieldEconomicGrowth: -4, FieldSocialStability: -6}, Description: "供给短缺与黑市出现"},
				{Turn: turn + 2, Effect: Effects{FieldReputation: -5}, Description: "政策失灵引发批评"},
			},
		}
	case policyReform:
		return ActualResult{
			Effects: Effects{
				FieldResources:       -PolicyReformCost,
				FieldEconomicGrowth:  -3,
				FieldPublicSupport:   -8,
				FieldSocialStability: -4,
			},
			Narrative: "改革初期阵痛明显，增长放缓，利益受损群体强烈反对。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 2, Effect: Effects{FieldEconomicGrowth: 8, FieldResources: pct(state, FieldResources, 0.2)}, Description: "改革红利开始释放"},
				{Turn: turn + 3, Effect: Effects{FieldPublicSupport: 10, FieldInequality: -4}, Description: "民众感受到改革成果"},
			},
		}
	case policyConsultation:
		support := 3.0
		if state[FieldReputation] < 30 {
			support = -2
		}
		return ActualResult{
			Effects: Effects{
				FieldResources:     -PolicyConsultationCost,
				FieldReputation:    4,
				FieldPublicSupport: support,
			},
			Narrative: "咨询过程漫长，民众的耐心取决于他们对政府的信任。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 1, Effect: Effects{FieldSocialStability: 3}, Description: "共识逐渐形成"},
			},
		}
	default:
		return neutralResult()
	}
}
