package scenario

type climateOption string

const (
	climateNone         climateOption = ""
	climateCarbonTax    climateOption = "carbon_tax"
	climateRenewable    climateOption = "renewable_subsidy"
	climateTechTransfer climateOption = "technology_transfer"
	climateDelayAction  climateOption = "delay_action"
)

var climateLabels = map[string]string{
	string(climateCarbonTax):    "征收碳税",
	string(climateRenewable):    "补贴可再生能源",
	string(climateTechTransfer): "推动技术转让",
	string(climateDelayAction):  "暂缓行动",
}

// climateTippingRisk is the risk level past which inaction accelerates.
const climateTippingRisk = 70

func decodeClimateOption(v string) climateOption {
	switch o := climateOption(v); o {
	case climateCarbonTax, climateRenewable, climateTechTransfer, climateDelayAction:
		return o
	default:
		return climateNone
	}
}

// ClimateRuleset models emission policy with long lags and a tipping point.
type ClimateRuleset struct{}

func (ClimateRuleset) Family() Family { return FamilyClimate }

func (ClimateRuleset) Fields() []string {
	return []string{
		FieldResources,
		FieldEmissionReduction,
		FieldPublicSupport,
		FieldClimateRisk,
		FieldEconomicGrowth,
	}
}

func (ClimateRuleset) DecisionKey(turn int) string {
	return numberedKey(ClimateDecisionPrefix, turn)
}

func (r ClimateRuleset) Options(turn int) []Option {
	return optionsFor(r.DecisionKey(turn), []string{
		string(climateCarbonTax),
		string(climateRenewable),
		string(climateTechTransfer),
		string(climateDelayAction),
	}, climateLabels)
}

func (ClimateRuleset) TerminalPolicy() TerminalPolicy {
	return TerminalPolicy{
		Bounds: percentBounds(FieldEmissionReduction, FieldPublicSupport, FieldClimateRisk, FieldEconomicGrowth),
		Rules: []TerminalRule{
			{Field: FieldClimateRisk, Direction: DirectionAbove, Value: ClimateRiskCeiling, Reason: FieldClimateRisk},
			{Field: FieldResources, Direction: DirectionBelow, Value: ClimateResourcesFloor, Reason: FieldResources},
			{Field: FieldPublicSupport, Direction: DirectionBelow, Value: ClimatePublicSupportFloor, Reason: FieldPublicSupport},
		},
	}
}

func (ClimateRuleset) LinearExpectation(turn int, decisions Decision, state Fields) Expectation {
	opt := decodeClimateOption(decisionValue(decisions, ClimateDecisionPrefix, turn))
	label := climateLabels[string(opt)]
	switch opt {
	case climateCarbonTax:
		return Expectation{
			Effects:  Effects{FieldResources: ClimateTaxRevenue, FieldEmissionReduction: 15},
			Thinking: thinkingFor(label, string(opt), "税收增加了财政收入，排放会按税率同步下降。"),
		}
	case climateRenewable:
		return Expectation{
			Effects:  Effects{FieldResources: -ClimateSubsidyBudget, FieldEmissionReduction: 15},
			Thinking: thinkingFor(label, string(opt), "补贴多少就减排多少，预算完全可控。"),
		}
	case climateTechTransfer:
		return Expectation{
			Effects:  Effects{FieldResources: -ClimateTransferCost, FieldEmissionReduction: 10},
			Thinking: thinkingFor(label, string(opt), "新技术一到位就能马上减排。"),
		}
	case climateDelayAction:
		return Expectation{
			Effects:  Effects{FieldEconomicGrowth: 3},
			Thinking: thinkingFor(label, string(opt), "晚一年行动影响不大，先保经济增长。"),
		}
	default:
		return neutralExpectation()
	}
}

func (ClimateRuleset) ActualResult(turn int, decisions Decision, state Fields, history []HistoryEntry) ActualResult {
	opt := decodeClimateOption(decisionValue(decisions, ClimateDecisionPrefix, turn))
	risk := state[FieldClimateRisk]

	switch opt {
	case climateCarbonTax:
		backlash := 12.0
		if countHistory(history, ClimateDecisionPrefix, string(climateRenewable)) > 0 {
			backlash /= 2
		}
		return ActualResult{
			Effects: Effects{
				FieldResources:         ClimateTaxRevenue,
				FieldEmissionReduction: 8,
				FieldEconomicGrowth:    -2,
				FieldPublicSupport:     -backlash,
				FieldClimateRisk:       -3,
			},
			Narrative: "碳税带来了收入，但企业把成本转嫁给消费者，民众怨声载道。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 2, Effect: Effects{FieldEmissionReduction: 5}, Description: "企业完成了低碳改造"},
			},
		}
	case climateRenewable:
		return ActualResult{
			Effects: Effects{
				FieldResources:         -ClimateSubsidyBudget * ClimateSubsidyOverrun,
				FieldPublicSupport:     5,
				FieldEmissionReduction: 4,
			},
			Narrative: "补贴申请远超预期，预算出现超支，新装机容量还在建设中。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 2, Effect: Effects{FieldEmissionReduction: 10, FieldEconomicGrowth: 3}, Description: "新能源项目陆续并网"},
				{Turn: turn + 3, Effect: Effects{FieldClimateRisk: -5}, Description: "能源结构转型见效"},
			},
		}
	case climateTechTransfer:
		return ActualResult{
			Effects: Effects{
				FieldResources:     -ClimateTransferCost,
				FieldPublicSupport: -3,
			},
			Narrative: "技术引进需要消化吸收，短期内看不到任何减排效果。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 3, Effect: Effects{FieldEmissionReduction: 15, FieldClimateRisk: -8}, Description: "引进的技术实现规模化应用"},
			},
		}
	case climateDelayAction:
		increase := 5 + 5*float64(countHistory(history, ClimateDecisionPrefix, string(climateDelayAction)))
		if risk >= climateTippingRisk {
			increase += 10
		}
		return ActualResult{
			Effects: Effects{
				FieldClimateRisk:    increase,
				FieldPublicSupport:  3,
				FieldEconomicGrowth: 2,
			},
			Narrative: "经济短期得以喘息，但排放持续累积，风险在看不见的地方加速上升。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 1, Effect: Effects{FieldClimateRisk: 3, FieldResources: -pct(state, FieldResources, 0.1)}, Description: "极端天气造成的灾害损失"},
			},
		}
	default:
		return neutralResult()
	}
}
