package scenario

type businessOption string

const (
	businessNone                businessOption = ""
	businessRushToMarket        businessOption = "rush_to_market"
	businessThoroughTesting     businessOption = "thorough_testing"
	businessPartnership         businessOption = "strategic_partnership"
	businessRecall              businessOption = "product_recall"
	businessQuietPatch          businessOption = "quiet_patch"
	businessDenyIssue           businessOption = "deny_issue"
	businessAggressiveExpansion businessOption = "aggressive_expansion"
	businessInvestQuality       businessOption = "invest_quality"
	businessCostCutting         businessOption = "cost_cutting"
)

var businessLabels = map[string]string{
	string(businessRushToMarket):        "快速上市",
	string(businessThoroughTesting):     "充分测试后上市",
	string(businessPartnership):         "寻求战略合作",
	string(businessRecall):              "主动召回产品",
	string(businessQuietPatch):          "悄悄修补",
	string(businessDenyIssue):           "否认问题",
	string(businessAggressiveExpansion): "激进扩张",
	string(businessInvestQuality):       "投资产品质量",
	string(businessCostCutting):         "削减成本",
}

func decodeBusinessOption(v string) businessOption {
	switch o := businessOption(v); o {
	case businessRushToMarket, businessThoroughTesting, businessPartnership,
		businessRecall, businessQuietPatch, businessDenyIssue,
		businessAggressiveExpansion, businessInvestQuality, businessCostCutting:
		return o
	default:
		return businessNone
	}
}

// BusinessRuleset models a product launch: launch choice, quality crisis, growth.
type BusinessRuleset struct{}

func (BusinessRuleset) Family() Family { return FamilyBusiness }

// Fields lists every field the ruleset reads or writes.
func (BusinessRuleset) Fields() []string {
	return []string{
		FieldResources,
		FieldReputation,
		FieldMarketPosition,
		FieldProductQuality,
		FieldCompetitivePressure,
	}
}

func (BusinessRuleset) DecisionKey(turn int) string {
	return numberedKey(BusinessDecisionPrefix, turn)
}

func (r BusinessRuleset) Options(turn int) []Option {
	var values []businessOption
	switch {
	case turn <= 1:
		values = []businessOption{businessRushToMarket, businessThoroughTesting, businessPartnership}
	case turn == 2:
		values = []businessOption{businessRecall, businessQuietPatch, businessDenyIssue}
	default:
		values = []businessOption{businessAggressiveExpansion, businessInvestQuality, businessCostCutting}
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		ids = append(ids, string(v))
	}
	return optionsFor(r.DecisionKey(turn), ids, businessLabels)
}

func (BusinessRuleset) TerminalPolicy() TerminalPolicy {
	return TerminalPolicy{
		Bounds: percentBounds(FieldReputation, FieldMarketPosition, FieldProductQuality, FieldCompetitivePressure),
		Rules: []TerminalRule{
			{Field: FieldResources, Direction: DirectionBelow, Value: BusinessResourcesFloor, Reason: FieldResources},
			{Field: FieldReputation, Direction: DirectionBelow, Value: BusinessReputationFloor, Reason: FieldReputation},
		},
	}
}

func (BusinessRuleset) LinearExpectation(turn int, decisions Decision, state Fields) Expectation {
	opt := decodeBusinessOption(decisionValue(decisions, BusinessDecisionPrefix, turn))
	label := businessLabels[string(opt)]
	switch opt {
	case businessRushToMarket:
		return Expectation{
			Effects:  Effects{FieldResources: 3000, FieldMarketPosition: 20},
			Thinking: thinkingFor(label, string(opt), "越早上市就能越早赚钱，抢到的市场份额越多。"),
		}
	case businessThoroughTesting:
		return Expectation{
			Effects:  Effects{FieldResources: -2000, FieldProductQuality: 20, FieldMarketPosition: -5},
			Thinking: thinkingFor(label, string(opt), "多花一点测试费用，换来更好的质量，其他方面不受影响。"),
		}
	case businessPartnership:
		return Expectation{
			Effects:  Effects{FieldResources: -1000, FieldMarketPosition: 10, FieldReputation: 5},
			Thinking: thinkingFor(label, string(opt), "合作伙伴带来渠道，市场和声誉同步提升。"),
		}
	case businessRecall:
		return Expectation{
			Effects:  Effects{FieldResources: -2000, FieldReputation: 10},
			Thinking: thinkingFor(label, string(opt), "召回花钱，但声誉会按比例回升。"),
		}
	case businessQuietPatch:
		return Expectation{
			Effects:  Effects{FieldResources: -500},
			Thinking: thinkingFor(label, string(opt), "小修小补成本很低，没人会注意到。"),
		}
	case businessDenyIssue:
		return Expectation{
			Effects:  Effects{},
			Thinking: thinkingFor(label, string(opt), "只要不承认，问题就不会扩大。"),
		}
	case businessAggressiveExpansion:
		return Expectation{
			Effects:  Effects{FieldResources: 1000, FieldMarketPosition: 15},
			Thinking: thinkingFor(label, string(opt), "投入越多，回报越多，扩张马上见效。"),
		}
	case businessInvestQuality:
		return Expectation{
			Effects:  Effects{FieldResources: -2000, FieldProductQuality: 15, FieldReputation: 5},
			Thinking: thinkingFor(label, string(opt), "质量投入会立即转化为口碑。"),
		}
	case businessCostCutting:
		return Expectation{
			Effects:  Effects{FieldResources: 2000},
			Thinking: thinkingFor(label, string(opt), "省下来的钱就是赚到的钱。"),
		}
	default:
		return neutralExpectation()
	}
}

func (BusinessRuleset) ActualResult(turn int, decisions Decision, state Fields, history []HistoryEntry) ActualResult {
	opt := decodeBusinessOption(decisionValue(decisions, BusinessDecisionPrefix, turn))
	resources := state[FieldResources]
	quality := state[FieldProductQuality]
	launch := decodeBusinessOption(historyValue(history, BusinessDecisionPrefix, 1))

	switch opt {
	case businessRushToMarket:
		return ActualResult{
			Effects: Effects{
				FieldResources:           0.3*resources - BusinessLaunchCost,
				FieldMarketPosition:      12,
				FieldProductQuality:      -15,
				FieldReputation:          -5,
				FieldCompetitivePressure: 10,
			},
			Narrative: "产品抢先上市，短期收入可观，但仓促带来的质量隐患开始积累，竞争对手也迅速跟进。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 1, Effect: Effects{FieldReputation: -10}, Description: "用户开始大量投诉质量问题"},
				{Turn: turn + 2, Effect: Effects{FieldResources: -0.1 * resources}, Description: "退货与售后成本到账"},
			},
		}
	case businessThoroughTesting:
		return ActualResult{
			Effects: Effects{
				FieldResources:           -(BusinessTestingCost + 0.1*resources),
				FieldProductQuality:      20,
				FieldMarketPosition:      -8,
				FieldCompetitivePressure: 5,
			},
			Narrative: "测试周期比预想更长，竞争对手先一步进入市场，但产品质量扎实。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 2, Effect: Effects{FieldReputation: 10, FieldMarketPosition: 12}, Description: "良好口碑开始传播"},
			},
		}
	case businessPartnership:
		return ActualResult{
			Effects: Effects{
				FieldResources:      0.1*resources - BusinessPartnershipCost,
				FieldMarketPosition: 6,
				FieldReputation:     3,
			},
			Narrative: "合作带来了渠道，但谈判耗时，协同效果低于预期。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 2, Effect: Effects{FieldResources: -0.15 * resources, FieldCompetitivePressure: -5}, Description: "合作分成开始侵蚀利润"},
			},
		}
	case businessRecall:
		if launch == businessRushToMarket || quality < 45 {
			return ActualResult{
				Effects: Effects{
					FieldResources:      -BusinessRecallCost,
					FieldReputation:     15,
					FieldProductQuality: 10,
				},
				Narrative: "召回代价高昂，但坦诚的态度赢得了用户的原谅。",
				DelayedEffects: []DelayedEffect{
					{Turn: turn + 1, Effect: Effects{FieldMarketPosition: 5}, Description: "用户信任逐步恢复"},
				},
			}
		}
		return ActualResult{
			Effects: Effects{
				FieldResources:      -BusinessRecallCost,
				FieldReputation:     -5,
				FieldMarketPosition: -5,
			},
			Narrative: "产品本身并无严重缺陷，不必要的召回反而让市场怀疑你的质量。",
		}
	case businessQuietPatch:
		if launch == businessRushToMarket {
			return ActualResult{
				Effects:   Effects{FieldResources: -BusinessPatchCost, FieldReputation: -5},
				Narrative: "补丁暂时压住了投诉，但问题的根源仍在。",
				DelayedEffects: []DelayedEffect{
					{Turn: turn + 2, Effect: Effects{FieldReputation: -15}, Description: "媒体曝光了掩盖行为"},
				},
			}
		}
		return ActualResult{
			Effects:   Effects{FieldResources: -BusinessPatchCost, FieldReputation: 2},
			Narrative: "小问题被及时修复，用户几乎没有察觉。",
		}
	case businessDenyIssue:
		if launch == businessRushToMarket {
			return ActualResult{
				Effects:   Effects{FieldReputation: -10},
				Narrative: "否认激怒了受影响的用户，舆论迅速发酵。",
				DelayedEffects: []DelayedEffect{
					{Turn: turn + 1, Effect: Effects{FieldReputation: -20, FieldResources: -BusinessLawsuitCost}, Description: "集体诉讼与监管调查"},
				},
			}
		}
		return ActualResult{
			Effects:   Effects{FieldReputation: -3},
			Narrative: "否认显得傲慢，少数用户对品牌失去好感。",
		}
	case businessAggressiveExpansion:
		investment := 0.4 * resources
		return ActualResult{
			Effects: Effects{
				FieldResources:           -investment,
				FieldMarketPosition:      10 - state[FieldCompetitivePressure]/10,
				FieldCompetitivePressure: 10,
			},
			Narrative: "扩张占用了大量现金，回报要等市场消化之后才会出现。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 2, Effect: Effects{FieldResources: investment * quality / 60}, Description: "扩张回报取决于产品质量"},
			},
		}
	case businessInvestQuality:
		return ActualResult{
			Effects: Effects{
				FieldResources:      -(0.2*resources + 500),
				FieldProductQuality: 12 * (100 - quality) / 50,
			},
			Narrative: "质量提升是渐进的，越接近上限，每一分投入的回报越小。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 2, Effect: Effects{FieldReputation: 8, FieldMarketPosition: 5}, Description: "质量改进被市场认可"},
			},
		}
	case businessCostCutting:
		return ActualResult{
			Effects: Effects{
				FieldResources:      0.1 * resources,
				FieldProductQuality: -10,
				FieldReputation:     -3,
			},
			Narrative: "成本下降了，但团队士气和产品质量一起滑落。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 1, Effect: Effects{FieldMarketPosition: -8, FieldCompetitivePressure: 5}, Description: "核心人才流失到竞争对手"},
			},
		}
	default:
		return neutralResult()
	}
}
