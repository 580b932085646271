package scenario

import "math"

type financeOption string

const (
	financeNone        financeOption = ""
	financeIndexFund   financeOption = "index_fund"
	financeSpeculative financeOption = "speculative_stock"
	financeLeveraged   financeOption = "leveraged_investment"
	financeEducation   financeOption = "financial_education"
	financePayDownDebt financeOption = "pay_down_debt"
)

var financeLabels = map[string]string{
	string(financeIndexFund):   "定投指数基金",
	string(financeSpeculative): "追涨热门股票",
	string(financeLeveraged):   "加杠杆投资",
	string(financeEducation):   "学习理财知识",
	string(financePayDownDebt): "提前还债",
}

func decodeFinanceOption(v string) financeOption {
	switch o := financeOption(v); o {
	case financeIndexFund, financeSpeculative, financeLeveraged, financeEducation, financePayDownDebt:
		return o
	default:
		return financeNone
	}
}

// FinanceRuleset models personal investing where returns compound and arrive late.
type FinanceRuleset struct{}

func (FinanceRuleset) Family() Family { return FamilyFinance }

func (FinanceRuleset) Fields() []string {
	return []string{
		FieldResources,
		FieldFinancialKnowledge,
		FieldDebt,
		FieldRiskExposure,
	}
}

func (FinanceRuleset) DecisionKey(turn int) string {
	return numberedKey(FinanceDecisionPrefix, turn)
}

func (r FinanceRuleset) Options(turn int) []Option {
	return optionsFor(r.DecisionKey(turn), []string{
		string(financeIndexFund),
		string(financeSpeculative),
		string(financeLeveraged),
		string(financeEducation),
		string(financePayDownDebt),
	}, financeLabels)
}

func (FinanceRuleset) TerminalPolicy() TerminalPolicy {
	bounds := percentBounds(FieldFinancialKnowledge, FieldRiskExposure)
	bounds[FieldDebt] = Min(0)
	return TerminalPolicy{
		Bounds: bounds,
		Rules: []TerminalRule{
			{Field: FieldResources, Direction: DirectionBelow, Value: FinanceResourcesFloor, Reason: FieldResources},
			{Field: FieldDebt, Direction: DirectionAbove, Value: FinanceDebtCeiling, Reason: FieldDebt},
		},
	}
}

func (FinanceRuleset) LinearExpectation(turn int, decisions Decision, state Fields) Expectation {
	opt := decodeFinanceOption(decisionValue(decisions, FinanceDecisionPrefix, turn))
	label := financeLabels[string(opt)]
	switch opt {
	case financeIndexFund:
		return Expectation{
			Effects:  Effects{FieldResources: pct(state, FieldResources, 0.1)},
			Thinking: thinkingFor(label, string(opt), "年化百分之十，钱马上就能涨起来。"),
		}
	case financeSpeculative:
		return Expectation{
			Effects:  Effects{FieldResources: pct(state, FieldResources, 0.3)},
			Thinking: thinkingFor(label, string(opt), "最近涨得这么好，继续买进一定还能赚。"),
		}
	case financeLeveraged:
		loan := pct(state, FieldResources, FinanceLeverageLoanShare)
		return Expectation{
			Effects: Effects{
				FieldResources: 0.2 * (state[FieldResources] + loan),
				FieldDebt:      loan,
			},
			Thinking: thinkingFor(label, string(opt), "借来的钱也能赚钱，本金越大收益越大。"),
		}
	case financeEducation:
		return Expectation{
			Effects:  Effects{FieldResources: -FinanceEducationCost, FieldFinancialKnowledge: 10},
			Thinking: thinkingFor(label, string(opt), "花钱学习只是一笔开销，知识不会马上变成钱。"),
		}
	case financePayDownDebt:
		payment := debtPayment(state)
		return Expectation{
			Effects:  Effects{FieldResources: -payment, FieldDebt: -payment},
			Thinking: thinkingFor(label, string(opt), "还多少债就少多少钱，一进一出而已。"),
		}
	default:
		return neutralExpectation()
	}
}

func (FinanceRuleset) ActualResult(turn int, decisions Decision, state Fields, history []HistoryEntry) ActualResult {
	opt := decodeFinanceOption(decisionValue(decisions, FinanceDecisionPrefix, turn))
	resources := state[FieldResources]
	knowledge := state[FieldFinancialKnowledge]

	switch opt {
	case financeIndexFund:
		invested := resources * FinanceIndexAllocation
		return ActualResult{
			Effects: Effects{
				FieldResources:    -0.005 * resources,
				FieldRiskExposure: 5,
			},
			Narrative: "基金账户刚开始几乎没有波动，扣掉手续费后甚至略有亏损。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 1, Effect: Effects{FieldResources: invested * 0.04}, Description: "第一年的温和收益"},
				{Turn: turn + 2, Effect: Effects{FieldResources: invested * 0.1, FieldFinancialKnowledge: 5}, Description: "复利开始显现"},
			},
		}
	case financeSpeculative:
		loss := FinanceSpeculativeDrawdown * 0.5 * resources * (1 - clampRange(knowledge, 0, 100)/200)
		if countHistory(history, FinanceDecisionPrefix, string(financeEducation)) > 0 {
			loss *= 0.6
		}
		return ActualResult{
			Effects: Effects{
				FieldResources:    0.05 * resources,
				FieldRiskExposure: 20,
			},
			Narrative: "买入后股价短暂上涨，你觉得自己的判断得到了验证。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 1, Effect: Effects{FieldResources: -loss}, Description: "热度退去，股价大幅回撤"},
			},
		}
	case financeLeveraged:
		loan := resources * FinanceLeverageLoanShare
		followUp := Effects{FieldResources: 0.1 * loan}
		description := "杠杆在顺风中放大了收益"
		if state[FieldRiskExposure] >= 50 {
			followUp = Effects{FieldResources: -0.15 * loan, FieldRiskExposure: 10}
			description = "市场下跌触发追加保证金"
		}
		return ActualResult{
			Effects: Effects{
				FieldResources:    0.1 * loan,
				FieldDebt:         loan,
				FieldRiskExposure: 25,
			},
			Narrative: "贷款到账，账面收益看起来不错，但利息从下个月开始计算。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 1, Effect: Effects{FieldResources: -loan * FinanceLeverageInterest}, Description: "贷款利息"},
				{Turn: turn + 2, Effect: followUp, Description: description},
			},
		}
	case financeEducation:
		return ActualResult{
			Effects: Effects{
				FieldResources:          -FinanceEducationCost,
				FieldFinancialKnowledge: 10 * (100 - clampRange(knowledge, 0, 100)) / 50,
			},
			Narrative: "课程内容比想象中扎实，你开始意识到以前的很多操作是在赌博。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 2, Effect: Effects{FieldResources: 0.02 * resources, FieldRiskExposure: -5}, Description: "更理性的配置减少了损失"},
			},
		}
	case financePayDownDebt:
		payment := debtPayment(state)
		return ActualResult{
			Effects: Effects{
				FieldResources:    -payment,
				FieldDebt:         -payment,
				FieldRiskExposure: -10,
			},
			Narrative: "债务减少了，现金流也随之轻松了一些。",
			DelayedEffects: []DelayedEffect{
				{Turn: turn + 1, Effect: Effects{FieldResources: payment * FinanceLeverageInterest}, Description: "省下的利息"},
			},
		}
	default:
		return neutralResult()
	}
}

func debtPayment(state Fields) float64 {
	return math.Max(0, math.Min(state[FieldDebt], 0.3*state[FieldResources]))
}
