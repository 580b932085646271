package scenario

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// deviationEpsilon is the smallest gap reported in the deviation section.
const deviationEpsilon = 0.05

var feedbackLanguage = language.SimplifiedChinese

var fieldLabels = map[string]string{
	FieldResources:           "资源",
	FieldReputation:          "声誉",
	FieldMarketPosition:      "市场地位",
	FieldProductQuality:      "产品质量",
	FieldCompetitivePressure: "竞争压力",
	FieldFinancialKnowledge:  "理财知识",
	FieldDebt:                "负债",
	FieldRiskExposure:        "风险敞口",
	FieldEmissionReduction:   "减排进度",
	FieldPublicSupport:       "公众支持",
	FieldClimateRisk:         "气候风险",
	FieldEconomicGrowth:      "经济增长",
	FieldSocialStability:     "社会稳定",
	FieldInequality:          "不平等程度",
}

func FieldLabel(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// GenerateFeedback renders the turn header, the actual-result section and the
// deviation analysis between the naive expectation and what happened.
func GenerateFeedback(turn int, exp Expectation, actual ActualResult, narrative string) string {
	p := message.NewPrinter(feedbackLanguage)
	var b strings.Builder

	b.WriteString(p.Sprintf("【第%d回合结果】\n\n", turn))

	b.WriteString("你的预期：\n")
	if exp.Thinking != "" {
		b.WriteString(exp.Thinking)
		b.WriteString("\n")
	}
	writeEffects(&b, p, exp.Effects)

	b.WriteString("\n实际结果：\n")
	if narrative != "" {
		b.WriteString(narrative)
		b.WriteString("\n")
	}
	writeEffects(&b, p, actual.Effects)

	b.WriteString("\n偏差分析：\n")
	writeDeviation(&b, p, exp.Effects, actual.Effects)

	if len(actual.DelayedEffects) > 0 {
		b.WriteString("\n延迟影响：\n")
		for _, d := range actual.DelayedEffects {
			b.WriteString(p.Sprintf("  · 第%d回合：%s", d.Turn, d.Description))
			if len(d.Effect) > 0 {
				b.WriteString("（")
				b.WriteString(joinEffects(p, d.Effect))
				b.WriteString("）")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeEffects(b *strings.Builder, p *message.Printer, eff Effects) {
	if len(eff) == 0 {
		b.WriteString("  · 无直接变化\n")
		return
	}
	for _, field := range eff.SortedKeys() {
		b.WriteString("  · ")
		b.WriteString(FieldLabel(field))
		b.WriteString(" ")
		b.WriteString(signed(p, eff[field]))
		b.WriteString("\n")
	}
}

func writeDeviation(b *strings.Builder, p *message.Printer, expected, actual Effects) {
	seen := map[string]struct{}{}
	for k := range expected {
		seen[k] = struct{}{}
	}
	for k := range actual {
		seen[k] = struct{}{}
	}
	fields := make([]string, 0, len(seen))
	for k := range seen {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	var (
		largestField string
		largestGap   float64
	)
	for _, field := range fields {
		gap := actual[field] - expected[field]
		if math.Abs(gap) < deviationEpsilon {
			continue
		}
		b.WriteString(p.Sprintf("  · %s：预期 %s，实际 %s，偏差 %s\n",
			FieldLabel(field), signed(p, expected[field]), signed(p, actual[field]), signed(p, gap)))
		if math.Abs(gap) > math.Abs(largestGap) {
			largestField, largestGap = field, gap
		}
	}
	if largestField == "" {
		b.WriteString("  · 预期与实际基本一致。\n")
		return
	}
	b.WriteString(p.Sprintf("  最大的偏差出现在「%s」。线性预期忽略了复利、反馈与时间滞后。\n", FieldLabel(largestField)))
}

func joinEffects(p *message.Printer, eff Effects) string {
	parts := make([]string, 0, len(eff))
	for _, field := range eff.SortedKeys() {
		parts = append(parts, FieldLabel(field)+" "+signed(p, eff[field]))
	}
	return strings.Join(parts, "，")
}

func signed(p *message.Printer, v float64) string {
	sign := "+"
	if v < 0 {
		sign = "-"
	}
	return sign + p.Sprintf("%v", number.Decimal(math.Abs(v), number.MaxFractionDigits(1)))
}
