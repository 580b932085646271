package scenario

const (
	BusinessDecisionPrefix = "strategy_choice"
	FinanceDecisionPrefix  = "investment_choice"
	ClimateDecisionPrefix  = "climate_choice"
	PolicyDecisionPrefix   = "reform_choice"

	PercentFieldMin = 0
	PercentFieldMax = 100
	ResourcesMin    = 0

	BusinessResourcesFloor  = 1000
	BusinessReputationFloor = 10
	BusinessLaunchCost      = 1500
	BusinessTestingCost     = 1500
	BusinessPartnershipCost = 1000
	BusinessRecallCost      = 3000
	BusinessPatchCost       = 800
	BusinessLawsuitCost     = 2000

	FinanceResourcesFloor      = 1000
	FinanceDebtCeiling         = 300000
	FinanceEducationCost       = 3000
	FinanceIndexAllocation     = 0.5
	FinanceLeverageLoanShare   = 0.5
	FinanceLeverageInterest    = 0.08
	FinanceSpeculativeDrawdown = 0.25

	ClimateRiskCeiling        = 90
	ClimateResourcesFloor     = 1000
	ClimatePublicSupportFloor = 10
	ClimateTaxRevenue         = 8000
	ClimateSubsidyBudget      = 20000
	ClimateSubsidyOverrun     = 1.3
	ClimateTransferCost       = 15000

	PolicyResourcesFloor     = 500
	PolicyReputationFloor    = 10
	PolicyPublicSupportFloor = 10
	PolicySubsidyCost        = 12000
	PolicyReformCost         = 6000
	PolicyConsultationCost   = 1500
)

func percentBounds(fields ...string) map[string]Bound {
	out := make(map[string]Bound, len(fields)+1)
	for _, f := range fields {
		out[f] = MinMax(PercentFieldMin, PercentFieldMax)
	}
	out[FieldResources] = Min(ResourcesMin)
	return out
}
