package strategy

import (
	"fmt"

	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/shopspring/decimal"
)

// StructureStrategy flags profiles whose revenue and expense ratio
// suggest incorporating. The payoff is qualitative: an estimated
// differential, not a guaranteed saving.
type StructureStrategy struct {
	Rules Rules
}

func (s *StructureStrategy) ID() string { return IDStructureChange }

func (s *StructureStrategy) Evaluate(result *domain.TaxCalculationResult, profile *domain.FiscalProfile, ctx *domain.OptimizationContext) (*domain.Recommendation, error) {
	if !profile.IsIndependent() {
		return nil, nil
	}
	ca := profile.Income.ProfessionalGross
	if ca.LessThan(s.Rules.StructureCAThreshold) {
		return nil, nil
	}
	ratio := profile.Income.DeductibleExpenses.Div(ca)
	if ratio.LessThan(s.Rules.StructureExpenseRatio) {
		return nil, nil
	}

	estimate := result.NetTax.Add(result.Social.Expected).Mul(s.Rules.StructureEstimateRatio)

	rec := &domain.Recommendation{
		ID:    s.ID(),
		Title: "Consider incorporating (SASU or EURL)",
		Description: fmt.Sprintf(
			"With revenue of %s and an expense ratio of %s%%, a corporate structure could rebalance salary and dividends; the differential is estimated around %s per year but depends on the remuneration mix.",
			ca.StringFixed(0), ratio.Mul(decimal.NewFromInt(100)).StringFixed(0), estimate.StringFixed(0)),
		ImpactEstimated: estimate,
		Risk:            domain.RiskMedium,
		Complexity:      domain.ComplexityComplex,
		Confidence:      decimal.NewFromFloat(0.4),
		Category:        domain.CategoryStructure,
		Eligibility: []string{
			fmt.Sprintf("revenue of at least %s", s.Rules.StructureCAThreshold.StringFixed(0)),
			fmt.Sprintf("expense ratio of at least %s%%", s.Rules.StructureExpenseRatio.Mul(decimal.NewFromInt(100)).StringFixed(0)),
		},
		Warnings: []string{
			"requires accounting and legal setup costs that the estimate does not include",
			"a chartered accountant should model the exact remuneration mix",
		},
	}
	return rec, nil
}
