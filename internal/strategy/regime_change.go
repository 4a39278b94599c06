package strategy

import (
	"fmt"

	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/fiscalio/fiscalio/internal/regime"
	"github.com/shopspring/decimal"
)

// RegimeChangeStrategy recommends switching accounting regimes when
// the comparator finds a material saving.
type RegimeChangeStrategy struct {
	Comparator *regime.Comparator
}

func (s *RegimeChangeStrategy) ID() string { return IDRegimeChange }

func (s *RegimeChangeStrategy) Evaluate(result *domain.TaxCalculationResult, profile *domain.FiscalProfile, ctx *domain.OptimizationContext) (*domain.Recommendation, error) {
	if !profile.IsIndependent() {
		return nil, nil
	}

	cmp, err := s.Comparator.Compare(profile)
	if err != nil {
		return nil, err
	}
	savings := cmp.RegimeSavings()
	if savings.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	rec := &domain.Recommendation{
		ID:    s.ID(),
		Title: fmt.Sprintf("Switch to the %s regime", cmp.Recommended),
		Description: fmt.Sprintf(
			"Under the %s regime the combined tax and contributions come to %s instead of %s, saving %s per year.",
			cmp.Recommended, decimal.Min(cmp.MicroTotal, cmp.ReelTotal).StringFixed(0),
			decimal.Max(cmp.MicroTotal, cmp.ReelTotal).StringFixed(0), savings.StringFixed(0)),
		ImpactEstimated: savings,
		Risk:            domain.RiskLow,
		Complexity:      domain.ComplexityModerate,
		Confidence:      decimal.NewFromFloat(0.9),
		Category:        domain.CategoryRegime,
		Eligibility:     []string{"independent activity declared", "material difference between regimes"},
		Warnings:        cmp.Warnings,
	}
	return rec, nil
}
