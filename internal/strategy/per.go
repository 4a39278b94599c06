package strategy

import (
	"fmt"

	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/shopspring/decimal"
)

// PERStrategy recommends filling the unused retirement-savings
// deduction ceiling when the marginal rate makes it worthwhile.
type PERStrategy struct {
	Rules Rules
}

func (s *PERStrategy) ID() string { return IDPERContribution }

func (s *PERStrategy) Evaluate(result *domain.TaxCalculationResult, profile *domain.FiscalProfile, ctx *domain.OptimizationContext) (*domain.Recommendation, error) {
	if result.MarginalRate.LessThan(s.Rules.PERTMIThreshold) {
		return nil, nil
	}
	unused := result.PER.Ceiling.Sub(result.PER.Applied)
	if ctx != nil {
		// Contributions to other PER envelopes consume the same ceiling.
		unused = unused.Sub(ctx.ExistingPERContributions)
	}
	if unused.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	// Two tiers: a cautious partial fill and the full ceiling. The
	// savings estimate is deduction x TMI; the full tier is the scored
	// impact, the partial tier goes into the description.
	full := unused.Mul(result.MarginalRate)
	partialAmount := unused.Mul(s.Rules.PERPartialTier)
	partial := partialAmount.Mul(result.MarginalRate)

	rec := &domain.Recommendation{
		ID:    s.ID(),
		Title: "Contribute to a PER up to the deduction ceiling",
		Description: fmt.Sprintf(
			"You have %s of unused PER deduction ceiling at a %s%% marginal rate. Contributing the full amount saves about %s; a %s%% tier (%s) still saves %s.",
			unused.StringFixed(0),
			result.MarginalRate.Mul(decimal.NewFromInt(100)).StringFixed(0),
			full.StringFixed(0),
			s.Rules.PERPartialTier.Mul(decimal.NewFromInt(100)).StringFixed(0),
			partialAmount.StringFixed(0),
			partial.StringFixed(0)),
		ImpactEstimated: full,
		Risk:            domain.RiskLow,
		Complexity:      domain.ComplexityEasy,
		Confidence:      decimal.NewFromFloat(0.95),
		Category:        domain.CategoryDeduction,
		Eligibility: []string{
			fmt.Sprintf("marginal rate at or above %s%%", s.Rules.PERTMIThreshold.Mul(decimal.NewFromInt(100)).StringFixed(0)),
			"unused deduction ceiling available",
		},
		Warnings: []string{"funds are locked until retirement outside the statutory early-release cases"},
	}
	if result.PER.Excess.GreaterThan(decimal.Zero) {
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("current contributions already exceed the ceiling by %s", result.PER.Excess.StringFixed(0)))
	}
	return rec, nil
}
