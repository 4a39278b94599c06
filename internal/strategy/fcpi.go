package strategy

import (
	"fmt"

	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/shopspring/decimal"
)

// FCPIStrategy recommends an innovation-fund subscription whose credit
// rate applies up to a ceiling set by the filing status.
type FCPIStrategy struct {
	Rules Rules
}

func (s *FCPIStrategy) ID() string { return IDFCPI }

func (s *FCPIStrategy) Evaluate(result *domain.TaxCalculationResult, profile *domain.FiscalProfile, ctx *domain.OptimizationContext) (*domain.Recommendation, error) {
	if result.NetTax.LessThan(s.Rules.FCPIMinTax) {
		return nil, nil
	}

	ceiling := s.Rules.FCPICeilingSingle
	if profile.Situation == domain.SituationJoint {
		ceiling = s.Rules.FCPICeilingJoint
	}
	contribution := ceiling
	if ctx != nil && ctx.InvestmentCapacity.GreaterThan(decimal.Zero) {
		contribution = decimal.Min(ctx.InvestmentCapacity, ceiling)
	}
	if contribution.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	impact := contribution.Mul(s.Rules.FCPICreditRate)

	rec := &domain.Recommendation{
		ID:    s.ID(),
		Title: "Subscribe to an innovation fund (FCPI)",
		Description: fmt.Sprintf(
			"A subscription of %s earns an income-tax reduction of %s (%s%% of the amount, ceiling %s for your filing status).",
			contribution.StringFixed(0), impact.StringFixed(0),
			s.Rules.FCPICreditRate.Mul(decimal.NewFromInt(100)).StringFixed(0),
			ceiling.StringFixed(0)),
		ImpactEstimated:    impact,
		Risk:               domain.RiskHigh,
		Complexity:         domain.ComplexityModerate,
		Confidence:         decimal.NewFromFloat(0.6),
		Category:           domain.CategoryInvestment,
		RequiredInvestment: &contribution,
		Eligibility: []string{
			fmt.Sprintf("net tax of at least %s", s.Rules.FCPIMinTax.StringFixed(0)),
		},
		Warnings: []string{"capital is at risk and locked for the fund's lifetime, typically 7 to 10 years"},
	}
	return rec, nil
}
