package strategy

import (
	"fmt"

	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/shopspring/decimal"
)

// GirardinStrategy recommends an overseas industrial investment
// credit, a one-shot reduction bought at a discount. Reserved for
// callers with at least medium risk tolerance.
type GirardinStrategy struct {
	Rules Rules
}

func (s *GirardinStrategy) ID() string { return IDGirardin }

func (s *GirardinStrategy) Evaluate(result *domain.TaxCalculationResult, profile *domain.FiscalProfile, ctx *domain.OptimizationContext) (*domain.Recommendation, error) {
	if result.NetTax.LessThan(s.Rules.GirardinMinTax) {
		return nil, nil
	}
	if ctx == nil || !ctx.RiskTolerance.AtLeast(domain.RiskMedium) {
		return nil, nil
	}

	// Target reduction is capped both as a share of the tax and by a
	// floor that must remain payable.
	target := decimal.Min(
		result.NetTax.Mul(s.Rules.GirardinCapRatio),
		result.NetTax.Sub(s.Rules.GirardinTaxFloor),
	)
	if target.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	// The credit exceeds the ticket by the credit rate, so the net
	// gain is non-negative by construction.
	investment := target.Div(decimal.NewFromInt(1).Add(s.Rules.GirardinCreditRate))
	gain := target.Sub(investment)

	rec := &domain.Recommendation{
		ID:    s.ID(),
		Title: "Girardin industrial investment",
		Description: fmt.Sprintf(
			"A one-time subscription of %s buys a tax reduction of %s next year, a net gain of about %s (%s%% of the ticket).",
			investment.StringFixed(0), target.StringFixed(0), gain.StringFixed(0),
			s.Rules.GirardinCreditRate.Mul(decimal.NewFromInt(100)).StringFixed(0)),
		ImpactEstimated:    gain,
		Risk:               domain.RiskHigh,
		Complexity:         domain.ComplexityComplex,
		Confidence:         decimal.NewFromFloat(0.5),
		Category:           domain.CategoryInvestment,
		RequiredInvestment: &investment,
		Eligibility: []string{
			fmt.Sprintf("net tax of at least %s", s.Rules.GirardinMinTax.StringFixed(0)),
			"medium or high risk tolerance",
		},
		Warnings: []string{
			"the reduction is lost if the financed operation fails its five-year holding obligations",
			"operator selection matters more than the headline rate",
		},
	}
	return rec, nil
}
