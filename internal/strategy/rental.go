package strategy

import (
	"fmt"

	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/shopspring/decimal"
)

// RentalStrategy recommends furnished-rental (LMNP) status for high
// marginal rates with enough investment capacity.
type RentalStrategy struct {
	Rules Rules
}

func (s *RentalStrategy) ID() string { return IDRentalLMNP }

func (s *RentalStrategy) Evaluate(result *domain.TaxCalculationResult, profile *domain.FiscalProfile, ctx *domain.OptimizationContext) (*domain.Recommendation, error) {
	if result.MarginalRate.LessThan(s.Rules.RentalTMIThreshold) {
		return nil, nil
	}
	if ctx == nil || ctx.InvestmentCapacity.LessThan(s.Rules.RentalMinInvestment) {
		return nil, nil
	}

	investment := ctx.InvestmentCapacity
	impact := investment.
		Mul(s.Rules.RentalAssumedYield).
		Mul(result.MarginalRate).
		Mul(s.Rules.RentalAmortizationFactor)

	rec := &domain.Recommendation{
		ID:    s.ID(),
		Title: "Invest in furnished rental under LMNP status",
		Description: fmt.Sprintf(
			"An investment of %s at an assumed %s%% yield, with amortization sheltering the rents, avoids about %s of tax per year at your marginal rate.",
			investment.StringFixed(0),
			s.Rules.RentalAssumedYield.Mul(decimal.NewFromInt(100)).StringFixed(0),
			impact.StringFixed(0)),
		ImpactEstimated:    impact,
		Risk:               domain.RiskMedium,
		Complexity:         domain.ComplexityComplex,
		Confidence:         decimal.NewFromFloat(0.6),
		Category:           domain.CategoryInvestment,
		RequiredInvestment: &investment,
		Eligibility: []string{
			fmt.Sprintf("marginal rate at or above %s%%", s.Rules.RentalTMIThreshold.Mul(decimal.NewFromInt(100)).StringFixed(0)),
			fmt.Sprintf("investment capacity of at least %s", s.Rules.RentalMinInvestment.StringFixed(0)),
		},
		Warnings: []string{"rental income, vacancy and resale risks are not guaranteed by the estimate"},
	}
	if !ctx.StableIncome {
		rec.Warnings = append(rec.Warnings, "a leveraged long-term commitment is fragile without a stable income")
	}
	return rec, nil
}
