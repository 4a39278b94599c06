package strategy

import (
	"fmt"

	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/shopspring/decimal"
)

// DeductionsStrategy bundles the simple credit opportunities the
// caller already has the expenses for: donations, childcare and home
// services. Each category has its own capped formula.
type DeductionsStrategy struct {
	Rules Rules
}

func (s *DeductionsStrategy) ID() string { return IDDeductions }

func (s *DeductionsStrategy) Evaluate(result *domain.TaxCalculationResult, profile *domain.FiscalProfile, ctx *domain.OptimizationContext) (*domain.Recommendation, error) {
	if ctx == nil {
		return nil, nil
	}

	total := decimal.Zero
	var parts []string

	if ctx.Donations.GreaterThan(decimal.Zero) {
		capped := decimal.Min(ctx.Donations, result.TaxableIncome.Mul(s.Rules.DonationCapRatio))
		saving := capped.Mul(s.Rules.DonationRate)
		if saving.GreaterThan(decimal.Zero) {
			total = total.Add(saving)
			parts = append(parts, fmt.Sprintf("donations: %s", saving.StringFixed(0)))
		}
	}

	if ctx.DependentsUnderCutoff > 0 && ctx.ChildcareExpenses.GreaterThan(decimal.Zero) {
		ceiling := s.Rules.ChildcareCeilingPerHead.Mul(decimal.NewFromInt(int64(ctx.DependentsUnderCutoff)))
		saving := decimal.Min(ctx.ChildcareExpenses, ceiling).Mul(s.Rules.ChildcareRate)
		if saving.GreaterThan(decimal.Zero) {
			total = total.Add(saving)
			parts = append(parts, fmt.Sprintf("childcare: %s", saving.StringFixed(0)))
		}
	}

	if ctx.HomeServicesExpenses.GreaterThan(decimal.Zero) {
		saving := decimal.Min(ctx.HomeServicesExpenses, s.Rules.HomeServicesCeiling).Mul(s.Rules.HomeServicesRate)
		if saving.GreaterThan(decimal.Zero) {
			total = total.Add(saving)
			parts = append(parts, fmt.Sprintf("home services: %s", saving.StringFixed(0)))
		}
	}

	if total.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	desc := "Declare the credits you already qualify for"
	for i, p := range parts {
		if i == 0 {
			desc += ": " + p
		} else {
			desc += ", " + p
		}
	}
	desc += "."

	rec := &domain.Recommendation{
		ID:              s.ID(),
		Title:           "Claim simple deductions and credits",
		Description:     desc,
		ImpactEstimated: total,
		Risk:            domain.RiskLow,
		Complexity:      domain.ComplexityEasy,
		Confidence:      decimal.NewFromFloat(0.95),
		Category:        domain.CategoryDeduction,
		Eligibility:     []string{"eligible expenses declared in the optimization context"},
	}
	return rec, nil
}
