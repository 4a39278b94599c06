package regime

import (
	"fmt"

	"github.com/fiscalio/fiscalio/internal/bareme"
	"github.com/fiscalio/fiscalio/internal/calculation"
	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/shopspring/decimal"
)

// Comparison is the outcome of a micro vs. réel comparison. Totals
// combine income tax and social contributions; contributions are the
// same under both regimes, only the taxable base moves.
type Comparison struct {
	CurrentRegime   domain.Regime   `json:"currentRegime"`
	AlternateRegime domain.Regime   `json:"alternateRegime"`
	MicroBase       decimal.Decimal `json:"microBase"`
	ReelBase        decimal.Decimal `json:"reelBase"`
	MicroTax        decimal.Decimal `json:"microTax"`
	ReelTax         decimal.Decimal `json:"reelTax"`
	Contributions   decimal.Decimal `json:"contributions"`
	MicroTotal      decimal.Decimal `json:"microTotal"`
	ReelTotal       decimal.Decimal `json:"reelTotal"`
	Savings         decimal.Decimal `json:"savings"`
	Material        bool            `json:"material"`
	Recommended     domain.Regime   `json:"recommended,omitempty"`
	Warnings        []string        `json:"warnings,omitempty"`
}

// Comparator computes the household tax under both accounting regimes
// and recommends the cheaper one when the difference is material.
type Comparator struct {
	Bareme   *bareme.Bareme
	Quotient *calculation.QuotientCalculator
	Social   *calculation.SocialCalculator
}

// NewComparator creates a comparator bound to a bareme
func NewComparator(b *bareme.Bareme) *Comparator {
	return &Comparator{
		Bareme:   b,
		Quotient: calculation.NewQuotientCalculator(b),
		Social:   calculation.NewSocialCalculator(b),
	}
}

// Compare evaluates both regimes for an independent profile. The
// abatement and the CA-threshold warning read the same configured
// micro-regime entry, never separate literals.
func (c *Comparator) Compare(profile *domain.FiscalProfile) (*Comparison, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if !profile.IsIndependent() {
		return nil, &domain.ValidationError{Field: "income.professional_gross", Reason: "regime comparison requires an independent activity"}
	}

	micro, err := c.Bareme.Micro(profile.Category)
	if err != nil {
		return nil, err
	}

	ca := profile.Income.ProfessionalGross
	microBase := ca.Mul(decimal.NewFromInt(1).Sub(micro.Abatement))
	reelBase := decimal.Max(decimal.Zero, ca.Sub(profile.Income.DeductibleExpenses))

	// Non-professional income is identical in both branches; only the
	// professional base differs, so both taxable incomes shift by the
	// same offset.
	other := profile.Income.Salary.Add(profile.Income.Rental).Add(profile.Income.Capital).
		Sub(profile.Deductions.Alimony).Sub(profile.Deductions.Other)

	microTax := c.Quotient.Compute(decimal.Max(decimal.Zero, microBase.Add(other)), profile.Shares, profile.Situation).GrossTax
	reelTax := c.Quotient.Compute(decimal.Max(decimal.Zero, reelBase.Add(other)), profile.Shares, profile.Situation).GrossTax

	social, err := c.Social.Compute(ca, profile.Category, profile.SocialPaid)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{
		CurrentRegime: profile.Regime,
		MicroBase:     microBase,
		ReelBase:      reelBase,
		MicroTax:      microTax,
		ReelTax:       reelTax,
		Contributions: social.Expected,
		MicroTotal:    microTax.Add(social.Expected),
		ReelTotal:     reelTax.Add(social.Expected),
	}
	if profile.Regime == domain.RegimeMicro {
		cmp.AlternateRegime = domain.RegimeReel
	} else {
		cmp.AlternateRegime = domain.RegimeMicro
	}

	diff := cmp.MicroTotal.Sub(cmp.ReelTotal).Abs()
	cmp.Savings = diff
	if diff.GreaterThan(c.Bareme.RegimeMateriality) {
		cmp.Material = true
		if cmp.MicroTotal.LessThan(cmp.ReelTotal) {
			cmp.Recommended = domain.RegimeMicro
		} else {
			cmp.Recommended = domain.RegimeReel
		}
	}

	if ca.GreaterThan(micro.CAThreshold) {
		cmp.Warnings = append(cmp.Warnings, fmt.Sprintf(
			"revenue %s exceeds the micro-regime ceiling %s for %s: the micro option is not sustainable",
			ca.StringFixed(0), micro.CAThreshold.StringFixed(0), profile.Category))
	} else if ca.GreaterThan(micro.CAThreshold.Mul(decimal.NewFromFloat(0.9))) {
		cmp.Warnings = append(cmp.Warnings, fmt.Sprintf(
			"revenue %s is within 10%% of the micro-regime ceiling %s for %s",
			ca.StringFixed(0), micro.CAThreshold.StringFixed(0), profile.Category))
	}

	return cmp, nil
}

// RegimeSavings returns how much switching away from the current
// regime would save per year; zero when the current one is already the
// cheaper or the difference is immaterial.
func (cmp *Comparison) RegimeSavings() decimal.Decimal {
	if !cmp.Material || cmp.Recommended == cmp.CurrentRegime {
		return decimal.Zero
	}
	return cmp.Savings
}
