package calculation

import (
	"github.com/fiscalio/fiscalio/internal/bareme"
	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine orchestrates a full tax calculation for one fiscal profile.
// It is stateless per call: the bareme is the only retained value and
// it is immutable, so concurrent calls are safe without locking.
type Engine struct {
	Bareme   *bareme.Bareme
	Quotient *QuotientCalculator
	PER      *PERCalculator
	Surtax   *SurtaxCalculator
	Social   *SocialCalculator
	Logger   Logger
}

// NewEngine creates an engine bound to one fiscal year's bareme
func NewEngine(b *bareme.Bareme) *Engine {
	return &Engine{
		Bareme:   b,
		Quotient: NewQuotientCalculator(b),
		PER:      NewPERCalculator(b),
		Surtax:   NewSurtaxCalculator(b),
		Social:   NewSocialCalculator(b),
		Logger:   NopLogger{},
	}
}

// SetLogger replaces the engine logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// ProfessionalBase returns the taxable base of the independent
// activity under the profile's regime: CA minus the flat-rate
// abatement under micro, CA minus declared expenses under réel.
func (e *Engine) ProfessionalBase(profile *domain.FiscalProfile) (decimal.Decimal, error) {
	if !profile.IsIndependent() {
		return decimal.Zero, nil
	}
	ca := profile.Income.ProfessionalGross

	if profile.Regime == domain.RegimeReel {
		base := ca.Sub(profile.Income.DeductibleExpenses)
		if base.LessThan(decimal.Zero) {
			base = decimal.Zero
		}
		return base, nil
	}

	micro, err := e.Bareme.Micro(profile.Category)
	if err != nil {
		return decimal.Zero, err
	}
	return ca.Mul(decimal.NewFromInt(1).Sub(micro.Abatement)), nil
}

// Calculate runs the full pipeline: taxable income, quotient, PER,
// surtaxes on the RFR, social-contribution delta and the amount due.
// The result is request-scoped and immutable once returned.
func (e *Engine) Calculate(profile *domain.FiscalProfile) (*domain.TaxCalculationResult, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	professionalBase, err := e.ProfessionalBase(profile)
	if err != nil {
		return nil, err
	}

	// RFR: net categorial income before voluntary deductions. This is
	// the base of both surtaxes and can exceed the taxable income.
	rfr := professionalBase.
		Add(profile.Income.Salary).
		Add(profile.Income.Rental).
		Add(profile.Income.Capital)

	// PER ceiling is driven by professional income: the gross revenue
	// for independents, the salary otherwise.
	perIncome := profile.Income.ProfessionalGross
	if !profile.IsIndependent() {
		perIncome = profile.Income.Salary
	}
	ceiling := e.PER.Ceiling(perIncome, profile.IsIndependent())
	per := e.PER.Apply(profile.Deductions.PERContributions, ceiling)
	if per.Excess.GreaterThan(decimal.Zero) {
		e.Logger.Warnf("PER contributions exceed ceiling by %s", per.Excess.StringFixed(2))
	}

	taxable := rfr.
		Sub(per.Applied).
		Sub(profile.Deductions.Alimony).
		Sub(profile.Deductions.Other)
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}

	quotient := e.Quotient.Compute(taxable, profile.Shares, profile.Situation)

	// No credits are modeled at this stage; net equals gross. Strategy
	// evaluators estimate credits as recommendations, not as acquired
	// reductions.
	netTax := quotient.GrossTax

	cehr, err := e.Surtax.CEHR(rfr, profile.Situation)
	if err != nil {
		return nil, err
	}
	cdhr, err := e.Surtax.CDHR(rfr, netTax, cehr.Amount, profile.Situation)
	if err != nil {
		return nil, err
	}

	social, err := e.Social.Compute(profile.Income.ProfessionalGross, profile.Category, profile.SocialPaid)
	if err != nil {
		return nil, err
	}

	amountDue := netTax.
		Add(cehr.Amount).
		Add(cdhr.Amount).
		Add(social.Delta).
		Sub(profile.Withheld)

	e.Logger.Debugf("calculated year %d: taxable=%s gross=%s tmi=%s",
		e.Bareme.Year, taxable.StringFixed(0), quotient.GrossTax.StringFixed(0), quotient.MarginalRate.String())

	return &domain.TaxCalculationResult{
		Year:            e.Bareme.Year,
		TaxableIncome:   taxable,
		ReferenceIncome: rfr,
		Shares:          profile.Shares,
		IncomePerShare:  quotient.IncomePerShare,
		GrossTax:        quotient.GrossTax,
		NetTax:          netTax,
		MarginalRate:    quotient.MarginalRate,
		QuotientCapped:  quotient.Capped,
		Brackets:        quotient.Brackets,
		PER:             per,
		CEHR:            cehr,
		CDHR:            cdhr,
		Social:          social,
		AmountDue:       amountDue,
	}, nil
}
