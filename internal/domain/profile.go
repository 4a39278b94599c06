package domain

import (
	"github.com/shopspring/decimal"
)

// FamilySituation is the household filing status
type FamilySituation string

const (
	SituationSingle FamilySituation = "single"
	SituationJoint  FamilySituation = "joint"
)

// BaselineShares returns the fiscal share count the household would have
// without dependents: 1 for a single filer, 2 for a joint declaration.
func (fs FamilySituation) BaselineShares() decimal.Decimal {
	if fs == SituationJoint {
		return decimal.NewFromInt(2)
	}
	return decimal.NewFromInt(1)
}

// ActivityCategory is the micro-regime activity classification that
// selects the abatement and social-contribution rates.
type ActivityCategory string

const (
	CategoryBICVente   ActivityCategory = "bic_vente"
	CategoryBICService ActivityCategory = "bic_service"
	CategoryBNC        ActivityCategory = "bnc"
)

// Regime is the small-business accounting regime in force for the profile
type Regime string

const (
	RegimeMicro Regime = "micro"
	RegimeReel  Regime = "reel"
)

// IncomeSources groups the declared income of the household.
// ProfessionalGross is the gross revenue (CA) of the independent
// activity before any abatement or expense deduction.
type IncomeSources struct {
	ProfessionalGross  decimal.Decimal `yaml:"professional_gross" json:"professionalGross"`
	Salary             decimal.Decimal `yaml:"salary" json:"salary"`
	Rental             decimal.Decimal `yaml:"rental" json:"rental"`
	Capital            decimal.Decimal `yaml:"capital" json:"capital"`
	DeductibleExpenses decimal.Decimal `yaml:"deductible_expenses" json:"deductibleExpenses"`
}

// Deductions groups the voluntary deductions claimed by the household
type Deductions struct {
	PERContributions decimal.Decimal `yaml:"per_contributions" json:"perContributions"`
	Alimony          decimal.Decimal `yaml:"alimony" json:"alimony"`
	Other            decimal.Decimal `yaml:"other" json:"other"`
}

// FiscalProfile is the per-request input of the calculation engine.
// It is constructed from caller input, validated once, and discarded
// after the calculation completes.
type FiscalProfile struct {
	Name       string           `yaml:"name" json:"name"`
	FiscalYear int              `yaml:"fiscal_year" json:"fiscalYear"`
	Situation  FamilySituation  `yaml:"situation" json:"situation"`
	Shares     decimal.Decimal  `yaml:"shares" json:"shares"`
	Dependents int              `yaml:"dependents" json:"dependents"`
	Regime     Regime           `yaml:"regime" json:"regime"`
	Category   ActivityCategory `yaml:"category" json:"category"`
	Income     IncomeSources    `yaml:"income" json:"income"`
	Deductions Deductions       `yaml:"deductions" json:"deductions"`
	SocialPaid decimal.Decimal  `yaml:"social_paid" json:"socialPaid"`
	Withheld   decimal.Decimal  `yaml:"withheld" json:"withheld"`
}

// Validate rejects structurally invalid profiles before any computation
// begins. Monetary fields must be non-negative and shares at least 1.
func (fp *FiscalProfile) Validate() error {
	if fp.Situation != SituationSingle && fp.Situation != SituationJoint {
		return &ValidationError{Field: "situation", Reason: "must be 'single' or 'joint'"}
	}
	if fp.Shares.LessThan(decimal.NewFromInt(1)) {
		return &ValidationError{Field: "shares", Reason: "fiscal shares must be at least 1"}
	}
	if fp.Shares.LessThan(fp.Situation.BaselineShares()) {
		return &ValidationError{Field: "shares", Reason: "fiscal shares cannot be below the baseline for the family situation"}
	}
	if fp.Dependents < 0 {
		return &ValidationError{Field: "dependents", Reason: "cannot be negative"}
	}
	switch fp.Regime {
	case RegimeMicro, RegimeReel:
	default:
		return &ValidationError{Field: "regime", Reason: "must be 'micro' or 'reel'"}
	}
	if fp.Income.ProfessionalGross.GreaterThan(decimal.Zero) {
		switch fp.Category {
		case CategoryBICVente, CategoryBICService, CategoryBNC:
		default:
			return &ValidationError{Field: "category", Reason: "activity category is required when professional income is declared"}
		}
	}

	monetary := []struct {
		field string
		value decimal.Decimal
	}{
		{"income.professional_gross", fp.Income.ProfessionalGross},
		{"income.salary", fp.Income.Salary},
		{"income.rental", fp.Income.Rental},
		{"income.capital", fp.Income.Capital},
		{"income.deductible_expenses", fp.Income.DeductibleExpenses},
		{"deductions.per_contributions", fp.Deductions.PERContributions},
		{"deductions.alimony", fp.Deductions.Alimony},
		{"deductions.other", fp.Deductions.Other},
		{"social_paid", fp.SocialPaid},
		{"withheld", fp.Withheld},
	}
	for _, m := range monetary {
		if m.value.LessThan(decimal.Zero) {
			return &ValidationError{Field: m.field, Reason: "cannot be negative"}
		}
	}

	return nil
}

// IsIndependent reports whether the profile declares an independent activity
func (fp *FiscalProfile) IsIndependent() bool {
	return fp.Income.ProfessionalGross.GreaterThan(decimal.Zero)
}
