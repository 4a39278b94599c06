package calculation

import (
	"github.com/fiscalio/fiscalio/internal/bareme"
	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/shopspring/decimal"
)

// QuotientResult is the outcome of the family-quotient computation.
// The bracket lines are household amounts (per-share lines scaled back
// by the share count) so their sum equals GrossTax before capping.
type QuotientResult struct {
	GrossTax       decimal.Decimal
	IncomePerShare decimal.Decimal
	MarginalRate   decimal.Decimal
	Capped         bool
	Brackets       []domain.BracketLine
}

// QuotientCalculator splits taxable income into fiscal shares, applies
// the progressive schedule per share, multiplies back and caps the
// family benefit per additional half-share.
type QuotientCalculator struct {
	Bareme *bareme.Bareme
}

// NewQuotientCalculator creates a quotient calculator bound to a bareme
func NewQuotientCalculator(b *bareme.Bareme) *QuotientCalculator {
	return &QuotientCalculator{Bareme: b}
}

// Compute returns the gross household tax after quotient capping.
// shares must be >= the baseline for the situation (validated upstream);
// when shares equal the baseline no capping applies.
func (qc *QuotientCalculator) Compute(taxableIncome, shares decimal.Decimal, situation domain.FamilySituation) QuotientResult {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return QuotientResult{}
	}

	perShare := taxableIncome.Div(shares)
	perShareTax, perShareLines := ApplyBracketsDetailed(perShare, qc.Bareme.IncomeTax)
	grossTax := perShareTax.Mul(shares)

	lines := make([]domain.BracketLine, len(perShareLines))
	for i, l := range perShareLines {
		lines[i] = domain.BracketLine{
			Rate:   l.Rate,
			Income: l.Income.Mul(shares),
			Tax:    l.Tax.Mul(shares),
		}
	}

	result := QuotientResult{
		GrossTax:       grossTax,
		IncomePerShare: perShare,
		MarginalRate:   MarginalRate(perShare, qc.Bareme.IncomeTax),
		Brackets:       lines,
	}

	baseline := situation.BaselineShares()
	if shares.LessThanOrEqual(baseline) {
		return result
	}

	// Cap the quotient benefit: the advantage over the baseline-share
	// computation cannot exceed the per-half-share ceiling.
	baselineTax := ApplyBrackets(taxableIncome.Div(baseline), qc.Bareme.IncomeTax).Mul(baseline)
	benefit := baselineTax.Sub(grossTax)
	halfShares := shares.Sub(baseline).Mul(decimal.NewFromInt(2))
	maxBenefit := halfShares.Mul(qc.Bareme.QuotientCap)

	if benefit.GreaterThan(maxBenefit) {
		result.GrossTax = baselineTax.Sub(maxBenefit)
		result.Capped = true
	}

	return result
}
