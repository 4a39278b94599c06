package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fiscalio/fiscalio/internal/bareme"
	"github.com/fiscalio/fiscalio/internal/domain"
)

func TestQuotientBaselineShares(t *testing.T) {
	qc := NewQuotientCalculator(bareme.Default2025())

	// At baseline shares the quotient computation is the plain schedule,
	// there is no benefit to cap.
	income := decimal.NewFromInt(50000)
	single := qc.Compute(income, decimal.NewFromInt(1), domain.SituationSingle)

	assert.True(t, single.GrossTax.Equal(ApplyBrackets(income, qc.Bareme.IncomeTax)))
	assert.False(t, single.Capped)
	assert.True(t, single.IncomePerShare.Equal(income))
}

func TestQuotientSplitsAcrossShares(t *testing.T) {
	qc := NewQuotientCalculator(bareme.Default2025())

	income := decimal.NewFromInt(60000)
	joint := qc.Compute(income, decimal.NewFromInt(2), domain.SituationJoint)

	// Two shares of 30000 each, both below the 41% bracket.
	perShare := ApplyBrackets(decimal.NewFromInt(30000), qc.Bareme.IncomeTax)
	assert.True(t, joint.GrossTax.Equal(perShare.Mul(decimal.NewFromInt(2))))
	assert.True(t, joint.MarginalRate.Equal(decimal.NewFromFloat(0.30)))
	assert.False(t, joint.Capped)
}

func TestQuotientCapEngages(t *testing.T) {
	qc := NewQuotientCalculator(bareme.Default2025())

	// Joint couple with two children: 3 shares, 2 additional half-shares.
	income := decimal.NewFromInt(120000)
	res := qc.Compute(income, decimal.NewFromInt(3), domain.SituationJoint)

	assert.True(t, res.Capped, "the quotient benefit should be capped at this income")

	// Uncapped benefit would be 6834.52; the cap allows 2 x 1791.
	baselineTax := ApplyBrackets(decimal.NewFromInt(60000), qc.Bareme.IncomeTax).Mul(decimal.NewFromInt(2))
	want := baselineTax.Sub(decimal.NewFromInt(2 * 1791))
	assert.True(t, res.GrossTax.Equal(want), "got %s, want %s", res.GrossTax, want)
}

func TestQuotientCapNotEngagedAtModestIncome(t *testing.T) {
	qc := NewQuotientCalculator(bareme.Default2025())

	res := qc.Compute(decimal.NewFromInt(40000), decimal.NewFromInt(3), domain.SituationJoint)
	assert.False(t, res.Capped)

	// Capping can only ever increase the tax back toward the baseline.
	uncapped := ApplyBrackets(decimal.NewFromFloat(40000.0/3), qc.Bareme.IncomeTax).Mul(decimal.NewFromInt(3))
	assert.True(t, res.GrossTax.Sub(uncapped).Abs().LessThan(decimal.NewFromFloat(0.01)))
}

func TestQuotientZeroIncome(t *testing.T) {
	qc := NewQuotientCalculator(bareme.Default2025())

	res := qc.Compute(decimal.Zero, decimal.NewFromInt(2), domain.SituationJoint)
	assert.True(t, res.GrossTax.IsZero())
	assert.True(t, res.MarginalRate.IsZero())
	assert.Empty(t, res.Brackets)
}

func TestQuotientBracketLinesAreHouseholdAmounts(t *testing.T) {
	qc := NewQuotientCalculator(bareme.Default2025())

	income := decimal.NewFromInt(60000)
	res := qc.Compute(income, decimal.NewFromInt(2), domain.SituationJoint)

	incomeSum := decimal.Zero
	taxSum := decimal.Zero
	for _, l := range res.Brackets {
		incomeSum = incomeSum.Add(l.Income)
		taxSum = taxSum.Add(l.Tax)
	}
	assert.True(t, incomeSum.Equal(income))
	assert.True(t, taxSum.Equal(res.GrossTax))
}
