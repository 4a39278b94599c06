package calculation

import (
	"github.com/fiscalio/fiscalio/internal/bareme"
	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/shopspring/decimal"
)

// ApplyBrackets applies a progressive marginal-rate schedule to an
// amount. Non-positive amounts are valid and yield zero tax.
func ApplyBrackets(amount decimal.Decimal, brackets []bareme.Bracket) decimal.Decimal {
	total, _ := walkBrackets(amount, brackets, false)
	return total
}

// ApplyBracketsDetailed is the audit variant: same walk, same totals,
// plus one line per traversed bracket.
func ApplyBracketsDetailed(amount decimal.Decimal, brackets []bareme.Bracket) (decimal.Decimal, []domain.BracketLine) {
	return walkBrackets(amount, brackets, true)
}

// walkBrackets is the single bracket-walk implementation. The plain
// variant simply skips accumulating the detail list; both paths share
// the arithmetic so they cannot diverge.
func walkBrackets(amount decimal.Decimal, brackets []bareme.Bracket, detailed bool) (decimal.Decimal, []domain.BracketLine) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	var total decimal.Decimal
	var lines []domain.BracketLine
	lower := decimal.Zero

	for _, br := range brackets {
		upper := amount
		if br.UpperBound != nil {
			upper = decimal.Min(amount, *br.UpperBound)
		}
		if upper.LessThanOrEqual(lower) {
			break
		}

		slice := upper.Sub(lower)
		tax := slice.Mul(br.Rate)
		total = total.Add(tax)
		if detailed {
			lines = append(lines, domain.BracketLine{Rate: br.Rate, Income: slice, Tax: tax})
		}

		if br.UpperBound == nil || amount.LessThanOrEqual(*br.UpperBound) {
			break
		}
		lower = *br.UpperBound
	}

	return total, lines
}

// MarginalRate returns the rate of the highest bracket the amount
// reaches (the TMI). Zero for non-positive amounts.
func MarginalRate(amount decimal.Decimal, brackets []bareme.Bracket) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	rate := decimal.Zero
	lower := decimal.Zero
	for _, br := range brackets {
		if amount.GreaterThan(lower) {
			rate = br.Rate
		}
		if br.UpperBound == nil || amount.LessThanOrEqual(*br.UpperBound) {
			break
		}
		lower = *br.UpperBound
	}
	return rate
}
