package calculation

import (
	"github.com/fiscalio/fiscalio/internal/bareme"
	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/shopspring/decimal"
)

// SurtaxCalculator applies the two high-income surtaxes. Both key off
// the reference income (RFR), not the taxable income used for the
// ordinary bracket computation.
type SurtaxCalculator struct {
	Bareme *bareme.Bareme
}

// NewSurtaxCalculator creates a surtax calculator bound to a bareme
func NewSurtaxCalculator(b *bareme.Bareme) *SurtaxCalculator {
	return &SurtaxCalculator{Bareme: b}
}

// CEHR applies the high-income contribution schedule to the RFR. The
// table is selected by filing status alone: a single parent with two
// or more shares is still assessed on the single table.
// A negative RFR is structurally impossible upstream and is treated as
// a defect, not clamped.
func (sc *SurtaxCalculator) CEHR(rfr decimal.Decimal, situation domain.FamilySituation) (domain.CEHRDetail, error) {
	if rfr.LessThan(decimal.Zero) {
		return domain.CEHRDetail{}, &domain.DomainInvariantError{Op: "cehr", Reason: "negative reference income"}
	}

	amount, lines := ApplyBracketsDetailed(rfr, sc.Bareme.CEHRBrackets(situation))
	return domain.CEHRDetail{Amount: amount, Brackets: lines}, nil
}

// CDHR enforces the minimum effective tax rate on high reference
// incomes. ordinaryTax is the net income tax, cehr the CEHR amount;
// the surtax tops the combined burden up to the target rate whenever
// the RFR exceeds the floor for the filing status. Never negative.
func (sc *SurtaxCalculator) CDHR(rfr, ordinaryTax, cehr decimal.Decimal, situation domain.FamilySituation) (domain.CDHRDetail, error) {
	if rfr.LessThan(decimal.Zero) {
		return domain.CDHRDetail{}, &domain.DomainInvariantError{Op: "cdhr", Reason: "negative reference income"}
	}

	detail := domain.CDHRDetail{TargetRate: sc.Bareme.CDHR.TargetRate}
	if rfr.IsZero() || rfr.LessThan(sc.Bareme.CDHR.Floor(situation)) {
		return detail, nil
	}

	effective := ordinaryTax.Add(cehr).Div(rfr)
	detail.EffectiveRateBefore = effective
	if effective.GreaterThanOrEqual(sc.Bareme.CDHR.TargetRate) {
		return detail, nil
	}

	amount := rfr.Mul(sc.Bareme.CDHR.TargetRate.Sub(effective))
	if amount.LessThan(decimal.Zero) {
		amount = decimal.Zero
	}
	detail.Amount = amount
	detail.Applied = amount.GreaterThan(decimal.Zero)
	return detail, nil
}
