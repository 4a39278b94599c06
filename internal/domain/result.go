package domain

import (
	"github.com/shopspring/decimal"
)

// BracketLine records the slice of income taxed in one bracket of a
// progressive schedule, for audit and explanation purposes.
type BracketLine struct {
	Rate   decimal.Decimal `json:"rate"`
	Income decimal.Decimal `json:"income"`
	Tax    decimal.Decimal `json:"tax"`
}

// PERDetail reports how the voluntary retirement contributions were
// applied against the deduction ceiling. Excess is never silently
// dropped: the caller surfaces it to the end user.
type PERDetail struct {
	Ceiling decimal.Decimal `json:"ceiling"`
	Applied decimal.Decimal `json:"applied"`
	Excess  decimal.Decimal `json:"excess"`
}

// CEHRDetail reports the high-income contribution computed on the RFR
type CEHRDetail struct {
	Amount   decimal.Decimal `json:"amount"`
	Brackets []BracketLine   `json:"brackets,omitempty"`
}

// CDHRDetail reports the minimum-effective-rate surtax on the RFR.
// EffectiveRateBefore is (ordinary tax + CEHR) / RFR; the surtax tops
// the burden up to TargetRate when the household is above the floor.
type CDHRDetail struct {
	Amount              decimal.Decimal `json:"amount"`
	TargetRate          decimal.Decimal `json:"targetRate"`
	EffectiveRateBefore decimal.Decimal `json:"effectiveRateBefore"`
	Applied             bool            `json:"applied"`
}

// SocialDetail compares expected social contributions for the activity
// against what the profile declares as already paid.
type SocialDetail struct {
	Category ActivityCategory `json:"category,omitempty"`
	Rate     decimal.Decimal  `json:"rate"`
	Expected decimal.Decimal  `json:"expected"`
	Paid     decimal.Decimal  `json:"paid"`
	Delta    decimal.Decimal  `json:"delta"`
}

// TaxCalculationResult is the output of one calculation request. It is
// produced once, never mutated after construction, and is the sole
// input of the regime comparator and every optimization strategy.
type TaxCalculationResult struct {
	Year            int             `json:"year"`
	TaxableIncome   decimal.Decimal `json:"taxableIncome"`
	ReferenceIncome decimal.Decimal `json:"referenceIncome"`
	Shares          decimal.Decimal `json:"shares"`
	IncomePerShare  decimal.Decimal `json:"incomePerShare"`
	GrossTax        decimal.Decimal `json:"grossTax"`
	NetTax          decimal.Decimal `json:"netTax"`
	MarginalRate    decimal.Decimal `json:"marginalRate"`
	QuotientCapped  bool            `json:"quotientCapped"`
	Brackets        []BracketLine   `json:"brackets,omitempty"`
	PER             PERDetail       `json:"per"`
	CEHR            CEHRDetail      `json:"cehr"`
	CDHR            CDHRDetail      `json:"cdhr"`
	Social          SocialDetail    `json:"social"`
	AmountDue       decimal.Decimal `json:"amountDue"`
}

// TotalSurtaxes returns CEHR + CDHR
func (r *TaxCalculationResult) TotalSurtaxes() decimal.Decimal {
	return r.CEHR.Amount.Add(r.CDHR.Amount)
}
