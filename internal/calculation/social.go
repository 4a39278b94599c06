package calculation

import (
	"github.com/fiscalio/fiscalio/internal/bareme"
	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/shopspring/decimal"
)

// SocialCalculator computes the expected social contributions of an
// independent activity and the delta against what was already paid.
// Contributions depend on the activity category only, never on the
// accounting regime.
type SocialCalculator struct {
	Bareme *bareme.Bareme
}

// NewSocialCalculator creates a social-contribution calculator
func NewSocialCalculator(b *bareme.Bareme) *SocialCalculator {
	return &SocialCalculator{Bareme: b}
}

// Compute returns the expected contributions on the gross revenue.
// A missing category rate fails the calculation instead of defaulting.
func (sc *SocialCalculator) Compute(ca decimal.Decimal, category domain.ActivityCategory, paid decimal.Decimal) (domain.SocialDetail, error) {
	// No independent activity: nothing expected, nothing to reconcile.
	if ca.LessThanOrEqual(decimal.Zero) {
		return domain.SocialDetail{Paid: paid}, nil
	}

	rate, err := sc.Bareme.SocialRate(category)
	if err != nil {
		return domain.SocialDetail{}, err
	}

	expected := ca.Mul(rate)
	return domain.SocialDetail{
		Category: category,
		Rate:     rate,
		Expected: expected,
		Paid:     paid,
		Delta:    expected.Sub(paid),
	}, nil
}
