package calculation

import (
	"github.com/fiscalio/fiscalio/internal/bareme"
	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/shopspring/decimal"
)

// PERCalculator computes the retirement-savings deduction ceiling and
// applies voluntary contributions against it. The floor and ceilings
// always come from the bareme, never from local constants.
type PERCalculator struct {
	Plafond bareme.PERPlafond
}

// NewPERCalculator creates a PER calculator from the bareme parameters
func NewPERCalculator(b *bareme.Bareme) *PERCalculator {
	return &PERCalculator{Plafond: b.PERPlafonds}
}

// Ceiling returns the deduction ceiling for the professional income:
// base_rate x income, clamped between the floor and the ceiling for
// the worker type.
func (pc *PERCalculator) Ceiling(professionalIncome decimal.Decimal, independent bool) decimal.Decimal {
	max := pc.Plafond.MaxSalarie
	if independent {
		max = pc.Plafond.MaxTNS
	}

	ceiling := professionalIncome.Mul(pc.Plafond.BaseRate)
	if ceiling.LessThan(pc.Plafond.MinPlafond) {
		ceiling = pc.Plafond.MinPlafond
	}
	if ceiling.GreaterThan(max) {
		ceiling = max
	}
	return ceiling
}

// Apply deducts contributions up to the ceiling. The excess is
// reported, not dropped: the caller surfaces it to the user.
func (pc *PERCalculator) Apply(contributions, ceiling decimal.Decimal) domain.PERDetail {
	applied := decimal.Min(contributions, ceiling)
	excess := decimal.Max(decimal.Zero, contributions.Sub(ceiling))
	return domain.PERDetail{Ceiling: ceiling, Applied: applied, Excess: excess}
}
