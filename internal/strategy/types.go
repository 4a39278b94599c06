package strategy

import (
	"github.com/fiscalio/fiscalio/internal/domain"
)

// Strategy identifiers, also used by the interaction table
const (
	IDRegimeChange    = "regime_change"
	IDPERContribution = "per_contribution"
	IDRentalLMNP      = "rental_lmnp"
	IDGirardin        = "girardin_industrial"
	IDFCPI            = "fcpi_innovation"
	IDDeductions      = "simple_deductions"
	IDStructureChange = "structure_change"
)

// Strategy is one pluggable optimization evaluator. Evaluate is a pure
// function of an immutable calculation result, the profile and the
// caller context; it returns nil when the strategy does not apply.
type Strategy interface {
	ID() string
	Evaluate(result *domain.TaxCalculationResult, profile *domain.FiscalProfile, ctx *domain.OptimizationContext) (*domain.Recommendation, error)
}
