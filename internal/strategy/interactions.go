package strategy

import (
	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultInteractions declares the pairwise relationships between the
// built-in strategies. Conflicting recommendations are not both summed
// at face value: the smaller impact is scaled by the modifier when the
// potential-savings total is computed.
func DefaultInteractions() []domain.StrategyInteraction {
	return []domain.StrategyInteraction{
		// Both consume the same investment capacity; only one ticket fits.
		{A: IDRentalLMNP, B: IDGirardin, Kind: domain.InteractionConflict, ImpactModifier: decimal.Zero},
		// Changing regime and incorporating are mutually exclusive paths.
		{A: IDRegimeChange, B: IDStructureChange, Kind: domain.InteractionConflict, ImpactModifier: decimal.Zero},
		// A PER contribution lowers the TMI the rental payoff is priced at.
		{A: IDPERContribution, B: IDRentalLMNP, Kind: domain.InteractionDependency, ImpactModifier: decimal.NewFromFloat(0.8)},
		// A PER contribution shrinks the net tax the Girardin target is capped by.
		{A: IDPERContribution, B: IDGirardin, Kind: domain.InteractionDependency, ImpactModifier: decimal.NewFromFloat(0.8)},
		// Credits stack: FCPI and simple deductions reinforce each other.
		{A: IDFCPI, B: IDDeductions, Kind: domain.InteractionSynergy, ImpactModifier: decimal.NewFromInt(1)},
	}
}

// findInteraction returns the declared interaction between two strategy
// ids, defaulting to neutral.
func findInteraction(interactions []domain.StrategyInteraction, a, b string) domain.StrategyInteraction {
	for _, si := range interactions {
		if si.Matches(a, b) {
			return si
		}
	}
	return domain.StrategyInteraction{A: a, B: b, Kind: domain.InteractionNeutral, ImpactModifier: decimal.NewFromInt(1)}
}
