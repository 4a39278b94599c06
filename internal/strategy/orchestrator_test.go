package strategy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalio/fiscalio/internal/bareme"
	"github.com/fiscalio/fiscalio/internal/calculation"
	"github.com/fiscalio/fiscalio/internal/domain"
)

// stubStrategy returns a fixed recommendation, for testing the
// ranking and aggregation independently of the real evaluators.
type stubStrategy struct {
	id         string
	impact     decimal.Decimal
	complexity domain.ComplexityTier
	skip       bool
}

func (s *stubStrategy) ID() string { return s.id }

func (s *stubStrategy) Evaluate(result *domain.TaxCalculationResult, profile *domain.FiscalProfile, ctx *domain.OptimizationContext) (*domain.Recommendation, error) {
	if s.skip {
		return nil, nil
	}
	return &domain.Recommendation{
		ID:              s.id,
		Title:           s.id,
		ImpactEstimated: s.impact,
		Risk:            domain.RiskLow,
		Complexity:      s.complexity,
		Category:        domain.CategoryDeduction,
	}, nil
}

func stubOrchestrator(strategies []Strategy, interactions []domain.StrategyInteraction) *Orchestrator {
	return &Orchestrator{
		Strategies:   strategies,
		Interactions: interactions,
		Rules:        DefaultRules(),
		Logger:       calculation.NopLogger{},
	}
}

func TestOptimizeRanking(t *testing.T) {
	o := stubOrchestrator([]Strategy{
		&stubStrategy{id: "small", impact: decimal.NewFromInt(500), complexity: domain.ComplexityEasy},
		&stubStrategy{id: "big", impact: decimal.NewFromInt(5000), complexity: domain.ComplexityComplex},
		&stubStrategy{id: "medium", impact: decimal.NewFromInt(2000), complexity: domain.ComplexityEasy},
	}, nil)

	opt, err := o.Optimize(&domain.TaxCalculationResult{}, &domain.FiscalProfile{}, nil)
	require.NoError(t, err)

	require.Len(t, opt.Recommendations, 3)
	assert.Equal(t, "big", opt.Recommendations[0].ID)
	assert.Equal(t, "medium", opt.Recommendations[1].ID)
	assert.Equal(t, "small", opt.Recommendations[2].ID)
}

func TestOptimizeTieBreaks(t *testing.T) {
	impact := decimal.NewFromInt(1000)

	t.Run("lower complexity first", func(t *testing.T) {
		o := stubOrchestrator([]Strategy{
			&stubStrategy{id: "hard", impact: impact, complexity: domain.ComplexityComplex},
			&stubStrategy{id: "easy", impact: impact, complexity: domain.ComplexityEasy},
		}, nil)

		opt, err := o.Optimize(&domain.TaxCalculationResult{}, &domain.FiscalProfile{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "easy", opt.Recommendations[0].ID)
		assert.Equal(t, "hard", opt.Recommendations[1].ID)
	})

	t.Run("registration order breaks full ties", func(t *testing.T) {
		o := stubOrchestrator([]Strategy{
			&stubStrategy{id: "first", impact: impact, complexity: domain.ComplexityEasy},
			&stubStrategy{id: "second", impact: impact, complexity: domain.ComplexityEasy},
		}, nil)

		opt, err := o.Optimize(&domain.TaxCalculationResult{}, &domain.FiscalProfile{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "first", opt.Recommendations[0].ID)
		assert.Equal(t, "second", opt.Recommendations[1].ID)
	})
}

func TestOptimizeConflictNotDoubleCounted(t *testing.T) {
	o := stubOrchestrator([]Strategy{
		&stubStrategy{id: "winner", impact: decimal.NewFromInt(3000), complexity: domain.ComplexityEasy},
		&stubStrategy{id: "loser", impact: decimal.NewFromInt(1000), complexity: domain.ComplexityEasy},
	}, []domain.StrategyInteraction{
		{A: "winner", B: "loser", Kind: domain.InteractionConflict, ImpactModifier: decimal.Zero},
	})

	opt, err := o.Optimize(&domain.TaxCalculationResult{}, &domain.FiscalProfile{}, nil)
	require.NoError(t, err)

	// Both recommendations survive, but the conflicting smaller one
	// contributes nothing to the potential-savings total.
	require.Len(t, opt.Recommendations, 2)
	assert.True(t, opt.PotentialSavingsTotal.Equal(decimal.NewFromInt(3000)), "total = %s", opt.PotentialSavingsTotal)
}

func TestOptimizeDependencyScalesImpact(t *testing.T) {
	o := stubOrchestrator([]Strategy{
		&stubStrategy{id: "base", impact: decimal.NewFromInt(2000), complexity: domain.ComplexityEasy},
		&stubStrategy{id: "dependent", impact: decimal.NewFromInt(1000), complexity: domain.ComplexityEasy},
	}, []domain.StrategyInteraction{
		{A: "base", B: "dependent", Kind: domain.InteractionDependency, ImpactModifier: decimal.NewFromFloat(0.8)},
	})

	opt, err := o.Optimize(&domain.TaxCalculationResult{}, &domain.FiscalProfile{}, nil)
	require.NoError(t, err)

	// 2000 + 1000 x 0.8
	assert.True(t, opt.PotentialSavingsTotal.Equal(decimal.NewFromInt(2800)), "total = %s", opt.PotentialSavingsTotal)
}

func TestOptimizeSynergyCountsInFull(t *testing.T) {
	o := stubOrchestrator([]Strategy{
		&stubStrategy{id: "a", impact: decimal.NewFromInt(2000), complexity: domain.ComplexityEasy},
		&stubStrategy{id: "b", impact: decimal.NewFromInt(1000), complexity: domain.ComplexityEasy},
	}, []domain.StrategyInteraction{
		{A: "a", B: "b", Kind: domain.InteractionSynergy, ImpactModifier: decimal.NewFromInt(1)},
	})

	opt, err := o.Optimize(&domain.TaxCalculationResult{}, &domain.FiscalProfile{}, nil)
	require.NoError(t, err)
	assert.True(t, opt.PotentialSavingsTotal.Equal(decimal.NewFromInt(3000)))
}

func TestOptimizeEmptyAndCounts(t *testing.T) {
	t.Run("no strategies fire", func(t *testing.T) {
		o := stubOrchestrator([]Strategy{
			&stubStrategy{id: "quiet", skip: true},
		}, nil)

		opt, err := o.Optimize(&domain.TaxCalculationResult{}, &domain.FiscalProfile{}, nil)
		require.NoError(t, err)
		assert.Empty(t, opt.Recommendations)
		assert.True(t, opt.PotentialSavingsTotal.IsZero())
		assert.Contains(t, opt.Summary, "No optimization opportunity")
	})

	t.Run("high priority counting", func(t *testing.T) {
		o := stubOrchestrator([]Strategy{
			&stubStrategy{id: "big", impact: decimal.NewFromInt(4000), complexity: domain.ComplexityEasy},
			&stubStrategy{id: "small", impact: decimal.NewFromInt(200), complexity: domain.ComplexityEasy},
		}, nil)

		opt, err := o.Optimize(&domain.TaxCalculationResult{}, &domain.FiscalProfile{}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, opt.HighPriorityCount)
		assert.Equal(t, 2, opt.CountsByCategory[domain.CategoryDeduction])
		assert.Equal(t, 2, opt.CountsByRisk[domain.RiskLow])
	})
}

func TestOptimizeRejectsInvalidContext(t *testing.T) {
	o := NewOrchestrator(bareme.Default2025(), DefaultRules())

	ctx := &domain.OptimizationContext{RiskTolerance: "reckless"}
	_, err := o.Optimize(&domain.TaxCalculationResult{}, &domain.FiscalProfile{}, ctx)
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestOptimizeEndToEndDeterministic(t *testing.T) {
	b := bareme.Default2025()
	profile := reelBNCProfile(150000, 60000)
	result := calculateFor(t, profile)
	ctx := &domain.OptimizationContext{
		RiskTolerance:      domain.RiskHigh,
		InvestmentCapacity: decimal.NewFromInt(60000),
	}

	o := NewOrchestrator(b, DefaultRules())

	first, err := o.Optimize(result, profile, ctx)
	require.NoError(t, err)
	second, err := o.Optimize(result, profile, ctx)
	require.NoError(t, err)

	// Identical inputs produce an identical ordering every run.
	require.Equal(t, len(first.Recommendations), len(second.Recommendations))
	for i := range first.Recommendations {
		assert.Equal(t, first.Recommendations[i].ID, second.Recommendations[i].ID)
		assert.True(t, first.Recommendations[i].ImpactEstimated.Equal(second.Recommendations[i].ImpactEstimated))
	}
	assert.True(t, first.PotentialSavingsTotal.Equal(second.PotentialSavingsTotal))

	// This profile trips PER, rental, Girardin, FCPI and the structure
	// change; réel is already the cheaper regime and no simple-credit
	// expenses are declared.
	ids := make([]string, len(first.Recommendations))
	for i, rec := range first.Recommendations {
		ids[i] = rec.ID
	}
	assert.ElementsMatch(t, []string{
		IDPERContribution, IDRentalLMNP, IDGirardin, IDFCPI, IDStructureChange,
	}, ids)

	// Impacts are sorted descending.
	for i := 1; i < len(first.Recommendations); i++ {
		assert.False(t, first.Recommendations[i].ImpactEstimated.GreaterThan(first.Recommendations[i-1].ImpactEstimated))
	}

	// The rental and Girardin tickets conflict, so the total stays
	// below the naive sum of the impacts.
	naive := decimal.Zero
	for _, rec := range first.Recommendations {
		naive = naive.Add(rec.ImpactEstimated)
	}
	assert.True(t, first.PotentialSavingsTotal.LessThan(naive))
}
