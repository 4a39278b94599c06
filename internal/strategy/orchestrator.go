package strategy

import (
	"fmt"
	"sort"

	"github.com/fiscalio/fiscalio/internal/bareme"
	"github.com/fiscalio/fiscalio/internal/calculation"
	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/fiscalio/fiscalio/internal/regime"
	"github.com/shopspring/decimal"
)

// Orchestrator runs every registered strategy against the same
// immutable calculation result and aggregates the survivors. Ordering
// is fully deterministic: impact descending, ties broken by ascending
// complexity, then by registration order.
type Orchestrator struct {
	Strategies   []Strategy
	Interactions []domain.StrategyInteraction
	Rules        Rules
	Logger       calculation.Logger
}

// NewOrchestrator builds the default strategy set for a bareme
func NewOrchestrator(b *bareme.Bareme, rules Rules) *Orchestrator {
	return &Orchestrator{
		Strategies: []Strategy{
			&RegimeChangeStrategy{Comparator: regime.NewComparator(b)},
			&PERStrategy{Rules: rules},
			&RentalStrategy{Rules: rules},
			&GirardinStrategy{Rules: rules},
			&FCPIStrategy{Rules: rules},
			&DeductionsStrategy{Rules: rules},
			&StructureStrategy{Rules: rules},
		},
		Interactions: DefaultInteractions(),
		Rules:        rules,
		Logger:       calculation.NopLogger{},
	}
}

// Optimize evaluates, ranks and summarizes the recommendations
func (o *Orchestrator) Optimize(result *domain.TaxCalculationResult, profile *domain.FiscalProfile, ctx *domain.OptimizationContext) (*domain.OptimizationResult, error) {
	if ctx != nil {
		if err := ctx.Validate(); err != nil {
			return nil, err
		}
	}

	recs := make([]domain.Recommendation, 0, len(o.Strategies))
	for _, s := range o.Strategies {
		rec, err := s.Evaluate(result, profile, ctx)
		if err != nil {
			return nil, fmt.Errorf("strategy %s failed: %w", s.ID(), err)
		}
		if rec == nil {
			continue
		}
		recs = append(recs, *rec)
	}

	// Registration order is the final tie-break, preserved by the
	// stable sort.
	sort.SliceStable(recs, func(i, j int) bool {
		if !recs[i].ImpactEstimated.Equal(recs[j].ImpactEstimated) {
			return recs[i].ImpactEstimated.GreaterThan(recs[j].ImpactEstimated)
		}
		return recs[i].Complexity.Rank() < recs[j].Complexity.Rank()
	})

	out := &domain.OptimizationResult{
		Recommendations:  recs,
		CountsByCategory: map[domain.RecommendationCategory]int{},
		CountsByRisk:     map[domain.RiskTier]int{},
	}

	// A recommendation linked by conflict or dependency to an already
	// counted, higher-impact one contributes only its modified impact.
	total := decimal.Zero
	counted := []string{}
	for _, rec := range recs {
		modifier := decimal.NewFromInt(1)
		for _, prior := range counted {
			si := findInteraction(o.Interactions, rec.ID, prior)
			switch si.Kind {
			case domain.InteractionConflict, domain.InteractionDependency:
				if si.ImpactModifier.LessThan(modifier) {
					modifier = si.ImpactModifier
				}
			}
		}
		total = total.Add(rec.ImpactEstimated.Mul(modifier))
		counted = append(counted, rec.ID)

		if rec.ImpactEstimated.GreaterThanOrEqual(o.Rules.HighPriorityFloor) {
			out.HighPriorityCount++
		}
		out.CountsByCategory[rec.Category]++
		out.CountsByRisk[rec.Risk]++
	}
	out.PotentialSavingsTotal = total

	switch len(recs) {
	case 0:
		out.Summary = "No optimization opportunity identified for this profile."
	case 1:
		out.Summary = fmt.Sprintf("1 recommendation, potential savings around %s per year.", total.StringFixed(0))
	default:
		out.Summary = fmt.Sprintf("%d recommendations, combined potential savings around %s per year (%d high priority).",
			len(recs), total.StringFixed(0), out.HighPriorityCount)
	}

	o.Logger.Infof("optimization produced %d recommendations, total %s", len(recs), total.StringFixed(0))
	return out, nil
}
