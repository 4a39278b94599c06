package domain

import (
	"github.com/shopspring/decimal"
)

// RiskTier classifies how much risk a recommendation carries
type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// AtLeast reports whether the tier is at or above the given tier
func (rt RiskTier) AtLeast(other RiskTier) bool {
	return rt.rank() >= other.rank()
}

func (rt RiskTier) rank() int {
	switch rt {
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	default:
		return 0
	}
}

// ComplexityTier classifies how involved implementing a recommendation is
type ComplexityTier string

const (
	ComplexityEasy     ComplexityTier = "easy"
	ComplexityModerate ComplexityTier = "moderate"
	ComplexityComplex  ComplexityTier = "complex"
)

// Rank returns a sortable order for the tier, easy first
func (ct ComplexityTier) Rank() int {
	switch ct {
	case ComplexityModerate:
		return 1
	case ComplexityComplex:
		return 2
	default:
		return 0
	}
}

// RecommendationCategory groups recommendations by the lever they pull
type RecommendationCategory string

const (
	CategoryRegime     RecommendationCategory = "regime"
	CategoryInvestment RecommendationCategory = "investment"
	CategoryDeduction  RecommendationCategory = "deduction"
	CategoryStructure  RecommendationCategory = "structure"
)

// Recommendation is a single scored savings opportunity. It is created
// by exactly one strategy evaluator and never mutated by the
// orchestrator, which only ranks and aggregates.
type Recommendation struct {
	ID                 string                 `json:"id"`
	Title              string                 `json:"title"`
	Description        string                 `json:"description"`
	ImpactEstimated    decimal.Decimal        `json:"impactEstimated"`
	Risk               RiskTier               `json:"risk"`
	Complexity         ComplexityTier         `json:"complexity"`
	Confidence         decimal.Decimal        `json:"confidence"`
	Category           RecommendationCategory `json:"category"`
	RequiredInvestment *decimal.Decimal       `json:"requiredInvestment,omitempty"`
	Eligibility        []string               `json:"eligibility,omitempty"`
	Warnings           []string               `json:"warnings,omitempty"`
}

// OptimizationResult aggregates the surviving recommendations, ordered
// by estimated impact descending.
type OptimizationResult struct {
	Recommendations       []Recommendation               `json:"recommendations"`
	Summary               string                         `json:"summary"`
	PotentialSavingsTotal decimal.Decimal                `json:"potentialSavingsTotal"`
	HighPriorityCount     int                            `json:"highPriorityCount"`
	CountsByCategory      map[RecommendationCategory]int `json:"countsByCategory"`
	CountsByRisk          map[RiskTier]int               `json:"countsByRisk"`
}

// InteractionKind declares how two strategies relate when both produce
// a recommendation for the same profile.
type InteractionKind string

const (
	InteractionConflict   InteractionKind = "conflict"
	InteractionSynergy    InteractionKind = "synergy"
	InteractionDependency InteractionKind = "dependency"
	InteractionNeutral    InteractionKind = "neutral"
)

// StrategyInteraction declares a pairwise relationship between two
// strategy identifiers. ImpactModifier scales the smaller impact of a
// pair when summing potential savings (0 for hard conflicts).
type StrategyInteraction struct {
	A              string          `json:"a"`
	B              string          `json:"b"`
	Kind           InteractionKind `json:"kind"`
	ImpactModifier decimal.Decimal `json:"impactModifier"`
}

// Matches reports whether the interaction links the two given strategy ids
func (si StrategyInteraction) Matches(a, b string) bool {
	return (si.A == a && si.B == b) || (si.A == b && si.B == a)
}

// OptimizationContext carries the caller-supplied situation details the
// strategy evaluators need beyond the calculation result itself.
type OptimizationContext struct {
	RiskTolerance            RiskTier        `yaml:"risk_tolerance" json:"riskTolerance"`
	InvestmentCapacity       decimal.Decimal `yaml:"investment_capacity" json:"investmentCapacity"`
	StableIncome             bool            `yaml:"stable_income" json:"stableIncome"`
	ExistingPERContributions decimal.Decimal `yaml:"existing_per_contributions" json:"existingPERContributions"`
	DependentsUnderCutoff    int             `yaml:"dependents_under_cutoff" json:"dependentsUnderCutoff"`
	Donations                decimal.Decimal `yaml:"donations" json:"donations"`
	ChildcareExpenses        decimal.Decimal `yaml:"childcare_expenses" json:"childcareExpenses"`
	HomeServicesExpenses     decimal.Decimal `yaml:"home_services_expenses" json:"homeServicesExpenses"`
}

// Validate rejects structurally invalid optimization contexts
func (oc *OptimizationContext) Validate() error {
	switch oc.RiskTolerance {
	case RiskLow, RiskMedium, RiskHigh, "":
	default:
		return &ValidationError{Field: "risk_tolerance", Reason: "must be 'low', 'medium' or 'high'"}
	}
	if oc.InvestmentCapacity.LessThan(decimal.Zero) {
		return &ValidationError{Field: "investment_capacity", Reason: "cannot be negative"}
	}
	if oc.ExistingPERContributions.LessThan(decimal.Zero) {
		return &ValidationError{Field: "existing_per_contributions", Reason: "cannot be negative"}
	}
	if oc.DependentsUnderCutoff < 0 {
		return &ValidationError{Field: "dependents_under_cutoff", Reason: "cannot be negative"}
	}
	for _, m := range []struct {
		field string
		value decimal.Decimal
	}{
		{"donations", oc.Donations},
		{"childcare_expenses", oc.ChildcareExpenses},
		{"home_services_expenses", oc.HomeServicesExpenses},
	} {
		if m.value.LessThan(decimal.Zero) {
			return &ValidationError{Field: m.field, Reason: "cannot be negative"}
		}
	}
	return nil
}
