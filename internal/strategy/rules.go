package strategy

import (
	"github.com/shopspring/decimal"
)

// Rules holds the point-in-time eligibility thresholds and payoff
// parameters of the strategy evaluators. They are fixed rules, not
// values re-derived per call, and live here so no evaluator duplicates
// a literal.
type Rules struct {
	// PER
	PERTMIThreshold decimal.Decimal
	PERPartialTier  decimal.Decimal // fraction of the unused ceiling for the cautious tier

	// Rental (LMNP)
	RentalTMIThreshold       decimal.Decimal
	RentalMinInvestment      decimal.Decimal
	RentalAssumedYield       decimal.Decimal
	RentalAmortizationFactor decimal.Decimal

	// Girardin industrial/overseas credit
	GirardinMinTax     decimal.Decimal
	GirardinCapRatio   decimal.Decimal
	GirardinTaxFloor   decimal.Decimal
	GirardinCreditRate decimal.Decimal

	// FCPI innovation fund credit
	FCPIMinTax        decimal.Decimal
	FCPICreditRate    decimal.Decimal
	FCPICeilingSingle decimal.Decimal
	FCPICeilingJoint  decimal.Decimal

	// Simple deductions
	DonationRate            decimal.Decimal
	DonationCapRatio        decimal.Decimal // of taxable income
	ChildcareRate           decimal.Decimal
	ChildcareCeilingPerHead decimal.Decimal
	HomeServicesRate        decimal.Decimal
	HomeServicesCeiling     decimal.Decimal

	// Corporate-structure change
	StructureCAThreshold   decimal.Decimal
	StructureExpenseRatio  decimal.Decimal
	StructureEstimateRatio decimal.Decimal

	// Orchestrator
	HighPriorityFloor decimal.Decimal
}

// DefaultRules returns the 2025 rule set
func DefaultRules() Rules {
	return Rules{
		PERTMIThreshold: decimal.NewFromFloat(0.30),
		PERPartialTier:  decimal.NewFromFloat(0.70),

		RentalTMIThreshold:       decimal.NewFromFloat(0.30),
		RentalMinInvestment:      decimal.NewFromInt(50000),
		RentalAssumedYield:       decimal.NewFromFloat(0.04),
		RentalAmortizationFactor: decimal.NewFromFloat(0.85),

		GirardinMinTax:     decimal.NewFromInt(2500),
		GirardinCapRatio:   decimal.NewFromFloat(0.80),
		GirardinTaxFloor:   decimal.NewFromInt(1500),
		GirardinCreditRate: decimal.NewFromFloat(0.10),

		FCPIMinTax:        decimal.NewFromInt(1000),
		FCPICreditRate:    decimal.NewFromFloat(0.18),
		FCPICeilingSingle: decimal.NewFromInt(12000),
		FCPICeilingJoint:  decimal.NewFromInt(24000),

		DonationRate:            decimal.NewFromFloat(0.66),
		DonationCapRatio:        decimal.NewFromFloat(0.20),
		ChildcareRate:           decimal.NewFromFloat(0.50),
		ChildcareCeilingPerHead: decimal.NewFromInt(3500),
		HomeServicesRate:        decimal.NewFromFloat(0.50),
		HomeServicesCeiling:     decimal.NewFromInt(12000),

		StructureCAThreshold:   decimal.NewFromInt(77700),
		StructureExpenseRatio:  decimal.NewFromFloat(0.30),
		StructureEstimateRatio: decimal.NewFromFloat(0.15),

		HighPriorityFloor: decimal.NewFromInt(1000),
	}
}
