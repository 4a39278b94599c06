package bareme

import (
	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/shopspring/decimal"
)

func bound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// Default2025 returns the built-in bareme for fiscal year 2025
// (revenues of 2024). Official values; the YAML registry overrides
// these when a bareme file is supplied.
func Default2025() *Bareme {
	return &Bareme{
		Year: 2025,
		IncomeTax: []Bracket{
			{bound(11497), decimal.Zero},
			{bound(29315), decimal.NewFromFloat(0.11)},
			{bound(83823), decimal.NewFromFloat(0.30)},
			{bound(180294), decimal.NewFromFloat(0.41)},
			{nil, decimal.NewFromFloat(0.45)},
		},
		QuotientCap: decimal.NewFromInt(1791),
		Abatements: map[domain.ActivityCategory]MicroRegime{
			domain.CategoryBICVente:   {Abatement: decimal.NewFromFloat(0.71), CAThreshold: decimal.NewFromInt(188700)},
			domain.CategoryBICService: {Abatement: decimal.NewFromFloat(0.50), CAThreshold: decimal.NewFromInt(77700)},
			domain.CategoryBNC:        {Abatement: decimal.NewFromFloat(0.34), CAThreshold: decimal.NewFromInt(77700)},
		},
		PERPlafonds: PERPlafond{
			BaseRate:   decimal.NewFromFloat(0.10),
			MinPlafond: decimal.NewFromInt(4637),
			MaxTNS:     decimal.NewFromInt(87135),
			MaxSalarie: decimal.NewFromInt(37094),
		},
		CEHR: CEHRTables{
			Single: []Bracket{
				{bound(250000), decimal.Zero},
				{bound(500000), decimal.NewFromFloat(0.03)},
				{nil, decimal.NewFromFloat(0.04)},
			},
			Joint: []Bracket{
				{bound(500000), decimal.Zero},
				{bound(1000000), decimal.NewFromFloat(0.03)},
				{nil, decimal.NewFromFloat(0.04)},
			},
		},
		CDHR: CDHRRule{
			TargetRate:  decimal.NewFromFloat(0.20),
			FloorSingle: decimal.NewFromInt(250000),
			FloorJoint:  decimal.NewFromInt(500000),
		},
		SocialRates: map[domain.ActivityCategory]decimal.Decimal{
			domain.CategoryBICVente:   decimal.NewFromFloat(0.123),
			domain.CategoryBICService: decimal.NewFromFloat(0.212),
			domain.CategoryBNC:        decimal.NewFromFloat(0.246),
		},
		RegimeMateriality: decimal.NewFromInt(200),
	}
}
