package bareme

import (
	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/shopspring/decimal"
)

// Bracket is one step of a progressive schedule. UpperBound is nil on
// the last bracket, which is open-ended.
type Bracket struct {
	UpperBound *decimal.Decimal `yaml:"upper_bound" json:"upperBound,omitempty"`
	Rate       decimal.Decimal  `yaml:"rate" json:"rate"`
}

// MicroRegime carries the flat-rate abatement and the revenue ceiling
// of a micro-regime activity category.
type MicroRegime struct {
	Abatement   decimal.Decimal `yaml:"abatement" json:"abatement"`
	CAThreshold decimal.Decimal `yaml:"ca_threshold" json:"caThreshold"`
}

// PERPlafond holds the deduction-ceiling formula parameters: the
// ceiling is base_rate x professional income, clamped between
// min_plafond and the max for the worker type.
type PERPlafond struct {
	BaseRate   decimal.Decimal `yaml:"base_rate" json:"baseRate"`
	MinPlafond decimal.Decimal `yaml:"min_plafond" json:"minPlafond"`
	MaxTNS     decimal.Decimal `yaml:"max_tns" json:"maxTNS"`
	MaxSalarie decimal.Decimal `yaml:"max_salarie" json:"maxSalarie"`
}

// CEHRTables holds the two high-income contribution schedules. Filing
// status alone selects the table; fiscal shares play no role here.
type CEHRTables struct {
	Single []Bracket `yaml:"single" json:"single"`
	Joint  []Bracket `yaml:"joint" json:"joint"`
}

// CDHRRule parameterizes the minimum-effective-rate surtax
type CDHRRule struct {
	TargetRate  decimal.Decimal `yaml:"target_rate" json:"targetRate"`
	FloorSingle decimal.Decimal `yaml:"floor_single" json:"floorSingle"`
	FloorJoint  decimal.Decimal `yaml:"floor_joint" json:"floorJoint"`
}

// Floor returns the RFR floor for the filing status
func (c CDHRRule) Floor(situation domain.FamilySituation) decimal.Decimal {
	if situation == domain.SituationJoint {
		return c.FloorJoint
	}
	return c.FloorSingle
}

// Bareme is the versioned rule table for one fiscal year. It is loaded
// once, validated, and read-only for the lifetime of the process; a
// reload swaps a whole new value instead of mutating fields in place.
type Bareme struct {
	Year              int                                          `yaml:"year" json:"year"`
	IncomeTax         []Bracket                                    `yaml:"income_tax" json:"incomeTax"`
	QuotientCap       decimal.Decimal                              `yaml:"quotient_cap_per_half_share" json:"quotientCapPerHalfShare"`
	Abatements        map[domain.ActivityCategory]MicroRegime      `yaml:"abatements" json:"abatements"`
	PERPlafonds       PERPlafond                                   `yaml:"per_plafonds" json:"perPlafonds"`
	CEHR              CEHRTables                                   `yaml:"cehr_brackets" json:"cehrBrackets"`
	CDHR              CDHRRule                                     `yaml:"cdhr" json:"cdhr"`
	SocialRates       map[domain.ActivityCategory]decimal.Decimal  `yaml:"social_rates" json:"socialRates"`
	RegimeMateriality decimal.Decimal                              `yaml:"regime_materiality" json:"regimeMateriality"`
}

// Micro returns the micro-regime parameters for a category, or a
// ConfigurationError if the category is not configured.
func (b *Bareme) Micro(category domain.ActivityCategory) (MicroRegime, error) {
	mr, ok := b.Abatements[category]
	if !ok {
		return MicroRegime{}, &domain.ConfigurationError{Year: b.Year, Field: "abatements." + string(category), Reason: "category not configured"}
	}
	return mr, nil
}

// SocialRate returns the social-contribution rate for a category, or a
// ConfigurationError if the category is not configured.
func (b *Bareme) SocialRate(category domain.ActivityCategory) (decimal.Decimal, error) {
	rate, ok := b.SocialRates[category]
	if !ok {
		return decimal.Zero, &domain.ConfigurationError{Year: b.Year, Field: "social_rates." + string(category), Reason: "category not configured"}
	}
	return rate, nil
}

// CEHRBrackets returns the surtax schedule for the filing status.
// A single parent with several shares still gets the single table.
func (b *Bareme) CEHRBrackets(situation domain.FamilySituation) []Bracket {
	if situation == domain.SituationJoint {
		return b.CEHR.Joint
	}
	return b.CEHR.Single
}

// Validate checks the structural invariants of the bareme: strictly
// increasing bracket bounds, non-decreasing rates, open last bracket,
// all activity categories configured.
func (b *Bareme) Validate() error {
	if b.Year == 0 {
		return &domain.ConfigurationError{Field: "year", Reason: "fiscal year is required"}
	}
	if err := validateSchedule(b.Year, "income_tax", b.IncomeTax); err != nil {
		return err
	}
	if err := validateSchedule(b.Year, "cehr_brackets.single", b.CEHR.Single); err != nil {
		return err
	}
	if err := validateSchedule(b.Year, "cehr_brackets.joint", b.CEHR.Joint); err != nil {
		return err
	}
	if b.QuotientCap.LessThanOrEqual(decimal.Zero) {
		return &domain.ConfigurationError{Year: b.Year, Field: "quotient_cap_per_half_share", Reason: "must be positive"}
	}

	for _, cat := range []domain.ActivityCategory{domain.CategoryBICVente, domain.CategoryBICService, domain.CategoryBNC} {
		mr, ok := b.Abatements[cat]
		if !ok {
			return &domain.ConfigurationError{Year: b.Year, Field: "abatements." + string(cat), Reason: "category missing"}
		}
		if mr.Abatement.LessThanOrEqual(decimal.Zero) || mr.Abatement.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return &domain.ConfigurationError{Year: b.Year, Field: "abatements." + string(cat), Reason: "abatement must be between 0 and 1 exclusive"}
		}
		if mr.CAThreshold.LessThanOrEqual(decimal.Zero) {
			return &domain.ConfigurationError{Year: b.Year, Field: "abatements." + string(cat), Reason: "ca_threshold must be positive"}
		}
		if _, ok := b.SocialRates[cat]; !ok {
			return &domain.ConfigurationError{Year: b.Year, Field: "social_rates." + string(cat), Reason: "category missing"}
		}
	}

	pp := b.PERPlafonds
	if pp.BaseRate.LessThanOrEqual(decimal.Zero) {
		return &domain.ConfigurationError{Year: b.Year, Field: "per_plafonds.base_rate", Reason: "must be positive"}
	}
	if pp.MinPlafond.LessThanOrEqual(decimal.Zero) {
		return &domain.ConfigurationError{Year: b.Year, Field: "per_plafonds.min_plafond", Reason: "must be positive"}
	}
	if pp.MaxTNS.LessThan(pp.MinPlafond) || pp.MaxSalarie.LessThan(pp.MinPlafond) {
		return &domain.ConfigurationError{Year: b.Year, Field: "per_plafonds", Reason: "ceiling cannot be below the floor"}
	}

	if b.CDHR.TargetRate.LessThanOrEqual(decimal.Zero) || b.CDHR.TargetRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return &domain.ConfigurationError{Year: b.Year, Field: "cdhr.target_rate", Reason: "must be between 0 and 1 exclusive"}
	}
	if b.CDHR.FloorSingle.LessThanOrEqual(decimal.Zero) || b.CDHR.FloorJoint.LessThanOrEqual(decimal.Zero) {
		return &domain.ConfigurationError{Year: b.Year, Field: "cdhr", Reason: "floors must be positive"}
	}
	if b.RegimeMateriality.LessThan(decimal.Zero) {
		return &domain.ConfigurationError{Year: b.Year, Field: "regime_materiality", Reason: "cannot be negative"}
	}

	return nil
}

func validateSchedule(year int, field string, brackets []Bracket) error {
	if len(brackets) == 0 {
		return &domain.ConfigurationError{Year: year, Field: field, Reason: "bracket table missing"}
	}
	prevRate := decimal.NewFromInt(-1)
	var prevBound *decimal.Decimal
	for i, br := range brackets {
		if br.Rate.LessThan(decimal.Zero) || br.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return &domain.ConfigurationError{Year: year, Field: field, Reason: "rate out of [0,1]"}
		}
		if br.Rate.LessThan(prevRate) {
			return &domain.ConfigurationError{Year: year, Field: field, Reason: "rates must be non-decreasing"}
		}
		prevRate = br.Rate

		last := i == len(brackets)-1
		if last {
			if br.UpperBound != nil {
				return &domain.ConfigurationError{Year: year, Field: field, Reason: "last bracket must be open-ended"}
			}
			continue
		}
		if br.UpperBound == nil {
			return &domain.ConfigurationError{Year: year, Field: field, Reason: "only the last bracket may be open-ended"}
		}
		if br.UpperBound.LessThanOrEqual(decimal.Zero) {
			return &domain.ConfigurationError{Year: year, Field: field, Reason: "upper bounds must be positive"}
		}
		if prevBound != nil && br.UpperBound.LessThanOrEqual(*prevBound) {
			return &domain.ConfigurationError{Year: year, Field: field, Reason: "upper bounds must be strictly increasing"}
		}
		prevBound = br.UpperBound
	}
	return nil
}
