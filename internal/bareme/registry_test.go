package bareme

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalio/fiscalio/internal/domain"
)

func TestRegistryForYear(t *testing.T) {
	reg := DefaultRegistry()

	b, err := reg.ForYear(2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, b.Year)

	_, err = reg.ForYear(1999)
	var confErr *domain.ConfigurationError
	require.ErrorAs(t, err, &confErr)
}

func TestRegistryRejectsDuplicateYears(t *testing.T) {
	_, err := NewRegistry(Default2025(), Default2025())
	var confErr *domain.ConfigurationError
	require.ErrorAs(t, err, &confErr)
}

func TestRegistryRejectsInvalidBareme(t *testing.T) {
	b := Default2025()
	b.IncomeTax = nil
	_, err := NewRegistry(b)
	require.Error(t, err)
}

func TestRegistryYearsSorted(t *testing.T) {
	b2026 := Default2025()
	b2026.Year = 2026
	b2024 := Default2025()
	b2024.Year = 2024

	reg, err := NewRegistry(b2026, b2024, Default2025())
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2025, 2026}, reg.Years())
}

func TestParseBaremeYAML(t *testing.T) {
	data := []byte(`
baremes:
  - year: 2025
    income_tax:
      - {upper_bound: 11497, rate: 0}
      - {upper_bound: 29315, rate: 0.11}
      - {upper_bound: 83823, rate: 0.30}
      - {upper_bound: 180294, rate: 0.41}
      - {rate: 0.45}
    quotient_cap_per_half_share: 1791
    abatements:
      bic_vente: {abatement: 0.71, ca_threshold: 188700}
      bic_service: {abatement: 0.50, ca_threshold: 77700}
      bnc: {abatement: 0.34, ca_threshold: 77700}
    per_plafonds:
      base_rate: 0.10
      min_plafond: 4637
      max_tns: 87135
      max_salarie: 37094
    cehr_brackets:
      single:
        - {upper_bound: 250000, rate: 0}
        - {upper_bound: 500000, rate: 0.03}
        - {rate: 0.04}
      joint:
        - {upper_bound: 500000, rate: 0}
        - {upper_bound: 1000000, rate: 0.03}
        - {rate: 0.04}
    cdhr:
      target_rate: 0.20
      floor_single: 250000
      floor_joint: 500000
    social_rates:
      bic_vente: 0.123
      bic_service: 0.212
      bnc: 0.246
    regime_materiality: 200
`)

	reg, err := Parse(data)
	require.NoError(t, err)

	b, err := reg.ForYear(2025)
	require.NoError(t, err)
	assert.True(t, b.QuotientCap.Equal(decimal.NewFromInt(1791)))
	require.Len(t, b.IncomeTax, 5)
	assert.Nil(t, b.IncomeTax[4].UpperBound)
	assert.True(t, b.IncomeTax[2].Rate.Equal(decimal.NewFromFloat(0.30)))
}

func TestParseRejectsEmptyFile(t *testing.T) {
	_, err := Parse([]byte("baremes: []"))
	require.Error(t, err)

	_, err = Parse([]byte("not: [valid"))
	require.Error(t, err)
}
