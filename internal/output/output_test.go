package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalio/fiscalio/internal/bareme"
	"github.com/fiscalio/fiscalio/internal/calculation"
	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/fiscalio/fiscalio/internal/regime"
)

func sampleResult(t *testing.T) (*domain.FiscalProfile, *domain.TaxCalculationResult) {
	t.Helper()
	profile := &domain.FiscalProfile{
		Name:      "sample",
		Situation: domain.SituationSingle,
		Shares:    decimal.NewFromInt(1),
		Regime:    domain.RegimeMicro,
		Category:  domain.CategoryBNC,
		Income: domain.IncomeSources{
			ProfessionalGross: decimal.NewFromInt(50000),
		},
		Deductions: domain.Deductions{
			PERContributions: decimal.NewFromInt(8000),
		},
	}
	result, err := calculation.NewEngine(bareme.Default2025()).Calculate(profile)
	require.NoError(t, err)
	return profile, result
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "1234.50 €", FormatCurrency(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "0.00 €", FormatCurrency(decimal.Zero))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "30.0 %", FormatPercent(decimal.NewFromFloat(0.30)))
	assert.Equal(t, "0.0 %", FormatPercent(decimal.Zero))
}

func TestWriteJSONRoundTrip(t *testing.T) {
	_, result := sampleResult(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, result))

	var decoded domain.TaxCalculationResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, result.Year, decoded.Year)
	assert.True(t, decoded.TaxableIncome.Equal(result.TaxableIncome))
}

func TestRenderResult(t *testing.T) {
	_, result := sampleResult(t)

	out := RenderResult(result)
	assert.Contains(t, out, "Income tax 2025")
	assert.Contains(t, out, "Marginal rate")
	assert.Contains(t, out, "Amount due")

	// 8000 contributed against a 5000 ceiling.
	assert.Contains(t, out, "exceed the ceiling")
}

func TestRenderComparison(t *testing.T) {
	profile, _ := sampleResult(t)

	cmp, err := regime.NewComparator(bareme.Default2025()).Compare(profile)
	require.NoError(t, err)

	out := RenderComparison(cmp)
	assert.Contains(t, out, "Micro vs")
	assert.Contains(t, out, "Recommended")
}

func TestRenderOptimizationEmpty(t *testing.T) {
	out := RenderOptimization(&domain.OptimizationResult{Summary: "No optimization opportunity identified for this profile."})
	assert.Contains(t, out, "No optimization opportunity")
	assert.False(t, strings.Contains(out, "Total potential savings"))
}

func TestWriteResultPDF(t *testing.T) {
	profile, result := sampleResult(t)

	var buf bytes.Buffer
	require.NoError(t, WriteResultPDF(&buf, profile, result))

	// A PDF document always starts with the %PDF marker.
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}
