package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalio/fiscalio/internal/bareme"
	"github.com/fiscalio/fiscalio/internal/domain"
)

func TestCEHR(t *testing.T) {
	sc := NewSurtaxCalculator(bareme.Default2025())

	t.Run("below the single threshold", func(t *testing.T) {
		d, err := sc.CEHR(decimal.NewFromInt(200000), domain.SituationSingle)
		require.NoError(t, err)
		assert.True(t, d.Amount.IsZero())
	})

	t.Run("single filer at 600k", func(t *testing.T) {
		d, err := sc.CEHR(decimal.NewFromInt(600000), domain.SituationSingle)
		require.NoError(t, err)
		// 250000 x 3% + 100000 x 4%
		assert.True(t, d.Amount.Equal(decimal.NewFromInt(11500)), "got %s", d.Amount)
	})

	t.Run("joint filers get the doubled thresholds", func(t *testing.T) {
		d, err := sc.CEHR(decimal.NewFromInt(600000), domain.SituationJoint)
		require.NoError(t, err)
		// 100000 x 3%
		assert.True(t, d.Amount.Equal(decimal.NewFromInt(3000)), "got %s", d.Amount)
	})

	t.Run("filing status selects the table, not shares", func(t *testing.T) {
		// A single parent with several fiscal shares is still assessed
		// on the single-filer table.
		single, err := sc.CEHR(decimal.NewFromInt(400000), domain.SituationSingle)
		require.NoError(t, err)
		joint, err := sc.CEHR(decimal.NewFromInt(400000), domain.SituationJoint)
		require.NoError(t, err)
		assert.True(t, single.Amount.Equal(decimal.NewFromInt(4500)))
		assert.True(t, joint.Amount.IsZero())
	})

	t.Run("negative reference income is a defect", func(t *testing.T) {
		_, err := sc.CEHR(decimal.NewFromInt(-1), domain.SituationSingle)
		var invariant *domain.DomainInvariantError
		require.ErrorAs(t, err, &invariant)
	})
}

func TestCDHR(t *testing.T) {
	sc := NewSurtaxCalculator(bareme.Default2025())

	t.Run("below the floor", func(t *testing.T) {
		d, err := sc.CDHR(decimal.NewFromInt(200000), decimal.NewFromInt(10000), decimal.Zero, domain.SituationSingle)
		require.NoError(t, err)
		assert.True(t, d.Amount.IsZero())
		assert.False(t, d.Applied)
	})

	t.Run("tops up to the target rate", func(t *testing.T) {
		rfr := decimal.NewFromInt(800000)
		tax := decimal.NewFromInt(100000)
		cehr := decimal.NewFromInt(19500)
		d, err := sc.CDHR(rfr, tax, cehr, domain.SituationSingle)
		require.NoError(t, err)

		// Effective 14.9375%, topped up to 20%: 800000 x 5.0625%.
		assert.True(t, d.Applied)
		assert.True(t, d.Amount.Equal(decimal.NewFromFloat(40500)), "got %s", d.Amount)

		// The surtax brings the burden exactly to the target.
		after := tax.Add(cehr).Add(d.Amount).Div(rfr)
		assert.True(t, after.Equal(d.TargetRate))
	})

	t.Run("no surtax when already above the target", func(t *testing.T) {
		d, err := sc.CDHR(decimal.NewFromInt(800000), decimal.NewFromInt(200000), decimal.Zero, domain.SituationSingle)
		require.NoError(t, err)
		assert.True(t, d.Amount.IsZero())
		assert.False(t, d.Applied)
	})

	t.Run("joint floor is doubled", func(t *testing.T) {
		// 300k RFR with a low tax: above the single floor, below the joint one.
		d, err := sc.CDHR(decimal.NewFromInt(300000), decimal.NewFromInt(10000), decimal.Zero, domain.SituationJoint)
		require.NoError(t, err)
		assert.True(t, d.Amount.IsZero())

		d, err = sc.CDHR(decimal.NewFromInt(300000), decimal.NewFromInt(10000), decimal.Zero, domain.SituationSingle)
		require.NoError(t, err)
		assert.True(t, d.Applied)
	})

	t.Run("never negative", func(t *testing.T) {
		for _, tax := range []int64{0, 50000, 160000, 400000} {
			d, err := sc.CDHR(decimal.NewFromInt(800000), decimal.NewFromInt(tax), decimal.Zero, domain.SituationSingle)
			require.NoError(t, err)
			assert.False(t, d.Amount.IsNegative(), "tax %d produced a negative surtax", tax)
		}
	})

	t.Run("negative reference income is a defect", func(t *testing.T) {
		_, err := sc.CDHR(decimal.NewFromInt(-1), decimal.Zero, decimal.Zero, domain.SituationSingle)
		var invariant *domain.DomainInvariantError
		require.ErrorAs(t, err, &invariant)
	})
}
