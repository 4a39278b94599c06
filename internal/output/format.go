package output

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// FormatCurrency renders a euro amount for console display
func FormatCurrency(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " €"
}

// FormatPercent renders a rate for console display
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1) + " %"
}

// WriteJSON writes any payload as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
