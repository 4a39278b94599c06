package output

import (
	"fmt"
	"io"

	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// WriteResultPDF writes a one-page summary of the calculation, the
// document users download and keep alongside their declaration.
func WriteResultPDF(w io.Writer, profile *domain.FiscalProfile, result *domain.TaxCalculationResult) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Tax estimate %d", result.Year), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Income tax estimate %d", result.Year))
	pdf.Ln(12)

	if profile.Name != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, profile.Name)
		pdf.Ln(10)
	}

	row := func(label string, value string) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(90, 7, label)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, value)
		pdf.Ln(7)
	}

	row("Taxable income", result.TaxableIncome.StringFixed(2)+" EUR")
	row("Reference income (RFR)", result.ReferenceIncome.StringFixed(2)+" EUR")
	row("Fiscal shares", result.Shares.String())
	row("Marginal rate (TMI)", result.MarginalRate.Mul(decimal.NewFromInt(100)).StringFixed(1)+" %")
	row("Gross tax", result.GrossTax.StringFixed(2)+" EUR")
	row("Net tax", result.NetTax.StringFixed(2)+" EUR")

	if result.PER.Applied.GreaterThan(decimal.Zero) || result.PER.Excess.GreaterThan(decimal.Zero) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Retirement savings (PER)")
		pdf.Ln(8)
		row("Deduction ceiling", result.PER.Ceiling.StringFixed(2)+" EUR")
		row("Deduction applied", result.PER.Applied.StringFixed(2)+" EUR")
		if result.PER.Excess.GreaterThan(decimal.Zero) {
			row("Excess (not deducted)", result.PER.Excess.StringFixed(2)+" EUR")
		}
	}

	if result.CEHR.Amount.GreaterThan(decimal.Zero) || result.CDHR.Amount.GreaterThan(decimal.Zero) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "High-income surtaxes")
		pdf.Ln(8)
		row("CEHR", result.CEHR.Amount.StringFixed(2)+" EUR")
		row("CDHR", result.CDHR.Amount.StringFixed(2)+" EUR")
	}

	if result.Social.Expected.GreaterThan(decimal.Zero) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Social contributions")
		pdf.Ln(8)
		row("Expected", result.Social.Expected.StringFixed(2)+" EUR")
		row("Already paid", result.Social.Paid.StringFixed(2)+" EUR")
		row("Delta", result.Social.Delta.StringFixed(2)+" EUR")
	}

	pdf.Ln(6)
	row("Amount due", result.AmountDue.StringFixed(2)+" EUR")

	pdf.SetY(-25)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Cell(0, 5, "Estimate only; the official declaration prevails.")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
