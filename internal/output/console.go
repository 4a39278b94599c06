package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fiscalio/fiscalio/internal/domain"
	"github.com/fiscalio/fiscalio/internal/regime"
	"github.com/shopspring/decimal"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Width(28)
	amountStyle  = lipgloss.NewStyle().Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

func line(label string, value string) string {
	return labelStyle.Render(label) + amountStyle.Render(value) + "\n"
}

// RenderResult renders a calculation result for the terminal
func RenderResult(result *domain.TaxCalculationResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Income tax %d", result.Year)) + "\n\n")
	b.WriteString(line("Taxable income", FormatCurrency(result.TaxableIncome)))
	b.WriteString(line("Reference income (RFR)", FormatCurrency(result.ReferenceIncome)))
	b.WriteString(line("Fiscal shares", result.Shares.String()))
	b.WriteString(line("Income per share", FormatCurrency(result.IncomePerShare)))
	b.WriteString(line("Marginal rate (TMI)", FormatPercent(result.MarginalRate)))
	b.WriteString(line("Gross tax", FormatCurrency(result.GrossTax)))
	b.WriteString(line("Net tax", FormatCurrency(result.NetTax)))
	if result.QuotientCapped {
		b.WriteString(warnStyle.Render("family-quotient benefit capped") + "\n")
	}

	if len(result.Brackets) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Bracket breakdown") + "\n")
		for _, br := range result.Brackets {
			b.WriteString(fmt.Sprintf("  %6s  on %12s  = %s\n",
				FormatPercent(br.Rate), FormatCurrency(br.Income), FormatCurrency(br.Tax)))
		}
	}

	b.WriteString("\n" + sectionStyle.Render("Retirement savings (PER)") + "\n")
	b.WriteString(line("Deduction ceiling", FormatCurrency(result.PER.Ceiling)))
	b.WriteString(line("Deduction applied", FormatCurrency(result.PER.Applied)))
	if result.PER.Excess.GreaterThan(decimal.Zero) {
		b.WriteString(warnStyle.Render(fmt.Sprintf("contributions exceed the ceiling by %s", FormatCurrency(result.PER.Excess))) + "\n")
	}

	if result.CEHR.Amount.GreaterThan(decimal.Zero) || result.CDHR.Amount.GreaterThan(decimal.Zero) {
		b.WriteString("\n" + sectionStyle.Render("High-income surtaxes") + "\n")
		b.WriteString(line("CEHR", FormatCurrency(result.CEHR.Amount)))
		b.WriteString(line("CDHR", FormatCurrency(result.CDHR.Amount)))
		if result.CDHR.Applied {
			b.WriteString(dimStyle.Render(fmt.Sprintf("effective rate before CDHR: %s, target %s",
				FormatPercent(result.CDHR.EffectiveRateBefore), FormatPercent(result.CDHR.TargetRate))) + "\n")
		}
	}

	if result.Social.Expected.GreaterThan(decimal.Zero) {
		b.WriteString("\n" + sectionStyle.Render("Social contributions") + "\n")
		b.WriteString(line("Expected", FormatCurrency(result.Social.Expected)))
		b.WriteString(line("Already paid", FormatCurrency(result.Social.Paid)))
		b.WriteString(line("Delta", FormatCurrency(result.Social.Delta)))
	}

	b.WriteString("\n")
	b.WriteString(line("Amount due", FormatCurrency(result.AmountDue)))
	return b.String()
}

// RenderComparison renders a regime comparison for the terminal
func RenderComparison(cmp *regime.Comparison) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Micro vs. réel") + "\n\n")
	b.WriteString(line("Micro taxable base", FormatCurrency(cmp.MicroBase)))
	b.WriteString(line("Réel taxable base", FormatCurrency(cmp.ReelBase)))
	b.WriteString(line("Micro total (tax+social)", FormatCurrency(cmp.MicroTotal)))
	b.WriteString(line("Réel total (tax+social)", FormatCurrency(cmp.ReelTotal)))

	if cmp.Material {
		b.WriteString("\n" + amountStyle.Render(fmt.Sprintf("Recommended: %s regime, saving %s per year",
			cmp.Recommended, FormatCurrency(cmp.Savings))) + "\n")
	} else {
		b.WriteString("\n" + dimStyle.Render("No material difference between the two regimes.") + "\n")
	}
	for _, w := range cmp.Warnings {
		b.WriteString(warnStyle.Render("! "+w) + "\n")
	}
	return b.String()
}

// RenderOptimization renders ranked recommendations for the terminal
func RenderOptimization(opt *domain.OptimizationResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Optimization opportunities") + "\n\n")
	b.WriteString(opt.Summary + "\n")

	for i, rec := range opt.Recommendations {
		b.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, sectionStyle.Render(rec.Title)))
		b.WriteString(fmt.Sprintf("   impact ~%s/year  risk %s  complexity %s  confidence %s\n",
			FormatCurrency(rec.ImpactEstimated), rec.Risk, rec.Complexity, rec.Confidence.StringFixed(2)))
		b.WriteString("   " + rec.Description + "\n")
		if rec.RequiredInvestment != nil {
			b.WriteString(dimStyle.Render("   requires "+FormatCurrency(*rec.RequiredInvestment)) + "\n")
		}
		for _, w := range rec.Warnings {
			b.WriteString(warnStyle.Render("   ! "+w) + "\n")
		}
	}

	if len(opt.Recommendations) > 0 {
		b.WriteString("\n" + line("Total potential savings", FormatCurrency(opt.PotentialSavingsTotal)))
	}
	return b.String()
}
