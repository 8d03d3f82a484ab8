package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats a regime comparison as a console table
type TableFormatter struct{}

type tableRow struct {
	label    string
	old, new decimal.Decimal
}

// Format generates a side by side table of both regimes
func (tf *TableFormatter) Format(rc *RegimeComparison) string {
	var sb strings.Builder

	sb.WriteString(output.TitleStyle.Render("INCOME TAX REGIME COMPARISON") + "\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	if rc.InputPath != "" {
		sb.WriteString(fmt.Sprintf("Inputs: %s\n", rc.InputPath))
	}
	sb.WriteString("\n")

	labelWidth := 28
	numWidth := 15

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		labelWidth, "Line Item",
		numWidth, domain.RegimeOld.Label(),
		numWidth, domain.RegimeNew.Label(),
		numWidth, "Difference"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, row := range tf.rows(rc) {
		sb.WriteString(tf.formatRow(row, labelWidth, numWidth))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("\nRecommended: %s\n", output.HighlightStyle.Render(rc.RecommendedResult().Label)))
	sb.WriteString(fmt.Sprintf("Yearly Savings: %s\n", output.FormatINR(rc.YearlySavings)))
	sb.WriteString(fmt.Sprintf("Effective Rate: %s (old) vs %s (new)\n",
		rc.Old.EffectiveRate.StringFixed(2)+"%", rc.New.EffectiveRate.StringFixed(2)+"%"))

	if len(rc.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range rc.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) rows(rc *RegimeComparison) []tableRow {
	if rc.Old.Result == nil || rc.New.Result == nil {
		return []tableRow{
			{"Taxable Income", rc.Old.TaxableIncome, rc.New.TaxableIncome},
			{"Yearly Tax", rc.Old.YearlyTax, rc.New.YearlyTax},
			{"Monthly Tax", rc.Old.MonthlyTax, rc.New.MonthlyTax},
			{"In-Hand (monthly)", rc.Old.InHandSalary, rc.New.InHandSalary},
		}
	}
	o := rc.Old.Result.Breakdown
	n := rc.New.Result.Breakdown
	return []tableRow{
		{"Gross after PF/Gratuity", o.GrossAfterBasicDeductions, n.GrossAfterBasicDeductions},
		{"Standard Deduction", o.Deductions.StandardDeduction, n.Deductions.StandardDeduction},
		{"HRA Exemption", o.Deductions.HRAExemption, n.Deductions.HRAExemption},
		{"Investments", o.Deductions.OtherDeductions, n.Deductions.OtherDeductions},
		{"Professional Tax", o.Deductions.ProfessionalTax, n.Deductions.ProfessionalTax},
		{"Taxable Income", o.TaxableIncome, n.TaxableIncome},
		{"Slab Tax", o.SlabTax, n.SlabTax},
		{"Surcharge", o.Surcharge, n.Surcharge},
		{"Cess", o.Cess, n.Cess},
		{"Yearly Tax", o.YearlyTax, n.YearlyTax},
		{"Monthly Tax", o.MonthlyTax, n.MonthlyTax},
		{"In-Hand (monthly)", o.InHandSalary, n.InHandSalary},
	}
}

// formatRow formats a single line item, with the difference as new minus old
func (tf *TableFormatter) formatRow(row tableRow, labelWidth, numWidth int) string {
	return fmt.Sprintf("%-*s %*s %*s %*s\n",
		labelWidth, row.label,
		numWidth, output.FormatINR(row.old),
		numWidth, output.FormatINR(row.new),
		numWidth, tf.deltaSymbol(row.new.Sub(row.old))+output.FormatINR(row.new.Sub(row.old)))
}

// deltaSymbol returns a + prefix for positive deltas; FormatINR carries the minus sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.Round(0).IsPositive() {
		return "+"
	}
	return ""
}

// FormatCompact creates a compact single-line summary
func (tf *TableFormatter) FormatCompact(rc *RegimeComparison) string {
	return fmt.Sprintf("Old: %s | New: %s | Recommended: %s (saves %s)",
		output.FormatINR(rc.Old.YearlyTax),
		output.FormatINR(rc.New.YearlyTax),
		rc.Recommended,
		output.FormatINR(rc.YearlySavings))
}
