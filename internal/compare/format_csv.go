package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV, one row per regime
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(rc *RegimeComparison) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Regime",
		"Recommended",
		"Taxable Income",
		"Total Deductions",
		"Yearly Tax",
		"Monthly Tax",
		"In-Hand Salary",
		"Effective Rate",
		"Tax Diff from Other",
		"In-Hand Diff from Other",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, rr := range []*RegimeResult{&rc.Old, &rc.New} {
		if err := writer.Write(cf.formatRow(rr, rr.Regime == rc.Recommended)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a regime result as a CSV row
func (cf *CSVFormatter) formatRow(rr *RegimeResult, recommended bool) []string {
	flag := "no"
	if recommended {
		flag = "yes"
	}
	return []string{
		rr.Regime.String(),
		flag,
		rr.TaxableIncome.StringFixed(2),
		rr.TotalDeductions.StringFixed(2),
		rr.YearlyTax.StringFixed(2),
		rr.MonthlyTax.StringFixed(2),
		rr.InHandSalary.StringFixed(2),
		rr.EffectiveRate.StringFixed(2),
		rr.TaxDiffFromOther.StringFixed(2),
		rr.InHandDiffFromOther.StringFixed(2),
	}
}
