package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
)

// ConsoleFormatter renders the detailed human readable breakdown
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.TaxResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no result to format")
	}
	var buf bytes.Buffer
	b := result.Breakdown
	in := result.Inputs

	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf, TitleStyle.Render("INCOME TAX BREAKDOWN - "+strings.ToUpper(result.Regime.Label())))
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, SectionStyle.Render("INPUTS"))
	line(&buf, "Gross Salary", FormatINR(in.GrossSalary))
	line(&buf, "PF Contribution", FormatINR(in.PFContribution))
	line(&buf, "Gratuity", FormatINR(in.Gratuity))
	line(&buf, "Basic Salary", FormatINR(in.BasicSalary))
	line(&buf, "HRA Percentage", in.HRAPercentage.String()+"%")
	line(&buf, "Monthly Rent", FormatINR(in.RentPaid))
	line(&buf, "Total Investments", FormatINR(in.TotalInvestments))
	city := "Non-metro"
	if in.IsMetroCity {
		city = "Metro"
	}
	line(&buf, "City", city)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, SectionStyle.Render("HRA EXEMPTION"))
	line(&buf, "Actual HRA", FormatINR(result.HRA.ActualHRA))
	line(&buf, "Rent - 10% of Basic", FormatINR(result.HRA.RentPaidMinusBasic))
	line(&buf, "City Allowance", FormatINR(result.HRA.MetroCityAllowance))
	line(&buf, "Exemption", FormatINR(result.HRA.FinalExemption))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, SectionStyle.Render("DEDUCTIONS"))
	line(&buf, "Gross after PF/Gratuity", FormatINR(b.GrossAfterBasicDeductions))
	line(&buf, "Standard Deduction", FormatINR(b.Deductions.StandardDeduction))
	line(&buf, "HRA Exemption", FormatINR(b.Deductions.HRAExemption))
	line(&buf, "Investments", FormatINR(b.Deductions.OtherDeductions))
	line(&buf, "Professional Tax", FormatINR(b.Deductions.ProfessionalTax))
	line(&buf, "Total Deductions", FormatINR(b.TotalDeductions))
	line(&buf, "Taxable Income", FormatINR(b.TaxableIncome))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, SectionStyle.Render("SLAB TAX"))
	for _, band := range b.Slabs.Bands {
		if band.Taxable.IsZero() {
			continue
		}
		line(&buf, bandLabel(band), FormatINR(band.Tax))
	}
	line(&buf, "Slab Tax", FormatINR(b.SlabTax))
	line(&buf, "Surcharge ("+FormatRate(b.SurchargeRate)+")", FormatINR(b.Surcharge))
	line(&buf, "Health & Education Cess", FormatINR(b.Cess))
	line(&buf, "Yearly Tax", FormatINR(b.YearlyTax))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, SectionStyle.Render("MONTHLY"))
	line(&buf, "PF", FormatINR(b.Monthly.PF))
	line(&buf, "Income Tax", FormatINR(b.Monthly.Tax))
	line(&buf, "Professional Tax", FormatINR(b.Monthly.ProfessionalTax))
	if !b.Monthly.LabourWelfareFund.IsZero() {
		line(&buf, "Labour Welfare Fund", FormatINR(b.Monthly.LabourWelfareFund))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "%s %s\n", HighlightStyle.Render(fmt.Sprintf("%-28s", "In-Hand Salary (monthly):")), FormatINR(b.InHandSalary))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, MutedStyle.Render("KEY ASSUMPTIONS:"))
	for _, a := range DefaultAssumptions {
		fmt.Fprintln(&buf, MutedStyle.Render("• "+a))
	}

	return buf.Bytes(), nil
}

func line(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "  %-26s %14s\n", label+":", value)
}

// bandLabel renders a band as "₹2,50,000+ @ 5%" style text
func bandLabel(band domain.BandTax) string {
	return fmt.Sprintf("%s+ @ %s", FormatINR(band.Min), FormatRate(band.Rate))
}
