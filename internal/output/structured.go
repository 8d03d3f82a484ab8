package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter emits the full result record. Decimals are quoted strings.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.TaxResult) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}

// YAMLFormatter emits the full result record as YAML
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(result *domain.TaxResult) ([]byte, error) {
	data, err := yaml.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return data, nil
}

// CSVFormatter emits one field,value row per breakdown line
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.TaxResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no result to format")
	}
	b := result.Breakdown
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	rows := [][]string{
		{"Field", "Value"},
		{"Regime", result.Regime.String()},
		{"GrossSalary", FormatINRPrecise(result.Inputs.GrossSalary)},
		{"GrossAfterBasicDeductions", FormatINRPrecise(b.GrossAfterBasicDeductions)},
		{"HRAExemption", FormatINRPrecise(b.Deductions.HRAExemption)},
		{"StandardDeduction", FormatINRPrecise(b.Deductions.StandardDeduction)},
		{"OtherDeductions", FormatINRPrecise(b.Deductions.OtherDeductions)},
		{"ProfessionalTax", FormatINRPrecise(b.Deductions.ProfessionalTax)},
		{"TotalDeductions", FormatINRPrecise(b.TotalDeductions)},
		{"TaxableIncome", FormatINRPrecise(b.TaxableIncome)},
	}
	for i, slot := range b.Slabs.Slabs {
		rows = append(rows, []string{fmt.Sprintf("Slab%d", i+1), FormatINRPrecise(slot)})
	}
	rows = append(rows,
		[]string{"SlabTax", FormatINRPrecise(b.SlabTax)},
		[]string{"SurchargeRate", b.SurchargeRate.String()},
		[]string{"Surcharge", FormatINRPrecise(b.Surcharge)},
		[]string{"Cess", FormatINRPrecise(b.Cess)},
		[]string{"YearlyTax", FormatINRPrecise(b.YearlyTax)},
		[]string{"MonthlyTax", FormatINRPrecise(b.MonthlyTax)},
		[]string{"MonthlyPF", FormatINRPrecise(b.Monthly.PF)},
		[]string{"MonthlyProfessionalTax", FormatINRPrecise(b.Monthly.ProfessionalTax)},
		[]string{"MonthlyLabourWelfareFund", FormatINRPrecise(b.Monthly.LabourWelfareFund)},
		[]string{"InHandSalary", FormatINRPrecise(b.InHandSalary)},
	)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
