package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrMissingField is returned when a required input field is absent
var ErrMissingField = errors.New("required field missing")

// TaxRequest is a parsed and normalized inputs document
type TaxRequest struct {
	Regime domain.Regime    `yaml:"regime" json:"regime"`
	Inputs domain.TaxInputs `yaml:"inputs" json:"inputs"`
}

// requestFile mirrors the on-disk format. Every numeric field is a pointer
// so an omitted key can be distinguished from an explicit zero.
type requestFile struct {
	Regime string     `yaml:"regime"`
	Inputs inputsFile `yaml:"inputs"`
}

type inputsFile struct {
	GrossSalary      *decimal.Decimal `yaml:"gross_salary"`
	PFContribution   *decimal.Decimal `yaml:"pf_contribution"`
	Gratuity         *decimal.Decimal `yaml:"gratuity"`
	TotalInvestments *decimal.Decimal `yaml:"total_investments"`
	RentPaid         *decimal.Decimal `yaml:"rent_paid"`
	BasicSalary      *decimal.Decimal `yaml:"basic_salary"`
	HRAPercentage    *decimal.Decimal `yaml:"hra_percentage"`
	OtherAllowances  *decimal.Decimal `yaml:"other_allowances"`
	EmployerPF       *decimal.Decimal `yaml:"employer_pf"`
	IsMetroCity      *bool            `yaml:"is_metro_city"`
}

// InputParser handles parsing of tax input documents
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a request from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*TaxRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	req, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return req, nil
}

// Parse decodes a YAML or JSON document (JSON is valid YAML) and normalizes it
func (ip *InputParser) Parse(data []byte) (*TaxRequest, error) {
	var raw requestFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}

	regime, err := domain.ParseRegime(raw.Regime)
	if err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	inputs, err := ip.normalize(raw.Inputs)
	if err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &TaxRequest{Regime: regime, Inputs: inputs}, nil
}

// normalize applies the form's coercion rules: gross salary is required,
// the other annual amounts default to zero when blank, and optional fields
// stay absent so the engine can apply its own defaults.
func (ip *InputParser) normalize(f inputsFile) (domain.TaxInputs, error) {
	if f.GrossSalary == nil {
		return domain.TaxInputs{}, fmt.Errorf("gross_salary is required: %w", ErrMissingField)
	}
	return domain.TaxInputs{
		GrossSalary:      *f.GrossSalary,
		PFContribution:   zeroIfNil(f.PFContribution),
		Gratuity:         zeroIfNil(f.Gratuity),
		TotalInvestments: zeroIfNil(f.TotalInvestments),
		RentPaid:         f.RentPaid,
		BasicSalary:      f.BasicSalary,
		HRAPercentage:    f.HRAPercentage,
		OtherAllowances:  f.OtherAllowances,
		EmployerPF:       f.EmployerPF,
		IsMetroCity:      f.IsMetroCity,
	}, nil
}

// ValidateFile loads a file and reports advisory warnings for values the
// engine will compute as given but that are outside their usual domain.
func (ip *InputParser) ValidateFile(filename string) ([]string, error) {
	req, err := ip.LoadFromFile(filename)
	if err != nil {
		return nil, err
	}
	return Warnings(req.Inputs), nil
}

// Warnings lists out-of-domain values. The engine never rejects these.
func Warnings(in domain.TaxInputs) []string {
	var warnings []string
	check := func(name string, v decimal.Decimal) {
		if v.IsNegative() {
			warnings = append(warnings, fmt.Sprintf("%s is negative (%s)", name, v))
		}
	}
	check("gross_salary", in.GrossSalary)
	check("pf_contribution", in.PFContribution)
	check("gratuity", in.Gratuity)
	check("total_investments", in.TotalInvestments)
	if in.RentPaid != nil {
		check("rent_paid", *in.RentPaid)
	}
	if in.BasicSalary != nil {
		check("basic_salary", *in.BasicSalary)
		if in.BasicSalary.GreaterThan(in.GrossSalary) {
			warnings = append(warnings, "basic_salary exceeds gross_salary")
		}
	}
	if in.HRAPercentage != nil {
		if in.HRAPercentage.IsNegative() || in.HRAPercentage.GreaterThan(decimal.NewFromInt(100)) {
			warnings = append(warnings, fmt.Sprintf("hra_percentage %s is outside 0-100", in.HRAPercentage))
		}
	}
	return warnings
}

func zeroIfNil(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}
