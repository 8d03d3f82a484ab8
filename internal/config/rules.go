package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// rulesFile is the on-disk rules override format. Omitted keys keep the
// built-in value; a supplied slab or surcharge list replaces the whole table.
type rulesFile struct {
	ProfessionalTaxMonthly *decimal.Decimal `yaml:"professional_tax_monthly"`
	CessRate               *decimal.Decimal `yaml:"cess_rate"`
	MetroHRARate           *decimal.Decimal `yaml:"metro_hra_rate"`
	NonMetroHRARate        *decimal.Decimal `yaml:"non_metro_hra_rate"`
	RentBasicOffsetRate    *decimal.Decimal `yaml:"rent_basic_offset_rate"`
	DefaultBasicShare      *decimal.Decimal `yaml:"default_basic_share"`
	DefaultHRAPercentage   *decimal.Decimal `yaml:"default_hra_percentage"`

	Regimes map[string]regimeFile `yaml:"regimes"`
}

type regimeFile struct {
	StandardDeduction         *decimal.Decimal      `yaml:"standard_deduction"`
	Slabs                     domain.SlabTable      `yaml:"slabs"`
	Surcharge                 domain.SurchargeTable `yaml:"surcharge"`
	AllowHRAExemption         *bool                 `yaml:"allow_hra_exemption"`
	AllowInvestmentDeductions *bool                 `yaml:"allow_investment_deductions"`
	MonthlyLabourWelfareFund  *decimal.Decimal      `yaml:"monthly_labour_welfare_fund"`
}

// RulesLoader reads rule book overrides
type RulesLoader struct{}

// NewRulesLoader creates a new rules loader
func NewRulesLoader() *RulesLoader {
	return &RulesLoader{}
}

// Load returns the built-in rule book when path is empty, otherwise the
// built-in rule book with the file's overrides applied
func (rl *RulesLoader) Load(path string) (domain.RuleBook, error) {
	if path == "" {
		return domain.DefaultRuleBook(), nil
	}
	return rl.LoadFromFile(path)
}

// LoadFromFile reads and applies a rules file
func (rl *RulesLoader) LoadFromFile(path string) (domain.RuleBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RuleBook{}, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	rb, err := rl.Parse(data)
	if err != nil {
		return domain.RuleBook{}, fmt.Errorf("%s: %w", path, err)
	}
	return rb, nil
}

// Parse applies a YAML overrides document to the built-in rule book and
// validates the result
func (rl *RulesLoader) Parse(data []byte) (domain.RuleBook, error) {
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.RuleBook{}, fmt.Errorf("failed to parse rules: %w", err)
	}

	rb := domain.DefaultRuleBook()
	overlay(&rb.ProfessionalTaxMonthly, f.ProfessionalTaxMonthly)
	overlay(&rb.CessRate, f.CessRate)
	overlay(&rb.MetroHRARate, f.MetroHRARate)
	overlay(&rb.NonMetroHRARate, f.NonMetroHRARate)
	overlay(&rb.RentBasicOffsetRate, f.RentBasicOffsetRate)
	overlay(&rb.DefaultBasicShare, f.DefaultBasicShare)
	overlay(&rb.DefaultHRAPercentage, f.DefaultHRAPercentage)

	for name, rf := range f.Regimes {
		regime, err := domain.ParseRegime(name)
		if err != nil || name == "" {
			return domain.RuleBook{}, fmt.Errorf("rules validation failed: unknown regime %q", name)
		}
		rules := rb.Regimes[regime]
		overlay(&rules.StandardDeduction, rf.StandardDeduction)
		overlay(&rules.MonthlyLabourWelfareFund, rf.MonthlyLabourWelfareFund)
		if len(rf.Slabs) > 0 {
			rules.Slabs = rf.Slabs
		}
		if len(rf.Surcharge) > 0 {
			rules.Surcharge = rf.Surcharge
		}
		if rf.AllowHRAExemption != nil {
			rules.AllowHRAExemption = *rf.AllowHRAExemption
		}
		if rf.AllowInvestmentDeductions != nil {
			rules.AllowInvestmentDeductions = *rf.AllowInvestmentDeductions
		}
		rules.Regime = regime
		rb.Regimes[regime] = rules
	}

	if err := rb.Validate(); err != nil {
		return domain.RuleBook{}, fmt.Errorf("rules validation failed: %w", err)
	}
	return rb, nil
}

func overlay(dst *decimal.Decimal, src *decimal.Decimal) {
	if src != nil {
		*dst = *src
	}
}

// MarshalRules renders a rule book as YAML
func MarshalRules(rb domain.RuleBook) ([]byte, error) {
	data, err := yaml.Marshal(rb)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rules: %w", err)
	}
	return data, nil
}
