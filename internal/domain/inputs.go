package domain

import "github.com/shopspring/decimal"

// TaxInputs holds the annual compensation figures for one worker. Optional
// fields are pointers so that an absent value can be told apart from zero.
type TaxInputs struct {
	GrossSalary      decimal.Decimal `yaml:"gross_salary" json:"gross_salary"`
	PFContribution   decimal.Decimal `yaml:"pf_contribution" json:"pf_contribution"`
	Gratuity         decimal.Decimal `yaml:"gratuity" json:"gratuity"`
	TotalInvestments decimal.Decimal `yaml:"total_investments" json:"total_investments"`

	RentPaid        *decimal.Decimal `yaml:"rent_paid,omitempty" json:"rent_paid,omitempty"` // monthly
	BasicSalary     *decimal.Decimal `yaml:"basic_salary,omitempty" json:"basic_salary,omitempty"`
	HRAPercentage   *decimal.Decimal `yaml:"hra_percentage,omitempty" json:"hra_percentage,omitempty"`
	OtherAllowances *decimal.Decimal `yaml:"other_allowances,omitempty" json:"other_allowances,omitempty"`
	EmployerPF      *decimal.Decimal `yaml:"employer_pf,omitempty" json:"employer_pf,omitempty"`
	IsMetroCity     *bool            `yaml:"is_metro_city,omitempty" json:"is_metro_city,omitempty"`
}

// ResolvedInputs is TaxInputs after every optional field has been given a
// concrete value. It is echoed back in TaxResult.
type ResolvedInputs struct {
	GrossSalary      decimal.Decimal `yaml:"gross_salary" json:"gross_salary"`
	PFContribution   decimal.Decimal `yaml:"pf_contribution" json:"pf_contribution"`
	Gratuity         decimal.Decimal `yaml:"gratuity" json:"gratuity"`
	TotalInvestments decimal.Decimal `yaml:"total_investments" json:"total_investments"`
	RentPaid         decimal.Decimal `yaml:"rent_paid" json:"rent_paid"`
	BasicSalary      decimal.Decimal `yaml:"basic_salary" json:"basic_salary"`
	HRAPercentage    decimal.Decimal `yaml:"hra_percentage" json:"hra_percentage"`
	OtherAllowances  decimal.Decimal `yaml:"other_allowances" json:"other_allowances"`
	EmployerPF       decimal.Decimal `yaml:"employer_pf" json:"employer_pf"`
	IsMetroCity      bool            `yaml:"is_metro_city" json:"is_metro_city"`
}

// WithInvestments returns a copy of the inputs with TotalInvestments replaced
func (in TaxInputs) WithInvestments(amount decimal.Decimal) TaxInputs {
	out := in
	out.TotalInvestments = amount
	return out
}

// DecimalPtr is a small helper for building optional fields
func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// BoolPtr is a small helper for building optional fields
func BoolPtr(b bool) *bool {
	return &b
}
