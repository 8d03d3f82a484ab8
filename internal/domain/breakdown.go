package domain

import "github.com/shopspring/decimal"

// PresentationSlabs is the number of taxed-band slots in the breakdown record
const PresentationSlabs = 6

// DeductionSet holds the deductions subtracted from gross after PF and gratuity
type DeductionSet struct {
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	HRAExemption      decimal.Decimal `yaml:"hra_exemption" json:"hra_exemption"`
	OtherDeductions   decimal.Decimal `yaml:"other_deductions" json:"other_deductions"`
	ProfessionalTax   decimal.Decimal `yaml:"professional_tax" json:"professional_tax"`
}

// Total sums all deductions
func (d DeductionSet) Total() decimal.Decimal {
	return d.StandardDeduction.Add(d.HRAExemption).Add(d.OtherDeductions).Add(d.ProfessionalTax)
}

// HRAExemptionResult records the three compared candidates and the chosen exemption
type HRAExemptionResult struct {
	ActualHRA          decimal.Decimal `yaml:"actual_hra" json:"actual_hra"`
	RentPaidMinusBasic decimal.Decimal `yaml:"rent_paid_minus_basic" json:"rent_paid_minus_basic"`
	MetroCityAllowance decimal.Decimal `yaml:"metro_city_allowance" json:"metro_city_allowance"`
	FinalExemption     decimal.Decimal `yaml:"final_exemption" json:"final_exemption"`
}

// BandTax is the income allocated to one band and the tax it produced
type BandTax struct {
	Min     decimal.Decimal  `yaml:"min" json:"min"`
	Max     *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate    decimal.Decimal  `yaml:"rate" json:"rate"`
	Taxable decimal.Decimal  `yaml:"taxable" json:"taxable"`
	Tax     decimal.Decimal  `yaml:"tax" json:"tax"`
}

// SlabBreakdown is the slab calculator output. Bands is aligned with the
// regime's table; Slabs lists the taxed (non-zero rate) bands in order,
// padded with zeros.
type SlabBreakdown struct {
	Bands []BandTax                          `yaml:"bands" json:"bands"`
	Slabs [PresentationSlabs]decimal.Decimal `yaml:"slabs" json:"slabs"`
	Total decimal.Decimal                    `yaml:"total" json:"total"`
}

// MonthlyDeductions is the per-month decomposition of salary outflows
type MonthlyDeductions struct {
	PF                decimal.Decimal `yaml:"pf" json:"pf"`
	Tax               decimal.Decimal `yaml:"tax" json:"tax"`
	ProfessionalTax   decimal.Decimal `yaml:"professional_tax" json:"professional_tax"`
	LabourWelfareFund decimal.Decimal `yaml:"labour_welfare_fund" json:"labour_welfare_fund"`
}

// Total sums the monthly outflows
func (m MonthlyDeductions) Total() decimal.Decimal {
	return m.PF.Add(m.Tax).Add(m.ProfessionalTax).Add(m.LabourWelfareFund)
}

// TaxBreakdown is the full result record of one computation
type TaxBreakdown struct {
	GrossAfterBasicDeductions decimal.Decimal   `yaml:"gross_after_basic_deductions" json:"gross_after_basic_deductions"`
	Deductions                DeductionSet      `yaml:"deductions" json:"deductions"`
	TotalDeductions           decimal.Decimal   `yaml:"total_deductions" json:"total_deductions"`
	TaxableIncome             decimal.Decimal   `yaml:"taxable_income" json:"taxable_income"`
	Slabs                     SlabBreakdown     `yaml:"slabs" json:"slabs"`
	SlabTax                   decimal.Decimal   `yaml:"slab_tax" json:"slab_tax"`
	SurchargeRate             decimal.Decimal   `yaml:"surcharge_rate" json:"surcharge_rate"`
	Surcharge                 decimal.Decimal   `yaml:"surcharge" json:"surcharge"`
	Cess                      decimal.Decimal   `yaml:"cess" json:"cess"`
	YearlyTax                 decimal.Decimal   `yaml:"yearly_tax" json:"yearly_tax"`
	MonthlyTax                decimal.Decimal   `yaml:"monthly_tax" json:"monthly_tax"`
	Monthly                   MonthlyDeductions `yaml:"monthly_deductions" json:"monthly_deductions"`
	InHandSalary              decimal.Decimal   `yaml:"in_hand_salary" json:"in_hand_salary"`
}

// TaxResult bundles the breakdown with the normalized inputs and HRA detail
type TaxResult struct {
	Regime    Regime             `yaml:"regime" json:"regime"`
	Inputs    ResolvedInputs     `yaml:"inputs" json:"inputs"`
	HRA       HRAExemptionResult `yaml:"hra_calculation" json:"hra_calculation"`
	Breakdown TaxBreakdown       `yaml:"breakdown" json:"breakdown"`
}
