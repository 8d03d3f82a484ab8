package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SlabBand is one marginal-rate band of a slab table. Membership is the
// half-open range [Min, Max); a nil Max marks the unbounded final band.
type SlabBand struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the band has no upper limit
func (b SlabBand) Unbounded() bool { return b.Max == nil }

// Width returns the band width. ok is false for the unbounded band.
func (b SlabBand) Width() (width decimal.Decimal, ok bool) {
	if b.Max == nil {
		return decimal.Zero, false
	}
	return b.Max.Sub(b.Min), true
}

// SlabTable is an ordered, contiguous sequence of bands starting at zero
type SlabTable []SlabBand

// SurchargeTier is one income tier of a surcharge table. Membership is
// Min < income <= Max; a nil Max marks the unbounded top tier.
type SurchargeTier struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// SurchargeTable is an ordered, exhaustive sequence of tiers over [0, inf)
type SurchargeTable []SurchargeTier

// RegimeRules carries every regime dependent fact. Nothing else in the
// engine branches on the regime tag.
type RegimeRules struct {
	Regime                    Regime          `yaml:"regime" json:"regime"`
	StandardDeduction         decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	Slabs                     SlabTable       `yaml:"slabs" json:"slabs"`
	Surcharge                 SurchargeTable  `yaml:"surcharge" json:"surcharge"`
	AllowHRAExemption         bool            `yaml:"allow_hra_exemption" json:"allow_hra_exemption"`
	AllowInvestmentDeductions bool            `yaml:"allow_investment_deductions" json:"allow_investment_deductions"`
	MonthlyLabourWelfareFund  decimal.Decimal `yaml:"monthly_labour_welfare_fund" json:"monthly_labour_welfare_fund"`
}

// RuleBook is the complete read-only rule configuration shared by all
// calculators. Build it once and never mutate it after handing it to an
// engine; use Clone to derive a modified copy.
type RuleBook struct {
	ProfessionalTaxMonthly decimal.Decimal `yaml:"professional_tax_monthly" json:"professional_tax_monthly"`
	CessRate               decimal.Decimal `yaml:"cess_rate" json:"cess_rate"`

	MetroHRARate        decimal.Decimal `yaml:"metro_hra_rate" json:"metro_hra_rate"`
	NonMetroHRARate     decimal.Decimal `yaml:"non_metro_hra_rate" json:"non_metro_hra_rate"`
	RentBasicOffsetRate decimal.Decimal `yaml:"rent_basic_offset_rate" json:"rent_basic_offset_rate"`

	DefaultBasicShare    decimal.Decimal `yaml:"default_basic_share" json:"default_basic_share"`
	DefaultHRAPercentage decimal.Decimal `yaml:"default_hra_percentage" json:"default_hra_percentage"`

	Regimes map[Regime]RegimeRules `yaml:"regimes" json:"regimes"`
}

// For returns the rules of the given regime
func (rb RuleBook) For(r Regime) (RegimeRules, bool) {
	rules, ok := rb.Regimes[r]
	return rules, ok
}

// AnnualProfessionalTax is the flat yearly professional tax
func (rb RuleBook) AnnualProfessionalTax() decimal.Decimal {
	return rb.ProfessionalTaxMonthly.Mul(decimal.NewFromInt(12))
}

// Clone returns a deep copy that shares no slices or maps with rb
func (rb RuleBook) Clone() RuleBook {
	out := rb
	out.Regimes = make(map[Regime]RegimeRules, len(rb.Regimes))
	for k, v := range rb.Regimes {
		out.Regimes[k] = v.Clone()
	}
	return out
}

// Clone returns a deep copy of the regime rules
func (r RegimeRules) Clone() RegimeRules {
	out := r
	out.Slabs = make(SlabTable, len(r.Slabs))
	for i, b := range r.Slabs {
		out.Slabs[i] = SlabBand{Min: b.Min, Max: clonePtr(b.Max), Rate: b.Rate}
	}
	out.Surcharge = make(SurchargeTable, len(r.Surcharge))
	for i, t := range r.Surcharge {
		out.Surcharge[i] = SurchargeTier{Min: t.Min, Max: clonePtr(t.Max), Rate: t.Rate}
	}
	return out
}

func clonePtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

// Validate checks that the rule book is internally consistent
func (rb RuleBook) Validate() error {
	if rb.ProfessionalTaxMonthly.IsNegative() {
		return fmt.Errorf("professional tax cannot be negative")
	}
	if err := validateRate("cess rate", rb.CessRate); err != nil {
		return err
	}
	if err := validateRate("metro HRA rate", rb.MetroHRARate); err != nil {
		return err
	}
	if err := validateRate("non-metro HRA rate", rb.NonMetroHRARate); err != nil {
		return err
	}
	if err := validateRate("rent offset rate", rb.RentBasicOffsetRate); err != nil {
		return err
	}
	if err := validateRate("default basic share", rb.DefaultBasicShare); err != nil {
		return err
	}
	if rb.DefaultHRAPercentage.IsNegative() || rb.DefaultHRAPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("default HRA percentage must be between 0 and 100")
	}
	for _, regime := range AllRegimes() {
		rules, ok := rb.Regimes[regime]
		if !ok {
			return fmt.Errorf("rules for %s regime are missing", regime)
		}
		if err := rules.Validate(); err != nil {
			return fmt.Errorf("%s regime: %w", regime, err)
		}
	}
	return nil
}

// Validate checks one regime's deduction amount and tables
func (r RegimeRules) Validate() error {
	if r.StandardDeduction.IsNegative() {
		return fmt.Errorf("standard deduction cannot be negative")
	}
	if r.MonthlyLabourWelfareFund.IsNegative() {
		return fmt.Errorf("labour welfare fund cannot be negative")
	}
	if err := r.Slabs.Validate(); err != nil {
		return fmt.Errorf("slab table: %w", err)
	}
	if err := r.Surcharge.Validate(); err != nil {
		return fmt.Errorf("surcharge table: %w", err)
	}
	return nil
}

// Validate checks that bands start at zero, are contiguous and ascending,
// and that only the final band is unbounded
func (t SlabTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("at least one band is required")
	}
	if !t[0].Min.IsZero() {
		return fmt.Errorf("first band must start at 0, got %s", t[0].Min)
	}
	for i, b := range t {
		if err := validateRate(fmt.Sprintf("band %d rate", i+1), b.Rate); err != nil {
			return err
		}
		last := i == len(t)-1
		if b.Max == nil {
			if !last {
				return fmt.Errorf("band %d is unbounded but is not the final band", i+1)
			}
			continue
		}
		if last {
			return fmt.Errorf("final band must be unbounded")
		}
		if b.Max.LessThanOrEqual(b.Min) {
			return fmt.Errorf("band %d upper bound %s must exceed lower bound %s", i+1, b.Max, b.Min)
		}
		if !t[i+1].Min.Equal(*b.Max) {
			return fmt.Errorf("band %d ends at %s but band %d starts at %s", i+1, b.Max, i+2, t[i+1].Min)
		}
	}
	return nil
}

// Validate applies the slab table rules to surcharge tiers
func (t SurchargeTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("at least one tier is required")
	}
	if !t[0].Min.IsZero() {
		return fmt.Errorf("first tier must start at 0, got %s", t[0].Min)
	}
	for i, tier := range t {
		if err := validateRate(fmt.Sprintf("tier %d rate", i+1), tier.Rate); err != nil {
			return err
		}
		last := i == len(t)-1
		if tier.Max == nil {
			if !last {
				return fmt.Errorf("tier %d is unbounded but is not the final tier", i+1)
			}
			continue
		}
		if last {
			return fmt.Errorf("final tier must be unbounded")
		}
		if tier.Max.LessThanOrEqual(tier.Min) {
			return fmt.Errorf("tier %d upper bound %s must exceed lower bound %s", i+1, tier.Max, tier.Min)
		}
		if !t[i+1].Min.Equal(*tier.Max) {
			return fmt.Errorf("tier %d ends at %s but tier %d starts at %s", i+1, tier.Max, i+2, t[i+1].Min)
		}
	}
	return nil
}

func validateRate(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be between 0 and 1, got %s", name, rate)
	}
	return nil
}
