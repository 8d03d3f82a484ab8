package calculation

import (
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// HRAExemptionCalculator computes the exempt part of house rent allowance
// as the least of actual HRA, rent above 10% of basic, and the city cap.
type HRAExemptionCalculator struct {
	MetroRate      decimal.Decimal
	NonMetroRate   decimal.Decimal
	RentOffsetRate decimal.Decimal
}

// NewHRAExemptionCalculator creates a calculator with the default rates
func NewHRAExemptionCalculator() *HRAExemptionCalculator {
	return NewHRAExemptionCalculatorWithRules(domain.DefaultRuleBook())
}

// NewHRAExemptionCalculatorWithRules creates a calculator using the rule book's rates
func NewHRAExemptionCalculatorWithRules(rules domain.RuleBook) *HRAExemptionCalculator {
	return &HRAExemptionCalculator{
		MetroRate:      rules.MetroHRARate,
		NonMetroRate:   rules.NonMetroHRARate,
		RentOffsetRate: rules.RentBasicOffsetRate,
	}
}

// Calculate compares the three candidates. rentPaid is monthly; basic and
// hraReceived are annual. Zero basic degenerates to a zero exemption.
func (hc *HRAExemptionCalculator) Calculate(basic, hraReceived, rentPaid decimal.Decimal, isMetroCity bool) domain.HRAExemptionResult {
	annualRent := rentPaid.Mul(decimal.NewFromInt(12))
	rentMinusBasic := decimal.Max(decimal.Zero, annualRent.Sub(basic.Mul(hc.RentOffsetRate)))

	cityRate := hc.NonMetroRate
	if isMetroCity {
		cityRate = hc.MetroRate
	}
	cityAllowance := basic.Mul(cityRate)

	final := decimal.Min(hraReceived, rentMinusBasic, cityAllowance)
	final = decimal.Max(decimal.Zero, final)

	return domain.HRAExemptionResult{
		ActualHRA:          hraReceived,
		RentPaidMinusBasic: rentMinusBasic,
		MetroCityAllowance: cityAllowance,
		FinalExemption:     final,
	}
}

// CalculateFromPercentage derives actual HRA as basic x pct/100 first
func (hc *HRAExemptionCalculator) CalculateFromPercentage(basic, hraPercentage, rentPaid decimal.Decimal, isMetroCity bool) domain.HRAExemptionResult {
	return hc.Calculate(basic, hraFromPercentage(basic, hraPercentage), rentPaid, isMetroCity)
}

func hraFromPercentage(basic, pct decimal.Decimal) decimal.Decimal {
	return basic.Mul(pct).Div(decimal.NewFromInt(100))
}
