package calculation

import (
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Slab tax: marginal accumulation over the regime's ordered bands
//    - Negative taxable income is clamped to zero here and nowhere else
//    - Bands are [Min, Max); the final band is [Min, inf)
//
// 2. Surcharge: one tier is selected by taxable income and its rate is
//    applied to the whole slab tax. There is no marginal relief, so total tax
//    jumps at each tier boundary.
//
// 3. Cess: flat rate on (slab tax + surcharge) under both regimes

// SlabTaxCalculator allocates taxable income across a slab table
type SlabTaxCalculator struct{}

// NewSlabTaxCalculator creates a new slab tax calculator
func NewSlabTaxCalculator() *SlabTaxCalculator {
	return &SlabTaxCalculator{}
}

// Calculate walks the bands in ascending order, taxing min(remaining, width)
// at each band's rate until the income is used up.
func (sc *SlabTaxCalculator) Calculate(taxableIncome decimal.Decimal, table domain.SlabTable) domain.SlabBreakdown {
	remaining := decimal.Max(decimal.Zero, taxableIncome)

	result := domain.SlabBreakdown{
		Bands: make([]domain.BandTax, len(table)),
	}
	for i := range result.Slabs {
		result.Slabs[i] = decimal.Zero
	}

	slot := 0
	for i, band := range table {
		bt := domain.BandTax{Min: band.Min, Max: band.Max, Rate: band.Rate, Taxable: decimal.Zero, Tax: decimal.Zero}

		if remaining.GreaterThan(decimal.Zero) {
			inBand := remaining
			if width, bounded := band.Width(); bounded {
				inBand = decimal.Min(remaining, width)
			}
			bt.Taxable = inBand
			bt.Tax = inBand.Mul(band.Rate)
			remaining = remaining.Sub(inBand)
			result.Total = result.Total.Add(bt.Tax)
		}
		result.Bands[i] = bt

		// Zero-rate bands never occupy a presentation slot. Tables with more
		// taxed bands than slots fold the overflow into the last slot.
		if band.Rate.IsZero() {
			continue
		}
		idx := slot
		if idx >= domain.PresentationSlabs {
			idx = domain.PresentationSlabs - 1
		}
		result.Slabs[idx] = result.Slabs[idx].Add(bt.Tax)
		slot++
	}

	return result
}

// SurchargeCalculator selects an income tier and applies its rate to base tax
type SurchargeCalculator struct{}

// NewSurchargeCalculator creates a new surcharge calculator
func NewSurchargeCalculator() *SurchargeCalculator {
	return &SurchargeCalculator{}
}

// SelectTier returns the single tier with Min < taxableIncome <= Max. Income
// at or below the first tier's lower bound selects the first tier.
func (sc *SurchargeCalculator) SelectTier(taxableIncome decimal.Decimal, table domain.SurchargeTable) (domain.SurchargeTier, bool) {
	if len(table) == 0 {
		return domain.SurchargeTier{}, false
	}
	if taxableIncome.LessThanOrEqual(table[0].Min) {
		return table[0], true
	}
	for _, tier := range table {
		if taxableIncome.LessThanOrEqual(tier.Min) {
			continue
		}
		if tier.Max == nil || taxableIncome.LessThanOrEqual(*tier.Max) {
			return tier, true
		}
	}
	return domain.SurchargeTier{}, false
}

// Calculate returns the surcharge on tax and the rate that produced it
func (sc *SurchargeCalculator) Calculate(taxableIncome, tax decimal.Decimal, table domain.SurchargeTable) (surcharge, rate decimal.Decimal) {
	tier, ok := sc.SelectTier(taxableIncome, table)
	if !ok {
		return decimal.Zero, decimal.Zero
	}
	return tax.Mul(tier.Rate), tier.Rate
}

// CessCalculator applies the flat health and education cess
type CessCalculator struct {
	Rate decimal.Decimal
}

// NewCessCalculator creates a cess calculator with the default 4% rate
func NewCessCalculator() *CessCalculator {
	return &CessCalculator{Rate: domain.DefaultRuleBook().CessRate}
}

// NewCessCalculatorWithRate creates a cess calculator with a configured rate
func NewCessCalculatorWithRate(rate decimal.Decimal) *CessCalculator {
	return &CessCalculator{Rate: rate}
}

// Calculate returns (tax + surcharge) x rate
func (cc *CessCalculator) Calculate(tax, surcharge decimal.Decimal) decimal.Decimal {
	return tax.Add(surcharge).Mul(cc.Rate)
}
