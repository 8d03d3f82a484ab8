package domain

import "github.com/shopspring/decimal"

// DEFAULT RULE ASSUMPTIONS:
//
// 1. Slabs: a single assessment year is modelled; no historical tables
//    - OLD: 0-2.5L nil, 2.5-5L 5%, 5-10L 20%, above 10L 30%
//    - NEW: 0-4L nil, then 5% steps every 4L up to 30% above 24L
//
// 2. Surcharge: flat multiplier on slab tax keyed to taxable income
//    - 50L-1Cr 10%, 1-2Cr 15%, 2-5Cr 25%, above 5Cr 37% (OLD) / 25% (NEW)
//    - No marginal relief
//
// 3. Health and education cess: 4% of (tax + surcharge), both regimes
//
// 4. Professional tax: 200/month, both regimes
//
// 5. Labour welfare fund: 25/month under OLD, 0 under NEW (monthly
//    decomposition only; not deducted from in-hand salary)

var (
	lakh  = decimal.NewFromInt(100000)
	crore = decimal.NewFromInt(10000000)
)

func lakhs(n int64) decimal.Decimal  { return lakh.Mul(decimal.NewFromInt(n)) }
func crores(n int64) decimal.Decimal { return crore.Mul(decimal.NewFromInt(n)) }

func upTo(d decimal.Decimal) *decimal.Decimal { return &d }

func rate(pct int64) decimal.Decimal {
	return decimal.NewFromInt(pct).Div(decimal.NewFromInt(100))
}

// DefaultOldSlabs returns the OLD regime slab table
func DefaultOldSlabs() SlabTable {
	return SlabTable{
		{Min: decimal.Zero, Max: upTo(decimal.NewFromInt(250000)), Rate: rate(0)},
		{Min: decimal.NewFromInt(250000), Max: upTo(lakhs(5)), Rate: rate(5)},
		{Min: lakhs(5), Max: upTo(lakhs(10)), Rate: rate(20)},
		{Min: lakhs(10), Rate: rate(30)},
	}
}

// DefaultNewSlabs returns the NEW regime slab table
func DefaultNewSlabs() SlabTable {
	return SlabTable{
		{Min: decimal.Zero, Max: upTo(lakhs(4)), Rate: rate(0)},
		{Min: lakhs(4), Max: upTo(lakhs(8)), Rate: rate(5)},
		{Min: lakhs(8), Max: upTo(lakhs(12)), Rate: rate(10)},
		{Min: lakhs(12), Max: upTo(lakhs(16)), Rate: rate(15)},
		{Min: lakhs(16), Max: upTo(lakhs(20)), Rate: rate(20)},
		{Min: lakhs(20), Max: upTo(lakhs(24)), Rate: rate(25)},
		{Min: lakhs(24), Rate: rate(30)},
	}
}

// DefaultSurcharge returns the surcharge table with the given top tier rate
func DefaultSurcharge(topRate decimal.Decimal) SurchargeTable {
	return SurchargeTable{
		{Min: decimal.Zero, Max: upTo(lakhs(50)), Rate: rate(0)},
		{Min: lakhs(50), Max: upTo(crores(1)), Rate: rate(10)},
		{Min: crores(1), Max: upTo(crores(2)), Rate: rate(15)},
		{Min: crores(2), Max: upTo(crores(5)), Rate: rate(25)},
		{Min: crores(5), Rate: topRate},
	}
}

// DefaultRuleBook returns the built-in rules for both regimes. Every call
// builds fresh tables.
func DefaultRuleBook() RuleBook {
	return RuleBook{
		ProfessionalTaxMonthly: decimal.NewFromInt(200),
		CessRate:               rate(4),
		MetroHRARate:           rate(50),
		NonMetroHRARate:        rate(40),
		RentBasicOffsetRate:    rate(10),
		DefaultBasicShare:      rate(40),
		DefaultHRAPercentage:   decimal.NewFromInt(40),
		Regimes: map[Regime]RegimeRules{
			RegimeOld: {
				Regime:                    RegimeOld,
				StandardDeduction:         decimal.NewFromInt(50000),
				Slabs:                     DefaultOldSlabs(),
				Surcharge:                 DefaultSurcharge(rate(37)),
				AllowHRAExemption:         true,
				AllowInvestmentDeductions: true,
				MonthlyLabourWelfareFund:  decimal.NewFromInt(25),
			},
			RegimeNew: {
				Regime:                    RegimeNew,
				StandardDeduction:         decimal.NewFromInt(75000),
				Slabs:                     DefaultNewSlabs(),
				Surcharge:                 DefaultSurcharge(rate(25)),
				AllowHRAExemption:         false,
				AllowInvestmentDeductions: false,
				MonthlyLabourWelfareFund:  decimal.Zero,
			},
		},
	}
}
