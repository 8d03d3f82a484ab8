package calculation

import (
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxEngine orchestrates the HRA, slab, surcharge and cess calculators. It
// holds only read-only configuration, so one engine may serve concurrent
// callers.
type TaxEngine struct {
	Rules         domain.RuleBook
	HRACalc       *HRAExemptionCalculator
	SlabCalc      *SlabTaxCalculator
	SurchargeCalc *SurchargeCalculator
	CessCalc      *CessCalculator
	Logger        Logger
}

// NewTaxEngine creates an engine using the built-in rule book
func NewTaxEngine() *TaxEngine {
	return NewTaxEngineWithRules(domain.DefaultRuleBook())
}

// NewTaxEngineWithRules creates an engine from a caller supplied rule book.
// The rule book is copied so later changes by the caller have no effect.
func NewTaxEngineWithRules(rules domain.RuleBook) *TaxEngine {
	rb := rules.Clone()
	return &TaxEngine{
		Rules:         rb,
		HRACalc:       NewHRAExemptionCalculatorWithRules(rb),
		SlabCalc:      NewSlabTaxCalculator(),
		SurchargeCalc: NewSurchargeCalculator(),
		CessCalc:      NewCessCalculatorWithRate(rb.CessRate),
		Logger:        NopLogger{},
	}
}

// SetLogger sets the logger (nil resets to no-op). Call before sharing the engine.
func (te *TaxEngine) SetLogger(l Logger) {
	if l == nil {
		te.Logger = NopLogger{}
		return
	}
	te.Logger = l
}

// RegimeRules returns the rules for r, or the default regime's rules when
// the rule book has no entry for r.
func (te *TaxEngine) RegimeRules(r domain.Regime) domain.RegimeRules {
	if rules, ok := te.Rules.For(r); ok {
		return rules
	}
	return te.Rules.Regimes[domain.DefaultRegime]
}

// ResolveDefaults fills every optional field exactly once:
// basic salary falls back to a share of gross, HRA percentage to the
// configured default, metro city to true, everything else to zero.
func (te *TaxEngine) ResolveDefaults(in domain.TaxInputs) domain.ResolvedInputs {
	out := domain.ResolvedInputs{
		GrossSalary:      in.GrossSalary,
		PFContribution:   in.PFContribution,
		Gratuity:         in.Gratuity,
		TotalInvestments: in.TotalInvestments,
		RentPaid:         valueOr(in.RentPaid, decimal.Zero),
		BasicSalary:      valueOr(in.BasicSalary, in.GrossSalary.Mul(te.Rules.DefaultBasicShare)),
		HRAPercentage:    valueOr(in.HRAPercentage, te.Rules.DefaultHRAPercentage),
		OtherAllowances:  valueOr(in.OtherAllowances, decimal.Zero),
		EmployerPF:       valueOr(in.EmployerPF, decimal.Zero),
		IsMetroCity:      true,
	}
	if in.IsMetroCity != nil {
		out.IsMetroCity = *in.IsMetroCity
	}
	return out
}

func valueOr(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}

// AssembleDeductions builds the regime eligible deduction set
func (te *TaxEngine) AssembleDeductions(rules domain.RegimeRules, in domain.ResolvedInputs, hra domain.HRAExemptionResult) domain.DeductionSet {
	ds := domain.DeductionSet{
		StandardDeduction: rules.StandardDeduction,
		HRAExemption:      decimal.Zero,
		OtherDeductions:   decimal.Zero,
		ProfessionalTax:   te.Rules.AnnualProfessionalTax(),
	}
	if rules.AllowHRAExemption {
		ds.HRAExemption = hra.FinalExemption
	}
	if rules.AllowInvestmentDeductions {
		ds.OtherDeductions = in.TotalInvestments
	}
	return ds
}

// Compute runs the full pipeline for one regime. It never fails: inputs are
// numeric by contract and out-of-domain values are computed as given.
func (te *TaxEngine) Compute(inputs domain.TaxInputs, regime domain.Regime) domain.TaxResult {
	if !regime.IsValid() {
		te.Logger.Warnf("unknown regime %q, using %s", regime, domain.DefaultRegime)
		regime = domain.DefaultRegime
	}
	rules := te.RegimeRules(regime)
	in := te.ResolveDefaults(inputs)
	twelve := decimal.NewFromInt(12)

	grossAfterBasic := in.GrossSalary.Sub(in.PFContribution).Sub(in.Gratuity)

	hra := te.HRACalc.CalculateFromPercentage(in.BasicSalary, in.HRAPercentage, in.RentPaid, in.IsMetroCity)

	deductions := te.AssembleDeductions(rules, in, hra)
	totalDeductions := deductions.Total()

	taxableIncome := grossAfterBasic.Sub(totalDeductions)

	slabs := te.SlabCalc.Calculate(taxableIncome, rules.Slabs)
	tax := slabs.Total

	surcharge, surchargeRate := te.SurchargeCalc.Calculate(taxableIncome, tax, rules.Surcharge)
	cess := te.CessCalc.Calculate(tax, surcharge)
	yearlyTax := tax.Add(surcharge).Add(cess)
	monthlyTax := yearlyTax.Div(twelve)

	monthly := domain.MonthlyDeductions{
		PF:                in.PFContribution.Div(twelve),
		Tax:               monthlyTax,
		ProfessionalTax:   te.Rules.ProfessionalTaxMonthly,
		LabourWelfareFund: rules.MonthlyLabourWelfareFund,
	}

	inHand := grossAfterBasic.Div(twelve).
		Sub(monthlyTax).
		Sub(monthly.PF).
		Sub(monthly.ProfessionalTax)

	te.Logger.Debugf("regime=%s taxable=%s slab=%s surcharge=%s (rate %s) cess=%s yearly=%s",
		regime, taxableIncome, tax, surcharge, surchargeRate, cess, yearlyTax)

	return domain.TaxResult{
		Regime: regime,
		Inputs: in,
		HRA:    hra,
		Breakdown: domain.TaxBreakdown{
			GrossAfterBasicDeductions: grossAfterBasic,
			Deductions:                deductions,
			TotalDeductions:           totalDeductions,
			TaxableIncome:             taxableIncome,
			Slabs:                     slabs,
			SlabTax:                   tax,
			SurchargeRate:             surchargeRate,
			Surcharge:                 surcharge,
			Cess:                      cess,
			YearlyTax:                 yearlyTax,
			MonthlyTax:                monthlyTax,
			Monthly:                   monthly,
			InHandSalary:              inHand,
		},
	}
}

// ComputeBoth runs the pipeline under both regimes with identical inputs
func (te *TaxEngine) ComputeBoth(inputs domain.TaxInputs) (old, nw domain.TaxResult) {
	return te.Compute(inputs, domain.RegimeOld), te.Compute(inputs, domain.RegimeNew)
}
