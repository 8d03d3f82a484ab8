package transform

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SetInvestments replaces the declared deductible investments
type SetInvestments struct {
	Amount decimal.Decimal
}

func (si *SetInvestments) Name() string { return "set_investments" }

func (si *SetInvestments) Description() string {
	return fmt.Sprintf("Declare ₹%s of deductible investments", si.Amount.StringFixed(0))
}

func (si *SetInvestments) Validate(base domain.TaxInputs) error {
	if si.Amount.IsNegative() {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("amount cannot be negative, got %s", si.Amount), nil)
	}
	return nil
}

func (si *SetInvestments) Apply(base domain.TaxInputs) (domain.TaxInputs, error) {
	return base.WithInvestments(si.Amount), nil
}

// AddInvestments adds to the declared deductible investments
type AddInvestments struct {
	Amount decimal.Decimal
}

func (ai *AddInvestments) Name() string { return "add_investments" }

func (ai *AddInvestments) Description() string {
	return fmt.Sprintf("Add ₹%s of deductible investments", ai.Amount.StringFixed(0))
}

func (ai *AddInvestments) Validate(base domain.TaxInputs) error {
	if base.TotalInvestments.Add(ai.Amount).IsNegative() {
		return NewTransformError(ai.Name(), "validate",
			fmt.Sprintf("investments would become negative (%s + %s)", base.TotalInvestments, ai.Amount), nil)
	}
	return nil
}

func (ai *AddInvestments) Apply(base domain.TaxInputs) (domain.TaxInputs, error) {
	return base.WithInvestments(base.TotalInvestments.Add(ai.Amount)), nil
}

// SetRent replaces the monthly rent paid
type SetRent struct {
	Monthly decimal.Decimal
}

func (sr *SetRent) Name() string { return "set_rent" }

func (sr *SetRent) Description() string {
	return fmt.Sprintf("Pay ₹%s rent per month", sr.Monthly.StringFixed(0))
}

func (sr *SetRent) Validate(base domain.TaxInputs) error {
	if sr.Monthly.IsNegative() {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("rent cannot be negative, got %s", sr.Monthly), nil)
	}
	return nil
}

func (sr *SetRent) Apply(base domain.TaxInputs) (domain.TaxInputs, error) {
	out := base
	out.RentPaid = domain.DecimalPtr(sr.Monthly)
	return out, nil
}

// RaiseSalary scales gross salary, and basic salary when it was supplied,
// by a percentage. PF and other fixed amounts are unchanged.
type RaiseSalary struct {
	Percent decimal.Decimal
}

func (rs *RaiseSalary) Name() string { return "raise_salary" }

func (rs *RaiseSalary) Description() string {
	return fmt.Sprintf("Raise salary by %s%%", rs.Percent.String())
}

func (rs *RaiseSalary) Validate(base domain.TaxInputs) error {
	if rs.Percent.LessThanOrEqual(hundred.Neg()) {
		return NewTransformError(rs.Name(), "validate", fmt.Sprintf("percent must be greater than -100, got %s", rs.Percent), nil)
	}
	return nil
}

func (rs *RaiseSalary) Apply(base domain.TaxInputs) (domain.TaxInputs, error) {
	factor := decimal.NewFromInt(1).Add(rs.Percent.Div(hundred))

	out := base
	out.GrossSalary = base.GrossSalary.Mul(factor)
	if base.BasicSalary != nil {
		out.BasicSalary = domain.DecimalPtr(base.BasicSalary.Mul(factor))
	}
	return out, nil
}

// SetMetro sets whether the worker lives in a metro city
type SetMetro struct {
	Metro bool
}

func (sm *SetMetro) Name() string { return "set_metro" }

func (sm *SetMetro) Description() string {
	if sm.Metro {
		return "Live in a metro city"
	}
	return "Live in a non-metro city"
}

func (sm *SetMetro) Validate(base domain.TaxInputs) error { return nil }

func (sm *SetMetro) Apply(base domain.TaxInputs) (domain.TaxInputs, error) {
	out := base
	out.IsMetroCity = domain.BoolPtr(sm.Metro)
	return out, nil
}

// SetPF replaces the annual provident fund contribution
type SetPF struct {
	Amount decimal.Decimal
}

func (sp *SetPF) Name() string { return "set_pf" }

func (sp *SetPF) Description() string {
	return fmt.Sprintf("Contribute ₹%s to PF per year", sp.Amount.StringFixed(0))
}

func (sp *SetPF) Validate(base domain.TaxInputs) error {
	if sp.Amount.IsNegative() {
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("amount cannot be negative, got %s", sp.Amount), nil)
	}
	return nil
}

func (sp *SetPF) Apply(base domain.TaxInputs) (domain.TaxInputs, error) {
	out := base
	out.PFContribution = sp.Amount
	return out, nil
}
