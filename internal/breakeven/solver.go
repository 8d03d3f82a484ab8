package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds the value of an input at which the old and new regimes cost
// the same yearly tax
type Solver struct {
	CalcEngine *calculation.TaxEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.TaxEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.TaxEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve runs a bisection search over the request's target. The old regime's
// tax never increases as investments or rent grow while the new regime's tax
// ignores both, so the gap old - new is monotone over the range.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if s.CalcEngine == nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "calculation engine is required"}
	}
	if _, err := ParseTarget(string(req.Target)); err != nil {
		return nil, err
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	defaults := DefaultConstraints(req.Target, req.Inputs)
	if req.Constraints.Min == nil {
		req.Constraints.Min = defaults.Min
	}
	if req.Constraints.Max == nil {
		req.Constraints.Max = defaults.Max
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	lo, hi := *req.Constraints.Min, *req.Constraints.Max
	result := &Result{Request: req, CurrentValue: currentValue(req.Target, req.Inputs)}

	oldLo, newLo := s.evaluate(req, lo)
	if gap := oldLo.Sub(newLo); gap.LessThanOrEqual(req.Tolerance) {
		status := StatusAlreadyFavorable
		if gap.Abs().LessThanOrEqual(req.Tolerance) {
			status = StatusFound
		}
		s.finish(result, status, lo, oldLo, newLo)
		result.ConvergenceInfo = "Old regime is no worse than new at the range minimum"
		return result, nil
	}

	oldHi, newHi := s.evaluate(req, hi)
	if oldHi.Sub(newHi).GreaterThan(req.Tolerance) {
		result.Status = StatusNotReachable
		result.OldTax, result.NewTax = oldHi, newHi
		result.ConvergenceInfo = fmt.Sprintf("Old regime still costs %s more at %s %s",
			oldHi.Sub(newHi).StringFixed(2), req.Target, hi.StringFixed(0))
		return result, nil
	}

	two := decimal.NewFromInt(2)
	for result.Iterations < req.MaxIterations {
		result.Iterations++

		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		oldTax, newTax := s.evaluate(req, mid)
		gap := oldTax.Sub(newTax)

		if gap.Abs().LessThanOrEqual(req.Tolerance) {
			s.finish(result, StatusFound, mid, oldTax, newTax)
			result.ConvergenceInfo = fmt.Sprintf("Converged within ₹%s", req.Tolerance.String())
			return result, nil
		}
		if gap.IsPositive() {
			lo = mid
		} else {
			hi = mid
		}

		// Check convergence
		if hi.Sub(lo).LessThan(s.Options.Resolution) {
			oldTax, newTax = s.evaluate(req, hi)
			s.finish(result, StatusFound, hi, oldTax, newTax)
			result.ConvergenceInfo = "Bisection bracket collapsed"
			return result, nil
		}
	}

	return nil, &BreakEvenError{
		Operation: "solve",
		Message:   fmt.Sprintf("search did not converge after %d iterations", req.MaxIterations),
	}
}

func (s *Solver) finish(r *Result, status Status, value, oldTax, newTax decimal.Decimal) {
	r.Success = true
	r.Status = status
	v := value.Round(2)
	r.BreakEvenValue = &v
	r.Gap = v.Sub(r.CurrentValue)
	r.OldTax, r.NewTax = oldTax, newTax
	s.CalcEngine.Logger.Debugf("break-even %s: status=%s value=%s old=%s new=%s iterations=%d",
		r.Request.Target, status, v, oldTax, newTax, r.Iterations)
}

// evaluate returns the yearly tax of both regimes with the target set to value
func (s *Solver) evaluate(req Request, value decimal.Decimal) (oldTax, newTax decimal.Decimal) {
	old, nw := s.CalcEngine.ComputeBoth(applyTarget(req.Target, req.Inputs, value))
	return old.Breakdown.YearlyTax, nw.Breakdown.YearlyTax
}

func applyTarget(target Target, inputs domain.TaxInputs, value decimal.Decimal) domain.TaxInputs {
	switch target {
	case TargetRent:
		out := inputs
		out.RentPaid = domain.DecimalPtr(value)
		return out
	default:
		return inputs.WithInvestments(value)
	}
}

func currentValue(target Target, inputs domain.TaxInputs) decimal.Decimal {
	switch target {
	case TargetRent:
		if inputs.RentPaid == nil {
			return decimal.Zero
		}
		return *inputs.RentPaid
	default:
		return inputs.TotalInvestments
	}
}
