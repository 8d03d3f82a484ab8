package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// Target is the input varied while searching for the break-even point
type Target string

const (
	TargetInvestments Target = "investments" // annual aggregate investments
	TargetRent        Target = "rent"        // monthly rent paid
)

// AllTargets returns every supported target
func AllTargets() []Target {
	return []Target{TargetInvestments, TargetRent}
}

// ParseTarget converts a user supplied name into a Target
func ParseTarget(s string) (Target, error) {
	switch Target(s) {
	case TargetInvestments, TargetRent:
		return Target(s), nil
	default:
		return "", &BreakEvenError{
			Operation: "parse_target",
			Message:   fmt.Sprintf("unsupported target %q (expected investments or rent)", s),
		}
	}
}

// Status describes how a search ended
type Status string

const (
	StatusFound            Status = "found"             // old and new tax meet inside the range
	StatusAlreadyFavorable Status = "already_favorable" // old is no worse than new at the range minimum
	StatusNotReachable     Status = "not_reachable"     // old is still worse than new at the range maximum
)

// Constraints bound the searched value. Nil bounds fall back to DefaultConstraints.
type Constraints struct {
	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`
}

// DefaultConstraints returns the search range for a target: zero up to the
// annual gross for investments, or the monthly gross for rent
func DefaultConstraints(target Target, inputs domain.TaxInputs) Constraints {
	upper := inputs.GrossSalary
	if target == TargetRent {
		upper = upper.Div(decimal.NewFromInt(12))
	}
	if !upper.IsPositive() {
		upper = decimal.NewFromInt(1)
	}
	lower := decimal.Zero
	return Constraints{Min: &lower, Max: &upper}
}

// Validate checks that the bounds are ordered and non-negative
func (c *Constraints) Validate() error {
	if c.Min != nil && c.Min.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min cannot be negative",
		}
	}
	if c.Min != nil && c.Max != nil && c.Min.GreaterThan(*c.Max) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   fmt.Sprintf("min %s cannot be greater than max %s", c.Min, c.Max),
		}
	}
	return nil
}

// Request defines one break-even search
type Request struct {
	Inputs        domain.TaxInputs `json:"-"`
	Target        Target           `json:"target"`
	Constraints   Constraints      `json:"constraints"`
	MaxIterations int              `json:"max_iterations"`
	Tolerance     decimal.Decimal  `json:"tolerance"` // allowed |old - new| yearly tax gap
}

// Result is the outcome of a break-even search
type Result struct {
	Request         Request `json:"request"`
	Success         bool    `json:"success"`
	Status          Status  `json:"status"`
	Iterations      int     `json:"iterations"`
	ConvergenceInfo string  `json:"convergence_info"`

	// Value of the target at which the old regime stops costing more
	BreakEvenValue *decimal.Decimal `json:"break_even_value,omitempty"`
	// Value of the target in the supplied inputs
	CurrentValue decimal.Decimal `json:"current_value"`
	// BreakEvenValue - CurrentValue; positive means more is needed
	Gap decimal.Decimal `json:"gap"`

	// Yearly tax of each regime at BreakEvenValue, or at the range max when not reachable
	OldTax decimal.Decimal `json:"old_tax"`
	NewTax decimal.Decimal `json:"new_tax"`
}

// MultiTargetResult contains one result per target
type MultiTargetResult struct {
	Results         []Result `json:"results"`
	Recommendations []string `json:"recommendations"`
}

// SolverOptions configures the bisection search
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance on the yearly tax gap
	Resolution    decimal.Decimal // Smallest bracket width worth splitting
	MaxIterations int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1), // ₹1 tolerance
		Resolution:    decimal.NewFromFloat(0.01),
		MaxIterations: 100,
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
