package breakeven

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

func sampleInputs() domain.TaxInputs {
	return domain.TaxInputs{
		GrossSalary:      decimal.NewFromInt(1200000),
		PFContribution:   decimal.NewFromInt(72000),
		TotalInvestments: decimal.NewFromInt(150000),
		RentPaid:         domain.DecimalPtr(decimal.NewFromInt(15000)),
		BasicSalary:      domain.DecimalPtr(decimal.NewFromInt(480000)),
		HRAPercentage:    domain.DecimalPtr(decimal.NewFromInt(40)),
	}
}

func within(actual decimal.Decimal, expected, tolerance int64) bool {
	return actual.Sub(decimal.NewFromInt(expected)).Abs().LessThanOrEqual(decimal.NewFromInt(tolerance))
}

func TestNewSolver(t *testing.T) {
	calcEngine := calculation.NewTaxEngine()
	options := DefaultSolverOptions()

	solver := NewSolver(calcEngine, options)

	if solver == nil {
		t.Fatal("Expected solver to be created, got nil")
	}
	if solver.CalcEngine != calcEngine {
		t.Error("Expected CalcEngine to match input")
	}
	if solver.Options.MaxIterations != options.MaxIterations {
		t.Error("Expected Options to match input")
	}
}

func TestNewDefaultSolver(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewTaxEngine())

	expected := DefaultSolverOptions()
	if solver.Options.MaxIterations != expected.MaxIterations {
		t.Error("Expected default max iterations to be applied")
	}
	if !solver.Options.Tolerance.Equal(expected.Tolerance) {
		t.Error("Expected default tolerance to be applied")
	}
}

func TestSolver_Solve_Investments(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewTaxEngine())

	result, err := solver.Solve(context.Background(), Request{Inputs: sampleInputs(), Target: TargetInvestments})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !result.Success || result.Status != StatusFound {
		t.Fatalf("Expected break-even to be found, got status %s", result.Status)
	}
	if result.BreakEvenValue == nil || !within(*result.BreakEvenValue, 280800, 10) {
		t.Errorf("Expected break-even near 280800, got %v", result.BreakEvenValue)
	}
	if !within(result.OldTax.Sub(result.NewTax), 0, 1) {
		t.Errorf("Expected taxes within ₹1, got old=%s new=%s", result.OldTax, result.NewTax)
	}
	if !result.NewTax.Equal(decimal.RequireFromString("46862.4")) {
		t.Errorf("Expected new regime tax 46862.4, got %s", result.NewTax)
	}
	if !result.CurrentValue.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("Expected current value 150000, got %s", result.CurrentValue)
	}
	if !within(result.Gap, 130800, 10) {
		t.Errorf("Expected gap near 130800, got %s", result.Gap)
	}
	if result.Iterations == 0 || result.Iterations > DefaultSolverOptions().MaxIterations {
		t.Errorf("Unexpected iteration count %d", result.Iterations)
	}
}

func TestSolver_Solve_Rent(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewTaxEngine())
	in := sampleInputs().WithInvestments(decimal.NewFromInt(300000))

	result, err := solver.Solve(context.Background(), Request{Inputs: in, Target: TargetRent})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Status != StatusFound {
		t.Fatalf("Expected break-even to be found, got status %s", result.Status)
	}
	if !within(*result.BreakEvenValue, 13400, 1) {
		t.Errorf("Expected break-even rent near 13400, got %s", result.BreakEvenValue)
	}
	if !result.CurrentValue.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("Expected current rent 15000, got %s", result.CurrentValue)
	}
	if !result.Gap.IsNegative() {
		t.Errorf("Expected negative gap, got %s", result.Gap)
	}
}

func TestSolver_Solve_NotReachable(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewTaxEngine())
	max := decimal.NewFromInt(100000)

	result, err := solver.Solve(context.Background(), Request{
		Inputs:      sampleInputs(),
		Target:      TargetInvestments,
		Constraints: Constraints{Max: &max},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Success {
		t.Error("Expected search to fail within range")
	}
	if result.Status != StatusNotReachable {
		t.Errorf("Expected not_reachable, got %s", result.Status)
	}
	if result.BreakEvenValue != nil {
		t.Errorf("Expected no break-even value, got %s", result.BreakEvenValue)
	}
	if !result.OldTax.GreaterThan(result.NewTax) {
		t.Error("Expected old regime to cost more at the range max")
	}
}

func TestSolver_Solve_BothZero(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewTaxEngine())
	in := domain.TaxInputs{GrossSalary: decimal.NewFromInt(300000)}

	result, err := solver.Solve(context.Background(), Request{Inputs: in, Target: TargetInvestments})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Status != StatusFound || !result.BreakEvenValue.IsZero() {
		t.Errorf("Expected break-even at 0, got %s %v", result.Status, result.BreakEvenValue)
	}
	if result.Iterations != 0 {
		t.Errorf("Expected no iterations, got %d", result.Iterations)
	}
}

func TestSolver_Solve_AlreadyFavorable(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewTaxEngine())
	min := decimal.NewFromInt(400000)

	result, err := solver.Solve(context.Background(), Request{
		Inputs:      sampleInputs(),
		Target:      TargetInvestments,
		Constraints: Constraints{Min: &min},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Status != StatusAlreadyFavorable {
		t.Errorf("Expected already_favorable, got %s", result.Status)
	}
	if !result.BreakEvenValue.Equal(min) {
		t.Errorf("Expected value at range min, got %s", result.BreakEvenValue)
	}
	if !result.OldTax.Equal(decimal.RequireFromString("22068.8")) {
		t.Errorf("Expected old tax 22068.8, got %s", result.OldTax)
	}
}

func TestSolver_Solve_Errors(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewTaxEngine())
	min := decimal.NewFromInt(10)
	max := decimal.NewFromInt(5)

	tests := []struct {
		name string
		req  Request
		msg  string
	}{
		{
			name: "unsupported target",
			req:  Request{Inputs: sampleInputs(), Target: "salary"},
			msg:  "unsupported target",
		},
		{
			name: "inverted range",
			req:  Request{Inputs: sampleInputs(), Target: TargetRent, Constraints: Constraints{Min: &min, Max: &max}},
			msg:  "cannot be greater than max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := solver.Solve(context.Background(), tt.req)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			var beErr *BreakEvenError
			if !errors.As(err, &beErr) {
				t.Errorf("Expected BreakEvenError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("Expected error containing %q, got %q", tt.msg, err.Error())
			}
		})
	}

	_, err := NewDefaultSolver(nil).Solve(context.Background(), Request{Target: TargetRent})
	if err == nil {
		t.Error("Expected error without an engine")
	}
}

func TestSolver_Solve_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDefaultSolver(calculation.NewTaxEngine()).Solve(ctx, Request{Inputs: sampleInputs(), Target: TargetInvestments})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSolver_SolveAll(t *testing.T) {
	mt, err := NewDefaultSolver(calculation.NewTaxEngine()).SolveAll(context.Background(), sampleInputs())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(mt.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(mt.Results))
	}
	if mt.Results[0].Status != StatusFound {
		t.Errorf("Expected investments break-even to be found, got %s", mt.Results[0].Status)
	}
	if mt.Results[1].Status != StatusNotReachable {
		t.Errorf("Expected rent break-even to be unreachable, got %s", mt.Results[1].Status)
	}
	if len(mt.Recommendations) != 2 {
		t.Fatalf("Expected 2 recommendations, got %v", mt.Recommendations)
	}
	if !strings.HasPrefix(mt.Recommendations[0], "Investments: ") {
		t.Errorf("Unexpected recommendation: %s", mt.Recommendations[0])
	}
	if mt.Recommendations[1] != "Monthly rent: the old regime stays more expensive across the searched range" {
		t.Errorf("Unexpected recommendation: %s", mt.Recommendations[1])
	}
}
