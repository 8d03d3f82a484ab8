package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
)

// SolveAll runs a search for every target using default constraints and
// collects recommendations across them
func (s *Solver) SolveAll(ctx context.Context, inputs domain.TaxInputs) (*MultiTargetResult, error) {
	mt := &MultiTargetResult{}

	for _, target := range AllTargets() {
		result, err := s.Solve(ctx, Request{Inputs: inputs, Target: target})
		if err != nil {
			return nil, &BreakEvenError{
				Operation: "solve_all",
				Message:   fmt.Sprintf("target %s failed", target),
				Cause:     err,
			}
		}
		mt.Results = append(mt.Results, *result)
	}

	mt.Recommendations = GenerateRecommendations(mt.Results)
	return mt, nil
}

// GenerateRecommendations turns search results into plain language advice
func GenerateRecommendations(results []Result) []string {
	recommendations := []string{}

	for _, r := range results {
		switch r.Status {
		case StatusAlreadyFavorable:
			recommendations = append(recommendations,
				fmt.Sprintf("%s: the old regime already costs no more than the new regime", describe(r.Request.Target)))
		case StatusFound:
			if r.Gap.IsPositive() {
				recommendations = append(recommendations,
					fmt.Sprintf("%s: %s more (%s in total) makes the old regime cheaper",
						describe(r.Request.Target), output.FormatINR(r.Gap), output.FormatINR(*r.BreakEvenValue)))
			} else {
				recommendations = append(recommendations,
					fmt.Sprintf("%s: current %s already exceeds the break-even point of %s",
						describe(r.Request.Target), output.FormatINR(r.CurrentValue), output.FormatINR(*r.BreakEvenValue)))
			}
		case StatusNotReachable:
			recommendations = append(recommendations,
				fmt.Sprintf("%s: the old regime stays more expensive across the searched range", describe(r.Request.Target)))
		}
	}

	return recommendations
}

func describe(target Target) string {
	switch target {
	case TargetRent:
		return "Monthly rent"
	default:
		return "Investments"
	}
}
