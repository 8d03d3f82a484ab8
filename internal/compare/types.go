package compare

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
	"github.com/shopspring/decimal"
)

// RegimeResult summarizes one regime's computation with the metrics used for comparison
type RegimeResult struct {
	Regime domain.Regime     `json:"regime"`
	Label  string            `json:"label"`
	Result *domain.TaxResult `json:"result,omitempty"`

	// Key Metrics
	TaxableIncome   decimal.Decimal `json:"taxableIncome"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	YearlyTax       decimal.Decimal `json:"yearlyTax"`
	MonthlyTax      decimal.Decimal `json:"monthlyTax"`
	InHandSalary    decimal.Decimal `json:"inHandSalary"`
	EffectiveRate   decimal.Decimal `json:"effectiveRate"` // yearly tax as % of gross

	// Comparison to the other regime
	TaxDiffFromOther    decimal.Decimal `json:"taxDiffFromOther"`
	InHandDiffFromOther decimal.Decimal `json:"inHandDiffFromOther"`
}

// RegimeComparison is the side by side result of running both regimes on identical inputs
type RegimeComparison struct {
	Old               RegimeResult    `json:"old"`
	New               RegimeResult    `json:"new"`
	Recommended       domain.Regime   `json:"recommended"`
	YearlySavings     decimal.Decimal `json:"yearlySavings"`
	MonthlyInHandDiff decimal.Decimal `json:"monthlyInHandDiff"`
	Recommendations   []string        `json:"recommendations"`
	InputPath         string          `json:"inputPath,omitempty"`
}

// RecommendedResult returns the result for the recommended regime
func (rc *RegimeComparison) RecommendedResult() *RegimeResult {
	if rc.Recommended == domain.RegimeOld {
		return &rc.Old
	}
	return &rc.New
}

// OtherResult returns the result for the regime that was not recommended
func (rc *RegimeComparison) OtherResult() *RegimeResult {
	if rc.Recommended == domain.RegimeOld {
		return &rc.New
	}
	return &rc.Old
}

// MetricsCalculator extracts key metrics from tax results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one regime's result
func (mc *MetricsCalculator) CalculateMetrics(result *domain.TaxResult) RegimeResult {
	b := result.Breakdown
	rr := RegimeResult{
		Regime:          result.Regime,
		Label:           result.Regime.Label(),
		Result:          result,
		TaxableIncome:   b.TaxableIncome,
		TotalDeductions: b.TotalDeductions,
		YearlyTax:       b.YearlyTax,
		MonthlyTax:      b.MonthlyTax,
		InHandSalary:    b.InHandSalary,
	}
	if result.Inputs.GrossSalary.IsPositive() {
		rr.EffectiveRate = b.YearlyTax.Div(result.Inputs.GrossSalary).Mul(decimal.NewFromInt(100))
	}
	return rr
}

// CalculateComparison fills the deltas of a regime against the other one
func (mc *MetricsCalculator) CalculateComparison(rr, other RegimeResult) RegimeResult {
	rr.TaxDiffFromOther = rr.YearlyTax.Sub(other.YearlyTax)
	rr.InHandDiffFromOther = rr.InHandSalary.Sub(other.InHandSalary)
	return rr
}

// GenerateRecommendations creates plain language recommendations for a comparison
func GenerateRecommendations(rc *RegimeComparison) []string {
	recommendations := []string{}
	best := rc.RecommendedResult()
	other := rc.OtherResult()

	if rc.YearlySavings.IsZero() {
		recommendations = append(recommendations,
			fmt.Sprintf("Both regimes produce the same yearly tax of %s; %s is the default",
				output.FormatINR(best.YearlyTax), best.Label))
	} else {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Tax: %s saves %s per year (%s per month) over the %s",
				best.Label,
				output.FormatINR(rc.YearlySavings),
				output.FormatINR(rc.YearlySavings.Div(decimal.NewFromInt(12))),
				other.Label))
	}

	if rc.MonthlyInHandDiff.IsPositive() {
		recommendations = append(recommendations,
			fmt.Sprintf("Higher In-Hand: %s pays %s more per month", best.Label, output.FormatINR(rc.MonthlyInHandDiff)))
	}

	// investments only count under the old regime
	if rc.Recommended == domain.RegimeNew && rc.Old.Result != nil {
		if inv := rc.Old.Result.Inputs.TotalInvestments; inv.IsPositive() {
			recommendations = append(recommendations,
				fmt.Sprintf("Declared investments of %s are not deductible under the %s", output.FormatINR(inv), rc.New.Label))
		}
	}

	return recommendations
}
