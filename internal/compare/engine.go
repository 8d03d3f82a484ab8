package compare

import (
	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareEngine runs both regimes on identical inputs and recommends one
type CompareEngine struct {
	CalcEngine        *calculation.TaxEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.TaxEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewTaxEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// Compare computes both regimes. The regime with the lower yearly tax is
// recommended; a tie goes to the default regime.
func (ce *CompareEngine) Compare(inputs domain.TaxInputs) *RegimeComparison {
	oldResult, newResult := ce.CalcEngine.ComputeBoth(inputs)

	oldMetrics := ce.MetricsCalculator.CalculateMetrics(&oldResult)
	newMetrics := ce.MetricsCalculator.CalculateMetrics(&newResult)

	rc := &RegimeComparison{
		Old: ce.MetricsCalculator.CalculateComparison(oldMetrics, newMetrics),
		New: ce.MetricsCalculator.CalculateComparison(newMetrics, oldMetrics),
	}

	switch oldMetrics.YearlyTax.Cmp(newMetrics.YearlyTax) {
	case -1:
		rc.Recommended = domain.RegimeOld
	case 1:
		rc.Recommended = domain.RegimeNew
	default:
		rc.Recommended = domain.DefaultRegime
	}

	best := rc.RecommendedResult()
	other := rc.OtherResult()
	rc.YearlySavings = other.YearlyTax.Sub(best.YearlyTax)
	rc.MonthlyInHandDiff = best.InHandSalary.Sub(other.InHandSalary)
	rc.Recommendations = GenerateRecommendations(rc)

	ce.CalcEngine.Logger.Debugf("compare: old=%s new=%s recommended=%s", oldMetrics.YearlyTax, newMetrics.YearlyTax, rc.Recommended)
	return rc
}

// CompareInvestments compares the regimes at each investment amount, holding
// every other input fixed
func (ce *CompareEngine) CompareInvestments(inputs domain.TaxInputs, amounts []decimal.Decimal) []*RegimeComparison {
	out := make([]*RegimeComparison, 0, len(amounts))
	for _, amt := range amounts {
		out = append(out, ce.Compare(inputs.WithInvestments(amt)))
	}
	return out
}
