package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/output"
)

// TableFormatter formats break-even results as a console report
type TableFormatter struct{}

// Format generates a formatted report for a single result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Target:            %s\n", describe(result.Request.Target)))
	sb.WriteString(fmt.Sprintf("Status:            %s\n", tf.formatStatus(result.Status)))
	sb.WriteString(fmt.Sprintf("Iterations:        %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:       %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Current Value:     %s\n", output.FormatINR(result.CurrentValue)))
	if result.BreakEvenValue != nil {
		sb.WriteString(fmt.Sprintf("Break-Even Value:  %s\n", output.FormatINR(*result.BreakEvenValue)))
		sb.WriteString(fmt.Sprintf("Gap:               %s\n", output.FormatINR(result.Gap)))
	}
	sb.WriteString(fmt.Sprintf("Old Regime Tax:    %s\n", output.FormatINR(result.OldTax)))
	sb.WriteString(fmt.Sprintf("New Regime Tax:    %s\n", output.FormatINR(result.NewTax)))
	sb.WriteString("\n")

	return sb.String()
}

// FormatMulti generates a report covering every target
func (tf *TableFormatter) FormatMulti(mt *MultiTargetResult) string {
	var sb strings.Builder
	for i := range mt.Results {
		sb.WriteString(tf.Format(&mt.Results[i]))
	}
	if len(mt.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range mt.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}
	return sb.String()
}

func (tf *TableFormatter) formatStatus(status Status) string {
	switch status {
	case StatusFound:
		return "✓ Break-even point found"
	case StatusAlreadyFavorable:
		return "✓ Old regime already favorable"
	case StatusNotReachable:
		return "✗ Not reachable within range"
	default:
		return string(status)
	}
}

// JSONFormatter formats break-even results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON for any break-even result value
func (jf *JSONFormatter) Format(v any) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
