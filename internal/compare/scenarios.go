package compare

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
	"github.com/rgehrsitz/itax/internal/transform"
)

// ScenarioComparison is the regime comparison for one what-if scenario
type ScenarioComparison struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Comparison  *RegimeComparison `json:"comparison"`
}

// ScenarioSet holds the base comparison and every what-if scenario
type ScenarioSet struct {
	Base      *RegimeComparison    `json:"base"`
	Scenarios []ScenarioComparison `json:"scenarios"`
}

// CompareScenarios compares the regimes on the base inputs and on the inputs
// produced by each template
func (ce *CompareEngine) CompareScenarios(inputs domain.TaxInputs, templates []transform.Template) (*ScenarioSet, error) {
	set := &ScenarioSet{
		Base:      ce.Compare(inputs),
		Scenarios: make([]ScenarioComparison, 0, len(templates)),
	}

	for _, tmpl := range templates {
		modified, err := transform.ApplyTemplate(inputs, tmpl)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", tmpl.Name, err)
		}
		set.Scenarios = append(set.Scenarios, ScenarioComparison{
			Name:        tmpl.Name,
			Description: tmpl.Description,
			Comparison:  ce.Compare(modified),
		})
	}

	return set, nil
}

// FormatScenarios renders one summary line per scenario
func (tf *TableFormatter) FormatScenarios(set *ScenarioSet) string {
	var sb strings.Builder

	sb.WriteString(output.TitleStyle.Render("WHAT-IF SCENARIOS") + "\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-28s %12s %12s %10s %14s\n", "Scenario", "Old Tax", "New Tax", "Best", "Savings"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	row := func(name string, rc *RegimeComparison) {
		sb.WriteString(fmt.Sprintf("%-28s %12s %12s %10s %14s\n",
			name,
			output.FormatINR(rc.Old.YearlyTax),
			output.FormatINR(rc.New.YearlyTax),
			rc.Recommended,
			output.FormatINR(rc.YearlySavings)))
	}

	row("Base", set.Base)
	for _, sc := range set.Scenarios {
		row(sc.Name, sc.Comparison)
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	for _, sc := range set.Scenarios {
		sb.WriteString(fmt.Sprintf("%-28s %s\n", sc.Name, output.MutedStyle.Render(sc.Description)))
	}

	return sb.String()
}

// FormatScenarios generates JSON output for a scenario set
func (jf *JSONFormatter) FormatScenarios(set *ScenarioSet) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(set, "", "  ")
	} else {
		data, err = json.Marshal(set)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// FormatScenarios generates CSV output with one row per scenario
func (cf *CSVFormatter) FormatScenarios(set *ScenarioSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{"Scenario", "Old Yearly Tax", "New Yearly Tax", "Recommended", "Yearly Savings", "Monthly In-Hand Diff"}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	write := func(name string, rc *RegimeComparison) error {
		return writer.Write([]string{
			name,
			rc.Old.YearlyTax.StringFixed(2),
			rc.New.YearlyTax.StringFixed(2),
			rc.Recommended.String(),
			rc.YearlySavings.StringFixed(2),
			rc.MonthlyInHandDiff.StringFixed(2),
		})
	}

	if err := write("base", set.Base); err != nil {
		return "", err
	}
	for _, sc := range set.Scenarios {
		if err := write(sc.Name, sc.Comparison); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}
