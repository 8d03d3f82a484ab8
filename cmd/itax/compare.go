package main

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/compare"
	"github.com/rgehrsitz/itax/internal/config"
	"github.com/rgehrsitz/itax/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare the old and new regimes side by side",
		Long: `Compute both regimes for the same inputs and recommend the one with the
lower yearly tax. When both regimes produce the same tax the new regime is
recommended.

With --with, each listed template or transform spec is applied to the
inputs and compared against the base.

Examples:
  itax compare salary.yaml
  itax compare salary.yaml --format compact
  itax compare salary.yaml --format json --rules rules.yaml
  itax compare salary.yaml --with invest_150k,raise_10pct
  itax compare salary.yaml --with 'set_rent:monthly=20000;no_investments'
  itax compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates := transform.CreateBuiltInTemplates()

			if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(templates))
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
			}
			inputFile := args[0]

			req, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}

			rulesFile, _ := cmd.Flags().GetString("rules")
			debugMode, _ := cmd.Flags().GetBool("debug")
			engine, err := newEngine(rulesFile, debugMode)
			if err != nil {
				return err
			}

			ce := compare.NewCompareEngine(engine)
			outputFormat, _ := cmd.Flags().GetString("format")

			if with, _ := cmd.Flags().GetString("with"); with != "" {
				registry := transform.NewTransformRegistry()
				var scenarios []transform.Template
				for _, entry := range transform.ParseTemplateList(with) {
					tmpl, err := transform.Resolve(templates, registry, entry)
					if err != nil {
						return err
					}
					scenarios = append(scenarios, tmpl)
				}

				set, err := ce.CompareScenarios(req.Inputs, scenarios)
				if err != nil {
					return err
				}
				set.Base.InputPath = inputFile
				return printScenarios(cmd, outputFormat, set)
			}

			rc := ce.Compare(req.Inputs)
			rc.InputPath = inputFile

			var out string
			switch outputFormat {
			case "table":
				out = (&compare.TableFormatter{}).Format(rc)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(rc) + "\n"
			case "json":
				if out, err = (&compare.JSONFormatter{Pretty: true}).Format(rc); err != nil {
					return err
				}
				out += "\n"
			case "csv":
				if out, err = (&compare.CSVFormatter{}).Format(rc); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (available: table, compact, json, csv)", outputFormat)
			}

			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().String("with", "", "Templates or transform specs to compare against the base (comma or semicolon separated)")
	cmd.Flags().Bool("list-templates", false, "List all available what-if templates")
	cmd.Flags().String("rules", "", "Path to a rules file overriding the built-in tables")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func printScenarios(cmd *cobra.Command, format string, set *compare.ScenarioSet) error {
	var out string
	var err error
	switch format {
	case "table", "compact":
		out = (&compare.TableFormatter{}).FormatScenarios(set)
	case "json":
		if out, err = (&compare.JSONFormatter{Pretty: true}).FormatScenarios(set); err != nil {
			return err
		}
		out += "\n"
	case "csv":
		if out, err = (&compare.CSVFormatter{}).FormatScenarios(set); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (available: table, compact, json, csv)", format)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
