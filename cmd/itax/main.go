package main

import (
	"fmt"
	"log"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/config"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "itax %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// newEngine builds a tax engine from an optional rules file
func newEngine(rulesFile string, debugMode bool) (*calculation.TaxEngine, error) {
	rules, err := config.NewRulesLoader().Load(rulesFile)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewTaxEngineWithRules(rules)
	if debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine, nil
}

// reportExtension maps a formatter to the file extension used by --save
func reportExtension(f output.Formatter) string {
	if f.Name() == "console" {
		return "txt"
	}
	return f.Name()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "itax",
		Short:         "Indian income tax calculator CLI",
		Long:          "Salary tax calculator comparing the old and new Indian income tax regimes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(calculateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(rulesCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(breakEvenCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate the tax breakdown for one regime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			regime := req.Regime
			if flag, _ := cmd.Flags().GetString("regime"); flag != "" {
				if regime, err = domain.ParseRegime(flag); err != nil {
					return err
				}
			}

			rulesFile, _ := cmd.Flags().GetString("rules")
			debugMode, _ := cmd.Flags().GetBool("debug")
			engine, err := newEngine(rulesFile, debugMode)
			if err != nil {
				return err
			}
			result := engine.Compute(req.Inputs, regime)

			outputFormat, _ := cmd.Flags().GetString("format")
			f, ok := output.GetFormatterByName(outputFormat)
			if !ok {
				return fmt.Errorf("unknown format %q (available: %s)", outputFormat,
					strings.Join(output.AvailableFormatterNames(), ", "))
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				filename, err := output.WriteFormatted(f, &result, reportExtension(f))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := f.Format(&result)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringP("regime", "r", "", "Tax regime (old, new); overrides the input file")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json, yaml, csv)")
	cmd.Flags().String("rules", "", "Path to a rules file overriding the built-in tables")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an inputs file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]

			warnings, err := config.NewInputParser().ValidateFile(inputFile)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "Warning: %s\n", w)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Inputs file %s is valid\n", inputFile)
			return nil
		},
	}
}

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the active tax rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rulesFile, _ := cmd.Flags().GetString("rules")
			rules, err := config.NewRulesLoader().Load(rulesFile)
			if err != nil {
				return err
			}

			var data []byte
			if flag, _ := cmd.Flags().GetString("regime"); flag != "" {
				regime, err := domain.ParseRegime(flag)
				if err != nil {
					return err
				}
				regimeRules, _ := rules.For(regime)
				if data, err = yaml.Marshal(regimeRules); err != nil {
					return fmt.Errorf("failed to marshal rules: %w", err)
				}
			} else if data, err = config.MarshalRules(rules); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringP("regime", "r", "", "Print only one regime (old, new)")
	cmd.Flags().String("rules", "", "Path to a rules file overriding the built-in tables")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
