package main

import (
	"fmt"

	"github.com/rgehrsitz/itax/internal/breakeven"
	"github.com/rgehrsitz/itax/internal/config"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break-even [input-file]",
		Short: "Find the investments or rent at which the old regime stops costing more",
		Long: `Search for the value of one input at which the old and new regimes
produce the same yearly tax, holding every other input fixed.

Targets:
  investments  Annual deductible investments (0 to gross salary)
  rent         Monthly rent paid (0 to gross salary / 12)

Without --target every target is searched.

Examples:
  itax break-even salary.yaml
  itax break-even salary.yaml --target investments --max 300000
  itax break-even salary.yaml --target rent --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			rulesFile, _ := cmd.Flags().GetString("rules")
			debugMode, _ := cmd.Flags().GetBool("debug")
			engine, err := newEngine(rulesFile, debugMode)
			if err != nil {
				return err
			}
			solver := breakeven.NewDefaultSolver(engine)

			outputFormat, _ := cmd.Flags().GetString("format")
			if outputFormat != "table" && outputFormat != "json" {
				return fmt.Errorf("unknown format %q (available: table, json)", outputFormat)
			}

			targetFlag, _ := cmd.Flags().GetString("target")
			if targetFlag == "" {
				mt, err := solver.SolveAll(cmd.Context(), req.Inputs)
				if err != nil {
					return err
				}
				return printBreakEven(cmd, outputFormat, mt, func() string {
					return (&breakeven.TableFormatter{}).FormatMulti(mt)
				})
			}

			target, err := breakeven.ParseTarget(targetFlag)
			if err != nil {
				return err
			}
			request := breakeven.Request{Inputs: req.Inputs, Target: target}

			if s, _ := cmd.Flags().GetString("min"); s != "" {
				v, err := decimal.NewFromString(s)
				if err != nil {
					return fmt.Errorf("invalid --min %q: %w", s, err)
				}
				request.Constraints.Min = &v
			}
			if s, _ := cmd.Flags().GetString("max"); s != "" {
				v, err := decimal.NewFromString(s)
				if err != nil {
					return fmt.Errorf("invalid --max %q: %w", s, err)
				}
				request.Constraints.Max = &v
			}
			if s, _ := cmd.Flags().GetString("tolerance"); s != "" {
				v, err := decimal.NewFromString(s)
				if err != nil {
					return fmt.Errorf("invalid --tolerance %q: %w", s, err)
				}
				request.Tolerance = v
			}

			result, err := solver.Solve(cmd.Context(), request)
			if err != nil {
				return err
			}
			return printBreakEven(cmd, outputFormat, result, func() string {
				return (&breakeven.TableFormatter{}).Format(result)
			})
		},
	}
	cmd.Flags().StringP("target", "t", "", "Target to solve for (investments, rent); all when omitted")
	cmd.Flags().String("min", "", "Lower bound of the search range")
	cmd.Flags().String("max", "", "Upper bound of the search range")
	cmd.Flags().String("tolerance", "", "Allowed yearly tax gap in rupees (default 1)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	cmd.Flags().String("rules", "", "Path to a rules file overriding the built-in tables")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func printBreakEven(cmd *cobra.Command, format string, v any, table func() string) error {
	if format == "json" {
		out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), table())
	return nil
}
