package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javajack/xlcalc"
	"github.com/javajack/xlcalc/sheetio"
)

type globalFlags struct {
	verbose bool
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:   "xlcalc",
		Short: "Evaluate formulas against sheet files and convert between formats",
		Example: `  xlcalc eval budget.json "=SUM(A1:B2)"
  xlcalc convert budget.yaml budget.xlsx --colors colors.json
  xlcalc describe budget.json "C1==SUM(A1:B2)"
  xlcalc validate budget.json "C1==A1 / B1"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(newEvalCommand(flags))
	cmd.AddCommand(newConvertCommand(flags))
	cmd.AddCommand(newDescribeCommand(flags))
	cmd.AddCommand(newValidateCommand(flags))
	return cmd
}

func (g *globalFlags) logger() *slog.Logger {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (g *globalFlags) load(path string) (*xlcalc.Sheet, *slog.Logger, error) {
	logger := g.logger()
	sheet, err := sheetio.LoadFile(path, xlcalc.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("loaded sheet", "path", path, "rows", sheet.Rows(), "cols", sheet.Cols())
	return sheet, logger, nil
}

func newEvalCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <file> <formula>",
		Short: "Evaluate a formula against a sheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, logger, err := flags.load(args[0])
			if err != nil {
				return err
			}
			engine := xlcalc.NewEngine(sheet, xlcalc.WithLogger(logger))
			result, err := engine.Evaluate(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), xlcalc.NumberValue(result))
			return nil
		},
	}
}

func newConvertCommand(flags *globalFlags) *cobra.Command {
	var (
		colorsPath string
		sheetName  string
	)
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a sheet between formats (json, yaml, csv, xlsx, pdf)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, logger, err := flags.load(args[0])
			if err != nil {
				return err
			}
			opts := []sheetio.Option{sheetio.WithSheetName(sheetName)}
			if colorsPath != "" {
				colors, err := loadColors(colorsPath)
				if err != nil {
					return err
				}
				opts = append(opts, sheetio.WithColors(colors))
			}
			if err := sheetio.SaveFile(args[1], sheet, opts...); err != nil {
				return err
			}
			logger.Debug("saved sheet", "path", args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&colorsPath, "colors", "", "JSON file holding a rows x cols array of #RRGGBB cell colors")
	cmd.Flags().StringVar(&sheetName, "sheet", sheetio.DefaultSheetName, "Worksheet name for xlsx output")
	return cmd
}

func newDescribeCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <file> [cell=formula ...]",
		Short: "Enter formulas into a sheet and print its formula cells and grid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, logger, err := flags.load(args[0])
			if err != nil {
				return err
			}
			session := xlcalc.NewSession(sheet, xlcalc.WithLogger(logger))
			for _, assignment := range args[1:] {
				ref, formula, err := splitAssignment(assignment)
				if err != nil {
					return err
				}
				_, err = session.Enter(ref.Row, ref.Col, formula)
				var fe *xlcalc.FormulaError
				if errors.As(err, &fe) {
					logger.Warn("recalculate", "entry", assignment, "cell", fe.Address, "error", fe.Err)
					continue
				}
				if err != nil {
					return fmt.Errorf("enter %s: %w", assignment, err)
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, xlcalc.Describe(sheet))
			fmt.Fprintln(out, sheet)
			return nil
		},
	}
}

func newValidateCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file> [cell=formula ...]",
		Short: "Apply formulas to a sheet and report the ones that fail",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, logger, err := flags.load(args[0])
			if err != nil {
				return err
			}
			for _, assignment := range args[1:] {
				ref, formula, err := splitAssignment(assignment)
				if err != nil {
					return err
				}
				if err := sheet.SetFormula(formula, ref.Row, ref.Col); err != nil {
					return err
				}
			}
			issues := xlcalc.Validate(sheet, xlcalc.WithLogger(logger))
			out := cmd.OutOrStdout()
			for _, issue := range issues {
				fmt.Fprintln(out, issue)
			}
			if xlcalc.HasErrors(issues) {
				return fmt.Errorf("%d issue(s) found", len(issues))
			}
			fmt.Fprintln(out, "OK")
			return nil
		},
	}
}

// splitAssignment splits "C1==SUM(A1:B2)" into C1 and "=SUM(A1:B2)".
func splitAssignment(assignment string) (xlcalc.CellRef, string, error) {
	cell, formula, ok := strings.Cut(assignment, "=")
	if !ok {
		return xlcalc.CellRef{}, "", fmt.Errorf("argument %q: expected <cell>=<formula>", assignment)
	}
	ref, err := xlcalc.ParseCellRef(cell)
	if err != nil {
		return xlcalc.CellRef{}, "", fmt.Errorf("argument %q: %w", assignment, err)
	}
	return ref, formula, nil
}

func loadColors(path string) (sheetio.Colors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read colors %q: %w", path, err)
	}
	var colors sheetio.Colors
	if err := json.Unmarshal(data, &colors); err != nil {
		return nil, fmt.Errorf("decode colors %q: %w", path, err)
	}
	return colors, nil
}
