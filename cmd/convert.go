package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/datamock/internal/converter"
	"github.com/Lumos-Labs-HQ/datamock/internal/editor"
)

var (
	convertInput    string
	convertValidate bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert between form columns and server generator configs",
}

var toServerCmd = &cobra.Command{
	Use:   "to-server [file]",
	Short: "Convert form columns (rule + value) into generator configs",
	Long: `Read a JSON or YAML list of form columns and print the generator configs the
task executor consumes. Columns without a rule get their category default.

Examples:
  datamock convert to-server columns.yaml
  cat columns.json | datamock convert to-server --validate`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := readInput(inputArg(args))
		if err != nil {
			return err
		}
		cols, err := converter.DecodeFormColumns(data)
		if err != nil {
			return err
		}

		reg := newRegistry(cfg)
		d := dialectOf(cfg)

		if convertValidate {
			failed := false
			for _, col := range cols {
				e, err := editor.FromColumn(reg, d, col)
				if err != nil {
					return fmt.Errorf("column %s: %w", col.ColumnName, err)
				}
				if err := editor.Validate(d, col.Column, e.Category(), e.Rule(), e.Value()); err != nil {
					color.Red("❌ %s: %v", col.ColumnName, err)
					failed = true
					continue
				}
				color.Green("✅ %s: %s %s", col.ColumnName, e.Rule(), e.Summary())
			}
			if failed {
				return fmt.Errorf("some columns are invalid")
			}
		}

		out, err := reg.ConvertFormToServerColumns(d, cols)
		if err != nil {
			return err
		}
		return writeOutput(os.Stdout, out)
	},
}

var toFormCmd = &cobra.Command{
	Use:   "to-form [file]",
	Short: "Convert generator configs back into form columns",
	Long: `Read a JSON or YAML list of server columns and print the form columns an
editor would restore. Unknown generators yield an empty rule.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := readInput(inputArg(args))
		if err != nil {
			return err
		}
		cols, err := converter.DecodeServerColumns(data)
		if err != nil {
			return err
		}

		out, err := newRegistry(cfg).ConvertServerColumnsToFormColumns(dialectOf(cfg), cols)
		if err != nil {
			return err
		}
		return writeOutput(os.Stdout, out)
	},
}

func inputArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return convertInput
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.AddCommand(toServerCmd)
	convertCmd.AddCommand(toFormCmd)

	convertCmd.PersistentFlags().StringVarP(&convertInput, "input", "i", "-", "Column file (JSON or YAML), - for stdin")
	toServerCmd.Flags().BoolVar(&convertValidate, "validate", false, "Validate every column value before converting")
}
