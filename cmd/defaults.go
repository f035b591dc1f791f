package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/datamock/internal/converter"
	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
	"github.com/Lumos-Labs-HQ/datamock/internal/types"
)

var (
	defaultsRule      string
	defaultsWidth     int64
	defaultsPrecision int64
	defaultsScale     int64
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults <column-name> <column-type>",
	Short: "Print the default rule and form value of a column",
	Long: `Print the form column a new editing session starts from: the category default
rule (or --rule) with its default value, bounded by the column size.

Examples:
  datamock defaults price "decimal(8,2)" --precision 8 --scale 2
  datamock defaults code "varchar(6)" --width 6 --rule RANDOM_NUMBER`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg := newRegistry(cfg)
		d := dialectOf(cfg)

		col := types.Column{ColumnName: args[0], ColumnType: args[1]}
		if cmd.Flags().Changed("width") {
			col.ColumnObj.Width = types.Int64(defaultsWidth)
		}
		if cmd.Flags().Changed("precision") {
			col.ColumnObj.Precision = types.Int64(defaultsPrecision)
		}
		if cmd.Flags().Changed("scale") {
			col.ColumnObj.Scale = types.Int64(defaultsScale)
		}

		fc := reg.DefaultColumn(d, col)
		if defaultsRule != "" {
			v, err := reg.DefaultValue(d, col, rule.Type(defaultsRule))
			if err != nil {
				return err
			}
			fc = converter.FormColumn{Column: col, Rule: rule.Type(defaultsRule), TypeConfig: v}
		}
		if err := writeOutput(os.Stdout, fc); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(defaultsCmd)

	defaultsCmd.Flags().StringVarP(&defaultsRule, "rule", "r", "", "Rule tag (default: category default)")
	defaultsCmd.Flags().Int64Var(&defaultsWidth, "width", 0, "Character length of the column")
	defaultsCmd.Flags().Int64Var(&defaultsPrecision, "precision", 0, "Numeric precision of the column")
	defaultsCmd.Flags().Int64Var(&defaultsScale, "scale", 0, "Numeric scale or fractional second digits")
}
