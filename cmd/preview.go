package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/datamock/internal/converter"
	"github.com/Lumos-Labs-HQ/datamock/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Sample rows from server generator configs",
	Long: `
Read a JSON or YAML list of server columns and print sample rows the way the
task executor would generate them. Skipped columns are left out of the rows.

Examples:
  datamock preview server.json
  datamock convert to-server users.yaml | datamock preview --rows 5 --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		path := "-"
		if len(args) > 0 {
			path = args[0]
		}
		data, err := readInput(path)
		if err != nil {
			return err
		}
		cols, err := converter.DecodeServerColumns(data)
		if err != nil {
			return err
		}

		rows := cfg.Preview.Rows
		if cmd.Flags().Changed("rows") {
			rows, _ = cmd.Flags().GetInt("rows")
		}
		if rows <= 0 {
			return fmt.Errorf("--rows must be positive, got %d", rows)
		}
		seed := cfg.Preview.Seed
		if cmd.Flags().Changed("seed") {
			seed, _ = cmd.Flags().GetInt64("seed")
		}

		s, err := preview.New(seed, newRegistry(cfg).Options())
		if err != nil {
			return err
		}
		out, err := s.Rows(cols, rows)
		if err != nil {
			return err
		}
		return writeOutput(os.Stdout, out)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().IntP("rows", "n", 10, "Number of rows to sample")
	previewCmd.Flags().Int64("seed", 0, "Random seed (0 uses the clock)")
}
