package cmd

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/datamock/internal/config"
	"github.com/Lumos-Labs-HQ/datamock/internal/converter"
	"github.com/Lumos-Labs-HQ/datamock/internal/logger"
	"github.com/Lumos-Labs-HQ/datamock/internal/task"
	"github.com/Lumos-Labs-HQ/datamock/internal/utils"
)

var submitCmd = &cobra.Command{
	Use:   "submit <table> [file]",
	Short: "Send a mock data task to the executor",
	Long: `
Wrap a list of server columns into a MOCKDATA task and POST it to
task.endpoint. Form columns are accepted with --form and converted first.
The request is sent once; a failed submission is reported and not retried.

Examples:
  datamock submit users server.json
  datamock submit users users.yaml --form --total 50000 --strategy OVERWRITE`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Task.Endpoint == "" {
			return fmt.Errorf("task.endpoint is not configured")
		}

		path := "-"
		if len(args) > 1 {
			path = args[1]
		}
		data, err := readInput(path)
		if err != nil {
			return err
		}

		var cols []converter.ServerColumn
		if form, _ := cmd.Flags().GetBool("form"); form {
			formCols, err := converter.DecodeFormColumns(data)
			if err != nil {
				return err
			}
			if cols, err = newRegistry(cfg).ConvertFormToServerColumns(dialectOf(cfg), formCols); err != nil {
				return err
			}
		} else if cols, err = converter.DecodeServerColumns(data); err != nil {
			return err
		}

		opts := task.Options{
			DatabaseID: cfg.Task.DatabaseID,
			TotalCount: cfg.Task.TotalCount,
			BatchSize:  cfg.Task.BatchSize,
			Strategy:   cfg.Task.Strategy,
		}
		opts.TaskName, _ = cmd.Flags().GetString("name")
		if cmd.Flags().Changed("total") {
			opts.TotalCount, _ = cmd.Flags().GetInt64("total")
		}
		if cmd.Flags().Changed("strategy") {
			opts.Strategy, _ = cmd.Flags().GetString("strategy")
			if !slices.Contains(config.Strategies, opts.Strategy) {
				return fmt.Errorf("unknown strategy %q, expected one of %v", opts.Strategy, config.Strategies)
			}
		}

		if opts.Strategy == "OVERWRITE" {
			yes, _ := cmd.Flags().GetBool("yes")
			if path == "-" && !yes {
				return fmt.Errorf("OVERWRITE reads columns from stdin; pass --yes to confirm")
			}
			prompt := utils.NewPrompter(os.Stdin, os.Stdout)
			if !prompt.AskConfirmation(fmt.Sprintf("Overwrite existing rows of %s?", args[0]), yes) {
				color.Yellow("⚠️  Submission cancelled")
				return nil
			}
		}

		log := newLogger(cfg)
		defer logger.Cleanup(log)

		req := task.NewRequest(args[0], cols, opts)
		color.Cyan("📤 Submitting %s (%d columns, %d rows)...", req.Parameters.TaskName, len(cols), opts.TotalCount)

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		resp, err := task.NewClient(cfg.Task.Endpoint, cfg.GetTaskToken(), log).Submit(ctx, req)
		if err != nil {
			color.Red("❌ Submission failed")
			return err
		}

		color.Green("✅ Task submitted (request %s)", req.RequestID)
		if len(resp.Data) > 0 {
			fmt.Println(string(resp.Data))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().Bool("form", false, "Input holds form columns instead of server columns")
	submitCmd.Flags().String("name", "", "Task name (default mock_<table>_<timestamp>)")
	submitCmd.Flags().Int64("total", 0, "Rows to generate (overrides task.total_count)")
	submitCmd.Flags().String("strategy", "", "IGNORE, OVERWRITE or TERMINATE (overrides task.strategy)")
	submitCmd.Flags().BoolP("yes", "y", false, "Skip the OVERWRITE confirmation")
}
