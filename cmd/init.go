package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/datamock/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a datamock.config.json in the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitializeProject(); err != nil {
			return err
		}

		color.Green("✅ Created %s", config.FileName)
		fmt.Println()

		cfg := config.DefaultConfig()
		if os.Getenv(cfg.Database.URLEnv) != "" {
			fmt.Printf("ℹ️  Using existing %s from environment\n", cfg.Database.URLEnv)
		}
		if os.Getenv(cfg.Task.TokenEnv) == "" {
			color.Yellow("⚠️  %s is not set; `datamock submit` will send no token", cfg.Task.TokenEnv)
		}

		fmt.Println()
		fmt.Printf("🚀 Next steps:\n")
		fmt.Printf("   datamock inspect users -o yaml > users.yaml  # Default rules for a table\n")
		fmt.Printf("   datamock convert to-server users.yaml       # Generator configs\n")
		fmt.Printf("   datamock preview server.json                # Sample values\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
