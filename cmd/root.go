package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	dialectFlag string
	Version     = "0.4.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════╗",
		"║   ┌┬┐┌─┐┌┬┐┌─┐┌┬┐┌─┐┌─┐┬┌─                   ║",
		"║    ││├─┤ │ ├─┤││││ ││  ├┴┐                   ║",
		"║   ─┴┘┴ ┴ ┴ ┴ ┴┴ ┴└─┘└─┘┴ ┴                   ║",
		"║                                              ║",
		"║   Mock data rules for MySQL • Oracle • PG    ║",
		"╚══════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("            ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "datamock",
	Short: "Build and inspect mock data generation rules for table columns",
	Long: `
datamock maps the data generation rule picked for each table column to the
generator configuration a mock data task executor consumes, and back.

Commands:
- init       create datamock.config.json
- classify   which rules a column type accepts
- defaults   the default rule and value of a column
- convert    form columns <-> server generator configs
- inspect    read columns from a live MySQL or PostgreSQL database
- preview    sample values from generator configs
- submit     send a mock data task to the executor
- serve      HTTP API
- mcp        MCP tool server on stdio`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("datamock version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./datamock.config.json)")
	rootCmd.PersistentFlags().StringVarP(&dialectFlag, "dialect", "d", "", "database dialect: mysql, oracle, postgresql (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json", "output format: json or yaml")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("datamock.config")
	}

	viper.SetEnvPrefix("DATAMOCK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		color.Yellow("⚠️  Could not read config %s: %v", cfgFile, err)
	}
}
