package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/datamock/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the rule tools over MCP on stdio",
	Long: `
Expose classify_column, default_rule, convert_to_server and convert_to_form as
MCP tools. Stdout carries the protocol, so nothing else is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s := mcp.NewServer(newRegistry(cfg), dialectOf(cfg), Version)
		return server.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
