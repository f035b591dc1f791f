package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/datamock/internal/classify"
	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
)

var listTypes bool

var classifyCmd = &cobra.Command{
	Use:   "classify [column-type...]",
	Short: "Show the category and rules of column types",
	Long: `Classify native column types into a rule category and list the rules each
category accepts. Types the dialect does not know fall back to OTHER.

Examples:
  datamock classify "varchar(64)" "int(11) unsigned"
  datamock classify -d oracle "INTERVAL DAY(2) TO SECOND(6)"
  datamock classify --list -d postgresql`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		d := dialectOf(cfg)

		if listTypes {
			for _, t := range classify.Types(d) {
				c, _ := classify.Classify(d, t)
				fmt.Printf("%-32s %s\n", t, c)
			}
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("at least one column type is required")
		}

		for _, columnType := range args {
			c, ok := classify.Classify(d, columnType)
			if !ok {
				c = rule.CategoryOther
				color.Yellow("⚠️  %s is not a known %s type", columnType, d)
			}
			color.New(color.FgCyan, color.Bold).Printf("%s", columnType)
			fmt.Printf(" → %s\n", c)
			fmt.Printf("   rules:   %s\n", joinRules(rule.Rules(c), rule.DefaultRule(c)))
		}
		return nil
	},
}

func joinRules(rules []rule.Type, def rule.Type) string {
	parts := make([]string, 0, len(rules))
	for _, r := range rules {
		if r == def {
			parts = append(parts, string(r)+" (default)")
			continue
		}
		parts = append(parts, string(r))
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().BoolVar(&listTypes, "list", false, "List every type the dialect knows")
}
