package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Lumos-Labs-HQ/datamock/internal/classify"
	"github.com/Lumos-Labs-HQ/datamock/internal/config"
	"github.com/Lumos-Labs-HQ/datamock/internal/converter"
	"github.com/Lumos-Labs-HQ/datamock/internal/logger"
)

var outputFormat string

// loadConfig reads and validates the config, applying the --dialect override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dialectFlag != "" {
		cfg.Dialect = dialectFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newRegistry(cfg *config.Config) *converter.Registry {
	return converter.NewRegistry(converter.Options{Location: cfg.GetLocation()})
}

func newLogger(cfg *config.Config) logger.LoggerI {
	return logger.NewLogger("datamock", cfg.Log.Level)
}

func dialectOf(cfg *config.Config) classify.Dialect {
	return cfg.GetDialect()
}

// readInput reads a column file, or stdin for "" and "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput prints v as indented JSON or YAML depending on --output.
func writeOutput(w io.Writer, v interface{}) error {
	if outputFormat == "yaml" || outputFormat == "yml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
