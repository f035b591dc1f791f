package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/Lumos-Labs-HQ/datamock/internal/classify"
	"github.com/Lumos-Labs-HQ/datamock/internal/logger"
)

const FileName = "datamock.config.json"

type Config struct {
	Dialect  string   `json:"dialect" mapstructure:"dialect"`
	Timezone string   `json:"timezone,omitempty" mapstructure:"timezone"`
	Database Database `json:"database" mapstructure:"database"`
	Task     Task     `json:"task" mapstructure:"task"`
	Preview  Preview  `json:"preview" mapstructure:"preview"`
	Server   Server   `json:"server" mapstructure:"server"`
	Log      Log      `json:"log" mapstructure:"log"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

// Task describes where mock tasks are submitted to.
type Task struct {
	Endpoint   string `json:"endpoint,omitempty" mapstructure:"endpoint"`
	TokenEnv   string `json:"token_env,omitempty" mapstructure:"token_env"`
	DatabaseID int64  `json:"database_id,omitempty" mapstructure:"database_id"`
	TotalCount int64  `json:"total_count" mapstructure:"total_count"`
	BatchSize  int64  `json:"batch_size" mapstructure:"batch_size"`
	Strategy   string `json:"strategy" mapstructure:"strategy"`
}

type Preview struct {
	Rows int   `json:"rows" mapstructure:"rows"`
	Seed int64 `json:"seed,omitempty" mapstructure:"seed"`
}

type Server struct {
	Addr string `json:"addr" mapstructure:"addr"`
}

type Log struct {
	Level string `json:"level" mapstructure:"level"`
}

// Strategies the task executor accepts for rows that already exist.
var Strategies = []string{"IGNORE", "OVERWRITE", "TERMINATE"}

// DefaultConfig is the configuration written by `datamock init`.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Dialect == "" {
		c.Dialect = string(classify.DialectMySQL)
	}
	if c.Database.Provider == "" {
		c.Database.Provider = "mysql"
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
	if c.Task.TokenEnv == "" {
		c.Task.TokenEnv = "DATAMOCK_TOKEN"
	}
	if c.Task.TotalCount == 0 {
		c.Task.TotalCount = 1000
	}
	if c.Task.BatchSize == 0 {
		c.Task.BatchSize = 200
	}
	if c.Task.Strategy == "" {
		c.Task.Strategy = "IGNORE"
	}
	if c.Preview.Rows == 0 {
		c.Preview.Rows = 10
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = logger.LevelInfo
	}
}

func (c *Config) Validate() error {
	if _, err := classify.ParseDialect(c.Dialect); err != nil {
		return err
	}

	supportedProviders := []string{"postgresql", "postgres", "mysql"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %s: %w", c.Timezone, err)
		}
	}

	known := false
	for _, s := range Strategies {
		if c.Task.Strategy == s {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unsupported task strategy: %s. Supported strategies: %v", c.Task.Strategy, Strategies)
	}

	if c.Task.TotalCount < 0 || c.Task.BatchSize <= 0 {
		return fmt.Errorf("task total_count must not be negative and batch_size must be positive")
	}

	if c.Preview.Rows <= 0 {
		return fmt.Errorf("preview rows must be positive")
	}

	return nil
}

// GetDialect returns the parsed dialect. Call Validate first.
func (c *Config) GetDialect() classify.Dialect {
	d, err := classify.ParseDialect(c.Dialect)
	if err != nil {
		return classify.DialectMySQL
	}
	return d
}

// GetLocation is the session time zone, the local zone when none is set.
func (c *Config) GetLocation() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

// GetTaskToken returns the bearer token for task submission, empty when unset.
func (c *Config) GetTaskToken() string {
	return os.Getenv(c.Task.TokenEnv)
}

func IsInitialized() bool {
	_, err := os.Stat(FileName)
	return err == nil
}

// InitializeProject writes a default config file into the working directory.
func InitializeProject() error {
	if IsInitialized() {
		return fmt.Errorf("%s already exists", FileName)
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(FileName, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to create file %s: %w", FileName, err)
	}
	return nil
}
