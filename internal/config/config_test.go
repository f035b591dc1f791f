package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/datamock/internal/classify"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "MYSQL", config.Dialect)
	assert.Equal(t, "mysql", config.Database.Provider)
	assert.Equal(t, "DATABASE_URL", config.Database.URLEnv)
	assert.Equal(t, int64(1000), config.Task.TotalCount)
	assert.Equal(t, int64(200), config.Task.BatchSize)
	assert.Equal(t, "IGNORE", config.Task.Strategy)
	assert.Equal(t, 10, config.Preview.Rows)
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.NoError(t, config.Validate())
}

func TestLoadFromViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{
  "dialect": "ob_oracle",
  "timezone": "Asia/Shanghai",
  "database": {"provider": "postgresql"},
  "task": {"batch_size": 50, "strategy": "OVERWRITE"}
}`), 0644))
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	config, err := Load()
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	assert.Equal(t, classify.DialectOracle, config.GetDialect())
	assert.Equal(t, "Asia/Shanghai", config.GetLocation().String())
	assert.Equal(t, int64(50), config.Task.BatchSize)
	assert.Equal(t, int64(1000), config.Task.TotalCount)
	assert.Equal(t, "OVERWRITE", config.Task.Strategy)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"dialect", func(c *Config) { c.Dialect = "db2" }},
		{"provider", func(c *Config) { c.Database.Provider = "sqlite" }},
		{"timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
		{"strategy", func(c *Config) { c.Task.Strategy = "MERGE" }},
		{"batch size", func(c *Config) { c.Task.BatchSize = -1 }},
		{"preview rows", func(c *Config) { c.Preview.Rows = -3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestGetDatabaseURL(t *testing.T) {
	config := DefaultConfig()
	config.Database.URLEnv = "DATAMOCK_TEST_URL"

	t.Setenv("DATAMOCK_TEST_URL", "")
	_, err := config.GetDatabaseURL()
	assert.Error(t, err)

	t.Setenv("DATAMOCK_TEST_URL", "mysql://root@localhost:3306/app")
	url, err := config.GetDatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "mysql://root@localhost:3306/app", url)
}

func TestInitializeProject(t *testing.T) {
	tempDir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(originalDir)
	require.NoError(t, os.Chdir(tempDir))

	assert.False(t, IsInitialized())
	require.NoError(t, InitializeProject())
	assert.True(t, IsInitialized())

	data, err := os.ReadFile(filepath.Join(tempDir, FileName))
	require.NoError(t, err)
	var written Config
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Equal(t, *DefaultConfig(), written)

	assert.Error(t, InitializeProject(), "second initialization should fail")
}
