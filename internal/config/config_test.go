package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, 1000, cfg.Sensitivity.Trials)
	assert.Equal(t, 2, cfg.Watch.IntervalSeconds)
}

func TestLoad(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeFile(t, "config.yaml", `
version: "1.2.0"
logging:
  level: debug
sensitivity:
  trials: 5000
  workers: 8
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, 5000, cfg.Sensitivity.Trials)
		assert.Equal(t, 8, cfg.Sensitivity.Workers)
		// Unspecified settings keep their defaults.
		assert.Equal(t, "table", cfg.Output.Format)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("no-such-config.yaml")
		assert.Error(t, err)
	})
}

func TestLoadVersionGate(t *testing.T) {
	t.Run("future major rejected", func(t *testing.T) {
		path := writeFile(t, "config.yaml", `version: "2.0.0"`)
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrConfigVersion)
	})

	t.Run("garbage version rejected", func(t *testing.T) {
		path := writeFile(t, "config.yaml", `version: "latest"`)
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrConfigVersion)
	})

	t.Run("absent version accepted", func(t *testing.T) {
		path := writeFile(t, "config.yaml", `logging: {level: warn}`)
		_, err := Load(path)
		assert.NoError(t, err)
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "trace")
	t.Setenv(EnvLogFormat, "json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "trace", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}
