package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Environment variables honored as overrides after the config file loads.
const (
	// EnvLogLevel overrides logging.level.
	EnvLogLevel = "CHARGEFLEET_LOG_LEVEL"
	// EnvLogFormat overrides logging.format.
	EnvLogFormat = "CHARGEFLEET_LOG_FORMAT"
)

// configVersionConstraint is the range of config file schema versions this
// build understands.
const configVersionConstraint = ">= 1.0.0, < 2.0.0"

// ErrConfigVersion is returned when a config file declares a schema version
// outside the supported range.
var ErrConfigVersion = errors.New("unsupported config version")

// Config is the application configuration. Model assumptions are separate;
// those load through LoadAssumptions or LoadDocument.
type Config struct {
	// Version is the config schema version, checked against the
	// supported range when present.
	Version     string            `yaml:"version"`
	Logging     LoggingConfig     `yaml:"logging"`
	Output      OutputConfig      `yaml:"output"`
	Sensitivity SensitivityConfig `yaml:"sensitivity"`
	Watch       WatchConfig       `yaml:"watch"`
	Report      ReportConfig      `yaml:"report"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// OutputConfig controls how results render.
type OutputConfig struct {
	// Format is "table" or "json".
	Format string `yaml:"format"`
	// Precision is the number of decimal places for monetary figures.
	Precision int `yaml:"precision"`
}

// SensitivityConfig carries the Monte Carlo sweep defaults.
type SensitivityConfig struct {
	Trials  int    `yaml:"trials"`
	Seed    uint64 `yaml:"seed"`
	Workers int    `yaml:"workers"`
}

// WatchConfig controls the document polling loop.
type WatchConfig struct {
	// IntervalSeconds is the poll cadence for document modification
	// checks.
	IntervalSeconds int `yaml:"interval_seconds"`
}

// ReportConfig controls report side outputs.
type ReportConfig struct {
	// CSVPath, when set, receives the committee decision table.
	CSVPath string `yaml:"csv_path"`
	// UpdateDocument rewrites the results section of the parameter
	// document after each run.
	UpdateDocument bool `yaml:"update_document"`
}

// Default returns the built-in application configuration.
func Default() Config {
	return Config{
		Version: "1.0.0",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			Format:    "table",
			Precision: 2,
		},
		Sensitivity: SensitivityConfig{
			Trials:  1000,
			Seed:    1,
			Workers: 4,
		},
		Watch: WatchConfig{
			IntervalSeconds: 2,
		},
		Report: ReportConfig{},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment overrides, in that order. An empty path skips the file step.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		if err := checkVersion(cfg.Version); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// checkVersion gates the declared config schema version against the
// supported range. An empty version is accepted for hand-written files.
func checkVersion(version string) error {
	if version == "" {
		return nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: invalid semver %q", ErrConfigVersion, version)
	}

	constraint, err := semver.NewConstraint(configVersionConstraint)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s is outside %s", ErrConfigVersion, version, configVersionConstraint)
	}
	return nil
}

// applyEnvOverrides layers environment settings over the loaded config.
func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv(EnvLogFormat); format != "" {
		cfg.Logging.Format = format
	}
}
