package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/chargefleet/chargefleet/internal/config"
	"github.com/chargefleet/chargefleet/internal/engine"
	"github.com/chargefleet/chargefleet/internal/finance"
	"github.com/chargefleet/chargefleet/internal/logging"
	"github.com/chargefleet/chargefleet/internal/report"
)

// configKey carries the resolved application config through the command
// context.
type configKeyType struct{}

var configKey = configKeyType{} //nolint:gochecknoglobals // context key

// setup loads the application config, configures logging based on config
// file, environment and CLI flags, and attaches the logger, trace ID and
// config to the command context.
func setup(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
		logCfg.Format = logging.FormatConsole
		logCfg.File = ""
	}

	base, usingFile := logging.New(logCfg)
	logger = logging.ComponentLogger(base, "cli")
	if logCfg.File != "" && !usingFile {
		cmd.PrintErrf("Warning: could not open log file %s, logging to stderr\n", logCfg.File)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	ctx = context.WithValue(ctx, configKey, cfg)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Str("trace_id", traceID).Msg("command started")
	return nil
}

// appConfig retrieves the resolved config from the command context. Falls
// back to defaults when setup has not run (direct RunE calls in tests).
func appConfig(cmd *cobra.Command) config.Config {
	if cfg, ok := cmd.Context().Value(configKey).(config.Config); ok {
		return cfg
	}
	return config.Default()
}

// loadParameters resolves the model assumptions for a command. An explicit
// assumptions file wins over a planning document; with neither flag set the
// built-in defaults apply.
func loadParameters(cmd *cobra.Command) (finance.Parameters, error) {
	paramsPath, _ := cmd.Flags().GetString("params")
	docPath, _ := cmd.Flags().GetString("doc")

	switch {
	case paramsPath != "":
		if docPath != "" {
			logger.Debug().
				Str("params", paramsPath).
				Str("doc", docPath).
				Msg("both --params and --doc set, assumptions file takes precedence")
		}
		return config.LoadAssumptions(paramsPath)
	case docPath != "":
		return config.LoadDocument(docPath)
	default:
		return finance.Defaults(), nil
	}
}

// runModel loads assumptions and executes the engine with the command's
// context.
func runModel(cmd *cobra.Command, opts engine.Options) (*engine.Results, error) {
	params, err := loadParameters(cmd)
	if err != nil {
		return nil, err
	}
	return engine.Run(cmd.Context(), params, opts)
}

// sweepOptions builds engine options with the sensitivity sweep settings
// from the application config.
func sweepOptions(cmd *cobra.Command) engine.Options {
	cfg := appConfig(cmd)
	return engine.Options{
		Trials:  cfg.Sensitivity.Trials,
		Seed:    cfg.Sensitivity.Seed,
		Workers: cfg.Sensitivity.Workers,
	}
}

// renderOptions builds report options for the command's stdout: styled when
// attached to a terminal, with the configured precision.
func renderOptions(cmd *cobra.Command, sections ...string) report.Options {
	cfg := appConfig(cmd)
	return report.Options{
		Styled:    stdoutIsTerminal(cmd),
		Precision: cfg.Output.Precision,
		Sections:  sections,
	}
}

// stdoutIsTerminal reports whether the command writes to a real terminal.
// Commands whose output writer was replaced (tests, pipes) render plain.
func stdoutIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && isTerminal(f)
}
