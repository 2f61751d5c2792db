// Package cli wires the chargefleet commands: single-station economics,
// project cash flows, the Monte Carlo sweep, securitization, the full
// committee report and the live document watch.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the chargefleet CLI.
// It wires up configuration, logging, tracing and the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "chargefleet",
		Short:   "EV charging fleet viability model",
		Long:    "Chargefleet: evaluate the financial viability of an EV fast-charging station fleet",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "application config file (YAML)")
	cmd.PersistentFlags().String("params", "", "model assumptions file (YAML)")
	cmd.PersistentFlags().String("doc", "", "markdown planning document to read assumptions from")

	cmd.AddCommand(
		newStationCmd(),
		newProjectCmd(),
		newSensitivityCmd(),
		newReitsCmd(),
		newReportCmd(),
		newWatchCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Single-station annual P&L from built-in assumptions
  chargefleet station

  # Project IRR and NPV at a 10% discount rate
  chargefleet project --rate 0.10

  # Monte Carlo IRR distribution over 5000 trials
  chargefleet sensitivity --trials 5000

  # Securitization valuation with a five-year expansion plan
  chargefleet reits --expansion 5

  # Full committee report from a planning document, exported as CSV
  chargefleet report --doc plan.md --csv committee.csv

  # Recompute whenever the planning document changes
  chargefleet watch --doc plan.md --tui`
