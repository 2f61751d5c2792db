package cli

import (
	"github.com/spf13/cobra"

	"github.com/chargefleet/chargefleet/internal/report"
)

// newSensitivityCmd builds the Monte Carlo sweep command.
func newSensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Monte Carlo IRR distribution over perturbed assumptions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := sweepOptions(cmd)
			if cmd.Flags().Changed("trials") {
				opts.Trials, _ = cmd.Flags().GetInt("trials")
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed, _ = cmd.Flags().GetUint64("seed")
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers, _ = cmd.Flags().GetInt("workers")
			}
			opts.OnTrialProgress = func(done, total int) {
				logger.Debug().
					Int("done", done).
					Int("total", total).
					Msg("sweep progress")
			}

			results, err := runModel(cmd, opts)
			if err != nil {
				return err
			}
			return report.Render(cmd.OutOrStdout(), results,
				renderOptions(cmd, report.SectionSensitivity))
		},
	}

	cmd.Flags().Int("trials", 0, "number of Monte Carlo trials (default from config)")
	cmd.Flags().Uint64("seed", 0, "random seed for reproducible sweeps (default from config)")
	cmd.Flags().Int("workers", 0, "concurrent trial workers (default from config)")
	return cmd
}
