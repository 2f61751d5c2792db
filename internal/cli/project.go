package cli

import (
	"github.com/spf13/cobra"

	"github.com/chargefleet/chargefleet/internal/engine"
	"github.com/chargefleet/chargefleet/internal/report"
)

// newProjectCmd builds the project-level cash flow command.
func newProjectCmd() *cobra.Command {
	var (
		rate     float64
		observed float64
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Thousand-station cash flows, IRR and NPV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := engine.Options{SkipSensitivity: true, ObservedEVStock: observed}
			if cmd.Flags().Changed("rate") {
				opts.DiscountRate = &rate
			}

			results, err := runModel(cmd, opts)
			if err != nil {
				return err
			}
			return report.Render(cmd.OutOrStdout(), results,
				renderOptions(cmd, report.SectionMarket, report.SectionProject))
		},
	}

	cmd.Flags().Float64Var(&rate, "rate", 0, "discount rate for NPV (overrides assumptions)")
	cmd.Flags().Float64Var(&observed, "observed-stock", 0,
		"observed current-year EV stock in 万 vehicles, checked against the forecast growth assumption")
	return cmd
}
