package cli

import (
	"github.com/spf13/cobra"

	"github.com/chargefleet/chargefleet/internal/engine"
	"github.com/chargefleet/chargefleet/internal/report"
)

// newStationCmd builds the single-station economics command.
func newStationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "station",
		Short: "Single-station annual revenue, costs, profit and payback",
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, err := runModel(cmd, engine.Options{SkipSensitivity: true})
			if err != nil {
				return err
			}
			return report.Render(cmd.OutOrStdout(), results,
				renderOptions(cmd, report.SectionStation))
		},
	}
}
