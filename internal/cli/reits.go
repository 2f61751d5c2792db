package cli

import (
	"github.com/spf13/cobra"

	"github.com/chargefleet/chargefleet/internal/engine"
	"github.com/chargefleet/chargefleet/internal/finance"
	"github.com/chargefleet/chargefleet/internal/report"
)

// newReitsCmd builds the securitization valuation command.
func newReitsCmd() *cobra.Command {
	var expansionYears int

	cmd := &cobra.Command{
		Use:   "reits",
		Short: "REITs asset-package valuation and distribution yield check",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := loadParameters(cmd)
			if err != nil {
				return err
			}

			results, err := engine.Run(cmd.Context(), params, engine.Options{SkipSensitivity: true})
			if err != nil {
				return err
			}

			opts := renderOptions(cmd, report.SectionReits)
			if err := report.Render(cmd.OutOrStdout(), results, opts); err != nil {
				return err
			}

			if expansionYears > 0 {
				plan := finance.RollingExpansion(params, expansionYears)
				return report.RenderExpansion(cmd.OutOrStdout(), plan, opts)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&expansionYears, "expansion", 0,
		"also show the rolling securitization plan through the given year")
	return cmd
}
