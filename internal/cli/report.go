package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chargefleet/chargefleet/internal/report"
)

// errNoDocument is returned when --update-doc is requested without a
// planning document to write back to.
var errNoDocument = errors.New("--update-doc requires --doc")

// newReportCmd builds the full committee report command.
func newReportCmd() *cobra.Command {
	var (
		format    string
		csvPath   string
		updateDoc bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Full viability report: station, project, risk and securitization",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := appConfig(cmd)
			if !cmd.Flags().Changed("format") {
				format = cfg.Output.Format
			}
			if !cmd.Flags().Changed("csv") && cfg.Report.CSVPath != "" {
				csvPath = cfg.Report.CSVPath
			}
			if !cmd.Flags().Changed("update-doc") {
				updateDoc = cfg.Report.UpdateDocument
			}

			docPath, _ := cmd.Flags().GetString("doc")
			if updateDoc && docPath == "" {
				return errNoDocument
			}

			results, err := runModel(cmd, sweepOptions(cmd))
			if err != nil {
				return err
			}

			switch format {
			case "json":
				if err := report.WriteJSON(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			case "table", "":
				if err := report.Render(cmd.OutOrStdout(), results, renderOptions(cmd)); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown output format %q (want table or json)", format)
			}

			if csvPath != "" {
				if err := report.SaveCommitteeCSV(csvPath, results); err != nil {
					return err
				}
				logger.Info().Str("path", csvPath).Msg("committee CSV written")
			}
			if updateDoc {
				if err := report.UpdateDocument(docPath, results, time.Now()); err != nil {
					return err
				}
				logger.Info().Str("path", docPath).Msg("results section updated in document")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: table or json (default from config)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "also write the committee decision table to this CSV file")
	cmd.Flags().BoolVar(&updateDoc, "update-doc", false,
		"write the results section back into the planning document")
	return cmd
}
