package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/chargefleet/chargefleet/internal/engine"
)

// CommitteeRows builds the investment-committee decision table: one metric
// per row, pre-formatted the way the committee reads it.
func CommitteeRows(r *engine.Results) [][]string {
	return [][]string{
		{"metric", "value"},
		{"total_investment_yi", fmt.Sprintf("%.0f", r.TotalInvestmentYi)},
		{"station_irr", percent(r.StationIRR, 1)},
		{"project_irr", irrLabel(r.IRR, r.IRRDefined)},
		{fmt.Sprintf("npv_at_%s_yi", percent(r.DiscountRate, 0)), fmt.Sprintf("%.1f", r.NPV)},
		{"payback_years", payback(r.Station.PaybackYears, 1)},
		{"reits_valuation_yi", fmt.Sprintf("%.1f", r.Valuation.AssetValue)},
		{"distribution_yield", percent(r.Valuation.DistributionYield, 1)},
	}
}

// WriteCommitteeCSV writes the committee table as CSV to w.
func WriteCommitteeCSV(w io.Writer, r *engine.Results) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(CommitteeRows(r)); err != nil {
		return fmt.Errorf("writing committee CSV: %w", err)
	}
	return nil
}

// SaveCommitteeCSV writes the committee table to the named file.
func SaveCommitteeCSV(path string, r *engine.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating committee CSV %s: %w", path, err)
	}
	defer f.Close()
	return WriteCommitteeCSV(f, r)
}
