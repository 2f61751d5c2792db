package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/chargefleet/chargefleet/internal/engine"
)

// jsonResults is the machine-readable run bundle. IRR and payback use
// pointers so an undefined IRR and a never-recovering payback serialize as
// null instead of a misleading zero (and so +Inf never reaches the JSON
// encoder, which rejects it).
type jsonResults struct {
	RunID          string             `json:"run_id"`
	ComputedAt     string             `json:"computed_at"`
	Market         jsonMarket         `json:"market"`
	Station        jsonStation        `json:"station"`
	Project        jsonProject        `json:"project"`
	Sensitivity    jsonSensitivity    `json:"sensitivity"`
	Securitization jsonSecuritization `json:"securitization"`
}

type jsonMarket struct {
	Year          int     `json:"year"`
	EVStock       float64 `json:"ev_stock_wan"`
	ChargerDemand float64 `json:"charger_demand_wan"`
}

type jsonStation struct {
	AnnualChargingKWh float64  `json:"annual_charging_kwh"`
	TotalRevenue      float64  `json:"total_revenue"`
	EBITDA            float64  `json:"ebitda"`
	NetProfit         float64  `json:"net_profit"`
	EBITDAMargin      float64  `json:"ebitda_margin"`
	NetMargin         float64  `json:"net_margin"`
	StationIRR        float64  `json:"station_irr"`
	PaybackYears      *float64 `json:"payback_years"`
}

type jsonProject struct {
	CashFlowsYi       []float64 `json:"cash_flows_yi"`
	IRR               *float64  `json:"irr"`
	NPV               float64   `json:"npv_yi"`
	DiscountRate      float64   `json:"discount_rate"`
	TotalInvestmentYi float64   `json:"total_investment_yi"`
}

type jsonSensitivity struct {
	MeanIRR     float64            `json:"mean_irr"`
	StdIRR      float64            `json:"std_irr"`
	Percentiles map[string]float64 `json:"percentiles"`
	ProbAbove10 float64            `json:"prob_above_10pct"`
	ProbAbove15 float64            `json:"prob_above_15pct"`
	Accepted    int                `json:"accepted"`
	Trials      int                `json:"trials"`
}

type jsonSecuritization struct {
	PackageStations     int     `json:"package_stations"`
	PackageNOI          float64 `json:"package_noi_yi"`
	AssetValue          float64 `json:"asset_value_yi"`
	DistributionYield   float64 `json:"distribution_yield"`
	OriginalHolderValue float64 `json:"original_holder_value_yi"`
	PublicProceeds      float64 `json:"public_proceeds_yi"`
	MeetsRequirement    bool    `json:"meets_requirement"`
}

// WriteJSON writes the run bundle as indented JSON to w.
func WriteJSON(w io.Writer, r *engine.Results) error {
	s := r.Sensitivity
	v := r.Valuation

	out := jsonResults{
		RunID:      r.RunID,
		ComputedAt: r.ComputedAt.Format(time.RFC3339),
		Market: jsonMarket{
			Year:          r.Market.Year,
			EVStock:       r.Market.EVStock,
			ChargerDemand: r.Market.ChargerDemand,
		},
		Station: jsonStation{
			AnnualChargingKWh: r.Station.Revenue.AnnualChargingKWh,
			TotalRevenue:      r.Station.Revenue.Total,
			EBITDA:            r.Station.EBITDA,
			NetProfit:         r.Station.NetProfit,
			EBITDAMargin:      r.Station.EBITDAMargin,
			NetMargin:         r.Station.NetMargin,
			StationIRR:        r.StationIRR,
		},
		Project: jsonProject{
			CashFlowsYi:       r.CashFlows,
			NPV:               r.NPV,
			DiscountRate:      r.DiscountRate,
			TotalInvestmentYi: r.TotalInvestmentYi,
		},
		Sensitivity: jsonSensitivity{
			MeanIRR: s.MeanIRR,
			StdIRR:  s.StdIRR,
			Percentiles: map[string]float64{
				"p5":  s.Percentiles.P5,
				"p25": s.Percentiles.P25,
				"p50": s.Percentiles.P50,
				"p75": s.Percentiles.P75,
				"p95": s.Percentiles.P95,
			},
			ProbAbove10: s.ProbAbove10,
			ProbAbove15: s.ProbAbove15,
			Accepted:    s.Accepted,
			Trials:      s.Trials,
		},
		Securitization: jsonSecuritization{
			PackageStations:     v.PackageStations,
			PackageNOI:          v.PackageNOI,
			AssetValue:          v.AssetValue,
			DistributionYield:   v.DistributionYield,
			OriginalHolderValue: v.OriginalHolderValue,
			PublicProceeds:      v.PublicProceeds,
			MeetsRequirement:    v.MeetsRequirement,
		},
	}

	if !math.IsInf(r.Station.PaybackYears, 1) {
		payback := r.Station.PaybackYears
		out.Station.PaybackYears = &payback
	}
	if r.IRRDefined {
		irr := r.IRR
		out.Project.IRR = &irr
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding results JSON: %w", err)
	}
	return nil
}
