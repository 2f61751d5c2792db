// Package engine orchestrates a full model run: station profitability,
// project cash flows with IRR/NPV, the Monte Carlo sensitivity sweep,
// securitization valuation, and the supporting market forecast and
// expansion plan. The numeric logic lives in internal/finance; this package
// only does sequencing, logging and result assembly.
package engine

import (
	"context"
	"time"

	"github.com/chargefleet/chargefleet/internal/finance"
	"github.com/chargefleet/chargefleet/internal/logging"
)

// marketForecastYear is the horizon year reported in the market section.
const marketForecastYear = 2027

// Options tunes a run.
type Options struct {
	// Trials, Seed and Workers configure the sensitivity sweep.
	Trials  int
	Seed    uint64
	Workers int
	// Schedule overrides the construction ramp. Nil uses the default.
	Schedule []int
	// DiscountRate overrides the parameter set's discount rate for the
	// reported NPV when non-nil.
	DiscountRate *float64
	// SkipSensitivity omits the Monte Carlo sweep, for commands that
	// only need the deterministic metrics.
	SkipSensitivity bool
	// ObservedEVStock is the current-year EV stock actual in wan
	// vehicles. When positive it is checked against the prior-year
	// forecast and a warning is logged if growth fell below the
	// configured threshold. Zero skips the check.
	ObservedEVStock float64
	// OnTrialProgress receives sweep completion counts, if set.
	OnTrialProgress func(done, total int)
}

// Results is the full output bundle of one run. Plain nested numeric
// structures; consumers render or export them as they see fit.
type Results struct {
	RunID        string
	ComputedAt   time.Time
	Parameters   finance.Parameters
	Market       finance.MarketForecast
	Station      finance.ProfitabilityResult
	StationIRR   float64
	CashFlows    []float64
	IRR          float64
	IRRDefined   bool
	NPV          float64
	DiscountRate float64
	Sensitivity  finance.SensitivitySummary
	Valuation    finance.ValuationResult
	Expansion    []finance.ExpansionYear

	// TotalInvestmentYi is the fleet-level gross build cost in yi.
	TotalInvestmentYi float64
}

// Run executes the model over params and assembles the result bundle. The
// only failure modes are context cancellation during the sweep; every
// numeric degeneracy is represented in the results themselves (undefined
// IRR, +Inf payback) rather than as an error.
func Run(ctx context.Context, params finance.Parameters, opts Options) (*Results, error) {
	log := logging.FromContext(ctx)
	start := time.Now()
	runID := logging.GetOrGenerateTraceID(ctx)

	log.Debug().
		Str("component", "engine").
		Str("operation", "run").
		Str("run_id", runID).
		Int("trials", opts.Trials).
		Msg("starting model run")

	market := finance.ForecastMarket(params, marketForecastYear)
	if opts.ObservedEVStock > 0 {
		prior := finance.ForecastMarket(params, marketForecastYear-1)
		if ok, msg := finance.ValidateGrowth(params, opts.ObservedEVStock, prior.EVStock); !ok {
			log.Warn().
				Str("component", "engine").
				Str("run_id", runID).
				Float64("observed_ev_stock", opts.ObservedEVStock).
				Msg("growth assumption check: " + msg)
		}
	}

	station := finance.Profitability(params)
	flows := finance.CashFlows(params, opts.Schedule)
	irr, irrDefined := finance.IRR(flows)

	rate := params.DiscountRate
	if opts.DiscountRate != nil {
		rate = *opts.DiscountRate
	}
	npv := finance.NPV(flows, rate)

	results := &Results{
		RunID:        runID,
		ComputedAt:   start,
		Parameters:   params,
		Market:       market,
		Station:      station,
		StationIRR:   finance.StationIRR(params),
		CashFlows:    flows,
		IRR:          irr,
		IRRDefined:   irrDefined,
		NPV:          npv,
		DiscountRate: rate,
		Valuation:    finance.Valuation(params),
		Expansion:    finance.RollingExpansion(params, 0),
		TotalInvestmentYi: float64(params.TotalStations) * params.ConstructionCost *
			finance.WanToYuan / finance.YuanToYi,
	}

	if !irrDefined {
		log.Warn().
			Str("component", "engine").
			Str("run_id", runID).
			Msg("project IRR is undefined for this cash-flow series")
	}

	if !opts.SkipSensitivity {
		summary, err := finance.RunSensitivity(ctx, params, finance.SensitivityOptions{
			Trials:     opts.Trials,
			Seed:       opts.Seed,
			Workers:    opts.Workers,
			Schedule:   opts.Schedule,
			OnProgress: opts.OnTrialProgress,
		})
		if err != nil {
			log.Error().
				Str("component", "engine").
				Str("run_id", runID).
				Err(err).
				Msg("sensitivity sweep aborted")
			return nil, err
		}
		results.Sensitivity = summary

		log.Debug().
			Str("component", "engine").
			Str("run_id", runID).
			Int("accepted", summary.Accepted).
			Float64("mean_irr", summary.MeanIRR).
			Msg("sensitivity sweep complete")
	}

	log.Info().
		Str("component", "engine").
		Str("operation", "run").
		Str("run_id", runID).
		Bool("irr_defined", irrDefined).
		Float64("npv", npv).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("model run complete")

	return results, nil
}
