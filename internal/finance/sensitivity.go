package finance

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/chargefleet/chargefleet/internal/batch"
)

// Sensitivity factor volatilities and admissibility floors. Construction
// cost and subsidy are declared factors of the model but the sweep does not
// perturb them; the asymmetry mirrors the published model and is kept until
// the product owner decides otherwise.
const (
	UtilizationVolatility      = 0.3
	UtilizationFloor           = 0.1
	PriceSpreadVolatility      = 0.2
	PriceSpreadFloor           = 0.2
	ConstructionCostVolatility = 0.15
	SubsidyVolatility          = 0.25
)

// IRR admissibility bounds for accepted trials. Samples at or outside the
// open interval are numerically degenerate or economically meaningless and
// are dropped without error.
const (
	acceptedIRRMin = 0.0
	acceptedIRRMax = 5.0
)

// IRR thresholds reported as exceedance probabilities.
const (
	thresholdIRR10 = 0.10
	thresholdIRR15 = 0.15
)

// trialBatchSize bounds how many trials one worker runs between progress
// updates.
const trialBatchSize = 64

// PercentileLadder holds the nearest-rank percentile values of the accepted
// IRR sample.
type PercentileLadder struct {
	P5  float64
	P25 float64
	P50 float64
	P75 float64
	P95 float64
}

// SensitivitySummary aggregates the Monte Carlo IRR distribution. When no
// trial produced an admissible IRR, every statistic carries the
// deterministic base-case IRR with zero spread; no field is ever NaN.
type SensitivitySummary struct {
	MeanIRR     float64
	StdIRR      float64
	Percentiles PercentileLadder
	// ProbAbove10 and ProbAbove15 are the fractions of accepted samples
	// exceeding a 10% and 15% IRR.
	ProbAbove10 float64
	ProbAbove15 float64
	// Accepted is the number of trials whose IRR entered the sample.
	Accepted int
	// Trials is the number of trials requested.
	Trials int
}

// SensitivityOptions configures a sweep.
type SensitivityOptions struct {
	// Trials is the number of Monte Carlo runs. Zero or negative trials
	// degrade to the base-case fallback.
	Trials int
	// Seed feeds the per-trial random streams. The same seed always
	// produces the same summary regardless of worker count.
	Seed uint64
	// Workers bounds concurrent trial batches; values below 1 run the
	// sweep sequentially.
	Workers int
	// Schedule overrides the construction schedule for each trial's cash
	// flows. Nil uses the default ramp.
	Schedule []int
	// OnProgress, when non-nil, receives completion counts as batches of
	// trials finish. It must be safe for concurrent use.
	OnProgress func(done, total int)
}

// RunSensitivity perturbs utilization rate and price spread across
// independent trials, recomputes the project IRR for each, and aggregates
// the admissible outcomes. Each trial derives its own Parameters copy, so
// the caller's p is never mutated and trials never observe each other's
// perturbations.
func RunSensitivity(ctx context.Context, p Parameters, opts SensitivityOptions) (SensitivitySummary, error) {
	if opts.Trials <= 0 {
		return baseCaseSummary(p, opts), nil
	}

	type trialResult struct {
		irr float64
		ok  bool
	}
	results := make([]trialResult, opts.Trials)

	indices := make([]int, opts.Trials)
	for i := range indices {
		indices[i] = i
	}

	runBatch := func(_ context.Context, chunk []int, _ int) error {
		for _, i := range chunk {
			// An independent PCG stream per trial keeps the sweep
			// deterministic under any scheduling.
			rng := rand.New(rand.NewPCG(opts.Seed, uint64(i)))
			trial := perturb(p, rng)
			irr, ok := IRR(CashFlows(trial, opts.Schedule))
			results[i] = trialResult{irr: irr, ok: ok}
		}
		return nil
	}

	processor, err := batch.NewProcessor[int](trialBatchSize)
	if err != nil {
		return SensitivitySummary{}, err
	}
	if opts.OnProgress != nil {
		total := opts.Trials
		processor = processor.WithProgress(func(progress *batch.Progress) {
			opts.OnProgress(progress.Processed(), total)
		})
	}

	if opts.Workers > 1 {
		err = processor.ProcessConcurrent(ctx, indices, runBatch, opts.Workers)
	} else {
		err = processor.Process(ctx, indices, runBatch)
	}
	if err != nil {
		return SensitivitySummary{}, err
	}

	accepted := make([]float64, 0, opts.Trials)
	for _, r := range results {
		if r.ok && r.irr > acceptedIRRMin && r.irr < acceptedIRRMax {
			accepted = append(accepted, r.irr)
		}
	}

	if len(accepted) == 0 {
		summary := baseCaseSummary(p, opts)
		summary.Trials = opts.Trials
		return summary, nil
	}

	return summarize(accepted, opts.Trials)
}

// perturb derives a fresh scenario from p with utilization rate and price
// spread scaled by 1+Normal(0, vol), floored at their admissible minimums.
func perturb(p Parameters, rng *rand.Rand) Parameters {
	trial := p
	trial.UtilizationRate = math.Max(UtilizationFloor,
		p.UtilizationRate*(1+rng.NormFloat64()*UtilizationVolatility))
	trial.PriceSpread = math.Max(PriceSpreadFloor,
		p.PriceSpread*(1+rng.NormFloat64()*PriceSpreadVolatility))
	return trial
}

// summarize computes the distribution statistics over the accepted sample.
func summarize(accepted []float64, trials int) (SensitivitySummary, error) {
	n := len(accepted)

	mean, err := stats.Mean(accepted)
	if err != nil {
		return SensitivitySummary{}, err
	}

	// Population form, matching the mean-centered spread of the model.
	std, err := stats.StandardDeviation(accepted)
	if err != nil {
		return SensitivitySummary{}, err
	}

	sorted := append([]float64(nil), accepted...)
	sort.Float64s(sorted)

	var above10, above15 int
	for _, v := range accepted {
		if v > thresholdIRR10 {
			above10++
		}
		if v > thresholdIRR15 {
			above15++
		}
	}

	return SensitivitySummary{
		MeanIRR: mean,
		StdIRR:  std,
		Percentiles: PercentileLadder{
			P5:  nearestRank(sorted, 5),
			P25: nearestRank(sorted, 25),
			P50: nearestRank(sorted, 50),
			P75: nearestRank(sorted, 75),
			P95: nearestRank(sorted, 95),
		},
		ProbAbove10: float64(above10) / float64(n),
		ProbAbove15: float64(above15) / float64(n),
		Accepted:    n,
		Trials:      trials,
	}, nil
}

// nearestRank selects percentile p from an ascending sample: sorted index
// floor(n*p/100), clamped to the last element. stats.Percentile uses a
// different rank rule and would shift the ladder on small samples.
func nearestRank(sorted []float64, p int) float64 {
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// baseCaseSummary populates every statistic from the single deterministic
// base-case IRR. An undefined base IRR collapses to zero.
func baseCaseSummary(p Parameters, opts SensitivityOptions) SensitivitySummary {
	base, ok := IRR(CashFlows(p, opts.Schedule))
	if !ok {
		base = 0
	}

	prob10 := 0.0
	if ok && base > thresholdIRR10 {
		prob10 = 1.0
	}
	prob15 := 0.0
	if ok && base > thresholdIRR15 {
		prob15 = 1.0
	}

	return SensitivitySummary{
		MeanIRR: base,
		StdIRR:  0,
		Percentiles: PercentileLadder{
			P5: base, P25: base, P50: base, P75: base, P95: base,
		},
		ProbAbove10: prob10,
		ProbAbove15: prob15,
		Accepted:    0,
		Trials:      opts.Trials,
	}
}
