package finance

import "math"

// IRR bisection bounds and termination.
const (
	irrLowerBound   = -0.9
	irrUpperBound   = 1.0
	irrTolerance    = 1e-6
	irrMaxIteration = 100
)

// DefaultConstructionSchedule is the base-case four-year build ramp:
// stations commissioned per year. Years beyond the schedule add no new
// investment.
func DefaultConstructionSchedule() []int {
	return []int{100, 200, 300, 400}
}

// CashFlows builds the project's per-year net free cash flow in yi over the
// project horizon. Each year nets the construction outflow for newly built
// stations against EBITDA inflow from every station commissioned so far.
// Depreciation is non-cash and therefore excluded from the inflow.
// A nil schedule uses DefaultConstructionSchedule.
func CashFlows(p Parameters, schedule []int) []float64 {
	if schedule == nil {
		schedule = DefaultConstructionSchedule()
	}

	stationEBITDAYi := Profitability(p).EBITDA / YuanToYi
	netInvestmentYuan := p.NetInvestmentPerStationWan() * WanToYuan

	flows := make([]float64, 0, p.ProjectYears)
	cumulative := 0

	for year := 0; year < p.ProjectYears; year++ {
		investment := 0.0
		if year < len(schedule) {
			built := schedule[year]
			investment = -(float64(built) * netInvestmentYuan) / YuanToYi
			cumulative += built
		}

		operating := 0.0
		if cumulative > 0 {
			operating = float64(cumulative) * stationEBITDAYi
		}

		flows = append(flows, investment+operating)
	}

	return flows
}

// IRR solves for the internal rate of return of flows by bisecting the NPV
// function over [-0.9, 1.0]. The search accepts the midpoint once |NPV|
// drops below 1e-6 and otherwise returns the best midpoint after the
// iteration cap. When the flows never change sign no root can be bracketed:
// if any investment occurred the approximate yield
// (inflow+outflow)/|outflow|/periods is returned instead, and with no
// investment at all the IRR is undefined (ok=false). Callers must treat an
// undefined IRR as "not computable", never as zero.
func IRR(flows []float64) (irr float64, ok bool) {
	if len(flows) == 0 {
		return 0, false
	}

	var positive, negative float64
	for _, cf := range flows {
		if cf > 0 {
			positive += cf
		} else if cf < 0 {
			negative += cf
		}
	}

	if negative == 0 {
		// All-zero or all-positive series: no investment to earn a
		// return on.
		return 0, false
	}
	if positive == 0 {
		// All outflow: no root in range, report the approximate yield.
		return approximateIRR(positive, negative, len(flows)), true
	}

	low, high := irrLowerBound, irrUpperBound
	mid := (low + high) / 2
	for i := 0; i < irrMaxIteration; i++ {
		mid = (low + high) / 2
		npv := NPV(flows, mid)
		if math.Abs(npv) < irrTolerance {
			return mid, true
		}
		// NPV decreases in the rate, so a positive midpoint NPV means
		// the root lies above mid.
		if npv > 0 {
			low = mid
		} else {
			high = mid
		}
	}
	return mid, true
}

// NPV discounts flows at the given annual rate using each year's zero-based
// index as the exponent, so the year-0 flow enters undiscounted.
func NPV(flows []float64, rate float64) float64 {
	total := 0.0
	for i, cf := range flows {
		total += cf / math.Pow(1+rate, float64(i))
	}
	return total
}

// approximateIRR is the degenerate-series fallback. The division by the
// period count has no strict IRR interpretation; it is a documented
// heuristic, not a guaranteed-accurate rate.
func approximateIRR(positive, negative float64, periods int) float64 {
	return (positive + negative) / math.Abs(negative) / float64(periods)
}
