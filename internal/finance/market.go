package finance

import (
	"fmt"
	"math"
)

// Market model constants.
const (
	// marketBaseYear anchors the EV stock forecast.
	marketBaseYear = 2023
	// vehiclesPerCharger is the assumed vehicle-to-charger ratio.
	vehiclesPerCharger = 2.5
)

// MarketForecast projects the addressable market for a target year.
// EVStock is in ten-thousands of vehicles, ChargerDemand in ten-thousands of
// charging points.
type MarketForecast struct {
	Year          int
	EVStock       float64
	ChargerDemand float64
}

// ForecastMarket compounds the base-year EV stock to targetYear and derives
// charger demand at the fixed vehicle-to-charger ratio. Target years at or
// before the base year return the base-year values.
func ForecastMarket(p Parameters, targetYear int) MarketForecast {
	years := targetYear - marketBaseYear
	if years <= 0 {
		return MarketForecast{
			Year:          targetYear,
			EVStock:       p.BaseEVs2023,
			ChargerDemand: p.BaseEVs2023 / vehiclesPerCharger,
		}
	}

	evs := p.BaseEVs2023 * math.Pow(1+p.AnnualGrowthRate, float64(years))
	return MarketForecast{
		Year:          targetYear,
		EVStock:       evs,
		ChargerDemand: evs / vehiclesPerCharger,
	}
}

// ValidateGrowth checks observed year-over-year EV stock growth against the
// warning threshold. It returns false with an explanatory message when
// growth has fallen below the threshold the model's revenue ramp assumes.
func ValidateGrowth(p Parameters, current, previous float64) (bool, string) {
	if previous == 0 {
		return false, "no prior-year stock to compute growth from"
	}
	growth := current/previous - 1
	if growth < p.WarningThreshold {
		return false, fmt.Sprintf("observed growth %.1f%% fell below the %.1f%% warning threshold",
			growth*100, p.WarningThreshold*100)
	}
	return true, fmt.Sprintf("observed growth %.1f%% supports the assumption", growth*100)
}
