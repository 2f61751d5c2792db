package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfitabilityBaseCase(t *testing.T) {
	result := Profitability(Defaults())

	// 180 kW x 30% x 20 h = 1,080 kWh per gun per day, 12 guns, 365 days.
	assert.InDelta(t, 1_080.0, result.Revenue.DailyCapacityPerGunKWh, 1e-9)
	assert.InDelta(t, 12_960.0, result.Revenue.DailyCapacityKWh, 1e-9)
	assert.InDelta(t, 4_730_400.0, result.Revenue.AnnualChargingKWh, 1e-6)

	assert.InDelta(t, 2_601_720.0, result.Revenue.Service, 1e-6)
	assert.InDelta(t, 78_051.6, result.Revenue.Auxiliary, 1e-6)
	assert.InDelta(t, OtherRevenuePerYear, result.Revenue.Other, 1e-9)

	assert.InDelta(t, 1_892_160.0, result.Costs.Electricity, 1e-6)
	assert.InDelta(t, 141_912.0, result.Costs.Maintenance, 1e-6)
	// 200 wan net investment, 95% depreciable over 10 years.
	assert.InDelta(t, 190_000.0, result.Costs.Depreciation, 1e-6)

	assert.InDelta(t, 525_699.6, result.EBITDA, 1e-6)
	assert.InDelta(t, 335_699.6, result.NetProfit, 1e-6)
	assert.InDelta(t, 5.9577, result.PaybackYears, 1e-3)
}

func TestProfitabilityRevenueAdditivity(t *testing.T) {
	result := Profitability(Defaults())
	sum := result.Revenue.Service + result.Revenue.Auxiliary + result.Revenue.Other
	assert.InDelta(t, sum, result.Revenue.Total, 1e-9)
}

func TestProfitabilityEBITDAExcludesDepreciation(t *testing.T) {
	result := Profitability(Defaults())
	assert.InDelta(t, result.Costs.Depreciation, result.EBITDA-result.NetProfit, 1e-9)
}

func TestProfitabilityNeverRecovers(t *testing.T) {
	p := Defaults()
	p.UtilizationRate = 0.01 // barely dispensing, costs dominate

	result := Profitability(p)
	require.Negative(t, result.NetProfit)
	assert.True(t, math.IsInf(result.PaybackYears, 1), "payback must be +Inf, never zero or negative")
}

func TestStationIRR(t *testing.T) {
	t.Run("base case", func(t *testing.T) {
		// EBITDA 525,699.6 over a 2,000,000 yuan net investment.
		assert.InDelta(t, 0.2628498, StationIRR(Defaults()), 1e-6)
	})

	t.Run("subsidy covers build cost", func(t *testing.T) {
		p := Defaults()
		p.SubsidyPerStation = p.ConstructionCost
		assert.Zero(t, StationIRR(p))
	})
}
