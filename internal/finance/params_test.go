package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	t.Run("float parameter", func(t *testing.T) {
		p := Defaults()
		require.NoError(t, p.Set("utilization_rate", 0.45))
		assert.InDelta(t, 0.45, p.UtilizationRate, 1e-12)
	})

	t.Run("integer parameter truncates", func(t *testing.T) {
		p := Defaults()
		require.NoError(t, p.Set("guns_per_station", 10.9))
		assert.Equal(t, 10, p.GunsPerStation)
	})

	t.Run("unknown name", func(t *testing.T) {
		p := Defaults()
		err := p.Set("gun_cost", 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownParameter)
	})
}

func TestFromValues(t *testing.T) {
	t.Run("overrides on top of defaults", func(t *testing.T) {
		p, err := FromValues(map[string]float64{
			"price_spread":   0.60,
			"total_stations": 500,
		})
		require.NoError(t, err)
		assert.InDelta(t, 0.60, p.PriceSpread, 1e-12)
		assert.Equal(t, 500, p.TotalStations)
		// Untouched assumptions keep their defaults.
		assert.InDelta(t, 0.30, p.UtilizationRate, 1e-12)
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		_, err := FromValues(map[string]float64{"charger_count": 12})
		assert.ErrorIs(t, err, ErrUnknownParameter)
	})
}

func TestNetInvestmentPerStationWan(t *testing.T) {
	p := Defaults()
	assert.InDelta(t, 200.0, p.NetInvestmentPerStationWan(), 1e-12)

	p.SubsidyPerStation = 300
	assert.InDelta(t, -20.0, p.NetInvestmentPerStationWan(), 1e-12,
		"over-subsidized stations report negative net investment")
}
