package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForecastMarket(t *testing.T) {
	p := Defaults()

	t.Run("compounds from the base year", func(t *testing.T) {
		f := ForecastMarket(p, 2027)
		assert.Equal(t, 2027, f.Year)
		// 1260 x 1.25^4
		assert.InDelta(t, 3076.171875, f.EVStock, 1e-6)
		assert.InDelta(t, 3076.171875/2.5, f.ChargerDemand, 1e-6)
	})

	t.Run("base year and earlier return base values", func(t *testing.T) {
		for _, year := range []int{2023, 2020} {
			f := ForecastMarket(p, year)
			assert.InDelta(t, p.BaseEVs2023, f.EVStock, 1e-9, "year %d", year)
		}
	})
}

func TestValidateGrowth(t *testing.T) {
	p := Defaults()

	t.Run("healthy growth", func(t *testing.T) {
		ok, msg := ValidateGrowth(p, 1575, 1260) // +25%
		assert.True(t, ok)
		assert.NotEmpty(t, msg)
	})

	t.Run("below warning threshold", func(t *testing.T) {
		ok, msg := ValidateGrowth(p, 1300, 1260) // ~+3%
		assert.False(t, ok)
		assert.Contains(t, msg, "warning threshold")
	})

	t.Run("no prior year", func(t *testing.T) {
		ok, _ := ValidateGrowth(p, 1260, 0)
		assert.False(t, ok)
	})
}
