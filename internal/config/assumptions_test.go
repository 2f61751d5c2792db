package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chargefleet/chargefleet/internal/finance"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadAssumptions(t *testing.T) {
	t.Run("overrides over defaults", func(t *testing.T) {
		path := writeFile(t, "assumptions.yaml", `
parameters:
  utilization_rate: 0.35
  price_spread: 0.60
  total_stations: 800
`)
		params, err := LoadAssumptions(path)
		require.NoError(t, err)
		assert.InDelta(t, 0.35, params.UtilizationRate, 1e-12)
		assert.InDelta(t, 0.60, params.PriceSpread, 1e-12)
		assert.Equal(t, 800, params.TotalStations)
		assert.Equal(t, finance.Defaults().GunsPerStation, params.GunsPerStation)
	})

	t.Run("empty file yields defaults", func(t *testing.T) {
		path := writeFile(t, "empty.yaml", "")
		params, err := LoadAssumptions(path)
		require.NoError(t, err)
		assert.Equal(t, finance.Defaults(), params)
	})

	t.Run("unknown key fails loudly", func(t *testing.T) {
		path := writeFile(t, "typo.yaml", `
parameters:
  utilisation_rate: 0.35
`)
		_, err := LoadAssumptions(path)
		assert.ErrorIs(t, err, ErrUnknownParameter)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadAssumptions(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, "broken.yaml", "parameters: [not a map")
		_, err := LoadAssumptions(path)
		assert.Error(t, err)
	})
}

func TestParametersFromValues(t *testing.T) {
	params, err := ParametersFromValues(nil)
	require.NoError(t, err)
	assert.Equal(t, finance.Defaults(), params)

	_, err = ParametersFromValues(map[string]float64{"guns_per_station": 12.5})
	assert.ErrorIs(t, err, ErrNotIntegral)
}
