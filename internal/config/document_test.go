package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `# Fleet Plan 2026

Background prose explaining the buildout. None of this should parse.

## Assumptions

- utilization_rate = 0.35  (peak-city estimate)
- price_spread = 0.60 yuan/kWh

` + "```" + `
guns_per_station = 16
construction_cost = 300
` + "```" + `

utilization_rate = 0.99 this later duplicate must lose
`

func TestExtractDocumentValues(t *testing.T) {
	values, err := ExtractDocumentValues([]byte(sampleDocument))
	require.NoError(t, err)

	assert.InDelta(t, 0.35, values["utilization_rate"], 1e-12, "first assignment wins")
	assert.InDelta(t, 0.60, values["price_spread"], 1e-12)
	assert.InDelta(t, 16.0, values["guns_per_station"], 1e-12, "fenced code blocks parse too")
	assert.InDelta(t, 300.0, values["construction_cost"], 1e-12)
	assert.Len(t, values, 4)
}

func TestExtractDocumentValuesIgnoresNonParameters(t *testing.T) {
	values, err := ExtractDocumentValues([]byte(`
total_budget = 999
x = y = z
utilization_rate = not-a-number
`))
	require.NoError(t, err)
	assert.Empty(t, values, "unknown names and unparseable values are skipped")
}

func TestExtractDocumentValuesEmpty(t *testing.T) {
	values, err := ExtractDocumentValues(nil)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestLoadDocument(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := writeFile(t, "plan.md", sampleDocument)
		params, err := LoadDocument(path)
		require.NoError(t, err)
		assert.InDelta(t, 0.35, params.UtilizationRate, 1e-12)
		assert.Equal(t, 16, params.GunsPerStation)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDocument("nope.md")
		assert.Error(t, err)
	})

	t.Run("non-integral int parameter rejected", func(t *testing.T) {
		path := writeFile(t, "bad.md", "guns_per_station = 12.5\n")
		_, err := LoadDocument(path)
		assert.ErrorIs(t, err, ErrNotIntegral)
	})
}

func TestLeadingNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"0.35", 0.35, true},
		{"0.35  (estimate)", 0.35, true},
		{"-20 wan", -20, true},
		{"+5", 5, true},
		{"", 0, false},
		{"about 12", 0, false},
		{"..", 0, false},
	}
	for _, tt := range tests {
		got, ok := leadingNumber(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-12, "input %q", tt.in)
		}
	}
}
