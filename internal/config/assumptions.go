package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chargefleet/chargefleet/internal/finance"
)

// assumptionsFile is the YAML shape of an assumptions overlay. Only the
// parameters section is modeled; every key inside it must pass the schema.
type assumptionsFile struct {
	Parameters map[string]float64 `yaml:"parameters"`
}

// LoadAssumptions reads a YAML assumptions file and builds a parameter set
// with per-key fallback to the documented defaults. An empty or absent
// parameters section yields the full default set.
func LoadAssumptions(path string) (finance.Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return finance.Parameters{}, fmt.Errorf("reading assumptions file %s: %w", path, err)
	}

	var file assumptionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return finance.Parameters{}, fmt.Errorf("parsing assumptions YAML from %s: %w", path, err)
	}

	return ParametersFromValues(file.Parameters)
}

// ParametersFromValues validates values against the schema and applies them
// over the defaults. A nil or empty map returns the defaults unchanged.
func ParametersFromValues(values map[string]float64) (finance.Parameters, error) {
	if err := ValidateValues(values); err != nil {
		return finance.Parameters{}, err
	}
	params, err := finance.FromValues(values)
	if err != nil {
		// The schema whitelist and finance.Set cover the same names, so
		// this only fires if the two drift apart.
		return finance.Parameters{}, err
	}
	return params, nil
}
