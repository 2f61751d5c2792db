// Package config loads model assumptions and application settings for
// chargefleet. Assumption values pass through a whitelist schema so a typo
// in a document or YAML file fails loudly instead of silently computing with
// defaults.
package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Kind is the declared numeric kind of a parameter.
type Kind int

const (
	// KindFloat accepts any finite numeric value.
	KindFloat Kind = iota
	// KindInt accepts only integral values.
	KindInt
)

// Schema validation errors.
var (
	ErrUnknownParameter = errors.New("unknown parameter name")
	ErrNotIntegral      = errors.New("parameter requires an integral value")
	ErrNotFinite        = errors.New("parameter value must be finite")
)

// parameterKinds is the whitelist of assumption names and their kinds. It
// mirrors the fields of finance.Parameters one for one.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var parameterKinds = map[string]Kind{
	"base_evs_2023":            KindInt,
	"annual_growth_rate":       KindFloat,
	"warning_threshold":        KindFloat,
	"guns_per_station":         KindInt,
	"utilization_rate":         KindFloat,
	"daily_hours":              KindInt,
	"gun_power":                KindInt,
	"price_spread":             KindFloat,
	"auxiliary_premium":        KindFloat,
	"operating_days":           KindInt,
	"electricity_price":        KindFloat,
	"maintenance_per_kwh":      KindFloat,
	"labor_cost":               KindInt,
	"rent_cost":                KindInt,
	"other_operating_cost":     KindInt,
	"construction_cost":        KindInt,
	"subsidy_per_station":      KindInt,
	"depreciation_years":       KindInt,
	"residual_value_rate":      KindFloat,
	"reits_package_size":       KindInt,
	"reits_cap_rate":           KindFloat,
	"reits_distribution_yield": KindFloat,
	"total_stations":           KindInt,
	"project_years":            KindInt,
	"discount_rate":            KindFloat,
}

// ParameterNames returns the whitelisted assumption names in sorted order.
func ParameterNames() []string {
	names := make([]string, 0, len(parameterKinds))
	for name := range parameterKinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsParameter reports whether name is in the whitelist.
func IsParameter(name string) bool {
	_, ok := parameterKinds[name]
	return ok
}

// ValidateValue checks one named value against the schema.
func ValidateValue(name string, value float64) error {
	kind, ok := parameterKinds[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %q", ErrNotFinite, name)
	}
	if kind == KindInt && value != math.Trunc(value) {
		return fmt.Errorf("%w: %q = %v", ErrNotIntegral, name, value)
	}
	return nil
}

// ValidateValues checks an entire assumption mapping against the schema.
func ValidateValues(values map[string]float64) error {
	for name, value := range values {
		if err := ValidateValue(name, value); err != nil {
			return err
		}
	}
	return nil
}
