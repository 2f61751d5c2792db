// Package finance implements the numeric core of the chargefleet model:
// single-station profitability, project cash flows with IRR/NPV, Monte Carlo
// sensitivity sweeps, and securitization valuation for an EV fast-charging
// fleet. All functions are pure: they take a Parameters value and never
// mutate shared state.
package finance

import (
	"errors"
	"fmt"
)

// Monetary unit conversions. Cost assumptions are stated in ten-thousands of
// yuan (wan); station-level results are reported in yuan; project-level cash
// flows and valuations are reported in hundred-millions of yuan (yi).
const (
	// WanToYuan converts ten-thousand-yuan amounts to yuan.
	WanToYuan = 10_000.0
	// YuanToYi converts yuan amounts to hundred-million-yuan units.
	YuanToYi = 100_000_000.0
)

// ErrUnknownParameter is returned by Parameters.Set for names outside the
// documented parameter set.
var ErrUnknownParameter = errors.New("unknown parameter")

// Parameters holds every numeric assumption of the model. The zero value is
// not meaningful; start from Defaults and override individual fields.
// Parameters is a value type: copying it is the supported way to derive a
// perturbed scenario without touching the caller's assumptions.
type Parameters struct {
	// Market assumptions.
	BaseEVs2023      float64 // national battery-EV stock in 2023, ten-thousands of vehicles
	AnnualGrowthRate float64 // compound annual EV stock growth
	WarningThreshold float64 // observed growth below this triggers a warning

	// Single-station operations.
	GunsPerStation   int     // charging guns installed per station
	UtilizationRate  float64 // fraction of nameplate hours actually dispensing
	DailyHours       float64 // operating hours per day
	GunPower         float64 // per-gun power, kW
	PriceSpread      float64 // service fee spread, yuan per kWh
	AuxiliaryPremium float64 // auxiliary-service revenue as a share of service revenue
	OperatingDays    float64 // operating days per year

	// Cost structure.
	ElectricityPrice   float64 // purchased power price, yuan per kWh
	MaintenancePerKWh  float64 // equipment upkeep, yuan per kWh dispensed
	LaborCost          float64 // annual staffing cost per station, yuan
	RentCost           float64 // annual site rent per station, yuan
	OtherOperatingCost float64 // annual miscellaneous opex per station, yuan

	// Investment and depreciation.
	ConstructionCost  float64 // build cost per station, wan
	SubsidyPerStation float64 // government subsidy per station, wan
	DepreciationYears int     // straight-line depreciation horizon
	ResidualValueRate float64 // residual value at end of depreciation

	// Securitization.
	ReitsPackageSize       int     // stations pooled into the first asset package
	ReitsCapRate           float64 // capitalization rate applied to package NOI
	ReitsDistributionYield float64 // minimum distributable yield required

	// Project scope.
	TotalStations int     // fleet size at full build-out
	ProjectYears  int     // cash-flow horizon, years
	DiscountRate  float64 // annual discount rate for NPV
}

// Defaults returns the documented base-case assumptions.
func Defaults() Parameters {
	return Parameters{
		BaseEVs2023:      1260,
		AnnualGrowthRate: 0.25,
		WarningThreshold: 0.20,

		GunsPerStation:   12,
		UtilizationRate:  0.30,
		DailyHours:       20,
		GunPower:         180,
		PriceSpread:      0.55,
		AuxiliaryPremium: 0.03,
		OperatingDays:    365,

		ElectricityPrice:   0.40,
		MaintenancePerKWh:  0.03,
		LaborCost:          120_000,
		RentCost:           80_000,
		OtherOperatingCost: 40_000,

		ConstructionCost:  280,
		SubsidyPerStation: 80,
		DepreciationYears: 10,
		ResidualValueRate: 0.05,

		ReitsPackageSize:       20,
		ReitsCapRate:           0.06,
		ReitsDistributionYield: 0.045,

		TotalStations: 1000,
		ProjectYears:  10,
		DiscountRate:  0.12,
	}
}

// FromValues builds Parameters from a name-to-value mapping, falling back to
// the documented default for every absent key. Unknown keys are rejected so
// a typo in an assumptions file cannot silently vanish.
func FromValues(values map[string]float64) (Parameters, error) {
	p := Defaults()
	for name, value := range values {
		if err := p.Set(name, value); err != nil {
			return Parameters{}, err
		}
	}
	return p, nil
}

// Set assigns the named parameter. Integer-kind parameters are truncated
// toward zero. Returns ErrUnknownParameter for names outside the set.
func (p *Parameters) Set(name string, value float64) error {
	switch name {
	case "base_evs_2023":
		p.BaseEVs2023 = value
	case "annual_growth_rate":
		p.AnnualGrowthRate = value
	case "warning_threshold":
		p.WarningThreshold = value
	case "guns_per_station":
		p.GunsPerStation = int(value)
	case "utilization_rate":
		p.UtilizationRate = value
	case "daily_hours":
		p.DailyHours = value
	case "gun_power":
		p.GunPower = value
	case "price_spread":
		p.PriceSpread = value
	case "auxiliary_premium":
		p.AuxiliaryPremium = value
	case "operating_days":
		p.OperatingDays = value
	case "electricity_price":
		p.ElectricityPrice = value
	case "maintenance_per_kwh":
		p.MaintenancePerKWh = value
	case "labor_cost":
		p.LaborCost = value
	case "rent_cost":
		p.RentCost = value
	case "other_operating_cost":
		p.OtherOperatingCost = value
	case "construction_cost":
		p.ConstructionCost = value
	case "subsidy_per_station":
		p.SubsidyPerStation = value
	case "depreciation_years":
		p.DepreciationYears = int(value)
	case "residual_value_rate":
		p.ResidualValueRate = value
	case "reits_package_size":
		p.ReitsPackageSize = int(value)
	case "reits_cap_rate":
		p.ReitsCapRate = value
	case "reits_distribution_yield":
		p.ReitsDistributionYield = value
	case "total_stations":
		p.TotalStations = int(value)
	case "project_years":
		p.ProjectYears = int(value)
	case "discount_rate":
		p.DiscountRate = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return nil
}

// NetInvestmentPerStationWan returns the subsidy-adjusted build cost per
// station in wan. It can be negative when the subsidy exceeds the build
// cost; callers guard for that where it matters.
func (p Parameters) NetInvestmentPerStationWan() float64 {
	return p.ConstructionCost - p.SubsidyPerStation
}
