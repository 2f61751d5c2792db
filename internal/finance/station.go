package finance

import "math"

// OtherRevenuePerYear is the fixed non-charging income per station per year
// in yuan (parking, convenience retail and similar mall-side income).
const OtherRevenuePerYear = 120_000.0

// RevenueBreakdown details one station's annual revenue in yuan.
type RevenueBreakdown struct {
	DailyCapacityPerGunKWh float64
	DailyCapacityKWh       float64
	AnnualChargingKWh      float64
	Service                float64
	Auxiliary              float64
	Other                  float64
	Total                  float64
}

// CostBreakdown details one station's annual costs in yuan. Depreciation is
// tracked separately because EBITDA excludes it.
type CostBreakdown struct {
	Electricity    float64
	Maintenance    float64
	Labor          float64
	Rent           float64
	OtherOperating float64
	Depreciation   float64
	Total          float64
}

// ProfitabilityResult is the full single-station annual P&L derived from a
// parameter set. Computed fresh on every call and owned by the caller.
type ProfitabilityResult struct {
	Revenue      RevenueBreakdown
	Costs        CostBreakdown
	EBITDA       float64
	NetProfit    float64
	EBITDAMargin float64
	NetMargin    float64
	// PaybackYears is net investment over annual net profit. +Inf means
	// the station never recovers its investment at these assumptions.
	PaybackYears float64
}

// Profitability computes one station's annual revenue, costs, EBITDA, net
// profit, margins and payback period from p. Pure function of its input.
func Profitability(p Parameters) ProfitabilityResult {
	rev := stationRevenue(p)
	costs := stationCosts(p, rev.AnnualChargingKWh)

	ebitda := rev.Total - (costs.Electricity + costs.Maintenance +
		costs.Labor + costs.Rent + costs.OtherOperating)
	netProfit := ebitda - costs.Depreciation

	ebitdaMargin := 0.0
	netMargin := 0.0
	if rev.Total > 0 {
		ebitdaMargin = ebitda / rev.Total
		netMargin = netProfit / rev.Total
	}

	payback := math.Inf(1)
	if netProfit > 0 {
		// Both sides in wan: net investment vs annual net profit.
		payback = p.NetInvestmentPerStationWan() / (netProfit / WanToYuan)
	}

	return ProfitabilityResult{
		Revenue:      rev,
		Costs:        costs,
		EBITDA:       ebitda,
		NetProfit:    netProfit,
		EBITDAMargin: ebitdaMargin,
		NetMargin:    netMargin,
		PaybackYears: payback,
	}
}

// StationIRR approximates a single station's cash yield: annual EBITDA over
// the net investment. Returns 0 when the net investment is non-positive.
func StationIRR(p Parameters) float64 {
	netInvestmentYuan := p.NetInvestmentPerStationWan() * WanToYuan
	if netInvestmentYuan <= 0 {
		return 0
	}
	return Profitability(p).EBITDA / netInvestmentYuan
}

// stationRevenue builds the annual revenue breakdown in yuan.
func stationRevenue(p Parameters) RevenueBreakdown {
	perGun := p.GunPower * p.UtilizationRate * p.DailyHours
	daily := perGun * float64(p.GunsPerStation)
	annual := daily * p.OperatingDays

	service := annual * p.PriceSpread
	auxiliary := service * p.AuxiliaryPremium
	other := OtherRevenuePerYear

	return RevenueBreakdown{
		DailyCapacityPerGunKWh: perGun,
		DailyCapacityKWh:       daily,
		AnnualChargingKWh:      annual,
		Service:                service,
		Auxiliary:              auxiliary,
		Other:                  other,
		Total:                  service + auxiliary + other,
	}
}

// stationCosts builds the annual cost breakdown in yuan for the given
// dispensed energy.
func stationCosts(p Parameters, annualChargingKWh float64) CostBreakdown {
	electricity := annualChargingKWh * p.ElectricityPrice
	maintenance := annualChargingKWh * p.MaintenancePerKWh

	depreciation := 0.0
	if p.DepreciationYears > 0 {
		netInvestmentYuan := p.NetInvestmentPerStationWan() * WanToYuan
		depreciation = netInvestmentYuan * (1 - p.ResidualValueRate) / float64(p.DepreciationYears)
	}

	return CostBreakdown{
		Electricity:    electricity,
		Maintenance:    maintenance,
		Labor:          p.LaborCost,
		Rent:           p.RentCost,
		OtherOperating: p.OtherOperatingCost,
		Depreciation:   depreciation,
		Total: electricity + maintenance + p.LaborCost + p.RentCost +
			p.OtherOperatingCost + depreciation,
	}
}
