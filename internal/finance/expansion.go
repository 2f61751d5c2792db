package finance

// Rolling expansion assumptions: each follow-on year contributes
// min(20+5*year, 40) newly securitized stations at a flat per-station
// valuation increment of 0.0125 yi.
const (
	expansionBaseStations = 20
	expansionPerYear      = 5
	expansionYearCap      = 40
	expansionStationValue = 0.0125
	defaultExpansionYears = 5
)

// ExpansionYear is one step of the rolling securitization plan.
type ExpansionYear struct {
	Year               int
	NewStations        int
	CumulativeStations int
	// CumulativeValuation is the total securitized asset value in yi.
	CumulativeValuation float64
	// ValuationMultiple is cumulative valuation over the first package's
	// valuation; zero when the first package has no value.
	ValuationMultiple float64
}

// RollingExpansion builds the follow-on securitization schedule from year 2
// through the given horizon. Horizons below 2 yield an empty plan.
func RollingExpansion(p Parameters, years int) []ExpansionYear {
	if years <= 0 {
		years = defaultExpansionYears
	}

	base := Valuation(p)
	cumulativeStations := p.ReitsPackageSize
	cumulativeValuation := base.AssetValue

	var plan []ExpansionYear
	for year := 2; year <= years; year++ {
		newStations := expansionBaseStations + year*expansionPerYear
		if newStations > expansionYearCap {
			newStations = expansionYearCap
		}

		cumulativeStations += newStations
		cumulativeValuation += float64(newStations) * expansionStationValue

		multiple := 0.0
		if base.AssetValue > 0 {
			multiple = cumulativeValuation / base.AssetValue
		}

		plan = append(plan, ExpansionYear{
			Year:                year,
			NewStations:         newStations,
			CumulativeStations:  cumulativeStations,
			CumulativeValuation: cumulativeValuation,
			ValuationMultiple:   multiple,
		})
	}

	return plan
}
