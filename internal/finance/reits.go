package finance

// Fixed securitization split: the original equity holder retains 20% of the
// issue and 80% is placed publicly.
const (
	originalHolderShare = 0.20
	publicShare         = 0.80
)

// ValuationResult is the securitization bundle for the first asset package.
// All monetary figures are in yi.
type ValuationResult struct {
	PackageStations int
	// PackageNOI is the pooled annual net operating income, proxied by
	// station EBITDA.
	PackageNOI float64
	// AssetValue capitalizes PackageNOI at the configured cap rate.
	AssetValue float64
	// DistributionYield is NOI over asset value. By construction it
	// equals the cap rate; it is kept as a named output because the
	// requirement check below is defined on it.
	DistributionYield   float64
	OriginalHolderValue float64
	PublicProceeds      float64
	// MeetsRequirement reports whether the distribution yield clears the
	// configured regulatory minimum.
	MeetsRequirement bool
}

// Valuation converts pooled station NOI into an asset-package valuation and
// checks the distribution-yield requirement.
func Valuation(p Parameters) ValuationResult {
	stationNOIYi := Profitability(p).EBITDA / YuanToYi
	packageNOI := stationNOIYi * float64(p.ReitsPackageSize)

	assetValue := 0.0
	if p.ReitsCapRate != 0 {
		assetValue = packageNOI / p.ReitsCapRate
	}

	distributionYield := 0.0
	if assetValue > 0 {
		distributionYield = packageNOI / assetValue
	}

	return ValuationResult{
		PackageStations:     p.ReitsPackageSize,
		PackageNOI:          packageNOI,
		AssetValue:          assetValue,
		DistributionYield:   distributionYield,
		OriginalHolderValue: assetValue * originalHolderShare,
		PublicProceeds:      assetValue * publicShare,
		MeetsRequirement:    distributionYield >= p.ReitsDistributionYield,
	}
}
