package domain

// AgeGroupSummary is the per-cohort price level for band-filtered
// transactions. Uncertain flags cohorts whose sample is too small for the
// statistics to be trusted.
type AgeGroupSummary struct {
	AgeGroup string

	MedianPricePerPyeong10k float64
	MeanPricePerPyeong10k   float64
	MedianPrice10k          float64
	Count                   int

	Uncertain bool // Count below the minimum-sample threshold
}
