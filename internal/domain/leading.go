package domain

// ComplexAggregate is one ranked row per (ComplexID, ComplexName): total
// activity joined with band-restricted price statistics. Lifecycle is
// query-scoped; aggregates are built, ranked and discarded per analysis run.
type ComplexAggregate struct {
	ComplexID   string
	ComplexName string

	BuildYear  int // most recent build year seen across all size bands
	TotalCount int // transaction count across all size bands (lookback window)

	BandCount               int     // transaction count within the configured band
	MedianPricePerPyeong10k float64 // band median price per pyeong, 10k-won units
	MedianPyeong            float64 // band median unit size
	ImpliedMedianPrice10k   float64 // MedianPyeong * MedianPricePerPyeong10k
}

// LeadingParams are the caller-supplied thresholds for leading-complex
// selection.
type LeadingParams struct {
	LookbackYears int
	NTotal        int // minimum total transaction count across all bands
	NBand         int // minimum transaction count within the band
	MinM2         float64
	MaxM2         float64
}

// LeadingComplexResult reports the complex judged most representative of the
// region's high-price, high-liquidity segment. Top1 is nil when no complex
// satisfies both count gates; that is a valid "no qualifying complex" result.
type LeadingComplexResult struct {
	Top1   *ComplexAggregate
	Top5   []*ComplexAggregate // ordered desc by band median price per pyeong
	Params LeadingParams
	Notes  string
}
