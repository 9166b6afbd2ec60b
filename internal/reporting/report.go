package reporting

import (
	"time"

	"apt-market-lab/internal/analytics"
	"apt-market-lab/internal/domain"
)

// AnalysisParams are the caller-selected analysis settings echoed into the
// report.
type AnalysisParams struct {
	MinM2, MaxM2 float64 // representative size band, inclusive

	LookbackYears int // leading-complex window
	NTotal        int // minimum total transaction count gate
	NBand         int // minimum in-band transaction count gate

	MinAgeGroupSamples int // 0 selects the analytics default
}

// Report is the full analysis output for one region. NoData marks a region
// with nothing stored; that is a valid result, not an error.
type Report struct {
	RegionCode  string
	GeneratedAt time.Time
	Params      AnalysisParams

	NoData bool

	// Headline figures
	TotalCount                  int
	BandCount                   int
	BandMedianPricePerPyeong10k float64

	Leading   *domain.LeadingComplexResult
	Trend     *domain.TrendResult
	AgeGroups []domain.AgeGroupSummary

	// Caveats always accompany the numbers; downstream consumers must
	// surface them next to any figure they display.
	Caveats []string
}

// Standing caveats, carried on every report.
var standingCaveats = []string{
	"reported trades lag and may later be corrected or withdrawn; treat results as indicative",
	analytics.AgeEstimateNote,
	"transaction counts proxy for complex scale/liquidity and are not a precise measure",
}
