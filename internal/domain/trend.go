package domain

// Trend labels. A zero regression slope classifies as falling; there is no
// separate flat label.
const (
	TrendLabelRising       = "rising"
	TrendLabelFalling      = "falling"
	TrendLabelInsufficient = "insufficient data"
)

// MonthlyPoint is one month of the band-filtered price series.
type MonthlyPoint struct {
	YearMonth               int // YYYYMM
	MedianPricePerPyeong10k float64
	Volume                  int // transaction count
}

// TrendResult summarizes recent momentum and multi-year direction of the
// band-filtered price series.
type TrendResult struct {
	Monthly []MonthlyPoint // chronological

	// ShortMomentumPct is the percent change in median price between the two
	// most recent available months (not calendar-adjacent months).
	ShortMomentumPct float64

	// LongSlope is the OLS slope over up to the last 36 monthly medians,
	// with x = point index. Zero when fewer than 12 points are available.
	LongSlope float64

	Label string
	Notes string
}
