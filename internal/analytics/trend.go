package analytics

import (
	"sort"

	"apt-market-lab/internal/domain"
)

const (
	// longTrendWindow is the maximum number of monthly points used for the
	// regression; longTrendMinPoints is the minimum for the slope to mean
	// anything.
	longTrendWindow    = 36
	longTrendMinPoints = 12

	trendNotesBasis        = "long trend label is based on the OLS slope over the last 36 monthly medians"
	trendNotesInsufficient = "not enough monthly data points for trend analysis"
)

// ComputeTrend summarizes recent momentum and multi-year direction of the
// (band-filtered) price series. Fewer than 2 distinct months yields a
// neutral "insufficient data" result; it never errors.
func ComputeTrend(rows []*domain.DerivedTransaction) *domain.TrendResult {
	result := &domain.TrendResult{Label: domain.TrendLabelInsufficient}

	if len(rows) == 0 {
		return result
	}

	// Monthly resample: median price per pyeong and volume per YYYYMM.
	prices := make(map[int][]float64)
	for _, r := range rows {
		ym := r.YearMonth()
		prices[ym] = append(prices[ym], r.PricePerPyeong10k)
	}

	months := make([]int, 0, len(prices))
	for ym := range prices {
		months = append(months, ym)
	}
	sort.Ints(months)

	monthly := make([]domain.MonthlyPoint, len(months))
	for i, ym := range months {
		monthly[i] = domain.MonthlyPoint{
			YearMonth:               ym,
			MedianPricePerPyeong10k: computeMedian(prices[ym]),
			Volume:                  len(prices[ym]),
		}
	}
	result.Monthly = monthly

	if len(monthly) < 2 {
		result.Notes = trendNotesInsufficient
		return result
	}

	// Short momentum: percent change between the two most recent available
	// months, which need not be calendar-adjacent. A zero previous median
	// leaves momentum at 0 instead of dividing; zero-price months carry no
	// usable price signal.
	last := monthly[len(monthly)-1].MedianPricePerPyeong10k
	prev := monthly[len(monthly)-2].MedianPricePerPyeong10k
	if prev != 0 {
		result.ShortMomentumPct = (last/prev - 1) * 100
	}

	// Long trend: OLS slope over up to the last 36 points.
	window := monthly
	if len(window) > longTrendWindow {
		window = window[len(window)-longTrendWindow:]
	}

	if len(window) < longTrendMinPoints {
		result.Label = domain.TrendLabelInsufficient
		result.Notes = trendNotesBasis
		return result
	}

	y := make([]float64, len(window))
	for i, m := range window {
		y[i] = m.MedianPricePerPyeong10k
	}
	result.LongSlope = computeOLSSlope(y)

	// Zero slope classifies as falling; upstream policy kept as-is.
	if result.LongSlope > 0 {
		result.Label = domain.TrendLabelRising
	} else {
		result.Label = domain.TrendLabelFalling
	}
	result.Notes = trendNotesBasis
	return result
}
