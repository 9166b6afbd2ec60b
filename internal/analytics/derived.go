// Package analytics turns canonical transactions into derived market
// indicators: unit prices, age cohorts, leading-complex rankings and price
// trend summaries. All functions are pure; empty input is always a valid
// "no data" result, never an error.
package analytics

import (
	"time"

	"apt-market-lab/internal/domain"
)

// AgeEstimateNote flags that building age is derived from a year-granularity
// build date and is therefore an approximation. Carried into every report
// that exposes age-based figures.
const AgeEstimateNote = "building age is derived from the build year only and is an estimate"

// ComputeDerived enriches transactions with pyeong, unit prices and age
// cohort. The reference year for age comes from now. Empty input passes
// through unchanged.
func ComputeDerived(txs []*domain.Transaction, now time.Time) []*domain.DerivedTransaction {
	if len(txs) == 0 {
		return nil
	}

	currentYear := now.Year()
	result := make([]*domain.DerivedTransaction, len(txs))

	for i, t := range txs {
		d := &domain.DerivedTransaction{Transaction: *t}

		d.Pyeong = t.FloorAreaM2 / domain.PyeongPerM2
		if d.Pyeong > 0 {
			d.PricePerPyeong10k = float64(t.Price10kWon) / d.Pyeong
			d.PricePerPyeongWon = float64(t.Price10kWon) * 10000 / d.Pyeong
		}

		d.Age = currentYear - t.BuildYear
		d.AgeGroup = domain.AgeGroupFor(d.Age)

		result[i] = d
	}

	return result
}
