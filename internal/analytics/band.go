package analytics

import "apt-market-lab/internal/domain"

// FilterSizeBand retains rows whose floor area is within the inclusive
// [minM2, maxM2] range. The result is always a subset of the input; an
// inverted range yields an empty result, not an error.
func FilterSizeBand(rows []*domain.DerivedTransaction, minM2, maxM2 float64) []*domain.DerivedTransaction {
	var result []*domain.DerivedTransaction
	for _, r := range rows {
		if r.FloorAreaM2 >= minM2 && r.FloorAreaM2 <= maxM2 {
			result = append(result, r)
		}
	}
	return result
}
