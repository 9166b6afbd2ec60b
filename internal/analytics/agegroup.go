package analytics

import "apt-market-lab/internal/domain"

// DefaultMinAgeGroupSamples is the sample size below which an age cohort is
// flagged as statistically uncertain.
const DefaultMinAgeGroupSamples = 10

// ComputeAgeGroupLevels buckets rows into the three ordered age cohorts and
// computes per-cohort price levels. minSamples <= 0 selects the default
// threshold. Cohorts with no rows are omitted; empty input yields an empty
// result, not an error.
func ComputeAgeGroupLevels(rows []*domain.DerivedTransaction, minSamples int) []domain.AgeGroupSummary {
	if len(rows) == 0 {
		return nil
	}
	if minSamples <= 0 {
		minSamples = DefaultMinAgeGroupSamples
	}

	type cohort struct {
		pricesPerPyeong []float64
		prices          []float64
	}
	cohorts := make(map[string]*cohort)
	for _, r := range rows {
		c, ok := cohorts[r.AgeGroup]
		if !ok {
			c = &cohort{}
			cohorts[r.AgeGroup] = c
		}
		c.pricesPerPyeong = append(c.pricesPerPyeong, r.PricePerPyeong10k)
		c.prices = append(c.prices, float64(r.Price10kWon))
	}

	var result []domain.AgeGroupSummary
	for _, group := range domain.AgeGroupOrder {
		c, ok := cohorts[group]
		if !ok {
			continue
		}
		count := len(c.prices)
		result = append(result, domain.AgeGroupSummary{
			AgeGroup:                group,
			MedianPricePerPyeong10k: computeMedian(c.pricesPerPyeong),
			MeanPricePerPyeong10k:   computeMean(c.pricesPerPyeong),
			MedianPrice10k:          computeMedian(c.prices),
			Count:                   count,
			Uncertain:               count < minSamples,
		})
	}

	return result
}
