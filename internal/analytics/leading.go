package analytics

import (
	"sort"
	"time"

	"apt-market-lab/internal/domain"
)

// Leading-complex result notes.
const (
	notesNoData       = "no transactions available"
	notesNoQualifying = "no complex satisfies both count gates"

	// notesCountProxy reminds consumers that transaction counts stand in
	// for complex scale and liquidity; they are not a precise measure.
	notesCountProxy = "transaction counts are a proxy for complex scale/liquidity; treat the ranking as indicative"
)

// complexKey identifies a complex for grouping. ComplexName participates so
// that a reused ComplexID with a different name does not merge silently.
type complexKey struct {
	complexID   string
	complexName string
}

// ComputeLeadingComplex selects the complex(es) most representative of the
// region's high-price, high-liquidity segment for the configured size band.
//
// Pipeline: restrict to the lookback window, aggregate total activity per
// complex across all bands, aggregate price statistics within the band,
// inner-join the two (a complex with zero in-band transactions is excluded
// outright), apply both count gates (AND), then rank descending by band
// median price per pyeong. An empty outcome is a valid result, never an
// error.
func ComputeLeadingComplex(rows []*domain.DerivedTransaction, now time.Time, p domain.LeadingParams) *domain.LeadingComplexResult {
	result := &domain.LeadingComplexResult{Params: p}

	if len(rows) == 0 {
		result.Notes = notesNoData
		return result
	}

	// 1. Lookback window by deal year.
	minYear := now.Year() - p.LookbackYears
	var recent []*domain.DerivedTransaction
	for _, r := range rows {
		if r.DealYear >= minYear {
			recent = append(recent, r)
		}
	}

	// 2. Total activity per complex across all size bands. Group order
	// follows first appearance in the input so that ties rank stably.
	type totalStats struct {
		count     int
		buildYear int
	}
	totals := make(map[complexKey]*totalStats)
	var order []complexKey
	for _, r := range recent {
		key := complexKey{r.ComplexID, r.ComplexName}
		st, ok := totals[key]
		if !ok {
			st = &totalStats{}
			totals[key] = st
			order = append(order, key)
		}
		st.count++
		if r.BuildYear > st.buildYear {
			st.buildYear = r.BuildYear
		}
	}

	// 3. Band-restricted price statistics per complex.
	type bandStats struct {
		pricesPerPyeong []float64
		pyeongs         []float64
	}
	band := make(map[complexKey]*bandStats)
	for _, r := range FilterSizeBand(recent, p.MinM2, p.MaxM2) {
		key := complexKey{r.ComplexID, r.ComplexName}
		st, ok := band[key]
		if !ok {
			st = &bandStats{}
			band[key] = st
		}
		st.pricesPerPyeong = append(st.pricesPerPyeong, r.PricePerPyeong10k)
		st.pyeongs = append(st.pyeongs, r.Pyeong)
	}

	// 4+5. Inner join on complex identity, then both count gates. A complex
	// absent from the band aggregate never appears, whatever its total
	// activity.
	var candidates []*domain.ComplexAggregate
	for _, key := range order {
		bs, inBand := band[key]
		if !inBand {
			continue
		}
		ts := totals[key]
		if ts.count < p.NTotal || len(bs.pricesPerPyeong) < p.NBand {
			continue
		}

		medianPrice := computeMedian(bs.pricesPerPyeong)
		medianPyeong := computeMedian(bs.pyeongs)
		candidates = append(candidates, &domain.ComplexAggregate{
			ComplexID:               key.complexID,
			ComplexName:             key.complexName,
			BuildYear:               ts.buildYear,
			TotalCount:              ts.count,
			BandCount:               len(bs.pricesPerPyeong),
			MedianPricePerPyeong10k: medianPrice,
			MedianPyeong:            medianPyeong,
			ImpliedMedianPrice10k:   medianPyeong * medianPrice,
		})
	}

	if len(candidates) == 0 {
		result.Notes = notesNoQualifying
		return result
	}

	// 6. Rank by band median price per pyeong, descending. Ties keep input
	// order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MedianPricePerPyeong10k > candidates[j].MedianPricePerPyeong10k
	})

	top5 := candidates
	if len(top5) > 5 {
		top5 = top5[:5]
	}

	result.Top1 = candidates[0]
	result.Top5 = top5
	result.Notes = notesCountProxy
	return result
}
