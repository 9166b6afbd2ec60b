// Package reporting assembles the per-region market analysis into a
// renderable report: headline figures, leading-complex ranking, trend
// summary and age-cohort table.
package reporting

import (
	"context"
	"fmt"
	"time"

	"apt-market-lab/internal/analytics"
	"apt-market-lab/internal/domain"
	"apt-market-lab/internal/storage"
)

// Generator produces reports from stored transactions.
type Generator struct {
	store storage.TransactionStore
	now   func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(store storage.TransactionStore) *Generator {
	return &Generator{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate runs the full analysis pipeline for a region. Only store
// failures error; empty data yields a NoData report.
func (g *Generator) Generate(ctx context.Context, regionCode string, p AnalysisParams) (*Report, error) {
	report := &Report{
		RegionCode:  regionCode,
		GeneratedAt: g.now(),
		Params:      p,
		Caveats:     standingCaveats,
	}

	txs, err := g.store.LoadByRegion(ctx, regionCode)
	if err != nil {
		return nil, fmt.Errorf("load region %s: %w", regionCode, err)
	}
	if len(txs) == 0 {
		report.NoData = true
		return report, nil
	}

	derived := analytics.ComputeDerived(txs, report.GeneratedAt)
	band := analytics.FilterSizeBand(derived, p.MinM2, p.MaxM2)

	report.TotalCount = len(derived)
	report.BandCount = len(band)
	if len(band) > 0 {
		prices := make([]float64, len(band))
		for i, r := range band {
			prices[i] = r.PricePerPyeong10k
		}
		report.BandMedianPricePerPyeong10k = analytics.Median(prices)
	}

	report.Trend = analytics.ComputeTrend(band)
	report.Leading = analytics.ComputeLeadingComplex(derived, report.GeneratedAt, domain.LeadingParams{
		LookbackYears: p.LookbackYears,
		NTotal:        p.NTotal,
		NBand:         p.NBand,
		MinM2:         p.MinM2,
		MaxM2:         p.MaxM2,
	})
	report.AgeGroups = analytics.ComputeAgeGroupLevels(band, p.MinAgeGroupSamples)

	return report, nil
}
