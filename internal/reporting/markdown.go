package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("# Apartment Market Report: %s\n\n", r.RegionCode))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Size band: %.1f-%.1f m2 | Lookback: %d year(s)\n\n",
		r.Params.MinM2, r.Params.MaxM2, r.Params.LookbackYears))

	if r.NoData {
		sb.WriteString("**No stored transactions for this region.** Run a sync first.\n")
		return sb.String()
	}

	// Headline
	sb.WriteString("## Headline\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Transactions | %d |\n", r.TotalCount))
	sb.WriteString(fmt.Sprintf("| In-Band Transactions | %d |\n", r.BandCount))
	sb.WriteString(fmt.Sprintf("| Band Median Price/Pyeong (10k KRW) | %.1f |\n", r.BandMedianPricePerPyeong10k))
	sb.WriteString("\n")

	// Leading complexes
	sb.WriteString("## Leading Complexes\n\n")
	if r.Leading != nil && len(r.Leading.Top5) > 0 {
		if r.Leading.Top1 != nil {
			sb.WriteString(fmt.Sprintf("Top complex: **%s** (median %.1f / pyeong, 10k KRW)\n\n",
				r.Leading.Top1.ComplexName, r.Leading.Top1.MedianPricePerPyeong10k))
		}
		sb.WriteString("| Rank | Complex | Build Year | Trades (total) | Trades (band) | Median Price/Pyeong | Median Pyeong | Implied Price |\n")
		sb.WriteString("|------|---------|------------|----------------|---------------|--------------------|---------------|---------------|\n")
		for i, c := range r.Leading.Top5 {
			sb.WriteString(fmt.Sprintf("| %d | %s | %d | %d | %d | %.1f | %.1f | %.1f |\n",
				i+1, c.ComplexName, c.BuildYear, c.TotalCount, c.BandCount,
				c.MedianPricePerPyeong10k, c.MedianPyeong, c.ImpliedMedianPrice10k))
		}
		sb.WriteString("\n")
	} else {
		note := "No complex passed the activity gates."
		if r.Leading != nil && r.Leading.Notes != "" {
			note = r.Leading.Notes
		}
		sb.WriteString(note + "\n\n")
	}

	// Trend
	sb.WriteString("## Price Trend\n\n")
	if r.Trend != nil {
		sb.WriteString(fmt.Sprintf("Direction: **%s**\n\n", r.Trend.Label))
		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|--------|-------|\n")
		sb.WriteString(fmt.Sprintf("| Short Momentum (last vs prev month) | %.2f%% |\n", r.Trend.ShortMomentumPct))
		sb.WriteString(fmt.Sprintf("| Long Slope (per month, 10k KRW/pyeong) | %.4f |\n", r.Trend.LongSlope))
		sb.WriteString(fmt.Sprintf("| Months Observed | %d |\n", len(r.Trend.Monthly)))
		sb.WriteString("\n")
		if r.Trend.Notes != "" {
			sb.WriteString(r.Trend.Notes + "\n\n")
		}
	} else {
		sb.WriteString("No trend computed.\n\n")
	}

	// Age cohorts
	sb.WriteString("## Price by Building Age\n\n")
	if len(r.AgeGroups) > 0 {
		sb.WriteString("| Age Group | Trades | Median Price/Pyeong | Mean Price/Pyeong | Median Price | Note |\n")
		sb.WriteString("|-----------|--------|--------------------|-------------------|--------------|------|\n")
		for _, g := range r.AgeGroups {
			note := ""
			if g.Uncertain {
				note = "small sample"
			}
			sb.WriteString(fmt.Sprintf("| %s | %d | %.1f | %.1f | %.1f | %s |\n",
				g.AgeGroup, g.Count, g.MedianPricePerPyeong10k, g.MeanPricePerPyeong10k, g.MedianPrice10k, note))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("No in-band transactions to group.\n\n")
	}

	// Caveats
	sb.WriteString("## Caveats\n\n")
	for _, c := range r.Caveats {
		sb.WriteString(fmt.Sprintf("- %s\n", c))
	}
	sb.WriteString("\n")

	return sb.String()
}
