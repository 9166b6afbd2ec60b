package reporting

import (
	"fmt"
	"strings"

	"apt-market-lab/internal/domain"
)

// RenderCSV renders the monthly trend series as CSV string.
func RenderCSV(monthly []domain.MonthlyPoint) string {
	var sb strings.Builder

	// Header
	sb.WriteString("year_month,median_price_per_pyeong_10k,volume\n")

	// Rows
	for _, p := range monthly {
		sb.WriteString(fmt.Sprintf("%06d,%.6f,%d\n",
			p.YearMonth,
			p.MedianPricePerPyeong10k,
			p.Volume,
		))
	}

	return sb.String()
}
