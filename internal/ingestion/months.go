package ingestion

import "time"

// MonthOf returns the YYYYMM bucket of t.
func MonthOf(t time.Time) int {
	return t.Year()*100 + int(t.Month())
}

// AddMonths shifts a YYYYMM bucket by n months (n may be negative).
func AddMonths(yearMonth, n int) int {
	year := yearMonth / 100
	// 0-based month keeps the carry arithmetic straightforward.
	month := yearMonth%100 - 1 + n
	year += month / 12
	month %= 12
	if month < 0 {
		month += 12
		year--
	}
	return year*100 + month + 1
}

// MonthRange returns the inclusive YYYYMM sequence from from to to.
// Returns nil when from is after to.
func MonthRange(from, to int) []int {
	if from > to {
		return nil
	}

	var months []int
	for ym := from; ym <= to; ym = AddMonths(ym, 1) {
		months = append(months, ym)
	}
	return months
}
