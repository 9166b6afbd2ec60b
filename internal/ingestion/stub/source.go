package stub

import (
	"context"
	"fmt"

	"apt-market-lab/internal/normalization"
)

// Source returns scripted in-memory monthly records for testing.
// Implements ingestion.MonthlySource.
type Source struct {
	records map[int][]normalization.RawRecord // keyed by YYYYMM
	errs    map[int]error                     // classified error per month

	// Calls records every (regionCode, yearMonth) fetch in order.
	Calls []string
}

// NewSource creates a stub source with the given per-month records.
func NewSource(records map[int][]normalization.RawRecord) *Source {
	if records == nil {
		records = make(map[int][]normalization.RawRecord)
	}
	return &Source{
		records: records,
		errs:    make(map[int]error),
	}
}

// FailMonth makes the stub return err for the given month.
func (s *Source) FailMonth(yearMonth int, err error) {
	s.errs[yearMonth] = err
}

// FetchMonth returns the scripted records for the month. Months with no
// script return zero records, mirroring an empty upstream month.
func (s *Source) FetchMonth(_ context.Context, regionCode string, yearMonth int) ([]normalization.RawRecord, error) {
	s.Calls = append(s.Calls, fmt.Sprintf("%s/%06d", regionCode, yearMonth))

	if err := s.errs[yearMonth]; err != nil {
		return nil, err
	}
	return s.records[yearMonth], nil
}
