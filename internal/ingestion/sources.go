package ingestion

import (
	"context"

	"apt-market-lab/internal/normalization"
)

// MonthlySource provides raw transaction records for one region and month
// from an external source. Implementations classify failures as
// ErrRateLimited or *TransportError; zero records with a nil error is a
// legal "nothing reported that month" outcome.
type MonthlySource interface {
	// FetchMonth returns raw records for regionCode in the YYYYMM month.
	FetchMonth(ctx context.Context, regionCode string, yearMonth int) ([]normalization.RawRecord, error)
}

// DebugSink captures raw upstream artifacts (request URLs, response bodies)
// for diagnosis. Injected optionally; the pipeline itself never writes
// debug output as a side effect.
type DebugSink interface {
	Capture(name string, data []byte)
}
