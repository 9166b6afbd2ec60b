package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"apt-market-lab/internal/normalization"
	"apt-market-lab/internal/observability"
	"apt-market-lab/internal/storage"
)

// Runner orchestrates the sequential fetch-and-persist cycle for one region.
//
// Each month is persisted before the next is fetched, so a mid-run failure
// loses nothing: the store's dedup constraint and the watermark make the
// next run pick up where this one stopped. The only cancellation mechanism
// is "stop issuing further month requests" on context cancellation or a
// classified fatal error.
type Runner struct {
	source       MonthlySource
	store        storage.TransactionStore
	initialYears int
	delay        time.Duration
	logger       *log.Logger
	metrics      *observability.Metrics
	now          func() time.Time
}

// RunnerOptions contains configuration for creating a Runner.
type RunnerOptions struct {
	Source MonthlySource
	Store  storage.TransactionStore

	// InitialYears is how far back the first load reaches when a region has
	// no watermark yet. Default: 5.
	InitialYears int

	// Delay is the soft pause between month requests. Default: 100ms.
	Delay time.Duration

	Logger  *log.Logger
	Metrics *observability.Metrics // optional
	Now     func() time.Time       // injectable clock
}

// NewRunner creates a new sync runner.
func NewRunner(opts RunnerOptions) *Runner {
	initialYears := opts.InitialYears
	if initialYears == 0 {
		initialYears = 5
	}

	delay := opts.Delay
	if delay == 0 {
		delay = 100 * time.Millisecond
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	return &Runner{
		source:       opts.Source,
		store:        opts.Store,
		initialYears: initialYears,
		delay:        delay,
		logger:       logger,
		metrics:      opts.Metrics,
		now:          now,
	}
}

// SyncStats summarizes one sync run.
type SyncStats struct {
	FromPeriod        int // first YYYYMM requested; 0 when nothing to fetch
	ToPeriod          int // last YYYYMM requested; 0 when nothing to fetch
	MonthsFetched     int
	RecordsSeen       int
	RecordsAdmitted   int
	RowsInserted      int
	DuplicatesSkipped int
}

// Sync fetches and persists all months between the region's watermark and
// the current month. Classified upstream failures abort the run; months
// persisted before the failure stay persisted. Stats are returned alongside
// the error so partial progress is visible.
func (r *Runner) Sync(ctx context.Context, regionCode string) (*SyncStats, error) {
	stats := &SyncStats{}

	from, err := r.startPeriod(ctx, regionCode)
	if err != nil {
		return stats, err
	}
	to := MonthOf(r.now())

	months := MonthRange(from, to)
	if len(months) == 0 {
		r.logger.Printf("region %s: watermark %d already current, nothing to fetch", regionCode, from)
		return stats, nil
	}
	stats.FromPeriod = months[0]
	stats.ToPeriod = months[len(months)-1]

	r.logger.Printf("region %s: syncing %d month(s), %06d..%06d", regionCode, len(months), stats.FromPeriod, stats.ToPeriod)

	for i, ym := range months {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if err := r.syncMonth(ctx, regionCode, ym, stats); err != nil {
			return stats, err
		}

		if i < len(months)-1 {
			if err := r.pause(ctx); err != nil {
				return stats, err
			}
		}
	}

	if r.metrics != nil {
		r.metrics.LastSuccessfulSync.SetToCurrentTime()
		r.metrics.WatermarkPeriod.WithLabelValues(regionCode).Set(float64(stats.ToPeriod))
	}

	r.logger.Printf("region %s: sync complete, %d record(s) inserted, %d duplicate(s) skipped",
		regionCode, stats.RowsInserted, stats.DuplicatesSkipped)
	return stats, nil
}

// FullResync drops all stored data for the region and reloads from scratch.
func (r *Runner) FullResync(ctx context.Context, regionCode string) (*SyncStats, error) {
	r.logger.Printf("region %s: forced full resync, deleting stored transactions", regionCode)
	if err := r.store.DeleteRegion(ctx, regionCode); err != nil {
		return nil, fmt.Errorf("delete region before resync: %w", err)
	}
	return r.Sync(ctx, regionCode)
}

// startPeriod computes the first month to fetch: watermark + 1, or the
// initial lookback window when the region is empty.
func (r *Runner) startPeriod(ctx context.Context, regionCode string) (int, error) {
	latest, err := r.store.LatestPeriod(ctx, regionCode)
	if err != nil {
		if errors.Is(err, storage.ErrNoData) {
			start := MonthOf(r.now().AddDate(-r.initialYears, 0, 0))
			r.logger.Printf("region %s: no watermark, initial load from %06d", regionCode, start)
			return start, nil
		}
		return 0, fmt.Errorf("query watermark: %w", err)
	}
	return AddMonths(latest, 1), nil
}

// syncMonth fetches, normalizes and persists a single month.
func (r *Runner) syncMonth(ctx context.Context, regionCode string, yearMonth int, stats *SyncStats) error {
	fetchStart := time.Now()
	records, err := r.source.FetchMonth(ctx, regionCode, yearMonth)
	if r.metrics != nil {
		r.metrics.FetchLatency.Observe(time.Since(fetchStart).Seconds())
	}
	if err != nil {
		r.recordFetchError(err)
		return fmt.Errorf("fetch region %s month %06d: %w", regionCode, yearMonth, err)
	}

	txs, admitted := normalization.Normalize(records, regionCode)

	upsertStart := time.Now()
	inserted, err := r.store.UpsertBulk(ctx, txs)
	if r.metrics != nil {
		r.metrics.UpsertLatency.Observe(time.Since(upsertStart).Seconds())
	}
	if err != nil {
		return fmt.Errorf("persist region %s month %06d: %w", regionCode, yearMonth, err)
	}

	duplicates := admitted - inserted
	stats.MonthsFetched++
	stats.RecordsSeen += len(records)
	stats.RecordsAdmitted += admitted
	stats.RowsInserted += inserted
	stats.DuplicatesSkipped += duplicates

	if r.metrics != nil {
		r.metrics.MonthsFetched.Inc()
		r.metrics.RecordsSeen.Add(float64(len(records)))
		r.metrics.RecordsAdmitted.Add(float64(admitted))
		r.metrics.RecordsDropped.Add(float64(len(records) - admitted))
		r.metrics.RowsInserted.Add(float64(inserted))
		r.metrics.DuplicatesSkipped.Add(float64(duplicates))
	}

	r.logger.Printf("region %s month %06d: %d raw, %d admitted, %d inserted, %d duplicate(s)",
		regionCode, yearMonth, len(records), admitted, inserted, duplicates)
	return nil
}

// pause sleeps the soft inter-request delay, respecting cancellation.
func (r *Runner) pause(ctx context.Context) error {
	if r.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(r.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// recordFetchError tags the classified failure kind.
func (r *Runner) recordFetchError(err error) {
	if r.metrics == nil {
		return
	}
	kind := "transport"
	if IsRateLimited(err) {
		kind = "rate_limited"
	}
	r.metrics.FetchErrors.WithLabelValues(kind).Inc()
}
