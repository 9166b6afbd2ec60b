package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"apt-market-lab/internal/ingestion"
	"apt-market-lab/internal/observability"
	"apt-market-lab/internal/storage"
	chstore "apt-market-lab/internal/storage/clickhouse"
	"apt-market-lab/internal/storage/memory"
	pgstore "apt-market-lab/internal/storage/postgres"
)

func main() {
	// Parse flags
	region := flag.String("region", "", "5-digit legal district code (LAWD_CD), e.g. 11680")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of a database")
	serviceKey := flag.String("service-key", "", "data.go.kr service key (falls back to "+ingestion.ServiceKeyEnv+")")
	baseURL := flag.String("base-url", ingestion.DefaultBaseURL, "RTMS API base URL")
	years := flag.Int("years", 5, "Initial lookback in years when the region has no data yet")
	delay := flag.Duration("delay", 100*time.Millisecond, "Pause between month requests")
	fullResync := flag.Bool("full-resync", false, "Delete stored data for the region and reload from scratch")
	metricsAddr := flag.String("metrics-addr", ":9090", "Prometheus metrics HTTP address (empty to disable)")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[sync] ", log.LstdFlags|log.Lshortfile)

	if *region == "" {
		logger.Fatal("--region is required")
	}

	key, err := ingestion.ResolveServiceKey(*serviceKey)
	if err != nil {
		logger.Fatalf("Error: %v", err)
	}

	metrics := observability.NewMetrics("")

	// Start metrics server if enabled
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())

	// Handle shutdown signals with graceful timeout
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	err = run(ctx, logger, metrics, key, *baseURL, *region, *postgresDSN, *clickhouseDSN, *useMemory, *years, *delay, *fullResync)

	done <- err
	cancel()

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("Error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// run wires the store and source and executes one sync pass.
func run(ctx context.Context, logger *log.Logger, metrics *observability.Metrics, serviceKey, baseURL, region, postgresDSN, clickhouseDSN string, useMemory bool, years int, delay time.Duration, fullResync bool) error {
	store, closeStore, err := openStore(ctx, postgresDSN, clickhouseDSN, useMemory)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Init(ctx); err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	source := ingestion.NewRTMSSource(ingestion.RTMSSourceOptions{
		BaseURL:    baseURL,
		ServiceKey: serviceKey,
	})

	runner := ingestion.NewRunner(ingestion.RunnerOptions{
		Source:       source,
		Store:        store,
		InitialYears: years,
		Delay:        delay,
		Logger:       logger,
		Metrics:      metrics,
	})

	var stats *ingestion.SyncStats
	if fullResync {
		stats, err = runner.FullResync(ctx, region)
	} else {
		stats, err = runner.Sync(ctx, region)
	}
	if stats != nil && stats.MonthsFetched > 0 {
		logger.Printf("Synced %d month(s) (%06d..%06d): %d seen, %d admitted, %d inserted, %d duplicate(s)",
			stats.MonthsFetched, stats.FromPeriod, stats.ToPeriod,
			stats.RecordsSeen, stats.RecordsAdmitted, stats.RowsInserted, stats.DuplicatesSkipped)
	}
	return err
}

// openStore selects the storage backend from flags. Exactly one of
// --postgres-dsn, --clickhouse-dsn or --use-memory must be chosen.
func openStore(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (storage.TransactionStore, func(), error) {
	switch {
	case useMemory:
		return memory.NewTransactionStore(), func() {}, nil
	case postgresDSN != "":
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return pgstore.NewTransactionStore(pool), pool.Close, nil
	case clickhouseDSN != "":
		conn, err := chstore.NewConn(ctx, clickhouseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to clickhouse: %w", err)
		}
		return chstore.NewTransactionStore(conn), func() { conn.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("one of --postgres-dsn, --clickhouse-dsn or --use-memory is required")
	}
}
