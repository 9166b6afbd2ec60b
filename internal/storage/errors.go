package storage

import "errors"

// Storage errors for the append-only transaction store.
var (
	// ErrNoData is returned by watermark queries when a region has no
	// stored transactions yet.
	ErrNoData = errors.New("no data for region")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
