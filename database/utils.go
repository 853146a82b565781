package database

import (
	"context"
	"time"
)

// Common timeout durations for database operations
const (
	// ShortTimeout for single-document reads and writes
	ShortTimeout = 5 * time.Second

	// MediumTimeout for multi-document queries and sweeps
	MediumTimeout = 10 * time.Second
)

// WithShortTimeout creates a context with ShortTimeout (5 seconds)
func WithShortTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), ShortTimeout)
}

// WithMediumTimeout creates a context with MediumTimeout (10 seconds)
func WithMediumTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), MediumTimeout)
}
