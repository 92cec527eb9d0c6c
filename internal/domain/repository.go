package domain

import (
	"context"
)

// Preferences is an app-private key-value store.
// This follows the Dependency Inversion Principle - domain defines the interface
type Preferences interface {
	// Get returns the value stored under key and whether it exists
	Get(ctx context.Context, key string) (string, bool, error)

	// PutAll writes every pair in one atomic batch
	PutAll(ctx context.Context, values map[string]string) error

	// Delete removes the keys in one atomic batch
	Delete(ctx context.Context, keys ...string) error

	// Health checks storage availability
	Health(ctx context.Context) error
}

// StatisticsAPI defines the read-only detection statistics endpoints
type StatisticsAPI interface {
	// FetchSummaryStatistics returns totals, category breakdown, zones, hours and monthly trend
	FetchSummaryStatistics(ctx context.Context, authHeader string) (StatisticsBundle, error)

	// FetchZoneStatistics returns per-zone detection counts
	FetchZoneStatistics(ctx context.Context, authHeader string) ([]ZoneStatistic, error)

	// FetchHourlyPatterns returns the recurring-hour detection pattern
	FetchHourlyPatterns(ctx context.Context, authHeader string) ([]HourlyPattern, error)
}
