package metrics

import (
	"context"
	"time"
)

// Metrics represents the current state of the stored data.
type Metrics struct {
	// Records maps collection name (books, users) to the number of stored records
	Records map[string]int64 `json:"records"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// Counter is anything that can report how many records it holds.
// book.UseCase and user.UseCase satisfy it.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Collector defines the interface for collecting metrics from the service.
type Collector interface {
	// Collect gathers current metrics from the system
	Collect(ctx context.Context) (Metrics, error)

	// GetRecordCounts returns the number of records per collection
	GetRecordCounts(ctx context.Context) (map[string]int64, error)
}
