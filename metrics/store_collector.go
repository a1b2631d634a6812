package metrics

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// StoreCollector implements Collector by asking each collection for its size
type StoreCollector struct {
	counters map[string]Counter
}

// NewStoreCollector creates a collector over the named counters
func NewStoreCollector(counters map[string]Counter) *StoreCollector {
	return &StoreCollector{counters: counters}
}

// Collect gathers all metrics
func (c *StoreCollector) Collect(ctx context.Context) (Metrics, error) {
	records, err := c.GetRecordCounts(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting record counts: %w", err)
	}
	return Metrics{
		Records:   records,
		Timestamp: time.Now(),
	}, nil
}

// GetRecordCounts stops at the first collection that fails
func (c *StoreCollector) GetRecordCounts(ctx context.Context) (map[string]int64, error) {
	names := make([]string, 0, len(c.counters))
	for name := range c.counters {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make(map[string]int64, len(names))
	for _, name := range names {
		n, err := c.counters[name].Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("counting %s: %w", name, err)
		}
		records[name] = n
	}
	return records, nil
}
