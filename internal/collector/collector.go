// internal/collector/collector.go

package collector

import (
	"context"

	"contentengine/internal/domain/trend"
)

// Collector defines a single trending-data source.
type Collector interface {
	// Platform returns the source name used as the snapshot key.
	Platform() string

	// Collect fetches up to limit trend items from the source.
	Collect(ctx context.Context, limit int) ([]trend.Item, error)
}

// validateItems drops items without a title and truncates the result to
// limit, keeping the highest-ranked items. No other items are altered.
func validateItems(items []trend.Item, limit int) []trend.Item {
	valid := make([]trend.Item, 0, len(items))
	for _, item := range items {
		if item.Title == "" {
			continue
		}
		valid = append(valid, item)
		if limit > 0 && len(valid) >= limit {
			break
		}
	}
	return valid
}

// rankScore synthesizes an engagement score from rank position for sources
// without native scores. Monotonically decreasing with a floor of 100.
func rankScore(rank int) int {
	score := 1000 - rank*100
	if score < 100 {
		score = 100
	}
	return score
}

func intPtr(v int) *int { return &v }
