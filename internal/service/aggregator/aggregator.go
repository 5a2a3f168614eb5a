// internal/service/aggregator/aggregator.go

package aggregator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"contentengine/internal/collector"
	"contentengine/internal/domain/trend"
)

// Source pairs a collector with its independent fan-out timeout.
type Source struct {
	Collector collector.Collector
	Timeout   time.Duration
}

// Config contains configuration for the aggregator
type Config struct {
	CacheTTL    time.Duration
	TrendsLimit int
}

// Aggregator fans out to the registered source collectors, merges whatever
// succeeded into a snapshot, and keeps the most recent successful snapshot
// in a single-slot TTL cache.
type Aggregator struct {
	sources []Source
	config  Config
	log     *logrus.Entry

	// single-slot cache; overwritten wholesale on refresh, write-wins
	// under concurrent refreshes
	mu       sync.RWMutex
	cached   *trend.Snapshot
	cachedAt time.Time

	handlersMu      sync.RWMutex
	refreshHandlers []func(*trend.Snapshot)

	now func() time.Time
}

// New creates a new aggregator over the given sources
func New(sources []Source, config Config, log *logrus.Logger) *Aggregator {
	return &Aggregator{
		sources: sources,
		config:  config,
		log:     log.WithField("component", "aggregator"),
		now:     time.Now,
	}
}

// RegisterRefreshHandler registers a callback invoked with every freshly
// built snapshot. Handlers run after the cache slot is updated.
func (a *Aggregator) RegisterRefreshHandler(handler func(*trend.Snapshot)) {
	a.handlersMu.Lock()
	defer a.handlersMu.Unlock()

	a.refreshHandlers = append(a.refreshHandlers, handler)
}

// GetSnapshot returns the cached snapshot when it is within TTL, otherwise
// collects a fresh one. Repeated calls inside the TTL window issue zero
// outbound source calls. It fails only when every source produced nothing.
func (a *Aggregator) GetSnapshot(ctx context.Context, forceRefresh bool) (*trend.Snapshot, error) {
	if !forceRefresh {
		if snapshot, ok := a.cachedSnapshot(); ok {
			a.log.Info("Returning cached trending data")
			return snapshot, nil
		}
	}

	a.log.Info("Collecting fresh trending data")

	snapshot, err := a.collect(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.cached = snapshot
	a.cachedAt = snapshot.CapturedAt
	a.mu.Unlock()

	a.notifyRefresh(snapshot)

	return snapshot, nil
}

// Invalidate clears the cache slot unconditionally. The next request will
// hit the sources again.
func (a *Aggregator) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cached = nil
	a.cachedAt = time.Time{}
}

// CacheStatus reports whether a snapshot is cached and when it was captured.
func (a *Aggregator) CacheStatus() (cached bool, capturedAt time.Time) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.cached != nil, a.cachedAt
}

func (a *Aggregator) cachedSnapshot() (*trend.Snapshot, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.cached == nil {
		return nil, false
	}
	if a.now().Sub(a.cachedAt) >= a.config.CacheTTL {
		return nil, false
	}
	return a.cached, true
}

type sourceResult struct {
	platform string
	items    []trend.Item
}

// collect fans out to every source concurrently. Each call is bounded by
// its own timeout; a timeout or error never aborts the sibling calls.
func (a *Aggregator) collect(ctx context.Context) (*trend.Snapshot, error) {
	results := make(chan sourceResult, len(a.sources))

	var wg sync.WaitGroup
	for _, source := range a.sources {
		wg.Add(1)
		go func(s Source) {
			defer wg.Done()

			sourceCtx, cancel := context.WithTimeout(ctx, s.Timeout)
			defer cancel()

			platform := s.Collector.Platform()
			items, err := s.Collector.Collect(sourceCtx, a.config.TrendsLimit)
			if err != nil {
				a.log.WithError(err).WithField("platform", platform).Warn("Source collection failed")
				return
			}

			a.log.WithFields(logrus.Fields{
				"platform": platform,
				"count":    len(items),
			}).Info("Source collected")

			results <- sourceResult{platform: platform, items: items}
		}(source)
	}

	wg.Wait()
	close(results)

	sourceTrends := make(map[string][]trend.Item)
	total := 0
	for result := range results {
		if len(result.items) == 0 {
			continue
		}
		// Keyed by the collector that produced the items. A fallback
		// result keeps its own platform tag on each item.
		sourceTrends[result.platform] = result.items
		total += len(result.items)
	}

	if total == 0 {
		return nil, trend.ErrAggregationFailed
	}

	return &trend.Snapshot{
		ID:           uuid.New().String(),
		SourceTrends: sourceTrends,
		CapturedAt:   a.now(),
	}, nil
}

func (a *Aggregator) notifyRefresh(snapshot *trend.Snapshot) {
	a.handlersMu.RLock()
	handlers := make([]func(*trend.Snapshot), len(a.refreshHandlers))
	copy(handlers, a.refreshHandlers)
	a.handlersMu.RUnlock()

	for _, handler := range handlers {
		handler(snapshot)
	}
}
