// internal/server/handlers/trending.go

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"contentengine/internal/domain/trend"
)

// SnapshotProvider is the aggregation dependency of the trending endpoints.
type SnapshotProvider interface {
	GetSnapshot(ctx context.Context, forceRefresh bool) (*trend.Snapshot, error)
	Invalidate()
	CacheStatus() (cached bool, capturedAt time.Time)
}

// TrendingHandler handles trending-data HTTP requests
type TrendingHandler struct {
	provider SnapshotProvider
	log      *logrus.Logger
}

// NewTrendingHandler creates a new trending handler
func NewTrendingHandler(provider SnapshotProvider, log *logrus.Logger) *TrendingHandler {
	return &TrendingHandler{
		provider: provider,
		log:      log,
	}
}

// GetTrending returns the cached or freshly collected snapshot.
// ?refresh=true bypasses the cache.
func (h *TrendingHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	forceRefresh := r.URL.Query().Get("refresh") == "true"

	snapshot, err := h.provider.GetSnapshot(r.Context(), forceRefresh)
	if err != nil {
		respondWithError(w, h.log, statusForError(err), "No trending data available from any source", err)
		return
	}

	respondWithJSON(w, http.StatusOK, snapshot)
}

// HealthCheck reports liveness and cache status.
func (h *TrendingHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	cached, capturedAt := h.provider.CacheStatus()

	status := map[string]interface{}{
		"status":       "healthy",
		"timestamp":    time.Now().Format(time.RFC3339),
		"cache_status": "empty",
	}
	if cached {
		status["cache_status"] = "cached"
		status["last_update"] = capturedAt.Format(time.RFC3339)
	}

	respondWithJSON(w, http.StatusOK, status)
}

// ClearCache invalidates the snapshot cache so the next request hits the
// sources again.
func (h *TrendingHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.provider.Invalidate()
	h.log.Info("Cache cleared, next request will fetch fresh data")

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Cache cleared - next request will fetch fresh data",
	})
}
