// internal/server/handlers/analyze.go

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"contentengine/internal/domain/trend"
	"contentengine/internal/service/strategy"
)

// StrategyAnalyzer is the analysis dependency of the strategy endpoints.
type StrategyAnalyzer interface {
	Analyze(ctx context.Context, snapshot *trend.Snapshot, targetAudience, niche string) (*trend.StrategyResult, error)
}

// AnalyzeRequest is the POST /analyze request body.
type AnalyzeRequest struct {
	TrendsData     *trend.Snapshot `json:"trends_data"`
	TargetAudience string          `json:"target_audience"`
	Niche          string          `json:"niche"`
}

// AnalyzeHandler handles strategy analysis HTTP requests
type AnalyzeHandler struct {
	analyzer StrategyAnalyzer
	provider SnapshotProvider
	log      *logrus.Logger
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analyzer StrategyAnalyzer, provider SnapshotProvider, log *logrus.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		provider: provider,
		log:      log,
	}
}

// Analyze generates a content strategy from caller-supplied trending data.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		validationErr := trend.NewValidationError("body", "invalid request body")
		respondWithError(w, h.log, http.StatusBadRequest, "Invalid request body", validationErr)
		return
	}

	applyAnalyzeDefaults(&req)

	result, err := h.analyzer.Analyze(r.Context(), req.TrendsData, req.TargetAudience, req.Niche)
	if err != nil {
		respondWithError(w, h.log, statusForError(err), "Analysis failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetStrategy composes snapshot collection and analysis in one call.
func (h *AnalyzeHandler) GetStrategy(w http.ResponseWriter, r *http.Request) {
	result, err := h.buildStrategy(r)
	if err != nil {
		respondWithError(w, h.log, statusForError(err), "Strategy generation failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetCalendar expands the analyzed top trends into a 30-day calendar.
func (h *AnalyzeHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	result, err := h.buildStrategy(r)
	if err != nil {
		respondWithError(w, h.log, statusForError(err), "Strategy generation failed", err)
		return
	}

	calendar, err := strategy.GenerateCalendar(result.TopTrends, audienceParam(r), time.Now())
	if err != nil {
		respondWithError(w, h.log, statusForError(err), "Calendar generation failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"strategy": result,
		"calendar": calendar,
	})
}

func (h *AnalyzeHandler) buildStrategy(r *http.Request) (*trend.StrategyResult, error) {
	snapshot, err := h.provider.GetSnapshot(r.Context(), false)
	if err != nil {
		return nil, err
	}

	return h.analyzer.Analyze(r.Context(), snapshot, audienceParam(r), nicheParam(r))
}

func applyAnalyzeDefaults(req *AnalyzeRequest) {
	if req.TargetAudience == "" {
		req.TargetAudience = "Gen Z"
	}
	if req.Niche == "" {
		req.Niche = "General"
	}
}

func audienceParam(r *http.Request) string {
	if v := r.URL.Query().Get("target_audience"); v != "" {
		return v
	}
	return "Gen Z"
}

func nicheParam(r *http.Request) string {
	if v := r.URL.Query().Get("niche"); v != "" {
		return v
	}
	return "General"
}
