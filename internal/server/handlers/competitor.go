// internal/server/handlers/competitor.go

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"contentengine/internal/domain/trend"
)

// CompetitorSource is the competitor-profile dependency.
type CompetitorSource interface {
	Collect(ctx context.Context, usernames []string) ([]trend.CompetitorProfile, error)
}

// CompetitorRequest is the POST /competitors request body.
type CompetitorRequest struct {
	Competitors []string `json:"competitors"`
}

// CompetitorHandler handles competitor-profile HTTP requests
type CompetitorHandler struct {
	source CompetitorSource
	log    *logrus.Logger
}

// NewCompetitorHandler creates a new competitor handler
func NewCompetitorHandler(source CompetitorSource, log *logrus.Logger) *CompetitorHandler {
	return &CompetitorHandler{
		source: source,
		log:    log,
	}
}

// GetCompetitors returns simulated profiles for the requested usernames.
func (h *CompetitorHandler) GetCompetitors(w http.ResponseWriter, r *http.Request) {
	var req CompetitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		validationErr := trend.NewValidationError("body", "invalid request body")
		respondWithError(w, h.log, http.StatusBadRequest, "Invalid request body", validationErr)
		return
	}

	profiles, err := h.source.Collect(r.Context(), req.Competitors)
	if err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, "Competitor data collection failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, profiles)
}
