// internal/server/handlers/respond.go

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"contentengine/internal/domain/trend"
)

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses; carries the stable error code alongside the
// human-readable message.
func respondWithError(w http.ResponseWriter, log *logrus.Logger, code int, message string, err error) {
	response := map[string]string{
		"error": message,
		"code":  "internal_error",
	}
	if err != nil {
		response["code"] = trend.ErrorCode(err)
		if code >= 500 {
			log.WithError(err).WithField("status", code).Error(message)
		}
	}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}

// statusForError maps domain errors to HTTP status codes.
func statusForError(err error) int {
	switch trend.ErrorCode(err) {
	case trend.CodeAggregationFailed:
		return http.StatusServiceUnavailable
	case trend.CodeValidationFailed:
		return http.StatusBadRequest
	case trend.CodeAnalysisFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
