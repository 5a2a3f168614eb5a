// internal/domain/trend/errors.go

package trend

import (
	"errors"
	"fmt"
)

// Stable machine-readable error codes surfaced in HTTP error bodies.
const (
	CodeAggregationFailed = "aggregation_failed"
	CodeAnalysisFailed    = "analysis_failed"
	CodeValidationFailed  = "validation_failed"
	CodeCollectionFailed  = "collection_failed"
)

// ErrAggregationFailed is returned when every source produced zero items.
var ErrAggregationFailed = errors.New("no trending data available from any source")

// CollectionError reports a single source failure. Siblings continue; the
// aggregator logs it and treats the source as empty.
type CollectionError struct {
	Platform string
	Err      error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("data collection failed for %s: %v", e.Platform, e.Err)
}

func (e *CollectionError) Unwrap() error { return e.Err }

// NewCollectionError wraps err as a collection failure for the platform.
func NewCollectionError(platform string, err error) *CollectionError {
	return &CollectionError{Platform: platform, Err: err}
}

// AnalysisError reports that the completion call failed or its output could
// not be coerced into the expected strategy shape.
type AnalysisError struct {
	Stage string
	Err   error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed at %s: %v", e.Stage, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// NewAnalysisError wraps err as an analysis failure at the given stage.
func NewAnalysisError(stage string, err error) *AnalysisError {
	return &AnalysisError{Stage: stage, Err: err}
}

// ValidationError reports caller-supplied or intermediate data violating a
// required invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a validation failure for a named field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ErrorCode maps an error to its stable code for API responses.
func ErrorCode(err error) string {
	var (
		collectionErr *CollectionError
		analysisErr   *AnalysisError
		validationErr *ValidationError
	)
	switch {
	case errors.Is(err, ErrAggregationFailed):
		return CodeAggregationFailed
	case errors.As(err, &validationErr):
		return CodeValidationFailed
	case errors.As(err, &analysisErr):
		return CodeAnalysisFailed
	case errors.As(err, &collectionErr):
		return CodeCollectionFailed
	default:
		return "internal_error"
	}
}
