package trend

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
	}{
		{"aggregation sentinel", ErrAggregationFailed, CodeAggregationFailed},
		{"wrapped aggregation sentinel", fmt.Errorf("fetch: %w", ErrAggregationFailed), CodeAggregationFailed},
		{"validation", NewValidationError("body", "invalid"), CodeValidationFailed},
		{"analysis", NewAnalysisError("parse", errors.New("bad json")), CodeAnalysisFailed},
		{"collection", NewCollectionError("reddit", errors.New("429")), CodeCollectionFailed},
		{"unknown", errors.New("boom"), "internal_error"},
		{"nil", nil, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, ErrorCode(tc.err))
		})
	}
}

func TestCollectionErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewCollectionError("news", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "news")
}

func TestSnapshotAccessors(t *testing.T) {
	s := &Snapshot{
		SourceTrends: map[string][]Item{
			"reddit": {{Title: "a"}, {Title: "b"}},
			"news":   {{Title: "c"}},
		},
	}

	assert.Equal(t, 3, s.TotalItems())
	assert.Len(t, s.Source("reddit"), 2)
	assert.Empty(t, s.Source("google_trends"))
}
