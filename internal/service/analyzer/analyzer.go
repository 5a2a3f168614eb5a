// internal/service/analyzer/analyzer.go

package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"contentengine/internal/adapter/groq"
	"contentengine/internal/domain/trend"
)

const (
	promptItemsPerSource = 5
	promptTitleMaxRunes  = 100
)

// CompletionClient is the outbound text-generation dependency.
type CompletionClient interface {
	Complete(ctx context.Context, req groq.CompletionRequest) (string, error)
}

// Config contains configuration for the analyzer
type Config struct {
	Model       string
	MaxTokens   int
	Temperature float64

	// Timeout bounds the completion call. The upstream design left this
	// call unbounded; 30s is an added safety margin.
	Timeout time.Duration
}

// Analyzer turns a trending snapshot into a content strategy by prompting
// the completion endpoint and coercing its reply into the strategy shape.
type Analyzer struct {
	client CompletionClient
	config Config
	log    *logrus.Entry
	now    func() time.Time
}

// New creates a new analyzer
func New(client CompletionClient, config Config, log *logrus.Logger) *Analyzer {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &Analyzer{
		client: client,
		config: config,
		log:    log.WithField("component", "analyzer"),
		now:    time.Now,
	}
}

// parsedStrategy detects missing fields during shape validation.
type parsedStrategy struct {
	TopTrends       *[]trend.Item                  `json:"top_trends"`
	ContentStrategy *[]trend.ContentRecommendation `json:"content_strategy"`
	AnalysisSummary string                         `json:"analysis_summary"`
}

// Analyze sends a bounded sample of the snapshot to the completion endpoint
// and returns the validated strategy. It fails before any outbound call
// when the snapshot holds no items at all.
func (a *Analyzer) Analyze(ctx context.Context, snapshot *trend.Snapshot, targetAudience, niche string) (*trend.StrategyResult, error) {
	if snapshot == nil || snapshot.TotalItems() == 0 {
		return nil, trend.NewValidationError("trends_data", "no trending data available for analysis")
	}

	a.log.WithFields(logrus.Fields{
		"target_audience": targetAudience,
		"niche":           niche,
		"items":           snapshot.TotalItems(),
	}).Info("Analyzing trends")

	prompt := buildPrompt(snapshot, targetAudience, niche)

	callCtx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	raw, err := a.client.Complete(callCtx, groq.CompletionRequest{
		Model: a.config.Model,
		Messages: []groq.Message{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	})
	if err != nil {
		return nil, trend.NewAnalysisError("completion", err)
	}

	candidate, err := RepairJSON(raw)
	if err != nil {
		a.log.WithField("raw_response", raw).Error("No valid JSON found in completion response")
		return nil, trend.NewAnalysisError("extract", err)
	}

	var parsed parsedStrategy
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		a.log.WithFields(logrus.Fields{
			"raw_response": raw,
			"candidate":    candidate,
		}).Error("Failed to parse completion JSON")
		return nil, trend.NewAnalysisError("parse", err)
	}

	if err := validateShape(parsed); err != nil {
		return nil, trend.NewAnalysisError("validate", err)
	}

	return &trend.StrategyResult{
		TopTrends:       *parsed.TopTrends,
		ContentStrategy: *parsed.ContentStrategy,
		AnalysisSummary: parsed.AnalysisSummary,
		GeneratedAt:     a.now(),
	}, nil
}

func validateShape(parsed parsedStrategy) error {
	if parsed.TopTrends == nil {
		return fmt.Errorf("missing required field top_trends")
	}
	if parsed.ContentStrategy == nil {
		return fmt.Errorf("missing required field content_strategy")
	}
	if parsed.AnalysisSummary == "" {
		return fmt.Errorf("missing required field analysis_summary")
	}
	return nil
}

// buildPrompt embeds up to five truncated titles from each primary source,
// the audience and niche, and the exact reply shape expected.
func buildPrompt(snapshot *trend.Snapshot, targetAudience, niche string) string {
	googleTitles := sampleTitles(snapshot.Source("google_trends"))
	redditTitles := sampleTitles(snapshot.Source("reddit"))

	return fmt.Sprintf(`Analyze these trending topics and create a content strategy:

GOOGLE TRENDS:
%s

REDDIT HOT TOPICS:
%s

TARGET AUDIENCE: %s
NICHE: %s

Create a JSON response with exactly this structure:
{
  "top_trends": [
    {
      "title": "trend name",
      "platform": "google_trends or reddit",
      "engagement_score": 100,
      "url": "https://example.com",
      "metadata": {"analysis": "why this trend works"}
    }
  ],
  "content_strategy": [
    {
      "title": "Engaging Content Title",
      "format": "Reel/Short/Post/Story/Carousel",
      "platform": "Instagram/TikTok",
      "best_time": "7 PM IST",
      "hook": "Educational/Challenge/Tips/Tutorial",
      "description": "Detailed content description"
    }
  ],
  "analysis_summary": "Key insights and recommendations based on the trends"
}

Return ONLY the JSON object, with no additional text or explanations. Do not wrap the JSON in markdown backticks. Ensure the JSON is well-formed.`,
		strings.Join(googleTitles, ", "),
		strings.Join(redditTitles, ", "),
		targetAudience,
		niche,
	)
}

func sampleTitles(items []trend.Item) []string {
	titles := make([]string, 0, promptItemsPerSource)
	for _, item := range items {
		if len(titles) >= promptItemsPerSource {
			break
		}
		titles = append(titles, truncateRunes(item.Title, promptTitleMaxRunes))
	}
	return titles
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
