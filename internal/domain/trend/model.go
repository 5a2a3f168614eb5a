// internal/domain/trend/model.go

package trend

import (
	"time"
)

// Item represents a single normalized trending topic from one source.
type Item struct {
	Title           string                 `json:"title"`
	Platform        string                 `json:"platform"`
	EngagementScore *int                   `json:"engagement_score,omitempty"`
	URL             string                 `json:"url,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

// Snapshot is the merged, timestamped result of one aggregation cycle.
// It is built once by the aggregator and read-only afterward.
type Snapshot struct {
	ID           string            `json:"id"`
	SourceTrends map[string][]Item `json:"source_trends"`
	CapturedAt   time.Time         `json:"captured_at"`
}

// TotalItems returns the number of items across all sources.
func (s *Snapshot) TotalItems() int {
	total := 0
	for _, items := range s.SourceTrends {
		total += len(items)
	}
	return total
}

// Source returns the items collected for a given platform name.
func (s *Snapshot) Source(platform string) []Item {
	return s.SourceTrends[platform]
}

// ContentRecommendation is one recommended content piece in a strategy.
type ContentRecommendation struct {
	Title       string `json:"title"`
	Format      string `json:"format"`
	Platform    string `json:"platform"`
	BestTime    string `json:"best_time"`
	Hook        string `json:"hook"`
	Description string `json:"description"`
}

// StrategyResult is the validated output of a strategy analysis.
type StrategyResult struct {
	TopTrends       []Item                  `json:"top_trends"`
	ContentStrategy []ContentRecommendation `json:"content_strategy"`
	AnalysisSummary string                  `json:"analysis_summary"`
	GeneratedAt     time.Time               `json:"generated_at"`
}

// CalendarEntry is one day of a generated content calendar.
type CalendarEntry struct {
	Date        string   `json:"date"`
	Title       string   `json:"title"`
	Format      string   `json:"format"`
	Platform    string   `json:"platform"`
	BestTime    string   `json:"best_time"`
	Hook        string   `json:"hook"`
	Description string   `json:"description"`
	Hashtags    []string `json:"hashtags"`
	CTA         string   `json:"cta"`
}

// CompetitorPost is one recent post in a competitor profile.
type CompetitorPost struct {
	Content    string `json:"content"`
	Engagement int    `json:"engagement"`
	Format     string `json:"format"`
	PostedAt   string `json:"posted_at"`
}

// CompetitorProfile describes one competitor account on one platform.
type CompetitorProfile struct {
	Username       string           `json:"username"`
	Platform       string           `json:"platform"`
	FollowerCount  int              `json:"follower_count"`
	PostFrequency  string           `json:"post_frequency"`
	AvgEngagement  float64          `json:"avg_engagement"`
	TopTopics      []string         `json:"top_topics"`
	ContentFormats []string         `json:"content_formats"`
	RecentPosts    []CompetitorPost `json:"recent_posts"`
	AnalysisDate   time.Time        `json:"analysis_date"`
}
