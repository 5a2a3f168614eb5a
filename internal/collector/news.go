// internal/collector/news.go

package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"

	"contentengine/internal/domain/trend"
)

const newsItemsPerFeed = 3

// NewsCollector fetches headlines from a set of RSS feeds. Individual feed
// failures are logged and skipped; when every feed fails it falls back to a
// built-in sample data set rather than failing the source.
type NewsCollector struct {
	parser   *gofeed.Parser
	feedURLs []string
	log      *logrus.Entry
}

// NewNewsCollector creates a new RSS news collector
func NewNewsCollector(feedURLs []string, log *logrus.Logger) *NewsCollector {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 10 * time.Second}

	return &NewsCollector{
		parser:   parser,
		feedURLs: feedURLs,
		log:      log.WithField("collector", "news"),
	}
}

// Platform returns the source name for snapshot keys.
func (c *NewsCollector) Platform() string { return "news" }

// Collect fetches headlines across the configured feeds, taking a few from
// each until limit is reached.
func (c *NewsCollector) Collect(ctx context.Context, limit int) ([]trend.Item, error) {
	if limit <= 0 {
		limit = 10
	}

	var items []trend.Item
	for _, feedURL := range c.feedURLs {
		feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			c.log.WithError(err).WithField("feed", feedURL).Warn("Failed to fetch news feed")
			continue
		}

		for i, entry := range feed.Items {
			if i >= newsItemsPerFeed {
				break
			}
			item := trend.Item{
				Title:           entry.Title,
				Platform:        c.Platform(),
				EngagementScore: intPtr(newsRankScore(len(items))),
				URL:             entry.Link,
				Metadata: map[string]interface{}{
					"source": feedHost(feedURL),
					"type":   "news_article",
				},
			}
			if entry.Published != "" {
				item.Metadata["published"] = entry.Published
			}
			items = append(items, item)
		}

		if len(items) >= limit {
			break
		}
	}

	valid := validateItems(items, limit)
	if len(valid) == 0 {
		c.log.Info("Falling back to sample news data")
		return validateItems(sampleNewsItems(), limit), nil
	}

	c.log.WithField("count", len(valid)).Info("Collected news headlines")

	return valid, nil
}

// newsRankScore synthesizes engagement in the 500-2000 band the original
// news source reported, decreasing with rank.
func newsRankScore(rank int) int {
	score := 2000 - rank*150
	if score < 500 {
		score = 500
	}
	return score
}

func feedHost(feedURL string) string {
	parsed, err := url.Parse(feedURL)
	if err != nil || parsed.Host == "" {
		return feedURL
	}
	return parsed.Host
}

// sampleNewsItems is the deterministic built-in sample data set used when
// every RSS feed is unavailable.
func sampleNewsItems() []trend.Item {
	samples := []struct {
		title    string
		score    int
		url      string
		source   string
		category string
	}{
		{"AI Revolution: How Machine Learning is Transforming Content Creation", 1850, "https://example.com/ai-content-creation", "TechNewsDaily", "technology"},
		{"Remote Work Trends 2024: Companies Embrace Hybrid Models", 1420, "https://example.com/remote-work-trends", "BusinessWeekly", "business"},
		{"Gen Z Mental Health Crisis: New Study Reveals Alarming Statistics", 2300, "https://example.com/gen-z-mental-health", "HealthJournal", "health"},
		{"Cryptocurrency Market Sees Surge as Bitcoin Hits New Highs", 1680, "https://example.com/crypto-surge", "FinanceToday", "finance"},
		{"Climate Change Solutions: Tech Giants Lead Sustainability Efforts", 1950, "https://example.com/climate-tech", "EcoWatch", "environment"},
	}

	items := make([]trend.Item, 0, len(samples))
	for _, s := range samples {
		items = append(items, trend.Item{
			Title:           s.title,
			Platform:        "news",
			EngagementScore: intPtr(s.score),
			URL:             s.url,
			Metadata: map[string]interface{}{
				"source": s.source,
				"type":   s.category,
				"origin": "sample_data",
			},
		})
	}
	return items
}
