// internal/collector/twitter.go

package collector

import (
	"context"
	"fmt"
	"net/http"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"
	"github.com/sirupsen/logrus"

	"contentengine/internal/domain/trend"
)

type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// TwitterCollector fetches recent high-engagement tweets via the v2 search
// API. Only wired when a bearer token is configured. Like Reddit, it fails
// honestly: upstream errors propagate with no fallback.
type TwitterCollector struct {
	client *twitter.Client
	query  string
	log    *logrus.Entry
}

// NewTwitterCollector creates a new Twitter collector
func NewTwitterCollector(bearerToken string, log *logrus.Logger) *TwitterCollector {
	return &TwitterCollector{
		client: &twitter.Client{
			Authorizer: bearerAuthorizer{token: bearerToken},
			Client:     &http.Client{Timeout: 10 * time.Second},
			Host:       "https://api.twitter.com",
		},
		query: "is:verified -is:retweet lang:en",
		log:   log.WithField("collector", "twitter"),
	}
}

// Platform returns the source name for snapshot keys.
func (c *TwitterCollector) Platform() string { return "twitter" }

// Collect fetches recent tweets matching the trending query.
func (c *TwitterCollector) Collect(ctx context.Context, limit int) ([]trend.Item, error) {
	if limit <= 0 {
		limit = 10
	}

	// The recent search endpoint requires max_results in [10, 100].
	maxResults := limit
	if maxResults < 10 {
		maxResults = 10
	}

	opts := twitter.TweetRecentSearchOpts{
		MaxResults:  maxResults,
		TweetFields: []twitter.TweetField{twitter.TweetFieldPublicMetrics},
	}

	resp, err := c.client.TweetRecentSearch(ctx, c.query, opts)
	if err != nil {
		return nil, trend.NewCollectionError(c.Platform(), fmt.Errorf("recent search failed: %w", err))
	}

	items := make([]trend.Item, 0, len(resp.Raw.Tweets))
	for _, tweet := range resp.Raw.Tweets {
		if tweet == nil {
			continue
		}
		item := trend.Item{
			Title:    tweet.Text,
			Platform: c.Platform(),
			URL:      fmt.Sprintf("https://twitter.com/i/web/status/%s", tweet.ID),
		}
		if tweet.PublicMetrics != nil {
			engagement := tweet.PublicMetrics.Likes + tweet.PublicMetrics.Retweets + tweet.PublicMetrics.Replies
			item.EngagementScore = intPtr(engagement)
			item.Metadata = map[string]interface{}{
				"likes":    tweet.PublicMetrics.Likes,
				"retweets": tweet.PublicMetrics.Retweets,
				"replies":  tweet.PublicMetrics.Replies,
			}
		}
		items = append(items, item)
	}

	c.log.WithField("count", len(items)).Info("Received tweets from Twitter API")

	return validateItems(items, limit), nil
}
