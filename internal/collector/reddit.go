// internal/collector/reddit.go

package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"contentengine/internal/domain/trend"
)

// RedditPost represents a post from the Reddit listing API
type RedditPost struct {
	Title       string  `json:"title"`
	Permalink   string  `json:"permalink"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	Subreddit   string  `json:"subreddit"`
	UpvoteRatio float64 `json:"upvote_ratio"`
}

// RedditResponse represents the structure of the Reddit API response
type RedditResponse struct {
	Kind string `json:"kind"`
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Kind string     `json:"kind"`
			Data RedditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// RedditCollector fetches hot posts from r/all. It fails honestly: there is
// no fallback data for this source, any upstream error propagates.
type RedditCollector struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	log        *logrus.Entry
}

// NewRedditCollector creates a new Reddit collector
func NewRedditCollector(userAgent string, log *logrus.Logger) *RedditCollector {
	return &RedditCollector{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		baseURL:   "https://www.reddit.com",
		userAgent: userAgent,
		log:       log.WithField("collector", "reddit"),
	}
}

// Platform returns the source name for snapshot keys.
func (c *RedditCollector) Platform() string { return "reddit" }

// Collect fetches trending posts from r/all/hot.
func (c *RedditCollector) Collect(ctx context.Context, limit int) ([]trend.Item, error) {
	if limit <= 0 {
		limit = 10
	}

	url := fmt.Sprintf("%s/r/all/hot.json?limit=%d", c.baseURL, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, trend.NewCollectionError(c.Platform(), fmt.Errorf("failed to create request: %w", err))
	}

	// User-Agent is required to avoid Reddit rate limiting
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, trend.NewCollectionError(c.Platform(), fmt.Errorf("failed to connect to Reddit API: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, trend.NewCollectionError(c.Platform(), fmt.Errorf("Reddit API returned status code %d", resp.StatusCode))
	}

	var redditResp RedditResponse
	if err := json.NewDecoder(resp.Body).Decode(&redditResp); err != nil {
		return nil, trend.NewCollectionError(c.Platform(), fmt.Errorf("failed to decode Reddit API response: %w", err))
	}

	items := make([]trend.Item, 0, len(redditResp.Data.Children))
	for _, child := range redditResp.Data.Children {
		post := child.Data
		items = append(items, trend.Item{
			Title:           post.Title,
			Platform:        c.Platform(),
			EngagementScore: intPtr(post.Score),
			URL:             fmt.Sprintf("https://reddit.com%s", post.Permalink),
			Metadata: map[string]interface{}{
				"subreddit":    post.Subreddit,
				"comments":     post.NumComments,
				"upvote_ratio": post.UpvoteRatio,
			},
		})
	}

	c.log.WithField("count", len(items)).Info("Received posts from Reddit API")

	return validateItems(items, limit), nil
}

// SetBaseURL overrides the Reddit API base URL. Used in tests.
func (c *RedditCollector) SetBaseURL(url string) { c.baseURL = url }
