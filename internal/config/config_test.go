package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)

	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.AI.BaseURL)
	assert.Equal(t, "llama3-8b-8192", cfg.AI.Model)
	assert.Equal(t, 1500, cfg.AI.MaxTokens)
	assert.Equal(t, 0.7, cfg.AI.Temperature)

	assert.Equal(t, 10, cfg.Collect.TrendsLimit)
	assert.Equal(t, "AIContentEngine/1.0", cfg.Collect.RedditUserAgent)
	assert.Equal(t, "IN", cfg.Collect.TrendsRegion)
	assert.Len(t, cfg.Collect.NewsFeeds, 4)

	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)

	// infra integrations are off by default
	assert.Empty(t, cfg.Database.URL)
	assert.Empty(t, cfg.NATS.URL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("TRENDS_REGION", "US")
	t.Setenv("NEWS_FEEDS", "https://a.example.com/rss,https://b.example.com/rss")
	t.Setenv("AI_TEMPERATURE", "0.2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "US", cfg.Collect.TrendsRegion)
	assert.Equal(t, []string{"https://a.example.com/rss", "https://b.example.com/rss"}, cfg.Collect.NewsFeeds)
	assert.Equal(t, 0.2, cfg.AI.Temperature)
}

func TestValidate(t *testing.T) {
	t.Run("requires the API key outside development", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("GROQ_API_KEY", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("accepts a missing key in development", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		t.Setenv("GROQ_API_KEY", "")

		_, err := Load()
		assert.NoError(t, err)
	})

	t.Run("rejects a non-positive trends limit", func(t *testing.T) {
		t.Setenv("TRENDS_LIMIT", "-1")

		_, err := Load()
		assert.Error(t, err)
	})
}
