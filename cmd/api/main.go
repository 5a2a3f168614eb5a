// cmd/api/main.go

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"contentengine/internal/adapter/groq"
	"contentengine/internal/adapter/storage"
	"contentengine/internal/collector"
	"contentengine/internal/config"
	"contentengine/internal/domain/trend"
	"contentengine/internal/server"
	"contentengine/internal/server/handlers"
	"contentengine/internal/service/aggregator"
	"contentengine/internal/service/analyzer"
)

func main() {
	// Load .env if present; real environment variables win
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "development" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Build source collectors. Reddit doubles as the fallback source for
	// Google Trends.
	redditCollector := collector.NewRedditCollector(cfg.Collect.RedditUserAgent, logger)
	sources := []aggregator.Source{
		{Collector: collector.NewGoogleTrendsCollector(cfg.Collect.TrendsRegion, redditCollector, logger), Timeout: cfg.Collect.SearchTimeout},
		{Collector: redditCollector, Timeout: cfg.Collect.RedditTimeout},
		{Collector: collector.NewNewsCollector(cfg.Collect.NewsFeeds, logger), Timeout: cfg.Collect.NewsTimeout},
	}
	if cfg.Collect.TwitterBearerToken != "" {
		sources = append(sources, aggregator.Source{
			Collector: collector.NewTwitterCollector(cfg.Collect.TwitterBearerToken, logger),
			Timeout:   cfg.Collect.RedditTimeout,
		})
	}

	agg := aggregator.New(sources, aggregator.Config{
		CacheTTL:    cfg.Cache.TTL,
		TrendsLimit: cfg.Collect.TrendsLimit,
	}, logger)

	// Live snapshot stream
	trendStream := handlers.NewTrendStream(handlers.DefaultWebSocketConfig(), logger)
	agg.RegisterRefreshHandler(trendStream.Broadcast)

	// Optional snapshot archive
	if cfg.Database.URL != "" {
		db, err := initDatabase(ctx, cfg.Database)
		if err != nil {
			logger.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()

		snapshotStore := storage.NewSnapshotStore(db)
		agg.RegisterRefreshHandler(func(snapshot *trend.Snapshot) {
			saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer saveCancel()
			if err := snapshotStore.SaveSnapshot(saveCtx, snapshot); err != nil {
				logger.WithError(err).Warn("Failed to archive snapshot")
			}
		})
	}

	// Optional refresh event publishing
	if cfg.NATS.URL != "" {
		natsConn, err := initNATS(cfg.NATS, logger)
		if err != nil {
			logger.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer natsConn.Close()

		topic := fmt.Sprintf("%s.refreshed", cfg.NATS.EventsTopic)
		agg.RegisterRefreshHandler(func(snapshot *trend.Snapshot) {
			event, err := json.Marshal(map[string]interface{}{
				"id":          snapshot.ID,
				"captured_at": snapshot.CapturedAt,
				"total_items": snapshot.TotalItems(),
			})
			if err != nil {
				logger.WithError(err).Warn("Failed to marshal refresh event")
				return
			}
			if err := natsConn.Publish(topic, event); err != nil {
				logger.WithError(err).Warn("Failed to publish refresh event")
			}
		})
	}

	// Completion client; analysis endpoints stay degraded when the API
	// key is absent, trending endpoints keep working
	var completion analyzer.CompletionClient
	groqClient, err := groq.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL)
	if err != nil {
		logger.WithError(err).Warn("Completion endpoint not configured, analysis endpoints will fail")
		completion = groq.Unavailable(err)
	} else {
		completion = groqClient
	}

	strategyAnalyzer := analyzer.New(completion, analyzer.Config{
		Model:       cfg.AI.Model,
		MaxTokens:   cfg.AI.MaxTokens,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.AI.Timeout,
	}, logger)

	competitorCollector := collector.NewCompetitorCollector(logger)

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, server.Dependencies{
		Provider:    agg,
		Analyzer:    strategyAnalyzer,
		Competitors: competitorCollector,
		TrendStream: trendStream,
		Log:         logger,
	})

	// Start HTTP server
	go func() {
		logger.Infof("Starting HTTP server on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	logger.Info("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("HTTP server shutdown error")
	}

	logger.Info("Shutdown complete")
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig, logger *logrus.Logger) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.WithError(err).Warn("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Infof("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}
