package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"trend-fetch/internal/middleware/logger"
	"trend-fetch/internal/trend_fetch/api"
	"trend-fetch/internal/trend_fetch/cache"
	"trend-fetch/internal/trend_fetch/helper"
	"trend-fetch/internal/trend_fetch/processor"
	"trend-fetch/internal/trend_fetch/store"
	"trend-fetch/pkg/config"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)

	ctx := context.Background()
	log.Info("starting trend fetch service")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		panic(err)
	}

	stores := helper.MustMongo(
		ctx,
		cfg.Mongo.Host,
		cfg.Mongo.DBName,
		cfg.Mongo.Username,
		cfg.Mongo.Password,
		cfg.Mongo.AuthSource,
	)

	metrics := processor.NewMetrics(nil)

	fetcher := &processor.Fetcher{
		Log:        log,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Search:     cfg.SearchAPI,
		Serp:       cfg.SerpAPI,
		Metrics:    metrics,
	}

	var trendCache *cache.TrendCache
	if cfg.Redis.Addr != "" {
		trendCache, err = cache.New(cfg.Redis, log)
		if err != nil {
			log.Warn("redis unavailable, fetch cache disabled", zap.Error(err))
			trendCache = nil
		}
	}

	srv := &api.Server{
		Log:       log,
		Fetcher:   fetcher,
		Trends:    store.NewTrends(log, stores.Trends),
		Instagram: store.NewInstagram(log, stores.InstagramTrends),
		Cache:     trendCache,
		Metrics:   metrics,
	}
	r := srv.Router()
	_ = r.SetTrustedProxies(nil)
	log.Info("trend fetch service is running", zap.String("address", cfg.Server.Addr))
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
