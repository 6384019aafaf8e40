package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/pkg/client"
	"github.com/noah-isme/coaching-center-api/pkg/client/querycache"
	"github.com/noah-isme/coaching-center-api/pkg/config"
	"github.com/noah-isme/coaching-center-api/pkg/logger"
)

// warmcache prefetches the data every public page needs and writes it to a
// snapshot file that front-end servers restore on boot.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	baseURL := flag.String("api", cfg.APIBaseURL, "API base URL")
	out := flag.String("out", "./storage/cache/queries.json", "snapshot file")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	cacheCfg := querycache.DefaultConfig()
	cacheCfg.Persister = querycache.FilePersister{Path: *out}
	cacheCfg.Logger = logr
	cache := querycache.New(cacheCfg)
	if err := cache.Init(ctx); err != nil {
		logr.Warn("ignoring unreadable snapshot", zap.Error(err))
	}

	queries := querycache.NewQueries(client.New(*baseURL, client.WithLogger(logr)), cache)
	if err := queries.PrefetchEssential(ctx); err != nil {
		logr.Fatal("prefetch failed", zap.String("api", *baseURL), zap.Error(err))
	}
	if err := cache.Persist(ctx); err != nil {
		logr.Fatal("failed to write snapshot", zap.Error(err))
	}
	logr.Info("query cache warmed", zap.String("out", *out), zap.Int("entries", cache.Len()))
}
