package main // Entry point package

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/portfolio-backend/internal/config"
	"github.com/iliyamo/portfolio-backend/internal/database"
	"github.com/iliyamo/portfolio-backend/internal/logging"
	"github.com/iliyamo/portfolio-backend/internal/queue"
	"github.com/iliyamo/portfolio-backend/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal(slog.Default(), "invalid configuration", "error", err)
	}
	log := logging.New(cfg.Log, cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.OpenStore(ctx, cfg.Store)
	if err != nil {
		logging.Fatal(log, "open store failed", "driver", cfg.Store.Driver, "error", err)
	}
	log.Info("store ready", "driver", cfg.Store.Driver)

	var rdb *redis.Client
	if cfg.RateLimit.Enabled {
		rdb = config.NewRedisClient(cfg.Redis)
		if rdb == nil {
			log.Warn("redis unavailable; contact rate limiting disabled", "addr", cfg.Redis.Addr)
		}
	}

	var events queue.Publisher = queue.NopPublisher{}
	consumerDone := make(chan struct{})
	if cfg.Events.Enabled() {
		events = queue.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Queue, log)
		consumer := &queue.Consumer{URL: cfg.Events.URL, Queue: cfg.Events.Queue, LogPath: cfg.Events.LogPath, Log: log}
		go func() {
			defer close(consumerDone)
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("contact-consumer stopped", "error", err)
			}
		}()
	} else {
		close(consumerDone)
	}

	e := router.New(router.Deps{Cfg: cfg, Log: log, Store: store, Events: events, Redis: rdb})

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env, "prefix", cfg.APIPrefix, "admin_guarded", cfg.Admin.Guarded())
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	<-consumerDone
	if err := store.Close(sctx); err != nil {
		log.Error("store close", "error", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
