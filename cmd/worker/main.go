package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ejay-detera/orgspace/common/id"
	"github.com/ejay-detera/orgspace/common/logger"
	"github.com/ejay-detera/orgspace/common/otel"
	"github.com/ejay-detera/orgspace/core/config"
	"github.com/ejay-detera/orgspace/core/db"
	"github.com/ejay-detera/orgspace/internal/queue"
	"github.com/ejay-detera/orgspace/internal/store"
	"github.com/ejay-detera/orgspace/internal/worker"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)
	logger.Setup(cfg)

	slog.InfoContext(ctx, "orgspace worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Events.Group,
		"consumer_name", cfg.Events.Consumer)

	if err := id.Init(id.NodeWorker); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	if !cfg.RedisEnabled() {
		slog.ErrorContext(ctx, "worker requires REDIS_URL")
		os.Exit(1)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Events.Stream)

	consumer, err := queue.NewRedisConsumer(ctx, redisClient, queue.ConsumerConfig{
		Stream:       cfg.Events.Stream,
		Group:        cfg.Events.Group,
		Consumer:     cfg.Events.Consumer,
		DLQStream:    cfg.Events.DLQStream,
		BatchSize:    10,
		Block:        cfg.Events.Block,
		RequeueDelay: cfg.Events.RequeueDelay,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	stores := store.NewStores(database.Queries())
	notifier := worker.NewLogNotifier(stores.Users(), stores.Organizations())

	w := worker.New(consumer, notifier, worker.Config{
		MaxAttempts: cfg.Events.MaxAttempts,
	})

	reclaimer := worker.NewReclaimer(consumer, worker.ReclaimerConfig{
		MinIdle:   cfg.Events.ReclaimMinIdle,
		Interval:  cfg.Events.ReclaimInterval,
		BatchSize: 10,
	}, w.Handle)

	sweeper := worker.NewSessionSweeper(stores.Sessions(), cfg.Events.SweepInterval)

	errCh := make(chan error, 3)
	go func() {
		errCh <- w.Run(ctx)
	}()
	go func() {
		reclaimer.Run(ctx)
		errCh <- nil
	}()
	go func() {
		sweeper.Run(ctx)
		errCh <- nil
	}()

	slog.InfoContext(ctx, "worker initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	go func() {
		// reclaimer and sweeper stop quickly; the worker may be mid-message
		reclaimer.Stop()
		sweeper.Stop()
		w.Stop()
	}()

wait:
	for range 3 {
		select {
		case <-shutdownCtx.Done():
			slog.WarnContext(ctx, "shutdown timeout exceeded")
			break wait
		case err := <-errCh:
			if err != nil {
				slog.ErrorContext(ctx, "worker error during shutdown", "error", err)
			}
		}
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(ctx, "worker shutdown complete")
}

const banner = `
  ___             ____                        __        __         _
 / _ \ _ __ __ _ / ___| _ __   __ _  ___ ___  \ \      / /__  _ __| | _____ _ __
| | | | '__/ _` + "`" + ` |\___ \| '_ \ / _` + "`" + ` |/ __/ _ \  \ \ /\ / / _ \| '__| |/ / _ \ '__|
| |_| | | | (_| | ___) | |_) | (_| | (_|  __/   \ V  V / (_) | |  |   <  __/ |
 \___/|_|  \__, ||____/| .__/ \__,_|\___\___|    \_/\_/ \___/|_|  |_|\_\___|_|
           |___/       |_|
`
