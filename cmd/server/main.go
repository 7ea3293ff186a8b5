package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"

	"github.com/ejay-detera/orgspace/common/id"
	"github.com/ejay-detera/orgspace/common/logger"
	"github.com/ejay-detera/orgspace/common/otel"
	"github.com/ejay-detera/orgspace/core/config"
	"github.com/ejay-detera/orgspace/core/db"
	"github.com/ejay-detera/orgspace/internal/http/handler"
	"github.com/ejay-detera/orgspace/internal/http/middleware"
	httprouter "github.com/ejay-detera/orgspace/internal/http/router"
	"github.com/ejay-detera/orgspace/internal/queue"
	"github.com/ejay-detera/orgspace/internal/service"
	"github.com/ejay-detera/orgspace/internal/store"
	"github.com/ejay-detera/orgspace/internal/throttle"
)

const (
	limiterSweepInterval = time.Minute
	visitorCleanupEvery  = time.Minute
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "orgspace starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(id.NodeServer); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	policy := throttle.Policy{MaxAttempts: cfg.Throttle.MaxAttempts, Decay: cfg.Throttle.Decay}

	var (
		limiter  throttle.Limiter
		producer queue.Producer
	)
	if cfg.RedisEnabled() {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
			os.Exit(1)
		}

		// closed by producer.Close
		redisClient := redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "redis connected", "stream", cfg.Events.Stream)

		limiter = throttle.NewRedisLimiter(redisClient, policy, cfg.Throttle.KeyPrefix)
		producer = queue.NewRedisProducer(redisClient, cfg.Events.Stream, slog.Default())
	} else {
		slog.WarnContext(ctx, "redis disabled: login throttle is per-process and events are dropped")

		memLimiter := throttle.NewMemoryLimiter(policy, time.Now)
		go sweepLimiter(ctx, memLimiter)

		limiter = memLimiter
		producer = queue.NewDiscardProducer(slog.Default())
	}
	defer producer.Close()

	stores := store.NewStores(database.Queries())
	services := service.NewServices(stores, service.NewTxRunner(database), limiter, producer, cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := setupRouter(ctx, cfg, services)
	if err != nil {
		slog.ErrorContext(ctx, "failed to set up router", "error", err)
		os.Exit(1)
	}
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(ctx context.Context, cfg config.Config, services *service.Services) (*gin.Engine, error) {
	router, err := httprouter.NewEngine(cfg.HTTP.TrustedProxies)
	if err != nil {
		return nil, err
	}

	// otelgin first so recovered panics and request logs carry the trace id
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	if len(cfg.HTTP.AllowedOrigins) > 0 {
		router.Use(middleware.CORS(cfg.HTTP.AllowedOrigins))
	}

	if cfg.HTTP.RateLimitEnabled() {
		visitors := middleware.NewIPRateLimiter(middleware.RateLimitConfig{
			Rate:  rate.Limit(cfg.HTTP.RateLimitRPS),
			Burst: cfg.HTTP.RateLimitBurst,
		})
		go visitors.RunCleanup(ctx, visitorCleanupEvery)
		router.Use(visitors.Middleware())
	}

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		AppName:       cfg.AppName,
		DashboardPath: cfg.Auth.DashboardPath,
		Cookies: handler.CookieConfig{
			SessionName: cfg.Auth.CookieName,
			FlashName:   cfg.Auth.FlashCookieName,
			SessionTTL:  cfg.Auth.SessionTTL,
			Secure:      cfg.Auth.SecureCookies,
		},
	})

	return router, nil
}

func sweepLimiter(ctx context.Context, l *throttle.MemoryLimiter) {
	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Sweep(); n > 0 {
				slog.DebugContext(ctx, "swept login throttle entries", "count", n)
			}
		}
	}
}

const banner = `
  ___             ____
 / _ \ _ __ __ _ / ___| _ __   __ _  ___ ___
| | | | '__/ _` + "`" + ` |\___ \| '_ \ / _` + "`" + ` |/ __/ _ \
| |_| | | | (_| | ___) | |_) | (_| | (_|  __/
 \___/|_|  \__, ||____/| .__/ \__,_|\___\___|
           |___/       |_|
`
