package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/piresc/triptracker/internal/pkg/circuitbreaker"
	"github.com/piresc/triptracker/internal/pkg/config"
	"github.com/piresc/triptracker/internal/pkg/database"
	"github.com/piresc/triptracker/internal/pkg/health"
	httpclient "github.com/piresc/triptracker/internal/pkg/http"
	jwtpkg "github.com/piresc/triptracker/internal/pkg/jwt"
	"github.com/piresc/triptracker/internal/pkg/logger"
	"github.com/piresc/triptracker/internal/pkg/metrics"
	"github.com/piresc/triptracker/internal/pkg/middleware"
	natspkg "github.com/piresc/triptracker/internal/pkg/nats"
	nrpkg "github.com/piresc/triptracker/internal/pkg/newrelic"
	"github.com/piresc/triptracker/internal/pkg/retry"
	"github.com/piresc/triptracker/internal/pkg/server"
	wspkg "github.com/piresc/triptracker/internal/pkg/websocket"
	"github.com/piresc/triptracker/services/trips"
	gateway_http "github.com/piresc/triptracker/services/trips/gateway/http"
	gateway_location "github.com/piresc/triptracker/services/trips/gateway/location"
	gateway_nats "github.com/piresc/triptracker/services/trips/gateway/nats"
	"github.com/piresc/triptracker/services/trips/handler"
	"github.com/piresc/triptracker/services/trips/repository"
	"github.com/piresc/triptracker/services/trips/usecase"
)

func main() {
	appName := "trip-tracker"
	configPath := flag.String("config", "config/tracker.env", "env file loaded when APP_ENV=local")
	issueToken := flag.String("issue-token", "", "print a bearer token for the given subject and exit")
	flag.Parse()

	configs := config.InitConfig(*configPath)

	if *issueToken != "" {
		token, expiresAt, err := jwtpkg.GenerateToken(*issueToken, configs.Tracking.Role, configs.JWT, time.Now())
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Printf("%s\n# expires at %s\n", token, time.Unix(expiresAt, 0).Format(time.RFC3339))
		return
	}

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.String("role", string(configs.Tracking.Role)))

	shutdown := server.NewShutdownManager()
	shutdown.Register(func(context.Context) error { return zapLogger.Close() })
	if nrApp != nil {
		shutdown.Register(func(context.Context) error {
			nrApp.Shutdown(10 * time.Second)
			return nil
		})
	}

	healthService := health.NewHealthService()

	// Active trip persistence
	var tripRepo trips.TripRepo = repository.NewMemoryRepo()
	if configs.Redis.Host != "" {
		redisClient, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		shutdown.Register(func(context.Context) error { return redisClient.Close() })
		healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
		tripRepo = repository.NewTripRepo(redisClient, configs.Redis.TTL)
	} else {
		logger.Info("Redis disabled, active trip kept in memory")
	}

	// Status events
	var eventGW trips.EventGW = gateway_nats.NoopGateway{}
	if configs.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(configs.NATS.URL)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", logger.Err(err))
		}
		shutdown.Register(func(context.Context) error {
			natsClient.Close()
			return nil
		})
		healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
		eventGW = gateway_nats.NewNATSGateway(natsClient)
	} else {
		logger.Info("NATS disabled, status events are not published")
	}

	// Backend API
	clk := clock.New()
	breakers := circuitbreaker.NewManager(httpclient.DefaultBreakerConfig(), clk)
	healthService.AddChecker("backend", health.NewBreakerHealthChecker(breakers))

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = configs.Backend.MaxRetries
	backendGW := gateway_http.NewHTTPGateway(
		httpclient.NewClient(httpclient.Config{
			BaseURL: configs.Backend.BaseURL,
			Token:   configs.Backend.Token,
			Timeout: configs.Backend.Timeout,
		}, breakers),
		retry.NewWithClock(retryCfg, clk),
	)

	// Device location
	feed := gateway_location.NewFeed(clk, configs.Tracking.LocationTimeout)
	var locationGW trips.LocationGW = feed
	if configs.Tracking.Simulate {
		logger.Info("Location simulation enabled, own position follows the route")
		locationGW = gateway_location.NewSimulator(feed)
	}

	tracker := usecase.NewTracker(configs.Tracking, configs.Polling, usecase.Deps{
		Backend:  backendGW,
		Location: locationGW,
		Events:   eventGW,
		Repo:     tripRepo,
		Clock:    clk,
		NewRelic: nrApp,
	})

	e := echo.New()
	e.HideBanner = true
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(middleware.PanicRecoveryMiddleware())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)
	e.GET("/metrics", metrics.Handler())
	handler.NewHandler(tracker, feed, wspkg.NewManager(), configs).RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	trackerDone := make(chan error, 1)
	go func() { trackerDone <- tracker.Run(ctx) }()

	if err := server.NewGracefulServer(e, configs.Server).Run(ctx); err != nil {
		logger.Error("HTTP server failed", logger.Err(err))
		stop()
	}

	if err := <-trackerDone; err != nil {
		logger.Error("Tracker stopped with error", logger.Err(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("Server exiting gracefully")
	_ = shutdown.Shutdown(shutdownCtx)
}
