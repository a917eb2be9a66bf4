package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventx/api/routes"
	"eventx/internal/chain"
	"eventx/internal/notifications"
	"eventx/internal/shared/config"
	"eventx/internal/shared/database"
	"eventx/internal/shared/metrics"
	"eventx/internal/shared/middleware"
	"eventx/pkg/logger"
	"eventx/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// @title        EventX API
// @version      1.0
// @description  Ticketing backend for the EventX contract on Push Chain.
// @BasePath     /api/v1
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		appLogger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	gin.SetMode(cfg.GinMode)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	dialCtx, dialCancel := context.WithTimeout(context.Background(), 10*time.Second)
	contract, rpcClient, err := chain.Dial(dialCtx, cfg.Chain)
	dialCancel()
	if err != nil {
		appLogger.Error("failed to connect to chain", slog.Any("error", err))
		os.Exit(1)
	}
	defer rpcClient.Close()
	appLogger.Info("Chain client ready",
		slog.String("rpc", cfg.Chain.RPCURL),
		slog.Int64("chain_id", cfg.Chain.ChainID),
		slog.String("contract", contract.Address().Hex()),
		slog.Bool("settlement", cfg.SettlementEnabled()),
	)

	// Initialize Rate Limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiterConfig := &ratelimit.Config{
			Enabled:            cfg.RateLimit.Enabled,
			WindowDuration:     cfg.RateLimit.WindowDuration,
			DefaultRequests:    cfg.RateLimit.DefaultRequests,
			PublicRequests:     cfg.RateLimit.PublicRequests,
			AuthRequests:       cfg.RateLimit.AuthRequests,
			SettlementRequests: cfg.RateLimit.SettlementRequests,
			OrganizerRequests:  cfg.RateLimit.OrganizerRequests,
			HealthRequests:     cfg.RateLimit.HealthRequests,
			WhitelistedIPs:     cfg.RateLimit.WhitelistedIPs,
		}

		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), rateLimiterConfig)
		appLogger.Info("Rate limiter initialized",
			slog.Bool("enabled", cfg.RateLimit.Enabled),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Ticket lifecycle producer
	var producer notifications.LifecycleProducer
	if cfg.Kafka.Enabled {
		producerConfig := notifications.DefaultKafkaProducerConfig()
		producerConfig.Brokers = cfg.Kafka.Brokers
		producerConfig.Topic = cfg.Kafka.Topic
		producerConfig.ChainID = cfg.Chain.ChainID
		producerConfig.Contract = contract.Address().Hex()

		kafkaProducer, err := notifications.NewKafkaLifecycleProducer(producerConfig)
		if err != nil {
			appLogger.Error("Failed to initialize lifecycle producer", slog.Any("error", err))
			appLogger.Info("Continuing without lifecycle messages")
		} else {
			producer = kafkaProducer
			defer func() {
				appLogger.Info("Stopping lifecycle producer...")
				if err := kafkaProducer.Close(); err != nil {
					appLogger.Error("Error stopping lifecycle producer", slog.Any("error", err))
				}
			}()
			appLogger.Info("Lifecycle producer initialized", slog.String("topic", cfg.Kafka.Topic))
		}
	}

	router := setupRouter(cfg, db, contract, producer, rateLimiter)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
			slog.String("version", Version),
			slog.String("commit", GitCommit),
			slog.String("built", BuildTime),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
			slog.Bool("lifecycle_messages", producer != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	// in-flight settlements may still be waiting for receipts
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Chain.ReceiptTimeout+10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

// corsConfig allows only publicOrigin when set. With no origin configured any
// origin is accepted, so cookies and auth headers are not shared.
func corsConfig(publicOrigin string) cors.Config {
	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return publicOrigin == "" || origin == publicOrigin
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", middleware.RequestIDHeader},
		AllowCredentials: publicOrigin != "",
		MaxAge:           12 * time.Hour,
	}
}

func setupRouter(cfg *config.Config, db *database.DB, contract *chain.TicketContract, producer notifications.LifecycleProducer, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	engine.Use(middleware.RequestLogger(), gin.Recovery(), metrics.Middleware())

	engine.Use(cors.New(corsConfig(cfg.PublicOrigin)))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	appRouter := routes.NewRouter(cfg, db, contract)
	if producer != nil {
		appRouter.SetPublisher(producer)
	}
	appRouter.SetupRoutes(engine)

	return engine
}
