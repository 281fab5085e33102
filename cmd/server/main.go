package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/bootstrap"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/config"
	routeEvents "github.com/Kilat-Pet-Delivery/service-route-planner/internal/events"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/handler"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/health"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/logger"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const serviceName = "service-route-planner"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-route-planner",
		zap.String("port", cfg.Port),
		zap.Bool("kafka_enabled", cfg.KafkaConfig.Enabled),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize planner service
	planner, err := bootstrap.NewPlanner(ctx, cfg, bootstrap.Options{
		Registerer:    registry,
		PublishEvents: true,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize planner", zap.Error(err))
	}
	defer func() { _ = planner.Close() }()

	readiness := map[string]health.Check{}

	// Initialize and start route request consumer in a goroutine
	if cfg.KafkaConfig.Enabled {
		groupID := cfg.KafkaConfig.GroupPrefix + "route-planner-service"
		requestConsumer := routeEvents.NewRouteRequestConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			planner.Service,
			log,
		)
		defer func() { _ = requestConsumer.Close() }()

		go func() {
			log.Info("starting route request consumer")
			if err := requestConsumer.Start(ctx); err != nil && err != context.Canceled {
				log.Error("route request consumer error", zap.Error(err))
			}
		}()

		readiness["kafka"] = kafkaCheck(cfg.KafkaConfig.Brokers)
	}

	// Initialize HTTP handlers
	directionsHandler := handler.NewDirectionsHandler(planner.Service)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check and metrics routes
	healthHandler := health.NewHandler(serviceName, readiness)
	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Register routes
	directionsHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server. One request chains several external calls.
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-route-planner...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-route-planner stopped")
}

// kafkaCheck reports ready when the first reachable broker answers.
func kafkaCheck(brokers []string) health.Check {
	return func(ctx context.Context) error {
		var lastErr error
		for _, b := range brokers {
			conn, err := kafkago.DialContext(ctx, "tcp", b)
			if err != nil {
				lastErr = err
				continue
			}
			return conn.Close()
		}
		if lastErr == nil {
			lastErr = fmt.Errorf("no kafka brokers configured")
		}
		return lastErr
	}
}
