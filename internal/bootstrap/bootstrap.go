// Package bootstrap wires the planning pipeline from configuration. The HTTP
// server and the CLI share it.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/application"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/config"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/gateway/googlemaps"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/gateway/intent"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Planner bundles the planner service with the resources it owns.
type Planner struct {
	Service  *application.PlannerService
	Maps     *googlemaps.Client
	Metrics  *metrics.PlannerMetrics
	Producer *kafka.Producer // nil when Kafka is disabled
}

// Options adjusts what NewPlanner wires.
type Options struct {
	// Registerer receives the planner collectors. Nil disables metrics.
	Registerer prometheus.Registerer
	// PublishEvents creates a Kafka producer when Kafka is enabled in cfg.
	PublishEvents bool
}

// NewPlanner builds the collaborators and the planner service.
func NewPlanner(ctx context.Context, cfg *config.ServiceConfig, opts Options, logger *zap.Logger) (*Planner, error) {
	maps, err := googlemaps.NewClient(googlemaps.Config{
		APIKey:        cfg.MapsConfig.APIKey,
		BaseURL:       cfg.MapsConfig.BaseURL,
		Timeout:       cfg.MapsConfig.Timeout,
		PhotoMaxWidth: cfg.MapsConfig.PhotoMaxWidth,
	}, logger.Named("googlemaps"))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	extractor, err := intent.NewGeminiExtractor(ctx, intent.Config{
		APIKey:      cfg.LLMConfig.APIKey,
		Model:       cfg.LLMConfig.Model,
		Temperature: cfg.LLMConfig.Temperature,
	}, logger.Named("intent"))
	if err != nil {
		return nil, fmt.Errorf("failed to create intent extractor: %w", err)
	}

	var m *metrics.PlannerMetrics
	if opts.Registerer != nil {
		m = metrics.NewPlannerMetrics(opts.Registerer)
	}

	p := &Planner{Maps: maps, Metrics: m}

	// A nil *kafka.Producer must not reach the EventPublisher interface.
	var publisher application.EventPublisher
	if opts.PublishEvents && cfg.KafkaConfig.Enabled {
		p.Producer = kafka.NewProducer(cfg.KafkaConfig.Brokers, logger)
		publisher = p.Producer
	}

	p.Service = application.NewPlannerService(
		extractor,
		application.NewPointResolver(maps, maps, maps, m, logger),
		application.NewRouteCompiler(maps, m, logger),
		publisher,
		m,
		logger,
	)
	return p, nil
}

// Close releases the Kafka producer, if any.
func (p *Planner) Close() error {
	if p.Producer == nil {
		return nil
	}
	return p.Producer.Close()
}
