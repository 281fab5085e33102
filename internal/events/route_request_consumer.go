package events

import (
	"context"
	"strings"

	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/application"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/proto/events"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RoutePlanner plans a route for a prompt. *application.PlannerService satisfies it.
type RoutePlanner interface {
	PlanRoute(ctx context.Context, req application.PlanRouteRequest) *application.DirectionsResponse
}

// RouteRequestConsumer listens for asynchronous route requests and runs the
// planning pipeline for each. The reply is the route event the pipeline publishes.
type RouteRequestConsumer struct {
	consumer *kafka.Consumer
	service  RoutePlanner
	logger   *zap.Logger
}

// NewRouteRequestConsumer creates a new RouteRequestConsumer.
func NewRouteRequestConsumer(
	brokers []string,
	groupID string,
	service RoutePlanner,
	logger *zap.Logger,
) *RouteRequestConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicRouteRequests, logger)
	return &RouteRequestConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming route requests. This blocks until the context is cancelled.
func (c *RouteRequestConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *RouteRequestConsumer) Close() error {
	return c.consumer.Close()
}

func (c *RouteRequestConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from route request topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case events.RouteRequested:
		return c.handleRouteRequested(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled route request event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *RouteRequestConsumer) handleRouteRequested(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.RouteRequestedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse RouteRequestedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}
	if strings.TrimSpace(evt.Prompt) == "" {
		c.logger.Warn("skipping route request with blank prompt",
			zap.String("request_id", evt.RequestID),
		)
		return nil
	}

	requestID := evt.RequestID
	if requestID == "" {
		requestID = cloudEvent.ID
	}

	c.logger.Info("processing route request",
		zap.String("request_id", requestID),
	)

	result := c.service.PlanRoute(ctx, application.PlanRouteRequest{
		Prompt:    evt.Prompt,
		RequestID: requestID,
	})

	c.logger.Info("route request processed",
		zap.String("request_id", requestID),
		zap.Bool("planned", result.Polyline != nil),
		zap.Int("waypoints", len(result.Waypoints)),
	)
	return nil
}
