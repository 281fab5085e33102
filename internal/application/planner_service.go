package application

import (
	"context"
	"time"

	routeDomain "github.com/Kilat-Pet-Delivery/service-route-planner/internal/domain/route"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/metrics"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/proto/events"
	"go.uber.org/zap"
)

// EventPublisher publishes CloudEvents. *kafka.Producer satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, ce kafka.CloudEvent) error
}

// PlannerService is the application service driving the planning pipeline:
// extract intents, resolve them in order, close the loop for round trips,
// then compile one route.
type PlannerService struct {
	extractor routeDomain.IntentExtractor
	resolver  *PointResolver
	compiler  *RouteCompiler
	publisher EventPublisher
	metrics   *metrics.PlannerMetrics
	logger    *zap.Logger
}

// NewPlannerService creates a new PlannerService. publisher may be nil.
func NewPlannerService(
	extractor routeDomain.IntentExtractor,
	resolver *PointResolver,
	compiler *RouteCompiler,
	publisher EventPublisher,
	m *metrics.PlannerMetrics,
	logger *zap.Logger,
) *PlannerService {
	return &PlannerService{
		extractor: extractor,
		resolver:  resolver,
		compiler:  compiler,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// PlanRoute runs the pipeline for req and publishes the outcome as a route event.
// Pipeline failures are reported in the response notes, never as an error.
func (s *PlannerService) PlanRoute(ctx context.Context, req PlanRouteRequest) *DirectionsResponse {
	out := s.Plan(ctx, req.Prompt)
	s.publishOutcome(ctx, req.RequestID, out)
	return toDirectionsResponse(out)
}

// Plan runs the pipeline for prompt. It always returns a well-formed outcome.
func (s *PlannerService) Plan(ctx context.Context, prompt string) routeDomain.Outcome {
	start := time.Now()
	out := s.run(ctx, prompt)
	s.metrics.ObservePlan(out.Stage.String(), string(out.FailureKind), time.Since(start))
	return out
}

func (s *PlannerService) run(ctx context.Context, prompt string) routeDomain.Outcome {
	progress := routeDomain.NewProgress()

	plan, f := s.extract(ctx, prompt)
	if f != nil {
		return s.fail(progress, f, false, nil)
	}
	s.advance(progress, routeDomain.StageResolve)

	if f := checkOrigin(plan.Intents); f != nil {
		return s.fail(progress, f, false, nil)
	}

	waypoints, f := s.resolveAll(ctx, plan.Intents)
	if f != nil {
		return s.fail(progress, f, plan.RoundTrip, nil)
	}
	s.advance(progress, routeDomain.StagePostLoop)

	waypoints, f = closeLoop(waypoints, plan.RoundTrip)
	if f != nil {
		return s.fail(progress, f, plan.RoundTrip, nil)
	}
	s.advance(progress, routeDomain.StageCompile)

	result, f := s.compiler.Compile(ctx, routeDomain.Coordinates(waypoints))
	if f != nil {
		return s.fail(progress, f, plan.RoundTrip, waypoints)
	}
	s.advance(progress, routeDomain.StageDone)

	path := result.OverviewPath
	s.logger.Info("route planned",
		zap.Int("waypoints", len(waypoints)),
		zap.Int("legs", len(result.Legs)),
		zap.Bool("round_trip", plan.RoundTrip),
	)
	return routeDomain.Outcome{
		OverviewPath:     &path,
		StepInstructions: result.StepInstructions,
		Waypoints:        waypoints,
		RoundTrip:        plan.RoundTrip,
		Notes:            plan.Notes,
		Legs:             result.Legs,
		Stage:            progress.Current(),
	}
}

func (s *PlannerService) extract(ctx context.Context, prompt string) (*routeDomain.TripPlan, *routeDomain.Failure) {
	start := time.Now()
	plan, err := s.extractor.Extract(ctx, prompt)
	s.metrics.ObserveCall("intent_extractor", callResult(plan != nil, err), time.Since(start))
	if err != nil {
		if f, ok := routeDomain.AsFailure(err); ok {
			return nil, f
		}
		s.logger.Warn("intent extraction failed", zap.Error(err))
		return nil, routeDomain.NewExtractionFailure(err)
	}
	if plan == nil {
		return nil, routeDomain.NewExtractionFailure(nil)
	}
	if len(plan.Intents) == 0 {
		return nil, routeDomain.NewEmptyIntentFailure()
	}
	return plan, nil
}

// checkOrigin rejects a list whose first stop is a place type before any lookup runs.
func checkOrigin(intents []routeDomain.WaypointIntent) *routeDomain.Failure {
	if intents[0].Kind == routeDomain.IntentPlaceType {
		return routeDomain.NewFirstPlaceTypeFailure(intents[0].Value)
	}
	return nil
}

// resolveAll resolves intents sequentially; each resolution receives the
// coordinate resolved just before it.
func (s *PlannerService) resolveAll(ctx context.Context, intents []routeDomain.WaypointIntent) ([]routeDomain.ResolvedWaypoint, *routeDomain.Failure) {
	resolved := make([]routeDomain.ResolvedWaypoint, 0, len(intents)+1)
	for _, intent := range intents {
		var prior *routeDomain.Coordinate
		if n := len(resolved); n > 0 {
			last := resolved[n-1].Coordinate
			prior = &last
		}

		wp, f := s.resolver.Resolve(ctx, intent, prior)
		if f != nil {
			return nil, f
		}
		resolved = append(resolved, wp)
	}
	return resolved, nil
}

// closeLoop appends the first stop again for round trips. The copy shares the
// first stop's value so the loop closes on the identical coordinate.
func closeLoop(waypoints []routeDomain.ResolvedWaypoint, roundTrip bool) ([]routeDomain.ResolvedWaypoint, *routeDomain.Failure) {
	if roundTrip && len(waypoints) > 0 {
		waypoints = append(waypoints, waypoints[0])
	}
	if len(waypoints) < 2 {
		return nil, routeDomain.NewInsufficientWaypointsFailure(len(waypoints))
	}
	return waypoints, nil
}

func (s *PlannerService) advance(progress *routeDomain.Progress, target routeDomain.Stage) {
	if err := progress.Advance(target); err != nil {
		// Unreachable with the linear flow in run.
		s.logger.Error("pipeline stage out of order", zap.Error(err))
	}
}

func (s *PlannerService) fail(progress *routeDomain.Progress, f *routeDomain.Failure, roundTrip bool, waypoints []routeDomain.ResolvedWaypoint) routeDomain.Outcome {
	s.logger.Info("route planning stopped",
		zap.String("stage", progress.Current().String()),
		zap.String("failure", string(f.Kind)),
		zap.String("value", f.Value),
		zap.NamedError("cause", f.Unwrap()),
	)
	return routeDomain.FailedOutcome(progress.Current(), f, roundTrip, waypoints)
}

func (s *PlannerService) publishOutcome(ctx context.Context, requestID string, out routeDomain.Outcome) {
	if s.publisher == nil {
		return
	}

	now := time.Now().UTC()
	if !out.Succeeded() {
		s.publishEvent(ctx, events.RoutePlanFailed, events.RoutePlanFailedEvent{
			RequestID:   requestID,
			Stage:       out.Stage.String(),
			FailureKind: string(out.FailureKind),
			Notes:       out.Notes,
			OccurredAt:  now,
		})
		return
	}

	stops := make([]events.PlannedStop, len(out.Waypoints))
	for i, wp := range out.Waypoints {
		stops[i] = events.PlannedStop{
			Name: wp.DisplayName,
			Type: wp.KindLabel,
			Lat:  wp.Coordinate.Lat,
			Lng:  wp.Coordinate.Lng,
		}
	}
	s.publishEvent(ctx, events.RoutePlanned, events.RoutePlannedEvent{
		RequestID:  requestID,
		Stops:      stops,
		LegCount:   len(out.Legs),
		RoundTrip:  out.RoundTrip,
		Polyline:   *out.OverviewPath,
		OccurredAt: now,
	})
}

func (s *PlannerService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(events.EventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.PublishEvent(ctx, events.TopicRouteEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicRouteEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
