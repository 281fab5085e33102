package application

import (
	"context"
	"strings"
	"time"

	routeDomain "github.com/Kilat-Pet-Delivery/service-route-planner/internal/domain/route"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/metrics"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// RouteCompiler builds one multi-leg route through an ordered list of points.
type RouteCompiler struct {
	directions routeDomain.DirectionsProvider
	metrics    *metrics.PlannerMetrics
	logger     *zap.Logger
}

// NewRouteCompiler creates a new RouteCompiler.
func NewRouteCompiler(directions routeDomain.DirectionsProvider, m *metrics.PlannerMetrics, logger *zap.Logger) *RouteCompiler {
	return &RouteCompiler{directions: directions, metrics: m, logger: logger}
}

// Compile requests a route from points[0] to the last point through every
// interior point in the given order. It makes exactly one directions call.
func (c *RouteCompiler) Compile(ctx context.Context, points []routeDomain.Coordinate) (routeDomain.RouteResult, *routeDomain.Failure) {
	if len(points) < 2 {
		return routeDomain.RouteResult{}, routeDomain.NewInsufficientWaypointsFailure(len(points))
	}

	start := time.Now()
	dir, found, err := c.directions.Directions(ctx, points)
	c.metrics.ObserveCall("directions", callResult(found, err), time.Since(start))
	if err != nil {
		c.logger.Warn("directions request failed", zap.Int("points", len(points)), zap.Error(err))
		return routeDomain.RouteResult{}, routeDomain.NewNoRouteFailure(err)
	}
	if !found || dir.OverviewPolyline == "" {
		return routeDomain.RouteResult{}, routeDomain.NewNoRouteFailure(nil)
	}

	result := routeDomain.RouteResult{
		OverviewPath:     dir.OverviewPolyline,
		StepInstructions: []string{},
		Legs:             make([]routeDomain.RouteLeg, 0, len(dir.Legs)),
	}
	for _, leg := range dir.Legs {
		result.Legs = append(result.Legs, routeDomain.RouteLeg{
			DistanceText: leg.DistanceText,
			DurationText: leg.DurationText,
		})
		for _, step := range leg.Steps {
			result.StepInstructions = append(result.StepInstructions,
				StripMarkup(step.HTMLInstructions)+" ("+step.DistanceText+")")
		}
	}
	return result, nil
}

// StripMarkup removes tags from an instruction and decodes entities,
// keeping text nodes in document order.
func StripMarkup(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
