package application

import (
	"context"
	"time"

	routeDomain "github.com/Kilat-Pet-Delivery/service-route-planner/internal/domain/route"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/metrics"
	"go.uber.org/zap"
)

// PointResolver turns one waypoint intent into a concrete stop.
// It keeps no state between calls.
type PointResolver struct {
	geocoder routeDomain.Geocoder
	places   routeDomain.PlaceSearcher
	details  routeDomain.PlaceDetailer
	metrics  *metrics.PlannerMetrics
	logger   *zap.Logger
}

// NewPointResolver creates a new PointResolver.
func NewPointResolver(
	geocoder routeDomain.Geocoder,
	places routeDomain.PlaceSearcher,
	details routeDomain.PlaceDetailer,
	m *metrics.PlannerMetrics,
	logger *zap.Logger,
) *PointResolver {
	return &PointResolver{
		geocoder: geocoder,
		places:   places,
		details:  details,
		metrics:  m,
		logger:   logger,
	}
}

// Resolve resolves intent. prior is the most recently resolved coordinate, or
// nil when nothing has been resolved yet; place types cannot resolve without it.
// The returned failure is nil on success.
func (r *PointResolver) Resolve(ctx context.Context, intent routeDomain.WaypointIntent, prior *routeDomain.Coordinate) (routeDomain.ResolvedWaypoint, *routeDomain.Failure) {
	switch intent.Kind {
	case routeDomain.IntentAddress:
		return r.resolveAddress(ctx, intent.Value)
	case routeDomain.IntentPlaceType:
		if prior == nil {
			return routeDomain.ResolvedWaypoint{}, routeDomain.NewMissingOriginFailure(intent.Value)
		}
		return r.resolvePlaceType(ctx, intent.Value, *prior)
	default:
		return routeDomain.ResolvedWaypoint{}, routeDomain.NewExtractionFailure(nil)
	}
}

func (r *PointResolver) resolveAddress(ctx context.Context, address string) (routeDomain.ResolvedWaypoint, *routeDomain.Failure) {
	start := time.Now()
	coord, found, err := r.geocoder.Geocode(ctx, address)
	r.observe("geocode", start, found, err)
	if err != nil {
		r.logger.Warn("geocoding request failed", zap.String("address", address), zap.Error(err))
		return routeDomain.ResolvedWaypoint{}, routeDomain.NewGeocodeFailure(address, err)
	}
	if !found {
		return routeDomain.ResolvedWaypoint{}, routeDomain.NewGeocodeFailure(address, nil)
	}

	// Hours and photos come from whatever place best matches the address text
	// near the geocoded point. This may be a neighbouring place.
	details := routeDomain.PlaceDetails{}
	start = time.Now()
	place, found, err := r.places.NearestPlace(ctx, coord, address)
	r.observe("nearby_search", start, found, err)
	switch {
	case err != nil:
		r.logger.Warn("auxiliary place lookup failed", zap.String("address", address), zap.Error(err))
	case found:
		details = r.placeDetails(ctx, place.ID)
	}

	return routeDomain.ResolvedWaypoint{
		DisplayName:    address,
		DisplayAddress: address,
		Coordinate:     coord,
		KindLabel:      routeDomain.AddressLabel,
		OpeningHours:   nonNil(details.OpeningHours),
		PhotoRefs:      nonNil(details.PhotoURLs),
	}, nil
}

func (r *PointResolver) resolvePlaceType(ctx context.Context, keyword string, origin routeDomain.Coordinate) (routeDomain.ResolvedWaypoint, *routeDomain.Failure) {
	start := time.Now()
	place, found, err := r.places.NearestPlace(ctx, origin, keyword)
	r.observe("nearby_search", start, found, err)
	if err != nil {
		r.logger.Warn("nearby search failed",
			zap.String("keyword", keyword),
			zap.Stringer("origin", origin),
			zap.Error(err),
		)
		return routeDomain.ResolvedWaypoint{}, routeDomain.NewNoNearbyPlaceFailure(keyword, err)
	}
	if !found {
		return routeDomain.ResolvedWaypoint{}, routeDomain.NewNoNearbyPlaceFailure(keyword, nil)
	}

	details := r.placeDetails(ctx, place.ID)
	return routeDomain.ResolvedWaypoint{
		DisplayName:    place.Name,
		DisplayAddress: place.Vicinity,
		Coordinate:     place.Coordinate,
		KindLabel:      routeDomain.PlaceTypeLabel(keyword),
		OpeningHours:   nonNil(details.OpeningHours),
		PhotoRefs:      nonNil(details.PhotoURLs),
	}, nil
}

// placeDetails is best-effort: any problem yields empty details.
func (r *PointResolver) placeDetails(ctx context.Context, placeID string) routeDomain.PlaceDetails {
	if placeID == "" {
		return routeDomain.PlaceDetails{}
	}
	start := time.Now()
	details, err := r.details.PlaceDetails(ctx, placeID)
	r.observe("place_details", start, err == nil, err)
	if err != nil {
		r.logger.Warn("place details request failed", zap.String("place_id", placeID), zap.Error(err))
		return routeDomain.PlaceDetails{}
	}
	return details
}

func (r *PointResolver) observe(collaborator string, start time.Time, found bool, err error) {
	r.metrics.ObserveCall(collaborator, callResult(found, err), time.Since(start))
}

func callResult(found bool, err error) string {
	switch {
	case err != nil:
		return "error"
	case !found:
		return "not_found"
	default:
		return "ok"
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
