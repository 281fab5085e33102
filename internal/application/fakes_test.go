package application

import (
	"context"
	"fmt"
	"sync"

	routeDomain "github.com/Kilat-Pet-Delivery/service-route-planner/internal/domain/route"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-route-planner/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	utsc       = routeDomain.Coordinate{Lat: 43.7844, Lng: -79.1864}
	coffeeShop = routeDomain.Coordinate{Lat: 43.7861, Lng: -79.1897}
	library    = routeDomain.Coordinate{Lat: 43.7901, Lng: -79.1932}
)

type fakeExtractor struct {
	plan *routeDomain.TripPlan
	err  error
}

func (f *fakeExtractor) Extract(context.Context, string) (*routeDomain.TripPlan, error) {
	return f.plan, f.err
}

type placeCall struct {
	origin  routeDomain.Coordinate
	keyword string
}

// fakeMaps implements every maps collaborator port and records calls.
type fakeMaps struct {
	mu sync.Mutex

	geocodes   map[string]routeDomain.Coordinate
	geocodeErr error

	places    map[string]routeDomain.Place
	placesErr error

	details    map[string]routeDomain.PlaceDetails
	detailsErr error

	noRoute       bool
	directionsErr error

	geocodeCalls    []string
	placeCalls      []placeCall
	detailCalls     []string
	directionsCalls [][]routeDomain.Coordinate
}

func newFakeMaps() *fakeMaps {
	return &fakeMaps{
		geocodes: map[string]routeDomain.Coordinate{"UTSC": utsc},
		places: map[string]routeDomain.Place{
			"UTSC":        {ID: "place-utsc", Name: "University of Toronto Scarborough", Vicinity: "1265 Military Trail", Coordinate: utsc},
			"coffee shop": {ID: "place-coffee", Name: "Tim Hortons", Vicinity: "1265 Military Trail, Toronto", Coordinate: coffeeShop},
			"library":     {ID: "place-library", Name: "Toronto Public Library", Vicinity: "1515 Ellesmere Rd", Coordinate: library},
		},
		details: map[string]routeDomain.PlaceDetails{
			"place-utsc":   {OpeningHours: []string{"Monday: 8:00 AM - 10:00 PM"}, PhotoURLs: []string{"https://photos/utsc"}},
			"place-coffee": {OpeningHours: []string{"Monday: Open 24 hours"}, PhotoURLs: []string{"https://photos/coffee-1", "https://photos/coffee-2"}},
		},
	}
}

func (m *fakeMaps) Geocode(_ context.Context, address string) (routeDomain.Coordinate, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.geocodeCalls = append(m.geocodeCalls, address)
	if m.geocodeErr != nil {
		return routeDomain.Coordinate{}, false, m.geocodeErr
	}
	c, ok := m.geocodes[address]
	return c, ok, nil
}

func (m *fakeMaps) NearestPlace(_ context.Context, origin routeDomain.Coordinate, keyword string) (routeDomain.Place, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.placeCalls = append(m.placeCalls, placeCall{origin: origin, keyword: keyword})
	if m.placesErr != nil {
		return routeDomain.Place{}, false, m.placesErr
	}
	p, ok := m.places[keyword]
	return p, ok, nil
}

func (m *fakeMaps) PlaceDetails(_ context.Context, placeID string) (routeDomain.PlaceDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detailCalls = append(m.detailCalls, placeID)
	if m.detailsErr != nil {
		return routeDomain.PlaceDetails{}, m.detailsErr
	}
	return m.details[placeID], nil
}

// Directions returns one leg per consecutive pair; the leg distance text names
// the endpoints so tests can check which points a leg joins.
func (m *fakeMaps) Directions(_ context.Context, points []routeDomain.Coordinate) (routeDomain.Directions, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.directionsCalls = append(m.directionsCalls, append([]routeDomain.Coordinate(nil), points...))
	if m.directionsErr != nil {
		return routeDomain.Directions{}, false, m.directionsErr
	}
	if m.noRoute {
		return routeDomain.Directions{}, false, nil
	}

	dir := routeDomain.Directions{OverviewPolyline: "_p~iF~ps|U_ulLnnqC"}
	for i := 0; i+1 < len(points); i++ {
		dir.Legs = append(dir.Legs, routeDomain.DirectionsLeg{
			DistanceText: fmt.Sprintf("%s->%s", points[i], points[i+1]),
			DurationText: fmt.Sprintf("%d mins", i+1),
			Steps: []routeDomain.DirectionsStep{
				{HTMLInstructions: "Head <b>north</b> on <b>Military Trail</b>", DistanceText: "0.3 km"},
			},
		})
	}
	return dir, true, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
	topics []string
	err    error
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic string, ce kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.events = append(p.events, ce)
	return p.err
}

func newTestResolver(m *fakeMaps) *PointResolver {
	return NewPointResolver(m, m, m, metrics.NewPlannerMetrics(prometheus.NewRegistry()), zap.NewNop())
}

func newTestCompiler(m *fakeMaps) *RouteCompiler {
	return NewRouteCompiler(m, metrics.NewPlannerMetrics(prometheus.NewRegistry()), zap.NewNop())
}

func newTestPlanner(ext routeDomain.IntentExtractor, m *fakeMaps, pub EventPublisher) *PlannerService {
	reg := prometheus.NewRegistry()
	pm := metrics.NewPlannerMetrics(reg)
	return NewPlannerService(
		ext,
		NewPointResolver(m, m, m, pm, zap.NewNop()),
		NewRouteCompiler(m, pm, zap.NewNop()),
		pub,
		pm,
		zap.NewNop(),
	)
}

func addr(v string) routeDomain.WaypointIntent {
	return routeDomain.WaypointIntent{Kind: routeDomain.IntentAddress, Value: v}
}

func placeType(v string) routeDomain.WaypointIntent {
	return routeDomain.WaypointIntent{Kind: routeDomain.IntentPlaceType, Value: v}
}
