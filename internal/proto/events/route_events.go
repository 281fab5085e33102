package events

import "time"

// Topics.
const (
	TopicRouteEvents   = "route.events"
	TopicRouteRequests = "route.requests"
)

// Event types.
const (
	RouteRequested  = "route.requested"
	RoutePlanned    = "route.planned"
	RoutePlanFailed = "route.plan_failed"
)

// EventSource identifies this service in CloudEvent envelopes.
const EventSource = "service-route-planner"

// RouteRequestedEvent asks the planner to plan a route asynchronously.
type RouteRequestedEvent struct {
	RequestID  string    `json:"request_id"`
	Prompt     string    `json:"prompt"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PlannedStop is one stop of a planned route.
type PlannedStop struct {
	Name string  `json:"name"`
	Type string  `json:"type"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// RoutePlannedEvent is published after a route was compiled.
type RoutePlannedEvent struct {
	RequestID  string        `json:"request_id,omitempty"`
	Stops      []PlannedStop `json:"stops"`
	LegCount   int           `json:"leg_count"`
	RoundTrip  bool          `json:"round_trip"`
	Polyline   string        `json:"polyline"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// RoutePlanFailedEvent is published when a run ended without a route.
type RoutePlanFailedEvent struct {
	RequestID   string    `json:"request_id,omitempty"`
	Stage       string    `json:"stage"`
	FailureKind string    `json:"failure_kind"`
	Notes       string    `json:"notes"`
	OccurredAt  time.Time `json:"occurred_at"`
}
