package application

import routeDomain "github.com/Kilat-Pet-Delivery/service-route-planner/internal/domain/route"

// PlanRouteRequest holds a natural-language travel request.
type PlanRouteRequest struct {
	Prompt    string `json:"prompt" binding:"required"`
	RequestID string `json:"-"`
}

// WaypointDetailDTO is the response representation of a resolved stop.
type WaypointDetailDTO struct {
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	Coordinates [2]float64 `json:"coordinates"`
	Type        string     `json:"type"`
	Hours       []string   `json:"hours"`
	Photos      []string   `json:"photos"`
}

// LegDTO summarizes one leg of the route.
type LegDTO struct {
	Distance string `json:"distance"`
	Duration string `json:"duration"`
}

// DirectionsResponse is the response representation of a pipeline outcome.
// Polyline is null when no route could be built; Notes then explains why.
type DirectionsResponse struct {
	Polyline     *string             `json:"polyline"`
	Instructions []string            `json:"instructions"`
	Waypoints    []WaypointDetailDTO `json:"waypoints"`
	RoundTrip    bool                `json:"round_trip"`
	Notes        string              `json:"notes"`
	Legs         []LegDTO            `json:"legs"`
}

func toDirectionsResponse(out routeDomain.Outcome) *DirectionsResponse {
	waypoints := make([]WaypointDetailDTO, len(out.Waypoints))
	for i, wp := range out.Waypoints {
		waypoints[i] = WaypointDetailDTO{
			Name:        wp.DisplayName,
			Address:     wp.DisplayAddress,
			Coordinates: [2]float64{wp.Coordinate.Lat, wp.Coordinate.Lng},
			Type:        wp.KindLabel,
			Hours:       nonNil(wp.OpeningHours),
			Photos:      nonNil(wp.PhotoRefs),
		}
	}

	legs := make([]LegDTO, len(out.Legs))
	for i, leg := range out.Legs {
		legs[i] = LegDTO{Distance: leg.DistanceText, Duration: leg.DurationText}
	}

	return &DirectionsResponse{
		Polyline:     out.OverviewPath,
		Instructions: nonNil(out.StepInstructions),
		Waypoints:    waypoints,
		RoundTrip:    out.RoundTrip,
		Notes:        out.Notes,
		Legs:         legs,
	}
}
