package intent

import (
	"encoding/json"
	"fmt"
	"strings"

	routeDomain "github.com/Kilat-Pet-Delivery/service-route-planner/internal/domain/route"
)

type wireWaypoint struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type wirePlan struct {
	Waypoints  []wireWaypoint `json:"waypoints"`
	RoundTrip  bool           `json:"round_trip"`
	ExtraNotes string         `json:"extra_notes"`
}

// DecodePlan parses the model's reply into a TripPlan.
// A reply wrapped in a markdown code fence is accepted. Any other deviation
// from the expected shape is reported as an extraction failure.
func DecodePlan(raw string) (*routeDomain.TripPlan, error) {
	body := stripFence(raw)
	if body == "" {
		return nil, routeDomain.NewExtractionFailure(fmt.Errorf("empty model reply"))
	}

	var wp wirePlan
	if err := json.Unmarshal([]byte(body), &wp); err != nil {
		return nil, routeDomain.NewExtractionFailure(fmt.Errorf("failed to decode waypoint JSON: %w", err))
	}

	plan := &routeDomain.TripPlan{
		Intents:   make([]routeDomain.WaypointIntent, 0, len(wp.Waypoints)),
		RoundTrip: wp.RoundTrip,
		Notes:     wp.ExtraNotes,
	}
	for i, w := range wp.Waypoints {
		kind, err := routeDomain.ParseIntentKind(w.Type)
		if err != nil {
			return nil, routeDomain.NewExtractionFailure(fmt.Errorf("waypoint %d: %w", i, err))
		}
		value := strings.TrimSpace(w.Value)
		if value == "" {
			return nil, routeDomain.NewExtractionFailure(fmt.Errorf("waypoint %d: blank value", i))
		}
		plan.Intents = append(plan.Intents, routeDomain.WaypointIntent{Kind: kind, Value: value})
	}
	return plan, nil
}

// stripFence removes a surrounding ``` or ```json fence.
func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
