package route

import (
	"fmt"
	"strconv"
	"strings"
)

// IntentKind classifies an unresolved stop description.
type IntentKind string

const (
	IntentAddress   IntentKind = "address"
	IntentPlaceType IntentKind = "place_type"
)

// IsValid returns true if the intent kind is recognized.
func (k IntentKind) IsValid() bool {
	return k == IntentAddress || k == IntentPlaceType
}

// String returns the string representation of the kind.
func (k IntentKind) String() string {
	return string(k)
}

// ParseIntentKind converts a string to an IntentKind, returning an error if invalid.
func ParseIntentKind(s string) (IntentKind, error) {
	kind := IntentKind(strings.TrimSpace(strings.ToLower(s)))
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid waypoint type: %q", s)
	}
	return kind, nil
}

// WaypointIntent is an abstract stop produced by free-text understanding.
// Its position in a list is meaningful: place types resolve relative to the stop before them.
type WaypointIntent struct {
	Kind  IntentKind
	Value string
}

// TripPlan is the structured form of a natural-language request.
type TripPlan struct {
	Intents   []WaypointIntent
	RoundTrip bool
	Notes     string
}

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64
	Lng float64
}

// String formats the coordinate as "lat,lng" without losing precision.
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// ResolvedWaypoint is a concrete stop with display metadata. It is a value
// object: once created by the resolver it is only ever copied, never changed.
type ResolvedWaypoint struct {
	DisplayName    string
	DisplayAddress string
	Coordinate     Coordinate
	KindLabel      string
	OpeningHours   []string
	PhotoRefs      []string
}

// AddressLabel is the kind label carried by address waypoints.
const AddressLabel = "Address"

// PlaceTypeLabel returns the kind label for a waypoint found by keyword search.
func PlaceTypeLabel(keyword string) string {
	return "Place Type - " + keyword
}

// Coordinates extracts the coordinate of every waypoint, preserving order.
func Coordinates(waypoints []ResolvedWaypoint) []Coordinate {
	coords := make([]Coordinate, len(waypoints))
	for i, wp := range waypoints {
		coords[i] = wp.Coordinate
	}
	return coords
}
