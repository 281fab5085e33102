package route

import "context"

// Place is the nearest match returned by a keyword search.
type Place struct {
	ID         string
	Name       string
	Vicinity   string
	Coordinate Coordinate
}

// PlaceDetails holds the display extras of a place. Both slices may be empty.
type PlaceDetails struct {
	OpeningHours []string
	PhotoURLs    []string
}

// DirectionsStep is one raw maneuver as returned by the directions service.
type DirectionsStep struct {
	HTMLInstructions string
	DistanceText     string
}

// DirectionsLeg is one raw leg as returned by the directions service.
type DirectionsLeg struct {
	DistanceText string
	DurationText string
	Steps        []DirectionsStep
}

// Directions is the raw first route returned by the directions service.
type Directions struct {
	OverviewPolyline string
	Legs             []DirectionsLeg
}

// IntentExtractor turns a natural-language request into a TripPlan.
type IntentExtractor interface {
	Extract(ctx context.Context, prompt string) (*TripPlan, error)
}

// Geocoder resolves an address string. found is false when nothing matched.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (coord Coordinate, found bool, err error)
}

// PlaceSearcher finds the place closest to origin matching keyword.
type PlaceSearcher interface {
	NearestPlace(ctx context.Context, origin Coordinate, keyword string) (place Place, found bool, err error)
}

// PlaceDetailer fetches opening hours and photos of a place.
type PlaceDetailer interface {
	PlaceDetails(ctx context.Context, placeID string) (PlaceDetails, error)
}

// DirectionsProvider requests one route through points in order. found is
// false when the service reports no usable route.
type DirectionsProvider interface {
	Directions(ctx context.Context, points []Coordinate) (dir Directions, found bool, err error)
}
