package googlemaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	routeDomain "github.com/Kilat-Pet-Delivery/service-route-planner/internal/domain/route"
	"go.uber.org/zap"
)

// DefaultBaseURL is the Google Maps Web Service endpoint.
const DefaultBaseURL = "https://maps.googleapis.com"

const (
	geocodePath    = "/maps/api/geocode/json"
	nearbyPath     = "/maps/api/place/nearbysearch/json"
	detailsPath    = "/maps/api/place/details/json"
	photoPath      = "/maps/api/place/photo"
	directionsPath = "/maps/api/directions/json"

	detailsFields = "name,formatted_address,geometry,opening_hours,photos"
)

// Config configures the Google Maps client.
type Config struct {
	APIKey        string
	BaseURL       string
	Timeout       time.Duration
	PhotoMaxWidth int
}

// Client talks to the geocoding, places and directions web services.
// It implements the route collaborator ports.
type Client struct {
	apiKey        string
	baseURL       string
	photoMaxWidth int
	http          *http.Client
	logger        *zap.Logger
}

// StatusError is returned when the service answers with a status other than
// OK or a "nothing found" status.
type StatusError struct {
	Endpoint string
	Status   string
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %s: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %s", e.Endpoint, e.Status)
}

// NewClient creates a new Client.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("google maps API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.PhotoMaxWidth <= 0 {
		cfg.PhotoMaxWidth = 400
	}
	return &Client{
		apiKey:        cfg.APIKey,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		photoMaxWidth: cfg.PhotoMaxWidth,
		http:          &http.Client{Timeout: cfg.Timeout},
		logger:        logger,
	}, nil
}

// --- Wire types ---

type serviceStatus struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geometry struct {
	Location latLng `json:"location"`
}

type textValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type geocodeResponse struct {
	serviceStatus
	Results []struct {
		FormattedAddress string   `json:"formatted_address"`
		Geometry         geometry `json:"geometry"`
	} `json:"results"`
}

type nearbyResponse struct {
	serviceStatus
	Results []struct {
		PlaceID  string   `json:"place_id"`
		Name     string   `json:"name"`
		Vicinity string   `json:"vicinity"`
		Geometry geometry `json:"geometry"`
	} `json:"results"`
}

type detailsResponse struct {
	serviceStatus
	Result struct {
		OpeningHours *struct {
			WeekdayText []string `json:"weekday_text"`
		} `json:"opening_hours"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"result"`
}

type directionsResponse struct {
	serviceStatus
	Routes []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance textValue `json:"distance"`
			Duration textValue `json:"duration"`
			Steps    []struct {
				HTMLInstructions string    `json:"html_instructions"`
				Distance         textValue `json:"distance"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// --- Ports ---

// Geocode resolves address to the first geocoding match.
func (c *Client) Geocode(ctx context.Context, address string) (routeDomain.Coordinate, bool, error) {
	var resp geocodeResponse
	if err := c.get(ctx, geocodePath, url.Values{"address": {address}}, &resp); err != nil {
		return routeDomain.Coordinate{}, false, err
	}
	found, err := c.check("geocode", resp.serviceStatus)
	if err != nil || !found || len(resp.Results) == 0 {
		return routeDomain.Coordinate{}, false, err
	}
	loc := resp.Results[0].Geometry.Location
	return routeDomain.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, true, nil
}

// NearestPlace returns the closest place to origin matching keyword, ranked by distance.
func (c *Client) NearestPlace(ctx context.Context, origin routeDomain.Coordinate, keyword string) (routeDomain.Place, bool, error) {
	params := url.Values{
		"location": {origin.String()},
		"rankby":   {"distance"},
		"keyword":  {keyword},
	}
	var resp nearbyResponse
	if err := c.get(ctx, nearbyPath, params, &resp); err != nil {
		return routeDomain.Place{}, false, err
	}
	found, err := c.check("nearbysearch", resp.serviceStatus)
	if err != nil || !found || len(resp.Results) == 0 {
		return routeDomain.Place{}, false, err
	}

	first := resp.Results[0]
	return routeDomain.Place{
		ID:       first.PlaceID,
		Name:     first.Name,
		Vicinity: first.Vicinity,
		Coordinate: routeDomain.Coordinate{
			Lat: first.Geometry.Location.Lat,
			Lng: first.Geometry.Location.Lng,
		},
	}, true, nil
}

// PlaceDetails fetches weekday opening hours and photo URLs for placeID.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (routeDomain.PlaceDetails, error) {
	params := url.Values{
		"place_id": {placeID},
		"fields":   {detailsFields},
	}
	var resp detailsResponse
	if err := c.get(ctx, detailsPath, params, &resp); err != nil {
		return routeDomain.PlaceDetails{}, err
	}
	found, err := c.check("details", resp.serviceStatus)
	if err != nil || !found {
		return routeDomain.PlaceDetails{}, err
	}

	details := routeDomain.PlaceDetails{
		OpeningHours: []string{},
		PhotoURLs:    make([]string, 0, len(resp.Result.Photos)),
	}
	if resp.Result.OpeningHours != nil && resp.Result.OpeningHours.WeekdayText != nil {
		details.OpeningHours = resp.Result.OpeningHours.WeekdayText
	}
	for _, p := range resp.Result.Photos {
		details.PhotoURLs = append(details.PhotoURLs, c.PhotoURL(p.PhotoReference))
	}
	return details, nil
}

// PhotoURL builds a fetchable URL for a place photo reference.
func (c *Client) PhotoURL(reference string) string {
	params := url.Values{
		"maxwidth":        {strconv.Itoa(c.photoMaxWidth)},
		"photo_reference": {reference},
		"key":             {c.apiKey},
	}
	return c.baseURL + photoPath + "?" + params.Encode()
}

// Directions requests one route from the first to the last point through the
// interior points in order, without waypoint optimization.
func (c *Client) Directions(ctx context.Context, points []routeDomain.Coordinate) (routeDomain.Directions, bool, error) {
	if len(points) < 2 {
		return routeDomain.Directions{}, false, fmt.Errorf("directions need at least 2 points, got %d", len(points))
	}

	params := url.Values{
		"origin":      {points[0].String()},
		"destination": {points[len(points)-1].String()},
	}
	if len(points) > 2 {
		stops := make([]string, 0, len(points)-2)
		for _, p := range points[1 : len(points)-1] {
			stops = append(stops, p.String())
		}
		params.Set("waypoints", strings.Join(stops, "|"))
	}

	var resp directionsResponse
	if err := c.get(ctx, directionsPath, params, &resp); err != nil {
		return routeDomain.Directions{}, false, err
	}
	found, err := c.check("directions", resp.serviceStatus)
	if err != nil || !found || len(resp.Routes) == 0 {
		return routeDomain.Directions{}, false, err
	}

	r := resp.Routes[0]
	dir := routeDomain.Directions{
		OverviewPolyline: r.OverviewPolyline.Points,
		Legs:             make([]routeDomain.DirectionsLeg, 0, len(r.Legs)),
	}
	for _, leg := range r.Legs {
		dl := routeDomain.DirectionsLeg{
			DistanceText: leg.Distance.Text,
			DurationText: leg.Duration.Text,
			Steps:        make([]routeDomain.DirectionsStep, 0, len(leg.Steps)),
		}
		for _, step := range leg.Steps {
			dl.Steps = append(dl.Steps, routeDomain.DirectionsStep{
				HTMLInstructions: step.HTMLInstructions,
				DistanceText:     step.Distance.Text,
			})
		}
		dir.Legs = append(dir.Legs, dl)
	}
	return dir, true, nil
}

// --- Transport ---

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("request to %s returned HTTP %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// check maps a service status: OK is found, ZERO_RESULTS and NOT_FOUND are
// not found, anything else is an error.
func (c *Client) check(endpoint string, s serviceStatus) (bool, error) {
	switch s.Status {
	case "OK":
		return true, nil
	case "ZERO_RESULTS", "NOT_FOUND":
		return false, nil
	default:
		c.logger.Debug("google maps returned an error status",
			zap.String("endpoint", endpoint),
			zap.String("status", s.Status),
			zap.String("message", s.ErrorMessage),
		)
		return false, &StatusError{Endpoint: endpoint, Status: s.Status, Message: s.ErrorMessage}
	}
}
