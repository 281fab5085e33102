package route

import (
	"errors"
	"fmt"
)

// FailureKind identifies one of the recoverable ways a pipeline run can end early.
type FailureKind string

const (
	FailureExtraction            FailureKind = "extraction"
	FailureEmptyIntents          FailureKind = "empty_intents"
	FailureOrdering              FailureKind = "ordering"
	FailureGeocode               FailureKind = "geocode"
	FailureNoNearbyPlace         FailureKind = "no_nearby_place"
	FailureNoRoute               FailureKind = "no_route"
	FailureInsufficientWaypoints FailureKind = "insufficient_waypoints"
)

// Failure is a domain failure. Notes() is the user-facing explanation.
type Failure struct {
	Kind  FailureKind
	Value string
	notes string
	cause error
}

func newFailure(kind FailureKind, value, notes string, cause error) *Failure {
	return &Failure{Kind: kind, Value: value, notes: notes, cause: cause}
}

// Error implements error.
func (f *Failure) Error() string {
	msg := string(f.Kind)
	if f.Value != "" {
		msg += fmt.Sprintf(" (%s)", f.Value)
	}
	if f.cause != nil {
		msg += ": " + f.cause.Error()
	}
	return msg
}

// Unwrap returns the collaborator error that caused the failure, if any.
func (f *Failure) Unwrap() error { return f.cause }

// Notes returns the human-readable explanation for the caller.
func (f *Failure) Notes() string { return f.notes }

// NewExtractionFailure reports that the intent extractor returned unusable data.
func NewExtractionFailure(cause error) *Failure {
	return newFailure(FailureExtraction, "", "Error or invalid JSON from the waypoint parser.", cause)
}

// NewEmptyIntentFailure reports that no stops were extracted.
func NewEmptyIntentFailure() *Failure {
	return newFailure(FailureEmptyIntents, "", "I couldn't parse any valid stops from your request.", nil)
}

// NewFirstPlaceTypeFailure reports a list that starts with a place type.
func NewFirstPlaceTypeFailure(value string) *Failure {
	return newFailure(FailureOrdering, value, "Your first waypoint is a place type, but no origin was provided.", nil)
}

// NewMissingOriginFailure reports a place type with no resolved point before it.
func NewMissingOriginFailure(value string) *Failure {
	return newFailure(FailureOrdering, value, "No origin available for place search. Please specify an address first.", nil)
}

// NewGeocodeFailure reports an address that did not resolve.
func NewGeocodeFailure(address string, cause error) *Failure {
	return newFailure(FailureGeocode, address, "Could not geocode address: "+address, cause)
}

// NewNoNearbyPlaceFailure reports a keyword with no match near the reference point.
func NewNoNearbyPlaceFailure(keyword string, cause error) *Failure {
	return newFailure(FailureNoNearbyPlace, keyword, "Could not find a nearby place for: "+keyword, cause)
}

// NewNoRouteFailure reports that directions could not be built.
func NewNoRouteFailure(cause error) *Failure {
	return newFailure(FailureNoRoute, "", "Directions request failed. Please try again.", cause)
}

// NewInsufficientWaypointsFailure reports fewer than two stops after resolution.
func NewInsufficientWaypointsFailure(count int) *Failure {
	return newFailure(FailureInsufficientWaypoints, fmt.Sprintf("%d", count), "Not enough waypoints to create a route.", nil)
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
