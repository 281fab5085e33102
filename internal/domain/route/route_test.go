package route

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntentKind(t *testing.T) {
	kind, err := ParseIntentKind("address")
	require.NoError(t, err)
	assert.Equal(t, IntentAddress, kind)

	kind, err = ParseIntentKind(" Place_Type ")
	require.NoError(t, err)
	assert.Equal(t, IntentPlaceType, kind)

	_, err = ParseIntentKind("landmark")
	assert.Error(t, err)
}

func TestCoordinateString(t *testing.T) {
	assert.Equal(t, "43.7844,-79.1864", Coordinate{Lat: 43.7844, Lng: -79.1864}.String())
	assert.Equal(t, "0.00001,100", Coordinate{Lat: 0.00001, Lng: 100}.String())
}

func TestCoordinatesPreservesOrder(t *testing.T) {
	a := ResolvedWaypoint{Coordinate: Coordinate{Lat: 1, Lng: 2}}
	b := ResolvedWaypoint{Coordinate: Coordinate{Lat: 3, Lng: 4}}
	assert.Equal(t, []Coordinate{{1, 2}, {3, 4}, {1, 2}}, Coordinates([]ResolvedWaypoint{a, b, a}))
}

func TestFailureNotes(t *testing.T) {
	assert.Equal(t, "Could not geocode address: Nonexistent Place",
		NewGeocodeFailure("Nonexistent Place", nil).Notes())
	assert.Equal(t, "Could not find a nearby place for: coffee shop",
		NewNoNearbyPlaceFailure("coffee shop", nil).Notes())
	assert.Equal(t, "I couldn't parse any valid stops from your request.",
		NewEmptyIntentFailure().Notes())
	assert.Equal(t, FailureOrdering, NewFirstPlaceTypeFailure("coffee shop").Kind)
	assert.Equal(t, FailureOrdering, NewMissingOriginFailure("coffee shop").Kind)
}

func TestAsFailureUnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	var err error = NewNoRouteFailure(cause)

	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureNoRoute, f.Kind)
	assert.ErrorIs(t, err, cause)

	_, ok = AsFailure(cause)
	assert.False(t, ok)
}

func TestFailedOutcomeUsesEmptyCollections(t *testing.T) {
	out := FailedOutcome(StageResolve, NewGeocodeFailure("x", nil), true, nil)

	assert.Nil(t, out.OverviewPath)
	assert.False(t, out.Succeeded())
	assert.NotNil(t, out.Waypoints)
	assert.NotNil(t, out.StepInstructions)
	assert.NotNil(t, out.Legs)
	assert.True(t, out.RoundTrip)
	assert.Equal(t, FailureGeocode, out.FailureKind)
	assert.Equal(t, StageResolve, out.Stage)
}

func TestProgressTransitions(t *testing.T) {
	p := NewProgress()
	assert.Equal(t, StageExtract, p.Current())

	require.Error(t, p.Advance(StageCompile))
	require.NoError(t, p.Advance(StageResolve))
	require.NoError(t, p.Advance(StagePostLoop))
	require.NoError(t, p.Advance(StageCompile))
	require.NoError(t, p.Advance(StageDone))

	assert.True(t, p.Current().IsTerminal())
	assert.False(t, StageResolve.IsTerminal())
	assert.True(t, StageCompile.IsValid())
	assert.False(t, Stage("bogus").IsValid())
}
