package route

// RouteLeg summarizes the portion of a route between two consecutive stops.
type RouteLeg struct {
	DistanceText string
	DurationText string
}

// RouteResult is the compiled multi-stop route.
type RouteResult struct {
	OverviewPath     string
	StepInstructions []string
	Legs             []RouteLeg
}

// Outcome is the terminal value of one pipeline run. A nil OverviewPath
// signals a recoverable failure explained in Notes.
type Outcome struct {
	OverviewPath     *string
	StepInstructions []string
	Waypoints        []ResolvedWaypoint
	RoundTrip        bool
	Notes            string
	Legs             []RouteLeg

	// Stage is where the run terminated; FailureKind is empty on success.
	Stage       Stage
	FailureKind FailureKind
}

// Succeeded reports whether the run produced a route.
func (o Outcome) Succeeded() bool {
	return o.OverviewPath != nil
}

// FailedOutcome builds the outcome for a run that stopped at stage because of f.
// Collections are empty rather than nil.
func FailedOutcome(stage Stage, f *Failure, roundTrip bool, waypoints []ResolvedWaypoint) Outcome {
	if waypoints == nil {
		waypoints = []ResolvedWaypoint{}
	}
	return Outcome{
		StepInstructions: []string{},
		Waypoints:        waypoints,
		RoundTrip:        roundTrip,
		Notes:            f.Notes(),
		Legs:             []RouteLeg{},
		Stage:            stage,
		FailureKind:      f.Kind,
	}
}
