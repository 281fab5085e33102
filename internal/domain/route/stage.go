package route

import "fmt"

// Stage is a step of the planning pipeline.
type Stage string

const (
	StageExtract  Stage = "extract"
	StageResolve  Stage = "resolve"
	StagePostLoop Stage = "post_loop"
	StageCompile  Stage = "compile"
	StageDone     Stage = "done"
)

// validTransitions defines the forward-only order of the pipeline. Any stage
// may end the run early; only compile may complete it.
var validTransitions = map[Stage][]Stage{
	StageExtract:  {StageResolve},
	StageResolve:  {StagePostLoop},
	StagePostLoop: {StageCompile},
	StageCompile:  {StageDone},
	StageDone:     {},
}

// IsValid returns true if the stage is a recognized pipeline stage.
func (s Stage) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if the pipeline may move from this stage to target.
func (s Stage) CanTransitionTo(target Stage) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further stages follow.
func (s Stage) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// String returns the string representation of the stage.
func (s Stage) String() string {
	return string(s)
}

// Progress tracks the current stage of one pipeline run.
type Progress struct {
	current Stage
}

// NewProgress starts a run at the extract stage.
func NewProgress() *Progress {
	return &Progress{current: StageExtract}
}

// Current returns the stage the run is in.
func (p *Progress) Current() Stage { return p.current }

// Advance moves the run to target, rejecting out-of-order moves.
func (p *Progress) Advance(target Stage) error {
	if !p.current.CanTransitionTo(target) {
		return fmt.Errorf("invalid pipeline transition: %s -> %s", p.current, target)
	}
	p.current = target
	return nil
}
