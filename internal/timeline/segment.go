// Package timeline implements the segmented recording timeline: an ordered
// list of timed segments capped at a maximum total duration, with exactly one
// segment eligible for growth at a time.
package timeline

// State is the lifecycle state of a single segment.
type State string

const (
	// StateNone is returned by queries when there is no segment to report on.
	StateNone   State = ""
	StateClosed State = "closed"
	StateOpened State = "opened"
	StatePaused State = "paused"
	StateFinal  State = "final"
)

// Terminal reports whether a segment in this state can no longer grow.
func (s State) Terminal() bool {
	return s == StateClosed || s == StateFinal
}

// Segment is one timed interval of a recording.
type Segment struct {
	Duration float64 // seconds
	State    State
}
