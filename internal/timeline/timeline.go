package timeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/hashicorp/go-hclog"
)

// DefaultMaxDuration is the total recording length used when none is given.
const DefaultMaxDuration = 5.0

// saturationEpsilon absorbs float drift from repeated deltas so a capped
// timeline stays capped.
const saturationEpsilon = 1e-9

var (
	// ErrOutOfRange is returned when a segment index does not exist.
	ErrOutOfRange = errors.New("segment index out of range")

	// ErrInvalidMaxDuration is returned when a max duration is not a positive
	// finite number or is below the duration already recorded.
	ErrInvalidMaxDuration = errors.New("invalid max duration")
)

// Timeline owns an ordered list of segments and the index of the segment
// currently receiving updates.
//
// Invariants after every exported call:
//   - the sum of segment durations never exceeds the max duration
//   - only the current segment can be opened, every earlier one is closed
//   - 0 <= current <= len(segments)
//
// A Timeline is not safe for concurrent use. Callers drive it from a single
// goroutine, typically a UI update loop.
type Timeline struct {
	maxDuration float64
	segments    []Segment
	current     int

	listeners    []listener
	nextListener int
	logger       hclog.Logger
}

// Option configures a Timeline.
type Option func(*Timeline)

// WithMaxDuration sets the max total duration in seconds. Values that are not
// positive and finite are ignored.
func WithMaxDuration(d float64) Option {
	return func(t *Timeline) {
		if d > 0 && finite(d) {
			t.maxDuration = d
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l hclog.Logger) Option {
	return func(t *Timeline) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates an empty timeline.
func New(opts ...Option) *Timeline {
	t := &Timeline{
		maxDuration: DefaultMaxDuration,
		logger:      hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.Named("timeline")
	return t
}

// SetInitialSegments discards every segment and rebuilds the list from
// durations. Durations are consumed in order until one is not finite or would
// push the total past the max duration; that entry and everything after it
// are dropped. An entry that lands within float drift of the max is trimmed
// to fill it exactly. Accepted segments are closed and there is no current
// segment afterwards.
func (t *Timeline) SetInitialSegments(durations []float64) {
	t.segments = t.segments[:0]

	var total float64
	for i, d := range durations {
		if !finite(d) {
			t.logger.Debug("dropping initial segments from non-finite entry",
				"accepted", i, "dropped", len(durations)-i)
			break
		}
		if d < 0 {
			d = 0
		}
		if total+d-t.maxDuration > saturationEpsilon {
			t.logger.Debug("dropping initial segments past max duration",
				"accepted", i, "dropped", len(durations)-i, "max", t.maxDuration)
			break
		}
		d = math.Min(d, t.maxDuration-total)
		total += d
		t.segments = append(t.segments, Segment{Duration: d, State: StateClosed})
	}

	t.setCurrent(len(t.segments))
	t.emit(OpReset, t.current, Segment{})
}

// StartNewSegment appends an empty opened segment and makes it current.
// It does nothing when the timeline is saturated.
func (t *Timeline) StartNewSegment() bool {
	if t.Saturated() {
		t.logger.Debug("start ignored, reached max", "total", t.CurrentDuration())
		return false
	}

	t.segments = append(t.segments, Segment{State: StateOpened})
	t.setCurrent(len(t.segments) - 1)
	t.emit(OpStart, t.current, t.segments[t.current])
	return true
}

// UpdateSegment sets the duration of the current segment. If the new duration
// would reach the max total, the segment is trimmed so the total equals the
// max exactly and it becomes final. Only an opened segment accepts updates; a
// paused one must be resumed first. Negative durations are clamped to zero
// and non-finite ones are rejected.
func (t *Timeline) UpdateSegment(duration float64) bool {
	if !t.inBounds(t.current) {
		return false
	}
	if !finite(duration) {
		t.logger.Debug("update rejected", "duration", duration)
		return false
	}
	seg := &t.segments[t.current]
	if seg.State != StateOpened {
		t.logger.Trace("update ignored", "state", seg.State)
		return false
	}

	total := t.CurrentDuration()
	if t.saturatedAt(total) {
		t.logger.Debug("reached max", "total", total)
		return false
	}

	if duration < 0 {
		duration = 0
	}
	delta := duration - seg.Duration

	if t.saturatedAt(total + delta) {
		seg.Duration = t.maxDuration - (total - seg.Duration)
		seg.State = StateFinal
		t.logger.Debug("reached max", "index", t.current, "duration", seg.Duration)
		t.emit(OpMax, t.current, *seg)
		return true
	}

	seg.Duration = duration
	seg.State = StateOpened
	t.emit(OpUpdate, t.current, *seg)
	return true
}

// UpdateSegmentDelta grows (or, with a negative delta, shrinks) the current
// segment by delta seconds. See UpdateSegment.
func (t *Timeline) UpdateSegmentDelta(delta float64) bool {
	if !t.inBounds(t.current) {
		return false
	}
	return t.UpdateSegment(t.segments[t.current].Duration + delta)
}

// PauseSegment suspends the current segment if it is opened.
func (t *Timeline) PauseSegment() bool {
	return t.transition(OpPause, StatePaused, StateOpened)
}

// ResumeSegment reopens the current segment if it is paused.
func (t *Timeline) ResumeSegment() bool {
	return t.transition(OpResume, StateOpened, StatePaused)
}

// CloseSegment closes the current segment if it is opened or paused. A closed
// segment keeps its duration and can only be discarded by RemoveSegment.
func (t *Timeline) CloseSegment() bool {
	return t.transition(OpClose, StateClosed, StateOpened, StatePaused)
}

// RemoveSegment deletes the current segment. When it was the last one, the
// current index moves past the end and there is no current segment until the
// next StartNewSegment.
func (t *Timeline) RemoveSegment() bool {
	if !t.inBounds(t.current) {
		return false
	}

	idx := t.current
	removed := t.segments[idx]
	t.segments = append(t.segments[:idx], t.segments[idx+1:]...)

	if len(t.segments) <= t.current {
		t.setCurrent(len(t.segments))
	}

	t.emit(OpRemove, idx, removed)
	return true
}

// SetMaxDuration changes the max total duration. It fails if d is not a
// positive finite number or is below what has already been recorded. If the new limit is
// reached exactly, a growing current segment becomes final.
func (t *Timeline) SetMaxDuration(d float64) error {
	total := t.CurrentDuration()
	if !(d > 0) || !finite(d) {
		return fmt.Errorf("%w: %g must be positive and finite", ErrInvalidMaxDuration, d)
	}
	if d < total {
		return fmt.Errorf("%w: %g is below recorded duration %g", ErrInvalidMaxDuration, d, total)
	}

	t.maxDuration = d

	var seg Segment
	if t.inBounds(t.current) {
		s := &t.segments[t.current]
		if t.saturatedAt(total) && (s.State == StateOpened || s.State == StatePaused) {
			s.State = StateFinal
		}
		seg = *s
	}
	t.emit(OpLimit, t.current, seg)
	return nil
}

// MaxDuration returns the max total duration in seconds.
func (t *Timeline) MaxDuration() float64 { return t.maxDuration }

// SegmentsCount returns the number of segments.
func (t *Timeline) SegmentsCount() int { return len(t.segments) }

// CurrentIndex returns the index of the current segment. It equals
// SegmentsCount when there is no current segment.
func (t *Timeline) CurrentIndex() int { return t.current }

// CurrentDuration returns the sum of all segment durations.
func (t *Timeline) CurrentDuration() float64 {
	var total float64
	for _, s := range t.segments {
		total += s.Duration
	}
	return total
}

// Remaining returns how many seconds can still be recorded.
func (t *Timeline) Remaining() float64 {
	r := t.maxDuration - t.CurrentDuration()
	if r < 0 {
		return 0
	}
	return r
}

// Saturated reports whether the max duration has been reached.
func (t *Timeline) Saturated() bool {
	return t.saturatedAt(t.CurrentDuration())
}

// CurrentSegmentDuration returns the current segment's duration, or 0 when
// there is no current segment.
func (t *Timeline) CurrentSegmentDuration() float64 {
	return t.SegmentDurationAt(t.current)
}

// CurrentSegmentState returns the current segment's state, or StateNone.
func (t *Timeline) CurrentSegmentState() State {
	return t.SegmentStateAt(t.current)
}

// SegmentAt returns a copy of the segment at index.
func (t *Timeline) SegmentAt(index int) (Segment, error) {
	if !t.inBounds(index) {
		return Segment{}, fmt.Errorf("%w: %d (count %d)", ErrOutOfRange, index, len(t.segments))
	}
	return t.segments[index], nil
}

// SegmentDurationAt returns the duration at index, or 0 if out of range.
func (t *Timeline) SegmentDurationAt(index int) float64 {
	if !t.inBounds(index) {
		return 0
	}
	return t.segments[index].Duration
}

// SegmentStateAt returns the state at index, or StateNone if out of range.
func (t *Timeline) SegmentStateAt(index int) State {
	if !t.inBounds(index) {
		return StateNone
	}
	return t.segments[index].State
}

// Segments returns a copy of all segments in recording order.
func (t *Timeline) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// setCurrent moves the current index and closes every segment before it.
func (t *Timeline) setCurrent(index int) {
	t.current = index
	for i := 0; i < index && i < len(t.segments); i++ {
		t.segments[i].State = StateClosed
	}
}

func (t *Timeline) transition(op Op, to State, from ...State) bool {
	if !t.inBounds(t.current) {
		return false
	}
	seg := &t.segments[t.current]
	for _, f := range from {
		if seg.State == f {
			seg.State = to
			t.emit(op, t.current, *seg)
			return true
		}
	}
	t.logger.Trace("transition ignored", "op", op, "state", seg.State)
	return false
}

func (t *Timeline) inBounds(index int) bool {
	return index >= 0 && index < len(t.segments)
}

func (t *Timeline) saturatedAt(total float64) bool {
	return t.maxDuration-total <= saturationEpsilon
}

func finite(d float64) bool {
	return !math.IsNaN(d) && !math.IsInf(d, 0)
}
