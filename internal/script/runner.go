package script

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/Dallionking/segrec/internal/timeline"
)

// Frame is reported after every applied operation.
type Frame struct {
	Step    int
	Op      Op
	Label   string
	Applied bool
	Spans   []timeline.Span
	Total   float64
	Max     float64
	Count   int
	State   timeline.State
}

// Runner replays a script against a timeline.
type Runner struct {
	tl     *timeline.Timeline
	logger hclog.Logger
	// Pace, when positive, sleeps between ticks so a replay runs in real time.
	Pace time.Duration
}

// NewRunner creates a runner for tl.
func NewRunner(tl *timeline.Timeline, logger hclog.Logger) *Runner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Runner{tl: tl, logger: logger.Named("script")}
}

// Run seeds the timeline with s.Initial, applies every step and calls
// onFrame after each operation (once per tick for tick steps). It returns
// early if ctx is cancelled.
func (r *Runner) Run(ctx context.Context, s *Script, onFrame func(Frame)) error {
	if s.MaxDuration > 0 {
		if err := r.tl.SetMaxDuration(s.MaxDuration); err != nil {
			// A smaller max than what is recorded: reset first, then apply.
			r.tl.SetInitialSegments(nil)
			if err := r.tl.SetMaxDuration(s.MaxDuration); err != nil {
				return fmt.Errorf("set max duration: %w", err)
			}
		}
	}
	r.tl.SetInitialSegments(s.Initial)
	r.frame(-1, OpReset, "initial", true, onFrame)

	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		if st.Op == OpTick {
			for n := 0; n < st.Repeat; n++ {
				applied := r.tl.UpdateSegmentDelta(st.Every)
				r.frame(i, st.Op, st.Label, applied, onFrame)
				if err := r.sleep(ctx); err != nil {
					return err
				}
			}
			continue
		}

		applied := r.apply(st)
		r.logger.Debug("step", "index", i, "op", st.Op, "applied", applied)
		r.frame(i, st.Op, st.Label, applied, onFrame)
	}
	return nil
}

func (r *Runner) apply(st Step) bool {
	switch st.Op {
	case OpStart:
		return r.tl.StartNewSegment()
	case OpUpdate:
		return r.tl.UpdateSegment(st.Duration)
	case OpDelta:
		return r.tl.UpdateSegmentDelta(st.Value)
	case OpPause:
		return r.tl.PauseSegment()
	case OpResume:
		return r.tl.ResumeSegment()
	case OpClose:
		return r.tl.CloseSegment()
	case OpRemove:
		return r.tl.RemoveSegment()
	case OpReset:
		r.tl.SetInitialSegments(st.Durations)
		return true
	default:
		return false
	}
}

func (r *Runner) frame(step int, op Op, label string, applied bool, onFrame func(Frame)) {
	if onFrame == nil {
		return
	}
	onFrame(Frame{
		Step:    step,
		Op:      op,
		Label:   label,
		Applied: applied,
		Spans:   r.tl.Geometry(),
		Total:   r.tl.CurrentDuration(),
		Max:     r.tl.MaxDuration(),
		Count:   r.tl.SegmentsCount(),
		State:   r.tl.CurrentSegmentState(),
	})
}

func (r *Runner) sleep(ctx context.Context) error {
	if r.Pace <= 0 {
		return nil
	}
	t := time.NewTimer(r.Pace)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
