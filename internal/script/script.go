// Package script describes recording sessions as ordered lists of timeline
// operations and replays them against a timeline.
package script

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Op is a single script operation.
type Op string

const (
	OpStart  Op = "start"
	OpUpdate Op = "update" // set duration
	OpDelta  Op = "delta"  // add value once
	OpTick   Op = "tick"   // add every, repeat times
	OpPause  Op = "pause"
	OpResume Op = "resume"
	OpClose  Op = "close"
	OpRemove Op = "remove"
	OpReset  Op = "reset" // replace all segments with durations
)

var validOps = map[Op]bool{
	OpStart: true, OpUpdate: true, OpDelta: true, OpTick: true,
	OpPause: true, OpResume: true, OpClose: true, OpRemove: true, OpReset: true,
}

// Step is one entry in a script.
type Step struct {
	Op        Op        `yaml:"op"`
	Duration  float64   `yaml:"duration,omitempty"`
	Value     float64   `yaml:"value,omitempty"`
	Every     float64   `yaml:"every,omitempty"`
	Repeat    int       `yaml:"repeat,omitempty"`
	Durations []float64 `yaml:"durations,omitempty"`
	Label     string    `yaml:"label,omitempty"`
}

// Script is a recording session: the timeline setup plus its steps.
type Script struct {
	Name        string    `yaml:"name"`
	MaxDuration float64   `yaml:"maxDuration"`
	Initial     []float64 `yaml:"initial"`
	Steps       []Step    `yaml:"steps"`
}

// ErrInvalid wraps every script validation failure.
var ErrInvalid = errors.New("invalid script")

// Parse decodes and validates a YAML script. Unknown fields are rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseFile reads and parses the script at path.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks ops and their required fields.
func (s *Script) Validate() error {
	if s.MaxDuration < 0 || !finite(s.MaxDuration) {
		return fmt.Errorf("%w: maxDuration must be a finite number >= 0", ErrInvalid)
	}
	if i := firstNonFinite(s.Initial); i >= 0 {
		return fmt.Errorf("%w: initial[%d] is not a finite number", ErrInvalid, i)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalid)
	}

	for i, st := range s.Steps {
		if !validOps[st.Op] {
			return fmt.Errorf("%w: step %d: unknown op %q", ErrInvalid, i, st.Op)
		}
		for _, v := range []float64{st.Duration, st.Value, st.Every} {
			if !finite(v) {
				return fmt.Errorf("%w: step %d: %g is not a finite number", ErrInvalid, i, v)
			}
		}
		if j := firstNonFinite(st.Durations); j >= 0 {
			return fmt.Errorf("%w: step %d: durations[%d] is not a finite number", ErrInvalid, i, j)
		}

		switch st.Op {
		case OpTick:
			if st.Every <= 0 {
				return fmt.Errorf("%w: step %d: tick needs every > 0", ErrInvalid, i)
			}
			if st.Repeat <= 0 {
				return fmt.Errorf("%w: step %d: tick needs repeat > 0", ErrInvalid, i)
			}
		case OpUpdate:
			if st.Duration < 0 {
				return fmt.Errorf("%w: step %d: duration must not be negative", ErrInvalid, i)
			}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// firstNonFinite returns the index of the first NaN or infinite value, or -1.
func firstNonFinite(vs []float64) int {
	for i, v := range vs {
		if !finite(v) {
			return i
		}
	}
	return -1
}

// Marshal encodes s as YAML.
func (s *Script) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Default returns the built-in demo session: one pre-recorded second, a take
// that is discarded, then a new take recorded in 0.1s ticks, paused, resumed
// and closed.
func Default() *Script {
	return &Script{
		Name:        "demo",
		MaxDuration: 5,
		Initial:     []float64{1.0},
		Steps: []Step{
			{Op: OpStart, Label: "first take"},
			{Op: OpTick, Every: 0.1, Repeat: 10},
			{Op: OpRemove, Label: "discard take"},
			{Op: OpStart, Label: "second take"},
			{Op: OpTick, Every: 0.1, Repeat: 15},
			{Op: OpPause},
			{Op: OpResume},
			{Op: OpTick, Every: 0.1, Repeat: 15},
			{Op: OpClose},
		},
	}
}
