package config

import (
	"fmt"
	"math"
	"regexp"
)

// ValidationError describes a single config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface for a single validation error.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// colorPattern accepts "#rgb", "#rrggbb" or an ANSI 256 color index.
var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|[0-9]{1,3})$`)

// Validate checks the Config for completeness and consistency. It returns a
// slice of all discovered issues rather than stopping at the first one.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	// --- Timeline ---
	if !(cfg.MaxDuration > 0) || math.IsInf(cfg.MaxDuration, 0) {
		errs = append(errs, ValidationError{
			Field:   "maxDuration",
			Message: fmt.Sprintf("must be a finite number > 0, got %g", cfg.MaxDuration),
		})
	}

	for i, d := range cfg.InitialSegments {
		if !(d >= 0) || math.IsInf(d, 0) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("initialSegments[%d]", i),
				Message: fmt.Sprintf("must be a finite number >= 0, got %g", d),
			})
		}
	}

	// --- Timing ---
	if cfg.TickIntervalMs < 10 || cfg.TickIntervalMs > 1000 {
		errs = append(errs, ValidationError{
			Field:   "tickIntervalMs",
			Message: fmt.Sprintf("must be in [10, 1000], got %d", cfg.TickIntervalMs),
		})
	}
	if cfg.Blink.DurationMs <= 0 {
		errs = append(errs, ValidationError{
			Field:   "blink.durationMs",
			Message: fmt.Sprintf("must be > 0, got %d", cfg.Blink.DurationMs),
		})
	}

	// --- Style ---
	colors := []struct {
		field string
		value string
	}{
		{"style.segmentColor", cfg.Style.SegmentColor},
		{"style.separatorColor", cfg.Style.SeparatorColor},
		{"style.trackColor", cfg.Style.TrackColor},
	}
	for _, c := range colors {
		if !colorPattern.MatchString(c.value) {
			errs = append(errs, ValidationError{
				Field:   c.field,
				Message: fmt.Sprintf("invalid color %q", c.value),
			})
		}
	}

	if cfg.Style.SeparatorWidth < 0 || cfg.Style.SeparatorWidth > 3 {
		errs = append(errs, ValidationError{
			Field:   "style.separatorWidth",
			Message: fmt.Sprintf("must be in [0, 3], got %d", cfg.Style.SeparatorWidth),
		})
	}
	if cfg.Style.BarWidth != 0 && cfg.Style.BarWidth < 10 {
		errs = append(errs, ValidationError{
			Field:   "style.barWidth",
			Message: fmt.Sprintf("must be 0 (auto) or >= 10, got %d", cfg.Style.BarWidth),
		})
	}

	return errs
}

// Warnings reports settings that are accepted but probably not intended.
func Warnings(cfg *Config) []ValidationError {
	var warns []ValidationError

	var total float64
	for _, d := range cfg.InitialSegments {
		total += d
	}
	// Initial segments past maxDuration are dropped when the timeline is
	// seeded, not rejected.
	if cfg.MaxDuration > 0 && total > cfg.MaxDuration {
		warns = append(warns, ValidationError{
			Field:   "initialSegments",
			Message: fmt.Sprintf("total %g exceeds maxDuration %g; trailing segments will be dropped", total, cfg.MaxDuration),
		})
	}

	return warns
}
