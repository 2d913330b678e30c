// Package logging builds the hclog loggers used across segrec.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Options controls logger construction.
type Options struct {
	Verbose bool
	NoColor bool
	// File, when set, receives log output instead of Output.
	File   string
	Output io.Writer
}

// New creates the root logger. Verbose raises the level to Debug. The
// returned closer releases the log file, if one was opened.
func New(opts Options) (hclog.Logger, io.Closer, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closer = f
	}

	level := hclog.Info
	if opts.Verbose {
		level = hclog.Debug
	}

	color := hclog.AutoColor
	if opts.NoColor || opts.File != "" {
		color = hclog.ColorOff
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       "segrec",
		Level:      level,
		Output:     out,
		Color:      color,
		TimeFormat: "15:04:05.000",
	}), closer, nil
}

// Discard returns a logger that drops everything, for full-screen modes
// without a log file.
func Discard() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "segrec",
		Level:  hclog.Off,
		Output: io.Discard,
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
