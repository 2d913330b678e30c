package config

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, 5.0, cfg.MaxDuration)
	assert.Equal(t, 100*time.Millisecond, cfg.TickInterval())
	assert.Equal(t, 2*time.Second, cfg.BlinkDuration())
	assert.Equal(t, "#00fdff", cfg.Style.SegmentColor)
	assert.Empty(t, Validate(cfg))
}

func TestLoadFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segrec.json")
	writeFile(t, path, `{
  "maxDuration": 10,
  "initialSegments": [2, 4],
  "style": {"segmentColor": "#ff453a", "barWidth": 40}
}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 10.0, cfg.MaxDuration)
	assert.Equal(t, []float64{2, 4}, cfg.InitialSegments)
	assert.Equal(t, "#ff453a", cfg.Style.SegmentColor)
	assert.Equal(t, 40, cfg.Style.BarWidth)
	// Unset keys keep their defaults.
	assert.Equal(t, 100, cfg.TickIntervalMs)
	assert.Equal(t, "#ffffff", cfg.Style.SeparatorColor)

	assert.Equal(t, path, Path())
	assert.Equal(t, cfg, Get())
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segrec.yaml")
	writeFile(t, path, "maxDuration: 15\ntickIntervalMs: 50\nblink:\n  durationMs: 500\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 15.0, cfg.MaxDuration)
	assert.Equal(t, 50*time.Millisecond, cfg.TickInterval())
	assert.Equal(t, 500*time.Millisecond, cfg.BlinkDuration())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SEGREC_MAXDURATION", "8.5")
	t.Setenv("SEGREC_STYLE_BARWIDTH", "64")

	cfg, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, 8.5, cfg.MaxDuration)
	assert.Equal(t, 64, cfg.Style.BarWidth)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segrec.json")
	cfg := Default()
	cfg.MaxDuration = 12
	cfg.InitialSegments = []float64{1.5}

	require.NoError(t, Save(cfg, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	assert.Error(t, Save(cfg, ""))
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	_, err := FindConfigFile(nested)
	if err == nil {
		t.Skip("a segrec config exists above the temp dir")
	}
	assert.ErrorIs(t, err, ErrNotFound)

	path := filepath.Join(root, "segrec.yaml")
	writeFile(t, path, "maxDuration: 3\n")

	found, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{"defaults", func(*Config) {}, nil},
		{"zero max", func(c *Config) { c.MaxDuration = 0 }, []string{"maxDuration"}},
		{"negative initial", func(c *Config) { c.InitialSegments = []float64{1, -2} }, []string{"initialSegments[1]"}},
		{"NaN max", func(c *Config) { c.MaxDuration = math.NaN() }, []string{"maxDuration"}},
		{"infinite max", func(c *Config) { c.MaxDuration = math.Inf(1) }, []string{"maxDuration"}},
		{"NaN initial", func(c *Config) { c.InitialSegments = []float64{math.NaN(), 1} }, []string{"initialSegments[0]"}},
		{"infinite initial", func(c *Config) { c.InitialSegments = []float64{1, math.Inf(-1), math.Inf(1)} }, []string{"initialSegments[1]", "initialSegments[2]"}},
		{"tick too fast", func(c *Config) { c.TickIntervalMs = 1 }, []string{"tickIntervalMs"}},
		{"no blink", func(c *Config) { c.Blink.DurationMs = 0 }, []string{"blink.durationMs"}},
		{"bad color", func(c *Config) { c.Style.TrackColor = "teal" }, []string{"style.trackColor"}},
		{"ansi color", func(c *Config) { c.Style.TrackColor = "240" }, nil},
		{"short hex", func(c *Config) { c.Style.SegmentColor = "#0ff" }, nil},
		{"wide separator", func(c *Config) { c.Style.SeparatorWidth = 4 }, []string{"style.separatorWidth"}},
		{"narrow bar", func(c *Config) { c.Style.BarWidth = 5 }, []string{"style.barWidth"}},
		{"multiple", func(c *Config) {
			c.MaxDuration = -1
			c.Style.BarWidth = 3
		}, []string{"maxDuration", "style.barWidth"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			var fields []string
			for _, e := range Validate(cfg) {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestValidate_NonFiniteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segrec.yaml")
	writeFile(t, path, "maxDuration: .nan\ninitialSegments: [.inf]\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	var fields []string
	for _, e := range Validate(cfg) {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{"maxDuration", "initialSegments[0]"}, fields)
}

func TestWarnings(t *testing.T) {
	cfg := Default()
	assert.Empty(t, Warnings(cfg))

	cfg.InitialSegments = []float64{2.5, 5}
	warns := Warnings(cfg)
	require.Len(t, warns, 1)
	assert.Equal(t, "initialSegments", warns[0].Field)
	assert.Contains(t, warns[0].Error(), "dropped")
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "segrec.json")
	writeFile(t, path, `{"maxDuration": 5}`)

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := w.Watch(ctx)

	// Unrelated files in the same directory are ignored.
	writeFile(t, filepath.Join(dir, "other.json"), `{}`)
	writeFile(t, path, `{"maxDuration": 9}`)

	select {
	case cfg := <-ch:
		require.NotNil(t, cfg)
		assert.Equal(t, 9.0, cfg.MaxDuration)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}

	cancel()
	for range ch {
	}
}

func TestWatcher_WithLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "segrec.json")
	writeFile(t, path, `{"maxDuration": 5}`)

	loader := func() (*Config, error) {
		cfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg.MaxDuration = 8
		return cfg, nil
	}
	w, err := NewWatcher(path, nil, WithLoader(loader))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := w.Watch(ctx)

	writeFile(t, path, `{"maxDuration": 3, "tickIntervalMs": 20}`)

	select {
	case cfg := <-ch:
		require.NotNil(t, cfg)
		assert.Equal(t, 8.0, cfg.MaxDuration, "loader value wins over the file")
		assert.Equal(t, 20, cfg.TickIntervalMs)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}

	cancel()
	for range ch {
	}
}
