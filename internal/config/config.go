package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config represents the segrec configuration file schema.
type Config struct {
	MaxDuration     float64     `json:"maxDuration" mapstructure:"maxDuration"`
	InitialSegments []float64   `json:"initialSegments" mapstructure:"initialSegments"`
	TickIntervalMs  int         `json:"tickIntervalMs" mapstructure:"tickIntervalMs"`
	Blink           BlinkConfig `json:"blink" mapstructure:"blink"`
	Style           StyleConfig `json:"style" mapstructure:"style"`
}

// BlinkConfig controls the paused-segment separator blink.
type BlinkConfig struct {
	DurationMs int `json:"durationMs" mapstructure:"durationMs"`
}

// StyleConfig holds the cosmetic settings passed through to the segment bar.
type StyleConfig struct {
	SegmentColor   string `json:"segmentColor" mapstructure:"segmentColor"`
	SeparatorColor string `json:"separatorColor" mapstructure:"separatorColor"`
	TrackColor     string `json:"trackColor" mapstructure:"trackColor"`
	SeparatorWidth int    `json:"separatorWidth" mapstructure:"separatorWidth"`
	BarWidth       int    `json:"barWidth" mapstructure:"barWidth"`
}

// TickInterval returns the recording tick as a time.Duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// BlinkDuration returns a full blink cycle as a time.Duration.
func (c *Config) BlinkDuration() time.Duration {
	return time.Duration(c.Blink.DurationMs) * time.Millisecond
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxDuration:     5.0,
		InitialSegments: []float64{},
		TickIntervalMs:  100,
		Blink:           BlinkConfig{DurationMs: 2000},
		Style: StyleConfig{
			SegmentColor:   "#00fdff",
			SeparatorColor: "#ffffff",
			TrackColor:     "#3a3f4b",
			SeparatorWidth: 1,
			BarWidth:       0,
		},
	}
}

// SetDefaults registers the built-in configuration on v so every key
// resolves even without a config file.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("maxDuration", d.MaxDuration)
	v.SetDefault("initialSegments", d.InitialSegments)
	v.SetDefault("tickIntervalMs", d.TickIntervalMs)
	v.SetDefault("blink.durationMs", d.Blink.DurationMs)
	v.SetDefault("style.segmentColor", d.Style.SegmentColor)
	v.SetDefault("style.separatorColor", d.Style.SeparatorColor)
	v.SetDefault("style.trackColor", d.Style.TrackColor)
	v.SetDefault("style.separatorWidth", d.Style.SeparatorWidth)
	v.SetDefault("style.barWidth", d.Style.BarWidth)
}

// NewViper returns a viper instance with segrec defaults and SEGREC_*
// environment overrides (SEGREC_MAXDURATION, SEGREC_STYLE_BARWIDTH, ...).
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("SEGREC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// singleton holds the last loaded config and the file it came from.
var (
	globalCfg  *Config
	globalPath string
	mu         sync.RWMutex
)

// Load decodes the configuration held by v and caches it so that Get()
// returns it. v is expected to have read its config file already, if any.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	mu.Lock()
	globalCfg = &cfg
	globalPath = v.ConfigFileUsed()
	mu.Unlock()

	return &cfg, nil
}

// LoadFile reads the config file at path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	v := NewViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Load(v)
}

// Get returns the cached config, or the defaults if nothing was loaded.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()

	if globalCfg == nil {
		return Default()
	}
	return globalCfg
}

// Path returns the file the cached config was read from, if any.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return globalPath
}

// Save writes cfg as indented JSON to path.
func Save(cfg *Config, path string) error {
	if path == "" {
		return fmt.Errorf("cannot save: no config path")
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	mu.Lock()
	globalCfg = cfg
	globalPath = path
	mu.Unlock()

	return nil
}
