// Package config loads, validates and watches the application settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the persisted application configuration. Field names mirror the
// keys of the JSON file.
type Config struct {
	XCurvature float32 `json:"x_curvature"`
	YCurvature float32 `json:"y_curvature"`
	SwapEyes   bool    `json:"swap_eyes"`
	FlipX      bool    `json:"flip_x"`
	FlipY      bool    `json:"flip_y"`

	// Distance in meters from the viewer to the screen; Scale is the screen
	// width in meters.
	Distance float32 `json:"distance"`
	Scale    float32 `json:"scale"`

	Ambient bool `json:"ambient"`
	// AmbientWidthDivisor divides the source width to get the ambient blur
	// sampling width; larger values blur more.
	AmbientWidthDivisor uint32 `json:"ambient_width_divisor"`
	ScreenWidthDivisor  uint32 `json:"screen_width_divisor"`

	// HistoryDecay is the temporal accumulation weight, clamped to [0,1) at
	// load time.
	HistoryDecay float32 `json:"history_decay"`

	// LegacyProjection selects the direct-halving stereo remap.
	LegacyProjection bool `json:"legacy_projection"`
	FlatScreen       bool `json:"flat_screen"`
	HorizonLocked    bool `json:"horizon_locked"`

	// Source selects the frame loader: "blank" or "pattern".
	Source    string `json:"source"`
	TargetFPS int    `json:"target_fps"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		XCurvature:          0.4,
		YCurvature:          0.08,
		SwapEyes:            true,
		Distance:            20,
		Scale:               40,
		Ambient:             true,
		AmbientWidthDivisor: 4,
		ScreenWidthDivisor:  1,
		HistoryDecay:        0.85,
		HorizonLocked:       true,
		Source:              "blank",
		TargetFPS:           80,
	}
}

// Normalize clamps and backfills values a hand-edited file may have broken.
// The render core never clamps, so everything must be in range here.
func (c *Config) Normalize() {
	if c.HistoryDecay < 0 {
		c.HistoryDecay = 0
	}
	if c.HistoryDecay >= 1 {
		// Exactly 1 freezes the screen on its first frame forever.
		c.HistoryDecay = 0.99
	}
	if c.Distance <= 0 {
		c.Distance = Default().Distance
	}
	if c.Scale <= 0 {
		c.Scale = Default().Scale
	}
	if c.AmbientWidthDivisor == 0 {
		c.AmbientWidthDivisor = Default().AmbientWidthDivisor
	}
	if c.ScreenWidthDivisor == 0 {
		c.ScreenWidthDivisor = 1
	}
	if c.TargetFPS <= 0 {
		c.TargetFPS = Default().TargetFPS
	}
	if c.Source == "" {
		c.Source = Default().Source
	}
}

// DefaultPath is the config location when none is given on the command line.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "vrdeck.json"
	}
	return filepath.Join(dir, "vrdeck", "config.json")
}

// Load reads the file at path. A missing file is not an error: the defaults
// are written there and returned.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			def := Default()
			if saveErr := Save(path, def); saveErr != nil {
				return def, fmt.Errorf("write default config: %w", saveErr)
			}
			return def, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.Normalize()
	return c, nil
}

// Save writes the config as indented JSON, creating the directory as needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
