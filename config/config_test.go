package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	vrdeck "github.com/vrdeck/vrdeck"
)

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("defaults should be persisted: %v", err)
	}
}

func TestLoadMergesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"x_curvature": 0.2, "swap_eyes": false}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.XCurvature != 0.2 {
		t.Errorf("x_curvature = %f; want 0.2", cfg.XCurvature)
	}
	if cfg.SwapEyes {
		t.Error("swap_eyes should be overridden to false")
	}
	// Unset keys keep their defaults.
	if cfg.YCurvature != Default().YCurvature {
		t.Errorf("y_curvature = %f; want default", cfg.YCurvature)
	}
	if cfg.TargetFPS != 80 {
		t.Errorf("target_fps = %d; want 80", cfg.TargetFPS)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"x_curvature": `), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed config should fail to load")
	}
}

func TestNormalizeClampsHistoryDecay(t *testing.T) {
	c := Config{HistoryDecay: 1.5}
	c.Normalize()
	if c.HistoryDecay >= 1 {
		t.Errorf("history_decay = %f; must stay below 1", c.HistoryDecay)
	}

	c = Config{HistoryDecay: -0.2}
	c.Normalize()
	if c.HistoryDecay != 0 {
		t.Errorf("history_decay = %f; want 0", c.HistoryDecay)
	}
}

func TestNormalizeBackfillsDegenerateValues(t *testing.T) {
	var c Config
	c.Normalize()
	if c.Distance <= 0 || c.Scale <= 0 {
		t.Errorf("normalize left degenerate geometry: %+v", c)
	}
	if c.AmbientWidthDivisor == 0 || c.ScreenWidthDivisor == 0 {
		t.Errorf("normalize left zero divisors: %+v", c)
	}
	if c.Source == "" || c.TargetFPS <= 0 {
		t.Errorf("normalize left empty runtime fields: %+v", c)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	want := Default()
	want.FlipX = true
	want.Scale = 55

	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSaveWritesSnakeCaseKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := Save(path, Default()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"x_curvature", "swap_eyes", "history_decay", "legacy_projection"} {
		if _, ok := keys[key]; !ok {
			t.Errorf("missing key %q in saved config", key)
		}
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := Save(path, Default()); err != nil {
		t.Fatal(err)
	}

	changes := make(chan Config, 1)
	stop, err := Watch(path, vrdeck.NewNopLogger(), func(c Config) {
		select {
		case changes <- c:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer stop()

	updated := Default()
	updated.XCurvature = 0.7
	if err := Save(path, updated); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changes:
		if got.XCurvature != 0.7 {
			t.Errorf("reloaded x_curvature = %f; want 0.7", got.XCurvature)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
}
