package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/scene"
	"github.com/san-kum/starfall/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.SimConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got, want := cfg.SimConfig().A, sim.DefaultConfig().A; got != want {
		t.Errorf("body A %+v, want %+v", got, want)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starfall.yaml")
	data := "threshold: 4\nbody_a:\n  position: [-10, 0, 0]\n  velocity: [0.3, 0, 0]\nflash:\n  duration: 500ms\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Threshold != 4 {
		t.Errorf("threshold %f", cfg.Threshold)
	}
	if cfg.BodyA.Position[0] != -10 || cfg.BodyA.Velocity[0] != 0.3 {
		t.Errorf("body A %+v", cfg.BodyA)
	}
	if cfg.Flash.Duration != 500*time.Millisecond {
		t.Errorf("flash duration %v", cfg.Flash.Duration)
	}
	if cfg.G != DefaultG || cfg.Burst.Count != 300 {
		t.Error("unset fields should keep defaults")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("drag: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.Theme = "ice"
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Seed != 99 || got.Theme != "ice" || got.Flash.Duration != time.Second {
		t.Errorf("round trip lost fields: %+v", got)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("rush")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.BodyA.Velocity[0] != 1.2 {
		t.Errorf("expected speed 1.2, got %f", cfg.BodyA.Velocity[0])
	}
}

func TestGetPresetIsCopy(t *testing.T) {
	a := GetPreset("collide")
	a.Burst.Palette[0] = 0
	a.Threshold = 1

	b := GetPreset("collide")
	if b.Burst.Palette[0] == 0 || b.Threshold != DefaultThreshold {
		t.Fatal("preset table was mutated through a returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	want := []string{"collide", "drift", "graze", "rush"}
	got := ListPresets()
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPresetOutcomes(t *testing.T) {
	tests := []struct {
		preset  string
		collide bool
	}{
		{"collide", true},
		{"drift", false},
		{"graze", true},
		{"rush", true},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			cfg := GetPreset(tt.preset)
			res, err := sim.Run(context.Background(), cfg.SimConfig(), dynamo.NewRand(cfg.Seed))
			if err != nil {
				t.Fatal(err)
			}
			if res.Collided != tt.collide {
				t.Errorf("collided = %v, want %v", res.Collided, tt.collide)
			}
		})
	}
}

func TestApplyCamera(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Camera.Z = 50
	cfg.Camera.Zoom = 2
	cam := scene.NewCamera()
	cfg.ApplyCamera(cam)
	if cam.Position.Z != 50 || cam.Zoom != 2 || cam.FOV != scene.DefaultFOV {
		t.Errorf("camera %+v", cam)
	}
}

func TestBackdropDisabled(t *testing.T) {
	cfg := DefaultConfig()
	if b := cfg.BackdropConfig(); b.Stars != 300 || b.Tubular == 0 {
		t.Errorf("enabled backdrop lost its geometry: %+v", b)
	}

	cfg.Backdrop.Enabled = false
	b := cfg.BackdropConfig()
	if b.Stars != 0 || b.Tubular != 0 {
		t.Errorf("disabled backdrop still has geometry: %+v", b)
	}
	if spine := scene.NewBackdrop(b, dynamo.NewRand(1)).Spine(); spine != nil {
		t.Errorf("expected no spine, got %d points", len(spine))
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("seed: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOver(path, GetPreset("rush"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 5 {
		t.Errorf("seed %d", cfg.Seed)
	}
	if cfg.BodyA.Velocity[0] != 1.2 || cfg.Duration != 6 {
		t.Error("preset values lost under the file")
	}
	if Presets["rush"].Seed != DefaultSeed {
		t.Error("LoadOver wrote through to the preset table")
	}
}
