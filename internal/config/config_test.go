package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.PixelWidth != 1920 || cfg.PixelHeight != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.PixelWidth, cfg.PixelHeight)
	}
	if cfg.FrameWidth != 14.22 || cfg.FrameHeight != 8 {
		t.Errorf("unexpected frame size %.2fx%.2f", cfg.FrameWidth, cfg.FrameHeight)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("low")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.PixelHeight != 480 {
		t.Errorf("expected height 480, got %d", p.PixelHeight)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if p := GetPreset("nonexistent"); p != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestApplyQuality(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ApplyQuality("medium"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if cfg.PixelWidth != 1280 || cfg.FPS != 30 {
		t.Errorf("preset not applied: %+v", cfg)
	}
	if err := cfg.ApplyQuality("ultra"); err == nil {
		t.Error("expected error for unknown quality")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.PixelWidth = 0 }},
		{"negative frame", func(c *Config) { c.FrameHeight = -1 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"bad format", func(c *Config) { c.Format = "avi" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	cfg := DefaultConfig()
	got := cfg.OutputPath("losses", "LossAnimation", "mp4")
	want := filepath.Join("media", "videos", "losses", "1080p30", "LossAnimation.mp4")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	cfg.OutputDir = "regularization1"
	got = cfg.OutputPath("regularization", "RegularizationExplanation", "gif")
	want = filepath.Join("media", "videos", "regularization1", "1080p30", "RegularizationExplanation.gif")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	cfg := DefaultConfig()
	cfg.FPS = 12
	cfg.Format = "gif"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.FPS != 12 || loaded.Format != "gif" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoadAppliesQuality(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		width  int
		height int
		fps    int
	}{
		{"preset only", "quality: low\n", 854, 480, 15},
		{"explicit fps wins", "quality: low\nfps: 24\n", 854, 480, 24},
		{"explicit size wins", "pixel_width: 640\npixel_height: 360\nquality: medium\n", 640, 360, 30},
		{"no quality", "format: gif\n", 1920, 1080, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "render.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if cfg.PixelWidth != tt.width || cfg.PixelHeight != tt.height || cfg.FPS != tt.fps {
				t.Errorf("expected %dx%d@%d, got %dx%d@%d", tt.width, tt.height, tt.fps, cfg.PixelWidth, cfg.PixelHeight, cfg.FPS)
			}
		})
	}
}

func TestLoadUnknownQuality(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	if err := os.WriteFile(path, []byte("quality: ultra\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown quality")
	}
}
