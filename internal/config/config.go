package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPixelWidth  = 1920
	DefaultPixelHeight = 1080
	DefaultFrameWidth  = 14.22
	DefaultFrameHeight = 8.0
	DefaultFPS         = 30
	DefaultMediaDir    = "media"
	DefaultDataDir     = ".mlscenes"
	DefaultFormat      = "mp4"
	DefaultBackground  = "#000000"
)

var formats = map[string]bool{"mp4": true, "gif": true, "png": true}

// Config holds everything a render needs besides the scene itself.
type Config struct {
	PixelWidth  int     `yaml:"pixel_width"`
	PixelHeight int     `yaml:"pixel_height"`
	FrameWidth  float64 `yaml:"frame_width"`
	FrameHeight float64 `yaml:"frame_height"`
	FPS         int     `yaml:"fps"`
	Background  string  `yaml:"background"`
	MediaDir    string  `yaml:"media_dir"`
	OutputDir   string  `yaml:"output_dir"`
	Format      string  `yaml:"format"`
	Quality     string  `yaml:"quality"`
	DataDir     string  `yaml:"data_dir"`
	LogLevel    string  `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		PixelWidth:  DefaultPixelWidth,
		PixelHeight: DefaultPixelHeight,
		FrameWidth:  DefaultFrameWidth,
		FrameHeight: DefaultFrameHeight,
		FPS:         DefaultFPS,
		Background:  DefaultBackground,
		MediaDir:    DefaultMediaDir,
		Format:      DefaultFormat,
		Quality:     "production",
		DataDir:     DefaultDataDir,
		LogLevel:    "info",
	}
}

// Load overlays a YAML file on the defaults. A quality key applies its
// preset before explicit pixel_width, pixel_height and fps keys.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if cfg.Quality == "" {
		return cfg, nil
	}
	// The preset sets size and fps; keys given explicitly in the file win.
	if err := cfg.ApplyQuality(cfg.Quality); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a copy so scenes can override fields without touching the base.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	if c.PixelWidth <= 0 || c.PixelHeight <= 0 {
		return errors.Errorf("pixel size must be positive, got %dx%d", c.PixelWidth, c.PixelHeight)
	}
	if c.FrameWidth <= 0 || c.FrameHeight <= 0 {
		return errors.Errorf("frame size must be positive, got %.2fx%.2f", c.FrameWidth, c.FrameHeight)
	}
	if c.FPS <= 0 {
		return errors.Errorf("fps must be positive, got %d", c.FPS)
	}
	if !formats[c.Format] {
		return errors.Errorf("unknown format %q (want mp4, gif or png)", c.Format)
	}
	return nil
}

// QualityLabel names the output directory the way rendered media is usually
// grouped, e.g. 1080p30.
func (c *Config) QualityLabel() string {
	return fmt.Sprintf("%dp%d", c.PixelHeight, c.FPS)
}

// OutputPath is <media>/videos/<dir>/<quality>/<class>.<ext>. OutputDir, when
// set, replaces the per-scene directory.
func (c *Config) OutputPath(sceneDir, class, ext string) string {
	dir := sceneDir
	if c.OutputDir != "" {
		dir = c.OutputDir
	}
	return filepath.Join(c.MediaDir, "videos", dir, c.QualityLabel(), class+"."+ext)
}
