package config

import (
	"sort"

	"github.com/pkg/errors"
)

// Preset is a render quality: pixel size and frame rate.
type Preset struct {
	PixelWidth  int
	PixelHeight int
	FPS         int
}

var Presets = map[string]Preset{
	"low":        {PixelWidth: 854, PixelHeight: 480, FPS: 15},
	"medium":     {PixelWidth: 1280, PixelHeight: 720, FPS: 30},
	"high":       {PixelWidth: 1920, PixelHeight: 1080, FPS: 60},
	"production": {PixelWidth: 1920, PixelHeight: 1080, FPS: 30},
	"fourk":      {PixelWidth: 3840, PixelHeight: 2160, FPS: 60},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyQuality overwrites pixel size and fps with the named preset.
func (c *Config) ApplyQuality(name string) error {
	p := GetPreset(name)
	if p == nil {
		return errors.Errorf("unknown quality: %s (available: %v)", name, ListPresets())
	}
	c.Quality = name
	c.PixelWidth = p.PixelWidth
	c.PixelHeight = p.PixelHeight
	c.FPS = p.FPS
	return nil
}
