// Package scenes holds the explainer scripts and the registry the CLI and TUI
// pick them from.
package scenes

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/san-kum/mlscenes/internal/anim"
	"github.com/san-kum/mlscenes/internal/config"
)

var ErrUnknownScene = errors.New("unknown scene")

// Definition describes one renderable scene.
type Definition struct {
	Name        string
	Class       string
	Description string
	// Dir is the per-scene directory under <media>/videos.
	Dir string
	// Configure applies scene-specific settings before command-line overrides.
	Configure func(*config.Config)
	Construct func(*anim.Scene) error
}

// Build records the scene's timeline on a fresh scene sized for cfg.
func (d *Definition) Build(cfg *config.Config) (*anim.Scene, error) {
	s := anim.NewScene(cfg.FrameWidth, cfg.FrameHeight)
	if err := d.Construct(s); err != nil {
		return nil, errors.Wrapf(err, "construct %s", d.Class)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "construct %s", d.Class)
	}
	return s, nil
}

// Apply returns a copy of cfg with the scene's own settings applied.
func (d *Definition) Apply(cfg *config.Config) *config.Config {
	c := cfg.Clone()
	if d.Configure != nil {
		d.Configure(c)
	}
	return c
}

type Registry struct {
	scenes map[string]*Definition
}

func NewRegistry() *Registry {
	r := &Registry{scenes: make(map[string]*Definition)}

	r.register(&Definition{
		Name:        "overfitting",
		Class:       "OverfittingAnimation",
		Description: "Polynomial fits of degree 1 to 12 on noisy sine data",
		Dir:         "overfitting",
		Configure:   fullHD,
		Construct:   OverfittingAnimation,
	})
	r.register(&Definition{
		Name:        "overfitting-demo",
		Class:       "OverfittingDemo",
		Description: "Polynomial degree 1 to 9 on a noisy line",
		Dir:         "overfitting_demo",
		Construct:   OverfittingDemo,
	})
	r.register(&Definition{
		Name:        "losses",
		Class:       "LossAnimation",
		Description: "Training and validation loss over epochs",
		Dir:         "losses",
		Configure: func(c *config.Config) {
			fullHD(c)
			c.MediaDir = "output"
		},
		Construct: LossAnimation,
	})
	r.register(&Definition{
		Name:        "regularization-demo",
		Class:       "RegularizationDemo",
		Description: "Overfit, L2 and L1 curves transformed into one another",
		Dir:         "regularization_demo",
		Construct:   RegularizationDemo,
	})
	r.register(&Definition{
		Name:        "regularization",
		Class:       "RegularizationExplanation",
		Description: "Step-by-step explanation of L1 and L2 regularization",
		Dir:         "regularization",
		Configure: func(c *config.Config) {
			c.OutputDir = "regularization1"
		},
		Construct: RegularizationExplanation,
	})

	return r
}

func fullHD(c *config.Config) {
	c.PixelWidth, c.PixelHeight = 1920, 1080
	c.FrameWidth, c.FrameHeight = config.DefaultFrameWidth, config.DefaultFrameHeight
}

func (r *Registry) register(d *Definition) {
	r.scenes[d.Name] = d
}

// Get looks a scene up by name or class.
func (r *Registry) Get(name string) (*Definition, error) {
	if d, ok := r.scenes[name]; ok {
		return d, nil
	}
	for _, d := range r.scenes {
		if d.Class == name {
			return d, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownScene, "%q", name)
}

// List returns all scenes sorted by name.
func (r *Registry) List() []*Definition {
	out := make([]*Definition, 0, len(r.scenes))
	for _, d := range r.scenes {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scenes))
	for _, d := range r.List() {
		names = append(names, d.Name)
	}
	return names
}
