package scenes

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mlscenes/internal/anim"
	"github.com/san-kum/mlscenes/internal/config"
)

func build(t *testing.T, name string) *anim.Scene {
	t.Helper()
	def, err := NewRegistry().Get(name)
	require.NoError(t, err)
	s, err := def.Build(config.DefaultConfig())
	require.NoError(t, err)
	return s
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{
		"losses", "overfitting", "overfitting-demo", "regularization", "regularization-demo",
	}, r.Names())

	def, err := r.Get("LossAnimation")
	require.NoError(t, err)
	assert.Equal(t, "losses", def.Name)

	_, err = r.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownScene)
}

func TestSceneConfig(t *testing.T) {
	r := NewRegistry()
	base := config.DefaultConfig()
	require.NoError(t, base.ApplyQuality("low"))

	losses, _ := r.Get("losses")
	c := losses.Apply(base)
	assert.Equal(t, "output", c.MediaDir)
	assert.Equal(t, 1080, c.PixelHeight)
	assert.Equal(t, "media", base.MediaDir)

	reg, _ := r.Get("regularization")
	c = reg.Apply(base)
	assert.Equal(t, "regularization1", c.OutputDir)
	assert.Contains(t, c.OutputPath(reg.Dir, reg.Class, "mp4"), "regularization1")
}

func TestDurations(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
	}{
		{"overfitting", 15.5},
		{"overfitting-demo", 24},
		{"losses", 12},
		{"regularization-demo", 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.duration, build(t, tt.name).Duration(), 1e-9)
		})
	}
}

func TestOverfittingSeries(t *testing.T) {
	s := build(t, "overfitting")
	series := s.Series()
	require.Len(t, series, 1+OverfittingMaxDegree+1)
	assert.Equal(t, "data", series[0].Name)
	assert.Len(t, series[0].X, OverfittingPoints)

	mse := series[len(series)-1]
	assert.Equal(t, "training mse", mse.Name)
	require.Len(t, mse.Y, OverfittingMaxDegree)
	assert.Less(t, mse.Y[len(mse.Y)-1], mse.Y[0])
}

func TestScenesAreReproducible(t *testing.T) {
	for _, name := range NewRegistry().Names() {
		t.Run(name, func(t *testing.T) {
			a, b := build(t, name).Series(), build(t, name).Series()
			require.NotEmpty(t, a)
			assert.Equal(t, a, b)
		})
	}
}

func TestScenesPlayThrough(t *testing.T) {
	for _, name := range NewRegistry().Names() {
		t.Run(name, func(t *testing.T) {
			s := build(t, name)
			p, err := anim.NewPlayer(s, 4)
			require.NoError(t, err)
			for p.Next() {
			}
			assert.Equal(t, s.TotalFrames(4), p.Frame())
		})
	}
}

func TestRegularizationEndsEmpty(t *testing.T) {
	s := build(t, "regularization")
	p, err := anim.NewPlayer(s, 2)
	require.NoError(t, err)
	for p.Next() {
	}
	assert.Empty(t, p.Visible())
}

func TestLambdaHighlight(t *testing.T) {
	eq := anim.Text("Lreg(θ) = L(θ) + λ · Penalty(θ)", 32)
	whole := eq.Box()
	b := eq.GlyphBox(lambdaGlyph, lambdaGlyph+1)
	assert.Greater(t, b.Min.X, whole.Min.X+whole.Width()/3)
	assert.Less(t, b.Max.X, whole.Max.X-whole.Width()/3)
}

func TestLossCurves(t *testing.T) {
	assert.InDelta(t, 0.85, TrainingLoss(0), 1e-12)
	assert.InDelta(t, 0.9, ValidationLoss(0), 1e-12)
	assert.Greater(t, ValidationLoss(100), ValidationLoss(60))
	assert.Less(t, TrainingLoss(100), TrainingLoss(60))
}

// fittedCurve returns the stroke colour of the one long open curve on stage.
func fittedCurve(t *testing.T, p *anim.Player) anim.Color {
	t.Helper()
	var curves []*anim.Mobject
	for _, m := range p.Visible() {
		if m.Kind != anim.KindPath || m.StrokeWidth <= 0 || len(m.Paths) == 0 {
			continue
		}
		if len(m.Paths[0].Points) >= 50 && !m.Paths[0].Closed {
			curves = append(curves, m)
		}
	}
	require.Len(t, curves, 1)
	return curves[0].StrokeColor
}

func TestOverfittingDemoCurveColours(t *testing.T) {
	// Each degree from 2 on is a 1s transform then a 1s wait, starting at 5s.
	tests := []struct {
		degree int
		at     float64
		want   anim.Color
	}{
		{1, 4.5, anim.Yellow},
		{2, 6.5, anim.Green},
		{5, 12.5, anim.Green},
		{6, 14.5, anim.Red},
		{9, 20.5, anim.Red},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("degree %d", tt.degree), func(t *testing.T) {
			p, err := anim.NewPlayer(build(t, "overfitting-demo"), 10)
			require.NoError(t, err)
			require.True(t, p.Seek(tt.at))
			assert.Equal(t, tt.want, fittedCurve(t, p))

			var label string
			for _, m := range p.Visible() {
				if m.Kind == anim.KindText && strings.HasPrefix(m.Text, "Polynomial Degree") {
					label = m.Text
				}
			}
			assert.Equal(t, fmt.Sprintf("Polynomial Degree: %d", tt.degree), label)
		})
	}
}
