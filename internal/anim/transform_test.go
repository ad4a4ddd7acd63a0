package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformBecomesTarget(t *testing.T) {
	s := NewScene(14.22, 8)
	a := Line(V(0, 0), V(1, 0)).SetColor(Red)
	b := Polyline([]Vec{{0, 1}, {1, 2}, {2, 1}}, Blue)
	s.Add(a)
	s.Play(Transform(a, b))

	p := playAll(t, s, 10)
	assert.True(t, p.Stage().Contains(a))
	assert.False(t, p.Stage().Contains(b))
	require.Len(t, a.Paths, 1)
	assert.Equal(t, b.Paths[0].Points, a.Paths[0].Points)
	assert.Equal(t, Blue, a.StrokeColor)
}

func TestTransformMidwayBlends(t *testing.T) {
	s := NewScene(14.22, 8)
	a := Line(V(0, 0), V(1, 0))
	b := Line(V(0, 2), V(1, 2))
	s.Add(a)
	s.Play(Transform(a, b)).Rate(Linear)

	p, err := NewPlayer(s, 2)
	require.NoError(t, err)
	require.True(t, p.Next())
	assert.InDelta(t, 1.0, a.GetCenter().Y, 1e-9)
}

func TestReplacementTransformSwaps(t *testing.T) {
	s := NewScene(14.22, 8)
	first := Text("Degree: 1", 24)
	before := Dot(V(-1, 0), 0, White)
	after := Dot(V(1, 0), 0, White)
	second := Text("Degree: 2", 24)
	s.Add(before, first, after)
	s.Play(ReplacementTransform(first, second))

	p := playAll(t, s, 10)
	mobs := p.Stage().Mobjects()
	require.Len(t, mobs, 3)
	assert.Same(t, second, mobs[1])
	assert.False(t, p.Stage().Contains(first))
	assert.Equal(t, "Degree: 2", second.Text)
}

func TestTransformGroupsOfDifferentSize(t *testing.T) {
	s := NewScene(14.22, 8)
	a := Group(Line(V(0, 0), V(1, 0)))
	b := Group(Line(V(0, 1), V(1, 1)), Line(V(0, 2), V(1, 2)), Text("x", 24))
	s.Add(a)
	s.Play(Transform(a, b))

	playAll(t, s, 5)
	assert.Len(t, a.Leaves(), 3)
	assert.Equal(t, "x", a.Leaves()[2].Text)
}

func TestMorphTextCrossFades(t *testing.T) {
	a := Text("old", 24)
	b := Text("new", 24).Shift(V(2, 0))
	m := morph(a, b, 0.5)

	require.Equal(t, KindGroup, m.Kind)
	leaves := m.Leaves()
	require.Len(t, leaves, 2)
	assert.InDelta(t, 0.5, leaves[0].Opacity, 1e-9)
	assert.InDelta(t, 0.5, leaves[1].Opacity, 1e-9)
	assert.InDelta(t, 1.0, leaves[0].Center.X, 1e-9)
	assert.InDelta(t, 1.0, leaves[1].Center.X, 1e-9)
}

func TestAxesMapping(t *testing.T) {
	axes := NewAxes(AxesConfig{X: R(0, 10, 1), Y: R(0, 10, 1), XLength: 10, YLength: 10})
	assertVec(t, V(-5, -5), axes.C2P(0, 0))
	assertVec(t, V(5, 5), axes.C2P(10, 10))

	axes.Shift(V(1, 0))
	assertVec(t, V(-4, -5), axes.C2P(0, 0))

	axes.ScaleAbout(0.5, Origin)
	assertVec(t, V(3, 2.5), axes.C2P(10, 10))

	x, y := axes.P2C(axes.C2P(3, 7))
	assert.InDelta(t, 3, x, 1e-9)
	assert.InDelta(t, 7, y, 1e-9)

	assertVec(t, axes.C2P(10, 0), axes.XAxisEnd())
	assertVec(t, axes.C2P(0, 10), axes.YAxisEnd())
}

func TestAxesCrossAtZero(t *testing.T) {
	axes := NewAxes(AxesConfig{X: R(-1, 11, 1), Y: R(-1, 11, 1), Tips: true})
	start := axes.XAxis().Children[0].Start()
	assert.InDelta(t, axes.C2P(0, 0).Y, start.Y, 1e-9)
	assert.Equal(t, KindPath, axes.XAxis().Children[len(axes.XAxis().Children)-1].Kind)
}

func TestAxesPlotSkipsNonFinite(t *testing.T) {
	axes := NewAxes(AxesConfig{X: R(-1, 1, 0.5), Y: R(-1, 1, 0.5)})
	curve := axes.Plot(func(x float64) float64 {
		if x > 0.5 {
			return 1 / (x - x)
		}
		return x
	}, -1, 1, Red)
	for _, p := range curve.Paths[0].Points {
		x, _ := axes.P2C(p)
		assert.LessOrEqual(t, x, 0.5+1e-9)
	}
}
