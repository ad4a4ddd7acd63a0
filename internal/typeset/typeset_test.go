package typeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureScalesWithEm(t *testing.T) {
	w1, h1 := Measure("Degree: 3", 1, 1)
	w2, h2 := Measure("Degree: 3", 2, 1)

	assert.Greater(t, w1, 0.0)
	assert.InDelta(t, 2*w1, w2, 1e-9)
	assert.InDelta(t, 2*h1, h2, 1e-9)
}

func TestMeasureMultiline(t *testing.T) {
	_, one := Measure("a", 1, 1)
	_, two := Measure("a\nb", 1, 1)
	_, spaced := Measure("a\nb", 1, 1.5)

	assert.InDelta(t, one+LineHeight(1, 1), two, 1e-9)
	assert.Greater(t, spaced, two)
}

func TestGlyphSpanSkipsWhitespace(t *testing.T) {
	text := "a b"
	s, ok := GlyphSpan(text, 1, 1, 1, 2)
	require.True(t, ok)

	lead := Advance('a') + Advance(' ')
	assert.InDelta(t, lead, s.X0, 1e-9)
	assert.InDelta(t, lead+Advance('b'), s.X1, 1e-9)

	_, ok = GlyphSpan(text, 1, 1, 5, 6)
	assert.False(t, ok)
}

func TestVisibleCount(t *testing.T) {
	assert.Equal(t, 0, VisibleCount(" \n "))
	assert.Equal(t, 25, VisibleCount("Lreg(θ) = L(θ) + λ · Penalty(θ)"))
}

func TestFaceCached(t *testing.T) {
	faces := NewFaces()
	a, err := faces.Face(24)
	require.NoError(t, err)
	b, err := faces.Face(24.01)
	require.NoError(t, err)
	assert.Same(t, a, b)

	other, err := NewFaces().Face(24)
	require.NoError(t, err)
	assert.NotSame(t, a, other)
}
