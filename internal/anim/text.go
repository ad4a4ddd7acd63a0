package anim

import "github.com/san-kum/mlscenes/internal/typeset"

// Text is a centred text block. Lines are separated by '\n'.
func Text(s string, fontSize float64) *Mobject {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	m := newMobject(KindText)
	m.Text = s
	m.FontSize = fontSize
	m.LineSpacing = 1
	return m
}

// ColoredText is Text with its colour set.
func ColoredText(s string, fontSize float64, c Color) *Mobject {
	return Text(s, fontSize).SetColor(c)
}

// WithLineSpacing sets the line spacing multiplier.
func (m *Mobject) WithLineSpacing(spacing float64) *Mobject {
	m.LineSpacing = spacing
	return m
}

func measureText(m *Mobject) (w, h float64) {
	return typeset.Measure(m.Text, m.Em(), m.LineSpacing)
}

// GlyphBox is the box around visible glyphs [i, j) of a text mobject, counting
// only non-whitespace characters. It falls back to the whole box.
func (m *Mobject) GlyphBox(i, j int) Box {
	if m.Kind != KindText {
		return m.Box()
	}
	span, ok := typeset.GlyphSpan(m.Text, m.Em(), m.LineSpacing, i, j)
	if !ok {
		return m.Box()
	}
	b := m.Box()
	left, top := b.Min.X, b.Max.Y
	return NewBox(
		Vec{left + span.X0, top - span.Y1},
		Vec{left + span.X1, top - span.Y0},
	)
}
