// Package typeset measures and rasterizes text with the Go fonts.
//
// Layout and rendering must agree on text extents, so both go through the
// metrics here. Sizes are in "em" units chosen by the caller; measurements
// come back in the same units.
package typeset

import (
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/kamstrup/intmap"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const refSize = 64.0

var (
	loadOnce sync.Once
	loadErr  error
	regular  *opentype.Font
	ref      font.Face

	// mu guards ref, whose glyph buffers are not safe for concurrent use.
	mu sync.Mutex
)

func load() error {
	loadOnce.Do(func() {
		regular, loadErr = opentype.Parse(goregular.TTF)
		if loadErr != nil {
			loadErr = errors.Wrap(loadErr, "typeset: parse go regular")
			return
		}
		ref, loadErr = newFace(refSize)
	})
	return loadErr
}

func newFace(px float64) (font.Face, error) {
	face, err := opentype.NewFace(regular, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, errors.Wrapf(err, "typeset: face at %.2fpx", px)
}

// Faces caches rasterizing faces by pixel size, rounded to a quarter pixel.
// A Faces must not be shared between goroutines.
type Faces struct {
	m *intmap.Map[int, font.Face]
}

func NewFaces() *Faces {
	return &Faces{m: intmap.New[int, font.Face](16)}
}

func (c *Faces) Face(px float64) (font.Face, error) {
	if err := load(); err != nil {
		return nil, err
	}
	key := int(math.Round(px * 4))
	if f, ok := c.m.Get(key); ok {
		return f, nil
	}
	f, err := newFace(float64(key) / 4)
	if err != nil {
		return nil, err
	}
	c.m.Put(key, f)
	return f, nil
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

// Ascent and Descent are per em.
func Ascent() float64 {
	if load() != nil {
		return 0.8
	}
	mu.Lock()
	defer mu.Unlock()
	return toFloat(ref.Metrics().Ascent) / refSize
}

func Descent() float64 {
	if load() != nil {
		return 0.2
	}
	mu.Lock()
	defer mu.Unlock()
	return toFloat(ref.Metrics().Descent) / refSize
}

// LineHeight is the baseline-to-baseline distance for a given em and spacing
// multiplier. Non-positive spacing means 1.
func LineHeight(em, spacing float64) float64 {
	if spacing <= 0 {
		spacing = 1
	}
	return em * 1.25 * spacing
}

// Advance is the horizontal advance of one rune per em.
func Advance(r rune) float64 {
	if load() != nil {
		return 0.5
	}
	mu.Lock()
	defer mu.Unlock()
	adv, ok := ref.GlyphAdvance(r)
	if !ok {
		adv, _ = ref.GlyphAdvance('?')
	}
	return toFloat(adv) / refSize
}

// Lines splits text into display lines.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

func lineWidth(line string, em float64) float64 {
	w := 0.0
	for _, r := range line {
		w += Advance(r) * em
	}
	return w
}

// Measure returns the width and height of text set at em.
func Measure(text string, em, spacing float64) (w, h float64) {
	lines := Lines(text)
	for _, line := range lines {
		w = math.Max(w, lineWidth(line, em))
	}
	h = float64(len(lines)-1)*LineHeight(em, spacing) + (Ascent()+Descent())*em
	return w, h
}

// Span is a rectangle relative to the top-left of a text block, y growing down.
type Span struct {
	X0, Y0, X1, Y1 float64
}

// GlyphSpan returns the extent of visible glyphs [i, j). Whitespace is not
// counted when indexing. ok is false when the range selects nothing.
func GlyphSpan(text string, em, spacing float64, i, j int) (Span, bool) {
	var s Span
	found := false
	idx := 0
	for n, line := range Lines(text) {
		top := float64(n) * LineHeight(em, spacing)
		bottom := top + (Ascent()+Descent())*em
		x := 0.0
		for _, r := range line {
			adv := Advance(r) * em
			if !unicode.IsSpace(r) {
				if idx >= i && idx < j {
					if !found {
						s = Span{X0: x, Y0: top, X1: x + adv, Y1: bottom}
						found = true
					} else {
						s.X0 = math.Min(s.X0, x)
						s.Y0 = math.Min(s.Y0, top)
						s.X1 = math.Max(s.X1, x+adv)
						s.Y1 = math.Max(s.Y1, bottom)
					}
				}
				idx++
			}
			x += adv
		}
	}
	return s, found
}

// VisibleCount is the number of non-whitespace runes in text.
func VisibleCount(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
