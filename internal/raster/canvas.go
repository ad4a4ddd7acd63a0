package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/san-kum/mlscenes/internal/anim"
	"github.com/san-kum/mlscenes/internal/typeset"
)

// Canvas rasterizes mobjects into an RGBA frame. Each shape is accumulated
// into an alpha mask first so overlapping stroke pieces do not double blend.
type Canvas struct {
	cam   Camera
	img   *image.RGBA
	mask  *image.Alpha
	dirty image.Rectangle
	z     *vector.Rasterizer
	bg    *image.Uniform
	faces *typeset.Faces
}

func NewCanvas(cam Camera, background anim.Color) *Canvas {
	bounds := image.Rect(0, 0, cam.Width, cam.Height)
	return &Canvas{
		cam:   cam,
		img:   image.NewRGBA(bounds),
		mask:  image.NewAlpha(bounds),
		z:     vector.NewRasterizer(0, 0),
		bg:    image.NewUniform(background.NRGBA(1)),
		faces: typeset.NewFaces(),
	}
}

func (c *Canvas) Image() *image.RGBA { return c.img }
func (c *Canvas) Camera() Camera     { return c.cam }

// Draw clears the frame and paints objs in order.
func (c *Canvas) Draw(objs []*anim.Mobject) error {
	draw.Draw(c.img, c.img.Bounds(), c.bg, image.Point{}, draw.Src)
	for _, m := range objs {
		var err error
		switch m.Kind {
		case anim.KindPath:
			c.drawPath(m)
		case anim.KindText:
			err = c.drawText(m)
		}
		if err != nil {
			return errors.Wrapf(err, "raster: draw %q", m.Text)
		}
	}
	return nil
}

func (c *Canvas) drawPath(m *anim.Mobject) {
	if m.Opacity <= 0 || m.Reveal <= 0 {
		return
	}
	if m.FillOpacity > 0 {
		for _, p := range m.Paths {
			if p.Closed && len(p.Points) > 2 {
				c.fillPolygon(c.pixels(p.Points))
			}
		}
		c.composite(m.FillColor.NRGBA(m.FillOpacity * m.Opacity * m.Reveal))
	}
	if m.StrokeWidth > 0 {
		hw := c.cam.StrokePixels(m.StrokeWidth) / 2
		for _, p := range m.Paths {
			c.strokePath(anim.Partial(p, m.Reveal), hw)
		}
		c.composite(m.StrokeColor.NRGBA(m.Opacity))
	}
}

type pt struct{ x, y float64 }

func (c *Canvas) pixels(ps []anim.Vec) []pt {
	out := make([]pt, len(ps))
	for i, p := range ps {
		out[i].x, out[i].y = c.cam.ToPixel(p)
	}
	return out
}

func (c *Canvas) strokePath(p anim.Path, hw float64) {
	pts := c.pixels(p.Points)
	if p.Closed && len(pts) > 2 {
		pts = append(pts, pts[0])
	}
	if len(pts) == 0 {
		return
	}
	joins := hw >= 1
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		dx, dy := b.x-a.x, b.y-a.y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		c.fillPolygon([]pt{
			{a.x + nx, a.y + ny},
			{b.x + nx, b.y + ny},
			{b.x - nx, b.y - ny},
			{a.x - nx, a.y - ny},
		})
	}
	if joins {
		for _, q := range pts {
			c.fillPolygon(disc(q, hw))
		}
	}
}

func disc(center pt, r float64) []pt {
	n := 12
	if r > 6 {
		n = 24
	}
	out := make([]pt, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = pt{center.x + r*math.Cos(a), center.y + r*math.Sin(a)}
	}
	return out
}

// fillPolygon accumulates a polygon into the mask, rasterizing only its
// bounding box.
func (c *Canvas) fillPolygon(poly []pt) {
	if len(poly) < 3 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range poly {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	r := image.Rect(
		int(math.Floor(minX))-1, int(math.Floor(minY))-1,
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	).Intersect(c.mask.Bounds())
	if r.Empty() {
		return
	}

	local := make([]pt, len(poly))
	for i, p := range poly {
		local[i] = pt{p.x - float64(r.Min.X), p.y - float64(r.Min.Y)}
	}
	local = clipPolygon(local, float64(r.Dx()), float64(r.Dy()))
	if len(local) < 3 {
		return
	}

	c.z.Reset(r.Dx(), r.Dy())
	c.z.DrawOp = draw.Over
	c.z.MoveTo(float32(local[0].x), float32(local[0].y))
	for _, p := range local[1:] {
		c.z.LineTo(float32(p.x), float32(p.y))
	}
	c.z.ClosePath()
	c.z.Draw(c.mask, r, image.Opaque, image.Point{})
	c.dirty = c.dirty.Union(r)
}

// composite paints the accumulated mask in col and clears it.
func (c *Canvas) composite(col color.NRGBA) {
	if c.dirty.Empty() {
		return
	}
	if col.A > 0 {
		draw.DrawMask(c.img, c.dirty, image.NewUniform(col), image.Point{}, c.mask, c.dirty.Min, draw.Over)
	}
	for y := c.dirty.Min.Y; y < c.dirty.Max.Y; y++ {
		row := c.mask.Pix[c.mask.PixOffset(c.dirty.Min.X, y):c.mask.PixOffset(c.dirty.Max.X, y)]
		clear(row)
	}
	c.dirty = image.Rectangle{}
}

// clipPolygon clips to [0,w]x[0,h] (Sutherland-Hodgman).
func clipPolygon(poly []pt, w, h float64) []pt {
	edges := []struct {
		inside func(pt) bool
		cross  func(a, b pt) pt
	}{
		{func(p pt) bool { return p.x >= 0 }, func(a, b pt) pt { return atX(a, b, 0) }},
		{func(p pt) bool { return p.x <= w }, func(a, b pt) pt { return atX(a, b, w) }},
		{func(p pt) bool { return p.y >= 0 }, func(a, b pt) pt { return atY(a, b, 0) }},
		{func(p pt) bool { return p.y <= h }, func(a, b pt) pt { return atY(a, b, h) }},
	}
	out := poly
	for _, e := range edges {
		if len(out) == 0 {
			break
		}
		in := out
		out = nil
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur) && e.inside(prev):
				out = append(out, cur)
			case e.inside(cur):
				out = append(out, e.cross(prev, cur), cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

func atX(a, b pt, x float64) pt {
	t := (x - a.x) / (b.x - a.x)
	return pt{x, a.y + t*(b.y-a.y)}
}

func atY(a, b pt, y float64) pt {
	t := (y - a.y) / (b.y - a.y)
	return pt{a.x + t*(b.x-a.x), y}
}

func (c *Canvas) drawText(m *anim.Mobject) error {
	if m.Opacity <= 0 || m.Reveal <= 0 || m.Text == "" {
		return nil
	}
	ppu := c.cam.PixelsPerUnit()
	emPx := m.Em() * ppu
	face, err := c.faces.Face(emPx)
	if err != nil {
		return err
	}
	box := m.Box()
	left, top := c.cam.ToPixel(anim.V(box.Min.X, box.Max.Y))
	ascent := typeset.Ascent() * emPx
	lineHeight := typeset.LineHeight(emPx, m.LineSpacing)

	shown := m.Reveal * float64(typeset.VisibleCount(m.Text))
	idx := 0
	for i, line := range typeset.Lines(m.Text) {
		x := left
		baseline := top + ascent + float64(i)*lineHeight
		for _, r := range line {
			adv := typeset.Advance(r) * emPx
			if !unicode.IsSpace(r) {
				f := math.Max(0, math.Min(1, shown-float64(idx)))
				idx++
				if f > 0 {
					c.glyph(face, r, x, baseline, m.FillColor.NRGBA(m.Opacity*f))
				}
			}
			x += adv
		}
	}
	return nil
}

type glyphFace interface {
	Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool)
}

func (c *Canvas) glyph(face glyphFace, r rune, x, y float64, col color.NRGBA) {
	dot := fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))}
	dr, mask, mp, _, ok := face.Glyph(dot, r)
	if !ok {
		return
	}
	draw.DrawMask(c.img, dr, image.NewUniform(col), image.Point{}, mask, mp, draw.Over)
}
