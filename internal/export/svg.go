package export

import (
	"fmt"
	"html"
	"strings"
	"unicode"

	"github.com/san-kum/mlscenes/internal/anim"
	"github.com/san-kum/mlscenes/internal/raster"
	"github.com/san-kum/mlscenes/internal/typeset"
)

// FrameToSVG draws the visible mobjects of one frame as an SVG document.
func FrameToSVG(objs []*anim.Mobject, cam raster.Camera, background anim.Color) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, cam.Width, cam.Height, cam.Width, cam.Height, background.Hex()))

	for _, m := range objs {
		if m.Opacity <= 0 || m.Reveal <= 0 {
			continue
		}
		switch m.Kind {
		case anim.KindPath:
			writePath(&sb, m, cam)
		case anim.KindText:
			writeText(&sb, m, cam)
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func pathData(p anim.Path, cam raster.Camera) string {
	var sb strings.Builder
	for i, v := range p.Points {
		x, y := cam.ToPixel(v)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	if p.Closed {
		sb.WriteString(" Z")
	}
	return sb.String()
}

func writePath(sb *strings.Builder, m *anim.Mobject, cam raster.Camera) {
	if m.FillOpacity > 0 {
		for _, p := range m.Paths {
			if !p.Closed || len(p.Points) < 3 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<path fill="%s" fill-opacity="%.3f" stroke="none" d="%s"/>
`, m.FillColor.Hex(), m.FillOpacity*m.Opacity*m.Reveal, pathData(p, cam)))
		}
	}
	if m.StrokeWidth <= 0 {
		return
	}
	for _, p := range m.Paths {
		p = anim.Partial(p, m.Reveal)
		if len(p.Points) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f" stroke-linejoin="round" stroke-linecap="round" d="%s"/>
`, m.StrokeColor.Hex(), m.Opacity, cam.StrokePixels(m.StrokeWidth), pathData(p, cam)))
	}
}

// writeText emits one <text> per line, truncated to the revealed glyphs.
func writeText(sb *strings.Builder, m *anim.Mobject, cam raster.Camera) {
	emPx := m.Em() * cam.PixelsPerUnit()
	box := m.Box()
	left, top := cam.ToPixel(anim.V(box.Min.X, box.Max.Y))
	ascent := typeset.Ascent() * emPx
	lineHeight := typeset.LineHeight(emPx, m.LineSpacing)

	budget := int(m.Reveal*float64(typeset.VisibleCount(m.Text)) + 0.5)
	for i, line := range typeset.Lines(m.Text) {
		var shown []rune
		for _, r := range line {
			if !unicode.IsSpace(r) {
				if budget == 0 {
					break
				}
				budget--
			}
			shown = append(shown, r)
		}
		if len(shown) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="Go, sans-serif" font-size="%.1f" fill="%s" fill-opacity="%.3f" xml:space="preserve">%s</text>
`, left, top+ascent+float64(i)*lineHeight, emPx, m.FillColor.Hex(), m.Opacity, html.EscapeString(string(shown))))
	}
}
