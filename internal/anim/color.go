package anim

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Color is a straight-alpha RGBA colour with components in [0,1].
type Color struct {
	R, G, B, A float64
}

var (
	White  = MustHex("#FFFFFF")
	Black  = MustHex("#000000")
	Gray   = MustHex("#888888")
	Blue   = MustHex("#58C4DD")
	Red    = MustHex("#FC6255")
	RedA   = MustHex("#F7A1A3")
	Green  = MustHex("#83C167")
	Yellow = MustHex("#FFFF00")
)

// Hex parses #RRGGBB or #RRGGBBAA.
func Hex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, errors.Errorf("anim: bad colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, errors.Wrapf(err, "anim: bad colour %q", s)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// NRGBA converts to an image colour with the alpha scaled by opacity.
func (c Color) NRGBA(opacity float64) color.NRGBA {
	clamp := func(f float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, f)) * 255))
	}
	return color.NRGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A * opacity)}
}

func (c Color) Hex() string {
	n := c.NRGBA(1)
	return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
}
