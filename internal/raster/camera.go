package raster

import (
	"github.com/san-kum/mlscenes/internal/anim"
)

// Camera maps frame units (origin centre, y up) to pixels (origin top-left,
// y down).
type Camera struct {
	Width, Height           int
	FrameWidth, FrameHeight float64
}

func NewCamera(width, height int, frameWidth, frameHeight float64) Camera {
	return Camera{Width: width, Height: height, FrameWidth: frameWidth, FrameHeight: frameHeight}
}

// PixelsPerUnit is the vertical scale; horizontal follows from the frame width.
func (c Camera) PixelsPerUnit() float64 {
	return float64(c.Height) / c.FrameHeight
}

func (c Camera) ToPixel(p anim.Vec) (x, y float64) {
	x = (p.X + c.FrameWidth/2) * float64(c.Width) / c.FrameWidth
	y = (c.FrameHeight/2 - p.Y) * float64(c.Height) / c.FrameHeight
	return x, y
}

// StrokePixels converts a stroke width in pixels at a 720-row reference to
// this resolution; width 4 is 6px at 1080 rows.
func (c Camera) StrokePixels(width float64) float64 {
	return width * float64(c.Height) / 720
}
