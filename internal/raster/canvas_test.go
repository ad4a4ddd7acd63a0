package raster

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mlscenes/internal/anim"
)

func testCanvas() *Canvas {
	return NewCanvas(NewCamera(160, 90, 16, 9), anim.Black)
}

func TestCameraMapping(t *testing.T) {
	cam := NewCamera(1920, 1080, 14.22, 8)
	x, y := cam.ToPixel(anim.Origin)
	assert.InDelta(t, 960, x, 1e-9)
	assert.InDelta(t, 540, y, 1e-9)

	x, y = cam.ToPixel(anim.V(-7.11, 4))
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)

	assert.InDelta(t, 135, cam.PixelsPerUnit(), 1e-9)
	assert.InDelta(t, 6, cam.StrokePixels(4), 1e-9)
}

func TestDrawBackground(t *testing.T) {
	c := NewCanvas(NewCamera(8, 4, 16, 9), anim.Blue)
	require.NoError(t, c.Draw(nil))
	assert.Equal(t, color.RGBA{0x58, 0xC4, 0xDD, 0xFF}, c.Image().RGBAAt(3, 2))
}

func TestDrawFilledDot(t *testing.T) {
	c := testCanvas()
	d := anim.Dot(anim.Origin, 1, anim.White)
	require.NoError(t, c.Draw([]*anim.Mobject{d}))

	center := c.Image().RGBAAt(80, 45)
	assert.Equal(t, uint8(0xFF), center.R)
	corner := c.Image().RGBAAt(2, 2)
	assert.Equal(t, uint8(0), corner.R)
}

func TestStrokeDoesNotDoubleBlend(t *testing.T) {
	c := testCanvas()
	l := anim.Polyline([]anim.Vec{{X: -4, Y: 0}, {X: 0, Y: 0}, {X: 4, Y: 0}}, anim.White)
	l.SetStroke(anim.White, 40).SetOpacity(0.5)
	require.NoError(t, c.Draw([]*anim.Mobject{l}))

	joint := c.Image().RGBAAt(80, 45)
	mid := c.Image().RGBAAt(60, 45)
	assert.InDelta(t, int(mid.R), int(joint.R), 2)
	assert.Less(t, joint.R, uint8(0xC0))
}

func TestPartialReveal(t *testing.T) {
	c := testCanvas()
	l := anim.Line(anim.V(-6, 0), anim.V(6, 0)).SetStroke(anim.White, 20)
	l.Reveal = 0.5
	require.NoError(t, c.Draw([]*anim.Mobject{l}))

	assert.NotZero(t, c.Image().RGBAAt(40, 45).R)
	assert.Zero(t, c.Image().RGBAAt(130, 45).R)
}

func TestShapesOffCanvasAreClipped(t *testing.T) {
	c := testCanvas()
	r := anim.Rectangle(40, 40, anim.White).SetFill(anim.White, 1)
	require.NoError(t, c.Draw([]*anim.Mobject{r}))
	assert.Equal(t, uint8(0xFF), c.Image().RGBAAt(10, 10).R)

	far := anim.Dot(anim.V(100, 100), 1, anim.White)
	require.NoError(t, c.Draw([]*anim.Mobject{far}))
	assert.Zero(t, c.Image().RGBAAt(159, 0).R)
}

func TestDrawText(t *testing.T) {
	c := NewCanvas(NewCamera(320, 180, 16, 9), anim.Black)
	txt := anim.Text("MMMM", 96)
	require.NoError(t, c.Draw([]*anim.Mobject{txt}))
	lit := countLit(c)
	assert.Positive(t, lit)

	txt.Reveal = 0.5
	require.NoError(t, c.Draw([]*anim.Mobject{txt}))
	half := countLit(c)
	assert.Less(t, half, lit)
	assert.Positive(t, half)
}

func TestClipPolygon(t *testing.T) {
	square := []pt{{-5, -5}, {15, -5}, {15, 15}, {-5, 15}}
	out := clipPolygon(square, 10, 10)
	require.Len(t, out, 4)
	for _, p := range out {
		assert.GreaterOrEqual(t, p.x, 0.0)
		assert.LessOrEqual(t, p.x, 10.0)
		assert.GreaterOrEqual(t, p.y, 0.0)
		assert.LessOrEqual(t, p.y, 10.0)
	}

	assert.Empty(t, clipPolygon([]pt{{20, 20}, {30, 20}, {30, 30}}, 10, 10))
}

func countLit(c *Canvas) int {
	n := 0
	img := c.Image()
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0x40 {
			n++
		}
	}
	return n
}
