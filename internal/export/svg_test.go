package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/san-kum/mlscenes/internal/anim"
	"github.com/san-kum/mlscenes/internal/raster"
)

func TestFrameToSVG(t *testing.T) {
	cam := raster.NewCamera(1920, 1080, 14.22, 8)
	dot := anim.Dot(anim.Origin, 0.1, anim.Blue)
	line := anim.Line(anim.V(-1, 0), anim.V(1, 0)).SetColor(anim.Red)
	label := anim.Text("a < b", 24)
	hidden := anim.Line(anim.V(0, 0), anim.V(1, 1)).SetOpacity(0)

	svg := FrameToSVG([]*anim.Mobject{dot, line, label, hidden}, cam, anim.Black)

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, `fill="#000000"`)
	assert.Contains(t, svg, `fill="#58C4DD"`)
	assert.Contains(t, svg, `stroke="#FC6255"`)
	assert.Contains(t, svg, "a &lt; b")
	assert.Equal(t, 1, strings.Count(svg, `stroke="#FC6255"`))
	assert.Contains(t, svg, "M825.0,540.0 L1095.0,540.0")
}

func TestFrameToSVGPartialText(t *testing.T) {
	cam := raster.NewCamera(1280, 720, 14.22, 8)
	label := anim.Text("ab cd", 24)
	label.Reveal = 0.5

	svg := FrameToSVG([]*anim.Mobject{label}, cam, anim.Black)
	assert.Contains(t, svg, ">ab </text>")
}
