package encode

import (
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
)

// MaxGIFWidth caps GIF frames; wider renders are scaled down.
const MaxGIFWidth = 960

const (
	cubeR = 6
	cubeG = 7
	cubeB = 6
)

// cubePalette is a fixed 6x7x6 colour cube. Green gets the extra level.
var cubePalette = func() color.Palette {
	p := make(color.Palette, 0, cubeR*cubeG*cubeB)
	for r := 0; r < cubeR; r++ {
		for g := 0; g < cubeG; g++ {
			for b := 0; b < cubeB; b++ {
				p = append(p, color.RGBA{
					R: level(r, cubeR),
					G: level(g, cubeG),
					B: level(b, cubeB),
					A: 0xFF,
				})
			}
		}
	}
	return p
}()

func level(i, n int) uint8 {
	return uint8(math.Round(float64(i) * 255 / float64(n-1)))
}

func cubeIndex(r, g, b uint8) uint8 {
	q := func(v uint8, n int) int {
		return int(math.Round(float64(v) * float64(n-1) / 255))
	}
	return uint8((q(r, cubeR)*cubeG+q(g, cubeG))*cubeB + q(b, cubeB))
}

type gifEncoder struct {
	path          string
	width, height int
	outW, outH    int
	delay         int
	anim          gif.GIF
	scaled        *image.RGBA
	closed        bool
}

func newGIF(path string, width, height, fps int) (*gifEncoder, error) {
	outW, outH := width, height
	if outW > MaxGIFWidth {
		outH = int(math.Round(float64(height) * MaxGIFWidth / float64(width)))
		outW = MaxGIFWidth
	}
	// Touch the file early so a bad path fails before rendering starts.
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "encode: create gif")
	}
	f.Close()
	return &gifEncoder{
		path:   path,
		width:  width,
		height: height,
		outW:   outW,
		outH:   outH,
		delay:  max(1, int(math.Round(100/float64(fps)))),
		anim:   gif.GIF{LoopCount: 0},
	}, nil
}

func (e *gifEncoder) WriteFrame(img *image.RGBA) error {
	if e.closed {
		return ErrClosed
	}
	if err := checkSize(img, e.width, e.height); err != nil {
		return err
	}
	src := img
	if e.outW != e.width {
		if e.scaled == nil {
			e.scaled = image.NewRGBA(image.Rect(0, 0, e.outW, e.outH))
		}
		xdraw.ApproxBiLinear.Scale(e.scaled, e.scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		src = e.scaled
	}
	e.anim.Image = append(e.anim.Image, quantize(src))
	e.anim.Delay = append(e.anim.Delay, e.delay)
	return nil
}

func quantize(img *image.RGBA) *image.Paletted {
	b := img.Bounds()
	out := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), cubePalette)
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		dst := out.Pix[y*out.Stride:]
		for x := 0; x < b.Dx(); x++ {
			dst[x] = cubeIndex(row[4*x], row[4*x+1], row[4*x+2])
		}
	}
	return out
}

func (e *gifEncoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	f, err := os.Create(e.path)
	if err != nil {
		return errors.Wrap(err, "encode: create gif")
	}
	if err := gif.EncodeAll(f, &e.anim); err != nil {
		f.Close()
		return errors.Wrap(err, "encode: write gif")
	}
	return f.Close()
}
