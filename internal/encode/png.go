package encode

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

type pngSequence struct {
	dir           string
	width, height int
	n             int
	enc           png.Encoder
	closed        bool
}

func newPNGSequence(path string, width, height int) (*pngSequence, error) {
	dir := strings.TrimSuffix(path, filepath.Ext(path))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "encode: create frame dir")
	}
	return &pngSequence{
		dir:    dir,
		width:  width,
		height: height,
		enc:    png.Encoder{CompressionLevel: png.BestSpeed},
	}, nil
}

func (p *pngSequence) WriteFrame(img *image.RGBA) error {
	if p.closed {
		return ErrClosed
	}
	if err := checkSize(img, p.width, p.height); err != nil {
		return err
	}
	name := filepath.Join(p.dir, fmt.Sprintf("%05d.png", p.n))
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "encode: create frame")
	}
	if err := p.enc.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode: frame %d", p.n)
	}
	p.n++
	return f.Close()
}

func (p *pngSequence) Close() error {
	p.closed = true
	return nil
}
