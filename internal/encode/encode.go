// Package encode turns rendered frames into video files.
package encode

import (
	"image"

	"github.com/pkg/errors"
)

var (
	ErrUnknownFormat = errors.New("encode: unknown format")
	ErrFFmpegMissing = errors.New("encode: ffmpeg not found in PATH")
	ErrClosed        = errors.New("encode: encoder closed")
	ErrFrameSize     = errors.New("encode: frame size mismatch")
)

// Encoder consumes frames in order. Close flushes and finalises the output;
// the encoder must not be used afterwards.
type Encoder interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

// Formats lists the supported output formats.
var Formats = []string{"mp4", "gif", "png"}

// Extension is the file extension used for format, without the dot.
func Extension(format string) (string, error) {
	switch format {
	case "mp4", "gif", "png":
		return format, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", format)
}

// New opens an encoder writing to path. For png, path names the directory
// the numbered frames go into, minus its extension.
func New(format, path string, width, height, fps int) (Encoder, error) {
	if width <= 0 || height <= 0 || fps <= 0 {
		return nil, errors.Errorf("encode: bad geometry %dx%d@%d", width, height, fps)
	}
	switch format {
	case "mp4":
		return newFFmpeg(path, width, height, fps)
	case "gif":
		return newGIF(path, width, height, fps)
	case "png":
		return newPNGSequence(path, width, height)
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
}

func checkSize(img *image.RGBA, width, height int) error {
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		return errors.Wrapf(ErrFrameSize, "got %dx%d, want %dx%d", b.Dx(), b.Dy(), width, height)
	}
	return nil
}
