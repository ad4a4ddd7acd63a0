package encode

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"

	"github.com/pkg/errors"
)

// FFmpegArgs builds the command line that reads raw RGBA frames on stdin and
// writes an H.264 mp4 to path.
func FFmpegArgs(path string, width, height, fps int) []string {
	return []string{
		"-y", "-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.Itoa(fps),
		"-i", "-",
		"-an",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		path,
	}
}

type ffmpegEncoder struct {
	cmd           *exec.Cmd
	stdin         io.WriteCloser
	stderr        bytes.Buffer
	width, height int
	closed        bool
}

func newFFmpeg(path string, width, height, fps int) (*ffmpegEncoder, error) {
	bin, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, ErrFFmpegMissing
	}
	if width%2 != 0 || height%2 != 0 {
		return nil, errors.Errorf("encode: yuv420p needs even dimensions, got %dx%d", width, height)
	}
	e := &ffmpegEncoder{width: width, height: height}
	e.cmd = exec.Command(bin, FFmpegArgs(path, width, height, fps)...)
	e.cmd.Stderr = &e.stderr
	if e.stdin, err = e.cmd.StdinPipe(); err != nil {
		return nil, errors.Wrap(err, "encode: ffmpeg stdin")
	}
	if err := e.cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "encode: start ffmpeg")
	}
	return e, nil
}

func (e *ffmpegEncoder) WriteFrame(img *image.RGBA) error {
	if e.closed {
		return ErrClosed
	}
	if err := checkSize(img, e.width, e.height); err != nil {
		return err
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		if _, err := e.stdin.Write(row); err != nil {
			return errors.Wrapf(err, "encode: ffmpeg write: %s", e.stderr.String())
		}
	}
	return nil
}

func (e *ffmpegEncoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if err := e.stdin.Close(); err != nil {
		return errors.Wrap(err, "encode: close ffmpeg stdin")
	}
	if err := e.cmd.Wait(); err != nil {
		return errors.Wrapf(err, "encode: ffmpeg: %s", e.stderr.String())
	}
	return nil
}
