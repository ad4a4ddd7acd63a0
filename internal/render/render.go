// Package render drives a scene through the player, rasterizer and encoder.
package render

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/san-kum/mlscenes/internal/anim"
	"github.com/san-kum/mlscenes/internal/config"
	"github.com/san-kum/mlscenes/internal/encode"
	"github.com/san-kum/mlscenes/internal/raster"
	"github.com/san-kum/mlscenes/internal/scenes"
	"github.com/san-kum/mlscenes/internal/storage"
)

type Options struct {
	Logger *log.Logger
	// Progress, when set, is called after every rendered frame.
	Progress func(frame, total int)
}

type Result struct {
	Scene    string
	Class    string
	Output   string
	Format   string
	Width    int
	Height   int
	FPS      int
	Frames   int
	Duration float64
	Series   []anim.Series
	Elapsed  time.Duration
}

// Run is the history entry for this result.
func (r *Result) Run() storage.RunMetadata {
	return storage.RunMetadata{
		Scene:    r.Scene,
		Class:    r.Class,
		Width:    r.Width,
		Height:   r.Height,
		FPS:      r.FPS,
		Frames:   r.Frames,
		Duration: r.Duration,
		Output:   r.Output,
		Format:   r.Format,
		Elapsed:  r.Elapsed.Seconds(),
	}
}

// Session is one render in progress. It can be advanced in chunks so a UI
// stays responsive.
type Session struct {
	def    *scenes.Definition
	cfg    *config.Config
	scene  *anim.Scene
	player *anim.Player
	canvas *raster.Canvas
	enc    encode.Encoder
	output string
	opts   Options
	log    *log.Logger
	start  time.Time
	closed bool
}

// NewSession builds the scene and opens the encoder. cfg is used as given;
// scene-specific settings must already be applied.
func NewSession(def *scenes.Definition, cfg *config.Config, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("scene", def.Class)

	scene, err := def.Build(cfg)
	if err != nil {
		return nil, err
	}
	player, err := anim.NewPlayer(scene, cfg.FPS)
	if err != nil {
		return nil, errors.Wrapf(err, "play %s", def.Class)
	}
	bg, err := anim.Hex(cfg.Background)
	if err != nil {
		return nil, errors.Wrap(err, "background")
	}
	ext, err := encode.Extension(cfg.Format)
	if err != nil {
		return nil, err
	}

	output := cfg.OutputPath(def.Dir, def.Class, ext)
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return nil, errors.Wrap(err, "create output dir")
	}
	enc, err := encode.New(cfg.Format, output, cfg.PixelWidth, cfg.PixelHeight, cfg.FPS)
	if err != nil {
		return nil, err
	}

	logger.Debug("session ready",
		"frames", player.TotalFrames(),
		"duration", scene.Duration(),
		"size", cfg.QualityLabel(),
		"output", output)

	return &Session{
		def:    def,
		cfg:    cfg,
		scene:  scene,
		player: player,
		canvas: raster.NewCanvas(camera(cfg), bg),
		enc:    enc,
		output: output,
		opts:   opts,
		log:    logger,
		start:  time.Now(),
	}, nil
}

func camera(cfg *config.Config) raster.Camera {
	return raster.NewCamera(cfg.PixelWidth, cfg.PixelHeight, cfg.FrameWidth, cfg.FrameHeight)
}

// Step renders up to n frames and reports whether the scene is finished.
func (s *Session) Step(n int) (bool, error) {
	if s.closed {
		return true, encode.ErrClosed
	}
	for i := 0; i < n; i++ {
		if !s.player.Next() {
			return true, nil
		}
		if err := s.canvas.Draw(s.player.Visible()); err != nil {
			return false, errors.Wrapf(err, "frame %d", s.player.Frame())
		}
		if err := s.enc.WriteFrame(s.canvas.Image()); err != nil {
			return false, errors.Wrapf(err, "frame %d", s.player.Frame())
		}
		if s.opts.Progress != nil {
			s.opts.Progress(s.player.Frame(), s.player.TotalFrames())
		}
	}
	return s.player.Frame() >= s.player.TotalFrames(), nil
}

// Progress is frames rendered so far and the total.
func (s *Session) Progress() (frame, total int) {
	return s.player.Frame(), s.player.TotalFrames()
}

func (s *Session) Output() string { return s.output }

// Close finalises the output file.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.enc.Close(); err != nil {
		return err
	}
	s.log.Info("rendered", "output", s.output, "frames", s.player.Frame(), "elapsed", time.Since(s.start).Round(time.Millisecond))
	return nil
}

// Abort closes the output after a failure or cancellation, leaving the
// partial file in place.
func (s *Session) Abort() {
	if s.closed {
		return
	}
	s.closed = true
	if err := s.enc.Close(); err != nil {
		s.log.Debug("close after abort", "output", s.output, "err", err)
	}
}

func (s *Session) Result() *Result {
	return &Result{
		Scene:    s.def.Name,
		Class:    s.def.Class,
		Output:   s.output,
		Format:   s.cfg.Format,
		Width:    s.cfg.PixelWidth,
		Height:   s.cfg.PixelHeight,
		FPS:      s.cfg.FPS,
		Frames:   s.player.Frame(),
		Duration: s.scene.Duration(),
		Series:   s.scene.Series(),
		Elapsed:  time.Since(s.start),
	}
}

// chunk is how many frames Render draws between cancellation checks.
const chunk = 10

// Render draws the whole scene to its output file.
func Render(ctx context.Context, def *scenes.Definition, cfg *config.Config, opts Options) (*Result, error) {
	s, err := NewSession(def, cfg, opts)
	if err != nil {
		return nil, err
	}
	s.log.Info("rendering", "frames", s.player.TotalFrames(), "output", s.output)
	for {
		if err := ctx.Err(); err != nil {
			s.Abort()
			return nil, err
		}
		done, err := s.Step(chunk)
		if err != nil {
			s.Abort()
			return nil, err
		}
		if done {
			break
		}
	}
	if err := s.Close(); err != nil {
		return nil, err
	}
	return s.Result(), nil
}

// Frame is a single rendered moment of a scene.
type Frame struct {
	Time       float64
	Objects    []*anim.Mobject
	Image      *image.RGBA
	Camera     raster.Camera
	Background anim.Color
}

// Snapshot plays the scene up to time at and rasterizes that frame. Times
// past the end give the last frame.
func Snapshot(def *scenes.Definition, cfg *config.Config, at float64) (*Frame, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scene, err := def.Build(cfg)
	if err != nil {
		return nil, err
	}
	player, err := anim.NewPlayer(scene, cfg.FPS)
	if err != nil {
		return nil, err
	}
	bg, err := anim.Hex(cfg.Background)
	if err != nil {
		return nil, errors.Wrap(err, "background")
	}
	player.Next()
	player.Seek(at)

	cam := camera(cfg)
	canvas := raster.NewCanvas(cam, bg)
	objs := player.Visible()
	if err := canvas.Draw(objs); err != nil {
		return nil, err
	}
	return &Frame{
		Time:       player.Time(),
		Objects:    objs,
		Image:      canvas.Image(),
		Camera:     cam,
		Background: bg,
	}, nil
}
