package render_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mlscenes/internal/anim"
	"github.com/san-kum/mlscenes/internal/config"
	"github.com/san-kum/mlscenes/internal/render"
	"github.com/san-kum/mlscenes/internal/scenes"
)

func tinyScene() *scenes.Definition {
	return &scenes.Definition{
		Name:  "tiny",
		Class: "TinyScene",
		Dir:   "tiny",
		Construct: func(s *anim.Scene) error {
			d := anim.Dot(anim.Origin, 1, anim.Blue)
			s.Record("line", []float64{0, 1}, []float64{0, 1})
			s.Play(anim.FadeIn(d))
			s.Wait(0.4)
			s.Play(anim.FadeOut(d)).RunTime(0.6)
			return nil
		},
	}
}

var _ = Describe("Render", func() {
	var (
		cfg  *config.Config
		opts render.Options
		dir  string
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "mlscenes-render")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		cfg = config.DefaultConfig()
		cfg.PixelWidth, cfg.PixelHeight, cfg.FPS = 64, 36, 10
		cfg.MediaDir = dir
		cfg.Format = "png"
		opts = render.Options{Logger: log.New(io.Discard)}
	})

	It("renders every frame to the output", func() {
		var calls int
		opts.Progress = func(frame, total int) {
			calls++
			Expect(total).To(Equal(20))
		}
		res, err := render.Render(context.Background(), tinyScene(), cfg, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(Equal(20))
		Expect(calls).To(Equal(20))
		Expect(res.Duration).To(BeNumerically("~", 2.0, 1e-9))
		Expect(res.Series).To(HaveLen(1))
		Expect(res.Output).To(Equal(filepath.Join(dir, "videos", "tiny", "36p10", "TinyScene.png")))

		frames, err := os.ReadDir(filepath.Join(dir, "videos", "tiny", "36p10", "TinyScene"))
		Expect(err).NotTo(HaveOccurred())
		Expect(frames).To(HaveLen(20))
	})

	It("steps in chunks", func() {
		s, err := render.NewSession(tinyScene(), cfg, opts)
		Expect(err).NotTo(HaveOccurred())

		done, err := s.Step(15)
		Expect(err).NotTo(HaveOccurred())
		Expect(done).To(BeFalse())
		frame, total := s.Progress()
		Expect(frame).To(Equal(15))
		Expect(total).To(Equal(20))

		done, err = s.Step(15)
		Expect(err).NotTo(HaveOccurred())
		Expect(done).To(BeTrue())
		Expect(s.Close()).To(Succeed())
		Expect(s.Result().Frames).To(Equal(20))
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := render.Render(ctx, tinyScene(), cfg, opts)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("aborts without finishing the output", func() {
		var buf bytes.Buffer
		logger := log.New(&buf)
		logger.SetLevel(log.DebugLevel)
		opts.Logger = logger
		cfg.Format = "gif"

		s, err := render.NewSession(tinyScene(), cfg, opts)
		Expect(err).NotTo(HaveOccurred())
		_, err = s.Step(3)
		Expect(err).NotTo(HaveOccurred())

		// The gif is written on close, so a vanished directory fails it.
		Expect(os.RemoveAll(filepath.Dir(s.Output()))).To(Succeed())
		s.Abort()
		Expect(buf.String()).To(ContainSubstring("close after abort"))
		Expect(buf.String()).NotTo(ContainSubstring("rendered"))

		_, err = s.Step(1)
		Expect(err).To(HaveOccurred())
		Expect(s.Close()).To(Succeed())
	})

	It("rejects invalid configuration", func() {
		cfg.FPS = 0
		_, err := render.NewSession(tinyScene(), cfg, opts)
		Expect(err).To(HaveOccurred())
	})

	It("fails on scene construction errors", func() {
		def := tinyScene()
		def.Construct = func(s *anim.Scene) error {
			s.Wait(-1)
			return nil
		}
		_, err := render.NewSession(def, cfg, opts)
		Expect(err).To(MatchError(ContainSubstring("TinyScene")))
	})

	Describe("Snapshot", func() {
		It("draws the frame at the requested time", func() {
			f, err := render.Snapshot(tinyScene(), cfg, 1.2)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Time).To(BeNumerically("~", 1.2, 1e-9))
			Expect(f.Objects).To(HaveLen(1))
			center := f.Image.RGBAAt(32, 18)
			Expect(center.B).To(BeNumerically(">", 0x80))
		})

		It("shows an empty stage after the fade out", func() {
			f, err := render.Snapshot(tinyScene(), cfg, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Objects).To(BeEmpty())
		})
	})

	It("renders a registered scene", func() {
		def, err := scenes.NewRegistry().Get("losses")
		Expect(err).NotTo(HaveOccurred())
		c := def.Apply(cfg)
		c.PixelWidth, c.PixelHeight, c.FPS = 64, 36, 2
		c.MediaDir = dir
		res, err := render.Render(context.Background(), def, c, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(Equal(24))
	})
})
