package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/san-kum/mlscenes/internal/anim"
	"github.com/san-kum/mlscenes/internal/config"
	"github.com/san-kum/mlscenes/internal/export"
	"github.com/san-kum/mlscenes/internal/regress"
	"github.com/san-kum/mlscenes/internal/render"
	"github.com/san-kum/mlscenes/internal/scenes"
	"github.com/san-kum/mlscenes/internal/storage"
	"github.com/san-kum/mlscenes/internal/tui"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	quality    string
	format     string
	fps        int
	mediaDir   string
	renderAll  bool
	profileTo  string
	noStore    bool
	// snapshot
	at      float64
	outFile string
	// fit
	maxDegree int
	seed      int64
	points    int
	noise     float64
	ridge     float64
)

var (
	registry = scenes.NewRegistry()
	base     *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mlscenes",
		Short: "animated explainers for overfitting and regularization",
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			if err := st.Init(); err != nil {
				return err
			}
			return tui.Run(registry, base, st)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (YAML)")

	renderCmd := &cobra.Command{
		Use:   "render [scene...]",
		Short: "render scenes to video",
		RunE:  renderScenes,
	}
	renderCmd.Flags().BoolVar(&renderAll, "all", false, "render every scene")
	renderCmd.Flags().StringVarP(&quality, "quality", "q", "", "quality preset")
	renderCmd.Flags().StringVarP(&format, "format", "f", "", "output format (mp4, gif, png)")
	renderCmd.Flags().IntVar(&fps, "fps", 0, "frame rate")
	renderCmd.Flags().StringVar(&mediaDir, "media", "", "media directory")
	renderCmd.Flags().StringVar(&profileTo, "profile", "", "write a cpu or mem profile")
	renderCmd.Flags().BoolVar(&noStore, "no-store", false, "do not record the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list available scenes",
		RunE:  listScenes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list quality presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tFPS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%d\n", name, p.PixelWidth, p.PixelHeight, p.FPS)
			}
			return w.Flush()
		},
	}

	previewCmd := &cobra.Command{
		Use:   "preview [scene]",
		Short: "summarise a scene timeline without rendering",
		Args:  cobra.ExactArgs(1),
		RunE:  previewScene,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [scene]",
		Short: "draw a single frame as svg or png",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotScene,
	}
	snapshotCmd.Flags().Float64Var(&at, "at", 0, "time in seconds")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (.svg or .png)")
	snapshotCmd.Flags().StringVarP(&quality, "quality", "q", "", "quality preset")

	fitCmd := &cobra.Command{
		Use:   "fit",
		Short: "fit polynomials to noisy sine data",
		RunE:  fitPolynomials,
	}
	fitCmd.Flags().IntVar(&maxDegree, "degree", scenes.OverfittingMaxDegree, "highest degree")
	fitCmd.Flags().Int64Var(&seed, "seed", scenes.OverfittingSeed, "random seed")
	fitCmd.Flags().IntVar(&points, "points", scenes.OverfittingPoints, "number of samples")
	fitCmd.Flags().Float64Var(&noise, "noise", scenes.OverfittingNoise, "noise standard deviation")
	fitCmd.Flags().Float64Var(&ridge, "ridge", 0, "L2 penalty")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list rendered runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the data series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	rootCmd.AddCommand(renderCmd, listCmd, presetsCmd, previewCmd, snapshotCmd, fitCmd, runsCmd, plotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the config file and lets it supply defaults for the
// persistent flags.
func setup(cmd *cobra.Command, args []string) error {
	base = config.DefaultConfig()
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		base = cfg
		if !cmd.Flags().Changed("data") && cfg.DataDir != "" {
			dataDir = cfg.DataDir
		}
		if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
			logLevel = cfg.LogLevel
		}
	}

	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	log.SetLevel(lvl)
	return nil
}

// sceneConfig applies the scene's own settings, then any flags the user set.
func sceneConfig(cmd *cobra.Command, def *scenes.Definition) (*config.Config, error) {
	cfg := def.Apply(base)
	flags := cmd.Flags()
	if flags.Changed("quality") {
		if err := cfg.ApplyQuality(quality); err != nil {
			return nil, err
		}
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("media") {
		cfg.MediaDir = mediaDir
	}
	return cfg, cfg.Validate()
}

func selectScenes(args []string) ([]*scenes.Definition, error) {
	if renderAll {
		return registry.List(), nil
	}
	if len(args) == 0 {
		return nil, errors.Errorf("no scene given (available: %s)", strings.Join(registry.Names(), ", "))
	}
	defs := make([]*scenes.Definition, 0, len(args))
	for _, name := range args {
		def, err := registry.Get(name)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func renderScenes(cmd *cobra.Command, args []string) error {
	defs, err := selectScenes(args)
	if err != nil {
		return err
	}

	switch profileTo {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(dataDir), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(dataDir), profile.Quiet).Stop()
	default:
		return errors.Errorf("unknown profile %q (want cpu or mem)", profileTo)
	}

	var st *storage.Store
	if !noStore {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for _, def := range defs {
		cfg, err := sceneConfig(cmd, def)
		if err != nil {
			return errors.Wrap(err, def.Name)
		}
		res, err := render.Render(ctx, def, cfg, render.Options{})
		if err != nil {
			return errors.Wrapf(err, "render %s", def.Name)
		}

		fmt.Printf("%s -> %s\n", res.Class, res.Output)
		fmt.Printf("  %d frames, %.1fs at %dfps, took %v\n", res.Frames, res.Duration, res.FPS, res.Elapsed.Round(time.Millisecond))

		if st == nil {
			continue
		}
		runID, err := st.Save(res.Run(), res.Series)
		if err != nil {
			return err
		}
		fmt.Printf("  run id: %s\n", runID)
	}
	return nil
}

func listScenes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCLASS\tDESCRIPTION")
	for _, def := range registry.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", def.Name, def.Class, def.Description)
	}
	return w.Flush()
}

func previewScene(cmd *cobra.Command, args []string) error {
	def, err := registry.Get(args[0])
	if err != nil {
		return err
	}
	cfg := def.Apply(base)
	scene, err := def.Build(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("scene: %s (%s)\n", def.Name, def.Class)
	fmt.Printf("%s\n\n", def.Description)
	fmt.Printf("plays: %d\n", scene.Plays())
	fmt.Printf("waits: %d\n", scene.Waits())
	fmt.Printf("duration: %.2fs\n", scene.Duration())
	fmt.Printf("frames: %d at %dfps (%dx%d)\n", scene.TotalFrames(cfg.FPS), cfg.FPS, cfg.PixelWidth, cfg.PixelHeight)
	fmt.Printf("output: %s\n\n", cfg.OutputPath(def.Dir, def.Class, cfg.Format))

	plotSeries(scene.Series())
	return nil
}

func plotSeries(series []anim.Series) {
	const maxPlots = 6
	for i, sr := range series {
		if i == maxPlots {
			fmt.Printf("... %d more series\n", len(series)-maxPlots)
			break
		}
		if len(sr.Y) < 2 {
			continue
		}
		graph := asciigraph.Plot(sr.Y,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.Name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
}

func snapshotScene(cmd *cobra.Command, args []string) error {
	def, err := registry.Get(args[0])
	if err != nil {
		return err
	}
	cfg, err := sceneConfig(cmd, def)
	if err != nil {
		return err
	}
	if outFile == "" {
		outFile = fmt.Sprintf("%s_%.2f.png", def.Class, at)
	}

	frame, err := render.Snapshot(def, cfg, at)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outFile), 0755); err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(outFile)) {
	case ".svg":
		svg := export.FrameToSVG(frame.Objects, frame.Camera, frame.Background)
		if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
			return err
		}
	case ".png":
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		if err := png.Encode(f, frame.Image); err != nil {
			f.Close()
			return errors.Wrap(err, "encode png")
		}
		if err := f.Close(); err != nil {
			return err
		}
	default:
		return errors.Errorf("unsupported snapshot format %q (want .svg or .png)", filepath.Ext(outFile))
	}

	fmt.Printf("%s at %.2fs -> %s\n", def.Class, frame.Time, outFile)
	return nil
}

type fitRow struct {
	degree      int
	trainMSE    float64
	trueMSE     float64
	conditioned bool
}

// fitDegrees fits degrees 1..maxDegree to noisy sine samples and scores each
// against the samples and against the noiseless sine. It stops at the first
// degree the solver rejects.
func fitDegrees(xs, ys []float64, maxDegree int, ridge float64) []fitRow {
	grid := regress.Linspace(-1, 1, 200)
	truth := regress.Apply(grid, scenes.SineTarget)

	rows := make([]fitRow, 0, maxDegree)
	for d := 1; d <= maxDegree; d++ {
		var (
			p   *regress.Polynomial
			err error
		)
		if ridge > 0 {
			p, err = regress.FitRidge(xs, ys, d, ridge)
		} else {
			p, err = regress.FitPolynomial(xs, ys, d)
		}
		if err != nil {
			log.Warn("fit skipped", "degree", d, "err", err)
			break
		}
		rows = append(rows, fitRow{
			degree:      d,
			trainMSE:    regress.MSE(p.PredictAll(xs), ys),
			trueMSE:     regress.MSE(p.PredictAll(grid), truth),
			conditioned: p.Conditioned,
		})
	}
	return rows
}

func fitPolynomials(cmd *cobra.Command, args []string) error {
	if points < 2 {
		return errors.Errorf("need at least 2 points, got %d", points)
	}
	if maxDegree < 1 {
		return errors.Errorf("degree must be at least 1, got %d", maxDegree)
	}
	xs := regress.Linspace(-1, 1, points)
	ys := regress.NoisySamples(xs, scenes.SineTarget, noise, seed)

	fmt.Printf("samples: %d  noise: %.3f  seed: %d  ridge: %g\n\n", points, noise, seed, ridge)

	rows := fitDegrees(xs, ys, maxDegree, ridge)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DEGREE\tTRAIN MSE\tTRUE MSE\tNOTE")

	train := make([]float64, 0, len(rows))
	var illConditioned []int
	for _, r := range rows {
		train = append(train, r.trainMSE)
		note := ""
		if !r.conditioned {
			note = "ill-conditioned"
			illConditioned = append(illConditioned, r.degree)
		}
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%s\n", r.degree, r.trainMSE, r.trueMSE, note)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(illConditioned) > 0 {
		log.Warn("fits not well determined; add points or use --ridge", "degrees", illConditioned)
	}

	if len(train) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(train,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("training mse by degree"),
		))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tSIZE\tFRAMES\tFORMAT\tOUTPUT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d@%d\t%d\t%s\t%s\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height, run.FPS,
			run.Frames,
			run.Format,
			run.Output,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return errors.New("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("series: %d\n\n", len(series))

	plotSeries(series)
	return nil
}
