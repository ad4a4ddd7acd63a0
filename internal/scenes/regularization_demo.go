package scenes

import (
	"math"

	"github.com/san-kum/mlscenes/internal/anim"
	"github.com/san-kum/mlscenes/internal/regress"
)

func overfitModel(x float64) float64 { return 0.5*math.Pow(x, 5) - 2*math.Pow(x, 3) + x }
func ridgeModel(x float64) float64   { return 0.2*math.Pow(x, 3) - 1.2*x }
func lassoModel(x float64) float64   { return 0.8 * x }

// CubicPoints are the alternating-offset samples of 0.5x^3 - x.
func CubicPoints() (xs, ys []float64) {
	xs = regress.Linspace(-2.5, 2.5, 11)
	ys = make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 0.5*x*x*x - x + 0.3*math.Pow(-1, float64(i))
	}
	return xs, ys
}

// RegularizationDemo morphs an overfitted curve into an L2 and then an L1
// regularized one.
func RegularizationDemo(s *anim.Scene) error {
	frame := s.Frame()
	title := anim.Text("Regularization in Machine Learning", 36).ToEdge(frame, anim.Up)
	s.Play(anim.Write(title))

	axes := anim.NewAxes(anim.AxesConfig{X: anim.R(-3, 3, 1), Y: anim.R(-3, 3, 1)})
	axes.Shift(anim.Down)
	xLabel := anim.Text("x", 24).NextTo(axes.XAxis(), anim.Down)
	yLabel := anim.Text("y", 24).NextTo(axes.YAxis(), anim.Left)
	s.Play(anim.Create(axes.Mobject), anim.Write(xLabel), anim.Write(yLabel))

	xs, ys := CubicPoints()
	s.Record("data", xs, ys)
	points := make([]*anim.Mobject, len(xs))
	fades := make([]anim.Animation, len(xs))
	for i := range xs {
		points[i] = anim.Dot(axes.C2P(xs[i], ys[i]), 0, anim.White)
		fades[i] = anim.FadeIn(points[i])
	}
	s.Play(fades...)

	grid := regress.Linspace(-3, 3, 61)
	s.Record("overfit", grid, regress.Apply(grid, overfitModel))
	s.Record("l2", grid, regress.Apply(grid, ridgeModel))
	s.Record("l1", grid, regress.Apply(grid, lassoModel))

	curve := axes.Plot(overfitModel, -3, 3, anim.Red)
	label := anim.ColoredText("Overfitted Model", 24, anim.Red).NextTo(curve, anim.Right)
	s.Play(anim.Create(curve), anim.Write(label))
	s.Wait(2)

	ridge := axes.Plot(ridgeModel, -3, 3, anim.Blue)
	ridgeLabel := anim.ColoredText("L2 Regularization (Ridge)", 24, anim.Blue).NextTo(ridge, anim.Left)
	s.Play(anim.Transform(curve, ridge), anim.Transform(label, ridgeLabel))
	s.Wait(2)

	lasso := axes.Plot(lassoModel, -3, 3, anim.Green)
	lassoLabel := anim.ColoredText("L1 Regularization (Lasso)", 24, anim.Green).NextTo(lasso, anim.Up)
	s.Play(anim.Transform(curve, lasso), anim.Transform(label, lassoLabel))
	s.Wait(2)

	conclusion := anim.Text("Regularization prevents overfitting and improves generalization!", 30).
		ToEdge(frame, anim.Down)
	s.Play(anim.Write(conclusion))
	s.Wait(3)

	all := append([]*anim.Mobject{title, axes.Mobject, xLabel, yLabel}, points...)
	all = append(all, curve, label, conclusion)
	s.Play(anim.FadeOut(all...))
	return nil
}
