package scenes

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/san-kum/mlscenes/internal/anim"
	"github.com/san-kum/mlscenes/internal/regress"
)

const (
	OverfittingSeed      = 42
	OverfittingPoints    = 20
	OverfittingNoise     = 0.25
	OverfittingMaxDegree = 12
)

// SineTarget is the function the overfitting data is sampled from.
func SineTarget(x float64) float64 { return math.Sin(math.Pi * x) }

// OverfittingData is the noisy sine sample used by OverfittingAnimation.
func OverfittingData() (xs, ys []float64) {
	xs = regress.Linspace(-1, 1, OverfittingPoints)
	ys = regress.NoisySamples(xs, SineTarget, OverfittingNoise, OverfittingSeed)
	return xs, ys
}

// OverfittingAnimation fits polynomials of increasing degree to noisy sine
// data until the curve chases the noise.
func OverfittingAnimation(s *anim.Scene) error {
	xs, ys := OverfittingData()
	grid := regress.Linspace(-1, 1, 100)

	axes := anim.NewAxes(anim.AxesConfig{X: anim.R(-1.2, 1.2, 0.5), Y: anim.R(-1.5, 1.5, 0.5)})
	axes.Scale(0.7)
	xLabel, yLabel := axisLabels(axes, "x", "y", 24)
	dots := scatter(axes, xs, ys, 0.05, anim.Blue)

	s.Add(axes.Mobject, anim.Group(xLabel, yLabel), dots)
	s.Record("data", xs, ys)

	var curve, counter *anim.Mobject
	degrees := make([]float64, 0, OverfittingMaxDegree)
	mse := make([]float64, 0, OverfittingMaxDegree)
	for degree := 1; degree <= OverfittingMaxDegree; degree++ {
		pred, p, err := fitCurve(xs, ys, grid, degree)
		if err != nil {
			return errors.Wrapf(err, "degree %d", degree)
		}
		degrees = append(degrees, float64(degree))
		mse = append(mse, regress.MSE(p.PredictAll(xs), ys))
		s.Record(fmt.Sprintf("degree %d", degree), grid, pred)

		newCurve := axes.PlotLineGraph(grid, pred, anim.Red)
		newCounter := anim.Text(fmt.Sprintf("Degree: %d", degree), 24).
			ToCorner(s.Frame(), anim.UR).
			Shift(anim.Left.Mul(0.5))

		if curve == nil {
			s.Play(anim.Create(newCurve), anim.Write(newCounter)).RunTime(1)
		} else {
			s.Play(
				anim.ReplacementTransform(curve, newCurve),
				anim.ReplacementTransform(counter, newCounter),
			).RunTime(1)
		}
		curve, counter = newCurve, newCounter

		if degree >= 10 {
			s.Wait(0.5)
		}
	}
	s.Record("training mse", degrees, mse)

	s.Wait(2)
	return nil
}
