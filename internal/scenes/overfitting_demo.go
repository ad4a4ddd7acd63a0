package scenes

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/san-kum/mlscenes/internal/anim"
	"github.com/san-kum/mlscenes/internal/regress"
)

// LineData is the noisy line y = 1 + 2x sampled at 10 points on [0, 10].
func LineData() (xs, ys []float64) {
	xs = regress.Linspace(0, 10, 10)
	ys = regress.NoisySamples(xs, func(x float64) float64 { return 1 + 2*x }, 2, 42)
	return xs, ys
}

// OverfittingDemo replaces a linear fit with polynomials up to degree 9.
func OverfittingDemo(s *anim.Scene) error {
	axes := anim.NewAxes(anim.AxesConfig{X: anim.R(-1, 11, 1), Y: anim.R(-1, 11, 1)})
	xLabel, yLabel := axisLabels(axes, "x", "y", anim.DefaultFontSize)
	labels := anim.Group(xLabel, yLabel)

	xs, ys := LineData()
	dots := scatter(axes, xs, ys, 0, anim.Blue)
	s.Record("data", xs, ys)

	s.Play(anim.Create(axes.Mobject), anim.Write(labels), anim.FadeIn(dots))
	s.Wait(1)

	grid := regress.Linspace(0, 10, 100)
	curve := func(degree int, c anim.Color) (*anim.Mobject, error) {
		pred, _, err := fitCurve(xs, ys, grid, degree)
		if err != nil {
			return nil, errors.Wrapf(err, "degree %d", degree)
		}
		s.Record(fmt.Sprintf("degree %d", degree), grid, pred)
		return axes.SmoothGraph(grid, pred, c), nil
	}
	degreeText := func(degree int) *anim.Mobject {
		return anim.Text(fmt.Sprintf("Polynomial Degree: %d", degree), 36).ToCorner(s.Frame(), anim.UL)
	}

	label := degreeText(1)
	s.Play(anim.Write(label))

	line, err := curve(1, anim.Yellow)
	if err != nil {
		return err
	}
	s.Play(anim.Create(line))
	s.Wait(1)

	for degree := 2; degree <= 9; degree++ {
		c := anim.Green
		if degree > 5 {
			c = anim.Red
		}
		next, err := curve(degree, c)
		if err != nil {
			return err
		}
		nextLabel := degreeText(degree)
		s.Play(
			anim.ReplacementTransform(line, next),
			anim.ReplacementTransform(label, nextLabel),
		)
		line, label = next, nextLabel
		s.Wait(1)
	}

	title := anim.Text("Overfitting in Polynomial Regression", 42).ToEdge(s.Frame(), anim.Up)
	s.Play(anim.Write(title))
	s.Wait(2)
	return nil
}
