package scenes

import (
	"github.com/san-kum/mlscenes/internal/anim"
	"github.com/san-kum/mlscenes/internal/regress"
)

// axisLabels puts x right of the x axis end and y above the y axis end.
func axisLabels(axes *anim.Axes, xText, yText string, fontSize float64) (*anim.Mobject, *anim.Mobject) {
	x := anim.Text(xText, fontSize).NextToPoint(axes.XAxisEnd(), anim.Right)
	y := anim.Text(yText, fontSize).NextToPoint(axes.YAxisEnd(), anim.Up)
	return x, y
}

func scatter(axes *anim.Axes, xs, ys []float64, radius float64, c anim.Color) *anim.Mobject {
	g := anim.Group()
	for i := range xs {
		g.Add(anim.Dot(axes.C2P(xs[i], ys[i]), radius, c))
	}
	return g
}

// fitCurve fits a degree-d polynomial and evaluates it on grid.
func fitCurve(xs, ys, grid []float64, degree int) ([]float64, *regress.Polynomial, error) {
	p, err := regress.FitPolynomial(xs, ys, degree)
	if err != nil {
		return nil, nil, err
	}
	return p.PredictAll(grid), p, nil
}

func fadeOutAll(ms ...*anim.Mobject) []anim.Animation {
	out := make([]anim.Animation, len(ms))
	for i, m := range ms {
		out[i] = anim.FadeOut(m)
	}
	return out
}
