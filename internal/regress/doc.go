// Package regress generates the data behind the curve animations.
//
// It is a thin layer over gonum: sample grids come from [floats.Span],
// Gaussian noise from [distuv.Normal] on a seeded PCG source, and polynomial
// fits are least-squares solves of a Vandermonde system with [mat.Dense].
//
//	xs := regress.Linspace(-1, 1, 20)
//	ys := regress.NoisySamples(xs, math.Sin, 0.25, 42)
//	p, _ := regress.FitPolynomial(xs, ys, 5)
//	curve := p.PredictAll(regress.Linspace(-1, 1, 100))
//
// The same seed always yields the same samples and therefore the same
// curves.
package regress
