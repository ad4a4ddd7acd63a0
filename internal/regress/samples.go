package regress

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// NewSource returns the deterministic random source used for all scene data.
func NewSource(seed int64) rand.Source {
	return rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
}

// Noise draws n samples from N(0, sigma) using the given seed.
func Noise(n int, sigma float64, seed int64) []float64 {
	dist := distuv.Normal{Mu: 0, Sigma: sigma, Src: NewSource(seed)}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

// NoisySamples evaluates f at xs and adds Gaussian noise.
func NoisySamples(xs []float64, f func(float64) float64, sigma float64, seed int64) []float64 {
	noise := Noise(len(xs), sigma, seed)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f(x) + noise[i]
	}
	return ys
}

// Apply evaluates f over xs.
func Apply(xs []float64, f func(float64) float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f(x)
	}
	return ys
}

// MSE is the mean squared error between predictions and targets.
func MSE(pred, ys []float64) float64 {
	if len(pred) == 0 || len(pred) != len(ys) {
		return 0
	}
	diff := make([]float64, len(pred))
	floats.SubTo(diff, pred, ys)
	return floats.Dot(diff, diff) / float64(len(diff))
}
