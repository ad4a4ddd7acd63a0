package regress

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Polynomial is a fitted polynomial model. Inputs are mapped to z = (x-center)/scale
// before evaluation so that high degrees stay well conditioned.
type Polynomial struct {
	coef   []float64
	center float64
	scale  float64
	// Conditioned is false when the fit is not well determined: fewer
	// samples than coefficients without a ridge penalty, or a solver report
	// of a near-singular system.
	Conditioned bool
}

// PolyFeatures builds the design matrix [1 x x^2 ... x^degree].
func PolyFeatures(xs []float64, degree int) *mat.Dense {
	a := mat.NewDense(len(xs), degree+1, nil)
	for i, x := range xs {
		v := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, v)
			v *= x
		}
	}
	return a
}

// FitPolynomial fits an ordinary least-squares polynomial of the given degree.
func FitPolynomial(xs, ys []float64, degree int) (*Polynomial, error) {
	return fit(xs, ys, degree, 0)
}

// FitRidge fits with an L2 penalty lambda*sum(b_j^2) on every coefficient except
// the intercept.
func FitRidge(xs, ys []float64, degree int, lambda float64) (*Polynomial, error) {
	if lambda < 0 {
		return nil, errors.Errorf("regress: ridge penalty must be non-negative, got %g", lambda)
	}
	return fit(xs, ys, degree, lambda)
}

func fit(xs, ys []float64, degree int, lambda float64) (*Polynomial, error) {
	if len(xs) == 0 {
		return nil, ErrEmptyInput
	}
	if len(xs) != len(ys) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d xs, %d ys", len(xs), len(ys))
	}
	if degree < 0 {
		return nil, errors.Wrapf(ErrNegativeDegree, "degree %d", degree)
	}

	p := &Polynomial{Conditioned: lambda > 0 || len(xs) > degree}
	lo, hi := floats.Min(xs), floats.Max(xs)
	p.center = (lo + hi) / 2
	p.scale = (hi - lo) / 2
	if p.scale == 0 {
		p.scale = 1
	}

	zs := make([]float64, len(xs))
	for i, x := range xs {
		zs[i] = p.normalize(x)
	}

	a := PolyFeatures(zs, degree)
	b := mat.NewVecDense(len(ys), append([]float64(nil), ys...))

	if lambda > 0 {
		a, b = augmentRidge(a, b, lambda)
	}

	var beta mat.VecDense
	if err := beta.SolveVec(a, b); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, errors.Wrapf(err, "regress: solve degree %d", degree)
		}
		p.Conditioned = false
	}

	p.coef = make([]float64, degree+1)
	for i := range p.coef {
		p.coef[i] = beta.AtVec(i)
	}
	return p, nil
}

// augmentRidge stacks sqrt(lambda)*I under the design matrix so the plain
// least-squares solve minimises the penalised objective.
func augmentRidge(a *mat.Dense, b *mat.VecDense, lambda float64) (*mat.Dense, *mat.VecDense) {
	r, c := a.Dims()
	penalty := c - 1
	out := mat.NewDense(r+penalty, c, nil)
	out.Slice(0, r, 0, c).(*mat.Dense).Copy(a)
	root := math.Sqrt(lambda)
	for j := 1; j < c; j++ {
		out.Set(r+j-1, j, root)
	}
	rhs := mat.NewVecDense(r+penalty, nil)
	rhs.SliceVec(0, r).(*mat.VecDense).CopyVec(b)
	return out, rhs
}

func (p *Polynomial) normalize(x float64) float64 {
	return (x - p.center) / p.scale
}

// Predict evaluates the polynomial at x.
func (p *Polynomial) Predict(x float64) float64 {
	z := p.normalize(x)
	y := 0.0
	for i := len(p.coef) - 1; i >= 0; i-- {
		y = y*z + p.coef[i]
	}
	return y
}

func (p *Polynomial) PredictAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = p.Predict(x)
	}
	return out
}

func (p *Polynomial) Degree() int { return len(p.coef) - 1 }

// Coefficients returns the coefficients in the normalised basis z, lowest order first.
func (p *Polynomial) Coefficients() []float64 {
	return append([]float64(nil), p.coef...)
}
