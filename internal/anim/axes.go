package anim

import "math"

// Range is [Min, Max] with tick spacing Step.
type Range struct {
	Min, Max, Step float64
}

func R(min, max, step float64) Range { return Range{Min: min, Max: max, Step: step} }

func (r Range) span() float64 { return r.Max - r.Min }

// AxesConfig describes a pair of axes. Zero lengths default to 12x6 units.
type AxesConfig struct {
	X, Y    Range
	XLength float64
	YLength float64
	Tips    bool
	Color   Color
}

// Axes is a group of two number lines that maps data coordinates to frame
// points. The mapping follows the group through Shift and Scale.
type Axes struct {
	*Mobject
	x, y  Range
	xAxis *Mobject
	yAxis *Mobject
	guide *Mobject
}

const (
	tickSize = 0.1
	tipSize  = 0.25
)

func NewAxes(cfg AxesConfig) *Axes {
	if cfg.XLength <= 0 {
		cfg.XLength = 12
	}
	if cfg.YLength <= 0 {
		cfg.YLength = 6
	}
	if cfg.X.Step <= 0 {
		cfg.X.Step = 1
	}
	if cfg.Y.Step <= 0 {
		cfg.Y.Step = 1
	}
	if cfg.Color == (Color{}) {
		cfg.Color = White
	}

	a := &Axes{x: cfg.X, y: cfg.Y}
	toFrame := func(x, y float64) Vec {
		return Vec{
			(x-cfg.X.Min)/cfg.X.span()*cfg.XLength - cfg.XLength/2,
			(y-cfg.Y.Min)/cfg.Y.span()*cfg.YLength - cfg.YLength/2,
		}
	}

	x0 := clamp(0, cfg.X.Min, cfg.X.Max)
	y0 := clamp(0, cfg.Y.Min, cfg.Y.Max)

	a.xAxis = numberLine(toFrame(cfg.X.Min, y0), toFrame(cfg.X.Max, y0), Up, ticks(cfg.X), func(v float64) Vec {
		return toFrame(v, y0)
	}, cfg)
	a.yAxis = numberLine(toFrame(x0, cfg.Y.Min), toFrame(x0, cfg.Y.Max), Right, ticks(cfg.Y), func(v float64) Vec {
		return toFrame(x0, v)
	}, cfg)

	a.guide = newMobject(KindGuide)
	a.guide.Paths = []Path{{Points: []Vec{toFrame(cfg.X.Min, cfg.Y.Min), toFrame(cfg.X.Max, cfg.Y.Max)}}}

	a.Mobject = Group(a.xAxis, a.yAxis, a.guide)
	return a
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func ticks(r Range) []float64 {
	var out []float64
	start := math.Ceil(r.Min/r.Step) * r.Step
	for v := start; v <= r.Max+1e-9; v += r.Step {
		out = append(out, v)
	}
	return out
}

// numberLine is a group whose first child is the line itself, then ticks and
// an optional tip.
func numberLine(from, to, tickDir Vec, values []float64, at func(float64) Vec, cfg AxesConfig) *Mobject {
	line := Line(from, to)
	line.SetStroke(cfg.Color, AxisStrokeWidth)
	g := Group(line)
	for _, v := range values {
		p := at(v)
		t := Line(p.Sub(tickDir.Mul(tickSize)), p.Add(tickDir.Mul(tickSize)))
		t.SetStroke(cfg.Color, AxisStrokeWidth)
		g.Add(t)
	}
	if cfg.Tips {
		dir := to.Sub(from).Norm()
		side := dir.Perp().Mul(tipSize / 2)
		tip := Polygon([]Vec{to.Add(dir.Mul(tipSize)), to.Add(side), to.Sub(side)}, cfg.Color)
		tip.FillOpacity = 1
		tip.StrokeWidth = 0
		g.Add(tip)
	}
	return g
}

func (a *Axes) corners() (Vec, Vec) {
	pts := a.guide.Paths[0].Points
	return pts[0], pts[1]
}

// C2P maps data coordinates to a frame point.
func (a *Axes) C2P(x, y float64) Vec {
	lo, hi := a.corners()
	return Vec{
		lo.X + (x-a.x.Min)/a.x.span()*(hi.X-lo.X),
		lo.Y + (y-a.y.Min)/a.y.span()*(hi.Y-lo.Y),
	}
}

// P2C is the inverse of C2P.
func (a *Axes) P2C(p Vec) (x, y float64) {
	lo, hi := a.corners()
	x = a.x.Min + (p.X-lo.X)/(hi.X-lo.X)*a.x.span()
	y = a.y.Min + (p.Y-lo.Y)/(hi.Y-lo.Y)*a.y.span()
	return x, y
}

func (a *Axes) XAxis() *Mobject { return a.xAxis }
func (a *Axes) YAxis() *Mobject { return a.yAxis }

// XAxisEnd and YAxisEnd are the far ends of the axis lines, before any tip.
func (a *Axes) XAxisEnd() Vec { return a.xAxis.Children[0].End() }
func (a *Axes) YAxisEnd() Vec { return a.yAxis.Children[0].End() }

// Plot samples f over [lo, hi]. Non-finite values are skipped.
func (a *Axes) Plot(f func(float64) float64, lo, hi float64, c Color) *Mobject {
	const samples = 200
	pts := make([]Vec, 0, samples+1)
	for i := 0; i <= samples; i++ {
		x := lo + (hi-lo)*float64(i)/samples
		y := f(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		pts = append(pts, a.C2P(x, y))
	}
	return Polyline(pts, c)
}

// PlotLineGraph joins (xs[i], ys[i]) with straight segments.
func (a *Axes) PlotLineGraph(xs, ys []float64, c Color) *Mobject {
	return Polyline(a.points(xs, ys), c)
}

// SmoothGraph passes a smooth curve through (xs[i], ys[i]).
func (a *Axes) SmoothGraph(xs, ys []float64, c Color) *Mobject {
	return SmoothCurve(a.points(xs, ys), c)
}

func (a *Axes) points(xs, ys []float64) []Vec {
	n := min(len(xs), len(ys))
	pts := make([]Vec, n)
	for i := 0; i < n; i++ {
		pts[i] = a.C2P(xs[i], ys[i])
	}
	return pts
}

// InputToGraphPoint is the frame point of the graph of f at x.
func (a *Axes) InputToGraphPoint(x float64, f func(float64) float64) Vec {
	return a.C2P(x, f(x))
}

// VerticalLine is a dashed line from p down (or up) to the x axis.
func (a *Axes) VerticalLine(p Vec) *Mobject {
	x, _ := a.P2C(p)
	base := a.C2P(x, clamp(0, a.y.Min, a.y.Max))
	return DashedLine(base, p, 0.05)
}
