package anim

import "math"

// Default stroke widths, in pixels at 1080p.
const (
	DefaultStrokeWidth = 4.0
	AxisStrokeWidth    = 2.0
)

func pathMobject(c Color, paths ...Path) *Mobject {
	m := newMobject(KindPath)
	m.Paths = paths
	m.StrokeColor = c
	m.FillColor = c
	m.StrokeWidth = DefaultStrokeWidth
	return m
}

// Group collects mobjects so they move, fade and transform together.
func Group(children ...*Mobject) *Mobject {
	m := newMobject(KindGroup)
	m.Children = children
	return m
}

func Line(a, b Vec) *Mobject {
	return pathMobject(White, Path{Points: []Vec{a, b}})
}

// DashedLine splits a-b into dashes of the given length separated by equal gaps.
func DashedLine(a, b Vec, dash float64) *Mobject {
	if dash <= 0 {
		dash = 0.05
	}
	l := a.Dist(b)
	n := int(math.Max(1, math.Floor(l/(2*dash))))
	paths := make([]Path, 0, n)
	for i := 0; i < n; i++ {
		t0 := float64(2*i) / float64(2*n-1)
		t1 := float64(2*i+1) / float64(2*n-1)
		if n == 1 {
			t0, t1 = 0, 1
		}
		paths = append(paths, Path{Points: []Vec{a.Lerp(b, t0), a.Lerp(b, t1)}})
	}
	return pathMobject(White, paths...)
}

func Polyline(points []Vec, c Color) *Mobject {
	return pathMobject(c, Path{Points: append([]Vec(nil), points...)})
}

// SmoothCurve passes a Catmull-Rom spline through points.
func SmoothCurve(points []Vec, c Color) *Mobject {
	if len(points) < 3 {
		return Polyline(points, c)
	}
	const sub = 8
	out := make([]Vec, 0, (len(points)-1)*sub+1)
	at := func(i int) Vec {
		if i < 0 {
			return points[0].Mul(2).Sub(points[1])
		}
		if i >= len(points) {
			n := len(points)
			return points[n-1].Mul(2).Sub(points[n-2])
		}
		return points[i]
	}
	for i := 0; i < len(points)-1; i++ {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		for s := 0; s < sub; s++ {
			t := float64(s) / sub
			t2, t3 := t*t, t*t*t
			x := 0.5 * (2*p1.X + (-p0.X+p2.X)*t + (2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 + (-p0.X+3*p1.X-3*p2.X+p3.X)*t3)
			y := 0.5 * (2*p1.Y + (-p0.Y+p2.Y)*t + (2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 + (-p0.Y+3*p1.Y-3*p2.Y+p3.Y)*t3)
			out = append(out, Vec{x, y})
		}
	}
	out = append(out, points[len(points)-1])
	return Polyline(out, c)
}

func Polygon(points []Vec, c Color) *Mobject {
	return pathMobject(c, Path{Points: append([]Vec(nil), points...), Closed: true})
}

func circlePoints(center Vec, r float64, n int) []Vec {
	pts := make([]Vec, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Vec{center.X + r*math.Cos(a), center.Y + r*math.Sin(a)}
	}
	return pts
}

// Dot is a filled disc without outline.
func Dot(center Vec, radius float64, c Color) *Mobject {
	if radius <= 0 {
		radius = DefaultDotSize
	}
	m := Polygon(circlePoints(center, radius, 32), c)
	m.StrokeWidth = 0
	m.FillOpacity = 1
	return m
}

func Rectangle(width, height float64, c Color) *Mobject {
	w, h := width/2, height/2
	return Polygon([]Vec{{-w, h}, {w, h}, {w, -h}, {-w, -h}}, c)
}

// SurroundingRectangle outlines a box with buff padding.
func SurroundingRectangle(b Box, c Color, buff float64) *Mobject {
	b = b.Expand(buff)
	r := Rectangle(b.Width(), b.Height(), c)
	r.MoveTo(b.Center())
	return r
}
