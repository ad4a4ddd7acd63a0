package anim

import "math"

// Vec is a point or direction in frame units: origin at the centre, y up.
type Vec struct {
	X, Y float64
}

var (
	Origin = Vec{0, 0}
	Up     = Vec{0, 1}
	Down   = Vec{0, -1}
	Left   = Vec{-1, 0}
	Right  = Vec{1, 0}

	UL = Vec{-1, 1}
	UR = Vec{1, 1}
	DL = Vec{-1, -1}
	DR = Vec{1, -1}
)

// Standard spacings.
const (
	SmallBuff       = 0.1
	MedSmallBuff    = 0.25
	MedLargeBuff    = 0.5
	EdgeBuff        = 0.5
	DefaultDotSize  = 0.08
	DefaultFontSize = 48.0
)

func V(x, y float64) Vec { return Vec{x, y} }

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Mul(f float64) Vec { return Vec{v.X * f, v.Y * f} }
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(o Vec) float64 { return v.Sub(o).Len() }
func (v Vec) Lerp(o Vec, t float64) Vec { return v.Add(o.Sub(v).Mul(t)) }

func (v Vec) Norm() Vec {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// Perp is v rotated 90 degrees counter-clockwise.
func (v Vec) Perp() Vec { return Vec{-v.Y, v.X} }

func sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}

// Box is an axis-aligned bounding box. The zero Box is empty.
type Box struct {
	Min, Max Vec
	valid    bool
}

func NewBox(a, b Vec) Box {
	return Box{
		Min:   Vec{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max:   Vec{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
		valid: true,
	}
}

// FrameBox is the visible area for a frame of the given size.
func FrameBox(width, height float64) Box {
	return NewBox(Vec{-width / 2, -height / 2}, Vec{width / 2, height / 2})
}

func (b Box) Empty() bool { return !b.valid }
func (b Box) Width() float64 { return b.Max.X - b.Min.X }
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }
func (b Box) Center() Vec { return b.Min.Lerp(b.Max, 0.5) }

func (b Box) Include(p Vec) Box {
	if !b.valid {
		return NewBox(p, p)
	}
	b.Min = Vec{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y)}
	b.Max = Vec{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y)}
	return b
}

func (b Box) Union(o Box) Box {
	if !o.valid {
		return b
	}
	return b.Include(o.Min).Include(o.Max)
}

func (b Box) Expand(d float64) Box {
	if !b.valid {
		return b
	}
	b.Min = b.Min.Sub(Vec{d, d})
	b.Max = b.Max.Add(Vec{d, d})
	return b
}

// Edge is the critical point in direction dir: the centre moved by half the
// box size along each non-zero component.
func (b Box) Edge(dir Vec) Vec {
	c := b.Center()
	return Vec{
		c.X + sign(dir.X)*b.Width()/2,
		c.Y + sign(dir.Y)*b.Height()/2,
	}
}
