package anim

import (
	"math"
	"sync/atomic"
)

var globalMobjectID atomic.Int64

func nextMobjectID() int {
	return int(globalMobjectID.Add(1))
}

// Kind distinguishes what a Mobject draws.
type Kind uint8

const (
	KindPath Kind = iota
	KindText
	KindGroup
	// KindGuide carries reference points that move with their group but are
	// never drawn.
	KindGuide
)

// Path is a polyline in frame units.
type Path struct {
	Points []Vec
	Closed bool
}

func (p Path) clone() Path {
	return Path{Points: append([]Vec(nil), p.Points...), Closed: p.Closed}
}

// Mobject is a drawable scene object. Which fields are meaningful depends on
// Kind: paths use Paths and the stroke/fill style, text uses Text, FontSize,
// LineSpacing and Center, groups use Children.
type Mobject struct {
	id   int
	Kind Kind

	Paths    []Path
	Children []*Mobject

	Text        string
	FontSize    float64
	LineSpacing float64
	Center      Vec

	StrokeColor Color
	StrokeWidth float64
	FillColor   Color
	FillOpacity float64
	Opacity     float64
	// Reveal is the drawn fraction: path length for paths, glyphs for text.
	Reveal float64

	updaters []func(*Mobject)
}

func newMobject(kind Kind) *Mobject {
	return &Mobject{
		id:          nextMobjectID(),
		Kind:        kind,
		StrokeColor: White,
		FillColor:   White,
		Opacity:     1,
		Reveal:      1,
	}
}

func (m *Mobject) ID() int { return m.id }

// Copy returns a deep copy with fresh ids. Updaters are not copied.
func (m *Mobject) Copy() *Mobject {
	c := *m
	c.id = nextMobjectID()
	c.updaters = nil
	c.Paths = make([]Path, len(m.Paths))
	for i, p := range m.Paths {
		c.Paths[i] = p.clone()
	}
	c.Children = make([]*Mobject, len(m.Children))
	for i, ch := range m.Children {
		c.Children[i] = ch.Copy()
	}
	return &c
}

// Become turns m into a copy of other while keeping m's identity and updaters.
func (m *Mobject) Become(other *Mobject) *Mobject {
	id, updaters := m.id, m.updaters
	*m = *other.Copy()
	m.id = id
	m.updaters = updaters
	return m
}

// AddUpdater registers fn to run on m once per rendered frame.
func (m *Mobject) AddUpdater(fn func(*Mobject)) *Mobject {
	m.updaters = append(m.updaters, fn)
	return m
}

func (m *Mobject) update() {
	for _, fn := range m.updaters {
		fn(m)
	}
	for _, ch := range m.Children {
		ch.update()
	}
}

// Family is m followed by all its descendants, depth first.
func (m *Mobject) Family() []*Mobject {
	out := []*Mobject{m}
	for _, ch := range m.Children {
		out = append(out, ch.Family()...)
	}
	return out
}

// Leaves are the drawable members of the family.
func (m *Mobject) Leaves() []*Mobject {
	var out []*Mobject
	for _, f := range m.Family() {
		if f.Kind == KindPath || f.Kind == KindText {
			out = append(out, f)
		}
	}
	return out
}

// Add appends children to a group.
func (m *Mobject) Add(children ...*Mobject) *Mobject {
	m.Children = append(m.Children, children...)
	return m
}

// Child returns the i-th child, like indexing a group.
func (m *Mobject) Child(i int) *Mobject {
	return m.Children[i]
}

// Em is the text em size in frame units.
func (m *Mobject) Em() float64 {
	return m.FontSize / 96
}

// Box is the bounding box of everything m draws.
func (m *Mobject) Box() Box {
	var b Box
	switch m.Kind {
	case KindPath:
		for _, p := range m.Paths {
			for _, pt := range p.Points {
				b = b.Include(pt)
			}
		}
	case KindText:
		w, h := measureText(m)
		b = NewBox(m.Center.Sub(Vec{w / 2, h / 2}), m.Center.Add(Vec{w / 2, h / 2}))
	}
	for _, ch := range m.Children {
		if ch.Kind != KindGuide {
			b = b.Union(ch.Box())
		}
	}
	return b
}

// GetCenter is the centre of the bounding box.
func (m *Mobject) GetCenter() Vec { return m.Box().Center() }

func (m *Mobject) Width() float64  { return m.Box().Width() }
func (m *Mobject) Height() float64 { return m.Box().Height() }

// Start and End are the first and last points of the first path.
func (m *Mobject) Start() Vec {
	for _, f := range m.Family() {
		if len(f.Paths) > 0 && len(f.Paths[0].Points) > 0 {
			return f.Paths[0].Points[0]
		}
	}
	return m.GetCenter()
}

func (m *Mobject) End() Vec {
	for _, f := range m.Family() {
		if len(f.Paths) > 0 {
			pts := f.Paths[len(f.Paths)-1].Points
			if len(pts) > 0 {
				return pts[len(pts)-1]
			}
		}
	}
	return m.GetCenter()
}

// apply maps every point of the family through fn. Text centres move too.
func (m *Mobject) apply(fn func(Vec) Vec) {
	for _, f := range m.Family() {
		for i := range f.Paths {
			for j, p := range f.Paths[i].Points {
				f.Paths[i].Points[j] = fn(p)
			}
		}
		if f.Kind == KindText {
			f.Center = fn(f.Center)
		}
	}
}

// Style setters. SetColor sets both stroke and fill on the whole family.

func (m *Mobject) SetColor(c Color) *Mobject {
	for _, f := range m.Family() {
		f.StrokeColor = c
		f.FillColor = c
	}
	return m
}

func (m *Mobject) SetStroke(c Color, width float64) *Mobject {
	for _, f := range m.Family() {
		f.StrokeColor = c
		f.StrokeWidth = width
	}
	return m
}

func (m *Mobject) SetFill(c Color, opacity float64) *Mobject {
	for _, f := range m.Family() {
		f.FillColor = c
		f.FillOpacity = opacity
	}
	return m
}

func (m *Mobject) SetOpacity(o float64) *Mobject {
	for _, f := range m.Family() {
		f.Opacity = o
	}
	return m
}

// pathLength is the total length of a path's polyline.
func pathLength(p Path) float64 {
	l := 0.0
	for i := 1; i < len(p.Points); i++ {
		l += p.Points[i].Dist(p.Points[i-1])
	}
	if p.Closed && len(p.Points) > 2 {
		l += p.Points[0].Dist(p.Points[len(p.Points)-1])
	}
	return l
}

// Partial returns the first frac of p by arc length. A partial closed path is
// returned open.
func Partial(p Path, frac float64) Path {
	if frac >= 1 {
		return p
	}
	if frac <= 0 || len(p.Points) == 0 {
		return Path{}
	}
	pts := p.Points
	if p.Closed && len(pts) > 2 {
		pts = append(append([]Vec(nil), pts...), pts[0])
	}
	target := frac * pathLength(p)
	out := []Vec{pts[0]}
	acc := 0.0
	for i := 1; i < len(pts); i++ {
		seg := pts[i].Dist(pts[i-1])
		if acc+seg >= target {
			t := 0.0
			if seg > 0 {
				t = (target - acc) / seg
			}
			out = append(out, pts[i-1].Lerp(pts[i], t))
			break
		}
		acc += seg
		out = append(out, pts[i])
	}
	return Path{Points: out}
}

// resample returns n points spread evenly by arc length along p. Closed paths
// include the closing segment.
func resample(p Path, n int) []Vec {
	pts := p.Points
	if len(pts) == 0 {
		return make([]Vec, n)
	}
	if p.Closed && len(pts) > 2 {
		pts = append(append([]Vec(nil), pts...), pts[0])
	}
	if len(pts) == 1 || n == 1 {
		out := make([]Vec, n)
		for i := range out {
			out[i] = pts[0]
		}
		return out
	}
	cum := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		cum[i] = cum[i-1] + pts[i].Dist(pts[i-1])
	}
	total := cum[len(cum)-1]
	out := make([]Vec, n)
	j := 1
	for i := range out {
		d := total * float64(i) / float64(n-1)
		for j < len(cum)-1 && cum[j] < d {
			j++
		}
		seg := cum[j] - cum[j-1]
		t := 0.0
		if seg > 0 {
			t = math.Max(0, math.Min(1, (d-cum[j-1])/seg))
		}
		out[i] = pts[j-1].Lerp(pts[j], t)
	}
	return out
}
