package anim

type transform struct {
	src, tgt   *Mobject
	start, end *Mobject
	replace    bool
}

// Transform morphs src into tgt's shape and style. src stays on stage and
// ends up looking like tgt; tgt itself is not added.
func Transform(src, tgt *Mobject) Animation {
	return &transform{src: src, tgt: tgt}
}

// ReplacementTransform morphs src into tgt, then puts tgt on stage in src's
// place.
func ReplacementTransform(src, tgt *Mobject) Animation {
	return &transform{src: src, tgt: tgt, replace: true}
}

func (a *transform) Begin(st *Stage) {
	if !st.Contains(a.src) {
		st.Add(a.src)
	}
	a.start = a.src.Copy()
	a.end = a.tgt.Copy()
}

func (a *transform) Interpolate(alpha float64) {
	a.src.Become(morph(a.start, a.end, alpha))
}

func (a *transform) Finish(st *Stage) {
	a.src.Become(a.end)
	if a.replace {
		st.Replace(a.src, a.tgt)
	}
}

// morph blends two mobjects leaf by leaf. Leaf lists of unequal length are
// padded by repeating their last leaf.
func morph(a, b *Mobject, t float64) *Mobject {
	if t >= 1 {
		return b
	}
	la, lb := a.Leaves(), b.Leaves()
	if len(la) == 0 && len(lb) == 0 {
		return b
	}
	if len(la) == 0 {
		return fadeCopy(b, t)
	}
	if len(lb) == 0 {
		return fadeCopy(a, 1-t)
	}
	n := max(len(la), len(lb))
	out := make([]*Mobject, n)
	for i := 0; i < n; i++ {
		out[i] = morphLeaf(la[min(i, len(la)-1)], lb[min(i, len(lb)-1)], t)
	}
	if n == 1 && a.Kind != KindGroup && b.Kind != KindGroup {
		return out[0]
	}
	return Group(out...)
}

func fadeCopy(m *Mobject, f float64) *Mobject {
	c := m.Copy()
	for _, l := range c.Leaves() {
		l.Opacity *= f
	}
	return c
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func morphLeaf(a, b *Mobject, t float64) *Mobject {
	switch {
	case a.Kind == KindPath && b.Kind == KindPath:
		return morphPaths(a, b, t)
	case a.Kind == KindText && b.Kind == KindText && a.Text == b.Text:
		m := a.Copy()
		m.Center = a.Center.Lerp(b.Center, t)
		m.FontSize = lerp(a.FontSize, b.FontSize, t)
		blendStyle(m, a, b, t)
		return m
	}
	// Unlike leaves cross-fade while sliding towards each other.
	ca, cb := a.GetCenter(), b.GetCenter()
	from := fadeCopy(a, 1-t).Shift(cb.Sub(ca).Mul(t))
	to := fadeCopy(b, t).Shift(ca.Sub(cb).Mul(1 - t))
	return Group(from, to)
}

func blendStyle(m, a, b *Mobject, t float64) {
	m.StrokeColor = a.StrokeColor.Lerp(b.StrokeColor, t)
	m.FillColor = a.FillColor.Lerp(b.FillColor, t)
	m.StrokeWidth = lerp(a.StrokeWidth, b.StrokeWidth, t)
	m.FillOpacity = lerp(a.FillOpacity, b.FillOpacity, t)
	m.Opacity = lerp(a.Opacity, b.Opacity, t)
	m.Reveal = lerp(a.Reveal, b.Reveal, t)
}

func morphPaths(a, b *Mobject, t float64) *Mobject {
	m := a.Copy()
	n := max(len(a.Paths), len(b.Paths))
	m.Paths = make([]Path, n)
	for i := 0; i < n; i++ {
		pa := pathAt(a.Paths, i)
		pb := pathAt(b.Paths, i)
		k := max(len(pa.Points)+boolInt(pa.Closed), len(pb.Points)+boolInt(pb.Closed), 2)
		ra, rb := resample(pa, k), resample(pb, k)
		pts := make([]Vec, k)
		for j := range pts {
			pts[j] = ra[j].Lerp(rb[j], t)
		}
		m.Paths[i] = Path{Points: pts, Closed: pa.Closed && pb.Closed}
	}
	blendStyle(m, a, b, t)
	return m
}

func pathAt(paths []Path, i int) Path {
	if len(paths) == 0 {
		return Path{}
	}
	return paths[min(i, len(paths)-1)]
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
