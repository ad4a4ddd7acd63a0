package anim

// Animation changes mobjects over one Play step. Begin runs on the first frame
// of the step, Interpolate on every frame with eased progress, Finish after the
// last Interpolate.
type Animation interface {
	Begin(st *Stage)
	Interpolate(alpha float64)
	Finish(st *Stage)
}

// reveal draws leaves progressively: path length for shapes, glyphs for text.
type reveal struct {
	m      *Mobject
	leaves []*Mobject
}

// Create draws m's outline progressively.
func Create(m *Mobject) Animation { return &reveal{m: m} }

// Write reveals text glyph by glyph. On shapes it behaves like Create.
func Write(m *Mobject) Animation { return &reveal{m: m} }

func (a *reveal) Begin(st *Stage) {
	if !st.Contains(a.m) {
		st.Add(a.m)
	}
	a.leaves = a.m.Leaves()
	for _, l := range a.leaves {
		l.Reveal = 0
	}
}

func (a *reveal) Interpolate(alpha float64) {
	for _, l := range a.leaves {
		l.Reveal = alpha
	}
}

func (a *reveal) Finish(*Stage) {
	for _, l := range a.leaves {
		l.Reveal = 1
	}
}

type fade struct {
	ms      []*Mobject
	in      bool
	leaves  []*Mobject
	targets []float64
}

// FadeIn adds m and raises its opacity from zero.
func FadeIn(m *Mobject) Animation { return &fade{ms: []*Mobject{m}, in: true} }

// FadeOut lowers opacity to zero and removes the mobjects.
func FadeOut(ms ...*Mobject) Animation { return &fade{ms: ms} }

func (a *fade) Begin(st *Stage) {
	a.leaves, a.targets = nil, nil
	for _, m := range a.ms {
		if a.in && !st.Contains(m) {
			st.Add(m)
		}
		for _, l := range m.Leaves() {
			a.leaves = append(a.leaves, l)
			a.targets = append(a.targets, l.Opacity)
			l.Reveal = 1
		}
	}
	a.Interpolate(0)
}

func (a *fade) Interpolate(alpha float64) {
	if !a.in {
		alpha = 1 - alpha
	}
	for i, l := range a.leaves {
		l.Opacity = a.targets[i] * alpha
	}
}

func (a *fade) Finish(st *Stage) {
	if a.in {
		a.Interpolate(1)
		return
	}
	removed := make(map[*Mobject]bool)
	for _, m := range a.ms {
		if st.Remove(m) {
			for _, l := range m.Leaves() {
				removed[l] = true
			}
		}
	}
	// Removed mobjects get their opacity back so they can be shown again;
	// ones nested in a staged group stay invisible.
	for i, l := range a.leaves {
		if removed[l] {
			l.Opacity = a.targets[i]
		} else {
			l.Opacity = 0
		}
	}
}
