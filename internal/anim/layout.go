package anim

// Shift moves m by d.
func (m *Mobject) Shift(d Vec) *Mobject {
	m.apply(func(p Vec) Vec { return p.Add(d) })
	return m
}

// MoveTo centres m on p.
func (m *Mobject) MoveTo(p Vec) *Mobject {
	return m.Shift(p.Sub(m.GetCenter()))
}

// Scale scales m about its centre. Font sizes scale, stroke widths do not.
func (m *Mobject) Scale(f float64) *Mobject {
	return m.ScaleAbout(f, m.GetCenter())
}

func (m *Mobject) ScaleAbout(f float64, about Vec) *Mobject {
	m.apply(func(p Vec) Vec { return about.Add(p.Sub(about).Mul(f)) })
	for _, fm := range m.Family() {
		if fm.Kind == KindText {
			fm.FontSize *= f
		}
	}
	return m
}

// NextTo places m beside target in direction dir with the default buffer.
func (m *Mobject) NextTo(target *Mobject, dir Vec) *Mobject {
	return m.NextToBuff(target, dir, MedSmallBuff)
}

func (m *Mobject) NextToBuff(target *Mobject, dir Vec, buff float64) *Mobject {
	return m.NextToPointBuff(target.Box().Edge(dir), dir, buff)
}

// NextToPoint places m so that its edge opposite dir sits buff away from p.
func (m *Mobject) NextToPoint(p Vec, dir Vec) *Mobject {
	return m.NextToPointBuff(p, dir, MedSmallBuff)
}

func (m *Mobject) NextToPointBuff(p Vec, dir Vec, buff float64) *Mobject {
	own := m.Box().Edge(dir.Mul(-1))
	return m.Shift(p.Add(dir.Mul(buff)).Sub(own))
}

// ToEdge pushes m against a frame edge, keeping the other coordinate.
func (m *Mobject) ToEdge(frame Box, dir Vec) *Mobject {
	return m.ToEdgeBuff(frame, dir, EdgeBuff)
}

func (m *Mobject) ToEdgeBuff(frame Box, dir Vec, buff float64) *Mobject {
	b := m.Box()
	target := frame.Edge(dir).Sub(dir.Mul(buff))
	own := b.Edge(dir)
	shift := target.Sub(own)
	if dir.X == 0 {
		shift.X = 0
	}
	if dir.Y == 0 {
		shift.Y = 0
	}
	return m.Shift(shift)
}

// ToCorner pushes m into a frame corner such as UR.
func (m *Mobject) ToCorner(frame Box, corner Vec) *Mobject {
	return m.ToEdgeBuff(frame, corner, EdgeBuff)
}

// Arrange lines children up in direction dir, buff apart. A non-zero alignEdge
// aligns every child's edge with the first child's. The group keeps its centre.
func (m *Mobject) Arrange(dir, alignEdge Vec, buff float64) *Mobject {
	if len(m.Children) == 0 {
		return m
	}
	center := m.GetCenter()
	first := m.Children[0]
	for i := 1; i < len(m.Children); i++ {
		m.Children[i].NextToBuff(m.Children[i-1], dir, buff)
	}
	if alignEdge != Origin {
		ref := first.Box().Edge(alignEdge)
		for _, ch := range m.Children[1:] {
			own := ch.Box().Edge(alignEdge)
			d := ref.Sub(own)
			if alignEdge.X == 0 {
				d.X = 0
			}
			if alignEdge.Y == 0 {
				d.Y = 0
			}
			ch.Shift(d)
		}
	}
	return m.MoveTo(center)
}
