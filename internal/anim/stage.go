package anim

import "github.com/kamstrup/intmap"

// Stage is the live set of top-level mobjects during playback, in draw order.
type Stage struct {
	order   []*Mobject
	members *intmap.Map[int, *Mobject]
}

func NewStage() *Stage {
	return &Stage{members: intmap.New[int, *Mobject](64)}
}

func (s *Stage) Contains(m *Mobject) bool {
	_, ok := s.members.Get(m.id)
	return ok
}

// Add puts m on top. Any member that is m or part of m's family is removed
// first so nothing is drawn twice.
func (s *Stage) Add(ms ...*Mobject) {
	for _, m := range ms {
		s.Remove(m)
		s.order = append(s.order, m)
		s.members.Put(m.id, m)
	}
}

// Remove drops m and any members inside m's family. It reports whether
// anything was removed.
func (s *Stage) Remove(m *Mobject) bool {
	family := intmap.New[int, struct{}](8)
	for _, f := range m.Family() {
		family.Put(f.id, struct{}{})
	}
	removed := false
	kept := s.order[:0]
	for _, o := range s.order {
		if _, ok := family.Get(o.id); ok {
			s.members.Del(o.id)
			removed = true
			continue
		}
		kept = append(kept, o)
	}
	for i := len(kept); i < len(s.order); i++ {
		s.order[i] = nil
	}
	s.order = kept
	return removed
}

// Replace swaps old for repl at old's position. If old is not on stage repl is
// added on top.
func (s *Stage) Replace(old, repl *Mobject) {
	s.Remove(repl)
	for i, o := range s.order {
		if o == old {
			s.members.Del(old.id)
			s.order[i] = repl
			s.members.Put(repl.id, repl)
			return
		}
	}
	s.Add(repl)
}

func (s *Stage) Mobjects() []*Mobject {
	return append([]*Mobject(nil), s.order...)
}

func (s *Stage) Len() int { return len(s.order) }

// Leaves returns every drawable leaf in draw order.
func (s *Stage) Leaves() []*Mobject {
	var out []*Mobject
	for _, m := range s.order {
		out = append(out, m.Leaves()...)
	}
	return out
}

func (s *Stage) update() {
	for _, m := range s.order {
		m.update()
	}
}
