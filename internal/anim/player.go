package anim

import "github.com/pkg/errors"

// Player steps a recorded scene one frame at a time.
type Player struct {
	scene *Scene
	fps   int
	stage *Stage

	next   int
	active *Step
	k, n   int
	frame  int
	total  int
	done   bool
}

func NewPlayer(s *Scene, fps int) (*Player, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	if fps <= 0 {
		return nil, errors.Errorf("anim: fps must be positive, got %d", fps)
	}
	total := s.TotalFrames(fps)
	if total == 0 {
		return nil, ErrEmptyScene
	}
	return &Player{scene: s, fps: fps, stage: NewStage(), total: total}, nil
}

// Next advances to the next frame. It returns false once the timeline is
// exhausted, in which case no new frame was produced.
func (p *Player) Next() bool {
	if p.done {
		return false
	}
	for p.active == nil {
		if p.next >= len(p.scene.steps) {
			p.done = true
			return false
		}
		st := p.scene.steps[p.next]
		p.next++
		switch st.kind {
		case stepAdd:
			p.stage.Add(st.objs...)
		case stepRemove:
			for _, m := range st.objs {
				p.stage.Remove(m)
			}
		case stepPlay:
			for _, a := range st.anims {
				a.Begin(p.stage)
			}
			p.start(st)
		case stepWait:
			p.start(st)
		}
	}

	st := p.active
	p.k++
	if st.kind == stepPlay {
		alpha := st.rate(float64(p.k) / float64(p.n))
		for _, a := range st.anims {
			a.Interpolate(alpha)
		}
		if p.k == p.n {
			for _, a := range st.anims {
				a.Finish(p.stage)
			}
		}
	}
	if p.k == p.n {
		p.active = nil
	}
	p.stage.update()
	p.frame++
	return true
}

func (p *Player) start(st *Step) {
	p.active = st
	p.k = 0
	p.n = FrameCount(st.runTime, p.fps)
}

// Seek advances until the scene time reaches t or the timeline ends.
func (p *Player) Seek(t float64) bool {
	for p.Time() < t {
		if !p.Next() {
			return false
		}
	}
	return true
}

// Frame is the number of frames produced so far.
func (p *Player) Frame() int { return p.frame }

// Time is the scene time of the current frame in seconds.
func (p *Player) Time() float64 { return float64(p.frame) / float64(p.fps) }

func (p *Player) TotalFrames() int { return p.total }
func (p *Player) Done() bool       { return p.done }
func (p *Player) Stage() *Stage    { return p.stage }

// Visible is the draw list for the current frame.
func (p *Player) Visible() []*Mobject {
	var out []*Mobject
	for _, l := range p.stage.Leaves() {
		if l.Opacity > 0 && l.Reveal > 0 {
			out = append(out, l)
		}
	}
	return out
}
