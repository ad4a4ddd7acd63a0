package anim

import (
	"math"

	"github.com/pkg/errors"
)

type stepKind uint8

const (
	stepAdd stepKind = iota
	stepRemove
	stepPlay
	stepWait
)

// Step is one recorded instruction of a scene timeline.
type Step struct {
	kind    stepKind
	objs    []*Mobject
	anims   []Animation
	runTime float64
	rate    RateFunc
	scene   *Scene
}

// RunTime sets how long a play step lasts, in seconds.
func (st *Step) RunTime(d float64) *Step {
	if d <= 0 {
		st.scene.fail(errors.Wrapf(ErrBadRunTime, "got %g", d))
	}
	st.runTime = d
	return st
}

// Rate sets the easing of a play step.
func (st *Step) Rate(f RateFunc) *Step {
	if f != nil {
		st.rate = f
	}
	return st
}

// Series is named data a scene plots, kept for previews and run history.
type Series struct {
	Name string
	X, Y []float64
}

// Scene records a timeline of instructions. Nothing is drawn until a Player
// steps through it, so code between Play calls runs before any animation.
type Scene struct {
	frame  Box
	steps  []*Step
	series []Series
	err    error
}

func NewScene(frameWidth, frameHeight float64) *Scene {
	return &Scene{frame: FrameBox(frameWidth, frameHeight)}
}

// Frame is the visible area, for edge and corner placement.
func (s *Scene) Frame() Box { return s.frame }

func (s *Scene) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns the first recording error.
func (s *Scene) Err() error { return s.err }

func (s *Scene) push(st *Step) *Step {
	st.scene = s
	s.steps = append(s.steps, st)
	return st
}

// Add puts mobjects on stage without animation.
func (s *Scene) Add(ms ...*Mobject) {
	s.push(&Step{kind: stepAdd, objs: ms})
}

// Remove takes mobjects off stage without animation.
func (s *Scene) Remove(ms ...*Mobject) {
	s.push(&Step{kind: stepRemove, objs: ms})
}

// Play runs animations together for one second with smooth easing unless the
// returned step says otherwise.
func (s *Scene) Play(anims ...Animation) *Step {
	if len(anims) == 0 {
		s.fail(ErrNoAnimations)
	}
	return s.push(&Step{kind: stepPlay, anims: anims, runTime: 1, rate: Smooth})
}

// Wait holds the current picture for d seconds.
func (s *Scene) Wait(d float64) {
	if d <= 0 {
		s.fail(errors.Wrapf(ErrBadRunTime, "wait %g", d))
	}
	s.push(&Step{kind: stepWait, runTime: d})
}

// Record keeps a named data series.
func (s *Scene) Record(name string, xs, ys []float64) {
	s.series = append(s.series, Series{
		Name: name,
		X:    append([]float64(nil), xs...),
		Y:    append([]float64(nil), ys...),
	})
}

func (s *Scene) Series() []Series { return s.series }

// Duration is the total length in seconds.
func (s *Scene) Duration() float64 {
	d := 0.0
	for _, st := range s.steps {
		if st.kind == stepPlay || st.kind == stepWait {
			d += st.runTime
		}
	}
	return d
}

// Plays and Waits count the timed steps.
func (s *Scene) Plays() int { return s.count(stepPlay) }
func (s *Scene) Waits() int { return s.count(stepWait) }

func (s *Scene) count(k stepKind) int {
	n := 0
	for _, st := range s.steps {
		if st.kind == k {
			n++
		}
	}
	return n
}

// FrameCount is how many frames a step of d seconds takes at fps.
func FrameCount(d float64, fps int) int {
	return max(1, int(math.Round(d*float64(fps))))
}

// TotalFrames is the number of frames the timeline renders at fps.
func (s *Scene) TotalFrames(fps int) int {
	n := 0
	for _, st := range s.steps {
		if st.kind == stepPlay || st.kind == stepWait {
			n += FrameCount(st.runTime, fps)
		}
	}
	return n
}
