package anim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tracker holds a number that animations can drive and updaters can read.
type Tracker struct {
	value float64
}

func NewTracker(v float64) *Tracker { return &Tracker{value: v} }

func (t *Tracker) Value() float64 { return t.value }
func (t *Tracker) Set(v float64)  { t.value = v }

// AnimateTo moves the tracked value to v over the step.
func (t *Tracker) AnimateTo(v float64) Animation {
	return &trackerAnim{tracker: t, to: v}
}

type trackerAnim struct {
	tracker *Tracker
	to      float64
	tween   *gween.Tween
}

func (a *trackerAnim) Begin(*Stage) {
	// Easing comes from the step, so the tween itself is linear over unit time.
	a.tween = gween.New(float32(a.tracker.value), float32(a.to), 1, ease.Linear)
}

func (a *trackerAnim) Interpolate(alpha float64) {
	v, _ := a.tween.Set(float32(alpha))
	a.tracker.value = float64(v)
}

func (a *trackerAnim) Finish(*Stage) {
	a.tracker.value = a.to
}

// AlwaysRedraw returns a mobject rebuilt from build on every frame.
func AlwaysRedraw(build func() *Mobject) *Mobject {
	m := build()
	return m.AddUpdater(func(m *Mobject) {
		m.Become(build())
	})
}
