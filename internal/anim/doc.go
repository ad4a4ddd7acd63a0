// Package anim is a small declarative toolkit for explainer animations.
//
// A scene script builds mobjects (shapes, text, axes, curves), lays them out
// and records a timeline on a [Scene]:
//
//	s := anim.NewScene(14.22, 8)
//	axes := anim.NewAxes(anim.AxesConfig{X: anim.R(-1, 1, 0.5), Y: anim.R(-1, 1, 0.5)})
//	curve := axes.Plot(math.Sin, -1, 1, anim.Red)
//	s.Add(axes.Mobject)
//	s.Play(anim.Create(curve)).RunTime(2)
//	s.Wait(1)
//
// A [Player] then steps the timeline frame by frame; each frame's draw list
// comes from [Player.Visible]. Recording and playback are separate, so the
// script runs to completion before the first frame exists.
//
// # Animations
//
//   - [Create], [Write]: progressive reveal
//   - [FadeIn], [FadeOut]: opacity, adding or removing from the stage
//   - [Transform], [ReplacementTransform]: morph one mobject into another
//   - [Tracker.AnimateTo]: drive a value read by [AlwaysRedraw] updaters
//
// Easing comes from gween ([Smooth] by default, [Linear] on request).
//
// Nothing here is safe for concurrent use.
package anim
