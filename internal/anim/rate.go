package anim

import "github.com/tanema/gween/ease"

// RateFunc maps linear progress in [0,1] to eased progress.
type RateFunc func(t float64) float64

// FromEase adapts a gween easing function.
func FromEase(fn ease.TweenFunc) RateFunc {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
}

var (
	Linear = FromEase(ease.Linear)
	Smooth = FromEase(ease.InOutCubic)
)
