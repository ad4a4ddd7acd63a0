package anim

import "errors"

// Domain errors for scene playback.
var (
	// ErrEmptyScene indicates a timeline that produces no frames.
	ErrEmptyScene = errors.New("anim: scene has no frames")

	// ErrBadRunTime indicates a non-positive play or wait duration.
	ErrBadRunTime = errors.New("anim: run time must be positive")

	// ErrNoAnimations indicates Play was called without animations.
	ErrNoAnimations = errors.New("anim: play called without animations")
)
