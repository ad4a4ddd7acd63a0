package regress

import "errors"

var (
	// ErrEmptyInput indicates no samples were given to a fit.
	ErrEmptyInput = errors.New("regress: empty input")

	// ErrLengthMismatch indicates xs and ys differ in length.
	ErrLengthMismatch = errors.New("regress: xs and ys length mismatch")

	// ErrNegativeDegree indicates a polynomial degree below zero.
	ErrNegativeDegree = errors.New("regress: negative polynomial degree")
)
