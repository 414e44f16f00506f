package datastructure

import (
	"math"
)

// EPS. tolerance for comparing path costs, edge costs are sums of products of floats.
const (
	EPS = 1e-6
)

func Eq(a, b float64) bool {
	return math.Abs(a-b) <= EPS
}

func Lt(a, b float64) bool {
	return a+EPS < b
}

func Le(a, b float64) bool {
	return a <= b+EPS
}

// Ge. a >= b within EPS. relaxing an edge whose new cost is Ge the current label is a no-op.
func Ge(a, b float64) bool {
	return Le(b, a)
}
