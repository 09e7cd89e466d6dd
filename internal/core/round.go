package core

import "math"

// Rounding happens only at output projection, never mid-computation, so
// rounding error does not compound across aggregation passes.

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
