package interp

import "fmt"

// Curve1D represents a piecewise linear curve sampled at increasing X.
type Curve1D struct {
	X []float64
	Y []float64
}

// Validate checks if the curve is valid.
func (c *Curve1D) Validate() error {
	if len(c.X) < 2 {
		return fmt.Errorf("curve must have at least 2 points")
	}
	if len(c.Y) != len(c.X) {
		return fmt.Errorf("number of Y values (%d) must match X coordinates (%d)", len(c.Y), len(c.X))
	}
	for i := 1; i < len(c.X); i++ {
		if c.X[i] <= c.X[i-1] {
			return fmt.Errorf("X coordinates must be strictly increasing")
		}
	}
	return nil
}

// At evaluates the curve at x. Outside the sampled range the curve is
// clamped to its endpoint values.
func (c *Curve1D) At(x float64) float64 {
	if x <= c.X[0] {
		return c.Y[0]
	}
	last := len(c.X) - 1
	if x >= c.X[last] {
		return c.Y[last]
	}
	for i := 0; i < last; i++ {
		if x >= c.X[i] && x <= c.X[i+1] {
			t := (x - c.X[i]) / (c.X[i+1] - c.X[i])
			return c.Y[i] + t*(c.Y[i+1]-c.Y[i])
		}
	}
	return c.Y[last]
}
