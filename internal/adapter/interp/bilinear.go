// Package interp provides linear interpolation over regularly sampled data.
package interp

import (
	"fmt"
	"math"
)

// Grid2D represents a regular 2D grid for bilinear interpolation.
type Grid2D struct {
	X      []float64   // X coordinates (e.g., years).
	Y      []float64   // Y coordinates (e.g., latitudes).
	Values [][]float64 // Values[i][j] corresponds to (X[j], Y[i]).
}

// Validate checks if the grid is valid.
func (g *Grid2D) Validate() error {
	if len(g.X) < 2 {
		return fmt.Errorf("grid must have at least 2 X coordinates")
	}
	if len(g.Y) < 2 {
		return fmt.Errorf("grid must have at least 2 Y coordinates")
	}
	if len(g.Values) != len(g.Y) {
		return fmt.Errorf("number of value rows (%d) must match Y coordinates (%d)", len(g.Values), len(g.Y))
	}
	for i, row := range g.Values {
		if len(row) != len(g.X) {
			return fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(g.X))
		}
	}

	// Check that coordinates are sorted and unique.
	for i := 1; i < len(g.X); i++ {
		if g.X[i] <= g.X[i-1] {
			return fmt.Errorf("X coordinates must be strictly increasing")
		}
	}
	for i := 1; i < len(g.Y); i++ {
		if g.Y[i] <= g.Y[i-1] {
			return fmt.Errorf("Y coordinates must be strictly increasing")
		}
	}

	return nil
}

// MinX returns the lower X bound of the grid.
func (g *Grid2D) MinX() float64 { return g.X[0] }

// MaxX returns the upper X bound of the grid.
func (g *Grid2D) MaxX() float64 { return g.X[len(g.X)-1] }

// MinY returns the lower Y bound of the grid.
func (g *Grid2D) MinY() float64 { return g.Y[0] }

// MaxY returns the upper Y bound of the grid.
func (g *Grid2D) MaxY() float64 { return g.Y[len(g.Y)-1] }

// At performs bilinear interpolation at (x, y). The grid is assumed to
// have been validated after loading.
func (g *Grid2D) At(x, y float64) (float64, error) {
	// Find the grid cell containing (x, y).
	xIdx := -1
	for i := 0; i < len(g.X)-1; i++ {
		if x >= g.X[i] && x <= g.X[i+1] {
			xIdx = i
			break
		}
	}
	if xIdx == -1 {
		return 0, fmt.Errorf("x coordinate %.6f is outside grid range [%.6f, %.6f]", x, g.X[0], g.X[len(g.X)-1])
	}

	yIdx := -1
	for i := 0; i < len(g.Y)-1; i++ {
		if y >= g.Y[i] && y <= g.Y[i+1] {
			yIdx = i
			break
		}
	}
	if yIdx == -1 {
		return 0, fmt.Errorf("y coordinate %.6f is outside grid range [%.6f, %.6f]", y, g.Y[0], g.Y[len(g.Y)-1])
	}

	// Normalized position within the cell, clamped against floating
	// point drift at the cell edges.
	t := (x - g.X[xIdx]) / (g.X[xIdx+1] - g.X[xIdx])
	u := (y - g.Y[yIdx]) / (g.Y[yIdx+1] - g.Y[yIdx])
	t = math.Max(0, math.Min(1, t))
	u = math.Max(0, math.Min(1, u))

	// Bilinear interpolation formula.
	result := (1-t)*(1-u)*g.Values[yIdx][xIdx] +
		t*(1-u)*g.Values[yIdx][xIdx+1] +
		(1-t)*u*g.Values[yIdx+1][xIdx] +
		t*u*g.Values[yIdx+1][xIdx+1]

	return result, nil
}
