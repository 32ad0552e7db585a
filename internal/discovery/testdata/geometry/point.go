// Package geometry provides shapes for discovery tests.
package geometry

import "math"

// Point is a location on the plane.
type Point struct {
	// X is the horizontal coordinate.
	X float64
	Y float64 // Y is the vertical coordinate.

	hidden int
}

// Distance returns the distance between a and b.
//
// # Example
//
//	geometry.Distance(a, b)
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Shift moves p horizontally by dx and returns it.
func (p *Point) Shift(dx float64) *Point {
	p.X += dx
	return p
}

func helper() int {
	return Point{}.hidden
}
