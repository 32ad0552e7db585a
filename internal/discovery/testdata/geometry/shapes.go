package geometry

import "math"

// Circle is a round shape.
type Circle struct {
	Center Point
	Radius float64
}

// NewCircle builds a circle around center.
func NewCircle(center *Point, radius float64, tags ...string) (*Circle, error) {
	_ = tags
	return &Circle{Center: *center, Radius: radius}, nil
}

// Area returns the enclosed area.
func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}
