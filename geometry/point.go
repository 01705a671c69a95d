// Package geometry provides the 2D primitives and algorithms the stitch
// generators build on: polygon offsetting, Ramer-Douglas-Peucker
// simplification, arc-length resampling, nearest-join path sequencing,
// and rotation. All coordinates are millimetres, origin at design
// centre, +x right, +y up.
package geometry

import "math"

// Point is a position in millimetres.
type Point struct {
	X, Y float64
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dist returns the Euclidean distance to another point.
func (p Point) Dist(o Point) float64 {
	return math.Sqrt(p.DistSq(o))
}

// DistSq returns the squared Euclidean distance, avoiding the sqrt when
// only comparison is needed.
func (p Point) DistSq(o Point) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// Length returns the vector's magnitude.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Normalize returns a unit vector in the same direction, or the zero
// vector if p is (near) zero-length.
func (p Point) Normalize() Point {
	l := p.Length()
	if l < 1e-12 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Dot returns the dot product.
func (p Point) Dot(o Point) float64 { return p.X*o.X + p.Y*o.Y }

// LeftNormal returns p rotated +90 degrees; it is not normalised, so it
// is a unit vector only when p is.
func (p Point) LeftNormal() Point { return Point{-p.Y, p.X} }

// Rotate rotates the point by angleRad around the origin.
func (p Point) Rotate(angleRad float64) Point {
	c, s := math.Cos(angleRad), math.Sin(angleRad)
	return Point{
		X: p.X*c - p.Y*s,
		Y: p.X*s + p.Y*c,
	}
}

// RotatePolygon rotates every vertex of poly by angleRad around the
// origin. Grounded on coords.Matrix's Rotate transform, specialised to
// the pure-rotation case the tatami generator needs (rotate rows flat,
// rotate penetrations back).
func RotatePolygon(poly []Point, angleRad float64) []Point {
	out := make([]Point, len(poly))
	for i, p := range poly {
		out[i] = p.Rotate(angleRad)
	}
	return out
}
