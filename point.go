package vectorkit

import (
	"fmt"
	"math"
)

// Point is a position or offset in the plane. Points are plain values and
// compare with ==, which is exact.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Add returns pt+o.
func (pt Point) Add(o Point) Point {
	return Point{
		X: pt.X + o.X,
		Y: pt.Y + o.Y,
	}
}

// Sub returns pt−o.
func (pt Point) Sub(o Point) Point {
	return Point{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
	}
}

// Mul multiplies pt and o componentwise.
func (pt Point) Mul(o Point) Point {
	return Point{
		X: pt.X * o.X,
		Y: pt.Y * o.Y,
	}
}

// Scale multiplies both coordinates by f.
func (pt Point) Scale(f float64) Point {
	return Point{
		X: pt.X * f,
		Y: pt.Y * f,
	}
}

// Negate returns a new point with the signs of x and y flipped.
func (pt Point) Negate() Point {
	return Point{
		X: -pt.X,
		Y: -pt.Y,
	}
}

// Abs returns a new point with the absolute values of x and y.
func (pt Point) Abs() Point {
	return Point{
		X: math.Abs(pt.X),
		Y: math.Abs(pt.Y),
	}
}

// Cross returns the cross product of pt and o, treated as vectors.
func (pt Point) Cross(o Point) float64 {
	return pt.X*o.Y - pt.Y*o.X
}

// Hypot returns the distance of pt from the origin.
func (pt Point) Hypot() float64 {
	return math.Hypot(pt.X, pt.Y)
}

// Transform maps pt through t.
func (pt Point) Transform(t Transformation) Point {
	return Point{
		X: t.ScaleX*pt.X + t.Rotate1*pt.Y + t.TranslateX,
		Y: t.Rotate0*pt.X + t.ScaleY*pt.Y + t.TranslateY,
	}
}

// Lerp linearly interpolates between two points.
func (pt Point) Lerp(o Point, t float64) Point {
	// pt + t * (o-pt)
	return pt.Add(o.Sub(pt).Scale(t))
}

// Midpoint returns the midpoint of two points.
func (pt Point) Midpoint(o Point) Point {
	return Point{
		X: 0.5 * (pt.X + o.X),
		Y: 0.5 * (pt.Y + o.Y),
	}
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return math.Hypot(x, y)
}

// DistanceSquared returns the squared euclidean distance between two points.
func (pt Point) DistanceSquared(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return x*x + y*y
}

// IsInf reports whether at least one of x and y is infinite.
func (pt Point) IsInf() bool {
	return math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0)
}

// IsNaN reports whether at least one of x and y is NaN.
func (pt Point) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y)
}
