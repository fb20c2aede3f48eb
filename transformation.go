package vectorkit

import (
	"fmt"
	"iter"
	"math"
)

const degreesToRadians = math.Pi / 180

// Transformation describes a 2D affine map via six parameters.
//
// The parameters form this augmented matrix:
//
//	| ScaleX  Rotate1 TranslateX |
//	| Rotate0 ScaleY  TranslateY |
//	| 0       0       1          |
//
// so that a point (x, y) maps to
//
//	x' = ScaleX*x + Rotate1*y + TranslateX
//	y' = Rotate0*x + ScaleY*y + TranslateY
//
// Composition follows the matrix product: a.Mul(b) applies b first and a
// second, and (a.Mul(b)).Apply(p) == a.Apply(b.Apply(p)).
//
// Transformations are values. Two transformations are equal (==) iff all six
// parameters are equal.
type Transformation struct {
	ScaleX, Rotate0, Rotate1, ScaleY, TranslateX, TranslateY float64
}

// Identity is the identity transformation.
var Identity = Transformation{1, 0, 0, 1, 0, 0}

// IdentityTransformation returns [Identity].
func IdentityTransformation() Transformation {
	return Identity
}

// NewTransformation creates a transformation from its parameters in the order
// (ScaleX, Rotate0, Rotate1, ScaleY, TranslateX, TranslateY).
func NewTransformation(n [6]float64) Transformation {
	return Transformation{n[0], n[1], n[2], n[3], n[4], n[5]}
}

// Coefficients returns the parameters of the transformation in the order
// accepted by [NewTransformation].
func (t Transformation) Coefficients() [6]float64 {
	return [6]float64{t.ScaleX, t.Rotate0, t.Rotate1, t.ScaleY, t.TranslateX, t.TranslateY}
}

// Translate creates a transformation that moves points by (dx, dy).
func Translate(dx, dy float64) Transformation {
	return Transformation{1, 0, 0, 1, dx, dy}
}

// TranslatePt creates a transformation that moves points by p.
func TranslatePt(p Point) Transformation {
	return Translate(p.X, p.Y)
}

// Scale creates a transformation representing non-uniform scaling about the
// origin.
func Scale(sx, sy float64) Transformation {
	return Transformation{sx, 0, 0, sy, 0, 0}
}

// ScalePt creates a scaling by p.X horizontally and p.Y vertically.
func ScalePt(p Point) Transformation {
	return Scale(p.X, p.Y)
}

// ScaleUniform creates a scaling by s in both directions.
func ScaleUniform(s float64) Transformation {
	return Scale(s, s)
}

// Shear creates a shear by the given factors. A horizontal factor of x moves
// a point x units to the right for every unit of y.
func Shear(x, y float64) Transformation {
	return Transformation{1, y, x, 1, 0, 0}
}

// ShearRadians creates a shear by the given angles, in radians.
func ShearRadians(x, y float64) Transformation {
	return Shear(math.Tan(x), math.Tan(y))
}

// ShearDegrees creates a shear by the given angles, in degrees.
func ShearDegrees(x, y float64) Transformation {
	return ShearRadians(x*degreesToRadians, y*degreesToRadians)
}

// RotateRadians creates a rotation about the origin.
//
// A positive angle rotates the positive X direction into positive Y. In a
// y-down coordinate system, as used by raster images, that is a clockwise
// rotation.
func RotateRadians(th float64) Transformation {
	sin, cos := math.Sincos(th)
	return Transformation{cos, sin, -sin, cos, 0, 0}
}

// RotateDegrees is like [RotateRadians] but takes its angle in degrees.
func RotateDegrees(deg float64) Transformation {
	return RotateRadians(deg * degreesToRadians)
}

// Reflect creates a reflection about the origin. If acrossX is set, x
// coordinates are negated (a mirror in the vertical axis); if acrossY is set,
// y coordinates are negated.
func Reflect(acrossX, acrossY bool) Transformation {
	sx, sy := 1.0, 1.0
	if acrossX {
		sx = -1
	}
	if acrossY {
		sy = -1
	}
	return Scale(sx, sy)
}

// TransformAt returns t relative to p instead of the origin.
//
// Equivalent to "TranslatePt(p) * t * TranslatePt(-p)".
func TransformAt(p Point, t Transformation) Transformation {
	return TranslatePt(p).Mul(t).Mul(TranslatePt(p.Negate()))
}

// ScaleAt creates a scaling by (sx, sy) about center.
func ScaleAt(center Point, sx, sy float64) Transformation {
	return TransformAt(center, Scale(sx, sy))
}

// RotateRadiansAt creates a rotation of th radians about center.
func RotateRadiansAt(center Point, th float64) Transformation {
	return TransformAt(center, RotateRadians(th))
}

// RotateDegreesAt creates a rotation of deg degrees about center.
func RotateDegreesAt(center Point, deg float64) Transformation {
	return TransformAt(center, RotateDegrees(deg))
}

// ReflectAt creates a reflection across the vertical line through center.X
// (if acrossX is set) and/or the horizontal line through center.Y (if acrossY
// is set).
func ReflectAt(center Point, acrossX, acrossY bool) Transformation {
	return TransformAt(center, Reflect(acrossX, acrossY))
}

// Mul composes two transformations. The result applies o first and t second.
func (t Transformation) Mul(o Transformation) Transformation {
	return Transformation{
		t.ScaleX*o.ScaleX + t.Rotate1*o.Rotate0,
		t.Rotate0*o.ScaleX + t.ScaleY*o.Rotate0,
		t.ScaleX*o.Rotate1 + t.Rotate1*o.ScaleY,
		t.Rotate0*o.Rotate1 + t.ScaleY*o.ScaleY,
		t.ScaleX*o.TranslateX + t.Rotate1*o.TranslateY + t.TranslateX,
		t.Rotate0*o.TranslateX + t.ScaleY*o.TranslateY + t.TranslateY,
	}
}

// Then creates t followed by o.
//
// Equivalent to "o * t"
func (t Transformation) Then(o Transformation) Transformation {
	return o.Mul(t)
}

// Compose multiplies ts from left to right. Compose(a, b, c) equals
// a.Mul(b).Mul(c) and applies c first. Compose() is the identity.
func Compose(ts ...Transformation) Transformation {
	out := Identity
	for _, t := range ts {
		out = out.Mul(t)
	}
	return out
}

// Apply maps p through t.
func (t Transformation) Apply(p Point) Point {
	return p.Transform(t)
}

// IsIdentity reports whether t is exactly the identity.
func (t Transformation) IsIdentity() bool {
	return t == Identity
}

// IsRectilinear reports whether t has no rotation or shear component, that
// is, whether its linear part is diagonal. Scaling, reflection and
// translation are rectilinear.
func (t Transformation) IsRectilinear() bool {
	const e = 0x1p-52
	return math.Abs(t.Rotate0) < e && math.Abs(t.Rotate1) < e
}

// Determinant computes the determinant of the linear part.
func (t Transformation) Determinant() float64 {
	return t.ScaleX*t.ScaleY - t.Rotate0*t.Rotate1
}

// ExpansionFactor returns the factor by which t scales lengths on average,
// the square root of the absolute determinant.
func (t Transformation) ExpansionFactor() float64 {
	return math.Sqrt(math.Abs(t.Determinant()))
}

// Invert computes the inverse transformation.
//
// Produces NaN values when the determinant is zero.
func (t Transformation) Invert() Transformation {
	invDet := 1 / t.Determinant()
	return Transformation{
		+invDet * t.ScaleY,
		-invDet * t.Rotate0,
		-invDet * t.Rotate1,
		+invDet * t.ScaleX,
		+invDet * (t.Rotate1*t.TranslateY - t.ScaleY*t.TranslateX),
		+invDet * (t.Rotate0*t.TranslateX - t.ScaleX*t.TranslateY),
	}
}

// ApproxEqual reports whether all parameters of t and o differ by at most
// epsilon.
func (t Transformation) ApproxEqual(o Transformation, epsilon float64) bool {
	a := t.Coefficients()
	b := o.Coefficients()
	for i := range a {
		if math.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}

func (t Transformation) IsInf() bool {
	for _, v := range t.Coefficients() {
		if math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

func (t Transformation) IsNaN() bool {
	for _, v := range t.Coefficients() {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

func (t Transformation) String() string {
	return fmt.Sprintf("Transformation(%g, %g, %g, %g, %g, %g)",
		t.ScaleX, t.Rotate0, t.Rotate1, t.ScaleY, t.TranslateX, t.TranslateY)
}

// TransformRectBoundingBox computes the bounding box of a transformed rectangle.
//
// Returns the minimal [Rect] that encloses the given rectangle after the
// transformation. If the transformation is rectilinear, then this bounding box
// is "tight", in other words the returned rectangle is the transformed
// rectangle.
//
// The returned rectangle always has non-negative width and height.
func (t Transformation) TransformRectBoundingBox(rect Rect) Rect {
	p00 := Pt(rect.X0, rect.Y0).Transform(t)
	p01 := Pt(rect.X0, rect.Y1).Transform(t)
	p10 := Pt(rect.X1, rect.Y0).Transform(t)
	p11 := Pt(rect.X1, rect.Y1).Transform(t)
	return NewRectFromPoints(p00, p01).Union(NewRectFromPoints(p10, p11))
}

// Transform maps every value of seq through t.
func Transform[T interface{ Transform(Transformation) T }](seq iter.Seq[T], t Transformation) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if !yield(v.Transform(t)) {
				break
			}
		}
	}
}
