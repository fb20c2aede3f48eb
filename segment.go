package vectorkit

import (
	"fmt"
	"iter"
	"log/slog"
	"math"
)

// DefaultAccuracy is the flattening tolerance used when a caller passes a
// non-positive accuracy. It is measured in the units of the coordinates,
// which for traced images is pixels.
const DefaultAccuracy = 0.1

// MaxFlattenSteps bounds the number of lines a single curve is flattened
// into, no matter how small the requested accuracy.
const MaxFlattenSteps = 1 << 16

type SegmentKind int

const (
	// A straight line.
	LineKind SegmentKind = iota + 1
	// A cubic Bézier curve.
	CubicKind
)

func (k SegmentKind) String() string {
	switch k {
	case LineKind:
		return "line"
	case CubicKind:
		return "cubic"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

// Segment is a directed piece of a path: either a straight line from start to
// end, or a cubic Bézier from start to end with the control points c1 and c2.
//
// Segments are immutable. The zero value is not a valid segment.
type Segment struct {
	kind SegmentKind
	// Lines use p[0] and p[1]. Cubics use all four points, in the order start,
	// c1, c2, end.
	p [4]Point
}

// NewLine returns the straight line from p0 to p1.
func NewLine(p0, p1 Point) Segment {
	return Segment{kind: LineKind, p: [4]Point{p0, p1}}
}

// NewCubic returns the cubic Bézier from p0 to p3 with control points c1 and c2.
func NewCubic(p0, c1, c2, p3 Point) Segment {
	return Segment{kind: CubicKind, p: [4]Point{p0, c1, c2, p3}}
}

// NewSegment builds a segment from its defining points: two points make a
// line, four points make a cubic Bézier. Any other number of points results
// in an error wrapping [ErrInvalidArgument].
func NewSegment(pts ...Point) (Segment, error) {
	switch len(pts) {
	case 2:
		return NewLine(pts[0], pts[1]), nil
	case 4:
		return NewCubic(pts[0], pts[1], pts[2], pts[3]), nil
	default:
		return Segment{}, fmt.Errorf("vectorkit: segment needs 2 or 4 points, got %d: %w", len(pts), ErrInvalidArgument)
	}
}

func (seg Segment) Kind() SegmentKind { return seg.kind }

// IsLine reports whether seg is a straight line.
func (seg Segment) IsLine() bool { return seg.kind == LineKind }

func (seg Segment) Start() Point { return seg.p[0] }

func (seg Segment) End() Point {
	if seg.kind == CubicKind {
		return seg.p[3]
	}
	return seg.p[1]
}

// Controls returns the control points of a cubic. For lines, ok is false.
func (seg Segment) Controls() (c1, c2 Point, ok bool) {
	if seg.kind != CubicKind {
		return Point{}, Point{}, false
	}
	return seg.p[1], seg.p[2], true
}

// Points returns the defining points of the segment: start and end for lines,
// start, c1, c2 and end for cubics.
func (seg Segment) Points() []Point {
	if seg.kind == CubicKind {
		return []Point{seg.p[0], seg.p[1], seg.p[2], seg.p[3]}
	}
	return []Point{seg.p[0], seg.p[1]}
}

// Equal reports whether seg and o are of the same kind and have identical
// defining points.
func (seg Segment) Equal(o Segment) bool {
	return seg == o
}

// Transform returns a new segment with all defining points mapped through t.
func (seg Segment) Transform(t Transformation) Segment {
	out := Segment{kind: seg.kind}
	for i := range seg.numPoints() {
		out.p[i] = seg.p[i].Transform(t)
	}
	return out
}

// Reverse returns the segment traversed in the opposite direction.
func (seg Segment) Reverse() Segment {
	if seg.kind == CubicKind {
		return NewCubic(seg.p[3], seg.p[2], seg.p[1], seg.p[0])
	}
	return NewLine(seg.p[1], seg.p[0])
}

// Eval evaluates the segment at t ∈ [0, 1].
func (seg Segment) Eval(t float64) Point {
	if seg.kind != CubicKind {
		return seg.p[0].Lerp(seg.p[1], t)
	}
	mt := 1.0 - t
	a := seg.p[0].Scale(mt * mt * mt)
	b := seg.p[1].Scale(mt * mt * 3.0)
	c := seg.p[2].Scale(mt * 3.0)
	d := seg.p[3]
	return a.Add(b.Add(c.Add(d.Scale(t)).Scale(t)).Scale(t))
}

// SignedArea returns the signed area under the segment by Green's theorem,
// ∫ x dy − y dx / 2. Summed over the segments of a closed contour it yields
// the enclosed area; lines and cubics both contribute exactly.
func (seg Segment) SignedArea() float64 {
	if seg.kind != CubicKind {
		return seg.p[0].Cross(seg.p[1]) * 0.5
	}
	p0, p1, p2, p3 := seg.p[0], seg.p[1], seg.p[2], seg.p[3]
	v := p0.X*(6.0*p1.Y+3.0*p2.Y+p3.Y) +
		3.0*(p1.X*(-2.0*p0.Y+p2.Y+p3.Y)-p2.X*(p0.Y+p1.Y-2.0*p3.Y)) -
		p3.X*(p0.Y+3.0*p1.Y+6.0*p2.Y)
	return v * (1.0 / 20.0)
}

// Length returns the length of the segment. Lines are measured exactly.
// Curves are measured as the length of their flattening at the given
// accuracy (see [Segment.Flatten]); a non-positive accuracy selects
// [DefaultAccuracy].
func (seg Segment) Length(accuracy float64) float64 {
	if seg.kind != CubicKind {
		return seg.p[0].Distance(seg.p[1])
	}
	var l float64
	for line := range seg.Flatten(accuracy) {
		l += line.p[0].Distance(line.p[1])
	}
	return l
}

// BoundingBox returns a rectangle enclosing the segment. For cubics this is
// the bounding box of the control polygon, which always contains the curve
// but may not be tight.
func (seg Segment) BoundingBox() Rect {
	r := emptyRect
	for i := range seg.numPoints() {
		r = r.UnionPoint(seg.p[i])
	}
	return r
}

// FlattenSteps returns the number of lines [Segment.Flatten] produces for the
// given accuracy. It is 1 for lines and at least 2 for cubics.
func (seg Segment) FlattenSteps(accuracy float64) int {
	if seg.kind != CubicKind {
		return 1
	}
	if !(accuracy > 0) {
		accuracy = DefaultAccuracy
	}
	// The distance between a cubic and the chord of a parameter interval of
	// width ε is bounded by ε²/8 times the maximum of its second derivative.
	dd0 := seg.p[0].Sub(seg.p[1].Scale(2)).Add(seg.p[2])
	dd1 := seg.p[1].Sub(seg.p[2].Scale(2)).Add(seg.p[3])
	dd := 6.0 * math.Max(dd0.Hypot(), dd1.Hypot())
	e2 := 8.0 * accuracy
	epsilon := 1.0
	if e2 < dd {
		epsilon = math.Sqrt(e2 / dd)
	}
	n := math.Ceil(1 / epsilon)
	switch {
	case !(n < MaxFlattenSteps):
		Logger().Warn("flattening clamped",
			slog.Float64("accuracy", accuracy),
			slog.Float64("steps", n),
			slog.Int("max", MaxFlattenSteps))
		return MaxFlattenSteps
	case n < 2:
		return 2
	default:
		return int(n)
	}
}

// Flatten approximates the segment by consecutive lines whose distance from
// the curve is at most accuracy. Lines are yielded unchanged. Cubics always
// produce at least two lines; the first starts exactly at the cubic's start
// and the last ends exactly at its end.
func (seg Segment) Flatten(accuracy float64) iter.Seq[Segment] {
	return seg.flatten(seg.FlattenSteps(accuracy))
}

// flatten yields n lines for a cubic, or the segment itself for a line.
func (seg Segment) flatten(n int) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		if seg.kind != CubicKind {
			yield(seg)
			return
		}
		prev := seg.p[0]
		for i := 1; i < n; i++ {
			p := seg.Eval(float64(i) / float64(n))
			if !yield(NewLine(prev, p)) {
				return
			}
			prev = p
		}
		yield(NewLine(prev, seg.p[3]))
	}
}

// IsInf reports whether any defining point of seg has an infinite coordinate.
func (seg Segment) IsInf() bool {
	for i := range seg.numPoints() {
		if seg.p[i].IsInf() {
			return true
		}
	}
	return false
}

// IsNaN reports whether any defining point of seg has a NaN coordinate.
func (seg Segment) IsNaN() bool {
	for i := range seg.numPoints() {
		if seg.p[i].IsNaN() {
			return true
		}
	}
	return false
}

func (seg Segment) String() string {
	if seg.kind == CubicKind {
		return fmt.Sprintf("Segment(%s, %s, %s, %s)", seg.p[0], seg.p[1], seg.p[2], seg.p[3])
	}
	return fmt.Sprintf("Segment(%s, %s)", seg.p[0], seg.p[1])
}

func (seg Segment) numPoints() int {
	if seg.kind == CubicKind {
		return 4
	}
	return 2
}
