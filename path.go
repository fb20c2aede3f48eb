package vectorkit

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strings"
)

// Path is a single contour: an ordered chain of segments in which every
// segment starts where the previous one ends. A path may own holes, which are
// themselves paths whose area is subtracted from the outer contour.
//
// A path is built by first setting its start point with [Path.MoveTo] and
// then appending lines and curves. The chain is never repaired: appending a
// segment that does not start at the current end is an error.
//
// A path exclusively owns its holes. Holes do not refer back to their parent,
// and no attempt is made to detect a hole that contains one of its own
// ancestors; callers must not build such cycles.
type Path struct {
	start   Point
	started bool
	segs    []Segment
	holes   []*Path
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo sets the start point of an empty path. Calling MoveTo on a path that
// already has a start point fails with [ErrInvalidState].
//
// MoveTo, LineTo, CubicTo and Append reject points with infinite or NaN
// coordinates with [ErrInvalidArgument].
func (p *Path) MoveTo(pt Point) error {
	if pt.IsNaN() || pt.IsInf() {
		return fmt.Errorf("vectorkit: non-finite start point %s: %w", pt, ErrInvalidArgument)
	}
	if p.started {
		return fmt.Errorf("vectorkit: path already started at %s: %w", p.start, ErrInvalidState)
	}
	p.start = pt
	p.started = true
	return nil
}

// LineTo appends a line from the current end of the path to pt.
func (p *Path) LineTo(pt Point) error {
	end, err := p.current()
	if err != nil {
		return err
	}
	return p.push(NewLine(end, pt))
}

// CubicTo appends a cubic Bézier from the current end of the path to pt, with
// the control points c1 and c2.
func (p *Path) CubicTo(c1, c2, pt Point) error {
	end, err := p.current()
	if err != nil {
		return err
	}
	return p.push(NewCubic(end, c1, c2, pt))
}

// AddSegment extends the path by the given points. A single point starts an
// empty path, or appends a line to a started one. Three points append a cubic
// with the control points pts[0] and pts[1], ending at pts[2]. Other numbers
// of points fail with [ErrInvalidArgument].
//
// The path becomes closed once a point equal to its start is appended.
func (p *Path) AddSegment(pts ...Point) error {
	switch len(pts) {
	case 1:
		if !p.started {
			return p.MoveTo(pts[0])
		}
		return p.LineTo(pts[0])
	case 3:
		return p.CubicTo(pts[0], pts[1], pts[2])
	default:
		return fmt.Errorf("vectorkit: AddSegment takes 1 or 3 points, got %d: %w", len(pts), ErrInvalidArgument)
	}
}

// Append appends a complete segment. On an empty path, the segment's start
// becomes the path's start. Otherwise the segment must start exactly where
// the path currently ends, or Append fails with [ErrInvalidState] and leaves
// the path unchanged. The zero Segment is rejected with [ErrInvalidArgument].
func (p *Path) Append(seg Segment) error {
	if seg.kind != LineKind && seg.kind != CubicKind {
		return fmt.Errorf("vectorkit: appending %s: %w", seg.kind, ErrInvalidArgument)
	}
	if !p.started {
		if err := checkFinite(seg); err != nil {
			return err
		}
		p.start = seg.Start()
		p.started = true
		p.segs = append(p.segs, seg)
		return nil
	}
	end := p.end()
	if seg.Start() != end {
		return fmt.Errorf("vectorkit: segment starts at %s but path ends at %s: %w", seg.Start(), end, ErrInvalidState)
	}
	return p.push(seg)
}

// push appends a segment that is known to chain onto the path.
func (p *Path) push(seg Segment) error {
	if err := checkFinite(seg); err != nil {
		return err
	}
	p.segs = append(p.segs, seg)
	return nil
}

func checkFinite(seg Segment) error {
	if seg.IsNaN() || seg.IsInf() {
		return fmt.Errorf("vectorkit: non-finite %s: %w", seg, ErrInvalidArgument)
	}
	return nil
}

func (p *Path) current() (Point, error) {
	if !p.started {
		return Point{}, fmt.Errorf("vectorkit: path has no start point: %w", ErrInvalidState)
	}
	return p.end(), nil
}

func (p *Path) end() Point {
	if len(p.segs) == 0 {
		return p.start
	}
	return p.segs[len(p.segs)-1].End()
}

// Start returns the first point of the path. ok is false if the path has not
// been started.
func (p *Path) Start() (pt Point, ok bool) {
	return p.start, p.started
}

// Len returns the number of segments in the path, not counting holes.
func (p *Path) Len() int {
	return len(p.segs)
}

// Segment returns the i-th segment.
func (p *Path) Segment(i int) Segment {
	return p.segs[i]
}

// All returns an iterator over the segments of the path, not including holes.
func (p *Path) All() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for _, seg := range p.segs {
			if !yield(seg) {
				return
			}
		}
	}
}

// IsClosed reports whether the path has at least one segment and its last
// segment ends exactly where its first segment starts.
func (p *Path) IsClosed() bool {
	if len(p.segs) == 0 {
		return false
	}
	return p.segs[len(p.segs)-1].End() == p.segs[0].Start()
}

// AddHole appends h to the holes of p. p takes ownership of h.
func (p *Path) AddHole(h *Path) {
	p.holes = append(p.holes, h)
}

// Holes returns the holes of p. The returned slice aliases p's storage and is
// only valid until the next call to AddHole or RemoveHole.
func (p *Path) Holes() []*Path {
	return p.holes
}

// NumHoles returns the number of direct holes of p.
func (p *Path) NumHoles() int {
	return len(p.holes)
}

// RemoveHole removes and returns the i-th hole.
func (p *Path) RemoveHole(i int) *Path {
	h := p.holes[i]
	copy(p.holes[i:], p.holes[i+1:])
	p.holes[len(p.holes)-1] = nil
	p.holes = p.holes[:len(p.holes)-1]
	return h
}

// Area returns the signed area enclosed by the outer contour, minus the areas
// of all holes. The outer area is accumulated along the segments by Green's
// theorem, exactly for both lines and curves.
//
// The result is only geometrically meaningful for closed paths, but open
// paths are accepted.
func (p *Path) Area() float64 {
	a := p.ContourArea()
	for _, h := range p.holes {
		a -= h.Area()
	}
	return a
}

// ContourArea returns the signed area enclosed by the outer contour alone,
// ignoring holes. Its sign gives the orientation of the contour: positive
// for counter-clockwise traversal in a y-up space.
func (p *Path) ContourArea() float64 {
	var a float64
	for _, seg := range p.segs {
		a += seg.SignedArea()
	}
	return a
}

// Length returns the total length of the outer contour. See [Segment.Length]
// for the meaning of accuracy.
func (p *Path) Length(accuracy float64) float64 {
	var l float64
	for _, seg := range p.segs {
		l += seg.Length(accuracy)
	}
	return l
}

// BoundingBox returns a rectangle enclosing the outer contour. Holes lie
// within their parent and are not considered. The result is empty
// ([Rect.IsEmpty]) for a path without a start point.
func (p *Path) BoundingBox() Rect {
	if !p.started {
		return emptyRect
	}
	r := emptyRect.UnionPoint(p.start)
	for _, seg := range p.segs {
		r = r.Union(seg.BoundingBox())
	}
	return r
}

// Clone returns a deep copy of p, including its holes.
func (p *Path) Clone() *Path {
	return p.Transformed(Identity)
}

// Transformed returns a new path with every segment, and every segment of
// every hole, mapped through t. p is not modified.
func (p *Path) Transformed(t Transformation) *Path {
	out := &Path{
		start:   p.start.Transform(t),
		started: p.started,
		segs:    make([]Segment, 0, len(p.segs)),
	}
	out.segs = slices.AppendSeq(out.segs, Transform(slices.Values(p.segs), t))
	if len(p.holes) > 0 {
		out.holes = make([]*Path, len(p.holes))
		for i, h := range p.holes {
			out.holes[i] = h.Transformed(t)
		}
	}
	return out
}

// Reversed returns a copy of p traversed in the opposite direction, which
// negates its contour area. Holes are copied unchanged.
func (p *Path) Reversed() *Path {
	out := &Path{
		start:   p.end(),
		started: p.started,
		segs:    make([]Segment, len(p.segs)),
	}
	for i, seg := range p.segs {
		out.segs[len(p.segs)-1-i] = seg.Reverse()
	}
	if len(p.holes) > 0 {
		out.holes = make([]*Path, len(p.holes))
		for i, h := range p.holes {
			out.holes[i] = h.Clone()
		}
	}
	return out
}

// TransformInPlace maps every segment of p, and recursively of its holes,
// through t.
func (p *Path) TransformInPlace(t Transformation) {
	p.start = p.start.Transform(t)
	for i, seg := range p.segs {
		p.segs[i] = seg.Transform(t)
	}
	for _, h := range p.holes {
		h.TransformInPlace(t)
	}
}

// ConvertToLines returns a new path that approximates p using only lines.
// Curves are flattened as described by [Segment.Flatten]; holes are converted
// recursively with the same accuracy. The result has at least as many
// segments as p, and strictly more if p contains a curve.
func (p *Path) ConvertToLines(accuracy float64) *Path {
	steps := make([]int, len(p.segs))
	n := 0
	for i, seg := range p.segs {
		steps[i] = seg.FlattenSteps(accuracy)
		n += steps[i]
	}
	out := &Path{
		start:   p.start,
		started: p.started,
		segs:    make([]Segment, 0, n),
	}
	for i, seg := range p.segs {
		out.segs = slices.AppendSeq(out.segs, seg.flatten(steps[i]))
	}
	if len(p.holes) > 0 {
		out.holes = make([]*Path, len(p.holes))
		for i, h := range p.holes {
			out.holes[i] = h.ConvertToLines(accuracy)
		}
	}
	Logger().Debug("converted path to lines",
		slog.Int("segments", len(p.segs)),
		slog.Int("lines", len(out.segs)),
		slog.Float64("accuracy", accuracy))
	return out
}

func (p *Path) String() string {
	const maxShown = 16
	var b strings.Builder
	b.WriteString("Path(")
	for i, seg := range p.segs {
		if i == maxShown {
			b.WriteString(", ...")
			break
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(seg.String())
	}
	fmt.Fprintf(&b, " %d holes)", len(p.holes))
	return b.String()
}
