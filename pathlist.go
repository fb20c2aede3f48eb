package vectorkit

import (
	"fmt"
	"iter"
)

// PathList is an ordered collection of independent paths, such as the
// outlines of the connected components of an image. Unlike the segments of a
// path, consecutive paths need not connect.
//
// The paths of a list do not share state, so distinct paths may be processed
// concurrently as long as each goroutine owns the paths it modifies.
type PathList struct {
	paths []*Path
}

// NewPathList returns a list holding paths.
func NewPathList(paths ...*Path) *PathList {
	return &PathList{paths: paths}
}

// Append adds paths to the end of the list.
func (pl *PathList) Append(paths ...*Path) {
	pl.paths = append(pl.paths, paths...)
}

// Len returns the number of paths in the list.
func (pl *PathList) Len() int {
	return len(pl.paths)
}

// At returns the i-th path.
func (pl *PathList) At(i int) *Path {
	return pl.paths[i]
}

// All returns an iterator over the index and path of every entry.
func (pl *PathList) All() iter.Seq2[int, *Path] {
	return func(yield func(int, *Path) bool) {
		for i, p := range pl.paths {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Transformed returns a new list of transformed copies of every path. See
// [Path.Transformed].
func (pl *PathList) Transformed(t Transformation) *PathList {
	out := &PathList{paths: make([]*Path, len(pl.paths))}
	for i, p := range pl.paths {
		out.paths[i] = p.Transformed(t)
	}
	return out
}

// TransformInPlace transforms every path of the list in place. See
// [Path.TransformInPlace].
func (pl *PathList) TransformInPlace(t Transformation) {
	for _, p := range pl.paths {
		p.TransformInPlace(t)
	}
}

// ConvertToLines returns a new list holding the line approximation of every
// path. See [Path.ConvertToLines].
func (pl *PathList) ConvertToLines(accuracy float64) *PathList {
	out := &PathList{paths: make([]*Path, len(pl.paths))}
	for i, p := range pl.paths {
		out.paths[i] = p.ConvertToLines(accuracy)
	}
	return out
}

// Area returns the sum of the areas of all paths, each with its holes
// already subtracted.
func (pl *PathList) Area() float64 {
	var a float64
	for _, p := range pl.paths {
		a += p.Area()
	}
	return a
}

// BoundingBox returns the union of the bounding boxes of all paths.
func (pl *PathList) BoundingBox() Rect {
	r := emptyRect
	for _, p := range pl.paths {
		r = r.Union(p.BoundingBox())
	}
	return r
}

func (pl *PathList) String() string {
	return fmt.Sprintf("PathList(length %d)", len(pl.paths))
}
