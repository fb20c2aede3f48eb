// Package vectorkit provides the geometric path model and affine
// transformation algebra of a vector toolkit for document recognition. Paths
// are typically produced by tracing the connected components of a raster
// image, repositioned with affine transformations, and rendered back into an
// image.
//
// # Points and transformations
//
// [Point] is a plain coordinate pair, used both for positions and offsets.
//
// [Transformation] is a 2D affine map described by six parameters. Primitive
// transformations are created by [Translate], [Scale], [Shear],
// [RotateRadians], [RotateDegrees] and [Reflect], each with variants for
// different calling conventions (for example [Translate] and [TranslatePt]).
// Angles are never inferred: radians and degrees have separate entry points.
//
// Transformations compose like matrices: a.Mul(b) applies b first, then a.
// [TransformAt] re-centres a transformation on an arbitrary point, and
// [ScaleAt], [RotateDegreesAt] and [ReflectAt] are built on it. Transformations
// are values and never change once created.
//
// # Segments, paths and holes
//
// A [Segment] is either a straight line or a cubic Bézier. A [Path] is a
// chain of segments forming one contour, plus any number of holes, which are
// paths in their own right. The area of a path is the area of its outer
// contour minus the areas of its holes, computed by [Green's theorem] so that
// curves contribute exactly.
//
// Paths are built incrementally:
//
//	p := vectorkit.NewPath()
//	p.MoveTo(vectorkit.Pt(0, 0))
//	p.LineTo(vectorkit.Pt(10, 0))
//	p.CubicTo(vectorkit.Pt(15, 0), vectorkit.Pt(15, 10), vectorkit.Pt(10, 10))
//	p.LineTo(vectorkit.Pt(0, 0))
//
// Chaining is strict. Extending a path that has no start point, or appending
// a segment that does not start where the path ends, fails with
// [ErrInvalidState].
//
// Paths can be transformed in two ways. [Path.Transformed] returns a deep
// copy and leaves the original alone, [Path.TransformInPlace] modifies the
// path. Both move holes along with their parent.
//
// [PathList] groups independent paths and offers the same operations in
// bulk.
//
// # Flattening
//
// Curves are approximated by lines for length measurement, by
// [Path.ConvertToLines], and by the raster sub-package. The accuracy is the
// maximum distance between curve and lines, in coordinate units; the default
// is [DefaultAccuracy]. The number of lines per curve is bounded by
// [MaxFlattenSteps], so flattening always terminates.
//
// # Collaborators
//
// The sub-packages connect paths to raster images:
//   - trace converts a bitmap into a [PathList] using potrace.
//   - raster fills and strokes paths onto images.
//   - deform applies a [Transformation] to a raster image.
//
// # Logging
//
// The package and its sub-packages are silent by default. Use [SetLogger] to
// receive diagnostics.
//
// [Green's theorem]: https://en.wikipedia.org/wiki/Green%27s_theorem
package vectorkit
