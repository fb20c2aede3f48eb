// Package trace converts bitmaps into vector paths using potrace.
//
// Every connected component of foreground pixels becomes one
// [vectorkit.Path] of the resulting [vectorkit.PathList], with the
// background regions enclosed by the component attached as holes. Holes run
// in the same direction as their parent, so that [vectorkit.Path.Area]
// reports the area covered by foreground pixels.
package trace

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"

	"github.com/dennwc/gotrace"
	"honnef.co/go/vectorkit"
)

// TurnPolicy decides how ambiguous pixel configurations are resolved while
// decomposing the bitmap into paths.
type TurnPolicy int

const (
	// Prefer to connect black (foreground) components.
	TurnBlack TurnPolicy = iota
	// Prefer to connect white (background) components.
	TurnWhite
	// Always take a left turn.
	TurnLeft
	// Always take a right turn.
	TurnRight
	// Prefer to connect the color that occurs least in the neighborhood.
	TurnMinority
	// Prefer to connect the color that occurs most in the neighborhood.
	TurnMajority
	// Choose pseudo-randomly.
	TurnRandom
)

var turnPolicyNames = [...]string{"black", "white", "left", "right", "minority", "majority", "random"}

func (tp TurnPolicy) String() string {
	if tp < 0 || int(tp) >= len(turnPolicyNames) {
		return fmt.Sprintf("TurnPolicy(%d)", int(tp))
	}
	return turnPolicyNames[tp]
}

// ParseTurnPolicy returns the turn policy with the given name, as returned by
// [TurnPolicy.String].
func ParseTurnPolicy(s string) (TurnPolicy, error) {
	for i, name := range turnPolicyNames {
		if strings.EqualFold(s, name) {
			return TurnPolicy(i), nil
		}
	}
	return 0, fmt.Errorf("trace: unknown turn policy %q: %w", s, vectorkit.ErrInvalidArgument)
}

// Threshold reports whether a pixel belongs to the foreground.
type Threshold func(c color.Color) bool

// Dark treats opaque pixels darker than mid-grey as foreground. It suits
// black ink on white paper.
func Dark(c color.Color) bool {
	_, _, _, a := c.RGBA()
	if a == 0 {
		return false
	}
	return color.GrayModel.Convert(c).(color.Gray).Y < 0x80
}

// Opaque treats every pixel that is not fully transparent as foreground. It
// suits masks such as *image.Alpha.
func Opaque(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a != 0
}

// Params configures tracing.
type Params struct {
	// TurdSize suppresses speckles of up to this many pixels.
	TurdSize int
	// TurnPolicy resolves ambiguities in path decomposition.
	TurnPolicy TurnPolicy
	// OptimizeCurve joins adjacent curves where the error stays within
	// OptimizeTolerance, minimizing the number of curves.
	OptimizeCurve     bool
	OptimizeTolerance float64
	// AlphaMax is the corner threshold. Smaller values produce more corners,
	// larger values smoother curves.
	AlphaMax float64
	// Threshold selects foreground pixels. If nil, Dark is used.
	Threshold Threshold
	// Progress, if set, is called after each contour found by potrace has
	// been converted, with the number converted so far and the total.
	Progress func(done, total int)
}

// Defaults returns the default tracing parameters.
func Defaults() Params {
	return Params{
		TurdSize:          2,
		TurnPolicy:        TurnMinority,
		OptimizeCurve:     true,
		OptimizeTolerance: 0.2,
		AlphaMax:          1.0,
		Threshold:         Dark,
	}
}

// Validate checks that the parameters are within range.
func (p Params) Validate() error {
	if p.TurdSize < 0 {
		return fmt.Errorf("trace: negative turd size %d: %w", p.TurdSize, vectorkit.ErrInvalidArgument)
	}
	if p.TurnPolicy < TurnBlack || p.TurnPolicy > TurnRandom {
		return fmt.Errorf("trace: invalid %s: %w", p.TurnPolicy, vectorkit.ErrInvalidArgument)
	}
	if p.OptimizeTolerance < 0 || p.AlphaMax < 0 {
		return fmt.Errorf("trace: negative tolerance or alphamax: %w", vectorkit.ErrInvalidArgument)
	}
	return nil
}

// pad is the width of the empty border added around the bitmap. potrace
// traces components touching the bitmap's edge poorly.
const pad = 2

// padded presents an image with its bounds moved to the origin and a
// transparent border of pad pixels on every side.
type padded struct {
	img image.Image
}

func (p padded) ColorModel() color.Model { return p.img.ColorModel() }

func (p padded) Bounds() image.Rectangle {
	b := p.img.Bounds()
	return image.Rect(0, 0, b.Dx()+2*pad, b.Dy()+2*pad)
}

func (p padded) At(x, y int) color.Color {
	b := p.img.Bounds()
	pt := image.Pt(x-pad+b.Min.X, y-pad+b.Min.Y)
	if !pt.In(b) {
		return color.Transparent
	}
	return p.img.At(pt.X, pt.Y)
}

// Trace outlines the foreground of img. Coordinates of the result are those
// of img: a component covering pixel (x, y) of img encloses the unit square
// at (x, y).
func Trace(img image.Image, params Params) (*vectorkit.PathList, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	th := params.Threshold
	if th == nil {
		th = Dark
	}
	bm := gotrace.NewBitmapFromImage(padded{img}, func(_, _ int, c color.Color) bool {
		return th(c)
	})
	paths, err := gotrace.Trace(bm, &gotrace.Params{
		TurdSize:     params.TurdSize,
		TurnPolicy:   gotrace.TurnPolicy(params.TurnPolicy),
		AlphaMax:     params.AlphaMax,
		OptiCurve:    params.OptimizeCurve,
		OptTolerance: params.OptimizeTolerance,
	})
	if err != nil {
		return nil, fmt.Errorf("trace: converting bitmap to paths: %w", err)
	}

	pl, err := convert(paths, params.Progress)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	pl.TransformInPlace(vectorkit.Translate(float64(b.Min.X-pad), float64(b.Min.Y-pad)))

	vectorkit.Logger().Info("traced image",
		slog.Int("width", b.Dx()),
		slog.Int("height", b.Dy()),
		slog.Int("paths", pl.Len()),
		slog.Float64("area", pl.Area()))
	return pl, nil
}

// convert groups potrace's paths into outer paths and holes. potrace lists
// every outer path (positive sign) before the holes it encloses. If a path
// is not followed by holes in the list, its children are consulted instead;
// children of holes are outer paths again and are added to the list.
func convert(paths []gotrace.Path, progress func(done, total int)) (*vectorkit.PathList, error) {
	pl := vectorkit.NewPathList()
	var cur *vectorkit.Path
	var curSrc *gotrace.Path
	var listedHoles bool
	flush := func() error {
		if cur == nil || listedHoles {
			return nil
		}
		return addChildren(pl, cur, curSrc.Childs)
	}
	for i := range paths {
		src := &paths[i]
		p, err := convertPath(src)
		if err != nil {
			return nil, err
		}
		if src.Sign > 0 || cur == nil {
			if err := flush(); err != nil {
				return nil, err
			}
			pl.Append(p)
			cur, curSrc, listedHoles = p, src, false
		} else {
			addHole(cur, p)
			listedHoles = true
		}
		if progress != nil {
			progress(i+1, len(paths))
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return pl, nil
}

func addChildren(pl *vectorkit.PathList, parent *vectorkit.Path, children []gotrace.Path) error {
	for i := range children {
		hole, err := convertPath(&children[i])
		if err != nil {
			return err
		}
		addHole(parent, hole)
		for j := range children[i].Childs {
			inner := &children[i].Childs[j]
			p, err := convertPath(inner)
			if err != nil {
				return err
			}
			pl.Append(p)
			if err := addChildren(pl, p, inner.Childs); err != nil {
				return err
			}
		}
	}
	return nil
}

// addHole attaches hole to parent with the same orientation as parent's
// contour, so that the hole's area is subtracted from the parent's rather than
// added to it. potrace traces holes in the opposite direction.
func addHole(parent, hole *vectorkit.Path) {
	if (parent.ContourArea() < 0) != (hole.ContourArea() < 0) {
		hole = hole.Reversed()
	}
	parent.AddHole(hole)
}

// convertPath builds a closed path from potrace's curve. Each potrace segment
// ends at Pnt[2] and starts where the previous one ended; corners pass
// through the vertex Pnt[1], curves use Pnt[0] and Pnt[1] as control points.
func convertPath(src *gotrace.Path) (*vectorkit.Path, error) {
	p := vectorkit.NewPath()
	if len(src.Curve) == 0 {
		return p, nil
	}
	pt := func(q gotrace.Point) vectorkit.Point { return vectorkit.Pt(q.X, q.Y) }
	if err := p.MoveTo(pt(src.Curve[len(src.Curve)-1].Pnt[2])); err != nil {
		return nil, err
	}
	for _, seg := range src.Curve {
		var err error
		switch seg.Type {
		case gotrace.TypeCorner:
			if err = p.LineTo(pt(seg.Pnt[1])); err == nil {
				err = p.LineTo(pt(seg.Pnt[2]))
			}
		case gotrace.TypeBezier:
			err = p.CubicTo(pt(seg.Pnt[0]), pt(seg.Pnt[1]), pt(seg.Pnt[2]))
		default:
			err = fmt.Errorf("trace: unknown segment type %d: %w", seg.Type, vectorkit.ErrInvalidArgument)
		}
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}
