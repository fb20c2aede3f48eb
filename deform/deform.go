// Package deform applies affine transformations to raster images.
package deform

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"honnef.co/go/vectorkit"
)

// Interpolation selects how source pixels are sampled.
type Interpolation int

const (
	NearestNeighbor Interpolation = iota
	ApproxBiLinear
	BiLinear
	CatmullRom
)

func (i Interpolation) String() string {
	switch i {
	case NearestNeighbor:
		return "nearest"
	case ApproxBiLinear:
		return "approx-bilinear"
	case BiLinear:
		return "bilinear"
	case CatmullRom:
		return "catmull-rom"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// ParseInterpolation returns the interpolation with the given name, as
// returned by [Interpolation.String].
func ParseInterpolation(s string) (Interpolation, error) {
	for i := NearestNeighbor; i <= CatmullRom; i++ {
		if strings.EqualFold(s, i.String()) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("deform: unknown interpolation %q: %w", s, vectorkit.ErrInvalidArgument)
}

func (i Interpolation) interpolator() (draw.Interpolator, error) {
	switch i {
	case NearestNeighbor:
		return draw.NearestNeighbor, nil
	case ApproxBiLinear:
		return draw.ApproxBiLinear, nil
	case BiLinear:
		return draw.BiLinear, nil
	case CatmullRom:
		return draw.CatmullRom, nil
	default:
		return nil, fmt.Errorf("deform: unknown %s: %w", i, vectorkit.ErrInvalidArgument)
	}
}

// Options configures AffineTransformImage. The zero value samples with
// nearest neighbor interpolation onto a transparent background and keeps the
// transformed image at its absolute position.
type Options struct {
	Interpolation Interpolation
	// FitBounds moves the transformed image so that its bounding box starts
	// at the origin. Otherwise the image keeps its position, clipped to
	// non-negative coordinates.
	FitBounds bool
	// Background fills the pixels of the result that no source pixel maps
	// to. Nil means transparent.
	Background color.Color
}

// boundsEpsilon absorbs rounding noise in transformed corners, such as the
// cosine of a right angle not being exactly zero.
const boundsEpsilon = 1e-9

// AffineTransformImage returns src mapped through t. The result's bounds are
// the bounding box of the transformed source bounds, rounded outwards to
// whole pixels and adjusted as described by [Options.FitBounds].
//
// t must be invertible.
func AffineTransformImage(src image.Image, t vectorkit.Transformation, opts *Options) (*image.RGBA, error) {
	if opts == nil {
		opts = &Options{}
	}
	interp, err := opts.Interpolation.interpolator()
	if err != nil {
		return nil, err
	}
	if t.IsNaN() || t.IsInf() {
		return nil, fmt.Errorf("deform: non-finite transformation %s: %w", t, vectorkit.ErrInvalidArgument)
	}
	if t.Determinant() == 0 {
		return nil, fmt.Errorf("deform: singular transformation %s: %w", t, vectorkit.ErrInvalidArgument)
	}

	sb := src.Bounds()
	bb := t.TransformRectBoundingBox(vectorkit.Rect{
		X0: float64(sb.Min.X),
		Y0: float64(sb.Min.Y),
		X1: float64(sb.Max.X),
		Y1: float64(sb.Max.Y),
	})
	db := image.Rect(
		int(math.Floor(bb.X0+boundsEpsilon)),
		int(math.Floor(bb.Y0+boundsEpsilon)),
		int(math.Ceil(bb.X1-boundsEpsilon)),
		int(math.Ceil(bb.Y1-boundsEpsilon)),
	)
	if opts.FitBounds {
		t = t.Then(vectorkit.Translate(float64(-db.Min.X), float64(-db.Min.Y)))
		db = db.Sub(db.Min)
	} else {
		db = db.Intersect(image.Rect(0, 0, math.MaxInt32, math.MaxInt32))
	}

	dst := image.NewRGBA(db)
	if opts.Background != nil {
		draw.Draw(dst, db, image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}
	if !db.Empty() {
		s2d := f64.Aff3{
			t.ScaleX, t.Rotate1, t.TranslateX,
			t.Rotate0, t.ScaleY, t.TranslateY,
		}
		interp.Transform(dst, s2d, src, sb, draw.Over, nil)
	}

	vectorkit.Logger().Debug("transformed image",
		slog.String("transformation", t.String()),
		slog.String("interpolation", opts.Interpolation.String()),
		slog.String("src", sb.String()),
		slog.String("dst", db.String()))
	return dst, nil
}
