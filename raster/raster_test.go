package raster

import (
	"image"
	"image/color"
	"testing"

	"honnef.co/go/vectorkit"
)

func polygon(t *testing.T, pts ...vectorkit.Point) *vectorkit.Path {
	t.Helper()
	p := vectorkit.NewPath()
	for _, pt := range append(pts, pts[0]) {
		if err := p.AddSegment(pt); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

func rectPath(t *testing.T, x0, y0, x1, y1 float64) *vectorkit.Path {
	return polygon(t, vectorkit.Pt(x0, y0), vectorkit.Pt(x1, y0), vectorkit.Pt(x1, y1), vectorkit.Pt(x0, y1))
}

func alphaAt(img *image.Alpha, x, y int) uint8 {
	return img.AlphaAt(x, y).A
}

func TestFillPathHoles(t *testing.T) {
	dst := image.NewAlpha(image.Rect(0, 0, 20, 20))
	p := rectPath(t, 0, 0, 10, 10)
	// The hole has the same orientation as its parent on purpose.
	p.AddHole(rectPath(t, 4, 4, 7, 7))
	FillPath(dst, p, color.Opaque, vectorkit.DefaultAccuracy)

	for _, tc := range []struct {
		x, y int
		want uint8
	}{
		{1, 1, 0xff},
		{8, 2, 0xff},
		{5, 5, 0},
		{15, 15, 0},
		{12, 5, 0},
	} {
		if got := alphaAt(dst, tc.x, tc.y); got != tc.want {
			t.Errorf("pixel (%d, %d): got alpha %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestFillPathOffsetBounds(t *testing.T) {
	dst := image.NewAlpha(image.Rect(10, 10, 30, 30))
	FillPathList(dst, vectorkit.NewPathList(rectPath(t, 12, 12, 16, 16)), color.Opaque, 0)
	if got := alphaAt(dst, 14, 14); got != 0xff {
		t.Errorf("got alpha %d inside the square, want 255", got)
	}
	if got := alphaAt(dst, 20, 20); got != 0 {
		t.Errorf("got alpha %d outside the square, want 0", got)
	}
}

func TestFillPathCurve(t *testing.T) {
	dst := image.NewAlpha(image.Rect(0, 0, 40, 40))
	p := vectorkit.NewPath()
	if err := p.MoveTo(vectorkit.Pt(0, 20)); err != nil {
		t.Fatal(err)
	}
	if err := p.CubicTo(vectorkit.Pt(0, -6), vectorkit.Pt(40, -6), vectorkit.Pt(40, 20)); err != nil {
		t.Fatal(err)
	}
	if err := p.LineTo(vectorkit.Pt(0, 20)); err != nil {
		t.Fatal(err)
	}
	FillPath(dst, p, color.Opaque, 0.05)
	if got := alphaAt(dst, 20, 10); got != 0xff {
		t.Errorf("got alpha %d under the curve, want 255", got)
	}
	if got := alphaAt(dst, 20, 30); got != 0 {
		t.Errorf("got alpha %d below the chord, want 0", got)
	}
}

func TestStrokePath(t *testing.T) {
	dst := image.NewAlpha(image.Rect(0, 0, 20, 20))
	p := rectPath(t, 2, 2, 17, 17)
	p.AddHole(rectPath(t, 8, 8, 12, 12))
	StrokePath(dst, p, color.Opaque, 2, vectorkit.DefaultAccuracy)
	for _, pt := range []image.Point{{10, 1}, {10, 2}, {2, 10}, {16, 10}, {10, 8}} {
		if got := alphaAt(dst, pt.X, pt.Y); got != 0xff {
			t.Errorf("pixel %v on the outline: got alpha %d, want 255", pt, got)
		}
	}
	for _, pt := range []image.Point{{5, 5}, {10, 10}, {19, 19}} {
		if got := alphaAt(dst, pt.X, pt.Y); got != 0 {
			t.Errorf("pixel %v off the outline: got alpha %d, want 0", pt, got)
		}
	}
}
