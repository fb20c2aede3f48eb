package trace

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"honnef.co/go/vectorkit"
)

// blackSquare returns a white w×h image with a black square covering
// [x0, x1)×[y0, y1).
func blackSquare(bounds image.Rectangle, x0, y0, x1, y1 int) *image.Gray {
	img := image.NewGray(bounds)
	draw.Draw(img, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(x0, y0, x1, y1), image.Black, image.Point{}, draw.Src)
	return img
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestTraceSquare(t *testing.T) {
	img := blackSquare(image.Rect(0, 0, 20, 20), 5, 5, 15, 15)
	pl, err := Trace(img, Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if pl.Len() != 1 {
		t.Fatalf("got %d paths, want 1", pl.Len())
	}
	p := pl.At(0)
	if !p.IsClosed() {
		t.Error("traced path is not closed")
	}
	if p.NumHoles() != 0 {
		t.Errorf("got %d holes, want 0", p.NumHoles())
	}
	if a := math.Abs(p.Area()); a < 80 || a > 110 {
		t.Errorf("got area %g, want about 100", a)
	}
	bb := p.BoundingBox()
	for _, v := range [][2]float64{{bb.X0, 5}, {bb.Y0, 5}, {bb.X1, 15}, {bb.Y1, 15}} {
		if !near(v[0], v[1], 1) {
			t.Errorf("got bounding box %s, want about Rect(5, 5, 15, 15)", bb)
			break
		}
	}
}

func TestTraceOffsetImage(t *testing.T) {
	img := blackSquare(image.Rect(100, 200, 120, 220), 105, 205, 115, 215)
	pl, err := Trace(img, Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if pl.Len() != 1 {
		t.Fatalf("got %d paths, want 1", pl.Len())
	}
	bb := pl.BoundingBox()
	if !near(bb.X0, 105, 1) || !near(bb.Y0, 205, 1) || !near(bb.X1, 115, 1) || !near(bb.Y1, 215, 1) {
		t.Errorf("got bounding box %s, want about Rect(105, 205, 115, 215)", bb)
	}
}

func TestTraceRing(t *testing.T) {
	img := blackSquare(image.Rect(0, 0, 20, 20), 2, 2, 18, 18)
	draw.Draw(img, image.Rect(7, 7, 13, 13), image.White, image.Point{}, draw.Src)
	pl, err := Trace(img, Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if pl.Len() != 1 {
		t.Fatalf("got %d paths, want 1", pl.Len())
	}
	p := pl.At(0)
	if p.NumHoles() != 1 {
		t.Fatalf("got %d holes, want 1", p.NumHoles())
	}
	outer, hole := p.ContourArea(), p.Holes()[0].ContourArea()
	if (outer < 0) != (hole < 0) {
		t.Errorf("hole orientation (%g) differs from outer contour (%g)", hole, outer)
	}
	if a := math.Abs(p.Area()); a < 180 || a > 240 {
		t.Errorf("got area %g, want about 220", a)
	}
}

func TestTraceEmpty(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	pl, err := Trace(img, Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if pl.Len() != 0 {
		t.Errorf("got %d paths from a blank image", pl.Len())
	}
}

func TestTraceThreshold(t *testing.T) {
	img := image.NewAlpha(image.Rect(0, 0, 20, 20))
	draw.Draw(img, image.Rect(5, 5, 15, 15), image.Opaque, image.Point{}, draw.Src)

	params := Defaults()
	pl, err := Trace(img, params)
	if err != nil {
		t.Fatal(err)
	}
	// An alpha mask reads as white where it is opaque.
	if pl.Len() != 0 {
		t.Errorf("dark threshold found %d paths in an alpha mask", pl.Len())
	}

	params.Threshold = Opaque
	pl, err = Trace(img, params)
	if err != nil {
		t.Fatal(err)
	}
	if pl.Len() != 1 {
		t.Errorf("got %d paths, want 1", pl.Len())
	}
}

func TestThresholds(t *testing.T) {
	tests := []struct {
		c            color.Color
		dark, opaque bool
	}{
		{color.Black, true, true},
		{color.White, false, true},
		{color.Transparent, false, false},
		{color.Gray{Y: 0x7f}, true, true},
		{color.Gray{Y: 0x80}, false, true},
		{color.NRGBA{A: 0x10}, true, true},
	}
	for _, tt := range tests {
		if got := Dark(tt.c); got != tt.dark {
			t.Errorf("Dark(%v) = %t, want %t", tt.c, got, tt.dark)
		}
		if got := Opaque(tt.c); got != tt.opaque {
			t.Errorf("Opaque(%v) = %t, want %t", tt.c, got, tt.opaque)
		}
	}
}

func TestTurnPolicy(t *testing.T) {
	for tp := TurnBlack; tp <= TurnRandom; tp++ {
		got, err := ParseTurnPolicy(tp.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != tp {
			t.Errorf("ParseTurnPolicy(%q) = %d, want %d", tp.String(), got, tp)
		}
	}
	if got, _ := ParseTurnPolicy("Minority"); got != TurnMinority {
		t.Errorf("parsing is case sensitive")
	}
	if _, err := ParseTurnPolicy("sideways"); !errors.Is(err, vectorkit.ErrInvalidArgument) {
		t.Errorf("got error %v, want ErrInvalidArgument", err)
	}
	if got := TurnPolicy(42).String(); got != "TurnPolicy(42)" {
		t.Errorf("got %q", got)
	}
}

func TestParamsValidate(t *testing.T) {
	bad := []func(*Params){
		func(p *Params) { p.TurdSize = -1 },
		func(p *Params) { p.TurnPolicy = 7 },
		func(p *Params) { p.AlphaMax = -1 },
		func(p *Params) { p.OptimizeTolerance = -0.5 },
	}
	for i, f := range bad {
		p := Defaults()
		f(&p)
		if err := p.Validate(); !errors.Is(err, vectorkit.ErrInvalidArgument) {
			t.Errorf("%d: got error %v, want ErrInvalidArgument", i, err)
		}
		if _, err := Trace(image.NewGray(image.Rect(0, 0, 4, 4)), p); err == nil {
			t.Errorf("%d: Trace accepted invalid parameters", i)
		}
	}
	if err := Defaults().Validate(); err != nil {
		t.Errorf("defaults are invalid: %v", err)
	}
}

func TestTraceProgress(t *testing.T) {
	img := blackSquare(image.Rect(0, 0, 30, 12), 2, 2, 10, 10)
	draw.Draw(img, image.Rect(20, 2, 28, 10), image.Black, image.Point{}, draw.Src)
	var calls [][2]int
	params := Defaults()
	params.Progress = func(done, total int) {
		calls = append(calls, [2]int{done, total})
	}
	pl, err := Trace(img, params)
	if err != nil {
		t.Fatal(err)
	}
	if pl.Len() != 2 {
		t.Fatalf("got %d paths, want 2", pl.Len())
	}
	if len(calls) == 0 {
		t.Fatal("progress was not reported")
	}
	last := calls[len(calls)-1]
	if last[0] != last[1] {
		t.Errorf("last progress report %v is incomplete", last)
	}
}
