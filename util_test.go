package vectorkit

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func randPt(r *rand.Rand) Point {
	return Pt(r.Float64(), r.Float64())
}

func mustAdd(t *testing.T, p *Path, pts ...Point) {
	t.Helper()
	if err := p.AddSegment(pts...); err != nil {
		t.Fatal(err)
	}
}

// square returns the closed axis-aligned square with corners (x, y) and
// (x+size, y+size), traversed counter-clockwise in a y-up space.
func square(t *testing.T, x, y, size float64) *Path {
	t.Helper()
	p := NewPath()
	mustAdd(t, p, Pt(x, y))
	mustAdd(t, p, Pt(x+size, y))
	mustAdd(t, p, Pt(x+size, y+size))
	mustAdd(t, p, Pt(x, y+size))
	mustAdd(t, p, Pt(x, y))
	return p
}
