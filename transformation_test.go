package vectorkit

import (
	"math"
	"slices"
	"testing"
)

func TestIdentityTransformation(t *testing.T) {
	tr := NewTransformation([6]float64{1, 0, 0, 1, 0, 0})
	if !tr.IsIdentity() {
		t.Error("(1, 0, 0, 1, 0, 0) is not the identity")
	}
	if tr != IdentityTransformation() {
		t.Error("identity mismatch")
	}
	if !tr.IsRectilinear() {
		t.Error("identity is not rectilinear")
	}
	r := newRand()
	for range 100 {
		p := randPt(r)
		if got := tr.Apply(p); got != p {
			t.Fatalf("identity moved %s to %s", p, got)
		}
	}
	if got, want := tr.String(), "Transformation(1, 0, 0, 1, 0, 0)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTranslate(t *testing.T) {
	r := newRand()
	for range 10 {
		p1 := randPt(r)
		t1 := TranslatePt(p1)
		t2 := Translate(p1.X, p1.Y)
		for range 10 {
			p2 := randPt(r)
			if got, want := t1.Apply(p2), p2.Add(p1); got != want {
				t.Fatalf("got %s, want %s", got, want)
			}
			if t1.Apply(p2) != t2.Apply(p2) {
				t.Fatal("TranslatePt and Translate disagree")
			}
		}
	}
}

func TestScale(t *testing.T) {
	r := newRand()
	for range 10 {
		p1 := randPt(r)
		t1 := ScalePt(p1)
		t2 := Scale(p1.X, p1.Y)
		for range 10 {
			p2 := randPt(r)
			if got, want := t1.Apply(p2), p2.Mul(p1); got != want {
				t.Fatalf("got %s, want %s", got, want)
			}
			if t1.Apply(p2) != t2.Apply(p2) {
				t.Fatal("ScalePt and Scale disagree")
			}
		}
	}
	diff(t, Scale(3, 3), ScaleUniform(3))
}

func TestShear(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)
	assertNear(t, Shear(0, 0).Apply(p), p, epsilon)
	assertNear(t, Shear(2, 4).Apply(p), Pt(11, 16), epsilon)
	assertNear(t, ShearRadians(math.Pi/4, 0).Apply(p), Pt(7, 4), epsilon)
	assertNear(t, ShearDegrees(45, 0).Apply(p), Pt(7, 4), epsilon)
	assertNear(t, ShearDegrees(0, 45).Apply(p), Pt(3, 7), epsilon)
	if Shear(1, 0).IsRectilinear() {
		t.Error("shear is rectilinear")
	}
}

func TestRotate(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)
	assertNear(t, RotateRadians(0).Apply(p), p, epsilon)
	assertNear(t, RotateRadians(math.Pi/2).Apply(p), Pt(-4, 3), epsilon)
	assertNear(t, RotateDegrees(90).Apply(p), Pt(-4, 3), epsilon)
	assertNear(t, RotateDegrees(180).Apply(p), Pt(-3, -4), epsilon)

	c := Pt(50, 50)
	q := Pt(40, 50)
	for deg := range 360 {
		tr := RotateDegreesAt(c, float64(deg))
		if d := math.Abs(tr.Apply(q).Distance(c) - 10); d > 1e-6 {
			t.Fatalf("rotation by %d° moved point %g away from circle", deg, d)
		}
	}
	if RotateDegrees(30).IsRectilinear() {
		t.Error("rotation is rectilinear")
	}
}

func TestReflect(t *testing.T) {
	if got, want := ReflectAt(Pt(50, 50), true, false).Apply(Pt(40, 40)), Pt(60, 40); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got, want := ReflectAt(Pt(50, 50), false, true).Apply(Pt(40, 40)), Pt(40, 60); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	diff(t, Scale(-1, -1), Reflect(true, true))
	if !Reflect(true, false).IsRectilinear() {
		t.Error("reflection is not rectilinear")
	}
}

func TestCompositeTransformation(t *testing.T) {
	c := Pt(50, 50)
	a := RotateDegreesAt(c, 5)
	b := TransformAt(c, RotateDegrees(5))
	rot := RotateDegrees(5)
	d := Translate(-50, -50)
	e := Translate(50, 50)
	r := newRand()
	for range 100 {
		f := randPt(r)
		r0 := a.Apply(f)
		r1 := b.Apply(f)
		r2 := e.Apply(rot.Apply(d.Apply(f)))
		if r0 != r1 {
			t.Fatalf("RotateDegreesAt and TransformAt disagree: %s != %s", r0, r1)
		}
		delta := r1.Sub(r2).Abs()
		if delta.X > 1e-6 || delta.Y > 1e-6 {
			t.Fatalf("manual composition differs by %s", delta)
		}
	}

	assertNear(t, ScaleAt(c, 2, 3).Apply(Pt(51, 51)), Pt(52, 53), 1e-9)
}

func TestTransformationMul(t *testing.T) {
	const epsilon = 1e-9
	a1 := Transformation{1, 2, 3, 4, 5, 6}
	a2 := Transformation{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}
	a3 := RotateDegreesAt(Pt(1, 2), 33)

	px := Pt(1, 0)
	py := Pt(0, 1)
	pxy := Pt(1, 1)

	assertNear(t, a1.Apply(a2.Apply(px)), a1.Mul(a2).Apply(px), epsilon)
	assertNear(t, a1.Apply(a2.Apply(py)), a1.Mul(a2).Apply(py), epsilon)
	assertNear(t, a1.Apply(a2.Apply(pxy)), a1.Mul(a2).Apply(pxy), epsilon)

	// Then is Mul with the operands swapped.
	diff(t, a2.Mul(a1), a1.Then(a2))

	// Composition of three is left-to-right associative.
	diff(t, a1.Mul(a2).Mul(a3), Compose(a1, a2, a3))
	if !a1.Mul(a2.Mul(a3)).ApproxEqual(Compose(a1, a2, a3), 1e-9) {
		t.Error("composition is not associative")
	}
	diff(t, Identity, Compose())

	// Composition is not commutative.
	if Translate(1, 0).Mul(Scale(2, 2)) == Scale(2, 2).Mul(Translate(1, 0)) {
		t.Error("translation and scaling commute")
	}
}

func TestTransformationInvert(t *testing.T) {
	const epsilon = 1e-9
	a := Transformation{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}
	aInv := a.Invert()

	for _, p := range []Point{Pt(1, 0), Pt(0, 1), Pt(1, 1)} {
		assertNear(t, a.Apply(aInv.Apply(p)), p, epsilon)
		assertNear(t, aInv.Apply(a.Apply(p)), p, epsilon)
	}
	if !Scale(0, 1).Invert().IsNaN() && !Scale(0, 1).Invert().IsInf() {
		t.Error("inverse of singular transformation is finite")
	}
}

func TestTransformSeq(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(1, 2), Pt(-3, 4)}
	got := slices.Collect(Transform(slices.Values(pts), Translate(1, 1)))
	diff(t, []Point{Pt(1, 1), Pt(2, 3), Pt(-2, 5)}, got)

	// Stopping early must not yield further values.
	for p := range Transform(slices.Values(pts), Identity) {
		if p != pts[0] {
			t.Fatalf("got %s first, want %s", p, pts[0])
		}
		break
	}
}

func TestRectilinear(t *testing.T) {
	for _, tr := range []Transformation{Identity, Scale(2, -3), Translate(4, 5), Reflect(true, true), RotateDegrees(180)} {
		if !tr.IsRectilinear() {
			t.Errorf("%s is not rectilinear", tr)
		}
	}
	// Only diagonal linear parts count: a quarter turn swaps the axes.
	for _, tr := range []Transformation{RotateDegrees(90), RotateDegrees(-90), Shear(0, 1)} {
		if tr.IsRectilinear() {
			t.Errorf("%s is rectilinear", tr)
		}
	}
}

func TestExpansionFactor(t *testing.T) {
	if got := Scale(4, 9).ExpansionFactor(); got != 6 {
		t.Errorf("got %g, want 6", got)
	}
	if got := RotateDegrees(37).ExpansionFactor(); math.Abs(got-1) > 1e-12 {
		t.Errorf("got %g, want 1", got)
	}
}

func TestTransformRectBoundingBox(t *testing.T) {
	r := Rect{0, 0, 10, 20}
	got := RotateDegrees(90).TransformRectBoundingBox(r)
	want := Rect{-20, 0, 0, 10}
	if !(math.Abs(got.X0-want.X0) < 1e-9 && math.Abs(got.Y0-want.Y0) < 1e-9 &&
		math.Abs(got.X1-want.X1) < 1e-9 && math.Abs(got.Y1-want.Y1) < 1e-9) {
		t.Errorf("got %s, want %s", got, want)
	}
}
