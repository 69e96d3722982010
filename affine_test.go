package arcapprox

import (
	"math"
	"testing"
)

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)

	assertNear(t, p.Transform(Identity), p, epsilon)
	assertNear(t, p.Transform(Scale(2, 2)), Pt(6, 8), epsilon)
	assertNear(t, p.Transform(Rotate(0)), p, epsilon)
	assertNear(t, p.Transform(Rotate(math.Pi/2)), Pt(-4, 3), epsilon)
	assertNear(t, p.Transform(Translate(Vec(5, 6))), Pt(8, 10), epsilon)
}

func TestAffineMul(t *testing.T) {
	const epsilon = 1e-9
	a1 := Affine{1, 2, 3, 4, 5, 6}
	a2 := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}

	px := Pt(1, 0)
	py := Pt(0, 1)
	pxy := Pt(1, 1)

	assertNear(t, px.Transform(a2).Transform(a1), px.Transform(a1.Mul(a2)), epsilon)
	assertNear(t, py.Transform(a2).Transform(a1), py.Transform(a1.Mul(a2)), epsilon)
	assertNear(t, pxy.Transform(a2).Transform(a1), pxy.Transform(a1.Mul(a2)), epsilon)
}

func TestAffineInvert(t *testing.T) {
	const epsilon = 1e-9
	a := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}
	aInv, ok := a.Inverse()
	if !ok {
		t.Fatal("transform should be invertible")
	}

	px := Pt(1, 0)
	py := Pt(0, 1)
	pxy := Pt(1, 1)

	assertNear(t, px.Transform(aInv).Transform(a), px, epsilon)
	assertNear(t, py.Transform(aInv).Transform(a), py, epsilon)
	assertNear(t, pxy.Transform(aInv).Transform(a), pxy, epsilon)
	assertNear(t, px.Transform(a).Transform(aInv), px, epsilon)
	assertNear(t, py.Transform(a).Transform(aInv), py, epsilon)
	assertNear(t, pxy.Transform(a).Transform(aInv), pxy, epsilon)
}

func TestAffineInverseSingular(t *testing.T) {
	for _, aff := range []Affine{
		{1, 2, 2, 4, 5, 6},
		{0, 0, 0, 0, 1, 1},
		NewAffineFromColumns(Pt(1, 1), Vec(1, 0), Vec(1, 1e-12)),
	} {
		if _, ok := aff.Inverse(); ok {
			t.Errorf("%v shouldn't be invertible", aff)
		}
	}
}

func TestAffineColumns(t *testing.T) {
	aff := NewAffineFromColumns(Pt(5, 6), Vec(1, 2), Vec(3, 4))
	x, y := aff.Columns()
	diff(t, Vec(1, 2), x)
	diff(t, Vec(3, 4), y)
	diff(t, Vec(5, 6), aff.Translation())
	assertNear(t, Pt(1, 1).Transform(aff), Pt(9, 12), 1e-12)
}

func TestAffineSVD(t *testing.T) {
	const epsilon = 1e-9
	for _, rot := range []float64{0, 0.3, 1.2, -2.5} {
		for _, pre := range []float64{0, 0.7, -1.9} {
			m := Rotate(rot).Mul(Scale(3, 1)).Mul(Rotate(pre))
			scale, th := m.svd()
			if math.Abs(scale.X-3) > epsilon || math.Abs(scale.Y-1) > epsilon {
				t.Errorf("rot=%g pre=%g: got scale %s, want ⟨3, 1⟩", rot, pre, scale)
			}
			// The principal axis is only defined up to its sign.
			if c := VecFromAngle(th).Cross(VecFromAngle(rot)); math.Abs(c) > epsilon {
				t.Errorf("rot=%g pre=%g: got angle %g", rot, pre, th)
			}
		}
	}
}
