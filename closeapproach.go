package arcapprox

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LocationDetail describes a point on a curve.
type LocationDetail struct {
	Point Point
	// Fraction is the curve parameter of Point.
	Fraction float64
	// Distance is the distance to the paired point.
	Distance float64
}

// DetailPair describes a perpendicular between an elliptical arc and an
// approximating primitive. A is on the arc, and its fraction is a fraction of
// the arc's sweep. B is on the primitive, and its fraction is the primitive's
// parameter.
type DetailPair struct {
	A LocationDetail
	B LocationDetail
}

func (d DetailPair) String() string {
	return fmt.Sprintf("%s@%g ↔ %s@%g: %g", d.A.Point, d.A.Fraction, d.B.Point, d.B.Fraction, d.A.Distance)
}

// Transform maps both points by aff. Distances are kept, so aff should be
// rigid.
func (d DetailPair) Transform(aff Affine) DetailPair {
	d.A.Point = d.A.Point.Transform(aff)
	d.B.Point = d.B.Point.Transform(aff)
	return d
}

const (
	// approachProbes is the number of intervals over which the distance between
	// arc and primitive is sampled to find candidate perpendiculars.
	approachProbes = 32
	// approachMaxIterations bounds Newton refinement of a candidate.
	approachMaxIterations = 16
	approachTolerance     = 1e-12
)

// closeApproaches returns the interior perpendiculars between the part of arc
// from fraction f0 to f1 and prim at which their distance is locally maximal.
// Perpendiculars at the end points of either curve are excluded; there the
// curves are forced to meet and the distance is not approximation error.
func closeApproaches(arc EllipticalArc, f0, f1 float64, prim approximant) []DetailPair {
	if f0 > f1 {
		f0, f1 = f1, f0
	}
	span := f1 - f0
	if span <= smallFraction {
		return nil
	}
	var (
		fs [approachProbes + 1]float64
		ts [approachProbes + 1]float64
		ds [approachProbes + 1]float64
	)
	for i := range fs {
		f := f0 + span*float64(i)/approachProbes
		pt := arc.FractionToPoint(f)
		t := prim.nearest(pt)
		p, _, _ := prim.derivatives(t)
		fs[i], ts[i], ds[i] = f, t, pt.Distance(p)
	}

	var out []DetailPair
	for i := 1; i < approachProbes; i++ {
		if ds[i] < ds[i-1] || ds[i] < ds[i+1] || (ds[i] == ds[i-1] && ds[i] == ds[i+1]) {
			continue
		}
		f, t, ok := refineApproach(arc, prim, fs[i], ts[i])
		if !ok || f < f0 || f > f1 || t < 0 || t > 1 {
			f, t = fs[i], ts[i]
		}
		if isAlmostEqualEither((f-f0)/span, 0, 1, smallFraction) ||
			isAlmostEqualEither(t, 0, 1, smallFraction) {
			continue
		}
		if n := len(out); n > 0 && isAlmostEqual(out[n-1].A.Fraction, f, smallFraction) {
			continue
		}
		pa := arc.FractionToPoint(f)
		pb, _, _ := prim.derivatives(t)
		d := pa.Distance(pb)
		out = append(out, DetailPair{
			A: LocationDetail{Point: pa, Fraction: f, Distance: d},
			B: LocationDetail{Point: pb, Fraction: t, Distance: d},
		})
	}
	return out
}

// refineApproach uses Newton's method to find parameters (f, t) near the
// given ones at which the segment between arc(f) and prim(t) is perpendicular
// to both curves, i.e. the roots of
//
//	F1 = (E − P)·E′ = 0
//	F2 = (E − P)·P′ = 0
func refineApproach(arc EllipticalArc, prim approximant, f, t float64) (float64, float64, bool) {
	jac := mat.NewDense(2, 2, nil)
	rhs := mat.NewVecDense(2, nil)
	var step mat.VecDense
	var df, dt float64
	for range approachMaxIterations {
		e, e1, e2 := arc.FractionToDerivatives(f)
		p, p1, p2 := prim.derivatives(t)
		d := e.Sub(p)
		rhs.SetVec(0, -d.Dot(e1))
		rhs.SetVec(1, -d.Dot(p1))
		jac.Set(0, 0, e1.Dot(e1)+d.Dot(e2))
		jac.Set(0, 1, -p1.Dot(e1))
		jac.Set(1, 0, e1.Dot(p1))
		jac.Set(1, 1, d.Dot(p2)-p1.Dot(p1))
		if err := step.SolveVec(jac, rhs); err != nil {
			return f, t, false
		}
		df, dt = step.AtVec(0), step.AtVec(1)
		if math.IsNaN(df) || math.IsNaN(dt) || math.IsInf(df, 0) || math.IsInf(dt, 0) {
			return f, t, false
		}
		f += df
		t += dt
		if math.Abs(df) <= approachTolerance && math.Abs(dt) <= approachTolerance {
			return f, t, true
		}
	}
	// Roundoff can keep the last steps above tolerance.
	return f, t, math.Abs(df) <= 1e-9 && math.Abs(dt) <= 1e-9
}
