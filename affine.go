package arcapprox

import (
	"math"
)

// Affine describes an affine transform via coefficients.
//
// If the coefficients are (a, b, c, d, e, f), then the resulting
// transformation represents this augmented matrix:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// The columns (a, b) and (c, d) are the images of the x and y unit vectors and
// (e, f) is the translation. (A * B) * v == A * (B * v).
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Scale creates an affine transform representing non-uniform scaling with
// different scale values for x and y
func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

// Translate creates an affine transform representing translation.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Rotate creates an affine transform representing rotation.
//
// A positive angle rotates the positive X direction into positive Y. The
// angle th is expressed in radians.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// NewAffineFromColumns returns the transform whose linear part maps ⟨1, 0⟩ to
// x and ⟨0, 1⟩ to y, and which translates the origin to origin.
func NewAffineFromColumns(origin Point, x, y Vec2) Affine {
	return Affine{x.X, x.Y, y.X, y.Y, origin.X, origin.Y}
}

// Columns returns the images of the two unit vectors under the linear part
// of the transform.
func (aff Affine) Columns() (x, y Vec2) {
	return Vec2{aff.N0, aff.N1}, Vec2{aff.N2, aff.N3}
}

func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// Determinant computes the determinant.
func (aff Affine) Determinant() float64 {
	return aff.N0*aff.N3 - aff.N1*aff.N2
}

// Invert computes the inverse transform.
//
// Produces NaN values when the determinant is zero. Use [Affine.Inverse] to
// detect that case.
func (aff Affine) Invert() Affine {
	invDet := 1 / aff.Determinant()
	return Affine{
		+invDet * aff.N3,
		-invDet * aff.N1,
		-invDet * aff.N2,
		+invDet * aff.N0,
		+invDet * (aff.N2*aff.N5 - aff.N3*aff.N4),
		+invDet * (aff.N1*aff.N4 - aff.N0*aff.N5),
	}
}

// Inverse computes the inverse transform. It returns false if the linear part
// is singular, relative to the magnitude of its columns.
func (aff Affine) Inverse() (Affine, bool) {
	x, y := aff.Columns()
	scale := x.Hypot2() * y.Hypot2()
	det := aff.Determinant()
	if scale == 0 || det*det <= smallFraction*smallFraction*scale {
		return Affine{}, false
	}
	inv := aff.Invert()
	if inv.IsNaN() || inv.IsInf() {
		return Affine{}, false
	}
	return inv, true
}

func (aff Affine) IsInf() bool {
	return math.IsInf(aff.N0, 0) ||
		math.IsInf(aff.N1, 0) ||
		math.IsInf(aff.N2, 0) ||
		math.IsInf(aff.N3, 0) ||
		math.IsInf(aff.N4, 0) ||
		math.IsInf(aff.N5, 0)
}

func (aff Affine) IsNaN() bool {
	return math.IsNaN(aff.N0) ||
		math.IsNaN(aff.N1) ||
		math.IsNaN(aff.N2) ||
		math.IsNaN(aff.N3) ||
		math.IsNaN(aff.N4) ||
		math.IsNaN(aff.N5)
}

// Compute the singular value decomposition of the linear transformation (ignoring the
// translation).
//
// All non-degenerate linear transformations can be represented as
//
//  1. a rotation about the origin.
//  2. a scaling along the x and y axes
//  3. another rotation about the origin
//
// composed together, written "U Σ V^T". We only compute Σ and the angle of U;
// callers that need V^T recover it as Σ⁻¹ Uᵀ M.
//
// Will return NaNs if the matrix (or equivalently the linear map) is singular.
// The first scale is always the larger one.
func (aff Affine) svd() (scale Vec2, th float64) {
	a := aff.N0
	a2 := a * a
	b := aff.N1
	b2 := b * b
	c := aff.N2
	c2 := c * c
	d := aff.N3
	d2 := d * d
	ab := a * b
	cd := c * d
	th = 0.5 * math.Atan2(2.0*(ab+cd), a2-b2+c2-d2)
	s1 := a2 + b2 + c2 + d2
	s2 := math.Sqrt(math.Pow(a2-b2+c2-d2, 2) + 4.0*math.Pow(ab+cd, 2))
	return Vec2{
		X: math.Sqrt(0.5 * (s1 + s2)),
		Y: math.Sqrt(max(0, 0.5*(s1-s2))),
	}, th
}

// Translation returns the translation component of this affine transformation.
func (aff Affine) Translation() Vec2 {
	return Vec2{
		X: aff.N4,
		Y: aff.N5,
	}
}
