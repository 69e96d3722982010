package arcapprox

import (
	"iter"
	"math"
)

// EllipticalArc is a portion of an ellipse, described by its center, two
// axis vectors and an angular sweep. The point at angle θ is
//
//	Center + Vector0·cos(θ) + Vector90·sin(θ)
//
// The axis vectors need not be perpendicular or of different length; the
// approximation routines work on a perpendicular equivalent of the arc (see
// [NewApproximationContext]).
type EllipticalArc struct {
	Center   Point
	Vector0  Vec2
	Vector90 Vec2
	Sweep    AngleSweep
}

// NewEllipticalArc creates an arc of the ellipse with the given center, radii,
// and rotation.
//
// The ellipse is the result of taking a circle, stretching it by the radii
// along the x and y axes, then rotating it from the x axis by xRotation
// radians, before finally translating the center to center.
func NewEllipticalArc(center Point, radii Vec2, xRotation float64, sweep AngleSweep) EllipticalArc {
	rot := Rotate(xRotation)
	return EllipticalArc{
		Center:   center,
		Vector0:  Vec(radii.X, 0).Transform(rot),
		Vector90: Vec(0, radii.Y).Transform(rot),
		Sweep:    sweep,
	}
}

// NewEllipticalArcFromAxes creates an arc from its center and axis vectors.
func NewEllipticalArcFromAxes(center Point, vector0, vector90 Vec2, sweep AngleSweep) EllipticalArc {
	return EllipticalArc{
		Center:   center,
		Vector0:  vector0,
		Vector90: vector90,
		Sweep:    sweep,
	}
}

// NewEllipticalArcFromAffine creates an arc of the image of the unit circle
// under aff.
func NewEllipticalArcFromAffine(aff Affine, sweep AngleSweep) EllipticalArc {
	x, y := aff.Columns()
	return EllipticalArc{
		Center:   Point(aff.Translation()),
		Vector0:  x,
		Vector90: y,
		Sweep:    sweep,
	}
}

// Affine returns the transform mapping the unit circle onto the arc's full
// ellipse.
func (a EllipticalArc) Affine() Affine {
	return NewAffineFromColumns(a.Center, a.Vector0, a.Vector90)
}

// RadiansToPoint returns the point of the full ellipse at angle theta.
func (a EllipticalArc) RadiansToPoint(theta float64) Point {
	sin, cos := math.Sincos(theta)
	return a.Center.Translate(a.Vector0.Mul(cos).Add(a.Vector90.Mul(sin)))
}

// FractionToPoint returns the point at the given fraction of the sweep.
func (a EllipticalArc) FractionToPoint(f float64) Point {
	return a.RadiansToPoint(a.Sweep.FractionToRadians(f))
}

// FractionToDerivatives returns the point at fraction f as well as the first
// and second derivatives with respect to the fraction.
func (a EllipticalArc) FractionToDerivatives(f float64) (Point, Vec2, Vec2) {
	sw := a.Sweep.Sweep
	sin, cos := math.Sincos(a.Sweep.FractionToRadians(f))
	u := a.Vector0.Mul(cos).Add(a.Vector90.Mul(sin))
	d1 := a.Vector90.Mul(cos).Sub(a.Vector0.Mul(sin)).Mul(sw)
	d2 := u.Mul(-sw * sw)
	return a.Center.Translate(u), d1, d2
}

// RadiansToCurvature returns the unsigned curvature of the full ellipse at
// angle theta.
func (a EllipticalArc) RadiansToCurvature(theta float64) float64 {
	sin, cos := math.Sincos(theta)
	d1 := a.Vector90.Mul(cos).Sub(a.Vector0.Mul(sin))
	d2 := a.Vector0.Mul(cos).Add(a.Vector90.Mul(sin)).Negate()
	speed := d1.Hypot()
	return math.Abs(d1.Cross(d2)) / (speed * speed * speed)
}

// Start returns the arc's start point.
func (a EllipticalArc) Start() Point { return a.FractionToPoint(0) }

// End returns the arc's end point.
func (a EllipticalArc) End() Point { return a.FractionToPoint(1) }

// IsFullEllipse reports whether the arc sweeps the whole ellipse.
func (a EllipticalArc) IsFullEllipse() bool {
	return a.Sweep.IsFullCircle()
}

// IsCircular reports whether the axis vectors are perpendicular and of equal
// length.
func (a EllipticalArc) IsCircular() bool {
	x2 := a.Vector0.Hypot2()
	y2 := a.Vector90.Hypot2()
	if !isSameCoordinateSquared(x2, y2) {
		return false
	}
	return math.Abs(a.Vector0.Dot(a.Vector90)) <= smallFraction*math.Sqrt(x2*y2)
}

func (a EllipticalArc) IsNaN() bool {
	return a.Center.IsNaN() || a.Vector0.IsNaN() || a.Vector90.IsNaN() ||
		math.IsNaN(a.Sweep.Start) || math.IsNaN(a.Sweep.Sweep)
}

// Transform applies aff to the arc. Affine maps take ellipses to ellipses,
// so the result is exact for any aff.
func (a EllipticalArc) Transform(aff Affine) EllipticalArc {
	return EllipticalArc{
		Center:   a.Center.Transform(aff),
		Vector0:  a.Vector0.Transform(aff),
		Vector90: a.Vector90.Transform(aff),
		Sweep:    a.Sweep,
	}
}

// Reverse returns the same arc traversed from end to start.
func (a EllipticalArc) Reverse() EllipticalArc {
	a.Sweep = a.Sweep.Reverse()
	return a
}

// orthogonalized returns an equivalent arc whose axis vectors are
// perpendicular. Arcs that already have perpendicular axes are returned
// unchanged. Otherwise the axes become the ellipse's principal axes, major
// axis first, and the sweep is shifted to trace the same points.
func (a EllipticalArc) orthogonalized() EllipticalArc {
	x2 := a.Vector0.Hypot2()
	y2 := a.Vector90.Hypot2()
	if math.Abs(a.Vector0.Dot(a.Vector90)) <= smallFraction*math.Sqrt(x2*y2) {
		return a
	}
	m := NewAffineFromColumns(Point{}, a.Vector0, a.Vector90)
	scale, th := m.svd()
	if scale.Y == 0 || math.IsNaN(scale.Y) {
		return a
	}
	// Flip the second principal axis for reflections so that the remaining
	// factor Σ⁻¹Uᵀm is a rotation.
	sign := 1.0
	if m.Determinant() < 0 {
		sign = -1
	}
	u0 := VecFromAngle(th)
	u90 := u0.Turn90().Mul(sign)
	// First column of Σ⁻¹Uᵀm, i.e. the image of ⟨1, 0⟩ under the rotation.
	w := Vec(u0.Dot(a.Vector0)/scale.X, u90.Dot(a.Vector0)/scale.Y)
	psi := w.Angle()
	return EllipticalArc{
		Center:   a.Center,
		Vector0:  u0.Mul(scale.X),
		Vector90: u90.Mul(scale.Y),
		Sweep:    AngleSweep{Start: a.Sweep.Start + psi, Sweep: a.Sweep.Sweep},
	}
}

// PathElements renders the arc as cubic Béziers, such that no point of the
// approximation deviates from the arc by more than tolerance.
func (a EllipticalArc) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		if !yield(MoveTo(a.Start())) {
			return
		}

		maxRadius := max(a.Vector0.Hypot(), a.Vector90.Hypot())
		scaledError := maxRadius / tolerance
		// Number of subdivisions per ellipse based on error tolerance.
		// Note: this may slightly underestimate the error for quadrants.
		nError := max(math.Pow(1.1163*scaledError, 1.0/6.0), 3.999_999)
		n := max(math.Ceil(nError*math.Abs(a.Sweep.Sweep)*(1.0/twoPi)), 1)
		angleStep := a.Sweep.Sweep / n
		armLen := math.Copysign((4.0/3.0)*math.Tan(math.Abs(0.25*angleStep)), a.Sweep.Sweep)
		angle0 := a.Sweep.Start
		p0 := a.RadiansToPoint(angle0)

		for range int(n) {
			angle1 := angle0 + angleStep
			// The point at θ+π/2, relative to the center, is the derivative at θ.
			p1 := p0.Translate(a.RadiansToPoint(angle0 + halfPi).Sub(a.Center).Mul(armLen))
			p3 := a.RadiansToPoint(angle1)
			p2 := p3.Translate(a.RadiansToPoint(angle1 + halfPi).Sub(a.Center).Mul(-armLen))

			angle0 = angle1
			p0 = p3

			if !yield(CubicTo(p1, p2, p3)) {
				return
			}
		}
	}
}
