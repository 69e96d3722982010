package arcapprox

import (
	"iter"
	"math"
)

// CircularArc is an arc of a circle, the primitive of arc chain
// approximations. A positive SweepAngle is counterclockwise.
type CircularArc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	SweepAngle float64
}

var _ Primitive = CircularArc{}

// NewCircularArcStartTangentEnd returns the circular arc that starts at start
// heading in the direction of tangent and ends at end.
//
// It returns false if no such arc exists, which is the case when end lies on
// the line through start along tangent.
func NewCircularArcStartTangentEnd(start Point, tangent Vec2, end Point) (CircularArc, bool) {
	chord := end.Sub(start)
	tlen := tangent.Hypot()
	clen2 := chord.Hypot2()
	if tlen == 0 || clen2 <= smallMetricDistanceSquared {
		return CircularArc{}, false
	}
	normal := tangent.Mul(1 / tlen).Turn90()
	// The center lies on the normal, equidistant from both points.
	dot := chord.Dot(normal)
	if math.Abs(dot) <= smallFraction*math.Sqrt(clen2) {
		return CircularArc{}, false
	}
	signedRadius := clen2 / (2 * dot)
	center := start.Translate(normal.Mul(signedRadius))
	a0 := start.Sub(center).Angle()
	a1 := end.Sub(center).Angle()
	var sweep float64
	if signedRadius > 0 {
		// The center is to the left of the tangent: counterclockwise.
		sweep = normalizeRadians(a1 - a0)
	} else {
		sweep = -normalizeRadians(a0 - a1)
	}
	return CircularArc{
		Center:     center,
		Radius:     math.Abs(signedRadius),
		StartAngle: a0,
		SweepAngle: sweep,
	}, true
}

// newCircularArcContinuing returns the arc from start to end on the circle
// through prev, start and end, traversed in that order. It returns false if
// the points are collinear.
func newCircularArcContinuing(prev, start, end Point) (CircularArc, bool) {
	center, _, ok := circleThrough(prev, start, end)
	if !ok {
		return CircularArc{}, false
	}
	tangent := start.Sub(center).Turn90()
	if start.Sub(prev).Cross(end.Sub(start)) < 0 {
		tangent = tangent.Negate()
	}
	return NewCircularArcStartTangentEnd(start, tangent, end)
}

// circleThrough returns the circle through three points. It returns false if
// the points are collinear.
func circleThrough(p0, p1, p2 Point) (Point, float64, bool) {
	b := p1.Sub(p0)
	c := p2.Sub(p0)
	d := 2 * b.Cross(c)
	if math.Abs(d) <= smallFraction*b.Hypot()*c.Hypot() {
		return Point{}, 0, false
	}
	b2 := b.Hypot2()
	c2 := c.Hypot2()
	center := p0.Translate(Vec((c.Y*b2-b.Y*c2)/d, (b.X*c2-c.X*b2)/d))
	return center, center.Distance(p0), true
}

func (c CircularArc) sweep() AngleSweep {
	return AngleSweep{Start: c.StartAngle, Sweep: c.SweepAngle}
}

func (c CircularArc) Eval(t float64) Point {
	return pointOnCircle(c.Center, c.Radius, c.StartAngle+t*c.SweepAngle)
}

func pointOnCircle(center Point, radius float64, angle float64) Point {
	sin, cos := math.Sincos(angle)
	return center.Translate(
		Vec2{
			X: cos * radius,
			Y: sin * radius,
		})
}

func (c CircularArc) Start() Point { return c.Eval(0) }
func (c CircularArc) End() Point   { return c.Eval(1) }

// Tangents returns the derivatives at the start and end of the arc.
func (c CircularArc) Tangents() (Vec2, Vec2) {
	_, d0, _ := c.derivatives(0)
	_, d1, _ := c.derivatives(1)
	return d0, d1
}

func (c CircularArc) Reverse() CircularArc {
	return CircularArc{
		Center:     c.Center,
		Radius:     c.Radius,
		StartAngle: c.StartAngle + c.SweepAngle,
		SweepAngle: -c.SweepAngle,
	}
}

// Transform applies aff to the arc. The result is only a circular arc if aff
// is a similarity transform, i.e. a combination of rotation, reflection,
// uniform scaling and translation, which is all this method supports.
func (c CircularArc) Transform(aff Affine) CircularArc {
	det := aff.Determinant()
	center := c.Center.Transform(aff)
	start := c.Start().Transform(aff)
	sweep := c.SweepAngle
	if det < 0 {
		sweep = -sweep
	}
	return CircularArc{
		Center:     center,
		Radius:     c.Radius * math.Sqrt(math.Abs(det)),
		StartAngle: start.Sub(center).Angle(),
		SweepAngle: sweep,
	}
}

func (c CircularArc) IsNaN() bool {
	return c.Center.IsNaN() ||
		math.IsNaN(c.Radius) ||
		math.IsNaN(c.StartAngle) ||
		math.IsNaN(c.SweepAngle)
}

// PathElements renders the arc as cubic Béziers.
func (c CircularArc) PathElements(tolerance float64) iter.Seq[PathElement] {
	return EllipticalArc{
		Center:   c.Center,
		Vector0:  Vec(c.Radius, 0),
		Vector90: Vec(0, c.Radius),
		Sweep:    c.sweep(),
	}.PathElements(tolerance)
}

func (c CircularArc) derivatives(t float64) (Point, Vec2, Vec2) {
	sin, cos := math.Sincos(c.StartAngle + t*c.SweepAngle)
	u := Vec(cos, sin)
	d1 := u.Turn90().Mul(c.Radius * c.SweepAngle)
	d2 := u.Mul(-c.Radius * c.SweepAngle * c.SweepAngle)
	return c.Center.Translate(u.Mul(c.Radius)), d1, d2
}

func (c CircularArc) nearest(pt Point) float64 {
	v := pt.Sub(c.Center)
	if v.Hypot2() == 0 {
		return 0.5
	}
	return clamp01(c.sweep().RadiansToSignedPeriodicFraction(v.Angle()))
}

func (c CircularArc) transformPrimitive(aff Affine) Primitive { return c.Transform(aff) }
func (c CircularArc) reversePrimitive() Primitive             { return c.Reverse() }
