package arcapprox

import (
	"iter"
)

// Line represents a line segment, the chord primitive of linestring
// approximations.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

var _ Primitive = Line{}

func (l Line) IsInf() bool {
	return l.P0.IsInf() || l.P1.IsInf()
}

func (l Line) IsNaN() bool {
	return l.P0.IsNaN() || l.P1.IsNaN()
}

func (l Line) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		_ = yield(MoveTo(l.P0)) &&
			yield(LineTo(l.P1))
	}
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Nearest returns the squared distance from pt to the nearest point of the
// line, and that point's parameter.
func (l Line) Nearest(pt Point) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		return pt.Sub(l.P0).Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(l.P1).Hypot2(), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.Sub(l.Eval(t)).Hypot2()
		return dist, t
	}
}

func (l Line) Transform(aff Affine) Line {
	return Line{
		P0: l.P0.Transform(aff),
		P1: l.P1.Transform(aff),
	}
}

func (l Line) Reverse() Line {
	return Line{P0: l.P1, P1: l.P0}
}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

func (l Line) derivatives(t float64) (Point, Vec2, Vec2) {
	return l.Eval(t), l.P1.Sub(l.P0), Vec2{}
}

func (l Line) nearest(pt Point) float64 {
	_, t := l.Nearest(pt)
	return t
}

func (l Line) transformPrimitive(aff Affine) Primitive { return l.Transform(aff) }
func (l Line) reversePrimitive() Primitive             { return l.Reverse() }
