package arcapprox

import (
	"iter"
	"slices"
)

// Primitive is a curve that can be part of a [Chain]. The package provides
// [Line], [CircularArc], and [LineString].
type Primitive interface {
	// Eval evaluates the curve at parameter t ∈ [0, 1].
	Eval(t float64) Point
	Start() Point
	End() Point
	// PathElements returns the curve as drawing commands, starting with a
	// MoveTo. Curved primitives are approximated by cubic Béziers to within
	// tolerance.
	PathElements(tolerance float64) iter.Seq[PathElement]

	transformPrimitive(aff Affine) Primitive
	reversePrimitive() Primitive
}

// approximant is a primitive whose distance to an elliptical arc can be
// measured.
type approximant interface {
	// derivatives returns the point at t as well as its first and second
	// derivatives with respect to t.
	derivatives(t float64) (Point, Vec2, Vec2)
	// nearest returns the parameter of the point closest to pt.
	nearest(pt Point) float64
}

// LineString is a polyline through a sequence of points.
type LineString struct {
	Points []Point
}

var _ Primitive = LineString{}

// Len returns the number of segments.
func (ls LineString) Len() int {
	return max(len(ls.Points)-1, 0)
}

// Segment returns the i-th segment.
func (ls LineString) Segment(i int) Line {
	return Line{P0: ls.Points[i], P1: ls.Points[i+1]}
}

// Segments returns an iterator over the segments of the linestring.
func (ls LineString) Segments() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for i := range ls.Len() {
			if !yield(ls.Segment(i)) {
				return
			}
		}
	}
}

// Eval evaluates the linestring at t, where each segment covers an equal
// share of the parameter range.
func (ls LineString) Eval(t float64) Point {
	n := ls.Len()
	if n == 0 {
		if len(ls.Points) == 0 {
			return Point{}
		}
		return ls.Points[0]
	}
	u := clamp01(t) * float64(n)
	i := min(int(u), n-1)
	return ls.Segment(i).Eval(u - float64(i))
}

func (ls LineString) Start() Point { return ls.Eval(0) }
func (ls LineString) End() Point   { return ls.Eval(1) }

func (ls LineString) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		for i, pt := range ls.Points {
			el := LineTo(pt)
			if i == 0 {
				el = MoveTo(pt)
			}
			if !yield(el) {
				return
			}
		}
	}
}

func (ls LineString) Transform(aff Affine) LineString {
	pts := make([]Point, len(ls.Points))
	for i, pt := range ls.Points {
		pts[i] = pt.Transform(aff)
	}
	return LineString{Points: pts}
}

func (ls LineString) Reverse() LineString {
	pts := slices.Clone(ls.Points)
	slices.Reverse(pts)
	return LineString{Points: pts}
}

func (ls LineString) transformPrimitive(aff Affine) Primitive { return ls.Transform(aff) }
func (ls LineString) reversePrimitive() Primitive             { return ls.Reverse() }

// Chain is a sequence of connected primitives. A closed chain is a loop, an
// open chain is a path.
type Chain struct {
	Primitives []Primitive
	Closed     bool
}

// Len returns the number of primitives.
func (c Chain) Len() int {
	return len(c.Primitives)
}

// Transform applies aff to every primitive. Chains containing circular arcs
// must only be transformed by similarity transforms.
func (c Chain) Transform(aff Affine) Chain {
	out := Chain{
		Primitives: make([]Primitive, len(c.Primitives)),
		Closed:     c.Closed,
	}
	for i, p := range c.Primitives {
		out.Primitives[i] = p.transformPrimitive(aff)
	}
	return out
}

// Reverse returns the chain traversed in the opposite direction.
func (c Chain) Reverse() Chain {
	out := Chain{
		Primitives: make([]Primitive, len(c.Primitives)),
		Closed:     c.Closed,
	}
	for i, p := range c.Primitives {
		out.Primitives[len(c.Primitives)-1-i] = p.reversePrimitive()
	}
	return out
}

// PathElements returns the chain as a single subpath, closed if the chain is
// closed.
func (c Chain) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		for i, p := range c.Primitives {
			seq := p.PathElements(tolerance)
			if i > 0 {
				seq = dropFirst(seq)
			}
			for el := range seq {
				if !yield(el) {
					return
				}
			}
		}
		if c.Closed && len(c.Primitives) > 0 {
			yield(ClosePath())
		}
	}
}

// Path collects the chain's path elements into a slice.
func (c Chain) Path(tolerance float64) []PathElement {
	return slices.Collect(c.PathElements(tolerance))
}

// Points returns the vertices of the chain: the points of linestrings and
// the end points of all other primitives. Shared end points are only reported
// once.
func (c Chain) Points() []Point {
	var out []Point
	add := func(pt Point) {
		if len(out) > 0 && out[len(out)-1].DistanceSquared(pt) <= smallMetricDistanceSquared {
			return
		}
		out = append(out, pt)
	}
	for _, p := range c.Primitives {
		if ls, ok := p.(LineString); ok {
			for _, pt := range ls.Points {
				add(pt)
			}
			continue
		}
		add(p.Start())
		add(p.End())
	}
	return out
}
