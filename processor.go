package arcapprox

import (
	"math"
	"slices"
)

// quadrantProcessor receives the primitives of an approximation one quadrant
// at a time. Primitives are announced in traversal order, which is the
// reverse of the arc's direction if the quadrant was reversed. f0 and f1 are
// the arc fractions at the primitive's start and end.
type quadrantProcessor interface {
	beginQuadrant(q QuadrantFractions, reversed bool)
	announceChord(l Line, f0, f1 float64)
	announceArc(a CircularArc, f0, f1 float64)
	endQuadrant()
}

// isMajorAxisFraction reports whether the arc is at an end of its major axis
// at fraction f.
func isMajorAxisFraction(arc EllipticalArc, f float64) bool {
	cos := math.Abs(math.Cos(arc.Sweep.FractionToRadians(f)))
	if arc.Vector0.Hypot2() > arc.Vector90.Hypot2() {
		return cos > 0.5
	}
	return cos < 0.5
}

// reverseQuadrant reports whether a quadrant's samples should be traversed
// from last to first. Arc chains are built starting at an axis point, where
// the ellipse's tangent is known to be symmetric; if only the last sample is
// on an axis, or on the major axis, that's where the traversal starts.
func reverseQuadrant(arc EllipticalArc, q QuadrantFractions) bool {
	fs := q.Fractions
	if len(fs) == 2 {
		return q.AxisAtEnd() && !q.AxisAtStart()
	}
	first := q.AxisAtStart() && isMajorAxisFraction(arc, fs[0])
	last := q.AxisAtEnd() && isMajorAxisFraction(arc, fs[len(fs)-1])
	return last && !first
}

// processQuadrantFractions announces the chords (if arcs is false) or
// circular arcs (if arcs is true) through the samples of each quadrant to p.
// Quadrants with fewer than two samples are skipped.
func processQuadrantFractions(arc EllipticalArc, samples []QuadrantFractions, arcs bool, p quadrantProcessor) {
	for _, q := range samples {
		if len(q.Fractions) < 2 {
			continue
		}
		fs := q.Fractions
		reversed := reverseQuadrant(arc, q)
		if reversed {
			fs = slices.Clone(fs)
			slices.Reverse(fs)
		}
		p.beginQuadrant(q, reversed)
		if arcs {
			announceArcs(arc, fs, reversed, p)
		} else {
			for i := 1; i < len(fs); i++ {
				p.announceChord(Line{P0: arc.FractionToPoint(fs[i-1]), P1: arc.FractionToPoint(fs[i])}, fs[i-1], fs[i])
			}
		}
		p.endQuadrant()
	}
}

// announceArcs announces circular arcs through the points at fractions fs.
//
// The first arc is tangent to the ellipse at its start and the last arc is
// tangent to the ellipse at its end. Each arc in between lies on the circle
// through its end points and the sample preceding it. Where no arc exists
// because the points are collinear, a chord is announced instead.
func announceArcs(arc EllipticalArc, fs []float64, reversed bool, p quadrantProcessor) {
	n := len(fs)
	pts := make([]Point, n)
	for i, f := range fs {
		pts[i] = arc.FractionToPoint(f)
	}
	tangent := func(f float64) Vec2 {
		_, d, _ := arc.FractionToDerivatives(f)
		if reversed {
			return d.Negate()
		}
		return d
	}
	announce := func(i int, a CircularArc, ok bool) {
		if !ok {
			p.announceChord(Line{P0: pts[i], P1: pts[i+1]}, fs[i], fs[i+1])
			return
		}
		p.announceArc(a, fs[i], fs[i+1])
	}

	a, ok := NewCircularArcStartTangentEnd(pts[0], tangent(fs[0]), pts[1])
	announce(0, a, ok)
	for i := 1; i < n-2; i++ {
		a, ok := newCircularArcContinuing(pts[i-1], pts[i], pts[i+1])
		announce(i, a, ok)
	}
	if n > 2 {
		i := n - 2
		a, ok := NewCircularArcStartTangentEnd(pts[i+1], tangent(fs[i+1]).Negate(), pts[i])
		announce(i, a.Reverse(), ok)
	}
}

// errorProcessor records the largest distance between the arc and the
// announced primitives.
type errorProcessor struct {
	arc   EllipticalArc
	worst option[DetailPair]
}

func (e *errorProcessor) beginQuadrant(QuadrantFractions, bool) {}
func (e *errorProcessor) endQuadrant()                          {}

func (e *errorProcessor) announceChord(l Line, f0, f1 float64) {
	e.measure(l, f0, f1)
}

func (e *errorProcessor) announceArc(a CircularArc, f0, f1 float64) {
	e.measure(a, f0, f1)
}

func (e *errorProcessor) measure(prim approximant, f0, f1 float64) {
	for _, pair := range closeApproaches(e.arc, f0, f1, prim) {
		if cur, ok := e.worst.get(); !ok || pair.A.Distance > cur.A.Distance {
			e.worst.set(pair)
		}
	}
}

// intervalErrorProcessor records the error of each announced primitive at
// the index of the interval between consecutive fractions that it spans.
type intervalErrorProcessor struct {
	arc       EllipticalArc
	fractions []float64
	errs      []float64
}

func (e *intervalErrorProcessor) beginQuadrant(QuadrantFractions, bool) {}
func (e *intervalErrorProcessor) endQuadrant()                          {}

func (e *intervalErrorProcessor) announceChord(l Line, f0, f1 float64) {
	e.measure(l, f0, f1)
}

func (e *intervalErrorProcessor) announceArc(a CircularArc, f0, f1 float64) {
	e.measure(a, f0, f1)
}

func (e *intervalErrorProcessor) measure(prim approximant, f0, f1 float64) {
	i, _ := slices.BinarySearch(e.fractions, min(f0, f1))
	for _, pair := range closeApproaches(e.arc, f0, f1, prim) {
		e.errs[i] = max(e.errs[i], pair.A.Distance)
	}
}

// arcChainBuilder collects announced primitives in the arc's direction.
type arcChainBuilder struct {
	primitives []Primitive
	quadrant   []Primitive
	reversed   bool
}

func (b *arcChainBuilder) beginQuadrant(_ QuadrantFractions, reversed bool) {
	b.quadrant = b.quadrant[:0]
	b.reversed = reversed
}

func (b *arcChainBuilder) announceChord(l Line, _, _ float64) {
	b.quadrant = append(b.quadrant, l)
}

func (b *arcChainBuilder) announceArc(a CircularArc, _, _ float64) {
	b.quadrant = append(b.quadrant, a)
}

func (b *arcChainBuilder) endQuadrant() {
	if !b.reversed {
		b.primitives = append(b.primitives, b.quadrant...)
		return
	}
	for i := len(b.quadrant) - 1; i >= 0; i-- {
		b.primitives = append(b.primitives, b.quadrant[i].reversePrimitive())
	}
}

// lineStringBuilder collects the vertices of announced chords, in the arc's
// direction, into a single linestring.
type lineStringBuilder struct {
	points   []Point
	quadrant []Point
	reversed bool
}

func (b *lineStringBuilder) beginQuadrant(_ QuadrantFractions, reversed bool) {
	b.quadrant = b.quadrant[:0]
	b.reversed = reversed
}

func (b *lineStringBuilder) announceChord(l Line, _, _ float64) {
	if len(b.quadrant) == 0 {
		b.quadrant = append(b.quadrant, l.P0)
	}
	b.quadrant = append(b.quadrant, l.P1)
}

func (b *lineStringBuilder) announceArc(a CircularArc, _, _ float64) {
	b.announceChord(Line{P0: a.Start(), P1: a.End()}, 0, 0)
}

func (b *lineStringBuilder) endQuadrant() {
	if b.reversed {
		slices.Reverse(b.quadrant)
	}
	pts := b.quadrant
	// Adjacent quadrants share their boundary sample.
	if n := len(b.points); n > 0 && len(pts) > 0 && b.points[n-1].DistanceSquared(pts[0]) <= smallMetricDistanceSquared {
		pts = pts[1:]
	}
	b.points = append(b.points, pts...)
}
