package arcapprox

import (
	"math"
	"slices"
)

// ApproximationContext samples a non-circular elliptical arc and builds
// approximations of it from the samples.
//
// Arcs that cannot be approximated, because they have an empty sweep, a
// degenerate axis, or are circular, make the context invalid. All methods of
// an invalid context return empty results rather than failing.
type ApproximationContext struct {
	arc          EllipticalArc
	localArc     EllipticalArc
	localToWorld Affine
	worldToLocal Affine
	valid        bool
}

// NewApproximationContext returns a context for arc. The context works on an
// equivalent arc with perpendicular axes. Sweeps of more than a full turn are
// reduced to a full turn.
func NewApproximationContext(arc EllipticalArc) ApproximationContext {
	if math.Abs(arc.Sweep.Sweep) > twoPi {
		arc.Sweep.Sweep = math.Copysign(twoPi, arc.Sweep.Sweep)
	}
	arc = arc.orthogonalized()
	ctx := ApproximationContext{
		arc:          arc,
		localToWorld: Identity,
		worldToLocal: Identity,
	}
	if arc.IsNaN() || arc.Sweep.IsEmpty() {
		return ctx
	}
	x2 := arc.Vector0.Hypot2()
	y2 := arc.Vector90.Hypot2()
	if x2 <= smallMetricDistanceSquared || y2 <= smallMetricDistanceSquared {
		return ctx
	}
	if isSameCoordinateSquared(x2, y2) {
		// Circular arcs need no approximation.
		return ctx
	}
	x := math.Sqrt(x2)
	y := math.Sqrt(y2)
	toWorld := NewAffineFromColumns(arc.Center, arc.Vector0.Mul(1/x), arc.Vector90.Mul(1/y))
	toLocal, ok := toWorld.Inverse()
	if !ok {
		return ctx
	}
	ctx.localToWorld = toWorld
	ctx.worldToLocal = toLocal
	ctx.localArc = EllipticalArc{
		Vector0:  Vec(x, 0),
		Vector90: Vec(0, y),
		Sweep:    arc.Sweep,
	}
	ctx.valid = true
	return ctx
}

// Arc returns the arc being sampled. Its axes are perpendicular.
func (c ApproximationContext) Arc() EllipticalArc {
	return c.arc
}

// LocalToWorld returns the rigid transform that maps the axis-aligned arc
// centered on the origin onto [ApproximationContext.Arc].
func (c ApproximationContext) LocalToWorld() Affine {
	return c.localToWorld
}

// IsValidArc reports whether the arc can be sampled.
func (c ApproximationContext) IsValidArc() bool {
	return c.valid
}

// fractionSet is an increasing sequence of fractions in which no two entries
// are within smallFraction of each other. Adding a fraction close to an
// existing entry keeps the existing entry.
type fractionSet []float64

func (s *fractionSet) add(f float64) {
	i, _ := slices.BinarySearch(*s, f)
	if i > 0 && isAlmostEqual((*s)[i-1], f, smallFraction) {
		return
	}
	if i < len(*s) && isAlmostEqual((*s)[i], f, smallFraction) {
		return
	}
	*s = slices.Insert(*s, i, f)
}

// addRadians converts theta to a fraction of the arc's sweep and adds it to
// dst if it lies in [f0, f1].
func (c ApproximationContext) addRadians(dst *fractionSet, theta, f0, f1 float64) {
	f := c.arc.Sweep.RadiansToSignedPeriodicFraction(theta)
	if f < f0-smallFraction || f > f1+smallFraction {
		return
	}
	dst.add(min(max(f, f0), f1))
}

func (c ApproximationContext) samplesInsideQuadrant1(opts Options) []float64 {
	return newQuadrantSampler(c.arc, opts).samplesInsideQuadrant1()
}

// SampleFractions returns sample locations along the arc, as increasing,
// deduplicated fractions of its sweep.
//
// The result always contains 0 and 1 and the fractions of all axis points in
// the sweep. The samples the method computes for the first quadrant are
// reflected into the other quadrants, and those inside the sweep are added.
// For a full ellipse, the axis point at 0 is reported only as 0.
func (c ApproximationContext) SampleFractions(opts Options) []float64 {
	if !c.valid {
		return nil
	}
	radians := c.samplesInsideQuadrant1(opts)
	// Axis points first, so that they are preferred over nearby samples.
	fractions := fractionSet{0, 1}
	for q := range 4 {
		c.addRadians(&fractions, float64(q)*halfPi, 0, 1)
	}
	for _, theta := range radians {
		for q := 1; q <= 4; q++ {
			c.addRadians(&fractions, reflectFromQuadrant1(theta, q), 0, 1)
		}
	}
	return fractions
}

type quadrantBoundary struct {
	fraction float64
	onAxis   bool
}

// quadrantBoundaries returns the fractions at which the sweep starts, ends, or
// crosses an axis, in increasing order.
func (c ApproximationContext) quadrantBoundaries() []quadrantBoundary {
	sweep := c.arc.Sweep
	bounds := []quadrantBoundary{{fraction: 0}, {fraction: 1}}
	for q := range 4 {
		f := sweep.RadiansToSignedPeriodicFraction(float64(q) * halfPi)
		if f < -smallFraction || f > 1+smallFraction {
			continue
		}
		f = clamp01(f)
		bounds = append(bounds, quadrantBoundary{fraction: f, onAxis: true})
		if sweep.IsFullCircle() && f <= smallFraction {
			bounds = append(bounds, quadrantBoundary{fraction: 1, onAxis: true})
		}
	}
	slices.SortStableFunc(bounds, func(a, b quadrantBoundary) int {
		switch {
		case a.fraction < b.fraction:
			return -1
		case a.fraction > b.fraction:
			return 1
		default:
			return 0
		}
	})
	merged := bounds[:1]
	for _, b := range bounds[1:] {
		last := &merged[len(merged)-1]
		if isAlmostEqual(last.fraction, b.fraction, smallFraction) {
			last.onAxis = last.onAxis || b.onAxis
			continue
		}
		merged = append(merged, b)
	}
	return merged
}

// quadrantOf returns the quadrant containing the sweep between fractions f0
// and f1, which must not straddle an axis.
func (c ApproximationContext) quadrantOf(f0, f1 float64) int {
	a0 := c.arc.Sweep.FractionToRadians(f0)
	a1 := c.arc.Sweep.FractionToRadians(f1)
	if q, _, _, ok := quadrantRadians(min(a0, a1), max(a0, a1)); ok {
		return q
	}
	// Large angles can lose enough precision to miss the axis tolerance.
	mid := normalizeRadians(0.5 * (a0 + a1))
	return min(int(mid/halfPi), 3) + 1
}

// SampleQuadrantFractions returns the same samples as
// [ApproximationContext.SampleFractions], grouped by the quadrants of the
// ellipse that the sweep passes through.
//
// The groups are ordered by increasing fraction. A fraction bordering two
// quadrants appears in both groups. Because an arc can start and end in the
// same quadrant, there are between 1 and 5 groups.
func (c ApproximationContext) SampleQuadrantFractions(opts Options) []QuadrantFractions {
	if !c.valid {
		return nil
	}
	radians := c.samplesInsideQuadrant1(opts)
	bounds := c.quadrantBoundaries()
	out := make([]QuadrantFractions, 0, len(bounds)-1)
	for i := 1; i < len(bounds); i++ {
		b0, b1 := bounds[i-1], bounds[i]
		f0, f1 := b0.fraction, b1.fraction
		q := c.quadrantOf(f0, f1)
		fractions := fractionSet{f0, f1}
		for _, theta := range radians {
			f := c.arc.Sweep.radiansToFractionFrom(reflectFromQuadrant1(theta, q), f0)
			if f > f1+smallFraction {
				continue
			}
			fractions.add(min(f, f1))
		}
		out = append(out, NewQuadrantFractions(q, fractions, b0.onAxis, b1.onAxis))
	}
	return out
}

// ComputeApproximationError returns the largest distance between the arc
// and the approximation [ApproximationContext.ConstructCircularArcChain]
// (if arcs is true) or [ApproximationContext.ConstructLineString] (if arcs is
// false) builds from samples.
//
// The distance is measured along perpendiculars between the arc and each
// approximating primitive; perpendiculars ending at a primitive's end points
// are ignored. It returns false if the arc is invalid or no such
// perpendicular exists.
func (c ApproximationContext) ComputeApproximationError(samples []QuadrantFractions, arcs bool) (DetailPair, bool) {
	if !c.valid {
		return DetailPair{}, false
	}
	p := &errorProcessor{arc: c.localArc}
	processQuadrantFractions(c.localArc, samples, arcs, p)
	worst, ok := p.worst.get()
	if !ok {
		return DetailPair{}, false
	}
	return worst.Transform(c.localToWorld), true
}

// ConstructLineString approximates the arc by a single linestring through
// the samples. The chain is closed if the arc is a full ellipse. It returns
// false if the arc is invalid or there aren't enough samples.
func (c ApproximationContext) ConstructLineString(samples []QuadrantFractions) (Chain, bool) {
	if !c.valid {
		return Chain{}, false
	}
	b := &lineStringBuilder{}
	processQuadrantFractions(c.localArc, samples, false, b)
	if len(b.points) < 2 {
		return Chain{}, false
	}
	chain := Chain{
		Primitives: []Primitive{LineString{Points: b.points}},
		Closed:     c.arc.IsFullEllipse(),
	}
	return chain.Transform(c.localToWorld), true
}

// ConstructCircularArcChain approximates the arc by a chain of circular arcs
// through the samples. The arcs at the ends of each quadrant are tangent to
// the ellipse, and each arc in between lies on the circle through its end
// points and the preceding sample. The chain is closed if the arc is a full ellipse. It returns false if the arc is
// invalid or there aren't enough samples.
func (c ApproximationContext) ConstructCircularArcChain(samples []QuadrantFractions) (Chain, bool) {
	if !c.valid {
		return Chain{}, false
	}
	b := &arcChainBuilder{}
	processQuadrantFractions(c.localArc, samples, true, b)
	if len(b.primitives) == 0 {
		return Chain{}, false
	}
	chain := Chain{
		Primitives: b.primitives,
		Closed:     c.arc.IsFullEllipse(),
	}
	return chain.Transform(c.localToWorld), true
}

// Approximate samples the arc and constructs a circular arc chain (if arcs is
// true) or a linestring (if arcs is false) from the samples.
func (c ApproximationContext) Approximate(opts Options, arcs bool) (Chain, bool) {
	samples := c.SampleQuadrantFractions(opts)
	if arcs {
		return c.ConstructCircularArcChain(samples)
	}
	return c.ConstructLineString(samples)
}

// localFraction returns the fraction of the local arc's sweep closest to the
// local point pt.
func (c ApproximationContext) localFraction(pt Point) float64 {
	x, y := c.localArc.Vector0.X, c.localArc.Vector90.Y
	theta := math.Atan2(pt.Y/y, pt.X/x)
	return clamp01(c.localArc.Sweep.RadiansToSignedPeriodicFraction(theta))
}

// ChainError returns the largest distance between the arc and an arbitrary
// approximating chain, such as one built by this context and then edited.
// The end points of each primitive are assumed to lie on the arc and are
// mapped back to the arc's sweep to select the part of the arc each primitive
// approximates. Chains with circular arcs must be in the arc's plane and
// unscaled.
func (c ApproximationContext) ChainError(chain Chain) (DetailPair, bool) {
	if !c.valid {
		return DetailPair{}, false
	}
	var worst option[DetailPair]
	measure := func(prim approximant, start, end Point) {
		f0 := c.localFraction(start)
		f1 := c.localFraction(end)
		if c.localArc.IsFullEllipse() && f1 <= smallFraction && f0 > f1 {
			// The primitive closes the loop.
			f1 = 1
		}
		for _, pair := range closeApproaches(c.localArc, f0, f1, prim) {
			if cur, ok := worst.get(); !ok || pair.A.Distance > cur.A.Distance {
				worst.set(pair)
			}
		}
	}
	for _, p := range chain.Transform(c.worldToLocal).Primitives {
		switch p := p.(type) {
		case Line:
			measure(p, p.P0, p.P1)
		case CircularArc:
			measure(p, p.Start(), p.End())
		case LineString:
			for seg := range p.Segments() {
				measure(seg, seg.P0, seg.P1)
			}
		}
	}
	pair, ok := worst.get()
	if !ok {
		return DetailPair{}, false
	}
	return pair.Transform(c.localToWorld), true
}
