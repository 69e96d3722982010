package arcapprox

import (
	"math"
	"slices"
)

// maxSubdivisionDepth bounds the recursion of the subdividing samplers, and
// with it the number of samples per quadrant to 2^maxSubdivisionDepth.
const maxSubdivisionDepth = 12

// quadrantSampler computes samples strictly inside the first quadrant of a
// valid, non-circular ellipse with perpendicular axes. Its sweep is ignored.
type quadrantSampler struct {
	// Squared lengths of Vector0 and Vector90.
	xMag2, yMag2 float64
	opts         Options
}

func newQuadrantSampler(arc EllipticalArc, opts Options) quadrantSampler {
	return quadrantSampler{
		xMag2: arc.Vector0.Hypot2(),
		yMag2: arc.Vector90.Hypot2(),
		opts:  opts.normalized(),
	}
}

// samplers maps each SampleMethod to a function returning radian angles in the
// open interval (0, π/2), sorted in increasing order.
var samplers = [...]func(s quadrantSampler) []float64{
	UniformParameter:    quadrantSampler.uniformParameter,
	UniformCurvature:    quadrantSampler.uniformCurvature,
	NonUniformCurvature: quadrantSampler.nonUniformCurvature,
	SubdivideForChords:  quadrantSampler.subdivideForChords,
	SubdivideForArcs:    quadrantSampler.subdivideForArcs,
}

// samplesInsideQuadrant1 dispatches to the sampler of the configured method.
// Unknown methods produce no samples.
func (s quadrantSampler) samplesInsideQuadrant1() []float64 {
	m := s.opts.Method
	if m < 0 || int(m) >= len(samplers) {
		return nil
	}
	return samplers[m](s)
}

func (s quadrantSampler) uniformParameter() []float64 {
	n := s.opts.NumSamplesInQuadrant
	out := make([]float64, 0, n-2)
	delta := halfPi / float64(n-1)
	for i := 1; i < n-1; i++ {
		out = append(out, float64(i)*delta)
	}
	return out
}

func (s quadrantSampler) uniformCurvature() []float64 {
	s.opts.Remap = identityFraction
	return s.nonUniformCurvature()
}

// curvatureRange returns the curvatures at the two axis points, which are the
// extreme curvatures of the ellipse, in increasing order.
func (s quadrantSampler) curvatureRange() (lo, hi float64) {
	k0 := math.Sqrt(s.xMag2) / s.yMag2
	k90 := math.Sqrt(s.yMag2) / s.xMag2
	return min(k0, k90), max(k0, k90)
}

// curvatureToRadians returns the angle in [0, π/2] at which the ellipse has
// the given curvature. It returns false if the ellipse doesn't attain the
// curvature.
//
// With f(θ) = c + u·cos θ + v·sin θ and u⊥v, the curvature is
// K(θ) = |u×v| / |f'(θ)|³, and K is monotonic on the first quadrant. Solving for
// θ: λ := |f'(θ)|² = cbrt(u·u v·v / K²) = u·u + cos²θ (v·v − u·u), hence
// cos θ = sqrt((λ − u·u) / (v·v − u·u)), taking the positive root in Q1.
func (s quadrantSampler) curvatureToRadians(k float64) (float64, bool) {
	lo, hi := s.curvatureRange()
	if k < lo || k > hi {
		return 0, false
	}
	lambda := math.Cbrt(s.xMag2 * s.yMag2 / (k * k))
	cos := math.Sqrt(math.Abs((lambda - s.xMag2) / (s.yMag2 - s.xMag2)))
	return math.Acos(min(cos, 1)), true
}

func (s quadrantSampler) nonUniformCurvature() []float64 {
	n := s.opts.NumSamplesInQuadrant
	lo, hi := s.curvatureRange()
	out := make([]float64, 0, n-2)
	delta := 1.0 / float64(n-1)
	for i := 1; i < n-1; i++ {
		j := s.opts.Remap(float64(i) * delta)
		k := (1-j)*lo + j*hi
		if theta, ok := s.curvatureToRadians(k); ok {
			out = append(out, theta)
		}
	}
	slices.Sort(out)
	return out
}

// point returns the point of the axis-aligned ellipse centered on the origin.
func (s quadrantSampler) point(theta float64) Point {
	sin, cos := math.Sincos(theta)
	return Pt(math.Sqrt(s.xMag2)*cos, math.Sqrt(s.yMag2)*sin)
}

// chordError returns the distance between the chord from θ0 to θ1 and the
// ellipse between them. Affine maps preserve parallel lines, so as for the
// circle the farthest point lies at the parameter midpoint.
func (s quadrantSampler) chordError(theta0, theta1 float64) float64 {
	p0 := s.point(theta0)
	p1 := s.point(theta1)
	pm := s.point(0.5 * (theta0 + theta1))
	chord := p1.Sub(p0)
	l := chord.Hypot()
	if l == 0 {
		return pm.Distance(p0)
	}
	return math.Abs(chord.Cross(pm.Sub(p0))) / l
}

func (s quadrantSampler) subdivide(theta0, theta1 float64, depth int, errFn func(float64, float64) float64, out []float64) []float64 {
	if depth >= maxSubdivisionDepth || errFn(theta0, theta1) <= s.opts.MaxError {
		return out
	}
	mid := 0.5 * (theta0 + theta1)
	out = s.subdivide(theta0, mid, depth+1, errFn, out)
	out = append(out, mid)
	return s.subdivide(mid, theta1, depth+1, errFn, out)
}

func (s quadrantSampler) subdivideForChords() []float64 {
	return s.subdivide(0, halfPi, 0, s.chordError, nil)
}

// subdivideForArcs bisects the quadrant until each circular arc that
// [ApproximationContext.ConstructCircularArcChain] builds through the samples
// is within MaxError of the ellipse. An arc depends on the samples next to
// it, so all arcs are rebuilt and measured again after each round of
// bisections.
func (s quadrantSampler) subdivideForArcs() []float64 {
	quarter := EllipticalArc{
		Vector0:  Vec(math.Sqrt(s.xMag2), 0),
		Vector90: Vec(0, math.Sqrt(s.yMag2)),
		Sweep:    AngleSweep{Start: 0, Sweep: halfPi},
	}
	fs := []float64{0, 1}
	// Recursion depth of each interval between fractions.
	depths := []int{0}
	for {
		errs := quadrantArcErrors(quarter, fs)
		nextFs := []float64{fs[0]}
		var nextDepths []int
		for i, e := range errs {
			if e > s.opts.MaxError && depths[i] < maxSubdivisionDepth {
				nextFs = append(nextFs, 0.5*(fs[i]+fs[i+1]))
				nextDepths = append(nextDepths, depths[i]+1, depths[i]+1)
			} else {
				nextDepths = append(nextDepths, depths[i])
			}
			nextFs = append(nextFs, fs[i+1])
		}
		if len(nextFs) == len(fs) {
			break
		}
		fs, depths = nextFs, nextDepths
	}
	out := make([]float64, 0, len(fs)-2)
	for _, f := range fs[1 : len(fs)-1] {
		out = append(out, quarter.Sweep.FractionToRadians(f))
	}
	return out
}

// quadrantArcErrors returns the error of the circular arcs built through the
// fractions fs of a whole quadrant, one per interval between consecutive
// fractions. With only two fractions, the traversal direction depends on
// which quadrant of the ellipse they are reflected into, so the larger error
// of both directions is reported.
func quadrantArcErrors(quarter EllipticalArc, fs []float64) []float64 {
	p := &intervalErrorProcessor{
		arc:       quarter,
		fractions: fs,
		errs:      make([]float64, len(fs)-1),
	}
	q := NewQuadrantFractions(1, fs, true, true)
	processQuadrantFractions(quarter, []QuadrantFractions{q}, true, p)
	if len(fs) == 2 {
		announceArcs(quarter, []float64{fs[1], fs[0]}, true, p)
	}
	return p.errs
}
