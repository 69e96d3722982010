package arcapprox

import (
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

var testEllipse = NewEllipticalArc(Point{}, Vec(10, 5), 0, FullCircle())

func TestUniformParameterSamples(t *testing.T) {
	s := newQuadrantSampler(testEllipse, NewOptions(UniformParameter, 4, 0, nil))
	diff(t, []float64{math.Pi / 6, math.Pi / 3}, s.samplesInsideQuadrant1(), cmpopts.EquateApprox(0, 1e-15))

	s = newQuadrantSampler(testEllipse, NewOptions(UniformParameter, 2, 0, nil))
	if got := s.samplesInsideQuadrant1(); len(got) != 0 {
		t.Errorf("got %v, expected no samples", got)
	}
}

func TestCurvatureToRadians(t *testing.T) {
	s := newQuadrantSampler(testEllipse, DefaultOptions())
	lo, hi := s.curvatureRange()
	diff(t, [2]float64{0.05, 0.4}, [2]float64{lo, hi}, cmpopts.EquateApprox(0, 1e-15))

	for _, theta := range []float64{0.1, 0.5, 1, 1.5} {
		k := testEllipse.RadiansToCurvature(theta)
		got, ok := s.curvatureToRadians(k)
		if !ok {
			t.Errorf("θ=%g: curvature %g not attained", theta, k)
			continue
		}
		diff(t, theta, got, cmpopts.EquateApprox(0, 1e-6))
	}

	if _, ok := s.curvatureToRadians(0.5); ok {
		t.Error("curvature 0.5 shouldn't be attained")
	}
	if _, ok := s.curvatureToRadians(0.01); ok {
		t.Error("curvature 0.01 shouldn't be attained")
	}
}

func TestCurvatureSamples(t *testing.T) {
	square := func(f float64) float64 { return f * f }
	for _, opts := range []Options{
		NewOptions(UniformCurvature, 7, 0, nil),
		NewOptions(NonUniformCurvature, 7, 0, square),
		NewOptions(UniformCurvature, 3, 0, square),
	} {
		for _, arc := range []EllipticalArc{testEllipse, NewEllipticalArc(Pt(3, 3), Vec(2, 9), 0.4, FullCircle())} {
			s := newQuadrantSampler(arc, opts)
			lo, hi := s.curvatureRange()
			got := s.samplesInsideQuadrant1()
			if len(got) != opts.NumSamplesInQuadrant-2 {
				t.Fatalf("%v: got %d samples, expected %d", opts.Method, len(got), opts.NumSamplesInQuadrant-2)
			}
			for i, theta := range got {
				if theta <= 0 || theta >= math.Pi/2 {
					t.Errorf("%v: sample %g outside of quadrant 1", opts.Method, theta)
				}
				if i > 0 && theta <= got[i-1] {
					t.Errorf("%v: samples %v aren't strictly increasing", opts.Method, got)
				}
				local := NewEllipticalArc(Point{}, Vec(math.Sqrt(s.xMag2), math.Sqrt(s.yMag2)), 0, FullCircle())
				if k := local.RadiansToCurvature(theta); k < lo-1e-12 || k > hi+1e-12 {
					t.Errorf("%v: curvature %g at %g outside of [%g, %g]", opts.Method, k, theta, lo, hi)
				}
			}
		}
	}
}

func TestUniformCurvatureIgnoresRemap(t *testing.T) {
	cube := func(f float64) float64 { return f * f * f }
	a := newQuadrantSampler(testEllipse, NewOptions(UniformCurvature, 5, 0, nil)).samplesInsideQuadrant1()
	b := newQuadrantSampler(testEllipse, NewOptions(UniformCurvature, 5, 0, cube)).samplesInsideQuadrant1()
	diff(t, a, b)
	c := newQuadrantSampler(testEllipse, NewOptions(NonUniformCurvature, 5, 0, cube)).samplesInsideQuadrant1()
	if slices.Equal(a, c) {
		t.Error("remap function had no effect")
	}
}

// withQuadrantEnds returns the intervals between consecutive samples.
func withQuadrantEnds(samples []float64) []float64 {
	out := append([]float64{0}, samples...)
	return append(out, math.Pi/2)
}

func TestSubdivideForChords(t *testing.T) {
	for _, maxError := range []float64{1, 0.1, 0.01} {
		s := newQuadrantSampler(testEllipse, NewOptions(SubdivideForChords, 0, maxError, nil))
		got := withQuadrantEnds(s.samplesInsideQuadrant1())
		if !slices.IsSorted(got) {
			t.Fatalf("samples %v aren't sorted", got)
		}
		for i := 1; i < len(got); i++ {
			if e := s.chordError(got[i-1], got[i]); e > maxError {
				t.Errorf("maxError=%g: chord between %g and %g has error %g", maxError, got[i-1], got[i], e)
			}
		}
	}
}

func TestSubdivideForArcs(t *testing.T) {
	for _, arc := range []EllipticalArc{
		testEllipse,
		NewEllipticalArc(Point{}, Vec(100, 3), 0, FullCircle()),
		NewEllipticalArc(Point{}, Vec(1, 20), 0, FullCircle()),
	} {
		for _, maxError := range []float64{1, 0.1, 0.01} {
			s := newQuadrantSampler(arc, NewOptions(SubdivideForArcs, 0, maxError, nil))
			got := withQuadrantEnds(s.samplesInsideQuadrant1())
			if !slices.IsSorted(got) {
				t.Fatalf("samples %v aren't sorted", got)
			}
			fs := make([]float64, len(got))
			for i, theta := range got {
				fs[i] = theta / halfPi
			}
			quarter := EllipticalArc{Vector0: arc.Vector0, Vector90: arc.Vector90, Sweep: AngleSweep{0, halfPi}}
			for i, e := range quadrantArcErrors(quarter, fs) {
				if e > maxError {
					t.Errorf("%v maxError=%g: arc between %g and %g has error %g", arc.Vector0, maxError, got[i], got[i+1], e)
				}
			}
		}
	}

	for _, maxError := range []float64{1, 0.1, 0.01} {
		arcs := newQuadrantSampler(testEllipse, NewOptions(SubdivideForArcs, 0, maxError, nil)).samplesInsideQuadrant1()
		chords := newQuadrantSampler(testEllipse, NewOptions(SubdivideForChords, 0, maxError, nil)).samplesInsideQuadrant1()
		if len(arcs) > len(chords) {
			t.Errorf("maxError=%g: %d arc samples, but only %d chord samples", maxError, len(arcs), len(chords))
		}
	}
}

func TestQuadrantArcErrors(t *testing.T) {
	quarter := NewEllipticalArc(Point{}, Vec(10, 5), 0, NewAngleSweep(0, halfPi))
	fs := []float64{0, 0.25, 0.5, 0.75, 1}
	errs := quadrantArcErrors(quarter, fs)
	if len(errs) != len(fs)-1 {
		t.Fatalf("got %d errors, expected %d", len(errs), len(fs)-1)
	}
	for i, e := range errs {
		if e <= 0 || e > 0.1 {
			t.Errorf("interval %d: got error %g", i, e)
		}
	}

	// Two fractions are measured in both directions.
	forward := &errorProcessor{arc: quarter}
	announceArcs(quarter, []float64{0, 1}, false, forward)
	backward := &errorProcessor{arc: quarter}
	announceArcs(quarter, []float64{1, 0}, true, backward)
	e0, _ := forward.worst.get()
	e1, _ := backward.worst.get()
	diff(t, []float64{max(e0.A.Distance, e1.A.Distance)}, quadrantArcErrors(quarter, []float64{0, 1}))
}

func TestSubdivisionDepth(t *testing.T) {
	s := newQuadrantSampler(testEllipse, NewOptions(SubdivideForChords, 0, 0, nil))
	if got, want := len(s.samplesInsideQuadrant1()), 1<<maxSubdivisionDepth-1; got != want {
		t.Errorf("got %d samples, expected %d", got, want)
	}
}

func TestChordError(t *testing.T) {
	s := newQuadrantSampler(testEllipse, DefaultOptions())
	// Distance of (10/√2, 5/√2) to the line x/10 + y/5 = 1.
	want := (10*math.Sqrt2 - 10) / math.Sqrt(5)
	diff(t, want, s.chordError(0, math.Pi/2), cmpopts.EquateApprox(0, 1e-12))
}

func TestCircleThrough(t *testing.T) {
	center, radius, ok := circleThrough(Pt(1, 0), Pt(0, 1), Pt(-1, 0))
	if !ok {
		t.Fatal("no circle through points")
	}
	assertNear(t, center, Pt(0, 0), 1e-12)
	diff(t, 1.0, radius, cmpopts.EquateApprox(0, 1e-12))

	if _, _, ok := circleThrough(Pt(0, 0), Pt(1, 1), Pt(3, 3)); ok {
		t.Error("collinear points shouldn't have a circle")
	}
}

func TestUnknownSampleMethod(t *testing.T) {
	s := newQuadrantSampler(testEllipse, Options{Method: 42})
	if got := s.samplesInsideQuadrant1(); got != nil {
		t.Errorf("got %v, expected no samples", got)
	}
	diff(t, "SampleMethod(42)", SampleMethod(42).String())
}
