package arcapprox

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

// recorder records the calls a quadrantProcessor receives.
type recorder struct {
	calls []string
	arcs  []CircularArc
}

func (r *recorder) beginQuadrant(q QuadrantFractions, reversed bool) {
	r.calls = append(r.calls, fmt.Sprintf("begin Q%d reversed=%t", q.Quadrant, reversed))
}

func (r *recorder) announceChord(l Line, f0, f1 float64) {
	r.calls = append(r.calls, fmt.Sprintf("chord %.4f %.4f", f0, f1))
}

func (r *recorder) announceArc(a CircularArc, f0, f1 float64) {
	r.calls = append(r.calls, fmt.Sprintf("arc %.4f %.4f", f0, f1))
	r.arcs = append(r.arcs, a)
}

func (r *recorder) endQuadrant() {
	r.calls = append(r.calls, "end")
}

func TestReverseQuadrant(t *testing.T) {
	tests := []struct {
		q    QuadrantFractions
		want bool
	}{
		{NewQuadrantFractions(1, []float64{0, 0.25}, true, true), false},
		{NewQuadrantFractions(1, []float64{0.1, 0.25}, false, true), true},
		{NewQuadrantFractions(1, []float64{0, 0.2}, true, false), false},
		{NewQuadrantFractions(1, []float64{0.1, 0.2}, false, false), false},
		// Quadrant 1 starts at the major axis, quadrant 2 ends there.
		{NewQuadrantFractions(1, []float64{0, 0.125, 0.25}, true, true), false},
		{NewQuadrantFractions(2, []float64{0.25, 0.375, 0.5}, true, true), true},
		{NewQuadrantFractions(2, []float64{0.3, 0.375, 0.5}, false, true), true},
		{NewQuadrantFractions(2, []float64{0.25, 0.375, 0.4}, true, false), false},
		{NewQuadrantFractions(1, []float64{0.1, 0.125, 0.25}, false, true), false},
	}
	for _, tt := range tests {
		if got := reverseQuadrant(testEllipse, tt.q); got != tt.want {
			t.Errorf("%v (start=%t, end=%t): got reversed=%t, expected %t",
				tt.q, tt.q.AxisAtStart(), tt.q.AxisAtEnd(), got, tt.want)
		}
	}
}

func TestProcessQuadrantFractions(t *testing.T) {
	samples := NewApproximationContext(testEllipse).SampleQuadrantFractions(NewOptions(UniformParameter, 3, 0, nil))
	samples = append(samples[:2], NewQuadrantFractions(3, []float64{0.5}, true, false))

	r := &recorder{}
	processQuadrantFractions(testEllipse, samples, false, r)
	want := []string{
		"begin Q1 reversed=false",
		"chord 0.0000 0.1250",
		"chord 0.1250 0.2500",
		"end",
		"begin Q2 reversed=true",
		"chord 0.5000 0.3750",
		"chord 0.3750 0.2500",
		"end",
	}
	diff(t, want, r.calls)

	r = &recorder{}
	processQuadrantFractions(testEllipse, samples[:1], true, r)
	want = []string{
		"begin Q1 reversed=false",
		"arc 0.0000 0.1250",
		"arc 0.1250 0.2500",
		"end",
	}
	diff(t, want, r.calls)
}

func TestAnnounceArcsFallsBackToChords(t *testing.T) {
	// A degenerate ellipse whose points all lie on a straight line.
	flat := NewEllipticalArcFromAxes(Point{}, Vec(10, 0), Vec(10, 1e-15), FullCircle())
	r := &recorder{}
	announceArcs(flat, []float64{0.01, 0.04, 0.07, 0.1}, false, r)
	diff(t, []string{"chord 0.0100 0.0400", "chord 0.0400 0.0700", "chord 0.0700 0.1000"}, r.calls)
}

func TestAnnounceArcs(t *testing.T) {
	fs := []float64{0, 0.05, 0.1, 0.15, 0.2, 0.25}
	for _, reversed := range []bool{false, true} {
		fs := slices.Clone(fs)
		if reversed {
			slices.Reverse(fs)
		}
		r := &recorder{}
		announceArcs(testEllipse, fs, reversed, r)
		if len(r.arcs) != len(fs)-1 {
			t.Fatalf("reversed=%t: got %d arcs, expected %d", reversed, len(r.arcs), len(fs)-1)
		}
		for i, a := range r.arcs {
			assertNear(t, a.Start(), testEllipse.FractionToPoint(fs[i]), 1e-9)
			assertNear(t, a.End(), testEllipse.FractionToPoint(fs[i+1]), 1e-9)
			if i > 0 && i < len(r.arcs)-1 {
				// Arcs in between pass through the preceding sample.
				prev := testEllipse.FractionToPoint(fs[i-1])
				diff(t, a.Radius, prev.Distance(a.Center), cmpopts.EquateApprox(0, 1e-9))
			}
		}

		// The ends are tangent to the ellipse.
		_, d0, _ := testEllipse.FractionToDerivatives(fs[0])
		_, d1, _ := testEllipse.FractionToDerivatives(fs[len(fs)-1])
		if reversed {
			d0, d1 = d0.Negate(), d1.Negate()
		}
		t0, _ := r.arcs[0].Tangents()
		_, t1 := r.arcs[len(r.arcs)-1].Tangents()
		assertParallel(t, t0, d0)
		assertParallel(t, t1, d1)
	}
}

func TestLineStringBuilder(t *testing.T) {
	b := &lineStringBuilder{}
	b.beginQuadrant(QuadrantFractions{}, false)
	b.announceChord(Line{Pt(0, 0), Pt(1, 0)}, 0, 0.1)
	b.announceChord(Line{Pt(1, 0), Pt(2, 0)}, 0.1, 0.2)
	b.endQuadrant()
	b.beginQuadrant(QuadrantFractions{}, true)
	b.announceChord(Line{Pt(4, 0), Pt(3, 0)}, 0.4, 0.3)
	b.announceChord(Line{Pt(3, 0), Pt(2, 0)}, 0.3, 0.2)
	b.endQuadrant()
	diff(t, []Point{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0), Pt(4, 0)}, b.points)
}

func TestArcChainBuilder(t *testing.T) {
	b := &arcChainBuilder{}
	b.beginQuadrant(QuadrantFractions{}, true)
	b.announceChord(Line{Pt(4, 0), Pt(3, 0)}, 0.4, 0.3)
	b.announceArc(CircularArc{Pt(2.5, 0), 0.5, 0, 3.14159}, 0.3, 0.2)
	b.endQuadrant()
	if len(b.primitives) != 2 {
		t.Fatalf("got %d primitives, expected 2", len(b.primitives))
	}
	assertNear(t, b.primitives[0].Start(), Pt(2, 0), 1e-5)
	assertNear(t, b.primitives[0].End(), Pt(3, 0), 1e-12)
	diff(t, Line{Pt(3, 0), Pt(4, 0)}, b.primitives[1])
}

func TestErrorProcessor(t *testing.T) {
	quarter := NewEllipticalArc(Point{}, Vec(10, 5), 0, NewAngleSweep(0, halfPi))
	p := &errorProcessor{arc: quarter}
	p.announceChord(Line{quarter.FractionToPoint(0.5), quarter.FractionToPoint(1)}, 0.5, 1)
	p.announceChord(Line{quarter.Start(), quarter.End()}, 0, 1)
	p.announceChord(Line{quarter.FractionToPoint(0.5), quarter.Start()}, 0.5, 0)
	worst, ok := p.worst.get()
	if !ok {
		t.Fatal("no error recorded")
	}
	diff(t, quarterChordError, worst.A.Distance, cmpopts.EquateApprox(0, 1e-9))
}
