package arcapprox

import (
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.Method != UniformParameter || o.NumSamplesInQuadrant != 4 || o.MaxError != 0.01 || o.Remap == nil {
		t.Errorf("unexpected default options %+v", o)
	}
}

func TestNewOptionsClamps(t *testing.T) {
	o := NewOptions(NonUniformCurvature, 1, -3, nil)
	if o.NumSamplesInQuadrant != 2 {
		t.Errorf("got %d samples, expected 2", o.NumSamplesInQuadrant)
	}
	if o.MaxError != DefaultMaxError {
		t.Errorf("got max error %g, expected %g", o.MaxError, DefaultMaxError)
	}
	if o.Remap == nil || o.Remap(0.3) != 0.3 {
		t.Error("expected identity remap")
	}

	o = NewOptions(SubdivideForArcs, 10, 0.5, func(f float64) float64 { return f * f })
	if o.NumSamplesInQuadrant != 10 || o.MaxError != 0.5 || o.Remap(0.5) != 0.25 {
		t.Errorf("options were changed: %+v", o)
	}
}

func TestSampleMethodString(t *testing.T) {
	want := []string{"UniformParameter", "UniformCurvature", "NonUniformCurvature", "SubdivideForChords", "SubdivideForArcs"}
	var got []string
	for m := UniformParameter; m <= SubdivideForArcs; m++ {
		got = append(got, m.String())
	}
	diff(t, want, got)
}
