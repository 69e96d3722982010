package arcapprox

import "fmt"

// SampleMethod selects how [ApproximationContext.SampleFractions] places
// samples along each quadrant of an elliptical arc.
//
// Because ellipses have two axes of symmetry, samples are computed for the
// first quadrant and reflected across each axis to the other quadrants.
// Samples that fall outside the arc's sweep are discarded.
type SampleMethod int

const (
	// UniformParameter places samples uniformly between the minimum and
	// maximum angles of a full quadrant.
	UniformParameter SampleMethod = iota
	// UniformCurvature places samples uniformly between the minimum and
	// maximum curvatures of a full quadrant.
	UniformCurvature
	// NonUniformCurvature places samples between the minimum and maximum
	// curvatures of a full quadrant, using Options.Remap to compute the
	// interpolation weights.
	NonUniformCurvature
	// SubdivideForChords subdivides parameter space until the interpolating
	// linestring is within Options.MaxError of the arc.
	SubdivideForChords
	// SubdivideForArcs subdivides parameter space until interpolating
	// circular arcs are within Options.MaxError of the arc.
	SubdivideForArcs
)

func (m SampleMethod) String() string {
	switch m {
	case UniformParameter:
		return "UniformParameter"
	case UniformCurvature:
		return "UniformCurvature"
	case NonUniformCurvature:
		return "NonUniformCurvature"
	case SubdivideForChords:
		return "SubdivideForChords"
	case SubdivideForArcs:
		return "SubdivideForArcs"
	default:
		return fmt.Sprintf("SampleMethod(%d)", int(m))
	}
}

const (
	// DefaultSamplesInQuadrant is the default value of
	// Options.NumSamplesInQuadrant.
	DefaultSamplesInQuadrant = 4
	// DefaultMaxError is the default value of Options.MaxError.
	DefaultMaxError = 0.01
)

// FractionMapper is a monotone function that maps [0, 1] onto [0, 1].
type FractionMapper func(f float64) float64

func identityFraction(f float64) float64 { return f }

// Options configures the sampling of elliptical arcs. Options is a plain
// value; copying it yields an independent set of options.
//
// The zero value is usable: it selects UniformParameter with the minimum of
// two samples per quadrant.
type Options struct {
	// Method selects the sampling strategy.
	Method SampleMethod
	// NumSamplesInQuadrant is the number of samples in each full quadrant,
	// including both quadrant end points. For n samples one can construct an
	// approximating chain of n-1 chords or arcs per quadrant. It is used by
	// the interpolating methods and is at least 2.
	NumSamplesInQuadrant int
	// MaxError is the maximum distance between the arc and an approximation
	// built from the samples. It is used by the subdividing methods.
	MaxError float64
	// Remap remaps the interpolation weights of NonUniformCurvature. Nil means
	// the identity.
	Remap FractionMapper
}

// DefaultOptions returns options for UniformParameter sampling with
// [DefaultSamplesInQuadrant] samples and a maximum error of [DefaultMaxError].
func DefaultOptions() Options {
	return NewOptions(UniformParameter, DefaultSamplesInQuadrant, DefaultMaxError, nil)
}

// NewOptions returns options for the given method. Out-of-range values are
// replaced: fewer than two samples become two, a negative maximum error
// becomes [DefaultMaxError], and a nil remap function becomes the identity.
func NewOptions(method SampleMethod, numSamplesInQuadrant int, maxError float64, remap FractionMapper) Options {
	return Options{
		Method:               method,
		NumSamplesInQuadrant: numSamplesInQuadrant,
		MaxError:             maxError,
		Remap:                remap,
	}.normalized()
}

func (o Options) normalized() Options {
	if o.NumSamplesInQuadrant < 2 {
		o.NumSamplesInQuadrant = 2
	}
	if o.MaxError < 0 {
		o.MaxError = DefaultMaxError
	}
	if o.Remap == nil {
		o.Remap = identityFraction
	}
	return o
}
