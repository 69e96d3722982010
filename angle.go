package arcapprox

import (
	"fmt"
	"math"
)

// normalizeRadians returns theta in the range [0, 2π).
func normalizeRadians(theta float64) float64 {
	theta = math.Mod(theta, twoPi)
	if theta < 0 {
		theta += twoPi
	}
	if theta >= twoPi {
		// math.Mod of a tiny negative number plus 2π can round up to 2π.
		theta = 0
	}
	return theta
}

// isRadiansInStartEnd reports whether theta lies on the counterclockwise
// sweep from start to end, allowing for period shifts of theta. The ends are
// inclusive within smallAngle.
func isRadiansInStartEnd(theta, start, end float64) bool {
	if end < start {
		start, end = end, start
	}
	span := end - start
	if span >= twoPi-smallAngle {
		return true
	}
	delta := normalizeRadians(theta - start + smallAngle)
	return delta <= span+2*smallAngle
}

// AngleSweep describes a range of angles, starting at Start and extending by
// the signed Sweep. A positive sweep is counterclockwise.
type AngleSweep struct {
	Start float64
	Sweep float64
}

// NewAngleSweep returns the sweep from start to end radians.
func NewAngleSweep(start, end float64) AngleSweep {
	return AngleSweep{Start: start, Sweep: end - start}
}

// FullCircle returns the counterclockwise sweep of 2π beginning at zero.
func FullCircle() AngleSweep {
	return AngleSweep{Start: 0, Sweep: twoPi}
}

func (s AngleSweep) String() string {
	return fmt.Sprintf("[%g, %g]", s.Start, s.End())
}

// End returns the radian angle at the end of the sweep.
func (s AngleSweep) End() float64 {
	return s.Start + s.Sweep
}

// IsCCW reports whether the sweep is counterclockwise.
func (s AngleSweep) IsCCW() bool {
	return s.Sweep >= 0
}

// IsEmpty reports whether the sweep has no angular extent.
func (s AngleSweep) IsEmpty() bool {
	return math.Abs(s.Sweep) <= smallAngle
}

// IsFullCircle reports whether the sweep covers the whole circle.
func (s AngleSweep) IsFullCircle() bool {
	return math.Abs(s.Sweep) >= twoPi-smallAngle
}

// FractionToRadians returns the angle at the given fraction of the sweep.
func (s AngleSweep) FractionToRadians(f float64) float64 {
	return s.Start + f*s.Sweep
}

// Reverse returns the sweep traversed in the opposite direction.
func (s AngleSweep) Reverse() AngleSweep {
	return AngleSweep{Start: s.End(), Sweep: -s.Sweep}
}

// RadiansToSignedPeriodicFraction returns the fraction of the sweep at which
// theta lies, shifting theta by multiples of 2π as needed.
//
// Angles inside the sweep map to [0, 1]. For a full circle the start angle
// maps to 0, never to 1. Angles outside the sweep map to a negative fraction if
// they are closer to the start of the sweep and to a fraction greater than 1
// if they are closer to its end.
func (s AngleSweep) RadiansToSignedPeriodicFraction(theta float64) float64 {
	if s.IsEmpty() {
		return 0
	}
	sweep := math.Abs(s.Sweep)
	delta := theta - s.Start
	if s.Sweep < 0 {
		delta = -delta
	}
	delta = normalizeRadians(delta)
	if delta > twoPi-smallAngle {
		delta = 0
	}
	if delta <= sweep+smallAngle {
		return delta / sweep
	}
	if toStart, toEnd := twoPi-delta, delta-sweep; toStart < toEnd {
		return -toStart / sweep
	}
	return delta / sweep
}

// IsRadiansInSweep reports whether theta, shifted by any multiple of 2π, lies
// within the sweep.
func (s AngleSweep) IsRadiansInSweep(theta float64) bool {
	if s.IsFullCircle() {
		return true
	}
	f := s.RadiansToSignedPeriodicFraction(theta)
	return f >= -smallFraction && f <= 1+smallFraction
}

// radiansToFractionFrom returns the fraction of theta measured from the
// fraction f0 in the direction of the sweep, for angles at most one period
// past f0.
func (s AngleSweep) radiansToFractionFrom(theta, f0 float64) float64 {
	a0 := s.FractionToRadians(f0)
	delta := theta - a0
	if s.Sweep < 0 {
		delta = -delta
	}
	delta = normalizeRadians(delta)
	if delta > twoPi-smallAngle {
		delta = 0
	}
	return f0 + delta/math.Abs(s.Sweep)
}
