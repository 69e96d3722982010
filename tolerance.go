package arcapprox

import "math"

// Tolerances used throughout the package. Fractions and angles closer than
// these are treated as equal, which is also how sample sets are deduplicated.
const (
	smallFraction              = 1e-10
	smallAngle                 = 1e-12
	smallMetricDistance        = 1e-6
	smallMetricDistanceSquared = smallMetricDistance * smallMetricDistance
	halfPi                     = math.Pi / 2
	twoPi                      = 2 * math.Pi
)

func isAlmostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// isAlmostEqualEither reports whether a is within tol of b0 or b1.
func isAlmostEqualEither(a, b0, b1, tol float64) bool {
	return isAlmostEqual(a, b0, tol) || isAlmostEqual(a, b1, tol)
}

// isSameCoordinateSquared compares two squared distances by their roots.
func isSameCoordinateSquared(d0, d1 float64) bool {
	return isAlmostEqual(math.Sqrt(d0), math.Sqrt(d1), smallMetricDistance)
}

func clamp01(f float64) float64 {
	return min(max(f, 0), 1)
}

type option[T any] struct {
	isSet bool
	value T
}

func (opt *option[T]) set(v T) {
	opt.isSet = true
	opt.value = v
}

func (opt *option[T]) get() (T, bool) {
	return opt.value, opt.isSet
}
