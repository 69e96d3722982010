package arcapprox

import (
	"fmt"
	"math"
)

// QuadrantFractions holds the samples of an elliptical arc that lie in one
// quadrant of its ellipse.
//
// Quadrants are numbered 1 to 4, counterclockwise in steps of π/2 starting at
// the arc's Vector0. Quadrant 1 spans Vector0 to Vector90, quadrant 4 ends at
// Vector0.
type QuadrantFractions struct {
	// Quadrant is the quadrant of the full ellipse containing the samples.
	Quadrant int
	// Fractions are the sample locations as increasing fractions of the
	// arc's sweep.
	Fractions []float64

	axisAtStart bool
	axisAtEnd   bool
}

// NewQuadrantFractions returns a QuadrantFractions. It panics if quadrant
// isn't in the range [1, 4].
func NewQuadrantFractions(quadrant int, fractions []float64, axisAtStart, axisAtEnd bool) QuadrantFractions {
	if quadrant < 1 || quadrant > 4 {
		panic(fmt.Sprintf("invalid quadrant %d", quadrant))
	}
	return QuadrantFractions{
		Quadrant:    quadrant,
		Fractions:   fractions,
		axisAtStart: axisAtStart,
		axisAtEnd:   axisAtEnd,
	}
}

// AxisAtStart reports whether the first fraction is the location of an
// ellipse axis point. It is false if there are no fractions.
func (q QuadrantFractions) AxisAtStart() bool {
	return len(q.Fractions) > 0 && q.axisAtStart
}

// AxisAtEnd reports whether the last fraction is the location of an ellipse
// axis point. It is false if there are fewer than two fractions.
func (q QuadrantFractions) AxisAtEnd() bool {
	return len(q.Fractions) > 1 && q.axisAtEnd
}

func (q QuadrantFractions) String() string {
	return fmt.Sprintf("Q%d%v", q.Quadrant, q.Fractions)
}

// quadrantRadians returns the quadrant that contains both angles, along with
// the quadrant's counterclockwise start and end angles. Quadrants are closed
// intervals, so angles on an axis belong to two quadrants; the lower numbered
// one is preferred.
func quadrantRadians(theta0, theta1 float64) (quadrant int, start, end float64, ok bool) {
	for q := 1; q <= 4; q++ {
		start := float64(q-1) * halfPi
		end := start + halfPi
		if isRadiansInStartEnd(theta0, start, end) && isRadiansInStartEnd(theta1, start, end) {
			return q, start, end, true
		}
	}
	return 0, 0, 0, false
}

// reflectFromQuadrant1 maps an angle of quadrant 1 to the symmetric angle of
// the given quadrant.
func reflectFromQuadrant1(theta float64, quadrant int) float64 {
	switch quadrant {
	case 1:
		return theta
	case 2:
		return math.Pi - theta
	case 3:
		return math.Pi + theta
	case 4:
		return twoPi - theta
	default:
		panic(fmt.Sprintf("invalid quadrant %d", quadrant))
	}
}
