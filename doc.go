// Package arcapprox approximates elliptical arcs by chains of line segments or
// circular arcs with bounded error.
//
// # Sampling
//
// An [ApproximationContext] is created for an [EllipticalArc]. Arcs whose axis
// vectors aren't perpendicular are first replaced by an equivalent arc with
// perpendicular axes. Arcs that are circular, have an empty sweep, or have a
// degenerate axis don't need or admit an approximation and yield an invalid
// context, whose methods all return empty results.
//
// Sample locations are fractions of the arc's sweep. Because an ellipse is
// symmetric about both of its axes, samples are only computed for the first
// quadrant, between Vector0 and Vector90, and reflected into the other three.
// The axis points are always sampled. [SampleMethod] lists the available
// strategies:
//
//   - [UniformParameter] spaces samples evenly by angle.
//   - [UniformCurvature] and [NonUniformCurvature] space samples by curvature,
//     which is monotonic within a quadrant and can be inverted in closed form.
//   - [SubdivideForChords] and [SubdivideForArcs] bisect the quadrant until
//     chords or circular arcs through the samples are within [Options.MaxError]
//     of the ellipse.
//
// [ApproximationContext.SampleFractions] returns all samples as a single
// increasing sequence. [ApproximationContext.SampleQuadrantFractions] groups
// them by quadrant, which is the input expected by the construction and error
// measurement methods.
//
// # Approximations
//
// [ApproximationContext.ConstructLineString] connects the samples with
// straight lines. [ApproximationContext.ConstructCircularArcChain] connects
// them with circular arcs that are tangent to the ellipse at the ends of each
// quadrant and that pass through three consecutive samples in between. Both return a [Chain], which
// is closed if the arc is a full ellipse, and which can be rendered as path
// elements and SVG path data.
//
// [ApproximationContext.ComputeApproximationError] measures the largest
// distance between the arc and the approximation the samples produce, along
// perpendiculars between the two. [ApproximationContext.ChainError] does the
// same for arbitrary chains.
//
// # Tolerances
//
// Fractions closer than 1e-10 and angles closer than 1e-12 are considered
// equal, which is also how duplicate samples are removed. Lengths closer than
// 1e-6 are considered equal, which is how circular arcs are detected.
package arcapprox
