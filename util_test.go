package arcapprox

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, got Point, want Point, epsilon float64) {
	t.Helper()
	if d := got.Sub(want).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", got, want)
	}
}

func assertParallel(t *testing.T, got, want Vec2) {
	t.Helper()
	if got.Dot(want) <= 0 || math.Abs(got.Normalize().Cross(want.Normalize())) > 1e-9 {
		t.Errorf("got direction %s, expected %s", got, want)
	}
}
