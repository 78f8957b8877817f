package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func square(x0, y0, side float64) []Point2 {
	return []Point2{
		{x0, y0}, {x0 + side, y0}, {x0 + side, y0 + side}, {x0, y0 + side},
	}
}

func TestPolygonArea(t *testing.T) {
	assert.InDelta(t, 4.0, PolygonArea(square(0, 0, 2)), 1e-12)
	assert.Equal(t, 0.0, PolygonArea(square(0, 0, 2)[:2]))
}

func TestOverlapArea(t *testing.T) {
	tests := []struct {
		name string
		a, b []Point2
		want float64
	}{
		{"identical", square(0, 0, 2), square(0, 0, 2), 4},
		{"half overlap", square(0, 0, 2), square(1, 0, 2), 2},
		{"corner overlap", square(0, 0, 2), square(1, 1, 2), 1},
		{"disjoint", square(0, 0, 2), square(5, 5, 2), 0},
		{"touching edge", square(0, 0, 2), square(2, 0, 2), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, OverlapArea(tt.a, tt.b), 1e-9)
		})
	}
}

func TestConvexHull(t *testing.T) {
	pts := append(square(0, 0, 2), Point2{1, 1}) // interior point dropped
	hull := ConvexHull(pts)
	assert.Len(t, hull, 4)
	assert.InDelta(t, 4.0, PolygonArea(hull), 1e-12)
}

func TestPlaneBasisOrthonormal(t *testing.T) {
	for _, n := range []Vec{{Z: 1}, {X: 1}, {X: 0.5, Y: -0.3, Z: 0.8}} {
		u, v := PlaneBasis(n.Normalize())
		assert.InDelta(t, 1, u.Norm(), 1e-12)
		assert.InDelta(t, 1, v.Norm(), 1e-12)
		assert.InDelta(t, 0, u.Dot(v), 1e-12)
		assert.InDelta(t, 0, u.Dot(n), 1e-12)
		assert.InDelta(t, 0, v.Dot(n), 1e-12)
	}
}
