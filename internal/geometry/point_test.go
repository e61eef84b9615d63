package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDist(t *testing.T) {
	a := Point3D{X: 0, Y: 0, Z: 0}
	b := Point3D{X: 3, Y: 4, Z: 0}
	assert.InDelta(t, 5.0, a.Dist(b), 1e-9)
	assert.InDelta(t, 5.0, b.Dist(a), 1e-9)
}

func TestDistToSegment(t *testing.T) {
	start := Point3D{X: 0, Y: 0, Z: 0}
	end := Point3D{X: 10, Y: 0, Z: 0}

	t.Run("projection inside segment", func(t *testing.T) {
		p := Point3D{X: 5, Y: 3, Z: 0}
		assert.InDelta(t, 3.0, p.DistToSegment(start, end), 1e-9)
	})

	t.Run("projection clamped to start", func(t *testing.T) {
		p := Point3D{X: -4, Y: 3, Z: 0}
		assert.InDelta(t, 5.0, p.DistToSegment(start, end), 1e-9)
	})

	t.Run("projection clamped to end", func(t *testing.T) {
		p := Point3D{X: 14, Y: 3, Z: 0}
		assert.InDelta(t, 5.0, p.DistToSegment(start, end), 1e-9)
	})

	t.Run("degenerate segment is a point", func(t *testing.T) {
		p := Point3D{X: 1, Y: 1, Z: 1}
		q := Point3D{X: 4, Y: 5, Z: 1}
		assert.InDelta(t, 5.0, q.DistToSegment(p, p), 1e-9)
	})
}

func TestDistToLine(t *testing.T) {
	start := Point3D{X: 0, Y: 0, Z: 0}
	end := Point3D{X: 10, Y: 0, Z: 0}

	// Perpendicular distance ignores where along the line the point sits.
	p := Point3D{X: 25, Y: 2, Z: 0}
	assert.InDelta(t, 2.0, p.DistToLine(start, end), 1e-9)

	collinear := Point3D{X: 5, Y: 0, Z: 0}
	assert.InDelta(t, 0.0, collinear.DistToLine(start, end), 1e-9)

	t.Run("degenerate line falls back to point distance", func(t *testing.T) {
		q := Point3D{X: 3, Y: 4, Z: 0}
		assert.InDelta(t, 5.0, q.DistToLine(start, start), 1e-9)
	})
}

func TestPolylineLength(t *testing.T) {
	points := []Point3D{
		{X: 0, Y: 0, Z: 0},
		{X: 10, Y: 0, Z: 0},
		{X: 10, Y: 10, Z: 0},
	}
	assert.InDelta(t, 20.0, PolylineLength(points), 1e-9)
	assert.Equal(t, 0.0, PolylineLength(points[:1]))
	assert.Equal(t, 0.0, PolylineLength(nil))
}

func TestValid(t *testing.T) {
	assert.True(t, Point3D{X: 1, Y: 2, Z: 3}.Valid())
	assert.False(t, Point3D{X: math.NaN()}.Valid())
	assert.False(t, Point3D{Y: math.Inf(1)}.Valid())
	assert.False(t, Point3D{Z: math.Inf(-1)}.Valid())
}
