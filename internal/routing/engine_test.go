package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cable_planner/internal/geometry"
	"cable_planner/internal/models"
)

func pathway(id uint, name string, start, end geometry.Point3D) models.Pathway {
	return models.Pathway{
		Model:  gorm.Model{ID: id},
		Name:   name,
		StartX: start.X, StartY: start.Y, StartZ: start.Z,
		EndX: end.X, EndY: end.Y, EndZ: end.Z,
		IsActive: true,
	}
}

func link(pathways []models.Pathway, edges ...[2]int) []models.Pathway {
	for _, e := range edges {
		a, b := e[0], e[1]
		pathways[a].Connected = append(pathways[a].Connected, &pathways[b])
		pathways[b].Connected = append(pathways[b].Connected, &pathways[a])
	}
	return pathways
}

// A small building: two horizontal trays per floor joined by a riser.
func testPathways() []models.Pathway {
	pathways := []models.Pathway{
		pathway(1, "Tray H1", geometry.Point3D{X: 0, Y: 0, Z: 3}, geometry.Point3D{X: 50, Y: 0, Z: 3}),
		pathway(2, "Riser V1", geometry.Point3D{X: 50, Y: 0, Z: 3}, geometry.Point3D{X: 50, Y: 0, Z: 0}),
		pathway(3, "Tray H2", geometry.Point3D{X: 50, Y: 0, Z: 0}, geometry.Point3D{X: 100, Y: 0, Z: 0}),
		pathway(4, "Tray isolated", geometry.Point3D{X: 0, Y: 100, Z: 0}, geometry.Point3D{X: 50, Y: 100, Z: 0}),
	}
	return link(pathways, [2]int{0, 1}, [2]int{1, 2})
}

func TestNearestPathwayEmptySet(t *testing.T) {
	s := NewSnapshot(nil)
	_, err := s.NearestPathway(geometry.Point3D{})
	assert.ErrorIs(t, err, ErrNoPathways)
}

func TestNearestPathwayPicksClosestSegment(t *testing.T) {
	s := NewSnapshot(testPathways())

	near, err := s.NearestPathway(geometry.Point3D{X: 10, Y: 1, Z: 3})
	require.NoError(t, err)
	assert.Equal(t, uint(1), near.ID)

	near, err = s.NearestPathway(geometry.Point3D{X: 90, Y: 2, Z: 0})
	require.NoError(t, err)
	assert.Equal(t, uint(3), near.ID)
}

func TestNearestPathwayDegenerateSegment(t *testing.T) {
	point := geometry.Point3D{X: 5, Y: 5, Z: 5}
	s := NewSnapshot([]models.Pathway{
		pathway(1, "Point tray", point, point),
		pathway(2, "Far tray", geometry.Point3D{X: 100, Y: 0, Z: 0}, geometry.Point3D{X: 200, Y: 0, Z: 0}),
	})

	near, err := s.NearestPathway(geometry.Point3D{X: 5, Y: 6, Z: 5})
	require.NoError(t, err)
	assert.Equal(t, uint(1), near.ID)
}

func TestFindSequenceSamePathway(t *testing.T) {
	s := NewSnapshot(testPathways())
	seq, err := s.FindSequence(1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, seq)
}

func TestFindSequenceHopMinimal(t *testing.T) {
	// Two ways from 1 to 4: 1-2-4 (two hops) and 1-3-5-4 (three hops).
	pathways := []models.Pathway{
		pathway(1, "A", geometry.Point3D{}, geometry.Point3D{X: 1}),
		pathway(2, "B", geometry.Point3D{}, geometry.Point3D{X: 1}),
		pathway(3, "C", geometry.Point3D{}, geometry.Point3D{X: 1}),
		pathway(4, "D", geometry.Point3D{}, geometry.Point3D{X: 1}),
		pathway(5, "E", geometry.Point3D{}, geometry.Point3D{X: 1}),
	}
	pathways = link(pathways,
		[2]int{0, 1}, [2]int{1, 3}, // 1-2-4
		[2]int{0, 2}, [2]int{2, 4}, [2]int{4, 3}, // 1-3-5-4
	)
	s := NewSnapshot(pathways)

	seq, err := s.FindSequence(1, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 4}, seq)
}

func TestFindSequenceDisconnected(t *testing.T) {
	s := NewSnapshot(testPathways())
	_, err := s.FindSequence(1, 4, 0)
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestFindSequenceUnknownPathway(t *testing.T) {
	s := NewSnapshot(testPathways())
	_, err := s.FindSequence(1, 99, 0)
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestFindSequenceBudgetExhausted(t *testing.T) {
	s := NewSnapshot(testPathways())
	_, err := s.FindSequence(1, 3, 1)
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestFindSequenceEmptySnapshot(t *testing.T) {
	s := NewSnapshot(nil)
	_, err := s.FindSequence(1, 2, 0)
	assert.ErrorIs(t, err, ErrNoPathways)
}

func TestAdjacencyMirroredByConstruction(t *testing.T) {
	// Connected recorded on one side only; the snapshot must still see
	// the edge from both.
	pathways := []models.Pathway{
		pathway(1, "A", geometry.Point3D{}, geometry.Point3D{X: 1}),
		pathway(2, "B", geometry.Point3D{}, geometry.Point3D{X: 1}),
	}
	pathways[0].Connected = append(pathways[0].Connected, &pathways[1])
	s := NewSnapshot(pathways)

	assert.Equal(t, []uint{2}, s.Neighbors(1))
	assert.Equal(t, []uint{1}, s.Neighbors(2))

	seq, err := s.FindSequence(2, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 1}, seq)
}

func TestBuildWaypointsShape(t *testing.T) {
	s := NewSnapshot(testPathways())
	origin := geometry.Point3D{X: 0, Y: 0, Z: 3}
	destination := geometry.Point3D{X: 100, Y: 0, Z: 0}

	seq, err := s.FindSequence(1, 3, 0)
	require.NoError(t, err)
	require.Equal(t, []uint{1, 2, 3}, seq)

	waypoints, total, err := s.BuildWaypoints(origin, destination, seq)
	require.NoError(t, err)

	// Always 2 + 2×len(sequence) points.
	require.Len(t, waypoints, 2+2*len(seq))

	assert.Equal(t, "Start", waypoints[0].Label)
	assert.Equal(t, "Enter Tray H1", waypoints[1].Label)
	assert.Equal(t, "Exit Tray H1", waypoints[2].Label)
	assert.Equal(t, "End", waypoints[len(waypoints)-1].Label)
	assert.Nil(t, waypoints[0].PathwayID)
	require.NotNil(t, waypoints[1].PathwayID)
	assert.Equal(t, uint(1), *waypoints[1].PathwayID)

	// Total length can never beat the straight line.
	assert.GreaterOrEqual(t, total, origin.Dist(destination)-1e-9)
}

func TestBuildWaypointsTriangleInequality(t *testing.T) {
	s := NewSnapshot(testPathways())
	origin := geometry.Point3D{X: 3, Y: 7, Z: 2}
	destination := geometry.Point3D{X: 80, Y: -4, Z: 1}

	for _, seq := range [][]uint{{1}, {1, 2}, {1, 2, 3}} {
		_, total, err := s.BuildWaypoints(origin, destination, seq)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, total, geometry.Round2(origin.Dist(destination))-0.01)
	}
}

func TestBuildWaypointsEmptySequence(t *testing.T) {
	s := NewSnapshot(testPathways())
	origin := geometry.Point3D{X: 0, Y: 0, Z: 0}
	destination := geometry.Point3D{X: 10, Y: 0, Z: 0}

	waypoints, total, err := s.BuildWaypoints(origin, destination, nil)
	require.NoError(t, err)
	require.Len(t, waypoints, 2)
	assert.InDelta(t, 10.0, total, 1e-9)
}
