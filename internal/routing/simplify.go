package routing

import (
	"cable_planner/internal/geometry"
)

// SimplifyIndices applies Ramer-Douglas-Peucker reduction to a polyline
// and returns the indices of the points to keep, in order. Points within
// tolerance of the line joining the first and last points collapse; the
// point farthest beyond the tolerance is kept and both halves are reduced
// recursively, de-duplicating the shared boundary point.
func SimplifyIndices(points []geometry.Point3D, tolerance float64) []int {
	if len(points) <= 2 {
		indices := make([]int, len(points))
		for i := range points {
			indices[i] = i
		}
		return indices
	}

	start := points[0]
	end := points[len(points)-1]

	maxDist := 0.0
	maxIndex := 0
	for i := 1; i < len(points)-1; i++ {
		dist := points[i].DistToLine(start, end)
		if dist > maxDist {
			maxDist = dist
			maxIndex = i
		}
	}

	if maxDist <= tolerance {
		return []int{0, len(points) - 1}
	}

	left := SimplifyIndices(points[:maxIndex+1], tolerance)
	right := SimplifyIndices(points[maxIndex:], tolerance)

	kept := left
	for _, idx := range right[1:] {
		kept = append(kept, idx+maxIndex)
	}
	return kept
}

// Simplify reduces a waypoint list to the kept points, renumbered from 1,
// and returns the recomputed total length. Lists of two or fewer points
// come back unchanged.
func Simplify(waypoints []WaypointSpec, tolerance float64) ([]WaypointSpec, float64) {
	points := make([]geometry.Point3D, len(waypoints))
	for i, wp := range waypoints {
		points[i] = wp.Point
	}

	kept := SimplifyIndices(points, tolerance)
	reduced := make([]WaypointSpec, 0, len(kept))
	reducedPoints := make([]geometry.Point3D, 0, len(kept))
	for _, idx := range kept {
		reduced = append(reduced, waypoints[idx])
		reducedPoints = append(reducedPoints, points[idx])
	}

	return reduced, geometry.Round2(geometry.PolylineLength(reducedPoints))
}
