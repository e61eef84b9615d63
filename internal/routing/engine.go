package routing

import (
	"fmt"

	"cable_planner/internal/geometry"
)

// DefaultMaxVisited bounds BFS exploration on pathological graphs.
const DefaultMaxVisited = 10000

// WaypointSpec is one computed point of a tracé before persistence.
type WaypointSpec struct {
	Point     geometry.Point3D
	PathwayID *uint
	Label     string
}

// FindSequence runs a breadth-first search over the pathway graph and
// returns the first sequence of pathway ids reaching destID from
// originID. BFS gives the sequence with the fewest pathway hops, not the
// physically shortest route; that behavior is load-bearing and must not
// be swapped for a weighted search without re-scoping route outputs.
//
// originID == destID returns a one-element sequence with no traversal.
// maxVisited <= 0 falls back to DefaultMaxVisited; exhausting the budget
// reports ErrNoPath.
func (s *Snapshot) FindSequence(originID, destID uint, maxVisited int) ([]uint, error) {
	if len(s.order) == 0 {
		return nil, ErrNoPathways
	}
	if _, ok := s.pathways[originID]; !ok {
		return nil, ErrNoPath
	}
	if _, ok := s.pathways[destID]; !ok {
		return nil, ErrNoPath
	}
	if originID == destID {
		return []uint{originID}, nil
	}
	if maxVisited <= 0 {
		maxVisited = DefaultMaxVisited
	}

	visited := map[uint]bool{originID: true}
	parent := map[uint]uint{}
	queue := []uint{originID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == destID {
			return reconstruct(parent, originID, destID), nil
		}

		for _, neighbor := range s.adjacency[current] {
			if visited[neighbor] {
				continue
			}
			if len(visited) >= maxVisited {
				return nil, ErrNoPath
			}
			visited[neighbor] = true
			parent[neighbor] = current
			queue = append(queue, neighbor)
		}
	}

	return nil, ErrNoPath
}

// reconstruct walks the parent map back from dest to origin.
func reconstruct(parent map[uint]uint, origin, dest uint) []uint {
	path := []uint{dest}
	for node := dest; node != origin; {
		node = parent[node]
		path = append(path, node)
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// BuildWaypoints expands a pathway sequence plus the exact endpoints into
// the ordered waypoint list: origin, then entry and exit of every pathway
// in order, then destination. The result always has 2 + 2×len(sequence)
// points. Total length is the sum of consecutive distances, rounded to
// two decimals.
func (s *Snapshot) BuildWaypoints(origin, destination geometry.Point3D, sequence []uint) ([]WaypointSpec, float64, error) {
	waypoints := make([]WaypointSpec, 0, 2+2*len(sequence))
	waypoints = append(waypoints, WaypointSpec{Point: origin, Label: "Start"})

	for _, id := range sequence {
		p, ok := s.pathways[id]
		if !ok {
			return nil, 0, ErrNoPath
		}
		pid := p.ID
		waypoints = append(waypoints,
			WaypointSpec{Point: p.Start(), PathwayID: &pid, Label: fmt.Sprintf("Enter %s", p.Name)},
			WaypointSpec{Point: p.End(), PathwayID: &pid, Label: fmt.Sprintf("Exit %s", p.Name)},
		)
	}

	waypoints = append(waypoints, WaypointSpec{Point: destination, Label: "End"})

	points := make([]geometry.Point3D, len(waypoints))
	for i, wp := range waypoints {
		points[i] = wp.Point
	}
	return waypoints, geometry.Round2(geometry.PolylineLength(points)), nil
}
