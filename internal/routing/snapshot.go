package routing

import (
	"errors"

	"cable_planner/internal/geometry"
	"cable_planner/internal/models"
)

// Routing failures are values, never panics; handlers map them to 422.
var (
	ErrNoPathways = errors.New("no cable pathways available")
	ErrNoPath     = errors.New("no connecting pathway sequence found")
)

// Snapshot is an eager in-memory copy of the active pathway set, taken
// once per routing request so the locator and BFS never touch the store.
// Adjacency is mirrored at construction, so lookups in either direction
// see the same undirected edge.
type Snapshot struct {
	pathways  map[uint]*models.Pathway
	order     []uint
	adjacency map[uint][]uint
}

// NewSnapshot indexes pathways by id and builds the undirected adjacency
// map from their Connected associations. Links to pathways missing from
// the set (inactive or deleted) are skipped.
func NewSnapshot(pathways []models.Pathway) *Snapshot {
	s := &Snapshot{
		pathways:  make(map[uint]*models.Pathway, len(pathways)),
		order:     make([]uint, 0, len(pathways)),
		adjacency: make(map[uint][]uint, len(pathways)),
	}
	for i := range pathways {
		p := &pathways[i]
		s.pathways[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	for _, id := range s.order {
		for _, n := range s.pathways[id].Connected {
			if _, ok := s.pathways[n.ID]; !ok {
				continue
			}
			s.addEdge(id, n.ID)
			s.addEdge(n.ID, id)
		}
	}
	return s
}

func (s *Snapshot) addEdge(from, to uint) {
	for _, existing := range s.adjacency[from] {
		if existing == to {
			return
		}
	}
	s.adjacency[from] = append(s.adjacency[from], to)
}

// Len returns the number of pathways in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.order)
}

// Pathway returns the snapshot copy for an id.
func (s *Snapshot) Pathway(id uint) (*models.Pathway, bool) {
	p, ok := s.pathways[id]
	return p, ok
}

// Neighbors returns the ids connected to a pathway.
func (s *Snapshot) Neighbors(id uint) []uint {
	return s.adjacency[id]
}

// NearestPathway returns the pathway whose segment is closest to point,
// using the clamped-projection distance. Degenerate pathways count as a
// single point.
func (s *Snapshot) NearestPathway(point geometry.Point3D) (*models.Pathway, error) {
	if len(s.order) == 0 {
		return nil, ErrNoPathways
	}

	var nearest *models.Pathway
	minDist := 0.0
	for _, id := range s.order {
		p := s.pathways[id]
		dist := point.DistToSegment(p.Start(), p.End())
		if nearest == nil || dist < minDist {
			minDist = dist
			nearest = p
		}
	}
	return nearest, nil
}
