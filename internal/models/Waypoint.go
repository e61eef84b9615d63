package models

import (
	"gorm.io/gorm"

	"cable_planner/internal/geometry"
)

// Waypoint is one ordered point of a route. Seq starts at 1 and is
// contiguous within a route.
type Waypoint struct {
	gorm.Model

	RouteID uint `json:"route_id" gorm:"index;uniqueIndex:idx_route_seq"`
	Seq     int  `json:"seq" gorm:"uniqueIndex:idx_route_seq"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`

	// Pathway the point lies on, when it does.
	PathwayID *uint `json:"pathway_id"`

	Label string `json:"label"` // e.g. "Enter tray H1"
}

// Point returns the waypoint coordinates as a point.
func (w *Waypoint) Point() geometry.Point3D {
	return geometry.Point3D{X: w.X, Y: w.Y, Z: w.Z}
}
