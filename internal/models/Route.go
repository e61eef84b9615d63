package models

import (
	"gorm.io/gorm"
)

// Route is the realized tracé of one cable. A cable keeps the history of
// its routes but has at most one active route at any time; the routing
// transaction deactivates the previous one before inserting the new one.
type Route struct {
	gorm.Model

	CableID uint  `json:"cable_id" gorm:"index"`
	Cable   Cable `gorm:"foreignKey:CableID" json:"-"`

	IsActive    bool `json:"is_active" gorm:"default:true"`
	IsOptimized bool `json:"is_optimized" gorm:"default:false"`

	TotalLengthM     float64 `json:"total_length_m"`
	CalculationNotes string  `json:"calculation_notes"`

	Waypoints []Waypoint `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"waypoints,omitempty"`
}
