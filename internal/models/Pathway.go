package models

import (
	"math"

	"gorm.io/gorm"

	"cable_planner/internal/geometry"
)

// Pathway types
const (
	PathwayCableTray = "cable_tray"
	PathwayConduit   = "conduit"
	PathwayDuct      = "duct"
	PathwayTrench    = "trench"
	PathwayFreeAir   = "free_air"
)

// Pathway is a physical cable-carrying segment (tray, conduit, duct...)
// with 3D endpoints. Pathways form an undirected graph through the
// pathway_links join table; both directions of every link are written by
// the connect/disconnect handlers, never assumed.
type Pathway struct {
	gorm.Model

	Reference   string `json:"reference" gorm:"unique;not null"`
	Name        string `json:"name" binding:"required"`
	PathwayType string `json:"pathway_type" gorm:"default:cable_tray"`

	// Dimensions in millimetres
	WidthMM      float64 `json:"width_mm" gorm:"default:200"`
	HeightMM     float64 `json:"height_mm" gorm:"default:60"`
	MaxFillRatio float64 `json:"max_fill_ratio" gorm:"default:0.40"`

	// Endpoints in building coordinates, metres
	StartX float64 `json:"start_x"`
	StartY float64 `json:"start_y"`
	StartZ float64 `json:"start_z"`
	EndX   float64 `json:"end_x"`
	EndY   float64 `json:"end_y"`
	EndZ   float64 `json:"end_z"`

	IsActive bool `json:"is_active" gorm:"default:true"`

	Connected []*Pathway `json:"connected,omitempty" gorm:"many2many:pathway_links;joinForeignKey:PathwayID;joinReferences:ConnectedID"`
}

// Start returns the start endpoint as a point.
func (p *Pathway) Start() geometry.Point3D {
	return geometry.Point3D{X: p.StartX, Y: p.StartY, Z: p.StartZ}
}

// End returns the end endpoint as a point.
func (p *Pathway) End() geometry.Point3D {
	return geometry.Point3D{X: p.EndX, Y: p.EndY, Z: p.EndZ}
}

// LengthM is derived from the endpoints, never stored.
func (p *Pathway) LengthM() float64 {
	return geometry.Round2(p.Start().Dist(p.End()))
}

// CrossSectionMM2 is the full cross section of the pathway.
func (p *Pathway) CrossSectionMM2() float64 {
	return p.WidthMM * p.HeightMM
}

// UsableSectionMM2 is the cross section usable under the fill-ratio limit.
func (p *Pathway) UsableSectionMM2() float64 {
	return math.Round(p.CrossSectionMM2()*p.MaxFillRatio*100) / 100
}
