package models

import (
	"gorm.io/gorm"

	"cable_planner/internal/geometry"
)

// Cable lifecycle statuses
const (
	CableStatusPlanned        = "planned"
	CableStatusInstalled      = "installed"
	CableStatusActive         = "active"
	CableStatusFaulty         = "faulty"
	CableStatusDecommissioned = "decommissioned"
)

// Cable is one physical cable of the installation: its type, endpoints
// and electrical operating point. Routes hold its computed tracés.
type Cable struct {
	gorm.Model

	Reference string `json:"reference" gorm:"unique;not null"`
	Name      string `json:"name"`

	CableTypeID uint      `json:"cable_type_id" gorm:"index"`
	CableType   CableType `gorm:"foreignKey:CableTypeID" json:"cable_type,omitempty"`

	Status string `json:"status" gorm:"default:planned;index"`

	DesignedLengthM float64 `json:"designed_length_m"`
	ActualLengthM   float64 `json:"actual_length_m"`

	OriginLabel      string `json:"origin_label"`      // e.g. "Cabinet TGBT-A / Breaker Q3"
	DestinationLabel string `json:"destination_label"` // e.g. "Pump motor P-201"

	OriginX float64 `json:"origin_x"`
	OriginY float64 `json:"origin_y"`
	OriginZ float64 `json:"origin_z"`
	DestX   float64 `json:"dest_x"`
	DestY   float64 `json:"dest_y"`
	DestZ   float64 `json:"dest_z"`

	DesignCurrentA    float64 `json:"design_current_a"`
	OperatingVoltageV int     `json:"operating_voltage_v"`

	InstallationNotes string `json:"installation_notes"`

	Routes []Route `gorm:"foreignKey:CableID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"routes,omitempty"`
}

// EffectiveLengthM returns the measured length when known, otherwise the
// designed one.
func (c *Cable) EffectiveLengthM() float64 {
	if c.ActualLengthM > 0 {
		return c.ActualLengthM
	}
	return c.DesignedLengthM
}

// Origin returns the origin endpoint as a point.
func (c *Cable) Origin() geometry.Point3D {
	return geometry.Point3D{X: c.OriginX, Y: c.OriginY, Z: c.OriginZ}
}

// Destination returns the destination endpoint as a point.
func (c *Cable) Destination() geometry.Point3D {
	return geometry.Point3D{X: c.DestX, Y: c.DestY, Z: c.DestZ}
}

// ValidCableStatus reports whether s is a known lifecycle status.
func ValidCableStatus(s string) bool {
	switch s {
	case CableStatusPlanned, CableStatusInstalled, CableStatusActive,
		CableStatusFaulty, CableStatusDecommissioned:
		return true
	}
	return false
}
