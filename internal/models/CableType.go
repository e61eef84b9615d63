package models

import (
	"gorm.io/gorm"
)

// CableType is a catalog entry several cables can share.
// Example: "U1000R2V 3G6" -> 3 copper conductors of 6mm².
type CableType struct {
	gorm.Model

	Reference string `json:"reference" gorm:"unique;not null"`
	Name      string `json:"name" binding:"required"`

	SectionMM2        float64 `json:"section_mm2" binding:"required,gt=0"`
	VoltageMax        int     `json:"voltage_max" gorm:"default:1000"`
	ConductorCount    int     `json:"conductor_count" gorm:"default:3"`
	ConductorMaterial string  `json:"conductor_material" gorm:"default:copper"` // "copper" or "aluminum"

	StandardReference string `json:"standard_reference"` // e.g. "IEC 60502-1"

	Cables []Cable `gorm:"foreignKey:CableTypeID" json:"cables,omitempty"`
}
