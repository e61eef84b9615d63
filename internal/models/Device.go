package models

import (
	"gorm.io/gorm"
)

// Device is a piece of installed equipment fed by one or more cables.
// Inventory bookkeeping only; monitoring and scanning live elsewhere.
type Device struct {
	gorm.Model

	Reference  string `json:"reference" gorm:"unique;not null"`
	Name       string `json:"name" binding:"required"`
	DeviceType string `json:"device_type"` // "plc", "switch", "server", "sensor", "drive", "hmi", "other"
	Status     string `json:"status" gorm:"default:active"`

	// Network identity
	IPAddress  string `json:"ip_address"`
	MACAddress string `json:"mac_address"`
	Hostname   string `json:"hostname"`

	// Physical location
	Location string `json:"location"`
	Building string `json:"building"`
	Room     string `json:"room"`

	// Power supply
	PowerCableRef     string  `json:"power_cable_ref"`
	SupplyVoltageV    int     `json:"supply_voltage_v"`
	PowerConsumptionW float64 `json:"power_consumption_w"`

	Criticality string `json:"criticality" gorm:"default:medium"` // "low", "medium", "high", "critical"
}
