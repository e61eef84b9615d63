package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"cable_planner/internal/config"
	"cable_planner/internal/models"
)

// CreateDevice registers a new piece of equipment
func CreateDevice(c *gin.Context) {
	var input models.Device
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Reference == "" {
		input.Reference = generateReference("DEV")
	}

	if err := config.DB.Create(&input).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "device reference already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create device: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"device": input})
}

// GetDevice retrieves a device by ID
func GetDevice(c *gin.Context) {
	id := c.Param("id")
	var device models.Device
	if err := config.DB.First(&device, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"device": device})
}

// ListDevices lists all devices, optionally filtered by type, status,
// building or criticality.
func ListDevices(c *gin.Context) {
	query := config.DB.Model(&models.Device{})
	if t := c.Query("device_type"); t != "" {
		query = query.Where("device_type = ?", t)
	}
	if s := c.Query("status"); s != "" {
		query = query.Where("status = ?", s)
	}
	if b := c.Query("building"); b != "" {
		query = query.Where("building = ?", b)
	}
	if crit := c.Query("criticality"); crit != "" {
		query = query.Where("criticality = ?", crit)
	}

	var devices []models.Device
	if err := query.Find(&devices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch devices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": devices})
}

// UpdateDevice modifies an existing device
func UpdateDevice(c *gin.Context) {
	id := c.Param("id")
	var device models.Device
	if err := config.DB.First(&device, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Name              *string  `json:"name"`
		DeviceType        *string  `json:"device_type"`
		Status            *string  `json:"status"`
		IPAddress         *string  `json:"ip_address"`
		MACAddress        *string  `json:"mac_address"`
		Hostname          *string  `json:"hostname"`
		Location          *string  `json:"location"`
		Building          *string  `json:"building"`
		Room              *string  `json:"room"`
		PowerCableRef     *string  `json:"power_cable_ref"`
		SupplyVoltageV    *int     `json:"supply_voltage_v"`
		PowerConsumptionW *float64 `json:"power_consumption_w"`
		Criticality       *string  `json:"criticality"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		device.Name = *input.Name
	}
	if input.DeviceType != nil {
		device.DeviceType = *input.DeviceType
	}
	if input.Status != nil {
		device.Status = *input.Status
	}
	if input.IPAddress != nil {
		device.IPAddress = *input.IPAddress
	}
	if input.MACAddress != nil {
		device.MACAddress = *input.MACAddress
	}
	if input.Hostname != nil {
		device.Hostname = *input.Hostname
	}
	if input.Location != nil {
		device.Location = *input.Location
	}
	if input.Building != nil {
		device.Building = *input.Building
	}
	if input.Room != nil {
		device.Room = *input.Room
	}
	if input.PowerCableRef != nil {
		device.PowerCableRef = *input.PowerCableRef
	}
	if input.SupplyVoltageV != nil {
		device.SupplyVoltageV = *input.SupplyVoltageV
	}
	if input.PowerConsumptionW != nil {
		device.PowerConsumptionW = *input.PowerConsumptionW
	}
	if input.Criticality != nil {
		device.Criticality = *input.Criticality
	}

	config.DB.Save(&device)
	c.JSON(http.StatusOK, gin.H{"device": device})
}

// DeleteDevice removes a device by ID
func DeleteDevice(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.Device{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete device"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device deleted"})
}
