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

// CreateCable registers a new cable against an existing type
func CreateCable(c *gin.Context) {
	var input models.Cable
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var cableType models.CableType
	if err := config.DB.First(&cableType, input.CableTypeID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cable_type_id does not reference an existing cable type"})
		return
	}

	if input.Status == "" {
		input.Status = models.CableStatusPlanned
	}
	if !models.ValidCableStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cable status"})
		return
	}
	if !input.Origin().Valid() || !input.Destination().Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cable endpoints must be finite coordinates"})
		return
	}
	if input.Reference == "" {
		input.Reference = generateReference("CAB")
	}

	if err := config.DB.Create(&input).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "cable reference already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create cable: " + err.Error()})
		return
	}

	config.DB.Preload("CableType").First(&input, input.ID)
	c.JSON(http.StatusCreated, gin.H{"cable": input})
}

// GetCable retrieves a cable with its type and route history
func GetCable(c *gin.Context) {
	id := c.Param("id")
	var cable models.Cable
	if err := config.DB.Preload("CableType").Preload("Routes").Preload("Routes.Waypoints").First(&cable, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cable not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cable": cable})
}

// ListCables lists cables with their type, no route payloads
func ListCables(c *gin.Context) {
	query := config.DB.Preload("CableType")
	if s := c.Query("status"); s != "" {
		query = query.Where("status = ?", s)
	}
	if t := c.Query("cable_type_id"); t != "" {
		query = query.Where("cable_type_id = ?", t)
	}

	var cables []models.Cable
	if err := query.Find(&cables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch cables"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cables})
}

// UpdateCable modifies an existing cable
func UpdateCable(c *gin.Context) {
	id := c.Param("id")
	var cable models.Cable
	if err := config.DB.First(&cable, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cable not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Name              *string  `json:"name"`
		CableTypeID       *uint    `json:"cable_type_id"`
		Status            *string  `json:"status"`
		DesignedLengthM   *float64 `json:"designed_length_m"`
		ActualLengthM     *float64 `json:"actual_length_m"`
		OriginLabel       *string  `json:"origin_label"`
		DestinationLabel  *string  `json:"destination_label"`
		OriginX           *float64 `json:"origin_x"`
		OriginY           *float64 `json:"origin_y"`
		OriginZ           *float64 `json:"origin_z"`
		DestX             *float64 `json:"dest_x"`
		DestY             *float64 `json:"dest_y"`
		DestZ             *float64 `json:"dest_z"`
		DesignCurrentA    *float64 `json:"design_current_a"`
		OperatingVoltageV *int     `json:"operating_voltage_v"`
		InstallationNotes *string  `json:"installation_notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		cable.Name = *input.Name
	}
	if input.CableTypeID != nil {
		var cableType models.CableType
		if err := config.DB.First(&cableType, *input.CableTypeID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cable_type_id does not reference an existing cable type"})
			return
		}
		cable.CableTypeID = *input.CableTypeID
	}
	if input.Status != nil {
		if !models.ValidCableStatus(*input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cable status"})
			return
		}
		cable.Status = *input.Status
	}
	if input.DesignedLengthM != nil {
		cable.DesignedLengthM = *input.DesignedLengthM
	}
	if input.ActualLengthM != nil {
		cable.ActualLengthM = *input.ActualLengthM
	}
	if input.OriginLabel != nil {
		cable.OriginLabel = *input.OriginLabel
	}
	if input.DestinationLabel != nil {
		cable.DestinationLabel = *input.DestinationLabel
	}
	if input.OriginX != nil {
		cable.OriginX = *input.OriginX
	}
	if input.OriginY != nil {
		cable.OriginY = *input.OriginY
	}
	if input.OriginZ != nil {
		cable.OriginZ = *input.OriginZ
	}
	if input.DestX != nil {
		cable.DestX = *input.DestX
	}
	if input.DestY != nil {
		cable.DestY = *input.DestY
	}
	if input.DestZ != nil {
		cable.DestZ = *input.DestZ
	}
	if input.DesignCurrentA != nil {
		cable.DesignCurrentA = *input.DesignCurrentA
	}
	if input.OperatingVoltageV != nil {
		cable.OperatingVoltageV = *input.OperatingVoltageV
	}
	if input.InstallationNotes != nil {
		cable.InstallationNotes = *input.InstallationNotes
	}

	if !cable.Origin().Valid() || !cable.Destination().Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cable endpoints must be finite coordinates"})
		return
	}

	config.DB.Save(&cable)
	config.DB.Preload("CableType").First(&cable, cable.ID)
	c.JSON(http.StatusOK, gin.H{"cable": cable})
}

// DeleteCable removes a cable, its routes and waypoints
func DeleteCable(c *gin.Context) {
	id := c.Param("id")
	var cable models.Cable
	if err := config.DB.First(&cable, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cable not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var routeIDs []uint
		if err := tx.Model(&models.Route{}).Where("cable_id = ?", cable.ID).Pluck("id", &routeIDs).Error; err != nil {
			return err
		}
		if len(routeIDs) > 0 {
			if err := tx.Where("route_id IN ?", routeIDs).Delete(&models.Waypoint{}).Error; err != nil {
				return err
			}
			if err := tx.Where("cable_id = ?", cable.ID).Delete(&models.Route{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&cable).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cable: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cable deleted"})
}
