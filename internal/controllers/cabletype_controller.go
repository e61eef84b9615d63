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

// CreateCableType registers a new catalog entry
func CreateCableType(c *gin.Context) {
	var input models.CableType
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ConductorMaterial != "" && input.ConductorMaterial != "copper" && input.ConductorMaterial != "aluminum" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conductor_material must be copper or aluminum"})
		return
	}
	if input.Reference == "" {
		input.Reference = generateReference("CT")
	}

	if err := config.DB.Create(&input).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "cable type reference already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create cable type: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cable_type": input})
}

// GetCableType retrieves a catalog entry by ID
func GetCableType(c *gin.Context) {
	id := c.Param("id")
	var cableType models.CableType
	if err := config.DB.First(&cableType, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cable type not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cable_type": cableType})
}

// ListCableTypes lists the catalog, optionally filtered by section or
// conductor material.
func ListCableTypes(c *gin.Context) {
	query := config.DB.Model(&models.CableType{})
	if s := c.Query("section"); s != "" {
		query = query.Where("section_mm2 = ?", s)
	}
	if m := c.Query("material"); m != "" {
		query = query.Where("conductor_material = ?", m)
	}

	var cableTypes []models.CableType
	if err := query.Find(&cableTypes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch cable types"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cableTypes})
}

// UpdateCableType modifies a catalog entry
func UpdateCableType(c *gin.Context) {
	id := c.Param("id")
	var cableType models.CableType
	if err := config.DB.First(&cableType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cable type not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Name              *string  `json:"name"`
		SectionMM2        *float64 `json:"section_mm2"`
		VoltageMax        *int     `json:"voltage_max"`
		ConductorCount    *int     `json:"conductor_count"`
		ConductorMaterial *string  `json:"conductor_material"`
		StandardReference *string  `json:"standard_reference"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		cableType.Name = *input.Name
	}
	if input.SectionMM2 != nil {
		if *input.SectionMM2 <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "section_mm2 must be positive"})
			return
		}
		cableType.SectionMM2 = *input.SectionMM2
	}
	if input.VoltageMax != nil {
		cableType.VoltageMax = *input.VoltageMax
	}
	if input.ConductorCount != nil {
		cableType.ConductorCount = *input.ConductorCount
	}
	if input.ConductorMaterial != nil {
		if *input.ConductorMaterial != "copper" && *input.ConductorMaterial != "aluminum" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conductor_material must be copper or aluminum"})
			return
		}
		cableType.ConductorMaterial = *input.ConductorMaterial
	}
	if input.StandardReference != nil {
		cableType.StandardReference = *input.StandardReference
	}

	config.DB.Save(&cableType)
	c.JSON(http.StatusOK, gin.H{"cable_type": cableType})
}

// DeleteCableType removes a catalog entry unless cables still use it
func DeleteCableType(c *gin.Context) {
	id := c.Param("id")

	var count int64
	config.DB.Model(&models.Cable{}).Where("cable_type_id = ?", id).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Cable type is still referenced by cables"})
		return
	}

	if err := config.DB.Delete(&models.CableType{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cable type"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cable type deleted"})
}
