package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"cable_planner/internal/config"
	"cable_planner/internal/models"
)

// pathwayResponse mirrors models.Pathway with the derived figures the
// clients always want alongside the raw record.
type pathwayResponse struct {
	models.Pathway
	LengthM          float64 `json:"length_m"`
	CrossSectionMM2  float64 `json:"cross_section_mm2"`
	UsableSectionMM2 float64 `json:"usable_section_mm2"`
}

func toPathwayResponse(p models.Pathway) pathwayResponse {
	return pathwayResponse{
		Pathway:          p,
		LengthM:          p.LengthM(),
		CrossSectionMM2:  p.CrossSectionMM2(),
		UsableSectionMM2: p.UsableSectionMM2(),
	}
}

func validPathwayType(t string) bool {
	switch t {
	case "", models.PathwayCableTray, models.PathwayConduit,
		models.PathwayDuct, models.PathwayTrench, models.PathwayFreeAir:
		return true
	}
	return false
}

// CreatePathway registers a new cable pathway segment
func CreatePathway(c *gin.Context) {
	var input models.Pathway
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validPathwayType(input.PathwayType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown pathway_type"})
		return
	}
	if !input.Start().Valid() || !input.End().Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pathway endpoints must be finite coordinates"})
		return
	}
	if input.Reference == "" {
		input.Reference = generateReference("PW")
	}
	input.Connected = nil // links go through the connect endpoint only
	input.IsActive = true

	if err := config.DB.Create(&input).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "pathway reference already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create pathway: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"pathway": toPathwayResponse(input)})
}

// GetPathway retrieves a pathway with its connections
func GetPathway(c *gin.Context) {
	id := c.Param("id")
	var pathway models.Pathway
	if err := config.DB.Preload("Connected").First(&pathway, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pathway not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pathway": toPathwayResponse(pathway)})
}

// ListPathways lists pathways, active ones by default
func ListPathways(c *gin.Context) {
	query := config.DB.Preload("Connected")
	if c.Query("all") == "" {
		query = query.Where("is_active = ?", true)
	}
	if t := c.Query("type"); t != "" {
		query = query.Where("pathway_type = ?", t)
	}

	var pathways []models.Pathway
	if err := query.Find(&pathways).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch pathways"})
		return
	}

	responses := make([]pathwayResponse, 0, len(pathways))
	for _, p := range pathways {
		responses = append(responses, toPathwayResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// UpdatePathway modifies an existing pathway
func UpdatePathway(c *gin.Context) {
	id := c.Param("id")
	var pathway models.Pathway
	if err := config.DB.First(&pathway, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pathway not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Name         *string  `json:"name"`
		PathwayType  *string  `json:"pathway_type"`
		WidthMM      *float64 `json:"width_mm"`
		HeightMM     *float64 `json:"height_mm"`
		MaxFillRatio *float64 `json:"max_fill_ratio"`
		StartX       *float64 `json:"start_x"`
		StartY       *float64 `json:"start_y"`
		StartZ       *float64 `json:"start_z"`
		EndX         *float64 `json:"end_x"`
		EndY         *float64 `json:"end_y"`
		EndZ         *float64 `json:"end_z"`
		IsActive     *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		pathway.Name = *input.Name
	}
	if input.PathwayType != nil {
		if !validPathwayType(*input.PathwayType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown pathway_type"})
			return
		}
		pathway.PathwayType = *input.PathwayType
	}
	if input.WidthMM != nil {
		pathway.WidthMM = *input.WidthMM
	}
	if input.HeightMM != nil {
		pathway.HeightMM = *input.HeightMM
	}
	if input.MaxFillRatio != nil {
		pathway.MaxFillRatio = *input.MaxFillRatio
	}
	if input.StartX != nil {
		pathway.StartX = *input.StartX
	}
	if input.StartY != nil {
		pathway.StartY = *input.StartY
	}
	if input.StartZ != nil {
		pathway.StartZ = *input.StartZ
	}
	if input.EndX != nil {
		pathway.EndX = *input.EndX
	}
	if input.EndY != nil {
		pathway.EndY = *input.EndY
	}
	if input.EndZ != nil {
		pathway.EndZ = *input.EndZ
	}
	if input.IsActive != nil {
		pathway.IsActive = *input.IsActive
	}

	if !pathway.Start().Valid() || !pathway.End().Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pathway endpoints must be finite coordinates"})
		return
	}

	config.DB.Save(&pathway)
	c.JSON(http.StatusOK, gin.H{"pathway": toPathwayResponse(pathway)})
}

// ConnectPathways records an undirected link between two pathways.
// Both directions are written in one transaction; the adjacency must
// stay symmetric by construction, never by convention.
func ConnectPathways(c *gin.Context) {
	var a, b models.Pathway
	if err := config.DB.First(&a, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pathway not found"})
		return
	}
	if err := config.DB.First(&b, c.Param("other")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target pathway not found"})
		return
	}
	if a.ID == b.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot connect a pathway to itself"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&a).Association("Connected").Append(&b); err != nil {
			return err
		}
		return tx.Model(&b).Association("Connected").Append(&a)
	})
	if err != nil {
		logrus.WithError(err).Error("ConnectPathways: failed to link pathways")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not connect pathways: " + err.Error()})
		return
	}

	config.DB.Preload("Connected").First(&a, a.ID)
	c.JSON(http.StatusOK, gin.H{"pathway": toPathwayResponse(a)})
}

// DisconnectPathways removes the link in both directions.
func DisconnectPathways(c *gin.Context) {
	var a, b models.Pathway
	if err := config.DB.First(&a, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pathway not found"})
		return
	}
	if err := config.DB.First(&b, c.Param("other")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target pathway not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&a).Association("Connected").Delete(&b); err != nil {
			return err
		}
		return tx.Model(&b).Association("Connected").Delete(&a)
	})
	if err != nil {
		logrus.WithError(err).Error("DisconnectPathways: failed to unlink pathways")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not disconnect pathways: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pathways disconnected"})
}

// DeletePathway removes a pathway and its links
func DeletePathway(c *gin.Context) {
	id := c.Param("id")
	var pathway models.Pathway
	if err := config.DB.First(&pathway, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pathway not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&pathway).Association("Connected").Clear(); err != nil {
			return err
		}
		// Mirror side of the join table
		if err := tx.Exec("DELETE FROM pathway_links WHERE connected_id = ?", pathway.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&pathway).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pathway: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pathway deleted"})
}
