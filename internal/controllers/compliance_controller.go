package controllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cable_planner/internal/config"
	"cable_planner/internal/electrical"
	"cable_planner/internal/models"
)

func circuitClassFromQuery(raw string) (string, bool) {
	switch raw {
	case "", electrical.CircuitTerminal:
		return electrical.CircuitTerminal, true
	case electrical.CircuitDistribution:
		return electrical.CircuitDistribution, true
	}
	return "", false
}

// CableCompliance runs the IEC sizing check for a stored cable using its
// type's section and material and the cable's operating point.
func CableCompliance(c *gin.Context) {
	cID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cable ID"})
		return
	}

	var cable models.Cable
	if err := config.DB.Preload("CableType").First(&cable, cID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cable not found"})
		return
	}

	// The calculator divides by the section and assumes a defined
	// operating point; reject incomplete cables before invoking it.
	if cable.DesignCurrentA <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "design_current_a is not set on this cable"})
		return
	}
	if cable.OperatingVoltageV <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "operating_voltage_v is not set on this cable"})
		return
	}
	if cable.EffectiveLengthM() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cable length is not set (neither actual nor designed)"})
		return
	}
	if cable.CableType.SectionMM2 <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cable type has no positive section"})
		return
	}

	circuitClass, ok := circuitClassFromQuery(c.Query("circuit_class"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "circuit_class must be terminal or distribution"})
		return
	}

	params := electrical.DefaultParams()
	report := params.CheckCableSizing(
		cable.DesignCurrentA,
		cable.EffectiveLengthM(),
		cable.CableType.SectionMM2,
		float64(cable.OperatingVoltageV),
		cable.CableType.ConductorMaterial,
		circuitClass,
	)

	c.JSON(http.StatusOK, gin.H{
		"cable":       cable.Reference,
		"section_mm2": cable.CableType.SectionMM2,
		"length_m":    cable.EffectiveLengthM(),
		"current_a":   cable.DesignCurrentA,
		"voltage_v":   cable.OperatingVoltageV,
		"report":      report,
	})
}

type sizingInput struct {
	CurrentA     float64 `json:"current_a" binding:"required,gt=0"`
	LengthM      float64 `json:"length_m" binding:"required,gt=0"`
	SectionMM2   float64 `json:"section_mm2" binding:"required,gt=0"`
	VoltageV     float64 `json:"voltage_v" binding:"required,gt=0"`
	Conductor    string  `json:"conductor"`
	CircuitClass string  `json:"circuit_class"`
}

// CheckSizing runs the IEC sizing check on raw numbers, without touching
// any stored record. Handy for what-if checks from the frontend.
func CheckSizing(c *gin.Context) {
	var input sizingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, v := range []float64{input.CurrentA, input.LengthM, input.SectionMM2, input.VoltageV} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "numeric inputs must be finite"})
			return
		}
	}

	conductor := input.Conductor
	if conductor == "" {
		conductor = electrical.Copper
	}
	if conductor != electrical.Copper && conductor != electrical.Aluminum {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conductor must be copper or aluminum"})
		return
	}

	circuitClass, ok := circuitClassFromQuery(input.CircuitClass)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "circuit_class must be terminal or distribution"})
		return
	}

	params := electrical.DefaultParams()
	report := params.CheckCableSizing(
		input.CurrentA, input.LengthM, input.SectionMM2, input.VoltageV,
		conductor, circuitClass,
	)

	c.JSON(http.StatusOK, gin.H{"report": report})
}
