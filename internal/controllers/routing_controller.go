package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	geom "github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"

	"cable_planner/internal/config"
	"cable_planner/internal/geometry"
	"cable_planner/internal/models"
	"cable_planner/internal/routing"
)

type routeRequest struct {
	OriginX float64 `json:"origin_x"`
	OriginY float64 `json:"origin_y"`
	OriginZ float64 `json:"origin_z"`
	DestX   float64 `json:"dest_x"`
	DestY   float64 `json:"dest_y"`
	DestZ   float64 `json:"dest_z"`

	// Run the simplification pass after routing. Defaults to true.
	Optimize *bool `json:"optimize"`
}

type optimizationStats struct {
	OriginalWaypoints  int     `json:"original_waypoints"`
	OptimizedWaypoints int     `json:"optimized_waypoints"`
	LengthSavedM       float64 `json:"length_saved_m"`
}

func routeTolerance() float64 {
	if v, err := strconv.ParseFloat(config.GetEnv("ROUTE_TOLERANCE_M", "0.1"), 64); err == nil && v >= 0 {
		return v
	}
	return 0.1
}

func bfsMaxVisited() int {
	if v, err := strconv.Atoi(config.GetEnv("BFS_MAX_VISITED", "")); err == nil && v > 0 {
		return v
	}
	return routing.DefaultMaxVisited
}

// loadSnapshot eagerly reads the active pathway set with its links so
// the locator and BFS run entirely in memory.
func loadSnapshot(db *gorm.DB) (*routing.Snapshot, error) {
	var pathways []models.Pathway
	if err := db.Preload("Connected").Where("is_active = ?", true).Find(&pathways).Error; err != nil {
		return nil, err
	}
	return routing.NewSnapshot(pathways), nil
}

// CalculateRoute computes the tracé for a cable between two points:
// nearest pathway at each end, BFS across the pathway graph, waypoint
// expansion, optional simplification, then one transaction that replaces
// the cable's active route.
func CalculateRoute(c *gin.Context) {
	cID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cable ID"})
		return
	}

	var input routeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CalculateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	origin := geometry.Point3D{X: input.OriginX, Y: input.OriginY, Z: input.OriginZ}
	destination := geometry.Point3D{X: input.DestX, Y: input.DestY, Z: input.DestZ}
	if !origin.Valid() || !destination.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination must be finite coordinates"})
		return
	}

	var cable models.Cable
	if err := config.DB.First(&cable, cID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cable not found"})
		return
	}

	snapshot, err := loadSnapshot(config.DB)
	if err != nil {
		logrus.WithError(err).Error("CalculateRoute: failed to load pathways")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load pathways: " + err.Error()})
		return
	}

	originPathway, err := snapshot.NearestPathway(origin)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No cable pathways available"})
		return
	}
	destPathway, err := snapshot.NearestPathway(destination)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No cable pathways available"})
		return
	}

	sequence, err := snapshot.FindSequence(originPathway.ID, destPathway.ID, bfsMaxVisited())
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf(
			"No pathway sequence found between %s and %s. Check the connections between pathways.",
			originPathway.Name, destPathway.Name)})
		return
	}

	waypoints, totalLength, err := snapshot.BuildWaypoints(origin, destination, sequence)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	notes := fmt.Sprintf("Route computed automatically via BFS. %d pathway(s) traversed.", len(sequence))

	optimize := input.Optimize == nil || *input.Optimize
	var stats *optimizationStats
	if optimize {
		reduced, reducedLength := routing.Simplify(waypoints, routeTolerance())
		stats = &optimizationStats{
			OriginalWaypoints:  len(waypoints),
			OptimizedWaypoints: len(reduced),
			LengthSavedM:       geometry.Round2(totalLength - reducedLength),
		}
		waypoints = reduced
		totalLength = reducedLength
	}

	route := models.Route{
		CableID:          cable.ID,
		IsActive:         true,
		IsOptimized:      optimize,
		TotalLengthM:     totalLength,
		CalculationNotes: notes,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the cable row so concurrent calculations for the same
		// cable serialize; two requests must never both see "no active
		// route" and insert two active ones.
		var locked models.Cable
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&locked, cable.ID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Route{}).
			Where("cable_id = ? AND is_active = ?", cable.ID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		if err := tx.Create(&route).Error; err != nil {
			return err
		}

		for i, wp := range waypoints {
			record := models.Waypoint{
				RouteID:   route.ID,
				Seq:       i + 1,
				X:         wp.Point.X,
				Y:         wp.Point.Y,
				Z:         wp.Point.Z,
				PathwayID: wp.PathwayID,
				Label:     wp.Label,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		return tx.Model(&locked).Update("designed_length_m", totalLength).Error
	})
	if err != nil {
		logrus.WithError(err).Error("CalculateRoute: transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not persist route: " + err.Error()})
		return
	}

	config.DB.Preload("Waypoints", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	}).First(&route, route.ID)

	c.JSON(http.StatusOK, gin.H{
		"message":      fmt.Sprintf("Route computed successfully. Total length: %.1f m", totalLength),
		"total_length": totalLength,
		"route":        route,
		"optimization": stats,
	})
}

// OptimizeRoute reruns the simplification pass on a stored route,
// rewriting its waypoints with contiguous sequence numbers and the
// recomputed length. Routes of two or fewer points are only flagged.
func OptimizeRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.Preload("Waypoints", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	}).First(&route, rID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	originalCount := len(route.Waypoints)
	originalLength := route.TotalLengthM

	if originalCount <= 2 {
		config.DB.Model(&route).Update("is_optimized", true)
		c.JSON(http.StatusOK, gin.H{
			"optimization": optimizationStats{
				OriginalWaypoints:  originalCount,
				OptimizedWaypoints: originalCount,
				LengthSavedM:       0.0,
			},
			"route": route,
		})
		return
	}

	specs := make([]routing.WaypointSpec, len(route.Waypoints))
	for i, wp := range route.Waypoints {
		specs[i] = routing.WaypointSpec{Point: wp.Point(), PathwayID: wp.PathwayID, Label: wp.Label}
	}

	reduced, newLength := routing.Simplify(specs, routeTolerance())

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// Hard delete: soft-deleted rows would still hold the route's
		// seq slots in idx_route_seq and block the reinsert below.
		if err := tx.Unscoped().Where("route_id = ?", route.ID).Delete(&models.Waypoint{}).Error; err != nil {
			return err
		}
		for i, wp := range reduced {
			record := models.Waypoint{
				RouteID:   route.ID,
				Seq:       i + 1,
				X:         wp.Point.X,
				Y:         wp.Point.Y,
				Z:         wp.Point.Z,
				PathwayID: wp.PathwayID,
				Label:     wp.Label,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Route{}).Where("id = ?", route.ID).Updates(map[string]interface{}{
			"total_length_m": newLength,
			"is_optimized":   true,
		}).Error
	})
	if err != nil {
		logrus.WithError(err).Error("OptimizeRoute: transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not persist optimized route: " + err.Error()})
		return
	}

	config.DB.Preload("Waypoints", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	}).First(&route, route.ID)

	c.JSON(http.StatusOK, gin.H{
		"optimization": optimizationStats{
			OriginalWaypoints:  originalCount,
			OptimizedWaypoints: len(reduced),
			LengthSavedM:       geometry.Round2(originalLength - newLength),
		},
		"route": route,
	})
}

// RouteHistory lists every route ever computed for a cable, newest first.
func RouteHistory(c *gin.Context) {
	cID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cable ID"})
		return
	}

	var cable models.Cable
	if err := config.DB.First(&cable, cID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cable not found"})
		return
	}

	var routes []models.Route
	config.DB.Preload("Waypoints", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	}).Where("cable_id = ?", cable.ID).Order("created_at DESC").Find(&routes)

	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// RouteGeoJSON renders a route's waypoints as a 3D GeoJSON LineString.
func RouteGeoJSON(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.Preload("Waypoints", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	}).First(&route, rID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	}
	if len(route.Waypoints) < 2 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Route has fewer than two waypoints"})
		return
	}

	coords := make([]geom.Coord, len(route.Waypoints))
	for i, wp := range route.Waypoints {
		coords[i] = geom.Coord{wp.X, wp.Y, wp.Z}
	}

	line, err := geom.NewLineString(geom.XYZ).SetCoords(coords)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build geometry: " + err.Error()})
		return
	}

	encoded, err := gjson.Marshal(line)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not encode geometry: " + err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/geo+json", encoded)
}
