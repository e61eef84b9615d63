package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cable_planner/internal/config"
	"cable_planner/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Route{}, &models.Waypoint{}))

	previous := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = previous })
	return db
}

func optimizeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/electrical/routes/:id/optimize", OptimizeRoute)
	return r
}

func postOptimize(t *testing.T, routeID uint) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/electrical/routes/%d/optimize", routeID), nil)
	w := httptest.NewRecorder()
	optimizeRouter().ServeHTTP(w, req)
	return w
}

func seedRoute(t *testing.T, db *gorm.DB, length float64, points ...[3]float64) models.Route {
	t.Helper()
	route := models.Route{CableID: 1, IsActive: true, TotalLengthM: length}
	require.NoError(t, db.Create(&route).Error)
	for i, p := range points {
		wp := models.Waypoint{RouteID: route.ID, Seq: i + 1, X: p[0], Y: p[1], Z: p[2]}
		require.NoError(t, db.Create(&wp).Error)
	}
	return route
}

func TestOptimizeRouteRewritesWaypoints(t *testing.T) {
	db := openTestDB(t)
	route := seedRoute(t, db, 10,
		[3]float64{0, 0, 0},
		[3]float64{3, 0, 0},
		[3]float64{7, 0, 0},
		[3]float64{10, 0, 0},
	)

	w := postOptimize(t, route.ID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var kept []models.Waypoint
	require.NoError(t, db.Order("seq ASC").Find(&kept, "route_id = ?", route.ID).Error)
	require.Len(t, kept, 2)
	assert.Equal(t, 1, kept[0].Seq)
	assert.Equal(t, 2, kept[1].Seq)
	assert.Equal(t, 10.0, kept[1].X)

	// The replaced rows must be gone outright, not soft deleted: they
	// would otherwise keep the route's seq slots occupied.
	var total int64
	require.NoError(t, db.Unscoped().Model(&models.Waypoint{}).
		Where("route_id = ?", route.ID).Count(&total).Error)
	assert.EqualValues(t, 2, total)

	var updated models.Route
	require.NoError(t, db.First(&updated, route.ID).Error)
	assert.True(t, updated.IsOptimized)
	assert.Equal(t, 10.0, updated.TotalLengthM)
}

func TestOptimizeRouteRepeatable(t *testing.T) {
	db := openTestDB(t)
	route := seedRoute(t, db, 10,
		[3]float64{0, 0, 0},
		[3]float64{5, 0, 0},
		[3]float64{10, 0, 0},
	)

	require.Equal(t, http.StatusOK, postOptimize(t, route.ID).Code)
	require.Equal(t, http.StatusOK, postOptimize(t, route.ID).Code)

	var kept []models.Waypoint
	require.NoError(t, db.Order("seq ASC").Find(&kept, "route_id = ?", route.ID).Error)
	assert.Len(t, kept, 2)
}

func TestOptimizeRouteShortRouteOnlyFlagged(t *testing.T) {
	db := openTestDB(t)
	route := seedRoute(t, db, 10,
		[3]float64{0, 0, 0},
		[3]float64{10, 0, 0},
	)

	w := postOptimize(t, route.ID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var kept []models.Waypoint
	require.NoError(t, db.Find(&kept, "route_id = ?", route.ID).Error)
	assert.Len(t, kept, 2)

	var updated models.Route
	require.NoError(t, db.First(&updated, route.ID).Error)
	assert.True(t, updated.IsOptimized)
}

func TestOptimizeRouteNotFound(t *testing.T) {
	openTestDB(t)
	w := postOptimize(t, 9999)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
