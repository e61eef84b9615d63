package routes

import (
	"cable_planner/internal/controllers"
	"cable_planner/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ElectricalRoutes wires the cable-type catalog, the pathway graph, the
// cables and their routing/compliance actions. Viewers read; engineers
// (and admins) write and trigger calculations.
func ElectricalRoutes(r *gin.Engine) {
	read := r.Group("/electrical")
	read.Use(middleware.RequireAuth())
	{
		read.GET("/cable-types", controllers.ListCableTypes)
		read.GET("/cable-types/:id", controllers.GetCableType)

		read.GET("/pathways", controllers.ListPathways)
		read.GET("/pathways/:id", controllers.GetPathway)

		read.GET("/cables", controllers.ListCables)
		read.GET("/cables/:id", controllers.GetCable)
		read.GET("/cables/:id/routes", controllers.RouteHistory)
		read.GET("/cables/:id/compliance", controllers.CableCompliance)

		read.GET("/routes/:id/geojson", controllers.RouteGeoJSON)

		read.POST("/compliance/check", controllers.CheckSizing)
	}

	write := r.Group("/electrical")
	write.Use(middleware.RequireAuthWithRole("engineer"))
	{
		write.POST("/cable-types", controllers.CreateCableType)
		write.PUT("/cable-types/:id", controllers.UpdateCableType)
		write.DELETE("/cable-types/:id", controllers.DeleteCableType)

		write.POST("/pathways", controllers.CreatePathway)
		write.PUT("/pathways/:id", controllers.UpdatePathway)
		write.DELETE("/pathways/:id", controllers.DeletePathway)
		write.POST("/pathways/:id/connect/:other", controllers.ConnectPathways)
		write.DELETE("/pathways/:id/connect/:other", controllers.DisconnectPathways)

		write.POST("/cables", controllers.CreateCable)
		write.PUT("/cables/:id", controllers.UpdateCable)
		write.DELETE("/cables/:id", controllers.DeleteCable)

		write.POST("/cables/:id/route", controllers.CalculateRoute)
		write.POST("/routes/:id/optimize", controllers.OptimizeRoute)
	}
}
