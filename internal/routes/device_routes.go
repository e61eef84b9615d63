package routes

import (
	"cable_planner/internal/controllers"
	"cable_planner/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DeviceRoutes(r *gin.Engine) {
	devices := r.Group("/devices")
	devices.Use(middleware.RequireAuth())
	{
		devices.GET("", controllers.ListDevices)
		devices.GET("/:id", controllers.GetDevice)
	}

	editing := r.Group("/devices")
	editing.Use(middleware.RequireAuthWithRole("engineer"))
	{
		editing.POST("", controllers.CreateDevice)
		editing.PUT("/:id", controllers.UpdateDevice)
		editing.DELETE("/:id", controllers.DeleteDevice)
	}
}
