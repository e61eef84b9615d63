package routes

import (
	"cable_planner/internal/controllers"
	"cable_planner/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.GET("/users", controllers.ListUsers)
	}
}
