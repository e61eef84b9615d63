package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	// Middleware must be attached before the route groups register;
	// gin binds each route's handler chain at registration time.
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r)
	DeviceRoutes(r)
	ElectricalRoutes(r)
	AdminRoutes(r)

	return r
}
