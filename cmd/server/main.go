package main

import (
	"log"
	"net/http"

	"cable_planner/internal/config"
	"cable_planner/internal/logger"
	"cable_planner/internal/middleware"
	"cable_planner/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Setup Gin router (recovery + request logging are wired inside)
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := config.GetEnv("SERVER_ADDR", "0.0.0.0:8080")
	log.Printf("🚀 Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
