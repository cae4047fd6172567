package main

import (
	"log"

	"forknfriends/backend/internal/config"
	"forknfriends/backend/internal/database"
	"forknfriends/backend/internal/handler"
	"forknfriends/backend/internal/logger"
	"forknfriends/backend/internal/middleware"
	"forknfriends/backend/internal/places"
	"forknfriends/backend/internal/router"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "forknfriends/backend/docs" // This is important for swag to find the generated docs
)

func init() {
	config.LoadConfig()
}

// @title           Fork n Friends API
// @version         1.0
// @description     Social restaurant tracking: personal lists, friends, shared group lists.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init(gin.Mode() == gin.DebugMode)
	defer logger.Log.Sync()

	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	handler.PlacesClient = places.NewClient(config.AppConfig.FoursquareAPIKey)

	middleware.InitPrometheus()
	go middleware.CleanupVisitors()

	r := router.Setup()

	addr := ":" + config.AppConfig.Port
	log.Printf("Server is running on %s", addr)
	log.Printf("Swagger UI is available at http://localhost%s/swagger/index.html", addr)
	log.Fatal(r.Run(addr))
}
