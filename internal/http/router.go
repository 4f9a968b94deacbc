package http

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go.ngs.io/helio-api/internal/adapter/store"
	"go.ngs.io/helio-api/internal/domain"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(model *domain.RotationModel, catalog store.ProfileCatalog, rates store.MeasuredRateSource) *gin.Engine {

	router := gin.Default()

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable.
	// Default to allow all origins if not specified.
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}

	router.Use(cors.New(corsConfig))

	// Create handler.
	handler := NewHandler(model, catalog, rates)

	// API v1 routes.
	v1 := router.Group("/v1")
	// Solar position and disk geometry.
	sun := v1.Group("/sun")
	sun.GET("/position", handler.GetSunPosition)
	sun.GET("/disk", handler.GetSunDisk)

	// Differential rotation.
	v1.GET("/rotation", handler.GetRotation)
	v1.GET("/rotation/track", handler.GetRotationTrack)
	v1.POST("/rotate", handler.PostRotate)

	// Profile catalog.
	v1.GET("/profiles", handler.GetProfiles)

	// Measured rates, registered only when a grid is configured.
	if rates != nil {
		v1.GET("/rates/measured", handler.GetMeasuredRate)
	}

	// Health check.
	router.GET("/health", handler.HealthCheck)

	return router
}
