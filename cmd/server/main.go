// Package main provides the helio API HTTP server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.ngs.io/helio-api/internal/adapter/store"
	"go.ngs.io/helio-api/internal/adapter/store/csv"
	"go.ngs.io/helio-api/internal/adapter/store/mwgrid"
	"go.ngs.io/helio-api/internal/domain"
	httpHandler "go.ngs.io/helio-api/internal/http"
)

const version = "0.1.0"

func main() {
	// Parse command-line flags.
	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("helio-api version %s\n", version)
		return
	}

	// Load configuration from environment.
	port := getEnv("PORT", "8080")
	catalogPath := getEnv("PROFILE_CATALOG_PATH", "")
	gridPath := getEnv("RATE_GRID_PATH", "")
	coeffsPath := getEnv("ROTATION_COEFFS_PATH", "")

	log.Printf("Starting Helio API server...")
	log.Printf("Port: %s", port)

	// Initialize the rotation model. Coefficient overrides are picked up
	// from ROTATION_COEFFS_PATH (or data/rotation_coeffs.json) when present.
	if coeffsPath != "" {
		log.Printf("Rotation coefficient overrides: %s", coeffsPath)
	}
	model := domain.NewRotationModel()

	// Initialize profile catalog (optional).
	var catalog store.ProfileCatalog
	if catalogPath != "" {
		log.Printf("Profile catalog: %s", catalogPath)
		catalog = csv.NewProfileStore(catalogPath)
	}

	// Initialize measured-rate grid (optional).
	var rates store.MeasuredRateSource
	if gridPath != "" {
		log.Printf("Measured rate grid: %s", gridPath)
		rates = mwgrid.NewStore(gridPath)
	} else {
		log.Printf("Measured rate grid disabled (RATE_GRID_PATH not set)")
	}

	// Setup router.
	router := httpHandler.SetupRouter(model, catalog, rates)

	// Start server.
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Server listening on %s", addr)
	log.Printf("Health check: http://localhost:%s/health", port)
	log.Printf("API endpoints:")
	log.Printf("  - GET /v1/sun/position")
	log.Printf("  - GET /v1/sun/disk")
	log.Printf("  - GET /v1/rotation")
	log.Printf("  - GET /v1/rotation/track")
	log.Printf("  - POST /v1/rotate")
	log.Printf("  - GET /v1/profiles")
	if rates != nil {
		log.Printf("  - GET /v1/rates/measured")
	}

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("Helio API Server v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  helio-api [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  PORT                    Server port (default: 8080)")
	fmt.Println("  CORS_ALLOWED_ORIGINS    Comma-separated list of allowed origins (default: all origins)")
	fmt.Println("  GIN_MODE                Gin mode: debug, release or test (default: debug)")
	fmt.Println("  PROFILE_CATALOG_PATH    Path to rotation profile CSV catalog (optional)")
	fmt.Println("  RATE_GRID_PATH          Path to measured rotation rate NetCDF grid (optional)")
	fmt.Println("  ROTATION_COEFFS_PATH    Path to rotation coefficient override JSON (optional)")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Start server with default settings")
	fmt.Println("  helio-api")
	fmt.Println()
	fmt.Println("  # Start server on custom port")
	fmt.Println("  PORT=3000 helio-api")
	fmt.Println()
	fmt.Println("API ENDPOINTS:")
	fmt.Println("  GET  /health               Health check")
	fmt.Println("  GET  /v1/sun/position      Apparent solar position")
	fmt.Println("  GET  /v1/sun/disk          Disk geometry (P, B0, semi-diameter)")
	fmt.Println("  GET  /v1/rotation          Differential rotation amounts")
	fmt.Println("  GET  /v1/rotation/track    CMD track and limb crossings")
	fmt.Println("  POST /v1/rotate            Rotate helioprojective co-ordinates")
	fmt.Println("  GET  /v1/profiles          List rotation profiles")
	fmt.Println("  GET  /v1/rates/measured    Measured rotation rate (if configured)")
	fmt.Println()
}
