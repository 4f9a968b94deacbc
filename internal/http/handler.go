package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"go.ngs.io/helio-api/internal/adapter/store"
	"go.ngs.io/helio-api/internal/domain"
	"go.ngs.io/helio-api/internal/timeutil"
	"go.ngs.io/helio-api/internal/usecase"
)

// Handler handles HTTP requests for solar position and rotation.
type Handler struct {
	ephemerisUC *usecase.EphemerisUseCase
	geometryUC  *usecase.GeometryUseCase
	rotationUC  *usecase.RotationUseCase
	rotateUC    *usecase.RotateUseCase
	transitUC   *usecase.TransitUseCase
	catalog     store.ProfileCatalog     // Optional profile metadata.
	rates       store.MeasuredRateSource // Optional measured-rate grid.
}

// NewHandler creates a new HTTP handler.
func NewHandler(model *domain.RotationModel, catalog store.ProfileCatalog, rates store.MeasuredRateSource) *Handler {
	return &Handler{
		ephemerisUC: usecase.NewEphemerisUseCase(),
		geometryUC:  usecase.NewGeometryUseCase(),
		rotationUC:  usecase.NewRotationUseCase(model),
		rotateUC:    usecase.NewRotateUseCase(model),
		transitUC:   usecase.NewTransitUseCase(model),
		catalog:     catalog,
		rates:       rates,
	}
}

// GetSunPosition handles GET /v1/sun/position.
func (h *Handler) GetSunPosition(c *gin.Context) {
	// Parse query parameters.
	req := usecase.EphemerisRequest{}

	if s := c.Query("time"); s != "" {
		req.Time = &s
	}
	if s := c.Query("jd"); s != "" {
		jd, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid jd: %v", err)})
			return
		}
		req.JulianDay = &jd
	}
	if s := c.Query("days"); s != "" {
		days, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid days: %v", err)})
			return
		}
		req.SinceEpochDays = &days
	}

	// Execute use case.
	response, err := h.ephemerisUC.Execute(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetSunDisk handles GET /v1/sun/disk.
func (h *Handler) GetSunDisk(c *gin.Context) {
	// Parse query parameters.
	req := usecase.GeometryRequest{
		Vantage: c.Query("vantage"),
	}

	if s := c.Query("time"); s != "" {
		req.Time = &s
	}
	if s := c.Query("jd"); s != "" {
		jd, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid jd: %v", err)})
			return
		}
		req.JulianDay = &jd
	}

	// Execute use case.
	response, err := h.geometryUC.Execute(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetRotation handles GET /v1/rotation.
func (h *Handler) GetRotation(c *gin.Context) {
	// Parse query parameters.
	req := usecase.RotationRequest{
		Profile: c.Query("profile"),
		Frame:   c.Query("frame"),
	}

	if s := c.Query("days"); s != "" {
		days, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid days: %v", err)})
			return
		}
		req.Days = &days
	}

	// Latitudes may be repeated parameters, comma-separated, or both.
	for _, raw := range c.QueryArray("lat") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			lat, err := strconv.ParseFloat(part, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid latitude: %v", err)})
				return
			}
			req.Latitudes = append(req.Latitudes, lat)
		}
	}

	// Execute use case.
	response, err := h.rotationUC.Execute(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetRotationTrack handles GET /v1/rotation/track.
func (h *Handler) GetRotationTrack(c *gin.Context) {
	// Parse query parameters.
	startStr := c.Query("start")
	endStr := c.Query("end")
	intervalStr := c.Query("interval")

	if startStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start parameter is required"})
		return
	}
	start, err := timeutil.ParseTime(startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid start time: %v", err)})
		return
	}

	// Default tracking window: 14 days from start.
	end := start.Add(14 * 24 * time.Hour)
	if endStr != "" {
		end, err = timeutil.ParseTime(endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid end time: %v", err)})
			return
		}
	}

	// Parse interval (default: 6h).
	if intervalStr == "" {
		intervalStr = "6h"
	}
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid interval: %v", err)})
		return
	}

	req := usecase.TransitRequest{
		Start:    start,
		End:      end,
		Interval: interval,
		Profile:  c.Query("profile"),
		Frame:    c.Query("frame"),
	}

	if s := c.Query("lat"); s != "" {
		lat, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid latitude: %v", err)})
			return
		}
		req.LatitudeDeg = &lat
	}
	if s := c.Query("cmd"); s != "" {
		cmd, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid cmd: %v", err)})
			return
		}
		req.CMDDeg = &cmd
	}
	for _, raw := range c.QueryArray("target") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			target, err := strconv.ParseFloat(part, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid target: %v", err)})
				return
			}
			req.Targets = append(req.Targets, target)
		}
	}

	// Execute use case.
	response, err := h.transitUC.Execute(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// PostRotate handles POST /v1/rotate.
func (h *Handler) PostRotate(c *gin.Context) {
	var req usecase.RotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	// Execute use case.
	response, err := h.rotateUC.Execute(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ProfileListResponse is the response for listing rotation profiles.
type ProfileListResponse struct {
	Name        string  `json:"name"`
	AUradS      float64 `json:"a_urad_s,omitempty"`
	BUradS      float64 `json:"b_urad_s,omitempty"`
	CUradS      float64 `json:"c_urad_s,omitempty"`
	Description string  `json:"description,omitempty"`
	Source      string  `json:"source,omitempty"`
}

// GetProfiles returns the rotation profiles the service can evaluate.
func (h *Handler) GetProfiles(c *gin.Context) {
	// Describe the built-in profiles.
	descriptions := map[string]string{
		"howard":    "Doppler velocity profile of Howard & Harvey (1970)",
		"snodgrass": "Magnetic feature profile of Snodgrass & Ulrich (1990)",
		"allen":     "Single-term approximation from Allen's Astrophysical Quantities",
	}
	sources := map[string]string{
		"howard":    "Solar Physics 12, 23 (1970)",
		"snodgrass": "ApJ 351, 309 (1990)",
		"allen":     "Allen, Astrophysical Quantities (3rd ed.)",
	}

	howard := domain.StandardRotationCoeffs[domain.ProfileHoward]
	snodgrass := domain.StandardRotationCoeffs[domain.ProfileSnodgrass]

	response := []ProfileListResponse{
		{
			Name:   "howard",
			AUradS: howard.A, BUradS: howard.B, CUradS: howard.C,
			Description: descriptions["howard"],
			Source:      sources["howard"],
		},
		{
			Name:   "snodgrass",
			AUradS: snodgrass.A, BUradS: snodgrass.B, CUradS: snodgrass.C,
			Description: descriptions["snodgrass"],
			Source:      sources["snodgrass"],
		},
		{
			Name:        "allen",
			Description: descriptions["allen"],
			Source:      sources["allen"],
		},
	}

	// Merge catalog metadata when a catalog is configured.
	if h.catalog != nil {
		records, err := h.catalog.Load()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		for _, rec := range records {
			merged := false
			for i := range response {
				if response[i].Name == rec.Profile {
					response[i].AUradS = rec.A
					response[i].BUradS = rec.B
					response[i].CUradS = rec.C
					if rec.Source != "" {
						response[i].Source = rec.Source
					}
					merged = true
					break
				}
			}
			if !merged {
				response = append(response, ProfileListResponse{
					Name:   rec.Profile,
					AUradS: rec.A, BUradS: rec.B, CUradS: rec.C,
					Source: rec.Source,
				})
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"profiles": response,
		"count":    len(response),
	})
}

// GetMeasuredRate handles GET /v1/rates/measured.
func (h *Handler) GetMeasuredRate(c *gin.Context) {
	// Parse query parameters.
	yearStr := c.Query("year")
	latStr := c.Query("lat")
	if yearStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year parameter is required"})
		return
	}
	if latStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat parameter is required"})
		return
	}

	year, err := strconv.ParseFloat(yearStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid year: %v", err)})
		return
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid latitude: %v", err)})
		return
	}

	rate, err := h.rates.RateAt(year, lat)
	if err != nil {
		if errors.Is(err, store.ErrRateOutOfRange) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":                 year,
		"latitude_deg":         lat,
		"sidereal_deg_per_day": domain.RoundToDecimal(rate, 4),
		"synodic_deg_per_day":  domain.RoundToDecimal(rate-domain.SynodicOffsetDegPerDay, 4),
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
