package usecase

import (
	"fmt"
	"strings"
	"time"

	"go.ngs.io/helio-api/internal/domain"
)

// GeometryRequest encapsulates a disk geometry request
type GeometryRequest struct {
	Time      *string
	JulianDay *float64
	// Vantage point of the observer. Only "earth" is supported.
	Vantage string
}

// GeometryResponse contains the observed disk geometry
type GeometryResponse struct {
	Time               string            `json:"time"`
	JulianDay          float64           `json:"julian_day"`
	PDeg               float64           `json:"p_deg"`
	B0Deg              float64           `json:"b0_deg"`
	SemiDiameterArcsec float64           `json:"semi_diameter_arcsec"`
	RadiusVectorAU     float64           `json:"radius_vector_au"`
	Meta               map[string]string `json:"meta"`
}

// GeometryUseCase computes solar disk geometry
type GeometryUseCase struct{}

// NewGeometryUseCase creates a new geometry use case
func NewGeometryUseCase() *GeometryUseCase {
	return &GeometryUseCase{}
}

// Validate checks if the request is valid
func (r *GeometryRequest) Validate() error {
	if r.Vantage != "" && !strings.EqualFold(r.Vantage, "earth") {
		return domain.ErrVantageUnsupported
	}
	if r.Time != nil && *r.Time != "" && r.JulianDay != nil {
		return fmt.Errorf("time and jd are mutually exclusive")
	}
	return nil
}

// Execute computes the disk geometry for the requested instant
func (uc *GeometryUseCase) Execute(req GeometryRequest) (*GeometryResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	jd, displayTime, err := resolveInstant(req.Time, req.JulianDay, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	geo := domain.DiskGeometryJD(jd)

	// Build response
	return &GeometryResponse{
		Time:               displayTime.Format(time.RFC3339),
		JulianDay:          domain.RoundToDecimal(jd, 6),
		PDeg:               domain.RoundToDecimal(geo.PDeg, 6),
		B0Deg:              domain.RoundToDecimal(geo.B0Deg, 6),
		SemiDiameterArcsec: domain.RoundToDecimal(geo.SemiDiameterArcsec, 6),
		RadiusVectorAU:     domain.RoundToDecimal(geo.RadiusVectorAU, 6),
		Meta: map[string]string{
			"vantage": "earth",
		},
	}, nil
}
