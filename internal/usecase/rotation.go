package usecase

import (
	"fmt"
	"math"
	"time"

	"go.ngs.io/helio-api/internal/domain"
)

// RotationRequest encapsulates a differential rotation request
type RotationRequest struct {
	// Rotation interval in days. May be negative or fractional.
	Days *float64
	// Heliographic latitudes in degrees
	Latitudes []float64
	// Rotation profile name. Empty selects howard.
	Profile string
	// Rotation frame name. Empty selects sidereal.
	Frame string
}

// RotationResponse contains rotation amounts per requested latitude
type RotationResponse struct {
	Days         float64           `json:"days"`
	Profile      string            `json:"profile"`
	Frame        string            `json:"frame"`
	LatitudesDeg []float64         `json:"latitudes_deg"`
	RotationDeg  []float64         `json:"rotation_deg"`
	Meta         map[string]string `json:"meta"`
}

// RotationUseCase computes differential rotation amounts
type RotationUseCase struct {
	model *domain.RotationModel
}

// NewRotationUseCase creates a new rotation use case
func NewRotationUseCase(model *domain.RotationModel) *RotationUseCase {
	if model == nil {
		model = domain.NewRotationModel()
	}
	return &RotationUseCase{model: model}
}

// Validate checks if the request is valid
func (r *RotationRequest) Validate() error {
	if r.Days == nil {
		return fmt.Errorf("days must be provided")
	}
	if math.IsNaN(*r.Days) || math.IsInf(*r.Days, 0) {
		return fmt.Errorf("days must be a finite number")
	}
	if len(r.Latitudes) == 0 {
		return fmt.Errorf("at least one latitude must be provided")
	}
	for _, lat := range r.Latitudes {
		if math.IsNaN(lat) || lat < -90 || lat > 90 {
			return fmt.Errorf("latitude must be between -90 and 90")
		}
	}
	return nil
}

// Execute computes the rotation amount for each requested latitude
func (uc *RotationUseCase) Execute(req RotationRequest) (*RotationResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	profile, err := domain.ParseProfile(req.Profile)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	frame, err := domain.ParseFrame(req.Frame)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	duration := time.Duration(*req.Days * 24 * float64(time.Hour))
	rotations, err := uc.model.DiffRotEach(duration, req.Latitudes, profile, frame)
	if err != nil {
		return nil, err
	}

	// Build response
	return &RotationResponse{
		Days:         *req.Days,
		Profile:      profile.String(),
		Frame:        frame.String(),
		LatitudesDeg: req.Latitudes,
		RotationDeg:  rotations,
		Meta: map[string]string{
			"units": "degrees",
		},
	}, nil
}
