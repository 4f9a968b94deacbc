package usecase

import (
	"errors"
	"fmt"
	"time"

	"go.ngs.io/helio-api/internal/domain"
	"go.ngs.io/helio-api/internal/timeutil"
)

// OffDiskSentinel marks co-ordinates that fall off the solar disk
// either at the start of the rotation window or after rotation.
const OffDiskSentinel = -9999.0

// RotateRequest encapsulates a co-ordinate rotation request
type RotateRequest struct {
	// Helioprojective co-ordinates in arcseconds, west and north positive
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
	// Start of the rotation window
	Start string `json:"start"`
	// End of the rotation window. Ignored when IntervalSeconds is set.
	End *string `json:"end,omitempty"`
	// Length of the rotation window in seconds
	IntervalSeconds *float64 `json:"interval_seconds,omitempty"`
	// Rotation profile name. Empty selects howard.
	Profile string `json:"profile,omitempty"`
	// Rotation frame name. Empty selects synodic.
	Frame string `json:"frame,omitempty"`
}

// RotatePoint is a rotated co-ordinate pair in arcseconds
type RotatePoint struct {
	XArcsec float64 `json:"x_arcsec"`
	YArcsec float64 `json:"y_arcsec"`
	OffDisk bool    `json:"off_disk,omitempty"`
}

// RotateResponse contains the rotated co-ordinates
type RotateResponse struct {
	Start   string            `json:"start"`
	End     string            `json:"end"`
	Days    float64           `json:"days"`
	Profile string            `json:"profile"`
	Frame   string            `json:"frame"`
	Points  []RotatePoint     `json:"points"`
	Meta    map[string]string `json:"meta"`
}

// RotateUseCase rotates helioprojective co-ordinates across a time window
type RotateUseCase struct {
	model *domain.RotationModel
}

// NewRotateUseCase creates a new rotate use case
func NewRotateUseCase(model *domain.RotationModel) *RotateUseCase {
	if model == nil {
		model = domain.NewRotationModel()
	}
	return &RotateUseCase{model: model}
}

// Validate checks if the request is valid
func (r *RotateRequest) Validate() error {
	if len(r.X) != len(r.Y) {
		return fmt.Errorf("input co-ordinates must have the same shape")
	}
	if len(r.X) == 0 {
		return fmt.Errorf("at least one co-ordinate pair must be provided")
	}
	if r.Start == "" {
		return fmt.Errorf("you need to specify 'start' & 'end', or 'start' and 'interval'")
	}
	return nil
}

// Execute rotates each co-ordinate pair across the requested window
func (uc *RotateUseCase) Execute(req RotateRequest) (*RotateResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	start, err := timeutil.ParseTime(req.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	// Resolve the window end. An explicit interval wins over an explicit
	// end, and with neither the window closes at the current wall clock.
	var end time.Time
	switch {
	case req.IntervalSeconds != nil:
		end = start.Add(time.Duration(*req.IntervalSeconds * float64(time.Second)))
	case req.End != nil && *req.End != "":
		end, err = timeutil.ParseTime(*req.End)
		if err != nil {
			return nil, fmt.Errorf("invalid request: %w", err)
		}
	default:
		end = time.Now().UTC()
	}

	profile, err := domain.ParseProfile(req.Profile)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	frameName := req.Frame
	if frameName == "" {
		frameName = "synodic"
	}
	frame, err := domain.ParseFrame(frameName)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	window := end.Sub(start)
	geoStart := domain.DiskGeometryJD(timeutil.JulianDay(start))
	geoEnd := domain.DiskGeometryJD(timeutil.JulianDay(end))

	points := make([]RotatePoint, len(req.X))
	for i := range req.X {
		lat, lon, err := domain.DiskToHeliographic(req.X[i], req.Y[i], geoStart.B0Deg, 0, geoStart.SemiDiameterArcsec)
		if err != nil {
			if errors.Is(err, domain.ErrOffDisk) {
				points[i] = RotatePoint{XArcsec: OffDiskSentinel, YArcsec: OffDiskSentinel, OffDisk: true}
				continue
			}
			return nil, err
		}

		rot, err := uc.model.DiffRot(window, lat, profile, frame)
		if err != nil {
			return nil, err
		}

		x, y, visible := domain.HeliographicToDisk(lat, lon+rot, geoEnd.B0Deg, 0, geoEnd.SemiDiameterArcsec)
		if !visible {
			points[i] = RotatePoint{XArcsec: OffDiskSentinel, YArcsec: OffDiskSentinel, OffDisk: true}
			continue
		}
		points[i] = RotatePoint{
			XArcsec: domain.RoundToDecimal(x, 4),
			YArcsec: domain.RoundToDecimal(y, 4),
		}
	}

	// Build response
	return &RotateResponse{
		Start:   start.Format(time.RFC3339),
		End:     end.Format(time.RFC3339),
		Days:    domain.RoundToDecimal(window.Seconds()/86400.0, 6),
		Profile: profile.String(),
		Frame:   frame.String(),
		Points:  points,
		Meta: map[string]string{
			"units": "arcseconds",
		},
	}, nil
}
