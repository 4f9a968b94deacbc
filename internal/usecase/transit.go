package usecase

import (
	"fmt"
	"time"

	"go.ngs.io/helio-api/internal/domain"
)

// TransitRequest encapsulates a transit tracking request
type TransitRequest struct {
	// Time range of the track
	Start time.Time
	End   time.Time

	// Interval between track samples (e.g., 6 hours)
	Interval time.Duration

	// Region position at Start
	LatitudeDeg *float64
	CMDDeg      *float64

	// Optional parameters
	Profile string
	Frame   string // empty selects synodic
	// Central meridian distances to report crossings for.
	// Empty selects {0, 90}: central meridian passage and west limb exit.
	Targets []float64
}

// TransitResponse contains the CMD track and target crossings
type TransitResponse struct {
	Start           string            `json:"start"`
	End             string            `json:"end"`
	IntervalMinutes float64           `json:"interval_minutes"`
	Profile         string            `json:"profile"`
	Frame           string            `json:"frame"`
	LatitudeDeg     float64           `json:"latitude_deg"`
	Track           []TrackSample     `json:"track"`
	Crossings       []CrossingPoint   `json:"crossings"`
	Meta            map[string]string `json:"meta"`
}

// TrackSample is a single point of the CMD track
type TrackSample struct {
	Time   string  `json:"time"`
	CMDDeg float64 `json:"cmd_deg"`
}

// CrossingPoint marks the instant the track reaches a target CMD
type CrossingPoint struct {
	Time      string  `json:"time"`
	TargetDeg float64 `json:"target_deg"`
	Label     string  `json:"label"`
}

// TransitUseCase tracks a region's central meridian distance over time
type TransitUseCase struct {
	model *domain.RotationModel
}

// NewTransitUseCase creates a new transit use case
func NewTransitUseCase(model *domain.RotationModel) *TransitUseCase {
	if model == nil {
		model = domain.NewRotationModel()
	}
	return &TransitUseCase{model: model}
}

// Validate checks if the request is valid
func (r *TransitRequest) Validate() error {
	if r.LatitudeDeg == nil {
		return fmt.Errorf("latitude must be provided")
	}
	if *r.LatitudeDeg < -90 || *r.LatitudeDeg > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if r.CMDDeg == nil {
		return fmt.Errorf("central meridian distance must be provided")
	}
	if *r.CMDDeg < -180 || *r.CMDDeg > 180 {
		return fmt.Errorf("central meridian distance must be between -180 and 180")
	}

	// Validate time range
	if !r.Start.Before(r.End) {
		return fmt.Errorf("start time must be before end time")
	}

	// Validate interval
	if r.Interval < time.Minute {
		return fmt.Errorf("interval must be at least 1 minute")
	}
	if r.Interval > 24*time.Hour {
		return fmt.Errorf("interval must be at most 24 hours")
	}

	// Check that time range is reasonable
	duration := r.End.Sub(r.Start)
	if duration > 90*24*time.Hour {
		return fmt.Errorf("time range must be at most 90 days")
	}

	// Check that number of points is reasonable
	numPoints := int(duration / r.Interval)
	if numPoints > 10000 {
		return fmt.Errorf("too many track points (%d) - reduce time range or increase interval", numPoints)
	}

	return nil
}

// Execute computes the CMD track and its target crossings
func (uc *TransitUseCase) Execute(req TransitRequest) (*TransitResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
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

	points, err := domain.GenerateTrack(uc.model, req.Start, req.End, req.Interval,
		*req.LatitudeDeg, *req.CMDDeg, profile, frame)
	if err != nil {
		return nil, err
	}

	targets := req.Targets
	if len(targets) == 0 {
		targets = []float64{0, 90}
	}

	var crossings []CrossingPoint
	for _, target := range targets {
		for _, c := range domain.FindCrossings(points, target) {
			crossings = append(crossings, CrossingPoint{
				Time:      c.Time.UTC().Format(time.RFC3339),
				TargetDeg: c.TargetDeg,
				Label:     crossingLabel(c.TargetDeg),
			})
		}
	}

	// Convert to response format
	track := make([]TrackSample, len(points))
	for i, p := range points {
		track[i] = TrackSample{
			Time:   p.Time.UTC().Format(time.RFC3339),
			CMDDeg: domain.RoundToDecimal(p.CMDDeg, 4),
		}
	}

	// Build response
	return &TransitResponse{
		Start:           req.Start.UTC().Format(time.RFC3339),
		End:             req.End.UTC().Format(time.RFC3339),
		IntervalMinutes: req.Interval.Minutes(),
		Profile:         profile.String(),
		Frame:           frame.String(),
		LatitudeDeg:     *req.LatitudeDeg,
		Track:           track,
		Crossings:       crossings,
		Meta: map[string]string{
			"cmd_convention": "west_positive",
		},
	}, nil
}

// crossingLabel names the well-known target CMDs
func crossingLabel(targetDeg float64) string {
	switch targetDeg {
	case 0:
		return "central_meridian"
	case 90:
		return "west_limb"
	case -90:
		return "east_limb"
	}
	return "custom"
}
