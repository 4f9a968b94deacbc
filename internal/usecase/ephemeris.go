package usecase

import (
	"fmt"
	"math"
	"time"

	"go.ngs.io/helio-api/internal/domain"
	"go.ngs.io/helio-api/internal/timeutil"
)

// EphemerisRequest encapsulates a solar position request
type EphemerisRequest struct {
	// Instant selectors (mutually exclusive; all empty means "now")
	Time           *string
	JulianDay      *float64
	SinceEpochDays *float64
}

// EphemerisResponse contains the apparent solar position in degrees
type EphemerisResponse struct {
	Time            string            `json:"time"`
	JulianDay       float64           `json:"julian_day"`
	LongitudeDeg    float64           `json:"longitude_deg"`
	RADeg           float64           `json:"ra_deg"`
	DecDeg          float64           `json:"dec_deg"`
	AppLongitudeDeg float64           `json:"apparent_longitude_deg"`
	ObliquityDeg    float64           `json:"obliquity_deg"`
	Meta            map[string]string `json:"meta"`
}

// EphemerisUseCase computes solar positions
type EphemerisUseCase struct{}

// NewEphemerisUseCase creates a new ephemeris use case
func NewEphemerisUseCase() *EphemerisUseCase {
	return &EphemerisUseCase{}
}

// Validate checks if the request is valid
func (r *EphemerisRequest) Validate() error {
	selectors := 0
	if r.Time != nil && *r.Time != "" {
		selectors++
	}
	if r.JulianDay != nil {
		selectors++
	}
	if r.SinceEpochDays != nil {
		selectors++
	}
	if selectors > 1 {
		return fmt.Errorf("time, jd and days are mutually exclusive")
	}
	if r.JulianDay != nil && (math.IsNaN(*r.JulianDay) || math.IsInf(*r.JulianDay, 0)) {
		return fmt.Errorf("jd must be a finite number")
	}
	if r.SinceEpochDays != nil && (math.IsNaN(*r.SinceEpochDays) || math.IsInf(*r.SinceEpochDays, 0)) {
		return fmt.Errorf("days must be a finite number")
	}
	return nil
}

// Execute computes the solar position for the requested instant
func (uc *EphemerisUseCase) Execute(req EphemerisRequest) (*EphemerisResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	jd, displayTime, err := resolveInstant(req.Time, req.JulianDay, req.SinceEpochDays)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	pos := domain.SunPosJD(jd)

	// Build response
	return &EphemerisResponse{
		Time:            displayTime.Format(time.RFC3339),
		JulianDay:       domain.RoundToDecimal(jd, 6),
		LongitudeDeg:    domain.RoundToDecimal(pos.LongitudeDeg, 6),
		RADeg:           domain.RoundToDecimal(pos.RADeg, 6),
		DecDeg:          domain.RoundToDecimal(pos.DecDeg, 6),
		AppLongitudeDeg: domain.RoundToDecimal(pos.AppLongitudeDeg, 6),
		ObliquityDeg:    domain.RoundToDecimal(pos.ObliquityDeg, 6),
		Meta: map[string]string{
			"model": "newcomb_truncated",
		},
	}, nil
}

// resolveInstant maps the instant selectors onto a Julian Day Number and
// a display time. With no selector set it resolves to the wall clock at
// the moment of the call.
func resolveInstant(timeStr *string, jd *float64, sinceEpochDays *float64) (float64, time.Time, error) {
	switch {
	case timeStr != nil && *timeStr != "":
		t, err := timeutil.ParseTime(*timeStr)
		if err != nil {
			return 0, time.Time{}, err
		}
		return timeutil.JulianDay(t), t, nil
	case jd != nil:
		return *jd, timeutil.TimeFromJulianDay(*jd), nil
	case sinceEpochDays != nil:
		v := *sinceEpochDays + domain.Epoch1900
		return v, timeutil.TimeFromJulianDay(v), nil
	}
	now := time.Now().UTC()
	return timeutil.JulianDay(now), now, nil
}
