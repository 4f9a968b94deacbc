package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Profile identifies a differential rotation profile.
type Profile int

const (
	// ProfileHoward is the Doppler velocity profile of Howard & Harvey (1970).
	ProfileHoward Profile = iota
	// ProfileSnodgrass is the magnetic-feature profile of Snodgrass & Ulrich (1990).
	ProfileSnodgrass
	// ProfileAllen is the single-term approximation from Allen's Astrophysical Quantities.
	ProfileAllen
)

// Frame selects the reference the rotation is measured against.
type Frame int

const (
	// FrameSidereal measures rotation against the fixed stars.
	FrameSidereal Frame = iota
	// FrameSynodic measures rotation as seen from the orbiting Earth.
	FrameSynodic
)

// SynodicOffsetDegPerDay is the mean daily motion of the Earth about the
// Sun. Synodic rotation is the sidereal value less this drift.
const SynodicOffsetDegPerDay = 0.9856

var (
	// ErrInvalidProfile reports an unrecognized rotation profile.
	ErrInvalidProfile = errors.New("invalid rotation profile")
	// ErrInvalidFrame reports an unrecognized rotation frame.
	ErrInvalidFrame = errors.New("invalid rotation frame")
)

// RotationCoeffs holds the sin^2 expansion coefficients of a rotation
// profile, omega = A + B*sin^2(lat) + C*sin^4(lat), in microradians
// per second.
type RotationCoeffs struct {
	A float64 // Equatorial rate.
	B float64 // sin^2 term.
	C float64 // sin^4 term.
}

// StandardRotationCoeffs contains the published coefficient sets (urad/s).
// Reference: Howard & Harvey, Solar Physics 12 (1970); Snodgrass & Ulrich,
// ApJ 351 (1990).
var StandardRotationCoeffs = map[Profile]RotationCoeffs{
	ProfileHoward:    {A: 2.894, B: -0.428, C: -0.370},
	ProfileSnodgrass: {A: 2.851, B: -0.343, C: -0.474},
}

// ParseProfile maps a profile name to its Profile value. Matching is
// case-insensitive; the empty string selects the howard default.
func ParseProfile(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "howard":
		return ProfileHoward, nil
	case "snodgrass":
		return ProfileSnodgrass, nil
	case "allen":
		return ProfileAllen, nil
	}
	return 0, fmt.Errorf("%w: %q (expected howard, snodgrass or allen)", ErrInvalidProfile, name)
}

// String returns the catalog name of the profile.
func (p Profile) String() string {
	switch p {
	case ProfileHoward:
		return "howard"
	case ProfileSnodgrass:
		return "snodgrass"
	case ProfileAllen:
		return "allen"
	}
	return fmt.Sprintf("Profile(%d)", int(p))
}

// ParseFrame maps a frame name to its Frame value. Matching is
// case-insensitive; the empty string selects the sidereal default.
func ParseFrame(name string) (Frame, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sidereal":
		return FrameSidereal, nil
	case "synodic":
		return FrameSynodic, nil
	}
	return 0, fmt.Errorf("%w: %q (expected sidereal or synodic)", ErrInvalidFrame, name)
}

// String returns the name of the frame.
func (f Frame) String() string {
	switch f {
	case FrameSidereal:
		return "sidereal"
	case FrameSynodic:
		return "synodic"
	}
	return fmt.Sprintf("Frame(%d)", int(f))
}

// RotationModel evaluates differential rotation. The zero value uses the
// built-in published coefficients; NewRotationModel additionally applies
// the override file named by ROTATION_COEFFS_PATH when present.
type RotationModel struct {
	coeffs map[Profile]RotationCoeffs
}

// NewRotationModel creates a rotation model with any configured
// coefficient overrides applied.
func NewRotationModel() *RotationModel {
	m := &RotationModel{}
	if set, err := LoadRotationCoeffSetFromEnv(); err == nil {
		m.coeffs = set.ProfileCoeffs()
	}
	return m
}

func (m *RotationModel) coeffsFor(p Profile) (RotationCoeffs, bool) {
	if m.coeffs != nil {
		if c, ok := m.coeffs[p]; ok {
			return c, true
		}
	}
	c, ok := StandardRotationCoeffs[p]
	return c, ok
}

// DiffRot returns the degrees a feature at the given heliographic
// latitude rotates over the duration, rounded to 4 decimal places.
// Negative durations rotate backwards.
func (m *RotationModel) DiffRot(duration time.Duration, latitudeDeg float64, profile Profile, frame Frame) (float64, error) {
	if frame != FrameSidereal && frame != FrameSynodic {
		return 0, fmt.Errorf("%w: %d", ErrInvalidFrame, int(frame))
	}

	days := duration.Seconds() / 86400.0
	sin2 := math.Pow(math.Sin(Deg2Rad(latitudeDeg)), 2)

	var rotDeg float64
	switch profile {
	case ProfileAllen:
		rotDeg = days * (14.44 - 3.0*sin2)
	case ProfileHoward, ProfileSnodgrass:
		c, ok := m.coeffsFor(profile)
		if !ok {
			return 0, fmt.Errorf("%w: %d", ErrInvalidProfile, int(profile))
		}
		// Coefficients are urad/s; accumulate over the window and
		// convert once.
		rotDeg = Rad2Deg((c.A + c.B*sin2 + c.C*sin2*sin2) * 1e-6 * (days * 86400.0))
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidProfile, int(profile))
	}

	if frame == FrameSynodic {
		rotDeg -= SynodicOffsetDegPerDay * days
	}
	return RoundToDecimal(rotDeg, 4), nil
}

// DiffRotEach applies DiffRot element-wise over a latitude series. The
// result always has the same length as the input.
func (m *RotationModel) DiffRotEach(duration time.Duration, latitudesDeg []float64, profile Profile, frame Frame) ([]float64, error) {
	out := make([]float64, len(latitudesDeg))
	for i, lat := range latitudesDeg {
		rot, err := m.DiffRot(duration, lat, profile, frame)
		if err != nil {
			return nil, err
		}
		out[i] = rot
	}
	return out, nil
}

// RoundToDecimal rounds a value to the given number of decimal places,
// halves away from zero.
func RoundToDecimal(val float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Trunc(val*shift+math.Copysign(0.5, val)) / shift
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
