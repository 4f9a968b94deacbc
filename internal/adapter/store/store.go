package store

import (
	"errors"

	"go.ngs.io/helio-api/internal/domain"
)

// ErrRateOutOfRange reports a measured-rate lookup outside the grid coverage.
var ErrRateOutOfRange = errors.New("year or latitude outside the measured grid")

// ProfileCatalog is the interface for loading rotation profile coefficient sets
type ProfileCatalog interface {
	// Load returns all catalogued profiles
	Load() ([]domain.RotationCoeff, error)
}

// MeasuredRateSource is the interface for measured rotation rate lookups
type MeasuredRateSource interface {
	// RateAt returns the measured sidereal rotation rate in degrees per day
	// for a given year and heliographic latitude
	RateAt(year, latDeg float64) (float64, error)
}
