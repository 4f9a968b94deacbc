package domain

import (
	"errors"
	"math"
)

// ErrOffDisk reports a position outside the visible solar disk.
var ErrOffDisk = errors.New("position is off the solar disk")

// DiskToHeliographic converts arcsecond offsets from disk centre (west
// and north positive) to Stonyhurst heliographic coordinates on the
// solar surface. b0Deg is the heliographic latitude of the disk centre,
// l0Deg the longitude of the central meridian (pass 0 for
// central-meridian-relative longitudes) and rsunArcsec the apparent
// semi-diameter.
func DiskToHeliographic(xArcsec, yArcsec, b0Deg, l0Deg, rsunArcsec float64) (float64, float64, error) {
	xhat := xArcsec / rsunArcsec
	yhat := yArcsec / rsunArcsec
	rho2 := xhat*xhat + yhat*yhat
	if rho2 > 1.0 {
		return 0, 0, ErrOffDisk
	}
	zhat := math.Sqrt(1.0 - rho2)

	sinB0 := math.Sin(Deg2Rad(b0Deg))
	cosB0 := math.Cos(Deg2Rad(b0Deg))

	latDeg := Rad2Deg(math.Asin(yhat*cosB0 + zhat*sinB0))
	lonDeg := l0Deg + Rad2Deg(math.Atan2(xhat, zhat*cosB0-yhat*sinB0))
	return latDeg, lonDeg, nil
}

// HeliographicToDisk projects heliographic coordinates back to
// arcsecond offsets from disk centre. The returned flag is false when
// the point lies on the far side of the Sun; the offsets are still the
// projection onto the disk plane.
func HeliographicToDisk(latDeg, lonDeg, b0Deg, l0Deg, rsunArcsec float64) (float64, float64, bool) {
	lat := Deg2Rad(latDeg)
	dlon := Deg2Rad(lonDeg - l0Deg)
	sinB0 := math.Sin(Deg2Rad(b0Deg))
	cosB0 := math.Cos(Deg2Rad(b0Deg))

	x := rsunArcsec * math.Cos(lat) * math.Sin(dlon)
	y := rsunArcsec * (math.Sin(lat)*cosB0 - math.Cos(lat)*math.Cos(dlon)*sinB0)
	visible := math.Sin(lat)*sinB0+math.Cos(lat)*math.Cos(dlon)*cosB0 >= 0
	return x, y, visible
}
