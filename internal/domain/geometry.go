package domain

import (
	"errors"
	"math"
)

// ErrVantageUnsupported reports a disk-geometry request for a vantage
// point other than Earth.
var ErrVantageUnsupported = errors.New("solar P, B0 and semi-diameter are only supported for an Earth vantage point")

// Apparent solar semi-diameter at a distance of one astronomical unit,
// in degrees.
const semiDiameterOneAUDeg = 0.2665685

// DiskGeometry describes the orientation and apparent size of the solar
// disk for an Earth-based observer.
type DiskGeometry struct {
	PDeg               float64 // Position angle of the rotation axis, positive east from north.
	B0Deg              float64 // Heliographic latitude of the disk centre.
	SemiDiameterArcsec float64 // Apparent semi-diameter.
	RadiusVectorAU     float64 // Sun-Earth distance.
}

// DiskGeometryJD computes the solar disk orientation for a Julian Day
// Number. P combines the tilt of the ecliptic with the 7.25 degree tilt
// of the solar equator; B0 follows from the longitude of the ascending
// node of the solar equator on the ecliptic.
func DiskGeometryJD(jd float64) DiskGeometry {
	de := jd - Epoch1900
	pos := SunPosDays(de)

	// Longitude corrected for aberration, measured from the node of
	// the solar equator (node at 73.666666 degrees for 1850, advancing
	// 50.25 arcsec per year).
	lambda := pos.LongitudeDeg - 20.5/3600.0
	node := 73.666666 + (50.25/3600.0)*(de/365.25+50.0)
	arg := lambda - node

	p := Rad2Deg(math.Atan(-math.Tan(Deg2Rad(pos.ObliquityDeg))*math.Cos(Deg2Rad(pos.AppLongitudeDeg)))) +
		Rad2Deg(math.Atan(-0.12722*math.Cos(Deg2Rad(arg))))

	b0 := Rad2Deg(math.Asin(0.12620 * math.Sin(Deg2Rad(arg))))

	// Radius vector from the mean anomalies of Venus, Earth, the Moon
	// and Jupiter.
	t := de / 36525.0
	mv := 212.60 + math.Mod(58517.80*t, 360.0)
	me := 358.476 + math.Mod(35999.0499*t, 360.0)
	mm := 319.50 + math.Mod(19139.86*t, 360.0)
	mj := 225.30 + math.Mod(3034.69*t, 360.0)

	r := 1.000141 -
		(0.016748-0.0000418*t)*math.Cos(Deg2Rad(me)) -
		0.000140*math.Cos(Deg2Rad(2.0*me)) +
		0.000016*math.Cos(Deg2Rad(58.30+2.0*mv-2.0*me)) +
		0.000005*math.Cos(Deg2Rad(209.10+mv-me)) +
		0.000005*math.Cos(Deg2Rad(253.80-2.0*mm+2.0*me)) +
		0.000016*math.Cos(Deg2Rad(89.50-mj+me)) +
		0.000009*math.Cos(Deg2Rad(357.10-2.0*mj+2.0*me))

	return DiskGeometry{
		PDeg:               p,
		B0Deg:              b0,
		SemiDiameterArcsec: semiDiameterOneAUDeg * 3600.0 / r,
		RadiusVectorAU:     r,
	}
}
