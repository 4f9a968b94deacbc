package domain

import "math"

// Epoch1900 is the Julian Day Number of the 1900 January 0.5 ephemeris
// epoch. The solar series in this package count days from this instant.
const Epoch1900 = 2415020.0

// EphemerisResult holds the apparent solar position for one instant.
type EphemerisResult struct {
	LongitudeDeg    float64 // True geometric longitude of date, in [0, 360).
	RADeg           float64 // Apparent right ascension, in [0, 360).
	DecDeg          float64 // Apparent declination.
	AppLongitudeDeg float64 // Apparent ecliptic longitude (aberration and nutation applied).
	ObliquityDeg    float64 // True obliquity of the ecliptic.
}

// SunPosJD computes the apparent solar position for a Julian Day Number.
func SunPosJD(jd float64) EphemerisResult {
	return SunPosDays(jd - Epoch1900)
}

// SunPosDays computes the apparent solar position for an instant given as
// days elapsed since Epoch1900, using the truncated Newcomb series.
// Good to a few arcseconds over 1900-2100.
func SunPosDays(dd float64) EphemerisResult {
	t := dd / 36525.0

	// Mean longitude, accumulated in arcseconds.
	l := (279.6966780 + math.Mod(36000.7689250*t, 360.0)) * 3600.0

	// Equation of centre.
	me := 358.4758440 + math.Mod(35999.049750*t, 360.0)
	l += (6910.10-17.20*t)*math.Sin(Deg2Rad(me)) + 72.30*math.Sin(Deg2Rad(2.0*me))

	// Venus perturbations.
	mv := 212.603219 + math.Mod(58517.8038750*t, 360.0)
	l += 4.80*math.Cos(Deg2Rad(299.10170+mv-me)) +
		5.50*math.Cos(Deg2Rad(148.31330+2.0*mv-2.0*me)) +
		2.50*math.Cos(Deg2Rad(315.94330+2.0*mv-3.0*me)) +
		1.60*math.Cos(Deg2Rad(345.25330+3.0*mv-4.0*me)) +
		1.00*math.Cos(Deg2Rad(318.150+3.0*mv-5.0*me))

	// Jupiter perturbations.
	mj := 225.3283280 + math.Mod(3034.69202390*t, 360.0)
	l += 7.20*math.Cos(Deg2Rad(179.53170-mj+me)) +
		2.60*math.Cos(Deg2Rad(263.21670-mj)) +
		2.70*math.Cos(Deg2Rad(87.14500-2.0*mj+2.0*me)) +
		1.60*math.Cos(Deg2Rad(109.49330-2.0*mj+me))

	// Lunar perturbation from the mean elongation of the Moon.
	d := 350.73768140 + math.Mod(445267.114220*t, 360.0)
	l += 6.50 * math.Sin(Deg2Rad(d))

	// Long-period inequality.
	l += 6.40 * math.Sin(Deg2Rad(231.190+20.20*t))

	// Reduce into [0, 1296000) arcsec. The added two turns keep the
	// operand positive for math.Mod at any representable date.
	l = math.Mod(l+2592000.0, 1296000.0)
	longMed := l / 3600.0

	// Aberration, then nutation in longitude from the lunar node.
	l -= 20.5
	omega := 259.1832750 - math.Mod(1934.1420080*t, 360.0)
	l -= 17.20 * math.Sin(Deg2Rad(omega))

	// True obliquity including the 9.2" nutation term.
	obliquity := 23.4522940 - 0.01301250*t + 9.20*math.Cos(Deg2Rad(omega))/3600.0

	appLong := l / 3600.0

	ra := Rad2Deg(math.Atan2(
		math.Sin(Deg2Rad(appLong))*math.Cos(Deg2Rad(obliquity)),
		math.Cos(Deg2Rad(appLong)),
	))
	if ra < 0 {
		ra += 360.0
	}
	dec := Rad2Deg(math.Asin(math.Sin(Deg2Rad(appLong)) * math.Sin(Deg2Rad(obliquity))))

	return EphemerisResult{
		LongitudeDeg:    longMed,
		RADeg:           ra,
		DecDeg:          dec,
		AppLongitudeDeg: appLong,
		ObliquityDeg:    obliquity,
	}
}
