// Package timeutil parses API timestamps and converts instants to
// Julian Day Numbers.
package timeutil

import (
	"fmt"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// timeLayouts lists the accepted timestamp layouts, tried in order.
// Layouts without a zone are interpreted as UTC.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a timestamp in one of the accepted layouts.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (use RFC3339, 2006-01-02T15:04:05, 2006-01-02 15:04:05 or 2006-01-02)", s)
}

// JulianDay returns the Julian Day Number of an instant.
func JulianDay(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

// TimeFromJulianDay returns the UTC instant of a Julian Day Number.
func TimeFromJulianDay(jd float64) time.Time {
	return julian.JDToTime(jd).UTC()
}
