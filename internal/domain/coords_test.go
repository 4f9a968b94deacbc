package domain

import (
	"errors"
	"math"
	"testing"
)

// Geometry of the 2013-03-27 reference instant, used across the
// conversion tests.
const (
	testB0   = -6.787149847201393
	testRsun = 961.7505204554918
)

// TestDiskToHeliographic_DiskCentre verifies the disk centre maps to
// (B0, l0).
func TestDiskToHeliographic_DiskCentre(t *testing.T) {
	for _, b0 := range []float64{testB0, 0, 5.2} {
		for _, l0 := range []float64{0, 30} {
			lat, lon, err := DiskToHeliographic(0, 0, b0, l0, testRsun)
			if err != nil {
				t.Fatalf("DiskToHeliographic(0,0): %v", err)
			}
			if math.Abs(lat-b0) > 1e-9 {
				t.Errorf("b0 %.3f: centre latitude %.9f != %.9f", b0, lat, b0)
			}
			if math.Abs(lon-l0) > 1e-9 {
				t.Errorf("l0 %.3f: centre longitude %.9f != %.9f", l0, lon, l0)
			}
		}
	}
}

// TestDiskToHeliographic_KnownPoints checks precomputed conversions.
func TestDiskToHeliographic_KnownPoints(t *testing.T) {
	tests := []struct {
		x, y     float64
		lat, lon float64
	}{
		{200, 300, 11.547672481922117, 12.254264576954531},
		{-550, 100, 0.4057321762568983, -34.882002102836246},
		{700, -300, -22.452534636597278, 51.95600749012628},
	}

	for _, tt := range tests {
		lat, lon, err := DiskToHeliographic(tt.x, tt.y, testB0, 0, testRsun)
		if err != nil {
			t.Fatalf("DiskToHeliographic(%.0f,%.0f): %v", tt.x, tt.y, err)
		}
		if math.Abs(lat-tt.lat) > 1e-9 {
			t.Errorf("(%.0f,%.0f) latitude: expected %.9f, got %.9f", tt.x, tt.y, tt.lat, lat)
		}
		if math.Abs(lon-tt.lon) > 1e-9 {
			t.Errorf("(%.0f,%.0f) longitude: expected %.9f, got %.9f", tt.x, tt.y, tt.lon, lon)
		}
	}
}

// TestDiskToHeliographic_OffDisk rejects positions beyond the limb.
func TestDiskToHeliographic_OffDisk(t *testing.T) {
	offDisk := [][2]float64{
		{960, 100},
		{0, 962},
		{-700, -700},
	}
	for _, p := range offDisk {
		if _, _, err := DiskToHeliographic(p[0], p[1], testB0, 0, testRsun); !errors.Is(err, ErrOffDisk) {
			t.Errorf("(%.0f,%.0f): expected ErrOffDisk, got %v", p[0], p[1], err)
		}
	}

	// A point on the limb itself is still on the disk.
	if _, _, err := DiskToHeliographic(testRsun, 0, testB0, 0, testRsun); err != nil {
		t.Errorf("limb point: unexpected error %v", err)
	}
}

// TestHeliographicToDisk_RoundTrip converts forth and back.
func TestHeliographicToDisk_RoundTrip(t *testing.T) {
	points := [][2]float64{
		{200, 300},
		{-550, 100},
		{700, -300},
		{0, 0},
	}

	for _, p := range points {
		lat, lon, err := DiskToHeliographic(p[0], p[1], testB0, 0, testRsun)
		if err != nil {
			t.Fatalf("DiskToHeliographic(%.0f,%.0f): %v", p[0], p[1], err)
		}
		x, y, visible := HeliographicToDisk(lat, lon, testB0, 0, testRsun)
		if !visible {
			t.Errorf("(%.0f,%.0f): round trip reports far side", p[0], p[1])
		}
		if math.Abs(x-p[0]) > 1e-8 || math.Abs(y-p[1]) > 1e-8 {
			t.Errorf("(%.0f,%.0f): round trip gave (%.9f,%.9f)", p[0], p[1], x, y)
		}
	}
}

// TestHeliographicToDisk_FarSide flags points behind the limb.
func TestHeliographicToDisk_FarSide(t *testing.T) {
	if _, _, visible := HeliographicToDisk(10, 120, testB0, 0, testRsun); visible {
		t.Error("longitude 120 should be on the far side")
	}
	if _, _, visible := HeliographicToDisk(-5, -150, testB0, 0, testRsun); visible {
		t.Error("longitude -150 should be on the far side")
	}

	// The west limb on the equator with B0=0 is right on the terminator.
	x, y, visible := HeliographicToDisk(0, 90, 0, 0, 960)
	if !visible {
		t.Error("equatorial west limb should still be visible")
	}
	if math.Abs(x-960) > 1e-6 || math.Abs(y) > 1e-6 {
		t.Errorf("west limb: expected (960, 0), got (%.6f, %.6f)", x, y)
	}
}
