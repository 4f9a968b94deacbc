package domain

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDiffRot_KnownRotations checks every profile and frame against
// precomputed values.
func TestDiffRot_KnownRotations(t *testing.T) {
	model := &RotationModel{}

	tests := []struct {
		duration time.Duration
		lat      float64
		profile  Profile
		frame    Frame
		expected float64
	}{
		{24 * time.Hour, 0, ProfileAllen, FrameSidereal, 14.4400},
		{24 * time.Hour, 0, ProfileHoward, FrameSidereal, 14.3263},
		{24 * time.Hour, 0, ProfileSnodgrass, FrameSidereal, 14.1135},

		{336 * time.Hour, 0, ProfileHoward, FrameSidereal, 200.5686},
		{336 * time.Hour, 30, ProfileHoward, FrameSidereal, 191.5503},
		{336 * time.Hour, 60, ProfileHoward, FrameSidereal, 163.8976},
		{336 * time.Hour, 90, ProfileHoward, FrameSidereal, 145.2632},
		{336 * time.Hour, 0, ProfileSnodgrass, FrameSidereal, 197.5885},
		{336 * time.Hour, 30, ProfileSnodgrass, FrameSidereal, 189.5924},
		{336 * time.Hour, 60, ProfileSnodgrass, FrameSidereal, 161.2813},
		{336 * time.Hour, 30, ProfileAllen, FrameSidereal, 191.6600},

		{336 * time.Hour, 0, ProfileHoward, FrameSynodic, 186.7702},
		{336 * time.Hour, 30, ProfileHoward, FrameSynodic, 177.7519},
		{180 * time.Hour, 45, ProfileSnodgrass, FrameSynodic, 87.6920},
		{240 * time.Hour, 15.5, ProfileAllen, FrameSynodic, 132.4015},

		{48 * time.Hour, 10, ProfileHoward, FrameSidereal, 28.5215},
		{-72 * time.Hour, 20, ProfileHoward, FrameSidereal, -42.1603},

		// One Carrington synodic period for an equatorial feature.
		{2356585920 * time.Millisecond, 0, ProfileHoward, FrameSynodic, 363.8724},
	}

	for _, tt := range tests {
		got, err := model.DiffRot(tt.duration, tt.lat, tt.profile, tt.frame)
		if err != nil {
			t.Fatalf("DiffRot(%v, %.1f, %s, %s): %v", tt.duration, tt.lat, tt.profile, tt.frame, err)
		}
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("DiffRot(%v, %.1f, %s, %s): expected %.4f, got %.4f",
				tt.duration, tt.lat, tt.profile, tt.frame, tt.expected, got)
		}
	}
}

// TestDiffRot_ZeroDuration verifies a zero window rotates nothing for
// any profile, frame and latitude.
func TestDiffRot_ZeroDuration(t *testing.T) {
	model := &RotationModel{}

	for _, profile := range []Profile{ProfileHoward, ProfileSnodgrass, ProfileAllen} {
		for _, frame := range []Frame{FrameSidereal, FrameSynodic} {
			for _, lat := range []float64{-75, -30, 0, 25, 90} {
				got, err := model.DiffRot(0, lat, profile, frame)
				if err != nil {
					t.Fatalf("DiffRot(0, %.1f, %s, %s): %v", lat, profile, frame, err)
				}
				if got != 0 {
					t.Errorf("DiffRot(0, %.1f, %s, %s): expected 0, got %.4f", lat, profile, frame, got)
				}
			}
		}
	}
}

// TestDiffRot_LatitudeSymmetry verifies hemispheres rotate alike.
func TestDiffRot_LatitudeSymmetry(t *testing.T) {
	model := &RotationModel{}
	duration := 336 * time.Hour

	for _, profile := range []Profile{ProfileHoward, ProfileSnodgrass, ProfileAllen} {
		for _, lat := range []float64{5, 17.3, 30, 45, 62.8, 90} {
			north, err := model.DiffRot(duration, lat, profile, FrameSidereal)
			if err != nil {
				t.Fatalf("DiffRot north: %v", err)
			}
			south, err := model.DiffRot(duration, -lat, profile, FrameSidereal)
			if err != nil {
				t.Fatalf("DiffRot south: %v", err)
			}
			if north != south {
				t.Errorf("%s at %.1f: north %.4f != south %.4f", profile, lat, north, south)
			}
		}
	}
}

// TestDiffRot_SynodicOffset verifies the synodic value is the sidereal
// value less the mean Earth drift, to rounding tolerance.
func TestDiffRot_SynodicOffset(t *testing.T) {
	model := &RotationModel{}

	tests := []struct {
		duration time.Duration
		days     float64
		lat      float64
	}{
		{24 * time.Hour, 1, 0},
		{336 * time.Hour, 14, 30},
		{180 * time.Hour, 7.5, 55},
		{-48 * time.Hour, -2, 10},
	}

	for _, profile := range []Profile{ProfileHoward, ProfileSnodgrass, ProfileAllen} {
		for _, tt := range tests {
			sidereal, err := model.DiffRot(tt.duration, tt.lat, profile, FrameSidereal)
			if err != nil {
				t.Fatalf("sidereal: %v", err)
			}
			synodic, err := model.DiffRot(tt.duration, tt.lat, profile, FrameSynodic)
			if err != nil {
				t.Fatalf("synodic: %v", err)
			}
			if diff := math.Abs(synodic - (sidereal - SynodicOffsetDegPerDay*tt.days)); diff > 1e-4 {
				t.Errorf("%s %.1fd at %.1f: synodic %.4f vs sidereal %.4f, offset error %.6f",
					profile, tt.days, tt.lat, synodic, sidereal, diff)
			}
		}
	}
}

// TestDiffRot_InvalidProfileAndFrame checks the sentinel errors.
func TestDiffRot_InvalidProfileAndFrame(t *testing.T) {
	model := &RotationModel{}

	if _, err := model.DiffRot(24*time.Hour, 0, Profile(99), FrameSidereal); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
	if _, err := model.DiffRot(24*time.Hour, 0, ProfileHoward, Frame(99)); !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("expected ErrInvalidFrame, got %v", err)
	}
}

// TestParseProfile covers names, defaults and rejection.
func TestParseProfile(t *testing.T) {
	valid := []struct {
		name     string
		expected Profile
	}{
		{"howard", ProfileHoward},
		{"Howard", ProfileHoward},
		{"SNODGRASS", ProfileSnodgrass},
		{"allen", ProfileAllen},
		{"", ProfileHoward},
		{" allen ", ProfileAllen},
	}
	for _, tt := range valid {
		got, err := ParseProfile(tt.name)
		if err != nil {
			t.Fatalf("ParseProfile(%q): %v", tt.name, err)
		}
		if got != tt.expected {
			t.Errorf("ParseProfile(%q): expected %s, got %s", tt.name, tt.expected, got)
		}
	}

	for _, name := range []string{"carrington", "howard2", "fast"} {
		if _, err := ParseProfile(name); !errors.Is(err, ErrInvalidProfile) {
			t.Errorf("ParseProfile(%q): expected ErrInvalidProfile, got %v", name, err)
		}
	}
}

// TestParseFrame covers names, defaults and rejection.
func TestParseFrame(t *testing.T) {
	valid := []struct {
		name     string
		expected Frame
	}{
		{"sidereal", FrameSidereal},
		{"Synodic", FrameSynodic},
		{"", FrameSidereal},
	}
	for _, tt := range valid {
		got, err := ParseFrame(tt.name)
		if err != nil {
			t.Fatalf("ParseFrame(%q): %v", tt.name, err)
		}
		if got != tt.expected {
			t.Errorf("ParseFrame(%q): expected %s, got %s", tt.name, tt.expected, got)
		}
	}

	if _, err := ParseFrame("carrington"); !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("ParseFrame(carrington): expected ErrInvalidFrame, got %v", err)
	}
}

// TestDiffRotEach_PreservesShape verifies the element-wise form keeps
// input length and matches scalar results.
func TestDiffRotEach_PreservesShape(t *testing.T) {
	model := &RotationModel{}
	duration := 336 * time.Hour
	lats := []float64{-60, -30, 0, 30, 60}

	out, err := model.DiffRotEach(duration, lats, ProfileHoward, FrameSidereal)
	if err != nil {
		t.Fatalf("DiffRotEach: %v", err)
	}
	if len(out) != len(lats) {
		t.Fatalf("expected %d results, got %d", len(lats), len(out))
	}

	for i, lat := range lats {
		scalar, err := model.DiffRot(duration, lat, ProfileHoward, FrameSidereal)
		if err != nil {
			t.Fatalf("DiffRot: %v", err)
		}
		if out[i] != scalar {
			t.Errorf("lat %.1f: element %.4f != scalar %.4f", lat, out[i], scalar)
		}
	}

	empty, err := model.DiffRotEach(duration, nil, ProfileHoward, FrameSidereal)
	if err != nil {
		t.Fatalf("DiffRotEach(nil): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty result for empty input, got %d values", len(empty))
	}
}

// TestRoundToDecimal tests rounding away from zero at the half.
func TestRoundToDecimal(t *testing.T) {
	tests := []struct {
		val      float64
		places   int
		expected float64
	}{
		{3.14159, 2, 3.14},
		{-42.16025337, 4, -42.1603},
		{14.44, 4, 14.44},
		{2.5, 0, 3},
		{-2.5, 0, -3},
		{0, 4, 0},
	}

	for _, tt := range tests {
		if got := RoundToDecimal(tt.val, tt.places); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("RoundToDecimal(%v, %d): expected %v, got %v", tt.val, tt.places, tt.expected, got)
		}
	}
}

// TestNewRotationModel_CoeffOverride loads replacement coefficients from
// a file and leaves unlisted profiles on the built-in values.
func TestNewRotationModel_CoeffOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rotation_coeffs.json")
	payload := `{"coeffs":[{"profile":"howard","a_urad_s":2.9,"b_urad_s":-0.4,"c_urad_s":-0.35,"source":"test fit"}]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write coeffs: %v", err)
	}
	t.Setenv("ROTATION_COEFFS_PATH", path)

	model := NewRotationModel()

	got, err := model.DiffRot(24*time.Hour, 0, ProfileHoward, FrameSidereal)
	if err != nil {
		t.Fatalf("DiffRot howard: %v", err)
	}
	if math.Abs(got-14.3560) > 1e-9 {
		t.Errorf("override equatorial day: expected 14.3560, got %.4f", got)
	}

	got, err = model.DiffRot(48*time.Hour, 30, ProfileHoward, FrameSidereal)
	if err != nil {
		t.Fatalf("DiffRot howard 30: %v", err)
	}
	if math.Abs(got-27.5054) > 1e-9 {
		t.Errorf("override 2d at 30: expected 27.5054, got %.4f", got)
	}

	// Snodgrass keeps the published values.
	got, err = model.DiffRot(24*time.Hour, 0, ProfileSnodgrass, FrameSidereal)
	if err != nil {
		t.Fatalf("DiffRot snodgrass: %v", err)
	}
	if math.Abs(got-14.1135) > 1e-9 {
		t.Errorf("snodgrass after override: expected 14.1135, got %.4f", got)
	}
}

// TestRotationCoeffSet_ProfileCoeffs checks the mapping skips entries
// that cannot override anything.
func TestRotationCoeffSet_ProfileCoeffs(t *testing.T) {
	set := &RotationCoeffSet{Coeffs: []RotationCoeff{
		{Profile: "howard", A: 2.9, B: -0.4, C: -0.35},
		{Profile: "allen", A: 1, B: 2, C: 3},
		{Profile: "mystery", A: 9},
		{Profile: ""},
	}}

	m := set.ProfileCoeffs()
	if len(m) != 1 {
		t.Fatalf("expected exactly one usable override, got %d", len(m))
	}
	if c, ok := m[ProfileHoward]; !ok || c.A != 2.9 || c.B != -0.4 || c.C != -0.35 {
		t.Errorf("howard override not mapped: %+v", m)
	}
}
