package usecase

import (
	"math"
	"strings"
	"testing"
)

// TestRotateExecute_ReferenceWindow rotates a set of helioprojective points
// across a two-day window and checks them against reference values
func TestRotateExecute_ReferenceWindow(t *testing.T) {
	interval := 172800.0
	req := RotateRequest{
		X:               []float64{200, 0, -550, 960, 800, 900},
		Y:               []float64{300, 0, 100, 100, 200, 0},
		Start:           "2013-03-27",
		IntervalSeconds: &interval,
	}

	uc := NewRotateUseCase(nil)
	resp, err := uc.Execute(req)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if resp.Start != "2013-03-27T00:00:00Z" {
		t.Errorf("Start = %s, want 2013-03-27T00:00:00Z", resp.Start)
	}
	if resp.End != "2013-03-29T00:00:00Z" {
		t.Errorf("End = %s, want 2013-03-29T00:00:00Z", resp.End)
	}
	if resp.Days != 2.0 {
		t.Errorf("Days = %v, want 2", resp.Days)
	}
	if resp.Profile != "howard" {
		t.Errorf("Profile = %s, want howard", resp.Profile)
	}
	if resp.Frame != "synodic" {
		t.Errorf("Frame = %s, want synodic", resp.Frame)
	}

	want := []RotatePoint{
		{XArcsec: 589.5888, YArcsec: 276.7167},
		{XArcsec: 427.6918, YArcsec: -13.3435},
		{XArcsec: -137.1049, YArcsec: 117.6712},
		{XArcsec: -9999, YArcsec: -9999, OffDisk: true},
		{XArcsec: 945.4076, YArcsec: 151.0190},
		{XArcsec: -9999, YArcsec: -9999, OffDisk: true},
	}
	if len(resp.Points) != len(want) {
		t.Fatalf("got %d points, want %d", len(resp.Points), len(want))
	}
	for i, w := range want {
		got := resp.Points[i]
		if math.Abs(got.XArcsec-w.XArcsec) > 1e-9 || math.Abs(got.YArcsec-w.YArcsec) > 1e-9 {
			t.Errorf("point %d = (%.4f, %.4f), want (%.4f, %.4f)",
				i, got.XArcsec, got.YArcsec, w.XArcsec, w.YArcsec)
		}
		if got.OffDisk != w.OffDisk {
			t.Errorf("point %d off_disk = %v, want %v", i, got.OffDisk, w.OffDisk)
		}
	}
}

// TestRotateExecute_WindowResolution checks that an explicit end resolves the
// same window as the equivalent interval, and that the interval wins when
// both are given
func TestRotateExecute_WindowResolution(t *testing.T) {
	uc := NewRotateUseCase(nil)

	end := "2013-03-29"
	byEnd, err := uc.Execute(RotateRequest{
		X: []float64{200}, Y: []float64{300},
		Start: "2013-03-27", End: &end,
	})
	if err != nil {
		t.Fatalf("Execute with end failed: %v", err)
	}
	if byEnd.End != "2013-03-29T00:00:00Z" || byEnd.Days != 2.0 {
		t.Errorf("End = %s Days = %v, want 2013-03-29T00:00:00Z and 2", byEnd.End, byEnd.Days)
	}

	interval := 172800.0
	otherEnd := "2013-04-05"
	byInterval, err := uc.Execute(RotateRequest{
		X: []float64{200}, Y: []float64{300},
		Start: "2013-03-27", End: &otherEnd, IntervalSeconds: &interval,
	})
	if err != nil {
		t.Fatalf("Execute with end and interval failed: %v", err)
	}
	if byInterval.End != "2013-03-29T00:00:00Z" {
		t.Errorf("End = %s, want interval to win over end", byInterval.End)
	}

	if byEnd.Points[0] != byInterval.Points[0] {
		t.Errorf("points differ between end and interval windows: %+v vs %+v",
			byEnd.Points[0], byInterval.Points[0])
	}
}

// TestRotateExecute_ValidationErrors checks the request guards
func TestRotateExecute_ValidationErrors(t *testing.T) {
	uc := NewRotateUseCase(nil)

	cases := []struct {
		name    string
		req     RotateRequest
		wantMsg string
	}{
		{
			name:    "mismatched shapes",
			req:     RotateRequest{X: []float64{1, 2}, Y: []float64{1}, Start: "2013-03-27"},
			wantMsg: "same shape",
		},
		{
			name:    "no points",
			req:     RotateRequest{Start: "2013-03-27"},
			wantMsg: "at least one co-ordinate pair",
		},
		{
			name:    "no start",
			req:     RotateRequest{X: []float64{1}, Y: []float64{1}},
			wantMsg: "'start' & 'end', or 'start' and 'interval'",
		},
		{
			name:    "bad start",
			req:     RotateRequest{X: []float64{1}, Y: []float64{1}, Start: "yesterday"},
			wantMsg: "unrecognized time",
		},
		{
			name:    "bad profile",
			req:     RotateRequest{X: []float64{1}, Y: []float64{1}, Start: "2013-03-27", Profile: "carrington"},
			wantMsg: "invalid rotation profile",
		},
		{
			name:    "bad frame",
			req:     RotateRequest{X: []float64{1}, Y: []float64{1}, Start: "2013-03-27", Frame: "tropical"},
			wantMsg: "invalid rotation frame",
		},
	}

	for _, tc := range cases {
		_, err := uc.Execute(tc.req)
		if err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.wantMsg) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err.Error(), tc.wantMsg)
		}
	}
}
