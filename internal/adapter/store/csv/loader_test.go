package csv

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoad_ValidCatalog checks parsing of a well-formed catalog file
func TestLoad_ValidCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.csv")
	content := "profile,a_urad_s,b_urad_s,c_urad_s,source\n" +
		"howard, 2.894, -0.428, -0.370, Howard & Harvey (1970)\n" +
		"snodgrass, 2.851, -0.343, -0.474, Snodgrass & Ulrich (1990)\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	s := NewProfileStore(path)
	profiles, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(profiles))
	}
	if profiles[0].Profile != "howard" || profiles[0].A != 2.894 || profiles[0].B != -0.428 || profiles[0].C != -0.370 {
		t.Errorf("unexpected first record: %+v", profiles[0])
	}
	if profiles[0].Source != "Howard & Harvey (1970)" {
		t.Errorf("Source = %q, want attribution preserved", profiles[0].Source)
	}
	if profiles[1].Profile != "snodgrass" {
		t.Errorf("second record profile = %q, want snodgrass", profiles[1].Profile)
	}
}

// TestLoad_RejectsMalformedCatalogs checks header and record validation
func TestLoad_RejectsMalformedCatalogs(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{
			name:    "wrong header",
			content: "name,a,b,c,ref\nhoward,2.894,-0.428,-0.370,x\n",
		},
		{
			name:    "missing column",
			content: "profile,a_urad_s,b_urad_s,c_urad_s\nhoward,2.894,-0.428,-0.370\n",
		},
		{
			name:    "non-numeric coefficient",
			content: "profile,a_urad_s,b_urad_s,c_urad_s,source\nhoward,fast,-0.428,-0.370,x\n",
		},
		{
			name:    "empty profile name",
			content: "profile,a_urad_s,b_urad_s,c_urad_s,source\n ,2.894,-0.428,-0.370,x\n",
		},
		{
			name:    "no records",
			content: "profile,a_urad_s,b_urad_s,c_urad_s,source\n",
		},
	}

	for _, tc := range cases {
		path := filepath.Join(t.TempDir(), "profiles.csv")
		if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
			t.Fatalf("%s: write catalog: %v", tc.name, err)
		}
		if _, err := NewProfileStore(path).Load(); err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
		}
	}
}

// TestLoad_MissingFile checks the open error path
func TestLoad_MissingFile(t *testing.T) {
	s := NewProfileStore(filepath.Join(t.TempDir(), "absent.csv"))
	if _, err := s.Load(); err == nil {
		t.Fatal("expected error for missing catalog, got nil")
	}
}
