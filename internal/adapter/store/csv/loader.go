// Package csv provides CSV-based rotation profile catalogs.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.ngs.io/helio-api/internal/domain"
)

// ProfileStore provides access to rotation profile coefficient data.
type ProfileStore struct {
	path string
}

// NewProfileStore creates a new CSV-backed profile catalog.
func NewProfileStore(path string) *ProfileStore {
	return &ProfileStore{
		path: path,
	}
}

// Load reads all profile records from the catalog file.
func (s *ProfileStore) Load() ([]domain.RotationCoeff, error) {
	//nolint:gosec // G304: File path comes from service configuration.
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile catalog %s: %w", s.path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	// Read header.
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	// Validate header.
	expectedHeaders := []string{"profile", "a_urad_s", "b_urad_s", "c_urad_s", "source"}
	if len(header) != len(expectedHeaders) {
		return nil, fmt.Errorf("invalid catalog header: expected %v, got %v", expectedHeaders, header)
	}

	for i, h := range header {
		if h != expectedHeaders[i] {
			return nil, fmt.Errorf("invalid catalog header: expected column %d to be %s, got %s", i, expectedHeaders[i], h)
		}
	}

	// Read data rows.
	profiles := make([]domain.RotationCoeff, 0)

	for {
		record, err := reader.Read()
		if err != nil {
			// EOF is expected.
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("failed to read catalog record: %w", err)
		}

		if len(record) != 5 {
			return nil, fmt.Errorf("invalid catalog record: expected 5 columns, got %d", len(record))
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			return nil, fmt.Errorf("invalid catalog record: empty profile name")
		}

		a, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid a_urad_s for profile %s: %w", name, err)
		}
		b, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid b_urad_s for profile %s: %w", name, err)
		}
		c, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid c_urad_s for profile %s: %w", name, err)
		}

		profiles = append(profiles, domain.RotationCoeff{
			Profile: name,
			A:       a,
			B:       b,
			C:       c,
			Source:  strings.TrimSpace(record[4]),
		})
	}

	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profiles found in catalog %s", s.path)
	}

	return profiles, nil
}
