// Package srs parses NOAA SWPC Solar Region Summary reports.
package srs

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Region represents one numbered sunspot group from the report's
// "Regions with Sunspots" section.
type Region struct {
	Number           int
	LatDeg           float64 // North positive.
	CMDDeg           float64 // Central meridian distance, west positive.
	CarringtonLonDeg float64
	AreaMH           int    // Corrected area in millionths of the hemisphere.
	Class            string // Modified Zurich classification.
	SpotCount        int
	MagType          string
	Issued           time.Time // Issue time of the report the region came from.
}

// ParseIssued parses an ":Issued:" header line, e.g.
// ":Issued: 2024 Apr 08 0030 UTC".
func ParseIssued(line string) (time.Time, error) {
	s := strings.TrimSpace(strings.TrimPrefix(line, ":Issued:"))
	s = strings.TrimSuffix(s, "UTC")
	s = strings.TrimSpace(s)
	t, err := time.Parse("2006 Jan 02 1504", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid issued stamp '%s': %w", s, err)
	}
	return t, nil
}

// ParseLocation decodes a compact heliographic location token such as
// "N09W85" or "S18E43" into latitude and central meridian distance.
func ParseLocation(token string) (latDeg, cmdDeg float64, err error) {
	token = strings.ToUpper(strings.TrimSpace(token))
	if len(token) < 4 {
		return 0, 0, fmt.Errorf("location token too short: '%s'", token)
	}

	var latSign, cmdSign float64
	switch token[0] {
	case 'N':
		latSign = 1
	case 'S':
		latSign = -1
	default:
		return 0, 0, fmt.Errorf("invalid latitude hemisphere in '%s'", token)
	}

	split := strings.IndexAny(token[1:], "EW")
	if split < 0 {
		return 0, 0, fmt.Errorf("missing E/W separator in '%s'", token)
	}
	split++
	if token[split] == 'E' {
		cmdSign = -1
	} else {
		cmdSign = 1
	}

	latVal, err := strconv.Atoi(token[1:split])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude in '%s': %w", token, err)
	}
	cmdVal, err := strconv.Atoi(token[split+1:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude in '%s': %w", token, err)
	}

	return latSign * float64(latVal), cmdSign * float64(cmdVal), nil
}

// parseRegionLine parses one numbered-region row from section I, e.g.
// "3628 S18W43 132 0400 Ekc 12 25 Beta-Gamma-Delta".
func parseRegionLine(line string) (*Region, error) {
	fields := strings.Fields(line)
	if len(fields) < 8 {
		return nil, fmt.Errorf("expected 8 columns, got %d", len(fields))
	}

	number, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("invalid region number '%s': %w", fields[0], err)
	}
	lat, cmd, err := ParseLocation(fields[1])
	if err != nil {
		return nil, err
	}
	lo, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid Carrington longitude '%s': %w", fields[2], err)
	}
	area, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("invalid area '%s': %w", fields[3], err)
	}
	spots, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, fmt.Errorf("invalid spot count '%s': %w", fields[6], err)
	}

	return &Region{
		Number:           number,
		LatDeg:           lat,
		CMDDeg:           cmd,
		CarringtonLonDeg: lo,
		AreaMH:           area,
		Class:            fields[4],
		SpotCount:        spots,
		MagType:          fields[7],
	}, nil
}

// ParseRegions scans reader for the numbered sunspot groups of a Solar
// Region Summary. Rows outside section I and rows that fail to parse are
// skipped. An empty region list is valid: spotless days report "None".
func ParseRegions(r io.Reader) ([]Region, error) {
	scanner := bufio.NewScanner(r)
	regions := make([]Region, 0, 8)
	var issued time.Time
	var inSpotSection bool

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, ":Issued:") {
			if ts, err := ParseIssued(line); err == nil {
				issued = ts
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		// Section headers use Roman numerals. Only section I carries
		// numbered spot groups; IA (plages) and II (due to return) do not.
		switch {
		case strings.HasPrefix(line, "IA.") || strings.HasPrefix(line, "II."):
			inSpotSection = false
			continue
		case strings.HasPrefix(line, "I."):
			inSpotSection = true
			continue
		}

		if !inSpotSection {
			continue
		}
		if strings.HasPrefix(line, "Nmbr") || strings.EqualFold(line, "None") {
			continue
		}

		reg, err := parseRegionLine(line)
		if err != nil {
			continue
		}
		reg.Issued = issued
		regions = append(regions, *reg)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan SRS report: %w", err)
	}
	if issued.IsZero() {
		return nil, fmt.Errorf("missing :Issued: header - not an SRS report")
	}
	return regions, nil
}

// LoadRegions loads a report from a local path or HTTP URL.
func LoadRegions(pathOrURL string) ([]Region, error) {
	data, err := loadBytes(pathOrURL)
	if err != nil {
		return nil, err
	}
	return ParseRegions(bytes.NewReader(data))
}

func loadBytes(path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, http.NoBody)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(path)
}
