// Package main fits differential rotation coefficients to active region
// drift observed across a directory of NOAA SRS reports.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.ngs.io/helio-api/internal/domain"
	"go.ngs.io/helio-api/internal/srs"
)

// degPerDayToURadS converts a rotation rate from degrees per day to
// microradians per second.
const degPerDayToURadS = math.Pi / 180.0 / 86400.0 * 1e6

type sample struct {
	LatDeg   float64
	RateURad float64
}

func main() {
	var (
		srsDir      string
		profileName string
		source      string
		maxGapHours float64
		terms       int
	)

	flag.StringVar(&srsDir, "srs_dir", "", "Directory of SRS report files")
	flag.StringVar(&profileName, "profile", "howard", "Profile slot the fitted coefficients override")
	flag.StringVar(&source, "source", "rotation-fit", "Source label for the coefficient metadata")
	flag.Float64Var(&maxGapHours, "max_gap_hours", 36, "Maximum hours between paired sightings of a region")
	flag.IntVar(&terms, "terms", 3, "Expansion terms to fit (2 = A+B, 3 = A+B+C)")
	flag.Parse()

	if srsDir == "" {
		fmt.Fprintln(os.Stderr, "Usage: rotation-fit -srs_dir <dir> [-profile howard] [-terms 3]")
		os.Exit(2)
	}
	if terms != 2 && terms != 3 {
		fmt.Fprintln(os.Stderr, "terms must be 2 or 3")
		os.Exit(2)
	}

	profile, err := domain.ParseProfile(profileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	if profile == domain.ProfileAllen {
		fmt.Fprintln(os.Stderr, "allen is closed-form; fitted coefficients apply to howard or snodgrass")
		os.Exit(2)
	}

	regions, reportCount, err := loadReports(srsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load reports: %v\n", err)
		os.Exit(1)
	}
	if reportCount < 2 {
		fmt.Fprintln(os.Stderr, "need at least two parseable reports to measure drift")
		os.Exit(1)
	}

	samples := extractDriftSamples(regions, time.Duration(maxGapHours*float64(time.Hour)))
	if len(samples) == 0 {
		fmt.Fprintln(os.Stderr, "no usable drift pairs found")
		os.Exit(1)
	}

	coeffs, err := fitCoeffs(samples, terms)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fit failed: %v\n", err)
		os.Exit(1)
	}

	fitted := domain.RotationCoeff{
		Profile: profile.String(),
		A:       domain.RoundToDecimal(coeffs[0], 6),
		B:       domain.RoundToDecimal(coeffs[1], 6),
		Source:  source,
	}
	if terms == 3 {
		fitted.C = domain.RoundToDecimal(coeffs[2], 6)
	}

	fmt.Fprintf(os.Stderr, "fitted %d drift pairs from %d reports\n", len(samples), reportCount)

	set := domain.RotationCoeffSet{Coeffs: []domain.RotationCoeff{fitted}}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(set); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode JSON: %v\n", err)
		os.Exit(1)
	}
}

// loadReports parses every file in the directory, skipping files that
// are not SRS reports.
func loadReports(dir string) ([]srs.Region, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, err
	}

	var regions []srs.Region
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		rs, err := srs.LoadRegions(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", entry.Name(), err)
			continue
		}
		count++
		regions = append(regions, rs...)
	}
	return regions, count, nil
}

// extractDriftSamples pairs consecutive sightings of each region into
// (latitude, sidereal rate) samples.
func extractDriftSamples(regions []srs.Region, maxGap time.Duration) []sample {
	byNumber := make(map[int][]srs.Region)
	for _, r := range regions {
		byNumber[r.Number] = append(byNumber[r.Number], r)
	}

	numbers := make([]int, 0, len(byNumber))
	for n := range byNumber {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	var samples []sample
	for _, n := range numbers {
		sightings := byNumber[n]
		sort.Slice(sightings, func(i, j int) bool {
			return sightings[i].Issued.Before(sightings[j].Issued)
		})

		for i := 1; i < len(sightings); i++ {
			prev, cur := sightings[i-1], sightings[i]
			gap := cur.Issued.Sub(prev.Issued)
			if gap <= 0 || gap > maxGap {
				continue
			}

			days := gap.Hours() / 24.0
			synodic := (cur.CMDDeg - prev.CMDDeg) / days
			// Renumbered or misidentified regions produce wild rates.
			if synodic < 8.0 || synodic > 18.0 {
				continue
			}

			sidereal := synodic + domain.SynodicOffsetDegPerDay
			samples = append(samples, sample{
				LatDeg:   (prev.LatDeg + cur.LatDeg) / 2.0,
				RateURad: sidereal * degPerDayToURadS,
			})
		}
	}
	return samples
}

// fitCoeffs solves the normal equations for omega = A + B*sin^2 +
// C*sin^4 in urad/s.
func fitCoeffs(samples []sample, terms int) ([]float64, error) {
	normal := make([][]float64, terms)
	for i := range normal {
		normal[i] = make([]float64, terms)
	}
	rhs := make([]float64, terms)

	for _, s := range samples {
		sin2 := math.Pow(math.Sin(domain.Deg2Rad(s.LatDeg)), 2)
		features := []float64{1, sin2, sin2 * sin2}[:terms]
		for i := 0; i < terms; i++ {
			rhs[i] += features[i] * s.RateURad
			for j := 0; j <= i; j++ {
				normal[i][j] += features[i] * features[j]
			}
		}
	}

	for i := 0; i < terms; i++ {
		for j := 0; j < i; j++ {
			normal[j][i] = normal[i][j]
		}
	}

	return solveSPD(normal, rhs)
}

// solveSPD solves a symmetric positive definite system by Cholesky
// decomposition.
func solveSPD(mat [][]float64, rhs []float64) ([]float64, error) {
	n := len(rhs)
	L := make([][]float64, n)
	for i := range L {
		L[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := mat[i][j]
			for k := 0; k < j; k++ {
				sum -= L[i][k] * L[j][k]
			}
			if i == j {
				if sum <= 0 {
					return nil, fmt.Errorf("matrix not positive definite")
				}
				L[i][j] = math.Sqrt(sum)
			} else {
				L[i][j] = sum / L[j][j]
			}
		}
	}

	y := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := rhs[i]
		for k := 0; k < i; k++ {
			sum -= L[i][k] * y[k]
		}
		y[i] = sum / L[i][i]
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for k := i + 1; k < n; k++ {
			sum -= L[k][i] * x[k]
		}
		x[i] = sum / L[i][i]
	}
	return x, nil
}
