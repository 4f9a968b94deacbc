// Command srs-compare matches active regions between two NOAA SRS
// reports and compares the observed longitude drift against the
// differential rotation model, reporting the mean error (a candidate
// equatorial-rate correction) and RMSE around that mean.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"go.ngs.io/helio-api/internal/domain"
	"go.ngs.io/helio-api/internal/srs"
)

// regionPair holds the two sightings of an active region.
type regionPair struct {
	First  srs.Region
	Second srs.Region
}

// matchRegions pairs regions appearing in both reports by NOAA number.
func matchRegions(first, second []srs.Region) []regionPair {
	byNumber := make(map[int]srs.Region, len(first))
	for _, r := range first {
		byNumber[r.Number] = r
	}

	var pairs []regionPair
	for _, r := range second {
		prev, ok := byNumber[r.Number]
		if !ok {
			continue
		}
		pairs = append(pairs, regionPair{First: prev, Second: r})
	}
	return pairs
}

// calculateStats calculates mean and RMSE around mean.
func calculateStats(diffs []float64) (mean, rmse float64) {
	var sum float64
	for _, d := range diffs {
		sum += d
	}
	mean = sum / float64(len(diffs))

	var sse float64
	for _, d := range diffs {
		dd := d - mean
		sse += dd * dd
	}
	if len(diffs) > 0 {
		rmse = math.Sqrt(sse / float64(len(diffs)))
	}
	return mean, rmse
}

func main() {
	var (
		firstPath   string
		secondPath  string
		profileName string
	)
	flag.StringVar(&firstPath, "first", "", "Path or URL to the earlier SRS report")
	flag.StringVar(&secondPath, "second", "", "Path or URL to the later SRS report")
	flag.StringVar(&profileName, "profile", "howard", "Rotation profile: howard, snodgrass or allen")
	flag.Parse()

	if firstPath == "" || secondPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: srs-compare -first <path|url> -second <path|url> [-profile howard]")
		os.Exit(2)
	}

	profile, err := domain.ParseProfile(profileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	// Load both reports.
	firstRegions, err := srs.LoadRegions(firstPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load first report: %v\n", err)
		os.Exit(1)
	}
	secondRegions, err := srs.LoadRegions(secondPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load second report: %v\n", err)
		os.Exit(1)
	}
	if len(firstRegions) == 0 || len(secondRegions) == 0 {
		fmt.Fprintln(os.Stderr, "no active regions to compare")
		os.Exit(1)
	}

	// Match regions by NOAA number.
	pairs := matchRegions(firstRegions, secondRegions)
	if len(pairs) == 0 {
		fmt.Fprintln(os.Stderr, "no regions appear in both reports")
		os.Exit(1)
	}

	window := pairs[0].Second.Issued.Sub(pairs[0].First.Issued)
	if window <= 0 {
		fmt.Fprintln(os.Stderr, "second report must be issued after the first")
		os.Exit(1)
	}

	model := domain.NewRotationModel()

	fmt.Printf("Matched regions: %d\n", len(pairs))
	fmt.Printf("Separation: %.1f hours, profile: %s\n\n", window.Hours(), profile)

	fmt.Printf("%6s %7s %9s %9s %10s %10s %8s\n",
		"Region", "Lat", "CMD 1", "CMD 2", "Observed", "Predicted", "Error")

	// Observed drift is the change in central meridian distance (west
	// positive); predicted is the synodic rotation over the window at
	// the mean latitude of the two sightings.
	var diffs []float64
	for _, p := range pairs {
		lat := (p.First.LatDeg + p.Second.LatDeg) / 2.0
		predicted, err := model.DiffRot(window, lat, profile, domain.FrameSynodic)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		observed := p.Second.CMDDeg - p.First.CMDDeg
		diff := observed - predicted
		diffs = append(diffs, diff)

		fmt.Printf("%6d %7.1f %9.2f %9.2f %10.2f %10.2f %8.2f\n",
			p.First.Number, lat, p.First.CMDDeg, p.Second.CMDDeg, observed, predicted, diff)
	}

	// Calculate statistics.
	mean, rmse := calculateStats(diffs)
	days := window.Hours() / 24.0

	fmt.Printf("\nMean(observed-predicted) [deg]: %.3f\n", mean)
	fmt.Printf("RMSE around mean [deg]: %.3f\n", rmse)
	fmt.Printf("\nSuggested equatorial rate correction [urad/s]: %.4f\n",
		(mean/days)*(math.Pi/180.0)/86400.0*1e6)
}
