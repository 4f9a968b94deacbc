package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/fhs/go-netcdf/netcdf"

	"go.ngs.io/helio-api/internal/adapter/interp"
	"go.ngs.io/helio-api/internal/adapter/store/mwgrid"
	"go.ngs.io/helio-api/internal/domain"
)

// rateFill marks grid cells without a usable measurement.
const rateFill = 1.0e20

// GridSpec defines the year and latitude coverage of the rate grid
type GridSpec struct {
	YearMin  float64
	YearMax  float64
	YearStep float64
	LatMin   float64
	LatMax   float64
	LatStep  float64
}

func main() {
	// Command line flags
	outPath := flag.String("out", "./data/rotation_rates.nc", "Output NetCDF file")
	profileName := flag.String("profile", "howard", "Base rotation profile: howard, snodgrass or allen")
	yearMin := flag.Float64("year-min", 1985.0, "First year of coverage")
	yearMax := flag.Float64("year-max", 2025.0, "Last year of coverage")
	yearStep := flag.Float64("year-step", 0.5, "Year resolution")
	latMin := flag.Float64("lat-min", -75.0, "Minimum latitude (degrees)")
	latMax := flag.Float64("lat-max", 75.0, "Maximum latitude (degrees)")
	latStep := flag.Float64("lat-step", 2.5, "Latitude resolution in degrees")
	cycleAmp := flag.Float64("cycle-amplitude", 0.01, "Torsional oscillation amplitude in deg/day")
	cyclePeriod := flag.Float64("cycle-period", 11.0, "Activity cycle period in years")
	maskAbove := flag.Float64("mask-above", 80.0, "Mask rates poleward of this latitude with the fill value")

	flag.Parse()

	profile, err := domain.ParseProfile(*profileName)
	if err != nil {
		log.Fatalf("Invalid profile: %v", err)
	}

	grid := GridSpec{
		YearMin:  *yearMin,
		YearMax:  *yearMax,
		YearStep: *yearStep,
		LatMin:   *latMin,
		LatMax:   *latMax,
		LatStep:  *latStep,
	}
	if grid.YearStep <= 0 || grid.LatStep <= 0 {
		log.Fatalf("Grid steps must be positive")
	}
	if grid.YearMax <= grid.YearMin || grid.LatMax <= grid.LatMin {
		log.Fatalf("Grid bounds must span a range (year %.1f-%.1f, lat %.1f-%.1f)",
			grid.YearMin, grid.YearMax, grid.LatMin, grid.LatMax)
	}

	nYear := int((grid.YearMax-grid.YearMin)/grid.YearStep) + 1
	nLat := int((grid.LatMax-grid.LatMin)/grid.LatStep) + 1

	log.Printf("Generating measured-rate grid for profile: %s", profile)
	log.Printf("Grid: years %.1f-%.1f step %.2f, latitudes %.1f°-%.1f° step %.2f°",
		grid.YearMin, grid.YearMax, grid.YearStep, grid.LatMin, grid.LatMax, grid.LatStep)

	// Create output directory
	if err := os.MkdirAll(filepath.Dir(*outPath), 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	years := make([]float64, nYear)
	for j := 0; j < nYear; j++ {
		years[j] = grid.YearMin + float64(j)*grid.YearStep
	}

	lats := make([]float64, nLat)
	for i := 0; i < nLat; i++ {
		lats[i] = grid.LatMin + float64(i)*grid.LatStep
	}

	// Torsional oscillation amplitude peaks over the activity belts and
	// dies away toward the poles.
	envelope := &interp.Curve1D{
		X: []float64{0, 10, 20, 35, 55, 90},
		Y: []float64{0.6, 0.9, 1.0, 0.7, 0.3, 0.0},
	}
	if err := envelope.Validate(); err != nil {
		log.Fatalf("Bad amplitude envelope: %v", err)
	}

	// Evaluate the profile and add a synthetic time-dependent residual.
	model := domain.NewRotationModel()
	rates := make([]float64, nLat*nYear)

	for i := 0; i < nLat; i++ {
		// Sidereal rate in deg/day is the one-day rotation amount.
		base, err := model.DiffRot(24*time.Hour, lats[i], profile, domain.FrameSidereal)
		if err != nil {
			log.Fatalf("Failed to evaluate profile at %.1f°: %v", lats[i], err)
		}

		for j := 0; j < nYear; j++ {
			idx := i*nYear + j

			if math.Abs(lats[i]) > *maskAbove {
				rates[idx] = rateFill
				continue
			}

			// Torsional oscillation: weak banded residual drifting
			// equatorward over the activity cycle.
			cyclePhase := 2.0 * math.Pi * (years[j] - grid.YearMin) / *cyclePeriod
			band := math.Cos(2.0*math.Pi*math.Abs(lats[i])/45.0 + cyclePhase)

			rates[idx] = base + *cycleAmp*band*envelope.At(math.Abs(lats[i]))
		}
	}

	if err := writeRateGrid(*outPath, years, lats, rates); err != nil {
		log.Fatalf("Failed to write grid: %v", err)
	}
	log.Printf("✓ Generated %s", *outPath)

	// Verify the file round-trips through the measured-rate store.
	verify := mwgrid.NewStore(*outPath)
	yearLo, yearHi, latLo, latHi, err := verify.Coverage()
	if err != nil {
		log.Fatalf("Verification failed: %v", err)
	}
	midYear := (yearLo + yearHi) / 2.0
	equatorial, err := verify.RateAt(midYear, 0.0)
	if err != nil {
		log.Fatalf("Verification failed: %v", err)
	}

	// Print summary
	log.Printf("\n=== Generation Complete ===")
	log.Printf("Coverage: years %.1f-%.1f, latitudes %.1f° to %.1f°", yearLo, yearHi, latLo, latHi)
	log.Printf("Equatorial rate at %.1f: %.4f deg/day (sidereal)", midYear, equatorial)
	log.Printf("Grid size: %d × %d points", nLat, nYear)
	log.Printf("File size: ~%.1f KB", float64(nLat*nYear*8)/1024)
}

// writeRateGrid writes the latitude × year rate grid as a NetCDF file
func writeRateGrid(path string, years, lats, rates []float64) error {
	ds, err := netcdf.CreateFile(path, netcdf.CLOBBER|netcdf.NETCDF4)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer ds.Close()

	latDim, err := ds.AddDim("lat", uint64(len(lats)))
	if err != nil {
		return err
	}

	yearDim, err := ds.AddDim("year", uint64(len(years)))
	if err != nil {
		return err
	}

	latVar, err := ds.AddVar("lat", netcdf.DOUBLE, []netcdf.Dim{latDim})
	if err != nil {
		return err
	}
	latVar.Attr("units").WriteBytes([]byte("degrees_north"))
	latVar.WriteFloat64s(lats)

	yearVar, err := ds.AddVar("year", netcdf.DOUBLE, []netcdf.Dim{yearDim})
	if err != nil {
		return err
	}
	yearVar.Attr("units").WriteBytes([]byte("decimal year"))
	yearVar.WriteFloat64s(years)

	rateVar, err := ds.AddVar("rate", netcdf.DOUBLE, []netcdf.Dim{latDim, yearDim})
	if err != nil {
		return err
	}
	// The fill value attribute must be set before any data is written.
	rateVar.Attr("_FillValue").WriteFloat64s([]float64{rateFill})
	rateVar.Attr("units").WriteBytes([]byte("degrees per day"))
	rateVar.Attr("long_name").WriteBytes([]byte("sidereal differential rotation rate"))
	rateVar.WriteFloat64s(rates)

	return nil
}
