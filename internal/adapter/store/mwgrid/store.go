// Package mwgrid provides access to NetCDF grids of measured solar rotation
// rates, such as the Mount Wilson Doppler series.
package mwgrid

import (
	"fmt"
	"math"
	"sync"

	"github.com/fhs/go-netcdf/netcdf"

	"go.ngs.io/helio-api/internal/adapter/interp"
	"go.ngs.io/helio-api/internal/adapter/store"
)

// Store provides access to a measured rotation rate grid. The grid axes
// are decimal year and heliographic latitude in degrees; cell values are
// sidereal rotation rates in degrees per day.
type Store struct {
	path string
	grid *interp.Grid2D // Lazily loaded.
	mu   sync.RWMutex   // Protect grid.
}

// NewStore creates a new measured-rate store backed by a NetCDF file.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// RateAt returns the measured sidereal rotation rate in degrees per day
// at a year and latitude, bilinearly interpolated between grid cells.
func (s *Store) RateAt(year, latDeg float64) (float64, error) {
	grid, err := s.load()
	if err != nil {
		return 0, err
	}

	if year < grid.MinX() || year > grid.MaxX() || latDeg < grid.MinY() || latDeg > grid.MaxY() {
		return 0, fmt.Errorf("%w: year %.2f, latitude %.2f", store.ErrRateOutOfRange, year, latDeg)
	}

	rate, err := grid.At(year, latDeg)
	if err != nil {
		return 0, err
	}
	// Fill values are loaded as NaN so gaps in the record poison the
	// interpolation instead of skewing it.
	if math.IsNaN(rate) {
		return 0, fmt.Errorf("%w: no measurement near year %.2f, latitude %.2f", store.ErrRateOutOfRange, year, latDeg)
	}
	return rate, nil
}

// Coverage returns the year and latitude bounds of the grid.
func (s *Store) Coverage() (yearMin, yearMax, latMin, latMax float64, err error) {
	grid, err := s.load()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return grid.MinX(), grid.MaxX(), grid.MinY(), grid.MaxY(), nil
}

// load reads the grid on first use.
func (s *Store) load() (*interp.Grid2D, error) {
	s.mu.RLock()
	if s.grid != nil {
		grid := s.grid
		s.mu.RUnlock()
		return grid, nil
	}
	s.mu.RUnlock()

	grid, err := loadRateGrid(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate grid %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.grid = grid
	s.mu.Unlock()

	return grid, nil
}

// loadRateGrid reads a year x latitude rate grid from a NetCDF file.
func loadRateGrid(path string) (*interp.Grid2D, error) {
	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("failed to open NetCDF file: %w", err)
	}
	defer func() { _ = nc.Close() }()

	// Try multiple variable name patterns.
	years, err := readAxis(nc, []string{"year", "time", "t"})
	if err != nil {
		return nil, fmt.Errorf("year axis: %w", err)
	}
	lats, err := readAxis(nc, []string{"lat", "latitude", "y"})
	if err != nil {
		return nil, fmt.Errorf("latitude axis: %w", err)
	}

	rateNames := []string{"rate", "rotation_rate", "omega"}
	var rateVar netcdf.Var
	var rateFound bool
	for _, name := range rateNames {
		if v, err := nc.Var(name); err == nil {
			rateVar = v
			rateFound = true
			break
		}
	}
	if !rateFound {
		return nil, fmt.Errorf("rate variable not found (tried: %v)", rateNames)
	}

	dims, err := rateVar.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions: %w", err)
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("expected 2D rate data, got %dD", len(dims))
	}
	dim0Len, err := dims[0].Len()
	if err != nil {
		return nil, fmt.Errorf("failed to get dim0 length: %w", err)
	}
	dim1Len, err := dims[1].Len()
	if err != nil {
		return nil, fmt.Errorf("failed to get dim1 length: %w", err)
	}

	nYears := len(years)
	nLats := len(lats)

	// Grid2D rows are indexed by Y (latitude), columns by X (year).
	var values [][]float64
	switch {
	case dim0Len == uint64(nLats) && dim1Len == uint64(nYears):
		values, err = read2D(rateVar, nLats, nYears)
	case dim0Len == uint64(nYears) && dim1Len == uint64(nLats):
		var byYear [][]float64
		byYear, err = read2D(rateVar, nYears, nLats)
		if err == nil {
			values = transpose2D(byYear)
		}
	default:
		return nil, fmt.Errorf("dimension mismatch: rate is [%d, %d], expected [%d, %d] or [%d, %d]",
			dim0Len, dim1Len, nLats, nYears, nYears, nLats)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rate data: %w", err)
	}

	// Mark _FillValue or missing_value cells as NaN.
	if fv, ok := fillValue(rateVar); ok {
		for i := range values {
			for j := range values[i] {
				if values[i][j] == fv {
					values[i][j] = math.NaN()
				}
			}
		}
	}

	grid := &interp.Grid2D{
		X:      years,
		Y:      lats,
		Values: values,
	}
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grid: %w", err)
	}

	return grid, nil
}

// readAxis reads a 1D coordinate variable trying each candidate name.
func readAxis(nc netcdf.Dataset, names []string) ([]float64, error) {
	for _, name := range names {
		v, err := nc.Var(name)
		if err != nil {
			continue
		}
		dims, err := v.Dims()
		if err != nil || len(dims) != 1 {
			continue
		}
		length, err := dims[0].Len()
		if err != nil {
			continue
		}
		data, err := readValues(v, int(length))
		if err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("variable not found (tried: %v)", names)
}

// read2D reads a 2D variable into row slices of a flat array.
func read2D(v netcdf.Var, nRows, nCols int) ([][]float64, error) {
	flat, err := readValues(v, nRows*nCols)
	if err != nil {
		return nil, err
	}
	values := make([][]float64, nRows)
	for i := 0; i < nRows; i++ {
		values[i] = flat[i*nCols : (i+1)*nCols]
	}
	return values, nil
}

// readValues reads n values from a NetCDF variable as float64.
func readValues(v netcdf.Var, n int) ([]float64, error) {
	t, err := v.Type()
	if err != nil {
		return nil, fmt.Errorf("failed to get var type: %v", err)
	}
	switch t {
	case netcdf.DOUBLE:
		data := make([]float64, n)
		if err := v.ReadFloat64s(data); err != nil {
			return nil, err
		}
		return data, nil
	case netcdf.FLOAT:
		tmp := make([]float32, n)
		if err := v.ReadFloat32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, n)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	case netcdf.INT:
		tmp := make([]int32, n)
		if err := v.ReadInt32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, n)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	case netcdf.SHORT:
		tmp := make([]int16, n)
		if err := v.ReadInt16s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, n)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported var type: %v", t)
	}
}

// fillValue returns the _FillValue or missing_value attribute if present.
func fillValue(v netcdf.Var) (float64, bool) {
	for _, name := range []string{"_FillValue", "missing_value"} {
		a := v.Attr(name)
		if a == (netcdf.Attr{}) {
			continue
		}
		if n, err := a.Len(); err == nil && n > 0 {
			buf64 := make([]float64, 1)
			if err := a.ReadFloat64s(buf64); err == nil {
				return buf64[0], true
			}
			buf32 := make([]float32, 1)
			if err := a.ReadFloat32s(buf32); err == nil {
				return float64(buf32[0]), true
			}
			bufi := make([]int32, 1)
			if err := a.ReadInt32s(bufi); err == nil {
				return float64(bufi[0]), true
			}
		}
	}
	return 0, false
}

// transpose2D transposes a 2D array.
func transpose2D(data [][]float64) [][]float64 {
	if len(data) == 0 {
		return data
	}
	nRows := len(data)
	nCols := len(data[0])
	transposed := make([][]float64, nCols)
	for i := 0; i < nCols; i++ {
		transposed[i] = make([]float64, nRows)
		for j := 0; j < nRows; j++ {
			transposed[i][j] = data[j][i]
		}
	}
	return transposed
}
