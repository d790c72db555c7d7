package field

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/spatial/r2"
)

// Grid is a regular longitude/latitude grid of velocity components.
// Rows run north to south so that row 0 lands at the top of the canvas.
// Missing samples (land, no data) are stored as NaN.
type Grid struct {
	Lon []float64 // ascending
	Lat []float64 // descending
	U   []float64 // eastward component, index i + j*len(Lon)
	V   []float64 // northward component
}

// NX returns the number of longitude columns.
func (g *Grid) NX() int { return len(g.Lon) }

// NY returns the number of latitude rows.
func (g *Grid) NY() int { return len(g.Lat) }

// At returns the vector stored at column i, row j.
// ok is false for missing samples and indices outside the grid.
func (g *Grid) At(i, j int) (v r2.Vec, ok bool) {
	if i < 0 || i >= g.NX() || j < 0 || j >= g.NY() {
		return r2.Vec{}, false
	}
	idx := i + j*g.NX()
	u, w := g.U[idx], g.V[idx]
	if math.IsNaN(u) || math.IsNaN(w) {
		return r2.Vec{}, false
	}
	return r2.Vec{X: u, Y: w}, true
}

// Interpolation selects how a GridSampler reads between grid nodes.
type Interpolation int

const (
	Bilinear Interpolation = iota
	Nearest
)

// ParseInterpolation parses "bilinear" or "nearest".
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(s) {
	case "", "bilinear":
		return Bilinear, nil
	case "nearest":
		return Nearest, nil
	}
	return 0, fmt.Errorf("unknown interpolation %q", s)
}

// GridSampler stretches a Grid over a canvas.
type GridSampler struct {
	grid   *Grid
	mode   Interpolation
	scale  float64
	toGrid r2.Vec // canvas units -> grid index units, per axis
}

// Sampler maps the grid onto a width x height canvas: the first and last
// grid nodes land on the first and last pixel of each axis. velocityScale
// converts dataset units into canvas units per integration step.
func (g *Grid) Sampler(width, height int, mode Interpolation, velocityScale float64) *GridSampler {
	s := &GridSampler{grid: g, mode: mode, scale: velocityScale}
	if width > 1 && g.NX() > 1 {
		s.toGrid.X = float64(g.NX()-1) / float64(width-1)
	}
	if height > 1 && g.NY() > 1 {
		s.toGrid.Y = float64(g.NY()-1) / float64(height-1)
	}
	return s
}

// Velocity samples the grid at canvas position p.
// Positions outside the grid read as a zero vector.
func (s *GridSampler) Velocity(p r2.Vec) r2.Vec {
	gi := p.X * s.toGrid.X
	gj := p.Y * s.toGrid.Y
	if gi < 0 || gj < 0 || gi > float64(s.grid.NX()-1) || gj > float64(s.grid.NY()-1) {
		return r2.Vec{}
	}

	var v r2.Vec
	switch s.mode {
	case Nearest:
		v, _ = s.grid.At(int(math.Round(gi)), int(math.Round(gj)))
	default:
		v = s.bilinear(gi, gj)
	}

	// Northward is up on the canvas, which is -y
	return r2.Vec{X: v.X * s.scale, Y: -v.Y * s.scale}
}

func (s *GridSampler) bilinear(gi, gj float64) r2.Vec {
	fi, fj := int(math.Floor(gi)), int(math.Floor(gj))
	ci, cj := fi+1, fj+1
	if ci >= s.grid.NX() {
		ci = fi
	}
	if cj >= s.grid.NY() {
		cj = fj
	}
	x, y := gi-float64(fi), gj-float64(fj)

	// Missing corners contribute a zero vector
	g00, _ := s.grid.At(fi, fj)
	g10, _ := s.grid.At(ci, fj)
	g01, _ := s.grid.At(fi, cj)
	g11, _ := s.grid.At(ci, cj)

	rx, ry := 1-x, 1-y
	a, b, c, d := rx*ry, x*ry, rx*y, x*y
	return r2.Vec{
		X: g00.X*a + g10.X*b + g01.X*c + g11.X*d,
		Y: g00.Y*a + g10.Y*b + g01.Y*c + g11.Y*d,
	}
}

// Selection picks one level and one time slice out of a multi-dimensional
// dataset. Empty values select nothing, which is only valid when the dataset
// has at most one distinct value for that role.
type Selection struct {
	Level string
	Time  string
}

// LoadGridCSV reads a grid from CSV rows holding one sample each.
// The longitude/latitude/level/time column names come from conv; velocity
// columns must be named "u" and "v". Empty or "NaN" cells mark missing data.
func LoadGridCSV(r io.Reader, conv Convention, sel Selection) (*Grid, error) {
	rows, err := gocsv.CSVToMaps(r)
	if err != nil {
		return nil, fmt.Errorf("reading grid csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid csv has no rows")
	}

	columns := make(map[string]bool, len(rows[0]))
	for k := range rows[0] {
		columns[k] = true
	}
	lonCol, ok := conv.Resolve(Longitude, columns)
	if !ok {
		return nil, fmt.Errorf("grid csv: no %s column for convention %q", Longitude, conv.Name)
	}
	latCol, ok := conv.Resolve(Latitude, columns)
	if !ok {
		return nil, fmt.Errorf("grid csv: no %s column for convention %q", Latitude, conv.Name)
	}
	if !columns["u"] || !columns["v"] {
		return nil, fmt.Errorf("grid csv: missing u/v columns")
	}
	filters := make(map[string]string, 2)
	for role, want := range map[Role]string{Level: sel.Level, Time: sel.Time} {
		if want == "" {
			continue
		}
		col, ok := conv.Resolve(role, columns)
		if !ok {
			return nil, fmt.Errorf("grid csv: %s %q selected but no %s column", role, want, role)
		}
		filters[col] = want
	}

	type sample struct {
		lon, lat, u, v float64
	}
	samples := make([]sample, 0, len(rows))
	lons := make(map[float64]bool)
	lats := make(map[float64]bool)

rowLoop:
	for n, row := range rows {
		for col, want := range filters {
			if strings.TrimSpace(row[col]) != want {
				continue rowLoop
			}
		}
		// Header is line 1
		line := n + 2
		lon, err := strconv.ParseFloat(strings.TrimSpace(row[lonCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("grid csv line %d: parsing %s: %w", line, lonCol, err)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(row[latCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("grid csv line %d: parsing %s: %w", line, latCol, err)
		}
		if !finite(lon) || !finite(lat) {
			return nil, fmt.Errorf("grid csv line %d: non-finite coordinate %s=%v %s=%v", line, lonCol, lon, latCol, lat)
		}
		u, err := parseComponent(row["u"])
		if err != nil {
			return nil, fmt.Errorf("grid csv line %d: parsing u: %w", line, err)
		}
		v, err := parseComponent(row["v"])
		if err != nil {
			return nil, fmt.Errorf("grid csv line %d: parsing v: %w", line, err)
		}
		samples = append(samples, sample{lon, lat, u, v})
		lons[lon] = true
		lats[lat] = true
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("grid csv: no rows match selection %+v", sel)
	}

	g := &Grid{
		Lon: sortedKeys(lons),
		Lat: sortedKeys(lats),
	}
	// North first
	sort.Sort(sort.Reverse(sort.Float64Slice(g.Lat)))

	lonIdx := indexOf(g.Lon)
	latIdx := indexOf(g.Lat)
	size := g.NX() * g.NY()
	g.U = make([]float64, size)
	g.V = make([]float64, size)
	seen := make([]bool, size)
	for i := range g.U {
		g.U[i] = math.NaN()
		g.V[i] = math.NaN()
	}
	for _, s := range samples {
		idx := lonIdx[s.lon] + latIdx[s.lat]*g.NX()
		if seen[idx] {
			return nil, fmt.Errorf("grid csv: duplicate sample at %s=%g %s=%g (select a level/time)", lonCol, s.lon, latCol, s.lat)
		}
		seen[idx] = true
		g.U[idx] = s.u
		g.V[idx] = s.v
	}
	return g, nil
}

func parseComponent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func sortedKeys(m map[float64]bool) []float64 {
	out := make([]float64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Float64s(out)
	return out
}

func indexOf(vals []float64) map[float64]int {
	m := make(map[float64]int, len(vals))
	for i, v := range vals {
		m[v] = i
	}
	return m
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
