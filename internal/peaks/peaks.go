package peaks

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Peak is an immutable reference record for a single summit.
type Peak struct {
	Name        string  `json:"name"`
	ElevationFt float64 `json:"elevationFt"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// NotFoundError is returned when a requested peak name cannot be matched
// against the reference catalog. It carries the name as the caller gave it.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("peak not found: %s", e.Name)
}

var mtPrefix = regexp.MustCompile(`^mt\.?\s+`)

// NormalizeName lowercases a peak name and strips a leading "mt."/"mount "
// prefix so that "Mt. Washington", "Mount Washington" and "washington" all
// compare equal. Names without the prefix are left intact apart from casing.
func NormalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = mtPrefix.ReplaceAllString(n, "mount ")
	n = strings.TrimPrefix(n, "mount ")
	return strings.TrimSpace(n)
}

// Catalog is the immutable peak reference dataset, indexed by normalized name.
// It is constructed once at startup and injected into components that need it.
type Catalog struct {
	peaks  []Peak
	byName map[string]Peak
}

// NewCatalog builds a catalog from reference records, validating each one.
func NewCatalog(records []Peak) (*Catalog, error) {
	c := &Catalog{
		peaks:  make([]Peak, 0, len(records)),
		byName: make(map[string]Peak, len(records)),
	}
	for _, p := range records {
		if p.Name == "" {
			return nil, fmt.Errorf("peak record with empty name")
		}
		if p.ElevationFt < 0 {
			return nil, fmt.Errorf("peak %q: negative elevation %f", p.Name, p.ElevationFt)
		}
		if p.Lat < -90 || p.Lat > 90 {
			return nil, fmt.Errorf("peak %q: latitude %f out of range", p.Name, p.Lat)
		}
		if p.Lon < -180 || p.Lon > 180 {
			return nil, fmt.Errorf("peak %q: longitude %f out of range", p.Name, p.Lon)
		}
		key := NormalizeName(p.Name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("peak %q: normalized name collides with an existing entry", p.Name)
		}
		c.peaks = append(c.peaks, p)
		c.byName[key] = p
	}
	return c, nil
}

// LoadCatalog reads the peak reference CSV (columns: peak,elevation_ft,lat,lon).
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open peaks csv: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse peaks csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("peaks csv %s has no data rows", path)
	}

	records := make([]Peak, 0, len(rows)-1)
	for i, row := range rows[1:] { // skip header
		if len(row) < 4 {
			return nil, fmt.Errorf("peaks csv row %d: expected 4 columns, got %d", i+2, len(row))
		}
		elev, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("peaks csv row %d: bad elevation: %w", i+2, err)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("peaks csv row %d: bad latitude: %w", i+2, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("peaks csv row %d: bad longitude: %w", i+2, err)
		}
		records = append(records, Peak{
			Name:        strings.TrimSpace(row[0]),
			ElevationFt: elev,
			Lat:         lat,
			Lon:         lon,
		})
	}

	return NewCatalog(records)
}

// Lookup resolves a peak by case- and prefix-insensitive exact name match.
func (c *Catalog) Lookup(name string) (Peak, error) {
	p, ok := c.byName[NormalizeName(name)]
	if !ok {
		return Peak{}, &NotFoundError{Name: name}
	}
	return p, nil
}

// All returns a copy of every peak in catalog order.
func (c *Catalog) All() []Peak {
	out := make([]Peak, len(c.peaks))
	copy(out, c.peaks)
	return out
}
