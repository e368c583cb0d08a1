package site

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/litescript/ls-astro/internal/angle"
)

// catalogFile is the on-disk layout of a site catalogue:
//
//	[[site]]
//	name = "Narrabri-2"
//	longitude = "149:33:00.5"
//	latitude = -30.3128
//	timezone_offset = 600
//	mount = "AzEl"
//	elevation_low = 12.0
type catalogFile struct {
	Sites []catalogEntry `toml:"site"`
}

type catalogEntry struct {
	Name           string   `toml:"name"`
	Longitude      any      `toml:"longitude"`
	Latitude       any      `toml:"latitude"`
	TimezoneOffset int      `toml:"timezone_offset"`
	Mount          string   `toml:"mount"`
	ElevationLow   *float64 `toml:"elevation_low"`
	ElevationHigh  *float64 `toml:"elevation_high"`
	DUT1           float64  `toml:"dut1"`
}

// ParseCatalog decodes a TOML site catalogue. Longitude and latitude may be
// decimal degrees or sexagesimal strings.
func ParseCatalog(data []byte) ([]Location, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing site catalogue: %w", err)
	}

	locs := make([]Location, 0, len(f.Sites))
	for i, e := range f.Sites {
		if e.Name == "" {
			return nil, fmt.Errorf("site %d: %w: missing name", i, ErrIncompleteLocation)
		}
		lon, err := angle.From(e.Longitude)
		if err != nil {
			return nil, fmt.Errorf("site %s: longitude: %w", e.Name, err)
		}
		lat, err := angle.From(e.Latitude)
		if err != nil {
			return nil, fmt.Errorf("site %s: latitude: %w", e.Name, err)
		}
		mount, err := ParseMount(e.Mount)
		if err != nil {
			return nil, fmt.Errorf("site %s: %w", e.Name, err)
		}

		loc := Location{
			Name:           e.Name,
			Longitude:      lon,
			Latitude:       lat,
			TimezoneOffset: e.TimezoneOffset,
			Mount:          mount,
			DUT1:           e.DUT1,
		}
		if e.ElevationLow != nil {
			loc.Limits.ElevationLow = angle.FromDegrees(*e.ElevationLow)
		}
		if e.ElevationHigh != nil {
			loc.Limits.ElevationHigh = angle.FromDegrees(*e.ElevationHigh)
		}
		locs = append(locs, loc)
	}
	return locs, nil
}

// LoadCatalogFile reads a catalogue file and merges it into r. Sites already
// registered are reported in the returned error; the rest are still added.
func (r *Registry) LoadCatalogFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading site catalogue: %w", err)
	}
	locs, err := ParseCatalog(data)
	if err != nil {
		return 0, err
	}
	before := len(r.Names())
	err = r.Merge(locs)
	return len(r.Names()) - before, err
}
