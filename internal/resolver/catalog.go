package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/coord"
)

// CatalogName is reported as the resolver of catalogue lookups.
const CatalogName = "built-in catalogue"

// Entry is a catalogued object with a J2000 position.
type Entry struct {
	Name    string
	Aliases []string
	RAdeg   float64
	DecDeg  float64
	Mag     float64 // visual magnitude, stars only
	FluxJy  float64 // 1.4 GHz flux density, radio sources only
}

// Catalog resolves names against a fixed list of entries. Names match
// case-insensitively, ignoring spaces.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// NewCatalog indexes entries by name and alias. Later duplicates are
// ignored.
func NewCatalog(entries []Entry) *Catalog {
	c := &Catalog{entries: entries, index: make(map[string]int)}
	for i, e := range entries {
		for _, n := range append([]string{e.Name}, e.Aliases...) {
			k := catalogKey(n)
			if _, dup := c.index[k]; !dup {
				c.index[k] = i
			}
		}
	}
	return c
}

// DefaultCatalog returns the radio calibrators and bright stars shipped with
// ls-astro.
func DefaultCatalog() *Catalog {
	entries := make([]Entry, 0, len(calibrators)+len(brightStars))
	entries = append(entries, calibrators...)
	entries = append(entries, brightStars...)
	return NewCatalog(entries)
}

// Entries returns the catalogue contents.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Resolve implements Resolver.
func (c *Catalog) Resolve(ctx context.Context, name string) (Resolved, error) {
	if strings.TrimSpace(name) == "" {
		return Resolved{}, ErrEmptyName
	}
	i, ok := c.index[catalogKey(name)]
	if !ok {
		return Resolved{}, fmt.Errorf("%w: %s not in catalogue", ErrNotFound, name)
	}
	e := c.entries[i]
	params := make(map[string]any)
	if e.Mag != 0 {
		params["magnitude"] = e.Mag
	}
	if e.FluxJy != 0 {
		params["flux_1400"] = e.FluxJy
	}
	return Resolved{
		Name:       e.Name,
		RA:         angle.FromDegrees(e.RAdeg),
		Dec:        angle.FromDegrees(e.DecDeg),
		Frame:      coord.J2000,
		Resolver:   CatalogName,
		Parameters: params,
	}, nil
}

func catalogKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

// calibrators are common radio flux density and phase calibrators.
var calibrators = []Entry{
	{Name: "1934-638", Aliases: []string{"PKS 1934-638", "J1939-6342"}, RAdeg: 294.854275, DecDeg: -63.712675, FluxJy: 14.9},
	{Name: "0823-500", Aliases: []string{"PKS 0823-500", "J0825-5010"}, RAdeg: 126.361954, DecDeg: -50.177358, FluxJy: 6.4},
	{Name: "0407-658", Aliases: []string{"PKS 0407-658", "J0408-6545"}, RAdeg: 62.084908, DecDeg: -65.752522, FluxJy: 14.5},
	{Name: "3C273", Aliases: []string{"1226+023", "J1229+0203"}, RAdeg: 187.277915, DecDeg: 2.052388, FluxJy: 40},
	{Name: "3C279", Aliases: []string{"1253-055", "J1256-0547"}, RAdeg: 194.046527, DecDeg: -5.789312, FluxJy: 10},
	{Name: "3C286", Aliases: []string{"1328+307", "J1331+3030"}, RAdeg: 202.784533, DecDeg: 30.509155, FluxJy: 14.9},
	{Name: "3C147", Aliases: []string{"0538+498", "J0542+4951"}, RAdeg: 85.650575, DecDeg: 49.852009, FluxJy: 22.5},
	{Name: "1921-293", Aliases: []string{"PKS 1921-293", "J1924-2914"}, RAdeg: 291.212733, DecDeg: -29.241700, FluxJy: 13},
	{Name: "Centaurus A", Aliases: []string{"Cen A", "1322-427"}, RAdeg: 201.365063, DecDeg: -43.019112, FluxJy: 1330},
	{Name: "Sgr A*", Aliases: []string{"Sagittarius A*", "1742-289"}, RAdeg: 266.416817, DecDeg: -29.007825, FluxJy: 1},
}

// brightStars are the brightest stars, useful for pointing checks.
var brightStars = []Entry{
	{Name: "Sirius", RAdeg: 101.287, DecDeg: -16.716, Mag: -1.46},
	{Name: "Canopus", RAdeg: 95.988, DecDeg: -52.696, Mag: -0.74},
	{Name: "Arcturus", RAdeg: 213.915, DecDeg: 19.182, Mag: -0.05},
	{Name: "Vega", RAdeg: 279.235, DecDeg: 38.784, Mag: 0.03},
	{Name: "Capella", RAdeg: 79.172, DecDeg: 45.998, Mag: 0.08},
	{Name: "Rigel", RAdeg: 78.634, DecDeg: -8.202, Mag: 0.13},
	{Name: "Procyon", RAdeg: 114.826, DecDeg: 5.225, Mag: 0.34},
	{Name: "Achernar", RAdeg: 24.429, DecDeg: -57.237, Mag: 0.46},
	{Name: "Betelgeuse", RAdeg: 88.793, DecDeg: 7.407, Mag: 0.50},
	{Name: "Hadar", Aliases: []string{"Beta Centauri"}, RAdeg: 210.956, DecDeg: -60.373, Mag: 0.61},
	{Name: "Altair", RAdeg: 297.696, DecDeg: 8.868, Mag: 0.76},
	{Name: "Acrux", Aliases: []string{"Alpha Crucis"}, RAdeg: 186.650, DecDeg: -63.099, Mag: 0.76},
	{Name: "Aldebaran", RAdeg: 68.980, DecDeg: 16.509, Mag: 0.85},
	{Name: "Antares", RAdeg: 247.352, DecDeg: -26.432, Mag: 0.96},
	{Name: "Spica", RAdeg: 201.298, DecDeg: -11.161, Mag: 0.97},
	{Name: "Pollux", RAdeg: 116.329, DecDeg: 28.026, Mag: 1.14},
	{Name: "Fomalhaut", RAdeg: 344.413, DecDeg: -29.622, Mag: 1.16},
	{Name: "Deneb", RAdeg: 310.358, DecDeg: 45.280, Mag: 1.25},
	{Name: "Mimosa", Aliases: []string{"Beta Crucis"}, RAdeg: 191.930, DecDeg: -59.689, Mag: 1.25},
	{Name: "Regulus", RAdeg: 152.093, DecDeg: 11.967, Mag: 1.35},
	{Name: "Adhara", RAdeg: 104.656, DecDeg: -28.972, Mag: 1.50},
	{Name: "Castor", RAdeg: 113.650, DecDeg: 31.889, Mag: 1.58},
	{Name: "Shaula", RAdeg: 263.402, DecDeg: -37.104, Mag: 1.63},
	{Name: "Miaplacidus", RAdeg: 138.300, DecDeg: -69.717, Mag: 1.68},
	{Name: "Alnilam", RAdeg: 84.053, DecDeg: -1.202, Mag: 1.69},
	{Name: "Peacock", RAdeg: 306.412, DecDeg: -56.735, Mag: 1.94},
	{Name: "Polaris", RAdeg: 37.954, DecDeg: 89.264, Mag: 2.02},
}
