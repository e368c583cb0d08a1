// Package site holds the registry of telescope locations used for sidereal
// time and horizon conversions.
package site

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/litescript/ls-astro/internal/angle"
)

// Errors for registry operations.
var (
	ErrUnknownLocation    = errors.New("unknown location")
	ErrDuplicateLocation  = errors.New("location already exists")
	ErrIncompleteLocation = errors.New("location is missing required fields")
)

// Mount is the telescope mount type.
type Mount string

const (
	MountAzEl Mount = "AzEl"
	MountXY   Mount = "XY"
)

// ParseMount resolves a mount name case-insensitively.
func ParseMount(s string) (Mount, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "azel":
		return MountAzEl, nil
	case "xy":
		return MountXY, nil
	default:
		return "", fmt.Errorf("unknown mount %q", s)
	}
}

// DefaultElevationLow is applied to added locations that carry no limit.
const DefaultElevationLow = 12.0

// Limits are the elevation limits of a telescope.
type Limits struct {
	ElevationLow  angle.Angle
	ElevationHigh angle.Angle // optional
}

// Location describes a telescope site.
type Location struct {
	Name           string
	Longitude      angle.Angle // east positive
	Latitude       angle.Angle
	TimezoneOffset int // minutes east of UTC
	Mount          Mount
	Limits         Limits
	DUT1           float64 // UT1-UTC in seconds
}

// Registry is an ordered set of locations plus a default. It is safe for
// concurrent use.
type Registry struct {
	mu          sync.RWMutex
	locations   []Location
	defaultName string
}

// NewRegistry builds a registry holding the given locations. The first
// location becomes the default.
func NewRegistry(seed ...Location) (*Registry, error) {
	r := &Registry{}
	for _, loc := range seed {
		if err := r.Add(loc); err != nil {
			return nil, err
		}
	}
	if len(r.locations) > 0 {
		r.defaultName = r.locations[0].Name
	}
	return r, nil
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry seeded with the built-in
// telescopes, with ATCA as the default site.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		r, err := NewRegistry(Builtin()...)
		if err != nil {
			panic(fmt.Sprintf("site: built-in locations: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Add appends a location. Names must be unique; a missing mount defaults to
// AzEl and a missing low elevation limit to 12 degrees.
func (r *Registry) Add(loc Location) error {
	if loc.Name == "" || !loc.Longitude.IsSet() || !loc.Latitude.IsSet() {
		return fmt.Errorf("%w: %q", ErrIncompleteLocation, loc.Name)
	}
	if loc.Mount == "" {
		loc.Mount = MountAzEl
	}
	if !loc.Limits.ElevationLow.IsSet() {
		loc.Limits.ElevationLow = angle.FromDegrees(DefaultElevationLow)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexLocked(loc.Name) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateLocation, loc.Name)
	}
	r.locations = append(r.locations, loc)
	if r.defaultName == "" {
		r.defaultName = loc.Name
	}
	return nil
}

// Merge adds every location, collecting one error per rejected entry.
func (r *Registry) Merge(locs []Location) error {
	var errs []error
	for _, loc := range locs {
		if err := r.Add(loc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Get returns the named location, or the default when name is empty.
func (r *Registry) Get(name string) (Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = r.defaultName
	}
	i := r.indexLocked(name)
	if i < 0 {
		return Location{}, fmt.Errorf("%w: %q", ErrUnknownLocation, name)
	}
	return r.locations[i], nil
}

// Default returns the current default location.
func (r *Registry) Default() Location {
	loc, _ := r.Get("")
	return loc
}

// DefaultName returns the name of the default location.
func (r *Registry) DefaultName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultName
}

// SetDefault changes the default location.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexLocked(name) < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownLocation, name)
	}
	r.defaultName = name
	return nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexLocked(name) >= 0
}

// Names returns the registered names in insertion order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.locations))
	for i, loc := range r.locations {
		names[i] = loc.Name
	}
	return names
}

// All returns a copy of every location in insertion order.
func (r *Registry) All() []Location {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Location, len(r.locations))
	copy(out, r.locations)
	return out
}

func (r *Registry) indexLocked(name string) int {
	for i, loc := range r.locations {
		if loc.Name == name {
			return i
		}
	}
	return -1
}
