// Package source models named astronomical targets: their sky position,
// hour angle, and rise and set sidereal times at a telescope.
package source

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/coord"
	"github.com/litescript/ls-astro/internal/epoch"
	"github.com/litescript/ls-astro/internal/site"
	"github.com/litescript/ls-astro/internal/sky"
)

// Errors returned by source construction and rise/set calculations.
var (
	ErrNoName           = errors.New("source has no name")
	ErrUnsupportedMount = errors.New("rise and set are not supported for this mount")
	ErrNoCrossing       = errors.New("source never crosses the elevation")
)

// Source is a named target with a sky position.
type Source struct {
	name       string
	coordinate *sky.Coordinate
	altNames   []string
	parameters map[string]any
}

// Option configures a Source.
type Option func(*Source)

// WithAltNames records alternative names. Empty and repeated names are
// dropped.
func WithAltNames(names ...string) Option {
	return func(s *Source) {
		for _, n := range names {
			s.addAltName(n)
		}
	}
}

// WithParameters attaches free-form parameters, such as catalogue fluxes.
func WithParameters(p map[string]any) Option {
	return func(s *Source) {
		for k, v := range p {
			s.parameters[k] = v
		}
	}
}

// New returns a source named name at c.
func New(name string, c *sky.Coordinate, opts ...Option) (*Source, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNoName
	}
	if c == nil || !c.IsValid() {
		return nil, fmt.Errorf("source %s: %w", name, sky.ErrInvalidCoordinate)
	}
	s := &Source{
		name:       name,
		coordinate: c,
		parameters: make(map[string]any),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Source) addAltName(n string) {
	n = strings.TrimSpace(n)
	if n == "" || n == s.name {
		return
	}
	for _, have := range s.altNames {
		if have == n {
			return
		}
	}
	s.altNames = append(s.altNames, n)
}

// Details summarises a source.
type Details struct {
	Name       string
	Coordinate *sky.Coordinate
	AltNames   []string
}

// Details returns the name, position and alternative names.
func (s *Source) Details() Details {
	return Details{Name: s.name, Coordinate: s.coordinate, AltNames: s.AltNames()}
}

// Name returns the primary name.
func (s *Source) Name() string { return s.name }

// Coordinate returns the source position.
func (s *Source) Coordinate() *sky.Coordinate { return s.coordinate }

// AltNames returns a copy of the alternative names.
func (s *Source) AltNames() []string {
	return append([]string(nil), s.altNames...)
}

// Parameters returns a copy of the named parameters, or all of them when no
// keys are given. Unknown keys are left out.
func (s *Source) Parameters(keys ...string) map[string]any {
	out := make(map[string]any)
	if len(keys) == 0 {
		for k, v := range s.parameters {
			out[k] = v
		}
		return out
	}
	for _, k := range keys {
		if v, ok := s.parameters[k]; ok {
			out[k] = v
		}
	}
	return out
}

// SetParameter stores a parameter.
func (s *Source) SetParameter(key string, value any) *Source {
	s.parameters[key] = value
	return s
}

// UseTime observes the source at t. A nil t is ignored.
func (s *Source) UseTime(t *epoch.Time) *Source {
	if t != nil {
		s.coordinate.SetTime(t)
	}
	return s
}

// TimeIsNow observes the source at the current instant.
func (s *Source) TimeIsNow() *Source {
	s.coordinate.SetTime(nil)
	return s
}

// SetLocation observes the source from a registered location.
func (s *Source) SetLocation(name string) (*Source, error) {
	if _, err := s.coordinate.SetLocation(name); err != nil {
		return s, fmt.Errorf("source %s: %w", s.name, err)
	}
	return s, nil
}

// HourAngle returns the current hour angle in turns.
func (s *Source) HourAngle() (angle.Angle, error) {
	r, err := s.coordinate.ToHADec()
	if err != nil {
		return angle.Angle{}, fmt.Errorf("hour angle of %s: %w", s.name, err)
	}
	return r.HourAngle(), nil
}

// AzEl returns the current horizon position.
func (s *Source) AzEl() (coord.Result, error) {
	r, err := s.coordinate.ToAzEl()
	if err != nil {
		return coord.Result{}, fmt.Errorf("azel of %s: %w", s.name, err)
	}
	return r, nil
}

// SetHourAngle returns the hour angle at which the source sets below the
// location's low elevation limit. Sources fixed on the horizon return the
// never-sets sentinel when at or above the limit and never-rises otherwise.
func (s *Source) SetHourAngle() (angle.Angle, error) {
	loc := s.coordinate.Location()
	if loc.Mount != site.MountAzEl {
		return angle.Angle{}, fmt.Errorf("set hour angle at %s: %w", loc.Name, ErrUnsupportedMount)
	}
	switch s.coordinate.Frame() {
	case coord.AZEL, coord.EWXY:
		azel, err := s.AzEl()
		if err != nil {
			return angle.Angle{}, err
		}
		if azel.Elevation().Degrees() >= loc.Limits.ElevationLow.Degrees() {
			return angle.FromDegrees(coord.NeverSetsDegrees), nil
		}
		return angle.FromDegrees(coord.NeverRisesDegrees), nil
	}
	return s.HARiseSet(nil)
}

// HARiseSet returns the hour angle at which the source crosses elevation,
// or the location's low limit when elevation is nil. The result is a
// rise/set sentinel when the source never crosses it.
func (s *Source) HARiseSet(elevation *angle.Angle) (angle.Angle, error) {
	loc := s.coordinate.Location()
	el := loc.Limits.ElevationLow
	if elevation != nil {
		el = *elevation
	}
	if !el.IsSet() {
		return angle.Angle{}, fmt.Errorf("rise/set of %s: %w", s.name, coord.ErrInvalidAngle)
	}
	if loc.Mount != site.MountAzEl {
		return angle.Angle{}, fmt.Errorf("rise/set at %s: %w", loc.Name, ErrUnsupportedMount)
	}
	j, err := s.coordinate.ToJ2000()
	if err != nil {
		return angle.Angle{}, fmt.Errorf("rise/set of %s: %w", s.name, err)
	}
	return coord.HaSetAzEl(j.Declination(), loc.Latitude, el), nil
}

// LSTRise returns the local sidereal time at which the source rises above
// elevation, in turns. Sentinels pass through unchanged.
func (s *Source) LSTRise(elevation *angle.Angle) (angle.Angle, error) {
	return s.lstCrossing(elevation, -1)
}

// LSTSet returns the local sidereal time at which the source sets below
// elevation, in turns. Sentinels pass through unchanged.
func (s *Source) LSTSet(elevation *angle.Angle) (angle.Angle, error) {
	return s.lstCrossing(elevation, 1)
}

func (s *Source) lstCrossing(elevation *angle.Angle, sign float64) (angle.Angle, error) {
	ha, err := s.HARiseSet(elevation)
	if err != nil {
		return angle.Angle{}, err
	}
	if coord.IsSentinel(ha) {
		return ha, nil
	}
	j, err := s.coordinate.ToJ2000()
	if err != nil {
		return angle.Angle{}, fmt.Errorf("lst of %s: %w", s.name, err)
	}
	lst := angle.BoundNumber(j.RightAscension().Turns()+sign*ha.Turns(), 0, 1)
	if lst >= 1 {
		lst = 0
	}
	return angle.FromTurns(lst), nil
}

// TimeUntilElevation returns the sidereal interval, as an hour angle in
// turns, until the source next crosses elevation. Sentinels pass through.
func (s *Source) TimeUntilElevation(elevation *angle.Angle) (angle.Angle, error) {
	cross, err := s.HARiseSet(elevation)
	if err != nil {
		return angle.Angle{}, err
	}
	if coord.IsSentinel(cross) {
		return cross, nil
	}
	curr, err := s.HourAngle()
	if err != nil {
		return angle.Angle{}, err
	}
	c, h := cross.Turns(), curr.Turns()
	var d float64
	if c > math.Abs(h) {
		// Up now: wait for the set.
		d = c - h
	} else {
		// Down now: wait for the rise at -c.
		d = -c - h
		if d < 0 {
			d++
		}
	}
	return angle.FromTurns(d), nil
}

// TimeUntilElevationDuration is TimeUntilElevation in solar time. It fails
// with ErrNoCrossing for sources that never cross elevation.
func (s *Source) TimeUntilElevationDuration(elevation *angle.Angle) (time.Duration, error) {
	d, err := s.TimeUntilElevation(elevation)
	if err != nil {
		return 0, err
	}
	if coord.IsSentinel(d) {
		return 0, fmt.Errorf("%s: %w", s.name, ErrNoCrossing)
	}
	return siderealToSolar(d.Turns()), nil
}

// IsUp reports whether the source is above its low elevation limit at lst.
func (s *Source) IsUp(lst angle.Angle) (bool, error) {
	rise, err := s.LSTRise(nil)
	if err != nil {
		return false, err
	}
	switch {
	case coord.NeverSets(rise):
		return true, nil
	case coord.NeverRises(rise):
		return false, nil
	}
	set, err := s.LSTSet(nil)
	if err != nil {
		return false, err
	}
	return coord.SourceIsUp(rise, set, lst), nil
}

func (s *Source) String() string {
	return fmt.Sprintf("%s (%s)", s.name, s.coordinate)
}

func siderealToSolar(turns float64) time.Duration {
	sec := turns * 86400 / epoch.Solar2Sidereal
	return time.Duration(math.Round(sec * float64(time.Second)))
}
