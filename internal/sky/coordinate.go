package sky

import (
	"errors"
	"fmt"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/coord"
	"github.com/litescript/ls-astro/internal/epoch"
	"github.com/litescript/ls-astro/internal/site"
)

// Errors returned by coordinate construction and conversion.
var (
	ErrUnresolvedFrame   = errors.New("unresolved coordinate frame")
	ErrInvalidComponent  = errors.New("invalid coordinate component")
	ErrInvalidCoordinate = errors.New("coordinate was not successfully constructed")
)

// Coordinate is a sky position in a frame, observed at a time from a
// telescope location.
type Coordinate struct {
	left, right angle.Angle
	frame       coord.Mode
	time        *epoch.Time
	location    string
}

// New returns a coordinate in frame. The coordinate is observed now from the
// default location.
func New(left, right angle.Angle, frame coord.Mode) (*Coordinate, error) {
	if !frame.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnresolvedFrame, frame)
	}
	if !left.IsSet() || !right.IsSet() {
		return nil, ErrInvalidComponent
	}
	return &Coordinate{left: left, right: right, frame: frame, time: epoch.Now()}, nil
}

// FromResult wraps a conversion result.
func FromResult(r coord.Result) (*Coordinate, error) {
	return New(r.Left, r.Right, r.Mode)
}

// FromArray builds a coordinate from [left, right] or [left, right, frame].
// Without a frame J2000 is assumed. Components are anything angle.From
// accepts; colon-separated strings for right ascension and hour angle are
// read as hours.
func FromArray(a []any) (*Coordinate, error) {
	if len(a) != 2 && len(a) != 3 {
		return nil, fmt.Errorf("%w: want 2 or 3 elements, got %d", ErrInvalidComponent, len(a))
	}
	frame := coord.J2000
	if len(a) == 3 {
		f, err := frameOf(a[2])
		if err != nil {
			return nil, err
		}
		frame = f
	}
	left, err := component(a[0], leftUnit(frame))
	if err != nil {
		return nil, err
	}
	right, err := component(a[1], angle.Degrees)
	if err != nil {
		return nil, err
	}
	return New(left, right, frame)
}

// FromNamed builds a coordinate from named components such as
// {"ra": ..., "dec": ...} or {"az": ..., "el": ..., "frame": "AzEl"}.
// Without a "frame" key the frames are probed in order and the first whose
// components are all present wins.
func FromNamed(m map[string]any) (*Coordinate, error) {
	var spec frameSpec
	if fv, ok := m["frame"]; ok {
		f, err := frameOf(fv)
		if err != nil {
			return nil, err
		}
		spec, _ = specFor(f)
		if _, _, ok := spec.match(m); !ok {
			return nil, fmt.Errorf("%w: components do not match frame %s", ErrUnresolvedFrame, f)
		}
	} else {
		found := false
		for _, f := range frames {
			if _, _, ok := f.match(m); ok {
				spec, found = f, true
				break
			}
		}
		if !found {
			return nil, ErrUnresolvedFrame
		}
	}

	lk, rk, _ := spec.match(m)
	left, err := component(m[lk], leftUnit(spec.mode))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", lk, err)
	}
	right, err := component(m[rk], angle.Degrees)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rk, err)
	}
	return New(left, right, spec.mode)
}

// From builds a coordinate from any of the supported constructor shapes.
func From(v any) (*Coordinate, error) {
	switch c := v.(type) {
	case *Coordinate:
		if !c.IsValid() {
			return nil, ErrInvalidCoordinate
		}
		return c.Clone(), nil
	case Coordinate:
		return From(&c)
	case coord.Result:
		return FromResult(c)
	case []any:
		return FromArray(c)
	case []string:
		a := make([]any, len(c))
		for i, s := range c {
			a[i] = s
		}
		return FromArray(a)
	case []float64:
		a := make([]any, len(c))
		for i, f := range c {
			a[i] = f
		}
		return FromArray(a)
	case map[string]any:
		return FromNamed(c)
	case nil:
		return nil, fmt.Errorf("%w: no constructor", ErrInvalidComponent)
	}
	return nil, fmt.Errorf("%w: unsupported constructor %T", ErrInvalidComponent, v)
}

// component converts a constructor value to an angle. Colon-separated
// sexagesimal strings are read in units; everything else goes through
// angle.From.
func component(v any, units angle.Unit) (angle.Angle, error) {
	if s, ok := v.(string); ok {
		if t, err := angle.ParseTurns(s, units); err == nil {
			return angle.FromTurns(t), nil
		}
	}
	a, err := angle.From(v)
	if err != nil {
		return angle.Angle{}, fmt.Errorf("%w: %v", ErrInvalidComponent, err)
	}
	if !a.IsSet() {
		return angle.Angle{}, ErrInvalidComponent
	}
	return a, nil
}

// Clone returns an independent copy with its own Time.
func (c *Coordinate) Clone() *Coordinate {
	n := *c
	if c.time != nil {
		n.time = c.time.Clone()
	}
	return &n
}

// IsValid reports whether the coordinate was successfully constructed.
func (c *Coordinate) IsValid() bool {
	return c != nil && c.frame.Valid() && c.left.IsSet() && c.right.IsSet()
}

// Frame returns the frame the coordinate was constructed in.
func (c *Coordinate) Frame() coord.Mode {
	return c.frame
}

// Coordinates returns the stored components.
func (c *Coordinate) Coordinates() coord.Result {
	return coord.Result{Mode: c.frame, Left: c.left, Right: c.right}
}

// Convert returns the position in frame. The coordinate's time and location
// supply the epoch, latitude and longitude; opts override them.
func (c *Coordinate) Convert(frame coord.Mode, opts ...coord.Option) (coord.Result, error) {
	if !c.IsValid() {
		return coord.Result{}, ErrInvalidCoordinate
	}
	if frame == c.frame {
		return c.Coordinates(), nil
	}
	loc := c.Location()
	all := append([]coord.Option{
		coord.WithEpoch(c.time),
		coord.WithLatitude(loc.Latitude),
		coord.WithLongitude(loc.Longitude),
	}, opts...)
	return coord.Convert(c.left, c.right, c.frame, frame, all...)
}

// ConvertNamed is Convert with the frame given by name.
func (c *Coordinate) ConvertNamed(name string, opts ...coord.Option) (coord.Result, error) {
	f, err := ParseFrame(name)
	if err != nil {
		return coord.Result{}, err
	}
	return c.Convert(f, opts...)
}

func (c *Coordinate) ToJ2000(opts ...coord.Option) (coord.Result, error) {
	return c.Convert(coord.J2000, opts...)
}

func (c *Coordinate) ToB1950(opts ...coord.Option) (coord.Result, error) {
	return c.Convert(coord.B1950, opts...)
}

func (c *Coordinate) ToGalactic(opts ...coord.Option) (coord.Result, error) {
	return c.Convert(coord.GALACTIC, opts...)
}

func (c *Coordinate) ToAzEl(opts ...coord.Option) (coord.Result, error) {
	return c.Convert(coord.AZEL, opts...)
}

func (c *Coordinate) ToHADec(opts ...coord.Option) (coord.Result, error) {
	return c.Convert(coord.HADEC, opts...)
}

func (c *Coordinate) ToDate(opts ...coord.Option) (coord.Result, error) {
	return c.Convert(coord.DATE, opts...)
}

func (c *Coordinate) ToXY(opts ...coord.Option) (coord.Result, error) {
	return c.Convert(coord.EWXY, opts...)
}

// DistanceTo returns the angular distance to other. Galactic coordinates
// are compared in B1950 and everything else in J2000.
func (c *Coordinate) DistanceTo(other *Coordinate) (angle.Angle, error) {
	if !c.IsValid() || !other.IsValid() {
		return angle.Angle{}, ErrInvalidCoordinate
	}
	frame := coord.J2000
	if c.frame == coord.GALACTIC {
		frame = coord.B1950
	}
	ours, err := c.Convert(frame)
	if err != nil {
		return angle.Angle{}, fmt.Errorf("distance: %w", err)
	}
	theirs, err := other.Convert(frame)
	if err != nil {
		return angle.Angle{}, fmt.Errorf("distance: %w", err)
	}
	return coord.AngularDistance(ours, theirs)
}

// Sun returns the Sun's position at the coordinate's time.
func (c *Coordinate) Sun() *Coordinate {
	ra, dec := coord.SolarRADec(c.time)
	return &Coordinate{left: ra, right: dec, frame: coord.J2000, time: c.time, location: c.location}
}

// SunDistance returns the angular distance from the Sun.
func (c *Coordinate) SunDistance() (angle.Angle, error) {
	if !c.IsValid() {
		return angle.Angle{}, ErrInvalidCoordinate
	}
	return c.DistanceTo(c.Sun())
}

// SetLocation observes the coordinate from a registered location; "" selects
// the default. Unknown names leave the location unchanged.
func (c *Coordinate) SetLocation(name string) (*Coordinate, error) {
	if _, err := c.time.SetLocation(name); err != nil {
		return c, err
	}
	c.location = name
	return c, nil
}

// Location returns the location the coordinate is observed from.
func (c *Coordinate) Location() site.Location {
	return c.time.Location()
}

// LocationName returns the bound location name, "" meaning the default.
func (c *Coordinate) LocationName() string {
	return c.location
}

// SetTime observes the coordinate at t and adopts t's location. A nil t
// moves the coordinate's own time to now.
func (c *Coordinate) SetTime(t *epoch.Time) *Coordinate {
	if t == nil {
		c.time.SetNow()
		return c
	}
	c.time = t
	c.location = t.LocationName()
	return c
}

// Time returns the time the coordinate is observed at.
func (c *Coordinate) Time() *epoch.Time {
	return c.time
}

func (c *Coordinate) String() string {
	if !c.IsValid() {
		return "<invalid>"
	}
	l, r := c.frame.Names()
	return fmt.Sprintf("%s %s=%s %s=%s", c.frame, l, c.left.Format(leftFormat(c.frame)), r, c.right.Format(angle.DefaultFormat()))
}

// leftUnit is Hours for frames whose left component is right ascension or
// hour angle.
func leftUnit(m coord.Mode) angle.Unit {
	switch m {
	case coord.J2000, coord.B1950, coord.DATE, coord.HADEC:
		return angle.Hours
	}
	return angle.Degrees
}

func leftFormat(m coord.Mode) angle.FormatOptions {
	if leftUnit(m) == angle.Hours {
		return angle.HoursFormat()
	}
	return angle.DefaultFormat()
}
