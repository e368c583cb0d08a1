package coord

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/epoch"
)

// Errors returned by Convert.
var (
	ErrInvalidAngle     = errors.New("invalid angle")
	ErrInvalidMode      = errors.New("invalid coordinate mode")
	ErrEpochRequired    = errors.New("epoch required but none supplied")
	ErrLatitudeRequired = errors.New("latitude required but none supplied")
	ErrModeMismatch     = errors.New("coordinate modes differ")
)

// LegObserver is told about every frame-to-frame leg a conversion walks.
type LegObserver interface {
	ObserveLeg(from, to Mode)
}

type options struct {
	epoch     *epoch.Time
	latitude  angle.Angle
	longitude angle.Angle
	ref0      float64
	observer  LegObserver
}

// Option configures a conversion.
type Option func(*options)

// WithEpoch sets the time of observation. Its location supplies the LMST
// unless WithLongitude is also given.
func WithEpoch(t *epoch.Time) Option {
	return func(o *options) { o.epoch = t }
}

// WithLatitude sets the observer latitude.
func WithLatitude(lat angle.Angle) Option {
	return func(o *options) { o.latitude = lat }
}

// WithLongitude sets the observer longitude used for the LMST.
func WithLongitude(lon angle.Angle) Option {
	return func(o *options) { o.longitude = lon }
}

// WithRefraction sets the refraction constant in turns.
func WithRefraction(ref0 float64) Option {
	return func(o *options) { o.ref0 = ref0 }
}

// WithLegObserver reports each traversed leg to obs.
func WithLegObserver(obs LegObserver) Option {
	return func(o *options) { o.observer = obs }
}

// Result is a position in a frame.
type Result struct {
	Mode  Mode
	Left  angle.Angle
	Right angle.Angle
}

// Names returns the component names for the result's mode.
func (r Result) Names() (left, right string) {
	return r.Mode.Names()
}

// Component returns the named component, if the mode has it.
func (r Result) Component(name string) (angle.Angle, bool) {
	l, rt := r.Names()
	switch name {
	case l:
		return r.Left, true
	case rt:
		return r.Right, true
	}
	return angle.Angle{}, false
}

func (r Result) component(name string) angle.Angle {
	a, _ := r.Component(name)
	return a
}

func (r Result) RightAscension() angle.Angle { return r.component("rightAscension") }
func (r Result) Declination() angle.Angle    { return r.component("declination") }
func (r Result) HourAngle() angle.Angle      { return r.component("hourAngle") }
func (r Result) Azimuth() angle.Angle        { return r.component("azimuth") }
func (r Result) Elevation() angle.Angle      { return r.component("elevation") }
func (r Result) X() angle.Angle              { return r.component("x") }
func (r Result) Y() angle.Angle              { return r.component("y") }
func (r Result) Latitude() angle.Angle       { return r.component("latitude") }
func (r Result) Longitude() angle.Angle      { return r.component("longitude") }

// converter carries the per-call prerequisites.
type converter struct {
	opts   options
	prcmat Matrix
	vonc   Vec3
	lmst   float64
	lat    float64
}

// Convert transforms (left, right) from frame in to frame out, walking every
// frame in between. Precession, nutation, aberration and the LMST are only
// computed when the walk needs them.
func Convert(left, right angle.Angle, in, out Mode, opts ...Option) (Result, error) {
	if !validAngle(left) || !validAngle(right) {
		return Result{}, ErrInvalidAngle
	}
	if !in.Valid() {
		return Result{}, fmt.Errorf("input %w: %d", ErrInvalidMode, int(in))
	}
	if !out.Valid() {
		return Result{}, fmt.Errorf("output %w: %d", ErrInvalidMode, int(out))
	}
	if in == out {
		return Result{Mode: out, Left: left, Right: right}, nil
	}

	c := converter{opts: options{ref0: DefaultRefraction}}
	for _, opt := range opts {
		opt(&c.opts)
	}
	if err := c.prepare(min(in, out), max(in, out)); err != nil {
		return Result{}, fmt.Errorf("convert %s to %s: %w", in, out, err)
	}

	l, r := left.Turns(), right.Turns()
	for m := in; m > out; m-- {
		l, r = c.down(m, l, r)
		c.observe(m, m-1)
	}
	for m := in; m < out; m++ {
		l, r = c.up(m, l, r)
		c.observe(m, m+1)
	}
	return Result{Mode: out, Left: angle.FromTurns(l), Right: angle.FromTurns(r)}, nil
}

func validAngle(a angle.Angle) bool {
	if !a.IsSet() {
		return false
	}
	v, _ := a.Value()
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (c *converter) prepare(lo, hi Mode) error {
	if lo <= AZEL && hi >= HADEC {
		if !c.opts.latitude.IsSet() {
			return ErrLatitudeRequired
		}
		c.lat = c.opts.latitude.Radians()
	}
	if lo > DATE || hi < DATE {
		return nil
	}
	if c.opts.epoch == nil {
		return ErrEpochRequired
	}

	mjd := c.opts.epoch.MJD()
	eph := EphemVars(mjd)
	nut := Nutate(eph)
	if hi >= J2000 {
		c.prcmat = PrecessionNutation(mjd, nut)
	}
	if lo <= HADEC {
		c.vonc = Aberration(mjd, eph, nut)
		c.lmst = c.localSiderealTime(mjd)
	}
	return nil
}

func (c *converter) localSiderealTime(mjd float64) float64 {
	if !c.opts.longitude.IsSet() {
		return c.opts.epoch.LMST().Turns()
	}
	gmst := epoch.GMST(mjd, c.opts.epoch.Location().DUT1)
	return angle.BoundNumber(gmst+c.opts.longitude.Turns(), 0, 1)
}

func (c *converter) observe(from, to Mode) {
	if c.opts.observer != nil {
		c.opts.observer.ObserveLeg(from, to)
	}
}

// down takes a position in frame m to frame m-1.
func (c *converter) down(m Mode, l, r float64) (float64, float64) {
	switch m {
	case GALACTIC:
		return turnsOf(GalToFK4(angle.FromTurns(l), angle.FromTurns(r)))
	case B1950:
		return turnsOf(FK4ToFK5(angle.FromTurns(l), angle.FromTurns(r)))
	case J2000:
		v := c.prcmat.Apply(pol2r(l*twoPi, r*twoPi))
		return r2pol(v.X, v.Y, v.Z)
	case DATE:
		v := pol2r(l*twoPi, r*twoPi).Add(c.vonc)
		ra, dec := r2pol(v.X, v.Y, v.Z)
		return wrapHalf(c.lmst - ra), dec
	case HADEC:
		az, el := eqAzEl(l*twoPi, r*twoPi, c.lat, false)
		return az, Refract(el, c.opts.ref0)
	case AZEL:
		return turnsOf(AzElToXY(angle.FromTurns(l), angle.FromTurns(r)))
	}
	return l, r
}

// up takes a position in frame m to frame m+1.
func (c *converter) up(m Mode, l, r float64) (float64, float64) {
	switch m {
	case EWXY:
		return turnsOf(XYToAzEl(angle.FromTurns(l), angle.FromTurns(r)))
	case AZEL:
		el, _ := Unrefract(r, c.opts.ref0)
		ha, dec := eqAzEl(l*twoPi, el*twoPi, c.lat, true)
		return wrapHalf(ha), dec
	case HADEC:
		ra := angle.BoundNumber(c.lmst-l, 0, 1)
		v := pol2r(ra*twoPi, r*twoPi).Sub(c.vonc)
		return r2pol(v.X, v.Y, v.Z)
	case DATE:
		v := c.prcmat.Transpose().Apply(pol2r(l*twoPi, r*twoPi))
		return r2pol(v.X, v.Y, v.Z)
	case J2000:
		return turnsOf(FK5ToFK4(angle.FromTurns(l), angle.FromTurns(r)))
	case B1950:
		return turnsOf(FK4ToGal(angle.FromTurns(l), angle.FromTurns(r)))
	}
	return l, r
}

func turnsOf(l, r angle.Angle) (float64, float64) {
	return l.Turns(), r.Turns()
}
