package epoch

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/site"
)

// DefaultFormat is the layout used by Format when none is given.
const DefaultFormat = "%y-%m-%d %H:%M:%S"

// DefaultLMSTFormat is the layout used by LMSTString when none is given.
const DefaultLMSTFormat = "%H:%M:%S"

// nowFunc is replaced in tests.
var nowFunc = time.Now

// Time is a mutable UTC instant bound to a telescope location. Sidereal
// computations use the location's longitude and DUT1.
type Time struct {
	t        time.Time
	location string
	registry *site.Registry
}

// Option configures a Time.
type Option func(*Time)

// WithLocation binds the Time to a registered location. An empty name uses
// the registry default.
func WithLocation(name string) Option {
	return func(t *Time) { t.location = name }
}

// WithRegistry resolves locations against r instead of the process-wide
// registry.
func WithRegistry(r *site.Registry) Option {
	return func(t *Time) { t.registry = r }
}

func newTime(tm time.Time, opts []Option) *Time {
	t := &Time{t: tm.UTC()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Now returns the current instant.
func Now(opts ...Option) *Time {
	return newTime(nowFunc(), opts)
}

// FromTime wraps an existing time.Time.
func FromTime(tm time.Time, opts ...Option) *Time {
	return newTime(tm, opts)
}

// FromMJD returns the instant of a Modified Julian Date.
func FromMJD(mjd float64, opts ...Option) *Time {
	return newTime(TimeOfMJD(mjd), opts)
}

var utcFieldSplit = regexp.MustCompile(`[\s\-:T]+`)

// FromUTCString parses "YYYY-MM-DD HH:MM:SS" style strings. Any of space,
// dash, colon or T separate the six fields; seconds may be fractional.
func FromUTCString(s string, opts ...Option) (*Time, error) {
	fields := utcFieldSplit.Split(strings.TrimSuffix(strings.TrimSpace(s), "Z"), -1)
	if len(fields) != 6 {
		return nil, fmt.Errorf("parse UTC %q: want 6 fields, got %d", s, len(fields))
	}
	var ints [5]int
	for i := 0; i < 5; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, fmt.Errorf("parse UTC %q: %w", s, err)
		}
		ints[i] = v
	}
	sec, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return nil, fmt.Errorf("parse UTC %q: %w", s, err)
	}
	c := Calendar{Year: ints[0], Month: ints[1], Day: ints[2], Hour: ints[3], Minute: ints[4], Second: sec}
	if c.Month < 1 || c.Month > 12 || c.Day < 1 || c.Day > 31 ||
		c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 || sec < 0 || sec >= 61 {
		return nil, fmt.Errorf("parse UTC %q: field out of range", s)
	}
	return newTime(c.Time(), opts), nil
}

// Clone returns an independent copy.
func (t *Time) Clone() *Time {
	c := *t
	return &c
}

// UTC returns the instant.
func (t *Time) UTC() time.Time {
	return t.t
}

// Registry returns the registry used for location lookups.
func (t *Time) Registry() *site.Registry {
	if t.registry != nil {
		return t.registry
	}
	return site.Default()
}

// LocationName returns the bound location name, "" meaning the default.
func (t *Time) LocationName() string {
	return t.location
}

// Location resolves the bound location, falling back to the registry
// default if the name is no longer known.
func (t *Time) Location() site.Location {
	reg := t.Registry()
	loc, err := reg.Get(t.location)
	if err != nil {
		return reg.Default()
	}
	return loc
}

// SetLocation binds the Time to a registered location; "" selects the
// default. Unknown names leave the location unchanged.
func (t *Time) SetLocation(name string) (*Time, error) {
	if name != "" {
		if _, err := t.Registry().Get(name); err != nil {
			return t, err
		}
	}
	t.location = name
	return t, nil
}

// Calendar returns the UTC calendar fields.
func (t *Time) Calendar() Calendar {
	return CalendarOf(t.t)
}

// MJD returns the Modified Julian Date.
func (t *Time) MJD() float64 {
	return MJDOf(t.t)
}

// GMST returns Greenwich Mean Sidereal Time in turns.
func (t *Time) GMST() float64 {
	return GMST(t.MJD(), t.Location().DUT1)
}

// LMST returns the local mean sidereal time at the bound location.
func (t *Time) LMST() angle.Angle {
	loc := t.Location()
	lmst := GMST(t.MJD(), loc.DUT1) + loc.Longitude.Turns()
	return angle.FromTurns(angle.BoundNumber(lmst, 0, 1))
}

// LMSTString formats the LMST as a time of day.
func (t *Time) LMSTString(format string) string {
	if format == "" {
		format = DefaultLMSTFormat
	}
	return formatCalendar(dayFractionCalendar(t.LMST().Turns()), format)
}

// LMSTToMJD returns the MJD on the current UTC day at which the bound
// location reaches lmst.
func (t *Time) LMSTToMJD(lmst angle.Angle) float64 {
	loc := t.Location()
	day := math.Floor(t.MJD())
	gmst0 := GMST(day, loc.DUT1)
	d := frac(lmst.Turns() - loc.Longitude.Turns() - gmst0)
	return day + d/Solar2Sidereal
}

// SetNow moves the Time to the current instant.
func (t *Time) SetNow() *Time {
	t.t = nowFunc().UTC()
	return t
}

// AddSeconds moves the Time by s seconds.
func (t *Time) AddSeconds(s float64) *Time {
	t.t = t.t.Add(time.Duration(math.Round(s * 1e9)))
	return t
}

// NextLMST moves the Time forward to the next instant with the given LMST.
func (t *Time) NextLMST(target angle.Angle) *Time {
	t.findLMST(target.Turns(), 1)
	return t
}

// PreviousLMST moves the Time back to the last instant with the given LMST.
func (t *Time) PreviousLMST(target angle.Angle) *Time {
	t.findLMST(target.Turns(), -1)
	return t
}

// lmstTolerance is about 0.09 sidereal seconds.
const lmstTolerance = 1e-6

func (t *Time) findLMST(target float64, dir float64) {
	target = frac(target)
	d := target - t.LMST().Turns()
	if d <= 1e-4 && dir > 0 {
		d++
	} else if d >= -1e-4 && dir < 0 {
		d--
	}
	t.AddSeconds(d * 86400 / Solar2Sidereal)

	for pass := 0; pass < 3; pass++ {
		r := target - t.LMST().Turns()
		if r > 0.5 {
			r--
		} else if r <= -0.5 {
			r++
		}
		if math.Abs(r) < lmstTolerance {
			return
		}
		if pass < 2 {
			t.AddSeconds(r * 86400 / Solar2Sidereal)
		} else {
			t.AddSeconds(math.Copysign(1, r))
		}
	}
}

// Format renders the UTC time using %y %m %d %H %M %S and %O (month name).
func (t *Time) Format(format string) string {
	if format == "" {
		format = DefaultFormat
	}
	return formatCalendar(t.Calendar(), format)
}

// TimeString is Format under its traditional name.
func (t *Time) TimeString(format string) string {
	return t.Format(format)
}

// LocalTimeString renders the time in the bound location's time zone.
func (t *Time) LocalTimeString(format string) string {
	if format == "" {
		format = DefaultFormat
	}
	offset := time.Duration(t.Location().TimezoneOffset) * time.Minute
	return formatCalendar(CalendarOf(t.t.Add(offset)), format)
}

func (t *Time) String() string {
	return t.Format(DefaultFormat)
}

func dayFractionCalendar(f float64) Calendar {
	ms := int64(math.Round(frac(f) * msPerDay))
	if ms >= msPerDay {
		ms -= msPerDay
	}
	return Calendar{
		Hour:   int(ms / 3600000),
		Minute: int(ms / 60000 % 60),
		Second: float64(ms%60000) / 1000,
	}
}

func formatCalendar(c Calendar, format string) string {
	month := ""
	if c.Month >= 1 && c.Month <= 12 {
		month = time.Month(c.Month).String()
	}
	r := strings.NewReplacer(
		"%y", strconv.Itoa(c.Year),
		"%m", fmt.Sprintf("%02d", c.Month),
		"%d", fmt.Sprintf("%02d", c.Day),
		"%H", fmt.Sprintf("%02d", c.Hour),
		"%M", fmt.Sprintf("%02d", c.Minute),
		"%S", fmt.Sprintf("%02d", int(math.Floor(c.Second))),
		"%O", month,
	)
	return r.Replace(format)
}
