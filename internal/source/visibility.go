package source

import (
	"fmt"
	"time"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/coord"
	"github.com/litescript/ls-astro/internal/epoch"
	"github.com/litescript/ls-astro/internal/sky"
)

// SunName is the name given to the Sun.
const SunName = "Sol"

// Solar elevations for sunrise and the three twilights.
var (
	SunriseElevation     = angle.New(-50, angle.Arcminutes)
	CivilTwilight        = angle.FromDegrees(-6)
	NauticalTwilight     = angle.FromDegrees(-12)
	AstronomicalTwilight = angle.FromDegrees(-18)
)

// Window is a rise-set cycle above an elevation.
type Window struct {
	Elevation     angle.Angle
	RiseLST       angle.Angle // turns
	SetLST        angle.Angle // turns
	Rise          time.Time   // next rise after the source time
	Set           time.Time   // first set after Rise
	AlwaysVisible bool        // never sets (circumpolar)
	NeverVisible  bool        // never rises
}

// RiseSet returns the next rise-set window above elevation, or the
// location's low limit when elevation is nil.
func (s *Source) RiseSet(elevation *angle.Angle) (Window, error) {
	rise, err := s.LSTRise(elevation)
	if err != nil {
		return Window{}, err
	}
	w := Window{Elevation: s.coordinate.Location().Limits.ElevationLow}
	if elevation != nil {
		w.Elevation = *elevation
	}
	switch {
	case coord.NeverSets(rise):
		w.AlwaysVisible = true
		return w, nil
	case coord.NeverRises(rise):
		w.NeverVisible = true
		return w, nil
	}
	set, err := s.LSTSet(elevation)
	if err != nil {
		return Window{}, err
	}
	w.RiseLST, w.SetLST = rise, set

	t := s.coordinate.Time().Clone().NextLMST(rise)
	w.Rise = t.UTC()
	w.Set = t.NextLMST(set).UTC()
	return w, nil
}

// Sun returns the Sun at t, observed from t's location.
func Sun(t *epoch.Time) (*Source, error) {
	if t == nil {
		t = epoch.Now()
	}
	ra, dec := coord.SolarRADec(t)
	c, err := sky.New(ra, dec, coord.J2000)
	if err != nil {
		return nil, fmt.Errorf("sun: %w", err)
	}
	c.SetTime(t)
	return New(SunName, c)
}

// SolarWindows holds the Sun's rise-set windows for one day.
type SolarWindows struct {
	Sunrise      Window
	Civil        Window
	Nautical     Window
	Astronomical Window
}

// SolarTimes returns sunrise, sunset and twilight windows starting from the
// UTC day of t at t's location.
func SolarTimes(t *epoch.Time) (SolarWindows, error) {
	if t == nil {
		t = epoch.Now()
	}
	day := t.Clone()
	day.AddSeconds(-day.Calendar().DayFraction() * 86400)

	sun, err := Sun(day)
	if err != nil {
		return SolarWindows{}, err
	}
	var out SolarWindows
	for _, c := range []struct {
		el  angle.Angle
		dst *Window
	}{
		{SunriseElevation, &out.Sunrise},
		{CivilTwilight, &out.Civil},
		{NauticalTwilight, &out.Nautical},
		{AstronomicalTwilight, &out.Astronomical},
	} {
		el := c.el
		w, err := sun.RiseSet(&el)
		if err != nil {
			return SolarWindows{}, fmt.Errorf("solar times: %w", err)
		}
		*c.dst = w
	}
	return out, nil
}
