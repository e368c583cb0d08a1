package source

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/coord"
	"github.com/litescript/ls-astro/internal/epoch"
	"github.com/litescript/ls-astro/internal/site"
	"github.com/litescript/ls-astro/internal/sky"
)

// at returns a J2000 coordinate observed from ATCA at mjd.
func at(t *testing.T, raHours, decDeg, mjd float64) *sky.Coordinate {
	t.Helper()
	c, err := sky.New(angle.FromHours(raHours), angle.FromDegrees(decDeg), coord.J2000)
	if err != nil {
		t.Fatalf("sky.New: %v", err)
	}
	c.SetTime(epoch.FromMJD(mjd))
	return c
}

func TestNew(t *testing.T) {
	c := at(t, 19.66, -63.71, 60000.5)
	if _, err := New("  ", c); !errors.Is(err, ErrNoName) {
		t.Errorf("New(blank) error = %v, want ErrNoName", err)
	}
	if _, err := New("1934-638", nil); !errors.Is(err, sky.ErrInvalidCoordinate) {
		t.Errorf("New(nil coordinate) error = %v, want ErrInvalidCoordinate", err)
	}

	s, err := New("1934-638", c,
		WithAltNames("PKS 1934-638", "", "PKS 1934-638", "1934-638", "J1939-6342"),
		WithParameters(map[string]any{"flux": 14.9}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d := s.Details()
	if d.Name != "1934-638" || d.Coordinate != c {
		t.Errorf("Details() = %+v", d)
	}
	want := []string{"PKS 1934-638", "J1939-6342"}
	if len(d.AltNames) != len(want) {
		t.Fatalf("AltNames = %v, want %v", d.AltNames, want)
	}
	for i := range want {
		if d.AltNames[i] != want[i] {
			t.Errorf("AltNames[%d] = %q, want %q", i, d.AltNames[i], want[i])
		}
	}
}

func TestParameters(t *testing.T) {
	s, _ := New("x", at(t, 1, -40, 60000.5), WithParameters(map[string]any{"flux": 1.5, "band": "L"}))
	s.SetParameter("spectral_index", -0.7)

	all := s.Parameters()
	if len(all) != 3 {
		t.Errorf("Parameters() = %v, want 3 entries", all)
	}
	all["flux"] = 99.0
	if got := s.Parameters("flux")["flux"]; got != 1.5 {
		t.Errorf("Parameters() returned a live map: flux = %v", got)
	}

	some := s.Parameters("band", "missing")
	if len(some) != 1 || some["band"] != "L" {
		t.Errorf("Parameters(band, missing) = %v", some)
	}
}

func TestHARiseSet(t *testing.T) {
	lat := site.Default().Default().Latitude
	tests := []struct {
		name       string
		dec        float64
		neverSets  bool
		neverRises bool
	}{
		{"rises and sets", -63.71, false, false},
		{"equatorial", 0, false, false},
		{"circumpolar", -89, true, false},
		{"northern", 70, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := New(tt.name, at(t, 5, tt.dec, 60000.5))
			ha, err := s.HARiseSet(nil)
			if err != nil {
				t.Fatalf("HARiseSet: %v", err)
			}
			if coord.NeverSets(ha) != tt.neverSets || coord.NeverRises(ha) != tt.neverRises {
				t.Fatalf("HARiseSet() = %v deg", ha.Degrees())
			}
			if coord.IsSentinel(ha) {
				return
			}
			_, el := coord.EqAzEl(ha, angle.FromDegrees(tt.dec), lat, false)
			if math.Abs(el.Degrees()-12) > 1e-6 {
				t.Errorf("elevation at HARiseSet() = %v, want 12", el.Degrees())
			}
		})
	}
}

func TestHARiseSetElevation(t *testing.T) {
	s, _ := New("x", at(t, 5, -30, 60000.5))
	low, _ := s.HARiseSet(nil)
	el := angle.FromDegrees(40)
	high, err := s.HARiseSet(&el)
	if err != nil {
		t.Fatal(err)
	}
	if high.Turns() >= low.Turns() {
		t.Errorf("HA at 40 deg = %v, want below HA at limit %v", high.Turns(), low.Turns())
	}
	unset := angle.Angle{}
	if _, err := s.HARiseSet(&unset); !errors.Is(err, coord.ErrInvalidAngle) {
		t.Errorf("HARiseSet(unset) error = %v, want ErrInvalidAngle", err)
	}
}

func TestLSTRiseSet(t *testing.T) {
	s, _ := New("x", at(t, 23.5, -50, 60000.5))
	rise, err := s.LSTRise(nil)
	if err != nil {
		t.Fatal(err)
	}
	set, err := s.LSTSet(nil)
	if err != nil {
		t.Fatal(err)
	}
	ha, _ := s.HARiseSet(nil)
	for _, a := range []angle.Angle{rise, set} {
		if a.Turns() < 0 || a.Turns() >= 1 {
			t.Errorf("LST %v outside [0,1)", a.Turns())
		}
	}
	span := angle.BoundNumber(set.Turns()-rise.Turns(), 0, 1)
	if math.Abs(span-2*ha.Turns()) > 1e-9 {
		t.Errorf("set - rise = %v turns, want %v", span, 2*ha.Turns())
	}

	circ, _ := New("pole", at(t, 3, -88, 60000.5))
	if got, _ := circ.LSTRise(nil); !coord.NeverSets(got) {
		t.Errorf("LSTRise(circumpolar) = %v, want never-sets sentinel", got.Degrees())
	}
}

func TestUnsupportedMount(t *testing.T) {
	reg, err := site.NewRegistry(site.Location{
		Name:      "Tidbinbilla",
		Longitude: angle.FromDegrees(148.98),
		Latitude:  angle.FromDegrees(-35.4),
		Mount:     site.MountXY,
	})
	if err != nil {
		t.Fatal(err)
	}
	c := at(t, 5, -30, 60000.5)
	c.SetTime(epoch.FromMJD(60000.5, epoch.WithRegistry(reg)))
	s, _ := New("x", c)

	if _, err := s.HARiseSet(nil); !errors.Is(err, ErrUnsupportedMount) {
		t.Errorf("HARiseSet() error = %v, want ErrUnsupportedMount", err)
	}
	if _, err := s.SetHourAngle(); !errors.Is(err, ErrUnsupportedMount) {
		t.Errorf("SetHourAngle() error = %v, want ErrUnsupportedMount", err)
	}
}

func TestSetHourAngleFixedFrame(t *testing.T) {
	tests := []struct {
		name string
		el   float64
		sets bool
	}{
		{"above limit", 45, false},
		{"below limit", 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := sky.New(angle.FromDegrees(120), angle.FromDegrees(tt.el), coord.AZEL)
			s, _ := New("dish", c)
			ha, err := s.SetHourAngle()
			if err != nil {
				t.Fatal(err)
			}
			if tt.sets && !coord.NeverRises(ha) {
				t.Errorf("SetHourAngle() = %v deg, want never-rises", ha.Degrees())
			}
			if !tt.sets && !coord.NeverSets(ha) {
				t.Errorf("SetHourAngle() = %v deg, want never-sets", ha.Degrees())
			}
		})
	}

	moving, _ := New("x", at(t, 5, -30, 60000.5))
	ha, _ := moving.SetHourAngle()
	want, _ := moving.HARiseSet(nil)
	if ha != want {
		t.Errorf("SetHourAngle() = %v, want HARiseSet() %v", ha, want)
	}
}

func TestTimeUntilElevation(t *testing.T) {
	for _, ra := range []float64{0, 6, 12, 18} {
		s, _ := New("x", at(t, ra, -40, 60000.5))
		dur, err := s.TimeUntilElevationDuration(nil)
		if err != nil {
			t.Fatalf("TimeUntilElevationDuration: %v", err)
		}
		if dur < 0 || dur > 24*time.Hour {
			t.Fatalf("ra %v: duration %v outside one day", ra, dur)
		}
		s.Coordinate().Time().AddSeconds(dur.Seconds())
		azel, err := s.AzEl()
		if err != nil {
			t.Fatal(err)
		}
		if got := azel.Elevation().Degrees(); math.Abs(got-12) > 0.6 {
			t.Errorf("ra %v: elevation after %v = %v, want 12 (±0.6)", ra, dur, got)
		}
	}

	circ, _ := New("pole", at(t, 3, -88, 60000.5))
	if _, err := circ.TimeUntilElevationDuration(nil); !errors.Is(err, ErrNoCrossing) {
		t.Errorf("circumpolar duration error = %v, want ErrNoCrossing", err)
	}
}

func TestIsUp(t *testing.T) {
	s, _ := New("x", at(t, 6, -40, 60000.5))
	up, err := s.IsUp(angle.FromHours(6))
	if err != nil || !up {
		t.Errorf("IsUp(transit) = %v, %v; want true", up, err)
	}
	if up, _ := s.IsUp(angle.FromHours(18)); up {
		t.Error("IsUp(anti-transit) = true, want false")
	}

	circ, _ := New("pole", at(t, 3, -88, 60000.5))
	if up, _ := circ.IsUp(angle.FromHours(15)); !up {
		t.Error("circumpolar IsUp = false")
	}
	north, _ := New("north", at(t, 3, 70, 60000.5))
	if up, _ := north.IsUp(angle.FromHours(3)); up {
		t.Error("never-rising IsUp = true")
	}
}

func TestHourAngleAtTransit(t *testing.T) {
	tm := epoch.FromMJD(60000.5)
	lmst := tm.LMST()
	s, _ := New("x", at(t, lmst.Hours(), -30, 60000.5))
	ha, err := s.HourAngle()
	if err != nil {
		t.Fatal(err)
	}
	// Precession since J2000 moves the apparent position by well under a degree.
	if math.Abs(ha.Degrees()) > 1 {
		t.Errorf("HourAngle() at transit = %v deg", ha.Degrees())
	}
}

func TestSetLocationAndTime(t *testing.T) {
	s, _ := New("x", at(t, 5, -30, 60000.5))
	if _, err := s.SetLocation("Parkes"); err != nil {
		t.Fatal(err)
	}
	if got := s.Coordinate().Location().Name; got != "Parkes" {
		t.Errorf("location = %q, want Parkes", got)
	}
	if _, err := s.SetLocation("Effelsberg"); !errors.Is(err, site.ErrUnknownLocation) {
		t.Errorf("SetLocation(unknown) error = %v", err)
	}

	tm := epoch.FromMJD(59000)
	s.UseTime(tm).UseTime(nil)
	if s.Coordinate().Time() != tm {
		t.Error("UseTime(nil) replaced the time")
	}
	s.TimeIsNow()
	if s.Coordinate().Time().MJD() < 59000.5 {
		t.Error("TimeIsNow did not move the time forward")
	}
}

func TestSun(t *testing.T) {
	tm := epoch.FromMJD(60000.5)
	sun, err := Sun(tm)
	if err != nil {
		t.Fatal(err)
	}
	if sun.Name() != SunName {
		t.Errorf("Sun().Name() = %q, want %q", sun.Name(), SunName)
	}
	if sun.Coordinate().Frame() != coord.J2000 || sun.Coordinate().Time() != tm {
		t.Errorf("Sun() coordinate = %v at %v", sun.Coordinate(), sun.Coordinate().Time())
	}
}

func TestSolarTimes(t *testing.T) {
	tm := epoch.FromMJD(60000.3)
	st, err := SolarTimes(tm)
	if err != nil {
		t.Fatal(err)
	}
	windows := []struct {
		name string
		w    Window
	}{
		{"sunrise", st.Sunrise},
		{"civil", st.Civil},
		{"nautical", st.Nautical},
		{"astronomical", st.Astronomical},
	}
	var prev time.Duration
	for _, tt := range windows {
		w := tt.w
		if w.AlwaysVisible || w.NeverVisible {
			t.Fatalf("%s: unexpected sentinel window %+v", tt.name, w)
		}
		if !w.Set.After(w.Rise) {
			t.Fatalf("%s: set %v not after rise %v", tt.name, w.Set, w.Rise)
		}
		span := w.Set.Sub(w.Rise)
		if span <= prev {
			t.Errorf("%s: span %v not longer than previous %v", tt.name, span, prev)
		}
		prev = span
	}
	if span := st.Sunrise.Set.Sub(st.Sunrise.Rise); span < 11*time.Hour || span > 15*time.Hour {
		t.Errorf("day length at ATCA in February = %v", span)
	}
}

func TestRiseSet(t *testing.T) {
	// Lowest at ATCA is 80 - 59.69 = 20.3 deg, above the 12 deg limit.
	circumpolar, _ := New("south", at(t, 19.66, -80, 60000.5))
	w, err := circumpolar.RiseSet(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !w.AlwaysVisible || !w.Rise.IsZero() {
		t.Errorf("circumpolar window = %+v, want AlwaysVisible", w)
	}

	northern, _ := New("north", at(t, 3, 70, 60000.5))
	if w, err = northern.RiseSet(nil); err != nil {
		t.Fatal(err)
	}
	if !w.NeverVisible {
		t.Errorf("northern window = %+v, want NeverVisible", w)
	}

	src, _ := New("3C273", at(t, 12.485194, 2.052388, 60000.5))
	if w, err = src.RiseSet(nil); err != nil {
		t.Fatal(err)
	}
	if w.Elevation.Degrees() != 12 {
		t.Errorf("Elevation = %v, want the ATCA limit 12", w.Elevation.Degrees())
	}
	start := src.Coordinate().Time().UTC()
	if w.Rise.Before(start) {
		t.Errorf("rise %v before source time %v", w.Rise, start)
	}
	if span := w.Set.Sub(w.Rise); span < 9*time.Hour+30*time.Minute || span > 10*time.Hour+30*time.Minute {
		t.Errorf("rise to set = %v, want about 10h", span)
	}
}
