package sky

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/coord"
	"github.com/litescript/ls-astro/internal/epoch"
	"github.com/litescript/ls-astro/internal/site"
)

func TestParseFrame(t *testing.T) {
	tests := []struct {
		in      string
		want    coord.Mode
		wantErr bool
	}{
		{"J2000", coord.J2000, false},
		{"j2000", coord.J2000, false},
		{"B1950", coord.B1950, false},
		{"GALACTIC", coord.GALACTIC, false},
		{"AzEl", coord.AZEL, false},
		{"hadec", coord.HADEC, false},
		{"Date", coord.DATE, false},
		{"XY", coord.EWXY, false},
		{"ewxy", coord.EWXY, false},
		{"fk5", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFrame(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnresolvedFrame) {
					t.Errorf("ParseFrame(%q) error = %v, want ErrUnresolvedFrame", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFrame(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestFromArray(t *testing.T) {
	tests := []struct {
		name      string
		in        []any
		frame     coord.Mode
		leftDeg   float64
		rightDeg  float64
		wantError error
	}{
		{"numbers default to J2000", []any{83.5, -5.0}, coord.J2000, 83.5, -5, nil},
		{"hours sexagesimal RA", []any{"05:34:00", "22:00:00"}, coord.J2000, 83.5, 22, nil},
		{"explicit frame", []any{10.0, 20.0, "Galactic"}, coord.GALACTIC, 10, 20, nil},
		{"azel degrees", []any{"180:30:00", 45.0, "azel"}, coord.AZEL, 180.5, 45, nil},
		{"angles", []any{angle.FromHours(1), angle.FromDegrees(-30), coord.HADEC}, coord.HADEC, 15, -30, nil},
		{"text units", []any{"1.5 turns", "0.1 rad", "b1950"}, coord.B1950, 540, 0.1 * 180 / math.Pi, nil},
		{"bad frame", []any{1.0, 2.0, "ecliptic"}, 0, 0, 0, ErrUnresolvedFrame},
		{"bad component", []any{"north", 2.0}, 0, 0, 0, ErrInvalidComponent},
		{"too short", []any{1.0}, 0, 0, 0, ErrInvalidComponent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := FromArray(tt.in)
			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("FromArray() error = %v, want %v", err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromArray: %v", err)
			}
			if c.Frame() != tt.frame {
				t.Errorf("frame = %s, want %s", c.Frame(), tt.frame)
			}
			got := c.Coordinates()
			if math.Abs(got.Left.Degrees()-tt.leftDeg) > 1e-9 || math.Abs(got.Right.Degrees()-tt.rightDeg) > 1e-9 {
				t.Errorf("components = %v, %v; want %v, %v", got.Left.Degrees(), got.Right.Degrees(), tt.leftDeg, tt.rightDeg)
			}
		})
	}
}

func TestFromNamed(t *testing.T) {
	tests := []struct {
		name      string
		in        map[string]any
		frame     coord.Mode
		wantError error
	}{
		{"ra dec probes J2000", map[string]any{"ra": 10.0, "dec": 20.0}, coord.J2000, nil},
		{"long names", map[string]any{"rightAscension": 10.0, "declination": 20.0}, coord.J2000, nil},
		{"ra dec in B1950", map[string]any{"ra": 10.0, "dec": 20.0, "frame": "B1950"}, coord.B1950, nil},
		{"galactic", map[string]any{"l": 10.0, "b": 20.0}, coord.GALACTIC, nil},
		{"galactic long names", map[string]any{"latitude": 10.0, "longitude": 20.0}, coord.GALACTIC, nil},
		{"azel", map[string]any{"az": 10.0, "el": 20.0}, coord.AZEL, nil},
		{"hadec", map[string]any{"ha": 1.0, "dec": 20.0}, coord.HADEC, nil},
		{"hadec long names", map[string]any{"hourAngle": 1.0, "declination": 20.0}, coord.HADEC, nil},
		{"date needs frame", map[string]any{"ra": 1.0, "dec": 2.0, "frame": "date"}, coord.DATE, nil},
		{"xy", map[string]any{"x": 1.0, "y": 2.0}, coord.EWXY, nil},
		{"mode value frame", map[string]any{"az": 1.0, "el": 2.0, "frame": coord.AZEL}, coord.AZEL, nil},
		{"half a pair", map[string]any{"ra": 1.0, "el": 2.0}, 0, ErrUnresolvedFrame},
		{"frame mismatch", map[string]any{"az": 1.0, "el": 2.0, "frame": "J2000"}, 0, ErrUnresolvedFrame},
		{"bad component", map[string]any{"ra": []int{1}, "dec": 2.0}, 0, ErrInvalidComponent},
		{"empty", map[string]any{}, 0, ErrUnresolvedFrame},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := FromNamed(tt.in)
			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("FromNamed() error = %v, want %v", err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromNamed: %v", err)
			}
			if c.Frame() != tt.frame {
				t.Errorf("frame = %s, want %s", c.Frame(), tt.frame)
			}
		})
	}
}

func TestFrom(t *testing.T) {
	orig, err := New(angle.FromDegrees(1), angle.FromDegrees(2), coord.B1950)
	if err != nil {
		t.Fatal(err)
	}
	inputs := []any{
		orig,
		*orig,
		orig.Coordinates(),
		[]any{1.0, 2.0, "B1950"},
		[]string{"1d00m00s", "2d00m00s", "B1950"},
		map[string]any{"ra": 1.0, "dec": 2.0, "frame": "b1950"},
	}
	for _, in := range inputs {
		c, err := From(in)
		if err != nil {
			t.Errorf("From(%T): %v", in, err)
			continue
		}
		if c.Frame() != coord.B1950 || math.Abs(c.Coordinates().Left.Degrees()-1) > 1e-12 {
			t.Errorf("From(%T) = %v", in, c)
		}
	}
	if _, err := From(42); !errors.Is(err, ErrInvalidComponent) {
		t.Errorf("From(42) error = %v, want ErrInvalidComponent", err)
	}
	if _, err := From(&Coordinate{}); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("From(zero) error = %v, want ErrInvalidCoordinate", err)
	}
}

func TestNewRejects(t *testing.T) {
	if _, err := New(angle.Angle{}, angle.FromDegrees(1), coord.J2000); !errors.Is(err, ErrInvalidComponent) {
		t.Errorf("New(unset) error = %v", err)
	}
	if _, err := New(angle.FromDegrees(1), angle.FromDegrees(1), coord.Mode(42)); !errors.Is(err, ErrUnresolvedFrame) {
		t.Errorf("New(bad frame) error = %v", err)
	}
}

func TestConvertSameFrame(t *testing.T) {
	c, _ := New(angle.FromHours(5), angle.FromDegrees(-20), coord.J2000)
	got, err := c.ToJ2000()
	if err != nil {
		t.Fatal(err)
	}
	if got != c.Coordinates() {
		t.Errorf("ToJ2000() = %+v, want stored coordinates", got)
	}
}

func TestConvertUsesTimeAndLocation(t *testing.T) {
	tm := epoch.FromTime(time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC))
	c, _ := New(angle.FromHours(5), angle.FromDegrees(-20), coord.J2000)
	c.SetTime(tm)

	loc := c.Location()
	want, err := coord.Convert(angle.FromHours(5), angle.FromDegrees(-20), coord.J2000, coord.AZEL,
		coord.WithEpoch(tm), coord.WithLatitude(loc.Latitude), coord.WithLongitude(loc.Longitude))
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.ToAzEl()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("ToAzEl() = %+v, want %+v", got, want)
	}

	// A caller latitude overrides the location's.
	north, err := c.ToAzEl(coord.WithLatitude(angle.FromDegrees(40)))
	if err != nil {
		t.Fatal(err)
	}
	if north == got {
		t.Error("WithLatitude override had no effect")
	}
}

func TestConvertChain(t *testing.T) {
	tm := epoch.FromMJD(59500.4)
	c, _ := FromNamed(map[string]any{"l": 30.0, "b": 5.0})
	c.SetTime(tm)

	converters := map[string]func(...coord.Option) (coord.Result, error){
		"J2000": c.ToJ2000, "B1950": c.ToB1950, "Date": c.ToDate,
		"HADec": c.ToHADec, "AzEl": c.ToAzEl, "XY": c.ToXY, "Galactic": c.ToGalactic,
	}
	for name, fn := range converters {
		r, err := fn()
		if err != nil {
			t.Errorf("To%s: %v", name, err)
			continue
		}
		if r.Mode.String() != name {
			t.Errorf("To%s returned mode %s", name, r.Mode)
		}
		back, err := FromResult(r)
		if err != nil {
			t.Fatal(err)
		}
		back.SetTime(tm)
		gal, err := back.ToGalactic()
		if err != nil {
			t.Fatalf("%s back to Galactic: %v", name, err)
		}
		d, _ := coord.AngularDistance(gal, c.Coordinates())
		if d.Turns() > 1e-6 {
			t.Errorf("Galactic via %s drifted %v turns", name, d.Turns())
		}
	}
}

func TestDistanceTo(t *testing.T) {
	a, _ := New(angle.FromDegrees(10), angle.FromDegrees(0), coord.J2000)
	b, _ := New(angle.FromDegrees(20), angle.FromDegrees(0), coord.J2000)
	d, err := a.DistanceTo(b)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d.Degrees()-10) > 1e-9 {
		t.Errorf("DistanceTo() = %v deg, want 10", d.Degrees())
	}

	// Galactic sources compare in B1950.
	g, _ := New(angle.FromDegrees(0), angle.FromDegrees(0), coord.GALACTIC)
	b1950, _ := g.ToB1950()
	target, _ := FromResult(coord.Result{Mode: coord.B1950, Left: b1950.Left, Right: b1950.Right})
	d, err = g.DistanceTo(target)
	if err != nil {
		t.Fatal(err)
	}
	if d.Degrees() > 1e-9 {
		t.Errorf("distance to own B1950 position = %v deg", d.Degrees())
	}
}

func TestSunDistance(t *testing.T) {
	tm := epoch.FromTime(time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC))
	c, _ := New(angle.FromHours(18), angle.FromDegrees(-23.44), coord.J2000)
	c.SetTime(tm)
	d, err := c.SunDistance()
	if err != nil {
		t.Fatal(err)
	}
	// Opposite the solstice Sun.
	if math.Abs(d.Degrees()-180) > 1 {
		t.Errorf("SunDistance() = %v deg, want about 180", d.Degrees())
	}
	sun := c.Sun()
	if sd, _ := sun.SunDistance(); sd.Degrees() > 1e-9 {
		t.Errorf("Sun's own SunDistance() = %v", sd.Degrees())
	}
}

func TestSetLocationAndTime(t *testing.T) {
	c, _ := New(angle.FromDegrees(1), angle.FromDegrees(2), coord.J2000)
	if got := c.Location().Name; got != site.Default().DefaultName() {
		t.Errorf("default location = %q", got)
	}
	if _, err := c.SetLocation("Parkes"); err != nil {
		t.Fatal(err)
	}
	if c.Location().Name != "Parkes" || c.LocationName() != "Parkes" {
		t.Errorf("location = %q", c.Location().Name)
	}
	if _, err := c.SetLocation("Nowhere"); !errors.Is(err, site.ErrUnknownLocation) {
		t.Errorf("SetLocation(unknown) error = %v", err)
	}
	if c.Location().Name != "Parkes" {
		t.Errorf("failed SetLocation changed location to %q", c.Location().Name)
	}

	tm := epoch.FromMJD(60000, epoch.WithLocation("Mopra"))
	c.SetTime(tm)
	if c.Time() != tm || c.Location().Name != "Mopra" {
		t.Errorf("SetTime did not adopt the time's location: %q", c.Location().Name)
	}

	before := c.Time().UTC()
	c.SetTime(nil)
	if !c.Time().UTC().After(before) {
		t.Error("SetTime(nil) did not move to now")
	}
}

func TestClone(t *testing.T) {
	c, _ := New(angle.FromDegrees(1), angle.FromDegrees(2), coord.J2000)
	d := c.Clone()
	d.Time().AddSeconds(3600)
	if c.Time().UTC().Equal(d.Time().UTC()) {
		t.Error("Clone shares its Time")
	}
}
