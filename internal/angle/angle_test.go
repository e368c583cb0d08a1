package angle

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestToIdentity(t *testing.T) {
	values := []float64{0, 1, -1, 12.345678, 359.9999, 1e-9, -271.25}
	for _, u := range Units() {
		for _, v := range values {
			if got := New(v, u).To(u); got != v {
				t.Errorf("New(%v, %s).To(%s) = %v, want %v", v, u, u, got, v)
			}
		}
	}
}

func TestToRoundTrip(t *testing.T) {
	values := []float64{0.25, -3.5, 17.123456789, 200}
	for _, u := range Units() {
		for _, u2 := range Units() {
			for _, v := range values {
				mid := New(v, u).To(u2)
				back := New(mid, u2).To(u)
				if math.Abs(back-v) > 1e-9 {
					t.Errorf("%v %s -> %s -> %s = %v, want %v", v, u, u2, u, back, v)
				}
			}
		}
	}
}

func TestConversions(t *testing.T) {
	tests := []struct {
		name string
		a    Angle
		unit Unit
		want float64
	}{
		{"180 deg to turns", FromDegrees(180), Turns, 0.5},
		{"6 hours to degrees", FromHours(6), Degrees, 90},
		{"pi radians to degrees", FromRadians(math.Pi), Degrees, 180},
		{"1 deg to arcmin", FromDegrees(1), Arcminutes, 60},
		{"1 deg to arcsec", FromDegrees(1), Arcseconds, 3600},
		{"quarter turn to hours", FromTurns(0.25), Hours, 6},
		{"unset", Angle{}, Degrees, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.To(tt.unit); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("To(%s) = %v, want %v", tt.unit, got, tt.want)
			}
		})
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    Unit
		wantErr bool
	}{
		{"degrees", Degrees, false},
		{"deg", Degrees, false},
		{"d", Degrees, false},
		{"h", Hours, false},
		{"turns", Turns, false},
		{"rad", Radians, false},
		{"arcm", Arcminutes, false},
		{"arcsec", Arcseconds, false},
		{"a", 0, true},
		{"Degrees", 0, true},
		{"furlongs", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnit(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownUnit) {
					t.Errorf("ParseUnit(%q) error = %v, want ErrUnknownUnit", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseUnit(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestToNamed(t *testing.T) {
	a := FromDegrees(90)
	if got, err := a.ToNamed("turns"); err != nil || got != 0.25 {
		t.Errorf("ToNamed(turns) = %v, %v", got, err)
	}
	if _, err := a.ToNamed("parsecs"); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("ToNamed(parsecs) error = %v, want ErrUnknownUnit", err)
	}
}

func TestFrom(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		deg     float64
		wantErr bool
	}{
		{"bare number is degrees", 45.5, 45.5, false},
		{"int", 30, 30, false},
		{"colon sexagesimal", "-31:16:04", -(31 + 16.0/60 + 4.0/3600), false},
		{"dms", "148d15m48.636s", 148 + 15.0/60 + 48.636/3600, false},
		{"hms", "12h30m00s", 187.5, false},
		{"number and unit", "2 hours", 30, false},
		{"number and short unit", "0.5turns", 180, false},
		{"value units", ValueUnit{Value: math.Pi / 2, Units: "rad"}, 90, false},
		{"map value units", map[string]any{"value": 1.0, "units": "t"}, 360, false},
		{"existing angle", FromHours(1), 15, false},
		{"garbage", "not an angle", 0, true},
		{"ambiguous unit", "3 a", 0, true},
		{"unset angle", Angle{}, 0, true},
		{"unsupported type", []int{1}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := From(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("From(%v) = %v, want error", tt.in, a)
				}
				return
			}
			if err != nil {
				t.Fatalf("From(%v) error: %v", tt.in, err)
			}
			if got := a.Degrees(); math.Abs(got-tt.deg) > 1e-9 {
				t.Errorf("From(%v).Degrees() = %v, want %v", tt.in, got, tt.deg)
			}
		})
	}
}

func TestArithmetic(t *testing.T) {
	a := FromDegrees(90)
	b := FromHours(1)

	sum, err := a.Add(b)
	if err != nil || sum.Unit() != Degrees || sum.Degrees() != 105 {
		t.Errorf("Add = %v (%s), %v; want 105 degrees", sum.Degrees(), sum.Unit(), err)
	}
	diff, err := a.Subtract(b)
	if err != nil || diff.Degrees() != 75 {
		t.Errorf("Subtract = %v, %v; want 75", diff.Degrees(), err)
	}
	half, err := a.Divide(2)
	if err != nil || half.Degrees() != 45 {
		t.Errorf("Divide = %v, %v; want 45", half.Degrees(), err)
	}
	r, err := a.Ratio(b)
	if err != nil || r != 6 {
		t.Errorf("Ratio = %v, %v; want 6", r, err)
	}

	if a.Degrees() != 90 {
		t.Errorf("receiver mutated: %v", a.Degrees())
	}
}

func TestArithmeticErrors(t *testing.T) {
	a := FromDegrees(10)
	if _, err := a.Add(Angle{}); !errors.Is(err, ErrUnset) {
		t.Errorf("Add(unset) error = %v, want ErrUnset", err)
	}
	if _, err := a.Subtract(Angle{}); !errors.Is(err, ErrUnset) {
		t.Errorf("Subtract(unset) error = %v, want ErrUnset", err)
	}
	for _, d := range []float64{0, math.NaN(), math.Inf(1)} {
		if _, err := a.Divide(d); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Divide(%v) error = %v, want ErrInvalidArgument", d, err)
		}
	}
	if _, err := a.Ratio(FromDegrees(0)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Ratio(0) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := a.Ratio(Angle{}); !errors.Is(err, ErrUnset) {
		t.Errorf("Ratio(unset) error = %v, want ErrUnset", err)
	}
}

func TestCheckNumber(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.9999999999999999, 1},
		{2.0000000000000004, 2},
		{-0.9999999999999999, -1},
		{0.5, 0.5},
		{1.000001, 1.000001},
	}
	for _, tt := range tests {
		if got := CheckNumber(tt.in); got != tt.want {
			t.Errorf("CheckNumber(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBoundNumber(t *testing.T) {
	tests := []struct {
		a, l, u, want float64
	}{
		{370, 0, 360, 10},
		{-10, 0, 360, 350},
		{360, 0, 360, 0},
		{0.75, -0.5, 0.5, -0.25},
		{-1.5, 0, 1, 0.5},
	}
	for _, tt := range tests {
		if got := BoundNumber(tt.a, tt.l, tt.u); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("BoundNumber(%v, %v, %v) = %v, want %v", tt.a, tt.l, tt.u, got, tt.want)
		}
	}
}

func TestDurationString(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, ""},
		{42 * time.Second, "42s"},
		{3*time.Minute + 5*time.Second, "3m05s"},
		{2*time.Hour + 3*time.Second, "2h00m03s"},
		{26*time.Hour + 4*time.Minute + 9*time.Second, "1d2h04m09s"},
		{-90 * time.Second, "-1m30s"},
		{59*time.Minute + 59*time.Second + 600*time.Millisecond, "1h00m00s"},
		{23*time.Hour + 59*time.Minute + 59700*time.Millisecond, "1d0h00m00s"},
		{4*time.Minute + 59500*time.Millisecond, "5m00s"},
		{59600 * time.Millisecond, "1m00s"},
	}
	for _, tt := range tests {
		if got := DurationString(tt.d); got != tt.want {
			t.Errorf("DurationString(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
