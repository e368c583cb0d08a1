package angle

import (
	"errors"
	"math"
	"testing"
)

func TestFormatTurns(t *testing.T) {
	tests := []struct {
		name  string
		turns float64
		opts  FormatOptions
		want  string
	}{
		{"negative degrees", -(31 + 16.0/60 + 4.0/3600) / 360, DefaultFormat(), "-31:16:04.000"},
		{"hours", 0.5, HoursFormat(), "12:00:00.000"},
		{"zero precision", 0.25, FormatOptions{}, "90:00:00"},
		{"always signed", 0.25, FormatOptions{AlwaysSigned: true}, "+90:00:00"},
		{"space delimiter", 0.25, FormatOptions{Delimiter: " ", Precision: 1}, "90 00 00.0"},
		{"seconds carry", (10 + 59.0/60 + 59.99999/3600) / 360, FormatOptions{Precision: 2}, "11:00:00.00"},
		{"small negative rounds to zero", -1e-12, FormatOptions{}, "00:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTurns(tt.turns, tt.opts); got != tt.want {
				t.Errorf("FormatTurns(%v) = %q, want %q", tt.turns, got, tt.want)
			}
		})
	}
}

func TestParseTurns(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		units Unit
		want  float64 // degrees
	}{
		{"colon degrees", "-31:16:04", Degrees, -(31 + 16.0/60 + 4.0/3600)},
		{"colon hours", "17:45:40.04", Hours, (17 + 45.0/60 + 40.04/3600) * 15},
		{"dms overrides units", "148d15m48.636s", Hours, 148 + 15.0/60 + 48.636/3600},
		{"hms overrides units", "5h30m0s", Degrees, 82.5},
		{"glyphs", `12°30'36"`, Degrees, 12.51},
		{"leading plus", "+01:00:00", Degrees, 1},
		{"spaces", "10 30 00", Degrees, 10.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTurns(tt.in, tt.units)
			if err != nil {
				t.Fatalf("ParseTurns(%q) error: %v", tt.in, err)
			}
			if math.Abs(got*360-tt.want) > 1e-9 {
				t.Errorf("ParseTurns(%q) = %v deg, want %v", tt.in, got*360, tt.want)
			}
		})
	}
}

func TestParseTurnsRejects(t *testing.T) {
	for _, in := range []string{"", "12:30", "1:2:3:4", "12:3a:00", "twelve", "12.5 deg"} {
		if _, err := ParseTurns(in, Degrees); !errors.Is(err, ErrNotSexagesimal) {
			t.Errorf("ParseTurns(%q) error = %v, want ErrNotSexagesimal", in, err)
		}
	}
}

func TestSexagesimalRoundTrip(t *testing.T) {
	turns := []float64{0, 0.1, 0.123456789, 0.25, 0.5, 0.7777777, 0.999999}
	options := []FormatOptions{
		DefaultFormat(),
		HoursFormat(),
		{Units: Degrees, Delimiter: " ", Precision: 4},
		{Units: Hours, Delimiter: " ", Precision: 2, AlwaysSigned: true},
		{Units: Degrees, Delimiter: ":", Precision: 6, AlwaysSigned: true},
	}
	for _, opts := range options {
		for _, tv := range turns {
			s := FormatTurns(tv, opts)
			got, err := ParseTurns(s, opts.Units)
			if err != nil {
				t.Errorf("ParseTurns(FormatTurns(%v)) = %q: %v", tv, s, err)
				continue
			}
			if math.Abs(got-tv) > 1e-7 {
				t.Errorf("round trip %v via %q = %v", tv, s, got)
			}
		}
	}
}
