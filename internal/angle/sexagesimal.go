package angle

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// FormatOptions controls FormatTurns output.
type FormatOptions struct {
	Units        Unit   // Degrees or Hours for the first field
	Delimiter    string // defaults to ":"
	Precision    int    // decimal places on the seconds field
	AlwaysSigned bool   // prefix "+" on non-negative values
}

// DefaultFormat is the D:MM:SS.sss layout used when no options are given.
func DefaultFormat() FormatOptions {
	return FormatOptions{Units: Degrees, Delimiter: ":", Precision: 3}
}

// HoursFormat is the H:MM:SS.sss layout used for right ascension and LST.
func HoursFormat() FormatOptions {
	return FormatOptions{Units: Hours, Delimiter: ":", Precision: 3}
}

// FormatTurns renders a turns value as sign-prefixed sexagesimal text with
// two-digit minute and second fields.
func FormatTurns(turns float64, opts FormatOptions) string {
	if opts.Delimiter == "" {
		opts.Delimiter = ":"
	}
	if opts.Precision < 0 {
		opts.Precision = 0
	}

	m := turns * 360
	if opts.Units == Hours {
		m = turns * 24
	}
	neg := m < 0
	m = math.Abs(m)

	whole := math.Floor(m)
	m = (m - whole) * 60
	minutes := math.Floor(m)
	seconds := (m - minutes) * 60

	scale := math.Pow(10, float64(opts.Precision))
	seconds = math.Round(seconds*scale) / scale
	if seconds >= 60 {
		seconds -= 60
		minutes++
	}
	if minutes >= 60 {
		minutes -= 60
		whole++
	}

	secWidth := 2
	if opts.Precision > 0 {
		secWidth = 3 + opts.Precision
	}

	var b strings.Builder
	switch {
	case neg && (whole != 0 || minutes != 0 || seconds != 0):
		b.WriteByte('-')
	case opts.AlwaysSigned:
		b.WriteByte('+')
	}
	fmt.Fprintf(&b, "%02d%s%02d%s%0*.*f",
		int64(whole), opts.Delimiter, int64(minutes), opts.Delimiter,
		secWidth, opts.Precision, seconds)
	return b.String()
}

var (
	hoursForm   = regexp.MustCompile(`^\d+h\d+m[\d.]+s*$`)
	degreesForm = regexp.MustCompile(`^\d+d\d+m[\d.]+s*$`)
	fieldSplit  = regexp.MustCompile(`[\s:]+`)
	numericPart = regexp.MustCompile(`^[\d.]+$`)
	glyphs      = strings.NewReplacer("?", ":", "°", ":", "'", ":", `"`, "")
)

// ParseTurns parses a sexagesimal string into turns. Strings in the
// "HHhMMmSS.Ss" form are always hours and "DDdMMmSS.Ss" always degrees;
// otherwise units decides how the first field is read. Exactly three numeric
// fields are required.
func ParseTurns(s string, units Unit) (float64, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "+")
	h = glyphs.Replace(h)

	sign := 1.0
	if strings.HasPrefix(h, "-") {
		sign = -1
		h = strings.TrimPrefix(h, "-")
	}

	switch {
	case hoursForm.MatchString(h):
		units = Hours
		h = strings.NewReplacer("h", " ", "m", " ", "s", "").Replace(h)
	case degreesForm.MatchString(h):
		units = Degrees
		h = strings.NewReplacer("d", " ", "m", " ", "s", "").Replace(h)
	}

	fields := fieldSplit.Split(strings.Trim(h, " :"), -1)
	if len(fields) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrNotSexagesimal, s)
	}
	var parts [3]float64
	for i, f := range fields {
		if !numericPart.MatchString(f) {
			return 0, fmt.Errorf("%w: %q", ErrNotSexagesimal, s)
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotSexagesimal, s)
		}
		parts[i] = v
	}

	decimal := sign * (math.Trunc(parts[0]) + math.Trunc(parts[1])/60 + parts[2]/3600)
	if units == Hours {
		return CheckNumber(decimal / 24), nil
	}
	return CheckNumber(decimal / 360), nil
}
