package angle

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// minRemainder is the distance from a whole number below which values are
// snapped to it.
const minRemainder = 1e-15

// CheckNumber snaps n to the nearest integer when it lies within 1e-15 of
// one, suppressing floating point noise such as 0.9999999999999999.
func CheckNumber(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return n
	}
	m := math.Abs(math.Mod(n, 1))
	if m < minRemainder || 1-m < minRemainder {
		return math.Round(n)
	}
	return n
}

// BoundNumber reduces a into [lower, upper) by adding or subtracting whole
// multiples of the range.
func BoundNumber(a, lower, upper float64) float64 {
	d := upper - lower
	if d <= 0 || math.IsNaN(a) || math.IsInf(a, 0) {
		return a
	}
	a = lower + math.Mod(a-lower, d)
	if a < lower {
		a += d
	}
	if a >= upper {
		a -= d
	}
	return CheckNumber(a)
}

// DurationString renders d as a compact "1d2h03m04s" string. Leading zero
// components are omitted and later components are zero-padded once a larger
// one has been written.
func DurationString(d time.Duration) string {
	total := int64(math.Round(math.Abs(d.Seconds())))
	days := total / 86400
	hours := total % 86400 / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
	}
	if days > 0 {
		fmt.Fprintf(&b, "%dd", days)
	}
	if hours > 0 || days > 0 {
		fmt.Fprintf(&b, "%dh", hours)
	}
	larger := hours > 0 || days > 0
	if minutes > 0 || larger {
		if larger {
			fmt.Fprintf(&b, "%02dm", minutes)
		} else {
			fmt.Fprintf(&b, "%dm", minutes)
		}
	}
	larger = larger || minutes > 0
	if seconds > 0 || larger {
		if larger {
			fmt.Fprintf(&b, "%02ds", seconds)
		} else {
			fmt.Fprintf(&b, "%ds", seconds)
		}
	}
	return b.String()
}
