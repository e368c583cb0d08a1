// Package sky binds a pair of angles to a coordinate frame and converts
// them to other frames for the time and telescope they are observed from.
package sky

import (
	"fmt"
	"strings"

	"github.com/litescript/ls-astro/internal/coord"
)

// frameSpec lists the accepted keys for each component of a frame.
type frameSpec struct {
	mode  coord.Mode
	name  string
	left  []string
	right []string
}

// frames is in probing order for constructors that do not name a frame.
var frames = []frameSpec{
	{coord.J2000, "j2000", []string{"ra", "rightAscension"}, []string{"dec", "declination"}},
	{coord.B1950, "b1950", []string{"ra", "rightAscension"}, []string{"dec", "declination"}},
	{coord.GALACTIC, "galactic", []string{"l", "latitude"}, []string{"b", "longitude"}},
	{coord.AZEL, "azel", []string{"az", "azimuth"}, []string{"el", "elevation"}},
	{coord.HADEC, "hadec", []string{"ha", "hourAngle"}, []string{"dec", "declination"}},
	{coord.DATE, "date", []string{"ra", "rightAscension"}, []string{"dec", "declination"}},
	{coord.EWXY, "xy", []string{"x"}, []string{"y"}},
}

var frameAliases = map[string]coord.Mode{
	"ewxy": coord.EWXY,
}

// ParseFrame looks a frame up by name, ignoring case.
func ParseFrame(name string) (coord.Mode, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, f := range frames {
		if f.name == n {
			return f.mode, nil
		}
	}
	if m, ok := frameAliases[n]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnresolvedFrame, name)
}

// FrameNames returns the recognised frame names in probing order.
func FrameNames() []string {
	names := make([]string, len(frames))
	for i, f := range frames {
		names[i] = f.mode.String()
	}
	return names
}

func specFor(m coord.Mode) (frameSpec, bool) {
	for _, f := range frames {
		if f.mode == m {
			return f, true
		}
	}
	return frameSpec{}, false
}

// frameOf accepts a frame given as a name, a Mode or an integer mode.
func frameOf(v any) (coord.Mode, error) {
	switch f := v.(type) {
	case string:
		return ParseFrame(f)
	case coord.Mode:
		if f.Valid() {
			return f, nil
		}
	case int:
		if m := coord.Mode(f); m.Valid() {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrUnresolvedFrame, v)
}

// match returns the keys of m that satisfy the frame's components.
func (f frameSpec) match(m map[string]any) (left, right string, ok bool) {
	find := func(keys []string) (string, bool) {
		for _, k := range keys {
			if _, ok := m[k]; ok {
				return k, true
			}
		}
		return "", false
	}
	left, lok := find(f.left)
	right, rok := find(f.right)
	return left, right, lok && rok
}
