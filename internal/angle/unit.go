package angle

import (
	"fmt"
	"math"
	"strings"
)

// Unit identifies the unit an Angle value is stored in.
type Unit int

const (
	Degrees Unit = iota
	Hours
	Turns
	Radians
	Arcminutes
	Arcseconds
)

// units lists the canonical names in lookup order.
var units = []struct {
	unit    Unit
	name    string
	perTurn float64
}{
	{Degrees, "degrees", 360},
	{Hours, "hours", 24},
	{Turns, "turns", 1},
	{Radians, "radians", 2 * math.Pi},
	{Arcminutes, "arcminutes", 360 * 60},
	{Arcseconds, "arcseconds", 360 * 3600},
}

// Units returns every supported unit.
func Units() []Unit {
	out := make([]Unit, len(units))
	for i, u := range units {
		out[i] = u.unit
	}
	return out
}

func (u Unit) String() string {
	if !u.Valid() {
		return "unknown"
	}
	return units[u].name
}

// Valid reports whether u is one of the six supported units.
func (u Unit) Valid() bool {
	return u >= Degrees && u <= Arcseconds
}

func (u Unit) perTurn() float64 {
	return units[u].perTurn
}

// ParseUnit resolves a unit name by case-sensitive minimum prefix, so "deg",
// "h" and "arcs" are all accepted. Prefixes matching more than one unit are
// rejected.
func ParseUnit(s string) (Unit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty unit", ErrUnknownUnit)
	}

	found := -1
	for i, u := range units {
		if !strings.HasPrefix(u.name, s) {
			continue
		}
		if found >= 0 {
			return 0, fmt.Errorf("%w: %q is ambiguous", ErrUnknownUnit, s)
		}
		found = i
	}
	if found < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return units[found].unit, nil
}
