// Package angle provides an immutable angle value with lazy conversion
// between degrees, hours, turns, radians, arcminutes and arcseconds.
package angle

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Errors returned by angle construction and arithmetic.
var (
	ErrUnset           = errors.New("angle is not set")
	ErrUnknownUnit     = errors.New("unknown angle unit")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotSexagesimal  = errors.New("not a sexagesimal angle")
	ErrUnsupportedType = errors.New("unsupported angle constructor")
)

// Angle is a scalar angle tagged with the unit it was created in.
// The zero value is unset and fails IsSet.
type Angle struct {
	value float64
	unit  Unit
	set   bool
}

// ValueUnit is the {value, units} constructor shape.
type ValueUnit struct {
	Value float64
	Units string
}

// New returns an angle of value in unit u. An invalid unit yields an unset
// angle.
func New(value float64, u Unit) Angle {
	if !u.Valid() || math.IsNaN(value) {
		return Angle{}
	}
	return Angle{value: value, unit: u, set: true}
}

// FromNumber interprets a bare number as decimal degrees.
func FromNumber(v float64) Angle {
	return New(v, Degrees)
}

// FromDegrees returns an angle of v degrees.
func FromDegrees(v float64) Angle { return New(v, Degrees) }

// FromHours returns an angle of v hours.
func FromHours(v float64) Angle { return New(v, Hours) }

// FromTurns returns an angle of v turns.
func FromTurns(v float64) Angle { return New(v, Turns) }

// FromRadians returns an angle of v radians.
func FromRadians(v float64) Angle { return New(v, Radians) }

// FromSexagesimal parses strings such as "-31:16:04", "148d15m48.636s" or
// "17h45m40.04s". Colon and glyph forms are read as degrees.
func FromSexagesimal(s string) (Angle, error) {
	t, err := ParseTurns(s, Degrees)
	if err != nil {
		return Angle{}, err
	}
	return New(t, Turns), nil
}

var numberUnitPattern = regexp.MustCompile(`^([-+]?[\d.]+)\s*(\D+)$`)

// FromText parses a number followed by a unit prefix, e.g. "12.5 deg" or
// "3h".
func FromText(s string) (Angle, error) {
	m := numberUnitPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Angle{}, fmt.Errorf("%w: %q", ErrInvalidArgument, s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Angle{}, fmt.Errorf("%w: %q", ErrInvalidArgument, s)
	}
	u, err := ParseUnit(strings.TrimSpace(m[2]))
	if err != nil {
		return Angle{}, err
	}
	return New(v, u), nil
}

// FromValueUnit builds an angle from a value and a unit name prefix.
func FromValueUnit(vu ValueUnit) (Angle, error) {
	u, err := ParseUnit(vu.Units)
	if err != nil {
		return Angle{}, err
	}
	return New(vu.Value, u), nil
}

// Parse accepts a sexagesimal string or a "number unit" string.
func Parse(s string) (Angle, error) {
	if a, err := FromSexagesimal(s); err == nil {
		return a, nil
	}
	if a, err := FromText(s); err == nil {
		return a, nil
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return FromNumber(v), nil
	}
	return Angle{}, fmt.Errorf("%w: %q", ErrInvalidArgument, s)
}

// From dispatches on the dynamic type of v to the matching constructor.
func From(v any) (Angle, error) {
	switch x := v.(type) {
	case Angle:
		if !x.IsSet() {
			return Angle{}, ErrUnset
		}
		return x, nil
	case *Angle:
		if x == nil || !x.IsSet() {
			return Angle{}, ErrUnset
		}
		return *x, nil
	case float64:
		return FromNumber(x), nil
	case float32:
		return FromNumber(float64(x)), nil
	case int:
		return FromNumber(float64(x)), nil
	case int64:
		return FromNumber(float64(x)), nil
	case string:
		return Parse(x)
	case ValueUnit:
		return FromValueUnit(x)
	case map[string]any:
		val, ok := x["value"].(float64)
		if !ok {
			if iv, isInt := x["value"].(int); isInt {
				val, ok = float64(iv), true
			}
		}
		units, uok := x["units"].(string)
		if !ok || !uok {
			return Angle{}, fmt.Errorf("%w: map needs value and units", ErrUnsupportedType)
		}
		return FromValueUnit(ValueUnit{Value: val, Units: units})
	default:
		return Angle{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// IsSet reports whether the angle holds a value.
func (a Angle) IsSet() bool {
	return a.set
}

// Value returns the stored number and its unit.
func (a Angle) Value() (float64, Unit) {
	return a.value, a.unit
}

// Unit returns the unit the angle was constructed in.
func (a Angle) Unit() Unit {
	return a.unit
}

// To returns the angle expressed in unit u.
func (a Angle) To(u Unit) float64 {
	if !a.set || !u.Valid() {
		return 0
	}
	if u == a.unit {
		return a.value
	}
	from, to := a.unit.perTurn(), u.perTurn()
	if to > from {
		return CheckNumber(a.value * (to / from))
	}
	return CheckNumber(a.value / (from / to))
}

// ToNamed converts to a unit given by name prefix.
func (a Angle) ToNamed(name string) (float64, error) {
	if !a.set {
		return 0, ErrUnset
	}
	u, err := ParseUnit(name)
	if err != nil {
		return 0, err
	}
	return a.To(u), nil
}

func (a Angle) Degrees() float64    { return a.To(Degrees) }
func (a Angle) Hours() float64      { return a.To(Hours) }
func (a Angle) Turns() float64      { return a.To(Turns) }
func (a Angle) Radians() float64    { return a.To(Radians) }
func (a Angle) Arcminutes() float64 { return a.To(Arcminutes) }
func (a Angle) Arcseconds() float64 { return a.To(Arcseconds) }

// Add returns a + o in a's unit.
func (a Angle) Add(o Angle) (Angle, error) {
	if !a.set || !o.set {
		return a, ErrUnset
	}
	return New(CheckNumber(a.value+o.To(a.unit)), a.unit), nil
}

// Subtract returns a - o in a's unit.
func (a Angle) Subtract(o Angle) (Angle, error) {
	if !a.set || !o.set {
		return a, ErrUnset
	}
	return New(CheckNumber(a.value-o.To(a.unit)), a.unit), nil
}

// Divide returns a / d in a's unit.
func (a Angle) Divide(d float64) (Angle, error) {
	if !a.set {
		return a, ErrUnset
	}
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return a, fmt.Errorf("%w: divisor %v", ErrInvalidArgument, d)
	}
	return New(CheckNumber(a.value/d), a.unit), nil
}

// Ratio returns a / o as a plain number, with o expressed in a's unit.
func (a Angle) Ratio(o Angle) (float64, error) {
	if !a.set || !o.set {
		return 0, ErrUnset
	}
	den := o.To(a.unit)
	if den == 0 {
		return 0, fmt.Errorf("%w: zero angle", ErrInvalidArgument)
	}
	return CheckNumber(a.value / den), nil
}

// Negate returns -a.
func (a Angle) Negate() Angle {
	if !a.set {
		return a
	}
	return New(-a.value, a.unit)
}

// Format renders the angle as sexagesimal text.
func (a Angle) Format(opts FormatOptions) string {
	if !a.set {
		return "unset"
	}
	return FormatTurns(a.Turns(), opts)
}

func (a Angle) String() string {
	return a.Format(FormatOptions{Units: Degrees, Delimiter: ":", Precision: 1})
}
