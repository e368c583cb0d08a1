// Package coord converts sky positions between the frames used to point a
// radio telescope: mount XY, horizontal, hour angle, apparent of date,
// J2000 (FK5), B1950 (FK4) and IAU 1958 Galactic.
package coord

import "fmt"

// Mode identifies a coordinate frame. Modes are ordered: a conversion walks
// every frame between the input and output mode.
type Mode int

const (
	EWXY Mode = iota
	AZEL
	HADEC
	DATE
	J2000
	B1950
	GALACTIC
)

var modeNames = [...]string{
	EWXY:     "XY",
	AZEL:     "AzEl",
	HADEC:    "HADec",
	DATE:     "Date",
	J2000:    "J2000",
	B1950:    "B1950",
	GALACTIC: "Galactic",
}

// Valid reports whether m is one of the seven frames.
func (m Mode) Valid() bool {
	return m >= EWXY && m <= GALACTIC
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Moving reports whether positions in m are fixed on the sky and so move
// relative to the telescope.
func (m Mode) Moving() bool {
	return m >= DATE && m <= GALACTIC
}

// componentNames are the names of the left and right components per mode.
var componentNames = [...][2]string{
	EWXY:     {"x", "y"},
	AZEL:     {"azimuth", "elevation"},
	HADEC:    {"hourAngle", "declination"},
	DATE:     {"rightAscension", "declination"},
	J2000:    {"rightAscension", "declination"},
	B1950:    {"rightAscension", "declination"},
	GALACTIC: {"latitude", "longitude"},
}

// Names returns the names of the left and right components in m.
func (m Mode) Names() (left, right string) {
	if !m.Valid() {
		return "left", "right"
	}
	n := componentNames[m]
	return n[0], n[1]
}
