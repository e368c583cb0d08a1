package coord

import (
	"fmt"
	"math"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/epoch"
)

// SolarRADec returns the J2000 position of the Sun from the low precision
// Astronomical Almanac formula, good to about 1' between 1950 and 2050.
func SolarRADec(t *epoch.Time) (ra, dec angle.Angle) {
	n := t.MJD() - epoch.J2000MJD

	// Mean longitude, corrected for aberration, and mean anomaly.
	l := angle.BoundNumber(280.460+0.9856474*n, 0, 360)
	g := angle.BoundNumber(357.528+0.9856003*n, 0, 360) * math.Pi / 180

	lambda := l + 1.915*math.Sin(g) + 0.020*math.Sin(2*g)
	eps := 23.439 - 0.0000004*n

	const f = 180 / math.Pi
	tt := math.Pow(math.Tan(eps/f/2), 2)
	alpha := lambda - f*tt*math.Sin(2*lambda/f) + (f/2)*tt*tt*math.Sin(4*lambda/f)
	delta := math.Asin(math.Sin(eps/f) * math.Sin(lambda/f))

	ra = angle.FromDegrees(angle.BoundNumber(alpha, 0, 360))
	dec = angle.FromDegrees(angle.CheckNumber(delta * f))
	return ra, dec
}

// AngularDistance returns the great circle distance between two positions
// in the same frame, in radians.
func AngularDistance(a, b Result) (angle.Angle, error) {
	if a.Mode != b.Mode {
		return angle.Angle{}, fmt.Errorf("distance %s to %s: %w", a.Mode, b.Mode, ErrModeMismatch)
	}
	d := haversine(a.Left.Radians(), a.Right.Radians(), b.Left.Radians(), b.Right.Radians())
	return angle.FromRadians(angle.CheckNumber(d)), nil
}

// Rise and set hour angle sentinels, in degrees.
const (
	NeverSetsDegrees  = -720.0
	NeverRisesDegrees = 720.0
)

// HaSetAzEl returns the hour angle at which a source of declination dec
// sets below elevationLow for an AzEl mount at latitude lat. Sources that
// never set return -720 degrees and sources that never rise +720 degrees.
func HaSetAzEl(dec, lat, elevationLow angle.Angle) angle.Angle {
	sd, cd := math.Sincos(dec.Radians())
	sl, cl := math.Sincos(lat.Radians())
	cosHA := (math.Sin(elevationLow.Radians()) - sl*sd) / (cd * cl)
	switch {
	case cosHA < -1:
		return angle.FromDegrees(NeverSetsDegrees)
	case cosHA > 1:
		return angle.FromDegrees(NeverRisesDegrees)
	}
	return angle.FromRadians(angle.CheckNumber(math.Acos(cosHA)))
}

// NeverSets reports whether ha is the circumpolar sentinel.
func NeverSets(ha angle.Angle) bool {
	return ha.Degrees() == NeverSetsDegrees
}

// NeverRises reports whether ha is the never-rises sentinel.
func NeverRises(ha angle.Angle) bool {
	return ha.Degrees() == NeverRisesDegrees
}

// IsSentinel reports whether ha is either rise/set sentinel.
func IsSentinel(ha angle.Angle) bool {
	return NeverSets(ha) || NeverRises(ha)
}

// SourceIsUp reports whether a source rising at riseLST and setting at
// setLST is up at lst, allowing for the set time wrapping past 24h.
func SourceIsUp(riseLST, setLST, lst angle.Angle) bool {
	rise, set, now := riseLST.Turns(), setLST.Turns(), lst.Turns()
	wraps := rise > set
	return (now >= rise && (now <= set || wraps)) ||
		(now <= set && (now >= rise || wraps))
}
