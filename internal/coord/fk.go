package coord

import (
	"math"

	"github.com/litescript/ls-astro/internal/angle"
)

const (
	// BesselianEpoch is the epoch of the FK4 catalogue.
	BesselianEpoch = 1950.0

	// pmf converts proper motion from arcseconds per century to radians
	// per year.
	pmf = 100 * 60 * 60 * 360 / twoPi
)

var (
	// eTerms are the FK4 elliptic aberration terms.
	eTerms = Vec3{X: -1.62557e-6, Y: -0.31919e-6, Z: -0.13843e-6}

	// eTermsDot is the rate of change of eTerms per tropical century.
	eTermsDot = Vec3{X: +1.245e-3, Y: -1.580e-3, Z: -0.659e-3}

	// fk4ToGal rotates B1950 equatorial vectors into IAU 1958 Galactic ones.
	fk4ToGal = Matrix{
		{-0.066988739415, -0.872755765852, -0.483538914632},
		{+0.492728466075, -0.450346958020, +0.744584633283},
		{-0.867600811151, -0.188374601723, +0.460199784784},
	}

	// fk4ToFK5 takes an FK4 position to an FK5 position and velocity.
	fk4ToFK5 = [6][3]float64{
		{+0.9999256782, -0.0111820611, -0.0048579477},
		{+0.0111820610, +0.9999374784, -0.0000271765},
		{+0.0048579479, -0.0000271474, +0.9999881997},
		{-0.000551, -0.238565, +0.435739},
		{+0.238514, -0.002667, -0.008541},
		{-0.435623, +0.012254, +0.002117},
	}

	// fk5ToFK4 is the inverse of fk4ToFK5 over position and velocity.
	fk5ToFK4 = [6][6]float64{
		{+0.9999256795, +0.0111814828, +0.0048590039, -0.00000242389840, -0.00000002710544, -0.00000001177742},
		{-0.0111814828, +0.9999374849, -0.0000271771, +0.00000002710544, -0.00000242392702, +0.00000000006585},
		{-0.0048590040, -0.0000271557, +0.9999881946, +0.00000001177742, +0.00000000006585, -0.00000242404995},
		{-0.000551, +0.238509, -0.435614, +0.99990432, +0.01118145, +0.00485852},
		{-0.238560, -0.002667, +0.012254, -0.01118145, +0.99991613, -0.00002717},
		{+0.435730, -0.008541, +0.002117, -0.00485852, -0.00002716, +0.99996684},
	}
)

// EPJ converts a Modified Julian Date to a Julian epoch.
func EPJ(mjd float64) float64 {
	return 2000 + (mjd-51544.5)/365.25
}

// EPB2D converts a Besselian epoch to a Modified Julian Date.
func EPB2D(epoch float64) float64 {
	return 15019.81352 + (epoch-1900)*365.242198781
}

// FK4ToFK5 converts a B1950 FK4 position to J2000 FK5, assuming zero proper
// motion in FK5.
func FK4ToFK5(ra, dec angle.Angle) (angle.Angle, angle.Angle) {
	r0 := Pol2R(ra, dec)

	a := eTerms.Add(eTermsDot.Scale((BesselianEpoch - 1950) / pmf))
	v1 := r0.Sub(a).Add(r0.Scale(r0.Dot(a)))

	var v2 [6]float64
	for i, row := range fk4ToFK5 {
		v2[i] = vec(row).Dot(v1)
	}

	// Fictitious FK4 proper motion between the catalogue epoch and J2000.
	w := (EPJ(EPB2D(BesselianEpoch)) - 2000) / pmf
	for i := 0; i < 3; i++ {
		v2[i] += w * v2[i+3]
	}
	return R2Pol(Vec3{X: v2[0], Y: v2[1], Z: v2[2]})
}

// FK5ToFK4 converts a J2000 FK5 position to B1950 FK4.
func FK5ToFK4(ra, dec angle.Angle) (angle.Angle, angle.Angle) {
	v1 := Pol2R(ra, dec)

	var v2 [6]float64
	for i, row := range fk5ToFK4 {
		v2[i] = row[0]*v1.X + row[1]*v1.Y + row[2]*v1.Z
	}
	p := Vec3{X: v2[0], Y: v2[1], Z: v2[2]}

	// The E-terms are applied twice, the second time with the magnitude of
	// the once-corrected vector.
	r := p.Norm()
	once := p.Add(eTerms.Scale(r)).Sub(p.Scale(p.Dot(eTerms)))
	r = once.Norm()
	return R2Pol(p.Add(eTerms.Scale(r)).Sub(p.Scale(p.Dot(eTerms))))
}

// FK4ToGal converts a B1950 FK4 position to IAU 1958 Galactic coordinates.
// Galactic longitude is returned on the left, latitude on the right.
func FK4ToGal(ra, dec angle.Angle) (angle.Angle, angle.Angle) {
	rc := Pol2R(ra, dec)
	tmp := rc.Sub(eTerms).Add(rc.Scale(rc.Dot(eTerms)))
	return R2Pol(fk4ToGal.Apply(tmp))
}

// GalToFK4 converts IAU 1958 Galactic coordinates to a B1950 FK4 position.
func GalToFK4(l, b angle.Angle) (angle.Angle, angle.Angle) {
	r := Pol2R(l, b)
	fk4 := fk4ToGal.Transpose().Apply(r)
	w := r.Dot(eTerms) + 1
	return R2Pol(fk4.Add(eTerms).Scale(1 / w))
}

// haversine returns the great circle distance in radians between two
// positions given as (longitude-like, latitude-like) pairs in radians.
func haversine(lon1, lat1, lon2, lat2 float64) float64 {
	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	if a > 1 {
		a = 1
	}
	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
