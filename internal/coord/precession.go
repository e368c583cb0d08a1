package coord

import (
	"math"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/epoch"
)

// Ephemeris holds the fundamental arguments used by nutation and
// aberration, in turns.
type Ephemeris struct {
	// Omega is the longitude of the Moon's ascending node.
	Omega float64
	// SolarAnomaly is the mean anomaly of the Sun.
	SolarAnomaly float64
	// LunarAnomaly is the mean anomaly of the Moon.
	LunarAnomaly float64
	// F is the Moon's mean longitude minus Omega.
	F float64
	// D is the mean elongation of the Moon from the Sun.
	D float64
	// Eps0 is the mean obliquity of the ecliptic. It is not reduced.
	Eps0 float64
}

// Nutation is the nutation in longitude and obliquity, in turns, and the
// linearized rotation they describe.
type Nutation struct {
	DPsi   float64
	DEps   float64
	Matrix Matrix
}

func julianCenturies(mjd float64) float64 {
	return (mjd + epoch.MJDOffset - epoch.J2000JD) / epoch.DaysPerCentury
}

func turns(rad float64) float64 {
	return angle.BoundNumber(rad/twoPi, 0, 1)
}

// EphemVars returns the fundamental arguments for an MJD.
func EphemVars(mjd float64) Ephemeris {
	jc := julianCenturies(mjd)
	return Ephemeris{
		Omega:        turns(((0.000000039*jc+0.000036143)*jc-33.757045934)*jc + 2.182438624),
		SolarAnomaly: turns(6.240035939 - ((5.818e-8*jc+2.797e-6)*jc-628.301956024)*jc),
		LunarAnomaly: turns(((0.000000310*jc+0.000151795)*jc+8328.691422884)*jc + 2.355548394),
		F:            turns(((0.000000053*jc-0.000064272)*jc+8433.466158318)*jc + 1.627901934),
		D:            turns(((0.000000092*jc+0.000033409)*jc+7771.377146171)*jc + 5.198469514),
		Eps0:         (((0.000000009*jc-0.000000003)*jc-0.000226966)*jc + 0.409092804) / twoPi,
	}
}

type nutationTerm struct {
	arg      func(e Ephemeris) float64
	psi, eps float64
}

// nutationTerms are the IAU 1980 terms with amplitudes above 0.01
// arcseconds, in radians.
var nutationTerms = []nutationTerm{
	{func(e Ephemeris) float64 { return e.Omega }, -0.000083386, 0.000044615},
	{func(e Ephemeris) float64 { return 2 * e.Omega }, +0.000001000, -0.000000434},
	{func(e Ephemeris) float64 { return 2 * (e.F - e.D + e.Omega) }, -0.000006393, +0.000002781},
	{func(e Ephemeris) float64 { return e.SolarAnomaly }, +0.000000691, 0},
	{func(e Ephemeris) float64 { return 2*(e.F-e.D+e.Omega) + e.SolarAnomaly }, -0.000000251, +0.000000109},
	{func(e Ephemeris) float64 { return 2*(e.F-e.D+e.Omega) - e.SolarAnomaly }, +0.000000105, 0},
	{func(e Ephemeris) float64 { return 2*(e.F-e.D+e.Omega) - e.Omega }, +0.000000063, 0},
	{func(e Ephemeris) float64 { return 2 * (e.F + e.Omega) }, -0.000001102, +0.000000474},
	{func(e Ephemeris) float64 { return e.LunarAnomaly }, +0.000000345, 0},
	{func(e Ephemeris) float64 { return 2*(e.F+e.Omega) - e.Omega }, -0.000000187, +0.000000097},
	{func(e Ephemeris) float64 { return 2*(e.F+e.Omega) + e.LunarAnomaly }, -0.000000146, +0.000000063},
	{func(e Ephemeris) float64 { return e.LunarAnomaly - 2*e.D }, -0.000000077, 0},
	{func(e Ephemeris) float64 { return 2*(e.F+e.Omega) - e.LunarAnomaly }, +0.000000060, 0},
}

// Nutate evaluates the 1980 IAU theory of nutation.
func Nutate(e Ephemeris) Nutation {
	var dpsi, deps float64
	for _, term := range nutationTerms {
		sa, ca := math.Sincos(term.arg(e) * twoPi)
		dpsi += term.psi * sa
		deps += term.eps * ca
	}
	n := Nutation{DPsi: dpsi / twoPi, DEps: deps / twoPi}

	se, ce := math.Sincos((e.Eps0 + n.DEps) * twoPi)
	n.Matrix = Matrix{
		{1, -dpsi * ce, -dpsi * se},
		{dpsi * ce, 1, -deps},
		{dpsi * se, deps, 1},
	}
	return n
}

var (
	zetaCoeffs  = [6]float64{0.011180860865024, 0.000006770713945, -0.000000000673891, 0.000001463555541, -0.000000001667759, 0.000000087256766}
	zCoeffs     = [6]float64{0.011180860865024, 0.000006770713945, -0.000000000673891, 0.000005307158404, 0.000000000319977, 0.000000088250634}
	thetaCoeffs = [6]float64{0.009717173455170, -0.000004136915141, -0.000000001052046, 0.000002068457570, 0.000000001052046, -0.000000202812107}
)

// Precession returns the general precession matrix between two MJDs from
// the Lieske (1977) angles.
func Precession(start, stop float64) Matrix {
	t := julianCenturies(start)
	st := (stop - start) / epoch.DaysPerCentury
	t2, st2 := t*t, st*st
	st3 := st2 * st

	a, b, d := zetaCoeffs, zCoeffs, thetaCoeffs
	zeta := (a[0]+a[1]*t+a[2]*t2)*st + (a[3]+a[4]*t)*st2 + a[5]*st3
	z := (b[0]+b[1]*t+b[2]*t2)*st + (b[3]+b[4]*t)*st2 + b[5]*st3
	theta := (d[0]+d[1]*t+d[2]*t2)*st - (d[3]+d[4]*t)*st2 + d[5]*st3

	sz, cz := math.Sincos(z)
	sZeta, cZeta := math.Sincos(zeta)
	sTheta, cTheta := math.Sincos(theta)
	return Matrix{
		{cZeta*cz*cTheta - sZeta*sz, -sZeta*cz*cTheta - cZeta*sz, -cz * sTheta},
		{cZeta*sz*cTheta + sZeta*cz, -sZeta*sz*cTheta + cZeta*cz, -sz * sTheta},
		{cZeta * sTheta, -sZeta * sTheta, cTheta},
	}
}

// PrecessionNutation returns the matrix taking J2000 vectors to apparent
// vectors of date at mjd.
func PrecessionNutation(mjd float64, n Nutation) Matrix {
	return Precession(epoch.J2000MJD, mjd).Mul(n.Matrix)
}

const (
	keplerIterations = 20
	keplerTolerance  = 1e-9
)

// Aberration returns the annual aberration vector, in radians, for the
// Earth's orbital velocity at mjd.
func Aberration(mjd float64, e Ephemeris, n Nutation) Vec3 {
	jc := julianCenturies(mjd)
	ecc := (-0.000000126*jc-0.00004205)*jc + 0.016709114

	m := e.SolarAnomaly * twoPi
	ea := m
	for i := 0; i < keplerIterations; i++ {
		next := ea + (m-ea+ecc*math.Sin(ea))/(1-ecc*math.Cos(ea))
		done := math.Abs(next-ea) <= keplerTolerance
		ea = next
		if done {
			break
		}
	}

	perihelion := ((0.00000005817764*jc+0.000008077)*jc+0.030010190)*jc + 1.796613066
	eps := (e.Eps0 + n.DEps) * twoPi

	xx := 0.00009936508 / (1 - ecc*math.Cos(ea))
	efac := math.Sqrt(1 - ecc*ecc)
	sp, cp := math.Sincos(perihelion)
	sa, ca := math.Sincos(ea)
	se, ce := math.Sincos(eps)
	return Vec3{
		X: xx * (-cp*sa - efac*sp*ca),
		Y: xx * (-sp*ce*sa + efac*cp*ce*ca),
		Z: xx * (-sp*se*sa + efac*cp*se*ca),
	}
}
