package coord

import (
	"math"

	"github.com/litescript/ls-astro/internal/angle"
)

const twoPi = 2 * math.Pi

// Pol2R converts a polar position into a unit rectangular vector.
func Pol2R(left, right angle.Angle) Vec3 {
	return pol2r(left.Radians(), right.Radians())
}

func pol2r(l, r float64) Vec3 {
	return Vec3{
		X: angle.CheckNumber(math.Cos(l) * math.Cos(r)),
		Y: angle.CheckNumber(math.Sin(l) * math.Cos(r)),
		Z: angle.CheckNumber(math.Sin(r)),
	}
}

// R2Pol converts a rectangular vector into polar angles in turns, the left
// angle in [0, 1).
func R2Pol(v Vec3) (left, right angle.Angle) {
	l, r := r2pol(v.X, v.Y, v.Z)
	return angle.FromTurns(l), angle.FromTurns(r)
}

func r2pol(x, y, z float64) (left, right float64) {
	left = math.Atan2(y, x) / twoPi
	if left < 0 {
		left++
	}
	if left = angle.CheckNumber(left); left >= 1 {
		left = 0
	}
	if n := math.Sqrt(x*x + y*y + z*z); n > 0 {
		right = math.Asin(z/n) / twoPi
	}
	return left, right
}

// XYToAzEl converts mount X,Y angles into azimuth and elevation.
func XYToAzEl(x, y angle.Angle) (az, el angle.Angle) {
	p := Pol2R(x, y)
	l, r := r2pol(p.Y, p.Z, p.X)
	return angle.FromTurns(l), angle.FromTurns(r)
}

// AzElToXY converts azimuth and elevation into mount X,Y angles, X in
// (-0.5, 0.5] turns.
func AzElToXY(az, el angle.Angle) (x, y angle.Angle) {
	p := Pol2R(az, el)
	l, r := r2pol(p.Z, p.X, p.Y)
	if l > 0.5 {
		l--
	}
	return angle.FromTurns(l), angle.FromTurns(r)
}

// EqAzEl converts hour angle and declination into azimuth and elevation
// for an observer at latitude lat. The transform is its own inverse, so
// azimuth and elevation in give hour angle and declination out. The left
// result is in [0, 1) turns unless allowNegative is set.
func EqAzEl(left, right, lat angle.Angle, allowNegative bool) (angle.Angle, angle.Angle) {
	l, r := eqAzEl(left.Radians(), right.Radians(), lat.Radians(), allowNegative)
	return angle.FromTurns(l), angle.FromTurns(r)
}

func eqAzEl(l, r, phi float64, allowNegative bool) (float64, float64) {
	sphi, cphi := math.Sincos(phi)
	sl, cl := math.Sincos(l)
	sr, cr := math.Sincos(r)

	left := math.Atan2(-sl, -cl*sphi+sr*cphi/cr) / twoPi
	if !allowNegative && left < 0 {
		left++
	}
	right := math.Asin(clamp1(cl*cr*cphi+sr*sphi)) / twoPi
	return left, right
}

func clamp1(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// wrapHalf reduces turns into (-0.5, 0.5].
func wrapHalf(t float64) float64 {
	t = angle.BoundNumber(t, 0, 1)
	if t > 0.5 {
		t--
	}
	return t
}
