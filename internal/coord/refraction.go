package coord

import "math"

const (
	// DefaultRefraction is the refraction constant in turns.
	DefaultRefraction = 0.00005

	unrefractIterations = 10
	unrefractTolerance  = 7e-8
)

// Refract returns the apparent elevation, in turns, of a source at true
// elevation el. Elevations at or below the horizon are returned unchanged.
func Refract(el, ref0 float64) float64 {
	if el <= 0 {
		return el
	}
	return el + ref0/math.Tan(el*twoPi)
}

// Unrefract inverts Refract with a bracketed search: a Newton step when it
// stays inside the bracket, a bisection step otherwise. It returns the true
// elevation and the number of iterations used.
//
// Refract is only monotonic above refractionFloor (about 1 degree for the
// default constant), so the result is never below it. Apparent elevations
// lower than Refract(refractionFloor) have no true elevation in the model
// and give refractionFloor.
func Unrefract(el, ref0 float64) (float64, int) {
	if el <= 0 || ref0 == 0 {
		return el, 0
	}
	floor := refractionFloor(ref0)
	g := func(x float64) float64 { return Refract(x, ref0) - el }
	if el <= floor || g(floor) >= 0 {
		return floor, 0
	}

	corr := ref0 / math.Tan(el*twoPi)
	upper := math.Max(el-corr, floor)
	lower := el - 1.5*corr
	if lower < floor || g(lower) > 0 {
		lower = floor
	}

	x := upper
	n := 0
	for n < unrefractIterations {
		n++
		fx := g(x)
		if fx == 0 {
			break
		}
		if fx > 0 {
			upper = x
		} else {
			lower = x
		}
		s := math.Sin(x * twoPi)
		slope := 1 - ref0*twoPi/(s*s)
		next := x - fx/slope
		if slope <= 0 || next <= lower || next >= upper {
			next = (lower + upper) / 2
		}
		step := math.Abs(next - x)
		x = next
		if step <= unrefractTolerance {
			break
		}
	}
	return x, n
}

// refractionFloor is the true elevation, in turns, below which Refract
// turns back up towards the horizon.
func refractionFloor(ref0 float64) float64 {
	k := ref0 * twoPi
	if k >= 1 {
		return 0.25
	}
	return math.Asin(math.Sqrt(k)) / twoPi
}
