// Package epoch converts UTC instants to calendar fields, Modified Julian
// Dates and mean sidereal time.
package epoch

import (
	"math"
	"time"
)

const (
	// MJDOffset converts MJD to JD.
	MJDOffset = 2400000.5
	// J2000JD is the Julian Date of the J2000.0 epoch (2000-01-01T12:00 TT).
	J2000JD = 2451545.0
	// J2000MJD is J2000JD as an MJD.
	J2000MJD = J2000JD - MJDOffset
	// DaysPerCentury is the length of a Julian century.
	DaysPerCentury = 36525.0
	// Solar2Sidereal is the ratio of sidereal to solar time rates.
	Solar2Sidereal = 1.002737909350795

	msPerDay = 86400000
)

// Calendar is a broken-down UTC date and time.
type Calendar struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second float64
}

// DayFraction returns the time of day as a fraction of a day.
func (c Calendar) DayFraction() float64 {
	return (float64(c.Hour) + float64(c.Minute)/60 + c.Second/3600) / 24
}

// Time returns the calendar as a UTC time.Time.
func (c Calendar) Time() time.Time {
	sec := math.Floor(c.Second)
	nsec := math.Round((c.Second - sec) * 1e9)
	return time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, int(sec), int(nsec), time.UTC)
}

// CalendarOf breaks t down into UTC calendar fields.
func CalendarOf(t time.Time) Calendar {
	t = t.UTC()
	return Calendar{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: float64(t.Second()) + float64(t.Nanosecond())/1e9,
	}
}

// CalToMJD converts Gregorian calendar fields to a Modified Julian Date.
func CalToMJD(c Calendar) float64 {
	var m, y int
	if c.Month <= 2 {
		m = c.Month + 9
		y = c.Year - 1
	} else {
		m = c.Month - 3
		y = c.Year
	}

	cent := y / 100
	y -= cent * 100
	x1 := (146097 * cent) / 4
	x2 := (1461 * y) / 4
	x3 := (153*m + 2) / 5

	return float64(x1+x2+x3+c.Day-678882) + c.DayFraction()
}

// MJDToCal converts a Modified Julian Date to calendar fields. The time of
// day is rounded to the nearest millisecond.
func MJDToCal(mjd float64) Calendar {
	dayNum := math.Floor(mjd)
	ms := math.Round((mjd - dayNum) * msPerDay)
	if ms >= msPerDay {
		ms -= msPerDay
		dayNum++
	}

	// Julian Day number at the following noon.
	jd := dayNum + 2400001
	a := math.Floor((jd - 1867216.25) / 36524.25)
	b := jd
	if jd > 2299160 {
		b = jd + 1 + a - math.Floor(a/4)
	}
	c := b + 1524
	d := math.Floor((c - 122.1) / 365.25)
	e := math.Floor(365.25 * d)
	g := math.Floor((c - e) / 30.6001)

	day := c - e - math.Floor(30.6001*g)
	month := g - 1
	if g >= 13.5 {
		month = g - 13
	}
	year := d - 4715
	if month > 2.5 {
		year = d - 4716
	}

	msi := int64(ms)
	return Calendar{
		Year:   int(year),
		Month:  int(month),
		Day:    int(day),
		Hour:   int(msi / 3600000),
		Minute: int(msi / 60000 % 60),
		Second: float64(msi%60000) / 1000,
	}
}

// MJDOf returns the Modified Julian Date of t.
func MJDOf(t time.Time) float64 {
	return CalToMJD(CalendarOf(t))
}

// TimeOfMJD returns the UTC instant of an MJD.
func TimeOfMJD(mjd float64) time.Time {
	return MJDToCal(mjd).Time()
}

// GMST returns Greenwich Mean Sidereal Time in turns for an MJD, using the
// IAU 1982 polynomial evaluated at 0h UT and the solar to sidereal rate for
// the rest of the day. dut1 is UT1-UTC in seconds.
func GMST(mjd, dut1 float64) float64 {
	const (
		a = 101.0 + 24110.54841/86400.0
		b = 8640184.812866 / 86400.0
		e = 0.093104 / 86400.0
		d = 0.0000062 / 86400.0
	)
	day := math.Floor(mjd)
	tu := (day - J2000MJD) / DaysPerCentury
	sidTim := frac(a + tu*(b+tu*(e-tu*d)))
	return frac(sidTim + (mjd-day+dut1/86400)*Solar2Sidereal)
}

// frac reduces x into [0, 1).
func frac(x float64) float64 {
	x -= math.Floor(x)
	if x >= 1 {
		x -= 1
	}
	return x
}
