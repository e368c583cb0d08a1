package site

import (
	"fmt"

	"github.com/litescript/ls-astro/internal/angle"
)

// Builtin returns the telescope sites every registry is seeded with.
// ATCA is first and therefore the default.
func Builtin() []Location {
	return []Location{
		{
			Name:           "ATCA",
			Longitude:      mustAngle(149.550138889),
			Latitude:       mustAngle(-30.312884722),
			TimezoneOffset: 600,
			Mount:          MountAzEl,
			Limits: Limits{
				ElevationLow:  angle.FromDegrees(12),
				ElevationHigh: angle.FromDegrees(90),
			},
		},
		{
			Name:           "Parkes",
			Longitude:      mustAngle("148d15m48.636s"),
			Latitude:       mustAngle("-32d59m54.263s"),
			TimezoneOffset: 600,
			Mount:          MountAzEl,
			Limits:         Limits{ElevationLow: angle.FromDegrees(30)},
		},
		{
			Name:           "Mopra",
			Longitude:      mustAngle("149:05:59"),
			Latitude:       mustAngle("-31:16:04"),
			TimezoneOffset: 600,
			Mount:          MountAzEl,
			Limits:         Limits{ElevationLow: angle.FromDegrees(12)},
		},
		{
			Name:           "ASKAP",
			Longitude:      mustAngle(116.637134902778),
			Latitude:       mustAngle(-26.6902167777778),
			TimezoneOffset: 480,
			Mount:          MountAzEl,
			Limits:         Limits{ElevationLow: angle.FromDegrees(12)},
		},
	}
}

func mustAngle(v any) angle.Angle {
	a, err := angle.From(v)
	if err != nil {
		panic(fmt.Sprintf("site: bad built-in angle %v: %v", v, err))
	}
	return a
}
