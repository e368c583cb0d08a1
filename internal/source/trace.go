package source

import (
	"errors"
	"fmt"
	"time"

	"github.com/litescript/ls-astro/internal/coord"
)

// TraceWindow is the default time span of an elevation trace (±12 hours).
const TraceWindow = 12 * time.Hour

// TraceStep is the default time between samples.
const TraceStep = 15 * time.Minute

// ErrEmptyTrace is returned for traces with no samples.
var ErrEmptyTrace = errors.New("elevation trace has no samples")

// ElevationSample is the elevation of a source at a point in time.
type ElevationSample struct {
	Time      time.Time
	Azimuth   float64 // degrees
	Elevation float64 // degrees above horizon
}

// ElevationTrace holds elevation samples over a time window.
type ElevationTrace struct {
	Source      string
	Location    string
	Samples     []ElevationSample
	WindowStart time.Time
	WindowEnd   time.Time
}

// Trace samples the source's elevation every step over ±window around its
// current time. The source's own time is left unchanged.
func (s *Source) Trace(window, step time.Duration, opts ...coord.Option) (*ElevationTrace, error) {
	if window <= 0 {
		window = TraceWindow
	}
	if step <= 0 {
		step = TraceStep
	}

	c := s.coordinate.Clone()
	center := c.Time().UTC()
	start := center.Add(-window)
	t := c.Time()
	t.AddSeconds(-window.Seconds())

	trace := &ElevationTrace{
		Source:      s.name,
		Location:    c.Location().Name,
		WindowStart: start,
		WindowEnd:   center.Add(window),
	}
	for at := start; !at.After(trace.WindowEnd); at = at.Add(step) {
		r, err := c.Convert(coord.AZEL, opts...)
		if err != nil {
			return nil, fmt.Errorf("trace %s at %s: %w", s.name, at.Format(time.RFC3339), err)
		}
		trace.Samples = append(trace.Samples, ElevationSample{
			Time:      t.UTC(),
			Azimuth:   r.Azimuth().Degrees(),
			Elevation: r.Elevation().Degrees(),
		})
		t.AddSeconds(step.Seconds())
	}
	return trace, nil
}

// CurrentElevation returns the sample closest to now, or nil if no samples
// exist.
func (t *ElevationTrace) CurrentElevation(now time.Time) *ElevationSample {
	var closest *ElevationSample
	var minDelta time.Duration = 1<<63 - 1

	for i := range t.Samples {
		delta := t.Samples[i].Time.Sub(now)
		if delta < 0 {
			delta = -delta
		}
		if delta < minDelta {
			minDelta = delta
			closest = &t.Samples[i]
		}
	}
	return closest
}

// Peak returns the highest sample.
func (t *ElevationTrace) Peak() (ElevationSample, error) {
	if len(t.Samples) == 0 {
		return ElevationSample{}, ErrEmptyTrace
	}
	peak := t.Samples[0]
	for _, s := range t.Samples[1:] {
		if s.Elevation > peak.Elevation {
			peak = s
		}
	}
	return peak, nil
}
