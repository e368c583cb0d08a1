package main

import (
	"encoding/json"
	"io"
	"time"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/epoch"
	"github.com/litescript/ls-astro/internal/resolver"
	"github.com/litescript/ls-astro/internal/site"
	"github.com/litescript/ls-astro/internal/sky"
	"github.com/litescript/ls-astro/internal/source"
	"github.com/litescript/ls-astro/internal/ui"
)

// AngleExport is a JSON-friendly angle.
type AngleExport struct {
	Name    string  `json:"name"`
	Degrees float64 `json:"degrees"`
	Text    string  `json:"text"`
}

// FrameExport is one frame of a conversion.
type FrameExport struct {
	Frame string       `json:"frame"`
	Left  *AngleExport `json:"left,omitempty"`
	Right *AngleExport `json:"right,omitempty"`
	Error string       `json:"error,omitempty"`
}

// ConversionExport is a position in every requested frame.
type ConversionExport struct {
	Input    string        `json:"input"`
	UTC      time.Time     `json:"utc"`
	MJD      float64       `json:"mjd"`
	LMST     string        `json:"lmst"`
	Location string        `json:"location"`
	Frames   []FrameExport `json:"frames"`
}

// TimeExport is a UTC instant with its sidereal times at a location.
type TimeExport struct {
	UTC      time.Time `json:"utc"`
	MJD      float64   `json:"mjd"`
	GMST     string    `json:"gmst"`
	LMST     string    `json:"lmst"`
	Location string    `json:"location"`
	Local    string    `json:"local"`
}

// SiteExport is a registered telescope location.
type SiteExport struct {
	Name           string   `json:"name"`
	Longitude      float64  `json:"longitude"`
	Latitude       float64  `json:"latitude"`
	TimezoneOffset int      `json:"timezone_offset"`
	Mount          string   `json:"mount"`
	ElevationLow   *float64 `json:"elevation_low,omitempty"`
	ElevationHigh  *float64 `json:"elevation_high,omitempty"`
	DUT1           float64  `json:"dut1"`
	Default        bool     `json:"default"`
}

// ResolvedExport is a resolved source name.
type ResolvedExport struct {
	Name       string         `json:"name"`
	RA         string         `json:"ra"`
	Dec        string         `json:"dec"`
	Epoch      string         `json:"epoch"`
	Resolver   string         `json:"resolver"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// WindowExport is a rise-set window.
type WindowExport struct {
	Elevation     float64    `json:"elevation"`
	RiseLST       string     `json:"rise_lst,omitempty"`
	SetLST        string     `json:"set_lst,omitempty"`
	Rise          *time.Time `json:"rise,omitempty"`
	Set           *time.Time `json:"set,omitempty"`
	AlwaysVisible bool       `json:"always_visible,omitempty"`
	NeverVisible  bool       `json:"never_visible,omitempty"`
}

// RiseSetExport is a source with its rise-set window.
type RiseSetExport struct {
	Source   string       `json:"source"`
	Location string       `json:"location"`
	Window   WindowExport `json:"window"`
}

// SolarExport holds a day's sunrise, sunset and twilights.
type SolarExport struct {
	Location     string       `json:"location"`
	Sunrise      WindowExport `json:"sunrise"`
	Civil        WindowExport `json:"civil"`
	Nautical     WindowExport `json:"nautical"`
	Astronomical WindowExport `json:"astronomical"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func exportAngle(name, text string, a angle.Angle) *AngleExport {
	return &AngleExport{Name: name, Degrees: a.Degrees(), Text: text}
}

func exportConversion(c *sky.Coordinate, rows []ui.FrameRow) ConversionExport {
	t := c.Time()
	out := ConversionExport{
		Input:    c.String(),
		UTC:      t.UTC(),
		MJD:      t.MJD(),
		LMST:     t.LMST().Format(angle.HoursFormat()),
		Location: c.Location().Name,
	}
	for _, r := range rows {
		fe := FrameExport{Frame: r.Frame.String()}
		if r.Err != nil {
			fe.Error = r.Err.Error()
		} else {
			l, rn := r.Frame.Names()
			fe.Left = exportAngle(l, ui.FormatLeft(r.Frame, r.Result.Left), r.Result.Left)
			fe.Right = exportAngle(rn, ui.FormatRight(r.Result.Right), r.Result.Right)
		}
		out.Frames = append(out.Frames, fe)
	}
	return out
}

func exportTime(t *epoch.Time) TimeExport {
	return TimeExport{
		UTC:      t.UTC(),
		MJD:      t.MJD(),
		GMST:     angle.FromTurns(t.GMST()).Format(angle.HoursFormat()),
		LMST:     t.LMST().Format(angle.HoursFormat()),
		Location: t.Location().Name,
		Local:    t.LocalTimeString(""),
	}
}

func exportSites(locs []site.Location, defaultName string) []SiteExport {
	out := make([]SiteExport, 0, len(locs))
	for _, loc := range locs {
		se := SiteExport{
			Name:           loc.Name,
			Longitude:      loc.Longitude.Degrees(),
			Latitude:       loc.Latitude.Degrees(),
			TimezoneOffset: loc.TimezoneOffset,
			Mount:          string(loc.Mount),
			DUT1:           loc.DUT1,
			Default:        loc.Name == defaultName,
		}
		if loc.Limits.ElevationLow.IsSet() {
			v := loc.Limits.ElevationLow.Degrees()
			se.ElevationLow = &v
		}
		if loc.Limits.ElevationHigh.IsSet() {
			v := loc.Limits.ElevationHigh.Degrees()
			se.ElevationHigh = &v
		}
		out = append(out, se)
	}
	return out
}

func exportResolved(r resolver.Resolved) ResolvedExport {
	return ResolvedExport{
		Name:       r.Name,
		RA:         r.RA.Format(angle.HoursFormat()),
		Dec:        ui.FormatRight(r.Dec),
		Epoch:      r.Frame.String(),
		Resolver:   r.Resolver,
		Parameters: r.Parameters,
	}
}

func exportWindow(w source.Window) WindowExport {
	we := WindowExport{
		Elevation:     w.Elevation.Degrees(),
		AlwaysVisible: w.AlwaysVisible,
		NeverVisible:  w.NeverVisible,
	}
	if w.AlwaysVisible || w.NeverVisible {
		return we
	}
	we.RiseLST = ui.FormatLST(w.RiseLST)
	we.SetLST = ui.FormatLST(w.SetLST)
	if !w.Rise.IsZero() {
		rise := w.Rise
		we.Rise = &rise
	}
	if !w.Set.IsZero() {
		set := w.Set
		we.Set = &set
	}
	return we
}

func exportSolar(loc site.Location, sw source.SolarWindows) SolarExport {
	return SolarExport{
		Location:     loc.Name,
		Sunrise:      exportWindow(sw.Sunrise),
		Civil:        exportWindow(sw.Civil),
		Nautical:     exportWindow(sw.Nautical),
		Astronomical: exportWindow(sw.Astronomical),
	}
}

// frameModes lists every frame for help text.
var frameModes = func() []string {
	names := make([]string, 0, len(ui.AllFrames))
	for _, m := range ui.AllFrames {
		names = append(names, m.String())
	}
	return names
}()
