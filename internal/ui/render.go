package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/coord"
	"github.com/litescript/ls-astro/internal/site"
	"github.com/litescript/ls-astro/internal/sky"
	"github.com/litescript/ls-astro/internal/source"
)

// AllFrames is the display order of the frame table.
var AllFrames = []coord.Mode{
	coord.J2000, coord.B1950, coord.GALACTIC, coord.DATE,
	coord.HADEC, coord.AZEL, coord.EWXY,
}

// FrameRow is one row of a frame table.
type FrameRow struct {
	Frame  coord.Mode
	Result coord.Result
	Err    error
}

// Frames converts c into every frame in frames. Conversion errors are kept
// per row.
func Frames(c *sky.Coordinate, frames []coord.Mode, opts ...coord.Option) []FrameRow {
	rows := make([]FrameRow, 0, len(frames))
	for _, f := range frames {
		r, err := c.Convert(f, opts...)
		rows = append(rows, FrameRow{Frame: f, Result: r, Err: err})
	}
	return rows
}

// FormatLeft renders the left component of a frame: hours for RA and HA,
// degrees otherwise.
func FormatLeft(m coord.Mode, a angle.Angle) string {
	switch m {
	case coord.J2000, coord.B1950, coord.DATE, coord.HADEC:
		return a.Format(angle.HoursFormat())
	}
	return a.Format(angle.DefaultFormat())
}

// FormatRight renders the right component of a frame in degrees.
func FormatRight(a angle.Angle) string {
	opts := angle.DefaultFormat()
	opts.AlwaysSigned = true
	return a.Format(opts)
}

// FormatLST renders a sidereal time, or a marker for the rise/set sentinels.
func FormatLST(a angle.Angle) string {
	switch {
	case coord.NeverSets(a):
		return "never sets"
	case coord.NeverRises(a):
		return "never rises"
	}
	return a.Format(angle.HoursFormat())
}

// table lays out rows in left-aligned columns.
func (t Theme) table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	pad := func(s string, w int) string {
		if gap := w - lipgloss.Width(s); gap > 0 {
			return s + strings.Repeat(" ", gap)
		}
		return s
	}

	var b strings.Builder
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = t.render(t.label, pad(h, widths[i]))
	}
	b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
	b.WriteString("\n")
	for _, row := range rows {
		cells = cells[:0]
		for i, cell := range row {
			if i < len(widths) {
				cell = pad(cell, widths[i])
			}
			cells = append(cells, cell)
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderFrames renders a frame table.
func (t Theme) RenderFrames(rows []FrameRow) string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		l, rn := r.Frame.Names()
		if r.Err != nil {
			out = append(out, []string{r.Frame.String(), t.render(t.err, r.Err.Error()), ""})
			continue
		}
		out = append(out, []string{
			r.Frame.String(),
			fmt.Sprintf("%s=%s", l, t.render(t.value, FormatLeft(r.Frame, r.Result.Left))),
			fmt.Sprintf("%s=%s", rn, t.render(t.value, FormatRight(r.Result.Right))),
		})
	}
	return t.table([]string{"FRAME", "LEFT", "RIGHT"}, out)
}

// RenderConversion renders a coordinate, the time and location it is
// observed at and its position in every frame.
func (t Theme) RenderConversion(c *sky.Coordinate, rows []FrameRow) string {
	var b strings.Builder
	loc := c.Location()
	b.WriteString(t.Title(c.String()))
	b.WriteString("\n")
	b.WriteString(t.render(t.dim, fmt.Sprintf("%s  LMST %s  @ %s",
		c.Time().Format("%y-%m-%d %H:%M:%S UTC"),
		c.Time().LMST().Format(angle.HoursFormat()),
		loc.Name)))
	b.WriteString("\n\n")
	b.WriteString(t.RenderFrames(rows))
	return b.String()
}

// RenderSites renders the registered telescope locations, marking the
// default.
func (t Theme) RenderSites(locs []site.Location, defaultName string) string {
	rows := make([][]string, 0, len(locs))
	for _, loc := range locs {
		name := loc.Name
		if name == defaultName {
			name = t.render(t.accent, name+" *")
		}
		low := "-"
		if loc.Limits.ElevationLow.IsSet() {
			low = fmt.Sprintf("%.1f°", loc.Limits.ElevationLow.Degrees())
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%+.5f", loc.Longitude.Degrees()),
			fmt.Sprintf("%+.5f", loc.Latitude.Degrees()),
			string(loc.Mount),
			low,
			fmt.Sprintf("%+d", loc.TimezoneOffset),
		})
	}
	return t.table([]string{"NAME", "LONGITUDE", "LATITUDE", "MOUNT", "EL LOW", "TZ MIN"}, rows)
}

// RenderElevation renders an elevation with its visibility bar.
func (t Theme) RenderElevation(elDeg float64) string {
	tier := GetElevationTier(elDeg)
	return t.color(tier.color(), fmt.Sprintf("%s %6.2f°", tier.bar(), elDeg))
}

// RenderSunSeparation renders a sun separation with its warning tier.
func (t Theme) RenderSunSeparation(sepDeg float64) string {
	tier := GetSunSeparationTier(sepDeg)
	text := fmt.Sprintf("%.1f°", sepDeg)
	switch tier {
	case SunSepWarning:
		text += " ⚠ too close to Sun"
	case SunSepCaution:
		text += " near Sun"
	}
	return t.color(tier.color(), text)
}

func formatWhen(tm time.Time) string {
	if tm.IsZero() {
		return "-"
	}
	return tm.UTC().Format("2006-01-02 15:04:05")
}

// RenderRiseSet renders a rise-set window for a source.
func (t Theme) RenderRiseSet(src *source.Source, w source.Window) string {
	var b strings.Builder
	b.WriteString(t.Title(src.Name()))
	b.WriteString("\n")
	loc := src.Coordinate().Location()
	b.WriteString(t.render(t.dim, fmt.Sprintf("%s  above %.2f°", loc.Name, w.Elevation.Degrees())))
	b.WriteString("\n\n")

	switch {
	case w.AlwaysVisible:
		b.WriteString(t.color(colorVisHigh, "always above the limit"))
		b.WriteString("\n")
		return b.String()
	case w.NeverVisible:
		b.WriteString(t.color(colorVisNone, "never rises above the limit"))
		b.WriteString("\n")
		return b.String()
	}

	rows := [][]string{
		{"rise", FormatLST(w.RiseLST), formatWhen(w.Rise)},
		{"set", FormatLST(w.SetLST), formatWhen(w.Set)},
	}
	if !w.Rise.IsZero() && !w.Set.IsZero() {
		rows = append(rows, []string{"up", "", angle.DurationString(w.Set.Sub(w.Rise))})
	}
	b.WriteString(t.table([]string{"EVENT", "LST", "UTC"}, rows))
	return b.String()
}

// RenderSolarTimes renders sunrise, sunset and twilight for a day.
func (t Theme) RenderSolarTimes(loc site.Location, sw source.SolarWindows) string {
	var b strings.Builder
	b.WriteString(t.Title("Sun @ " + loc.Name))
	b.WriteString("\n\n")

	windows := []struct {
		name string
		w    source.Window
	}{
		{"sunrise/sunset", sw.Sunrise},
		{"civil", sw.Civil},
		{"nautical", sw.Nautical},
		{"astronomical", sw.Astronomical},
	}
	rows := make([][]string, 0, len(windows))
	for _, win := range windows {
		switch {
		case win.w.AlwaysVisible:
			rows = append(rows, []string{win.name, "up all day", "", ""})
		case win.w.NeverVisible:
			rows = append(rows, []string{win.name, "down all day", "", ""})
		default:
			rows = append(rows, []string{
				win.name,
				formatWhen(win.w.Rise),
				formatWhen(win.w.Set),
				angle.DurationString(win.w.Set.Sub(win.w.Rise)),
			})
		}
	}
	b.WriteString(t.table([]string{"EVENT", "START", "END", "LENGTH"}, rows))
	return b.String()
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// RenderTrace renders an elevation trace as a sparkline colored by elevation
// tier, with the peak and the sample nearest now.
func (t Theme) RenderTrace(tr *source.ElevationTrace, now time.Time) string {
	if len(tr.Samples) == 0 {
		return t.render(t.dim, "no samples") + "\n"
	}
	var spark strings.Builder
	for _, s := range tr.Samples {
		el := s.Elevation
		if el < 0 {
			el = 0
		}
		i := int(el / 90 * float64(len(sparkLevels)-1))
		if i >= len(sparkLevels) {
			i = len(sparkLevels) - 1
		}
		spark.WriteString(t.color(GetElevationTier(s.Elevation).color(), string(sparkLevels[i])))
	}

	var b strings.Builder
	b.WriteString(t.render(t.label, "Elevation "))
	b.WriteString(t.render(t.dim, fmt.Sprintf("%s to %s UTC", formatWhen(tr.WindowStart), formatWhen(tr.WindowEnd))))
	b.WriteString("\n")
	b.WriteString(spark.String())
	b.WriteString("\n")
	if peak, err := tr.Peak(); err == nil {
		b.WriteString(fmt.Sprintf("peak %s at %s UTC\n", t.RenderElevation(peak.Elevation), formatWhen(peak.Time)))
	}
	if cur := tr.CurrentElevation(now); cur != nil {
		b.WriteString(fmt.Sprintf("now  %s az %.1f°\n", t.RenderElevation(cur.Elevation), cur.Azimuth))
	}
	return b.String()
}
