package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/coord"
	"github.com/litescript/ls-astro/internal/resolver"
	"github.com/litescript/ls-astro/internal/sky"
)

const (
	// Field of view in degrees
	fovAz = 120.0
	fovEl = 60.0

	glyphSource = '◆'
	glyphSun    = '☼'

	colorSource = "229" // bright gold
	colorSun    = "#FFD700"
	colorSkyBg  = "236"

	// Star glyphs by magnitude
	glyphStarBright  = '✶' // mag < 1.5
	glyphStarMedium  = '✸' // mag 1.5-3.0
	glyphStarDim     = '·' // mag > 3.0
	colorStarBright  = "255"
	colorStarMedium  = "250"
	colorStarDim     = "244"
	colorCardinal    = "252"
	colorStation     = "46"
	defaultSkyWidth  = 72
	defaultSkyHeight = 14
)

// skyMark is one object drawn on the sky canvas.
type skyMark struct {
	az, el float64
	glyph  rune
	color  string
	label  string
}

// starGlyph returns the glyph and color for a star of magnitude mag.
func starGlyph(mag float64) (rune, string) {
	switch {
	case mag < 1.5:
		return glyphStarBright, colorStarBright
	case mag < 3.0:
		return glyphStarMedium, colorStarMedium
	default:
		return glyphStarDim, colorStarDim
	}
}

// skyMarks places the catalogue stars and the Sun above the horizon of c's
// location at c's time. Stars without a magnitude are skipped.
func skyMarks(c *sky.Coordinate, stars []resolver.Entry, opts ...coord.Option) []skyMark {
	loc := c.Location()
	all := append([]coord.Option{
		coord.WithEpoch(c.Time()),
		coord.WithLatitude(loc.Latitude),
		coord.WithLongitude(loc.Longitude),
	}, opts...)

	marks := make([]skyMark, 0, len(stars)+1)
	for _, s := range stars {
		if s.Mag == 0 {
			continue
		}
		r, err := coord.Convert(angle.FromDegrees(s.RAdeg), angle.FromDegrees(s.DecDeg), coord.J2000, coord.AZEL, all...)
		if err != nil || r.Elevation().Degrees() <= 0 {
			continue
		}
		g, col := starGlyph(s.Mag)
		marks = append(marks, skyMark{az: r.Azimuth().Degrees(), el: r.Elevation().Degrees(), glyph: g, color: col})
	}

	if sun, err := c.Sun().Convert(coord.AZEL, opts...); err == nil && sun.Elevation().Degrees() > 0 {
		marks = append(marks, skyMark{
			az: sun.Azimuth().Degrees(), el: sun.Elevation().Degrees(),
			glyph: glyphSun, color: colorSun, label: "Sun",
		})
	}
	return marks
}

// skyCamera returns the view centre for a source at az, el. The camera
// elevation stays within the band that keeps the horizon in view.
func skyCamera(az, el float64) (float64, float64) {
	camEl := el
	if camEl < fovEl/2 {
		camEl = fovEl / 2
	}
	if camEl > 90-fovEl/2 {
		camEl = 90 - fovEl/2
	}
	return az, camEl
}

// projectToScreen converts az/el to canvas cells relative to the camera.
func projectToScreen(camAz, camEl, az, el float64, width, height int) (int, int, bool) {
	dAz := normalizeAngle(az - camAz)
	dEl := el - camEl

	if dAz < -fovAz/2 || dAz > fovAz/2 {
		return 0, 0, false
	}
	if dEl < -fovEl/2 || dEl > fovEl/2 {
		return 0, 0, false
	}

	// X: -fovAz/2..+fovAz/2 -> 0..width
	// Y: +fovEl/2..-fovEl/2 -> 0..horizon (higher el = higher on screen)
	horizonY := height - 2
	x := int((dAz + fovAz/2) / fovAz * float64(width))
	y := int((fovEl/2 - dEl) / fovEl * float64(horizonY))
	return x, y, true
}

// normalizeAngle wraps angle to -180..+180 range
func normalizeAngle(a float64) float64 {
	for a > 180 {
		a -= 360
	}
	for a < -180 {
		a += 360
	}
	return a
}

// renderSky draws marks on a horizon-up canvas centred on camAz, camEl. The
// last mark wins a contested cell; labels are written to the right of their
// glyph.
func (t Theme) renderSky(camAz, camEl float64, marks []skyMark, width, height int) string {
	if width < 8 || height < 4 {
		return ""
	}
	canvas := make([][]rune, height)
	colors := make([][]string, height)
	for y := range canvas {
		canvas[y] = []rune(strings.Repeat(" ", width))
		colors[y] = make([]string, width)
		for x := range colors[y] {
			colors[y][x] = colorSkyBg
		}
	}
	set := func(x, y int, r rune, col string) {
		if x >= 0 && x < width && y >= 0 && y < height {
			canvas[y][x] = r
			colors[y][x] = col
		}
	}

	horizonY := height - 2
	for x := 0; x < width; x++ {
		set(x, horizonY, '─', colorDim)
	}
	for _, c := range []struct {
		label string
		az    float64
	}{{"N", 0}, {"E", 90}, {"S", 180}, {"W", 270}} {
		if x, _, ok := projectToScreen(camAz, camEl, c.az, camEl, width, height); ok {
			set(x, horizonY, rune(c.label[0]), colorCardinal)
		}
	}

	for _, m := range marks {
		x, y, ok := projectToScreen(camAz, camEl, m.az, m.el, width, height)
		if !ok || y >= horizonY {
			continue
		}
		set(x, y, m.glyph, m.color)
		for i, r := range []rune(m.label) {
			set(x+2+i, y, r, m.color)
		}
	}

	set(width/2, height-1, '▲', colorStation)

	var b strings.Builder
	for y := 0; y < height; y++ {
		row := string(canvas[y])
		if t.plain {
			b.WriteString(strings.TrimRight(row, " "))
		} else {
			for x := 0; x < width; x++ {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(colors[y][x])).Render(string(canvas[y][x])))
			}
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
