// Package ui renders ls-astro output with Lip Gloss and runs the live track
// view with Bubble Tea.
package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette
const (
	colorAccent     = "#9D4EDD"
	colorAccentDeep = "#7B2CBF"
	colorDim        = "60"
	colorLabel      = "135"
	colorValue      = "250"
	colorError      = "#E84A27"

	colorVisHigh   = "#7CFC00" // Lawn green - high elevation
	colorVisMedium = "#FFD700" // Gold - medium elevation
	colorVisLow    = "#FF6347" // Tomato - low elevation
	colorVisNone   = "#444444" // Dark gray - below horizon

	colorSunSafe    = "#7CFC00" // Green - safe (>=20°)
	colorSunCaution = "#FFD700" // Gold - caution (10-20°)
	colorSunWarning = "#FF4500" // Orange-red - warning (<10°)
)

// Theme renders text either styled for a terminal or plain for pipes.
type Theme struct {
	plain bool

	accent lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	dim    lipgloss.Style
	err    lipgloss.Style
}

// NewTheme returns a theme; styled is false when output is not a terminal.
func NewTheme(styled bool) Theme {
	return Theme{
		plain:  !styled,
		accent: lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent)).Bold(true),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorLabel)).Bold(true),
		value:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorValue)),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim)),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorError)),
	}
}

// Plain reports whether the theme emits unstyled text.
func (t Theme) Plain() bool { return t.plain }

func (t Theme) render(s lipgloss.Style, text string) string {
	if t.plain {
		return text
	}
	return s.Render(text)
}

func (t Theme) color(hex, text string) string {
	if t.plain {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(text)
}

// Title renders text with a horizontal purple to pink gradient.
func (t Theme) Title(text string) string {
	if t.plain {
		return text
	}
	runes := []rune(text)
	var b strings.Builder
	for col, r := range runes {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gradientColor(col, len(runes))))
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// Error renders an error line.
func (t Theme) Error(err error) string {
	return t.render(t.err, "error: "+err.Error())
}

// gradientColor returns a hex color for a position in the title gradient:
// blue -> purple -> magenta -> pink.
func gradientColor(col, width int) string {
	x := 0.0
	if width > 1 {
		x = float64(col) / float64(width-1)
	}

	var r, g, b float64
	switch {
	case x < 0.33:
		// Blue to Purple
		f := x / 0.33
		r, g, b = 59+f*(139-59), 130+f*(92-130), 246
	case x < 0.66:
		// Purple to Magenta
		f := (x - 0.33) / 0.33
		r, g, b = 139+f*(217-139), 92+f*(70-92), 246+f*(239-246)
	default:
		// Magenta to Pink
		f := (x - 0.66) / 0.34
		r, g, b = 217+f*(236-217), 70+f*(72-70), 239+f*(153-239)
	}
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return int(math.Round(v))
}

// ElevationTier categorizes elevation for display.
type ElevationTier int

const (
	ElevationNone   ElevationTier = iota // Below horizon
	ElevationLow                         // 0-15 degrees
	ElevationMedium                      // 15-45 degrees
	ElevationHigh                        // 45+ degrees
)

// GetElevationTier returns the tier for a given elevation.
func GetElevationTier(elDeg float64) ElevationTier {
	switch {
	case elDeg <= 0:
		return ElevationNone
	case elDeg < 15:
		return ElevationLow
	case elDeg < 45:
		return ElevationMedium
	default:
		return ElevationHigh
	}
}

func (e ElevationTier) color() string {
	switch e {
	case ElevationHigh:
		return colorVisHigh
	case ElevationMedium:
		return colorVisMedium
	case ElevationLow:
		return colorVisLow
	default:
		return colorVisNone
	}
}

// bar is a 4-character visibility bar.
func (e ElevationTier) bar() string {
	switch e {
	case ElevationHigh:
		return "████"
	case ElevationMedium:
		return "██░░"
	case ElevationLow:
		return "█░░░"
	default:
		return "░░░░"
	}
}

// SunSeparationTier categorizes sun separation for display.
type SunSeparationTier int

const (
	SunSepSafe    SunSeparationTier = iota // >= 20 degrees
	SunSepCaution                          // 10-20 degrees
	SunSepWarning                          // < 10 degrees
)

// GetSunSeparationTier returns the tier for a given separation angle.
func GetSunSeparationTier(sepDeg float64) SunSeparationTier {
	switch {
	case sepDeg < 10:
		return SunSepWarning
	case sepDeg < 20:
		return SunSepCaution
	default:
		return SunSepSafe
	}
}

func (s SunSeparationTier) color() string {
	switch s {
	case SunSepWarning:
		return colorSunWarning
	case SunSepCaution:
		return colorSunCaution
	default:
		return colorSunSafe
	}
}
