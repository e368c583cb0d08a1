package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astro/internal/angle"
	"github.com/litescript/ls-astro/internal/coord"
	"github.com/litescript/ls-astro/internal/logging"
	"github.com/litescript/ls-astro/internal/resolver"
	"github.com/litescript/ls-astro/internal/site"
	"github.com/litescript/ls-astro/internal/source"
)

// DefaultRefresh is the track view update interval.
const DefaultRefresh = time.Second

// TickMsg triggers a recompute of the tracked position.
type TickMsg time.Time

// SiteReloadMsg reports a reload of the site catalogue file.
type SiteReloadMsg site.Reload

// TrackModel is the Bubble Tea model for following a source in real time.
type TrackModel struct {
	theme   Theme
	src     *source.Source
	refresh time.Duration
	opts    []coord.Option
	frames  []coord.Mode
	logger  *logging.Logger
	stars   []resolver.Entry
	showSky bool

	rows     []FrameRow
	azDeg    float64
	utc      string
	lmst     angle.Angle
	elDeg    float64
	elErr    error
	sunSep   float64
	sunErr   error
	untilSet time.Duration
	untilErr error
	marks    []skyMark
	status   string
	statusOK bool
	width    int
}

// TrackOption configures a TrackModel.
type TrackOption func(*TrackModel)

// WithRefresh sets the update interval.
func WithRefresh(d time.Duration) TrackOption {
	return func(m *TrackModel) {
		if d > 0 {
			m.refresh = d
		}
	}
}

// WithConvertOptions passes extra options to every conversion.
func WithConvertOptions(opts ...coord.Option) TrackOption {
	return func(m *TrackModel) { m.opts = append(m.opts, opts...) }
}

// WithFrames limits the frame table to frames.
func WithFrames(frames ...coord.Mode) TrackOption {
	return func(m *TrackModel) {
		if len(frames) > 0 {
			m.frames = frames
		}
	}
}

// WithLogger sets the logger for conversion diagnostics.
func WithLogger(l *logging.Logger) TrackOption {
	return func(m *TrackModel) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSky shows a horizon view plotting stars, the Sun and the source.
func WithSky(stars []resolver.Entry) TrackOption {
	return func(m *TrackModel) {
		m.stars = stars
		m.showSky = true
	}
}

// NewTrackModel creates a track view for src and computes its first frame.
func NewTrackModel(src *source.Source, theme Theme, opts ...TrackOption) TrackModel {
	m := TrackModel{
		theme:   theme,
		src:     src,
		refresh: DefaultRefresh,
		frames:  AllFrames,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.recompute()
	return m
}

// Init implements tea.Model.
func (m TrackModel) Init() tea.Cmd {
	return tickCmd(m.refresh)
}

// Update implements tea.Model.
func (m TrackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "l":
			m.nextLocation()
			m.recompute()
		case "r":
			m.recompute()
		case "s":
			m.showSky = !m.showSky
			m.recompute()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case TickMsg:
		m.src.TimeIsNow()
		m.recompute()
		return m, tickCmd(m.refresh)

	case SiteReloadMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("reload %s: %v", msg.File, msg.Err)
			m.statusOK = false
		} else {
			m.status = fmt.Sprintf("reloaded %s: %d new sites", msg.File, msg.Added)
			m.statusOK = true
		}
		m.recompute()
		return m, nil
	}
	return m, nil
}

// nextLocation moves the source to the next registered location.
func (m *TrackModel) nextLocation() {
	reg := m.src.Coordinate().Time().Registry()
	names := reg.Names()
	if len(names) == 0 {
		return
	}
	current := m.src.Coordinate().Location().Name
	next := names[0]
	for i, n := range names {
		if n == current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if _, err := m.src.SetLocation(next); err != nil {
		m.status = err.Error()
		m.statusOK = false
		return
	}
	m.status = "location " + next
	m.statusOK = true
}

func (m *TrackModel) recompute() {
	c := m.src.Coordinate()
	m.rows = Frames(c, m.frames, m.opts...)
	m.utc = c.Time().Format("%y-%m-%d %H:%M:%S")
	m.lmst = c.Time().LMST()

	m.elErr = nil
	azel, err := c.Convert(coord.AZEL, m.opts...)
	if err != nil {
		m.elErr = err
		m.logger.Diagnostic("azel", err)
	} else {
		m.azDeg = azel.Azimuth().Degrees()
		m.elDeg = azel.Elevation().Degrees()
	}

	m.marks = nil
	if m.showSky && m.elErr == nil {
		m.marks = skyMarks(c, m.stars, m.opts...)
		m.marks = append(m.marks, skyMark{
			az: m.azDeg, el: m.elDeg,
			glyph: glyphSource, color: colorSource, label: m.src.Name(),
		})
	}

	m.sunErr = nil
	sep, err := c.SunDistance()
	if err != nil {
		m.sunErr = err
		m.logger.Diagnostic("sunDistance", err)
	} else {
		m.sunSep = sep.Degrees()
	}

	m.untilSet, m.untilErr = m.src.TimeUntilElevationDuration(nil)
}

// View implements tea.Model.
func (m TrackModel) View() string {
	t := m.theme
	loc := m.src.Coordinate().Location()

	var b strings.Builder
	b.WriteString(t.Title("ls-astro track: " + m.src.Name()))
	b.WriteString("\n")
	b.WriteString(t.render(t.dim, fmt.Sprintf("%s UTC  LMST %s  @ %s (%s)",
		m.utc, m.lmst.Format(angle.HoursFormat()), loc.Name, loc.Mount)))
	b.WriteString("\n\n")
	b.WriteString(t.RenderFrames(m.rows))
	b.WriteString("\n")

	b.WriteString(t.render(t.label, "Elevation  "))
	if m.elErr != nil {
		b.WriteString(t.render(t.err, m.elErr.Error()))
	} else {
		b.WriteString(t.RenderElevation(m.elDeg))
	}
	b.WriteString("\n")

	b.WriteString(t.render(t.label, "Sun        "))
	if m.sunErr != nil {
		b.WriteString(t.render(t.err, m.sunErr.Error()))
	} else {
		b.WriteString(t.RenderSunSeparation(m.sunSep))
	}
	b.WriteString("\n")

	b.WriteString(t.render(t.label, "Limit      "))
	b.WriteString(m.limitText())
	b.WriteString("\n")

	if m.showSky && m.elErr == nil {
		b.WriteString("\n")
		camAz, camEl := skyCamera(m.azDeg, m.elDeg)
		width := defaultSkyWidth
		if m.width > 0 {
			width = m.width
		}
		b.WriteString(t.renderSky(camAz, camEl, m.marks, width, defaultSkyHeight))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusOK {
			b.WriteString(t.render(t.accent, m.status))
		} else {
			b.WriteString(t.render(t.err, m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// limitText describes the next crossing of the location's elevation limit.
func (m TrackModel) limitText() string {
	if m.untilErr != nil {
		ha, err := m.src.HARiseSet(nil)
		switch {
		case err == nil && coord.NeverSets(ha):
			return m.theme.color(colorVisHigh, "never sets")
		case err == nil && coord.NeverRises(ha):
			return m.theme.color(colorVisNone, "never rises")
		}
		return m.theme.render(m.theme.err, m.untilErr.Error())
	}
	lst := m.lmst
	up, err := m.src.IsUp(lst)
	if err != nil {
		return m.theme.render(m.theme.err, err.Error())
	}
	if up {
		return "sets in " + angle.DurationString(m.untilSet)
	}
	return "rises in " + angle.DurationString(m.untilSet)
}

func (m TrackModel) renderFooter() string {
	help := "q: quit  l: next location  s: sky  r: refresh"
	if m.theme.plain {
		return help
	}
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorDim)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(lipgloss.Color(colorAccentDeep))
	if m.width > 0 {
		style = style.Width(m.width)
	}
	return style.Render(help)
}

// tickCmd returns a command that sends a tick after d.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SendSiteReload wraps a site reload as a message for Program.Send.
func SendSiteReload(r site.Reload) tea.Msg {
	return SiteReloadMsg(r)
}
