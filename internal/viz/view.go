package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fractalview/internal/analysis"
	"github.com/san-kum/fractalview/internal/control"
	"github.com/san-kum/fractalview/internal/escape"
	"github.com/san-kum/fractalview/internal/metrics"
)

// panFraction is how far an arrow key moves the view, as a share of the span.
const panFraction = 0.125

// Model is the explorer view. Every applied input renders synchronously
// before the next message is handled.
type Model struct {
	ctrl      *control.Controller
	screen    *Screen
	theme     Theme
	width     int
	height    int
	showHelp  bool
	inMenu    bool
	recording bool
	lastErr   error
}

func NewModel(ctrl *control.Controller, screen *Screen, theme Theme) Model {
	return Model{
		ctrl:   ctrl,
		screen: screen,
		theme:  theme,
		width:  80,
		height: 24,
	}
}

// Recording marks the session as being recorded in the status line.
func (m Model) Recording(on bool) Model {
	m.recording = on
	return m
}

func (m Model) Controller() *control.Controller { return m.ctrl }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		if ev, ok := m.mouseEvent(msg); ok {
			m = m.dispatch(ev)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
		case "c":
			m.theme = nextTheme(m.theme)
		case "r":
			m = m.dispatch(control.ResetView{})
		case "t":
			_, m.lastErr = m.ctrl.Toggle()
		case "+", "=":
			m = m.dispatch(control.ScrollWheel{Delta: 1})
		case "-", "_":
			m = m.dispatch(control.ScrollWheel{Delta: -1})
		case "left", "h":
			m = m.pan(-1, 0)
		case "right", "l":
			m = m.pan(1, 0)
		case "up", "k":
			m = m.pan(0, 1)
		case "down", "j":
			m = m.pan(0, -1)
		}
	}
	return m, nil
}

func (m Model) resize(w, h int) Model {
	m.width, m.height = w, h
	cols := w - panelWidth - 2*canvasPadX - 4
	rows := h - 2*canvasPadY
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	m.screen.Resize(cols, rows)
	if m.screen.Frame() == nil {
		_, m.lastErr = m.ctrl.Refresh()
	}
	return m
}

// mouseEvent converts a terminal mouse press into a controller event. Clicks
// outside the canvas are ignored.
func (m Model) mouseEvent(msg tea.MouseMsg) (control.Event, bool) {
	if msg.Action != tea.MouseActionPress {
		return nil, false
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return control.ScrollWheel{Delta: 1}, true
	case tea.MouseButtonWheelDown:
		return control.ScrollWheel{Delta: -1}, true
	case tea.MouseButtonLeft:
		x, y, ok := m.screen.CellToPixel(msg.X-canvasPadX, msg.Y-canvasPadY)
		if !ok {
			return nil, false
		}
		return control.PointerPressed{X: x, Y: y}, true
	}
	return nil, false
}

// pan recenters on a point offset from the center. dy is in plane
// direction: positive moves toward larger imaginary parts.
func (m Model) pan(dx, dy int) Model {
	vp := m.ctrl.Viewport()
	w, h := float64(vp.Width), float64(vp.Height)
	x := w/2 + float64(dx)*panFraction*w
	y := h/2 + float64(dy)*panFraction*h
	return m.dispatch(control.PointerPressed{X: x, Y: y})
}

func (m Model) dispatch(ev control.Event) Model {
	_, m.lastErr = m.ctrl.Dispatch(ev)
	return m
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.screen.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(m.panel()))
	if m.showHelp {
		return m.helpOverlay() + "\n\n" + mainView
	}
	return mainView
}

func (m Model) panel() string {
	t := m.theme
	vp := m.ctrl.Viewport()
	pal := m.ctrl.Palette()
	c := vp.Center()

	var s strings.Builder
	title := GradientText(strings.ToUpper(m.ctrl.Variant().String()), pal.Colors[0], pal.Colors[len(pal.Colors)-1])
	s.WriteString(t.header().Render(title) + "\n")

	switch {
	case m.lastErr != nil:
		s.WriteString(t.errorStyle().Render(m.lastErr.Error()) + "\n")
	case vp.Degenerate():
		s.WriteString(t.warning().Render("SPAN COLLAPSED") + "\n")
	case m.recording:
		s.WriteString(StatusRecording.Render("● REC") + "\n")
	default:
		s.WriteString(t.value().Render("EXPLORING") + "\n")
	}
	s.WriteString("\n")

	row := func(label, value string) {
		s.WriteString(t.label().Render(label) + t.value().Render(value) + "\n")
	}
	row("Center", fmt.Sprintf("%.6g%+.6gi", real(c), imag(c)))
	row("Span", fmt.Sprintf("%.4g x %.4g", vp.RealSpan, vp.ImagSpan))
	row("Zoom", fmt.Sprintf("%.4gx", m.ctrl.Magnification()))
	row("Frame", fmt.Sprintf("%dx%d", vp.Width, vp.Height))
	row("Iterations", fmt.Sprintf("%d", m.ctrl.Params().MaxIterations))
	if m.ctrl.Variant() == escape.Julia {
		k := m.ctrl.Params().C
		row("c", fmt.Sprintf("%.5g%+.5gi", real(k), imag(k)))
	}
	row("Events", fmt.Sprintf("%d", len(m.ctrl.History())))

	var history []float64
	for _, metric := range m.ctrl.Metrics() {
		switch mt := metric.(type) {
		case *metrics.RenderTime:
			history = mt.History()
			row("Render", fmt.Sprintf("%.2f ms", mt.Last().Seconds()*1000))
		case *metrics.Throughput:
			row("Pixels/s", fmt.Sprintf("%.3g", mt.Value()))
		}
	}

	if frame := m.ctrl.Frame(); frame != nil {
		stats := analysis.Summarize(frame)
		s.WriteString("\n" + t.label().Render("Inside") + ProgressBar(stats.InsideRatio, 16, t) +
			t.value().Render(fmt.Sprintf(" %.1f%%", 100*stats.InsideRatio)) + "\n")
		s.WriteString(t.label().Render("Bands") + BandStrip(pal, stats.Bands) + "\n")
	}

	if len(history) > 1 {
		chart := asciigraph.Plot(history, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("render ms"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render(Separator(30) + "\nClick:Center Wheel:Zoom Q:Quit\nT:Julia/Mandel R:Reset ?:Help"))
	return s.String()
}

var helpLines = []string{
	"  Click    - Recenter on point        ",
	"  Wheel    - Zoom in / out            ",
	"  Arrows   - Pan                      ",
	"  + / -    - Zoom in / out            ",
	"  T        - Toggle Mandelbrot/Julia  ",
	"  R        - Reset view               ",
	"  C        - Cycle themes             ",
	"  Q        - Quit                     ",
	"  ?        - Toggle this help         ",
}

const menuHelpLine = "  Esc      - Preset menu              "

// helpOverlay lists the key bindings. Esc only applies when the explorer was
// opened from the preset menu.
func (m Model) helpOverlay() string {
	var b strings.Builder
	b.WriteString("\n╔══════════════════════════════════════╗\n")
	b.WriteString("║           KEYBOARD & MOUSE           ║\n")
	b.WriteString("╠══════════════════════════════════════╣\n")
	for i, line := range helpLines {
		if m.inMenu && i == len(helpLines)-2 {
			b.WriteString("║" + menuHelpLine + "║\n")
		}
		b.WriteString("║" + line + "║\n")
	}
	b.WriteString("╚══════════════════════════════════════╝")
	return b.String()
}
