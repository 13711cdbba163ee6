package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fractalview/internal/config"
	"github.com/san-kum/fractalview/internal/control"
)

const (
	stateMenu = iota
	stateConfig
	stateView
)

// Launcher builds a controller for cfg that displays on sink.
type Launcher func(cfg *config.Config, sink control.Sink) (*control.Controller, error)

type menuEntry struct {
	variant, preset string
}

func (e menuEntry) String() string { return e.variant + "/" + e.preset }

var paramNames = []string{"max_iterations", "julia_real", "julia_imag", "min_span"}

// App is the full TUI: pick a preset, optionally tune it, then explore.
type App struct {
	state, cursor int
	entries       []menuEntry
	selected      *config.Config
	launched      *config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	launch        Launcher
	view          Model
	theme         Theme
	width, height int
	recording     bool
	err           error
}

func NewApp(launch Launcher, theme Theme, recording bool) App {
	var entries []menuEntry
	for _, variant := range []string{"mandelbrot", "julia"} {
		for _, preset := range config.ListPresets(variant) {
			entries = append(entries, menuEntry{variant: variant, preset: preset})
		}
	}
	return App{
		state:     stateMenu,
		entries:   entries,
		launch:    launch,
		theme:     theme,
		width:     80,
		height:    24,
		recording: recording,
	}
}

func (a App) Init() tea.Cmd { return nil }

// Session returns the config the last explorer started from and its
// controller. Both are nil until a preset has been launched.
func (a App) Session() (*config.Config, *control.Controller) {
	return a.launched, a.view.Controller()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = size.Width, size.Height
	}

	switch a.state {
	case stateMenu:
		if key, ok := msg.(tea.KeyMsg); ok {
			return a.menuKey(key)
		}
	case stateConfig:
		if key, ok := msg.(tea.KeyMsg); ok {
			return a.configKey(key)
		}
	case stateView:
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			a.state = stateMenu
			return a, nil
		}
		next, cmd := a.view.Update(msg)
		a.view = next.(Model)
		return a, cmd
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.entries)-1 {
			a.cursor++
		}
	case "enter", " ":
		e := a.entries[a.cursor]
		cfg, err := config.GetPreset(e.variant, e.preset)
		if err != nil {
			a.err = err
			return a, nil
		}
		a.selected = cfg
		a.state, a.paramCursor, a.err = stateConfig, 0, nil
	}
	return a, nil
}

func (a App) configKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if a.editing {
		switch msg.String() {
		case "enter":
			if val, err := strconv.ParseFloat(a.editBuf, 64); err == nil {
				a.setParam(paramNames[a.paramCursor], val)
			}
			a.editing, a.editBuf = false, ""
		case "esc":
			a.editing, a.editBuf = false, ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					a.editBuf += string(c)
				}
			}
		}
		return a, nil
	}

	switch msg.String() {
	case "q", "esc":
		a.state = stateMenu
	case "up", "k":
		if a.paramCursor > 0 {
			a.paramCursor--
		}
	case "down", "j":
		if a.paramCursor < len(paramNames)-1 {
			a.paramCursor++
		}
	case "enter", " ":
		a.editing, a.editBuf = true, a.param(paramNames[a.paramCursor])
	case "s":
		return a.start()
	}
	return a, nil
}

func (a App) param(name string) string {
	cfg := a.selected
	switch name {
	case "max_iterations":
		return strconv.Itoa(cfg.MaxIterations)
	case "julia_real":
		return strconv.FormatFloat(cfg.Julia.Real, 'g', -1, 64)
	case "julia_imag":
		return strconv.FormatFloat(cfg.Julia.Imag, 'g', -1, 64)
	case "min_span":
		return strconv.FormatFloat(cfg.MinSpan, 'g', -1, 64)
	}
	return ""
}

func (a *App) setParam(name string, val float64) {
	switch name {
	case "max_iterations":
		a.selected.MaxIterations = int(val)
	case "julia_real":
		a.selected.Julia.Real = val
	case "julia_imag":
		a.selected.Julia.Imag = val
	case "min_span":
		a.selected.MinSpan = val
	}
}

func (a App) start() (App, tea.Cmd) {
	if err := a.selected.Validate(); err != nil {
		a.err = err
		return a, nil
	}
	screen := NewScreen(a.width, a.height)
	ctrl, err := a.launch(a.selected, screen)
	if err != nil {
		a.err = err
		return a, nil
	}
	a.launched = a.selected.Clone()
	a.view = NewModel(ctrl, screen, a.theme).Recording(a.recording)
	a.view.inMenu = true
	a.view = a.view.resize(a.width, a.height)
	a.state, a.err = stateView, nil
	return a, nil
}

func (a App) View() string {
	switch a.state {
	case stateMenu:
		return a.viewMenu()
	case stateConfig:
		return a.viewConfig()
	case stateView:
		return a.view.View()
	}
	return ""
}

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKeyFg  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	menuErr    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

func (a App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("FRACTALVIEW") + "\n    " + menuSub.Render("escape-time explorer") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, e := range a.entries {
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuCursor.Render("▸"), menuActive.Render(e.String())))
		} else {
			b.WriteString(fmt.Sprintf("      %s\n", menuIdle.Render(e.String())))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + menuErr.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKeyFg.Render("j/k") + menuSub.Render(" navigate  ") + menuKeyFg.Render("enter") + menuSub.Render(" select  ") + menuKeyFg.Render("q") + menuSub.Render(" quit") + "\n")
	return b.String()
}

func (a App) viewConfig() string {
	var b strings.Builder
	e := a.entries[a.cursor]
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(e.String())) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range paramNames {
		val := a.param(name)
		if a.editing && i == a.paramCursor {
			val = a.editBuf + "_"
		}
		line := fmt.Sprintf("%-16s %12s", name, val)
		if i == a.paramCursor {
			b.WriteString("    " + menuCursor.Render("▸ ") + menuActive.Render(line) + "\n")
		} else {
			b.WriteString("      " + menuIdle.Render(line) + "\n")
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + menuErr.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKeyFg.Render("enter") + menuSub.Render(" edit  ") + menuKeyFg.Render("s") + menuSub.Render(" start  ") + menuKeyFg.Render("esc") + menuSub.Render(" back") + "\n")
	return b.String()
}
