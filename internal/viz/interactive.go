package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/systems"
)

var scenarioInfo = map[string]string{
	systems.KindOrbital:   "satellites on circular orbits",
	systems.KindCloud:     "random satellites, random primary",
	systems.KindEarthMoon: "the Earth and the Moon",
}

const (
	stateMenu = iota
	statePresets
	stateSim
)

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// app is the scenario picker shown when gravsim runs without a command.
type app struct {
	state     int
	cursor    int
	scenarios []string
	selected  string
	presets   []string
	seed      int64
	err       error
	liveModel Model
}

func NewInteractiveApp(seed int64) *app {
	return &app{
		state:     stateMenu,
		scenarios: systems.Kinds(),
		seed:      seed,
	}
}

func (m app) Init() tea.Cmd { return nil }

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m app) handleKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case statePresets:
		return m.presetKey(msg)
	case stateSim:
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m app) menuKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenarios)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.scenarios[m.cursor]
		m.presets = config.ListPresets(m.selected)
		m.state, m.cursor, m.err = statePresets, 0, nil
	}
	return m, nil
}

func (m app) presetKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state, m.cursor = stateMenu, 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.presets) == 0 {
			return m, nil
		}
		cmd, err := m.start(m.presets[m.cursor])
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, cmd
	}
	return m, nil
}

func (m *app) start(preset string) (tea.Cmd, error) {
	cfg := config.GetPreset(m.selected, preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s", preset)
	}
	live, err := LiveFromConfig(cfg, m.seed)
	if err != nil {
		return nil, err
	}
	m.liveModel = live
	m.state = stateSim
	return m.liveModel.Init(), nil
}

// LiveFromConfig builds the scenario a config describes and wraps it in a
// live model.
func LiveFromConfig(cfg *config.Config, seed int64) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	sc, err := systems.Build(cfg.Scenario, cfg.Params(), rand.New(rand.NewSource(seed)))
	if err != nil {
		return Model{}, err
	}
	if cfg.Speed > 0 {
		sc.Speed = cfg.Speed
	}
	return NewModel(sc, cfg.Scenario)
}

func (m app) View() string {
	switch m.state {
	case stateMenu:
		return m.viewList("GRAVSIM", "n-body gravity", m.scenarios, scenarioInfo)
	case statePresets:
		return m.viewList(strings.ToUpper(m.selected), scenarioInfo[m.selected], m.presets, nil)
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func (m app) viewList(title, subtitle string, items []string, info map[string]string) string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(title) + "\n    " + menuSub.Render(subtitle) + "\n    " + Separator(25, menuSub) + "\n\n")
	for i, name := range items {
		desc := info[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-12s", name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-12s", name)), menuIdle.Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuIdle.Render(" navigate  ") + menuKey.Render("enter") + menuIdle.Render(" select  ") + menuKey.Render("q") + menuIdle.Render(" back/quit") + "\n")
	return b.String()
}

// RunInteractive shows the scenario picker.
func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(time.Now().UnixNano()), tea.WithAltScreen()).Run()
	return err
}

// RunLive plays one model full screen.
func RunLive(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
