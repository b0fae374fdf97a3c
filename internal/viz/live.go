package viz

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/systems"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	trailLength     = 120
	frameInterval   = time.Second / time.Duration(physics.ReferenceFrameRate)
)

type TickMsg time.Time

// Model drives one simulation from a 60 Hz tick and renders it.
type Model struct {
	sim           *sim.Simulation
	scenario      *systems.Scenario
	name          string
	canvas        *Canvas
	view          Viewport
	trails        [][]dynamo.Vec2
	running       bool
	energyHistory []float64
	warning       string
	showHelp      bool
	theme         Theme
	styles        styles
}

// NewModel plays a copy of sc. The scenario itself is kept for resets.
func NewModel(sc *systems.Scenario, name string) (Model, error) {
	s, err := sim.New(sc)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		sim:           s,
		scenario:      sc.Clone(),
		name:          name,
		canvas:        NewCanvas(width, height),
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		theme:         ThemeDeepSpace,
		styles:        newStyles(ThemeDeepSpace),
	}
	m.fit()
	return m, nil
}

func (m *Model) fit() {
	bodies := m.sim.Bodies()
	positions := make([]dynamo.Vec2, len(bodies))
	for i, b := range bodies {
		positions[i] = b.Position
	}
	m.view = FitViewport(positions)
	m.trails = make([][]dynamo.Vec2, len(bodies))
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.changeSpeed(2)
		case "-", "_":
			m.changeSpeed(0.5)
		case "z":
			m.view = m.view.Zoom(0.8)
		case "x":
			m.view = m.view.Zoom(1.25)
		case "f":
			m.view = m.refit()
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// step advances one frame. A numeric overflow pauses playback so the user
// can reset or slow down.
func (m *Model) step() {
	_, err := m.sim.Tick()
	if err != nil {
		m.running = false
		var stepErr *dynamo.StepError
		if errors.As(err, &stepErr) {
			m.warning = fmt.Sprintf("bodies %v left the representable range; r resets, - slows", stepErr.Bodies)
		} else {
			m.warning = err.Error()
		}
	}

	for i, b := range m.sim.Bodies() {
		trail := append(m.trails[i], b.Position)
		if len(trail) > trailLength {
			trail = trail[1:]
		}
		m.trails[i] = trail
	}

	m.energyHistory = append(m.energyHistory, m.sim.Energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) changeSpeed(factor float64) {
	if err := m.sim.SetSpeed(m.sim.Speed() * factor); err != nil {
		m.warning = err.Error()
	}
}

// reset reloads the scenario, keeping the current speed.
func (m *Model) reset() {
	speed := m.sim.Speed()
	if err := m.sim.Reset(m.scenario); err != nil {
		m.warning = err.Error()
		return
	}
	if err := m.sim.SetSpeed(speed); err != nil {
		m.warning = err.Error()
	}
	m.energyHistory = m.energyHistory[:0]
	m.warning = ""
	m.running = true
	m.fit()
}

func (m Model) refit() Viewport {
	bodies := m.sim.Bodies()
	positions := make([]dynamo.Vec2, len(bodies))
	for i, b := range bodies {
		positions[i] = b.Position
	}
	return FitViewport(positions)
}

// Flagged lists the indices of bodies currently inside a Roche limit.
func (m Model) Flagged() []int {
	var flagged []int
	for i, b := range m.sim.Bodies() {
		if b.Breakup {
			flagged = append(flagged, i)
		}
	}
	sort.Ints(flagged)
	return flagged
}

// WithTheme returns m drawn in t.
func (m Model) WithTheme(t Theme) Model {
	m.theme = t
	m.styles = newStyles(t)
	return m
}

func (m Model) Running() bool   { return m.running }
func (m Model) Warning() string { return m.warning }
func (m Model) Speed() float64  { return m.sim.Speed() }
func (m Model) Steps() int      { return m.sim.Steps() }

func (m *Model) draw() {
	m.canvas.Clear()

	for _, trail := range m.trails {
		for _, p := range trail {
			if x, y, ok := m.view.Project(m.canvas, p); ok {
				m.canvas.Set(x, y)
			}
		}
	}

	scale := m.view.DotsPerMetre(m.canvas)
	for _, b := range m.sim.Bodies() {
		x, y, ok := m.view.Project(m.canvas, b.Position)
		if !ok {
			continue
		}
		r := int(b.Radius * scale)
		if r < 1 {
			r = 1
		}
		if r > 4 {
			r = 4
		}
		m.canvas.DrawDisc(x, y, r)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	st := m.styles
	canvasView := st.canvas.Render(st.bodies.Render(m.canvas.String()))

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.name)) + "\n")

	status := st.running.Render("RUNNING")
	if !m.running {
		status = st.paused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy (J)"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Speed", m.sim.SpeedString())
	row("Elapsed", formatDuration(m.sim.Elapsed()))
	row("Steps", fmt.Sprintf("%d", m.sim.Steps()))
	row("Bodies", fmt.Sprintf("%d", m.sim.Len()))
	row("Energy", fmt.Sprintf("%.4g J", m.sim.Energy()))

	if flagged := m.Flagged(); len(flagged) > 0 {
		s.WriteString(st.label.Render("Roche") + st.roche.Render(formatIndices(flagged, 8)) + "\n")
	}
	if m.warning != "" {
		s.WriteString("\n" + st.warning.Render(m.warning) + "\n")
	}

	s.WriteString(st.help.Render(Separator(20, st.help) + "\nSP:Pause R:Reset Q:Quit\n+/-:Speed Z/X:Zoom F:Fit\nT:Theme ?:Help"))
	statsView := st.stats.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  +        - Double the speed         ║
║  -        - Halve the speed          ║
║  R        - Reset scenario           ║
║  Z / X    - Zoom in / out            ║
║  F        - Fit bodies to view       ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n  Themes: " + strings.Join(ThemeNames(), ", ") + " (" + m.theme.Name + ")\n\n" + mainView
	}
	return mainView
}

// formatDuration renders simulated seconds in the largest fitting unit.
func formatDuration(seconds float64) string {
	switch {
	case seconds < physics.Minute:
		return fmt.Sprintf("%.1f s", seconds)
	case seconds < physics.Hour:
		return fmt.Sprintf("%.1f min", seconds/physics.Minute)
	case seconds < physics.Day:
		return fmt.Sprintf("%.1f h", seconds/physics.Hour)
	case seconds < physics.Year:
		return fmt.Sprintf("%.1f d", seconds/physics.Day)
	default:
		return fmt.Sprintf("%.2f yr", seconds/physics.Year)
	}
}

func formatIndices(idx []int, max int) string {
	parts := make([]string, 0, max+1)
	for i, v := range idx {
		if i == max {
			parts = append(parts, fmt.Sprintf("+%d", len(idx)-max))
			break
		}
		parts = append(parts, fmt.Sprintf("%d", v))
	}
	return strings.Join(parts, " ")
}
