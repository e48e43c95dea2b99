package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/okrylov/cardiosim/internal/cell"
)

const (
	traceWidth      = 64
	traceHeight     = 12
	historyCapacity = 600

	// threshold for the on-screen beat counter, same fraction of the
	// upstroke amplitude the apd command uses
	apdThreshold = 0.1
)

var (
	tracePanelStyle  = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model steps a single cell in simulated time and renders the recent
// membrane potential history at the frame rate.
type Model struct {
	cellModel  cell.Model
	integrator cell.Integrator
	stimulus   cell.Stimulus
	state      cell.State
	t, dt      float64
	modelName  string
	running    bool

	// simulated steps advanced per frame tick
	stepsPerTick int

	uHistory []float64
	vHistory []float64
	wHistory []float64

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
	initialState  cell.State

	// beat bookkeeping across frame ticks
	above      bool
	onset      float64
	beats      int
	lastAPD    float64
	stimActive bool

	showHelp bool
}

// NewModel initializes the live view around a cell, an integrator, and a
// pacing protocol. initState is copied; the caller keeps ownership.
func NewModel(m cell.Model, integ cell.Integrator, stimulus cell.Stimulus, initState []float64, dt float64, modelName string) Model {
	params := make(map[string]float64)
	if c, ok := m.(cell.Configurable); ok {
		for k, v := range c.GetParams() {
			params[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	initialParams := make(map[string]float64)
	for k, v := range params {
		keys = append(keys, k)
		if v == 0 {
			v = 1e-6
		}
		initialParams[k] = v
	}
	sort.Strings(keys)

	return Model{
		cellModel:     m,
		integrator:    integ,
		stimulus:      stimulus,
		state:         cell.State(initState).Clone(),
		t:             0,
		dt:            dt,
		modelName:     modelName,
		running:       true,
		stepsPerTick:  100,
		uHistory:      make([]float64, 0, historyCapacity),
		vHistory:      make([]float64, 0, historyCapacity),
		wHistory:      make([]float64, 0, historyCapacity),
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
		selected:      0,
		initialState:  cell.State(initState).Clone(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the simulation.
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
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "+", "=":
			if m.stepsPerTick < 3200 {
				m.stepsPerTick *= 2
			}
		case "-", "_":
			if m.stepsPerTick > 1 {
				m.stepsPerTick /= 2
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	c, ok := m.cellModel.(cell.Configurable)
	if !ok {
		return
	}
	if err := c.SetParam(key, newVal); err != nil {
		return
	}
	m.params[key] = newVal
}

// advance runs stepsPerTick integration steps and records one history
// sample per frame.
func (m *Model) advance() {
	m.stimActive = false
	for i := 0; i < m.stepsPerTick; i++ {
		istim := 0.0
		if m.stimulus != nil {
			istim = m.stimulus.Current(m.t)
		}
		if istim != 0 {
			m.stimActive = true
		}
		m.state = m.integrator.Step(m.cellModel, m.state, istim, m.t, m.dt)
		m.t += m.dt

		u := m.state[0]
		if !m.above && u >= apdThreshold {
			m.above = true
			m.onset = m.t
		} else if m.above && u < apdThreshold {
			m.above = false
			m.lastAPD = m.t - m.onset
			m.beats++
		}
	}

	m.uHistory = appendCapped(m.uHistory, m.state[0])
	if len(m.state) > 1 {
		m.vHistory = appendCapped(m.vHistory, m.state[1])
	}
	if len(m.state) > 2 {
		m.wHistory = appendCapped(m.wHistory, m.state[2])
	}
}

func appendCapped(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[1:]
	}
	return hist
}

// reset restores the initial state and parameters.
func (m *Model) reset() {
	m.t = 0
	m.state = m.initialState.Clone()
	m.uHistory = m.uHistory[:0]
	m.vHistory = m.vHistory[:0]
	m.wHistory = m.wHistory[:0]
	m.above = false
	m.onset = 0
	m.beats = 0
	m.lastAPD = 0
	m.stimActive = false
	c, ok := m.cellModel.(cell.Configurable)
	if !ok {
		return
	}
	for k, v := range m.initialParams {
		if err := c.SetParam(k, v); err != nil {
			continue
		}
		m.params[k] = v
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	var g strings.Builder
	if len(m.uHistory) > 1 {
		chart := asciigraph.Plot(m.uHistory,
			asciigraph.Height(traceHeight),
			asciigraph.Width(traceWidth),
			asciigraph.Caption("membrane potential u"))
		g.WriteString(graphStyle.Render(chart))
	} else {
		g.WriteString(graphStyle.Render("collecting samples..."))
	}
	if len(m.vHistory) > 1 {
		g.WriteString("\n" + labelStyle.Render("v") + Sparkline(m.vHistory, traceWidth/2))
	}
	if len(m.wHistory) > 1 {
		g.WriteString("\n" + labelStyle.Render("w") + Sparkline(m.wHistory, traceWidth/2))
	}
	traceView := tracePanelStyle.Render(g.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.modelName)) + "\n")
	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	if m.stimActive {
		status += "  " + StatusStim.Render("STIM")
	}
	s.WriteString(status + "\n\n")

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1f ms", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%d steps/frame", m.stepsPerTick)) + "\n")
	names := []string{"u", "v", "w"}
	for i, v := range m.state {
		name := fmt.Sprintf("x%d", i)
		if i < len(names) {
			name = names[i]
		}
		s.WriteString(labelStyle.Render(name) + valueStyle.Render(fmt.Sprintf("%+.4f", v)) + "\n")
	}
	s.WriteString(labelStyle.Render("Beats") + valueStyle.Render(fmt.Sprintf("%d", m.beats)) + "\n")
	if m.lastAPD > 0 {
		s.WriteString(labelStyle.Render("Last APD") + valueStyle.Render(fmt.Sprintf("%.1f ms", m.lastAPD)) + "\n")
	}

	s.WriteString("\n" + Separator(30) + "\n")
	s.WriteString("PARAMETERS\n")
	if len(m.params) > 0 {
		for i, k := range m.paramKeys {
			val, initial := m.params[k], m.initialParams[k]
			barWidth, ratio := 10, val/(2.0*initial)
			if ratio > 1 {
				ratio = 1
			} else if ratio < 0 {
				ratio = 0
			}
			filled := int(ratio * float64(barWidth))
			bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
			line := fmt.Sprintf("%-10s %s %.4g", k, bar, val)
			if i == m.selected {
				s.WriteString(activeParamStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(line) + "\n")
			}
		}
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}
	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset Q:Quit\nTab:Select ↑↓:Tune +/-:Speed ?:Help"))
	statsView := statsStyle.Render(s.String())

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, traceView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset simulation         ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  +        - More steps per frame     ║
║  -        - Fewer steps per frame    ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
