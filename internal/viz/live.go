package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/galaxysim/internal/metrics"
	"github.com/san-kum/galaxysim/internal/sim"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	statsWidth      = 44
	historyCapacity = 120
)

type TickMsg time.Time

type LiveOptions struct {
	Title     string
	FPS       int
	TuneStep  float64
	SpeedStep float64
}

// Model drives the simulator from Bubble Tea ticks. Every simulator call
// happens inside Update, so G and the speed cap only change between frames.
type Model struct {
	sim    *sim.Simulator
	opts   LiveOptions
	canvas *Canvas

	last          sim.FrameStats
	capped        gauge
	msHistory     []float64
	energyHistory []float64
	showHelp      bool
	quitting      bool
}

func NewModel(s *sim.Simulator, opts LiveOptions) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "Galaxy Simulation"
	}
	return Model{
		sim:           s,
		opts:          opts,
		canvas:        NewCanvas(defaultWidth-statsWidth, defaultHeight-4),
		capped:        newGauge(opts.FPS),
		msHistory:     make([]float64, 0, historyCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.sim.Flags.TogglePause()
		case "d":
			m.sim.Flags.ToggleDraw()
		case "q":
			m.sim.AdjustG(m.opts.TuneStep)
		case "w":
			m.sim.AdjustG(-m.opts.TuneStep)
		case "e":
			m.sim.AdjustMaxSpeed(m.opts.SpeedStep)
		case "r":
			m.sim.AdjustMaxSpeed(-m.opts.SpeedStep)
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width-statsWidth-6, msg.Height-4)
	case TickMsg:
		m.last = m.sim.Frame()
		m.msHistory = pushHistory(m.msHistory, m.last.MillisPerFrame())
		m.energyHistory = pushHistory(m.energyHistory, metrics.HoleEnergy(m.sim.World))
		if n := len(m.sim.World.Stars); n > 0 && m.last.Stepped {
			m.capped.step(float64(m.last.Clamped) / float64(n))
		}
		if m.sim.Flags.Draw.Load() {
			m.draw()
		}
		return m, m.tick()
	}
	return m, nil
}

func pushHistory(h []float64, v float64) []float64 {
	if len(h) == historyCapacity {
		copy(h, h[1:])
		h = h[:len(h)-1]
	}
	return append(h, v)
}

func (m Model) draw() {
	w := m.sim.World
	c := m.canvas
	c.Clear()

	for i := range w.Stars {
		c.Plot(w.Stars[i].Pos, w.Bounds)
	}

	pxPerUnit := float64(c.PixelWidth()) / w.Bounds.Size.X
	for i := range w.Holes {
		x, y := c.Project(w.Holes[i].Pos, w.Bounds)
		c.Circle(x, y, int(math.Round(w.Holes[i].Radius*pxPerUnit)))
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	st := newStyles(CurrentTheme)
	w := m.sim.World

	var canvas string
	if m.sim.Flags.Draw.Load() {
		canvas = m.canvas.Render(st.stars.Render, st.holes.Render)
	} else {
		canvas = st.label.Render("drawing off (d)")
	}

	var s strings.Builder
	s.WriteString(st.header.Render(fmt.Sprintf("%s %.2f ms/f", m.opts.Title, m.last.MillisPerFrame())) + "\n")
	if m.sim.Flags.Paused.Load() {
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	} else {
		s.WriteString(st.status.Render("RUNNING") + "\n\n")
	}

	if len(m.msHistory) > 1 {
		chart := asciigraph.Plot(m.msHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("ms/frame"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Step", fmt.Sprintf("%d", w.Step))
	row("FPS", fmt.Sprintf("%.1f", m.last.Rate()))
	row("G", fmt.Sprintf("%g", w.Params.G()))
	row("Speed cap", fmt.Sprintf("%g", w.Params.MaxSpeed))
	row("Stars", fmt.Sprintf("%d", len(w.Stars)))
	row("Holes", fmt.Sprintf("%d", len(w.Holes)))
	row("Workers", fmt.Sprintf("%d (%s)", w.Params.Workers, w.Params.Schedule))

	saturation := m.capped.value()
	row("Capped", Bar(saturation, 10)+fmt.Sprintf(" %.0f%%", max(0, saturation)*100))
	row("Energy", Sparkline(m.energyHistory, 20))

	if m.showHelp {
		s.WriteString(st.help.Render("SPACE pause  D draw  Q/W G +/-\nE/R speed cap +/-  T theme  ESC quit"))
	} else {
		s.WriteString(st.help.Render("? help"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, st.canvas.Render(canvas), st.panel.Render(s.String()))
}
