// Package tui is the terminal rendering collaborator. It pulls body
// snapshots from the simulator strictly between steps and maps speed to
// a color ramp, cold blue through hot red.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/pkozlow/gaslab/internal/engine"
)

var (
	header    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dim       = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	warn      = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	alert     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	speedRamp = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("27")),  // blue
		lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // cyan
		lipgloss.NewStyle().Foreground(lipgloss.Color("48")),  // green
		lipgloss.NewStyle().Foreground(lipgloss.Color("226")), // yellow
		lipgloss.NewStyle().Foreground(lipgloss.Color("208")), // orange
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
	}
)

type tickMsg time.Time

type Model struct {
	sim       *engine.Simulator
	maxSpeed  float64
	threshold float64
	frameRate int

	paused   bool
	speed    int
	baseline float64
	history  []float64

	width  int
	height int
}

func NewModel(sim *engine.Simulator, maxSpeed float64, frameRate int) *Model {
	if frameRate < 1 {
		frameRate = 30
	}
	return &Model{
		sim:       sim,
		maxSpeed:  maxSpeed,
		threshold: 1e-3,
		baseline:  sim.World().KineticEnergy(),
		frameRate: frameRate,
		speed:     1,
		history:   make([]float64, 0, 120),
		width:     80,
		height:    24,
	}
}

func Run(sim *engine.Simulator, maxSpeed float64, frameRate int) error {
	p := tea.NewProgram(NewModel(sim, maxSpeed, frameRate), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "escape":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		case "+", "=":
			if m.speed < 16 {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		case "0":
			m.speed = 1
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.paused {
			for i := 0; i < m.speed; i++ {
				m.sim.Step()
			}
			m.history = append(m.history, m.sim.World().KineticEnergy())
			if len(m.history) > 120 {
				m.history = m.history[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) View() string {
	w := m.sim.World()
	p := w.Params

	// Leave room for the status line and the energy sparkline.
	canvasW := m.width
	canvasH := m.height - 9
	if canvasW < 20 {
		canvasW = 20
	}
	if canvasH < 5 {
		canvasH = 5
	}

	type cell struct {
		count  int
		bucket int
	}
	cells := make([]cell, canvasW*canvasH)

	bodies := w.Bodies()
	for i := range bodies {
		b := &bodies[i]
		cx := int(b.X / p.Width * float64(canvasW))
		cy := int(b.Y / p.Height * float64(canvasH))
		if cx < 0 {
			cx = 0
		} else if cx >= canvasW {
			cx = canvasW - 1
		}
		if cy < 0 {
			cy = 0
		} else if cy >= canvasH {
			cy = canvasH - 1
		}
		bucket := speedBucket(math.Hypot(b.VX, b.VY), m.maxSpeed)
		c := &cells[cy*canvasW+cx]
		c.count++
		if bucket > c.bucket {
			c.bucket = bucket
		}
	}

	var sb strings.Builder
	for y := 0; y < canvasH; y++ {
		for x := 0; x < canvasW; x++ {
			c := cells[y*canvasW+x]
			switch {
			case c.count == 0:
				sb.WriteByte(' ')
			case c.count == 1:
				sb.WriteString(speedRamp[c.bucket].Render("."))
			default:
				sb.WriteString(speedRamp[c.bucket].Render("o"))
			}
		}
		sb.WriteByte('\n')
	}

	energy := w.KineticEnergy()
	status := fmt.Sprintf("t=%.1f  E=%.1f  bodies=%d  speed=%dx", m.sim.Time(), energy, w.Len(), m.speed)
	if m.paused {
		status += "  " + warn.Render("paused")
	}
	if drift := math.Abs(energy - m.baseline); drift > m.threshold {
		status += "  " + alert.Render(fmt.Sprintf("drift %.4f", drift))
	}

	graph := ""
	if len(m.history) >= 2 {
		graph = asciigraph.Plot(m.history,
			asciigraph.Height(4),
			asciigraph.Width(min(m.width-10, 100)),
			asciigraph.Caption("kinetic energy"),
		)
	}

	return header.Render("gaslab") + "  " + status + "\n" +
		sb.String() +
		graph + "\n" +
		dim.Render("space pause  +/- speed  q quit")
}

// speedBucket maps a speed onto the color ramp. The top bucket starts
// at the configured maximum initial speed; collisions can push bodies
// past it.
func speedBucket(speed, maxSpeed float64) int {
	if maxSpeed <= 0 {
		return 0
	}
	b := int(speed / maxSpeed * float64(len(speedRamp)))
	if b >= len(speedRamp) {
		b = len(speedRamp) - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}
