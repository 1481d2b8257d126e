// Package tui renders a live terminal dashboard over telemetry snapshots.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"socprobe/internal/domain"
)

type Sampler interface {
	Snapshot() domain.Snapshot
}

type Model struct {
	sampler   Sampler
	interval  time.Duration
	startTime time.Time
	paused    bool

	current     domain.Snapshot
	cpuHistory  []float64
	gpuHistory  []float64
	tempHistory []float64
	flowHistory []float64
	maxPoints   int
	maxFlow     float64

	width  int
	height int
}

type tickMsg time.Time

func NewModel(sampler Sampler, interval time.Duration) Model {
	return Model{
		sampler:   sampler,
		interval:  interval,
		startTime: time.Now(),
		maxPoints: 60,
		maxFlow:   500,
		width:     120,
		height:    30,
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		}
		return m, nil

	case tickMsg:
		if !m.paused {
			m.current = m.sampler.Snapshot()
			m.updateHistory()
		}
		return m, m.tickCmd()
	}

	return m, nil
}

func push(history []float64, v float64, limit int) []float64 {
	history = append(history, v)
	if len(history) > limit {
		history = history[1:]
	}
	return history
}

func (m *Model) updateHistory() {
	s := m.current

	m.cpuHistory = push(m.cpuHistory, s.CPU.Load.Total, m.maxPoints)
	m.gpuHistory = push(m.gpuHistory, s.GPU.Load.BusyPercent, m.maxPoints)

	if s.Thermal.CPU > 0 {
		m.tempHistory = push(m.tempHistory, s.Thermal.CPU, m.maxPoints)
	}

	flow := s.Power.Battery.ChargeFlowMA
	m.flowHistory = push(m.flowHistory, flow, m.maxPoints)
	if abs := max(flow, -flow); abs > m.maxFlow {
		m.maxFlow = abs
	}
}

func (m Model) View() string {
	elapsed := time.Since(m.startTime).Round(time.Second)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(elapsed),
		m.renderStats(),
		m.renderGraphs(),
		m.renderHelp(),
	)
}

func (m Model) renderHeader(elapsed time.Duration) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B35")).
		Background(lipgloss.Color("#1a1a1a")).
		Padding(0, 1)

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7EC8E3")).
		Background(lipgloss.Color("#1a1a1a")).
		Padding(0, 2)

	sys := m.current.System
	device := strings.TrimSpace(fmt.Sprintf("%s %s", m.current.CPU.Model, m.current.GPU.Model))

	status := fmt.Sprintf("up %s", elapsed)
	if m.paused {
		status = "paused"
	}

	top := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("SOCPROBE"),
		infoStyle.Render(device),
		infoStyle.Render(sys.Platform),
		infoStyle.Render(status),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FF6B35")).
		Padding(0, 1).
		Render(top)
}

func (m Model) renderStats() string {
	s := m.current

	cards := []string{
		m.createStatCard("CPU", fmt.Sprintf("%.1f%%", s.CPU.Load.Total), getPercentageColor(s.CPU.Load.Total)),
		m.createStatCard("GPU", fmt.Sprintf("%.1f%% @ %d MHz", s.GPU.Load.BusyPercent, s.GPU.Load.FrequencyMHz), getPercentageColor(s.GPU.Load.BusyPercent)),
		m.createStatCard("Memory", fmt.Sprintf("%.1f%%", s.Memory.UsedPercent), getPercentageColor(s.Memory.UsedPercent)),
	}

	if s.Thermal.CPU > 0 {
		cards = append(cards, m.createStatCard("Temp", fmt.Sprintf("%.1f°C", s.Thermal.CPU), getTempColor(s.Thermal.CPU)))
	}

	if b := s.Power.Battery; b.Level > 0 {
		state := "discharging"
		if b.Charging {
			state = "charging"
		}
		cards = append(cards, m.createStatCard("Battery", fmt.Sprintf("%d%% %s", b.Level, state), "#98D8C8"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) createStatCard(label, value, color string) string {
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1).
		Margin(0, 0, 0, 1)

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)

	return cardStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

func getPercentageColor(pct float64) string {
	if pct < 50 {
		return "#00FF87"
	} else if pct < 75 {
		return "#FFD700"
	}
	return "#FF6B35"
}

func getTempColor(temp float64) string {
	if temp < 45 {
		return "#00FF87"
	} else if temp < 60 {
		return "#FFD700"
	} else if temp < 75 {
		return "#FF8C00"
	}
	return "#FF0000"
}

func (m Model) renderGraphs() string {
	height, width := m.graphDimensions()

	row1 := lipgloss.JoinHorizontal(lipgloss.Top,
		renderGraph("CPU load (%)", m.cpuHistory, 0, 100, height, width, "#00CED1"),
		renderGraph("GPU busy (%)", m.gpuHistory, 0, 100, height, width, "#FFD700"),
	)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top,
		renderGraph("CPU temperature (°C)", m.tempHistory, 20, 100, height, width, "#FF8C00"),
		renderGraph("Charge flow (mA)", m.flowHistory, -m.maxFlow, m.maxFlow, height, width, "#5FD7FF"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func renderGraph(title string, data []float64, minY, maxY float64, height, width int, color string) string {
	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1).
		Width(width + 10).
		Height(height + 4)

	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
	graphStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color))

	var g strings.Builder
	g.WriteString(labelStyle.Render(title))
	g.WriteString("\n")

	if len(data) < 2 {
		g.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Italic(true).Render("collecting..."))
		return panelStyle.Render(g.String())
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(minY),
		asciigraph.UpperBound(maxY))
	g.WriteString(graphStyle.Render(graph))
	g.WriteString("\n")
	g.WriteString(graphStyle.Bold(true).Render(fmt.Sprintf("▶ %.1f", data[len(data)-1])))

	return panelStyle.Render(g.String())
}

func (m Model) renderHelp() string {
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B35")).Bold(true).Padding(0, 1)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	return lipgloss.JoinHorizontal(lipgloss.Center,
		keyStyle.Render("p"),
		descStyle.Render("pause"),
		keyStyle.Render("q"),
		descStyle.Render("quit"),
	)
}

func (m Model) graphDimensions() (height, width int) {
	const overhead = 12

	height = min(max((m.height-overhead)/2-4, 5), 18)
	width = min(max(m.width/2-14, 20), 70)

	return height, width
}

// Run blocks until the user quits.
func Run(sampler Sampler, interval time.Duration) error {
	p := tea.NewProgram(NewModel(sampler, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
