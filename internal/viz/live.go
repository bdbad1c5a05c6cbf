package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/tenseg/internal/engine"
)

const (
	canvasWidth     = 56
	canvasHeight    = 20
	historyCapacity = 600
	ticksPerFrame   = 4
)

type TickMsg time.Time

func frame() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives a live structure in the terminal: the engine ticks on a
// frame timer and the structure, stage and history render each frame.
type Model struct {
	eng      *engine.Engine
	code     string
	maxTicks int

	canvas     *Canvas
	running    bool
	note       string
	err        error
	strainHist []float64
	heightHist []float64
	spinner    int
}

func NewModel(eng *engine.Engine, code string, maxTicks int) Model {
	return Model{
		eng:      eng,
		code:     code,
		maxTicks: maxTicks,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		running:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return frame()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "s":
			m.note = ""
			if err := m.eng.RequestStage(m.nextStage()); err != nil {
				m.note = err.Error()
			}
		case "r":
			m.note = ""
			if err := m.eng.RestoreSlack(); err != nil {
				m.note = err.Error()
			}
		}
		return m, nil

	case TickMsg:
		m.spinner++
		if m.running && m.err == nil && m.eng.Ticks() < m.maxTicks {
			for i := 0; i < ticksPerFrame; i++ {
				if err := m.eng.Tick(); err != nil {
					m.err = err
					break
				}
			}
			m.strainHist = appendCapped(m.strainHist, m.eng.MaxStrain())
			m.heightHist = appendCapped(m.heightHist, m.eng.Height())
		}
		return m, frame()
	}
	return m, nil
}

func (m Model) nextStage() engine.Stage {
	switch m.eng.Stage() {
	case engine.Slack:
		return engine.Pretensing
	default:
		return engine.Slack
	}
}

func (m Model) View() string {
	m.canvas.DrawStructure(m.eng.Joints(), m.eng.Intervals())

	header := headerStyle.Render(fmt.Sprintf("tenseg  %s", m.code))
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(m.stats()),
	)

	var charts string
	if len(m.heightHist) > 1 {
		charts = graphStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
			asciigraph.Plot(m.heightHist, asciigraph.Height(5), asciigraph.Width(40), asciigraph.Caption("height")),
			"   ",
			asciigraph.Plot(m.strainHist, asciigraph.Height(5), asciigraph.Width(40), asciigraph.Caption("max strain")),
		))
	}

	help := helpStyle.Render("space pause  s next stage  r restore slack  q quit")
	parts := []string{header, body, charts, help}
	if m.err != nil {
		parts = append(parts, errorStyle.Render(m.err.Error()))
	} else if m.note != "" {
		parts = append(parts, busyStyle.Render(m.note))
	}
	return strings.Join(parts, "\n")
}

func (m Model) stats() string {
	settling := calmStyle.Render("calm")
	if m.eng.Busy() {
		settling = busyStyle.Render("settling " + spinnerFrame(m.spinner))
	}
	if m.eng.Stuck() {
		settling = errorStyle.Render("stuck")
	}

	rows := []struct {
		label, value string
	}{
		{"stage", stageStyle.Render(m.eng.Stage().String())},
		{"dynamics", settling},
		{"tick", fmt.Sprintf("%d / %d", m.eng.Ticks(), m.maxTicks)},
		{"joints", fmt.Sprintf("%d", m.eng.JointCount())},
		{"intervals", fmt.Sprintf("%d", m.eng.IntervalCount())},
		{"faces", fmt.Sprintf("%d", m.eng.FaceCount())},
		{"pending", fmt.Sprintf("%d", m.eng.GrowthPending())},
		{"max strain", fmt.Sprintf("%.5f", m.eng.MaxStrain())},
		{"height", fmt.Sprintf("%.3f", m.eng.Height())},
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row.label))
		b.WriteString(valueStyle.Render(row.value))
		b.WriteByte('\n')
	}
	return b.String()
}

func appendCapped(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[1:]
	}
	return hist
}

func spinnerFrame(i int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return frames[i%len(frames)]
}
