package ui

import (
	"fmt"
	"strings"

	"github.com/Mshel/robovac/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	headingStyle = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

const statusPanelWidth = 34

// SimulationModel shows the frames of a running simulation.
type SimulationModel struct {
	scenario game.Scenario
	renderer *ChannelRenderer

	frame      game.Frame
	hasFrame   bool
	frameCount int

	ScreenWidth  int
	ScreenHeight int
}

func NewSimulationModel(scenario game.Scenario, renderer *ChannelRenderer, w, h int) SimulationModel {
	return SimulationModel{
		scenario:     scenario,
		renderer:     renderer,
		ScreenWidth:  w,
		ScreenHeight: h,
	}
}

func (m SimulationModel) Init() tea.Cmd {
	return m.renderer.Listen()
}

func (m SimulationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		return m, nil
	case FrameMsg:
		m.frame = game.Frame(msg)
		m.hasFrame = true
		m.frameCount++
		return m, m.renderer.Listen()
	}
	return m, nil
}

func (m SimulationModel) View() string {
	if !m.hasFrame {
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, "Waiting for the first robot...")
	}

	mapContent := headingStyle.Render(Title) + "\n" +
		faintStyle.Render(Legend) + "\n\n" +
		RenderCells(m.frame.Cells, m.frame.X, m.frame.Y, true)

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		mapViewStyle.Render(mapContent),
		statusPanelStyle.Width(statusPanelWidth).Render(m.renderStatusPanel()),
	)
	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, view)
}

func (m SimulationModel) renderStatusPanel() string {
	var sb strings.Builder

	sb.WriteString(headingStyle.Render("--- Robot ---") + "\n")
	sb.WriteString(fmt.Sprintf("Name: %s\n", m.frame.Robot))
	sb.WriteString(fmt.Sprintf("Strategy: %s\n", m.frame.Strategy))
	sb.WriteString(fmt.Sprintf("Position: (%d, %d)\n", m.frame.X, m.frame.Y))
	sb.WriteString(fmt.Sprintf("Last action: %s\n", m.frame.Event))
	sb.WriteString(fmt.Sprintf("Moves: %d / %d tried\n", m.frame.Stats.Moves, m.frame.Stats.Attempts))
	sb.WriteString(fmt.Sprintf("Cleaned: %d\n", m.frame.Stats.Cleaned))

	dirt := 0
	for _, row := range m.frame.Cells {
		for _, cell := range row {
			if cell == game.Dirt {
				dirt++
			}
		}
	}

	sb.WriteString("\n" + headingStyle.Render("--- Scenario ---") + "\n")
	sb.WriteString(fmt.Sprintf("%s (%dx%d)\n", m.scenario.Name, m.scenario.Width, m.scenario.Height))
	sb.WriteString(fmt.Sprintf("Robots: %d\n", len(m.scenario.Robots)))
	sb.WriteString(fmt.Sprintf("Dirt left: %d\n", dirt))
	sb.WriteString(fmt.Sprintf("Frames: %d\n", m.frameCount))

	sb.WriteString("\n" + headingStyle.Render("--- Controls ---") + "\n")
	sb.WriteString("Q / Ctrl+C: Quit\n")

	return sb.String()
}
