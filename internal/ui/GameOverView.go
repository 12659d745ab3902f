package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/robovac/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SummaryDoneMsg returns the controller to the intro screen.
type SummaryDoneMsg struct{}

// SummaryModel shows the reports of the last run and the recent history.
type SummaryModel struct {
	Reports  []game.RunReport
	Coverage game.Coverage
	DirtLeft []game.Point
	Err      error
	History  []game.RunReport

	ScreenWidth  int
	ScreenHeight int
}

// Styles for the summary tables
var (
	summaryHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	summaryRowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	summaryBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))

	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 0)
)

type summaryColumn struct {
	title string
	width int
	value func(game.RunReport) string
}

var summaryColumns = []summaryColumn{
	{"Robot", 12, func(r game.RunReport) string { return r.Robot }},
	{"Strategy", 11, func(r game.RunReport) string { return r.Strategy }},
	{"Start", 9, func(r game.RunReport) string { return formatPoint(r.Start) }},
	{"End", 9, func(r game.RunReport) string { return formatPoint(r.End) }},
	{"Moves", 7, func(r game.RunReport) string { return strconv.Itoa(r.Stats.Moves) }},
	{"Cleaned", 9, func(r game.RunReport) string { return strconv.Itoa(r.Stats.Cleaned) }},
	{"Dirt left", 11, func(r game.RunReport) string { return strconv.Itoa(r.DirtRemaining) }},
}

// NewSummaryModel shows result; a zero result only lists the history.
func NewSummaryModel(result SimulationDoneMsg, history []game.RunReport, w, h int) SummaryModel {
	return SummaryModel{
		Reports:      result.Reports,
		Coverage:     result.Coverage,
		DirtLeft:     result.DirtLeft,
		Err:          result.Err,
		History:      history,
		ScreenWidth:  w,
		ScreenHeight: h,
	}
}

func (m SummaryModel) Init() tea.Cmd { return nil }

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return m, func() tea.Msg { return SummaryDoneMsg{} }
		}
	}
	return m, nil
}

func (m SummaryModel) View() string {
	sections := []string{}

	if m.Reports != nil || m.Err != nil {
		sections = append(sections, summaryTitleStyle.Render("RUN SUMMARY"))
		if m.Err != nil {
			sections = append(sections, errorStyle.Render(m.Err.Error()))
		}
		if len(m.Reports) > 0 {
			sections = append(sections, renderReportTable(m.Reports))
			sections = append(sections, fmt.Sprintf("Cleaned %d cells, %d dirt left, %.0f%% of the dirt removed",
				m.Coverage.Cleaned, m.Coverage.Dirt, m.Coverage.CleanedRatio()*100))
			if len(m.DirtLeft) > 0 {
				sections = append(sections, faintStyle.Render("Dirt left at "+formatPoints(m.DirtLeft)))
			}
		}
	}

	sections = append(sections, summaryTitleStyle.Render("RECENT RUNS"))
	if len(m.History) == 0 {
		sections = append(sections, faintStyle.Render("No runs recorded yet."))
	} else {
		sections = append(sections, renderReportTable(m.History))
	}

	sections = append(sections, lipgloss.NewStyle().Faint(true).Margin(1, 0).Render("Press ESC or ENTER to return to the menu."))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1).Render(content),
	)
}

func renderReportTable(reports []game.RunReport) string {
	var table strings.Builder

	header := make([]string, 0, len(summaryColumns))
	for _, col := range summaryColumns {
		header = append(header, summaryHeaderStyle.Width(col.width).Render(col.title))
	}
	table.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...) + "\n")

	for _, report := range reports {
		cells := make([]string, 0, len(summaryColumns))
		for _, col := range summaryColumns {
			cells = append(cells, summaryRowStyle.Width(col.width).Render(col.value(report)))
		}
		table.WriteString(summaryBorderStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...)) + "\n")
	}

	return table.String()
}

func formatPoints(points []game.Point) string {
	formatted := make([]string, 0, len(points))
	for _, p := range points {
		formatted = append(formatted, formatPoint(p))
	}
	return strings.Join(formatted, " ")
}

func formatPoint(p game.Point) string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
