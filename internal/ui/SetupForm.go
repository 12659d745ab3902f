package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/robovac/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedColor = lipgloss.Color("205")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle    = blurredStyle

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

const (
	focusWidth = iota
	focusHeight
	focusStrategy
	focusSubmit
	focusCount
)

const maxGridSide = 60

// SetupSubmitMsg carries the scenario built by the setup form.
type SetupSubmitMsg struct {
	Scenario game.Scenario
}

// SetupCancelMsg returns from the setup form to the intro screen.
type SetupCancelMsg struct{}

// SetupModel is the custom run form: grid size and the strategy of the
// second robot. The first robot always hugs the perimeter.
type SetupModel struct {
	widthInput    textinput.Model
	heightInput   textinput.Model
	strategies    []string
	strategyIndex int
	focusIndex    int
	err           error
	width         int
	height        int
}

func newNumberInput(placeholder string, value int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 3
	ti.Width = 6
	ti.SetValue(strconv.Itoa(value))
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle
	return ti
}

func NewInitialSetupModel(w, h int) SetupModel {
	widthInput := newNumberInput("width", game.DefaultMapWidth)
	widthInput.Focus()
	heightInput := newNumberInput("height", game.DefaultMapHeight)

	strategies := game.StrategyNames()
	strategyIndex := 0
	for i, name := range strategies {
		if name == "spiral" {
			strategyIndex = i
		}
	}

	return SetupModel{
		widthInput:    widthInput,
		heightInput:   heightInput,
		strategies:    strategies,
		strategyIndex: strategyIndex,
		width:         w,
		height:        h,
	}
}

// Init sends a command to start the cursor blinking
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch s := msg.String(); s {
		case "esc":
			return m, func() tea.Msg { return SetupCancelMsg{} }
		case "tab", "down":
			return m.setFocus((m.focusIndex + 1) % focusCount), nil
		case "shift+tab", "up":
			return m.setFocus((m.focusIndex - 1 + focusCount) % focusCount), nil
		case "enter":
			if m.focusIndex != focusSubmit {
				return m.setFocus(m.focusIndex + 1), nil
			}
			scenario, err := m.scenario()
			if err != nil {
				m.err = err
				return m, nil
			}
			return m, func() tea.Msg { return SetupSubmitMsg{Scenario: scenario} }
		case "left", "right":
			if m.focusIndex == focusStrategy {
				step := 1
				if s == "left" {
					step = -1
				}
				m.strategyIndex = (m.strategyIndex + step + len(m.strategies)) % len(m.strategies)
				return m, nil
			}
		}

		var cmd tea.Cmd
		switch m.focusIndex {
		case focusWidth:
			m.widthInput, cmd = m.widthInput.Update(msg)
		case focusHeight:
			m.heightInput, cmd = m.heightInput.Update(msg)
		}
		return m, cmd
	}

	return m, nil
}

func (m SetupModel) setFocus(index int) SetupModel {
	m.focusIndex = index
	m.widthInput.Blur()
	m.heightInput.Blur()
	switch index {
	case focusWidth:
		m.widthInput.Focus()
	case focusHeight:
		m.heightInput.Focus()
	}
	return m
}

// scenario builds the custom run: the reference dirt and obstacles that
// fit on the chosen grid, a perimeter hugger from the origin and the
// chosen strategy from the centre.
func (m SetupModel) scenario() (game.Scenario, error) {
	width, err := parseSide("width", m.widthInput.Value())
	if err != nil {
		return game.Scenario{}, err
	}
	height, err := parseSide("height", m.heightInput.Value())
	if err != nil {
		return game.Scenario{}, err
	}

	reference := game.DefaultScenario()
	scenario := game.Scenario{
		Name:   fmt.Sprintf("custom %dx%d", width, height),
		Width:  width,
		Height: height,
		Robots: []game.RobotSpec{
			{Name: "hugger", Strategy: "perimeter"},
			{Name: m.strategies[m.strategyIndex], Strategy: m.strategies[m.strategyIndex], StartAtCenter: true},
		},
	}
	for _, p := range reference.Dirt {
		if p.X < width && p.Y < height {
			scenario.Dirt = append(scenario.Dirt, p)
		}
	}
	for _, p := range reference.Obstacles {
		if p.X < width && p.Y < height {
			scenario.Obstacles = append(scenario.Obstacles, p)
		}
	}

	if err := scenario.Validate(); err != nil {
		return game.Scenario{}, err
	}
	return scenario, nil
}

func parseSide(name, raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 || value > maxGridSide {
		return 0, fmt.Errorf("%s must be a number between 1 and %d", name, maxGridSide)
	}
	return value, nil
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}
	label := func(index int, text string) string {
		if m.focusIndex == index {
			return focusedStyle.Render(text)
		}
		return blurredStyle.Render(text)
	}

	var b strings.Builder

	b.WriteString(center(label(focusWidth, "Grid width") + " " + m.widthInput.View()))
	b.WriteString("\n")
	b.WriteString(center(label(focusHeight, "Grid height") + " " + m.heightInput.View()))
	b.WriteString("\n\n")

	strategy := fmt.Sprintf("◀ %s ▶", m.strategies[m.strategyIndex])
	b.WriteString(center(label(focusStrategy, "Second robot strategy") + " " + label(focusStrategy, strategy)))
	b.WriteString("\n\n")

	submitText := "Start"
	if m.focusIndex == focusSubmit {
		b.WriteString(center(submitButtonStyle.Render(submitText)))
	} else {
		b.WriteString(center(blurredButtonStyle.Render(submitText)))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(center(errorStyle.Render(m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(helpStyle.Render("(tab/shift+tab to navigate, arrows to pick a strategy, enter to confirm, esc to go back, ctrl+c to quit)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
