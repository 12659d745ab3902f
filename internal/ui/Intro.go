package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected int
	width    int
	height   int
}

var introOptions = []string{"Reference Run", "Custom Run", "Run History"}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: 0, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.selected = (m.selected - 1 + len(introOptions)) % len(introOptions)
		case "right", "l", "tab":
			m.selected = (m.selected + 1) % len(introOptions)
		case "enter":
			selected := IntroSubmitMsg(m.selected)
			return m, func() tea.Msg { return selected }
		}
	}
	return m, nil
}

var robovacAscii = `
     ____            __              
    / __ \____  ____/ /___ _  ______ 
   / /_/ / __ \/ __  / __ \ | / / __ \
  / _, _/ /_/ / /_/ / /_/ / |/ / /_/ /
 /_/ |_|\____/_.___/\____/|___/\__,_/ 
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("87"))

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("87")).
					Foreground(lipgloss.Color("0"))
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(robovacAscii))
	sb.WriteString("\n")

	buttons := make([]string, 0, len(introOptions))
	for i, option := range introOptions {
		if i == m.selected {
			buttons = append(buttons, introSelectedButtonStyle.Render(option))
		} else {
			buttons = append(buttons, introButtonStyle.Render(option))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		sb.String(),
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...),
		faintStyle.Render("(arrows to choose, enter to start, q to quit)"),
	)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
