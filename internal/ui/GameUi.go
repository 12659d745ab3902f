package ui

import (
	"strings"

	"github.com/Mshel/robovac/internal/game"
	"github.com/charmbracelet/lipgloss"
)

const (
	Title     = "Vacuum cleaner robot simulation"
	Legend    = "Legends: #=Obstacles, D=Dirt, .=Empty, R=Robot, C=Cleaned"
	robotRune = "R"
)

var (
	obstacleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("172"))
	dirtStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("130")).Bold(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cleanedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	robotStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)

	cellRunes = map[game.CellType]string{
		game.Empty:    ".",
		game.Dirt:     "D",
		game.Obstacle: "#",
		game.Cleaned:  "C",
	}

	cellStyles = map[game.CellType]lipgloss.Style{
		game.Empty:    emptyStyle,
		game.Dirt:     dirtStyle,
		game.Obstacle: obstacleStyle,
		game.Cleaned:  cleanedStyle,
	}
)

// RenderCells draws the grid row by row, every cell followed by a space,
// with the robot drawn over whatever its cell holds.
func RenderCells(cells [][]game.CellType, robotX, robotY int, styled bool) string {
	var sb strings.Builder
	for y, row := range cells {
		for x, cell := range row {
			if x == robotX && y == robotY {
				sb.WriteString(paint(robotStyle, robotRune, styled))
			} else {
				sb.WriteString(paint(cellStyles[cell], cellRunes[cell], styled))
			}
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func paint(style lipgloss.Style, s string, styled bool) string {
	if !styled {
		return s
	}
	return style.Render(s)
}
