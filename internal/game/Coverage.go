package game

// Coverage counts the cells of a grid per classification.
type Coverage struct {
	Empty    int
	Dirt     int
	Obstacle int
	Cleaned  int
}

func (c Coverage) Total() int {
	return c.Empty + c.Dirt + c.Obstacle + c.Cleaned
}

// CleanedRatio is cleaned / (cleaned + dirt). A grid that never had dirt
// counts as fully cleaned.
func (c Coverage) CleanedRatio() float64 {
	if c.Cleaned+c.Dirt == 0 {
		return 1
	}
	return float64(c.Cleaned) / float64(c.Cleaned+c.Dirt)
}

func (g *Grid) Coverage() Coverage {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var c Coverage
	for _, row := range g.cells {
		for _, cell := range row {
			switch cell {
			case Empty:
				c.Empty++
			case Dirt:
				c.Dirt++
			case Obstacle:
				c.Obstacle++
			case Cleaned:
				c.Cleaned++
			}
		}
	}
	return c
}

// DirtCells lists the cells still holding dirt, row by row.
func (g *Grid) DirtCells() []Point {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var points []Point
	for y, row := range g.cells {
		for x, cell := range row {
			if cell == Dirt {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}
