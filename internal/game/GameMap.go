package game

import (
	"errors"
	"fmt"
	"sync"
)

// CellType classifies a single grid cell.
type CellType int

const (
	Empty CellType = iota
	Dirt
	Obstacle
	Cleaned
)

func (c CellType) String() string {
	switch c {
	case Empty:
		return "empty"
	case Dirt:
		return "dirt"
	case Obstacle:
		return "obstacle"
	case Cleaned:
		return "cleaned"
	default:
		return fmt.Sprintf("CellType(%d)", int(c))
	}
}

var (
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
	ErrOutOfBounds       = errors.New("coordinate out of bounds")
)

// Grid is the fixed size cell map shared by every robot working on it.
// Cells are stored row-major, cells[y][x]. All cell access goes through
// the mutex so robots running side by side cannot corrupt the map.
type Grid struct {
	width  int
	height int

	mu    sync.RWMutex
	cells [][]CellType
}

func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new grid %dx%d: %w", width, height, ErrInvalidDimensions)
	}

	cells := make([][]CellType, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]CellType, width)
	}

	return &Grid{width: width, height: height, cells: cells}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Cell returns the classification at (x, y). ok is false out of bounds.
func (g *Grid) Cell(x, y int) (cell CellType, ok bool) {
	if !g.InBounds(x, y) {
		return Empty, false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cells[y][x], true
}

func (g *Grid) IsDirt(x, y int) bool {
	cell, ok := g.Cell(x, y)
	return ok && cell == Dirt
}

func (g *Grid) IsObstacle(x, y int) bool {
	cell, ok := g.Cell(x, y)
	return ok && cell == Obstacle
}

func (g *Grid) IsCleaned(x, y int) bool {
	cell, ok := g.Cell(x, y)
	return ok && cell == Cleaned
}

// AddObstacle overwrites the cell with an obstacle. Setup only; panics
// out of bounds.
func (g *Grid) AddObstacle(x, y int) {
	g.set(x, y, Obstacle)
}

// AddDirt overwrites the cell with dirt. Setup only; panics out of bounds.
func (g *Grid) AddDirt(x, y int) {
	g.set(x, y, Dirt)
}

func (g *Grid) set(x, y int, cell CellType) {
	if !g.InBounds(x, y) {
		panic(fmt.Errorf("add %s at (%d,%d) on %dx%d grid: %w", cell, x, y, g.width, g.height, ErrOutOfBounds))
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cells[y][x] = cell
}

// Clean marks the cell as cleaned whatever it held before. Callers that
// only want to clean dirt must check IsDirt first. No-op out of bounds.
func (g *Grid) Clean(x, y int) {
	if !g.InBounds(x, y) {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cells[y][x] = Cleaned
}

// cleanDirt is IsDirt followed by Clean under a single lock, so two
// robots on the same cell clean it once.
func (g *Grid) cleanDirt(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cells[y][x] != Dirt {
		return false
	}
	g.cells[y][x] = Cleaned
	return true
}

// Snapshot returns a deep copy of the cells, row-major.
func (g *Grid) Snapshot() [][]CellType {
	g.mu.RLock()
	defer g.mu.RUnlock()

	snapshot := make([][]CellType, g.height)
	for y := range g.cells {
		snapshot[y] = make([]CellType, g.width)
		copy(snapshot[y], g.cells[y])
	}
	return snapshot
}
