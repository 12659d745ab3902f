package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRobotStartsAtOrigin(t *testing.T) {
	grid := newTestGrid(t, 4, 4)
	grid.AddObstacle(0, 0)

	robot := NewRobot(grid, Spiral{})

	assert.Equal(t, Point{X: 0, Y: 0}, robot.Position())
	assert.Same(t, grid, robot.Grid())
	assert.Equal(t, RobotStats{}, robot.Stats())
}

func TestTryMoveOutOfBoundsKeepsPosition(t *testing.T) {
	grid := newTestGrid(t, 20, 10)
	robot := NewRobot(grid, PerimeterHugger{})
	require.True(t, robot.TryMove(7, 4))

	targets := []Point{{-1, 4}, {20, 4}, {7, -1}, {7, 10}, {-5, -5}, {25, 15}}
	for _, target := range targets {
		assert.False(t, robot.TryMove(target.X, target.Y), "TryMove(%d, %d)", target.X, target.Y)
		assert.Equal(t, Point{X: 7, Y: 4}, robot.Position())
	}

	assert.Equal(t, RobotStats{Moves: 1, Attempts: 7}, robot.Stats())
}

func TestTryMoveOntoObstacle(t *testing.T) {
	grid := newTestGrid(t, 5, 5)
	grid.AddObstacle(1, 0)
	grid.AddObstacle(3, 3)
	robot := NewRobot(grid, nil)

	assert.True(t, robot.TryMove(1, 0))
	assert.Equal(t, Point{X: 1, Y: 0}, robot.Position())

	assert.True(t, robot.MoveTo(3, 3))
	assert.Equal(t, Point{X: 3, Y: 3}, robot.Position())
	assert.True(t, grid.IsObstacle(3, 3))
}

func TestMoveToJumpsAnyDistance(t *testing.T) {
	grid := newTestGrid(t, 20, 10)
	robot := NewRobot(grid, nil)

	assert.True(t, robot.MoveTo(10, 5))
	assert.Equal(t, Point{X: 10, Y: 5}, robot.Position())
	assert.Equal(t, 1, robot.Stats().Moves)
}

func TestCleanHereOnlyCleansDirt(t *testing.T) {
	grid := newTestGrid(t, 3, 1)
	grid.AddDirt(1, 0)
	grid.AddObstacle(2, 0)
	robot := NewRobot(grid, nil)

	robot.CleanHere()
	assert.False(t, grid.IsCleaned(0, 0), "empty cell must stay empty")

	robot.TryMove(1, 0)
	robot.CleanHere()
	assert.True(t, grid.IsCleaned(1, 0))

	robot.TryMove(2, 0)
	robot.CleanHere()
	assert.True(t, grid.IsObstacle(2, 0), "obstacle must not be cleaned")

	assert.Equal(t, 1, robot.Stats().Cleaned)
}

func TestCleanHereNeverTouchesCellsWithoutDirt(t *testing.T) {
	grid := newTestGrid(t, 6, 4)
	grid.AddDirt(2, 2)
	robot := NewRobot(grid, nil)

	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			robot.MoveTo(x, y)
			robot.CleanHere()
		}
	}

	coverage := grid.Coverage()
	assert.Equal(t, 1, coverage.Cleaned)
	assert.Equal(t, 23, coverage.Empty)
}

func TestRobotRendersMovesAndCleans(t *testing.T) {
	grid := newTestGrid(t, 3, 1)
	grid.AddDirt(1, 0)
	recorder := &FrameRecorder{}
	robot := NewRobot(grid, PerimeterHugger{}, WithName("rover"), WithRenderer(recorder))

	robot.TryMove(-1, 0)
	robot.TryMove(1, 0)
	robot.CleanHere()
	robot.CleanHere()

	frames := recorder.Frames()
	require.Len(t, frames, 2)

	assert.Equal(t, FrameMoved, frames[0].Event)
	assert.Equal(t, "rover", frames[0].Robot)
	assert.Equal(t, "perimeter", frames[0].Strategy)
	assert.Equal(t, 1, frames[0].X)
	assert.Equal(t, Dirt, frames[0].Cells[0][1])

	want := Frame{
		Robot:    "rover",
		Strategy: "perimeter",
		X:        1,
		Y:        0,
		Event:    FrameCleaned,
		Cells:    [][]CellType{{Empty, Cleaned, Empty}},
		Stats:    RobotStats{Moves: 1, Attempts: 2, Cleaned: 1},
	}
	if diff := cmp.Diff(want, frames[1]); diff != "" {
		t.Errorf("clean frame mismatch (-want +got):\n%s", diff)
	}
}

func TestRendererCannotMutateGrid(t *testing.T) {
	grid := newTestGrid(t, 2, 1)
	grid.AddDirt(1, 0)
	vandal := RenderFunc(func(frame Frame) {
		for _, row := range frame.Cells {
			for i := range row {
				row[i] = Obstacle
			}
		}
	})
	robot := NewRobot(grid, nil, WithRenderer(vandal))

	robot.TryMove(1, 0)

	assert.True(t, grid.IsDirt(1, 0))
	assert.False(t, grid.IsObstacle(0, 0))
}

func TestPanickingRendererDoesNotStopRobot(t *testing.T) {
	grid := newTestGrid(t, 5, 1)
	grid.AddDirt(4, 0)
	broken := RenderFunc(func(Frame) { panic("screen on fire") })
	robot := NewRobot(grid, PerimeterHugger{}, WithRenderer(broken))

	assert.NotPanics(t, robot.Execute)
	assert.Equal(t, Point{X: 0, Y: 0}, robot.Position())
	assert.True(t, grid.IsCleaned(4, 0))
}

func TestExecuteWithoutStrategy(t *testing.T) {
	robot := NewRobot(newTestGrid(t, 2, 2), nil)
	assert.NotPanics(t, robot.Execute)
	assert.Equal(t, RobotStats{}, robot.Stats())
}

func TestMultiRendererFansOutPastPanics(t *testing.T) {
	first, second := &FrameRecorder{}, &FrameRecorder{}
	broken := RenderFunc(func(Frame) { panic("screen on fire") })
	robot := NewRobot(newTestGrid(t, 3, 1), nil, WithRenderer(MultiRenderer{first, broken, second}))

	robot.TryMove(1, 0)
	robot.TryMove(2, 0)

	assert.Equal(t, 2, first.Count(FrameMoved))
	assert.Equal(t, 2, second.Count(FrameMoved))
}
