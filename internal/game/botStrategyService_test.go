package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sweepRightScript = `
function clean()
	while step(1, 0) do
		clean_here()
	end
end
`

func TestScriptStrategyDrivesRobot(t *testing.T) {
	grid := newTestGrid(t, 4, 1)
	grid.AddDirt(2, 0)
	strategy, err := NewScriptStrategy("sweep", sweepRightScript)
	require.NoError(t, err)
	robot := NewRobot(grid, strategy)

	robot.Execute()

	assert.Equal(t, "sweep", strategy.Name())
	assert.Equal(t, Point{X: 3, Y: 0}, robot.Position())
	assert.True(t, grid.IsCleaned(2, 0))
	assert.Equal(t, RobotStats{Moves: 3, Attempts: 4, Cleaned: 1}, robot.Stats())
}

func TestScriptStrategySeesGrid(t *testing.T) {
	grid := newTestGrid(t, 6, 5)
	grid.AddObstacle(5, 4)
	grid.AddDirt(1, 1)
	strategy, err := NewScriptStrategy("probe", `
function clean()
	local x, y = position()
	if is_dirt(1, 1) and is_obstacle(5, 4) and not is_dirt(9, 9) then
		move(x + width() - 1, y + height() - 1)
	end
end
`)
	require.NoError(t, err)
	robot := NewRobot(grid, strategy)

	robot.Execute()

	assert.Equal(t, Point{X: 5, Y: 4}, robot.Position())
}

func TestScriptStrategyRejectsSyntaxErrors(t *testing.T) {
	_, err := NewScriptStrategy("broken", "function clean( end")
	assert.ErrorIs(t, err, ErrInvalidScript)
}

func TestScriptStrategyWithoutCleanFunction(t *testing.T) {
	strategy, err := NewScriptStrategy("empty", "local answer = 42")
	require.NoError(t, err)
	robot := NewRobot(newTestGrid(t, 3, 3), strategy)

	assert.Error(t, strategy.run(robot))
	assert.NotPanics(t, robot.Execute)
	assert.Equal(t, Point{}, robot.Position())
}

func TestScriptStrategyRuntimeErrorKeepsRobotState(t *testing.T) {
	strategy, err := NewScriptStrategy("faulty", `
function clean()
	step(1, 0)
	error("motor stalled")
end
`)
	require.NoError(t, err)
	robot := NewRobot(newTestGrid(t, 3, 3), strategy)

	assert.Error(t, strategy.run(robot))
	assert.Equal(t, Point{X: 1, Y: 0}, robot.Position())
}

func TestScriptStrategyTimesOut(t *testing.T) {
	strategy, err := NewScriptStrategy("forever", `
function clean()
	while true do end
end
`)
	require.NoError(t, err)
	strategy = strategy.WithTimeout(50 * time.Millisecond)
	robot := NewRobot(newTestGrid(t, 2, 2), strategy)

	done := make(chan error, 1)
	go func() { done <- strategy.run(robot) }()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("script was not stopped by its timeout")
	}
}

func TestScriptTimeoutIgnoresRenderTime(t *testing.T) {
	strategy, err := NewScriptStrategy("sweep", sweepRightScript)
	require.NoError(t, err)
	strategy = strategy.WithTimeout(200 * time.Millisecond)

	slow := RenderFunc(func(Frame) { time.Sleep(60 * time.Millisecond) })
	robot := NewRobot(newTestGrid(t, 8, 1), strategy, WithRenderer(slow))

	require.NoError(t, strategy.run(robot))
	assert.Equal(t, Point{X: 7, Y: 0}, robot.Position())
}

func TestScriptStrategyBusyLoopsRunOutOfBudget(t *testing.T) {
	scripts := map[string]string{
		"position": "function clean() while true do position() end end",
		"move":     "function clean() while true do move(0, 0) end end",
	}

	for name, source := range scripts {
		t.Run(name, func(t *testing.T) {
			strategy, err := NewScriptStrategy(name, source)
			require.NoError(t, err)
			strategy = strategy.WithTimeout(100 * time.Millisecond)
			robot := NewRobot(newTestGrid(t, 3, 3), strategy)

			done := make(chan error, 1)
			go func() { done <- strategy.run(robot) }()

			select {
			case err := <-done:
				require.Error(t, err)
				assert.Contains(t, err.Error(), ErrScriptBudget.Error())
			case <-time.After(5 * time.Second):
				t.Fatal("busy script was not stopped")
			}
			assert.LessOrEqual(t, robot.Stats().Attempts, MinScriptCalls)
		})
	}
}
