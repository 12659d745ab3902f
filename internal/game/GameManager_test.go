package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceScenario(t *testing.T) {
	recorder := &FrameRecorder{}
	sim, err := NewSimulation(DefaultScenario(), recorder)
	require.NoError(t, err)

	require.True(t, sim.Grid.IsObstacle(2, 5))
	require.True(t, sim.Grid.IsObstacle(12, 1))

	reports, err := sim.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 2)

	hugger := reports[0]
	assert.Equal(t, "hugger", hugger.Robot)
	assert.Equal(t, "perimeter", hugger.Strategy)
	assert.Equal(t, Point{X: 0, Y: 0}, hugger.Start)
	assert.Equal(t, Point{X: 0, Y: 0}, hugger.End)
	assert.Equal(t, RobotStats{Moves: 56, Attempts: 60, Cleaned: 0}, hugger.Stats)
	assert.Equal(t, 3, hugger.DirtRemaining, "no dirt lies on the perimeter")

	spinner := reports[1]
	assert.Equal(t, "spiral", spinner.Strategy)
	assert.Equal(t, Point{X: 10, Y: 5}, spinner.Start)
	assert.Equal(t, Point{X: 18, Y: 9}, spinner.End)
	assert.Equal(t, RobotStats{Moves: 1 + 218, Attempts: 1 + 240, Cleaned: 3}, spinner.Stats)
	assert.Equal(t, 0, spinner.DirtRemaining)
	assert.NotEqual(t, hugger.ID, spinner.ID)

	for _, p := range []Point{{5, 3}, {10, 8}, {3, 1}} {
		assert.True(t, sim.Grid.IsCleaned(p.X, p.Y), "(%d,%d)", p.X, p.Y)
	}
	assert.True(t, sim.Grid.IsObstacle(2, 5))
	assert.True(t, sim.Grid.IsObstacle(12, 1))

	assert.Equal(t, 56+1+218, recorder.Count(FrameMoved))
	assert.Equal(t, 3, recorder.Count(FrameCleaned))
}

func TestHuggerLeavesInteriorDirt(t *testing.T) {
	scenario := DefaultScenario()
	scenario.Robots = scenario.Robots[:1]
	sim, err := NewSimulation(scenario, nil)
	require.NoError(t, err)

	_, err = sim.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, sim.Grid.IsDirt(5, 3))
	assert.True(t, sim.Grid.IsDirt(10, 8))
	assert.True(t, sim.Grid.IsDirt(3, 1))
}

func TestNewSimulationRejectsInvalidScenario(t *testing.T) {
	scenario := DefaultScenario()
	scenario.Dirt = append(scenario.Dirt, Point{X: 20, Y: 0})

	_, err := NewSimulation(scenario, nil)
	assert.ErrorIs(t, err, ErrInvalidScenario)
}

func TestRunStopsBetweenRobotsWhenCancelled(t *testing.T) {
	sim, err := NewSimulation(DefaultScenario(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports, err := sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, reports)
	assert.Equal(t, 3, sim.Grid.Coverage().Dirt)
}

func TestRunConcurrentlyCleansEachCellOnce(t *testing.T) {
	scenario := Scenario{
		Name:   "crowded",
		Width:  9,
		Height: 9,
		Robots: []RobotSpec{
			{Name: "a", Strategy: "spiral", StartAtCenter: true},
			{Name: "b", Strategy: "spiral", Start: &Point{X: 4, Y: 4}},
			{Name: "c", Strategy: "perimeter"},
		},
	}
	for y := 0; y < scenario.Height; y++ {
		for x := 0; x < scenario.Width; x++ {
			scenario.Dirt = append(scenario.Dirt, Point{X: x, Y: y})
		}
	}

	sim, err := NewSimulation(scenario, &FrameRecorder{})
	require.NoError(t, err)

	reports, err := sim.RunConcurrently(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 3)

	cleaned := 0
	for _, report := range reports {
		cleaned += report.Stats.Cleaned
	}
	coverage := sim.Grid.Coverage()
	assert.Equal(t, coverage.Cleaned, cleaned)
	assert.Equal(t, 81, coverage.Cleaned+coverage.Dirt)
	assert.Equal(t, 0, coverage.Dirt)
}
