package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Mshel/robovac/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCellsPlain(t *testing.T) {
	cells := [][]game.CellType{
		{game.Empty, game.Dirt, game.Obstacle},
		{game.Cleaned, game.Empty, game.Dirt},
	}

	got := RenderCells(cells, 1, 1, false)

	assert.Equal(t, ". D # \nC R D \n", got)
}

func TestRenderCellsRobotOverDirt(t *testing.T) {
	cells := [][]game.CellType{{game.Dirt, game.Dirt}}

	assert.Equal(t, "R D \n", RenderCells(cells, 0, 0, false))
}

func TestRenderCellsRobotOutsideGrid(t *testing.T) {
	cells := [][]game.CellType{{game.Empty}}

	assert.Equal(t, ". \n", RenderCells(cells, 3, 3, false))
}

func TestConsoleRendererPlainFrame(t *testing.T) {
	var out bytes.Buffer
	renderer := NewConsoleRenderer(context.Background(), &out, 0).Plain()

	renderer.Render(game.Frame{
		X:     0,
		Y:     0,
		Cells: [][]game.CellType{{game.Empty, game.Dirt}},
	})

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, Title, lines[0])
	assert.Equal(t, strings.Repeat("-", len(Title)+1), lines[1])
	assert.Equal(t, Legend, lines[2])
	assert.Equal(t, "R D ", lines[3])
	assert.NotContains(t, out.String(), clearScreen)
}

func TestConsoleRendererClearsByDefault(t *testing.T) {
	var out bytes.Buffer
	renderer := NewConsoleRenderer(context.Background(), &out, 0)

	renderer.Render(game.Frame{Cells: [][]game.CellType{{game.Empty}}})

	assert.True(t, strings.HasPrefix(out.String(), clearScreen))
}

func TestConsoleRendererStopsWithContext(t *testing.T) {
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	renderer := NewConsoleRenderer(ctx, &out, time.Hour).Plain()

	returned := make(chan struct{})
	go func() {
		renderer.Render(game.Frame{Cells: [][]game.CellType{{game.Empty}}})
		close(returned)
	}()
	cancel()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Render kept sleeping after the context was cancelled")
	}

	out.Reset()
	renderer.Render(game.Frame{Cells: [][]game.CellType{{game.Empty}}})
	assert.Empty(t, out.String())
}

func TestConsoleRendererCutsRunShortOnCancel(t *testing.T) {
	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	sim, err := game.NewSimulation(game.DefaultScenario(), NewConsoleRenderer(ctx, &out, 20*time.Millisecond).Plain())
	require.NoError(t, err)

	started := time.Now()
	_, err = sim.Run(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(started), 500*time.Millisecond)
}
