package ui

import (
	"context"
	"time"

	"github.com/Mshel/robovac/internal/game"
	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg carries one simulation frame into the bubbletea loop.
type FrameMsg game.Frame

// SimulationDoneMsg is sent once the simulation goroutine returns.
type SimulationDoneMsg struct {
	Reports  []game.RunReport
	Coverage game.Coverage
	DirtLeft []game.Point
	Err      error
}

// ChannelRenderer hands frames to the TUI one at a time. Render blocks
// until the view picked the frame up, then waits the pacing delay. Once
// ctx is done frames are dropped so the simulation can finish quickly.
type ChannelRenderer struct {
	ctx    context.Context
	delay  time.Duration
	frames chan game.Frame
	done   chan SimulationDoneMsg
}

func NewChannelRenderer(ctx context.Context, delay time.Duration) *ChannelRenderer {
	return &ChannelRenderer{
		ctx:    ctx,
		delay:  delay,
		frames: make(chan game.Frame),
		done:   make(chan SimulationDoneMsg, 1),
	}
}

func (c *ChannelRenderer) Render(frame game.Frame) {
	select {
	case c.frames <- frame:
	case <-c.ctx.Done():
		return
	}

	if c.delay <= 0 {
		return
	}
	select {
	case <-time.After(c.delay):
	case <-c.ctx.Done():
	}
}

// Finish reports the end of the simulation to the listener.
func (c *ChannelRenderer) Finish(msg SimulationDoneMsg) {
	c.done <- msg
}

// Listen waits for the next frame or the end of the run.
func (c *ChannelRenderer) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case frame := <-c.frames:
			return FrameMsg(frame)
		case msg := <-c.done:
			return msg
		case <-c.ctx.Done():
			return nil
		}
	}
}
