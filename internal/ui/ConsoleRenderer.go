package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/Mshel/robovac/internal/game"
)

const clearScreen = "\033[H\033[2J"

// ConsoleRenderer prints every frame to a writer and waits a fixed delay
// so a human can follow the robot. Once ctx is done frames are dropped.
type ConsoleRenderer struct {
	ctx    context.Context
	out    io.Writer
	delay  time.Duration
	styled bool
	clear  bool

	mu sync.Mutex
}

func NewConsoleRenderer(ctx context.Context, out io.Writer, delay time.Duration) *ConsoleRenderer {
	return &ConsoleRenderer{ctx: ctx, out: out, delay: delay, styled: true, clear: true}
}

// Plain turns off colours and screen clearing.
func (c *ConsoleRenderer) Plain() *ConsoleRenderer {
	c.styled = false
	c.clear = false
	return c
}

func (c *ConsoleRenderer) Render(frame game.Frame) {
	if c.ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var sb strings.Builder
	if c.clear {
		sb.WriteString(clearScreen)
	}
	sb.WriteString(Title + "\n")
	sb.WriteString(strings.Repeat("-", len(Title)+1) + "\n")
	sb.WriteString(Legend + "\n")
	sb.WriteString(RenderCells(frame.Cells, frame.X, frame.Y, c.styled))

	// A broken terminal must not stop the robots.
	_, _ = fmt.Fprint(c.out, sb.String())

	if c.delay <= 0 {
		return
	}
	select {
	case <-time.After(c.delay):
	case <-c.ctx.Done():
	}
}
