package game

import (
	"sync"

	"github.com/charmbracelet/log"
)

// FrameEvent tells a renderer why a frame was produced.
type FrameEvent int

const (
	FrameMoved FrameEvent = iota
	FrameCleaned
)

func (e FrameEvent) String() string {
	if e == FrameCleaned {
		return "cleaned"
	}
	return "moved"
}

// Frame is what a robot hands to the renderer after it moved or cleaned.
// Cells is a private copy of the grid, row-major.
type Frame struct {
	Robot    string
	Strategy string
	X, Y     int
	Event    FrameEvent
	Cells    [][]CellType
	Stats    RobotStats
}

// Renderer observes the simulation. It can not reach back into the grid.
type Renderer interface {
	Render(frame Frame)
}

// RenderFunc adapts a plain function to Renderer.
type RenderFunc func(frame Frame)

func (f RenderFunc) Render(frame Frame) { f(frame) }

// NopRenderer drops every frame.
type NopRenderer struct{}

func (NopRenderer) Render(Frame) {}

// FrameRecorder keeps every frame it is given.
type FrameRecorder struct {
	mu     sync.Mutex
	frames []Frame
}

func (r *FrameRecorder) Render(frame Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
}

func (r *FrameRecorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

func (r *FrameRecorder) Count(event FrameEvent) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, f := range r.frames {
		if f.Event == event {
			n++
		}
	}
	return n
}

// MultiRenderer fans a frame out to several renderers in order.
type MultiRenderer []Renderer

func (m MultiRenderer) Render(frame Frame) {
	for _, r := range m {
		safeRender(r, frame)
	}
}

// safeRender shields the simulation from a failing renderer.
func safeRender(r Renderer, frame Frame) {
	if r == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("Renderer panicked, frame dropped", "robot", frame.Robot, "x", frame.X, "y", frame.Y, "panic", rec)
		}
	}()
	r.Render(frame)
}
