package game

// RobotStats counts what a robot did so far.
type RobotStats struct {
	Moves    int // successful moves
	Attempts int // every TryMove call
	Cleaned  int // dirt cells turned into cleaned cells
}

// Robot walks a Grid it borrows and cleans dirt with its Strategy.
type Robot struct {
	Name     string
	grid     *Grid
	strategy Strategy
	renderer Renderer

	x, y  int
	stats RobotStats
}

type RobotOption func(*Robot)

func WithName(name string) RobotOption {
	return func(r *Robot) { r.Name = name }
}

func WithRenderer(renderer Renderer) RobotOption {
	return func(r *Robot) { r.renderer = renderer }
}

// NewRobot places a robot at (0,0) whatever that cell holds.
func NewRobot(grid *Grid, strategy Strategy, opts ...RobotOption) *Robot {
	robot := &Robot{
		Name:     "robot",
		grid:     grid,
		strategy: strategy,
		renderer: NopRenderer{},
	}
	for _, opt := range opts {
		opt(robot)
	}
	return robot
}

func (r *Robot) X() int             { return r.x }
func (r *Robot) Y() int             { return r.y }
func (r *Robot) Position() Point    { return Point{X: r.x, Y: r.y} }
func (r *Robot) Grid() *Grid        { return r.grid }
func (r *Robot) Strategy() Strategy { return r.strategy }
func (r *Robot) Stats() RobotStats  { return r.stats }

// TryMove relocates the robot if the target is on the grid. Obstacles
// are not checked.
func (r *Robot) TryMove(newX, newY int) bool {
	r.stats.Attempts++
	if !r.grid.InBounds(newX, newY) {
		return false
	}
	r.x, r.y = newX, newY
	r.stats.Moves++
	r.render(FrameMoved)
	return true
}

// MoveTo is TryMove for callers outside a strategy; any distance is a
// single step.
func (r *Robot) MoveTo(x, y int) bool {
	return r.TryMove(x, y)
}

// Step tries to move one cell in the given direction.
func (r *Robot) Step(d Direction) bool {
	next := r.Position().Step(d)
	return r.TryMove(next.X, next.Y)
}

// CleanHere cleans the current cell only when it holds dirt.
func (r *Robot) CleanHere() {
	if r.grid.cleanDirt(r.x, r.y) {
		r.stats.Cleaned++
		r.render(FrameCleaned)
	}
}

// Execute runs the assigned strategy to completion.
func (r *Robot) Execute() {
	if r.strategy == nil {
		return
	}
	r.strategy.Clean(r)
}

func (r *Robot) render(event FrameEvent) {
	strategyName := ""
	if r.strategy != nil {
		strategyName = r.strategy.Name()
	}
	safeRender(r.renderer, Frame{
		Robot:    r.Name,
		Strategy: strategyName,
		X:        r.x,
		Y:        r.y,
		Event:    event,
		Cells:    r.grid.Snapshot(),
		Stats:    r.stats,
	})
}
