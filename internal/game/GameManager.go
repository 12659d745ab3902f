package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// RunReport summarises one robot's run.
type RunReport struct {
	ID            uuid.UUID
	Scenario      string
	Robot         string
	Strategy      string
	Start         Point
	End           Point
	Stats         RobotStats
	DirtRemaining int
	StartedAt     time.Time
	Duration      time.Duration
}

// Simulation owns the grid of a scenario and runs its robots on it.
type Simulation struct {
	Scenario Scenario
	Grid     *Grid

	renderer Renderer
	runLock  sync.Mutex
}

func NewSimulation(scenario Scenario, renderer Renderer) (*Simulation, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	grid, err := NewGrid(scenario.Width, scenario.Height)
	if err != nil {
		return nil, err
	}
	for _, p := range scenario.Dirt {
		grid.AddDirt(p.X, p.Y)
	}
	for _, p := range scenario.Obstacles {
		grid.AddObstacle(p.X, p.Y)
	}

	if renderer == nil {
		renderer = NopRenderer{}
	}

	return &Simulation{
		Scenario: scenario,
		Grid:     grid,
		renderer: renderer,
	}, nil
}

// Run executes the robots one after another. The context is checked
// between robots; a strategy that has started always finishes.
func (s *Simulation) Run(ctx context.Context) ([]RunReport, error) {
	s.runLock.Lock()
	defer s.runLock.Unlock()

	log.Info("Simulation started", "scenario", s.Scenario.Name, "width", s.Grid.Width(), "height", s.Grid.Height(), "robots", len(s.Scenario.Robots))

	reports := make([]RunReport, 0, len(s.Scenario.Robots))
	for _, spec := range s.Scenario.Robots {
		if err := ctx.Err(); err != nil {
			return reports, fmt.Errorf("simulation %s interrupted: %w", s.Scenario.Name, err)
		}

		robot, err := s.placeRobot(spec)
		if err != nil {
			return reports, err
		}

		reports = append(reports, s.execute(robot))
	}

	log.Info("Simulation finished", "scenario", s.Scenario.Name, "dirt_remaining", s.Grid.Coverage().Dirt)
	return reports, nil
}

// RunConcurrently executes every robot at once on the shared grid.
func (s *Simulation) RunConcurrently(ctx context.Context) ([]RunReport, error) {
	s.runLock.Lock()
	defer s.runLock.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fleet := NewFleet()
	starts := make([]Point, 0, len(s.Scenario.Robots))
	for _, spec := range s.Scenario.Robots {
		robot, err := s.placeRobot(spec)
		if err != nil {
			return nil, err
		}
		fleet.Add(robot)
		starts = append(starts, robot.Position())
	}

	startedAt := time.Now()
	fleet.RunConcurrently()
	duration := time.Since(startedAt)
	log.Info("Fleet finished", "scenario", s.Scenario.Name, "robots", len(fleet.Robots), "cleaned", fleet.Cleaned())

	dirtRemaining := s.Grid.Coverage().Dirt
	reports := make([]RunReport, 0, len(fleet.Robots))
	for i, robot := range fleet.Robots {
		reports = append(reports, s.report(robot, starts[i], startedAt, duration, dirtRemaining))
	}
	return reports, nil
}

func (s *Simulation) placeRobot(spec RobotSpec) (*Robot, error) {
	strategy, err := spec.strategy()
	if err != nil {
		return nil, fmt.Errorf("robot %q: %w", spec.Name, err)
	}

	robot := NewRobot(s.Grid, strategy, WithName(spec.Name), WithRenderer(s.renderer))
	if start, ok := s.Scenario.StartFor(spec); ok {
		robot.MoveTo(start.X, start.Y)
	}
	return robot, nil
}

func (s *Simulation) execute(robot *Robot) RunReport {
	start := robot.Position()
	log.Debug("Robot starting", "robot", robot.Name, "strategy", robot.Strategy().Name(), "x", start.X, "y", start.Y)

	startedAt := time.Now()
	robot.Execute()
	report := s.report(robot, start, startedAt, time.Since(startedAt), s.Grid.Coverage().Dirt)

	log.Info("Robot finished", "robot", report.Robot, "strategy", report.Strategy, "moves", report.Stats.Moves, "cleaned", report.Stats.Cleaned, "dirt_remaining", report.DirtRemaining)
	return report
}

func (s *Simulation) report(robot *Robot, start Point, startedAt time.Time, duration time.Duration, dirtRemaining int) RunReport {
	return RunReport{
		ID:            uuid.New(),
		Scenario:      s.Scenario.Name,
		Robot:         robot.Name,
		Strategy:      robot.Strategy().Name(),
		Start:         start,
		End:           robot.Position(),
		Stats:         robot.Stats(),
		DirtRemaining: dirtRemaining,
		StartedAt:     startedAt,
		Duration:      duration,
	}
}
