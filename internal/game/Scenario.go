package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// RobotSpec describes one robot of a scenario. Script, when set, takes
// precedence over Strategy.
type RobotSpec struct {
	Name          string `yaml:"name"`
	Strategy      string `yaml:"strategy"`
	Script        string `yaml:"script,omitempty"`
	Start         *Point `yaml:"start,omitempty"`
	StartAtCenter bool   `yaml:"start_at_center,omitempty"`
}

// Scenario is a grid layout plus the robots to run on it, in order.
type Scenario struct {
	Name      string      `yaml:"name"`
	Width     int         `yaml:"width"`
	Height    int         `yaml:"height"`
	Dirt      []Point     `yaml:"dirt"`
	Obstacles []Point     `yaml:"obstacles"`
	Robots    []RobotSpec `yaml:"robots"`
}

// DefaultScenario is the reference run: a perimeter hugger from the
// origin, then a spiral started from the centre of the grid.
func DefaultScenario() Scenario {
	return Scenario{
		Name:      "reference",
		Width:     DefaultMapWidth,
		Height:    DefaultMapHeight,
		Dirt:      []Point{{X: 5, Y: 3}, {X: 10, Y: 8}, {X: 3, Y: 1}},
		Obstacles: []Point{{X: 2, Y: 5}, {X: 12, Y: 1}},
		Robots: []RobotSpec{
			{Name: "hugger", Strategy: "perimeter"},
			{Name: "spinner", Strategy: "spiral", StartAtCenter: true},
		},
	}
}

func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := scenario.Validate(); err != nil {
		return Scenario{}, err
	}
	return scenario, nil
}

func (s Scenario) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: grid %dx%d: %v", ErrInvalidScenario, s.Width, s.Height, ErrInvalidDimensions)
	}
	inBounds := func(p Point) bool {
		return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
	}
	for _, p := range s.Dirt {
		if !inBounds(p) {
			return fmt.Errorf("%w: dirt at (%d,%d): %v", ErrInvalidScenario, p.X, p.Y, ErrOutOfBounds)
		}
	}
	for _, p := range s.Obstacles {
		if !inBounds(p) {
			return fmt.Errorf("%w: obstacle at (%d,%d): %v", ErrInvalidScenario, p.X, p.Y, ErrOutOfBounds)
		}
	}
	if len(s.Robots) == 0 {
		return fmt.Errorf("%w: no robots", ErrInvalidScenario)
	}
	for i, spec := range s.Robots {
		if spec.Start != nil && !inBounds(*spec.Start) {
			return fmt.Errorf("%w: robot %d start (%d,%d): %v", ErrInvalidScenario, i, spec.Start.X, spec.Start.Y, ErrOutOfBounds)
		}
		if _, err := spec.strategy(); err != nil {
			return fmt.Errorf("%w: robot %d: %v", ErrInvalidScenario, i, err)
		}
	}
	return nil
}

// StartFor resolves where a robot is moved before it executes. ok is
// false when it stays at the origin.
func (s Scenario) StartFor(spec RobotSpec) (start Point, ok bool) {
	switch {
	case spec.Start != nil:
		return *spec.Start, true
	case spec.StartAtCenter:
		return Point{X: s.Width / 2, Y: s.Height / 2}, true
	default:
		return Point{}, false
	}
}

func (spec RobotSpec) strategy() (Strategy, error) {
	if spec.Script != "" {
		name := spec.Strategy
		if name == "" {
			name = "script"
		}
		return NewScriptStrategy(name, spec.Script)
	}
	return StrategyByName(spec.Strategy)
}
