package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

var (
	ErrInvalidScript = errors.New("invalid strategy script")
	ErrScriptBudget  = errors.New("script call budget exhausted")
)

// ScriptStrategy runs a traversal written in Lua. The script must define
// a global function clean() and drives the robot through:
//
//	move(x, y) -> bool      same as TryMove
//	step(dx, dy) -> bool    move relative to the current cell
//	clean_here()
//	position() -> x, y
//	width(), height()
//	is_dirt(x, y), is_obstacle(x, y)
type ScriptStrategy struct {
	name    string
	source  string
	timeout time.Duration
}

func NewScriptStrategy(name, source string) (*ScriptStrategy, error) {
	luaState := lua.NewState()
	defer luaState.Close()
	if _, err := luaState.LoadString(source); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", name, ErrInvalidScript, err)
	}
	return &ScriptStrategy{name: name, source: source, timeout: MaxScriptRunTime}, nil
}

func (s *ScriptStrategy) Name() string { return s.name }

// WithTimeout sets how long the script may run without calling into the
// robot before it is stopped. Independently of it, a script may call into
// the robot at most ScriptCallsPerCell times per grid cell.
func (s *ScriptStrategy) WithTimeout(timeout time.Duration) *ScriptStrategy {
	c := *s
	c.timeout = timeout
	return &c
}

func (s *ScriptStrategy) Clean(robot *Robot) {
	if err := s.run(robot); err != nil {
		log.Error("Script strategy stopped", "strategy", s.name, "robot", robot.Name, "error", err)
	}
}

func (s *ScriptStrategy) run(robot *Robot) error {
	luaState := lua.NewState()
	defer luaState.Close()

	// The watchdog restarts on every call into the robot, so slow
	// renderers do not count against the script.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watchdog := time.AfterFunc(s.timeout, cancel)
	defer watchdog.Stop()
	luaState.SetContext(ctx)

	bindRobot(luaState, robot, scriptCallBudget(robot.Grid()), func() { watchdog.Reset(s.timeout) })

	if err := luaState.DoString(s.source); err != nil {
		return fmt.Errorf("could not load script: %w", err)
	}

	cleanFn := luaState.GetGlobal("clean")
	if cleanFn.Type() != lua.LTFunction {
		return fmt.Errorf("script does not define clean(), got %s", cleanFn.Type().String())
	}

	if err := luaState.CallByParam(lua.P{Fn: cleanFn, NRet: 0, Protect: true}); err != nil {
		return fmt.Errorf("could not execute clean(): %w", err)
	}
	return nil
}

// scriptCallBudget caps the calls a script makes into the robot, so a
// script looping on the API still ends.
func scriptCallBudget(grid *Grid) int {
	return max(ScriptCallsPerCell*grid.Width()*grid.Height(), MinScriptCalls)
}

func bindRobot(luaState *lua.LState, robot *Robot, budget int, touch func()) {
	grid := robot.Grid()
	calls := 0
	bind := func(name string, fn lua.LGFunction) {
		luaState.SetGlobal(name, luaState.NewFunction(func(L *lua.LState) int {
			calls++
			if calls > budget {
				L.RaiseError("%s: robot call budget of %d exhausted", ErrScriptBudget, budget)
				return 0
			}
			defer touch()
			return fn(L)
		}))
	}

	bind("move", func(L *lua.LState) int {
		L.Push(lua.LBool(robot.TryMove(L.CheckInt(1), L.CheckInt(2))))
		return 1
	})
	bind("step", func(L *lua.LState) int {
		L.Push(lua.LBool(robot.TryMove(robot.X()+L.CheckInt(1), robot.Y()+L.CheckInt(2))))
		return 1
	})
	bind("clean_here", func(L *lua.LState) int {
		robot.CleanHere()
		return 0
	})
	bind("position", func(L *lua.LState) int {
		L.Push(lua.LNumber(robot.X()))
		L.Push(lua.LNumber(robot.Y()))
		return 2
	})
	bind("width", func(L *lua.LState) int {
		L.Push(lua.LNumber(grid.Width()))
		return 1
	})
	bind("height", func(L *lua.LState) int {
		L.Push(lua.LNumber(grid.Height()))
		return 1
	})
	bind("is_dirt", func(L *lua.LState) int {
		L.Push(lua.LBool(grid.IsDirt(L.CheckInt(1), L.CheckInt(2))))
		return 1
	})
	bind("is_obstacle", func(L *lua.LState) int {
		L.Push(lua.LBool(grid.IsObstacle(L.CheckInt(1), L.CheckInt(2))))
		return 1
	})
}
