package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Strategy is a stateless traversal algorithm driving a robot.
type Strategy interface {
	Name() string
	Clean(robot *Robot)
}

var ErrUnknownStrategy = errors.New("unknown strategy")

var builtinStrategies = map[string]Strategy{
	"perimeter": PerimeterHugger{},
	"spiral":    Spiral{},
}

var strategyAliases = map[string]string{
	"perimeter-hugger": "perimeter",
	"perimeterhugger":  "perimeter",
	"hugger":           "perimeter",
}

// StrategyByName returns one of the built-in strategies.
func StrategyByName(name string) (Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := strategyAliases[key]; ok {
		key = alias
	}
	strategy, ok := builtinStrategies[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}
	return strategy, nil
}

// StrategyNames lists the built-in strategy names, sorted.
func StrategyNames() []string {
	names := make([]string, 0, len(builtinStrategies))
	for name := range builtinStrategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
