package game

// Direction is a unit step on the grid.
type Direction struct {
	Dx, Dy int
}

// Directions is the rotation order used by the traversal strategies:
// right, down, left, up.
var Directions = []Direction{
	{Dx: 1, Dy: 0},
	{Dx: 0, Dy: 1},
	{Dx: -1, Dy: 0},
	{Dx: 0, Dy: -1},
}

var directionNames = map[Direction]string{
	{Dx: 1, Dy: 0}:  "right",
	{Dx: 0, Dy: 1}:  "down",
	{Dx: -1, Dy: 0}: "left",
	{Dx: 0, Dy: -1}: "up",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "none"
}

// Point is a grid coordinate.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (p Point) Step(d Direction) Point {
	return Point{X: p.X + d.Dx, Y: p.Y + d.Dy}
}
