package game

// PerimeterHugger walks right, down, left and up, each leg until the
// grid edge stops it, cleaning after every step. It starts from wherever
// the robot stands and does not loop.
type PerimeterHugger struct{}

func (PerimeterHugger) Name() string { return "perimeter" }

func (PerimeterHugger) Clean(robot *Robot) {
	for _, dir := range Directions {
		for robot.Step(dir) {
			robot.CleanHere()
		}
	}
}
