package game

// Spiral walks an expanding square: segments of 1,1,2,2,3,3,... steps,
// turning right, down, left, up. It runs width+height segments whether
// or not the grid is covered, and keeps stepping into an edge until the
// segment is used up.
type Spiral struct{}

func (Spiral) Name() string { return "spiral" }

func (Spiral) Clean(robot *Robot) {
	robot.CleanHere()

	grid := robot.Grid()
	direction := 0
	segmentLength := 1
	segmentsPassed := 0

	for i := 0; i < grid.Width()+grid.Height(); i++ {
		for j := 0; j < segmentLength; j++ {
			robot.Step(Directions[direction])
			robot.CleanHere()
		}
		direction = (direction + 1) % len(Directions)
		segmentsPassed++

		if segmentsPassed%2 == 0 {
			segmentLength++
		}
	}
}
