package game

import (
	"sync"
)

// Fleet is a group of robots sharing one grid.
type Fleet struct {
	Robots []*Robot
}

func NewFleet(robots ...*Robot) *Fleet {
	return &Fleet{Robots: robots}
}

func (f *Fleet) Add(robot *Robot) {
	f.Robots = append(f.Robots, robot)
}

// RunConcurrently executes each robot in its own goroutine and waits for
// all of them. Cell updates are serialised by the grid.
func (f *Fleet) RunConcurrently() {
	var wg sync.WaitGroup
	for _, robot := range f.Robots {
		if robot == nil {
			continue
		}

		wg.Add(1)
		go func(r *Robot) {
			defer wg.Done()
			r.Execute()
		}(robot)
	}
	wg.Wait()
}

// Cleaned sums the cells cleaned by every robot.
func (f *Fleet) Cleaned() int {
	total := 0
	for _, robot := range f.Robots {
		if robot != nil {
			total += robot.Stats().Cleaned
		}
	}
	return total
}
