package lift

import (
	"fmt"
	"math"
)

// TravelTime returns the seconds taken to travel n floors with a trapezoidal
// or triangular velocity profile, including door close at the origin and door
// open at the destination. The two profile branches are exhaustive for any
// non-negative distance.
func (l *Lift) TravelTime(n int) float64 {
	dist := l.FloorHeight * float64(n)
	if dist < 0 {
		panic(fmt.Sprintf("lift %d: negative travel distance %v", l.ID, dist))
	}

	// Distance is sufficient to reach max velocity: trapezoidal profile.
	if dist > 2*l.smv {
		return 2*l.tmv + (dist-2*l.smv)/l.MaxVelocity + 2*l.DoorTime
	}

	// Cruise speed never reached (includes dist == 0): triangular profile.
	return 2*l.DoorTime + 2*math.Sqrt(dist/l.Acceleration)
}

// CompTravel returns the cumulative elapsed time at each stop of an ordered
// floor sequence. The first entry is the starting floor, so its time is 0.
// Floors must already be in visit order; they are not reordered here.
func (l *Lift) CompTravel(floors []int) []float64 {
	elapsed := 0.0
	times := []float64{elapsed}
	prev := floors[0]
	for _, n := range floors[1:] {
		elapsed += l.TravelTime(n - prev)
		times = append(times, elapsed)
		prev = n
	}
	return times
}
