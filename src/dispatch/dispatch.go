// Contains the assignment strategies that route a waiting passenger onto one
// of the lifts. Strategies are picked by name once at configuration time.
package dispatch

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"sort"

	"github.com/samber/lo"

	"liftsim/src/lift"
	"liftsim/src/types"
)

// groupingRange is the widest acceptable distance between a passenger's
// destination and a lift's average floor before the grouping strategy
// prefers to start a fresh lift instead.
const groupingRange = 5

// Strategy routes one waiting passenger onto a lift queue.
type Strategy interface {
	Name() string
	Assign(lifts []*lift.Lift, p *types.Passenger, clock types.Tick)
}

// New returns the strategy registered under name. Unknown names are a
// configuration error and fail before the run starts.
func New(name string, rng *rand.Rand) (Strategy, error) {
	switch name {
	case "greedy":
		return Greedy{}, nil
	case "nearest":
		return Nearest{}, nil
	case "grouping":
		return Grouping{}, nil
	case "random":
		return &Random{rng: rng}, nil
	}
	return nil, fmt.Errorf("dispatch: assignment strategy %q is not recognised", name)
}

// Greedy queues the passenger on the lift with the shortest queue. Ties go
// to the lift constructed first.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) Assign(lifts []*lift.Lift, p *types.Passenger, clock types.Tick) {
	byQueue := slices.Clone(lifts)
	sort.SliceStable(byQueue, func(i, j int) bool {
		return byQueue[i].QueueLength() < byQueue[j].QueueLength()
	})
	byQueue[0].QueuePassenger(p, clock)
}

// Nearest queues the passenger on the lift scheduled back at the lobby
// soonest, skipping lifts whose queue has already reached their capacity.
// If every queue is that long it falls back to greedy.
type Nearest struct{}

func (Nearest) Name() string { return "nearest" }

func (Nearest) Assign(lifts []*lift.Lift, p *types.Passenger, clock types.Tick) {
	byProximity := slices.Clone(lifts)
	sort.SliceStable(byProximity, func(i, j int) bool {
		return byProximity[i].ArrivalTime < byProximity[j].ArrivalTime
	})
	for _, l := range byProximity {
		if l.QueueLength() < l.Capacity {
			l.QueuePassenger(p, clock)
			return
		}
	}
	Greedy{}.Assign(lifts, p, clock)
}

// Grouping queues the passenger with the lift whose emerging group has the
// closest average destination, unless that group is too far off and an
// empty lift is free to start a new group.
type Grouping struct{}

func (Grouping) Name() string { return "grouping" }

func (Grouping) Assign(lifts []*lift.Lift, p *types.Passenger, clock types.Tick) {
	empty := lo.Filter(lifts, func(l *lift.Lift, _ int) bool {
		return l.AvgFloor() == 0
	})

	byAffinity := slices.Clone(lifts)
	sort.SliceStable(byAffinity, func(i, j int) bool {
		di := math.Abs(byAffinity[i].AvgFloor() - float64(p.Destination))
		dj := math.Abs(byAffinity[j].AvgFloor() - float64(p.Destination))
		return di < dj
	})

	if len(empty) > 0 {
		if byAffinity[0].AvgFloor() < groupingRange {
			byAffinity[0].QueuePassenger(p, clock)
		} else {
			// Keep a loner from hijacking an unrelated group.
			empty[0].QueuePassenger(p, clock)
		}
		return
	}

	// No empty lift to fall back on, take the best match.
	byAffinity[0].QueuePassenger(p, clock)
}

// Random queues the passenger on a uniformly chosen lift.
type Random struct {
	rng *rand.Rand
}

func (*Random) Name() string { return "random" }

func (r *Random) Assign(lifts []*lift.Lift, p *types.Passenger, clock types.Tick) {
	lifts[r.rng.Intn(len(lifts))].QueuePassenger(p, clock)
}
