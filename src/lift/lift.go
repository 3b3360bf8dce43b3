// Contains the per-unit lift state machine: queueing, boarding, the three
// departure triggers, round-trip travel and arrival back at the lobby.
package lift

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"liftsim/src/config"
	"liftsim/src/logger"
	"liftsim/src/types"
)

// LocSample is one (time, floor) point of a lift's trajectory.
type LocSample struct {
	Time  float64
	Floor int
}

// Lift is a single unit of the bank. It is either available at the lobby,
// boarding from its own FIFO queue, or away on a round trip.
type Lift struct {
	ID                int
	Capacity          int
	MaxVelocity       float64
	Acceleration      float64
	DoorTime          float64
	FloorHeight       float64
	CapacityThreshold float64

	smv float64 // distance needed to reach max velocity
	tmv float64 // time needed to reach max velocity

	available   bool
	ArrivalTime types.Tick
	RTT         float64

	queue   []*types.Passenger
	boarded []*types.Passenger

	LocHistory   []LocSample
	QueueHistory []int
}

// New builds an available lift parked at the lobby.
func New(id int, cfg config.Config) *Lift {
	return &Lift{
		ID:                id,
		Capacity:          cfg.Capacity,
		MaxVelocity:       cfg.MaxVelocity,
		Acceleration:      cfg.Acceleration,
		DoorTime:          cfg.DoorTime,
		FloorHeight:       cfg.FloorHeight,
		CapacityThreshold: cfg.CapacityThreshold,
		smv:               cfg.MaxVelocity * cfg.MaxVelocity / (2 * cfg.Acceleration),
		tmv:               cfg.MaxVelocity / cfg.Acceleration,
		available:         true,
		LocHistory:        []LocSample{{0, 0}},
	}
}

// Available reports whether the lift is at the lobby.
func (l *Lift) Available() bool {
	return l.available
}

// QueueLength returns the number of passengers waiting at the lift.
func (l *Lift) QueueLength() int {
	return len(l.queue)
}

// BoardedCount returns the number of passengers inside the lift.
func (l *Lift) BoardedCount() int {
	return len(l.boarded)
}

// Queued returns the passengers waiting at the lift, in FIFO order.
func (l *Lift) Queued() []*types.Passenger {
	return l.queue
}

// Boarded returns the passengers inside the lift.
func (l *Lift) Boarded() []*types.Passenger {
	return l.boarded
}

// QueuePassenger appends a passenger to the lift's FIFO queue. This always
// succeeds regardless of availability; the passenger is stamped with the
// lobby-entry time and the owning lift.
func (l *Lift) QueuePassenger(p *types.Passenger, clock types.Tick) {
	p.MarkQueued(clock, l.ID)
	l.queue = append(l.queue, p)
	if len(l.queue) > config.QueueAlertLength {
		logger.Get().Warn().
			Int("lift", l.ID).
			Int("queueLength", len(l.queue)).
			Msg("Lift queue is building up")
	}
}

// AddPassenger boards a passenger if the lift is at the lobby with room.
func (l *Lift) AddPassenger(p *types.Passenger) bool {
	if len(l.boarded) < l.Capacity && l.available {
		l.boarded = append(l.boarded, p)
		logger.Get().Debug().
			Int("lift", l.ID).
			Int("destination", p.Destination).
			Msg("Passenger boarded")
		return true
	}
	return false
}

// CheckDeparture runs one tick of the boarding/departure decision for an
// available lift. At most one passenger is admitted per tick. Three triggers
// cause departure, checked in priority order: the lift is full and people
// are still queueing, the boarded count has met the capacity threshold, or
// the longest-boarded passenger has been held past the starvation limit.
func (l *Lift) CheckDeparture(clock types.Tick) {
	if len(l.queue) > 0 {
		if len(l.boarded) < l.Capacity {
			p := l.queue[0]
			l.queue = l.queue[1:]
			p.MarkBoarded(clock)
			l.AddPassenger(p)
			return
		}
		l.Depart(clock)
		return
	}

	if len(l.boarded) == 0 {
		return
	}

	if float64(len(l.boarded)) >= l.CapacityThreshold*float64(l.Capacity) {
		l.Depart(clock)
		return
	}

	oldest := lo.MinBy(l.boarded, func(a, b *types.Passenger) bool {
		return *a.BoardTime < *b.BoardTime
	})
	if clock-*oldest.BoardTime > config.StarvationLimit {
		l.Depart(clock)
	}
}

// Depart takes the lift out of the lobby. Every boarded passenger gets the
// departure time, the round trip is computed, and the return is scheduled.
func (l *Lift) Depart(clock types.Tick) {
	l.available = false
	for _, p := range l.boarded {
		p.MarkDeparted(clock)
	}
	l.RTT = l.updateTripTimes(clock)
	l.ArrivalTime = clock + types.Tick(math.Ceil(l.RTT))
	logger.Get().Debug().
		Int("lift", l.ID).
		Int("passengers", len(l.boarded)).
		Float64("rtt", l.RTT).
		Int("eta", int(l.ArrivalTime)).
		Msg("Lift departing")
}

// CheckArrival completes the round trip on the tick the lift is scheduled
// back at the lobby, returning the batch of completed passengers. On any
// other tick it returns nothing. The clock advances by exactly one tick per
// call, so the equality fires exactly once per trip.
func (l *Lift) CheckArrival(now types.Tick) []*types.Passenger {
	if now != l.ArrivalTime {
		return nil
	}
	for _, p := range l.boarded {
		p.MarkArrived(now)
	}
	completed := l.boarded
	l.boarded = nil
	l.available = true
	logger.Get().Debug().
		Int("lift", l.ID).
		Int("completed", len(completed)).
		Msg("Lift arrived back at lobby")
	return completed
}

// AvgFloor estimates the average destination of the group the next added
// passenger would travel with. With fewer passengers than capacity that is
// the mean over everyone boarded or queued. Beyond capacity only the tail
// that does not fill a complete load counts; an exact multiple of capacity
// returns 0, which callers treat as "no emerging group", not a floor.
func (l *Lift) AvgFloor() float64 {
	batch := append(append([]*types.Passenger{}, l.boarded...), l.queue...)
	total := len(batch)

	if total == 0 {
		return 0
	}

	mean := func(ps []*types.Passenger) float64 {
		sum := lo.SumBy(ps, func(p *types.Passenger) float64 {
			return float64(p.Destination)
		})
		return sum / float64(len(ps))
	}

	if total < l.Capacity {
		return mean(batch)
	}

	rem := total % l.Capacity
	if rem == 0 {
		return 0
	}
	return mean(batch[total-rem:])
}

// RecordQueueLength samples the queue length into the lift's history.
func (l *Lift) RecordQueueLength() {
	l.QueueHistory = append(l.QueueHistory, len(l.queue))
}

// updateTripTimes sorts the boarded passengers by destination and simulates
// one continuous trip from the lobby through every stop and back, stamping
// each passenger's travel time and sampling the trajectory. Returns the
// round-trip time in seconds.
func (l *Lift) updateTripTimes(clock types.Tick) float64 {
	sort.SliceStable(l.boarded, func(i, j int) bool {
		return l.boarded[i].Destination < l.boarded[j].Destination
	})

	elapsed := 0.0
	prev := 0 // trips start at the lobby

	l.LocHistory = append(l.LocHistory, LocSample{float64(clock), 0})

	for _, p := range l.boarded {
		elapsed += l.TravelTime(p.Destination - prev)
		p.MarkTravelled(elapsed)
		l.LocHistory = append(l.LocHistory, LocSample{float64(clock) + elapsed, p.Destination})
		prev = p.Destination
	}

	// return to the lobby
	elapsed += l.TravelTime(prev)
	l.LocHistory = append(l.LocHistory, LocSample{float64(clock) + elapsed, 0})

	return elapsed
}
