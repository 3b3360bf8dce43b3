// Contains the simulation driver: the tick loop that feeds traffic into the
// waiting queue, throttles assignment, and advances every lift.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/tiendc/go-deepcopy"

	"liftsim/src/config"
	"liftsim/src/dispatch"
	"liftsim/src/lift"
	"liftsim/src/logger"
	"liftsim/src/types"
)

// Simulation owns the clock, the building's waiting queue, the lift bank and
// the completed-passenger sink. At any tick a passenger lives in exactly one
// of: the unarrived traffic, the waiting queue, one lift's queue, one lift's
// boarded set, or the arrivals list.
type Simulation struct {
	ID         int
	iterations int

	clock        types.Tick
	traffic      []*types.Passenger
	totalTraffic int
	trafficSet   bool
	q            []*types.Passenger
	strategy     dispatch.Strategy
	lifts        []*lift.Lift
	arrivals     []*types.Passenger
	rng          *rand.Rand
}

// New builds a simulation from a validated config. Configuration problems,
// including an unknown strategy name, surface here before any tick runs.
func New(id int, cfg config.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	strategy, err := dispatch.New(cfg.Strategy, rng)
	if err != nil {
		return nil, err
	}

	lifts := make([]*lift.Lift, cfg.Lifts)
	for i := range lifts {
		lifts[i] = lift.New(i, cfg)
	}

	return &Simulation{
		ID:         id,
		iterations: cfg.Iterations,
		strategy:   strategy,
		lifts:      lifts,
		rng:        rng,
	}, nil
}

// SetTraffic installs the traffic feed. The feed is deep copied so the
// simulation owns its passengers outright, and must be sorted ascending by
// building-arrival time.
func (s *Simulation) SetTraffic(traffic []*types.Passenger) error {
	for i := 1; i < len(traffic); i++ {
		if traffic[i].Start < traffic[i-1].Start {
			return fmt.Errorf("sim: traffic feed is not sorted by start time (entry %d)", i)
		}
	}

	var owned []*types.Passenger
	if err := deepcopy.Copy(&owned, traffic); err != nil {
		return fmt.Errorf("sim: copy traffic feed: %w", err)
	}
	s.traffic = owned
	s.totalTraffic = len(owned)
	s.trafficSet = true
	return nil
}

// Clock returns the current tick.
func (s *Simulation) Clock() types.Tick {
	return s.clock
}

// Lifts exposes the lift bank, primarily for inspection and tests.
func (s *Simulation) Lifts() []*lift.Lift {
	return s.lifts
}

// Arrivals returns the completed-passenger sink with the full timestamp
// trail for downstream latency analysis.
func (s *Simulation) Arrivals() []*types.Passenger {
	return s.arrivals
}

// Step advances the simulation one tick: due traffic moves into the waiting
// queue, a throttled batch of waiting passengers is assigned to lifts, every
// lift runs its own state transition, and the clock increments. Later stages
// within a tick observe the earlier stages' effects, so the order is fixed.
func (s *Simulation) Step() {
	// Move everyone who has arrived at the building into the waiting queue.
	for len(s.traffic) > 0 {
		next := s.traffic[0]
		if next.Start > s.clock {
			break
		}
		s.q = append(s.q, next)
		s.traffic = s.traffic[1:]
	}

	// The dispatch system can only route a handful of people per tick.
	batch := config.MinAssignBatch + s.rng.Intn(config.MaxAssignBatch-config.MinAssignBatch)
	for i := 0; i < batch; i++ {
		if len(s.q) == 0 {
			break
		}
		waiting := s.q[0]
		s.q = s.q[1:]
		s.strategy.Assign(s.lifts, waiting, s.clock)
	}

	// Advance every lift's state machine.
	for _, l := range s.lifts {
		l.RecordQueueLength()
		if l.Available() {
			l.CheckDeparture(s.clock)
		} else {
			s.arrivals = append(s.arrivals, l.CheckArrival(s.clock)...)
		}
	}

	s.clock++
}

// Run steps the simulation until the iteration cap is reached or all traffic
// has completed its trip, then reports the run summary.
func (s *Simulation) Run() (Summary, error) {
	if !s.trafficSet {
		return Summary{}, fmt.Errorf("sim: traffic has not been set")
	}

	for s.clock < types.Tick(s.iterations) {
		s.Step()

		if len(s.arrivals) == s.totalTraffic {
			logger.Get().Info().
				Int("sim", s.ID).
				Int("ticks", int(s.clock)).
				Msg("All traffic has arrived, ending simulation early")
			break
		}
	}

	return s.summary(), nil
}

func (s *Simulation) summary() Summary {
	return Summary{
		Strategy:     s.strategy.Name(),
		Ticks:        int(s.clock),
		IterationCap: s.iterations,
		Arrived:      len(s.arrivals),
		TotalTraffic: s.totalTraffic,
		arrivals:     s.arrivals,
	}
}
