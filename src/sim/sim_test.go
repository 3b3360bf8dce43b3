package sim

import (
	"math"
	"math/rand"
	"testing"

	"liftsim/src/config"
	"liftsim/src/traffic"
	"liftsim/src/types"
)

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.CapacityThreshold = 1.5
	if _, err := New(0, cfg); err == nil {
		t.Errorf("out-of-range capacity threshold accepted")
	}

	cfg = config.Default()
	cfg.Strategy = "clairvoyant"
	if _, err := New(0, cfg); err == nil {
		t.Errorf("unknown strategy accepted at setup")
	}
}

func TestRunWithoutTrafficFails(t *testing.T) {
	s, err := New(0, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Run(); err == nil {
		t.Errorf("run without traffic did not fail")
	}
}

func TestSetTrafficRejectsUnsortedFeed(t *testing.T) {
	s, err := New(0, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	feed := []*types.Passenger{
		{Destination: 3, Start: 5},
		{Destination: 2, Start: 1},
	}
	if err := s.SetTraffic(feed); err == nil {
		t.Errorf("unsorted traffic feed accepted")
	}
}

func TestSetTrafficCopiesFeed(t *testing.T) {
	s, err := New(0, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	feed := []*types.Passenger{{Destination: 3, Start: 0}}
	if err := s.SetTraffic(feed); err != nil {
		t.Fatal(err)
	}
	if s.traffic[0] == feed[0] {
		t.Errorf("simulation shares passenger records with the caller's feed")
	}
}

func TestEndToEndSinglePassenger(t *testing.T) {
	cfg := config.Default()
	cfg.Strategy = "greedy"
	cfg.Lifts = 1
	cfg.Capacity = 1
	cfg.CapacityThreshold = 1.0
	cfg.MaxVelocity = 5
	cfg.Acceleration = 1
	cfg.DoorTime = 0
	cfg.FloorHeight = 4
	cfg.Iterations = 100

	s, err := New(0, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetTraffic([]*types.Passenger{{ID: "p0", Destination: 5, Start: 0}}); err != nil {
		t.Fatal(err)
	}

	summary, err := s.Run()
	if err != nil {
		t.Fatal(err)
	}
	if summary.Arrived != 1 {
		t.Fatalf("arrived = %d, expected 1", summary.Arrived)
	}

	p := s.Arrivals()[0]
	if p.LobbyTime == nil || *p.LobbyTime != 0 {
		t.Errorf("passenger not queued on tick 0")
	}
	if p.BoardTime == nil || *p.BoardTime != 0 {
		t.Errorf("passenger not boarded on tick 0")
	}
	if p.DepartTime == nil || *p.DepartTime != 1 {
		t.Errorf("lift did not depart on tick 1")
	}

	// Round trip to floor 5 and back: both legs are triangular profiles.
	rtt := 2 * 2 * math.Sqrt(5*4.0/1.0)
	expectedArrival := types.Tick(1 + int(math.Ceil(rtt)))
	if p.ArriveTime == nil || *p.ArriveTime != expectedArrival {
		t.Errorf("arrival tick = %v, expected %d", p.ArriveTime, expectedArrival)
	}
	if s.lifts[0].ArrivalTime != expectedArrival {
		t.Errorf("lift schedule = %d, expected %d", s.lifts[0].ArrivalTime, expectedArrival)
	}
}

func TestConservationAcrossSteps(t *testing.T) {
	cfg := config.Default()
	cfg.Strategy = "nearest"
	cfg.Seed = 7

	s, err := New(0, cfg)
	if err != nil {
		t.Fatal(err)
	}
	feed, err := traffic.Generate(200, 15, 120, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetTraffic(feed); err != nil {
		t.Fatal(err)
	}

	for tick := 0; tick < 150; tick++ {
		s.Step()

		seen := make(map[*types.Passenger]int)
		for _, p := range s.traffic {
			seen[p]++
		}
		for _, p := range s.q {
			seen[p]++
		}
		for _, l := range s.lifts {
			for _, p := range l.Queued() {
				seen[p]++
			}
			for _, p := range l.Boarded() {
				seen[p]++
			}
		}
		for _, p := range s.arrivals {
			seen[p]++
		}

		if len(seen) != s.totalTraffic {
			t.Fatalf("tick %d: %d passengers tracked, expected %d", tick, len(seen), s.totalTraffic)
		}
		for p, n := range seen {
			if n != 1 {
				t.Fatalf("tick %d: passenger %s held in %d places", tick, p.ID, n)
			}
		}
		if len(s.arrivals) > s.totalTraffic {
			t.Fatalf("tick %d: more arrivals than traffic", tick)
		}
	}
}

func TestRunIsDeterministicForSeed(t *testing.T) {
	run := func() Summary {
		cfg := config.Default()
		cfg.Strategy = "random"
		cfg.Seed = 99
		cfg.Iterations = 600

		s, err := New(0, cfg)
		if err != nil {
			t.Fatal(err)
		}
		feed, err := traffic.Generate(100, 12, 200, rand.New(rand.NewSource(3)))
		if err != nil {
			t.Fatal(err)
		}
		if err := s.SetTraffic(feed); err != nil {
			t.Fatal(err)
		}
		summary, err := s.Run()
		if err != nil {
			t.Fatal(err)
		}
		return summary
	}

	a, b := run(), run()
	if a.Ticks != b.Ticks || a.Arrived != b.Arrived {
		t.Errorf("identical seeds diverged: %+v vs %+v", a, b)
	}
}

func TestSummaryCounts(t *testing.T) {
	r := Summary{Strategy: "greedy", Ticks: 50, IterationCap: 100, Arrived: 8, TotalTraffic: 10}
	if r.Shortfall() != 2 {
		t.Errorf("shortfall = %d, expected 2", r.Shortfall())
	}
	if r.PercentProcessed() != 80 {
		t.Errorf("percent processed = %v, expected 80", r.PercentProcessed())
	}
	if r.Render() == "" {
		t.Errorf("empty summary rendering")
	}
}
