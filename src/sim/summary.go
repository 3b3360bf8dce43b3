package sim

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"liftsim/src/types"
)

// Summary is the implementer-facing report of one finished run.
type Summary struct {
	Strategy     string
	Ticks        int
	IterationCap int
	Arrived      int
	TotalTraffic int

	arrivals []*types.Passenger
}

// Shortfall returns how many passengers never completed their trip.
func (r Summary) Shortfall() int {
	return r.TotalTraffic - r.Arrived
}

// PercentProcessed returns the share of traffic that completed, in percent.
func (r Summary) PercentProcessed() float64 {
	if r.TotalTraffic == 0 {
		return 0
	}
	return float64(r.Arrived) / float64(r.TotalTraffic) * 100
}

// MeanLobbyWait returns the mean ticks completed passengers spent between
// joining a lift queue and boarding.
func (r Summary) MeanLobbyWait() float64 {
	if len(r.arrivals) == 0 {
		return 0
	}
	total := lo.SumBy(r.arrivals, func(p *types.Passenger) float64 {
		return float64(p.LobbyWait())
	})
	return total / float64(len(r.arrivals))
}

// MeanTravelTime returns the mean in-transit seconds of completed passengers.
func (r Summary) MeanTravelTime() float64 {
	if len(r.arrivals) == 0 {
		return 0
	}
	total := lo.SumBy(r.arrivals, func(p *types.Passenger) float64 {
		return *p.TravelTime
	})
	return total / float64(len(r.arrivals))
}

// Render draws the terminal report box.
func (r Summary) Render() string {
	lines := []string{
		"SIMULATION COMPLETE",
		fmt.Sprintf("Assignment function:      %s", r.Strategy),
		fmt.Sprintf("Duration of simulation:   %d", r.Ticks),
		fmt.Sprintf("Maximum duration allowed: %d", r.IterationCap),
		fmt.Sprintf("Total passengers arrived: %d", r.Arrived),
		fmt.Sprintf("Total traffic:            %d (+%d)", r.TotalTraffic, r.Shortfall()),
		fmt.Sprintf("Percentage processed:     %2.0f%%", r.PercentProcessed()),
		fmt.Sprintf("Mean lobby wait:          %.1f ticks", r.MeanLobbyWait()),
		fmt.Sprintf("Mean travel time:         %.1f s", r.MeanTravelTime()),
	}

	width := len(lo.MaxBy(lines, func(a, b string) bool {
		return len(a) > len(b)
	}))

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", width+2) + "┐\n")
	for _, line := range lines {
		b.WriteString("│ " + line + strings.Repeat(" ", width-len(line)) + " │\n")
	}
	b.WriteString("└" + strings.Repeat("─", width+2) + "┘")
	return b.String()
}
