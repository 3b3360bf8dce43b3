// Contains the traffic feed generator: the external collaborator that
// supplies passenger arrivals to the simulation.
package traffic

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"liftsim/src/types"
)

// Generate produces n passengers with destinations uniform in [1, floors]
// and building-arrival times uniform in [0, window), sorted ascending by
// arrival time as the simulation requires. Bad parameters fail before any
// passenger is created, like the other configuration errors.
func Generate(n, floors int, window types.Tick, rng *rand.Rand) ([]*types.Passenger, error) {
	if n < 0 {
		return nil, fmt.Errorf("traffic: passenger count must be non-negative, got %d", n)
	}
	if floors < 1 {
		return nil, fmt.Errorf("traffic: floor count must be at least 1, got %d", floors)
	}
	if window < 1 {
		return nil, fmt.Errorf("traffic: arrival window must be at least 1 tick, got %d", window)
	}

	passengers := make([]*types.Passenger, 0, n)
	for i := 0; i < n; i++ {
		passengers = append(passengers, &types.Passenger{
			ID:          uuid.NewString(),
			Destination: 1 + rng.Intn(floors),
			Start:       types.Tick(rng.Intn(int(window))),
		})
	}
	sort.SliceStable(passengers, func(i, j int) bool {
		return passengers[i].Start < passengers[j].Start
	})
	return passengers, nil
}
