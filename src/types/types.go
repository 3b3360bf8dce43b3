// Contains the passenger record and simulated clock types shared by all subsystems.
package types

// Tick is one discrete unit of simulated time.
type Tick int

// Passenger is a single trip request through the system. Destination and
// Start are fixed when the traffic is authored; the remaining fields are
// stamped exactly once each as the passenger moves through the pipeline
// (queue -> board -> depart -> arrive), so nil means "not reached yet".
type Passenger struct {
	ID          string
	Destination int
	Start       Tick

	LobbyTime  *Tick
	LiftID     *int
	BoardTime  *Tick
	DepartTime *Tick
	TravelTime *float64
	ArriveTime *Tick
}

// MarkQueued stamps the lobby-entry time and the owning lift.
func (p *Passenger) MarkQueued(clock Tick, liftID int) {
	t := clock
	id := liftID
	p.LobbyTime = &t
	p.LiftID = &id
}

// MarkBoarded stamps the time the passenger entered the lift.
func (p *Passenger) MarkBoarded(clock Tick) {
	t := clock
	p.BoardTime = &t
}

// MarkDeparted stamps the time the passenger's lift left the lobby.
func (p *Passenger) MarkDeparted(clock Tick) {
	t := clock
	p.DepartTime = &t
}

// MarkTravelled stamps the in-transit travel time up to the passenger's stop.
func (p *Passenger) MarkTravelled(seconds float64) {
	s := seconds
	p.TravelTime = &s
}

// MarkArrived stamps trip completion.
func (p *Passenger) MarkArrived(clock Tick) {
	t := clock
	p.ArriveTime = &t
}

// Completed reports whether the trip finished.
func (p *Passenger) Completed() bool {
	return p.ArriveTime != nil
}

// LobbyWait returns the ticks spent between entering a lift queue and
// boarding. Only valid once the passenger has boarded.
func (p *Passenger) LobbyWait() Tick {
	return *p.BoardTime - *p.LobbyTime
}
