package elev

import (
	"log/slog"

	"liftsim/src/types"
)

// Lift is one car. It owns its request sets; nothing else holds a reference
// to them. Lift is not safe for concurrent use.
type Lift struct {
	Floor     int
	NumFloors int
	Capacity  int
	Pickups   map[int]struct{} // floors with a waiter this lift committed to
	Dropoffs  map[int]int      // destination floor -> passengers aboard going there
	Motion    Motion
}

func NewLift(numFloors, capacity int) *Lift {
	return &Lift{
		NumFloors: numFloors,
		Capacity:  capacity,
		Pickups:   make(map[int]struct{}),
		Dropoffs:  make(map[int]int),
		Motion:    Idle,
	}
}

func (l *Lift) Direction() types.Direction {
	return l.Motion.Direction()
}

// TimeToReach returns the estimated ticks until the lift reaches floor for a
// waiter heading dir. ok is false if the lift cannot serve that call now.
func (l *Lift) TimeToReach(floor int, dir types.Direction) (ticks int, ok bool) {
	return l.Motion.timeToReach(l, floor, dir)
}

// OccupancyAt estimates the passengers aboard on arrival at floor.
func (l *Lift) OccupancyAt(floor int, dir types.Direction) int {
	return l.Motion.occupancyAt(l, floor, dir)
}

// AddPickup commits the lift to stop at floor for a waiter heading dir. An
// idle lift leaves Idle immediately.
func (l *Lift) AddPickup(floor int, dir types.Direction) {
	if l.Motion == Idle {
		switch {
		case floor == l.Floor && dir == types.Down:
			l.setMotion(MovingDown)
		case floor == l.Floor:
			l.setMotion(MovingUp)
		case floor > l.Floor && dir == types.Up:
			l.setMotion(MovingUp)
		case floor > l.Floor:
			l.setMotion(MovingUpToPickFirst)
		case dir == types.Down:
			l.setMotion(MovingDown)
		default:
			l.setMotion(MovingDownToPickFirst)
		}
	}
	l.Pickups[floor] = struct{}{}
}

// AddDropoff registers a passenger aboard who wants off at floor. A car call
// for the floor the lift stands on is served on the spot.
func (l *Lift) AddDropoff(floor int) {
	if floor == l.Floor {
		slog.Debug("Car call for current floor served immediately", "floor", floor)
		return
	}
	if l.Motion == Idle {
		if floor > l.Floor {
			l.setMotion(MovingUp)
		} else {
			l.setMotion(MovingDown)
		}
	}
	l.Dropoffs[floor]++
}

// Tick advances the lift one time unit. A lift left without requests is
// forced Idle whatever its motion concluded.
func (l *Lift) Tick() {
	l.Motion.tick(l)
	if !l.HasRequests() && l.Motion != Idle {
		l.setMotion(Idle)
	}
}

// Onboard is the number of passengers currently in the car.
func (l *Lift) Onboard() int {
	return l.dropoffsWhere(func(int) bool { return true })
}

func (l *Lift) HasRequests() bool {
	return len(l.Pickups) > 0 || len(l.Dropoffs) > 0
}

func (l *Lift) Status() types.LiftStatus {
	return types.LiftStatus{
		Floor:   l.Floor,
		Dir:     l.Direction(),
		Onboard: l.Onboard(),
	}
}

func (l *Lift) setMotion(m Motion) {
	if l.Motion == m {
		return
	}
	slog.Debug("Motion changed", "floor", l.Floor, "from", l.Motion, "to", m)
	l.Motion = m
}

// highestPickup returns -1, false when there are no pickups.
func (l *Lift) highestPickup() (int, bool) {
	top, found := -1, false
	for floor := range l.Pickups {
		if !found || floor > top {
			top, found = floor, true
		}
	}
	return top, found
}

// lowestPickup returns -1, false when there are no pickups.
func (l *Lift) lowestPickup() (int, bool) {
	bot, found := -1, false
	for floor := range l.Pickups {
		if !found || floor < bot {
			bot, found = floor, true
		}
	}
	return bot, found
}

func (l *Lift) dropoffsWhere(match func(dest int) bool) (count int) {
	for dest, n := range l.Dropoffs {
		if match(dest) {
			count += n
		}
	}
	return count
}
