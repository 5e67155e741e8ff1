package elev

import (
	"fmt"

	"liftsim/src/types"
)

// Motion is the movement state of a lift. Every operation switches over all
// five variants; an unknown value is a programming error.
type Motion int

const (
	Idle Motion = iota
	MovingUp
	MovingDown
	// MovingUpToPickFirst rises to the highest pickup, whose waiter wants to go down.
	MovingUpToPickFirst
	// MovingDownToPickFirst descends to the lowest pickup, whose waiter wants to go up.
	MovingDownToPickFirst
)

func (m Motion) String() string {
	switch m {
	case Idle:
		return "Idle"
	case MovingUp:
		return "MovingUp"
	case MovingDown:
		return "MovingDown"
	case MovingUpToPickFirst:
		return "MovingUpToPickFirst"
	case MovingDownToPickFirst:
		return "MovingDownToPickFirst"
	}
	return fmt.Sprintf("Motion(%d)", int(m))
}

func (m Motion) Direction() types.Direction {
	switch m {
	case Idle:
		return types.Idle
	case MovingUp, MovingUpToPickFirst:
		return types.Up
	case MovingDown, MovingDownToPickFirst:
		return types.Down
	}
	panic(fmt.Sprintf("elev: unknown motion %d", int(m)))
}

// timeToReach estimates the ticks until the lift picks up a waiter at floor
// heading dir. ok is false when this motion cannot serve the call.
func (m Motion) timeToReach(l *Lift, floor int, dir types.Direction) (ticks int, ok bool) {
	switch m {
	case Idle:
		return abs(floor - l.Floor), true
	case MovingUp:
		if dir != types.Up || floor < l.Floor {
			return 0, false
		}
		return floor - l.Floor, true
	case MovingDown:
		if dir != types.Down || floor > l.Floor {
			return 0, false
		}
		return l.Floor - floor, true
	case MovingUpToPickFirst:
		top, found := l.highestPickup()
		if !found || dir != types.Down || floor > top {
			return 0, false
		}
		return (top - l.Floor) + (top - floor), true
	case MovingDownToPickFirst:
		bot, found := l.lowestPickup()
		if !found {
			bot = floor
		}
		if dir != types.Up || floor < bot {
			return 0, false
		}
		return (l.Floor - bot) + (floor - bot), true
	}
	panic(fmt.Sprintf("elev: unknown motion %d", int(m)))
}

// occupancyAt estimates how many passengers are still aboard when the lift
// reaches floor. The pick-first motions report 0 even when carrying passengers.
func (m Motion) occupancyAt(l *Lift, floor int, dir types.Direction) int {
	switch m {
	case Idle, MovingUpToPickFirst, MovingDownToPickFirst:
		return 0
	case MovingUp:
		if dir != types.Up {
			return 0
		}
		return l.dropoffsWhere(func(dest int) bool { return dest > floor })
	case MovingDown:
		if dir != types.Down {
			return 0
		}
		return l.dropoffsWhere(func(dest int) bool { return dest < floor })
	}
	panic(fmt.Sprintf("elev: unknown motion %d", int(m)))
}

// tick advances the lift one floor in this motion's direction. It never moves
// the car outside the building: a straight motion with work left at the edge
// reverses instead.
func (m Motion) tick(l *Lift) {
	switch m {
	case Idle:
	case MovingUp:
		delete(l.Pickups, l.Floor)
		if !l.HasRequests() {
			return
		}
		if l.Floor >= l.NumFloors-1 {
			l.setMotion(MovingDown)
			return
		}
		l.Floor++
		delete(l.Dropoffs, l.Floor)
	case MovingDown:
		delete(l.Pickups, l.Floor)
		if !l.HasRequests() {
			return
		}
		if l.Floor <= 0 {
			l.setMotion(MovingUp)
			return
		}
		l.Floor--
		delete(l.Dropoffs, l.Floor)
	case MovingUpToPickFirst:
		top, found := l.highestPickup()
		if (found && l.Floor >= top) || l.Floor >= l.NumFloors-1 {
			l.setMotion(MovingDown)
			return
		}
		l.Floor++
		if l.Floor == top {
			l.setMotion(MovingDown)
		}
	case MovingDownToPickFirst:
		bot, found := l.lowestPickup()
		if (found && l.Floor <= bot) || l.Floor <= 0 {
			l.setMotion(MovingUp)
			return
		}
		l.Floor--
		if !found || l.Floor == bot {
			l.setMotion(MovingUp)
		}
	default:
		panic(fmt.Sprintf("elev: unknown motion %d", int(m)))
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
