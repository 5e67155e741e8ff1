package types

import "fmt"

type Direction int

const (
	Down Direction = -1
	Idle Direction = 0
	Up   Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "U"
	case Down:
		return "D"
	case Idle:
		return "I"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection parses the direction of a hall call. Only Up and Down are
// valid; a waiter cannot ask for Idle.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "U", "u", "up":
		return Up, nil
	case "D", "d", "down":
		return Down, nil
	}
	return Idle, fmt.Errorf("parse direction %q: %w", s, ErrInvalidDirection)
}

// HallCall is a request made from a floor, carrying only the desired direction.
type HallCall struct {
	Floor int
	Dir   Direction
}

// LiftStatus is the externally visible state of one lift.
type LiftStatus struct {
	Floor   int
	Dir     Direction
	Onboard int
}

func (s LiftStatus) String() string {
	return fmt.Sprintf("%d-%s-%d", s.Floor, s.Dir, s.Onboard)
}

// NoLift is returned as lift id together with ErrNoLiftAvailable.
const NoLift = -1
