package elev

import (
	"fmt"

	"liftsim/src/types"

	"github.com/tiendc/go-deepcopy"
)

// Simulate registers call on a deep copy of l and ticks the copy until it
// stands on the call floor heading the caller's way (or idle there).
// It returns the tick count, or false if limit ticks were not enough.
// l itself is left untouched.
func Simulate(l *Lift, call types.HallCall, limit int) (int, bool, error) {
	simLift := new(Lift)
	if err := deepcopy.Copy(simLift, l); err != nil {
		return 0, false, fmt.Errorf("copy lift: %w", err)
	}
	simLift.AddPickup(call.Floor, call.Dir)

	for ticks := 0; ticks <= limit; ticks++ {
		if simLift.Floor == call.Floor {
			dir := simLift.Direction()
			if dir == call.Dir || dir == types.Idle {
				return ticks, true, nil
			}
		}
		simLift.Tick()
	}
	return 0, false, nil
}
