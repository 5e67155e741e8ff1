package dispatcher

import (
	"context"
	"fmt"
	"log/slog"

	"liftsim/src/elev"
	"liftsim/src/types"

	"github.com/tiendc/go-deepcopy"
)

// Dispatcher owns every lift in the building and assigns hall calls to them.
// It is not safe for concurrent use; see Mgr.
type Dispatcher struct {
	numFloors int
	capacity  int
	lifts     []*elev.Lift
	elapsed   int
}

// New builds a dispatcher with numLifts idle lifts on floor 0.
func New(numFloors, numLifts, capacity int) *Dispatcher {
	d := &Dispatcher{
		numFloors: numFloors,
		capacity:  capacity,
		lifts:     make([]*elev.Lift, numLifts),
	}
	for i := range d.lifts {
		d.lifts[i] = elev.NewLift(numFloors, capacity)
	}
	slog.Debug("Dispatcher initialized", "floors", numFloors, "lifts", numLifts, "capacity", capacity)
	return d
}

// Elapsed returns the number of ticks processed so far.
func (d *Dispatcher) Elapsed() int { return d.elapsed }

// RequestLift assigns a hall call to the lift with the smallest estimated
// time to reach it. Lifts that cannot serve the call, or that would arrive
// full, are skipped. On equal estimates the lowest lift index wins.
func (d *Dispatcher) RequestLift(floor int, dir types.Direction) (int, error) {
	if !d.validFloor(floor) {
		return types.NoLift, fmt.Errorf("request lift at floor %d: %w", floor, types.ErrInvalidFloor)
	}
	if dir != types.Up && dir != types.Down {
		return types.NoLift, fmt.Errorf("request lift at floor %d: %w", floor, types.ErrInvalidDirection)
	}

	assignee := types.NoLift
	bestTime := 0
	for i, lift := range d.lifts {
		ticks, ok := lift.TimeToReach(floor, dir)
		if !ok {
			slog.Debug("Lift cannot serve call", "lift", i, "floor", floor, "dir", dir, "motion", lift.Motion)
			continue
		}
		if occupancy := lift.OccupancyAt(floor, dir); occupancy >= d.capacity {
			slog.Debug("Lift would arrive full", "lift", i, "occupancy", occupancy)
			continue
		}
		if assignee == types.NoLift || ticks < bestTime {
			assignee, bestTime = i, ticks
		}
	}

	if assignee == types.NoLift {
		slog.Info("No lift available", "floor", floor, "dir", dir)
		return types.NoLift, types.ErrNoLiftAvailable
	}
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		d.logSimulatedArrival(assignee, types.HallCall{Floor: floor, Dir: dir}, bestTime)
	}
	d.lifts[assignee].AddPickup(floor, dir)
	slog.Info("Hall call assigned", "lift", assignee, "floor", floor, "dir", dir, "ticks", bestTime)
	return assignee, nil
}

// PressFloorButton registers a car call inside lift liftID. An invalid lift
// leaves every lift unchanged.
func (d *Dispatcher) PressFloorButton(liftID, floor int) error {
	lift, err := d.lift(liftID)
	if err != nil {
		return err
	}
	if !d.validFloor(floor) {
		return fmt.Errorf("press floor %d in lift %d: %w", floor, liftID, types.ErrInvalidFloor)
	}
	if lift.Onboard() >= lift.Capacity {
		return fmt.Errorf("press floor %d in lift %d: %w", floor, liftID, types.ErrLiftFull)
	}
	lift.AddDropoff(floor)
	slog.Debug("Car call registered", "lift", liftID, "floor", floor, "dir", lift.Direction())
	return nil
}

func (d *Dispatcher) LiftState(liftID int) (types.LiftStatus, error) {
	lift, err := d.lift(liftID)
	if err != nil {
		return types.LiftStatus{}, err
	}
	return lift.Status(), nil
}

// Tick advances every lift one time unit. Lifts share no state, so the
// order does not matter; they are ticked by index.
func (d *Dispatcher) Tick() {
	for _, lift := range d.lifts {
		lift.Tick()
	}
	d.elapsed++
}

// Snapshot returns deep copies of all lifts.
func (d *Dispatcher) Snapshot() ([]elev.Lift, error) {
	snapshot := make([]elev.Lift, len(d.lifts))
	for i, lift := range d.lifts {
		if err := deepcopy.Copy(&snapshot[i], lift); err != nil {
			return nil, fmt.Errorf("snapshot lift %d: %w", i, err)
		}
	}
	return snapshot, nil
}

// EstimateArrival plays the call forward on a copy of lift liftID and
// returns how many ticks it takes the lift to pick the caller up.
// The search gives up after a few building traversals.
func (d *Dispatcher) EstimateArrival(liftID int, call types.HallCall) (int, bool, error) {
	lift, err := d.lift(liftID)
	if err != nil {
		return 0, false, err
	}
	if !d.validFloor(call.Floor) {
		return 0, false, fmt.Errorf("estimate arrival at floor %d: %w", call.Floor, types.ErrInvalidFloor)
	}
	return elev.Simulate(lift, call, 4*d.numFloors)
}

// logSimulatedArrival plays the call forward on a copy of the chosen lift and
// logs the result beside the estimate. A mismatch means the estimator and the
// motion automaton disagree.
func (d *Dispatcher) logSimulatedArrival(liftID int, call types.HallCall, estimate int) {
	simulated, ok, err := d.EstimateArrival(liftID, call)
	if err != nil {
		slog.Warn("Arrival simulation failed", "lift", liftID, "err", err)
		return
	}
	if !ok || simulated != estimate {
		slog.Warn("Estimate differs from simulated arrival", "lift", liftID, "floor", call.Floor, "dir", call.Dir, "estimate", estimate, "simulated", simulated, "reached", ok)
		return
	}
	slog.Debug("Simulated arrival", "lift", liftID, "floor", call.Floor, "ticks", simulated)
}

func (d *Dispatcher) lift(liftID int) (*elev.Lift, error) {
	if liftID < 0 || liftID >= len(d.lifts) {
		return nil, fmt.Errorf("lift %d: %w", liftID, types.ErrInvalidLift)
	}
	return d.lifts[liftID], nil
}

func (d *Dispatcher) validFloor(floor int) bool {
	return floor >= 0 && floor < d.numFloors
}
