package dispatcher

import (
	"context"

	"liftsim/src/elev"
	"liftsim/src/types"
)

// DispatcherCmd encapsulates an operation on the dispatcher.
type DispatcherCmd struct {
	Exec func(d *Dispatcher)
}

// Mgr owns a dispatcher and serializes access to it. Every call runs to
// completion before the next one starts.
type Mgr struct {
	cmds chan DispatcherCmd
	done chan struct{}
}

// StartMgr starts the manager goroutine. It stops when ctx is cancelled;
// later calls return types.ErrStopped.
func StartMgr(ctx context.Context, d *Dispatcher) *Mgr {
	mgr := &Mgr{
		cmds: make(chan DispatcherCmd),
		done: make(chan struct{}),
	}
	go func() {
		defer close(mgr.done)
		for {
			select {
			case cmd := <-mgr.cmds:
				cmd.Exec(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return mgr
}

// Done is closed once the manager goroutine has exited.
func (mgr *Mgr) Done() <-chan struct{} {
	return mgr.done
}

// Execute runs exec on the manager goroutine and waits for it to finish.
func (mgr *Mgr) Execute(exec func(d *Dispatcher)) error {
	reply := make(chan struct{})
	cmd := DispatcherCmd{
		Exec: func(d *Dispatcher) {
			defer close(reply)
			exec(d)
		},
	}
	select {
	case mgr.cmds <- cmd:
	case <-mgr.done:
		return types.ErrStopped
	}
	<-reply
	return nil
}

func (mgr *Mgr) RequestLift(floor int, dir types.Direction) (liftID int, err error) {
	if stopErr := mgr.Execute(func(d *Dispatcher) {
		liftID, err = d.RequestLift(floor, dir)
	}); stopErr != nil {
		return types.NoLift, stopErr
	}
	return liftID, err
}

func (mgr *Mgr) PressFloorButton(liftID, floor int) (err error) {
	if stopErr := mgr.Execute(func(d *Dispatcher) {
		err = d.PressFloorButton(liftID, floor)
	}); stopErr != nil {
		return stopErr
	}
	return err
}

func (mgr *Mgr) LiftState(liftID int) (status types.LiftStatus, err error) {
	if stopErr := mgr.Execute(func(d *Dispatcher) {
		status, err = d.LiftState(liftID)
	}); stopErr != nil {
		return types.LiftStatus{}, stopErr
	}
	return status, err
}

func (mgr *Mgr) Tick() error {
	return mgr.Execute(func(d *Dispatcher) {
		d.Tick()
	})
}

// Statuses returns the status of every lift, read in a single command.
func (mgr *Mgr) Statuses() (statuses []types.LiftStatus, elapsed int, err error) {
	err = mgr.Execute(func(d *Dispatcher) {
		statuses = make([]types.LiftStatus, len(d.lifts))
		for i, lift := range d.lifts {
			statuses[i] = lift.Status()
		}
		elapsed = d.elapsed
	})
	return statuses, elapsed, err
}

// Snapshot returns deep copies of all lifts, request sets included.
func (mgr *Mgr) Snapshot() (lifts []elev.Lift, err error) {
	if stopErr := mgr.Execute(func(d *Dispatcher) {
		lifts, err = d.Snapshot()
	}); stopErr != nil {
		return nil, stopErr
	}
	return lifts, err
}
