package types

import "errors"

var (
	ErrNoLiftAvailable  = errors.New("no lift available")
	ErrInvalidLift      = errors.New("invalid lift index")
	ErrInvalidFloor     = errors.New("floor out of range")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrLiftFull         = errors.New("lift at capacity")
	ErrStopped          = errors.New("manager stopped")
)
