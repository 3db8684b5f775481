package service

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrVehicleInUse gates vehicle deletion: the caller must confirm
	// before leaving dangling references behind.
	ErrVehicleInUse = errors.New("vehicle is referenced by collection requests")
	ErrNoText       = errors.New("no text detected")
)
