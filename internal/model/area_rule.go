package model

import (
	"time"

	"github.com/google/uuid"
)

// AreaRule maps an address substring to a vehicle. Rules are evaluated
// in ascending priority order; the first pattern contained in the
// address wins.
type AreaRule struct {
	ID          uuid.UUID
	AreaPattern string
	VehicleID   uuid.UUID
	Priority    int
	CreatedAt   time.Time
}
