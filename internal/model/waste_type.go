package model

import (
	"time"

	"github.com/google/uuid"
)

type WasteType struct {
	ID           uuid.UUID
	TypeName     string
	IsActive     bool
	DisplayOrder int
	ValidFrom    *time.Time // inclusive
	ValidUntil   *time.Time // inclusive
	CreatedAt    time.Time
}

// ActiveOn reports whether the type is selectable on the given day: the
// active flag is set and the day falls inside the validity window.
func (w WasteType) ActiveOn(day time.Time) bool {
	if !w.IsActive {
		return false
	}
	day = truncateToDay(day)
	if w.ValidFrom != nil && truncateToDay(*w.ValidFrom).After(day) {
		return false
	}
	if w.ValidUntil != nil && truncateToDay(*w.ValidUntil).Before(day) {
		return false
	}
	return true
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
