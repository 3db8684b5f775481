package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/nikoyaka/dispatch-service/internal/schedule"
)

// VehiclePalette holds the positional default colors handed out when a
// vehicle is created without an explicit color.
var VehiclePalette = []string{
	"#2563eb", "#dc2626", "#16a34a", "#ca8a04", "#9333ea",
	"#0891b2", "#db2777", "#f97316", "#65a30d", "#7c3aed",
}

// NeutralColor is used on the map for vehicles without a color and for
// requests with a dangling vehicle reference.
const NeutralColor = "#64748b"

type Vehicle struct {
	ID            uuid.UUID
	VehicleNumber string
	IsActive      bool
	Color         string
	Schedule      schedule.Schedule
	CreatedAt     time.Time
}

// DisplayColor returns the vehicle's configured color or the neutral
// fallback.
func (v Vehicle) DisplayColor() string {
	if v.Color == "" {
		return NeutralColor
	}
	return v.Color
}
