package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/nikoyaka/dispatch-service/internal/schedule"
)

type CollectionStatus string

const (
	StatusUncollected CollectionStatus = "未収集"
	StatusCollected   CollectionStatus = "収集済み"
	StatusOnHold      CollectionStatus = "保留"
)

// DefaultWasteType is recorded on requests created from the paper form
// when the extractor finds no category.
const DefaultWasteType = "収集依頼"

// CollectionRequest is a household pickup request.
type CollectionRequest struct {
	ID                    uuid.UUID
	Name                  string
	Address               string
	StartDate             *time.Time
	WasteType             string
	Combustible           schedule.Schedule
	NonCombustibleEnabled bool
	NonCombustible        schedule.Schedule
	VehicleID             *uuid.UUID // weak reference, may dangle after vehicle deletion
	Status                CollectionStatus
	ManualAssignment      bool
	Notes                 string
	CreatedAt             time.Time
}
