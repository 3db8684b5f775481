package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/nikoyaka/dispatch-service/internal/model"
)

// Store interfaces decouple the services from the gorm repositories so
// the decision logic can be tested against in-memory fakes.

type CollectionStore interface {
	Create(ctx context.Context, req model.CollectionRequest) (*model.CollectionRequest, error)
	List(ctx context.Context) ([]model.CollectionRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.CollectionRequest, error)
	Update(ctx context.Context, req model.CollectionRequest) (*model.CollectionRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByVehicle(ctx context.Context, vehicleID uuid.UUID) (int64, error)
	Stats(ctx context.Context) (total, uncollected, collected int64, err error)
}

type VehicleStore interface {
	Create(ctx context.Context, vehicle model.Vehicle) (*model.Vehicle, error)
	List(ctx context.Context) ([]model.Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	Update(ctx context.Context, vehicle model.Vehicle) (*model.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AreaRuleStore interface {
	Create(ctx context.Context, rule model.AreaRule) (*model.AreaRule, error)
	List(ctx context.Context) ([]model.AreaRule, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.AreaRule, error)
	Update(ctx context.Context, rule model.AreaRule) (*model.AreaRule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type WasteTypeStore interface {
	Create(ctx context.Context, wt model.WasteType) (*model.WasteType, error)
	List(ctx context.Context) ([]model.WasteType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.WasteType, error)
	Update(ctx context.Context, wt model.WasteType) (*model.WasteType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
