package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nikoyaka/dispatch-service/internal/model"
	"github.com/nikoyaka/dispatch-service/internal/schedule"
)

type VehicleRepository struct {
	db      *gorm.DB
	pageCap int
}

func NewVehicleRepository(db *gorm.DB, pageCap int) *VehicleRepository {
	return &VehicleRepository{db: db, pageCap: pageCap}
}

type vehicleRow struct {
	ID            uuid.UUID
	VehicleNumber string
	IsActive      bool
	Color         string
	Schedule      string
	CreatedAt     time.Time
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle model.Vehicle) (*model.Vehicle, error) {
	encoded, err := schedule.Encode(vehicle.Schedule)
	if err != nil {
		return nil, err
	}

	var row vehicleRow
	err = r.db.WithContext(ctx).Raw(`
		INSERT INTO vehicles (vehicle_number, is_active, color, schedule)
		VALUES (?, ?, ?, ?)
		RETURNING id, vehicle_number, is_active, color, schedule, created_at
	`, vehicle.VehicleNumber, vehicle.IsActive, vehicle.Color, encoded).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return rowToVehicle(row), nil
}

// List returns vehicles in creation order, which is also the positional
// order used for palette color defaults and the first-vehicle fallback.
func (r *VehicleRepository) List(ctx context.Context) ([]model.Vehicle, error) {
	var rows []vehicleRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, vehicle_number, is_active, color, schedule, created_at
		FROM vehicles
		ORDER BY created_at ASC
		LIMIT ?
	`, r.pageCap).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	vehicles := make([]model.Vehicle, 0, len(rows))
	for _, row := range rows {
		vehicles = append(vehicles, *rowToVehicle(row))
	}
	return vehicles, nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var row vehicleRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, vehicle_number, is_active, color, schedule, created_at
		FROM vehicles
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return rowToVehicle(row), nil
}

func (r *VehicleRepository) Update(ctx context.Context, vehicle model.Vehicle) (*model.Vehicle, error) {
	encoded, err := schedule.Encode(vehicle.Schedule)
	if err != nil {
		return nil, err
	}

	var row vehicleRow
	err = r.db.WithContext(ctx).Raw(`
		UPDATE vehicles
		SET vehicle_number = ?, is_active = ?, color = ?, schedule = ?
		WHERE id = ?
		RETURNING id, vehicle_number, is_active, color, schedule, created_at
	`, vehicle.VehicleNumber, vehicle.IsActive, vehicle.Color, encoded, vehicle.ID).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return rowToVehicle(row), nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM vehicles WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func rowToVehicle(row vehicleRow) *model.Vehicle {
	sched, err := schedule.Decode(row.Schedule)
	if err != nil {
		sched = schedule.Schedule{}
	}
	return &model.Vehicle{
		ID:            row.ID,
		VehicleNumber: row.VehicleNumber,
		IsActive:      row.IsActive,
		Color:         row.Color,
		Schedule:      sched,
		CreatedAt:     row.CreatedAt,
	}
}
