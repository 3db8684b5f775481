package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nikoyaka/dispatch-service/internal/model"
	"github.com/nikoyaka/dispatch-service/internal/schedule"
)

type CollectionRepository struct {
	db      *gorm.DB
	pageCap int
}

func NewCollectionRepository(db *gorm.DB, pageCap int) *CollectionRepository {
	return &CollectionRepository{db: db, pageCap: pageCap}
}

type collectionRow struct {
	ID                    uuid.UUID
	Name                  string
	Address               string
	StartDate             *time.Time
	WasteType             string
	CombustibleDays       string
	NonCombustibleEnabled bool
	NonCombustibleDays    string
	VehicleID             *uuid.UUID
	Status                string
	ManualAssignment      bool
	Notes                 string
	CreatedAt             time.Time
}

const collectionColumns = `
	id,
	name,
	address,
	start_date,
	waste_type,
	combustible_days,
	non_combustible_enabled,
	non_combustible_days,
	vehicle_id,
	status,
	manual_assignment,
	notes,
	created_at`

func (r *CollectionRepository) Create(ctx context.Context, req model.CollectionRequest) (*model.CollectionRequest, error) {
	combustible, err := schedule.Encode(req.Combustible)
	if err != nil {
		return nil, err
	}
	nonCombustible, err := schedule.Encode(req.NonCombustible)
	if err != nil {
		return nil, err
	}

	var row collectionRow
	err = r.db.WithContext(ctx).Raw(`
		INSERT INTO collections (
			name,
			address,
			start_date,
			waste_type,
			combustible_days,
			non_combustible_enabled,
			non_combustible_days,
			vehicle_id,
			status,
			manual_assignment,
			notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+collectionColumns,
		req.Name,
		req.Address,
		req.StartDate,
		req.WasteType,
		combustible,
		req.NonCombustibleEnabled,
		nonCombustible,
		req.VehicleID,
		req.Status,
		req.ManualAssignment,
		req.Notes,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return rowToCollection(row), nil
}

// List returns requests newest first, capped at the configured page size.
func (r *CollectionRepository) List(ctx context.Context) ([]model.CollectionRequest, error) {
	var rows []collectionRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+collectionColumns+`
		FROM collections
		ORDER BY created_at DESC
		LIMIT ?
	`, r.pageCap).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	requests := make([]model.CollectionRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, *rowToCollection(row))
	}
	return requests, nil
}

func (r *CollectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CollectionRequest, error) {
	var row collectionRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+collectionColumns+`
		FROM collections
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return rowToCollection(row), nil
}

func (r *CollectionRepository) Update(ctx context.Context, req model.CollectionRequest) (*model.CollectionRequest, error) {
	combustible, err := schedule.Encode(req.Combustible)
	if err != nil {
		return nil, err
	}
	nonCombustible, err := schedule.Encode(req.NonCombustible)
	if err != nil {
		return nil, err
	}

	var row collectionRow
	err = r.db.WithContext(ctx).Raw(`
		UPDATE collections
		SET
			name = ?,
			address = ?,
			start_date = ?,
			waste_type = ?,
			combustible_days = ?,
			non_combustible_enabled = ?,
			non_combustible_days = ?,
			vehicle_id = ?,
			status = ?,
			manual_assignment = ?,
			notes = ?
		WHERE id = ?
		RETURNING `+collectionColumns,
		req.Name,
		req.Address,
		req.StartDate,
		req.WasteType,
		combustible,
		req.NonCombustibleEnabled,
		nonCombustible,
		req.VehicleID,
		req.Status,
		req.ManualAssignment,
		req.Notes,
		req.ID,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return rowToCollection(row), nil
}

func (r *CollectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM collections WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByVehicle backs the referential deletion warning for vehicles.
func (r *CollectionRepository) CountByVehicle(ctx context.Context, vehicleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM collections WHERE vehicle_id = ?
	`, vehicleID).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CollectionRepository) Stats(ctx context.Context) (total, uncollected, collected int64, err error) {
	var row struct {
		Total       int64
		Uncollected int64
		Collected   int64
	}
	err = r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = ?) AS uncollected,
			COUNT(*) FILTER (WHERE status = ?) AS collected
		FROM collections
	`, model.StatusUncollected, model.StatusCollected).Scan(&row).Error
	if err != nil {
		return 0, 0, 0, err
	}
	return row.Total, row.Uncollected, row.Collected, nil
}

func rowToCollection(row collectionRow) *model.CollectionRequest {
	// Malformed persisted schedules degrade to empty rather than
	// poisoning list rendering.
	combustible, err := schedule.Decode(row.CombustibleDays)
	if err != nil {
		combustible = schedule.Schedule{}
	}
	nonCombustible, err := schedule.Decode(row.NonCombustibleDays)
	if err != nil {
		nonCombustible = schedule.Schedule{}
	}

	return &model.CollectionRequest{
		ID:                    row.ID,
		Name:                  row.Name,
		Address:               row.Address,
		StartDate:             row.StartDate,
		WasteType:             row.WasteType,
		Combustible:           combustible,
		NonCombustibleEnabled: row.NonCombustibleEnabled,
		NonCombustible:        nonCombustible,
		VehicleID:             row.VehicleID,
		Status:                model.CollectionStatus(row.Status),
		ManualAssignment:      row.ManualAssignment,
		Notes:                 row.Notes,
		CreatedAt:             row.CreatedAt,
	}
}
