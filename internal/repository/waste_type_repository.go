package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nikoyaka/dispatch-service/internal/model"
)

type WasteTypeRepository struct {
	db      *gorm.DB
	pageCap int
}

func NewWasteTypeRepository(db *gorm.DB, pageCap int) *WasteTypeRepository {
	return &WasteTypeRepository{db: db, pageCap: pageCap}
}

func (r *WasteTypeRepository) Create(ctx context.Context, wt model.WasteType) (*model.WasteType, error) {
	var saved model.WasteType
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO waste_types (type_name, is_active, display_order, valid_from, valid_until)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, type_name, is_active, display_order, valid_from, valid_until, created_at
	`, wt.TypeName, wt.IsActive, wt.DisplayOrder, wt.ValidFrom, wt.ValidUntil).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *WasteTypeRepository) List(ctx context.Context) ([]model.WasteType, error) {
	var types []model.WasteType
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, type_name, is_active, display_order, valid_from, valid_until, created_at
		FROM waste_types
		ORDER BY display_order ASC
		LIMIT ?
	`, r.pageCap).Scan(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *WasteTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.WasteType, error) {
	var wt model.WasteType
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, type_name, is_active, display_order, valid_from, valid_until, created_at
		FROM waste_types
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&wt).Error
	if err != nil {
		return nil, err
	}
	if wt.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &wt, nil
}

func (r *WasteTypeRepository) Update(ctx context.Context, wt model.WasteType) (*model.WasteType, error) {
	var saved model.WasteType
	err := r.db.WithContext(ctx).Raw(`
		UPDATE waste_types
		SET type_name = ?, is_active = ?, display_order = ?, valid_from = ?, valid_until = ?
		WHERE id = ?
		RETURNING id, type_name, is_active, display_order, valid_from, valid_until, created_at
	`, wt.TypeName, wt.IsActive, wt.DisplayOrder, wt.ValidFrom, wt.ValidUntil, wt.ID).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	if saved.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *WasteTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM waste_types WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
