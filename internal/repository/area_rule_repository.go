package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nikoyaka/dispatch-service/internal/model"
)

type AreaRuleRepository struct {
	db      *gorm.DB
	pageCap int
}

func NewAreaRuleRepository(db *gorm.DB, pageCap int) *AreaRuleRepository {
	return &AreaRuleRepository{db: db, pageCap: pageCap}
}

func (r *AreaRuleRepository) Create(ctx context.Context, rule model.AreaRule) (*model.AreaRule, error) {
	var saved model.AreaRule
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO area_rules (area_pattern, vehicle_id, priority)
		VALUES (?, ?, ?)
		RETURNING id, area_pattern, vehicle_id, priority, created_at
	`, rule.AreaPattern, rule.VehicleID, rule.Priority).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// List returns rules by ascending priority; created_at breaks ties so
// equal priorities keep their original insertion order.
func (r *AreaRuleRepository) List(ctx context.Context) ([]model.AreaRule, error) {
	var rules []model.AreaRule
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, area_pattern, vehicle_id, priority, created_at
		FROM area_rules
		ORDER BY priority ASC, created_at ASC
		LIMIT ?
	`, r.pageCap).Scan(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *AreaRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.AreaRule, error) {
	var rule model.AreaRule
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, area_pattern, vehicle_id, priority, created_at
		FROM area_rules
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&rule).Error
	if err != nil {
		return nil, err
	}
	if rule.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &rule, nil
}

func (r *AreaRuleRepository) Update(ctx context.Context, rule model.AreaRule) (*model.AreaRule, error) {
	var saved model.AreaRule
	err := r.db.WithContext(ctx).Raw(`
		UPDATE area_rules
		SET area_pattern = ?, vehicle_id = ?, priority = ?
		WHERE id = ?
		RETURNING id, area_pattern, vehicle_id, priority, created_at
	`, rule.AreaPattern, rule.VehicleID, rule.Priority, rule.ID).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	if saved.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *AreaRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM area_rules WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
