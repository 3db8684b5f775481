package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nikoyaka/dispatch-service/internal/model"
)

type AreaRuleService struct {
	repo AreaRuleStore
}

func NewAreaRuleService(repo AreaRuleStore) *AreaRuleService {
	return &AreaRuleService{repo: repo}
}

type AreaRuleInput struct {
	AreaPattern string
	VehicleID   uuid.UUID
	Priority    int
}

func (s *AreaRuleService) validate(input AreaRuleInput) error {
	if strings.TrimSpace(input.AreaPattern) == "" {
		return fmt.Errorf("%w: area_pattern is required", ErrInvalidInput)
	}
	if input.VehicleID == uuid.Nil {
		return fmt.Errorf("%w: vehicle_id is required", ErrInvalidInput)
	}
	return nil
}

func (s *AreaRuleService) Create(ctx context.Context, input AreaRuleInput) (*model.AreaRule, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, model.AreaRule{
		AreaPattern: input.AreaPattern,
		VehicleID:   input.VehicleID,
		Priority:    input.Priority,
	})
}

func (s *AreaRuleService) Update(ctx context.Context, id uuid.UUID, input AreaRuleInput) (*model.AreaRule, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, model.AreaRule{
		ID:          id,
		AreaPattern: input.AreaPattern,
		VehicleID:   input.VehicleID,
		Priority:    input.Priority,
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *AreaRuleService) List(ctx context.Context) ([]model.AreaRule, error) {
	return s.repo.List(ctx)
}

func (s *AreaRuleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}
