package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nikoyaka/dispatch-service/internal/model"
)

type WasteTypeService struct {
	repo WasteTypeStore

	now func() time.Time
}

func NewWasteTypeService(repo WasteTypeStore) *WasteTypeService {
	return &WasteTypeService{repo: repo, now: time.Now}
}

type WasteTypeInput struct {
	TypeName     string
	IsActive     bool
	DisplayOrder int
	ValidFrom    *time.Time
	ValidUntil   *time.Time
}

func (s *WasteTypeService) validate(input WasteTypeInput) error {
	if strings.TrimSpace(input.TypeName) == "" {
		return fmt.Errorf("%w: type_name is required", ErrInvalidInput)
	}
	if input.ValidFrom != nil && input.ValidUntil != nil && input.ValidUntil.Before(*input.ValidFrom) {
		return fmt.Errorf("%w: valid_until precedes valid_from", ErrInvalidInput)
	}
	return nil
}

func (s *WasteTypeService) Create(ctx context.Context, input WasteTypeInput) (*model.WasteType, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, model.WasteType{
		TypeName:     input.TypeName,
		IsActive:     input.IsActive,
		DisplayOrder: input.DisplayOrder,
		ValidFrom:    input.ValidFrom,
		ValidUntil:   input.ValidUntil,
	})
}

func (s *WasteTypeService) Update(ctx context.Context, id uuid.UUID, input WasteTypeInput) (*model.WasteType, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, model.WasteType{
		ID:           id,
		TypeName:     input.TypeName,
		IsActive:     input.IsActive,
		DisplayOrder: input.DisplayOrder,
		ValidFrom:    input.ValidFrom,
		ValidUntil:   input.ValidUntil,
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *WasteTypeService) List(ctx context.Context) ([]model.WasteType, error) {
	return s.repo.List(ctx)
}

// ListActive narrows List to the types selectable today.
func (s *WasteTypeService) ListActive(ctx context.Context) ([]model.WasteType, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now()
	active := make([]model.WasteType, 0, len(all))
	for _, wt := range all {
		if wt.ActiveOn(today) {
			active = append(active, wt)
		}
	}
	return active, nil
}

func (s *WasteTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}
