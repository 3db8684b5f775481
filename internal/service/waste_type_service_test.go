package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nikoyaka/dispatch-service/internal/model"
)

func TestWasteTypeCreateRequiresName(t *testing.T) {
	svc := NewWasteTypeService(&fakeWasteTypeStore{})
	_, err := svc.Create(context.Background(), WasteTypeInput{TypeName: " "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestWasteTypeCreateRejectsInvertedWindow(t *testing.T) {
	svc := NewWasteTypeService(&fakeWasteTypeStore{})
	from := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), WasteTypeInput{
		TypeName:   "粗大ごみ",
		ValidFrom:  &from,
		ValidUntil: &until,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestWasteTypeListActive(t *testing.T) {
	store := &fakeWasteTypeStore{}
	svc := NewWasteTypeService(store)
	svc.now = func() time.Time { return time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC) }

	yesterday := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)
	store.Create(context.Background(), model.WasteType{TypeName: "粗大ごみ", IsActive: true})
	store.Create(context.Background(), model.WasteType{TypeName: "停止中", IsActive: false})
	store.Create(context.Background(), model.WasteType{TypeName: "期限切れ", IsActive: true, ValidUntil: &yesterday})

	active, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 1 || active[0].TypeName != "粗大ごみ" {
		t.Errorf("active = %+v", active)
	}
}

func TestWasteTypeUpdateUnknownID(t *testing.T) {
	svc := NewWasteTypeService(&fakeWasteTypeStore{})
	_, err := svc.Update(context.Background(), uuid.New(), WasteTypeInput{TypeName: "粗大ごみ"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAreaRuleCreateValidation(t *testing.T) {
	svc := NewAreaRuleService(&fakeAreaRuleStore{})

	if _, err := svc.Create(context.Background(), AreaRuleInput{VehicleID: uuid.New()}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing pattern: err = %v", err)
	}
	if _, err := svc.Create(context.Background(), AreaRuleInput{AreaPattern: "甲子園"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing vehicle: err = %v", err)
	}
}

func TestAreaRuleCreateAndUpdate(t *testing.T) {
	svc := NewAreaRuleService(&fakeAreaRuleStore{})
	vehicle := uuid.New()

	created, err := svc.Create(context.Background(), AreaRuleInput{
		AreaPattern: "甲子園",
		VehicleID:   vehicle,
		Priority:    5,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, AreaRuleInput{
		AreaPattern: "甲子園町",
		VehicleID:   vehicle,
		Priority:    1,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.AreaPattern != "甲子園町" || updated.Priority != 1 {
		t.Errorf("updated = %+v", updated)
	}
}

func TestAreaRuleUpdateUnknownID(t *testing.T) {
	svc := NewAreaRuleService(&fakeAreaRuleStore{})
	_, err := svc.Update(context.Background(), uuid.New(), AreaRuleInput{
		AreaPattern: "甲子園",
		VehicleID:   uuid.New(),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
