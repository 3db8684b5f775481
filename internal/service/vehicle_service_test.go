package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nikoyaka/dispatch-service/internal/model"
)

type vehicleFixture struct {
	svc         *VehicleService
	repo        *fakeVehicleStore
	collections *fakeCollectionStore
	pdf         *fakePDFGenerator
}

func newVehicleFixture() *vehicleFixture {
	f := &vehicleFixture{
		repo:        &fakeVehicleStore{},
		collections: &fakeCollectionStore{},
		pdf:         &fakePDFGenerator{},
	}
	f.svc = NewVehicleService(f.repo, f.collections, f.pdf, zerolog.Nop())
	return f
}

func TestVehicleCreatePaletteDefault(t *testing.T) {
	f := newVehicleFixture()

	first, err := f.svc.Create(context.Background(), VehicleInput{VehicleNumber: "車両1", IsActive: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.Color != model.VehiclePalette[0] {
		t.Errorf("first color = %q, want %q", first.Color, model.VehiclePalette[0])
	}

	second, err := f.svc.Create(context.Background(), VehicleInput{VehicleNumber: "車両2", IsActive: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.Color != model.VehiclePalette[1] {
		t.Errorf("second color = %q, want %q", second.Color, model.VehiclePalette[1])
	}
}

func TestVehicleCreateExplicitColorKept(t *testing.T) {
	f := newVehicleFixture()
	created, err := f.svc.Create(context.Background(), VehicleInput{
		VehicleNumber: "車両1",
		Color:         "#000000",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Color != "#000000" {
		t.Errorf("Color = %q", created.Color)
	}
}

func TestVehicleCreateRequiresNumber(t *testing.T) {
	f := newVehicleFixture()
	_, err := f.svc.Create(context.Background(), VehicleInput{VehicleNumber: "   "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestVehicleDeleteBlockedWhileReferenced(t *testing.T) {
	f := newVehicleFixture()
	v, _ := f.svc.Create(context.Background(), VehicleInput{VehicleNumber: "車両1"})
	f.collections.items = append(f.collections.items, model.CollectionRequest{
		ID: uuid.New(), Address: "西宮市", VehicleID: &v.ID,
	})

	err := f.svc.Delete(context.Background(), v.ID, false)
	if !errors.Is(err, ErrVehicleInUse) {
		t.Fatalf("err = %v, want ErrVehicleInUse", err)
	}
	if !strings.Contains(err.Error(), "1") {
		t.Errorf("error should carry the reference count: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), v.ID); err != nil {
		t.Errorf("vehicle must survive the blocked delete: %v", err)
	}
}

func TestVehicleDeleteForcedLeavesDanglingReference(t *testing.T) {
	f := newVehicleFixture()
	v, _ := f.svc.Create(context.Background(), VehicleInput{VehicleNumber: "車両1"})
	f.collections.items = append(f.collections.items, model.CollectionRequest{
		ID: uuid.New(), Address: "西宮市", VehicleID: &v.ID,
	})

	if err := f.svc.Delete(context.Background(), v.ID, true); err != nil {
		t.Fatalf("forced delete: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), v.ID); !errors.Is(err, ErrNotFound) {
		t.Error("vehicle should be gone after forced delete")
	}
	if f.collections.items[0].VehicleID == nil || *f.collections.items[0].VehicleID != v.ID {
		t.Error("request must keep its dangling vehicle reference")
	}
}

func TestVehicleDeleteUnreferenced(t *testing.T) {
	f := newVehicleFixture()
	v, _ := f.svc.Create(context.Background(), VehicleInput{VehicleNumber: "車両1"})
	if err := f.svc.Delete(context.Background(), v.ID, false); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestVehicleDeleteUnknownID(t *testing.T) {
	f := newVehicleFixture()
	if err := f.svc.Delete(context.Background(), uuid.New(), false); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRouteSheetFiltersByVehicle(t *testing.T) {
	f := newVehicleFixture()
	f.svc.now = func() time.Time { return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC) }

	v1, _ := f.svc.Create(context.Background(), VehicleInput{VehicleNumber: "nishinomiya-01"})
	v2, _ := f.svc.Create(context.Background(), VehicleInput{VehicleNumber: "nishinomiya-02"})
	f.collections.items = append(f.collections.items,
		model.CollectionRequest{ID: uuid.New(), Address: "西宮市A", VehicleID: &v1.ID},
		model.CollectionRequest{ID: uuid.New(), Address: "西宮市B", VehicleID: &v2.ID},
		model.CollectionRequest{ID: uuid.New(), Address: "西宮市C", VehicleID: &v1.ID},
	)

	result, err := f.svc.RouteSheet(context.Background(), v1.ID)
	if err != nil {
		t.Fatalf("RouteSheet: %v", err)
	}
	if len(f.pdf.lastSheet.Requests) != 2 {
		t.Errorf("sheet has %d requests, want 2", len(f.pdf.lastSheet.Requests))
	}
	if result.FileName != "route-nishinomiya-01-20260901.pdf" {
		t.Errorf("FileName = %q", result.FileName)
	}
}

func TestRouteSheetSanitizesJapaneseNumber(t *testing.T) {
	f := newVehicleFixture()
	f.svc.now = func() time.Time { return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC) }

	v, _ := f.svc.Create(context.Background(), VehicleInput{VehicleNumber: "西宮100あ1-2"})
	result, err := f.svc.RouteSheet(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("RouteSheet: %v", err)
	}
	if result.FileName != "route-100-1-2-20260901.pdf" {
		t.Errorf("FileName = %q", result.FileName)
	}
}

func TestRouteSheetUnknownVehicle(t *testing.T) {
	f := newVehicleFixture()
	if _, err := f.svc.RouteSheet(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
