package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nikoyaka/dispatch-service/internal/geocode"
	"github.com/nikoyaka/dispatch-service/internal/model"
)

type fakeCollectionStore struct {
	items []model.CollectionRequest
}

func (f *fakeCollectionStore) Create(_ context.Context, req model.CollectionRequest) (*model.CollectionRequest, error) {
	req.ID = uuid.New()
	req.CreatedAt = time.Now()
	f.items = append(f.items, req)
	return &req, nil
}

func (f *fakeCollectionStore) List(_ context.Context) ([]model.CollectionRequest, error) {
	out := make([]model.CollectionRequest, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeCollectionStore) GetByID(_ context.Context, id uuid.UUID) (*model.CollectionRequest, error) {
	for _, item := range f.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCollectionStore) Update(_ context.Context, req model.CollectionRequest) (*model.CollectionRequest, error) {
	for i, item := range f.items {
		if item.ID == req.ID {
			req.CreatedAt = item.CreatedAt
			f.items[i] = req
			return &req, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCollectionStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCollectionStore) CountByVehicle(_ context.Context, vehicleID uuid.UUID) (int64, error) {
	var count int64
	for _, item := range f.items {
		if item.VehicleID != nil && *item.VehicleID == vehicleID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCollectionStore) Stats(_ context.Context) (int64, int64, int64, error) {
	var uncollected, collected int64
	for _, item := range f.items {
		switch item.Status {
		case model.StatusUncollected:
			uncollected++
		case model.StatusCollected:
			collected++
		}
	}
	return int64(len(f.items)), uncollected, collected, nil
}

type fakeVehicleStore struct {
	items []model.Vehicle
}

func (f *fakeVehicleStore) Create(_ context.Context, vehicle model.Vehicle) (*model.Vehicle, error) {
	vehicle.ID = uuid.New()
	vehicle.CreatedAt = time.Now()
	f.items = append(f.items, vehicle)
	return &vehicle, nil
}

func (f *fakeVehicleStore) List(_ context.Context) ([]model.Vehicle, error) {
	out := make([]model.Vehicle, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeVehicleStore) GetByID(_ context.Context, id uuid.UUID) (*model.Vehicle, error) {
	for _, item := range f.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVehicleStore) Update(_ context.Context, vehicle model.Vehicle) (*model.Vehicle, error) {
	for i, item := range f.items {
		if item.ID == vehicle.ID {
			vehicle.CreatedAt = item.CreatedAt
			f.items[i] = vehicle
			return &vehicle, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVehicleStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeAreaRuleStore struct {
	items []model.AreaRule
}

func (f *fakeAreaRuleStore) Create(_ context.Context, rule model.AreaRule) (*model.AreaRule, error) {
	rule.ID = uuid.New()
	rule.CreatedAt = time.Now()
	f.items = append(f.items, rule)
	return &rule, nil
}

func (f *fakeAreaRuleStore) List(_ context.Context) ([]model.AreaRule, error) {
	out := make([]model.AreaRule, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeAreaRuleStore) GetByID(_ context.Context, id uuid.UUID) (*model.AreaRule, error) {
	for _, item := range f.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAreaRuleStore) Update(_ context.Context, rule model.AreaRule) (*model.AreaRule, error) {
	for i, item := range f.items {
		if item.ID == rule.ID {
			rule.CreatedAt = item.CreatedAt
			f.items[i] = rule
			return &rule, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAreaRuleStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeWasteTypeStore struct {
	items []model.WasteType
}

func (f *fakeWasteTypeStore) Create(_ context.Context, wt model.WasteType) (*model.WasteType, error) {
	wt.ID = uuid.New()
	wt.CreatedAt = time.Now()
	f.items = append(f.items, wt)
	return &wt, nil
}

func (f *fakeWasteTypeStore) List(_ context.Context) ([]model.WasteType, error) {
	out := make([]model.WasteType, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeWasteTypeStore) GetByID(_ context.Context, id uuid.UUID) (*model.WasteType, error) {
	for _, item := range f.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWasteTypeStore) Update(_ context.Context, wt model.WasteType) (*model.WasteType, error) {
	for i, item := range f.items {
		if item.ID == wt.ID {
			wt.CreatedAt = item.CreatedAt
			f.items[i] = wt
			return &wt, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWasteTypeStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// fakeGeocoder resolves every address to a fixed point; addresses in
// failFor come back unresolved.
type fakeGeocoder struct {
	failFor map[string]bool
	calls   []string
}

func (f *fakeGeocoder) Resolve(_ context.Context, address string) *geocode.Result {
	f.calls = append(f.calls, address)
	if f.failFor[address] {
		return nil
	}
	return &geocode.Result{Lat: 34.7, Lng: 135.3, DisplayName: address}
}

type fakeExcelGenerator struct{}

func (fakeExcelGenerator) Generate([]model.CollectionRequest, []model.Vehicle) ([]byte, error) {
	return []byte("xlsx"), nil
}

type fakePDFGenerator struct {
	lastSheet model.RouteSheet
}

func (f *fakePDFGenerator) Generate(sheet model.RouteSheet) ([]byte, error) {
	f.lastSheet = sheet
	return []byte("pdf"), nil
}
