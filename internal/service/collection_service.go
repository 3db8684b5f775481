package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nikoyaka/dispatch-service/internal/assign"
	"github.com/nikoyaka/dispatch-service/internal/extract"
	"github.com/nikoyaka/dispatch-service/internal/geocode"
	"github.com/nikoyaka/dispatch-service/internal/model"
	"github.com/nikoyaka/dispatch-service/internal/schedule"
)

// Address material prefixed onto OCR-extracted addresses that lack it;
// the service covers a single municipality.
const (
	prefecture = "兵庫県"
	city       = "西宮市"
	cityPrefix = prefecture + city
)

// Recognition confidence below this threshold flags the draft for
// manual review.
const lowConfidenceThreshold = 70.0

type ExcelGenerator interface {
	Generate(requests []model.CollectionRequest, vehicles []model.Vehicle) ([]byte, error)
}

type CollectionService struct {
	repo        CollectionStore
	vehicles    VehicleStore
	rules       AreaRuleStore
	wasteTypes  WasteTypeStore
	extractor   *extract.Extractor
	geocoder    geocode.Client
	excel       ExcelGenerator
	markerDelay time.Duration
	sleep       func(time.Duration)
	now         func() time.Time
	log         zerolog.Logger
}

func NewCollectionService(
	repo CollectionStore,
	vehicles VehicleStore,
	rules AreaRuleStore,
	wasteTypes WasteTypeStore,
	extractor *extract.Extractor,
	geocoder geocode.Client,
	excel ExcelGenerator,
	markerDelay time.Duration,
	log zerolog.Logger,
) *CollectionService {
	return &CollectionService{
		repo:        repo,
		vehicles:    vehicles,
		rules:       rules,
		wasteTypes:  wasteTypes,
		extractor:   extractor,
		geocoder:    geocoder,
		excel:       excel,
		markerDelay: markerDelay,
		sleep:       time.Sleep,
		now:         time.Now,
		log:         log,
	}
}

type CreateCollectionInput struct {
	Name                  string
	Address               string
	StartDate             *time.Time
	WasteType             string
	Combustible           schedule.Schedule
	NonCombustibleEnabled bool
	NonCombustible        schedule.Schedule
	VehicleID             *uuid.UUID
	Notes                 string
}

type UpdateCollectionInput struct {
	Name                  string
	Address               string
	StartDate             *time.Time
	WasteType             string
	Combustible           schedule.Schedule
	NonCombustibleEnabled bool
	NonCombustible        schedule.Schedule
	VehicleID             *uuid.UUID
	Status                model.CollectionStatus
	Notes                 string
}

// Create registers a request. When no vehicle was chosen explicitly,
// the area rules pick one; failing that, the first registered vehicle
// is used so the field is never silently left empty. Only an explicit
// choice marks the assignment as manual.
func (s *CollectionService) Create(ctx context.Context, input CreateCollectionInput) (*model.CollectionRequest, error) {
	if strings.TrimSpace(input.Address) == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidInput)
	}

	vehicleID := input.VehicleID
	manual := vehicleID != nil
	if vehicleID == nil {
		resolved, err := s.resolveVehicle(ctx, input.Address)
		if err != nil {
			return nil, err
		}
		vehicleID = resolved
	}

	wasteType := input.WasteType
	if wasteType == "" {
		wasteType = model.DefaultWasteType
	}
	nonCombustible := input.NonCombustible
	if !input.NonCombustibleEnabled {
		nonCombustible = schedule.Schedule{}
	}

	created, err := s.repo.Create(ctx, model.CollectionRequest{
		Name:                  input.Name,
		Address:               input.Address,
		StartDate:             input.StartDate,
		WasteType:             wasteType,
		Combustible:           input.Combustible,
		NonCombustibleEnabled: input.NonCombustibleEnabled,
		NonCombustible:        nonCombustible,
		VehicleID:             vehicleID,
		Status:                model.StatusUncollected,
		ManualAssignment:      manual,
		Notes:                 input.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("collection_id", created.ID.String()).
		Bool("manual_assignment", created.ManualAssignment).
		Msg("collection request created")
	return created, nil
}

// resolveVehicle runs the fallback chain: area rules first, then the
// first vehicle in creation order.
func (s *CollectionService) resolveVehicle(ctx context.Context, address string) (*uuid.UUID, error) {
	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}

	return assign.Resolve(
		func() *uuid.UUID { return assign.AutoAssign(address, rules) },
		func() *uuid.UUID {
			if len(vehicles) == 0 {
				return nil
			}
			id := vehicles[0].ID
			return &id
		},
	), nil
}

// Update replaces every mutable field. Editing always marks the
// assignment as manual, matching the edit form's behavior.
func (s *CollectionService) Update(ctx context.Context, id uuid.UUID, input UpdateCollectionInput) (*model.CollectionRequest, error) {
	if strings.TrimSpace(input.Address) == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if !validStatus(input.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, input.Status)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	wasteType := input.WasteType
	if wasteType == "" {
		wasteType = existing.WasteType
	}
	if wasteType == "" {
		wasteType = model.DefaultWasteType
	}
	nonCombustible := input.NonCombustible
	if !input.NonCombustibleEnabled {
		nonCombustible = schedule.Schedule{}
	}

	updated, err := s.repo.Update(ctx, model.CollectionRequest{
		ID:                    id,
		Name:                  input.Name,
		Address:               input.Address,
		StartDate:             input.StartDate,
		WasteType:             wasteType,
		Combustible:           input.Combustible,
		NonCombustibleEnabled: input.NonCombustibleEnabled,
		NonCombustible:        nonCombustible,
		VehicleID:             input.VehicleID,
		Status:                input.Status,
		ManualAssignment:      true,
		Notes:                 input.Notes,
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *CollectionService) List(ctx context.Context) ([]model.CollectionRequest, error) {
	return s.repo.List(ctx)
}

func (s *CollectionService) Get(ctx context.Context, id uuid.UUID) (*model.CollectionRequest, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *CollectionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}

type Stats struct {
	Total       int64 `json:"total"`
	Uncollected int64 `json:"uncollected"`
	Collected   int64 `json:"collected"`
}

func (s *CollectionService) Stats(ctx context.Context) (*Stats, error) {
	total, uncollected, collected, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{Total: total, Uncollected: uncollected, Collected: collected}, nil
}

type IntakeInput struct {
	Text       string
	Confidence float64
}

// IntakeDraft is the pre-filled form state produced from a scanned
// request; the operator reviews it before the record is created.
type IntakeDraft struct {
	Name               string              `json:"name"`
	Address            string              `json:"address"`
	StartDate          string              `json:"start_date"`
	WasteType          string              `json:"waste_type"`
	Combustible        bool                `json:"combustible"`
	NonCombustible     bool                `json:"non_combustible"`
	SuggestedVehicleID *uuid.UUID          `json:"suggested_vehicle_id"`
	LowConfidence      bool                `json:"low_confidence"`
	Diagnostics        extract.Diagnostics `json:"diagnostics"`
}

// IntakeFromOCR turns recognized form text into a draft request. The
// extractor is fed every registered waste-type name, expired ones
// included, so a scanned form naming an old category is still read
// back; validity filtering applies to selection lists, not recognition.
func (s *CollectionService) IntakeFromOCR(ctx context.Context, input IntakeInput) (*IntakeDraft, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, fmt.Errorf("%w: check the image quality", ErrNoText)
	}

	registered, err := s.registeredWasteTypeNames(ctx)
	if err != nil {
		return nil, err
	}

	result := s.extractor.Extract(input.Text, registered)

	// Operators write only the local part of the address on the form;
	// complete it so routing and geocoding see the full address.
	address := strings.TrimSpace(result.Address)
	switch {
	case address == "":
		address = cityPrefix
	case !strings.Contains(address, prefecture) && !strings.Contains(address, city):
		address = cityPrefix + address
	}

	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, err
	}

	draft := &IntakeDraft{
		Name:               result.Name,
		Address:            address,
		StartDate:          result.StartDate,
		WasteType:          result.WasteType,
		Combustible:        strings.Contains(result.WasteType, "もやす") || strings.Contains(result.WasteType, "可燃"),
		NonCombustible:     strings.Contains(result.WasteType, "もやさない") || strings.Contains(result.WasteType, "不燃"),
		SuggestedVehicleID: assign.AutoAssign(address, rules),
		LowConfidence:      input.Confidence < lowConfidenceThreshold,
		Diagnostics:        result.Diagnostics,
	}

	s.log.Info().
		Float64("confidence", input.Confidence).
		Bool("low_confidence", draft.LowConfidence).
		Bool("name_found", draft.Name != "").
		Bool("address_found", result.Address != "").
		Msg("ocr intake processed")
	return draft, nil
}

func (s *CollectionService) registeredWasteTypeNames(ctx context.Context) ([]string, error) {
	types, err := s.wasteTypes.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(types))
	for _, wt := range types {
		names = append(names, wt.TypeName)
	}
	return names, nil
}

type MarkerFilter struct {
	VehicleID *uuid.UUID
	Status    model.CollectionStatus
}

type Marker struct {
	CollectionID uuid.UUID              `json:"collection_id"`
	Name         string                 `json:"name"`
	Address      string                 `json:"address"`
	Position     geocode.Result         `json:"position"`
	Color        string                 `json:"color"`
	Status       model.CollectionStatus `json:"status"`
}

type MarkerReport struct {
	Markers []Marker `json:"markers"`
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Skipped int      `json:"skipped"`
}

// MapMarkers geocodes the filtered requests one at a time with a fixed
// delay between calls; the free provider allows one request per second
// and the sequential pacing is the backpressure policy. Unresolvable
// addresses are counted and skipped, never fatal.
func (s *CollectionService) MapMarkers(ctx context.Context, filter MarkerFilter) (*MarkerReport, error) {
	requests, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}

	colors := make(map[uuid.UUID]string, len(vehicles))
	for _, v := range vehicles {
		colors[v.ID] = v.DisplayColor()
	}

	report := &MarkerReport{Markers: []Marker{}}
	for _, req := range requests {
		if filter.VehicleID != nil && (req.VehicleID == nil || *req.VehicleID != *filter.VehicleID) {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}

		if strings.TrimSpace(req.Address) == "" {
			report.Skipped++
			continue
		}

		coords := s.geocoder.Resolve(ctx, req.Address)
		if coords == nil {
			s.log.Warn().Str("address", req.Address).Msg("marker skipped: address not resolved")
			report.Failed++
		} else {
			color := model.NeutralColor
			if req.VehicleID != nil {
				if c, ok := colors[*req.VehicleID]; ok {
					color = c
				}
			}
			report.Markers = append(report.Markers, Marker{
				CollectionID: req.ID,
				Name:         req.Name,
				Address:      req.Address,
				Position:     *coords,
				Color:        color,
				Status:       req.Status,
			})
			report.Success++
		}

		s.sleep(s.markerDelay)
	}
	return report, nil
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func (s *CollectionService) ExportExcel(ctx context.Context) (*ExportResult, error) {
	requests, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}

	content, err := s.excel.Generate(requests, vehicles)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("collections-%s.xlsx", s.now().Format("20060102")),
		Content:  content,
	}, nil
}

func validStatus(status model.CollectionStatus) bool {
	switch status {
	case model.StatusUncollected, model.StatusCollected, model.StatusOnHold:
		return true
	}
	return false
}
