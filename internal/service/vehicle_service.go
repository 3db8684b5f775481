package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nikoyaka/dispatch-service/internal/model"
	"github.com/nikoyaka/dispatch-service/internal/schedule"
)

type PDFGenerator interface {
	Generate(sheet model.RouteSheet) ([]byte, error)
}

type VehicleService struct {
	repo        VehicleStore
	collections CollectionStore
	pdf         PDFGenerator
	now         func() time.Time
	log         zerolog.Logger
}

func NewVehicleService(repo VehicleStore, collections CollectionStore, pdf PDFGenerator, log zerolog.Logger) *VehicleService {
	return &VehicleService{
		repo:        repo,
		collections: collections,
		pdf:         pdf,
		now:         time.Now,
		log:         log,
	}
}

type VehicleInput struct {
	VehicleNumber string
	IsActive      bool
	Color         string
	Schedule      schedule.Schedule
}

func (s *VehicleService) Create(ctx context.Context, input VehicleInput) (*model.Vehicle, error) {
	if strings.TrimSpace(input.VehicleNumber) == "" {
		return nil, fmt.Errorf("%w: vehicle_number is required", ErrInvalidInput)
	}

	color := input.Color
	if color == "" {
		// Positional default from the fixed palette.
		existing, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		color = model.VehiclePalette[len(existing)%len(model.VehiclePalette)]
	}

	return s.repo.Create(ctx, model.Vehicle{
		VehicleNumber: input.VehicleNumber,
		IsActive:      input.IsActive,
		Color:         color,
		Schedule:      input.Schedule,
	})
}

func (s *VehicleService) Update(ctx context.Context, id uuid.UUID, input VehicleInput) (*model.Vehicle, error) {
	if strings.TrimSpace(input.VehicleNumber) == "" {
		return nil, fmt.Errorf("%w: vehicle_number is required", ErrInvalidInput)
	}

	updated, err := s.repo.Update(ctx, model.Vehicle{
		ID:            id,
		VehicleNumber: input.VehicleNumber,
		IsActive:      input.IsActive,
		Color:         input.Color,
		Schedule:      input.Schedule,
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *VehicleService) List(ctx context.Context) ([]model.Vehicle, error) {
	return s.repo.List(ctx)
}

func (s *VehicleService) Get(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	vehicle, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

// Delete removes a vehicle. A vehicle still referenced by requests is
// only deleted when force is set; the returned error carries the
// reference count so the caller can ask for confirmation. References
// are left dangling on purpose, deletion never cascades.
func (s *VehicleService) Delete(ctx context.Context, id uuid.UUID, force bool) error {
	count, err := s.collections.CountByVehicle(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 && !force {
		return fmt.Errorf("%w: %d requests reference it", ErrVehicleInUse, count)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	if count > 0 {
		s.log.Warn().
			Str("vehicle_id", id.String()).
			Int64("dangling_references", count).
			Msg("vehicle deleted while still referenced")
	}
	return nil
}

type RouteSheetResult struct {
	FileName string
	Content  []byte
}

// RouteSheet renders the printable work sheet for one vehicle.
func (s *VehicleService) RouteSheet(ctx context.Context, id uuid.UUID) (*RouteSheetResult, error) {
	vehicle, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	all, err := s.collections.List(ctx)
	if err != nil {
		return nil, err
	}
	var assigned []model.CollectionRequest
	for _, req := range all {
		if req.VehicleID != nil && *req.VehicleID == id {
			assigned = append(assigned, req)
		}
	}

	content, err := s.pdf.Generate(model.RouteSheet{
		Vehicle:     *vehicle,
		Requests:    assigned,
		GeneratedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}

	name := sanitizeFileName(vehicle.VehicleNumber)
	if name == "" {
		name = vehicle.ID.String()
	}
	return &RouteSheetResult{
		FileName: fmt.Sprintf("route-%s-%s.pdf", name, s.now().Format("20060102")),
		Content:  content,
	}, nil
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
