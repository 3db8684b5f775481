package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nikoyaka/dispatch-service/internal/service"
)

type Handler struct {
	collections *service.CollectionService
	vehicles    *service.VehicleService
	areaRules   *service.AreaRuleService
	wasteTypes  *service.WasteTypeService
	log         zerolog.Logger
}

func NewHandler(
	collections *service.CollectionService,
	vehicles *service.VehicleService,
	areaRules *service.AreaRuleService,
	wasteTypes *service.WasteTypeService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		collections: collections,
		vehicles:    vehicles,
		areaRules:   areaRules,
		wasteTypes:  wasteTypes,
		log:         log,
	}
}

func (h *Handler) Register(router *gin.Engine) {
	router.GET("/collections", h.listCollections)
	router.POST("/collections", h.createCollection)
	router.PUT("/collections/:id", h.updateCollection)
	router.DELETE("/collections/:id", h.deleteCollection)
	router.GET("/collections/stats", h.collectionStats)
	router.GET("/collections/markers", h.collectionMarkers)
	router.GET("/collections/export", h.exportCollections)
	router.POST("/collections/intake/ocr", h.intakeOCR)

	router.GET("/vehicles", h.listVehicles)
	router.POST("/vehicles", h.createVehicle)
	router.PUT("/vehicles/:id", h.updateVehicle)
	router.DELETE("/vehicles/:id", h.deleteVehicle)
	router.GET("/vehicles/:id/route-sheet", h.vehicleRouteSheet)

	router.GET("/area-rules", h.listAreaRules)
	router.POST("/area-rules", h.createAreaRule)
	router.PUT("/area-rules/:id", h.updateAreaRule)
	router.DELETE("/area-rules/:id", h.deleteAreaRule)

	router.GET("/waste-types", h.listWasteTypes)
	router.POST("/waste-types", h.createWasteType)
	router.PUT("/waste-types/:id", h.updateWasteType)
	router.DELETE("/waste-types/:id", h.deleteWasteType)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrNoText):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrVehicleInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, nil
		}
	}
	return nil, service.ErrInvalidInput
}

func parseOptionalUUID(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, service.ErrInvalidInput
	}
	return &id, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
