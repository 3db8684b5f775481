package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nikoyaka/dispatch-service/internal/model"
	"github.com/nikoyaka/dispatch-service/internal/schedule"
	"github.com/nikoyaka/dispatch-service/internal/service"
)

type collectionRequestBody struct {
	Name                  string            `json:"name"`
	Address               string            `json:"address" binding:"required"`
	StartDate             string            `json:"start_date"`
	WasteType             string            `json:"waste_type"`
	Combustible           schedule.Schedule `json:"combustible_schedule"`
	NonCombustibleEnabled bool              `json:"non_combustible_enabled"`
	NonCombustible        schedule.Schedule `json:"non_combustible_schedule"`
	VehicleID             string            `json:"vehicle_id"`
	Status                string            `json:"status"`
	Notes                 string            `json:"notes"`
}

type collectionResponse struct {
	ID                    uuid.UUID         `json:"id"`
	Name                  string            `json:"name"`
	Address               string            `json:"address"`
	StartDate             string            `json:"start_date"`
	WasteType             string            `json:"waste_type"`
	Combustible           schedule.Schedule `json:"combustible_schedule"`
	CombustibleSummary    string            `json:"combustible_summary"`
	NonCombustibleEnabled bool              `json:"non_combustible_enabled"`
	NonCombustible        schedule.Schedule `json:"non_combustible_schedule"`
	NonCombustibleSummary string            `json:"non_combustible_summary"`
	VehicleID             *uuid.UUID        `json:"vehicle_id"`
	Status                string            `json:"status"`
	ManualAssignment      bool              `json:"manual_assignment"`
	Notes                 string            `json:"notes"`
	CreatedAt             string            `json:"created_at"`
}

func toCollectionResponse(req model.CollectionRequest) collectionResponse {
	return collectionResponse{
		ID:                    req.ID,
		Name:                  req.Name,
		Address:               req.Address,
		StartDate:             formatDate(req.StartDate),
		WasteType:             req.WasteType,
		Combustible:           req.Combustible,
		CombustibleSummary:    schedule.Summarize(req.Combustible),
		NonCombustibleEnabled: req.NonCombustibleEnabled,
		NonCombustible:        req.NonCombustible,
		NonCombustibleSummary: schedule.Summarize(req.NonCombustible),
		VehicleID:             req.VehicleID,
		Status:                string(req.Status),
		ManualAssignment:      req.ManualAssignment,
		Notes:                 req.Notes,
		CreatedAt:             req.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *Handler) listCollections(c *gin.Context) {
	vehicleID, err := parseOptionalUUID(c.Query("vehicle_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle_id"})
		return
	}
	status := model.CollectionStatus(c.Query("status"))

	requests, err := h.collections.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]collectionResponse, 0, len(requests))
	for _, req := range requests {
		if vehicleID != nil && (req.VehicleID == nil || *req.VehicleID != *vehicleID) {
			continue
		}
		if status != "" && req.Status != status {
			continue
		}
		out = append(out, toCollectionResponse(req))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createCollection(c *gin.Context) {
	var body collectionRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := parseDate(body.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	vehicleID, err := parseOptionalUUID(body.VehicleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle_id"})
		return
	}

	created, err := h.collections.Create(c.Request.Context(), service.CreateCollectionInput{
		Name:                  body.Name,
		Address:               body.Address,
		StartDate:             startDate,
		WasteType:             body.WasteType,
		Combustible:           body.Combustible,
		NonCombustibleEnabled: body.NonCombustibleEnabled,
		NonCombustible:        body.NonCombustible,
		VehicleID:             vehicleID,
		Notes:                 body.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCollectionResponse(*created))
}

func (h *Handler) updateCollection(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var body collectionRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := parseDate(body.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	vehicleID, err := parseOptionalUUID(body.VehicleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle_id"})
		return
	}

	updated, err := h.collections.Update(c.Request.Context(), id, service.UpdateCollectionInput{
		Name:                  body.Name,
		Address:               body.Address,
		StartDate:             startDate,
		WasteType:             body.WasteType,
		Combustible:           body.Combustible,
		NonCombustibleEnabled: body.NonCombustibleEnabled,
		NonCombustible:        body.NonCombustible,
		VehicleID:             vehicleID,
		Status:                model.CollectionStatus(body.Status),
		Notes:                 body.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollectionResponse(*updated))
}

func (h *Handler) deleteCollection(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.collections.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) collectionStats(c *gin.Context) {
	stats, err := h.collections.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) collectionMarkers(c *gin.Context) {
	vehicleID, err := parseOptionalUUID(c.Query("vehicle_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle_id"})
		return
	}

	report, err := h.collections.MapMarkers(c.Request.Context(), service.MarkerFilter{
		VehicleID: vehicleID,
		Status:    model.CollectionStatus(c.Query("status")),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) exportCollections(c *gin.Context) {
	result, err := h.collections.ExportExcel(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}

type intakeRequestBody struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

func (h *Handler) intakeOCR(c *gin.Context) {
	var body intakeRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.collections.IntakeFromOCR(c.Request.Context(), service.IntakeInput{
		Text:       body.Text,
		Confidence: body.Confidence,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}
