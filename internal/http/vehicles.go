package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nikoyaka/dispatch-service/internal/model"
	"github.com/nikoyaka/dispatch-service/internal/schedule"
	"github.com/nikoyaka/dispatch-service/internal/service"
)

type vehicleRequestBody struct {
	VehicleNumber string            `json:"vehicle_number" binding:"required"`
	IsActive      *bool             `json:"is_active"`
	Color         string            `json:"color"`
	Schedule      schedule.Schedule `json:"schedule"`
}

type vehicleResponse struct {
	ID              uuid.UUID         `json:"id"`
	VehicleNumber   string            `json:"vehicle_number"`
	IsActive        bool              `json:"is_active"`
	Color           string            `json:"color"`
	Schedule        schedule.Schedule `json:"schedule"`
	ScheduleSummary string            `json:"schedule_summary"`
	CreatedAt       string            `json:"created_at"`
}

func toVehicleResponse(v model.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:              v.ID,
		VehicleNumber:   v.VehicleNumber,
		IsActive:        v.IsActive,
		Color:           v.DisplayColor(),
		Schedule:        v.Schedule,
		ScheduleSummary: schedule.Summarize(v.Schedule),
		CreatedAt:       v.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *Handler) listVehicles(c *gin.Context) {
	vehicles, err := h.vehicles.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]vehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResponse(v))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createVehicle(c *gin.Context) {
	var body vehicleRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// New vehicles default to active unless the flag is sent.
	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	created, err := h.vehicles.Create(c.Request.Context(), service.VehicleInput{
		VehicleNumber: body.VehicleNumber,
		IsActive:      isActive,
		Color:         body.Color,
		Schedule:      body.Schedule,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toVehicleResponse(*created))
}

func (h *Handler) updateVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var body vehicleRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	updated, err := h.vehicles.Update(c.Request.Context(), id, service.VehicleInput{
		VehicleNumber: body.VehicleNumber,
		IsActive:      isActive,
		Color:         body.Color,
		Schedule:      body.Schedule,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVehicleResponse(*updated))
}

func (h *Handler) deleteVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	force := c.Query("force") == "true"
	if err := h.vehicles.Delete(c.Request.Context(), id, force); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) vehicleRouteSheet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.vehicles.RouteSheet(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}
