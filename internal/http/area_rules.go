package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nikoyaka/dispatch-service/internal/model"
	"github.com/nikoyaka/dispatch-service/internal/service"
)

type areaRuleRequestBody struct {
	AreaPattern string `json:"area_pattern" binding:"required"`
	VehicleID   string `json:"vehicle_id" binding:"required"`
	Priority    int    `json:"priority"`
}

type areaRuleResponse struct {
	ID          uuid.UUID `json:"id"`
	AreaPattern string    `json:"area_pattern"`
	VehicleID   uuid.UUID `json:"vehicle_id"`
	Priority    int       `json:"priority"`
	CreatedAt   string    `json:"created_at"`
}

func toAreaRuleResponse(rule model.AreaRule) areaRuleResponse {
	return areaRuleResponse{
		ID:          rule.ID,
		AreaPattern: rule.AreaPattern,
		VehicleID:   rule.VehicleID,
		Priority:    rule.Priority,
		CreatedAt:   rule.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *Handler) listAreaRules(c *gin.Context) {
	rules, err := h.areaRules.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]areaRuleResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, toAreaRuleResponse(rule))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createAreaRule(c *gin.Context) {
	var body areaRuleRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicleID, err := uuid.Parse(strings.TrimSpace(body.VehicleID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle_id"})
		return
	}

	created, err := h.areaRules.Create(c.Request.Context(), service.AreaRuleInput{
		AreaPattern: body.AreaPattern,
		VehicleID:   vehicleID,
		Priority:    body.Priority,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAreaRuleResponse(*created))
}

func (h *Handler) updateAreaRule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var body areaRuleRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicleID, err := uuid.Parse(strings.TrimSpace(body.VehicleID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle_id"})
		return
	}

	updated, err := h.areaRules.Update(c.Request.Context(), id, service.AreaRuleInput{
		AreaPattern: body.AreaPattern,
		VehicleID:   vehicleID,
		Priority:    body.Priority,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAreaRuleResponse(*updated))
}

func (h *Handler) deleteAreaRule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.areaRules.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
