package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nikoyaka/dispatch-service/internal/model"
	"github.com/nikoyaka/dispatch-service/internal/service"
)

type wasteTypeRequestBody struct {
	TypeName     string `json:"type_name" binding:"required"`
	IsActive     *bool  `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
	ValidFrom    string `json:"valid_from"`
	ValidUntil   string `json:"valid_until"`
}

type wasteTypeResponse struct {
	ID           uuid.UUID `json:"id"`
	TypeName     string    `json:"type_name"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	ValidFrom    string    `json:"valid_from"`
	ValidUntil   string    `json:"valid_until"`
	CreatedAt    string    `json:"created_at"`
}

func toWasteTypeResponse(wt model.WasteType) wasteTypeResponse {
	return wasteTypeResponse{
		ID:           wt.ID,
		TypeName:     wt.TypeName,
		IsActive:     wt.IsActive,
		DisplayOrder: wt.DisplayOrder,
		ValidFrom:    formatDate(wt.ValidFrom),
		ValidUntil:   formatDate(wt.ValidUntil),
		CreatedAt:    wt.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *Handler) listWasteTypes(c *gin.Context) {
	var (
		types []model.WasteType
		err   error
	)
	if c.Query("active") == "true" {
		types, err = h.wasteTypes.ListActive(c.Request.Context())
	} else {
		types, err = h.wasteTypes.List(c.Request.Context())
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]wasteTypeResponse, 0, len(types))
	for _, wt := range types {
		out = append(out, toWasteTypeResponse(wt))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) wasteTypeInput(c *gin.Context) (service.WasteTypeInput, bool) {
	var body wasteTypeRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.WasteTypeInput{}, false
	}

	validFrom, err := parseDate(body.ValidFrom)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid valid_from"})
		return service.WasteTypeInput{}, false
	}
	validUntil, err := parseDate(body.ValidUntil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid valid_until"})
		return service.WasteTypeInput{}, false
	}

	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	return service.WasteTypeInput{
		TypeName:     body.TypeName,
		IsActive:     isActive,
		DisplayOrder: body.DisplayOrder,
		ValidFrom:    validFrom,
		ValidUntil:   validUntil,
	}, true
}

func (h *Handler) createWasteType(c *gin.Context) {
	input, ok := h.wasteTypeInput(c)
	if !ok {
		return
	}

	created, err := h.wasteTypes.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toWasteTypeResponse(*created))
}

func (h *Handler) updateWasteType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	input, ok := h.wasteTypeInput(c)
	if !ok {
		return
	}

	updated, err := h.wasteTypes.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWasteTypeResponse(*updated))
}

func (h *Handler) deleteWasteType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.wasteTypes.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
