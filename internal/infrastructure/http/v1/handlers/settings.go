package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repairdesk/internal/domain/settings"
	"repairdesk/internal/infrastructure/http/v1/dto"
)

// SettingsHandler handles HTTP requests for shop settings.
type SettingsHandler struct {
	*BaseHandler
	service *settings.Service
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(base *BaseHandler, service *settings.Service) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Get handles GET /settings
func (h *SettingsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	current, err := h.service.Get(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSettings(current))
}

// Update handles PUT /settings
func (h *SettingsHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateSettingsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(ctx, &settings.Settings{
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	response := dto.FromSettings(updated)
	h.CompleteIdempotency(c, http.StatusOK, "application/json", response)
	c.JSON(http.StatusOK, response)
}

// RegisterRoutes registers settings routes.
func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Get)
	rg.PUT("", h.Update)
}
