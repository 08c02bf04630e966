package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-tracker/internal/core/services"
)

type SettingsHandler struct {
	svc *services.SettingsService
}

func NewSettingsHandler(svc *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

type updateSettingsRequest struct {
	PassPercentage *int `json:"pass_percentage" binding:"required"`
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/settings", h.Get)
	router.PUT("/settings", h.Update)
}

// Get godoc
// @Summary  Read the user's settings, creating defaults on first access
// @Tags     settings
// @Produce  json
// @Success  200 {object} domain.Settings
// @Security BearerAuth
// @Router   /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	settings, err := h.svc.EnsureSettings(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update godoc
// @Summary  Change the daily pass threshold
// @Tags     settings
// @Accept   json
// @Produce  json
// @Param    body body updateSettingsRequest true "Threshold 0-100"
// @Success  200 {object} domain.Settings
// @Failure  400 {object} errorResponse
// @Security BearerAuth
// @Router   /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "pass_percentage", err)
		return
	}

	settings, err := h.svc.SetPassPercentage(c.Request.Context(), userID, *req.PassPercentage)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPassPercentage) {
			badRequest(c, "pass_percentage", err)
			return
		}
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
