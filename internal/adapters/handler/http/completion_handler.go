package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/services"
)

type CompletionHandler struct {
	svc *services.CompletionService
}

func NewCompletionHandler(svc *services.CompletionService) *CompletionHandler {
	return &CompletionHandler{svc: svc}
}

type setCompletionRequest struct {
	HabitID   string `json:"habit_id" binding:"required"`
	Day       string `json:"day" binding:"required"`
	Completed *bool  `json:"completed" binding:"required"`
}

func (h *CompletionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.PUT("/completions", h.Set)
}

// Set godoc
// @Summary  Mark or unmark a habit for a day
// @Tags     completions
// @Accept   json
// @Param    body body setCompletionRequest true "Completion"
// @Success  204
// @Failure  400 {object} errorResponse
// @Failure  403 {object} errorResponse
// @Failure  404 {object} errorResponse
// @Failure  409 {object} errorResponse
// @Security BearerAuth
// @Router   /completions [put]
func (h *CompletionHandler) Set(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req setCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	err := h.svc.SetCompletion(c.Request.Context(), services.SetCompletionInput{
		UserID:    userID,
		HabitID:   req.HabitID,
		Day:       req.Day,
		Completed: *req.Completed,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
