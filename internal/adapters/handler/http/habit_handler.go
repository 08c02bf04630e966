package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-tracker/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Name string `json:"name" binding:"required"`
}

type updateHabitRequest struct {
	Name      *string `json:"name"`
	SortOrder *int    `json:"sort_order"`
}

// applyTemplateRequest takes either a catalogue template id or an explicit list of names.
type applyTemplateRequest struct {
	TemplateID string   `json:"template_id"`
	Names      []string `json:"names"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.GET("", h.List)
		habits.POST("", h.Create)
		habits.GET("/templates", h.Templates)
		habits.POST("/templates", h.ApplyTemplate)
		habits.PATCH("/:id", h.Update)
		habits.POST("/:id/archive", h.Archive)
		habits.POST("/:id/restore", h.Restore)
	}
}

// List godoc
// @Summary  List active habits in display order
// @Tags     habits
// @Produce  json
// @Success  200 {array} domain.Habit
// @Security BearerAuth
// @Router   /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.svc.ListActive(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Create godoc
// @Summary  Add a habit at the end of the list
// @Tags     habits
// @Accept   json
// @Produce  json
// @Param    body body createHabitRequest true "Habit"
// @Success  201 {object} domain.Habit
// @Failure  400 {object} errorResponse
// @Security BearerAuth
// @Router   /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name", err)
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		UserID: userID,
		Name:   req.Name,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// Templates godoc
// @Summary  List the built-in habit templates
// @Tags     habits
// @Produce  json
// @Success  200 {array} domain.HabitTemplate
// @Security BearerAuth
// @Router   /habits/templates [get]
func (h *HabitHandler) Templates(c *gin.Context) {
	c.JSON(http.StatusOK, domain.HabitTemplates)
}

// ApplyTemplate godoc
// @Summary  Add every habit of a template, skipping duplicates
// @Tags     habits
// @Accept   json
// @Produce  json
// @Param    body body applyTemplateRequest true "Template id or names"
// @Success  201 {array} domain.Habit
// @Failure  400 {object} errorResponse
// @Security BearerAuth
// @Router   /habits/templates [post]
func (h *HabitHandler) ApplyTemplate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req applyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	names := req.Names
	if req.TemplateID != "" {
		tpl, found := domain.FindTemplate(req.TemplateID)
		if !found {
			badRequest(c, "template_id", errors.New("unknown template"))
			return
		}
		names = tpl.Habits
	}
	if len(names) == 0 {
		badRequest(c, "names", errors.New("template_id or names is required"))
		return
	}

	created, err := h.svc.ApplyTemplate(c.Request.Context(), userID, names)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update godoc
// @Summary  Rename or move a habit
// @Tags     habits
// @Accept   json
// @Produce  json
// @Param    id   path string             true "Habit ID"
// @Param    body body updateHabitRequest true "Fields to change"
// @Success  200 {object} domain.Habit
// @Failure  400 {object} errorResponse
// @Failure  404 {object} errorResponse
// @Security BearerAuth
// @Router   /habits/{id} [patch]
func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if req.Name == nil && req.SortOrder == nil {
		badRequest(c, "name", errors.New("nothing to update"))
		return
	}

	habit, err := h.svc.Update(c.Request.Context(), services.UpdateHabitInput{
		ID:        c.Param("id"),
		UserID:    userID,
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// Archive godoc
// @Summary  Hide a habit from tracking and stats, keeping its history
// @Tags     habits
// @Produce  json
// @Param    id path string true "Habit ID"
// @Success  200 {object} domain.Habit
// @Failure  404 {object} errorResponse
// @Security BearerAuth
// @Router   /habits/{id}/archive [post]
func (h *HabitHandler) Archive(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	habit, err := h.svc.Archive(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// Restore godoc
// @Summary  Bring an archived habit back
// @Tags     habits
// @Produce  json
// @Param    id path string true "Habit ID"
// @Success  200 {object} domain.Habit
// @Failure  404 {object} errorResponse
// @Security BearerAuth
// @Router   /habits/{id}/restore [post]
func (h *HabitHandler) Restore(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	habit, err := h.svc.Restore(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}
