package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-tracker/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/tracker", h.GetTracker)
	r.GET("/stats/charts", h.GetCharts)
	r.GET("/stats/series", h.GetSeries)
}

// GetTracker godoc
// @Summary  Habits, completions and score of one day
// @Tags     stats
// @Produce  json
// @Param    date query string false "Day as YYYY-MM-DD, defaults to today"
// @Success  200 {object} domain.TrackerDay
// @Failure  400 {object} errorResponse
// @Security BearerAuth
// @Router   /tracker [get]
func (h *StatsHandler) GetTracker(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	day, ok := dayQuery(c, "date")
	if !ok {
		return
	}

	var stamp string
	if !day.IsZero() {
		stamp = domain.FormatDay(day)
	}

	view, err := h.svc.GetDay(c.Request.Context(), userID, stamp)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetCharts godoc
// @Summary  Day, week and month series plus active-day counters
// @Tags     stats
// @Produce  json
// @Param    today query string false "Reference day as YYYY-MM-DD"
// @Success  200 {object} domain.Charts
// @Failure  400 {object} errorResponse
// @Security BearerAuth
// @Router   /stats/charts [get]
func (h *StatsHandler) GetCharts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	today, ok := dayQuery(c, "today")
	if !ok {
		return
	}

	charts, err := h.svc.GetCharts(c.Request.Context(), domain.ChartsInput{
		UserID: userID,
		Today:  today,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, charts)
}

// GetSeries godoc
// @Summary  A single bucketed series
// @Tags     stats
// @Produce  json
// @Param    mode  query string true  "day, week or month"
// @Param    today query string false "Reference day as YYYY-MM-DD"
// @Success  200 {array} domain.SeriesPoint
// @Failure  400 {object} errorResponse
// @Security BearerAuth
// @Router   /stats/series [get]
func (h *StatsHandler) GetSeries(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	mode, err := domain.ParseBucketMode(c.DefaultQuery("mode", string(domain.BucketDay)))
	if err != nil {
		badRequest(c, "mode", err)
		return
	}

	today, ok := dayQuery(c, "today")
	if !ok {
		return
	}

	series, err := h.svc.GetSeries(c.Request.Context(), userID, mode, today)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, series)
}
