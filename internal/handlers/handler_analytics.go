package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/HPG21/czp-releases/internal/core/ports/services"
	"github.com/HPG21/czp-releases/internal/dto"
	"github.com/HPG21/czp-releases/internal/middleware"
	"github.com/gin-gonic/gin"
)

type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvc
}

func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvc) {
	h := &analyticsHandler{analyticsService: analyticsService}
	rg.GET("/analytics", h.getReport)
}

// getReport godoc
// @Summary Salary analytics
// @Description Aggregates the filtered history into the analytics cards enabled in the user's settings. Period, year and explicit dates combine: a record must match every filter given.
// @Tags analytics
// @Produce json
// @Param period query string false "Relative period" Enums(ALL_TIME, LAST_3_MONTHS, LAST_6_MONTHS, LAST_YEAR, LAST_2_YEARS, LAST_3_YEARS)
// @Param year query int false "Calendar year"
// @Param fromDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param toDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} dto.AnalyticsResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build analytics"
// @Security BearerAuth
// @Router /analytics [get]
func (h *analyticsHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var query dto.AnalyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query params for Analytics", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	opts, err := query.ToFilterOptions()
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build analytics")
		return
	}

	report, err := h.analyticsService.GetReport(c.Request.Context(), userID, opts)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build analytics")
		return
	}

	logger.Debug("Analytics report built", slog.String("period", string(opts.Period)), slog.Int("calculations", report.FilteredCount))
	c.JSON(http.StatusOK, dto.ToAnalyticsResponse(*report))
}
