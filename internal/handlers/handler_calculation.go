package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/HPG21/czp-releases/internal/core/ports/services"
	"github.com/HPG21/czp-releases/internal/dto"
	"github.com/HPG21/czp-releases/internal/middleware"
	"github.com/HPG21/czp-releases/internal/utils"
	"github.com/gin-gonic/gin"
)

// calculationHandler handles HTTP requests related to the salary calculator and its history.
type calculationHandler struct {
	calculationService portssvc.CalculationSvcFacade
}

func newCalculationHandler(cs portssvc.CalculationSvcFacade) *calculationHandler {
	return &calculationHandler{
		calculationService: cs,
	}
}

// registerCalculationRoutes registers routes related to calculations.
func registerCalculationRoutes(rg *gin.RouterGroup, calculationService portssvc.CalculationSvcFacade) {
	h := newCalculationHandler(calculationService)

	calculations := rg.Group("/calculations")
	{
		calculations.POST("", h.createCalculation)
		calculations.GET("", h.listCalculations)
		calculations.DELETE("", h.clearHistory)
		calculations.GET("/grouped", h.groupedHistory)
		calculations.GET("/export", h.exportHistory)
		calculations.POST("/import", h.importHistory)
		calculations.POST("/preview", h.previewCalculation)
		calculations.GET("/:calculationID", h.getCalculation)
		calculations.PUT("/:calculationID", h.updateCalculation)
		calculations.DELETE("/:calculationID", h.deleteCalculation)
	}
}

// previewCalculation godoc
// @Summary Preview a salary calculation
// @Description Computes the pay breakdown for the given inputs without saving it. Missing base salary and tax rate come from the user's settings.
// @Tags calculations
// @Accept json
// @Produce json
// @Param inputs body dto.PreviewCalculationRequest true "Calculator inputs"
// @Success 200 {object} dto.PreviewCalculationResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to compute salary"
// @Security BearerAuth
// @Router /calculations/preview [post]
func (h *calculationHandler) previewCalculation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.PreviewCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewCalculation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	inputs, breakdown, err := h.calculationService.PreviewCalculation(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute salary")
		return
	}

	c.JSON(http.StatusOK, dto.PreviewCalculationResponse{
		Inputs:    inputs,
		Breakdown: dto.ToBreakdownResponse(breakdown),
	})
}

// createCalculation godoc
// @Summary Save a monthly calculation
// @Description Computes the salary for the given month and appends it to the history. A month can only be saved once.
// @Tags calculations
// @Accept json
// @Produce json
// @Param calculation body dto.CreateCalculationRequest true "Month and calculator inputs"
// @Success 201 {object} dto.CalculationResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Month already saved"
// @Failure 500 {object} ErrorResponse "Failed to save calculation"
// @Security BearerAuth
// @Router /calculations [post]
func (h *calculationHandler) createCalculation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.CreateCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCalculation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to save calculation", slog.Int("year", req.Year), slog.Int("month", req.Month))

	rec, err := h.calculationService.CreateCalculation(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to save calculation")
		return
	}

	middleware.TrackEvent(c, utils.EventCalculationCreated, map[string]any{
		"month":    rec.Date.Format("2006-01"),
		"tax_rate": rec.TaxRatePercent,
	})
	c.JSON(http.StatusCreated, dto.ToCalculationResponse(rec))
}

// listCalculations godoc
// @Summary List saved calculations
// @Description Returns one page of the history, newest month first.
// @Tags calculations
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListCalculationsResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list calculations"
// @Security BearerAuth
// @Router /calculations [get]
func (h *calculationHandler) listCalculations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.ListCalculationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListCalculations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.calculationService.ListCalculations(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list calculations")
		return
	}

	logger.Debug("Calculations listed", slog.Int("count", len(resp.Calculations)))
	c.JSON(http.StatusOK, resp)
}

// groupedHistory godoc
// @Summary Grouped history
// @Description Returns the history grouped by year and quarter with net totals, newest first.
// @Tags calculations
// @Produce json
// @Param year query int false "Only this year"
// @Success 200 {object} dto.GroupedHistoryResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to group history"
// @Security BearerAuth
// @Router /calculations/grouped [get]
func (h *calculationHandler) groupedHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.GroupedHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for GroupedHistory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	years, err := h.calculationService.GroupedHistory(c.Request.Context(), userID, params.Year)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to group history")
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupedHistoryResponse(years))
}

// exportHistory godoc
// @Summary Export history
// @Description Returns every saved calculation in a form accepted by the import endpoint.
// @Tags calculations
// @Produce json
// @Success 200 {object} dto.HistoryExport
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to export history"
// @Security BearerAuth
// @Router /calculations/export [get]
func (h *calculationHandler) exportHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	export, err := h.calculationService.ExportHistory(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export history")
		return
	}

	logger.Info("History exported", slog.Int("count", len(export.Calculations)))
	c.JSON(http.StatusOK, export)
}

// importHistory godoc
// @Summary Import history
// @Description Recomputes and stores previously exported calculations. Months already saved are skipped.
// @Tags calculations
// @Accept json
// @Produce json
// @Param history body dto.ImportHistoryRequest true "Exported calculations"
// @Success 200 {object} dto.ImportHistoryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to import history"
// @Security BearerAuth
// @Router /calculations/import [post]
func (h *calculationHandler) importHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.ImportHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ImportHistory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.calculationService.ImportHistory(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to import history")
		return
	}

	middleware.TrackEvent(c, utils.EventHistoryImported, map[string]any{
		"imported": resp.Imported,
		"skipped":  resp.Skipped,
	})
	c.JSON(http.StatusOK, resp)
}

// getCalculation godoc
// @Summary Get a calculation
// @Tags calculations
// @Produce json
// @Param calculationID path string true "Calculation ID"
// @Success 200 {object} dto.CalculationResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Calculation not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve calculation"
// @Security BearerAuth
// @Router /calculations/{calculationID} [get]
func (h *calculationHandler) getCalculation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	calculationID := c.Param("calculationID")
	logger = logger.With(slog.String("calculation_id", calculationID))

	rec, err := h.calculationService.GetCalculation(c.Request.Context(), userID, calculationID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve calculation")
		return
	}

	c.JSON(http.StatusOK, dto.ToCalculationResponse(rec))
}

// updateCalculation godoc
// @Summary Edit a calculation
// @Description Replaces the given inputs and recomputes every derived amount. The month cannot be changed.
// @Tags calculations
// @Accept json
// @Produce json
// @Param calculationID path string true "Calculation ID"
// @Param calculation body dto.UpdateCalculationRequest true "Inputs to change"
// @Success 200 {object} dto.CalculationResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Calculation not found"
// @Failure 500 {object} ErrorResponse "Failed to update calculation"
// @Security BearerAuth
// @Router /calculations/{calculationID} [put]
func (h *calculationHandler) updateCalculation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	calculationID := c.Param("calculationID")
	logger = logger.With(slog.String("calculation_id", calculationID))

	var req dto.UpdateCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCalculation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rec, err := h.calculationService.UpdateCalculation(c.Request.Context(), userID, calculationID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update calculation")
		return
	}

	c.JSON(http.StatusOK, dto.ToCalculationResponse(rec))
}

// deleteCalculation godoc
// @Summary Delete a calculation
// @Tags calculations
// @Param calculationID path string true "Calculation ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Calculation not found"
// @Failure 500 {object} ErrorResponse "Failed to delete calculation"
// @Security BearerAuth
// @Router /calculations/{calculationID} [delete]
func (h *calculationHandler) deleteCalculation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	calculationID := c.Param("calculationID")
	logger = logger.With(slog.String("calculation_id", calculationID))

	if err := h.calculationService.DeleteCalculation(c.Request.Context(), userID, calculationID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete calculation")
		return
	}

	c.Status(http.StatusNoContent)
}

// clearHistory godoc
// @Summary Clear history
// @Description Deletes every saved calculation of the user.
// @Tags calculations
// @Produce json
// @Success 200 {object} dto.ClearHistoryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to clear history"
// @Security BearerAuth
// @Router /calculations [delete]
func (h *calculationHandler) clearHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	deleted, err := h.calculationService.ClearHistory(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to clear history")
		return
	}

	middleware.TrackEvent(c, utils.EventHistoryCleared, map[string]any{"deleted": deleted})
	c.JSON(http.StatusOK, dto.ClearHistoryResponse{Deleted: deleted})
}
