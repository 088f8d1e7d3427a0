package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/graceway/travel_accounting/internal/core/ports/services"
	"github.com/graceway/travel_accounting/internal/dto"
	"github.com/graceway/travel_accounting/internal/middleware"
)

// reportingHandler handles HTTP requests related to financial statements.
type reportingHandler struct {
	statement portssvc.StatementGeneratorSvc
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(statement portssvc.StatementGeneratorSvc) *reportingHandler {
	return &reportingHandler{statement: statement}
}

// RegisterReportingRoutes registers routes related to financial statements.
func RegisterReportingRoutes(rg *gin.RouterGroup, statement portssvc.StatementGeneratorSvc) {
	h := newReportingHandler(statement)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/balance-sheet", h.getBalanceSheet)
	}
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing from/to dates. Use YYYY-MM-DD"})
		return
	}
	if params.To.Before(params.From) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not precede from"})
		return
	}

	report, err := h.statement.TrialBalance(c.Request.Context(), params.From, params.To)
	if err != nil {
		logger.Error("Failed to generate trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate trial balance"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.BalanceSheetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing asOf date. Use YYYY-MM-DD"})
		return
	}

	report, err := h.statement.BalanceSheet(c.Request.Context(), params.AsOf)
	if err != nil {
		logger.Error("Failed to generate balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate balance sheet"})
		return
	}

	c.JSON(http.StatusOK, report)
}
