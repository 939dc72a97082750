package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/paylinear/payroll_backend/internal/apperrors"
	"github.com/paylinear/payroll_backend/internal/core/domain"
	portssvc "github.com/paylinear/payroll_backend/internal/core/ports/services"
	"github.com/paylinear/payroll_backend/internal/dto"
	"github.com/paylinear/payroll_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// costingHandler handles ad-hoc costing calculations that are not tied to a
// persisted run or batch.
type costingHandler struct {
	costingService portssvc.CostingSvcFacade
}

// newCostingHandler creates a new costingHandler.
func newCostingHandler(cs portssvc.CostingSvcFacade) *costingHandler {
	return &costingHandler{
		costingService: cs,
	}
}

// registerCostingRoutes registers the what-if calculation routes.
func registerCostingRoutes(rg *gin.RouterGroup, costingService portssvc.CostingSvcFacade, rateLimiter *limiter.Limiter) {
	h := newCostingHandler(costingService)

	costing := rg.Group("/costing", middleware.RateLimit(rateLimiter))
	{
		costing.POST("/summary", h.summarize)
		costing.POST("/quote", h.quote)
	}
}

// summarize converts and aggregates arbitrary line items against the current
// rate table. Items that fail conversion are reported alongside the summary
// of the remaining valid items.
func (h *costingHandler) summarize(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CostSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Summarize", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to summarize line items", slog.Int("item_count", len(req.Items)))

	summary, failed, err := h.costingService.Summarize(c.Request.Context(), req.ToLineItems())
	if err != nil {
		logger.Error("Failed to summarize line items in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize line items"})
		return
	}

	logger.Info("Line items summarized successfully", slog.Int("failed_items", len(failed)))
	c.JSON(http.StatusOK, dto.ToCostSummaryResponse(summary, failed))
}

// quote computes a checkout quote for already-aggregated totals.
func (h *costingHandler) quote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Quote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("payment_currency", req.PaymentCurrency))
	logger.Info("Received request to quote totals")

	summary := domain.CostSummary{
		TotalSettlementValue: req.Subtotal,
		TotalFee:             req.FeeTotal,
	}
	quote, err := h.costingService.QuoteTotals(c.Request.Context(), summary, req.PaymentCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownCurrency) || errors.Is(err, apperrors.ErrZeroRate) {
			logger.Warn("Cannot quote totals", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to quote totals in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to quote totals"})
		}
		return
	}

	logger.Info("Totals quoted successfully")
	c.JSON(http.StatusOK, dto.ToCheckoutQuoteResponse(quote))
}
