package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/paylinear/payroll_backend/internal/apperrors"
	portssvc "github.com/paylinear/payroll_backend/internal/core/ports/services"
	"github.com/paylinear/payroll_backend/internal/dto"
	"github.com/paylinear/payroll_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// payrollHandler handles HTTP requests related to payroll runs.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

// newPayrollHandler creates a new payrollHandler.
func newPayrollHandler(ps portssvc.PayrollSvcFacade) *payrollHandler {
	return &payrollHandler{
		payrollService: ps,
	}
}

// registerPayrollRoutes registers routes related to payroll runs.
func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := newPayrollHandler(payrollService)

	runs := rg.Group("/payroll-runs")
	{
		runs.POST("", h.createPayrollRun)
		runs.GET("", h.listPayrollRuns)
		runs.GET("/:runID", h.getPayrollRun)
		runs.GET("/:runID/summary", h.summarizePayrollRun)
		runs.POST("/:runID/advance", h.advancePayrollRun)
		runs.POST("/:runID/checkout", h.checkoutPayrollRun)
		runs.POST("/:runID/cancel", h.cancelPayrollRun)
	}
}

// createPayrollRun creates a draft run from selected employees.
func (h *payrollHandler) createPayrollRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePayrollRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePayrollRun", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("actor", actor))
	logger.Info("Received request to create payroll run", slog.String("name", req.Name), slog.Int("item_count", len(req.Items)))

	createdRun, err := h.payrollService.CreatePayrollRun(c.Request.Context(), req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrInvalidAmount) {
			logger.Warn("Validation error creating payroll run", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create payroll run in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payroll run"})
		}
		return
	}

	logger.Info("Payroll run created successfully", slog.String("payroll_run_id", createdRun.PayrollRunID))
	c.JSON(http.StatusCreated, dto.ToPayrollRunResponse(createdRun))
}

// getPayrollRun retrieves a run with its items.
func (h *payrollHandler) getPayrollRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	runID := c.Param("runID")

	logger = logger.With(slog.String("payroll_run_id", runID))
	logger.Info("Received request to get payroll run")

	run, err := h.payrollService.GetPayrollRunByID(c.Request.Context(), runID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payroll run not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Payroll run not found"})
		} else {
			logger.Error("Failed to get payroll run from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payroll run"})
		}
		return
	}

	logger.Info("Payroll run retrieved successfully")
	c.JSON(http.StatusOK, dto.ToPayrollRunResponse(run))
}

// listPayrollRuns retrieves runs without items, newest first.
func (h *payrollHandler) listPayrollRuns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListPayrollRuns", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	logger.Info("Received request to list payroll runs", slog.Int("limit", params.Limit), slog.Int("offset", params.Offset))

	runs, err := h.payrollService.ListPayrollRuns(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list payroll runs from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payroll runs"})
		return
	}

	logger.Info("Payroll runs listed successfully", slog.Int("count", len(runs)))
	c.JSON(http.StatusOK, dto.ToListPayrollRunResponse(runs))
}

// summarizePayrollRun recomputes the run's cost breakdown from the current
// rate table. Items that fail conversion are reported alongside the summary
// of the remaining valid items.
func (h *payrollHandler) summarizePayrollRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	runID := c.Param("runID")

	logger = logger.With(slog.String("payroll_run_id", runID))
	logger.Info("Received request to summarize payroll run")

	summary, failed, err := h.payrollService.SummarizePayrollRun(c.Request.Context(), runID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payroll run not found for summary")
			c.JSON(http.StatusNotFound, gin.H{"error": "Payroll run not found"})
		} else {
			logger.Error("Failed to summarize payroll run in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize payroll run"})
		}
		return
	}

	logger.Info("Payroll run summarized successfully", slog.Int("failed_items", len(failed)))
	c.JSON(http.StatusOK, dto.ToCostSummaryResponse(summary, failed))
}

// advancePayrollRun moves the run to the next workflow stage.
func (h *payrollHandler) advancePayrollRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	runID := c.Param("runID")

	actor := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("payroll_run_id", runID), slog.String("actor", actor))
	logger.Info("Received request to advance payroll run")

	run, err := h.payrollService.AdvancePayrollRun(c.Request.Context(), runID, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payroll run not found for advance")
			c.JSON(http.StatusNotFound, gin.H{"error": "Payroll run not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Payroll run cannot advance", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to advance payroll run in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance payroll run"})
		}
		return
	}

	logger.Info("Payroll run advanced successfully", slog.String("status", string(run.Status)))
	c.JSON(http.StatusOK, dto.ToPayrollRunResponse(run))
}

// checkoutPayrollRun quotes the run in the chosen payment currency and marks
// it paid.
func (h *payrollHandler) checkoutPayrollRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	runID := c.Param("runID")

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CheckoutPayrollRun", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	logger = logger.With(
		slog.String("payroll_run_id", runID),
		slog.String("payment_currency", req.PaymentCurrency),
		slog.String("actor", actor),
	)
	logger.Info("Received request to checkout payroll run")

	quote, err := h.payrollService.CheckoutPayrollRun(c.Request.Context(), runID, req.PaymentCurrency, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payroll run not found for checkout")
			c.JSON(http.StatusNotFound, gin.H{"error": "Payroll run not found"})
		} else if errors.Is(err, apperrors.ErrValidation) ||
			errors.Is(err, apperrors.ErrUnknownCurrency) ||
			errors.Is(err, apperrors.ErrZeroRate) {
			logger.Warn("Payroll run cannot be checked out", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to checkout payroll run in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to checkout payroll run"})
		}
		return
	}

	logger.Info("Payroll run checked out successfully")
	c.JSON(http.StatusOK, dto.ToCheckoutQuoteResponse(quote))
}

// cancelPayrollRun cancels a run that has not been paid.
func (h *payrollHandler) cancelPayrollRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	runID := c.Param("runID")

	actor := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("payroll_run_id", runID), slog.String("actor", actor))
	logger.Info("Received request to cancel payroll run")

	run, err := h.payrollService.CancelPayrollRun(c.Request.Context(), runID, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payroll run not found for cancellation")
			c.JSON(http.StatusNotFound, gin.H{"error": "Payroll run not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Payroll run cannot be cancelled", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to cancel payroll run in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel payroll run"})
		}
		return
	}

	logger.Info("Payroll run cancelled successfully")
	c.JSON(http.StatusOK, dto.ToPayrollRunResponse(run))
}
