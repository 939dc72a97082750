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

// expenseHandler handles HTTP requests related to expense batches.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

// newExpenseHandler creates a new expenseHandler.
func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{
		expenseService: es,
	}
}

// registerExpenseRoutes registers routes related to expense batches.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	batches := rg.Group("/expense-batches")
	{
		batches.POST("", h.createExpenseBatch)
		batches.GET("", h.listExpenseBatches)
		batches.GET("/:batchID", h.getExpenseBatch)
		batches.GET("/:batchID/summary", h.summarizeExpenseBatch)
		batches.POST("/:batchID/advance", h.advanceExpenseBatch)
		batches.POST("/:batchID/checkout", h.checkoutExpenseBatch)
		batches.POST("/:batchID/cancel", h.cancelExpenseBatch)
	}
}

// createExpenseBatch creates a draft batch of expense receipts.
func (h *expenseHandler) createExpenseBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpenseBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("actor", actor))
	logger.Info("Received request to create expense batch", slog.String("name", req.Name), slog.Int("item_count", len(req.Items)))

	createdBatch, err := h.expenseService.CreateExpenseBatch(c.Request.Context(), req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrInvalidAmount) {
			logger.Warn("Validation error creating expense batch", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create expense batch in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense batch"})
		}
		return
	}

	logger.Info("Expense batch created successfully", slog.String("expense_batch_id", createdBatch.ExpenseBatchID))
	c.JSON(http.StatusCreated, dto.ToExpenseBatchResponse(createdBatch))
}

// getExpenseBatch retrieves a batch with its items.
func (h *expenseHandler) getExpenseBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	logger = logger.With(slog.String("expense_batch_id", batchID))
	logger.Info("Received request to get expense batch")

	batch, err := h.expenseService.GetExpenseBatchByID(c.Request.Context(), batchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Expense batch not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense batch not found"})
		} else {
			logger.Error("Failed to get expense batch from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve expense batch"})
		}
		return
	}

	logger.Info("Expense batch retrieved successfully")
	c.JSON(http.StatusOK, dto.ToExpenseBatchResponse(batch))
}

// listExpenseBatches retrieves batches without items, newest first.
func (h *expenseHandler) listExpenseBatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListExpenseBatches", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	logger.Info("Received request to list expense batches", slog.Int("limit", params.Limit), slog.Int("offset", params.Offset))

	batches, err := h.expenseService.ListExpenseBatches(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list expense batches from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list expense batches"})
		return
	}

	logger.Info("Expense batches listed successfully", slog.Int("count", len(batches)))
	c.JSON(http.StatusOK, dto.ToListExpenseBatchResponse(batches))
}

// summarizeExpenseBatch recomputes the batch's cost breakdown from the
// current rate table.
func (h *expenseHandler) summarizeExpenseBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	logger = logger.With(slog.String("expense_batch_id", batchID))
	logger.Info("Received request to summarize expense batch")

	summary, failed, err := h.expenseService.SummarizeExpenseBatch(c.Request.Context(), batchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Expense batch not found for summary")
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense batch not found"})
		} else {
			logger.Error("Failed to summarize expense batch in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize expense batch"})
		}
		return
	}

	logger.Info("Expense batch summarized successfully", slog.Int("failed_items", len(failed)))
	c.JSON(http.StatusOK, dto.ToCostSummaryResponse(summary, failed))
}

// advanceExpenseBatch moves the batch to the next workflow stage.
func (h *expenseHandler) advanceExpenseBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	actor := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("expense_batch_id", batchID), slog.String("actor", actor))
	logger.Info("Received request to advance expense batch")

	batch, err := h.expenseService.AdvanceExpenseBatch(c.Request.Context(), batchID, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Expense batch not found for advance")
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense batch not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Expense batch cannot advance", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to advance expense batch in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance expense batch"})
		}
		return
	}

	logger.Info("Expense batch advanced successfully", slog.String("status", string(batch.Status)))
	c.JSON(http.StatusOK, dto.ToExpenseBatchResponse(batch))
}

// checkoutExpenseBatch quotes the batch in the chosen payment currency and
// marks it paid.
func (h *expenseHandler) checkoutExpenseBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CheckoutExpenseBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	logger = logger.With(
		slog.String("expense_batch_id", batchID),
		slog.String("payment_currency", req.PaymentCurrency),
		slog.String("actor", actor),
	)
	logger.Info("Received request to checkout expense batch")

	quote, err := h.expenseService.CheckoutExpenseBatch(c.Request.Context(), batchID, req.PaymentCurrency, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Expense batch not found for checkout")
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense batch not found"})
		} else if errors.Is(err, apperrors.ErrValidation) ||
			errors.Is(err, apperrors.ErrUnknownCurrency) ||
			errors.Is(err, apperrors.ErrZeroRate) {
			logger.Warn("Expense batch cannot be checked out", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to checkout expense batch in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to checkout expense batch"})
		}
		return
	}

	logger.Info("Expense batch checked out successfully")
	c.JSON(http.StatusOK, dto.ToCheckoutQuoteResponse(quote))
}

// cancelExpenseBatch cancels a batch that has not been paid.
func (h *expenseHandler) cancelExpenseBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	actor := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("expense_batch_id", batchID), slog.String("actor", actor))
	logger.Info("Received request to cancel expense batch")

	batch, err := h.expenseService.CancelExpenseBatch(c.Request.Context(), batchID, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Expense batch not found for cancellation")
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense batch not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Expense batch cannot be cancelled", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to cancel expense batch in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel expense batch"})
		}
		return
	}

	logger.Info("Expense batch cancelled successfully")
	c.JSON(http.StatusOK, dto.ToExpenseBatchResponse(batch))
}
