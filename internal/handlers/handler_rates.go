package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/paylinear/payroll_backend/internal/apperrors"
	portssvc "github.com/paylinear/payroll_backend/internal/core/ports/services"
	"github.com/paylinear/payroll_backend/internal/dto"
	"github.com/paylinear/payroll_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to exchange rates and the
// costing engine's rate table snapshot.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{
		rateService: rs,
	}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("", h.listLatestRates)
		rates.GET("/table", h.getRateTable)
		rates.POST("/table/refresh", h.refreshRateTable)
		rates.GET("/:code", h.getRateByCurrency)
	}
}

// createExchangeRate adds a new exchange rate effective from a given date.
func (h *rateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("actor", actor))
	logger.Info("Received request to create exchange rate",
		slog.String("currency_code", req.CurrencyCode),
		slog.Any("rate_to_usd", req.RateToUSD),
		slog.Time("date_effective", req.DateEffective),
	)

	createdRate, err := h.rateService.CreateExchangeRate(c.Request.Context(), req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate exchange rate for effective date")
			c.JSON(http.StatusConflict, gin.H{"error": "Exchange rate already exists for this currency and effective date"})
		} else {
			logger.Error("Failed to create exchange rate in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exchange rate"})
		}
		return
	}

	logger.Info("Exchange rate created successfully", slog.String("rate_id", createdRate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(createdRate))
}

// getRateByCurrency retrieves the latest effective rate for a currency.
func (h *rateHandler) getRateByCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyCode := strings.ToUpper(c.Param("code"))

	logger = logger.With(slog.String("currency_code", currencyCode))
	logger.Info("Received request to get exchange rate")

	rate, err := h.rateService.GetRateByCurrency(c.Request.Context(), currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Exchange rate not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Exchange rate not found"})
		} else {
			logger.Error("Failed to get exchange rate from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rate"})
		}
		return
	}

	logger.Info("Exchange rate retrieved successfully")
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// listLatestRates retrieves the latest effective rate per currency.
func (h *rateHandler) listLatestRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to list latest exchange rates")

	rates, err := h.rateService.ListLatestRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list exchange rates from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchange rates"})
		return
	}

	logger.Info("Exchange rates listed successfully", slog.Int("count", len(rates)))
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// getRateTable returns the snapshot the costing engine currently uses.
func (h *rateHandler) getRateTable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to get rate table snapshot")

	table, err := h.rateService.RateTable(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build rate table snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build rate table"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateTableResponse(table))
}

// refreshRateTable rebuilds the snapshot from stored rates and installs it.
func (h *rateHandler) refreshRateTable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to refresh rate table snapshot")

	table, err := h.rateService.RefreshRateTable(c.Request.Context())
	if err != nil {
		logger.Error("Failed to refresh rate table snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh rate table"})
		return
	}

	logger.Info("Rate table snapshot refreshed", slog.Int("currency_count", len(table.Currencies())))
	c.JSON(http.StatusOK, dto.ToRateTableResponse(table))
}
