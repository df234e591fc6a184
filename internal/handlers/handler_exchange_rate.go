package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nvcfn/swiftgate/internal/apperrors"
	"github.com/nvcfn/swiftgate/internal/core/domain"
	portssvc "github.com/nvcfn/swiftgate/internal/core/ports/services"
	"github.com/nvcfn/swiftgate/internal/dto"
	"github.com/nvcfn/swiftgate/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
	rateResolver        portssvc.RateResolverSvc
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade, rr portssvc.RateResolverSvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
		rateResolver:        rr,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade, rateResolver portssvc.RateResolverSvc) {
	h := newExchangeRateHandler(exchangeRateService, rateResolver)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.POST("", h.putExchangeRate)
		exchangeRates.GET("/:from/:to", h.resolveExchangeRate)
		exchangeRates.POST("/convert", h.convertAmount)
		exchangeRates.DELETE("/:from/:to", h.deactivateExchangeRate)
	}
}

func (h *exchangeRateHandler) putExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PutExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("updater_user_id", updaterUserID))
	logger.Info("Received request to put exchange rate",
		slog.String("from", req.FromCurrencyCode),
		slog.String("to", req.ToCurrencyCode),
		slog.Any("rate", req.Rate),
	)

	savedRate, err := h.exchangeRateService.PutRate(c.Request.Context(), req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error putting exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to put exchange rate in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save exchange rate"})
		}
		return
	}

	logger.Info("Exchange rate saved successfully", slog.String("rate_id", savedRate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(savedRate))
}

// resolveExchangeRate answers GET /exchange-rates/:from/:to. By default the
// strict resolution chain is used and a miss is a 404; with
// ?best_effort=true the quote chain is used instead and a miss degrades to a
// rate of 1.0.
func (h *exchangeRateHandler) resolveExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := c.Param("from")
	toCode := c.Param("to")

	if !domain.ValidCurrencyCode(fromCode) || !domain.ValidCurrencyCode(toCode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency codes must be 3 to 6 uppercase alphanumerics"})
		return
	}

	bestEffort := c.Query("best_effort") == "true"

	logger = logger.With(slog.String("from_code", fromCode), slog.String("to_code", toCode), slog.Bool("best_effort", bestEffort))
	logger.Info("Received request to resolve exchange rate")

	var (
		rate decimal.Decimal
		err  error
	)
	if bestEffort {
		rate, err = h.rateResolver.ResolveQuote(c.Request.Context(), fromCode, toCode)
	} else {
		rate, err = h.rateResolver.Resolve(c.Request.Context(), fromCode, toCode)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error resolving exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Exchange rate not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Exchange rate not found"})
		} else {
			logger.Error("Failed to resolve exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve exchange rate"})
		}
		return
	}

	logger.Info("Exchange rate resolved successfully")
	c.JSON(http.StatusOK, dto.QuoteResponse{
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		Rate:             rate,
		BestEffort:       bestEffort,
	})
}

func (h *exchangeRateHandler) convertAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertAmount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("from_code", req.FromCurrencyCode), slog.String("to_code", req.ToCurrencyCode))
	logger.Info("Received request to convert amount", slog.Any("amount", req.Amount))

	rate, err := h.rateResolver.Resolve(c.Request.Context(), req.FromCurrencyCode, req.ToCurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error converting amount", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No exchange rate available for conversion")
			c.JSON(http.StatusNotFound, gin.H{"error": "Exchange rate not found"})
		} else {
			logger.Error("Failed to convert amount", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
		}
		return
	}

	converted, err := h.rateResolver.Convert(c.Request.Context(), req.Amount, req.FromCurrencyCode, req.ToCurrencyCode)
	if err != nil {
		logger.Error("Failed to convert amount", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
		return
	}

	logger.Info("Amount converted successfully")
	c.JSON(http.StatusOK, dto.ConvertResponse{
		FromCurrencyCode: req.FromCurrencyCode,
		ToCurrencyCode:   req.ToCurrencyCode,
		Amount:           req.Amount,
		ConvertedAmount:  converted,
		Rate:             rate,
	})
}

func (h *exchangeRateHandler) deactivateExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := c.Param("from")
	toCode := c.Param("to")

	if !domain.ValidCurrencyCode(fromCode) || !domain.ValidCurrencyCode(toCode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency codes must be 3 to 6 uppercase alphanumerics"})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("from_code", fromCode), slog.String("to_code", toCode), slog.String("updater_user_id", updaterUserID))
	logger.Info("Received request to deactivate exchange rate")

	if err := h.exchangeRateService.DeactivateRate(c.Request.Context(), fromCode, toCode, updaterUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Exchange rate not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Exchange rate not found"})
		} else {
			logger.Error("Failed to deactivate exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate exchange rate"})
		}
		return
	}

	logger.Info("Exchange rate deactivated successfully")
	c.Status(http.StatusNoContent)
}
