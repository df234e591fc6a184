package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nvcfn/swiftgate/internal/apperrors"
	portssvc "github.com/nvcfn/swiftgate/internal/core/ports/services"
	"github.com/nvcfn/swiftgate/internal/dto"
	"github.com/nvcfn/swiftgate/internal/middleware"

	"github.com/gin-gonic/gin"
)

// swiftHandler handles HTTP requests for SWIFT messaging operations.
type swiftHandler struct {
	swiftService portssvc.SwiftSvcFacade
}

// newSwiftHandler creates a new swiftHandler.
func newSwiftHandler(ss portssvc.SwiftSvcFacade) *swiftHandler {
	return &swiftHandler{
		swiftService: ss,
	}
}

// registerSwiftRoutes registers routes related to SWIFT messaging.
func registerSwiftRoutes(rg *gin.RouterGroup, swiftService portssvc.SwiftSvcFacade) {
	h := newSwiftHandler(swiftService)

	swiftGroup := rg.Group("/swift")
	{
		swiftGroup.POST("/letters-of-credit", h.issueLetterOfCredit)
		swiftGroup.POST("/fund-transfers", h.issueFundTransfer)
		swiftGroup.POST("/messages", h.sendFreeFormatMessage)
		swiftGroup.GET("/messages", h.listMessages)
		swiftGroup.GET("/messages/:reference/status", h.getMessageStatus)
		swiftGroup.GET("/institutions", h.listInstitutions)
	}
}

func (h *swiftHandler) issueLetterOfCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IssueLetterOfCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueLetterOfCredit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("institution_id", req.ReceiverInstitutionID))
	logger.Info("Received request to issue standby letter of credit",
		slog.Any("amount", req.Amount),
		slog.String("currency_code", req.CurrencyCode),
	)

	txn, err := h.swiftService.IssueStandbyLetterOfCredit(c.Request.Context(), req, userID)
	if err != nil {
		h.writeSwiftError(c, logger, err, "Failed to issue letter of credit")
		return
	}

	logger.Info("Letter of credit issued successfully", slog.String("reference", txn.Reference))
	c.JSON(http.StatusCreated, dto.ToSwiftTransactionResponse(txn))
}

func (h *swiftHandler) issueFundTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IssueFundTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueFundTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("institution_id", req.ReceiverInstitutionID))
	logger.Info("Received request to issue fund transfer",
		slog.Any("amount", req.Amount),
		slog.String("currency_code", req.CurrencyCode),
		slog.Bool("institution_transfer", req.InstitutionTransfer),
	)

	txn, err := h.swiftService.IssueFundTransfer(c.Request.Context(), req, userID)
	if err != nil {
		h.writeSwiftError(c, logger, err, "Failed to issue fund transfer")
		return
	}

	logger.Info("Fund transfer issued successfully", slog.String("reference", txn.Reference), slog.String("message_type", txn.MessageType))
	c.JSON(http.StatusCreated, dto.ToSwiftTransactionResponse(txn))
}

func (h *swiftHandler) sendFreeFormatMessage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.FreeFormatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SendFreeFormatMessage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("institution_id", req.ReceiverInstitutionID))
	logger.Info("Received request to send free format message")

	txn, err := h.swiftService.SendFreeFormatMessage(c.Request.Context(), req, userID)
	if err != nil {
		h.writeSwiftError(c, logger, err, "Failed to send message")
		return
	}

	logger.Info("Free format message sent successfully", slog.String("reference", txn.Reference))
	c.JSON(http.StatusCreated, dto.ToSwiftTransactionResponse(txn))
}

func (h *swiftHandler) listMessages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	logger = logger.With(slog.String("user_id", userID))
	logger.Info("Received request to list messages", slog.Int("limit", limit))

	txns, err := h.swiftService.ListUserMessages(c.Request.Context(), userID, limit)
	if err != nil {
		h.writeSwiftError(c, logger, err, "Failed to list messages")
		return
	}

	responses := make([]dto.SwiftTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = dto.ToSwiftTransactionResponse(&txns[i])
	}

	logger.Info("Messages listed successfully", slog.Int("count", len(responses)))
	c.JSON(http.StatusOK, responses)
}

func (h *swiftHandler) getMessageStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reference := c.Param("reference")

	logger = logger.With(slog.String("reference", reference))
	logger.Info("Received request to get message status")

	txn, record, err := h.swiftService.GetMessageStatus(c.Request.Context(), reference)
	if err != nil {
		h.writeSwiftError(c, logger, err, "Failed to retrieve message status")
		return
	}

	logger.Info("Message status retrieved", slog.String("status", string(record.Status)))
	c.JSON(http.StatusOK, dto.MessageStatusResponse{
		Reference:    txn.Reference,
		MessageID:    txn.MessageID,
		Status:       string(record.Status),
		DeliveryTime: record.DeliveryTime,
		Details:      record.RawDetails,
	})
}

func (h *swiftHandler) listInstitutions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to list SWIFT institutions")

	institutions, err := h.swiftService.ListSwiftInstitutions(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list SWIFT institutions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list institutions"})
		return
	}

	responses := make([]dto.InstitutionResponse, len(institutions))
	for i, inst := range institutions {
		responses[i] = dto.ToInstitutionResponse(&inst)
	}

	logger.Info("SWIFT institutions listed successfully", slog.Int("count", len(responses)))
	c.JSON(http.StatusOK, responses)
}

// writeSwiftError maps service errors to HTTP responses. Transport failures
// surface as 502 so callers can distinguish gateway trouble from their own
// bad input.
func (h *swiftHandler) writeSwiftError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrTransport):
		logger.Error("Transport error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
