package handlers

import (
	"log/slog"
	"net/http"

	"github.com/nvcfn/swiftgate/internal/dto"
	"github.com/nvcfn/swiftgate/internal/middleware"
	"github.com/nvcfn/swiftgate/internal/utils"

	"github.com/gin-gonic/gin"
)

// registerRoutingRoutes registers the ABA routing number validation route.
// Validation is a pure function, so the handler calls it directly without a
// service layer.
func registerRoutingRoutes(rg *gin.RouterGroup) {
	routing := rg.Group("/routing-numbers")
	{
		routing.POST("/validate", validateRoutingNumber)
	}
}

func validateRoutingNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ValidateRoutingNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ValidateRoutingNumber", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	valid := utils.ValidateRoutingNumber(req.RoutingNumber)
	logger.Info("Routing number validated", slog.Bool("valid", valid))

	c.JSON(http.StatusOK, dto.ValidateRoutingNumberResponse{
		RoutingNumber: req.RoutingNumber,
		Valid:         valid,
	})
}
