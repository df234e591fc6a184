package handlers

import (
	"github.com/nvcfn/swiftgate/internal/core/domain"
	portssvc "github.com/nvcfn/swiftgate/internal/core/ports/services"
	"github.com/nvcfn/swiftgate/internal/middleware"
	"github.com/nvcfn/swiftgate/internal/platform/config"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// The caller's identity comes from the X-User-ID header; authentication
	// proper is handled upstream of this service.
	v1 := r.Group("/api/v1", middleware.RequireUserID())

	registerCurrencyRoutes(v1, services.Currency)
	registerExchangeRateRoutes(v1, services.ExchangeRate, services.RateResolver)
	registerSwiftRoutes(v1, services.Swift)
	registerRoutingRoutes(v1)
}

// registerCustomValidators installs the currency_code binding rule: 3 to 6
// uppercase alphanumerics, covering ISO-4217 codes and platform tokens.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
			return domain.ValidCurrencyCode(fl.Field().String())
		})
	}
}
