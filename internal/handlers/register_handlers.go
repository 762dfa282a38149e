package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ratbook/ratbook_backend/internal/core/domain"
	portssvc "github.com/ratbook/ratbook_backend/internal/core/ports/services"
	"github.com/ratbook/ratbook_backend/internal/middleware"
	"github.com/ratbook/ratbook_backend/internal/platform/config"
	"github.com/ratbook/ratbook_backend/internal/platform/storage"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	proofStore *storage.ProofStore,
) {
	RegisterCustomValidators()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Uploaded proof files are served statically
	r.Static("/uploads", proofStore.Dir())

	// Public authentication routes
	registerAuthRoutes(r, services.User, services.Token)

	// API v1 routes behind JWT auth
	setupAPIV1Routes(r, cfg, services, proofStore)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	proofStore *storage.ProofStore,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	RegisterAccountRoutes(v1, services.Account)
	registerProductRoutes(v1, services.Product)
	registerTransactionRoutes(v1, services.Transaction, proofStore)
	registerReportingRoutes(v1, services.Reporting)
}

// RegisterCustomValidators hooks domain value checks into the binding layer.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("accountCategory", func(fl validator.FieldLevel) bool {
		return domain.AccountCategory(fl.Field().String()).IsValid()
	})
	v.RegisterValidation("transactionKind", func(fl validator.FieldLevel) bool {
		return domain.TransactionKind(fl.Field().String()).IsValid()
	})
}
