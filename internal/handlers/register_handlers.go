package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/finbooks/expense_booking_app/internal/core/services"
	"github.com/finbooks/expense_booking_app/internal/middleware"
	"github.com/finbooks/expense_booking_app/pkg/config"
)

// Services bundles the application services the handlers depend on.
type Services struct {
	Claim      *services.ClaimService
	Booking    *services.BookingService
	Ledger     *services.LedgerService
	MasterData *services.MasterDataService
}

// Roles whose holders may book vouchers. Identity itself comes from the
// upstream gateway; this is the caller-side gate in front of the engine.
var bookingRoles = []string{"bookkeeper", "admin"}

// RegisterRoutes sets up all application routes.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, svcs Services) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, svcs)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, svcs Services) {
	v1 := r.Group("/api/v1", middleware.IdentityMiddleware())

	registerClaimRoutes(v1, svcs.Claim)
	registerMasterDataRoutes(v1, svcs.MasterData)
	registerLedgerRoutes(v1, svcs.Ledger)

	booking := v1.Group("", middleware.RequireRole(bookingRoles...))
	registerBookingRoutes(booking, svcs.Booking)
}
