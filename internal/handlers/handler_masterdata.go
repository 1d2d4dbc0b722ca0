package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/expense_booking_app/internal/core/domain"
	"github.com/finbooks/expense_booking_app/internal/core/services"
	"github.com/finbooks/expense_booking_app/internal/middleware"
)

// masterDataHandler serves the booking dimension lookups the claim and
// booking screens are driven by.
type masterDataHandler struct {
	masterDataService *services.MasterDataService
}

// newMasterDataHandler creates a new masterDataHandler.
func newMasterDataHandler(masterDataService *services.MasterDataService) *masterDataHandler {
	return &masterDataHandler{masterDataService: masterDataService}
}

func (h *masterDataHandler) listDimension(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	records, err := h.masterDataService.ListDimension(c.Request.Context(), domain.DimensionKey(c.Param("key")))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list master data")
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

// registerMasterDataRoutes wires the master data endpoints into the given group.
func registerMasterDataRoutes(rg *gin.RouterGroup, masterDataService *services.MasterDataService) {
	h := newMasterDataHandler(masterDataService)
	rg.GET("/master-data/:key", h.listDimension)
}
