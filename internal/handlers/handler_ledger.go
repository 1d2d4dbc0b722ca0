package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/expense_booking_app/internal/core/services"
	"github.com/finbooks/expense_booking_app/internal/dto"
	"github.com/finbooks/expense_booking_app/internal/middleware"
)

// ledgerHandler handles read queries over booked vouchers.
type ledgerHandler struct {
	ledgerService *services.LedgerService
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ledgerService *services.LedgerService) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	listReq := dto.ListEntriesRequest{}
	if err := c.ShouldBindQuery(&listReq); err != nil {
		logger.Error("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	lines, err := h.ledgerService.ListEntries(c.Request.Context(), listReq)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": dto.ToEntryResponses(lines)})
}

func (h *ledgerHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	voucherNo, err := strconv.ParseInt(c.Param("voucherNo"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid voucher number"})
		return
	}

	voucher, err := h.ledgerService.GetVoucher(c.Request.Context(), voucherNo)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve voucher")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(*voucher))
}

// registerLedgerRoutes wires the ledger query endpoints into the given group.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService *services.LedgerService) {
	h := newLedgerHandler(ledgerService)
	rg.GET("/entries", h.listEntries)
	rg.GET("/vouchers/:voucherNo", h.getVoucher)
}
