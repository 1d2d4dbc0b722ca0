package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/expense_booking_app/internal/core/domain"
	"github.com/finbooks/expense_booking_app/internal/core/services"
	"github.com/finbooks/expense_booking_app/internal/dto"
	"github.com/finbooks/expense_booking_app/internal/middleware"
)

// bookingHandler handles the draft session workflow: claim selection, line
// editing and the final voucher save. Each user works on their own session.
type bookingHandler struct {
	bookingService *services.BookingService
	sessions       *sessionRegistry
}

// newBookingHandler creates a new bookingHandler.
func newBookingHandler(bookingService *services.BookingService) *bookingHandler {
	return &bookingHandler{
		bookingService: bookingService,
		sessions:       newSessionRegistry(),
	}
}

// withSession resolves the acting user, locks their session and runs fn on the
// draft. It replies 401 itself when no user is present.
func (h *bookingHandler) withSession(c *gin.Context, fn func(logger *slog.Logger, draft *domain.DraftSession)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	session := h.sessions.forUser(userID)
	session.mu.Lock()
	defer session.mu.Unlock()

	fn(logger.With(slog.String("user_id", userID)), session.draft)
}

func (h *bookingHandler) selectClaims(c *gin.Context) {
	selectReq := dto.SelectClaimsRequest{}
	if err := c.ShouldBindJSON(&selectReq); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to bind JSON for selectClaims", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	h.withSession(c, func(logger *slog.Logger, draft *domain.DraftSession) {
		if err := h.bookingService.StartDraft(c.Request.Context(), draft, selectReq.ClaimIDs); err != nil {
			respondServiceError(c, logger, err, "Failed to build draft")
			return
		}
		c.JSON(http.StatusOK, dto.ToDraftSessionResponse(draft))
	})
}

func (h *bookingHandler) getSession(c *gin.Context) {
	h.withSession(c, func(logger *slog.Logger, draft *domain.DraftSession) {
		c.JSON(http.StatusOK, dto.ToDraftSessionResponse(draft))
	})
}

func (h *bookingHandler) appendCreditLine(c *gin.Context) {
	h.withSession(c, func(logger *slog.Logger, draft *domain.DraftSession) {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if err := draft.AppendCreditLine(today); err != nil {
			respondServiceError(c, logger, err, "Failed to append credit line")
			return
		}
		c.JSON(http.StatusOK, dto.ToDraftSessionResponse(draft))
	})
}

func (h *bookingHandler) editLine(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid line index"})
		return
	}

	editReq := dto.EditLineRequest{}
	if err := c.ShouldBindJSON(&editReq); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to bind JSON for editLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	h.withSession(c, func(logger *slog.Logger, draft *domain.DraftSession) {
		if err := draft.EditLine(index, editReq.ToLineEdit()); err != nil {
			respondServiceError(c, logger, err, "Failed to edit line")
			return
		}
		c.JSON(http.StatusOK, dto.ToDraftSessionResponse(draft))
	})
}

func (h *bookingHandler) setLineType(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid line index"})
		return
	}

	typeReq := dto.SetLineTypeRequest{}
	if err := c.ShouldBindJSON(&typeReq); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to bind JSON for setLineType", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	h.withSession(c, func(logger *slog.Logger, draft *domain.DraftSession) {
		if err := draft.SetLineType(index, domain.LineType(typeReq.LineType)); err != nil {
			respondServiceError(c, logger, err, "Failed to set line type")
			return
		}
		c.JSON(http.StatusOK, dto.ToDraftSessionResponse(draft))
	})
}

func (h *bookingHandler) removeLine(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid line index"})
		return
	}

	h.withSession(c, func(logger *slog.Logger, draft *domain.DraftSession) {
		if err := draft.RemoveLine(index); err != nil {
			respondServiceError(c, logger, err, "Failed to remove line")
			return
		}
		c.JSON(http.StatusOK, dto.ToDraftSessionResponse(draft))
	})
}

func (h *bookingHandler) saveVoucher(c *gin.Context) {
	h.withSession(c, func(logger *slog.Logger, draft *domain.DraftSession) {
		userID, _ := middleware.GetUserIDFromCtx(c.Request.Context())
		voucherNo, err := h.bookingService.SaveVoucher(c.Request.Context(), draft, userID)
		if err != nil {
			respondServiceError(c, logger, err, "Failed to save voucher")
			return
		}
		c.JSON(http.StatusOK, dto.SaveVoucherResponse{VoucherNo: voucherNo})
	})
}

func (h *bookingHandler) acknowledge(c *gin.Context) {
	h.withSession(c, func(logger *slog.Logger, draft *domain.DraftSession) {
		if err := h.bookingService.Acknowledge(draft); err != nil {
			respondServiceError(c, logger, err, "Failed to acknowledge voucher")
			return
		}
		c.JSON(http.StatusOK, dto.ToDraftSessionResponse(draft))
	})
}

// registerBookingRoutes wires the booking session endpoints into the given group.
func registerBookingRoutes(rg *gin.RouterGroup, bookingService *services.BookingService) {
	h := newBookingHandler(bookingService)
	session := rg.Group("/booking/session")
	{
		session.GET("", h.getSession)
		session.PUT("", h.selectClaims)
		session.POST("/lines", h.appendCreditLine)
		session.PATCH("/lines/:index", h.editLine)
		session.PUT("/lines/:index/type", h.setLineType)
		session.DELETE("/lines/:index", h.removeLine)
		session.POST("/save", h.saveVoucher)
		session.POST("/acknowledge", h.acknowledge)
	}
}
