package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/expense_booking_app/internal/core/services"
	"github.com/finbooks/expense_booking_app/internal/dto"
	"github.com/finbooks/expense_booking_app/internal/middleware"
)

// claimHandler handles HTTP requests related to expense claims.
type claimHandler struct {
	claimService *services.ClaimService
}

// newClaimHandler creates a new claimHandler.
func newClaimHandler(claimService *services.ClaimService) *claimHandler {
	return &claimHandler{claimService: claimService}
}

func (h *claimHandler) createClaim(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateClaimRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createClaim", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	claim, err := h.claimService.CreateClaim(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create claim")
		return
	}

	c.JSON(http.StatusCreated, dto.ToClaimResponse(*claim))
}

func (h *claimHandler) listClaims(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	listReq := dto.ListClaimsRequest{}
	if err := c.ShouldBindQuery(&listReq); err != nil {
		logger.Error("Failed to bind query for listClaims", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	claims, err := h.claimService.ListClaims(c.Request.Context(), listReq)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list claims")
		return
	}

	c.JSON(http.StatusOK, gin.H{"claims": dto.ToClaimResponses(claims)})
}

func (h *claimHandler) listPendingClaims(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	claims, err := h.claimService.ListPendingClaims(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list pending claims")
		return
	}

	c.JSON(http.StatusOK, gin.H{"claims": dto.ToClaimResponses(claims)})
}

// registerClaimRoutes wires the claim endpoints into the given group.
func registerClaimRoutes(rg *gin.RouterGroup, claimService *services.ClaimService) {
	h := newClaimHandler(claimService)
	claims := rg.Group("/claims")
	{
		claims.POST("", h.createClaim)
		claims.GET("", h.listClaims)
		claims.GET("/pending", h.listPendingClaims)
	}
}
