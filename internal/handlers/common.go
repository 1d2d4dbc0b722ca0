package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/expense_booking_app/internal/apperrors"
	"github.com/finbooks/expense_booking_app/internal/core/domain"
)

// respondServiceError maps service errors onto HTTP statuses. Internal errors
// are logged in full but reported with a generic message.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrUnbalanced),
		errors.Is(err, apperrors.ErrInvalidOperation):
		logger.Warn("Request rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

// userSession pairs a draft session with a lock serializing requests from the
// same user. Handlers lock it for the duration of each session operation.
type userSession struct {
	mu    sync.Mutex
	draft *domain.DraftSession
}

// sessionRegistry holds one in-memory draft session per acting user. Sessions
// are working state only; everything durable goes through the repositories.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*userSession
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*userSession)}
}

// forUser returns the user's session, creating a fresh one on first use.
func (r *sessionRegistry) forUser(userID string) *userSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[userID]
	if !ok {
		session = &userSession{draft: domain.NewDraftSession()}
		r.sessions[userID] = session
	}
	return session
}
