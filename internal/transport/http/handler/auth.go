package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
	"github.com/ErlanBelekov/contact-manager/internal/metrics"
	"github.com/ErlanBelekov/contact-manager/internal/usecase"
	"github.com/gin-gonic/gin"
)

// identityUsecaser is the subset of IdentityUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type identityUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*usecase.UserView, error)
	Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginResult, error)
	Me(ctx context.Context, userID string) (*usecase.UserView, error)
}

type AuthHandler struct {
	identity identityUsecaser
	logger   *slog.Logger
}

func NewAuthHandler(identity identityUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		identity: identity,
		logger:   logger.With("component", "auth_handler"),
	}
}

// POST /users/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req usecase.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	user, err := h.identity.Register(c.Request.Context(), req)
	if err != nil {
		if writeValidation(c, err) {
			metrics.AuthEvent("register", metrics.OutcomeRejected)
			return
		}
		if errors.Is(err, domain.ErrEmailExists) {
			metrics.AuthEvent("register", metrics.OutcomeRejected)
			c.JSON(http.StatusConflict, gin.H{"error": errEmailExists})
			return
		}
		metrics.AuthEvent("register", metrics.OutcomeError)
		h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.AuthEvent("register", metrics.OutcomeSuccess)
	c.JSON(http.StatusCreated, user)
}

// POST /users/login
// Unknown email and wrong password produce the same 401 body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req usecase.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	result, err := h.identity.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.AuthEvent("login", metrics.OutcomeRejected)
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
			return
		}
		metrics.AuthEvent("login", metrics.OutcomeError)
		h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.AuthEvent("login", metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, result)
}

// GET /users/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.identity.Me(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		// A valid token for a user that no longer exists is still unauthorized.
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "me", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, user)
}
