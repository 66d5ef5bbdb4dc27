package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/contact-manager/internal/auth"
	ctxlog "github.com/ErlanBelekov/contact-manager/internal/log"
	"github.com/ErlanBelekov/contact-manager/internal/metrics"
	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Unauthorized"

// tokenVerifier is satisfied by *auth.TokenService.
type tokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// Auth validates a Bearer token and sets "userID" in the gin context.
// Every failure gets the same 401 body; the specific reason is only logged.
func Auth(tokens tokenVerifier, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "auth_middleware")

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			metrics.AuthEvent("verify", metrics.OutcomeRejected)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			metrics.AuthEvent("verify", metrics.OutcomeRejected)
			logger.DebugContext(c.Request.Context(), "token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		metrics.AuthEvent("verify", metrics.OutcomeSuccess)
		c.Set("userID", claims.Subject)
		c.Request = c.Request.WithContext(ctxlog.WithUserID(c.Request.Context(), claims.Subject))
		c.Next()
	}
}
