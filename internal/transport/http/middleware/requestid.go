package middleware

import (
	"github.com/ErlanBelekov/contact-manager/internal/requestid"
	"github.com/gin-gonic/gin"
)

// RequestID attaches a request ID to the request context and echoes it in the
// response. A well-formed incoming X-Request-ID is kept; anything else is
// replaced with a fresh UUID so it never reaches the logs verbatim.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestid.Header)
		if !requestid.Acceptable(id) {
			id = requestid.New()
		}

		c.Request = c.Request.WithContext(requestid.WithRequestID(c.Request.Context(), id))
		c.Header(requestid.Header, id)
		c.Next()
	}
}
