package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-workforce/internal/shared/contextutil"
)

const RequestIDHeader = "X-Request-ID"

// RequestID assigns a request id (or adopts the caller's), stamps it on
// the response, and binds a request-scoped logger into the context.
func RequestID(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header(RequestIDHeader, rid)

		ctx := contextutil.WithRequestID(c.Request.Context(), rid)
		if logger != nil {
			ctx = contextutil.WithLogger(ctx, logger.With(zap.String("request_id", rid)))
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
