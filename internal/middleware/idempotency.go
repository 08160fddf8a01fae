package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// Idempotency rejects a retried mutation carrying a key that was already
// accepted inside the window. Requests without the header pass through
// untouched; a redis outage fails open.
func Idempotency(rdb *redis.Client, window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		window = 10 * time.Minute
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || rdb == nil {
			c.Next()
			return
		}

		stored, err := rdb.SetNX(c.Request.Context(),
			"workforce:idempotency:"+c.Request.Method+":"+c.FullPath()+":"+key,
			1, window,
		).Result()
		if err != nil {
			c.Next()
			return
		}
		if !stored {
			response.Error(c, http.StatusConflict, apperror.CodeConflict, "duplicate request", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
