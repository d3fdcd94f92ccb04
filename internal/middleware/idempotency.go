package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-flexile/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	idempotencyCacheKey = "idempotency_cache_key"
	idempotencyLockKey  = "idempotency_lock_key"

	idempotencyLockTTL     = 30 * time.Second
	idempotencyResponseTTL = 24 * time.Hour
)

// Idempotency replays the cached response of a POST carrying an
// Idempotency-Key and rejects a duplicate while the first one is still
// running. Handlers call CacheIdempotentResponse on success; the lock is
// released when the handler chain returns.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	log := zap.L().Named("middleware.idempotency")

	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetString("user_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"
		ctx := c.Request.Context()

		if val, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached any
			if json.Unmarshal([]byte(val), &cached) == nil {
				c.Header("Idempotent-Replayed", "true")
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		}

		// the lock expires on its own if the process dies mid-request
		acquired, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock unavailable, continuing without it", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.Error(c, http.StatusConflict, "PROCESSING", "A request with this Idempotency-Key is still being processed", nil)
			c.Abort()
			return
		}

		c.Set(idempotencyCacheKey, cacheKey)
		c.Set(idempotencyLockKey, lockKey)
		defer rdb.Del(ctx, lockKey)

		c.Next()
	}
}

// CacheIdempotentResponse stores payload under the request's idempotency
// key, if any, so a retried request gets the same answer.
func CacheIdempotentResponse(c *gin.Context, rdb *redis.Client, payload any) {
	if rdb == nil {
		return
	}
	cacheKey := c.GetString(idempotencyCacheKey)
	if cacheKey == "" {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = rdb.Set(c.Request.Context(), cacheKey, body, idempotencyResponseTTL).Err()
}
