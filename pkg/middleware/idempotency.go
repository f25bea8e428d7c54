package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xperienceoutdoors/Resav2/pkg/redis"
	"github.com/xperienceoutdoors/Resav2/pkg/response"
)

const (
	// IdempotencyKeyHeader is the header clients use to deduplicate writes
	IdempotencyKeyHeader = "X-Idempotency-Key"

	idempotencyProcessingTTL = 30 * time.Second
	idempotencyResultTTL     = 24 * time.Hour
)

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Idempotency deduplicates mutating requests carrying an X-Idempotency-Key
// header. The first request reserves the key, a replay while the original is
// still in flight gets 409, and a replay after completion gets the cached
// response.
func Idempotency(cache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cache == nil {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		redisKey := fmt.Sprintf("idempotency:%s:%s:%s", c.Request.Method, c.FullPath(), key)
		ctx := c.Request.Context()

		acquired, err := cache.SetNX(ctx, redisKey, "processing", idempotencyProcessingTTL).Result()
		if err != nil {
			// Redis being down must not block writes
			c.Next()
			return
		}

		if !acquired {
			stored, err := cache.Get(ctx, redisKey).Result()
			if err == nil && stored != "processing" {
				var cached cachedResponse
				if json.Unmarshal([]byte(stored), &cached) == nil {
					c.Data(cached.Status, "application/json", cached.Body)
					c.Abort()
					return
				}
			}
			response.Error(c, http.StatusConflict, "DUPLICATE_REQUEST", "Request with this idempotency key is already being processed", "")
			c.Abort()
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			payload, err := json.Marshal(cachedResponse{
				Status: status,
				Body:   recorder.body.Bytes(),
			})
			if err == nil {
				_ = cache.Set(ctx, redisKey, string(payload), idempotencyResultTTL).Err()
				return
			}
		}
		// Failed requests release the key so the client can retry
		_ = cache.Del(ctx, redisKey).Err()
	}
}
