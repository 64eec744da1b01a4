package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dustin/movies-backend/config"
	"github.com/dustin/movies-backend/internal/utils"
	"github.com/dustin/movies-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimiter throttles mutating requests per client IP. With Redis
// configured it uses a fixed-window counter shared across instances;
// without it, a per-IP in-process token bucket.
type RateLimiter struct {
	rdb      *redis.Client
	requests int
	window   time.Duration
	logger   *logger.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewRateLimiter creates a rate limiter with validation and defaults
func NewRateLimiter(cfg *config.RateLimitConfig, log *logger.Logger) (*RateLimiter, error) {
	// Set defaults for nil or empty config values
	requests := 60
	if cfg != nil && cfg.Requests != "" {
		parsed, err := strconv.Atoi(cfg.Requests)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("invalid rate limit request count '%s'", cfg.Requests)
		}
		requests = parsed
	}

	window := time.Minute
	if cfg != nil && cfg.Window != "" {
		parsed, err := time.ParseDuration(cfg.Window)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid rate limit window '%s': %v", cfg.Window, err)
		}
		window = parsed
	}

	rl := &RateLimiter{
		requests: requests,
		window:   window,
		logger:   log.WithComponent("rate-limiter"),
		limiters: make(map[string]*rate.Limiter),
	}

	if cfg != nil && cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %v", err)
		}
		rl.rdb = redis.NewClient(opts)
		rl.logger.Info("Rate limiter using Redis fixed-window counters")
	} else {
		rl.logger.Info("Rate limiter using in-process token buckets")
	}

	return rl, nil
}

// Middleware returns the gin handler enforcing the limit
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := rl.allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Redis being down must not take the API down with it
			rl.logger.Warn("Rate limit check failed, allowing request: " + err.Error())
			c.Next()
			return
		}

		if !allowed {
			utils.Fail(c, http.StatusTooManyRequests, utils.CodeRateLimited, "Too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, clientIP string) (bool, error) {
	if rl.rdb != nil {
		return rl.allowRedis(ctx, clientIP)
	}
	return rl.allowLocal(clientIP), nil
}

// allowRedis counts requests in the current fixed window
func (rl *RateLimiter) allowRedis(ctx context.Context, clientIP string) (bool, error) {
	windowStart := time.Now().Unix() / int64(rl.window.Seconds())
	key := fmt.Sprintf("ratelimit:%s:%d", clientIP, windowStart)

	count, err := rl.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}

	if count == 1 {
		// First hit in the window owns the expiry
		if err := rl.rdb.Expire(ctx, key, rl.window).Err(); err != nil {
			return false, err
		}
	}

	return count <= int64(rl.requests), nil
}

func (rl *RateLimiter) allowLocal(clientIP string) bool {
	rl.mu.Lock()
	limiter, ok := rl.limiters[clientIP]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(float64(rl.requests)/rl.window.Seconds()), rl.requests)
		rl.limiters[clientIP] = limiter
	}
	rl.mu.Unlock()

	return limiter.Allow()
}

// Close releases the Redis connection if one is held
func (rl *RateLimiter) Close() error {
	if rl.rdb != nil {
		return rl.rdb.Close()
	}
	return nil
}
