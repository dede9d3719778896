package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"rbt-notepad/pkg/errors"
	"rbt-notepad/pkg/logger"
	"rbt-notepad/pkg/metrics"
)

const rateLimitedMessage = "Too many generation requests. Please wait a moment and try again."

// RateLimiter 限流器接口
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit 限流中间件，按客户端 IP 计数；limiter 为 nil 时不限流
func RateLimit(limiter RateLimiter) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		key := c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// 限流器故障时放行
			logger.Warn(c.Request.Context(), "rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !allowed {
			metrics.RateLimitRejected.WithLabelValues(c.FullPath()).Inc()
			appErr := errors.ErrTooManyRequests
			c.AbortWithStatusJSON(appErr.HTTPStatus, gin.H{
				"code":     appErr.Code,
				"message":  rateLimitedMessage,
				"trace_id": c.GetString("trace_id"),
			})
			return
		}

		c.Next()
	}
}
