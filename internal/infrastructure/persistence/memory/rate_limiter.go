package memory

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// sweepInterval 两次清理空闲限流器的最小间隔
const sweepInterval = time.Minute

// RateLimiter 按键分桶的令牌桶限流器
// 令牌已回满的桶与新建的桶等价，清理时直接移除
type RateLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	lastSweep time.Time
}

// NewRateLimiter 创建限流器，requestsPerMinute 为稳态速率
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 30
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limit:    rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    burst,
		now:      time.Now,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow 检查是否允许请求
func (l *RateLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) >= sweepInterval {
		l.sweep(now)
	}
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = lim
	}
	l.mu.Unlock()

	return lim.AllowN(now, 1), nil
}

// Len 当前跟踪的键数量
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// sweep 移除令牌已回满的桶；调用方持有锁
func (l *RateLimiter) sweep(now time.Time) {
	full := float64(l.burst)
	for key, lim := range l.limiters {
		if lim.TokensAt(now) >= full {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}
