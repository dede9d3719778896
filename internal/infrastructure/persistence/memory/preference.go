// Package memory 进程内存储实现（Redis 未启用时使用）
package memory

import (
	"context"
	"sync"
	"time"

	"rbt-notepad/internal/domain/repository"
)

type preferenceEntry struct {
	value     string
	expiresAt time.Time
}

// PreferenceRepository 内存偏好存储
type PreferenceRepository struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.RWMutex
	values    map[string]preferenceEntry
	lastSweep time.Time
}

// NewPreferenceRepository 创建内存偏好存储；ttl 为 0 时不过期
func NewPreferenceRepository(ttl time.Duration) *PreferenceRepository {
	return &PreferenceRepository{
		ttl:    ttl,
		now:    time.Now,
		values: make(map[string]preferenceEntry),
	}
}

// Get 读取偏好
func (r *PreferenceRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.values[key]
	if !ok || e.expired(r.now()) {
		return "", repository.ErrPreferenceNotFound
	}
	return e.value, nil
}

// Set 写入偏好，每次写入刷新过期时间
func (r *PreferenceRepository) Set(_ context.Context, key, value string) error {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ttl > 0 && now.Sub(r.lastSweep) >= sweepInterval {
		for k, e := range r.values {
			if e.expired(now) {
				delete(r.values, k)
			}
		}
		r.lastSweep = now
	}

	e := preferenceEntry{value: value}
	if r.ttl > 0 {
		e.expiresAt = now.Add(r.ttl)
	}
	r.values[key] = e
	return nil
}

// Len 当前保存的偏好数量（含尚未清理的过期项）
func (r *PreferenceRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

func (e preferenceEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}
