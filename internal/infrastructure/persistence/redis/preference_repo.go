package redis

import (
	"context"
	"time"

	"rbt-notepad/internal/domain/repository"
)

// PreferenceRepository Redis 偏好存储，键形如 rbt:pref:theme:<owner>
type PreferenceRepository struct {
	client *Client
	ttl    time.Duration
}

// NewPreferenceRepository 创建 Redis 偏好存储；ttl 为 0 时不过期
func NewPreferenceRepository(client *Client, ttl time.Duration) *PreferenceRepository {
	return &PreferenceRepository{client: client, ttl: ttl}
}

// Get 读取偏好
func (r *PreferenceRepository) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.client.Key("pref", key))
	if IsNil(err) {
		return "", repository.ErrPreferenceNotFound
	}
	return v, err
}

// Set 写入偏好，每次写入刷新过期时间
func (r *PreferenceRepository) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.client.Key("pref", key), value, r.ttl)
}
