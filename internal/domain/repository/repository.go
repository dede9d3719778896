// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"errors"
)

// ErrPreferenceNotFound 偏好项不存在
var ErrPreferenceNotFound = errors.New("preference not found")

// PreferenceKeyTheme 主题偏好键
const PreferenceKeyTheme = "theme"

// ThemeKey 按所有者区分的主题键；owner 为空时（本机 CLI）使用全局键
func ThemeKey(owner string) string {
	if owner == "" {
		return PreferenceKeyTheme
	}
	return PreferenceKeyTheme + ":" + owner
}

// PreferenceRepository 用户偏好存储（键值）
type PreferenceRepository interface {
	// Get 读取偏好，不存在时返回 ErrPreferenceNotFound
	Get(ctx context.Context, key string) (string, error)
	// Set 写入偏好
	Set(ctx context.Context, key, value string) error
}

// HealthChecker 依赖健康检查
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
