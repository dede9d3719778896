// Package preference 主题偏好
package preference

import (
	"context"
	"errors"

	"rbt-notepad/internal/domain/entity"
	"rbt-notepad/internal/domain/repository"
	"rbt-notepad/pkg/logger"
)

// Source 主题来源
type Source string

const (
	SourceStored  Source = "stored"
	SourceSystem  Source = "system"
	SourceDefault Source = "default"
)

// Resolution 主题解析结果
type Resolution struct {
	Theme  entity.Theme `json:"theme"`
	Source Source       `json:"source"`
}

// ThemeService 主题偏好服务
type ThemeService struct {
	repo repository.PreferenceRepository
}

// NewThemeService 创建主题偏好服务
func NewThemeService(repo repository.PreferenceRepository) *ThemeService {
	return &ThemeService{repo: repo}
}

// Resolve 依次使用 owner 已保存的主题、系统提示（浏览器/终端）、默认浅色
// owner 为浏览器工作区 id，CLI 传空串；存储读取失败不影响界面，只记录日志
func (s *ThemeService) Resolve(ctx context.Context, owner, osHint string) Resolution {
	raw, err := s.repo.Get(ctx, repository.ThemeKey(owner))
	switch {
	case err == nil:
		if t, perr := entity.ParseTheme(raw); perr == nil {
			return Resolution{Theme: t, Source: SourceStored}
		}
		logger.Warn(ctx, "ignoring invalid stored theme", "value", raw)
	case !errors.Is(err, repository.ErrPreferenceNotFound):
		logger.Warn(ctx, "failed to read theme preference", "error", err)
	}

	if t, err := entity.ParseTheme(osHint); err == nil {
		return Resolution{Theme: t, Source: SourceSystem}
	}
	return Resolution{Theme: entity.ThemeLight, Source: SourceDefault}
}

// Set 保存 owner 的主题
func (s *ThemeService) Set(ctx context.Context, owner string, theme entity.Theme) error {
	if _, err := entity.ParseTheme(string(theme)); err != nil {
		return err
	}
	if err := s.repo.Set(ctx, repository.ThemeKey(owner), string(theme)); err != nil {
		logger.Error(ctx, "failed to save theme preference", err, "theme", theme)
		return err
	}
	logger.Debug(ctx, "theme preference saved", "theme", theme)
	return nil
}

// Toggle 切换当前主题并保存
func (s *ThemeService) Toggle(ctx context.Context, owner, osHint string) (entity.Theme, error) {
	next := s.Resolve(ctx, owner, osHint).Theme.Toggle()
	if err := s.Set(ctx, owner, next); err != nil {
		return "", err
	}
	return next, nil
}
