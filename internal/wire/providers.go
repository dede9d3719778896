package wire

import (
	"context"
	"time"

	"rbt-notepad/internal/application/export"
	"rbt-notepad/internal/application/note"
	"rbt-notepad/internal/application/preference"
	"rbt-notepad/internal/application/workspace"
	"rbt-notepad/internal/config"
	"rbt-notepad/internal/domain/repository"
	"rbt-notepad/internal/infrastructure/llm"
	"rbt-notepad/internal/infrastructure/persistence/memory"
	"rbt-notepad/internal/infrastructure/persistence/redis"
	"rbt-notepad/internal/interfaces/http/handler"
	"rbt-notepad/internal/interfaces/http/middleware"
	"rbt-notepad/internal/interfaces/http/router"
	"rbt-notepad/pkg/logger"
)

// App HTTP 服务所需的组件
type App struct {
	Router *router.Router
	Store  *workspace.Store
}

// CLI 命令行所需的组件
type CLI struct {
	Models    *llm.EinoFactory
	Generator *note.Generator
	Exports   *export.Registry
	Themes    *preference.ThemeService
}

// ProvideRedisClient 提供 Redis 客户端；未启用时返回 nil
func ProvideRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		logger.Info(ctx, "redis disabled, using in-process preference store and rate limiter")
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvidePreferenceRepository 有 Redis 时持久化到 Redis（与浏览器 Cookie 同寿命），否则保存在进程内
func ProvidePreferenceRepository(cfg *config.Config, client *redis.Client) repository.PreferenceRepository {
	if client == nil {
		return memory.NewPreferenceRepository(cfg.Workspace.CookieMaxAge)
	}
	return redis.NewPreferenceRepository(client, cfg.Workspace.CookieMaxAge)
}

// ProvideRateLimiter 提供模型接口的限流器；未启用限流时返回 nil
func ProvideRateLimiter(cfg *config.Config, client *redis.Client) middleware.RateLimiter {
	rl := cfg.Security.RateLimit
	if !rl.Enabled || rl.RequestsPerMinute <= 0 {
		return nil
	}
	if client == nil {
		return memory.NewRateLimiter(rl.RequestsPerMinute, rl.Burst)
	}
	return redis.NewRateLimiter(client, rl.RequestsPerMinute, time.Minute)
}

// ProvideHealthChecker Redis 健康检查；未启用时返回 nil
func ProvideHealthChecker(client *redis.Client) repository.HealthChecker {
	if client == nil {
		return nil
	}
	return client
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(cfg *config.Config, checker repository.HealthChecker) *handler.HealthHandler {
	return handler.NewHealthHandler(cfg.App.Version, checker)
}
