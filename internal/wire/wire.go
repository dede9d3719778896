//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"rbt-notepad/internal/application/export"
	"rbt-notepad/internal/application/note"
	"rbt-notepad/internal/application/port"
	"rbt-notepad/internal/application/preference"
	"rbt-notepad/internal/application/workspace"
	"rbt-notepad/internal/config"
	"rbt-notepad/internal/infrastructure/llm"
	"rbt-notepad/internal/infrastructure/markdown"
	"rbt-notepad/internal/interfaces/http/handler"
	"rbt-notepad/internal/interfaces/http/router"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(
		RedisSet,
		CoreSet,
		RouterSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}

// InitializeCLI 初始化命令行所需的服务（不含 HTTP 层）
func InitializeCLI(ctx context.Context, cfg *config.Config) (*CLI, func(), error) {
	wire.Build(
		RedisSet,
		CoreSet,
		wire.Struct(new(CLI), "*"),
	)
	return nil, nil, nil
}

// RedisSet Redis 及其可选替代实现
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	ProvidePreferenceRepository,
	ProvideRateLimiter,
	ProvideHealthChecker,
)

// CoreSet 模型、生成、导出与偏好
var CoreSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(port.ChatModelFactory), new(*llm.EinoFactory)),
	note.NewGenerator,
	export.NewRegistry,
	preference.NewThemeService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	workspace.NewStore,
	markdown.NewRenderer,
	wire.Bind(new(handler.MarkdownRenderer), new(*markdown.Renderer)),
	ProvideHealthHandler,
	handler.NewSessionHandler,
	handler.NewNoteHandler,
	handler.NewIdeasHandler,
	handler.NewExportHandler,
	handler.NewPreferenceHandler,
	handler.NewWorkspaceHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
