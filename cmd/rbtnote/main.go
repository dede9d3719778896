// Package main rbtnote 命令行入口
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/muesli/termenv"

	"rbt-notepad/internal/application/export"
	"rbt-notepad/internal/config"
	"rbt-notepad/internal/infrastructure/clipboard"
	"rbt-notepad/internal/interfaces/cli"
	einoobs "rbt-notepad/internal/observability/eino"
	"rbt-notepad/internal/wire"
	"rbt-notepad/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(load).ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, cli.ErrorMessage(err))
		os.Exit(1)
	}
}

// load 读取配置并通过 Wire 装配服务；日志写 stderr，避免混入输出
func load(ctx context.Context, configDir string) (*cli.Deps, func(), error) {
	cfg, err := config.LoadFrom(configDir)
	if err != nil {
		return nil, nil, err
	}
	logger.InitWithWriter(os.Stderr, cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	einoobs.Init()

	app, cleanup, err := wire.InitializeCLI(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	return &cli.Deps{
		Models:    app.Models,
		Generator: app.Generator,
		Exports:   app.Exports,
		Themes:    app.Themes,
		Sharer: &export.Sharer{
			Clipboard: clipboard.System{},
			Manual:    clipboard.NewTerminal(),
		},
		DarkTerminal: termenv.HasDarkBackground,
	}, cleanup, nil
}
