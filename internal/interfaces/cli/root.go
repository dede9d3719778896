// Package cli 提供 rbtnote 命令行：生成笔记、头脑风暴、导出、分享与主题设置
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rbt-notepad/internal/application/export"
	"rbt-notepad/internal/application/port"
	"rbt-notepad/internal/application/preference"
	"rbt-notepad/internal/domain/entity"
)

// NoteGenerator 笔记生成能力
type NoteGenerator interface {
	Generate(ctx context.Context, data *entity.SessionData) (string, error)
}

// Deps 命令执行所需的服务
type Deps struct {
	Models    port.ChatModelFactory
	Generator NoteGenerator
	Exports   *export.Registry
	Themes    *preference.ThemeService
	Sharer    *export.Sharer
	// DarkTerminal 终端背景是否为深色，用作主题的系统提示
	DarkTerminal func() bool
}

// Loader 按配置目录构造依赖，返回清理函数
type Loader func(ctx context.Context, configDir string) (*Deps, func(), error)

type runner struct {
	load      Loader
	configDir string
}

// with 加载依赖后执行 fn，结束时清理
func (r *runner) with(ctx context.Context, fn func(*Deps) error) error {
	deps, cleanup, err := r.load(ctx, r.configDir)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(deps)
}

// NewRootCmd 创建根命令
func NewRootCmd(load Loader) *cobra.Command {
	r := &runner{load: load}

	root := &cobra.Command{
		Use:           "rbtnote",
		Short:         "Generate and manage RBT session notes from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&r.configDir, "config", "configs", "configuration directory")

	root.AddCommand(newExampleCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newGenerateCmd(r))
	root.AddCommand(newIdeasCmd(r))
	root.AddCommand(newExportCmd(r))
	root.AddCommand(newShareCmd(r))
	root.AddCommand(newThemeCmd(r))
	return root
}

func themeHint(deps *Deps) string {
	if deps.DarkTerminal == nil {
		return ""
	}
	if deps.DarkTerminal() {
		return string(entity.ThemeDark)
	}
	return string(entity.ThemeLight)
}

func writeln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
