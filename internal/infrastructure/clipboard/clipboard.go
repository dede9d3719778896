// Package clipboard 系统剪贴板与 OSC52 终端复制
package clipboard

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// System 系统剪贴板（xclip/xsel/wl-copy/pbcopy/clip.exe）
type System struct{}

// Available 当前平台是否有剪贴板工具
func (System) Available() bool {
	return !clipboard.Unsupported
}

// Copy 写入系统剪贴板
func (System) Copy(_ context.Context, text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Terminal 通过 OSC52 转义序列让终端接管复制，适用于 SSH 会话
type Terminal struct {
	Out io.Writer
	// Env 读取环境变量，默认 os.Getenv
	Env func(string) string
}

// NewTerminal 使用 stderr 输出转义序列
func NewTerminal() *Terminal {
	return &Terminal{Out: os.Stderr, Env: os.Getenv}
}

// Available 有输出目标即可
func (t *Terminal) Available() bool {
	return t != nil && t.Out != nil
}

// Copy 写入 OSC52 序列，tmux/screen 下使用对应的透传格式
func (t *Terminal) Copy(_ context.Context, text string) error {
	getenv := t.Env
	if getenv == nil {
		getenv = os.Getenv
	}

	seq := osc52.New(text)
	switch {
	case getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(t.Out); err != nil {
		return fmt.Errorf("write osc52 sequence: %w", err)
	}
	return nil
}
