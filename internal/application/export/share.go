package export

import (
	"context"
	"errors"
	"fmt"

	"rbt-notepad/internal/domain/entity"
	"rbt-notepad/pkg/logger"
)

// ErrShareCanceled 用户关闭了系统分享面板，不视为错误
var ErrShareCanceled = errors.New("share canceled")

// ErrNoShareMethod 没有任何可用的分享或复制方式
var ErrNoShareMethod = errors.New("no share or copy method available")

// ShareOutcome 分享结果
type ShareOutcome string

const (
	ShareShared   ShareOutcome = "shared"
	ShareCopied   ShareOutcome = "copied"
	ShareCanceled ShareOutcome = "canceled"
)

// Payload 分享内容
type Payload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// NotePayload 笔记分享内容
func NotePayload(clientName, note string) Payload {
	return Payload{Title: "RBT Session Note for " + clientName, Text: note}
}

// ConversationPayload 对话分享内容
func ConversationPayload(t entity.Transcript) Payload {
	return Payload{Title: "RBT Session Enhancement Ideas", Text: t.ShareText()}
}

// ShareTarget 系统级分享能力
type ShareTarget interface {
	Available() bool
	Share(ctx context.Context, p Payload) error
}

// Clipboard 复制能力
type Clipboard interface {
	Available() bool
	Copy(ctx context.Context, text string) error
}

// Sharer 分享链：系统分享 → 剪贴板 → 手动复制
type Sharer struct {
	Native    ShareTarget
	Clipboard Clipboard
	Manual    Clipboard
}

// Share 优先使用系统分享（忽略用户取消，其余失败直接返回）；
// 不可用时复制到剪贴板，剪贴板不可用或失败时退回手动复制
func (s *Sharer) Share(ctx context.Context, p Payload) (ShareOutcome, error) {
	if s.Native != nil && s.Native.Available() {
		err := s.Native.Share(ctx, p)
		switch {
		case err == nil:
			return ShareShared, nil
		case errors.Is(err, ErrShareCanceled):
			return ShareCanceled, nil
		default:
			return "", fmt.Errorf("share: %w", err)
		}
	}
	return s.Copy(ctx, p.Text)
}

// Copy 复制文本：剪贴板优先，失败时退回手动复制
func (s *Sharer) Copy(ctx context.Context, text string) (ShareOutcome, error) {
	if s.Clipboard != nil && s.Clipboard.Available() {
		err := s.Clipboard.Copy(ctx, text)
		if err == nil {
			return ShareCopied, nil
		}
		logger.Warn(ctx, "clipboard copy failed, falling back to manual copy", "error", err)
	}
	if s.Manual != nil && s.Manual.Available() {
		if err := s.Manual.Copy(ctx, text); err != nil {
			return "", fmt.Errorf("manual copy: %w", err)
		}
		return ShareCopied, nil
	}
	return "", ErrNoShareMethod
}
