// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"html"
	"strings"

	"github.com/gin-gonic/gin"

	"rbt-notepad/internal/application/ideas"
	"rbt-notepad/internal/application/workspace"
	"rbt-notepad/internal/interfaces/http/dto"
	"rbt-notepad/internal/interfaces/http/middleware"
	"rbt-notepad/pkg/logger"
)

// MarkdownRenderer Markdown 渲染能力
type MarkdownRenderer interface {
	Render(src string) (string, error)
}

// requireWorkspace 读取当前工作区，缺失时写 500
func requireWorkspace(c *gin.Context) (*workspace.Workspace, bool) {
	ws := middleware.GetWorkspace(c)
	if ws == nil {
		dto.InternalError(c, "workspace not bound")
		return nil, false
	}
	return ws, true
}

// renderHTML 渲染失败时退回转义后的纯文本
func renderHTML(ctx context.Context, r MarkdownRenderer, text string) string {
	if text == "" {
		return ""
	}
	out, err := r.Render(text)
	if err != nil {
		logger.Warn(ctx, "markdown render failed", "error", err)
		return "<p>" + strings.ReplaceAll(html.EscapeString(text), "\n", "<br>") + "</p>"
	}
	return out
}

func noteResponse(ctx context.Context, r MarkdownRenderer, snap workspace.Snapshot) *dto.NoteResponse {
	return &dto.NoteResponse{
		Note:      snap.Note.Committed,
		HTML:      renderHTML(ctx, r, snap.Note.Committed),
		Draft:     snap.Note.Draft,
		Editing:   snap.Note.Editing,
		Error:     snap.NoteError,
		Loading:   snap.NoteLoading,
		Available: snap.ResultsAvailable,
	}
}

func ideasResponse(ctx context.Context, r MarkdownRenderer, snap ideas.Snapshot) *dto.IdeasResponse {
	msgs := make([]*dto.ChatMessageResponse, 0, len(snap.Transcript))
	for _, m := range snap.Transcript {
		msgs = append(msgs, &dto.ChatMessageResponse{
			Role: string(m.Role),
			Text: m.Text,
			HTML: renderHTML(ctx, r, m.Text),
		})
	}
	return &dto.IdeasResponse{
		State:      snap.State,
		Seq:        snap.Seq,
		Messages:   msgs,
		Error:      snap.Error,
		HasSession: snap.HasSession,
	}
}
