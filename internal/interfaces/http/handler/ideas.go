package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"rbt-notepad/internal/application/ideas"
	"rbt-notepad/internal/interfaces/http/dto"
)

// IdeasHandler 头脑风暴对话
type IdeasHandler struct {
	renderer MarkdownRenderer
}

// NewIdeasHandler 创建头脑风暴处理器
func NewIdeasHandler(renderer MarkdownRenderer) *IdeasHandler {
	return &IdeasHandler{renderer: renderer}
}

// Start 以最近提交的会话数据开始头脑风暴
// @Summary 获取会话改进建议（SSE）
// @Produce text/event-stream
// @Success 200 "SSE stream: content / done / error"
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/ideas [post]
func (h *IdeasHandler) Start(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	streamSSE(c, h.renderer, func(ctx context.Context, observe ideas.Observer) (string, error) {
		return ws.StartIdeas(ctx, observe)
	})
}

// FollowUp 追问（SSE）
// @Router /v1/ideas/messages [post]
func (h *IdeasHandler) FollowUp(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	var req dto.FollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		dto.FromAppError(c, ideas.ErrEmptyMessage)
		return
	}

	streamSSE(c, h.renderer, func(ctx context.Context, observe ideas.Observer) (string, error) {
		return ws.SendFollowUp(ctx, message, observe)
	})
}

// Get 当前对话
// @Router /v1/ideas [get]
func (h *IdeasHandler) Get(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	dto.Success(c, ideasResponse(c.Request.Context(), h.renderer, ws.Brainstorm().Snapshot()))
}

// DismissError 关闭错误提示
// @Router /v1/ideas/error [delete]
func (h *IdeasHandler) DismissError(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	ws.DismissChatError()
	dto.Success(c, ideasResponse(c.Request.Context(), h.renderer, ws.Brainstorm().Snapshot()))
}
