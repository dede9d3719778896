package handler

import (
	"github.com/gin-gonic/gin"

	"rbt-notepad/internal/application/workspace"
	"rbt-notepad/internal/domain/entity"
	"rbt-notepad/internal/interfaces/http/dto"
	apperrors "rbt-notepad/pkg/errors"
)

// NoteHandler 笔记生成与编辑
type NoteHandler struct {
	renderer MarkdownRenderer
}

// NewNoteHandler 创建笔记处理器
func NewNoteHandler(renderer MarkdownRenderer) *NoteHandler {
	return &NoteHandler{renderer: renderer}
}

// Generate 校验表单后生成笔记；校验失败时不调用模型
// @Summary 生成会话笔记
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[dto.NoteResponse]
// @Failure 422 {object} dto.ErrorResponse
// @Router /v1/notes [post]
func (h *NoteHandler) Generate(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	var data entity.SessionData
	if err := c.ShouldBindJSON(&data); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if fe := data.Validate(); fe != nil {
		dto.UnprocessableEntity(c, apperrors.ErrValidationFailed.Message, &dto.ErrorDetail{
			ErrorCode: string(apperrors.CodeValidationFailed),
			Fields:    fe,
		})
		return
	}

	ctx := c.Request.Context()
	// 失败时错误文案同时记录在工作区，结果页刷新后仍可展示
	if _, err := ws.GenerateNote(ctx, &data); err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.Success(c, noteResponse(ctx, h.renderer, ws.Snapshot()))
}

// Get 当前笔记
// @Router /v1/notes [get]
func (h *NoteHandler) Get(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	dto.Success(c, noteResponse(c.Request.Context(), h.renderer, ws.Snapshot()))
}

// BeginEdit 进入编辑模式
// @Router /v1/notes/edit [post]
func (h *NoteHandler) BeginEdit(c *gin.Context) {
	h.mutate(c, func(ws *workspace.Workspace) error { return ws.BeginEdit() })
}

// UpdateDraft 更新草稿
// @Router /v1/notes/draft [put]
func (h *NoteHandler) UpdateDraft(c *gin.Context) {
	var req dto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	h.mutate(c, func(ws *workspace.Workspace) error { return ws.UpdateDraft(req.Text) })
}

// Save 保存草稿
// @Router /v1/notes/save [post]
func (h *NoteHandler) Save(c *gin.Context) {
	h.mutate(c, func(ws *workspace.Workspace) error { return ws.SaveEdit() })
}

// Cancel 放弃草稿
// @Router /v1/notes/cancel [post]
func (h *NoteHandler) Cancel(c *gin.Context) {
	h.mutate(c, func(ws *workspace.Workspace) error { return ws.CancelEdit() })
}

// DismissError 关闭错误提示
// @Router /v1/notes/error [delete]
func (h *NoteHandler) DismissError(c *gin.Context) {
	h.mutate(c, func(ws *workspace.Workspace) error {
		ws.DismissNoteError()
		return nil
	})
}

func (h *NoteHandler) mutate(c *gin.Context, fn func(ws *workspace.Workspace) error) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	if err := fn(ws); err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.Success(c, noteResponse(c.Request.Context(), h.renderer, ws.Snapshot()))
}
