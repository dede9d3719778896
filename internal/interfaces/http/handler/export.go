package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"rbt-notepad/internal/application/export"
	"rbt-notepad/internal/interfaces/http/dto"
)

// ExportHandler 导出与分享
type ExportHandler struct {
	registry *export.Registry
}

// NewExportHandler 创建导出处理器
func NewExportHandler(registry *export.Registry) *ExportHandler {
	return &ExportHandler{registry: registry}
}

// Download 以附件形式下载当前笔记（编辑中时为草稿）
// @Summary 导出笔记
// @Param format path string true "txt | docx | pdf"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/exports/{format} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	data, note, err := ws.ExportSource()
	if err != nil {
		dto.FromAppError(c, err)
		return
	}

	file, err := h.registry.Export(c.Request.Context(), c.Param("format"), export.NewDocument(data, note))
	if err != nil {
		dto.FromAppError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.MimeType, file.Content)
}

// ShareNote 笔记分享内容，由浏览器调用系统分享或复制
// @Router /v1/share/note [get]
func (h *ExportHandler) ShareNote(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	data, note, err := ws.ExportSource()
	if err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.Success(c, export.NotePayload(data.ClientName, note))
}

// ShareIdeas 对话分享内容
// @Router /v1/share/ideas [get]
func (h *ExportHandler) ShareIdeas(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	snap := ws.Brainstorm().Snapshot()
	if len(snap.Transcript) == 0 {
		dto.NotFound(c, "there is no conversation to share")
		return
	}
	dto.Success(c, export.ConversationPayload(snap.Transcript))
}
