package handler

import (
	"github.com/gin-gonic/gin"

	"rbt-notepad/internal/application/export"
	"rbt-notepad/internal/interfaces/http/dto"
)

// WorkspaceHandler 工作区整体视图与标签页
type WorkspaceHandler struct {
	renderer MarkdownRenderer
	registry *export.Registry
}

// NewWorkspaceHandler 创建工作区处理器
func NewWorkspaceHandler(renderer MarkdownRenderer, registry *export.Registry) *WorkspaceHandler {
	return &WorkspaceHandler{renderer: renderer, registry: registry}
}

// Get 页面加载时恢复全部界面状态
// @Router /v1/workspace [get]
func (h *WorkspaceHandler) Get(c *gin.Context) {
	h.respond(c)
}

// SetTabs 切换标签页
// @Router /v1/workspace/tabs [put]
func (h *WorkspaceHandler) SetTabs(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	var req dto.TabsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := ws.SetTabs(req.Main, req.Results); err != nil {
		dto.FromAppError(c, err)
		return
	}
	h.respond(c)
}

func (h *WorkspaceHandler) respond(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	snap := ws.Snapshot()
	dto.Success(c, &dto.WorkspaceResponse{
		ID:               snap.ID,
		Session:          snap.Session,
		Note:             noteResponse(ctx, h.renderer, snap),
		Ideas:            ideasResponse(ctx, h.renderer, snap.Ideas),
		MainTab:          snap.MainTab,
		ResultsTab:       snap.ResultsTab,
		ResultsAvailable: snap.ResultsAvailable,
		ExportFormats:    h.registry.Formats(),
	})
}
