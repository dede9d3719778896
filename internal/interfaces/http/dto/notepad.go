package dto

import (
	"rbt-notepad/internal/application/export"
	"rbt-notepad/internal/application/ideas"
	"rbt-notepad/internal/application/workspace"
	"rbt-notepad/internal/domain/entity"
)

// ValidationResponse 表单校验结果
type ValidationResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// NoteResponse 笔记视图
type NoteResponse struct {
	Note      string `json:"note"`
	HTML      string `json:"html"`
	Draft     string `json:"draft"`
	Editing   bool   `json:"editing"`
	Error     string `json:"error,omitempty"`
	Loading   bool   `json:"loading"`
	Available bool   `json:"available"`
}

// DraftRequest 编辑草稿请求
type DraftRequest struct {
	Text string `json:"text"`
}

// FollowUpRequest 追问请求
type FollowUpRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatMessageResponse 对话消息（含渲染后的 HTML）
type ChatMessageResponse struct {
	Role string `json:"role"`
	Text string `json:"text"`
	HTML string `json:"html"`
}

// IdeasResponse 头脑风暴视图
type IdeasResponse struct {
	State      ideas.State            `json:"state"`
	Seq        uint64                 `json:"seq"`
	Messages   []*ChatMessageResponse `json:"messages"`
	Error      string                 `json:"error,omitempty"`
	HasSession bool                   `json:"hasSession"`
}

// StreamDoneEvent 流结束事件
type StreamDoneEvent struct {
	Seq  uint64 `json:"seq"`
	Text string `json:"text"`
	HTML string `json:"html"`
}

// ThemeRequest 主题设置请求
type ThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// ThemeResponse 主题
type ThemeResponse struct {
	Theme  entity.Theme `json:"theme"`
	Source string       `json:"source"`
}

// TabsRequest 标签页切换请求
type TabsRequest struct {
	Main    workspace.MainTab    `json:"main"`
	Results workspace.ResultsTab `json:"results"`
}

// WorkspaceResponse 工作区视图
type WorkspaceResponse struct {
	ID               string               `json:"id"`
	Session          *entity.SessionData  `json:"session,omitempty"`
	Note             *NoteResponse        `json:"note"`
	Ideas            *IdeasResponse       `json:"ideas"`
	MainTab          workspace.MainTab    `json:"mainTab"`
	ResultsTab       workspace.ResultsTab `json:"resultsTab"`
	ResultsAvailable bool                 `json:"resultsAvailable"`
	ExportFormats    []string             `json:"exportFormats"`
}

// ShareResponse 分享内容
type ShareResponse = export.Payload
