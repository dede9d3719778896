package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由；limit 只作用于调用模型的接口
func RegisterV1Routes(v1 *gin.RouterGroup, h *Handlers, limit gin.HandlerFunc) {
	// 表单
	session := v1.Group("/session")
	{
		session.GET("/example", h.Session.Example)
		session.GET("/blank", h.Session.Blank)
		session.POST("/validate", h.Session.Validate)
	}

	// 笔记
	notes := v1.Group("/notes")
	{
		notes.POST("", limit, h.Note.Generate)
		notes.GET("", h.Note.Get)
		notes.POST("/edit", h.Note.BeginEdit)
		notes.PUT("/draft", h.Note.UpdateDraft)
		notes.POST("/save", h.Note.Save)
		notes.POST("/cancel", h.Note.Cancel)
		notes.DELETE("/error", h.Note.DismissError)
	}

	// 头脑风暴
	ideas := v1.Group("/ideas")
	{
		ideas.POST("", limit, h.Ideas.Start)
		ideas.POST("/messages", limit, h.Ideas.FollowUp)
		ideas.GET("", h.Ideas.Get)
		ideas.DELETE("/error", h.Ideas.DismissError)
	}

	// 导出与分享
	v1.GET("/exports/:format", h.Export.Download)
	v1.GET("/share/note", h.Export.ShareNote)
	v1.GET("/share/ideas", h.Export.ShareIdeas)

	// 偏好
	v1.GET("/preferences/theme", h.Preference.GetTheme)
	v1.PUT("/preferences/theme", h.Preference.SetTheme)

	// 工作区
	v1.GET("/workspace", h.Workspace.Get)
	v1.PUT("/workspace/tabs", h.Workspace.SetTabs)
}
