package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rbt-notepad/internal/application/workspace"
	"rbt-notepad/pkg/logger"
)

const workspaceKey = "workspace"

// Workspace 按 Cookie 绑定（或新建）浏览器工作区
func Workspace(store *workspace.Store, cookieName string, maxAge int) gin.HandlerFunc {
	if cookieName == "" {
		cookieName = "rbt_workspace"
	}
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookieName)
		ws, created := store.GetOrCreate(id)
		if created || id != ws.ID() {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, ws.ID(), maxAge, "/", "", c.Request.TLS != nil, true)
		}

		c.Set(workspaceKey, ws)
		ctx := logger.WithContext(c.Request.Context(), logger.WorkspaceIDKey, ws.ID())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetWorkspace 读取当前请求绑定的工作区
func GetWorkspace(c *gin.Context) *workspace.Workspace {
	v, ok := c.Get(workspaceKey)
	if !ok {
		return nil
	}
	ws, _ := v.(*workspace.Workspace)
	return ws
}
