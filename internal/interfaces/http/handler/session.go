package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"rbt-notepad/internal/domain/entity"
	"rbt-notepad/internal/interfaces/http/dto"
)

// SessionHandler 表单数据：示例、空白与校验
type SessionHandler struct {
	now func() time.Time
}

// NewSessionHandler 创建表单处理器
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{now: time.Now}
}

// Example 示例数据（日期为今天）
// @Router /v1/session/example [get]
func (h *SessionHandler) Example(c *gin.Context) {
	dto.Success(c, entity.ExampleSessionData(h.now()))
}

// Blank 重置后的空白表单
// @Router /v1/session/blank [get]
func (h *SessionHandler) Blank(c *gin.Context) {
	dto.Success(c, entity.NewSessionData())
}

// Validate 校验表单，不调用模型
// @Router /v1/session/validate [post]
func (h *SessionHandler) Validate(c *gin.Context) {
	var data entity.SessionData
	if err := c.ShouldBindJSON(&data); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	fe := data.Validate()
	dto.Success(c, &dto.ValidationResponse{Valid: len(fe) == 0, Errors: fe})
}
