package handler

import (
	"github.com/gin-gonic/gin"

	"rbt-notepad/internal/application/preference"
	"rbt-notepad/internal/domain/entity"
	"rbt-notepad/internal/interfaces/http/dto"
)

// colorSchemeHint 浏览器的配色偏好客户端提示
const colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"

// PreferenceHandler 主题偏好
type PreferenceHandler struct {
	themes *preference.ThemeService
}

// NewPreferenceHandler 创建偏好处理器
func NewPreferenceHandler(themes *preference.ThemeService) *PreferenceHandler {
	return &PreferenceHandler{themes: themes}
}

// GetTheme 当前浏览器的主题：已保存 → 浏览器提示 → light
// @Router /v1/preferences/theme [get]
func (h *PreferenceHandler) GetTheme(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	c.Header("Accept-CH", colorSchemeHint)
	c.Header("Vary", colorSchemeHint)

	hint := c.GetHeader(colorSchemeHint)
	if hint == "" {
		hint = c.Query("system")
	}
	res := h.themes.Resolve(c.Request.Context(), ws.ID(), hint)
	dto.Success(c, &dto.ThemeResponse{Theme: res.Theme, Source: string(res.Source)})
}

// SetTheme 保存当前浏览器的主题
// @Router /v1/preferences/theme [put]
func (h *PreferenceHandler) SetTheme(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	var req dto.ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	theme, err := entity.ParseTheme(req.Theme)
	if err != nil {
		dto.BadRequest(c, err.Error())
		return
	}
	if err := h.themes.Set(c.Request.Context(), ws.ID(), theme); err != nil {
		dto.InternalError(c, "failed to save theme preference")
		return
	}
	dto.Success(c, &dto.ThemeResponse{Theme: theme, Source: string(preference.SourceStored)})
}
