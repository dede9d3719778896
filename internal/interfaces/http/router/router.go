// Package router 提供 HTTP 路由配置
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rbt-notepad/internal/application/workspace"
	"rbt-notepad/internal/config"
	"rbt-notepad/internal/interfaces/http/handler"
	"rbt-notepad/internal/interfaces/http/middleware"
	"rbt-notepad/internal/interfaces/http/web"
)

// Handlers 路由使用的全部处理器
type Handlers struct {
	Health     *handler.HealthHandler
	Session    *handler.SessionHandler
	Note       *handler.NoteHandler
	Ideas      *handler.IdeasHandler
	Export     *handler.ExportHandler
	Preference *handler.PreferenceHandler
	Workspace  *handler.WorkspaceHandler
}

// Router HTTP 路由器
type Router struct {
	engine   *gin.Engine
	cfg      *config.Config
	store    *workspace.Store
	handlers *Handlers
	limiter  middleware.RateLimiter
}

// New 创建新的路由器；limiter 为 nil 时不限流
func New(cfg *config.Config, store *workspace.Store, handlers *Handlers, limiter middleware.RateLimiter) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:   gin.New(),
		cfg:      cfg,
		store:    store,
		handlers: handlers,
		limiter:  limiter,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CORS(r.cfg.Security.CORS))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name, "/health", "/ready", "/live", r.cfg.Observability.Metrics.Path))
		r.engine.Use(middleware.TraceContext())
	}

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	h := r.handlers

	// 系统端点
	r.engine.GET("/health", h.Health.Health)
	r.engine.GET("/ready", h.Health.Ready)
	r.engine.GET("/live", h.Health.Live)

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// 前端页面
	index := web.Index()
	r.engine.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	r.engine.StaticFS("/static", http.FS(web.Static()))

	// API v1：全部接口绑定浏览器工作区
	maxAge := r.cfg.Workspace.CookieMaxAge
	if maxAge <= 0 {
		maxAge = r.cfg.Workspace.IdleTTL
	}
	v1 := r.engine.Group("/v1", middleware.Workspace(r.store, r.cfg.Workspace.CookieName, int(maxAge.Seconds())))
	RegisterV1Routes(v1, h, middleware.RateLimit(r.limiter))
}
