package router

import (
	"net/http"

	"minitwit/internal/handlers"
	"minitwit/internal/middleware"
	"minitwit/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const sessionName = "minitwit_session"

// Options are the collaborators the engine is built from.
type Options struct {
	Handler       *handlers.Handler
	Logger        zerolog.Logger
	SessionSecret string
	SecureCookies bool
	// Registry receives the HTTP metrics; nil means a private registry.
	Registry *prometheus.Registry
}

// New builds the gin engine with middleware, templates and routes.
func New(opts Options) (*gin.Engine, error) {
	renderer, err := web.LoadTemplates()
	if err != nil {
		return nil, err
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(reg)

	r := gin.New()
	r.HTMLRender = renderer

	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	r.Use(
		middleware.RequestID(),
		middleware.Logger(opts.Logger),
		middleware.Recovery(opts.Logger),
		metrics.Handler(),
		sessions.Sessions(sessionName, store),
	)

	r.StaticFS("/static", http.FS(web.Static()))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	RegisterRoutes(r, opts.Handler)
	return r, nil
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handler) {
	r.GET("/", h.Timeline)                               // 重定向到公共时间线
	r.GET("/public", h.PublicTimeline)                   // 所有公司的最新消息
	r.GET("/add_company", h.ShowAddCompany)              // 添加公司页面
	r.POST("/add_company", h.AddCompany)                 // 提交添加公司
	r.POST("/add_message/:company_id", h.AddMessage)     // 发布消息
	r.GET("/show/comments/:message_id/", h.ShowComments) // 获取消息评论 (JSON)
	r.POST("/add/comment/:message_id/", h.AddComment)    // 发表评论
	r.GET("/xxoo", h.Ping)                               // 诊断接口
	r.GET("/healthz", h.Health)                          // 健康检查

	// 公司主页，固定路由优先匹配
	r.GET("/:company_name", h.CompanyTimeline)
}
