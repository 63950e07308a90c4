// Package router mounts the dashboard pages, their JSON views and the push channels on a gin
// engine.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/revitalisasi-dashboard/internal/handler"
	"github.com/noah-isme/revitalisasi-dashboard/internal/middleware"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	"github.com/noah-isme/revitalisasi-dashboard/internal/view"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/logger"
	corsmiddleware "github.com/noah-isme/revitalisasi-dashboard/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/revitalisasi-dashboard/pkg/middleware/requestid"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Auth        *handler.AuthHandler
	Pages       *handler.PageHandler
	Live        *handler.LiveHandler
	Reviews     *handler.ReviewHandler
	Discussions *handler.DiscussionHandler
	Dashboard   *handler.DashboardHandler
	Metrics     *handler.MetricsHandler
}

type requestObserver interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// Options configures the engine.
type Options struct {
	Sessions    middleware.SessionStore
	Cookie      middleware.CookieConfig
	CORSOrigins []string
	Observer    requestObserver
	Swagger     bool
	Logger      *zap.Logger
}

// New builds the engine with templates installed. Route order does not matter to gin; static
// segments such as dashboard or diskusi take precedence over :resource.
func New(h Handlers, opts Options) (*gin.Engine, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(corsmiddleware.New(opts.CORSOrigins))
	if opts.Observer != nil {
		r.Use(middleware.Metrics(opts.Observer))
	}
	r.Use(middleware.WithResponseMeta())

	if err := view.Install(r); err != nil {
		return nil, err
	}

	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		r.GET("/ready", h.Metrics.Ready)
		r.GET("/metrics", h.Metrics.Prometheus)
		r.GET("/metrics/ringkasan", h.Metrics.Snapshot)
	}
	if opts.Swagger {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	session := middleware.Session(opts.Sessions, opts.Cookie, opts.Logger)
	auth := middleware.RequireAuth()

	public := r.Group("/", session)
	{
		public.GET("/", h.Auth.LoginPage)
		public.POST("/login", h.Auth.Login)
		public.POST("/logout", h.Auth.Logout)
		public.GET("/forgot/password", h.Auth.ForgotPage)
		public.POST("/forgot/password", h.Auth.ForgotPassword)
	}

	signedIn := r.Group("/", session, auth)
	{
		signedIn.GET("/unduh/:token", h.Pages.Download)
		signedIn.GET("/ws/discussion", middleware.Permit(roles.ActionView, roles.ResourceDiskusi), h.Discussions.ServeWS)
		signedIn.GET("/ws/list/:role/:resource", middleware.RoleGuard(), h.Live.ServeWS)
	}

	role := r.Group("/:"+middleware.RoleParam, session, auth, middleware.RoleGuard())
	{
		role.GET("/dashboard", h.Dashboard.Dashboard)
		role.GET("/kalender", h.Dashboard.Calendar)

		role.GET("/profil", h.Auth.Profile)
		role.POST("/profil", h.Auth.UpdateProfile)
		role.POST("/profil/password", h.Auth.ChangePassword)

		progress := role.Group("/progres", middleware.Permit(roles.ActionCreate, roles.ResourceProgres))
		progress.GET("", h.Pages.ProgressPage)
		progress.POST("", h.Pages.SubmitProgress)

		role.GET("/reviu", h.Reviews.Page)
		role.POST("/reviu", h.Reviews.Save)
		role.POST("/reviu/status", h.Reviews.Status)
		role.POST("/reviu/kendala", h.Reviews.RefreshIssues)

		discussion := role.Group("/diskusi", middleware.Permit(roles.ActionView, roles.ResourceDiskusi))
		discussion.GET("", h.Discussions.Threads)
		discussion.POST("", h.Discussions.CreateThread)
		discussion.GET("/:id", h.Discussions.Thread)
		discussion.POST("/:id/pesan", h.Discussions.Send)
		discussion.POST("/:id/moderasi", h.Discussions.Moderate)

		role.GET("/:resource", h.Pages.List)
		role.POST("/:resource", h.Pages.Create)
		role.GET("/:resource/ekspor", h.Pages.Export)
		role.GET("/:resource/tambah", h.Pages.New)
		role.POST("/:resource/hapus", h.Pages.BulkDelete)
		role.GET("/:resource/:id", h.Pages.Detail)
		role.POST("/:resource/:id", h.Pages.Update)
		role.GET("/:resource/:id/ubah", h.Pages.Edit)
		role.POST("/:resource/:id/hapus", h.Pages.Delete)
		role.GET("/:resource/:id/unduh", h.Pages.DownloadLink)
		role.POST("/:resource/:id/status", h.Pages.SuratStatus)
		role.POST("/:resource/:id/reset-password", h.Pages.ResetPassword)
		role.GET("/:resource/:id/:child", h.Pages.List)
		role.GET("/:resource/:id/:child/ekspor", h.Pages.Export)
	}

	r.NoRoute(session, func(c *gin.Context) {
		view.RenderError(c, middleware.SessionFromContext(c), appErrors.ErrNotFound)
	})
	return r, nil
}
