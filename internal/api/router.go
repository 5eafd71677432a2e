package api

import (
	"github.com/gin-gonic/gin"

	"github.com/luoyx/content_ai_server/config"
	"github.com/luoyx/content_ai_server/internal/api/handler"
	"github.com/luoyx/content_ai_server/internal/api/middleware"
	"github.com/luoyx/content_ai_server/internal/repository"
)

type Router struct {
	authHandler      *handler.AuthHandler
	userHandler      *handler.UserHandler
	analysisHandler  *handler.AnalysisHandler
	contentHandler   *handler.ContentHandler
	adminHandler     *handler.AdminHandler
	websocketHandler *handler.WebSocketHandler
	userRepo         *repository.UserRepository
	cfg              *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	analysisHandler *handler.AnalysisHandler,
	contentHandler *handler.ContentHandler,
	adminHandler *handler.AdminHandler,
	websocketHandler *handler.WebSocketHandler,
	userRepo *repository.UserRepository,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:      authHandler,
		userHandler:      userHandler,
		analysisHandler:  analysisHandler,
		contentHandler:   contentHandler,
		adminHandler:     adminHandler,
		websocketHandler: websocketHandler,
		userRepo:         userRepo,
		cfg:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/verify-email", r.authHandler.VerifyEmail)
			auth.GET("/github", r.authHandler.GithubAuth)
			auth.GET("/github/callback", r.authHandler.GithubCallback)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 用户
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.PUT("/profile", r.userHandler.UpdateProfile)
				user.POST("/avatar", r.userHandler.UploadAvatar)
				user.GET("/dashboard", r.userHandler.Dashboard)
				user.GET("/usage-stats", r.userHandler.UsageStats)
			}

			// 分析
			analyses := authenticated.Group("/analyses")
			{
				analyses.POST("", r.analysisHandler.Create)
				analyses.GET("", r.analysisHandler.List)
				analyses.GET("/stats/summary", r.analysisHandler.StatsSummary)
				analyses.GET("/:id", r.analysisHandler.Get)
				analyses.DELETE("/:id", r.analysisHandler.Delete)
			}

			// 热点内容库
			content := authenticated.Group("/content")
			{
				content.GET("/hot", r.contentHandler.ListHot)
				content.GET("/search", r.contentHandler.Search)
				content.GET("/stats", r.contentHandler.Stats)
				content.GET("/tags/popular", r.contentHandler.PopularTags)
				content.GET("/:id", r.contentHandler.Get)
			}

			// 管理员
			admin := authenticated.Group("/admin")
			admin.Use(middleware.Admin(r.userRepo))
			{
				admin.GET("/users", r.adminHandler.ListUsers)
				admin.PUT("/users/:id/status", r.adminHandler.UpdateUserStatus)
				admin.GET("/system-stats", r.adminHandler.SystemStats)
			}
		}
	}

	return engine
}
