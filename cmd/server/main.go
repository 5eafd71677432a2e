package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luoyx/content_ai_server/config"
	"github.com/luoyx/content_ai_server/internal/api"
	"github.com/luoyx/content_ai_server/internal/api/handler"
	"github.com/luoyx/content_ai_server/internal/database"
	"github.com/luoyx/content_ai_server/internal/pkg/email"
	"github.com/luoyx/content_ai_server/internal/pkg/oauth"
	"github.com/luoyx/content_ai_server/internal/pkg/oss"
	"github.com/luoyx/content_ai_server/internal/pkg/pubsub"
	"github.com/luoyx/content_ai_server/internal/pkg/queue"
	"github.com/luoyx/content_ai_server/internal/pkg/ws"
	"github.com/luoyx/content_ai_server/internal/repository"
	"github.com/luoyx/content_ai_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 内容库为空时写入示例数据
	if err := database.SeedContents(db); err != nil {
		log.Fatalf("Failed to seed contents: %v", err)
	}

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 OSS（可选）
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Printf("Warning: Failed to init OSS client: %v", err)
		} else {
			log.Println("OSS client initialized")
		}
	}

	// 初始化邮件服务（可选）
	var emailSvc *email.Service
	if cfg.Email.SMTPHost != "" {
		emailSvc = email.NewService(&cfg.Email)
		log.Println("Email service initialized")
	}

	// 初始化 Queue
	jobQueue := queue.NewQueue(rdb, cfg.Queue.AnalysisQueue)

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()

	// 订阅任务进度消息，推送给在线用户；退出时随服务器一起停止
	subCtx, subCancel := context.WithCancel(context.Background())
	subscriber := pubsub.NewSubscriber(rdb)
	go func() {
		err := subscriber.Subscribe(subCtx, func(msg *pubsub.ProgressMessage) {
			if !wsHub.IsOnline(msg.UserID) {
				return
			}
			if err := wsHub.SendToUser(msg.UserID, &ws.Message{
				Type: msg.Type,
				Data: msg,
			}); err != nil {
				log.Printf("Failed to push progress to user %d: %v", msg.UserID, err)
			}
		})
		if err != nil && err != context.Canceled {
			log.Printf("Progress subscriber stopped: %v", err)
		}
	}()

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	contentRepo := repository.NewContentRepository(db)

	// 初始化 Service
	stateStore := oauth.NewStateStore(rdb)
	authService := service.NewAuthService(userRepo, emailSvc, stateStore, cfg)
	userService := service.NewUserService(userRepo, analysisRepo, ossClient, cfg)
	analysisService := service.NewAnalysisService(analysisRepo, jobQueue, cfg)
	statsService := service.NewStatsService(statsRepo, analysisRepo, userRepo)
	contentService := service.NewContentService(contentRepo)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, statsService)
	analysisHandler := handler.NewAnalysisHandler(analysisService, statsService)
	contentHandler := handler.NewContentHandler(contentService)
	adminHandler := handler.NewAdminHandler(userService, statsService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		userHandler,
		analysisHandler,
		contentHandler,
		adminHandler,
		websocketHandler,
		userRepo,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 等待退出信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	subCancel()
	wsHub.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
