package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luoyx/content_ai_server/config"
	"github.com/luoyx/content_ai_server/internal/analyzer"
	"github.com/luoyx/content_ai_server/internal/database"
	"github.com/luoyx/content_ai_server/internal/pkg/pubsub"
	"github.com/luoyx/content_ai_server/internal/pkg/queue"
	"github.com/luoyx/content_ai_server/internal/repository"
	"github.com/luoyx/content_ai_server/internal/worker"
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

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 Queue 和 Pub/Sub
	jobQueue := queue.NewQueue(rdb, cfg.Queue.AnalysisQueue)
	publisher := pubsub.NewPublisher(rdb)

	// 初始化 Repository 和分析后端
	analysisRepo := repository.NewAnalysisRepository(db)
	backend := analyzer.NewStubBackend(&cfg.Analyzer)

	// 创建任务处理器和 worker 池
	processor := worker.NewProcessor(analysisRepo, backend, publisher)
	popTimeout := time.Duration(cfg.Queue.PopTimeoutSec) * time.Second
	pool := worker.NewPool(jobQueue, processor, cfg.Queue.MaxWorkers, popTimeout)

	// 后台巡检：清理卡住的 processing 记录
	maintenance := worker.NewMaintenance(
		analysisRepo,
		time.Duration(cfg.Maintenance.IntervalMinutes)*time.Minute,
		time.Duration(cfg.Maintenance.StaleAfterMinutes)*time.Minute,
	)
	maintenance.Start()
	defer maintenance.Stop()

	// 创建 context 用于优雅关闭
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	pool.Start(ctx)
	pool.Wait()
}
