package worker

import (
	"log"
	"time"

	"github.com/luoyx/content_ai_server/internal/repository"
)

// 超时任务的失败原因
const staleErrorMessage = "处理超时，任务已被系统标记为失败"

// Maintenance 周期性维护任务：把卡在 processing 状态的记录标记为失败
type Maintenance struct {
	analysisRepo *repository.AnalysisRepository
	interval     time.Duration
	staleAfter   time.Duration
	stopChan     chan struct{}
}

// NewMaintenance 创建维护任务
func NewMaintenance(analysisRepo *repository.AnalysisRepository, interval, staleAfter time.Duration) *Maintenance {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if staleAfter <= 0 {
		staleAfter = 30 * time.Minute
	}
	return &Maintenance{
		analysisRepo: analysisRepo,
		interval:     interval,
		staleAfter:   staleAfter,
		stopChan:     make(chan struct{}),
	}
}

// Start 启动维护循环
func (m *Maintenance) Start() {
	go m.run()
	log.Println("Maintenance service started (stale processing sweep)")
}

// Stop 停止维护循环
func (m *Maintenance) Stop() {
	close(m.stopChan)
	log.Println("Maintenance service stopped")
}

func (m *Maintenance) run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Maintenance) sweep() {
	before := time.Now().Add(-m.staleAfter)
	count, err := m.analysisRepo.MarkStaleProcessingFailed(before, staleErrorMessage)
	if err != nil {
		log.Printf("Maintenance: failed to sweep stale analyses: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Maintenance: marked %d stale analyses as failed", count)
	}
}

// RunNow 立即执行一次清理（用于测试或手动触发）
func (m *Maintenance) RunNow() (int64, error) {
	before := time.Now().Add(-m.staleAfter)
	return m.analysisRepo.MarkStaleProcessingFailed(before, staleErrorMessage)
}
