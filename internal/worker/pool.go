package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/luoyx/content_ai_server/internal/pkg/queue"
)

// Pool 有界 worker 池，从队列消费分析任务
type Pool struct {
	queue      *queue.Queue
	processor  *Processor
	maxWorkers int
	popTimeout time.Duration
	wg         sync.WaitGroup
}

// NewPool 创建 worker 池
func NewPool(q *queue.Queue, processor *Processor, maxWorkers int, popTimeout time.Duration) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if popTimeout <= 0 {
		popTimeout = 5 * time.Second
	}
	return &Pool{
		queue:      q,
		processor:  processor,
		maxWorkers: maxWorkers,
		popTimeout: popTimeout,
	}
}

// Start 启动所有 worker，ctx 取消后退出
func (p *Pool) Start(ctx context.Context) {
	log.Printf("Worker pool started, max workers: %d", p.maxWorkers)

	for i := 0; i < p.maxWorkers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
}

// Wait 等待所有 worker 退出
func (p *Pool) Wait() {
	p.wg.Wait()
	log.Println("Worker pool shutdown complete")
}

func (p *Pool) run(ctx context.Context, workerID int) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", workerID)
			return
		default:
			msg, err := p.queue.Pop(ctx, p.popTimeout)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("Worker %d: failed to pop job: %v", workerID, err)
				continue
			}

			if msg == nil {
				continue // 超时，继续等待
			}

			log.Printf("Worker %d: processing analysis %d", workerID, msg.AnalysisID)
			if err := p.processor.Process(ctx, msg); err != nil {
				log.Printf("Worker %d: analysis %d failed: %v", workerID, msg.AnalysisID, err)
			}
		}
	}
}
