package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/luoyx/content_ai_server/internal/analyzer"
	"github.com/luoyx/content_ai_server/internal/model"
	"github.com/luoyx/content_ai_server/internal/pkg/pubsub"
	"github.com/luoyx/content_ai_server/internal/pkg/queue"
	"github.com/luoyx/content_ai_server/internal/repository"
)

const (
	// 终态写入最大重试次数
	maxFinalizeRetries = 3
	finalizeRetryDelay = 500 * time.Millisecond
)

// Processor 分析任务处理器
type Processor struct {
	analysisRepo *repository.AnalysisRepository
	backend      analyzer.Backend
	publisher    *pubsub.Publisher
}

// NewProcessor 创建任务处理器
func NewProcessor(
	analysisRepo *repository.AnalysisRepository,
	backend analyzer.Backend,
	publisher *pubsub.Publisher,
) *Processor {
	return &Processor{
		analysisRepo: analysisRepo,
		backend:      backend,
		publisher:    publisher,
	}
}

// Process 处理单条分析任务
func (p *Processor) Process(ctx context.Context, msg *queue.JobMessage) error {
	// 认领任务：pending -> processing，失败说明记录已被处理或已删除
	claimed, err := p.analysisRepo.ClaimForProcessing(msg.AnalysisID)
	if err != nil {
		return fmt.Errorf("failed to claim analysis %d: %w", msg.AnalysisID, err)
	}
	if !claimed {
		log.Printf("Analysis %d: skipped, not in pending state", msg.AnalysisID)
		return nil
	}

	analysis, err := p.analysisRepo.GetByID(msg.AnalysisID)
	if err != nil {
		return fmt.Errorf("failed to get analysis %d: %w", msg.AnalysisID, err)
	}

	startedAt := time.Now()

	publishProgress := func(step, status string, errMsg string) {
		if p.publisher == nil {
			return
		}
		p.publisher.PublishProgress(ctx, &pubsub.ProgressMessage{
			UserID:     msg.UserID,
			AnalysisID: msg.AnalysisID,
			Status:     status,
			Step:       step,
			Error:      errMsg,
		})
	}

	handleError := func(step string, err error) error {
		errMsg := err.Error()
		elapsed := time.Since(startedAt).Milliseconds()
		p.finalize(func() error {
			return p.analysisRepo.FailWithError(msg.AnalysisID, errMsg, elapsed)
		}, msg.AnalysisID)
		publishProgress(step, "failed", errMsg)
		return err
	}

	fields := map[string]interface{}{}

	switch analysis.AnalysisType {
	case model.TypeStyleExtraction:
		log.Printf("Analysis %d: extracting style", analysis.ID)
		publishProgress(pubsub.StepExtracting, "processing", "")

		style, err := p.backend.ExtractStyle(ctx, analysis.OriginalContent)
		if err != nil {
			return handleError(pubsub.StepExtracting, fmt.Errorf("style extraction failed: %w", err))
		}
		fields["style_analysis"] = style

	case model.TypeQualityScoring:
		log.Printf("Analysis %d: scoring content", analysis.ID)
		publishProgress(pubsub.StepScoring, "processing", "")

		score, err := p.backend.ScoreContent(ctx, analysis.OriginalContent)
		if err != nil {
			return handleError(pubsub.StepScoring, fmt.Errorf("quality scoring failed: %w", err))
		}
		fields["quality_score"] = score
		fields["overall_score"] = score.Overall

	case model.TypeContentGeneration:
		log.Printf("Analysis %d: generating content", analysis.ID)
		publishProgress(pubsub.StepGenerating, "processing", "")

		generated, err := p.backend.GenerateContent(ctx, analysis.OriginalContent, analysis.GenerationParams)
		if err != nil {
			return handleError(pubsub.StepGenerating, fmt.Errorf("content generation failed: %w", err))
		}
		fields["generated_content"] = generated

		// 仿写同时提取原文风格，便于前端对照展示
		publishProgress(pubsub.StepExtracting, "processing", "")
		style, err := p.backend.ExtractStyle(ctx, analysis.OriginalContent)
		if err != nil {
			return handleError(pubsub.StepExtracting, fmt.Errorf("style extraction failed: %w", err))
		}
		fields["style_analysis"] = style

	default:
		return handleError(pubsub.StepQueued, fmt.Errorf("未知的分析类型: %s", analysis.AnalysisType))
	}

	// 写入终态
	publishProgress(pubsub.StepSaving, "processing", "")
	fields["processing_time"] = time.Since(startedAt).Milliseconds()

	if err := p.finalize(func() error {
		return p.analysisRepo.CompleteWithResult(msg.AnalysisID, fields)
	}, msg.AnalysisID); err != nil {
		publishProgress(pubsub.StepSaving, "failed", err.Error())
		return err
	}

	publishProgress(pubsub.StepDone, "completed", "")
	log.Printf("Analysis %d: completed in %d ms", analysis.ID, time.Since(startedAt).Milliseconds())

	return nil
}

// finalize 带重试的终态写入
func (p *Processor) finalize(write func() error, analysisID int64) error {
	var err error
	for attempt := 1; attempt <= maxFinalizeRetries; attempt++ {
		if err = write(); err == nil {
			return nil
		}
		log.Printf("Analysis %d: finalize attempt %d failed: %v", analysisID, attempt, err)
		if attempt < maxFinalizeRetries {
			time.Sleep(finalizeRetryDelay * time.Duration(attempt))
		}
	}
	return fmt.Errorf("failed to finalize analysis %d: %w", analysisID, err)
}
