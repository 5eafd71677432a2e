package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/luoyx/content_ai_server/config"
	"github.com/luoyx/content_ai_server/internal/model"
	"github.com/luoyx/content_ai_server/internal/model/dto"
	"github.com/luoyx/content_ai_server/internal/pkg/queue"
	"github.com/luoyx/content_ai_server/internal/repository"
)

var (
	ErrAnalysisNotFound = errors.New("分析记录不存在")
	ErrSubmitFailed     = errors.New("任务提交失败，请稍后重试")
)

// 提交校验错误，按规则顺序返回第一条
var (
	ErrContentTooShort     = errors.New("内容至少10个字符")
	ErrContentTooLong      = errors.New("内容不能超过10000个字符")
	ErrUnknownAnalysisType = errors.New("不支持的分析类型")
	ErrInvalidPlatform     = errors.New("不支持的目标平台")
	ErrAudienceTooLong     = errors.New("目标受众不能超过100个字符")
	ErrBadContentLength    = errors.New("生成长度需在50到5000之间")
	ErrStyleRefTooLong     = errors.New("风格参考不能超过1000个字符")
)

var validationErrors = []error{
	ErrContentTooShort,
	ErrContentTooLong,
	ErrUnknownAnalysisType,
	ErrInvalidPlatform,
	ErrAudienceTooLong,
	ErrBadContentLength,
	ErrStyleRefTooLong,
}

// IsValidationError 是否为提交参数校验错误
func IsValidationError(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// 支持的目标平台
var targetPlatforms = map[string]struct{}{
	"xiaohongshu": {},
	"douyin":      {},
	"bilibili":    {},
	"wechat":      {},
}

const (
	minContentLen = 10
	maxContentLen = 10000
)

// AnalysisService 任务受理入口：校验、建档、入队，不等待执行
type AnalysisService struct {
	analysisRepo *repository.AnalysisRepository
	jobQueue     *queue.Queue
	cfg          *config.Config
}

func NewAnalysisService(
	analysisRepo *repository.AnalysisRepository,
	jobQueue *queue.Queue,
	cfg *config.Config,
) *AnalysisService {
	return &AnalysisService{
		analysisRepo: analysisRepo,
		jobQueue:     jobQueue,
		cfg:          cfg,
	}
}

// Submit 受理一次分析请求。校验通过后创建 pending 记录并入队，
// 立即返回记录 ID；执行由 worker 异步完成。
func (s *AnalysisService) Submit(ctx context.Context, userID int64, req *dto.CreateAnalysisRequest) (*dto.CreateAnalysisResponse, error) {
	if err := validateSubmit(req); err != nil {
		return nil, err
	}

	analysis := &model.Analysis{
		UserID:          userID,
		OriginalContent: req.Content,
		AnalysisType:    req.AnalysisType,
		Status:          model.StatusPending,
	}
	if req.GenerationParams != nil {
		analysis.GenerationParams = &model.GenerationParams{
			TargetPlatform: req.GenerationParams.TargetPlatform,
			TargetAudience: req.GenerationParams.TargetAudience,
			ContentLength:  req.GenerationParams.ContentLength,
			StyleReference: req.GenerationParams.StyleReference,
		}
	}

	if err := s.analysisRepo.Create(analysis); err != nil {
		return nil, err
	}

	if s.jobQueue != nil {
		msg := &queue.JobMessage{
			AnalysisID:   analysis.ID,
			UserID:       userID,
			AnalysisType: analysis.AnalysisType,
		}
		if err := s.jobQueue.Push(ctx, msg); err != nil {
			// 入队失败则回收记录，让调用方显式重试
			log.Printf("Analysis %d: failed to enqueue: %v", analysis.ID, err)
			if delErr := s.analysisRepo.Delete(analysis.ID); delErr != nil {
				log.Printf("Analysis %d: failed to roll back record: %v", analysis.ID, delErr)
			}
			return nil, ErrSubmitFailed
		}
	}

	return &dto.CreateAnalysisResponse{
		AnalysisID: analysis.ID,
		Status:     analysis.Status,
	}, nil
}

// validateSubmit 按固定顺序校验，返回第一条被破坏的规则
func validateSubmit(req *dto.CreateAnalysisRequest) error {
	contentLen := len([]rune(req.Content))
	if contentLen < minContentLen {
		return ErrContentTooShort
	}
	if contentLen > maxContentLen {
		return ErrContentTooLong
	}

	if !model.IsValidAnalysisType(req.AnalysisType) {
		return ErrUnknownAnalysisType
	}

	// 生成参数整体可省略（后端使用默认值），给了就逐项检查边界
	if p := req.GenerationParams; p != nil {
		if p.TargetPlatform != "" {
			if _, ok := targetPlatforms[p.TargetPlatform]; !ok {
				return ErrInvalidPlatform
			}
		}
		if len([]rune(p.TargetAudience)) > 100 {
			return ErrAudienceTooLong
		}
		if p.ContentLength != 0 && (p.ContentLength < 50 || p.ContentLength > 5000) {
			return ErrBadContentLength
		}
		if len([]rune(p.StyleReference)) > 1000 {
			return ErrStyleRefTooLong
		}
	}

	return nil
}

// GetByID 获取分析详情。他人的记录与不存在同样返回 ErrAnalysisNotFound，
// 避免暴露记录是否存在。
func (s *AnalysisService) GetByID(userID, analysisID int64) (*model.Analysis, error) {
	analysis, err := s.analysisRepo.GetByIDForUser(analysisID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return analysis, nil
}

// List 分析历史，支持按类型与状态过滤
func (s *AnalysisService) List(userID int64, q *dto.ListAnalysesQuery) ([]*dto.AnalysisListItem, int64, error) {
	analyses, total, err := s.analysisRepo.ListByUserID(userID, q.AnalysisType, q.Status, q.Page, q.PageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.AnalysisListItem, len(analyses))
	for i, a := range analyses {
		items[i] = buildListItem(a)
	}

	return items, total, nil
}

// Delete 删除分析记录
func (s *AnalysisService) Delete(userID, analysisID int64) error {
	deleted, err := s.analysisRepo.DeleteByIDForUser(analysisID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAnalysisNotFound
	}
	return nil
}

func buildListItem(a *model.Analysis) *dto.AnalysisListItem {
	return &dto.AnalysisListItem{
		ID:             a.ID,
		AnalysisType:   a.AnalysisType,
		Status:         a.Status,
		OverallScore:   a.OverallScore,
		ProcessingTime: a.ProcessingTime,
		ErrorMessage:   a.ErrorMessage,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
}
