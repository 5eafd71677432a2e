package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/luoyx/content_ai_server/internal/model"
)

type AnalysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Create(analysis *model.Analysis) error {
	return r.db.Create(analysis).Error
}

func (r *AnalysisRepository) GetByID(id int64) (*model.Analysis, error) {
	var analysis model.Analysis
	err := r.db.Where("id = ?", id).First(&analysis).Error
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

// GetByIDForUser 按归属读取；他人的记录与不存在的记录同样返回 ErrRecordNotFound
func (r *AnalysisRepository) GetByIDForUser(id, userID int64) (*model.Analysis, error) {
	var analysis model.Analysis
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&analysis).Error
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

// DeleteByIDForUser 按归属删除，返回是否确有删除
func (r *AnalysisRepository) DeleteByIDForUser(id, userID int64) (bool, error) {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Analysis{})
	return res.RowsAffected > 0, res.Error
}

func (r *AnalysisRepository) Delete(id int64) error {
	return r.db.Delete(&model.Analysis{}, id).Error
}

// ClaimForProcessing 把 pending 记录置为 processing。
// 条件更新保证同一条记录最多被一个 worker 认领：重复调度时第二次返回 false。
func (r *AnalysisRepository) ClaimForProcessing(id int64) (bool, error) {
	res := r.db.Model(&model.Analysis{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Update("status", model.StatusProcessing)
	return res.RowsAffected > 0, res.Error
}

// CompleteWithResult 写入结果并置为 completed。
// 单条 UPDATE 保证读取方不会看到写了一半的终态；
// 条件限定 processing，终态一旦写入不再变化。
func (r *AnalysisRepository) CompleteWithResult(id int64, fields map[string]interface{}) error {
	fields["status"] = model.StatusCompleted
	return r.db.Model(&model.Analysis{}).
		Where("id = ? AND status = ?", id, model.StatusProcessing).
		Updates(fields).Error
}

// FailWithError 记录失败原因并置为 failed
func (r *AnalysisRepository) FailWithError(id int64, errMsg string, processingTime int64) error {
	return r.db.Model(&model.Analysis{}).
		Where("id = ? AND status = ?", id, model.StatusProcessing).
		Updates(map[string]interface{}{
			"status":          model.StatusFailed,
			"error_message":   errMsg,
			"processing_time": processingTime,
		}).Error
}

// ListByUserID 用户的分析历史，按创建时间倒序
func (r *AnalysisRepository) ListByUserID(userID int64, analysisType, status string, page, pageSize int) ([]*model.Analysis, int64, error) {
	var analyses []*model.Analysis
	var total int64

	query := r.db.Model(&model.Analysis{}).Where("user_id = ?", userID)

	if analysisType != "" {
		query = query.Where("analysis_type = ?", analysisType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	// 列表页不加载内容正文
	err := query.
		Omit("original_content", "generated_content").
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&analyses).Error
	if err != nil {
		return nil, 0, err
	}

	return analyses, total, nil
}

// ListRecentByUserID 最近 N 条记录（仪表盘用），不加载正文
func (r *AnalysisRepository) ListRecentByUserID(userID int64, limit int) ([]*model.Analysis, error) {
	var analyses []*model.Analysis
	err := r.db.Model(&model.Analysis{}).
		Where("user_id = ?", userID).
		Omit("original_content", "generated_content").
		Order("created_at DESC").
		Limit(limit).
		Find(&analyses).Error
	return analyses, err
}

// CountByUserID 单个用户的任务总数与完成数
func (r *AnalysisRepository) CountByUserID(userID int64) (total, completed int64, err error) {
	if err = r.db.Model(&model.Analysis{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return
	}
	err = r.db.Model(&model.Analysis{}).
		Where("user_id = ? AND status = ?", userID, model.StatusCompleted).
		Count(&completed).Error
	return
}

// MarkStaleProcessingFailed 把超过 before 仍停留在 processing 的记录标记为失败，
// 返回处理的条数。后台巡检使用。
func (r *AnalysisRepository) MarkStaleProcessingFailed(before time.Time, errMsg string) (int64, error) {
	res := r.db.Model(&model.Analysis{}).
		Where("status = ? AND updated_at < ?", model.StatusProcessing, before).
		Updates(map[string]interface{}{
			"status":          model.StatusFailed,
			"error_message":   errMsg,
			"processing_time": 0,
		})
	return res.RowsAffected, res.Error
}
