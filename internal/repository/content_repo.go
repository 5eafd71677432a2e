package repository

import (
	"gorm.io/gorm"

	"github.com/luoyx/content_ai_server/internal/model"
	"github.com/luoyx/content_ai_server/internal/model/dto"
)

// ContentRepository 热点内容库只读查询。数据由采集侧写入，这里不提供写接口。
type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// 列表排序方式白名单，键为对外参数值
var hotSortColumns = map[string]string{
	"hot_score":    "hot_score DESC",
	"extracted_at": "extracted_at DESC",
	"engagement":   "metric_engagement DESC",
}

// ListHot 热点内容列表，可按平台、内容类型、分类过滤。
// 排序方式不在白名单内时按热度分倒序。
func (r *ContentRepository) ListHot(q *dto.HotContentQuery) ([]*model.Content, int64, error) {
	var contents []*model.Content
	var total int64

	query := r.db.Model(&model.Content{}).Where("is_hot = ?", true)

	if q.Platform != "" {
		query = query.Where("platform = ?", q.Platform)
	}
	if q.ContentType != "" {
		query = query.Where("content_type = ?", q.ContentType)
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := hotSortColumns[q.SortBy]
	if !ok {
		order = hotSortColumns["hot_score"]
	}

	offset := (q.Page - 1) * q.PageSize
	err := query.
		Order(order).
		Offset(offset).Limit(q.PageSize).
		Find(&contents).Error
	if err != nil {
		return nil, 0, err
	}

	return contents, total, nil
}

func (r *ContentRepository) GetByID(id int64) (*model.Content, error) {
	var content model.Content
	err := r.db.Where("id = ?", id).First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// Search 在标题、正文、标签中做关键词模糊匹配，热度分倒序。
// 标签以 JSON 数组文本存储，LIKE 足以覆盖标签命中。
func (r *ContentRepository) Search(q *dto.SearchContentQuery) ([]*model.Content, int64, error) {
	var contents []*model.Content
	var total int64

	pattern := "%" + q.Keyword + "%"
	query := r.db.Model(&model.Content{}).
		Where("title LIKE ? OR content LIKE ? OR tags LIKE ?", pattern, pattern, pattern)

	if q.Platform != "" {
		query = query.Where("platform = ?", q.Platform)
	}
	if q.ContentType != "" {
		query = query.Where("content_type = ?", q.ContentType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.PageSize
	err := query.
		Order("hot_score DESC, extracted_at DESC").
		Offset(offset).Limit(q.PageSize).
		Find(&contents).Error
	if err != nil {
		return nil, 0, err
	}

	return contents, total, nil
}

// PlatformBreakdown 按平台统计内容规模，按总数倒序
func (r *ContentRepository) PlatformBreakdown() ([]dto.PlatformContentStat, error) {
	stats := []dto.PlatformContentStat{}
	err := r.db.Model(&model.Content{}).
		Select("platform",
			"COUNT(*) AS count",
			"SUM(CASE WHEN is_hot THEN 1 ELSE 0 END) AS hot_count",
			"COALESCE(AVG(hot_score), 0) AS avg_hot_score",
			"COALESCE(SUM(metric_views), 0) AS total_views",
			"COALESCE(SUM(metric_likes), 0) AS total_likes").
		Group("platform").
		Order("count DESC").
		Scan(&stats).Error
	return stats, err
}

// Totals 内容库总体统计，空库返回零值
func (r *ContentRepository) Totals() (*dto.ContentTotals, error) {
	var stat dto.ContentTotals
	err := r.db.Model(&model.Content{}).
		Select("COUNT(*) AS total_contents",
			"COALESCE(SUM(CASE WHEN is_hot THEN 1 ELSE 0 END), 0) AS total_hot",
			"COALESCE(AVG(hot_score), 0) AS avg_hot_score",
			"COALESCE(SUM(metric_views), 0) AS total_views",
			"COALESCE(SUM(metric_likes), 0) AS total_likes").
		Scan(&stat).Error
	return &stat, err
}

// HotTagRows 全部热点内容的标签与热度分。标签在 JSON 列里，
// 展开聚合放在服务层用 Go 完成。
func (r *ContentRepository) HotTagRows() ([]model.Content, error) {
	var rows []model.Content
	err := r.db.Model(&model.Content{}).
		Where("is_hot = ?", true).
		Select("tags", "hot_score").
		Find(&rows).Error
	return rows, err
}
