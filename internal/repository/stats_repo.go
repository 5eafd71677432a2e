package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/luoyx/content_ai_server/internal/model"
	"github.com/luoyx/content_ai_server/internal/model/dto"
)

// StatsRepository 只读统计查询。所有查询对零记录返回零值结果，不报错。
// userID 为 0 表示不按用户过滤（管理员全局视图）。
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) scoped(userID int64) *gorm.DB {
	query := r.db.Model(&model.Analysis{})
	if userID > 0 {
		query = query.Where("user_id = ?", userID)
	}
	return query
}

// TypeBreakdown 按分析类型统计：总数、完成数、平均处理时长
func (r *StatsRepository) TypeBreakdown(userID int64, since *time.Time) ([]dto.TypeStat, error) {
	query := r.scoped(userID)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}

	stats := []dto.TypeStat{}
	err := query.
		Select("analysis_type",
			"COUNT(*) AS count",
			"SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END) AS completed",
			"COALESCE(AVG(processing_time), 0) AS avg_processing_time").
		Group("analysis_type").
		Order("analysis_type").
		Scan(&stats).Error
	return stats, err
}

// Overview 总览：任务总数、完成数、平均质量总分、总处理时长
func (r *StatsRepository) Overview(userID int64) (*dto.OverviewStat, error) {
	var stat dto.OverviewStat
	err := r.scoped(userID).
		Select("COUNT(*) AS total_analyses",
			"COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed_analyses",
			"COALESCE(AVG(overall_score), 0) AS avg_quality_score",
			"COALESCE(SUM(processing_time), 0) AS total_processing_time").
		Scan(&stat).Error
	return &stat, err
}

// DailyTrend 时间窗口内按天分组的任务量与平均分，按日期升序
func (r *StatsRepository) DailyTrend(userID int64, since time.Time) ([]dto.DailyStat, error) {
	stats := []dto.DailyStat{}
	day := r.dayExpr()
	err := r.scoped(userID).
		Where("created_at >= ?", since).
		Select(day+" AS date",
			"COUNT(*) AS count",
			"SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END) AS completed",
			"COALESCE(AVG(overall_score), 0) AS avg_score").
		Group(day).
		Order("date ASC").
		Scan(&stats).Error
	return stats, err
}

// 质量评分分布的固定边界 [0,60) [60,70) [70,80) [80,90) [90,100]
const scoreBucketExpr = `CASE
WHEN overall_score < 60 THEN '0-59'
WHEN overall_score < 70 THEN '60-69'
WHEN overall_score < 80 THEN '70-79'
WHEN overall_score < 90 THEN '80-89'
ELSE '90-100' END`

// ScoreHistogram 质量评分分布；只统计有评分的记录，桶计数之和等于有分记录数
func (r *StatsRepository) ScoreHistogram(userID int64) ([]dto.ScoreBucket, error) {
	buckets := []dto.ScoreBucket{}
	err := r.scoped(userID).
		Where("overall_score IS NOT NULL").
		Select(scoreBucketExpr+" AS bucket",
			"COUNT(*) AS count",
			"COALESCE(AVG(overall_score), 0) AS avg_score").
		Group(scoreBucketExpr).
		Order("bucket").
		Scan(&buckets).Error
	return buckets, err
}

// AnalysisTotals 全局任务规模统计（管理员）
func (r *StatsRepository) AnalysisTotals() (*dto.AnalysisTotals, error) {
	var stat dto.AnalysisTotals
	err := r.db.Model(&model.Analysis{}).
		Select("COUNT(*) AS total_analyses",
			"COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed_analyses",
			"COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0) AS failed_analyses",
			"COALESCE(AVG(processing_time), 0) AS avg_processing_time").
		Scan(&stat).Error
	return &stat, err
}

// dayExpr 返回按天截断的表达式，MySQL 与 SQLite 语法不同
func (r *StatsRepository) dayExpr() string {
	if r.db.Dialector.Name() == "mysql" {
		return "DATE_FORMAT(created_at, '%Y-%m-%d')"
	}
	return "strftime('%Y-%m-%d', created_at)"
}
