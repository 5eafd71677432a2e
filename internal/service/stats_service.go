package service

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/luoyx/content_ai_server/internal/model/dto"
	"github.com/luoyx/content_ai_server/internal/repository"
)

const recentAnalysesLimit = 5

// 使用统计支持的时间窗口
var statsPeriods = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

// StatsService 聚合统计服务
type StatsService struct {
	statsRepo    *repository.StatsRepository
	analysisRepo *repository.AnalysisRepository
	userRepo     *repository.UserRepository
}

// NewStatsService 创建统计服务
func NewStatsService(
	statsRepo *repository.StatsRepository,
	analysisRepo *repository.AnalysisRepository,
	userRepo *repository.UserRepository,
) *StatsService {
	return &StatsService{
		statsRepo:    statsRepo,
		analysisRepo: analysisRepo,
		userRepo:     userRepo,
	}
}

// Summary 用户的分析统计汇总
func (s *StatsService) Summary(userID int64) (*dto.StatsSummary, error) {
	summary := &dto.StatsSummary{}

	var g errgroup.Group
	g.Go(func() error {
		stats, err := s.statsRepo.TypeBreakdown(userID, nil)
		if err != nil {
			return err
		}
		summary.TypeStats = stats
		return nil
	})
	g.Go(func() error {
		overview, err := s.statsRepo.Overview(userID)
		if err != nil {
			return err
		}
		summary.TotalStats = *overview
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

// Dashboard 用户仪表盘：总览、最近任务、类型分布、评分分布
func (s *StatsService) Dashboard(userID int64) (*dto.Dashboard, error) {
	dashboard := &dto.Dashboard{}

	var g errgroup.Group
	g.Go(func() error {
		overview, err := s.statsRepo.Overview(userID)
		if err != nil {
			return err
		}
		dashboard.Overview = *overview
		return nil
	})
	g.Go(func() error {
		recent, err := s.analysisRepo.ListRecentByUserID(userID, recentAnalysesLimit)
		if err != nil {
			return err
		}
		items := make([]dto.AnalysisListItem, len(recent))
		for i, a := range recent {
			items[i] = *buildListItem(a)
		}
		dashboard.RecentAnalyses = items
		return nil
	})
	g.Go(func() error {
		stats, err := s.statsRepo.TypeBreakdown(userID, nil)
		if err != nil {
			return err
		}
		dashboard.TypeStats = stats
		return nil
	})
	g.Go(func() error {
		buckets, err := s.statsRepo.ScoreHistogram(userID)
		if err != nil {
			return err
		}
		dashboard.ScoreDistribution = buckets
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dashboard, nil
}

// UsageStats 时间窗口内的使用统计，period 支持 7d/30d/90d，默认 30d
func (s *StatsService) UsageStats(userID int64, period string) (*dto.UsageStats, error) {
	days, ok := statsPeriods[period]
	if !ok {
		period = "30d"
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	usage := &dto.UsageStats{Period: period}

	var g errgroup.Group
	g.Go(func() error {
		daily, err := s.statsRepo.DailyTrend(userID, since)
		if err != nil {
			return err
		}
		usage.DailyStats = daily
		return nil
	})
	g.Go(func() error {
		features, err := s.statsRepo.TypeBreakdown(userID, &since)
		if err != nil {
			return err
		}
		usage.FeatureUsage = features
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return usage, nil
}

// SystemStats 系统级统计（管理员）
func (s *StatsService) SystemStats() (*dto.SystemStats, error) {
	stats := &dto.SystemStats{}

	var g errgroup.Group
	g.Go(func() error {
		total, active, admins, err := s.userRepo.CountTotals()
		if err != nil {
			return err
		}
		stats.Users = dto.UserTotals{
			TotalUsers:  total,
			ActiveUsers: active,
			AdminUsers:  admins,
		}
		return nil
	})
	g.Go(func() error {
		totals, err := s.statsRepo.AnalysisTotals()
		if err != nil {
			return err
		}
		stats.Analyses = *totals
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
