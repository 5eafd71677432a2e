package service

import (
	"errors"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/luoyx/content_ai_server/internal/model"
	"github.com/luoyx/content_ai_server/internal/model/dto"
	"github.com/luoyx/content_ai_server/internal/repository"
)

var ErrContentNotFound = errors.New("内容不存在")

const defaultPopularTagLimit = 20

// ContentService 热点内容库服务，全部为只读查询
type ContentService struct {
	contentRepo *repository.ContentRepository
}

func NewContentService(contentRepo *repository.ContentRepository) *ContentService {
	return &ContentService{contentRepo: contentRepo}
}

// ListHot 热点内容列表
func (s *ContentService) ListHot(q *dto.HotContentQuery) ([]*model.Content, int64, error) {
	return s.contentRepo.ListHot(q)
}

// GetByID 内容详情
func (s *ContentService) GetByID(id int64) (*model.Content, error) {
	content, err := s.contentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return content, nil
}

// Search 关键词搜索
func (s *ContentService) Search(q *dto.SearchContentQuery) ([]*model.Content, int64, error) {
	return s.contentRepo.Search(q)
}

// Stats 内容库统计：分平台明细与总览
func (s *ContentService) Stats() (*dto.ContentStats, error) {
	stats := &dto.ContentStats{}

	var g errgroup.Group
	g.Go(func() error {
		platforms, err := s.contentRepo.PlatformBreakdown()
		if err != nil {
			return err
		}
		stats.PlatformStats = platforms
		return nil
	})
	g.Go(func() error {
		totals, err := s.contentRepo.Totals()
		if err != nil {
			return err
		}
		stats.TotalStats = *totals
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// PopularTags 热点内容中出现最多的标签。
// 按出现次数倒序，次数相同按平均热度分倒序；均分保留一位小数。
func (s *ContentService) PopularTags(limit int) ([]dto.PopularTag, error) {
	if limit <= 0 {
		limit = defaultPopularTagLimit
	}

	rows, err := s.contentRepo.HotTagRows()
	if err != nil {
		return nil, err
	}

	type tagAgg struct {
		count    int
		scoreSum int
	}
	aggs := map[string]*tagAgg{}
	for _, row := range rows {
		for _, tag := range row.Tags {
			agg, ok := aggs[tag]
			if !ok {
				agg = &tagAgg{}
				aggs[tag] = agg
			}
			agg.count++
			if row.HotScore != nil {
				agg.scoreSum += *row.HotScore
			}
		}
	}

	tags := make([]dto.PopularTag, 0, len(aggs))
	for tag, agg := range aggs {
		avg := float64(agg.scoreSum) / float64(agg.count)
		tags = append(tags, dto.PopularTag{
			Tag:         tag,
			Count:       agg.count,
			AvgHotScore: math.Round(avg*10) / 10,
		})
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		if tags[i].AvgHotScore != tags[j].AvgHotScore {
			return tags[i].AvgHotScore > tags[j].AvgHotScore
		}
		return tags[i].Tag < tags[j].Tag
	})

	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags, nil
}
