package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/luoyx/content_ai_server/internal/model"
)

// SeedContents 内容库为空时写入示例数据，便于没有采集侧的环境演示热点接口。
// 已有数据时不做任何事。
func SeedContents(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Content{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(sampleContents()).Error
}

func sampleContents() []*model.Content {
	now := time.Now()
	score := func(v int) *int { return &v }
	date := func(s string) *time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return &t
	}

	return []*model.Content{
		{
			Title:       "小红书爆款文案写作技巧分享",
			Body:        "今天分享几个小红书爆款文案的写作技巧...",
			Platform:    "xiaohongshu",
			ContentType: model.ContentTypeArticle,
			Author:      "内容创作达人",
			PublishDate: date("2024-01-15"),
			Metrics: model.ContentMetrics{
				Views:      25000,
				Likes:      1200,
				Comments:   89,
				Shares:     156,
				Engagement: 5.8,
			},
			Tags:        model.TagList{"文案写作", "小红书", "内容营销"},
			Category:    "教程",
			IsHot:       true,
			HotScore:    score(92),
			ExtractedAt: now,
		},
		{
			Title:       "抖音短视频制作全攻略",
			Body:        "从脚本策划到后期剪辑，教你制作爆款短视频...",
			Platform:    "douyin",
			ContentType: model.ContentTypeVideo,
			Author:      "短视频专家",
			PublishDate: date("2024-01-20"),
			Metrics: model.ContentMetrics{
				Views:      180000,
				Likes:      8900,
				Comments:   567,
				Shares:     1200,
				Engagement: 6.2,
			},
			Tags:        model.TagList{"短视频", "抖音", "视频制作"},
			Category:    "教程",
			IsHot:       true,
			HotScore:    score(95),
			ExtractedAt: now,
		},
	}
}
