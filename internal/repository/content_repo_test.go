package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luoyx/content_ai_server/internal/model"
	"github.com/luoyx/content_ai_server/internal/model/dto"
	"github.com/luoyx/content_ai_server/internal/testutil"
)

func TestContentRepository_ListHot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewContentRepository(db)

	testutil.TestContent(t, db, testutil.WithTitle("低热度"), testutil.WithHot(true, 60))
	testutil.TestContent(t, db, testutil.WithTitle("高热度"), testutil.WithHot(true, 95))
	// 非热点内容不出现在列表里
	testutil.TestContent(t, db, testutil.WithTitle("普通内容"), testutil.WithHot(false, 0))

	items, total, err := repo.ListHot(&dto.HotContentQuery{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)

	// 默认按热度分倒序
	assert.Equal(t, "高热度", items[0].Title)
	assert.Equal(t, "低热度", items[1].Title)
}

func TestContentRepository_ListHot_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewContentRepository(db)

	testutil.TestContent(t, db,
		testutil.WithPlatform("douyin"),
		testutil.WithContentType(model.ContentTypeVideo),
		testutil.WithCategory("教程"))
	testutil.TestContent(t, db,
		testutil.WithPlatform("xiaohongshu"),
		testutil.WithContentType(model.ContentTypeArticle),
		testutil.WithCategory("教程"))
	testutil.TestContent(t, db,
		testutil.WithPlatform("xiaohongshu"),
		testutil.WithContentType(model.ContentTypeArticle),
		testutil.WithCategory("测评"))

	items, total, err := repo.ListHot(&dto.HotContentQuery{
		Platform: "xiaohongshu",
		Page:     1, PageSize: 20,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	items, total, err = repo.ListHot(&dto.HotContentQuery{
		Platform: "xiaohongshu",
		Category: "教程",
		Page:     1, PageSize: 20,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "教程", items[0].Category)

	items, total, err = repo.ListHot(&dto.HotContentQuery{
		ContentType: model.ContentTypeVideo,
		Page:        1, PageSize: 20,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "douyin", items[0].Platform)
}

func TestContentRepository_ListHot_SortByEngagement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewContentRepository(db)

	testutil.TestContent(t, db, testutil.WithTitle("互动低"),
		testutil.WithHot(true, 95),
		testutil.WithMetrics(model.ContentMetrics{Engagement: 2.1}))
	testutil.TestContent(t, db, testutil.WithTitle("互动高"),
		testutil.WithHot(true, 60),
		testutil.WithMetrics(model.ContentMetrics{Engagement: 8.4}))

	items, _, err := repo.ListHot(&dto.HotContentQuery{
		SortBy: "engagement",
		Page:   1, PageSize: 20,
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "互动高", items[0].Title)
}

func TestContentRepository_ListHot_SortByExtractedAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewContentRepository(db)

	now := time.Now()
	testutil.TestContent(t, db, testutil.WithTitle("旧内容"),
		testutil.WithExtractedAt(now.Add(-48*time.Hour)))
	testutil.TestContent(t, db, testutil.WithTitle("新内容"),
		testutil.WithExtractedAt(now))

	items, _, err := repo.ListHot(&dto.HotContentQuery{
		SortBy: "extracted_at",
		Page:   1, PageSize: 20,
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "新内容", items[0].Title)
}

func TestContentRepository_ListHot_Pagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewContentRepository(db)

	for i := 0; i < 5; i++ {
		testutil.TestContent(t, db, testutil.WithHot(true, 50+i))
	}

	items, total, err := repo.ListHot(&dto.HotContentQuery{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, items, 2)

	items, _, err = repo.ListHot(&dto.HotContentQuery{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestContentRepository_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewContentRepository(db)
	created := testutil.TestContent(t, db,
		testutil.WithTitle("详情内容"),
		testutil.WithTags("文案写作", "小红书"))

	found, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "详情内容", found.Title)
	assert.Equal(t, model.TagList{"文案写作", "小红书"}, found.Tags)

	_, err = repo.GetByID(99999)
	assert.Error(t, err)
}

func TestContentRepository_Search(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewContentRepository(db)

	testutil.TestContent(t, db, testutil.WithTitle("小红书爆款文案写作技巧"))
	testutil.TestContent(t, db, testutil.WithTitle("抖音运营指南"),
		testutil.WithPlatform("douyin"))
	// 仅标签命中
	testutil.TestContent(t, db, testutil.WithTitle("账号起号经验"),
		testutil.WithTags("文案写作", "内容营销"))

	items, total, err := repo.Search(&dto.SearchContentQuery{
		Keyword: "文案写作",
		Page:    1, PageSize: 20,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)

	// 平台过滤
	items, total, err = repo.Search(&dto.SearchContentQuery{
		Keyword:  "文案写作",
		Platform: "douyin",
		Page:     1, PageSize: 20,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, items)
}

func TestContentRepository_Search_OrderByHotScore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewContentRepository(db)

	testutil.TestContent(t, db, testutil.WithTitle("写作入门"), testutil.WithHot(true, 70))
	testutil.TestContent(t, db, testutil.WithTitle("写作进阶"), testutil.WithHot(true, 90))

	items, _, err := repo.Search(&dto.SearchContentQuery{
		Keyword: "写作",
		Page:    1, PageSize: 20,
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "写作进阶", items[0].Title)
}

func TestContentRepository_PlatformBreakdown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewContentRepository(db)

	testutil.TestContent(t, db, testutil.WithPlatform("xiaohongshu"),
		testutil.WithHot(true, 90),
		testutil.WithMetrics(model.ContentMetrics{Views: 1000, Likes: 100}))
	testutil.TestContent(t, db, testutil.WithPlatform("xiaohongshu"),
		testutil.WithHot(false, 0),
		testutil.WithMetrics(model.ContentMetrics{Views: 500, Likes: 50}))
	testutil.TestContent(t, db, testutil.WithPlatform("douyin"),
		testutil.WithHot(true, 80),
		testutil.WithMetrics(model.ContentMetrics{Views: 2000, Likes: 300}))

	stats, err := repo.PlatformBreakdown()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// 按总数倒序，xiaohongshu 在前
	assert.Equal(t, "xiaohongshu", stats[0].Platform)
	assert.EqualValues(t, 2, stats[0].Count)
	assert.EqualValues(t, 1, stats[0].HotCount)
	assert.EqualValues(t, 1500, stats[0].TotalViews)
	assert.EqualValues(t, 150, stats[0].TotalLikes)

	assert.Equal(t, "douyin", stats[1].Platform)
	assert.EqualValues(t, 1, stats[1].Count)
	assert.InDelta(t, 80, stats[1].AvgHotScore, 0.01)
}

func TestContentRepository_Totals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewContentRepository(db)

	testutil.TestContent(t, db, testutil.WithHot(true, 90),
		testutil.WithMetrics(model.ContentMetrics{Views: 1000, Likes: 100}))
	testutil.TestContent(t, db, testutil.WithHot(false, 0),
		testutil.WithMetrics(model.ContentMetrics{Views: 200, Likes: 20}))

	totals, err := repo.Totals()
	require.NoError(t, err)
	assert.EqualValues(t, 2, totals.TotalContents)
	assert.EqualValues(t, 1, totals.TotalHot)
	assert.EqualValues(t, 1200, totals.TotalViews)
	assert.EqualValues(t, 120, totals.TotalLikes)
}

func TestContentRepository_Totals_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewContentRepository(db)

	totals, err := repo.Totals()
	require.NoError(t, err)
	assert.EqualValues(t, 0, totals.TotalContents)
	assert.EqualValues(t, 0, totals.TotalHot)
	assert.Zero(t, totals.AvgHotScore)
}

func TestContentRepository_HotTagRows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewContentRepository(db)

	testutil.TestContent(t, db, testutil.WithHot(true, 90),
		testutil.WithTags("文案写作", "小红书"))
	// 非热点内容的标签不参与
	testutil.TestContent(t, db, testutil.WithHot(false, 0),
		testutil.WithTags("无关标签"))

	rows, err := repo.HotTagRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.TagList{"文案写作", "小红书"}, rows[0].Tags)
	require.NotNil(t, rows[0].HotScore)
	assert.Equal(t, 90, *rows[0].HotScore)
}
