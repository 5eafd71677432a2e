package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luoyx/content_ai_server/internal/model"
	"github.com/luoyx/content_ai_server/internal/testutil"
)

func TestStatsRepository_TypeBreakdown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewStatsRepository(db)
	user := testutil.TestUser(t, db)

	testutil.TestAnalysis(t, db, user.ID,
		testutil.WithAnalysisType(model.TypeQualityScoring),
		testutil.WithProcessingTime(1000))
	testutil.TestAnalysis(t, db, user.ID,
		testutil.WithAnalysisType(model.TypeQualityScoring),
		testutil.WithProcessingTime(3000))
	testutil.TestAnalysis(t, db, user.ID,
		testutil.WithAnalysisType(model.TypeStyleExtraction),
		testutil.WithStatus(model.StatusFailed))

	stats, err := repo.TypeBreakdown(user.ID, nil)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// 按类型字典序返回
	assert.Equal(t, model.TypeQualityScoring, stats[0].AnalysisType)
	assert.Equal(t, int64(2), stats[0].Count)
	assert.Equal(t, int64(2), stats[0].Completed)
	assert.InDelta(t, 2000, stats[0].AvgProcessingTime, 0.01)

	assert.Equal(t, model.TypeStyleExtraction, stats[1].AnalysisType)
	assert.Equal(t, int64(1), stats[1].Count)
	assert.Equal(t, int64(0), stats[1].Completed)
}

func TestStatsRepository_TypeBreakdown_Since(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewStatsRepository(db)
	user := testutil.TestUser(t, db)

	testutil.TestAnalysis(t, db, user.ID,
		testutil.WithCreatedAt(time.Now().AddDate(0, 0, -40)))
	testutil.TestAnalysis(t, db, user.ID)

	since := time.Now().AddDate(0, 0, -30)
	stats, err := repo.TypeBreakdown(user.ID, &since)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(1), stats[0].Count)
}

func TestStatsRepository_TypeBreakdown_IsolatesUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewStatsRepository(db)
	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)

	testutil.TestAnalysis(t, db, user.ID)
	testutil.TestAnalysis(t, db, other.ID)

	stats, err := repo.TypeBreakdown(user.ID, nil)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(1), stats[0].Count)
}

func TestStatsRepository_Overview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewStatsRepository(db)
	user := testutil.TestUser(t, db)

	testutil.TestAnalysis(t, db, user.ID,
		testutil.WithOverallScore(80),
		testutil.WithProcessingTime(1000))
	testutil.TestAnalysis(t, db, user.ID,
		testutil.WithOverallScore(90),
		testutil.WithProcessingTime(2000))
	testutil.TestAnalysis(t, db, user.ID, testutil.WithStatus(model.StatusFailed))

	stat, err := repo.Overview(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stat.TotalAnalyses)
	assert.Equal(t, int64(2), stat.CompletedAnalyses)
	assert.InDelta(t, 85, stat.AvgQualityScore, 0.01)
	assert.Equal(t, int64(3000), stat.TotalProcessingTime)
}

func TestStatsRepository_Overview_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewStatsRepository(db)
	user := testutil.TestUser(t, db)

	// 无记录时返回零值而不是错误
	stat, err := repo.Overview(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stat.TotalAnalyses)
	assert.Equal(t, int64(0), stat.CompletedAnalyses)
	assert.Zero(t, stat.AvgQualityScore)
	assert.Equal(t, int64(0), stat.TotalProcessingTime)
}

func TestStatsRepository_DailyTrend(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewStatsRepository(db)
	user := testutil.TestUser(t, db)

	yesterday := time.Now().AddDate(0, 0, -1)
	testutil.TestAnalysis(t, db, user.ID,
		testutil.WithCreatedAt(yesterday),
		testutil.WithOverallScore(70))
	testutil.TestAnalysis(t, db, user.ID,
		testutil.WithCreatedAt(yesterday),
		testutil.WithOverallScore(90))
	testutil.TestAnalysis(t, db, user.ID, testutil.WithOverallScore(85))

	stats, err := repo.DailyTrend(user.ID, time.Now().AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// 日期升序
	assert.Equal(t, yesterday.Format("2006-01-02"), stats[0].Date)
	assert.Equal(t, int64(2), stats[0].Count)
	assert.InDelta(t, 80, stats[0].AvgScore, 0.01)

	assert.Equal(t, time.Now().Format("2006-01-02"), stats[1].Date)
	assert.Equal(t, int64(1), stats[1].Count)
}

func TestStatsRepository_ScoreHistogram(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewStatsRepository(db)
	user := testutil.TestUser(t, db)

	testutil.TestAnalysis(t, db, user.ID, testutil.WithOverallScore(55))
	testutil.TestAnalysis(t, db, user.ID, testutil.WithOverallScore(72))
	testutil.TestAnalysis(t, db, user.ID, testutil.WithOverallScore(78))
	testutil.TestAnalysis(t, db, user.ID, testutil.WithOverallScore(95))
	// 未评分的记录不参与分布
	testutil.TestAnalysis(t, db, user.ID, testutil.WithStatus(model.StatusPending))

	buckets, err := repo.ScoreHistogram(user.ID)
	require.NoError(t, err)
	require.Len(t, buckets, 3)

	byBucket := make(map[string]int64)
	var total int64
	for _, b := range buckets {
		byBucket[b.Bucket] = b.Count
		total += b.Count
	}

	assert.Equal(t, int64(1), byBucket["0-59"])
	assert.Equal(t, int64(2), byBucket["70-79"])
	assert.Equal(t, int64(1), byBucket["90-100"])
	assert.Equal(t, int64(4), total)
}

func TestStatsRepository_AnalysisTotals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewStatsRepository(db)
	userA := testutil.TestUser(t, db)
	userB := testutil.TestUser(t, db)

	testutil.TestAnalysis(t, db, userA.ID, testutil.WithProcessingTime(1000))
	testutil.TestAnalysis(t, db, userB.ID, testutil.WithProcessingTime(2000))
	testutil.TestAnalysis(t, db, userB.ID, testutil.WithStatus(model.StatusFailed))

	// 全局统计不区分用户
	stat, err := repo.AnalysisTotals()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stat.TotalAnalyses)
	assert.Equal(t, int64(2), stat.CompletedAnalyses)
	assert.Equal(t, int64(1), stat.FailedAnalyses)
	assert.InDelta(t, 1500, stat.AvgProcessingTime, 0.01)
}
