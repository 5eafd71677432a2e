package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/luoyx/content_ai_server/config"
	"github.com/luoyx/content_ai_server/internal/model"
	"github.com/luoyx/content_ai_server/internal/model/dto"
	"github.com/luoyx/content_ai_server/internal/pkg/queue"
	"github.com/luoyx/content_ai_server/internal/repository"
	"github.com/luoyx/content_ai_server/internal/testutil"
)

const validContent = "这是一段用于测试的内容，长度满足提交校验要求。"

func setupAnalysisService(t *testing.T) (*AnalysisService, *gorm.DB, *queue.Queue, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	analysisRepo := repository.NewAnalysisRepository(db)
	jobQueue := queue.NewQueue(client, "test_analysis_jobs")
	service := NewAnalysisService(analysisRepo, jobQueue, &config.Config{})

	cleanup := func() {
		client.Close()
		testutil.CleanupTestDB(t, db)
	}

	return service, db, jobQueue, cleanup
}

func TestAnalysisService_Submit(t *testing.T) {
	service, db, jobQueue, cleanup := setupAnalysisService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	resp, err := service.Submit(context.Background(), user.ID, &dto.CreateAnalysisRequest{
		Content:      validContent,
		AnalysisType: model.TypeQualityScoring,
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.AnalysisID)
	assert.Equal(t, model.StatusPending, resp.Status)

	// 任务已入队
	length, err := jobQueue.Length(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), length)

	msg, err := jobQueue.Pop(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, resp.AnalysisID, msg.AnalysisID)
	assert.Equal(t, user.ID, msg.UserID)
	assert.Equal(t, model.TypeQualityScoring, msg.AnalysisType)
}

func TestAnalysisService_Submit_WithGenerationParams(t *testing.T) {
	service, db, _, cleanup := setupAnalysisService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	resp, err := service.Submit(context.Background(), user.ID, &dto.CreateAnalysisRequest{
		Content:      validContent,
		AnalysisType: model.TypeContentGeneration,
		GenerationParams: &dto.GenerationParamsRequest{
			TargetPlatform: "douyin",
			TargetAudience: "大学生",
			ContentLength:  800,
		},
	})
	require.NoError(t, err)

	analysis, err := service.GetByID(user.ID, resp.AnalysisID)
	require.NoError(t, err)
	require.NotNil(t, analysis.GenerationParams)
	assert.Equal(t, "douyin", analysis.GenerationParams.TargetPlatform)
	assert.Equal(t, 800, analysis.GenerationParams.ContentLength)
}

func TestAnalysisService_Submit_Validation(t *testing.T) {
	service, db, _, cleanup := setupAnalysisService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	tests := []struct {
		name    string
		req     *dto.CreateAnalysisRequest
		wantErr error
	}{
		{
			name: "内容太短",
			req: &dto.CreateAnalysisRequest{
				Content:      "只有九个字符而已",
				AnalysisType: model.TypeQualityScoring,
			},
			wantErr: ErrContentTooShort,
		},
		{
			name: "内容太长",
			req: &dto.CreateAnalysisRequest{
				Content:      strings.Repeat("长", 10001),
				AnalysisType: model.TypeQualityScoring,
			},
			wantErr: ErrContentTooLong,
		},
		{
			name: "未知分析类型",
			req: &dto.CreateAnalysisRequest{
				Content:      validContent,
				AnalysisType: "sentiment",
			},
			wantErr: ErrUnknownAnalysisType,
		},
		{
			name: "不支持的目标平台",
			req: &dto.CreateAnalysisRequest{
				Content:      validContent,
				AnalysisType: model.TypeContentGeneration,
				GenerationParams: &dto.GenerationParamsRequest{
					TargetPlatform: "myspace",
				},
			},
			wantErr: ErrInvalidPlatform,
		},
		{
			name: "目标受众太长",
			req: &dto.CreateAnalysisRequest{
				Content:      validContent,
				AnalysisType: model.TypeContentGeneration,
				GenerationParams: &dto.GenerationParamsRequest{
					TargetAudience: strings.Repeat("众", 101),
				},
			},
			wantErr: ErrAudienceTooLong,
		},
		{
			name: "生成长度太短",
			req: &dto.CreateAnalysisRequest{
				Content:      validContent,
				AnalysisType: model.TypeContentGeneration,
				GenerationParams: &dto.GenerationParamsRequest{
					ContentLength: 49,
				},
			},
			wantErr: ErrBadContentLength,
		},
		{
			name: "生成长度太长",
			req: &dto.CreateAnalysisRequest{
				Content:      validContent,
				AnalysisType: model.TypeContentGeneration,
				GenerationParams: &dto.GenerationParamsRequest{
					ContentLength: 5001,
				},
			},
			wantErr: ErrBadContentLength,
		},
		{
			name: "风格参考太长",
			req: &dto.CreateAnalysisRequest{
				Content:      validContent,
				AnalysisType: model.TypeContentGeneration,
				GenerationParams: &dto.GenerationParamsRequest{
					StyleReference: strings.Repeat("参", 1001),
				},
			},
			wantErr: ErrStyleRefTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Submit(context.Background(), user.ID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestAnalysisService_Submit_OptionalParams(t *testing.T) {
	service, db, _, cleanup := setupAnalysisService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	// 生成长度为 0 表示使用默认值，不触发边界校验
	_, err := service.Submit(context.Background(), user.ID, &dto.CreateAnalysisRequest{
		Content:      validContent,
		AnalysisType: model.TypeContentGeneration,
		GenerationParams: &dto.GenerationParamsRequest{
			ContentLength: 0,
		},
	})
	assert.NoError(t, err)

	// 生成参数整体可省略
	_, err = service.Submit(context.Background(), user.ID, &dto.CreateAnalysisRequest{
		Content:      validContent,
		AnalysisType: model.TypeContentGeneration,
	})
	assert.NoError(t, err)
}

func TestAnalysisService_Submit_EnqueueFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	analysisRepo := repository.NewAnalysisRepository(db)
	jobQueue := queue.NewQueue(client, "test_analysis_jobs")
	service := NewAnalysisService(analysisRepo, jobQueue, &config.Config{})

	user := testutil.TestUser(t, db)

	// 模拟 Redis 故障
	mr.Close()

	_, err := service.Submit(context.Background(), user.ID, &dto.CreateAnalysisRequest{
		Content:      validContent,
		AnalysisType: model.TypeQualityScoring,
	})
	assert.ErrorIs(t, err, ErrSubmitFailed)

	// 入队失败时回收已创建的记录
	var count int64
	require.NoError(t, db.Model(&model.Analysis{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAnalysisService_GetByID(t *testing.T) {
	service, db, _, cleanup := setupAnalysisService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	created := testutil.TestAnalysis(t, db, user.ID)

	analysis, err := service.GetByID(user.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, analysis.ID)

	// 他人的记录与不存在返回同一个错误
	_, err = service.GetByID(other.ID, created.ID)
	assert.ErrorIs(t, err, ErrAnalysisNotFound)

	_, err = service.GetByID(user.ID, 99999)
	assert.ErrorIs(t, err, ErrAnalysisNotFound)
}

func TestAnalysisService_List(t *testing.T) {
	service, db, _, cleanup := setupAnalysisService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	testutil.TestAnalysis(t, db, user.ID, testutil.WithAnalysisType(model.TypeStyleExtraction))
	testutil.TestAnalysis(t, db, user.ID,
		testutil.WithAnalysisType(model.TypeQualityScoring),
		testutil.WithOverallScore(88))
	testutil.TestAnalysis(t, db, user.ID,
		testutil.WithAnalysisType(model.TypeQualityScoring),
		testutil.WithStatus(model.StatusPending))

	items, total, err := service.List(user.ID, &dto.ListAnalysesQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 3)

	items, total, err = service.List(user.ID, &dto.ListAnalysesQuery{
		AnalysisType: model.TypeQualityScoring,
		Status:       model.StatusCompleted,
		Page:         1,
		PageSize:     10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].OverallScore)
	assert.Equal(t, 88, *items[0].OverallScore)
}

func TestAnalysisService_Delete(t *testing.T) {
	service, db, _, cleanup := setupAnalysisService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	created := testutil.TestAnalysis(t, db, user.ID)

	// 他人不能删除
	err := service.Delete(other.ID, created.ID)
	assert.ErrorIs(t, err, ErrAnalysisNotFound)

	err = service.Delete(user.ID, created.ID)
	require.NoError(t, err)

	_, err = service.GetByID(user.ID, created.ID)
	assert.ErrorIs(t, err, ErrAnalysisNotFound)
}
