package analyzer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luoyx/content_ai_server/config"
	"github.com/luoyx/content_ai_server/internal/model"
)

func newTestBackend() *StubBackend {
	// 延迟为 0，测试不等待
	return NewStubBackend(&config.AnalyzerConfig{})
}

func TestStubBackend_ExtractStyle(t *testing.T) {
	backend := newTestBackend()

	content := "今天分享 一个超实用的 护肤小技巧 大家一定 要试试 最后这个"
	style, err := backend.ExtractStyle(context.Background(), content)
	require.NoError(t, err)

	assert.Contains(t, tones, style.Tone)
	assert.Contains(t, structures, style.Structure)
	assert.Contains(t, vocabularies, style.Vocabulary)
	assert.Equal(t, len([]rune(content)), style.Length)
}

func TestStubBackend_ExtractStyle_Keywords(t *testing.T) {
	backend := newTestBackend()

	// 关键词只取长度大于2的词，最多5个
	content := "护肤小技巧 很好 超实用方法 不错 冬季保湿攻略 面膜使用心得 敏感肌护理 成分党必看"
	style, err := backend.ExtractStyle(context.Background(), content)
	require.NoError(t, err)

	require.Len(t, style.Keywords, 5)
	assert.Equal(t, "护肤小技巧", style.Keywords[0])
	for _, kw := range style.Keywords {
		assert.Greater(t, len([]rune(kw)), 2)
	}
}

func TestStubBackend_ScoreContent(t *testing.T) {
	backend := newTestBackend()

	for i := 0; i < 20; i++ {
		score, err := backend.ScoreContent(context.Background(), "测试内容")
		require.NoError(t, err)

		assert.GreaterOrEqual(t, score.Readability, 70)
		assert.LessOrEqual(t, score.Readability, 100)
		assert.GreaterOrEqual(t, score.Engagement, 60)
		assert.LessOrEqual(t, score.Engagement, 100)
		assert.GreaterOrEqual(t, score.Originality, 80)
		assert.LessOrEqual(t, score.Originality, 100)
		assert.GreaterOrEqual(t, score.PlatformFit, 75)
		assert.LessOrEqual(t, score.PlatformFit, 100)

		expected := (score.Readability + score.Engagement + score.Originality + score.PlatformFit) / 4
		assert.Equal(t, expected, score.Overall)

		assert.NotEmpty(t, score.Suggestions)
		assert.GreaterOrEqual(t, score.PredictedMetrics.ViralProbability, 0.1)
		assert.LessOrEqual(t, score.PredictedMetrics.ViralProbability, 0.4)
	}
}

func TestBuildSuggestions(t *testing.T) {
	// 分数越低建议越多，阶梯累积
	low := BuildSuggestions(60)
	mid := BuildSuggestions(75)
	high := BuildSuggestions(85)
	top := BuildSuggestions(95)

	assert.Len(t, low, 5)
	assert.Len(t, mid, 3)
	assert.Len(t, high, 1)
	assert.Equal(t, []string{"内容质量优秀，建议保持现有风格"}, top)
}

func TestStubBackend_GenerateContent(t *testing.T) {
	backend := newTestBackend()

	original := "这是一段需要仿写的原始内容。"
	generated, err := backend.GenerateContent(context.Background(), original, &model.GenerationParams{
		TargetPlatform: "xiaohongshu",
	})
	require.NoError(t, err)

	assert.Contains(t, generated, original)
	assert.Contains(t, generated, "xiaohongshu")
}

func TestStubBackend_GenerateContent_TruncatesOriginal(t *testing.T) {
	backend := newTestBackend()

	original := strings.Repeat("长", 150)
	generated, err := backend.GenerateContent(context.Background(), original, nil)
	require.NoError(t, err)

	// 只引用前100个字符
	assert.Contains(t, generated, strings.Repeat("长", 100))
	assert.NotContains(t, generated, strings.Repeat("长", 101))
}

func TestStubBackend_ContextCancellation(t *testing.T) {
	backend := NewStubBackend(&config.AnalyzerConfig{
		StyleDelayMS:    5000,
		ScoreDelayMS:    5000,
		GenerateDelayMS: 5000,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := backend.ExtractStyle(ctx, "内容")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)

	_, err = backend.ScoreContent(ctx, "内容")
	assert.Error(t, err)

	_, err = backend.GenerateContent(ctx, "内容", nil)
	assert.Error(t, err)
}
