package analyzer

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/luoyx/content_ai_server/config"
	"github.com/luoyx/content_ai_server/internal/model"
)

// 分类结果的候选标签集，与线上产品文案保持一致
var (
	tones        = []string{"正式", "轻松", "幽默", "专业", "亲切", "激励"}
	structures   = []string{"总分总", "并列式", "递进式", "对比式", "问答式"}
	vocabularies = []string{"通俗易懂", "专业术语", "网络用语", "文艺范", "商务正式"}
)

// StubBackend 模拟分析后端：固定标签集 + 随机评分，按配置延迟模拟模型耗时。
// 真实 AI 接入前的占位实现。
type StubBackend struct {
	cfg *config.AnalyzerConfig

	mu  sync.Mutex
	rng *rand.Rand
}

func NewStubBackend(cfg *config.AnalyzerConfig) *StubBackend {
	return &StubBackend{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ExtractStyle 风格提取
func (b *StubBackend) ExtractStyle(ctx context.Context, content string) (*model.StyleAnalysis, error) {
	if err := b.sleep(ctx, b.cfg.StyleDelayMS); err != nil {
		return nil, err
	}

	return &model.StyleAnalysis{
		Tone:       b.pick(tones),
		Structure:  b.pick(structures),
		Vocabulary: b.pick(vocabularies),
		Length:     len([]rune(content)),
		Keywords:   extractKeywords(content),
	}, nil
}

// ScoreContent 质量评分
func (b *StubBackend) ScoreContent(ctx context.Context, content string) (*model.QualityScore, error) {
	if err := b.sleep(ctx, b.cfg.ScoreDelayMS); err != nil {
		return nil, err
	}

	readability := b.intn(30) + 70 // 70-99
	engagement := b.intn(40) + 60  // 60-99
	originality := b.intn(20) + 80 // 80-99
	platformFit := b.intn(25) + 75 // 75-99
	overall := (readability + engagement + originality + platformFit) / 4

	return &model.QualityScore{
		Overall:     overall,
		Readability: readability,
		Engagement:  engagement,
		Originality: originality,
		PlatformFit: platformFit,
		Suggestions: BuildSuggestions(overall),
		PredictedMetrics: model.PredictedMetrics{
			EstimatedViews:   b.intn(50000) + 5000,
			EstimatedLikes:   b.intn(2000) + 200,
			EstimatedShares:  b.intn(500) + 50,
			ViralProbability: b.float64()*0.3 + 0.1, // 0.1-0.4
		},
	}, nil
}

// GenerateContent 内容生成
func (b *StubBackend) GenerateContent(ctx context.Context, original string, params *model.GenerationParams) (string, error) {
	if err := b.sleep(ctx, b.cfg.GenerateDelayMS); err != nil {
		return "", err
	}

	runes := []rune(original)
	if len(runes) > 100 {
		runes = runes[:100]
	}

	var sb strings.Builder
	sb.WriteString("基于原内容风格生成的新内容：\n\n")
	sb.WriteString(string(runes))
	sb.WriteString("...\n\n")
	if params != nil && params.TargetPlatform != "" {
		sb.WriteString(fmt.Sprintf("[面向 %s 平台的仿写内容会在这里显示]", params.TargetPlatform))
	} else {
		sb.WriteString("[AI生成的仿写内容会在这里显示]")
	}

	return sb.String(), nil
}

// BuildSuggestions 按分数阶梯累积建议；分数越低建议越多，永不为空
func BuildSuggestions(overall int) []string {
	var suggestions []string

	if overall < 70 {
		suggestions = append(suggestions,
			"建议增加更多吸引人的标题和开头",
			"内容结构需要优化，增强逻辑性")
	}
	if overall < 80 {
		suggestions = append(suggestions,
			"可以添加更多互动元素，如问题或号召行动",
			"考虑使用更生动的描述和例子")
	}
	if overall < 90 {
		suggestions = append(suggestions, "内容质量很好，可以考虑优化发布时间")
	}

	if len(suggestions) == 0 {
		suggestions = []string{"内容质量优秀，建议保持现有风格"}
	}
	return suggestions
}

// extractKeywords 取前5个长度大于2的词，模拟关键词提取
func extractKeywords(content string) []string {
	words := strings.Fields(content)
	keywords := make([]string, 0, 5)
	for _, w := range words {
		if len([]rune(w)) > 2 {
			keywords = append(keywords, w)
		}
		if len(keywords) == 5 {
			break
		}
	}
	return keywords
}

func (b *StubBackend) sleep(ctx context.Context, ms int) error {
	if ms <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(ms) * time.Millisecond):
		return nil
	}
}

func (b *StubBackend) pick(options []string) string {
	return options[b.intn(len(options))]
}

func (b *StubBackend) intn(n int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rng.Intn(n)
}

func (b *StubBackend) float64() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rng.Float64()
}
