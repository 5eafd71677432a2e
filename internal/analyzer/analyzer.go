package analyzer

import (
	"context"

	"github.com/luoyx/content_ai_server/internal/model"
)

// Backend 内容分析能力的抽象。三个操作都可能耗时（外部模型调用），
// 也都可能失败；Processor 对失败的处理与具体操作无关。
// 替换为真实模型实现时，Processor 和提交链路均不需要改动。
type Backend interface {
	// ExtractStyle 提取内容风格。Length 必须等于 content 的字符数。
	ExtractStyle(ctx context.Context, content string) (*model.StyleAnalysis, error)

	// ScoreContent 内容质量评分。所有分项与总分在 0-100，
	// ViralProbability 在 0-1，Suggestions 非空且分数越低建议越多。
	ScoreContent(ctx context.Context, content string) (*model.QualityScore, error)

	// GenerateContent 基于原文与参数生成仿写内容。
	GenerateContent(ctx context.Context, original string, params *model.GenerationParams) (string, error)
}
