package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// 分析类型
const (
	TypeStyleExtraction   = "style_extraction"
	TypeQualityScoring    = "quality_scoring"
	TypeContentGeneration = "content_generation"
)

// 任务状态机：pending → processing → completed / failed，不允许回退
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// AnalysisTypes 全部合法的分析类型
var AnalysisTypes = []string{TypeStyleExtraction, TypeQualityScoring, TypeContentGeneration}

// IsValidAnalysisType 检查分析类型是否合法
func IsValidAnalysisType(t string) bool {
	for _, v := range AnalysisTypes {
		if v == t {
			return true
		}
	}
	return false
}

// IsTerminalStatus 是否为终态
func IsTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}

// StyleAnalysis 风格提取结果，整体以 JSON 存储，写入后不再变更
type StyleAnalysis struct {
	Tone       string   `json:"tone"`       // 语调：正式、轻松、幽默等
	Structure  string   `json:"structure"`  // 结构：总分总、并列、递进等
	Vocabulary string   `json:"vocabulary"` // 词汇特点
	Length     int      `json:"length"`     // 内容长度（字符数）
	Keywords   []string `json:"keywords"`
}

func (s StyleAnalysis) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *StyleAnalysis) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// PredictedMetrics 传播数据预测
type PredictedMetrics struct {
	EstimatedViews   int     `json:"estimated_views"`
	EstimatedLikes   int     `json:"estimated_likes"`
	EstimatedShares  int     `json:"estimated_shares"`
	ViralProbability float64 `json:"viral_probability"` // 0-1
}

// QualityScore 质量评分结果，各分项均在 0-100
type QualityScore struct {
	Overall          int              `json:"overall"`
	Readability      int              `json:"readability"`
	Engagement       int              `json:"engagement"`
	Originality      int              `json:"originality"`
	PlatformFit      int              `json:"platform_fit"`
	Suggestions      []string         `json:"suggestions"`
	PredictedMetrics PredictedMetrics `json:"predicted_metrics"`
}

func (q QualityScore) Value() (driver.Value, error) {
	return json.Marshal(q)
}

func (q *QualityScore) Scan(value interface{}) error {
	return scanJSON(value, q)
}

// GenerationParams 内容生成参数，仅 content_generation 类型使用，可省略
type GenerationParams struct {
	TargetPlatform string `json:"target_platform,omitempty"`
	TargetAudience string `json:"target_audience,omitempty"`
	ContentLength  int    `json:"content_length,omitempty"`
	StyleReference string `json:"style_reference,omitempty"`
}

func (p GenerationParams) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *GenerationParams) Scan(value interface{}) error {
	return scanJSON(value, p)
}

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported json column type")
	}
}

// Analysis 一次内容分析任务的完整记录
type Analysis struct {
	ID               int64             `gorm:"primaryKey" json:"id"`
	UserID           int64             `gorm:"not null;index:idx_user_created" json:"user_id"`
	OriginalContent  string            `gorm:"type:text;not null" json:"original_content,omitempty"`
	AnalysisType     string            `gorm:"size:30;not null;index" json:"analysis_type"`
	GenerationParams *GenerationParams `gorm:"type:json" json:"generation_params,omitempty"`
	StyleAnalysis    *StyleAnalysis    `gorm:"type:json" json:"style_analysis,omitempty"`
	QualityScore     *QualityScore     `gorm:"type:json" json:"quality_score,omitempty"`
	// OverallScore 冗余存一份 QualityScore.Overall，供统计 SQL 使用，与 JSON 同事务写入
	OverallScore     *int       `gorm:"index" json:"-"`
	GeneratedContent string     `gorm:"type:text" json:"generated_content,omitempty"`
	Status           string     `gorm:"size:20;default:pending;index" json:"status"`
	ProcessingTime   *int64     `json:"processing_time,omitempty"` // 毫秒，终态时写入一次
	ErrorMessage     string     `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time  `gorm:"index:idx_user_created" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Analysis) TableName() string {
	return "analyses"
}
