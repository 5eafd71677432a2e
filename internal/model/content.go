package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// 内容类型
const (
	ContentTypeArticle = "article"
	ContentTypeVideo   = "video"
	ContentTypeImage   = "image"
)

// ContentTypes 全部合法的内容类型
var ContentTypes = []string{ContentTypeArticle, ContentTypeVideo, ContentTypeImage}

// IsValidContentType 检查内容类型是否合法
func IsValidContentType(t string) bool {
	for _, v := range ContentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ContentMetrics 互动数据，展开为平铺列以便统计 SQL 直接聚合
type ContentMetrics struct {
	Views      int64   `json:"views"`
	Likes      int64   `json:"likes"`
	Comments   int64   `json:"comments"`
	Shares     int64   `json:"shares"`
	Engagement float64 `json:"engagement"` // 互动率，百分比
}

// TagList 标签列表，以 JSON 数组存储
type TagList []string

// 以 TEXT 存储，搜索接口要对标签列做 LIKE 匹配
func (t TagList) Value() (driver.Value, error) {
	b, err := json.Marshal(t)
	return string(b), err
}

func (t *TagList) Scan(value interface{}) error {
	return scanJSON(value, t)
}

// Content 热点内容库条目。由外部采集侧写入，服务端只读。
type Content struct {
	ID          int64          `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Body        string         `gorm:"column:content;type:text;not null" json:"content"`
	Platform    string         `gorm:"size:20;not null;index:idx_platform_hot" json:"platform"`
	ContentType string         `gorm:"size:20;not null" json:"content_type"`
	OriginalURL string         `gorm:"size:500" json:"original_url,omitempty"`
	Author      string         `gorm:"size:100" json:"author,omitempty"`
	PublishDate *time.Time     `json:"publish_date,omitempty"`
	Metrics     ContentMetrics `gorm:"embedded;embeddedPrefix:metric_" json:"metrics"`
	Tags        TagList        `gorm:"type:json" json:"tags"`
	Category    string         `gorm:"size:50;index" json:"category,omitempty"`
	IsHot       bool           `gorm:"index:idx_platform_hot" json:"is_hot"`
	HotScore    *int           `gorm:"index" json:"hot_score,omitempty"` // 0-100，采集侧计算
	ExtractedAt time.Time      `gorm:"index" json:"extracted_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Content) TableName() string {
	return "contents"
}
