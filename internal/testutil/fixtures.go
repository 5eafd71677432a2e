package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/luoyx/content_ai_server/internal/model"
)

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	email := fmt.Sprintf("test_%d@example.com", time.Now().UnixNano())
	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Username:      fmt.Sprintf("testuser_%d", time.Now().UnixNano()%10000),
		Email:         &email,
		PasswordHash:  &passwordHash,
		Role:          model.RoleUser,
		IsActive:      true,
		EmailVerified: true,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = &email
	}
}

// WithRole 设置用户角色
func WithRole(role string) func(*model.User) {
	return func(u *model.User) {
		u.Role = role
	}
}

// WithActive 设置启用状态
func WithActive(active bool) func(*model.User) {
	return func(u *model.User) {
		u.IsActive = active
	}
}

// TestAnalysis 创建测试分析
func TestAnalysis(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Analysis)) *model.Analysis {
	t.Helper()

	analysis := &model.Analysis{
		UserID:          userID,
		OriginalContent: "这是一段用于测试的内容，长度满足提交校验要求。",
		AnalysisType:    model.TypeQualityScoring,
		Status:          model.StatusCompleted,
	}

	for _, opt := range opts {
		opt(analysis)
	}

	if err := db.Create(analysis).Error; err != nil {
		t.Fatalf("Failed to create test analysis: %v", err)
	}

	return analysis
}

// WithAnalysisType 设置分析类型
func WithAnalysisType(analysisType string) func(*model.Analysis) {
	return func(a *model.Analysis) {
		a.AnalysisType = analysisType
	}
}

// WithStatus 设置状态
func WithStatus(status string) func(*model.Analysis) {
	return func(a *model.Analysis) {
		a.Status = status
	}
}

// WithContent 设置原始内容
func WithContent(content string) func(*model.Analysis) {
	return func(a *model.Analysis) {
		a.OriginalContent = content
	}
}

// WithOverallScore 设置质量总分
func WithOverallScore(score int) func(*model.Analysis) {
	return func(a *model.Analysis) {
		a.OverallScore = &score
		a.QualityScore = &model.QualityScore{
			Overall:     score,
			Readability: score,
			Engagement:  score,
			Originality: score,
			PlatformFit: score,
		}
	}
}

// WithProcessingTime 设置处理时长（毫秒）
func WithProcessingTime(ms int64) func(*model.Analysis) {
	return func(a *model.Analysis) {
		a.ProcessingTime = &ms
	}
}

// WithCreatedAt 设置创建时间
func WithCreatedAt(at time.Time) func(*model.Analysis) {
	return func(a *model.Analysis) {
		a.CreatedAt = at
	}
}

// WithUpdatedAt 设置更新时间
func WithUpdatedAt(at time.Time) func(*model.Analysis) {
	return func(a *model.Analysis) {
		a.UpdatedAt = at
	}
}

// TestContent 创建内容库测试条目，默认是一条热点内容
func TestContent(t *testing.T, db *gorm.DB, opts ...func(*model.Content)) *model.Content {
	t.Helper()

	score := 80
	content := &model.Content{
		Title:       fmt.Sprintf("测试内容_%d", time.Now().UnixNano()%100000),
		Body:        "这是一条内容库测试数据的正文。",
		Platform:    "xiaohongshu",
		ContentType: model.ContentTypeArticle,
		IsHot:       true,
		HotScore:    &score,
		ExtractedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(content)
	}

	if err := db.Create(content).Error; err != nil {
		t.Fatalf("Failed to create test content: %v", err)
	}

	return content
}

// WithTitle 设置内容标题
func WithTitle(title string) func(*model.Content) {
	return func(c *model.Content) {
		c.Title = title
	}
}

// WithPlatform 设置内容平台
func WithPlatform(platform string) func(*model.Content) {
	return func(c *model.Content) {
		c.Platform = platform
	}
}

// WithContentType 设置内容类型
func WithContentType(contentType string) func(*model.Content) {
	return func(c *model.Content) {
		c.ContentType = contentType
	}
}

// WithCategory 设置内容分类
func WithCategory(category string) func(*model.Content) {
	return func(c *model.Content) {
		c.Category = category
	}
}

// WithTags 设置内容标签
func WithTags(tags ...string) func(*model.Content) {
	return func(c *model.Content) {
		c.Tags = tags
	}
}

// WithHot 设置是否热点及热度分
func WithHot(hot bool, score int) func(*model.Content) {
	return func(c *model.Content) {
		c.IsHot = hot
		if hot {
			c.HotScore = &score
		} else {
			c.HotScore = nil
		}
	}
}

// WithMetrics 设置互动数据
func WithMetrics(m model.ContentMetrics) func(*model.Content) {
	return func(c *model.Content) {
		c.Metrics = m
	}
}

// WithExtractedAt 设置采集时间
func WithExtractedAt(at time.Time) func(*model.Content) {
	return func(c *model.Content) {
		c.ExtractedAt = at
	}
}
