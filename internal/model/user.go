package model

import (
	"time"
)

// 用户角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                    int64      `gorm:"primaryKey" json:"id"`
	Username              string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email                 *string    `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	PasswordHash          *string    `gorm:"size:255" json:"-"`
	Role                  string     `gorm:"size:20;default:user;index" json:"role"`
	AvatarURL             string     `gorm:"size:500" json:"avatar_url"`
	Company               string     `gorm:"size:100" json:"company,omitempty"`
	Phone                 string     `gorm:"size:20" json:"phone,omitempty"`
	IsActive              bool       `gorm:"default:true;index" json:"is_active"`
	LastLoginAt           *time.Time `json:"last_login_at,omitempty"`
	GithubID              *string    `gorm:"column:github_id;size:50;uniqueIndex" json:"-"`
	EmailVerified         bool       `gorm:"default:false" json:"email_verified"`
	VerificationCode      *string    `gorm:"size:100" json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
