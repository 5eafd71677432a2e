package dto

// AdminUserItem 管理员用户列表项，附带该用户的分析任务统计
type AdminUserItem struct {
	User  *UserInfo      `json:"user"`
	Stats AdminUserStats `json:"stats"`
}

// AdminUserStats 单个用户的任务量统计
type AdminUserStats struct {
	TotalAnalyses     int64 `json:"total_analyses"`
	CompletedAnalyses int64 `json:"completed_analyses"`
}

// UpdateUserStatusRequest 管理员启用/停用用户
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
