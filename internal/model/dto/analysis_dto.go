package dto

// GenerationParamsRequest 内容生成参数（可选整体省略，逐项做边界校验）
type GenerationParamsRequest struct {
	TargetPlatform string `json:"target_platform,omitempty"`
	TargetAudience string `json:"target_audience,omitempty"`
	ContentLength  int    `json:"content_length,omitempty"`
	StyleReference string `json:"style_reference,omitempty"`
}

// CreateAnalysisRequest 提交分析请求
type CreateAnalysisRequest struct {
	Content          string                   `json:"content" binding:"required"`
	AnalysisType     string                   `json:"analysis_type" binding:"required"`
	GenerationParams *GenerationParamsRequest `json:"generation_params,omitempty"`
}

// CreateAnalysisResponse 提交分析响应：记录已创建并排队，不等待执行
type CreateAnalysisResponse struct {
	AnalysisID int64  `json:"analysis_id"`
	Status     string `json:"status"`
}

// AnalysisListItem 分析列表项（列表页不返回内容详情）
type AnalysisListItem struct {
	ID             int64  `json:"id"`
	AnalysisType   string `json:"analysis_type"`
	Status         string `json:"status"`
	OverallScore   *int   `json:"overall_score,omitempty"`
	ProcessingTime *int64 `json:"processing_time,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// ListAnalysesQuery 列表过滤参数
type ListAnalysesQuery struct {
	AnalysisType string
	Status       string
	Page         int
	PageSize     int
}
