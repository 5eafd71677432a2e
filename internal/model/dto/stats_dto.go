package dto

// TypeStat 按分析类型的汇总
type TypeStat struct {
	AnalysisType      string  `json:"analysis_type"`
	Count             int64   `json:"count"`
	Completed         int64   `json:"completed"`
	AvgProcessingTime float64 `json:"avg_processing_time"` // 毫秒
}

// OverviewStat 总览统计
type OverviewStat struct {
	TotalAnalyses       int64   `json:"total_analyses"`
	CompletedAnalyses   int64   `json:"completed_analyses"`
	AvgQualityScore     float64 `json:"avg_quality_score"`
	TotalProcessingTime int64   `json:"total_processing_time"` // 毫秒
}

// DailyStat 按天的使用趋势
type DailyStat struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	Count     int64   `json:"count"`
	Completed int64   `json:"completed"`
	AvgScore  float64 `json:"avg_score"`
}

// ScoreBucket 质量评分分布桶
type ScoreBucket struct {
	Bucket   string  `json:"bucket"` // 如 "70-79"
	Count    int64   `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

// StatsSummary 分析统计汇总（GET /analyses/stats/summary）
type StatsSummary struct {
	TypeStats  []TypeStat   `json:"type_stats"`
	TotalStats OverviewStat `json:"total_stats"`
}

// Dashboard 用户仪表盘数据
type Dashboard struct {
	Overview          OverviewStat       `json:"overview"`
	RecentAnalyses    []AnalysisListItem `json:"recent_analyses"`
	TypeStats         []TypeStat         `json:"type_stats"`
	ScoreDistribution []ScoreBucket      `json:"score_distribution"`
}

// UsageStats 周期内使用统计
type UsageStats struct {
	Period       string      `json:"period"` // 7d / 30d / 90d
	DailyStats   []DailyStat `json:"daily_stats"`
	FeatureUsage []TypeStat  `json:"feature_usage"`
}

// UserTotals 用户规模统计（管理员）
type UserTotals struct {
	TotalUsers  int64 `json:"total_users"`
	ActiveUsers int64 `json:"active_users"`
	AdminUsers  int64 `json:"admin_users"`
}

// AnalysisTotals 分析规模统计（管理员）
type AnalysisTotals struct {
	TotalAnalyses     int64   `json:"total_analyses"`
	CompletedAnalyses int64   `json:"completed_analyses"`
	FailedAnalyses    int64   `json:"failed_analyses"`
	AvgProcessingTime float64 `json:"avg_processing_time"`
}

// SystemStats 系统级统计（管理员）
type SystemStats struct {
	Users    UserTotals     `json:"users"`
	Analyses AnalysisTotals `json:"analyses"`
}
