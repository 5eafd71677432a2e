package dto

// HotContentQuery 热点内容列表过滤参数
type HotContentQuery struct {
	Platform    string
	ContentType string
	Category    string
	SortBy      string
	Page        int
	PageSize    int
}

// SearchContentQuery 内容搜索参数
type SearchContentQuery struct {
	Keyword     string
	Platform    string
	ContentType string
	Page        int
	PageSize    int
}

// PlatformContentStat 单平台的内容规模统计
type PlatformContentStat struct {
	Platform    string  `json:"platform"`
	Count       int64   `json:"count"`
	HotCount    int64   `json:"hot_count"`
	AvgHotScore float64 `json:"avg_hot_score"`
	TotalViews  int64   `json:"total_views"`
	TotalLikes  int64   `json:"total_likes"`
}

// ContentTotals 内容库总体统计
type ContentTotals struct {
	TotalContents int64   `json:"total_contents"`
	TotalHot      int64   `json:"total_hot"`
	AvgHotScore   float64 `json:"avg_hot_score"`
	TotalViews    int64   `json:"total_views"`
	TotalLikes    int64   `json:"total_likes"`
}

// ContentStats 内容库统计：分平台明细加总览
type ContentStats struct {
	PlatformStats []PlatformContentStat `json:"platform_stats"`
	TotalStats    ContentTotals         `json:"total_stats"`
}

// PopularTag 热门标签及其热度
type PopularTag struct {
	Tag         string  `json:"tag"`
	Count       int     `json:"count"`
	AvgHotScore float64 `json:"avg_hot_score"`
}
