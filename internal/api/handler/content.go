package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/luoyx/content_ai_server/internal/model"
	"github.com/luoyx/content_ai_server/internal/model/dto"
	"github.com/luoyx/content_ai_server/internal/pkg/response"
	"github.com/luoyx/content_ai_server/internal/service"
)

// ContentHandler 热点内容库，只读接口
type ContentHandler struct {
	contentService *service.ContentService
}

func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// ListHot 获取热点内容列表
// GET /api/v1/content/hot
func (h *ContentHandler) ListHot(c *gin.Context) {
	contentType := c.Query("content_type")
	if contentType != "" && !model.IsValidContentType(contentType) {
		response.ParamError(c, "不支持的内容类型")
		return
	}

	page, pageSize := pageParams(c)
	q := &dto.HotContentQuery{
		Platform:    c.Query("platform"),
		ContentType: contentType,
		Category:    c.Query("category"),
		SortBy:      c.DefaultQuery("sort_by", "hot_score"),
		Page:        page,
		PageSize:    pageSize,
	}

	items, total, err := h.contentService.ListHot(q)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Get 获取内容详情
// GET /api/v1/content/:id
func (h *ContentHandler) Get(c *gin.Context) {
	contentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的内容ID")
		return
	}

	content, err := h.contentService.GetByID(contentID)
	if err != nil {
		switch err {
		case service.ErrContentNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, content)
}

// Search 关键词搜索内容
// GET /api/v1/content/search
func (h *ContentHandler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		response.ParamError(c, "搜索关键词不能为空")
		return
	}

	page, pageSize := pageParams(c)
	q := &dto.SearchContentQuery{
		Keyword:     keyword,
		Platform:    c.Query("platform"),
		ContentType: c.Query("content_type"),
		Page:        page,
		PageSize:    pageSize,
	}

	items, total, err := h.contentService.Search(q)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Stats 获取内容库统计
// GET /api/v1/content/stats
func (h *ContentHandler) Stats(c *gin.Context) {
	stats, err := h.contentService.Stats()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, stats)
}

// PopularTags 获取热门标签
// GET /api/v1/content/tags/popular
func (h *ContentHandler) PopularTags(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	tags, err := h.contentService.PopularTags(limit)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{"tags": tags})
}

// pageParams 解析分页参数，越界时回落默认值
func pageParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
