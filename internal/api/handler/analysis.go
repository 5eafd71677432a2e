package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/luoyx/content_ai_server/internal/api/middleware"
	"github.com/luoyx/content_ai_server/internal/model/dto"
	"github.com/luoyx/content_ai_server/internal/pkg/response"
	"github.com/luoyx/content_ai_server/internal/service"
)

type AnalysisHandler struct {
	analysisService *service.AnalysisService
	statsService    *service.StatsService
}

func NewAnalysisHandler(analysisService *service.AnalysisService, statsService *service.StatsService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		statsService:    statsService,
	}
}

// Create 提交分析任务
// POST /api/v1/analyses
func (h *AnalysisHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.analysisService.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case service.IsValidationError(err):
			response.ParamError(c, err.Error())
		case err == service.ErrSubmitFailed:
			response.ServerError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "任务已提交", resp)
}

// List 获取分析历史
// GET /api/v1/analyses
func (h *AnalysisHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	q := &dto.ListAnalysesQuery{
		AnalysisType: c.Query("analysis_type"),
		Status:       c.Query("status"),
		Page:         page,
		PageSize:     pageSize,
	}

	items, total, err := h.analysisService.List(userID, q)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Get 获取分析详情
// GET /api/v1/analyses/:id
func (h *AnalysisHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	analysisID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的分析ID")
		return
	}

	detail, err := h.analysisService.GetByID(userID, analysisID)
	if err != nil {
		switch err {
		case service.ErrAnalysisNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// Delete 删除分析
// DELETE /api/v1/analyses/:id
func (h *AnalysisHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	analysisID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的分析ID")
		return
	}

	if err := h.analysisService.Delete(userID, analysisID); err != nil {
		switch err {
		case service.ErrAnalysisNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// StatsSummary 获取分析统计汇总
// GET /api/v1/analyses/stats/summary
func (h *AnalysisHandler) StatsSummary(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	summary, err := h.statsService.Summary(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, summary)
}
