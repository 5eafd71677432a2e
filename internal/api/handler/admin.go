package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/luoyx/content_ai_server/internal/model/dto"
	"github.com/luoyx/content_ai_server/internal/pkg/response"
	"github.com/luoyx/content_ai_server/internal/service"
)

type AdminHandler struct {
	userService  *service.UserService
	statsService *service.StatsService
}

func NewAdminHandler(userService *service.UserService, statsService *service.StatsService) *AdminHandler {
	return &AdminHandler{
		userService:  userService,
		statsService: statsService,
	}
}

// ListUsers 用户列表
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	search := c.Query("search")
	role := c.Query("role")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var isActive *bool
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		isActive = &active
	}

	items, total, err := h.userService.ListUsers(search, role, isActive, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// UpdateUserStatus 启用/停用用户
// PUT /api/v1/admin/users/:id/status
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的用户ID")
		return
	}

	var req dto.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.userService.UpdateUserStatus(userID, *req.IsActive)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "更新成功", info)
}

// SystemStats 系统统计
// GET /api/v1/admin/system-stats
func (h *AdminHandler) SystemStats(c *gin.Context) {
	stats, err := h.statsService.SystemStats()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, stats)
}
