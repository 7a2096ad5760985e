package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"college-central/backend/internal/dto"
	"college-central/backend/internal/service"
	"college-central/backend/pkg/response"
)

// ProjectionHandler 学业推算 HTTP 处理器
type ProjectionHandler struct {
	projectionSvc service.ProjectionService
}

// NewProjectionHandler 创建 ProjectionHandler
func NewProjectionHandler(projectionSvc service.ProjectionService) *ProjectionHandler {
	return &ProjectionHandler{projectionSvc: projectionSvc}
}

// ProjectCurrent 本学期 SGPA/CGPA 推算
// POST /api/v1/projection/current
func (h *ProjectionHandler) ProjectCurrent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CurrentProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.projectionSvc.ProjectCurrent(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ProjectTarget 目标 CGPA 所需 SGPA 推算
// POST /api/v1/projection/target
func (h *ProjectionHandler) ProjectTarget(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.TargetProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.projectionSvc.ProjectTarget(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Distribution 成绩等级分布
// GET /api/v1/projection/distribution
func (h *ProjectionHandler) Distribution(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.projectionSvc.Distribution(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoGradesData) {
			response.NotFound(c, 14001, "暂无成绩数据")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// CategoryAverages 学科类别平均绩点
// GET /api/v1/projection/categories
func (h *ProjectionHandler) CategoryAverages(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.projectionSvc.CategoryAverages(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoGradesData) {
			response.NotFound(c, 14001, "暂无成绩数据")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
