package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"college-central/backend/internal/service"
	"college-central/backend/pkg/response"
)

// CatalogHandler 课程目录 HTTP 处理器
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// List 课程目录列表
// GET /api/v1/catalog/courses
func (h *CatalogHandler) List(c *gin.Context) {
	result, err := h.catalogSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetByCode 单门课程详情
// GET /api/v1/catalog/courses/:course_code
func (h *CatalogHandler) GetByCode(c *gin.Context) {
	result, err := h.catalogSvc.GetByCode(c.Request.Context(), c.Param("course_code"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 12001, "课程不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
