package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"college-central/backend/internal/dto"
	"college-central/backend/internal/service"
	"college-central/backend/pkg/response"
)

// UpdatesHandler 校园动态 HTTP 处理器
type UpdatesHandler struct {
	updatesSvc service.UpdatesService
}

// NewUpdatesHandler 创建 UpdatesHandler
func NewUpdatesHandler(updatesSvc service.UpdatesService) *UpdatesHandler {
	return &UpdatesHandler{updatesSvc: updatesSvc}
}

// List 动态分页列表
// GET /api/v1/updates?category=exam&page=1&page_size=20
func (h *UpdatesHandler) List(c *gin.Context) {
	var req dto.CampusUpdateListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, pag, err := h.updatesSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, pag.Total, pag.Page, pag.PageSize)
}

// Latest 仪表盘最新动态
// GET /api/v1/updates/latest?limit=5
func (h *UpdatesHandler) Latest(c *gin.Context) {
	limit := 5
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = v
	}

	result, err := h.updatesSvc.Latest(c.Request.Context(), limit)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Fetch 手动触发抓取
// POST /api/v1/updates/fetch
func (h *UpdatesHandler) Fetch(c *gin.Context) {
	result, err := h.updatesSvc.FetchAndStore(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrUpdatesFetchFailed) {
			response.Error(c, http.StatusBadGateway, 16001, "校园动态抓取失败")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
