package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"college-central/backend/internal/service"
	"college-central/backend/pkg/response"
)

const (
	xlsxMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsMimeType  = "text/calendar; charset=utf-8"
)

// ExportHandler 课表导出 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportXLSX 导出课表 Excel
// GET /api/v1/schedule/export/xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	data, err := h.exportSvc.ExportXLSX(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", `attachment; filename="timetable.xlsx"`)
	c.Data(http.StatusOK, xlsxMimeType, data)
}

// ExportICS 导出课表 iCalendar
// GET /api/v1/schedule/export/ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	data, err := h.exportSvc.ExportICS(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", `attachment; filename="timetable.ics"`)
	c.Data(http.StatusOK, icsMimeType, data)
}
